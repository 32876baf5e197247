// Package tags carries the delayed-action tag vocabulary: a sentinel tag
// whose value encodes a future operation and its trigger date, written by
// the mark-for-op action and consumed by the marked-for-op filter.
package tags

import (
	"fmt"
	"strings"
	"time"

	"github.com/olusolaa/resource-warden/internal/errors"
)

const (
	// DefaultMarkTag is the tag key the delayed-action vocabulary uses
	// unless a policy overrides it.
	DefaultMarkTag = "maid_status"
	// DateFormat is the trigger-date layout inside the tag value.
	DateFormat = "2006/01/02"

	defaultMessage = "Resource does not meet policy"
)

// EncodeMark renders the delayed-action tag value, e.g.
// "Resource does not meet policy: delete@2026/09/01".
func EncodeMark(op string, date time.Time) string {
	return fmt.Sprintf("%s: %s@%s", defaultMessage, op, date.Format(DateFormat))
}

// ParseMark extracts the op and trigger date from a delayed-action tag
// value. The leading message is free-form; only the trailing "op@date"
// segment is structural.
func ParseMark(value string) (string, time.Time, error) {
	idx := strings.LastIndex(value, ": ")
	tail := value
	if idx >= 0 {
		tail = value[idx+2:]
	}
	parts := strings.SplitN(tail, "@", 2)
	if len(parts) != 2 {
		return "", time.Time{}, errors.New(errors.CodeInternal, "malformed delayed-action tag value: "+value)
	}
	date, err := time.Parse(DateFormat, parts[1])
	if err != nil {
		return "", time.Time{}, errors.Wrap(err, errors.CodeInternal, "malformed delayed-action date in tag value: "+value)
	}
	return parts[0], date, nil
}
