package tags

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEncodeMark(t *testing.T) {
	date := time.Date(2026, 9, 1, 15, 30, 0, 0, time.UTC)

	assert.Equal(t, "Resource does not meet policy: delete@2026/09/01", EncodeMark("delete", date))
}

func TestParseMarkRoundTrip(t *testing.T) {
	date := time.Date(2026, 12, 24, 0, 0, 0, 0, time.UTC)
	value := EncodeMark("remove-tag", date)

	op, parsed, err := ParseMark(value)

	require.NoError(t, err)
	assert.Equal(t, "remove-tag", op)
	assert.True(t, parsed.Equal(date))
}

func TestParseMarkAcceptsCustomMessage(t *testing.T) {
	op, date, err := ParseMark("scheduled by ops team: delete@2026/01/15")

	require.NoError(t, err)
	assert.Equal(t, "delete", op)
	assert.Equal(t, time.Date(2026, 1, 15, 0, 0, 0, 0, time.UTC), date)
}

func TestParseMarkWithoutMessagePrefix(t *testing.T) {
	op, date, err := ParseMark("delete@2026/03/03")

	require.NoError(t, err)
	assert.Equal(t, "delete", op)
	assert.Equal(t, time.Date(2026, 3, 3, 0, 0, 0, 0, time.UTC), date)
}

func TestParseMarkRejectsMalformedValues(t *testing.T) {
	tests := []struct {
		name  string
		value string
	}{
		{"no op/date segment", "just a human note"},
		{"missing date", "Resource does not meet policy: delete@"},
		{"unparseable date", "Resource does not meet policy: delete@tomorrow"},
		{"wrong date layout", "Resource does not meet policy: delete@2026-09-01"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, _, err := ParseMark(tt.value)
			assert.Error(t, err)
		})
	}
}
