package filters

import (
	"context"
	"time"

	"github.com/olusolaa/resource-warden/internal/core/domain"
	"github.com/olusolaa/resource-warden/internal/core/ports"
	"github.com/olusolaa/resource-warden/internal/core/service"
	"github.com/olusolaa/resource-warden/internal/errors"
	"github.com/olusolaa/resource-warden/internal/tags"
)

type markedForOpOptions struct {
	Op   string `mapstructure:"op"`
	Tag  string `mapstructure:"tag"`
	Skew int    `mapstructure:"skew"`
}

// markedForOpFilter selects resources carrying a delayed-action tag whose
// op matches and whose trigger date has arrived (optionally skewed a few
// days early).
type markedForOpFilter struct {
	opts markedForOpOptions
	now  func() time.Time
}

func (f *markedForOpFilter) Name() string {
	return "marked-for-op"
}

func (f *markedForOpFilter) Permissions() []string {
	return nil
}

func (f *markedForOpFilter) Matches(_ context.Context, r *domain.Resource) (bool, error) {
	value, ok := r.TagValue(f.opts.Tag)
	if !ok {
		return false, nil
	}
	op, date, err := tags.ParseMark(value)
	if err != nil {
		// A malformed mark is somebody else's tag, not a match.
		return false, nil
	}
	if op != f.opts.Op {
		return false, nil
	}
	deadline := f.now().Add(time.Duration(f.opts.Skew) * 24 * time.Hour)
	return !date.After(deadline), nil
}

func MarkedForOpFactory() service.FilterFactory {
	return markedForOpFactoryWithClock(time.Now)
}

func markedForOpFactoryWithClock(now func() time.Time) service.FilterFactory {
	return func(options map[string]any) (ports.Filter, error) {
		o := markedForOpOptions{Tag: tags.DefaultMarkTag}
		if err := service.DecodeOptions(options, &o); err != nil {
			return nil, err
		}
		if o.Op == "" {
			return nil, errors.New(errors.CodeConfigValidation, "marked-for-op filter requires 'op'")
		}
		if o.Skew < 0 {
			return nil, errors.New(errors.CodeConfigValidation, "marked-for-op 'skew' cannot be negative")
		}
		return &markedForOpFilter{opts: o, now: now}, nil
	}
}
