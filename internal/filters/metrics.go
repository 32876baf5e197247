package filters

import (
	"context"
	"fmt"
	"time"

	"github.com/olusolaa/resource-warden/internal/core/domain"
	"github.com/olusolaa/resource-warden/internal/core/ports"
	"github.com/olusolaa/resource-warden/internal/core/service"
	"github.com/olusolaa/resource-warden/internal/errors"
)

const (
	defaultMetricNamespace = "AWS/ES"
	defaultMetricStatistic = "Average"
	defaultMetricDays      = 14
)

type metricsOptions struct {
	Name      string   `mapstructure:"name"`
	Namespace string   `mapstructure:"namespace"`
	Statistic string   `mapstructure:"statistic"`
	Op        string   `mapstructure:"op"`
	Value     *float64 `mapstructure:"value"`
	Days      int      `mapstructure:"days"`
	PeriodSec int      `mapstructure:"period"`
}

type metricsFilter struct {
	src       ports.MetricsSource
	accountID string
	nameField string
	dimension string
	opts      metricsOptions
	compare   func(float64) bool
}

func (f *metricsFilter) Name() string {
	return "metrics"
}

func (f *metricsFilter) Permissions() []string {
	return []string{"cloudwatch:GetMetricStatistics"}
}

// Matches evaluates the configured metric for one resource, dimensioned by
// account id plus the resource's display name. A window with no datapoints
// never matches.
func (f *metricsFilter) Matches(ctx context.Context, r *domain.Resource) (bool, error) {
	q := ports.MetricQuery{
		Namespace:  f.opts.Namespace,
		MetricName: f.opts.Name,
		Statistic:  f.opts.Statistic,
		Dimensions: []ports.MetricDimension{
			{Name: "ClientId", Value: f.accountID},
			{Name: f.dimension, Value: r.StringAttr(f.nameField)},
		},
		Window: time.Duration(f.opts.Days) * 24 * time.Hour,
		Period: time.Duration(f.opts.PeriodSec) * time.Second,
	}

	value, found, err := f.src.Statistic(ctx, q)
	if err != nil {
		return false, err
	}
	if !found {
		return false, nil
	}
	return f.compare(value), nil
}

func comparator(op string, threshold float64) (func(float64) bool, error) {
	switch op {
	case "eq", "equal":
		return func(v float64) bool { return v == threshold }, nil
	case "ne", "not-equal":
		return func(v float64) bool { return v != threshold }, nil
	case "gt", "greater-than":
		return func(v float64) bool { return v > threshold }, nil
	case "ge", "gte":
		return func(v float64) bool { return v >= threshold }, nil
	case "lt", "less-than":
		return func(v float64) bool { return v < threshold }, nil
	case "le", "lte":
		return func(v float64) bool { return v <= threshold }, nil
	}
	return nil, errors.New(errors.CodeConfigValidation, fmt.Sprintf("unsupported metrics op '%s'", op))
}

// MetricsFactory builds the "metrics" filter. The descriptor supplies the
// dimension and display-name field; the manager supplies the account id.
func MetricsFactory(src ports.MetricsSource, descriptor *domain.Descriptor, accountID string) service.FilterFactory {
	return func(options map[string]any) (ports.Filter, error) {
		o := metricsOptions{
			Namespace: defaultMetricNamespace,
			Statistic: defaultMetricStatistic,
			Days:      defaultMetricDays,
		}
		if err := service.DecodeOptions(options, &o); err != nil {
			return nil, err
		}
		if o.Name == "" {
			return nil, errors.New(errors.CodeConfigValidation, "metrics filter requires 'name'")
		}
		if o.Op == "" {
			return nil, errors.New(errors.CodeConfigValidation, "metrics filter requires 'op'")
		}
		if o.Value == nil {
			return nil, errors.New(errors.CodeConfigValidation, "metrics filter requires 'value'")
		}
		cmp, err := comparator(o.Op, *o.Value)
		if err != nil {
			return nil, err
		}
		return &metricsFilter{
			src:       src,
			accountID: accountID,
			nameField: descriptor.NameField,
			dimension: descriptor.Dimension,
			opts:      o,
			compare:   cmp,
		}, nil
	}
}
