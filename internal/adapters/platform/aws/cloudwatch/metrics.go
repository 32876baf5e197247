// Package cloudwatch backs the metrics filter with GetMetricStatistics.
package cloudwatch

import (
	"context"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	awscw "github.com/aws/aws-sdk-go-v2/service/cloudwatch"
	"github.com/aws/aws-sdk-go-v2/service/cloudwatch/types"

	awserrors "github.com/olusolaa/resource-warden/internal/adapters/platform/aws/errors"
	"github.com/olusolaa/resource-warden/internal/adapters/platform/aws/limiter"
	"github.com/olusolaa/resource-warden/internal/adapters/platform/aws/shared"
	"github.com/olusolaa/resource-warden/internal/core/ports"
	apperrors "github.com/olusolaa/resource-warden/internal/errors"
)

const defaultPeriod = 5 * time.Minute

type CloudWatchClientInterface interface {
	GetMetricStatistics(ctx context.Context, params *awscw.GetMetricStatisticsInput, optFns ...func(*awscw.Options)) (*awscw.GetMetricStatisticsOutput, error)
}

// Source implements ports.MetricsSource.
type Source struct {
	client  CloudWatchClientInterface
	limiter shared.RateLimiter
	logger  ports.Logger
	now     func() time.Time
}

type Option func(*Source)

func WithClient(c CloudWatchClientInterface) Option {
	return func(s *Source) { s.client = c }
}

func WithRateLimiter(l shared.RateLimiter) Option {
	return func(s *Source) { s.limiter = l }
}

func WithClock(now func() time.Time) Option {
	return func(s *Source) { s.now = now }
}

func NewSource(cfg aws.Config, logger ports.Logger, opts ...Option) *Source {
	s := &Source{
		limiter: limiter.Global{},
		logger:  logger,
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.client == nil {
		s.client = awscw.NewFromConfig(cfg)
	}
	return s
}

// Statistic fetches datapoints over the query window and aggregates them
// with the query's statistic. The bool result is false when the window held
// no datapoints at all.
func (s *Source) Statistic(ctx context.Context, q ports.MetricQuery) (float64, bool, error) {
	period := q.Period
	if period <= 0 {
		period = defaultPeriod
	}
	end := s.now()
	start := end.Add(-q.Window)

	dims := make([]types.Dimension, 0, len(q.Dimensions))
	for _, d := range q.Dimensions {
		dims = append(dims, types.Dimension{
			Name:  aws.String(d.Name),
			Value: aws.String(d.Value),
		})
	}

	if err := s.limiter.Wait(ctx, s.logger); err != nil {
		return 0, false, err
	}
	out, err := s.client.GetMetricStatistics(ctx, &awscw.GetMetricStatisticsInput{
		Namespace:  aws.String(q.Namespace),
		MetricName: aws.String(q.MetricName),
		Dimensions: dims,
		StartTime:  aws.Time(start),
		EndTime:    aws.Time(end),
		Period:     aws.Int32(int32(period.Seconds())),
		Statistics: []types.Statistic{types.Statistic(q.Statistic)},
	})
	if err != nil {
		return 0, false, awserrors.Classify("cloudwatch", "GetMetricStatistics", err, ctx)
	}
	if len(out.Datapoints) == 0 {
		return 0, false, nil
	}

	value, err := aggregate(out.Datapoints, q.Statistic)
	if err != nil {
		return 0, false, err
	}
	return value, true, nil
}

func aggregate(points []types.Datapoint, statistic string) (float64, error) {
	switch statistic {
	case "Average":
		var sum float64
		for _, p := range points {
			sum += aws.ToFloat64(p.Average)
		}
		return sum / float64(len(points)), nil
	case "Sum":
		var sum float64
		for _, p := range points {
			sum += aws.ToFloat64(p.Sum)
		}
		return sum, nil
	case "Maximum":
		max := aws.ToFloat64(points[0].Maximum)
		for _, p := range points[1:] {
			if v := aws.ToFloat64(p.Maximum); v > max {
				max = v
			}
		}
		return max, nil
	case "Minimum":
		min := aws.ToFloat64(points[0].Minimum)
		for _, p := range points[1:] {
			if v := aws.ToFloat64(p.Minimum); v < min {
				min = v
			}
		}
		return min, nil
	case "SampleCount":
		var sum float64
		for _, p := range points {
			sum += aws.ToFloat64(p.SampleCount)
		}
		return sum, nil
	}
	return 0, apperrors.New(apperrors.CodeConfigValidation, "unsupported metric statistic: "+statistic)
}
