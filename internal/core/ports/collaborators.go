package ports

import (
	"context"
	"time"
)

// NetworkQuery selects a set of network entities either by explicit ids or
// by a tag pair. Exactly one selection mode should be populated.
type NetworkQuery struct {
	IDs      []string
	TagKey   string
	TagValue string
}

// NetworkTopology resolves VPC membership sets for the network filters.
type NetworkTopology interface {
	ResolveSubnets(ctx context.Context, q NetworkQuery) (map[string]struct{}, error)
	ResolveSecurityGroups(ctx context.Context, q NetworkQuery) (map[string]struct{}, error)
}

// MetricDimension is one Name/Value dimension pair. Order matters to the
// provider, so queries carry a slice rather than a map.
type MetricDimension struct {
	Name  string
	Value string
}

type MetricQuery struct {
	Namespace  string
	MetricName string
	Statistic  string
	Dimensions []MetricDimension
	Window     time.Duration
	Period     time.Duration
}

// MetricsSource fetches one aggregated statistic. The bool result reports
// whether any datapoints existed in the window.
type MetricsSource interface {
	Statistic(ctx context.Context, q MetricQuery) (float64, bool, error)
}
