// Package filters holds the predicate implementations dispatched by the
// pipeline registry. Filters never mutate the records they inspect.
package filters

import (
	"context"
	"sync"

	"github.com/olusolaa/resource-warden/internal/core/domain"
	"github.com/olusolaa/resource-warden/internal/core/ports"
	"github.com/olusolaa/resource-warden/internal/core/service"
	"github.com/olusolaa/resource-warden/internal/errors"
)

const (
	subnetIDsPath        = "VPCOptions.SubnetIds"
	securityGroupIDsPath = "VPCOptions.SecurityGroupIds"
)

type networkOptions struct {
	IDs      []string `mapstructure:"ids"`
	TagKey   string   `mapstructure:"tag_key"`
	TagValue string   `mapstructure:"tag_value"`
}

func (o networkOptions) query() (ports.NetworkQuery, error) {
	if len(o.IDs) == 0 && o.TagKey == "" {
		return ports.NetworkQuery{}, errors.New(errors.CodeConfigValidation,
			"network filter needs 'ids' or a 'tag_key'/'tag_value' pair")
	}
	return ports.NetworkQuery{IDs: o.IDs, TagKey: o.TagKey, TagValue: o.TagValue}, nil
}

// relatedIDFilter matches resources whose related-id references at a fixed
// attribute path intersect a set resolved by the network topology
// collaborator. The set is resolved once per filter instance.
type relatedIDFilter struct {
	name        string
	permissions []string
	path        string
	query       ports.NetworkQuery
	resolve     func(ctx context.Context, q ports.NetworkQuery) (map[string]struct{}, error)

	once       sync.Once
	set        map[string]struct{}
	resolveErr error
}

func (f *relatedIDFilter) Name() string {
	return f.name
}

func (f *relatedIDFilter) Permissions() []string {
	return f.permissions
}

func (f *relatedIDFilter) Matches(ctx context.Context, r *domain.Resource) (bool, error) {
	f.once.Do(func() {
		f.set, f.resolveErr = f.resolve(ctx, f.query)
	})
	if f.resolveErr != nil {
		return false, f.resolveErr
	}

	for _, id := range r.StringsAtPath(f.path) {
		if _, ok := f.set[id]; ok {
			return true, nil
		}
	}
	return false, nil
}

// SubnetFactory builds the "subnet" filter: true when any of the record's
// VPC subnet references belongs to the resolved subnet set.
func SubnetFactory(topo ports.NetworkTopology) service.FilterFactory {
	return func(options map[string]any) (ports.Filter, error) {
		var o networkOptions
		if err := service.DecodeOptions(options, &o); err != nil {
			return nil, err
		}
		q, err := o.query()
		if err != nil {
			return nil, err
		}
		return &relatedIDFilter{
			name:        "subnet",
			permissions: []string{"ec2:DescribeSubnets"},
			path:        subnetIDsPath,
			query:       q,
			resolve:     topo.ResolveSubnets,
		}, nil
	}
}

// SecurityGroupFactory builds the "security-group" filter over the
// record's security-group references.
func SecurityGroupFactory(topo ports.NetworkTopology) service.FilterFactory {
	return func(options map[string]any) (ports.Filter, error) {
		var o networkOptions
		if err := service.DecodeOptions(options, &o); err != nil {
			return nil, err
		}
		q, err := o.query()
		if err != nil {
			return nil, err
		}
		return &relatedIDFilter{
			name:        "security-group",
			permissions: []string{"ec2:DescribeSecurityGroups"},
			path:        securityGroupIDsPath,
			query:       q,
			resolve:     topo.ResolveSecurityGroups,
		}, nil
	}
}
