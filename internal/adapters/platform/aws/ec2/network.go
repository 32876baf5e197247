// Package ec2 resolves VPC membership sets for the network filters.
package ec2

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsec2 "github.com/aws/aws-sdk-go-v2/service/ec2"
	"github.com/aws/aws-sdk-go-v2/service/ec2/types"

	awserrors "github.com/olusolaa/resource-warden/internal/adapters/platform/aws/errors"
	"github.com/olusolaa/resource-warden/internal/adapters/platform/aws/limiter"
	"github.com/olusolaa/resource-warden/internal/adapters/platform/aws/shared"
	"github.com/olusolaa/resource-warden/internal/core/ports"
	apperrors "github.com/olusolaa/resource-warden/internal/errors"
)

type EC2ClientInterface interface {
	DescribeSubnets(ctx context.Context, params *awsec2.DescribeSubnetsInput, optFns ...func(*awsec2.Options)) (*awsec2.DescribeSubnetsOutput, error)
	DescribeSecurityGroups(ctx context.Context, params *awsec2.DescribeSecurityGroupsInput, optFns ...func(*awsec2.Options)) (*awsec2.DescribeSecurityGroupsOutput, error)
}

// TopologyResolver implements ports.NetworkTopology against the EC2 API.
type TopologyResolver struct {
	client  EC2ClientInterface
	limiter shared.RateLimiter
	logger  ports.Logger
}

type Option func(*TopologyResolver)

func WithClient(c EC2ClientInterface) Option {
	return func(r *TopologyResolver) { r.client = c }
}

func WithRateLimiter(l shared.RateLimiter) Option {
	return func(r *TopologyResolver) { r.limiter = l }
}

func NewTopologyResolver(cfg aws.Config, logger ports.Logger, opts ...Option) *TopologyResolver {
	r := &TopologyResolver{
		limiter: limiter.Global{},
		logger:  logger,
	}
	for _, opt := range opts {
		opt(r)
	}
	if r.client == nil {
		r.client = awsec2.NewFromConfig(cfg)
	}
	return r
}

func queryFilters(q ports.NetworkQuery) ([]types.Filter, error) {
	if len(q.IDs) > 0 {
		return nil, nil
	}
	if q.TagKey == "" {
		return nil, apperrors.New(apperrors.CodeConfigValidation, "network query needs explicit ids or a tag key")
	}
	return []types.Filter{{
		Name:   aws.String(fmt.Sprintf("tag:%s", q.TagKey)),
		Values: []string{q.TagValue},
	}}, nil
}

func (r *TopologyResolver) ResolveSubnets(ctx context.Context, q ports.NetworkQuery) (map[string]struct{}, error) {
	filters, err := queryFilters(q)
	if err != nil {
		return nil, err
	}

	if err := r.limiter.Wait(ctx, r.logger); err != nil {
		return nil, err
	}
	out, err := r.client.DescribeSubnets(ctx, &awsec2.DescribeSubnetsInput{
		SubnetIds: q.IDs,
		Filters:   filters,
	})
	if err != nil {
		return nil, awserrors.Classify("ec2", "DescribeSubnets", err, ctx)
	}

	set := make(map[string]struct{}, len(out.Subnets))
	for _, s := range out.Subnets {
		if s.SubnetId != nil {
			set[*s.SubnetId] = struct{}{}
		}
	}
	return set, nil
}

func (r *TopologyResolver) ResolveSecurityGroups(ctx context.Context, q ports.NetworkQuery) (map[string]struct{}, error) {
	filters, err := queryFilters(q)
	if err != nil {
		return nil, err
	}

	if err := r.limiter.Wait(ctx, r.logger); err != nil {
		return nil, err
	}
	out, err := r.client.DescribeSecurityGroups(ctx, &awsec2.DescribeSecurityGroupsInput{
		GroupIds: q.IDs,
		Filters:  filters,
	})
	if err != nil {
		return nil, awserrors.Classify("ec2", "DescribeSecurityGroups", err, ctx)
	}

	set := make(map[string]struct{}, len(out.SecurityGroups))
	for _, g := range out.SecurityGroups {
		if g.GroupId != nil {
			set[*g.GroupId] = struct{}{}
		}
	}
	return set, nil
}
