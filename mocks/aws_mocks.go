package mocks

import (
	"context"

	awscw "github.com/aws/aws-sdk-go-v2/service/cloudwatch"
	awsec2 "github.com/aws/aws-sdk-go-v2/service/ec2"
	"github.com/aws/aws-sdk-go-v2/service/elasticsearchservice"
	"github.com/aws/aws-sdk-go-v2/service/sts"
	"github.com/stretchr/testify/mock"

	"github.com/olusolaa/resource-warden/internal/core/ports"
)

// MockESClient is a mock implementation of the Elasticsearch Service client
type MockESClient struct {
	mock.Mock
}

func (m *MockESClient) ListDomainNames(ctx context.Context, params *elasticsearchservice.ListDomainNamesInput, optFns ...func(*elasticsearchservice.Options)) (*elasticsearchservice.ListDomainNamesOutput, error) {
	args := m.Called(ctx, params, optFns)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*elasticsearchservice.ListDomainNamesOutput), args.Error(1)
}

func (m *MockESClient) DescribeElasticsearchDomains(ctx context.Context, params *elasticsearchservice.DescribeElasticsearchDomainsInput, optFns ...func(*elasticsearchservice.Options)) (*elasticsearchservice.DescribeElasticsearchDomainsOutput, error) {
	args := m.Called(ctx, params, optFns)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*elasticsearchservice.DescribeElasticsearchDomainsOutput), args.Error(1)
}

func (m *MockESClient) ListTags(ctx context.Context, params *elasticsearchservice.ListTagsInput, optFns ...func(*elasticsearchservice.Options)) (*elasticsearchservice.ListTagsOutput, error) {
	args := m.Called(ctx, params, optFns)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*elasticsearchservice.ListTagsOutput), args.Error(1)
}

func (m *MockESClient) AddTags(ctx context.Context, params *elasticsearchservice.AddTagsInput, optFns ...func(*elasticsearchservice.Options)) (*elasticsearchservice.AddTagsOutput, error) {
	args := m.Called(ctx, params, optFns)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*elasticsearchservice.AddTagsOutput), args.Error(1)
}

func (m *MockESClient) RemoveTags(ctx context.Context, params *elasticsearchservice.RemoveTagsInput, optFns ...func(*elasticsearchservice.Options)) (*elasticsearchservice.RemoveTagsOutput, error) {
	args := m.Called(ctx, params, optFns)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*elasticsearchservice.RemoveTagsOutput), args.Error(1)
}

func (m *MockESClient) DeleteElasticsearchDomain(ctx context.Context, params *elasticsearchservice.DeleteElasticsearchDomainInput, optFns ...func(*elasticsearchservice.Options)) (*elasticsearchservice.DeleteElasticsearchDomainOutput, error) {
	args := m.Called(ctx, params, optFns)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*elasticsearchservice.DeleteElasticsearchDomainOutput), args.Error(1)
}

// MockSTSClient is a mock implementation of the STS client
type MockSTSClient struct {
	mock.Mock
}

func (m *MockSTSClient) GetCallerIdentity(ctx context.Context, params *sts.GetCallerIdentityInput, optFns ...func(*sts.Options)) (*sts.GetCallerIdentityOutput, error) {
	args := m.Called(ctx, params, optFns)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*sts.GetCallerIdentityOutput), args.Error(1)
}

// MockEC2Client is a mock implementation of the EC2 client used by the
// network topology resolver
type MockEC2Client struct {
	mock.Mock
}

func (m *MockEC2Client) DescribeSubnets(ctx context.Context, params *awsec2.DescribeSubnetsInput, optFns ...func(*awsec2.Options)) (*awsec2.DescribeSubnetsOutput, error) {
	args := m.Called(ctx, params, optFns)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*awsec2.DescribeSubnetsOutput), args.Error(1)
}

func (m *MockEC2Client) DescribeSecurityGroups(ctx context.Context, params *awsec2.DescribeSecurityGroupsInput, optFns ...func(*awsec2.Options)) (*awsec2.DescribeSecurityGroupsOutput, error) {
	args := m.Called(ctx, params, optFns)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*awsec2.DescribeSecurityGroupsOutput), args.Error(1)
}

// MockCloudWatchClient is a mock implementation of the CloudWatch client
type MockCloudWatchClient struct {
	mock.Mock
}

func (m *MockCloudWatchClient) GetMetricStatistics(ctx context.Context, params *awscw.GetMetricStatisticsInput, optFns ...func(*awscw.Options)) (*awscw.GetMetricStatisticsOutput, error) {
	args := m.Called(ctx, params, optFns)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*awscw.GetMetricStatisticsOutput), args.Error(1)
}

// NopRateLimiter satisfies shared.RateLimiter without gating anything.
type NopRateLimiter struct{}

func (NopRateLimiter) Wait(ctx context.Context, logger ports.Logger) error {
	return ctx.Err()
}

// NopLogger discards everything. Tests that assert on log output should
// use a real logger instead.
type NopLogger struct{}

func (NopLogger) Debugf(ctx context.Context, format string, args ...any)            {}
func (NopLogger) Infof(ctx context.Context, format string, args ...any)             {}
func (NopLogger) Warnf(ctx context.Context, format string, args ...any)             {}
func (NopLogger) Errorf(ctx context.Context, err error, format string, args ...any) {}
func (l NopLogger) WithFields(fields map[string]any) ports.Logger                   { return l }
