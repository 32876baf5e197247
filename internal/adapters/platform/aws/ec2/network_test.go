package ec2

import (
	"context"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	awsec2 "github.com/aws/aws-sdk-go-v2/service/ec2"
	"github.com/aws/aws-sdk-go-v2/service/ec2/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/olusolaa/resource-warden/internal/core/ports"
	"github.com/olusolaa/resource-warden/mocks"
)

func newTestResolver(client EC2ClientInterface) *TopologyResolver {
	return NewTopologyResolver(aws.Config{}, mocks.NopLogger{},
		WithClient(client),
		WithRateLimiter(mocks.NopRateLimiter{}),
	)
}

func TestResolveSubnetsByIDs(t *testing.T) {
	client := new(mocks.MockEC2Client)
	client.On("DescribeSubnets", mock.Anything, mock.MatchedBy(func(in *awsec2.DescribeSubnetsInput) bool {
		return len(in.SubnetIds) == 2 && len(in.Filters) == 0
	}), mock.Anything).Return(&awsec2.DescribeSubnetsOutput{
		Subnets: []types.Subnet{
			{SubnetId: aws.String("subnet-1")},
			{SubnetId: aws.String("subnet-2")},
		},
	}, nil)

	set, err := newTestResolver(client).ResolveSubnets(context.Background(), ports.NetworkQuery{
		IDs: []string{"subnet-1", "subnet-2"},
	})

	require.NoError(t, err)
	assert.Equal(t, map[string]struct{}{"subnet-1": {}, "subnet-2": {}}, set)
}

func TestResolveSubnetsByTag(t *testing.T) {
	client := new(mocks.MockEC2Client)
	client.On("DescribeSubnets", mock.Anything, mock.MatchedBy(func(in *awsec2.DescribeSubnetsInput) bool {
		return len(in.SubnetIds) == 0 &&
			len(in.Filters) == 1 &&
			aws.ToString(in.Filters[0].Name) == "tag:tier" &&
			len(in.Filters[0].Values) == 1 && in.Filters[0].Values[0] == "private"
	}), mock.Anything).Return(&awsec2.DescribeSubnetsOutput{
		Subnets: []types.Subnet{{SubnetId: aws.String("subnet-9")}},
	}, nil)

	set, err := newTestResolver(client).ResolveSubnets(context.Background(), ports.NetworkQuery{
		TagKey:   "tier",
		TagValue: "private",
	})

	require.NoError(t, err)
	assert.Contains(t, set, "subnet-9")
}

func TestResolveSubnetsRequiresIDsOrTag(t *testing.T) {
	client := new(mocks.MockEC2Client)

	_, err := newTestResolver(client).ResolveSubnets(context.Background(), ports.NetworkQuery{})

	assert.Error(t, err)
	client.AssertNotCalled(t, "DescribeSubnets", mock.Anything, mock.Anything, mock.Anything)
}

func TestResolveSubnetsPropagatesAPIError(t *testing.T) {
	client := new(mocks.MockEC2Client)
	client.On("DescribeSubnets", mock.Anything, mock.Anything, mock.Anything).
		Return(nil, assert.AnError)

	_, err := newTestResolver(client).ResolveSubnets(context.Background(), ports.NetworkQuery{
		IDs: []string{"subnet-1"},
	})

	assert.Error(t, err)
}

func TestResolveSecurityGroupsByIDs(t *testing.T) {
	client := new(mocks.MockEC2Client)
	client.On("DescribeSecurityGroups", mock.Anything, mock.MatchedBy(func(in *awsec2.DescribeSecurityGroupsInput) bool {
		return len(in.GroupIds) == 1 && in.GroupIds[0] == "sg-1"
	}), mock.Anything).Return(&awsec2.DescribeSecurityGroupsOutput{
		SecurityGroups: []types.SecurityGroup{{GroupId: aws.String("sg-1")}},
	}, nil)

	set, err := newTestResolver(client).ResolveSecurityGroups(context.Background(), ports.NetworkQuery{
		IDs: []string{"sg-1"},
	})

	require.NoError(t, err)
	assert.Equal(t, map[string]struct{}{"sg-1": {}}, set)
}
