package filters

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/olusolaa/resource-warden/internal/core/domain"
	"github.com/olusolaa/resource-warden/internal/core/ports"
)

// fakeTopology returns canned membership sets and counts resolutions.
type fakeTopology struct {
	subnets        map[string]struct{}
	securityGroups map[string]struct{}
	err            error
	calls          int
	lastQuery      ports.NetworkQuery
}

func (f *fakeTopology) ResolveSubnets(_ context.Context, q ports.NetworkQuery) (map[string]struct{}, error) {
	f.calls++
	f.lastQuery = q
	return f.subnets, f.err
}

func (f *fakeTopology) ResolveSecurityGroups(_ context.Context, q ports.NetworkQuery) (map[string]struct{}, error) {
	f.calls++
	f.lastQuery = q
	return f.securityGroups, f.err
}

func vpcResource(name string, subnetIDs, sgIDs []string) *domain.Resource {
	return &domain.Resource{
		Kind: domain.KindElasticsearchDomain,
		Attrs: map[string]any{
			"DomainName": name,
			"VPCOptions": map[string]any{
				"SubnetIds":        subnetIDs,
				"SecurityGroupIds": sgIDs,
			},
		},
	}
}

func TestSubnetFilterMatchesOnMembership(t *testing.T) {
	topo := &fakeTopology{subnets: map[string]struct{}{"subnet-1": {}, "subnet-2": {}}}
	f, err := SubnetFactory(topo)(map[string]any{"ids": []string{"subnet-1", "subnet-2"}})
	require.NoError(t, err)

	inVPC := vpcResource("a", []string{"subnet-2", "subnet-9"}, nil)
	outOfVPC := vpcResource("b", []string{"subnet-9"}, nil)
	classic := &domain.Resource{Attrs: map[string]any{"DomainName": "c"}}

	ok, err := f.Matches(context.Background(), inVPC)
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = f.Matches(context.Background(), outOfVPC)
	require.NoError(t, err)
	assert.False(t, ok)

	ok, err = f.Matches(context.Background(), classic)
	require.NoError(t, err)
	assert.False(t, ok, "a domain without VPC options never matches")
}

func TestSubnetFilterResolvesMembershipOnce(t *testing.T) {
	topo := &fakeTopology{subnets: map[string]struct{}{"subnet-1": {}}}
	f, err := SubnetFactory(topo)(map[string]any{"ids": []string{"subnet-1"}})
	require.NoError(t, err)

	for range 5 {
		_, err := f.Matches(context.Background(), vpcResource("a", []string{"subnet-1"}, nil))
		require.NoError(t, err)
	}

	assert.Equal(t, 1, topo.calls, "the membership set is resolved once per filter instance")
}

func TestSubnetFilterPassesTagQuery(t *testing.T) {
	topo := &fakeTopology{subnets: map[string]struct{}{}}
	f, err := SubnetFactory(topo)(map[string]any{"tag_key": "tier", "tag_value": "private"})
	require.NoError(t, err)

	_, err = f.Matches(context.Background(), vpcResource("a", []string{"subnet-1"}, nil))
	require.NoError(t, err)

	assert.Equal(t, "tier", topo.lastQuery.TagKey)
	assert.Equal(t, "private", topo.lastQuery.TagValue)
}

func TestSubnetFilterPropagatesResolveError(t *testing.T) {
	topo := &fakeTopology{err: assert.AnError}
	f, err := SubnetFactory(topo)(map[string]any{"ids": []string{"subnet-1"}})
	require.NoError(t, err)

	_, err = f.Matches(context.Background(), vpcResource("a", []string{"subnet-1"}, nil))

	assert.Error(t, err)
}

func TestNetworkFilterRequiresIDsOrTagQuery(t *testing.T) {
	topo := &fakeTopology{}

	_, err := SubnetFactory(topo)(map[string]any{})
	assert.Error(t, err)

	_, err = SecurityGroupFactory(topo)(map[string]any{})
	assert.Error(t, err)
}

func TestNetworkFilterRejectsUnknownOptions(t *testing.T) {
	topo := &fakeTopology{}

	_, err := SubnetFactory(topo)(map[string]any{"ids": []string{"subnet-1"}, "vpc": "vpc-1"})

	assert.Error(t, err)
}

func TestSecurityGroupFilterMatchesOnMembership(t *testing.T) {
	topo := &fakeTopology{securityGroups: map[string]struct{}{"sg-1": {}}}
	f, err := SecurityGroupFactory(topo)(map[string]any{"ids": []string{"sg-1"}})
	require.NoError(t, err)

	ok, err := f.Matches(context.Background(), vpcResource("a", nil, []string{"sg-1", "sg-2"}))
	require.NoError(t, err)
	assert.True(t, ok)

	ok, err = f.Matches(context.Background(), vpcResource("b", nil, []string{"sg-2"}))
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestNetworkFilterPermissions(t *testing.T) {
	topo := &fakeTopology{}

	subnet, err := SubnetFactory(topo)(map[string]any{"ids": []string{"subnet-1"}})
	require.NoError(t, err)
	sg, err := SecurityGroupFactory(topo)(map[string]any{"ids": []string{"sg-1"}})
	require.NoError(t, err)

	assert.Equal(t, []string{"ec2:DescribeSubnets"}, subnet.Permissions())
	assert.Equal(t, []string{"ec2:DescribeSecurityGroups"}, sg.Permissions())
}
