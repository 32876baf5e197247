package actions

import (
	"context"
	"testing"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/elasticsearchservice"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/olusolaa/resource-warden/internal/adapters/platform/aws/es"
	"github.com/olusolaa/resource-warden/internal/core/domain"
	"github.com/olusolaa/resource-warden/internal/tags"
	"github.com/olusolaa/resource-warden/mocks"
)

const testARNPrefix = "arn:aws:es:us-east-1:123456789012:domain/"

func testDeps() Deps {
	return Deps{
		Descriptor: es.DomainDescriptor,
		Limiter:    mocks.NopRateLimiter{},
		Logger:     mocks.NopLogger{},
	}
}

func testResource(name string) *domain.Resource {
	return &domain.Resource{
		Kind: domain.KindElasticsearchDomain,
		ARN:  testARNPrefix + name,
		Tags: []domain.Tag{},
		Attrs: map[string]any{
			"DomainName": name,
		},
	}
}

func testBatch(names ...string) []*domain.Resource {
	batch := make([]*domain.Resource, 0, len(names))
	for _, n := range names {
		batch = append(batch, testResource(n))
	}
	return batch
}

func deleteInputFor(name string) any {
	return mock.MatchedBy(func(in *elasticsearchservice.DeleteElasticsearchDomainInput) bool {
		return aws.ToString(in.DomainName) == name
	})
}

func addTagsInputFor(name string) any {
	return mock.MatchedBy(func(in *elasticsearchservice.AddTagsInput) bool {
		return aws.ToString(in.ARN) == testARNPrefix+name
	})
}

func TestDeleteProcessesAllRecords(t *testing.T) {
	client := new(mocks.MockESClient)
	client.On("DeleteElasticsearchDomain", mock.Anything, mock.Anything, mock.Anything).
		Return(&elasticsearchservice.DeleteElasticsearchDomainOutput{}, nil)

	action, err := DeleteFactory(client, testDeps())(map[string]any{})
	require.NoError(t, err)

	failures, err := action.Process(context.Background(), testBatch("a", "b", "c"))

	require.NoError(t, err)
	assert.Empty(t, failures)
	client.AssertNumberOfCalls(t, "DeleteElasticsearchDomain", 3)
}

func TestDeleteIsolatesPerResourceFailures(t *testing.T) {
	client := new(mocks.MockESClient)
	client.On("DeleteElasticsearchDomain", mock.Anything, deleteInputFor("b"), mock.Anything).
		Return(nil, assert.AnError)
	client.On("DeleteElasticsearchDomain", mock.Anything, mock.Anything, mock.Anything).
		Return(&elasticsearchservice.DeleteElasticsearchDomainOutput{}, nil)

	action, err := DeleteFactory(client, testDeps())(map[string]any{})
	require.NoError(t, err)

	failures, err := action.Process(context.Background(), testBatch("a", "b", "c"))

	require.NoError(t, err, "a single bad resource must not abort the batch")
	require.Len(t, failures, 1)
	assert.Equal(t, "b", failures[0].ResourceID)
	client.AssertNumberOfCalls(t, "DeleteElasticsearchDomain", 3)
}

func TestDeleteRejectsUnknownOptions(t *testing.T) {
	client := new(mocks.MockESClient)

	_, err := DeleteFactory(client, testDeps())(map[string]any{"force": true})

	assert.Error(t, err)
}

func TestDeleteAbortsBatchOnCanceledContext(t *testing.T) {
	client := new(mocks.MockESClient)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	action, err := DeleteFactory(client, testDeps())(map[string]any{})
	require.NoError(t, err)

	_, err = action.Process(ctx, testBatch("a", "b"))

	assert.Error(t, err)
	client.AssertNotCalled(t, "DeleteElasticsearchDomain", mock.Anything, mock.Anything, mock.Anything)
}

func TestTagSendsIdenticalListToEveryRecord(t *testing.T) {
	client := new(mocks.MockESClient)
	var seen [][]string
	client.On("AddTags", mock.Anything, mock.Anything, mock.Anything).
		Run(func(args mock.Arguments) {
			in := args.Get(1).(*elasticsearchservice.AddTagsInput)
			var keys []string
			for _, tag := range in.TagList {
				keys = append(keys, aws.ToString(tag.Key)+"="+aws.ToString(tag.Value))
			}
			seen = append(seen, keys)
		}).
		Return(&elasticsearchservice.AddTagsOutput{}, nil)

	action, err := TagFactory(client, testDeps())(map[string]any{"key": "owner", "value": "platform"})
	require.NoError(t, err)

	_, err = action.Process(context.Background(), testBatch("a", "b"))
	require.NoError(t, err)
	_, err = action.Process(context.Background(), testBatch("a", "b"))
	require.NoError(t, err)

	require.Len(t, seen, 4)
	for _, keys := range seen {
		assert.Equal(t, []string{"owner=platform"}, keys, "repeat runs must send identical requests")
	}
}

func TestTagRequiresSomeTagInput(t *testing.T) {
	client := new(mocks.MockESClient)

	_, err := TagFactory(client, testDeps())(map[string]any{})

	assert.Error(t, err)
}

func TestTagFailsRecordWithoutARN(t *testing.T) {
	client := new(mocks.MockESClient)

	action, err := TagFactory(client, testDeps())(map[string]any{"key": "owner", "value": "platform"})
	require.NoError(t, err)

	bare := testResource("a")
	bare.ARN = ""
	failures, err := action.Process(context.Background(), []*domain.Resource{bare})

	require.NoError(t, err)
	require.Len(t, failures, 1)
	assert.Equal(t, "a", failures[0].ResourceID)
	client.AssertNotCalled(t, "AddTags", mock.Anything, mock.Anything, mock.Anything)
}

func TestRemoveTagSendsConfiguredKeys(t *testing.T) {
	client := new(mocks.MockESClient)
	client.On("RemoveTags", mock.Anything, mock.MatchedBy(func(in *elasticsearchservice.RemoveTagsInput) bool {
		return aws.ToString(in.ARN) == testARNPrefix+"a" &&
			len(in.TagKeys) == 2 && in.TagKeys[0] == "owner" && in.TagKeys[1] == "team"
	}), mock.Anything).Return(&elasticsearchservice.RemoveTagsOutput{}, nil)

	action, err := RemoveTagFactory(client, testDeps())(map[string]any{"tags": []string{"owner", "team"}})
	require.NoError(t, err)

	failures, err := action.Process(context.Background(), testBatch("a"))

	require.NoError(t, err)
	assert.Empty(t, failures)
	client.AssertExpectations(t)
}

func TestRemoveTagRequiresKeys(t *testing.T) {
	client := new(mocks.MockESClient)

	_, err := RemoveTagFactory(client, testDeps())(map[string]any{})

	assert.Error(t, err)
}

func TestMarkForOpEncodesTriggerDate(t *testing.T) {
	client := new(mocks.MockESClient)
	var value string
	client.On("AddTags", mock.Anything, addTagsInputFor("a"), mock.Anything).
		Run(func(args mock.Arguments) {
			in := args.Get(1).(*elasticsearchservice.AddTagsInput)
			if len(in.TagList) == 1 {
				value = aws.ToString(in.TagList[0].Value)
			}
		}).
		Return(&elasticsearchservice.AddTagsOutput{}, nil)

	now := time.Date(2026, 8, 25, 10, 0, 0, 0, time.UTC)
	factory := markForOpFactoryWithClock(client, testDeps(), func() time.Time { return now })
	action, err := factory(map[string]any{"op": "delete", "days": 7})
	require.NoError(t, err)

	failures, err := action.Process(context.Background(), testBatch("a"))

	require.NoError(t, err)
	assert.Empty(t, failures)

	op, date, err := tags.ParseMark(value)
	require.NoError(t, err)
	assert.Equal(t, "delete", op)
	assert.Equal(t, time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC), date)
}

func TestMarkForOpUsesDefaultTagKey(t *testing.T) {
	client := new(mocks.MockESClient)
	client.On("AddTags", mock.Anything, mock.MatchedBy(func(in *elasticsearchservice.AddTagsInput) bool {
		return len(in.TagList) == 1 && aws.ToString(in.TagList[0].Key) == tags.DefaultMarkTag
	}), mock.Anything).Return(&elasticsearchservice.AddTagsOutput{}, nil)

	action, err := MarkForOpFactory(client, testDeps())(map[string]any{"op": "delete"})
	require.NoError(t, err)

	failures, err := action.Process(context.Background(), testBatch("a"))

	require.NoError(t, err)
	assert.Empty(t, failures)
	client.AssertExpectations(t)
}

func TestMarkForOpValidatesOptions(t *testing.T) {
	client := new(mocks.MockESClient)
	factory := MarkForOpFactory(client, testDeps())

	_, err := factory(map[string]any{})
	assert.Error(t, err, "op is required")

	_, err = factory(map[string]any{"op": "delete", "days": -1})
	assert.Error(t, err, "negative days are rejected")
}
