package es

import (
	"context"

	"github.com/aws/aws-sdk-go-v2/service/elasticsearchservice"
)

// ESClientInterface defines the Elasticsearch Service SDK surface the
// manager and actions consume, so tests can substitute a mock.
type ESClientInterface interface {
	ListDomainNames(ctx context.Context, params *elasticsearchservice.ListDomainNamesInput, optFns ...func(*elasticsearchservice.Options)) (*elasticsearchservice.ListDomainNamesOutput, error)
	DescribeElasticsearchDomains(ctx context.Context, params *elasticsearchservice.DescribeElasticsearchDomainsInput, optFns ...func(*elasticsearchservice.Options)) (*elasticsearchservice.DescribeElasticsearchDomainsOutput, error)
	ListTags(ctx context.Context, params *elasticsearchservice.ListTagsInput, optFns ...func(*elasticsearchservice.Options)) (*elasticsearchservice.ListTagsOutput, error)
	AddTags(ctx context.Context, params *elasticsearchservice.AddTagsInput, optFns ...func(*elasticsearchservice.Options)) (*elasticsearchservice.AddTagsOutput, error)
	RemoveTags(ctx context.Context, params *elasticsearchservice.RemoveTagsInput, optFns ...func(*elasticsearchservice.Options)) (*elasticsearchservice.RemoveTagsOutput, error)
	DeleteElasticsearchDomain(ctx context.Context, params *elasticsearchservice.DeleteElasticsearchDomainInput, optFns ...func(*elasticsearchservice.Options)) (*elasticsearchservice.DeleteElasticsearchDomainOutput, error)
}
