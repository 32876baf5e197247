package es

import (
	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/elasticsearchservice"
)

// NewClient builds the concrete Elasticsearch Service client shared by the
// manager and the action layer.
func NewClient(cfg aws.Config) *elasticsearchservice.Client {
	return elasticsearchservice.NewFromConfig(cfg)
}
