package es

import (
	"context"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/elasticsearchservice"
	"golang.org/x/sync/errgroup"

	awserrors "github.com/olusolaa/resource-warden/internal/adapters/platform/aws/errors"
	"github.com/olusolaa/resource-warden/internal/core/domain"
)

// augment partitions the enumerated ids into chunks, fetches full records
// and tags per chunk under the retry policy, and merges the results back
// preserving chunk submission order and within-chunk provider order.
// Augmentation is all-or-nothing per chunk: a chunk that exhausts retries
// fails the whole call rather than returning a partial list.
func (m *DomainManager) augment(ctx context.Context, ids []string) ([]*domain.Resource, error) {
	if len(ids) == 0 {
		return []*domain.Resource{}, nil
	}

	batches := chunk(ids, m.chunkSize)
	results := make([][]*domain.Resource, len(batches))

	// Chunks share no mutable state, so any worker count is safe. The
	// default of 1 keeps the call pattern conservative against the ES
	// per-account rate limit.
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(m.workers)
	for i, batch := range batches {
		g.Go(func() error {
			rs, err := m.augmentChunk(gctx, batch)
			if err != nil {
				return err
			}
			results[i] = rs
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	merged := make([]*domain.Resource, 0, len(ids))
	for _, rs := range results {
		merged = append(merged, rs...)
	}
	return merged, nil
}

func (m *DomainManager) augmentChunk(ctx context.Context, ids []string) ([]*domain.Resource, error) {
	var describeOut *elasticsearchservice.DescribeElasticsearchDomainsOutput
	err := m.retry.Execute(ctx, func() error {
		if err := m.limiter.Wait(ctx, m.logger); err != nil {
			return err
		}
		var callErr error
		describeOut, callErr = m.client.DescribeElasticsearchDomains(ctx, &elasticsearchservice.DescribeElasticsearchDomainsInput{
			DomainNames: ids,
		})
		return callErr
	})
	if err != nil {
		return nil, awserrors.Classify(DomainDescriptor.Service, "DescribeElasticsearchDomains", err, ctx)
	}

	resources := make([]*domain.Resource, 0, len(describeOut.DomainStatusList))
	for _, status := range describeOut.DomainStatusList {
		r, mapErr := mapDomainStatus(status)
		if mapErr != nil {
			m.logger.Errorf(ctx, mapErr, "Failed to map ES domain status, skipping")
			continue
		}

		rarn := m.GenerateARN(r.StringAttr(DomainDescriptor.IDField))
		r.ARN = rarn
		r.Attrs["ARN"] = rarn

		var tagsOut *elasticsearchservice.ListTagsOutput
		err := m.retry.Execute(ctx, func() error {
			if err := m.limiter.Wait(ctx, m.logger); err != nil {
				return err
			}
			var callErr error
			tagsOut, callErr = m.client.ListTags(ctx, &elasticsearchservice.ListTagsInput{
				ARN: aws.String(rarn),
			})
			return callErr
		})
		if err != nil {
			return nil, awserrors.Classify(DomainDescriptor.Service, "ListTags", err, ctx)
		}
		r.Tags = mapTags(tagsOut.TagList)

		resources = append(resources, r)
	}
	return resources, nil
}

// chunk splits ids into batches of at most size, preserving order.
func chunk(ids []string, size int) [][]string {
	if size <= 0 {
		size = defaultChunkSize
	}
	batches := make([][]string, 0, (len(ids)+size-1)/size)
	for start := 0; start < len(ids); start += size {
		end := start + size
		if end > len(ids) {
			end = len(ids)
		}
		batches = append(batches, ids[start:end])
	}
	return batches
}
