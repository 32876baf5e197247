package es

import (
	"context"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/elasticsearchservice"
	"github.com/aws/aws-sdk-go-v2/service/sts"

	"github.com/olusolaa/resource-warden/internal/adapters/platform/aws/arn"
	awserrors "github.com/olusolaa/resource-warden/internal/adapters/platform/aws/errors"
	"github.com/olusolaa/resource-warden/internal/adapters/platform/aws/limiter"
	"github.com/olusolaa/resource-warden/internal/adapters/platform/aws/retry"
	"github.com/olusolaa/resource-warden/internal/adapters/platform/aws/shared"
	"github.com/olusolaa/resource-warden/internal/core/domain"
	"github.com/olusolaa/resource-warden/internal/core/ports"
	apperrors "github.com/olusolaa/resource-warden/internal/errors"
)

const (
	// defaultChunkSize bounds how many domains one describe call covers.
	defaultChunkSize = 5
	// defaultWorkers serializes chunk processing. The ES control plane has
	// a strict per-account rate limit; chunks are independent, so this can
	// be raised once the limit is confirmed to tolerate parallel calls.
	defaultWorkers = 1
)

// DomainManager enumerates and augments Elasticsearch domains for one
// account+region binding.
type DomainManager struct {
	client    ESClientInterface
	stsClient shared.STSClientInterface
	limiter   shared.RateLimiter
	retry     *retry.Policy
	logger    ports.Logger

	arnGen    *arn.Generator
	accountID string
	region    string
	chunkSize int
	workers   int
}

type Option func(*DomainManager)

func WithClient(c ESClientInterface) Option {
	return func(m *DomainManager) { m.client = c }
}

func WithSTSClient(c shared.STSClientInterface) Option {
	return func(m *DomainManager) { m.stsClient = c }
}

// WithAccountID skips the STS caller-identity lookup.
func WithAccountID(id string) Option {
	return func(m *DomainManager) { m.accountID = id }
}

func WithRateLimiter(l shared.RateLimiter) Option {
	return func(m *DomainManager) { m.limiter = l }
}

func WithRetryPolicy(p *retry.Policy) Option {
	return func(m *DomainManager) { m.retry = p }
}

func WithChunkSize(n int) Option {
	return func(m *DomainManager) {
		if n > 0 {
			m.chunkSize = n
		}
	}
}

func WithWorkers(n int) Option {
	return func(m *DomainManager) {
		if n > 0 {
			m.workers = n
		}
	}
}

// NewDomainManager builds a manager bound to the config's account and
// region. The ARN generator is constructed eagerly here so later lookups
// are pure and need no locking.
func NewDomainManager(ctx context.Context, cfg aws.Config, logger ports.Logger, opts ...Option) (*DomainManager, error) {
	if logger == nil {
		return nil, apperrors.New(apperrors.CodeConfigValidation, "logger cannot be nil for ES domain manager")
	}

	m := &DomainManager{
		logger:    logger,
		limiter:   limiter.Global{},
		retry:     retry.New(),
		region:    cfg.Region,
		chunkSize: defaultChunkSize,
		workers:   defaultWorkers,
	}
	for _, opt := range opts {
		opt(m)
	}

	if m.client == nil {
		m.client = elasticsearchservice.NewFromConfig(cfg)
	}
	if m.stsClient == nil {
		m.stsClient = sts.NewFromConfig(cfg)
	}

	if m.accountID == "" {
		if err := m.resolveAccountID(ctx); err != nil {
			return nil, err
		}
	}

	m.arnGen = arn.NewGenerator(
		DomainDescriptor.Service, m.region, m.accountID,
		DomainDescriptor.ARNResourceType, DomainDescriptor.ARNSeparator)

	return m, nil
}

func (m *DomainManager) resolveAccountID(ctx context.Context) error {
	if err := m.limiter.Wait(ctx, m.logger); err != nil {
		return err
	}
	out, err := m.stsClient.GetCallerIdentity(ctx, &sts.GetCallerIdentityInput{})
	if err != nil {
		return awserrors.Classify("sts", "GetCallerIdentity", err, ctx)
	}
	if out.Account == nil {
		return apperrors.New(apperrors.CodePlatformAPIError, "AWS caller identity response did not contain Account ID")
	}
	m.accountID = *out.Account
	return nil
}

func (m *DomainManager) Kind() domain.ResourceKind {
	return DomainDescriptor.Kind
}

func (m *DomainManager) Descriptor() *domain.Descriptor {
	return DomainDescriptor
}

func (m *DomainManager) AccountID() string {
	return m.accountID
}

func (m *DomainManager) Region() string {
	return m.region
}

// GenerateARN derives the domain ARN for an id. Pure lookup against the
// generator built at construction time.
func (m *DomainManager) GenerateARN(id string) string {
	return m.arnGen.ARN(id)
}

// ListResources enumerates every domain name in the account+region (the ES
// enumeration call is unpaginated) and runs the augmentation pipeline over
// the full id list.
func (m *DomainManager) ListResources(ctx context.Context) ([]*domain.Resource, error) {
	if err := m.limiter.Wait(ctx, m.logger); err != nil {
		return nil, err
	}

	out, err := m.client.ListDomainNames(ctx, &elasticsearchservice.ListDomainNamesInput{})
	if err != nil {
		return nil, awserrors.Classify(DomainDescriptor.Service, DomainDescriptor.EnumOp, err, ctx)
	}

	names := make([]string, 0, len(out.DomainNames))
	for _, info := range out.DomainNames {
		if info.DomainName != nil {
			names = append(names, *info.DomainName)
		}
	}
	m.logger.Debugf(ctx, "Enumerated %d ES domains", len(names))

	return m.augment(ctx, names)
}

// GetResources describes the given domain names directly, without
// re-deriving from the full list. Records are not augmented: Tags stay
// empty. Targeted re-checks don't need them; callers that do should go
// through ListResources.
func (m *DomainManager) GetResources(ctx context.Context, ids []string) ([]*domain.Resource, error) {
	if len(ids) == 0 {
		return []*domain.Resource{}, nil
	}

	if err := m.limiter.Wait(ctx, m.logger); err != nil {
		return nil, err
	}
	out, err := m.client.DescribeElasticsearchDomains(ctx, &elasticsearchservice.DescribeElasticsearchDomainsInput{
		DomainNames: ids,
	})
	if err != nil {
		return nil, awserrors.Classify(DomainDescriptor.Service, "DescribeElasticsearchDomains", err, ctx)
	}

	resources := make([]*domain.Resource, 0, len(out.DomainStatusList))
	for _, status := range out.DomainStatusList {
		r, mapErr := mapDomainStatus(status)
		if mapErr != nil {
			m.logger.Errorf(ctx, mapErr, "Failed to map ES domain status, skipping")
			continue
		}
		resources = append(resources, r)
	}
	return resources, nil
}
