// Package actions holds the mutating operations dispatched by the pipeline
// registry. Every action processes a full resource batch and isolates
// per-resource provider failures: one bad resource never aborts its
// siblings. Failures are accumulated and returned, not raised.
package actions

import (
	"context"

	"github.com/aws/aws-sdk-go-v2/service/elasticsearchservice"

	awserrors "github.com/olusolaa/resource-warden/internal/adapters/platform/aws/errors"
	"github.com/olusolaa/resource-warden/internal/adapters/platform/aws/shared"
	"github.com/olusolaa/resource-warden/internal/core/domain"
	"github.com/olusolaa/resource-warden/internal/core/ports"
	"github.com/olusolaa/resource-warden/internal/errors"
)

// Client interfaces are scoped per operation so tests and IAM audits see
// exactly what each action touches.

type TagAPI interface {
	AddTags(ctx context.Context, params *elasticsearchservice.AddTagsInput, optFns ...func(*elasticsearchservice.Options)) (*elasticsearchservice.AddTagsOutput, error)
}

type UntagAPI interface {
	RemoveTags(ctx context.Context, params *elasticsearchservice.RemoveTagsInput, optFns ...func(*elasticsearchservice.Options)) (*elasticsearchservice.RemoveTagsOutput, error)
}

type DeleteAPI interface {
	DeleteElasticsearchDomain(ctx context.Context, params *elasticsearchservice.DeleteElasticsearchDomainInput, optFns ...func(*elasticsearchservice.Options)) (*elasticsearchservice.DeleteElasticsearchDomainOutput, error)
}

// Deps carries the collaborators every action shares.
type Deps struct {
	Descriptor *domain.Descriptor
	Limiter    shared.RateLimiter
	Logger     ports.Logger
}

func (d Deps) validate() error {
	if d.Descriptor == nil {
		return errors.New(errors.CodeInternal, "action deps missing descriptor")
	}
	if d.Limiter == nil {
		return errors.New(errors.CodeInternal, "action deps missing rate limiter")
	}
	if d.Logger == nil {
		return errors.New(errors.CodeInternal, "action deps missing logger")
	}
	return nil
}

// forEachResource runs op per record, folding per-resource failures into
// the returned slice while the loop continues. Only context cancellation
// stops the batch, surfaced as the batch-level error.
func forEachResource(
	ctx context.Context,
	deps Deps,
	actionName string,
	resources []*domain.Resource,
	op func(ctx context.Context, r *domain.Resource) error,
) ([]domain.ResourceError, error) {
	var failures []domain.ResourceError
	for _, r := range resources {
		if ctx.Err() != nil {
			return failures, errors.Wrap(ctx.Err(), errors.CodeActionError,
				"batch aborted by context during action '"+actionName+"'")
		}

		id := r.StringAttr(deps.Descriptor.IDField)
		if err := deps.Limiter.Wait(ctx, deps.Logger); err != nil {
			return failures, errors.Wrap(err, errors.CodeActionError,
				"rate limiter failed during action '"+actionName+"'")
		}
		if err := op(ctx, r); err != nil {
			classified := awserrors.Classify(deps.Descriptor.Service, actionName, err, ctx)
			deps.Logger.Errorf(ctx, classified, "Action '%s' failed for resource %s, continuing", actionName, id)
			failures = append(failures, domain.ResourceError{ResourceID: id, Err: classified})
			continue
		}
	}
	return failures, nil
}

// resourceARN returns the record's ARN, which augmentation assigned. A
// record without one (e.g. fetched via a targeted describe) cannot be
// addressed by the tagging APIs.
func resourceARN(r *domain.Resource, deps Deps) (string, error) {
	if r.ARN != "" {
		return r.ARN, nil
	}
	return "", errors.New(errors.CodeInternal,
		"resource "+r.StringAttr(deps.Descriptor.IDField)+" has no ARN; was it augmented?")
}
