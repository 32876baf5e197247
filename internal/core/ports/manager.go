package ports

import (
	"context"

	"github.com/olusolaa/resource-warden/internal/core/domain"
)

// ResourceManager enumerates and augments resources of one kind.
type ResourceManager interface {
	Kind() domain.ResourceKind
	Descriptor() *domain.Descriptor

	// ListResources enumerates every resource of the kind and runs the
	// augmentation pipeline, so returned records carry ARN and Tags.
	ListResources(ctx context.Context) ([]*domain.Resource, error)

	// GetResources describes the given ids directly. Records are not
	// augmented: Tags stay empty. Targeted lookups don't need them.
	GetResources(ctx context.Context, ids []string) ([]*domain.Resource, error)

	// GenerateARN derives the ARN for an id. Deterministic, safe for
	// concurrent use.
	GenerateARN(id string) string

	AccountID() string
	Region() string
}
