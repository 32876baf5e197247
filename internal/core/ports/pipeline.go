package ports

import (
	"context"

	"github.com/olusolaa/resource-warden/internal/core/domain"
)

// Filter is a pure predicate over a resource record snapshot. Filters must
// not mutate the record.
type Filter interface {
	Name() string
	// Permissions lists the IAM permission strings the filter needs.
	// Descriptive metadata only; nothing is enforced at runtime.
	Permissions() []string
	Matches(ctx context.Context, r *domain.Resource) (bool, error)
}

// Action is a mutating operation over a resource batch. A non-nil error
// means the whole batch could not proceed; per-resource provider failures
// are returned in the ResourceError slice and never abort the loop.
type Action interface {
	Name() string
	Permissions() []string
	Process(ctx context.Context, resources []*domain.Resource) ([]domain.ResourceError, error)
}
