package ports

import (
	"context"

	"github.com/olusolaa/resource-warden/internal/core/domain"
)

type Reporter interface {
	Report(ctx context.Context, result *domain.RunResult) error
}

type PolicyEngine interface {
	Run(ctx context.Context) (*domain.RunResult, error)
}
