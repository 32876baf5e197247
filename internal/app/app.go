package app

import (
	"context"

	"github.com/olusolaa/resource-warden/internal/core/ports"
)

// Application runs one configured policy to completion.
type Application struct {
	Engine ports.PolicyEngine
	Logger ports.Logger
}

func NewApplication(engine ports.PolicyEngine, logger ports.Logger) *Application {
	return &Application{
		Engine: engine,
		Logger: logger,
	}
}

// Run executes the policy. Per-resource action failures do not fail the
// run; they are reported in the result. Only enumeration, augmentation,
// filter, or whole-batch action errors surface here.
func (a *Application) Run(ctx context.Context) error {
	a.Logger.Infof(ctx, "Starting policy run...")

	result, err := a.Engine.Run(ctx)
	if err != nil {
		a.Logger.Errorf(ctx, err, "Policy run failed")
		return err
	}

	if n := result.FailureCount(); n > 0 {
		a.Logger.Warnf(ctx, "Policy run completed with %d per-resource failures", n)
	} else {
		a.Logger.Infof(ctx, "Policy run completed successfully")
	}
	return nil
}
