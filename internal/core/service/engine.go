package service

import (
	"context"

	"github.com/olusolaa/resource-warden/internal/config"
	"github.com/olusolaa/resource-warden/internal/core/domain"
	"github.com/olusolaa/resource-warden/internal/core/ports"
	"github.com/olusolaa/resource-warden/internal/errors"
)

// PolicyEngine drives one policy run: build the filter/action pipeline,
// enumerate and augment the resource set, apply the filter chain, then
// dispatch each action over the matched batch.
type PolicyEngine struct {
	registry *PipelineRegistry
	manager  ports.ResourceManager
	reporter ports.Reporter
	logger   ports.Logger
	policy   config.PolicyConfig
}

func NewPolicyEngine(
	registry *PipelineRegistry,
	manager ports.ResourceManager,
	reporter ports.Reporter,
	logger ports.Logger,
	policy config.PolicyConfig,
) (*PolicyEngine, error) {
	if registry == nil {
		return nil, errors.New(errors.CodeConfigValidation, "pipeline registry cannot be nil")
	}
	if manager == nil {
		return nil, errors.New(errors.CodeConfigValidation, "resource manager cannot be nil")
	}
	if logger == nil {
		return nil, errors.New(errors.CodeConfigValidation, "logger cannot be nil")
	}

	return &PolicyEngine{
		registry: registry,
		manager:  manager,
		reporter: reporter,
		logger:   logger,
		policy:   policy,
	}, nil
}

// buildPipeline constructs every filter and action up front. Configuration
// errors surface here, before any provider call, so a bad policy never
// leaves a partially-applied batch behind.
func (e *PolicyEngine) buildPipeline() ([]ports.Filter, []ports.Action, error) {
	filters := make([]ports.Filter, 0, len(e.policy.Filters))
	for _, node := range e.policy.Filters {
		f, err := e.registry.BuildFilter(node)
		if err != nil {
			return nil, nil, err
		}
		filters = append(filters, f)
	}

	actions := make([]ports.Action, 0, len(e.policy.Actions))
	for _, node := range e.policy.Actions {
		a, err := e.registry.BuildAction(node)
		if err != nil {
			return nil, nil, err
		}
		actions = append(actions, a)
	}
	return filters, actions, nil
}

// RequiredPermissions aggregates the IAM permission strings the configured
// pipeline declares. Descriptive metadata for policy auditing; nothing is
// enforced here.
func (e *PolicyEngine) RequiredPermissions() ([]string, error) {
	filters, actions, err := e.buildPipeline()
	if err != nil {
		return nil, err
	}

	seen := make(map[string]struct{})
	var perms []string
	add := func(ps []string) {
		for _, p := range ps {
			if _, ok := seen[p]; ok {
				continue
			}
			seen[p] = struct{}{}
			perms = append(perms, p)
		}
	}
	for _, f := range filters {
		add(f.Permissions())
	}
	for _, a := range actions {
		add(a.Permissions())
	}
	return perms, nil
}

func (e *PolicyEngine) Run(ctx context.Context) (*domain.RunResult, error) {
	filters, actions, err := e.buildPipeline()
	if err != nil {
		return nil, err
	}
	e.logger.Infof(ctx, "Policy '%s': %d filters, %d actions", e.policy.Name, len(filters), len(actions))

	// Enumeration and augmentation are all-or-nothing: a failure here is a
	// hard stop with a clear cause, never a partial resource list.
	resources, err := e.manager.ListResources(ctx)
	if err != nil {
		e.logger.Errorf(ctx, err, "Resource enumeration failed")
		return nil, err
	}
	e.logger.Infof(ctx, "Enumerated %d resources of kind %s", len(resources), e.manager.Kind())

	matched, err := e.applyFilters(ctx, filters, resources)
	if err != nil {
		return nil, err
	}

	result := &domain.RunResult{
		Policy:     e.policy.Name,
		Kind:       e.manager.Kind(),
		Enumerated: len(resources),
		Matched:    len(matched),
	}
	idField := e.manager.Descriptor().IDField
	for _, r := range matched {
		result.MatchedIDs = append(result.MatchedIDs, r.StringAttr(idField))
	}
	e.logger.Infof(ctx, "%d of %d resources matched the filter chain", len(matched), len(resources))

	for _, action := range actions {
		failures, actErr := action.Process(ctx, matched)
		if actErr != nil {
			// Whole-batch failure, e.g. missing credentials.
			return nil, errors.Wrap(actErr, errors.CodeActionError,
				"action '"+action.Name()+"' could not process the batch")
		}
		for _, f := range failures {
			e.logger.Warnf(ctx, "Action '%s' failed for resource %s: %v", action.Name(), f.ResourceID, f.Err)
		}
		result.Actions = append(result.Actions, domain.ActionResult{
			Action:    action.Name(),
			Processed: len(matched) - len(failures),
			Failures:  failures,
		})
	}

	if e.reporter != nil {
		if repErr := e.reporter.Report(ctx, result); repErr != nil {
			e.logger.Errorf(ctx, repErr, "Failed to render run report")
		}
	}
	return result, nil
}

// applyFilters keeps the resources every filter accepts, in enumeration
// order. A filter error aborts the run; filters are read-only and cheap to
// re-run, so there is no partial state to preserve.
func (e *PolicyEngine) applyFilters(ctx context.Context, filters []ports.Filter, resources []*domain.Resource) ([]*domain.Resource, error) {
	matched := resources
	for _, f := range filters {
		kept := make([]*domain.Resource, 0, len(matched))
		for _, r := range matched {
			ok, err := f.Matches(ctx, r)
			if err != nil {
				return nil, errors.Wrap(err, errors.CodeFilterError,
					"filter '"+f.Name()+"' failed")
			}
			if ok {
				kept = append(kept, r)
			}
		}
		e.logger.Debugf(ctx, "Filter '%s' kept %d of %d resources", f.Name(), len(kept), len(matched))
		matched = kept
	}
	return matched, nil
}
