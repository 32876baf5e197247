package actions

import (
	"context"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/elasticsearchservice"

	"github.com/olusolaa/resource-warden/internal/core/domain"
	"github.com/olusolaa/resource-warden/internal/core/ports"
	"github.com/olusolaa/resource-warden/internal/core/service"
)

type deleteAction struct {
	client DeleteAPI
	deps   Deps
}

func (a *deleteAction) Name() string {
	return "delete"
}

func (a *deleteAction) Permissions() []string {
	return []string{"es:DeleteElasticsearchDomain"}
}

// Process deletes each domain by id. No batching: one call per record,
// failures logged and folded, the loop keeps going.
func (a *deleteAction) Process(ctx context.Context, resources []*domain.Resource) ([]domain.ResourceError, error) {
	return forEachResource(ctx, a.deps, a.Name(), resources, func(ctx context.Context, r *domain.Resource) error {
		_, err := a.client.DeleteElasticsearchDomain(ctx, &elasticsearchservice.DeleteElasticsearchDomainInput{
			DomainName: aws.String(r.StringAttr(a.deps.Descriptor.IDField)),
		})
		return err
	})
}

func DeleteFactory(client DeleteAPI, deps Deps) service.ActionFactory {
	return func(options map[string]any) (ports.Action, error) {
		var o struct{}
		if err := service.DecodeOptions(options, &o); err != nil {
			return nil, err
		}
		if err := deps.validate(); err != nil {
			return nil, err
		}
		return &deleteAction{client: client, deps: deps}, nil
	}
}
