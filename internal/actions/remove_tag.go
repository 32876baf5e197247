package actions

import (
	"context"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/elasticsearchservice"

	"github.com/olusolaa/resource-warden/internal/core/domain"
	"github.com/olusolaa/resource-warden/internal/core/ports"
	"github.com/olusolaa/resource-warden/internal/core/service"
	"github.com/olusolaa/resource-warden/internal/errors"
)

type removeTagOptions struct {
	Tags []string `mapstructure:"tags"`
}

type removeTagAction struct {
	client UntagAPI
	deps   Deps
	keys   []string
}

func (a *removeTagAction) Name() string {
	return "remove-tag"
}

func (a *removeTagAction) Permissions() []string {
	return []string{"es:RemoveTags"}
}

func (a *removeTagAction) Process(ctx context.Context, resources []*domain.Resource) ([]domain.ResourceError, error) {
	return forEachResource(ctx, a.deps, a.Name(), resources, func(ctx context.Context, r *domain.Resource) error {
		rarn, err := resourceARN(r, a.deps)
		if err != nil {
			return err
		}
		_, err = a.client.RemoveTags(ctx, &elasticsearchservice.RemoveTagsInput{
			ARN:     aws.String(rarn),
			TagKeys: a.keys,
		})
		return err
	})
}

func RemoveTagFactory(client UntagAPI, deps Deps) service.ActionFactory {
	return func(options map[string]any) (ports.Action, error) {
		var o removeTagOptions
		if err := service.DecodeOptions(options, &o); err != nil {
			return nil, err
		}
		if len(o.Tags) == 0 {
			return nil, errors.New(errors.CodeConfigValidation, "remove-tag action requires a non-empty 'tags' list")
		}
		if err := deps.validate(); err != nil {
			return nil, err
		}
		return &removeTagAction{client: client, deps: deps, keys: o.Tags}, nil
	}
}
