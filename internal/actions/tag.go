package actions

import (
	"context"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/elasticsearchservice"
	"github.com/aws/aws-sdk-go-v2/service/elasticsearchservice/types"

	"github.com/olusolaa/resource-warden/internal/core/domain"
	"github.com/olusolaa/resource-warden/internal/core/ports"
	"github.com/olusolaa/resource-warden/internal/core/service"
	"github.com/olusolaa/resource-warden/internal/errors"
)

type tagOptions struct {
	Key   string            `mapstructure:"key"`
	Value string            `mapstructure:"value"`
	Tags  map[string]string `mapstructure:"tags"`
}

type tagAction struct {
	client  TagAPI
	deps    Deps
	tagList []types.Tag
}

func (a *tagAction) Name() string {
	return "tag"
}

func (a *tagAction) Permissions() []string {
	return []string{"es:AddTags"}
}

// Process adds the configured tags to each record's ARN. The tag list is
// built once at construction, so identical calls send identical requests
// and the provider treats repeats as no-ops.
func (a *tagAction) Process(ctx context.Context, resources []*domain.Resource) ([]domain.ResourceError, error) {
	return forEachResource(ctx, a.deps, a.Name(), resources, func(ctx context.Context, r *domain.Resource) error {
		rarn, err := resourceARN(r, a.deps)
		if err != nil {
			return err
		}
		_, err = a.client.AddTags(ctx, &elasticsearchservice.AddTagsInput{
			ARN:     aws.String(rarn),
			TagList: a.tagList,
		})
		return err
	})
}

func buildTagList(o tagOptions) ([]types.Tag, error) {
	var list []types.Tag
	if o.Key != "" {
		list = append(list, types.Tag{Key: aws.String(o.Key), Value: aws.String(o.Value)})
	}
	for k, v := range o.Tags {
		list = append(list, types.Tag{Key: aws.String(k), Value: aws.String(v)})
	}
	if len(list) == 0 {
		return nil, errors.New(errors.CodeConfigValidation, "tag action requires 'key'/'value' or a 'tags' map")
	}
	return list, nil
}

func TagFactory(client TagAPI, deps Deps) service.ActionFactory {
	return func(options map[string]any) (ports.Action, error) {
		var o tagOptions
		if err := service.DecodeOptions(options, &o); err != nil {
			return nil, err
		}
		list, err := buildTagList(o)
		if err != nil {
			return nil, err
		}
		if err := deps.validate(); err != nil {
			return nil, err
		}
		return &tagAction{client: client, deps: deps, tagList: list}, nil
	}
}
