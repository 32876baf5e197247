package actions

import (
	"context"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/elasticsearchservice"
	"github.com/aws/aws-sdk-go-v2/service/elasticsearchservice/types"

	"github.com/olusolaa/resource-warden/internal/core/domain"
	"github.com/olusolaa/resource-warden/internal/core/ports"
	"github.com/olusolaa/resource-warden/internal/core/service"
	"github.com/olusolaa/resource-warden/internal/errors"
	"github.com/olusolaa/resource-warden/internal/tags"
)

type markForOpOptions struct {
	Op   string `mapstructure:"op"`
	Tag  string `mapstructure:"tag"`
	Days int    `mapstructure:"days"`
}

// markForOpAction tags each record with a sentinel encoding a deferred
// operation and its trigger date. Functionally a tag action: the delayed
// vocabulary builds the value, this action just adds the tag per record
// with the usual isolation.
type markForOpAction struct {
	client  TagAPI
	deps    Deps
	tagList []types.Tag
}

func (a *markForOpAction) Name() string {
	return "mark-for-op"
}

func (a *markForOpAction) Permissions() []string {
	return []string{"es:AddTags"}
}

func (a *markForOpAction) Process(ctx context.Context, resources []*domain.Resource) ([]domain.ResourceError, error) {
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

func MarkForOpFactory(client TagAPI, deps Deps) service.ActionFactory {
	return markForOpFactoryWithClock(client, deps, time.Now)
}

func markForOpFactoryWithClock(client TagAPI, deps Deps, now func() time.Time) service.ActionFactory {
	return func(options map[string]any) (ports.Action, error) {
		o := markForOpOptions{Tag: tags.DefaultMarkTag}
		if err := service.DecodeOptions(options, &o); err != nil {
			return nil, err
		}
		if o.Op == "" {
			return nil, errors.New(errors.CodeConfigValidation, "mark-for-op action requires 'op'")
		}
		if o.Days < 0 {
			return nil, errors.New(errors.CodeConfigValidation, "mark-for-op 'days' cannot be negative")
		}
		if err := deps.validate(); err != nil {
			return nil, err
		}

		// The trigger date and value are fixed at construction so repeated
		// Process calls stay idempotent on the provider side.
		date := now().UTC().Add(time.Duration(o.Days) * 24 * time.Hour)
		value := tags.EncodeMark(o.Op, date)
		return &markForOpAction{
			client: client,
			deps:   deps,
			tagList: []types.Tag{{
				Key:   aws.String(o.Tag),
				Value: aws.String(value),
			}},
		}, nil
	}
}
