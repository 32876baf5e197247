package service

import (
	"fmt"
	"sync"

	"github.com/go-viper/mapstructure/v2"

	"github.com/olusolaa/resource-warden/internal/core/ports"
	"github.com/olusolaa/resource-warden/internal/errors"
)

// FilterFactory builds a filter instance from the option map of one policy
// node (the node minus its "type" key). Factories validate their options
// and fail fast, so bad configuration surfaces before any provider call.
type FilterFactory func(options map[string]any) (ports.Filter, error)

type ActionFactory func(options map[string]any) (ports.Action, error)

// PipelineRegistry maps policy node type names to factories. Registration
// happens once at bootstrap; afterwards the registry is only read.
type PipelineRegistry struct {
	mu      sync.RWMutex
	filters map[string]FilterFactory
	actions map[string]ActionFactory
}

func NewPipelineRegistry() *PipelineRegistry {
	return &PipelineRegistry{
		filters: make(map[string]FilterFactory),
		actions: make(map[string]ActionFactory),
	}
}

func (r *PipelineRegistry) RegisterFilter(name string, factory FilterFactory) error {
	if name == "" {
		return errors.New(errors.CodeInternal, "filter name cannot be empty")
	}
	if factory == nil {
		return errors.New(errors.CodeInternal, "attempted to register nil filter factory")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.filters[name]; exists {
		return errors.New(errors.CodeInternal, fmt.Sprintf("filter type '%s' already registered", name))
	}
	r.filters[name] = factory
	return nil
}

func (r *PipelineRegistry) RegisterAction(name string, factory ActionFactory) error {
	if name == "" {
		return errors.New(errors.CodeInternal, "action name cannot be empty")
	}
	if factory == nil {
		return errors.New(errors.CodeInternal, "attempted to register nil action factory")
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.actions[name]; exists {
		return errors.New(errors.CodeInternal, fmt.Sprintf("action type '%s' already registered", name))
	}
	r.actions[name] = factory
	return nil
}

// BuildFilter resolves one policy node of the form {type: <name>, ...opts}.
func (r *PipelineRegistry) BuildFilter(node map[string]any) (ports.Filter, error) {
	name, options, err := splitNode(node)
	if err != nil {
		return nil, err
	}

	r.mu.RLock()
	factory, exists := r.filters[name]
	r.mu.RUnlock()
	if !exists {
		return nil, errors.NewUserFacing(errors.CodeConfigValidation,
			fmt.Sprintf("unknown filter type '%s'", name), "Check the policy filters section.")
	}

	f, err := factory(options)
	if err != nil {
		return nil, errors.Wrap(err, errors.CodeConfigValidation,
			fmt.Sprintf("invalid options for filter '%s'", name))
	}
	return f, nil
}

func (r *PipelineRegistry) BuildAction(node map[string]any) (ports.Action, error) {
	name, options, err := splitNode(node)
	if err != nil {
		return nil, err
	}

	r.mu.RLock()
	factory, exists := r.actions[name]
	r.mu.RUnlock()
	if !exists {
		return nil, errors.NewUserFacing(errors.CodeConfigValidation,
			fmt.Sprintf("unknown action type '%s'", name), "Check the policy actions section.")
	}

	a, err := factory(options)
	if err != nil {
		return nil, errors.Wrap(err, errors.CodeConfigValidation,
			fmt.Sprintf("invalid options for action '%s'", name))
	}
	return a, nil
}

func splitNode(node map[string]any) (string, map[string]any, error) {
	raw, ok := node["type"]
	if !ok {
		return "", nil, errors.NewUserFacing(errors.CodeConfigValidation,
			"policy node is missing the 'type' key", "Every filter/action node needs a type.")
	}
	name, ok := raw.(string)
	if !ok || name == "" {
		return "", nil, errors.NewUserFacing(errors.CodeConfigValidation,
			"policy node 'type' must be a non-empty string", "Every filter/action node needs a type.")
	}

	options := make(map[string]any, len(node))
	for k, v := range node {
		if k == "type" {
			continue
		}
		options[k] = v
	}
	return name, options, nil
}

// DecodeOptions maps a policy node's options onto a typed options struct.
// Unknown keys are an error so typos surface at construction time.
func DecodeOptions(options map[string]any, out any) error {
	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:      out,
		ErrorUnused: true,
		TagName:     "mapstructure",
	})
	if err != nil {
		return errors.Wrap(err, errors.CodeInternal, "failed to build option decoder")
	}
	if err := decoder.Decode(options); err != nil {
		return errors.Wrap(err, errors.CodeConfigValidation, "failed to decode options")
	}
	return nil
}
