package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/olusolaa/resource-warden/internal/core/domain"
	"github.com/olusolaa/resource-warden/internal/core/ports"
	"github.com/olusolaa/resource-warden/internal/errors"
)

type stubFilter struct {
	name    string
	matches bool
	matchFn func(r *domain.Resource) (bool, error)
	err     error
	calls   int
}

func (f *stubFilter) Name() string          { return f.name }
func (f *stubFilter) Permissions() []string { return []string{"test:" + f.name} }
func (f *stubFilter) Matches(_ context.Context, r *domain.Resource) (bool, error) {
	f.calls++
	if f.matchFn != nil {
		return f.matchFn(r)
	}
	return f.matches, f.err
}

type stubAction struct {
	name     string
	failures []domain.ResourceError
	err      error
	batches  [][]*domain.Resource
}

func (a *stubAction) Name() string          { return a.name }
func (a *stubAction) Permissions() []string { return []string{"test:" + a.name} }
func (a *stubAction) Process(_ context.Context, rs []*domain.Resource) ([]domain.ResourceError, error) {
	a.batches = append(a.batches, rs)
	return a.failures, a.err
}

func stubFilterFactory(f ports.Filter) FilterFactory {
	return func(options map[string]any) (ports.Filter, error) { return f, nil }
}

func stubActionFactory(a ports.Action) ActionFactory {
	return func(options map[string]any) (ports.Action, error) { return a, nil }
}

func TestRegistryBuildsRegisteredFilter(t *testing.T) {
	r := NewPipelineRegistry()
	want := &stubFilter{name: "noop", matches: true}
	require.NoError(t, r.RegisterFilter("noop", stubFilterFactory(want)))

	f, err := r.BuildFilter(map[string]any{"type": "noop"})

	require.NoError(t, err)
	assert.Same(t, want, f)
}

func TestRegistryPassesOptionsWithoutTypeKey(t *testing.T) {
	r := NewPipelineRegistry()
	var seen map[string]any
	require.NoError(t, r.RegisterFilter("probe", func(options map[string]any) (ports.Filter, error) {
		seen = options
		return &stubFilter{name: "probe"}, nil
	}))

	_, err := r.BuildFilter(map[string]any{"type": "probe", "ids": []string{"x"}, "skew": 2})

	require.NoError(t, err)
	assert.Equal(t, map[string]any{"ids": []string{"x"}, "skew": 2}, seen)
	assert.NotContains(t, seen, "type")
}

func TestRegistryRejectsDuplicateRegistration(t *testing.T) {
	r := NewPipelineRegistry()
	require.NoError(t, r.RegisterFilter("noop", stubFilterFactory(&stubFilter{})))

	assert.Error(t, r.RegisterFilter("noop", stubFilterFactory(&stubFilter{})))
}

func TestRegistryRejectsEmptyNameAndNilFactory(t *testing.T) {
	r := NewPipelineRegistry()

	assert.Error(t, r.RegisterFilter("", stubFilterFactory(&stubFilter{})))
	assert.Error(t, r.RegisterFilter("noop", nil))
	assert.Error(t, r.RegisterAction("", stubActionFactory(&stubAction{})))
	assert.Error(t, r.RegisterAction("noop", nil))
}

func TestRegistryUnknownTypeIsUserFacing(t *testing.T) {
	r := NewPipelineRegistry()

	_, err := r.BuildFilter(map[string]any{"type": "nope"})
	require.Error(t, err)
	assert.Equal(t, errors.CodeConfigValidation, errors.GetCode(err))

	_, err = r.BuildAction(map[string]any{"type": "nope"})
	assert.Error(t, err)
}

func TestRegistryRequiresTypeKey(t *testing.T) {
	r := NewPipelineRegistry()

	_, err := r.BuildFilter(map[string]any{"ids": []string{"x"}})
	assert.Error(t, err)

	_, err = r.BuildFilter(map[string]any{"type": 7})
	assert.Error(t, err, "type must be a string")

	_, err = r.BuildFilter(map[string]any{"type": ""})
	assert.Error(t, err)
}

func TestRegistryWrapsFactoryErrors(t *testing.T) {
	r := NewPipelineRegistry()
	require.NoError(t, r.RegisterAction("bad", func(options map[string]any) (ports.Action, error) {
		return nil, errors.New(errors.CodeConfigValidation, "missing required option")
	}))

	_, err := r.BuildAction(map[string]any{"type": "bad"})

	require.Error(t, err)
	assert.Equal(t, errors.CodeConfigValidation, errors.GetCode(err))
	assert.Contains(t, err.Error(), "missing required option")
}

func TestDecodeOptionsRejectsUnknownKeys(t *testing.T) {
	var out struct {
		Op   string `mapstructure:"op"`
		Days int    `mapstructure:"days"`
	}

	err := DecodeOptions(map[string]any{"op": "delete", "dayz": 3}, &out)

	assert.Error(t, err, "typos must surface at construction time")
}

func TestDecodeOptionsMapsKnownKeys(t *testing.T) {
	var out struct {
		Op   string `mapstructure:"op"`
		Days int    `mapstructure:"days"`
	}

	err := DecodeOptions(map[string]any{"op": "delete", "days": 3}, &out)

	require.NoError(t, err)
	assert.Equal(t, "delete", out.Op)
	assert.Equal(t, 3, out.Days)
}
