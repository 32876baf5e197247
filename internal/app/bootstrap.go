package app

import (
	"context"
	"fmt"
	"os"
	"strings"

	awsconfig "github.com/aws/aws-sdk-go-v2/config"
	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"

	"github.com/olusolaa/resource-warden/internal/actions"
	"github.com/olusolaa/resource-warden/internal/adapters/platform/aws/cloudwatch"
	"github.com/olusolaa/resource-warden/internal/adapters/platform/aws/ec2"
	"github.com/olusolaa/resource-warden/internal/adapters/platform/aws/es"
	"github.com/olusolaa/resource-warden/internal/adapters/platform/aws/limiter"
	"github.com/olusolaa/resource-warden/internal/adapters/platform/aws/retry"
	"github.com/olusolaa/resource-warden/internal/config"
	"github.com/olusolaa/resource-warden/internal/core/domain"
	"github.com/olusolaa/resource-warden/internal/core/ports"
	"github.com/olusolaa/resource-warden/internal/core/service"
	"github.com/olusolaa/resource-warden/internal/errors"
	"github.com/olusolaa/resource-warden/internal/filters"
	"github.com/olusolaa/resource-warden/internal/log"
	jsonreport "github.com/olusolaa/resource-warden/internal/reporting/json"
	"github.com/olusolaa/resource-warden/internal/reporting/text"
)

// BuildApplicationFromViper wires the whole engine: config, logger, AWS
// clients, resource manager, filter/action registries, reporter.
func BuildApplicationFromViper(ctx context.Context, v *viper.Viper) (*Application, error) {
	cfg := config.DefaultConfig()
	if err := v.Unmarshal(cfg); err != nil {
		return nil, errors.Wrap(err, errors.CodeConfigParseError, "failed to unmarshal configuration")
	}

	logCfg := log.Config{Level: cfg.Settings.LogLevel, Format: cfg.Settings.LogFormat}
	logger, err := log.NewLogger(logCfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "FATAL: Failed to initialize logger: %v\n", err)
		return nil, errors.Wrap(err, errors.CodeInternal, "logger initialization failed")
	}
	logger.Infof(ctx, "Logger initialized (Level: %s, Format: %s)", cfg.Settings.LogLevel, cfg.Settings.LogFormat)

	validate := validator.New(validator.WithRequiredStructEnabled())
	if err := validate.StructCtx(ctx, cfg); err != nil {
		var errorDetails strings.Builder
		errorDetails.WriteString("Configuration validation failed:")
		validationErrors := err.(validator.ValidationErrors)
		for _, fe := range validationErrors {
			errorDetails.WriteString(fmt.Sprintf("\n - Field '%s': Failed on '%s' validation (value: '%v')", fe.Namespace(), fe.Tag(), fe.Value()))
		}
		wrappedErr := errors.NewUserFacing(errors.CodeConfigValidation, errorDetails.String(), "Please check your configuration file or flags.")
		logger.Errorf(ctx, wrappedErr, "Configuration validation failed")
		return nil, wrappedErr
	}

	if cfg.Policy.Resource != domain.KindElasticsearchDomain {
		return nil, errors.NewUserFacing(errors.CodeConfigValidation,
			fmt.Sprintf("unsupported resource kind '%s'", cfg.Policy.Resource),
			"Supported: elasticsearch")
	}

	limiter.Initialize(cfg.Settings.AWSAPIRPS, logger)

	var loadOpts []func(*awsconfig.LoadOptions) error
	if cfg.Settings.Region != "" {
		loadOpts = append(loadOpts, awsconfig.WithRegion(cfg.Settings.Region))
	}
	awsCfg, err := awsconfig.LoadDefaultConfig(ctx, loadOpts...)
	if err != nil {
		return nil, errors.Wrap(err, errors.CodeConfigValidation, "failed to load default AWS config")
	}

	retryPolicy := retry.New()
	managerLog := logger.WithFields(map[string]any{"component": "manager", "kind": domain.KindElasticsearchDomain})
	manager, err := es.NewDomainManager(ctx, awsCfg, managerLog,
		es.WithRetryPolicy(retryPolicy),
		es.WithChunkSize(cfg.Settings.ChunkSize),
		es.WithWorkers(cfg.Settings.Workers),
	)
	if err != nil {
		return nil, errors.Wrap(err, errors.CodeConfigValidation, "failed to initialize ES domain manager")
	}
	managerLog.Infof(ctx, "ES domain manager bound to account %s, region %s", manager.AccountID(), manager.Region())

	esClient := es.NewClient(awsCfg)
	topo := ec2.NewTopologyResolver(awsCfg, logger.WithFields(map[string]any{"component": "topology"}))
	metricsSrc := cloudwatch.NewSource(awsCfg, logger.WithFields(map[string]any{"component": "metrics"}))

	registry := service.NewPipelineRegistry()
	deps := actions.Deps{
		Descriptor: manager.Descriptor(),
		Limiter:    limiter.Global{},
		Logger:     logger.WithFields(map[string]any{"component": "action"}),
	}
	registrations := []error{
		registry.RegisterFilter("subnet", filters.SubnetFactory(topo)),
		registry.RegisterFilter("security-group", filters.SecurityGroupFactory(topo)),
		registry.RegisterFilter("metrics", filters.MetricsFactory(metricsSrc, manager.Descriptor(), manager.AccountID())),
		registry.RegisterFilter("marked-for-op", filters.MarkedForOpFactory()),
		registry.RegisterAction("delete", actions.DeleteFactory(esClient, deps)),
		registry.RegisterAction("tag", actions.TagFactory(esClient, deps)),
		registry.RegisterAction("remove-tag", actions.RemoveTagFactory(esClient, deps)),
		registry.RegisterAction("mark-for-op", actions.MarkForOpFactory(esClient, deps)),
	}
	for _, regErr := range registrations {
		if regErr != nil {
			return nil, regErr
		}
	}
	logger.Debugf(ctx, "Pipeline registry initialized")

	var reporter ports.Reporter
	switch cfg.Settings.Reporter {
	case jsonreport.ReporterTypeJSON:
		reporter, err = jsonreport.NewReporter(logger.WithFields(map[string]any{"component": "reporter"}))
	case text.ReporterTypeText, "":
		reporter, err = text.NewReporter(text.Config{}, logger.WithFields(map[string]any{"component": "reporter"}))
	default:
		return nil, errors.NewUserFacing(errors.CodeConfigValidation,
			fmt.Sprintf("unsupported reporter type: %s", cfg.Settings.Reporter), "Supported: text, json")
	}
	if err != nil {
		return nil, errors.Wrap(err, errors.CodeInternal, "failed to initialize reporter")
	}

	engine, err := service.NewPolicyEngine(
		registry, manager, reporter,
		logger.WithFields(map[string]any{"component": "engine"}),
		cfg.Policy,
	)
	if err != nil {
		return nil, errors.Wrap(err, errors.CodeInternal, "failed to initialize policy engine")
	}

	if perms, permErr := engine.RequiredPermissions(); permErr == nil {
		logger.Debugf(ctx, "Pipeline requires permissions: %v", perms)
	}

	logger.Infof(ctx, "Application bootstrap complete")
	return NewApplication(engine, logger), nil
}
