package broken

import (
	"context"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/lookbench/lookaudit/internal/lookerapi"
	"github.com/lookbench/lookaudit/internal/report"
)

const (
	commandNameConstant     = "broken"
	commandShortDescription = "Report catalog content failing the content validator"
	commandLongDescription  = "broken runs the Looker content validator and emits a CSV report of every dashboard and look with unresolved errors, enriched with folder and usage context."
	flagProfileName         = "profile"
	flagProfileDescription  = "Path to the Looker connection profile (YAML)."
	flagOutputName          = "output"
	flagOutputDescription   = "Destination file for the CSV report (defaults to stdout)."
	flagDebugName           = "debug"
	flagDebugDescription    = "Print collection diagnostics to stderr."
)

// LoggerProvider supplies a zap logger for command execution.
type LoggerProvider func() *zap.Logger

// ConfigurationProvider supplies persisted configuration for the command.
type ConfigurationProvider func() CommandConfiguration

// CommandBuilder assembles the broken cobra command with configurable
// dependencies. Source fields left nil are backed by a Looker API client
// built from the connection profile.
type CommandBuilder struct {
	LoggerProvider        LoggerProvider
	ConfigurationProvider ConfigurationProvider
	ValidationSource      ValidationSource
	UsageSource           UsageSource
	HierarchySource       HierarchySource
	ReportBaseURL         string
}

// Build constructs the cobra command for the broken-content report.
func (builder *CommandBuilder) Build() (*cobra.Command, error) {
	command := &cobra.Command{
		Use:   commandNameConstant,
		Short: commandShortDescription,
		Long:  commandLongDescription,
		RunE:  builder.run,
	}

	command.Flags().String(flagProfileName, "", flagProfileDescription)
	command.Flags().String(flagOutputName, "", flagOutputDescription)
	command.Flags().Bool(flagDebugName, false, flagDebugDescription)

	return command, nil
}

func (builder *CommandBuilder) run(command *cobra.Command, arguments []string) error {
	options := builder.parseOptions(command)

	sources, baseURL, sourcesError := builder.resolveSources(command.Context(), options.ProfilePath)
	if sourcesError != nil {
		return sourcesError
	}

	outputWriter, closeOutput, outputError := report.ResolveDestination(command.OutOrStdout(), options.OutputPath)
	if outputError != nil {
		return outputError
	}
	defer closeOutput()

	service := NewService(
		sources.validation,
		sources.usage,
		sources.hierarchy,
		outputWriter,
		command.ErrOrStderr(),
		builder.resolveLogger(),
	)
	return service.Run(command.Context(), options, baseURL)
}

func (builder *CommandBuilder) parseOptions(command *cobra.Command) CommandOptions {
	configuration := DefaultCommandConfiguration()
	if builder.ConfigurationProvider != nil {
		configuration = builder.ConfigurationProvider()
	}
	configuration = configuration.sanitize()

	options := CommandOptions{
		ProfilePath: configuration.ProfilePath,
		OutputPath:  configuration.Output,
	}

	if command.Flags().Changed(flagProfileName) {
		options.ProfilePath, _ = command.Flags().GetString(flagProfileName)
	}
	if command.Flags().Changed(flagOutputName) {
		options.OutputPath, _ = command.Flags().GetString(flagOutputName)
	}
	options.DebugOutput, _ = command.Flags().GetBool(flagDebugName)

	return options
}

type resolvedSources struct {
	validation ValidationSource
	usage      UsageSource
	hierarchy  HierarchySource
}

func (builder *CommandBuilder) resolveSources(executionContext context.Context, profilePath string) (resolvedSources, string, error) {
	sources := resolvedSources{
		validation: builder.ValidationSource,
		usage:      builder.UsageSource,
		hierarchy:  builder.HierarchySource,
	}

	if sources.validation != nil && sources.usage != nil && sources.hierarchy != nil {
		return sources, builder.ReportBaseURL, nil
	}

	profile, profileError := lookerapi.LoadProfile(profilePath)
	if profileError != nil {
		return resolvedSources{}, "", profileError
	}

	client := lookerapi.NewClient(profile, nil)
	if loginError := client.Login(executionContext); loginError != nil {
		return resolvedSources{}, "", loginError
	}

	if sources.validation == nil {
		sources.validation = client
	}
	if sources.usage == nil {
		sources.usage = client
	}
	if sources.hierarchy == nil {
		sources.hierarchy = client
	}
	return sources, profile.ReportBaseURL(), nil
}

func (builder *CommandBuilder) resolveLogger() *zap.Logger {
	if builder.LoggerProvider == nil {
		return zap.NewNop()
	}
	logger := builder.LoggerProvider()
	if logger == nil {
		return zap.NewNop()
	}
	return logger
}
