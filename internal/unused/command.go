package unused

import (
	"context"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/lookbench/lookaudit/internal/lookerapi"
	"github.com/lookbench/lookaudit/internal/report"
)

const (
	commandNameConstant     = "unused"
	commandShortDescription = "Report catalog content not accessed within a threshold"
	commandLongDescription  = "unused queries the Looker system activity model for dashboards and looks idle beyond the configured number of days and emits an enriched CSV report."
	flagProfileName         = "profile"
	flagProfileDescription  = "Path to the Looker connection profile (YAML)."
	flagDaysName            = "days"
	flagDaysDescription     = "Days since last access before content counts as unused."
	flagOutputName          = "output"
	flagOutputDescription   = "Destination file for the CSV report (defaults to stdout)."
	flagModelsName          = "models"
	flagModelsDescription   = "Attach the LookML models each content item queries."
	flagDebugName           = "debug"
	flagDebugDescription    = "Print collection diagnostics to stderr."
)

// LoggerProvider supplies a zap logger for command execution.
type LoggerProvider func() *zap.Logger

// ConfigurationProvider supplies persisted configuration for the command.
type ConfigurationProvider func() CommandConfiguration

// CommandBuilder assembles the unused cobra command with configurable
// dependencies. Source fields left nil are backed by a Looker API client
// built from the connection profile.
type CommandBuilder struct {
	LoggerProvider        LoggerProvider
	ConfigurationProvider ConfigurationProvider
	ContentSource         ContentSource
	UsageSource           UsageSource
	HierarchySource       HierarchySource
	DirectorySource       DirectorySource
	ReportBaseURL         string
	Clock                 Clock
}

// Build constructs the cobra command for the unused-content report.
func (builder *CommandBuilder) Build() (*cobra.Command, error) {
	command := &cobra.Command{
		Use:   commandNameConstant,
		Short: commandShortDescription,
		Long:  commandLongDescription,
		RunE:  builder.run,
	}

	command.Flags().String(flagProfileName, "", flagProfileDescription)
	command.Flags().Int(flagDaysName, 0, flagDaysDescription)
	command.Flags().String(flagOutputName, "", flagOutputDescription)
	command.Flags().Bool(flagModelsName, false, flagModelsDescription)
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
		sources.content,
		sources.usage,
		sources.hierarchy,
		sources.directory,
		outputWriter,
		command.ErrOrStderr(),
		builder.resolveLogger(),
		builder.Clock,
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
		ProfilePath:       configuration.ProfilePath,
		Days:              configuration.Days,
		OutputPath:        configuration.Output,
		IncludeModelNames: configuration.Models,
	}

	if command.Flags().Changed(flagProfileName) {
		options.ProfilePath, _ = command.Flags().GetString(flagProfileName)
	}
	if command.Flags().Changed(flagDaysName) {
		options.Days, _ = command.Flags().GetInt(flagDaysName)
	}
	if command.Flags().Changed(flagOutputName) {
		options.OutputPath, _ = command.Flags().GetString(flagOutputName)
	}
	if command.Flags().Changed(flagModelsName) {
		options.IncludeModelNames, _ = command.Flags().GetBool(flagModelsName)
	}
	options.DebugOutput, _ = command.Flags().GetBool(flagDebugName)

	return options
}

type resolvedSources struct {
	content   ContentSource
	usage     UsageSource
	hierarchy HierarchySource
	directory DirectorySource
}

func (builder *CommandBuilder) resolveSources(executionContext context.Context, profilePath string) (resolvedSources, string, error) {
	sources := resolvedSources{
		content:   builder.ContentSource,
		usage:     builder.UsageSource,
		hierarchy: builder.HierarchySource,
		directory: builder.DirectorySource,
	}

	if sources.content != nil && sources.usage != nil && sources.hierarchy != nil && sources.directory != nil {
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

	if sources.content == nil {
		sources.content = client
	}
	if sources.usage == nil {
		sources.usage = client
	}
	if sources.hierarchy == nil {
		sources.hierarchy = client
	}
	if sources.directory == nil {
		sources.directory = client
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
