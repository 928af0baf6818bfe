package cleanup

import (
	"context"
	"errors"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/lookbench/lookaudit/internal/lookerapi"
)

const (
	commandNameConstant        = "cleanup"
	commandShortDescription    = "Soft delete dashboards and looks by id"
	commandLongDescription     = "cleanup marks the listed dashboards and looks as deleted. Soft-deleted content stays recoverable from the Looker trash; use the unused report to pick candidates."
	flagProfileName            = "profile"
	flagProfileDescription     = "Path to the Looker connection profile (YAML)."
	flagDashboardsName         = "dashboards"
	flagDashboardsDescription  = "Dashboard ids to soft delete."
	flagLooksName              = "looks"
	flagLooksDescription       = "Look ids to soft delete."
	flagDryRunName             = "dry-run"
	flagDryRunDescription      = "Print the deletion plan without changing anything."
	flagAssumeYesName          = "yes"
	flagAssumeYesDescription   = "Skip confirmation prompts."
	errorNoTargetsMessageConst = "no dashboards or looks to delete"
)

// LoggerProvider supplies a zap logger for command execution.
type LoggerProvider func() *zap.Logger

// ConfigurationProvider supplies persisted configuration for the command.
type ConfigurationProvider func() CommandConfiguration

// CommandBuilder assembles the cleanup cobra command with configurable
// dependencies. A nil ContentMutator is backed by a Looker API client built
// from the connection profile.
type CommandBuilder struct {
	LoggerProvider        LoggerProvider
	ConfigurationProvider ConfigurationProvider
	ContentMutator        ContentMutator
	Prompter              ConfirmationPrompter
}

// Build constructs the cobra command for content cleanup.
func (builder *CommandBuilder) Build() (*cobra.Command, error) {
	command := &cobra.Command{
		Use:   commandNameConstant,
		Short: commandShortDescription,
		Long:  commandLongDescription,
		RunE:  builder.run,
	}

	command.Flags().String(flagProfileName, "", flagProfileDescription)
	command.Flags().StringSlice(flagDashboardsName, nil, flagDashboardsDescription)
	command.Flags().StringSlice(flagLooksName, nil, flagLooksDescription)
	command.Flags().Bool(flagDryRunName, false, flagDryRunDescription)
	command.Flags().Bool(flagAssumeYesName, false, flagAssumeYesDescription)

	return command, nil
}

func (builder *CommandBuilder) run(command *cobra.Command, arguments []string) error {
	options := builder.parseOptions(command)
	if len(options.DashboardIDs) == 0 && len(options.LookIDs) == 0 {
		return errors.New(errorNoTargetsMessageConst)
	}

	mutator, mutatorError := builder.resolveMutator(command.Context(), options.ProfilePath, options.DryRun)
	if mutatorError != nil {
		return mutatorError
	}

	prompter := builder.Prompter
	if prompter == nil {
		prompter = NewIOConfirmationPrompter(command.InOrStdin(), command.OutOrStdout())
	}

	service := NewService(mutator, prompter, command.OutOrStdout(), command.ErrOrStderr(), builder.resolveLogger())
	return service.Run(command.Context(), options)
}

func (builder *CommandBuilder) parseOptions(command *cobra.Command) CommandOptions {
	configuration := DefaultCommandConfiguration()
	if builder.ConfigurationProvider != nil {
		configuration = builder.ConfigurationProvider()
	}
	configuration = configuration.sanitize()

	options := CommandOptions{
		ProfilePath:  configuration.ProfilePath,
		DashboardIDs: configuration.Dashboards,
		LookIDs:      configuration.Looks,
	}

	if command.Flags().Changed(flagProfileName) {
		options.ProfilePath, _ = command.Flags().GetString(flagProfileName)
	}
	if command.Flags().Changed(flagDashboardsName) {
		options.DashboardIDs, _ = command.Flags().GetStringSlice(flagDashboardsName)
	}
	if command.Flags().Changed(flagLooksName) {
		options.LookIDs, _ = command.Flags().GetStringSlice(flagLooksName)
	}
	options.DryRun, _ = command.Flags().GetBool(flagDryRunName)
	options.AssumeYes, _ = command.Flags().GetBool(flagAssumeYesName)

	return options
}

func (builder *CommandBuilder) resolveMutator(executionContext context.Context, profilePath string, dryRun bool) (ContentMutator, error) {
	if builder.ContentMutator != nil {
		return builder.ContentMutator, nil
	}

	profile, profileError := lookerapi.LoadProfile(profilePath)
	if profileError != nil {
		return nil, profileError
	}

	client := lookerapi.NewClient(profile, nil)
	if dryRun {
		// Dry runs never call the mutator; skip authenticating.
		return client, nil
	}
	if loginError := client.Login(executionContext); loginError != nil {
		return nil, loginError
	}
	return client, nil
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
