package cleanup

import (
	"context"
	"fmt"
	"io"

	"go.uber.org/zap"

	"github.com/lookbench/lookaudit/internal/catalog"
)

const (
	planTemplateConstant     = "PLAN: would soft delete %s %s\n"
	promptTemplateConstant   = "Soft delete %s %s? (y/N) "
	successTemplateConstant  = "Soft deleted %s %s\n"
	failureTemplateConstant  = "Failed to soft delete %s %s: %v\n"
	declinedTemplateConstant = "Skipped %s %s\n"
	summaryMessageConstant   = "content cleanup complete"
	logFieldDeletedConstant  = "deleted"
	logFieldFailedConstant   = "failed"
	logFieldSkippedConstant  = "skipped"
)

// CommandOptions captures the configurable parameters for the cleanup command.
type CommandOptions struct {
	ProfilePath  string
	DashboardIDs []string
	LookIDs      []string
	DryRun       bool
	AssumeYes    bool
}

// Service soft deletes the requested content items one at a time; a failure
// on one item never aborts the remainder of the batch.
type Service struct {
	mutator      ContentMutator
	prompter     ConfirmationPrompter
	outputWriter io.Writer
	errorWriter  io.Writer
	logger       *zap.Logger
}

// NewService constructs a Service using the provided dependencies.
func NewService(mutator ContentMutator, prompter ConfirmationPrompter, outputWriter io.Writer, errorWriter io.Writer, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		mutator:      mutator,
		prompter:     prompter,
		outputWriter: outputWriter,
		errorWriter:  errorWriter,
		logger:       logger,
	}
}

// Run processes the configured dashboard and look ids.
func (service *Service) Run(executionContext context.Context, options CommandOptions) error {
	deletedCount := 0
	failedCount := 0
	skippedCount := 0

	for _, dashboardID := range options.DashboardIDs {
		outcome := service.deleteOne(executionContext, catalog.ContentTypeDashboard, dashboardID, options)
		deletedCount, failedCount, skippedCount = tally(outcome, deletedCount, failedCount, skippedCount)
	}

	for _, lookID := range options.LookIDs {
		outcome := service.deleteOne(executionContext, catalog.ContentTypeLook, lookID, options)
		deletedCount, failedCount, skippedCount = tally(outcome, deletedCount, failedCount, skippedCount)
	}

	service.logger.Info(
		summaryMessageConstant,
		zap.Int(logFieldDeletedConstant, deletedCount),
		zap.Int(logFieldFailedConstant, failedCount),
		zap.Int(logFieldSkippedConstant, skippedCount),
	)

	return nil
}

type deleteOutcome int

const (
	outcomeDeleted deleteOutcome = iota
	outcomeFailed
	outcomeSkipped
)

func tally(outcome deleteOutcome, deletedCount int, failedCount int, skippedCount int) (int, int, int) {
	switch outcome {
	case outcomeDeleted:
		deletedCount++
	case outcomeFailed:
		failedCount++
	case outcomeSkipped:
		skippedCount++
	}
	return deletedCount, failedCount, skippedCount
}

func (service *Service) deleteOne(executionContext context.Context, contentType catalog.ContentType, contentID string, options CommandOptions) deleteOutcome {
	if options.DryRun {
		fmt.Fprintf(service.outputWriter, planTemplateConstant, contentType, contentID)
		return outcomeSkipped
	}

	if !options.AssumeYes && service.prompter != nil {
		prompt := fmt.Sprintf(promptTemplateConstant, contentType, contentID)
		confirmed, promptError := service.prompter.Confirm(prompt)
		if promptError != nil {
			fmt.Fprintf(service.errorWriter, failureTemplateConstant, contentType, contentID, promptError)
			return outcomeFailed
		}
		if !confirmed {
			fmt.Fprintf(service.outputWriter, declinedTemplateConstant, contentType, contentID)
			return outcomeSkipped
		}
	}

	deleteError := service.applyDelete(executionContext, contentType, contentID)
	if deleteError != nil {
		fmt.Fprintf(service.errorWriter, failureTemplateConstant, contentType, contentID, deleteError)
		return outcomeFailed
	}

	fmt.Fprintf(service.outputWriter, successTemplateConstant, contentType, contentID)
	return outcomeDeleted
}

func (service *Service) applyDelete(executionContext context.Context, contentType catalog.ContentType, contentID string) error {
	if contentType == catalog.ContentTypeDashboard {
		return service.mutator.SetDashboardDeleted(executionContext, contentID, true)
	}
	return service.mutator.SetLookDeleted(executionContext, contentID, true)
}
