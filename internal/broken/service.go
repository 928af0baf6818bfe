package broken

import (
	"context"
	"fmt"
	"io"

	"go.uber.org/zap"

	"github.com/lookbench/lookaudit/internal/catalog"
	"github.com/lookbench/lookaudit/internal/enrich"
	"github.com/lookbench/lookaudit/internal/report"
)

const (
	debugCollectionsTemplateConstant = "DEBUG: fetched %d validator findings, %d folders, %d usage rows\n"
	skippedFindingTemplateConstant   = "skipping validator finding (%s %s): %v\n"
	summaryMessageConstant           = "broken content report complete"
	logFieldProcessedConstant        = "processed"
	logFieldSkippedConstant          = "skipped"
)

// Service assembles the broken-content report from injected sources.
type Service struct {
	validationSource ValidationSource
	usageSource      UsageSource
	hierarchySource  HierarchySource
	outputWriter     io.Writer
	errorWriter      io.Writer
	logger           *zap.Logger
}

// NewService constructs a Service using the provided collaborators.
func NewService(validationSource ValidationSource, usageSource UsageSource, hierarchySource HierarchySource, outputWriter io.Writer, errorWriter io.Writer, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		validationSource: validationSource,
		usageSource:      usageSource,
		hierarchySource:  hierarchySource,
		outputWriter:     outputWriter,
		errorWriter:      errorWriter,
		logger:           logger,
	}
}

// Run validates the catalog, enriches every finding, and streams the report.
// Malformed findings are skipped with a diagnostic; source and sink failures
// abort the run.
func (service *Service) Run(executionContext context.Context, options CommandOptions, baseURL string) error {
	findings, validationError := service.validationSource.ContentValidation(executionContext)
	if validationError != nil {
		return validationError
	}

	folders, foldersError := service.hierarchySource.AllFolders(executionContext)
	if foldersError != nil {
		return foldersError
	}

	usageRows, usageError := service.usageSource.ContentUsage(executionContext, 0)
	if usageError != nil {
		return usageError
	}

	if options.DebugOutput {
		fmt.Fprintf(service.errorWriter, debugCollectionsTemplateConstant, len(findings), len(folders), len(usageRows))
	}

	enricher := enrich.NewEnricher(
		baseURL,
		enrich.NewIndex(usageRows, enrich.UsageByContent),
		enrich.NewIndex(folders, enrich.FolderByID),
		enrich.NewIndex([]catalog.User(nil), enrich.UserByID),
	)

	sink := report.NewSink(service.outputWriter, ReportHeader())

	processedCount := 0
	skippedCount := 0
	for _, finding := range findings {
		record, enrichError := enricher.Enrich(finding.Content)
		if enrichError != nil {
			skippedCount++
			fmt.Fprintf(service.errorWriter, skippedFindingTemplateConstant, finding.Content.ContentType, finding.Content.ID, enrichError)
			continue
		}

		row := reportRowFromRecord(record, finding.Messages, finding.DashboardElement)
		if writeError := sink.WriteRow(row.CSVRecord()); writeError != nil {
			return writeError
		}
		processedCount++
	}

	if flushError := sink.Flush(); flushError != nil {
		return flushError
	}

	service.logger.Info(
		summaryMessageConstant,
		zap.Int(logFieldProcessedConstant, processedCount),
		zap.Int(logFieldSkippedConstant, skippedCount),
	)

	return nil
}
