package unused

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"go.uber.org/zap"

	"github.com/lookbench/lookaudit/internal/catalog"
	"github.com/lookbench/lookaudit/internal/enrich"
	"github.com/lookbench/lookaudit/internal/report"
)

const (
	lastAccessedDateLayoutConstant   = "2006-01-02"
	debugCollectionsTemplateConstant = "DEBUG: fetched %d usage rows, %d dashboards, %d looks, %d folders, %d users\n"
	skippedRowTemplateConstant       = "skipping usage row (%s %s): %v\n"
	summaryMessageConstant           = "unused content report complete"
	logFieldProcessedConstant        = "processed"
	logFieldSkippedConstant          = "skipped"
	logFieldDaysConstant             = "days"
)

var errMissingContentIdentifier = errors.New("usage row missing content id")

// Service assembles the unused-content report from injected sources.
type Service struct {
	contentSource   ContentSource
	usageSource     UsageSource
	hierarchySource HierarchySource
	directorySource DirectorySource
	outputWriter    io.Writer
	errorWriter     io.Writer
	logger          *zap.Logger
	clock           Clock
}

// NewService constructs a Service using the provided collaborators.
func NewService(contentSource ContentSource, usageSource UsageSource, hierarchySource HierarchySource, directorySource DirectorySource, outputWriter io.Writer, errorWriter io.Writer, logger *zap.Logger, clock Clock) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	if clock == nil {
		clock = SystemClock{}
	}
	return &Service{
		contentSource:   contentSource,
		usageSource:     usageSource,
		hierarchySource: hierarchySource,
		directorySource: directorySource,
		outputWriter:    outputWriter,
		errorWriter:     errorWriter,
		logger:          logger,
		clock:           clock,
	}
}

// Run fetches the source collections, enriches every idle content item, and
// streams the report. It returns an error only for source or sink failures;
// individual malformed rows are skipped with a diagnostic.
func (service *Service) Run(executionContext context.Context, options CommandOptions, baseURL string) error {
	usageRows, usageError := service.usageSource.ContentUsage(executionContext, options.Days)
	if usageError != nil {
		return usageError
	}

	dashboards, dashboardsError := service.contentSource.AllDashboards(executionContext)
	if dashboardsError != nil {
		return dashboardsError
	}

	looks, looksError := service.contentSource.AllLooks(executionContext)
	if looksError != nil {
		return looksError
	}

	folders, foldersError := service.hierarchySource.AllFolders(executionContext)
	if foldersError != nil {
		return foldersError
	}

	users, usersError := service.directorySource.AllUsers(executionContext)
	if usersError != nil {
		return usersError
	}

	if options.DebugOutput {
		fmt.Fprintf(service.errorWriter, debugCollectionsTemplateConstant, len(usageRows), len(dashboards), len(looks), len(folders), len(users))
	}

	contentItems := append(append([]catalog.ContentItem{}, dashboards...), looks...)
	contentIndex := enrich.NewIndex(contentItems, contentByTypeAndID)

	enricher := enrich.NewEnricher(
		baseURL,
		enrich.NewIndex(usageRows, enrich.UsageByContent),
		enrich.NewIndex(folders, enrich.FolderByID),
		enrich.NewIndex(users, enrich.UserByID),
	)

	if options.IncludeModelNames {
		modelNames, modelError := service.aggregateModelNames(executionContext)
		if modelError != nil {
			return modelError
		}
		enricher.AttachModelNames(modelNames)
	}

	sink := report.NewSink(service.outputWriter, ReportHeader(options.IncludeModelNames))

	processedCount := 0
	skippedCount := 0
	for _, usageRow := range usageRows {
		if service.isRecentlyAccessed(usageRow, options.Days) {
			continue
		}

		item, itemError := service.resolveContentItem(contentIndex, usageRow)
		if itemError != nil {
			skippedCount++
			fmt.Fprintf(service.errorWriter, skippedRowTemplateConstant, usageRow.ContentType, usageRow.ContentID, itemError)
			continue
		}

		record, enrichError := enricher.Enrich(item)
		if enrichError != nil {
			skippedCount++
			fmt.Fprintf(service.errorWriter, skippedRowTemplateConstant, usageRow.ContentType, usageRow.ContentID, enrichError)
			continue
		}

		row := reportRowFromRecord(record)
		if writeError := sink.WriteRow(row.CSVRecord(options.IncludeModelNames)); writeError != nil {
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
		zap.Int(logFieldDaysConstant, options.Days),
	)

	return nil
}

func (service *Service) aggregateModelNames(executionContext context.Context) (map[string][]string, error) {
	combinedNames := make(map[string][]string)
	for _, contentType := range []catalog.ContentType{catalog.ContentTypeDashboard, catalog.ContentTypeLook} {
		modelRows, modelError := service.usageSource.ModelUsage(executionContext, contentType)
		if modelError != nil {
			return nil, modelError
		}
		for contentID, names := range enrich.AggregateModels(modelRows) {
			combinedNames[enrich.UsageKey(contentType, contentID)] = names
		}
	}
	return combinedNames, nil
}

// resolveContentItem joins a usage row back to its catalog listing. Content
// deleted between the activity query and the listing fetch is still reported,
// with its joins degrading to unknown markers.
func (service *Service) resolveContentItem(contentIndex *enrich.Index[catalog.ContentItem], usageRow catalog.UsageRecord) (catalog.ContentItem, error) {
	if len(usageRow.ContentID) == 0 {
		return catalog.ContentItem{}, errMissingContentIdentifier
	}

	item, found := contentIndex.Lookup(enrich.UsageKey(usageRow.ContentType, usageRow.ContentID))
	if found {
		return item, nil
	}

	return catalog.ContentItem{
		ID:          usageRow.ContentID,
		ContentType: usageRow.ContentType,
		Title:       usageRow.ContentTitle,
		CreatedDate: usageRow.CreatedDate,
	}, nil
}

// isRecentlyAccessed re-checks the idle threshold locally. The activity query
// already filters server-side; stale cached query results can still return
// rows accessed after the cutoff.
func (service *Service) isRecentlyAccessed(usageRow catalog.UsageRecord, days int) bool {
	if days <= 0 || usageRow.LastAccessedDate == nil {
		return false
	}

	lastAccessed, parseError := time.Parse(lastAccessedDateLayoutConstant, *usageRow.LastAccessedDate)
	if parseError != nil {
		return false
	}

	cutoff := service.clock.Now().AddDate(0, 0, -days)
	return lastAccessed.After(cutoff)
}

func contentByTypeAndID(item catalog.ContentItem) (string, bool) {
	if len(item.ID) == 0 || !item.ContentType.Valid() {
		return "", false
	}
	return enrich.UsageKey(item.ContentType, item.ID), true
}
