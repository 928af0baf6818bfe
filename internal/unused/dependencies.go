package unused

import (
	"context"

	"github.com/lookbench/lookaudit/internal/catalog"
)

// ContentSource lists the catalog content items.
type ContentSource interface {
	AllDashboards(executionContext context.Context) ([]catalog.ContentItem, error)
	AllLooks(executionContext context.Context) ([]catalog.ContentItem, error)
}

// UsageSource queries aggregated usage statistics and per-query model usage.
type UsageSource interface {
	ContentUsage(executionContext context.Context, daysSinceLastAccessed int) ([]catalog.UsageRecord, error)
	ModelUsage(executionContext context.Context, contentType catalog.ContentType) ([]catalog.ModelUsageRow, error)
}

// HierarchySource lists the full folder hierarchy for the instance.
type HierarchySource interface {
	AllFolders(executionContext context.Context) ([]catalog.Folder, error)
}

// DirectorySource lists the instance user directory.
type DirectorySource interface {
	AllUsers(executionContext context.Context) ([]catalog.User, error)
}
