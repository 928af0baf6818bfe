package broken

import (
	"context"

	"github.com/lookbench/lookaudit/internal/catalog"
)

// ValidationSource runs the platform content validator.
type ValidationSource interface {
	ContentValidation(executionContext context.Context) ([]catalog.ValidationError, error)
}

// UsageSource queries aggregated usage statistics for all content.
type UsageSource interface {
	ContentUsage(executionContext context.Context, daysSinceLastAccessed int) ([]catalog.UsageRecord, error)
}

// HierarchySource lists the full folder hierarchy for the instance.
type HierarchySource interface {
	AllFolders(executionContext context.Context) ([]catalog.Folder, error)
}
