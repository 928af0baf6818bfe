package enrich

import (
	"strings"

	"github.com/lookbench/lookaudit/internal/catalog"
)

// AggregateModels collapses per-query usage rows into one entry per content
// id holding the distinct LookML model names its queries ran against, in
// first-seen order. Rows without a content id or without an associated query
// model are skipped.
func AggregateModels(rows []catalog.ModelUsageRow) map[string][]string {
	aggregated := make(map[string][]string)
	seen := make(map[string]map[string]struct{})

	for _, row := range rows {
		contentID := strings.TrimSpace(row.ContentID)
		if len(contentID) == 0 || row.QueryModel == nil {
			continue
		}
		modelName := strings.TrimSpace(*row.QueryModel)
		if len(modelName) == 0 {
			continue
		}

		seenModels, tracked := seen[contentID]
		if !tracked {
			seenModels = make(map[string]struct{})
			seen[contentID] = seenModels
		}
		if _, duplicate := seenModels[modelName]; duplicate {
			continue
		}
		seenModels[modelName] = struct{}{}
		aggregated[contentID] = append(aggregated[contentID], modelName)
	}

	return aggregated
}
