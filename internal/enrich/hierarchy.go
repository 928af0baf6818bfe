package enrich

import (
	"strings"

	"github.com/lookbench/lookaudit/internal/catalog"
)

// noneSentinelConstant is emitted for absent parent ids by older Looker API
// versions, which stringify missing values.
const noneSentinelConstant = "None"

// ParentStatus is the outcome of a one-hop parent folder resolution.
type ParentStatus int

// Parent resolution outcomes.
const (
	// ParentFound means the referenced parent folder exists in the index.
	ParentFound ParentStatus = iota
	// ParentAbsent means the folder declares no parent: a valid top-level state.
	ParentAbsent
	// ParentMissing means a parent id is present but no such folder exists.
	ParentMissing
)

// ParentOf resolves the immediate parent of a folder. The walk is bounded to a
// single hop: the reports need only breadcrumb context, and malformed
// hierarchies with reference cycles must not loop. A folder whose parent id is
// absent, empty, or the "None" sentinel yields ParentAbsent.
func ParentOf(folderIndex *Index[catalog.Folder], folder catalog.Folder) (catalog.Folder, ParentStatus) {
	if folder.ParentID == nil {
		return catalog.Folder{}, ParentAbsent
	}

	parentID := strings.TrimSpace(*folder.ParentID)
	if len(parentID) == 0 || parentID == noneSentinelConstant {
		return catalog.Folder{}, ParentAbsent
	}

	parentFolder, found := folderIndex.Lookup(parentID)
	if !found {
		return catalog.Folder{}, ParentMissing
	}
	return parentFolder, ParentFound
}
