package enrich

import (
	"strings"

	"github.com/lookbench/lookaudit/internal/catalog"
)

const usageKeySeparatorConstant = ":"

// Index provides O(1) lookup of records by the string form of a key field.
// Records whose key extractor reports no key are excluded. When multiple
// records share a key the first one indexed wins; duplicate keys are an
// upstream data-quality condition, not a pipeline defect.
type Index[RecordType any] struct {
	entries map[string]RecordType
}

// NewIndex builds an index over records using keyOf to extract each record's
// key. keyOf returns false for records that carry no usable key.
func NewIndex[RecordType any](records []RecordType, keyOf func(RecordType) (string, bool)) *Index[RecordType] {
	entries := make(map[string]RecordType, len(records))
	for _, record := range records {
		key, hasKey := keyOf(record)
		if !hasKey || len(strings.TrimSpace(key)) == 0 {
			continue
		}
		if _, exists := entries[key]; exists {
			continue
		}
		entries[key] = record
	}
	return &Index[RecordType]{entries: entries}
}

// Lookup resolves a record by key. The second return value distinguishes a
// missing record from a present record with empty fields; callers branch on it
// explicitly instead of inspecting the zero value.
func (index *Index[RecordType]) Lookup(key string) (RecordType, bool) {
	record, found := index.entries[key]
	return record, found
}

// Size reports the number of indexed records.
func (index *Index[RecordType]) Size() int {
	return len(index.entries)
}

// UsageKey composes the lookup key for usage records, which are keyed by
// content type and content id together.
func UsageKey(contentType catalog.ContentType, contentID string) string {
	return string(contentType) + usageKeySeparatorConstant + contentID
}

// FolderByID extracts the index key for a folder record.
func FolderByID(folder catalog.Folder) (string, bool) {
	return folder.ID, len(folder.ID) > 0
}

// UserByID extracts the index key for a user record.
func UserByID(user catalog.User) (string, bool) {
	return user.ID, len(user.ID) > 0
}

// UsageByContent extracts the composite index key for a usage record.
func UsageByContent(usage catalog.UsageRecord) (string, bool) {
	if len(usage.ContentID) == 0 || !usage.ContentType.Valid() {
		return "", false
	}
	return UsageKey(usage.ContentType, usage.ContentID), true
}
