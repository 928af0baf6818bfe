package enrich

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/lookbench/lookaudit/internal/catalog"
)

const (
	contentURLTemplateConstant         = "%s/%s/%s"
	folderURLTemplateConstant          = "%s/folders/%s"
	unknownContentTypeTemplateConstant = "content item %s has unrecognized content type %q"
	malformedContentTemplateConstant   = "malformed content item: %w"
)

var errMissingContentID = errors.New("content item missing id")

// Enricher joins one content item at a time against the usage, folder, and
// user indexes. Indexes are built once per run and read-only afterward, so a
// single Enricher may serve concurrent callers.
type Enricher struct {
	baseURL     string
	usageIndex  *Index[catalog.UsageRecord]
	folderIndex *Index[catalog.Folder]
	userIndex   *Index[catalog.User]
	modelNames  map[string][]string
}

// NewEnricher constructs an Enricher over pre-built indexes. baseURL is the
// instance URL without the API port, used to compose content and folder links.
func NewEnricher(baseURL string, usageIndex *Index[catalog.UsageRecord], folderIndex *Index[catalog.Folder], userIndex *Index[catalog.User]) *Enricher {
	return &Enricher{
		baseURL:     strings.TrimRight(baseURL, "/"),
		usageIndex:  usageIndex,
		folderIndex: folderIndex,
		userIndex:   userIndex,
	}
}

// AttachModelNames supplies aggregated model lists keyed by UsageKey, so id
// collisions between dashboards and looks stay disambiguated. Records
// enriched afterward carry the model list for their content.
func (enricher *Enricher) AttachModelNames(modelNames map[string][]string) {
	enricher.modelNames = modelNames
}

// Enrich assembles the denormalized record for one content item. A missing
// folder, owner, or usage row degrades that record's dependent fields to the
// unknown marker; Enrich fails only when the item itself violates the input
// contract by lacking an id or a recognized content type.
func (enricher *Enricher) Enrich(item catalog.ContentItem) (Record, error) {
	if validationError := validateContentItem(item); validationError != nil {
		return Record{}, fmt.Errorf(malformedContentTemplateConstant, validationError)
	}

	record := Record{
		ContentID:   item.ID,
		ContentType: string(item.ContentType),
		Title:       item.Title,
		CreatedDate: stringOrEmpty(item.CreatedDate),
		URL:         fmt.Sprintf(contentURLTemplateConstant, enricher.baseURL, item.ContentType.Plural(), item.ID),
	}

	enricher.resolveFolder(item, &record)
	enricher.resolveOwner(item, &record)
	enricher.resolveUsage(item, &record)

	if names, aggregated := enricher.modelNames[UsageKey(item.ContentType, item.ID)]; aggregated {
		record.ModelNames = names
	}

	return record, nil
}

func validateContentItem(item catalog.ContentItem) error {
	if len(strings.TrimSpace(item.ID)) == 0 {
		return errMissingContentID
	}
	if !item.ContentType.Valid() {
		return fmt.Errorf(unknownContentTypeTemplateConstant, item.ID, string(item.ContentType))
	}
	return nil
}

func (enricher *Enricher) resolveFolder(item catalog.ContentItem, record *Record) {
	if item.FolderID == nil || len(strings.TrimSpace(*item.FolderID)) == 0 {
		markFolderUnknown(record)
		return
	}

	folder, found := enricher.folderIndex.Lookup(*item.FolderID)
	if !found {
		markFolderUnknown(record)
		return
	}

	record.FolderID = folder.ID
	record.FolderName = stringOrEmpty(folder.Name)
	record.FolderURL = fmt.Sprintf(folderURLTemplateConstant, enricher.baseURL, folder.ID)

	parentFolder, parentStatus := ParentOf(enricher.folderIndex, folder)
	switch parentStatus {
	case ParentFound:
		record.ParentFolderID = parentFolder.ID
		record.ParentFolderName = stringOrEmpty(parentFolder.Name)
		record.ParentFolderURL = fmt.Sprintf(folderURLTemplateConstant, enricher.baseURL, parentFolder.ID)
	case ParentAbsent:
		record.ParentFolderID = ""
		record.ParentFolderName = ""
		record.ParentFolderURL = ""
	case ParentMissing:
		record.ParentFolderID = UnknownMarker
		record.ParentFolderName = UnknownMarker
		record.ParentFolderURL = UnknownMarker
	}
}

func markFolderUnknown(record *Record) {
	record.FolderID = UnknownMarker
	record.FolderName = UnknownMarker
	record.FolderURL = UnknownMarker
	record.ParentFolderID = UnknownMarker
	record.ParentFolderName = UnknownMarker
	record.ParentFolderURL = UnknownMarker
}

func (enricher *Enricher) resolveOwner(item catalog.ContentItem, record *Record) {
	record.OwnerID = UnknownMarker
	record.FirstName = UnknownMarker
	record.LastName = UnknownMarker
	record.Email = UnknownMarker

	if item.OwnerID == nil || len(strings.TrimSpace(*item.OwnerID)) == 0 {
		return
	}

	owner, found := enricher.userIndex.Lookup(*item.OwnerID)
	if !found {
		record.OwnerID = *item.OwnerID
		return
	}

	record.OwnerID = owner.ID
	record.FirstName = owner.FirstName
	record.LastName = owner.LastName
	record.Email = owner.Email
}

func (enricher *Enricher) resolveUsage(item catalog.ContentItem, record *Record) {
	usage, found := enricher.usageIndex.Lookup(UsageKey(item.ContentType, item.ID))
	if !found {
		// Content with zero interactions has no usage row; expected, not an error.
		record.LastAccessedDate = UnknownMarker
		record.EmbedTotal = UnknownMarker
		record.APITotal = UnknownMarker
		record.FavoritesTotal = UnknownMarker
		record.ScheduleTotal = UnknownMarker
		record.OtherTotal = UnknownMarker
		return
	}

	record.LastAccessedDate = stringOrEmpty(usage.LastAccessedDate)
	record.EmbedTotal = strconv.Itoa(usage.EmbedTotal)
	record.APITotal = strconv.Itoa(usage.APITotal)
	record.FavoritesTotal = strconv.Itoa(usage.FavoritesTotal)
	record.ScheduleTotal = strconv.Itoa(usage.ScheduleTotal)
	record.OtherTotal = strconv.Itoa(usage.OtherTotal)

	if len(record.Title) == 0 {
		record.Title = usage.ContentTitle
	}
	if len(record.CreatedDate) == 0 {
		record.CreatedDate = stringOrEmpty(usage.CreatedDate)
	}
}

func stringOrEmpty(value *string) string {
	if value == nil {
		return ""
	}
	return *value
}
