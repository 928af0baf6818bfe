package enrich_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/lookbench/lookaudit/internal/catalog"
	"github.com/lookbench/lookaudit/internal/enrich"
)

const testBaseURLConstant = "https://looker.example.com"

func buildTestEnricher(usageRows []catalog.UsageRecord, folders []catalog.Folder, users []catalog.User) *enrich.Enricher {
	return enrich.NewEnricher(
		testBaseURLConstant,
		enrich.NewIndex(usageRows, enrich.UsageByContent),
		enrich.NewIndex(folders, enrich.FolderByID),
		enrich.NewIndex(users, enrich.UserByID),
	)
}

func TestEnrichJoinsAllSources(testInstance *testing.T) {
	folders := []catalog.Folder{
		{ID: "10", Name: stringPointer("Sales")},
	}
	users := []catalog.User{
		{ID: "5", FirstName: "Ann", LastName: "Lee", Email: "ann@example.com"},
	}
	enricher := buildTestEnricher(nil, folders, users)

	record, enrichError := enricher.Enrich(catalog.ContentItem{
		ID:          "1",
		ContentType: catalog.ContentTypeDashboard,
		Title:       "Revenue",
		OwnerID:     stringPointer("5"),
		FolderID:    stringPointer("10"),
	})
	require.NoError(testInstance, enrichError)

	require.Equal(testInstance, "https://looker.example.com/dashboards/1", record.URL)
	require.Equal(testInstance, "Sales", record.FolderName)
	require.Equal(testInstance, "https://looker.example.com/folders/10", record.FolderURL)
	require.Equal(testInstance, "", record.ParentFolderName)
	require.Equal(testInstance, "", record.ParentFolderURL)
	require.Equal(testInstance, "Ann", record.FirstName)
	require.Equal(testInstance, "Lee", record.LastName)
	require.Equal(testInstance, "ann@example.com", record.Email)
	require.Equal(testInstance, enrich.UnknownMarker, record.LastAccessedDate)
}

func TestEnrichAllJoinsMissing(testInstance *testing.T) {
	enricher := buildTestEnricher(nil, nil, nil)

	record, enrichError := enricher.Enrich(catalog.ContentItem{
		ID:          "7",
		ContentType: catalog.ContentTypeLook,
		FolderID:    stringPointer("999"),
	})
	require.NoError(testInstance, enrichError)

	require.Equal(testInstance, "https://looker.example.com/looks/7", record.URL)
	require.Equal(testInstance, enrich.UnknownMarker, record.FolderID)
	require.Equal(testInstance, enrich.UnknownMarker, record.FolderName)
	require.Equal(testInstance, enrich.UnknownMarker, record.ParentFolderName)
	require.Equal(testInstance, enrich.UnknownMarker, record.OwnerID)
	require.Equal(testInstance, enrich.UnknownMarker, record.FirstName)
	require.Equal(testInstance, enrich.UnknownMarker, record.Email)
	require.Equal(testInstance, enrich.UnknownMarker, record.LastAccessedDate)
}

func TestEnrichDoesNotLeakJoinResultsAcrossItems(testInstance *testing.T) {
	folders := []catalog.Folder{
		{ID: "10", Name: stringPointer("Sales")},
	}
	users := []catalog.User{
		{ID: "5", FirstName: "Ann", LastName: "Lee", Email: "ann@example.com"},
	}
	enricher := buildTestEnricher(nil, folders, users)

	firstRecord, firstError := enricher.Enrich(catalog.ContentItem{
		ID:          "1",
		ContentType: catalog.ContentTypeDashboard,
		OwnerID:     stringPointer("5"),
		FolderID:    stringPointer("10"),
	})
	require.NoError(testInstance, firstError)
	require.Equal(testInstance, "Sales", firstRecord.FolderName)
	require.Equal(testInstance, "Ann", firstRecord.FirstName)

	secondRecord, secondError := enricher.Enrich(catalog.ContentItem{
		ID:          "2",
		ContentType: catalog.ContentTypeDashboard,
		OwnerID:     stringPointer("404"),
		FolderID:    stringPointer("404"),
	})
	require.NoError(testInstance, secondError)
	require.Equal(testInstance, enrich.UnknownMarker, secondRecord.FolderName)
	require.Equal(testInstance, enrich.UnknownMarker, secondRecord.FirstName)
	require.Equal(testInstance, enrich.UnknownMarker, secondRecord.Email)
}

func TestEnrichResolvesParentFolderStates(testInstance *testing.T) {
	folders := []catalog.Folder{
		{ID: "10", ParentID: stringPointer("1"), Name: stringPointer("Sales")},
		{ID: "1", Name: stringPointer("Shared")},
		{ID: "20", ParentID: stringPointer("999"), Name: stringPointer("Orphaned")},
	}
	enricher := buildTestEnricher(nil, folders, nil)

	nestedRecord, nestedError := enricher.Enrich(catalog.ContentItem{
		ID:          "1",
		ContentType: catalog.ContentTypeDashboard,
		FolderID:    stringPointer("10"),
	})
	require.NoError(testInstance, nestedError)
	require.Equal(testInstance, "Shared", nestedRecord.ParentFolderName)
	require.Equal(testInstance, "https://looker.example.com/folders/1", nestedRecord.ParentFolderURL)

	orphanedRecord, orphanedError := enricher.Enrich(catalog.ContentItem{
		ID:          "2",
		ContentType: catalog.ContentTypeDashboard,
		FolderID:    stringPointer("20"),
	})
	require.NoError(testInstance, orphanedError)
	require.Equal(testInstance, "Orphaned", orphanedRecord.FolderName)
	require.Equal(testInstance, enrich.UnknownMarker, orphanedRecord.ParentFolderName)
	require.Equal(testInstance, enrich.UnknownMarker, orphanedRecord.ParentFolderURL)
}

func TestEnrichCopiesUsageStatistics(testInstance *testing.T) {
	usageRows := []catalog.UsageRecord{
		{
			ContentID:        "1",
			ContentType:      catalog.ContentTypeDashboard,
			ContentTitle:     "Revenue",
			LastAccessedDate: stringPointer("2026-05-01"),
			EmbedTotal:       3,
			APITotal:         7,
			FavoritesTotal:   1,
			ScheduleTotal:    0,
			OtherTotal:       12,
		},
	}
	enricher := buildTestEnricher(usageRows, nil, nil)

	record, enrichError := enricher.Enrich(catalog.ContentItem{
		ID:          "1",
		ContentType: catalog.ContentTypeDashboard,
	})
	require.NoError(testInstance, enrichError)

	require.Equal(testInstance, "2026-05-01", record.LastAccessedDate)
	require.Equal(testInstance, "3", record.EmbedTotal)
	require.Equal(testInstance, "7", record.APITotal)
	require.Equal(testInstance, "1", record.FavoritesTotal)
	require.Equal(testInstance, "0", record.ScheduleTotal)
	require.Equal(testInstance, "12", record.OtherTotal)
	require.Equal(testInstance, "Revenue", record.Title)
}

func TestEnrichRejectsMalformedContent(testInstance *testing.T) {
	enricher := buildTestEnricher(nil, nil, nil)

	_, missingIDError := enricher.Enrich(catalog.ContentItem{ContentType: catalog.ContentTypeDashboard})
	require.Error(testInstance, missingIDError)

	_, unknownTypeError := enricher.Enrich(catalog.ContentItem{ID: "1", ContentType: catalog.ContentType("board")})
	require.Error(testInstance, unknownTypeError)
}

func TestEnrichAttachesAggregatedModelNames(testInstance *testing.T) {
	enricher := buildTestEnricher(nil, nil, nil)
	enricher.AttachModelNames(map[string][]string{
		enrich.UsageKey(catalog.ContentTypeLook, "1"): {"finance", "orders"},
	})

	record, enrichError := enricher.Enrich(catalog.ContentItem{
		ID:          "1",
		ContentType: catalog.ContentTypeLook,
	})
	require.NoError(testInstance, enrichError)
	require.Equal(testInstance, []string{"finance", "orders"}, record.ModelNames)
}
