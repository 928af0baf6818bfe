package unused_test

import (
	"bytes"
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/lookbench/lookaudit/internal/catalog"
	"github.com/lookbench/lookaudit/internal/unused"
)

const testBaseURLConstant = "https://looker.example.com"

type stubContentSource struct {
	dashboards []catalog.ContentItem
	looks      []catalog.ContentItem
}

func (source stubContentSource) AllDashboards(executionContext context.Context) ([]catalog.ContentItem, error) {
	return source.dashboards, nil
}

func (source stubContentSource) AllLooks(executionContext context.Context) ([]catalog.ContentItem, error) {
	return source.looks, nil
}

type stubUsageSource struct {
	usageRows []catalog.UsageRecord
	modelRows map[catalog.ContentType][]catalog.ModelUsageRow
}

func (source stubUsageSource) ContentUsage(executionContext context.Context, daysSinceLastAccessed int) ([]catalog.UsageRecord, error) {
	return source.usageRows, nil
}

func (source stubUsageSource) ModelUsage(executionContext context.Context, contentType catalog.ContentType) ([]catalog.ModelUsageRow, error) {
	return source.modelRows[contentType], nil
}

type stubHierarchySource struct {
	folders []catalog.Folder
}

func (source stubHierarchySource) AllFolders(executionContext context.Context) ([]catalog.Folder, error) {
	return source.folders, nil
}

type stubDirectorySource struct {
	users []catalog.User
}

func (source stubDirectorySource) AllUsers(executionContext context.Context) ([]catalog.User, error) {
	return source.users, nil
}

type fixedClock struct {
	instant time.Time
}

func (clock fixedClock) Now() time.Time {
	return clock.instant
}

func stringPointer(value string) *string {
	return &value
}

func TestServiceRunProducesEnrichedReport(testInstance *testing.T) {
	contentSource := stubContentSource{
		dashboards: []catalog.ContentItem{
			{
				ID:          "1",
				ContentType: catalog.ContentTypeDashboard,
				Title:       "Revenue",
				OwnerID:     stringPointer("5"),
				FolderID:    stringPointer("10"),
				CreatedDate: stringPointer("2024-02-01"),
			},
		},
	}
	usageSource := stubUsageSource{
		usageRows: []catalog.UsageRecord{
			{
				ContentID:        "1",
				ContentType:      catalog.ContentTypeDashboard,
				ContentTitle:     "Revenue",
				LastAccessedDate: stringPointer("2026-01-15"),
			},
		},
	}
	hierarchySource := stubHierarchySource{
		folders: []catalog.Folder{
			{ID: "10", Name: stringPointer("Sales")},
		},
	}
	directorySource := stubDirectorySource{
		users: []catalog.User{
			{ID: "5", FirstName: "Ann", LastName: "Lee", Email: "ann@example.com"},
		},
	}

	outputBuffer := &bytes.Buffer{}
	errorBuffer := &bytes.Buffer{}
	service := unused.NewService(
		contentSource,
		usageSource,
		hierarchySource,
		directorySource,
		outputBuffer,
		errorBuffer,
		nil,
		fixedClock{instant: time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)},
	)

	runError := service.Run(context.Background(), unused.CommandOptions{Days: 90}, testBaseURLConstant)
	require.NoError(testInstance, runError)

	expectedOutput := "dashboard_id,look_id,content_type,content_title,created_date,last_accessed_date,user_id,first_name,last_name,email,folder_id,folder_name,parent_folder_id,parent_folder_name,url\n" +
		"1,,dashboard,Revenue,2024-02-01,2026-01-15,5,Ann,Lee,ann@example.com,10,Sales,,,https://looker.example.com/dashboards/1\n"
	require.Equal(testInstance, expectedOutput, outputBuffer.String())
	require.Empty(testInstance, errorBuffer.String())
}

func TestServiceRunSkipsRecentlyAccessedRows(testInstance *testing.T) {
	usageSource := stubUsageSource{
		usageRows: []catalog.UsageRecord{
			{ContentID: "1", ContentType: catalog.ContentTypeLook, LastAccessedDate: stringPointer("2026-07-25")},
			{ContentID: "2", ContentType: catalog.ContentTypeLook, LastAccessedDate: stringPointer("2025-01-01")},
		},
	}

	outputBuffer := &bytes.Buffer{}
	service := unused.NewService(
		stubContentSource{},
		usageSource,
		stubHierarchySource{},
		stubDirectorySource{},
		outputBuffer,
		&bytes.Buffer{},
		nil,
		fixedClock{instant: time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)},
	)

	runError := service.Run(context.Background(), unused.CommandOptions{Days: 90}, testBaseURLConstant)
	require.NoError(testInstance, runError)

	outputText := outputBuffer.String()
	require.NotContains(testInstance, outputText, ",1,look")
	require.Contains(testInstance, outputText, ",2,look")
}

func TestServiceRunReportsContentMissingFromCatalog(testInstance *testing.T) {
	usageSource := stubUsageSource{
		usageRows: []catalog.UsageRecord{
			{ContentID: "404", ContentType: catalog.ContentTypeDashboard, ContentTitle: "Deleted"},
		},
	}

	outputBuffer := &bytes.Buffer{}
	errorBuffer := &bytes.Buffer{}
	service := unused.NewService(
		stubContentSource{},
		usageSource,
		stubHierarchySource{},
		stubDirectorySource{},
		outputBuffer,
		errorBuffer,
		nil,
		fixedClock{instant: time.Date(2026, 8, 1, 0, 0, 0, 0, time.UTC)},
	)

	runError := service.Run(context.Background(), unused.CommandOptions{Days: 90}, testBaseURLConstant)
	require.NoError(testInstance, runError)

	outputText := outputBuffer.String()
	require.Contains(testInstance, outputText, "404,,dashboard,Deleted")
	require.Contains(testInstance, outputText, "unknown")
	require.Empty(testInstance, errorBuffer.String())
}

func TestServiceRunSkipsMalformedRowsAndContinues(testInstance *testing.T) {
	usageSource := stubUsageSource{
		usageRows: []catalog.UsageRecord{
			{ContentID: "", ContentType: catalog.ContentTypeDashboard},
			{ContentID: "2", ContentType: catalog.ContentTypeLook, ContentTitle: "Valid"},
		},
	}

	outputBuffer := &bytes.Buffer{}
	errorBuffer := &bytes.Buffer{}
	service := unused.NewService(
		stubContentSource{},
		usageSource,
		stubHierarchySource{},
		stubDirectorySource{},
		outputBuffer,
		errorBuffer,
		nil,
		nil,
	)

	runError := service.Run(context.Background(), unused.CommandOptions{Days: 90}, testBaseURLConstant)
	require.NoError(testInstance, runError)

	require.Contains(testInstance, outputBuffer.String(), "Valid")
	require.Contains(testInstance, errorBuffer.String(), "skipping usage row")
}

func TestServiceRunAttachesModelNames(testInstance *testing.T) {
	usageSource := stubUsageSource{
		usageRows: []catalog.UsageRecord{
			{ContentID: "1", ContentType: catalog.ContentTypeDashboard, ContentTitle: "Revenue"},
		},
		modelRows: map[catalog.ContentType][]catalog.ModelUsageRow{
			catalog.ContentTypeDashboard: {
				{ContentID: "1", QueryModel: stringPointer("finance")},
				{ContentID: "1", QueryModel: stringPointer("orders")},
				{ContentID: "1", QueryModel: stringPointer("finance")},
			},
		},
	}

	outputBuffer := &bytes.Buffer{}
	service := unused.NewService(
		stubContentSource{},
		usageSource,
		stubHierarchySource{},
		stubDirectorySource{},
		outputBuffer,
		&bytes.Buffer{},
		nil,
		nil,
	)

	options := unused.CommandOptions{Days: 90, IncludeModelNames: true}
	runError := service.Run(context.Background(), options, testBaseURLConstant)
	require.NoError(testInstance, runError)

	outputText := outputBuffer.String()
	require.Contains(testInstance, outputText, ",models\n")
	require.Contains(testInstance, outputText, "finance;orders")
}
