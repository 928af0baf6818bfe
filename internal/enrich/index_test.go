package enrich_test

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/lookbench/lookaudit/internal/catalog"
	"github.com/lookbench/lookaudit/internal/enrich"
)

func TestIndexLookupBehaviors(testInstance *testing.T) {
	folders := []catalog.Folder{
		{ID: "10", Name: stringPointer("Sales")},
		{ID: "20", Name: stringPointer("Finance")},
		{ID: ""},
	}

	folderIndex := enrich.NewIndex(folders, enrich.FolderByID)

	testCases := []struct {
		name          string
		lookupKey     string
		expectedFound bool
		expectedName  string
	}{
		{name: "present_key", lookupKey: "10", expectedFound: true, expectedName: "Sales"},
		{name: "other_present_key", lookupKey: "20", expectedFound: true, expectedName: "Finance"},
		{name: "absent_key", lookupKey: "999", expectedFound: false},
		{name: "empty_key_excluded", lookupKey: "", expectedFound: false},
	}

	for testCaseIndex, testCase := range testCases {
		testInstance.Run(fmt.Sprintf("%d_%s", testCaseIndex, testCase.name), func(testInstance *testing.T) {
			folder, found := folderIndex.Lookup(testCase.lookupKey)
			require.Equal(testInstance, testCase.expectedFound, found)
			if testCase.expectedFound {
				require.Equal(testInstance, testCase.expectedName, *folder.Name)
			}
		})
	}
}

func TestIndexExcludesRecordsWithoutKeys(testInstance *testing.T) {
	usageRows := []catalog.UsageRecord{
		{ContentID: "1", ContentType: catalog.ContentTypeDashboard},
		{ContentID: "", ContentType: catalog.ContentTypeDashboard},
		{ContentID: "2", ContentType: catalog.ContentType("report")},
	}

	usageIndex := enrich.NewIndex(usageRows, enrich.UsageByContent)
	require.Equal(testInstance, 1, usageIndex.Size())

	_, found := usageIndex.Lookup(enrich.UsageKey(catalog.ContentTypeDashboard, "1"))
	require.True(testInstance, found)
}

func TestIndexDuplicateKeysFirstRecordWins(testInstance *testing.T) {
	users := []catalog.User{
		{ID: "5", FirstName: "Ann"},
		{ID: "5", FirstName: "Impostor"},
	}

	userIndex := enrich.NewIndex(users, enrich.UserByID)
	require.Equal(testInstance, 1, userIndex.Size())

	user, found := userIndex.Lookup("5")
	require.True(testInstance, found)
	require.Equal(testInstance, "Ann", user.FirstName)
}

func stringPointer(value string) *string {
	return &value
}
