package unused

import (
	"strings"
	"time"

	"github.com/lookbench/lookaudit/internal/catalog"
	"github.com/lookbench/lookaudit/internal/enrich"
)

// CommandOptions captures the configurable parameters for the unused report.
type CommandOptions struct {
	ProfilePath       string
	Days              int
	OutputPath        string
	IncludeModelNames bool
	DebugOutput       bool
}

// Clock abstracts time-dependent functionality for deterministic testing.
type Clock interface {
	Now() time.Time
}

// SystemClock implements Clock using the standard library.
type SystemClock struct{}

// Now returns the current system time.
func (SystemClock) Now() time.Time {
	return time.Now()
}

// ReportRow models a single CSV row of the unused-content report.
type ReportRow struct {
	DashboardID      string
	LookID           string
	ContentType      string
	ContentTitle     string
	CreatedDate      string
	LastAccessedDate string
	OwnerID          string
	FirstName        string
	LastName         string
	Email            string
	FolderID         string
	FolderName       string
	ParentFolderID   string
	ParentFolderName string
	URL              string
	ModelNames       string
}

// CSV column headers for the unused-content report.
const (
	csvHeaderDashboardID      = "dashboard_id"
	csvHeaderLookID           = "look_id"
	csvHeaderContentType      = "content_type"
	csvHeaderContentTitle     = "content_title"
	csvHeaderCreatedDate      = "created_date"
	csvHeaderLastAccessedDate = "last_accessed_date"
	csvHeaderOwnerID          = "user_id"
	csvHeaderFirstName        = "first_name"
	csvHeaderLastName         = "last_name"
	csvHeaderEmail            = "email"
	csvHeaderFolderID         = "folder_id"
	csvHeaderFolderName       = "folder_name"
	csvHeaderParentFolderID   = "parent_folder_id"
	csvHeaderParentFolderName = "parent_folder_name"
	csvHeaderURL              = "url"
	csvHeaderModelNames       = "models"
)

const modelNameSeparatorConstant = ";"

// ReportHeader returns the CSV header for the configured report variant.
func ReportHeader(includeModelNames bool) []string {
	header := []string{
		csvHeaderDashboardID,
		csvHeaderLookID,
		csvHeaderContentType,
		csvHeaderContentTitle,
		csvHeaderCreatedDate,
		csvHeaderLastAccessedDate,
		csvHeaderOwnerID,
		csvHeaderFirstName,
		csvHeaderLastName,
		csvHeaderEmail,
		csvHeaderFolderID,
		csvHeaderFolderName,
		csvHeaderParentFolderID,
		csvHeaderParentFolderName,
		csvHeaderURL,
	}
	if includeModelNames {
		header = append(header, csvHeaderModelNames)
	}
	return header
}

// CSVRecord returns the row formatted for CSV encoding.
func (row ReportRow) CSVRecord(includeModelNames bool) []string {
	record := []string{
		row.DashboardID,
		row.LookID,
		row.ContentType,
		row.ContentTitle,
		row.CreatedDate,
		row.LastAccessedDate,
		row.OwnerID,
		row.FirstName,
		row.LastName,
		row.Email,
		row.FolderID,
		row.FolderName,
		row.ParentFolderID,
		row.ParentFolderName,
		row.URL,
	}
	if includeModelNames {
		record = append(record, row.ModelNames)
	}
	return record
}

func reportRowFromRecord(record enrich.Record) ReportRow {
	row := ReportRow{
		ContentType:      record.ContentType,
		ContentTitle:     record.Title,
		CreatedDate:      record.CreatedDate,
		LastAccessedDate: record.LastAccessedDate,
		OwnerID:          record.OwnerID,
		FirstName:        record.FirstName,
		LastName:         record.LastName,
		Email:            record.Email,
		FolderID:         record.FolderID,
		FolderName:       record.FolderName,
		ParentFolderID:   record.ParentFolderID,
		ParentFolderName: record.ParentFolderName,
		URL:              record.URL,
		ModelNames:       strings.Join(record.ModelNames, modelNameSeparatorConstant),
	}

	switch catalog.ContentType(record.ContentType) {
	case catalog.ContentTypeDashboard:
		row.DashboardID = record.ContentID
	case catalog.ContentTypeLook:
		row.LookID = record.ContentID
	}
	return row
}
