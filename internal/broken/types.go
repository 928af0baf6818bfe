package broken

import (
	"strings"

	"github.com/lookbench/lookaudit/internal/enrich"
)

// CommandOptions captures the configurable parameters for the broken report.
type CommandOptions struct {
	ProfilePath string
	OutputPath  string
	DebugOutput bool
}

// ReportRow models a single CSV row of the broken-content report.
type ReportRow struct {
	ContentID        string
	ContentType      string
	Title            string
	URL              string
	DashboardElement string
	FolderName       string
	FolderURL        string
	ParentFolderName string
	ParentFolderURL  string
	Errors           string
	LastAccessedDate string
}

// CSV column headers for the broken-content report.
const (
	csvHeaderContentID        = "id"
	csvHeaderContentType      = "content_type"
	csvHeaderTitle            = "title"
	csvHeaderURL              = "url"
	csvHeaderDashboardElement = "dashboard_element"
	csvHeaderFolderName       = "folder_name"
	csvHeaderFolderURL        = "folder_url"
	csvHeaderParentFolderName = "parent_folder_name"
	csvHeaderParentFolderURL  = "parent_folder_url"
	csvHeaderErrors           = "errors"
	csvHeaderLastAccessedDate = "last_accessed_date"
)

const errorMessageSeparatorConstant = "; "

// ReportHeader returns the CSV header for the broken-content report.
func ReportHeader() []string {
	return []string{
		csvHeaderContentID,
		csvHeaderContentType,
		csvHeaderTitle,
		csvHeaderURL,
		csvHeaderDashboardElement,
		csvHeaderFolderName,
		csvHeaderFolderURL,
		csvHeaderParentFolderName,
		csvHeaderParentFolderURL,
		csvHeaderErrors,
		csvHeaderLastAccessedDate,
	}
}

// CSVRecord returns the row formatted for CSV encoding.
func (row ReportRow) CSVRecord() []string {
	return []string{
		row.ContentID,
		row.ContentType,
		row.Title,
		row.URL,
		row.DashboardElement,
		row.FolderName,
		row.FolderURL,
		row.ParentFolderName,
		row.ParentFolderURL,
		row.Errors,
		row.LastAccessedDate,
	}
}

func reportRowFromRecord(record enrich.Record, validationMessages []string, dashboardElement *string) ReportRow {
	row := ReportRow{
		ContentID:        record.ContentID,
		ContentType:      record.ContentType,
		Title:            record.Title,
		URL:              record.URL,
		FolderName:       record.FolderName,
		FolderURL:        record.FolderURL,
		ParentFolderName: record.ParentFolderName,
		ParentFolderURL:  record.ParentFolderURL,
		Errors:           strings.Join(validationMessages, errorMessageSeparatorConstant),
		LastAccessedDate: record.LastAccessedDate,
	}
	if dashboardElement != nil {
		row.DashboardElement = *dashboardElement
	}
	return row
}
