package lookerapi

import (
	"encoding/json"
	"strings"

	"github.com/lookbench/lookaudit/internal/catalog"
)

// flexibleID absorbs the identifier representations the API mixes across
// versions: JSON strings, JSON numbers, and null. The pipeline joins on the
// stringified value, so everything normalizes to a string here.
type flexibleID string

// UnmarshalJSON implements json.Unmarshaler.
func (identifier *flexibleID) UnmarshalJSON(payload []byte) error {
	trimmedPayload := strings.TrimSpace(string(payload))
	if trimmedPayload == "null" {
		*identifier = ""
		return nil
	}

	if strings.HasPrefix(trimmedPayload, `"`) {
		var decodedValue string
		if decodeError := json.Unmarshal(payload, &decodedValue); decodeError != nil {
			return decodeError
		}
		*identifier = flexibleID(decodedValue)
		return nil
	}

	var decodedNumber json.Number
	if decodeError := json.Unmarshal(payload, &decodedNumber); decodeError != nil {
		return decodeError
	}
	*identifier = flexibleID(decodedNumber.String())
	return nil
}

func (identifier flexibleID) pointer() *string {
	if len(identifier) == 0 {
		return nil
	}
	value := string(identifier)
	return &value
}

type folderResource struct {
	ID       flexibleID `json:"id"`
	ParentID flexibleID `json:"parent_id"`
	Name     *string    `json:"name"`
}

type contentResource struct {
	ID        flexibleID      `json:"id"`
	Title     string          `json:"title"`
	UserID    flexibleID      `json:"user_id"`
	Folder    *folderResource `json:"folder"`
	CreatedAt *string         `json:"created_at"`
}

type userResource struct {
	ID        flexibleID `json:"id"`
	FirstName string     `json:"first_name"`
	LastName  string     `json:"last_name"`
	Email     string     `json:"email"`
}

type validationMessageResource struct {
	Message string `json:"message"`
}

type dashboardElementResource struct {
	Title *string `json:"title"`
}

type validationResource struct {
	Dashboard        *contentResource            `json:"dashboard"`
	Look             *contentResource            `json:"look"`
	Errors           []validationMessageResource `json:"errors"`
	DashboardElement *dashboardElementResource   `json:"dashboard_element"`
}

type contentValidationResponse struct {
	ContentWithErrors []validationResource `json:"content_with_errors"`
}

type inlineQueryRequest struct {
	Model            string            `json:"model"`
	View             string            `json:"view"`
	Fields           []string          `json:"fields"`
	Filters          map[string]string `json:"filters,omitempty"`
	FilterExpression string            `json:"filter_expression,omitempty"`
	Sorts            []string          `json:"sorts,omitempty"`
}

type contentUsageRow struct {
	DashboardID          flexibleID `json:"dashboard.id"`
	LookID               flexibleID `json:"look.id"`
	DashboardCreatedDate *string    `json:"dashboard.created_date"`
	LookCreatedDate      *string    `json:"look.created_date"`
	ContentTitle         string     `json:"content_usage.content_title"`
	ContentType          string     `json:"content_usage.content_type"`
	EmbedTotal           int        `json:"content_usage.embed_total"`
	APITotal             int        `json:"content_usage.api_total"`
	FavoritesTotal       int        `json:"content_usage.favorites_total"`
	ScheduleTotal        int        `json:"content_usage.schedule_total"`
	OtherTotal           int        `json:"content_usage.other_total"`
	LastAccessedDate     *string    `json:"content_usage.last_accessed_date"`
}

type modelUsageQueryRow struct {
	DashboardID flexibleID `json:"dashboard.id"`
	LookID      flexibleID `json:"look.id"`
	QueryModel  *string    `json:"query.model"`
}

func convertContentResources(resources []contentResource, contentType catalog.ContentType) []catalog.ContentItem {
	items := make([]catalog.ContentItem, 0, len(resources))
	for _, resource := range resources {
		item := catalog.ContentItem{
			ID:          string(resource.ID),
			ContentType: contentType,
			Title:       resource.Title,
			OwnerID:     resource.UserID.pointer(),
			CreatedDate: resource.CreatedAt,
		}
		if resource.Folder != nil {
			item.FolderID = resource.Folder.ID.pointer()
		}
		items = append(items, item)
	}
	return items
}

func convertUserResources(resources []userResource) []catalog.User {
	users := make([]catalog.User, 0, len(resources))
	for _, resource := range resources {
		users = append(users, catalog.User{
			ID:        string(resource.ID),
			FirstName: resource.FirstName,
			LastName:  resource.LastName,
			Email:     resource.Email,
		})
	}
	return users
}

func convertFolderResources(resources []folderResource) []catalog.Folder {
	folders := make([]catalog.Folder, 0, len(resources))
	for _, resource := range resources {
		folders = append(folders, catalog.Folder{
			ID:       string(resource.ID),
			ParentID: resource.ParentID.pointer(),
			Name:     resource.Name,
		})
	}
	return folders
}

func convertValidationResources(resources []validationResource) []catalog.ValidationError {
	findings := make([]catalog.ValidationError, 0, len(resources))
	for _, resource := range resources {
		contentType := catalog.ContentTypeLook
		source := resource.Look
		if resource.Dashboard != nil {
			contentType = catalog.ContentTypeDashboard
			source = resource.Dashboard
		}
		if source == nil {
			continue
		}

		finding := catalog.ValidationError{
			Content: catalog.ContentItem{
				ID:          string(source.ID),
				ContentType: contentType,
				Title:       source.Title,
				OwnerID:     source.UserID.pointer(),
				CreatedDate: source.CreatedAt,
			},
		}
		if source.Folder != nil {
			finding.Content.FolderID = source.Folder.ID.pointer()
		}
		for _, message := range resource.Errors {
			finding.Messages = append(finding.Messages, message.Message)
		}
		if contentType == catalog.ContentTypeDashboard && resource.DashboardElement != nil {
			finding.DashboardElement = resource.DashboardElement.Title
		}
		findings = append(findings, finding)
	}
	return findings
}

func convertContentUsageRows(rows []contentUsageRow) []catalog.UsageRecord {
	records := make([]catalog.UsageRecord, 0, len(rows))
	for _, row := range rows {
		record := catalog.UsageRecord{
			ContentType:      catalog.ContentType(row.ContentType),
			ContentTitle:     row.ContentTitle,
			LastAccessedDate: row.LastAccessedDate,
			EmbedTotal:       row.EmbedTotal,
			APITotal:         row.APITotal,
			FavoritesTotal:   row.FavoritesTotal,
			ScheduleTotal:    row.ScheduleTotal,
			OtherTotal:       row.OtherTotal,
		}
		switch record.ContentType {
		case catalog.ContentTypeDashboard:
			record.ContentID = string(row.DashboardID)
			record.CreatedDate = row.DashboardCreatedDate
		case catalog.ContentTypeLook:
			record.ContentID = string(row.LookID)
			record.CreatedDate = row.LookCreatedDate
		}
		records = append(records, record)
	}
	return records
}

func convertModelUsageRows(rows []modelUsageQueryRow, contentType catalog.ContentType) []catalog.ModelUsageRow {
	converted := make([]catalog.ModelUsageRow, 0, len(rows))
	for _, row := range rows {
		contentID := string(row.DashboardID)
		if contentType == catalog.ContentTypeLook {
			contentID = string(row.LookID)
		}
		converted = append(converted, catalog.ModelUsageRow{
			ContentID:  contentID,
			QueryModel: row.QueryModel,
		})
	}
	return converted
}
