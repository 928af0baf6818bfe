package catalog

// ContentType identifies the kind of a catalog content item.
type ContentType string

// Content types recognized by the audit reports.
const (
	ContentTypeDashboard ContentType = "dashboard"
	ContentTypeLook      ContentType = "look"
)

// Valid reports whether the content type is one the reports understand.
func (contentType ContentType) Valid() bool {
	return contentType == ContentTypeDashboard || contentType == ContentTypeLook
}

// Plural returns the URL path segment for the content type ("dashboards", "looks").
func (contentType ContentType) Plural() string {
	return string(contentType) + "s"
}

// ContentItem is one dashboard or look from the catalog listing.
type ContentItem struct {
	ID          string      `json:"id"`
	ContentType ContentType `json:"content_type"`
	Title       string      `json:"title"`
	OwnerID     *string     `json:"user_id"`
	FolderID    *string     `json:"folder_id"`
	CreatedDate *string     `json:"created_date"`
}

// Folder is one node of the content folder hierarchy. ParentID is nil for
// top-level folders; Name may legitimately be absent for folders created
// through older API versions.
type Folder struct {
	ID       string  `json:"id"`
	ParentID *string `json:"parent_id"`
	Name     *string `json:"name"`
}

// User is one entry from the instance user directory.
type User struct {
	ID        string `json:"id"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Email     string `json:"email"`
}

// UsageRecord carries aggregated interaction statistics for one content item.
type UsageRecord struct {
	ContentID        string      `json:"content_id"`
	ContentType      ContentType `json:"content_type"`
	ContentTitle     string      `json:"content_title"`
	CreatedDate      *string     `json:"created_date"`
	LastAccessedDate *string     `json:"last_accessed_date"`
	EmbedTotal       int         `json:"embed_total"`
	APITotal         int         `json:"api_total"`
	FavoritesTotal   int         `json:"favorites_total"`
	ScheduleTotal    int         `json:"schedule_total"`
	OtherTotal       int         `json:"other_total"`
}

// ModelUsageRow is one row of the per-query usage log: a content item paired
// with the LookML model one of its queries ran against. QueryModel is nil for
// rows without an associated query.
type ModelUsageRow struct {
	ContentID  string  `json:"content_id"`
	QueryModel *string `json:"query_model"`
}

// ValidationError is one finding from the content validator: the broken content
// item, the validator messages, and for dashboards the failing element title.
type ValidationError struct {
	Content          ContentItem `json:"content"`
	Messages         []string    `json:"errors"`
	DashboardElement *string     `json:"dashboard_element"`
}
