package enrich

// UnknownMarker denotes a failed join in report output. It is distinct from an
// empty field, which means the source legitimately carries no value (for
// example a top-level folder's parent).
const UnknownMarker = "unknown"

// Record is the denormalized product of enriching one content item: identity
// and URL, folder and parent-folder context, ownership, and usage statistics.
// Every field is always populated, with UnknownMarker standing in for joins
// that found no match, so each report emits a uniform column set.
type Record struct {
	ContentID   string
	ContentType string
	Title       string
	CreatedDate string
	URL         string

	OwnerID   string
	FirstName string
	LastName  string
	Email     string

	FolderID   string
	FolderName string
	FolderURL  string

	ParentFolderID   string
	ParentFolderName string
	ParentFolderURL  string

	LastAccessedDate string
	EmbedTotal       string
	APITotal         string
	FavoritesTotal   string
	ScheduleTotal    string
	OtherTotal       string

	ModelNames []string
}
