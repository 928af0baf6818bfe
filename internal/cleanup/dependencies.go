package cleanup

import "context"

// ContentMutator toggles the soft-deleted state of catalog content.
type ContentMutator interface {
	SetDashboardDeleted(executionContext context.Context, dashboardID string, deleted bool) error
	SetLookDeleted(executionContext context.Context, lookID string, deleted bool) error
}

// ConfirmationPrompter prompts users for confirmation before mutations.
type ConfirmationPrompter interface {
	Confirm(prompt string) (bool, error)
}
