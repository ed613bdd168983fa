package interfaces

import "context"

// IUnsavedFlagStore is the process-wide "has unsaved changes" registry.
//
// Navigation affordances elsewhere in the application (dispatch, training,
// project views) consult it before leaving the suite. The dirty-state tracker
// is the single writer: it pushes on every dirty/clean transition and clears
// the entry on session teardown. Everything else is read-only.
type IUnsavedFlagStore interface {
	SetUnsaved(ctx context.Context, sessionID string, unsaved bool) error
	Clear(ctx context.Context, sessionID string) error
	AnyUnsaved(ctx context.Context) (bool, error)
}
