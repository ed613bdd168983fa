package response

import (
	"summit_contracting/internal/domain/entities"
	"summit_contracting/internal/usecase"
)

// SessionResponse is the editor's full view of its session: the document,
// both totals families, and the save-state badge the header renders.
type SessionResponse struct {
	SessionID string `json:"session_id"`

	Quote    QuoteResponse          `json:"quote"`
	Totals   TotalsResponse         `json:"totals"`
	Estimate EstimateTotalsResponse `json:"estimate"`

	SaveState   string `json:"save_state"`
	Badge       string `json:"badge"`
	Dirty       bool   `json:"dirty"`
	Fingerprint string `json:"fingerprint"`
	ExportStale bool   `json:"export_stale"`
	HasPending  bool   `json:"has_pending_intent"`
}

func FromSnapshot(snap usecase.SessionSnapshot) SessionResponse {
	return SessionResponse{
		SessionID:   snap.ID,
		Quote:       FromQuote(snap.Quote),
		Totals:      FromTotals(snap.Quote, snap.Totals),
		Estimate:    FromEstimateTotals(snap.Estimate),
		SaveState:   string(snap.SaveState),
		Badge:       snap.SaveState.Badge(),
		Dirty:       snap.Dirty,
		Fingerprint: snap.Fingerprint,
		ExportStale: snap.ExportStale,
		HasPending:  snap.HasPending,
	}
}

// NavigationResponse answers both the intent and the decision endpoints.
// Prompt is present only while a suspended intent awaits the user.
type NavigationResponse struct {
	Prompt     *entities.ConfirmPrompt `json:"prompt,omitempty"`
	Resolution entities.Resolution     `json:"resolution"`
}

// UnsavedResponse reports the process-wide unsaved-changes flag.
type UnsavedResponse struct {
	AnyUnsaved bool `json:"any_unsaved"`
}
