package entities

import "time"

// QuoteStatus represents the lifecycle of a quote/proposal.
//
// Domain notes:
//   - Quotes are drafted in the proposal editor, sent to the client, then
//     accepted or rejected. A deposit payment is only taken on accepted quotes.

type QuoteStatus string

const (
	QuoteStatusDraft    QuoteStatus = "draft"
	QuoteStatusSent     QuoteStatus = "sent"
	QuoteStatusAccepted QuoteStatus = "accepted"
	QuoteStatusRejected QuoteStatus = "rejected"
)

// PricingMode selects which totals family feeds the persisted payload and the
// change-detection fingerprint.
//
//   - manual: totals are computed from the quote's own pricing items.
//   - delegated: totals are owned by an external estimate component and pulled
//     on a fixed interval while the editing session is active.

type PricingMode string

const (
	PricingModeManual    PricingMode = "manual"
	PricingModeDelegated PricingMode = "delegated"
)

// PricingItem is a single line item on the quote.
//
// Price is stored as a canonical decimal-string in accounting format
// (fixed 2 decimals, thousands separators) and must round-trip through
// parse -> format without drift. PST and GST are independent flags: an item
// may be taxed by one, both, or neither.
type PricingItem struct {
	Name  string `json:"name"`
	Price string `json:"price"`
	PST   bool   `json:"pst"`
	GST   bool   `json:"gst"`
}

// OptionalService is an informational upsell row. Excluded from all totals.
type OptionalService struct {
	Service string `json:"service"`
	Price   string `json:"price"`
}

type SectionType string

const (
	SectionTypeText   SectionType = "text"
	SectionTypeImages SectionType = "images"

	// SectionTypeEstimate is a legacy variant that must never be persisted.
	// It is filtered out at every serialization boundary.
	SectionTypeEstimate SectionType = "estimate"
)

type SectionImage struct {
	ID       string `json:"id"`
	AssetRef string `json:"asset_ref"`
	Caption  string `json:"caption"`
}

// Section is a tagged proposal content block: either a text block or an image
// gallery. Body is only meaningful for text sections, Images only for image
// sections.
type Section struct {
	Type   SectionType    `json:"type"`
	Title  string         `json:"title"`
	Body   string         `json:"body,omitempty"`
	Images []SectionImage `json:"images,omitempty"`
}

// Quote is the editable proposal document owned by an editor session.
//
// Storage model (DynamoDB):
//   - PK: id
//
// Identity notes:
//   - ID is empty until the first successful save; the repository assigns it.
//   - Number is the human-facing quote code, auto-assigned when the session
//     opens and preserved across an editor "clear".
//   - ProjectID is the owning parent record; a quote with no ID yet can still
//     be autosaved once a project is selected.
type Quote struct {
	ID        string `json:"id"`
	Number    string `json:"number"`
	ProjectID string `json:"project_id"`

	Title        string `json:"title"`
	Client       string `json:"client"`
	ContactEmail string `json:"contact_email"`
	ContactPhone string `json:"contact_phone"`
	Address      string `json:"address"`
	IssueDate    string `json:"issue_date"`
	ExpiryDate   string `json:"expiry_date"`
	Notes        string `json:"notes"`

	Status QuoteStatus `json:"status"`

	Items            []PricingItem     `json:"items"`
	OptionalServices []OptionalService `json:"optional_services"`
	Sections         []Section         `json:"sections"`

	PricingMode PricingMode `json:"pricing_mode"`
	PSTRate     float64     `json:"pst_rate"`
	GSTRate     float64     `json:"gst_rate"`
	MarkupRate  float64     `json:"markup_rate"`

	// EstimateID references the externally-owned estimate when the quote is
	// in delegated pricing mode.
	EstimateID string `json:"estimate_id,omitempty"`

	// DisplayTotal is the mode-resolved grand total in accounting format,
	// written at the serialization boundary on every save. List views and
	// the deposit flow read it instead of re-running the engine.
	DisplayTotal string `json:"display_total,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// PersistableSections returns the sections with legacy variants removed.
// Persisted quotes never contain the estimate section type.
func (q Quote) PersistableSections() []Section {
	out := make([]Section, 0, len(q.Sections))
	for _, s := range q.Sections {
		if s.Type == SectionTypeEstimate {
			continue
		}
		out = append(out, s)
	}
	return out
}

// HasOwner reports whether the quote carries enough identity to be persisted:
// either it was already saved once, or an owning project has been selected.
func (q Quote) HasOwner() bool {
	return q.ID != "" || q.ProjectID != ""
}
