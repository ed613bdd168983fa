package usecase

import (
	"crypto/sha1"
	"encoding/hex"
	"encoding/json"

	"summit_contracting/internal/domain/entities"
	"summit_contracting/internal/domain/money"
)

// quoteProjection is the canonical serialization of a quote used for change
// detection. Field order is fixed by the struct, so identical quote state
// always produces identical bytes.
//
// The projection covers everything that participates in dirty detection:
// identity used for save routing, all scalar fields, pricing items, optional
// services, sections (with legacy variants filtered), mode and rates, the
// derived PDF tax flags, and the delegated display total when that mode is
// active. Transient UI state never enters the projection.
type quoteProjection struct {
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
	Status       string `json:"status"`

	Items            []entities.PricingItem     `json:"items"`
	OptionalServices []entities.OptionalService `json:"optional_services"`
	Sections         []entities.Section         `json:"sections"`

	PricingMode string  `json:"pricing_mode"`
	PSTRate     float64 `json:"pst_rate"`
	GSTRate     float64 `json:"gst_rate"`
	MarkupRate  float64 `json:"markup_rate"`
	EstimateID  string  `json:"estimate_id"`

	DisplayTotal string `json:"display_total,omitempty"`
	ShowPSTInPDF bool   `json:"show_pst_in_pdf"`
	ShowGSTInPDF bool   `json:"show_gst_in_pdf"`
}

// ComputeFingerprint digests the quote into the opaque comparison key used by
// the dirty-state tracker. Equality of fingerprints is the sole criterion for
// "no unsaved changes". The delegated estimate totals are captured fresh on
// every call; the result is deliberately not memoized.
func ComputeFingerprint(q entities.Quote, est entities.EstimateTotals) string {
	p := quoteProjection{
		ID:               q.ID,
		Number:           q.Number,
		ProjectID:        q.ProjectID,
		Title:            q.Title,
		Client:           q.Client,
		ContactEmail:     q.ContactEmail,
		ContactPhone:     q.ContactPhone,
		Address:          q.Address,
		IssueDate:        q.IssueDate,
		ExpiryDate:       q.ExpiryDate,
		Notes:            q.Notes,
		Status:           string(q.Status),
		Items:            q.Items,
		OptionalServices: q.OptionalServices,
		Sections:         q.PersistableSections(),
		PricingMode:      string(q.PricingMode),
		PSTRate:          q.PSTRate,
		GSTRate:          q.GSTRate,
		MarkupRate:       q.MarkupRate,
		EstimateID:       q.EstimateID,
		ShowPSTInPDF:     q.ShowPSTInPDF(),
		ShowGSTInPDF:     q.ShowGSTInPDF(),
	}
	if q.PricingMode == entities.PricingModeDelegated {
		p.DisplayTotal = money.Format(est.GrandTotal)
	}

	b, err := json.Marshal(p)
	if err != nil {
		// A projection of plain values cannot fail to marshal; keep the
		// compiler happy without poisoning the fingerprint space.
		return "fingerprint-error"
	}
	sum := sha1.Sum(b)
	return hex.EncodeToString(sum[:])
}
