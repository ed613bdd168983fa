package response

import (
	"time"

	"summit_contracting/internal/domain/entities"
	"summit_contracting/internal/domain/money"
)

type QuoteResponse struct {
	QuoteID   string `json:"quote_id"`
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

	Status string `json:"status"`

	Items            []entities.PricingItem     `json:"items"`
	OptionalServices []entities.OptionalService `json:"optional_services"`
	Sections         []entities.Section         `json:"sections"`

	PricingMode  string  `json:"pricing_mode"`
	PSTRate      float64 `json:"pst_rate"`
	GSTRate      float64 `json:"gst_rate"`
	MarkupRate   float64 `json:"markup_rate"`
	EstimateID   string  `json:"estimate_id,omitempty"`
	DisplayTotal string  `json:"display_total"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func FromQuote(q entities.Quote) QuoteResponse {
	return QuoteResponse{
		QuoteID:          q.ID,
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
		Sections:         q.Sections,
		PricingMode:      string(q.PricingMode),
		PSTRate:          q.PSTRate,
		GSTRate:          q.GSTRate,
		MarkupRate:       q.MarkupRate,
		EstimateID:       q.EstimateID,
		DisplayTotal:     q.DisplayTotal,
		CreatedAt:        q.CreatedAt,
		UpdatedAt:        q.UpdatedAt,
	}
}

// TotalsResponse carries every pricing figure in accounting format; clients
// display the strings verbatim.
type TotalsResponse struct {
	DirectCost      string `json:"direct_cost"`
	PST             string `json:"pst"`
	Subtotal        string `json:"subtotal"`
	GST             string `json:"gst"`
	GrandTotal      string `json:"grand_total"`
	TotalWithMarkup string `json:"total_with_markup"`
	ShowPSTInPDF    bool   `json:"show_pst_in_pdf"`
	ShowGSTInPDF    bool   `json:"show_gst_in_pdf"`
}

func FromTotals(q entities.Quote, t entities.Totals) TotalsResponse {
	return TotalsResponse{
		DirectCost:      money.Format(t.DirectCost),
		PST:             money.Format(t.PST),
		Subtotal:        money.Format(t.Subtotal),
		GST:             money.Format(t.GST),
		GrandTotal:      money.Format(t.GrandTotal),
		TotalWithMarkup: money.Format(t.TotalWithMarkup),
		ShowPSTInPDF:    q.ShowPSTInPDF(),
		ShowGSTInPDF:    q.ShowGSTInPDF(),
	}
}

type EstimateTotalsResponse struct {
	GrandTotal    string `json:"grand_total"`
	TotalEstimate string `json:"total_estimate"`
	PST           string `json:"pst"`
	GST           string `json:"gst"`
}

func FromEstimateTotals(e entities.EstimateTotals) EstimateTotalsResponse {
	return EstimateTotalsResponse{
		GrandTotal:    money.Format(e.GrandTotal),
		TotalEstimate: money.Format(e.TotalEstimate),
		PST:           money.Format(e.PST),
		GST:           money.Format(e.GST),
	}
}
