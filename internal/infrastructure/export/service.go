// Package export turns a quote snapshot into the client-facing proposal PDF.
//
// The artifact is a point-in-time rendering: the editor session records the
// document fingerprint at generation time, and the proposal is considered
// stale exactly when the fingerprint has moved since.
package export

import (
	"errors"
	"log"

	"summit_contracting/internal/domain/entities"
	"summit_contracting/internal/domain/money"
)

var (
	// ErrPDFDependencyMissing indicates the headless browser runtime is
	// unavailable.
	ErrPDFDependencyMissing = errors.New("export pdf dependency missing")
)

// Result contains the export output.
type Result struct {
	Data     []byte
	Filename string
	MimeType string
}

// Service renders proposals.
type Service struct{}

func NewService() *Service {
	return &Service{}
}

// ExportPDF renders the quote snapshot to the proposal HTML and prints it to
// PDF with headless Chrome.
func (s *Service) ExportPDF(q entities.Quote, totals entities.Totals, est entities.EstimateTotals) (*Result, error) {
	html, err := RenderProposalHTML(buildTemplateData(q, totals, est))
	if err != nil {
		return nil, err
	}
	log.Printf("[export][service] rendering proposal quote_number=%s html_len=%d", q.Number, len(html))
	return exportPDF(html, proposalTitle(q))
}

func proposalTitle(q entities.Quote) string {
	if q.Title != "" {
		return q.Title
	}
	return "Proposal " + q.Number
}

func buildTemplateData(q entities.Quote, totals entities.Totals, est entities.EstimateTotals) TemplateData {
	data := TemplateData{
		Title:      proposalTitle(q),
		Number:     q.Number,
		Client:     q.Client,
		Address:    q.Address,
		IssueDate:  q.IssueDate,
		ExpiryDate: q.ExpiryDate,
		Notes:      q.Notes,
		ShowPST:    q.ShowPSTInPDF(),
		ShowGST:    q.ShowGSTInPDF(),
		PST:        money.Format(totals.PST),
		GST:        money.Format(totals.GST),
		Subtotal:   money.Format(totals.Subtotal),
		GrandTotal: money.Format(q.ResolveDisplayTotal(est)),
	}

	for _, it := range q.Items {
		data.Items = append(data.Items, TemplateItem{Name: it.Name, Price: it.Price})
	}
	for _, svc := range q.OptionalServices {
		data.Services = append(data.Services, TemplateService{Service: svc.Service, Price: svc.Price})
	}
	for _, sec := range q.PersistableSections() {
		ts := TemplateSection{Title: sec.Title, Body: sec.Body}
		for _, img := range sec.Images {
			ts.Images = append(ts.Images, TemplateImage{AssetRef: img.AssetRef, Caption: img.Caption})
		}
		data.Sections = append(data.Sections, ts)
	}
	return data
}
