package export

import (
	"strings"
	"testing"

	"summit_contracting/internal/domain/entities"
)

func proposalQuote() entities.Quote {
	return entities.Quote{
		Number:  "Q-1",
		Title:   "Kitchen renovation",
		Client:  "Jordan Lee",
		Address: "12 Cedar St",
		Items: []entities.PricingItem{
			{Name: "Framing", Price: "1,000.00", PST: true},
			{Name: "Electrical", Price: "500.00", GST: true},
		},
		OptionalServices: []entities.OptionalService{{Service: "Site cleanup", Price: "150.00"}},
		Sections: []entities.Section{
			{Type: entities.SectionTypeText, Title: "Scope", Body: "Full gut and rebuild."},
			{Type: entities.SectionTypeEstimate, Title: "legacy"},
		},
		PSTRate: 7,
		GSTRate: 5,
	}
}

func TestRenderProposalHTML(t *testing.T) {
	q := proposalQuote()
	html, err := RenderProposalHTML(buildTemplateData(q, q.ComputeTotals(), entities.EstimateTotals{}))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	for _, want := range []string{
		"Kitchen renovation",
		"Jordan Lee",
		"Framing",
		"1,000.00",
		"Site cleanup",
		"Full gut and rebuild.",
		"1,595.00",
	} {
		if !strings.Contains(html, want) {
			t.Fatalf("rendered proposal missing %q", want)
		}
	}

	if strings.Contains(html, "legacy") {
		t.Fatalf("legacy estimate section must not render")
	}
}

func TestRenderProposalHTML_TaxColumns(t *testing.T) {
	q := proposalQuote()
	q.Items = []entities.PricingItem{{Name: "Framing", Price: "100.00"}}

	html, err := RenderProposalHTML(buildTemplateData(q, q.ComputeTotals(), entities.EstimateTotals{}))
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if strings.Contains(html, "PST") || strings.Contains(html, "GST") {
		t.Fatalf("untaxed quote must hide both tax rows")
	}
}

func TestProposalTitle(t *testing.T) {
	q := proposalQuote()
	if got := proposalTitle(q); got != "Kitchen renovation" {
		t.Fatalf("expected quote title, got %q", got)
	}
	q.Title = ""
	if got := proposalTitle(q); got != "Proposal Q-1" {
		t.Fatalf("expected number fallback, got %q", got)
	}
}

func TestSanitizeFilename(t *testing.T) {
	got := sanitizeFilename("Kitchen / Bath: Phase #2")
	if strings.ContainsAny(got, "/:#") {
		t.Fatalf("unsafe characters survived: %q", got)
	}
	if got == "" {
		t.Fatalf("expected non-empty filename")
	}
}
