package request

import (
	"errors"
	"strings"

	"summit_contracting/internal/domain/entities"
	"summit_contracting/internal/domain/money"
)

var (
	ErrInvalidPriceValue  = errors.New("invalid price value")
	ErrInvalidPricingMode = errors.New("invalid pricing mode")
	ErrInvalidSectionType = errors.New("invalid section type")
)

type PricingItemRequest struct {
	Name  string `json:"name"`
	Price string `json:"price"`
	PST   bool   `json:"pst"`
	GST   bool   `json:"gst"`
}

type OptionalServiceRequest struct {
	Service string `json:"service"`
	Price   string `json:"price"`
}

type SectionImageRequest struct {
	ID       string `json:"id"`
	AssetRef string `json:"asset_ref"`
	Caption  string `json:"caption"`
}

type SectionRequest struct {
	Type   string                `json:"type"`
	Title  string                `json:"title"`
	Body   string                `json:"body"`
	Images []SectionImageRequest `json:"images"`
}

// QuoteDocumentRequest is the full editable form posted on every edit. The
// server owns id, number, status and timestamps; the payload never carries
// them.
type QuoteDocumentRequest struct {
	ProjectID string `json:"project_id"`

	Title        string `json:"title"`
	Client       string `json:"client"`
	ContactEmail string `json:"contact_email"`
	ContactPhone string `json:"contact_phone"`
	Address      string `json:"address"`
	IssueDate    string `json:"issue_date"`
	ExpiryDate   string `json:"expiry_date"`
	Notes        string `json:"notes"`

	Items            []PricingItemRequest     `json:"items"`
	OptionalServices []OptionalServiceRequest `json:"optional_services"`
	Sections         []SectionRequest         `json:"sections"`

	PricingMode string  `json:"pricing_mode"`
	PSTRate     float64 `json:"pst_rate"`
	GSTRate     float64 `json:"gst_rate"`
	MarkupRate  float64 `json:"markup_rate"`
	EstimateID  string  `json:"estimate_id"`
}

// ToEntity validates the form and canonicalizes every price into accounting
// format. Prices are the only fields that can be rejected; free-text fields
// pass through untouched.
func (r QuoteDocumentRequest) ToEntity() (entities.Quote, error) {
	mode, err := resolvePricingMode(r.PricingMode)
	if err != nil {
		return entities.Quote{}, err
	}

	q := entities.Quote{
		ProjectID:    strings.TrimSpace(r.ProjectID),
		Title:        r.Title,
		Client:       r.Client,
		ContactEmail: r.ContactEmail,
		ContactPhone: r.ContactPhone,
		Address:      r.Address,
		IssueDate:    r.IssueDate,
		ExpiryDate:   r.ExpiryDate,
		Notes:        r.Notes,
		PricingMode:  mode,
		PSTRate:      r.PSTRate,
		GSTRate:      r.GSTRate,
		MarkupRate:   r.MarkupRate,
		EstimateID:   strings.TrimSpace(r.EstimateID),
	}

	for _, it := range r.Items {
		price, err := money.Normalize(it.Price)
		if err != nil {
			return entities.Quote{}, ErrInvalidPriceValue
		}
		q.Items = append(q.Items, entities.PricingItem{
			Name:  it.Name,
			Price: price,
			PST:   it.PST,
			GST:   it.GST,
		})
	}

	for _, svc := range r.OptionalServices {
		price, err := money.Normalize(svc.Price)
		if err != nil {
			return entities.Quote{}, ErrInvalidPriceValue
		}
		q.OptionalServices = append(q.OptionalServices, entities.OptionalService{
			Service: svc.Service,
			Price:   price,
		})
	}

	for _, sec := range r.Sections {
		st, err := resolveSectionType(sec.Type)
		if err != nil {
			return entities.Quote{}, err
		}
		out := entities.Section{Type: st, Title: sec.Title, Body: sec.Body}
		for _, img := range sec.Images {
			out.Images = append(out.Images, entities.SectionImage{
				ID:       img.ID,
				AssetRef: img.AssetRef,
				Caption:  img.Caption,
			})
		}
		q.Sections = append(q.Sections, out)
	}

	return q, nil
}

func resolvePricingMode(s string) (entities.PricingMode, error) {
	switch entities.PricingMode(strings.TrimSpace(strings.ToLower(s))) {
	case entities.PricingModeManual, "":
		return entities.PricingModeManual, nil
	case entities.PricingModeDelegated:
		return entities.PricingModeDelegated, nil
	default:
		return "", ErrInvalidPricingMode
	}
}

func resolveSectionType(s string) (entities.SectionType, error) {
	switch entities.SectionType(strings.TrimSpace(strings.ToLower(s))) {
	case entities.SectionTypeText, "":
		return entities.SectionTypeText, nil
	case entities.SectionTypeImages:
		return entities.SectionTypeImages, nil
	case entities.SectionTypeEstimate:
		// Accepted on the wire for editor compatibility; the session drops it
		// at every persistence boundary.
		return entities.SectionTypeEstimate, nil
	default:
		return "", ErrInvalidSectionType
	}
}
