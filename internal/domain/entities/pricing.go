package entities

import (
	"github.com/shopspring/decimal"

	"summit_contracting/internal/domain/money"
)

// Totals is the pricing breakdown for a quote in manual mode.
//
// Pricing rules:
//   - directCost = sum of all item prices
//   - pstBase / gstBase are independent sums over the items carrying each flag
//   - subtotal = directCost + pst; grandTotal = subtotal + gst
//   - totalWithMarkup is display-only and never feeds grandTotal
type Totals struct {
	DirectCost      decimal.Decimal
	PSTBase         decimal.Decimal
	GSTBase         decimal.Decimal
	PST             decimal.Decimal
	Subtotal        decimal.Decimal
	GST             decimal.Decimal
	GrandTotal      decimal.Decimal
	TotalWithMarkup decimal.Decimal
}

// ComputeTotals runs the manual-mode pricing engine over the quote's items.
// Item prices that fail to parse contribute zero rather than aborting the
// whole computation; the editor re-canonicalizes fields on blur, so transient
// garbage only ever exists mid-edit.
func (q Quote) ComputeTotals() Totals {
	var t Totals
	for _, it := range q.Items {
		price, err := money.Parse(it.Price)
		if err != nil {
			continue
		}
		t.DirectCost = t.DirectCost.Add(price)
		if it.PST {
			t.PSTBase = t.PSTBase.Add(price)
		}
		if it.GST {
			t.GSTBase = t.GSTBase.Add(price)
		}
	}

	hundred := decimal.NewFromInt(100)
	t.PST = t.PSTBase.Mul(decimal.NewFromFloat(q.PSTRate)).Div(hundred)
	t.Subtotal = t.DirectCost.Add(t.PST)
	t.GST = t.GSTBase.Mul(decimal.NewFromFloat(q.GSTRate)).Div(hundred)
	t.GrandTotal = t.Subtotal.Add(t.GST)
	t.TotalWithMarkup = t.DirectCost.Mul(decimal.NewFromFloat(q.MarkupRate).Div(hundred).Add(decimal.NewFromInt(1)))
	return t
}

// ShowPSTInPDF reports whether any item carries the PST flag. The flag is
// derived from the items alone, independent of the active pricing mode.
func (q Quote) ShowPSTInPDF() bool {
	for _, it := range q.Items {
		if it.PST {
			return true
		}
	}
	return false
}

// ShowGSTInPDF reports whether any item carries the GST flag.
func (q Quote) ShowGSTInPDF() bool {
	for _, it := range q.Items {
		if it.GST {
			return true
		}
	}
	return false
}

// EstimateTotals is the totals family pulled from the external estimate
// component while the quote is in delegated pricing mode. The session polls
// the provider's getters and caches the latest snapshot here.
type EstimateTotals struct {
	GrandTotal    decimal.Decimal
	TotalEstimate decimal.Decimal
	PST           decimal.Decimal
	GST           decimal.Decimal
}

// ResolveDisplayTotal resolves the total that feeds the persisted payload:
// the delegated estimate's grand total when that mode is active, the manual
// engine's grand total otherwise.
func (q Quote) ResolveDisplayTotal(est EstimateTotals) decimal.Decimal {
	if q.PricingMode == PricingModeDelegated {
		return est.GrandTotal
	}
	return q.ComputeTotals().GrandTotal
}
