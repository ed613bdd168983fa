package interfaces

import (
	"context"

	"github.com/shopspring/decimal"
)

// IEstimateProvider is the externally-owned estimate component that owns the
// totals while a quote is in delegated pricing mode.
//
// The getters are synchronous and are polled on a fixed interval rather than
// subscribed; only Save crosses a network boundary. During a manual save the
// estimate must be saved first and a failure aborts the whole save; during
// autosave a failure is logged and the quote save proceeds best-effort.
type IEstimateProvider interface {
	Save(ctx context.Context) error
	GetGrandTotal() decimal.Decimal
	GetTotalEstimate() decimal.Decimal
	GetPST() decimal.Decimal
	GetGST() decimal.Decimal
}

// IEstimateProviderFactory binds a provider to one estimate. The editor
// session asks for a provider when a quote references an estimate and
// re-binds if the reference changes mid-session.
type IEstimateProviderFactory interface {
	Provider(estimateID string) IEstimateProvider
}
