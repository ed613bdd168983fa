package interfaces

import (
	"context"

	"summit_contracting/internal/domain/entities"
)

// IQuoteRepository abstracts DynamoDB persistence for Quote.
//
// Save semantics match the editor's persistence API:
//   - a quote with no ID is created and the assigned identity is returned so
//     the save controller can route later autosaves
//   - a quote with an ID is updated in place
type IQuoteRepository interface {
	Save(ctx context.Context, q entities.Quote) (entities.Quote, error)
	GetByID(ctx context.Context, id string) (entities.Quote, error)
	UpdateStatusByID(ctx context.Context, id string, status entities.QuoteStatus) (entities.Quote, error)
}
