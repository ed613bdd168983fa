package interfaces

import (
	"context"

	"summit_contracting/internal/domain/entities"
)

// IDepositRepository abstracts DynamoDB persistence for DepositPayment.
//
// ListByQuoteID returns deposits ordered newest first.

type IDepositRepository interface {
	Create(ctx context.Context, p entities.DepositPayment) (entities.DepositPayment, error)
	GetByID(ctx context.Context, id string) (entities.DepositPayment, error)
	ListByQuoteID(ctx context.Context, quoteID string) ([]entities.DepositPayment, error)
}
