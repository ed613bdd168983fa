package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"summit_contracting/internal/domain/entities"
	"summit_contracting/internal/domain/money"
	"summit_contracting/internal/usecase/interfaces"
)

var (
	ErrDepositNotFound            = errors.New("deposit payment not found")
	ErrInvalidDepositQuoteID      = errors.New("invalid quote_id")
	ErrInvalidDepositPayload      = errors.New("invalid deposit payload")
	ErrQuoteNotAccepted           = errors.New("quote not accepted")
	ErrPaymentGatewayBadRequest   = errors.New("payment gateway bad request")
	ErrPaymentGatewayUnauthorized = errors.New("payment gateway unauthorized")
)

// defaultDepositRate is the fraction of the quote total collected up front,
// in percent. Overridable with DEPOSIT_RATE_PERCENT.
const defaultDepositRate = 25.0

// IDepositUseCase encapsulates the "create and process deposit" behavior for
// an accepted quote.

type IDepositUseCase interface {
	CreateAndApprove(ctx context.Context, quoteID string, mpPayload json.RawMessage) (entities.DepositPayment, error)
	GetByID(ctx context.Context, id string) (entities.DepositPayment, error)
	ListByQuoteID(ctx context.Context, quoteID string) ([]entities.DepositPayment, error)
}

type DepositUseCase struct {
	repo      interfaces.IDepositRepository
	quoteRepo interfaces.IQuoteRepository
	gateway   interfaces.IPaymentGateway
}

var _ IDepositUseCase = (*DepositUseCase)(nil)

func NewDepositUseCase(repo interfaces.IDepositRepository, quoteRepo interfaces.IQuoteRepository, gateway interfaces.IPaymentGateway) *DepositUseCase {
	return &DepositUseCase{repo: repo, quoteRepo: quoteRepo, gateway: gateway}
}

func (u *DepositUseCase) CreateAndApprove(ctx context.Context, quoteID string, mpPayload json.RawMessage) (entities.DepositPayment, error) {
	log.Printf("[deposit][usecase] create-and-approve start raw_quote_id=%q payload_len=%d", quoteID, len(mpPayload))
	quoteID = strings.TrimSpace(quoteID)
	if quoteID == "" {
		return entities.DepositPayment{}, ErrInvalidDepositQuoteID
	}
	if len(mpPayload) == 0 {
		mpPayload = json.RawMessage("{}")
	}
	if !json.Valid(mpPayload) {
		log.Printf("[deposit][usecase] invalid payload (not-json) quote_id=%s", quoteID)
		return entities.DepositPayment{}, ErrInvalidDepositPayload
	}
	if u.gateway == nil {
		log.Printf("[deposit][usecase] gateway not configured quote_id=%s", quoteID)
		return entities.DepositPayment{}, errors.New("payment gateway not configured")
	}

	q, err := u.quoteRepo.GetByID(ctx, quoteID)
	if err != nil {
		log.Printf("[deposit][usecase] failed loading quote quote_id=%s err=%v", quoteID, err)
		return entities.DepositPayment{}, err
	}
	if q.ID == "" {
		return entities.DepositPayment{}, ErrQuoteNotFound
	}
	if q.Status != entities.QuoteStatusAccepted {
		log.Printf("[deposit][usecase] quote not accepted quote_id=%s status=%s", quoteID, q.Status)
		return entities.DepositPayment{}, ErrQuoteNotAccepted
	}

	amount, err := depositAmount(q)
	if err != nil {
		log.Printf("[deposit][usecase] could not resolve deposit amount quote_id=%s err=%v", quoteID, err)
		return entities.DepositPayment{}, ErrInvalidDepositPayload
	}

	// The source of truth for amount is the persisted quote total; the
	// caller's payload is enriched, never trusted for money.
	var reqMap map[string]any
	if err := json.Unmarshal(mpPayload, &reqMap); err != nil {
		return entities.DepositPayment{}, ErrInvalidDepositPayload
	}
	if _, ok := reqMap["external_reference"]; !ok {
		reqMap["external_reference"] = quoteID
	}
	if _, ok := reqMap["description"]; !ok {
		reqMap["description"] = fmt.Sprintf("Deposit for quote %s", q.Number)
	}
	reqMap["transaction_amount"], _ = amount.Round(2).Float64()
	if b, err := json.Marshal(reqMap); err == nil {
		mpPayload = b
	}

	providerPaymentID, providerStatus, providerResp, err := u.gateway.CreatePayment(ctx, mpPayload)
	if err != nil {
		log.Printf("[deposit][usecase] payment gateway failed quote_id=%s err=%v", quoteID, err)
		if isGatewayUnauthorized(err) {
			return entities.DepositPayment{}, ErrPaymentGatewayUnauthorized
		}
		if isGatewayBadRequest(err) {
			return entities.DepositPayment{}, ErrPaymentGatewayBadRequest
		}
		return entities.DepositPayment{}, err
	}
	log.Printf("[deposit][usecase] payment gateway success quote_id=%s provider_payment_id=%s provider_status=%s", quoteID, providerPaymentID, providerStatus)

	var parsed map[string]interface{}
	if err := json.Unmarshal(providerResp, &parsed); err != nil {
		log.Printf("[deposit][usecase] provider response unmarshal failed quote_id=%s err=%v", quoteID, err)
	}

	p := entities.DepositPayment{
		ID:           providerPaymentID,
		QuoteID:      quoteID,
		Date:         time.Now().UTC(),
		Status:       entities.PaymentStatusApproved,
		MPPayloadRaw: providerResp,
		MPPayload:    parsed,
	}

	created, err := u.repo.Create(ctx, p)
	if err != nil {
		log.Printf("[deposit][usecase] deposit repository create failed quote_id=%s payment_id=%s err=%v", quoteID, p.ID, err)
		return entities.DepositPayment{}, err
	}
	log.Printf("[deposit][usecase] create-and-approve success quote_id=%s payment_id=%s status=%s", quoteID, created.ID, created.Status)
	return created, nil
}

func (u *DepositUseCase) GetByID(ctx context.Context, id string) (entities.DepositPayment, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return entities.DepositPayment{}, errors.New("invalid deposit id")
	}

	p, err := u.repo.GetByID(ctx, id)
	if err != nil {
		return entities.DepositPayment{}, err
	}
	if p.ID == "" {
		return entities.DepositPayment{}, ErrDepositNotFound
	}
	return p, nil
}

func (u *DepositUseCase) ListByQuoteID(ctx context.Context, quoteID string) ([]entities.DepositPayment, error) {
	quoteID = strings.TrimSpace(quoteID)
	if quoteID == "" {
		return nil, ErrInvalidDepositQuoteID
	}
	return u.repo.ListByQuoteID(ctx, quoteID)
}

// depositAmount derives the deposit from the stored display total and the
// configured deposit rate.
func depositAmount(q entities.Quote) (decimal.Decimal, error) {
	total, err := money.Parse(q.DisplayTotal)
	if err != nil {
		return decimal.Zero, err
	}
	if total.IsZero() {
		return decimal.Zero, errors.New("quote total is zero")
	}
	rate := defaultDepositRate
	if v := strings.TrimSpace(os.Getenv("DEPOSIT_RATE_PERCENT")); v != "" {
		if parsed, err := strconv.ParseFloat(v, 64); err == nil && parsed > 0 && parsed <= 100 {
			rate = parsed
		}
	}
	return total.Mul(decimal.NewFromFloat(rate)).Div(decimal.NewFromInt(100)), nil
}

func isGatewayBadRequest(err error) bool {
	if err == nil {
		return false
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "\"error\":\"bad_request\"") || strings.Contains(msg, "\"status\":400")
}

func isGatewayUnauthorized(err error) bool {
	if err == nil {
		return false
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "\"error\":\"unauthorized\"") || strings.Contains(msg, "\"status\":401")
}
