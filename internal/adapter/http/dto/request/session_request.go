package request

import (
	"errors"
	"strings"

	"summit_contracting/internal/domain/entities"
)

var (
	ErrInvalidNavigationKind = errors.New("invalid navigation kind")
	ErrInvalidDecisionValue  = errors.New("invalid decision value")
)

// OpenSessionRequest opens an editor session. An empty quote_id starts a new
// quote; a non-empty one hydrates the persisted document.
type OpenSessionRequest struct {
	QuoteID string `json:"quote_id"`
}

// NavigationIntentRequest reports a navigation event the client intercepted.
type NavigationIntentRequest struct {
	Kind         string `json:"kind" binding:"required"`
	Target       string `json:"target"`
	TargetAttr   string `json:"target_attr"`
	HasDownload  bool   `json:"has_download"`
	CurrentRoute string `json:"current_route"`
}

func (r NavigationIntentRequest) ToEntity() (entities.NavigationIntent, error) {
	kind := entities.NavigationKind(strings.TrimSpace(strings.ToLower(r.Kind)))
	switch kind {
	case entities.NavigationKindLink, entities.NavigationKindBack,
		entities.NavigationKindReload, entities.NavigationKindClose:
	default:
		return entities.NavigationIntent{}, ErrInvalidNavigationKind
	}
	return entities.NavigationIntent{
		Kind:         kind,
		Target:       r.Target,
		TargetAttr:   r.TargetAttr,
		HasDownload:  r.HasDownload,
		CurrentRoute: r.CurrentRoute,
	}, nil
}

// NavigationDecisionRequest answers the pending three-way leave prompt.
type NavigationDecisionRequest struct {
	Decision string `json:"decision" binding:"required"`
}

func (r NavigationDecisionRequest) ToEntity() (entities.Decision, error) {
	d := entities.Decision(strings.TrimSpace(strings.ToLower(r.Decision)))
	switch d {
	case entities.DecisionConfirm, entities.DecisionDiscard, entities.DecisionCancel:
		return d, nil
	default:
		return "", ErrInvalidDecisionValue
	}
}
