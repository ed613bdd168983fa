package usecase

import (
	"context"
	"errors"
	"log"
	"net/url"
	"strings"

	"summit_contracting/internal/domain/entities"
)

var (
	ErrIntentPending   = errors.New("a navigation intent is already pending")
	ErrNoPendingIntent = errors.New("no navigation intent pending")
	ErrInvalidIntent   = errors.New("invalid navigation intent")
	ErrInvalidDecision = errors.New("invalid navigation decision")
)

func leavePrompt() entities.ConfirmPrompt {
	return entities.ConfirmPrompt{
		Title:       "Unsaved changes",
		Message:     "This proposal has unsaved changes. Save before leaving?",
		ConfirmText: "Save and leave",
		CancelText:  "Stay",
		ShowDiscard: true,
		DiscardText: "Leave without saving",
	}
}

// HandleIntent is the navigation guard. A clean session lets every intent
// through untouched. A dirty session suspends the intent and answers with the
// three-way prompt, except for:
//
//   - link targets the guard never owned: external hosts, mailto:/tel:,
//     fragment-only links, anchors with download or target attributes, and
//     links to the route the editor is already on
//   - tab close / OS-chrome reload, where the only available lever is the
//     browser's own leave-site prompt
//
// Back intents additionally tell the client to re-push the synthetic history
// entry so the browser navigation is neutralized while the decision pends.
func (s *EditorSession) HandleIntent(ctx context.Context, intent entities.NavigationIntent) (*entities.ConfirmPrompt, entities.Resolution, error) {
	switch intent.Kind {
	case entities.NavigationKindLink, entities.NavigationKindBack,
		entities.NavigationKindReload, entities.NavigationKindClose:
	default:
		return nil, entities.Resolution{}, ErrInvalidIntent
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return nil, entities.Resolution{}, ErrSessionClosed
	}
	if s.pendingIntent != nil {
		return nil, entities.Resolution{}, ErrIntentPending
	}

	if !s.isDirtyLocked() {
		return nil, entities.Resolution{Proceed: true, Action: resolvedAction(intent.Kind)}, nil
	}

	if intent.Kind == entities.NavigationKindLink && linkBypassesGuard(intent) {
		return nil, entities.Resolution{Proceed: true, Action: entities.ActionProceed}, nil
	}

	if intent.Kind == entities.NavigationKindClose {
		// Fundamental browser limitation: the custom dialog cannot be shown
		// on unload, only the native confirmation can be requested.
		return nil, entities.Resolution{Proceed: false, Action: entities.ActionNativePrompt}, nil
	}

	captured := intent
	s.pendingIntent = &captured
	log.Printf("[editor][guard] intent suspended session_id=%s kind=%s", s.id, intent.Kind)

	prompt := leavePrompt()
	res := entities.Resolution{Proceed: false, Action: entities.ActionStay}
	if intent.Kind == entities.NavigationKindBack {
		res.Action = entities.ActionRepush
	}
	return &prompt, res, nil
}

// ResolveIntent completes a suspended navigation intent with the user's
// three-way decision.
//
//   - confirm: await a real save first; a failed save keeps the intent
//     pending and surfaces the error, the navigation is not performed
//   - discard: leave immediately without saving
//   - cancel: drop the intent, nothing happens (for back intents the
//     re-pushed history entry simply stays in place)
//
// The resolved back/reload action is performed by the client exactly once;
// the guard forgets the intent before answering, so that one navigation is
// not re-intercepted.
func (s *EditorSession) ResolveIntent(ctx context.Context, decision entities.Decision) (entities.Resolution, error) {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return entities.Resolution{}, ErrSessionClosed
	}
	if s.pendingIntent == nil {
		s.mu.Unlock()
		return entities.Resolution{}, ErrNoPendingIntent
	}
	intent := *s.pendingIntent

	switch decision {
	case entities.DecisionCancel:
		s.pendingIntent = nil
		s.mu.Unlock()
		log.Printf("[editor][guard] intent cancelled session_id=%s kind=%s", s.id, intent.Kind)
		return entities.Resolution{Proceed: false, Action: entities.ActionStay}, nil

	case entities.DecisionDiscard:
		s.pendingIntent = nil
		s.mu.Unlock()
		log.Printf("[editor][guard] intent discarded session_id=%s kind=%s", s.id, intent.Kind)
		return entities.Resolution{Proceed: true, Action: resolvedAction(intent.Kind)}, nil

	case entities.DecisionConfirm:
		s.mu.Unlock()
		if err := s.save(ctx, true); err != nil {
			// Intent stays pending; the user can retry or cancel.
			return entities.Resolution{}, err
		}
		s.mu.Lock()
		s.pendingIntent = nil
		s.mu.Unlock()
		log.Printf("[editor][guard] intent confirmed after save session_id=%s kind=%s", s.id, intent.Kind)
		return entities.Resolution{Proceed: true, Saved: true, Action: resolvedAction(intent.Kind)}, nil

	default:
		s.mu.Unlock()
		return entities.Resolution{}, ErrInvalidDecision
	}
}

func resolvedAction(kind entities.NavigationKind) entities.NavigationAction {
	switch kind {
	case entities.NavigationKindBack:
		return entities.ActionBack
	case entities.NavigationKindReload:
		return entities.ActionReload
	default:
		return entities.ActionProceed
	}
}

// linkBypassesGuard classifies anchors the guard does not own. Internal links
// are route-relative; anything absolute with a host belongs to another
// origin. A missing target means the click never resolved to an anchor.
func linkBypassesGuard(intent entities.NavigationIntent) bool {
	target := strings.TrimSpace(intent.Target)
	if target == "" {
		return true
	}
	if intent.HasDownload || strings.TrimSpace(intent.TargetAttr) != "" {
		return true
	}

	lower := strings.ToLower(target)
	if strings.HasPrefix(lower, "mailto:") || strings.HasPrefix(lower, "tel:") {
		return true
	}
	if strings.HasPrefix(target, "#") {
		return true
	}

	u, err := url.Parse(target)
	if err != nil {
		return true
	}
	if u.Host != "" {
		return true
	}
	if intent.CurrentRoute != "" && u.Path == intent.CurrentRoute {
		return true
	}
	return false
}
