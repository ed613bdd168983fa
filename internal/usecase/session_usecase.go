package usecase

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"summit_contracting/internal/domain/entities"
	"summit_contracting/internal/domain/money"
	"summit_contracting/internal/usecase/interfaces"
)

var (
	ErrSessionNotFound    = errors.New("editor session not found")
	ErrSessionClosed      = errors.New("editor session closed")
	ErrSessionNotReady    = errors.New("editor session not ready")
	ErrSaveInFlight       = errors.New("save already in flight")
	ErrNothingToSave      = errors.New("quote has no owning identity yet")
	ErrEstimateSaveFailed = errors.New("estimate save failed")
)

// defaultPSTRate / defaultGSTRate seed new quotes with the company's
// provincial and federal rates; both remain editable per quote.
const (
	defaultPSTRate = 7.0
	defaultGSTRate = 5.0
)

// SessionManager owns the live editor sessions.
//
// Domain notes:
//   - One session per open proposal editor; the quote document is owned
//     exclusively by its session and destroyed on teardown.
//   - The manager hands every session the same collaborators: the quote
//     repository (persistence API), the delegated estimate provider, and the
//     process-wide unsaved-changes registry.
type SessionManager struct {
	cfg       SessionConfig
	repo      interfaces.IQuoteRepository
	estimates interfaces.IEstimateProviderFactory
	flags     interfaces.IUnsavedFlagStore

	mu       sync.Mutex
	sessions map[string]*EditorSession
}

func NewSessionManager(cfg SessionConfig, repo interfaces.IQuoteRepository, estimates interfaces.IEstimateProviderFactory, flags interfaces.IUnsavedFlagStore) *SessionManager {
	return &SessionManager{
		cfg:       cfg,
		repo:      repo,
		estimates: estimates,
		flags:     flags,
		sessions:  make(map[string]*EditorSession),
	}
}

// Open creates an editor session. With an empty quoteID the session starts
// from a fresh quote with an auto-assigned number; otherwise the persisted
// quote is hydrated first. Dirty checks report false until hydration has
// completed, so opening a session never trips autosave or the guard.
func (m *SessionManager) Open(ctx context.Context, quoteID string) (*EditorSession, error) {
	quoteID = strings.TrimSpace(quoteID)

	s := &EditorSession{
		id:        uuid.NewString(),
		cfg:       m.cfg,
		repo:      m.repo,
		estimates: m.estimates,
		flags:     m.flags,
		now:       time.Now,
		stopCh:    make(chan struct{}),
	}

	var doc entities.Quote
	if quoteID == "" {
		doc = newQuoteDocument()
	} else {
		loaded, err := m.repo.GetByID(ctx, quoteID)
		if err != nil {
			return nil, err
		}
		if loaded.ID == "" {
			return nil, ErrQuoteNotFound
		}
		doc = normalizeQuote(loaded)
	}

	s.mu.Lock()
	s.doc = doc
	s.bindEstimateLocked()
	s.captureEstimateLocked()
	s.ready = true
	s.lastSavedFingerprint = ComputeFingerprint(s.doc, s.est)
	s.mu.Unlock()

	s.startTimers()

	m.mu.Lock()
	m.sessions[s.id] = s
	m.mu.Unlock()

	log.Printf("[editor][manager] session opened session_id=%s quote_id=%q", s.id, quoteID)
	return s, nil
}

func (m *SessionManager) Get(id string) (*EditorSession, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	s, ok := m.sessions[strings.TrimSpace(id)]
	if !ok {
		return nil, ErrSessionNotFound
	}
	return s, nil
}

// Close tears the session down: timers stopped, listeners gone, unsaved flag
// cleared. Unsaved changes are discarded; the navigation guard has already
// argued with the user before this point.
func (m *SessionManager) Close(ctx context.Context, id string) error {
	m.mu.Lock()
	s, ok := m.sessions[strings.TrimSpace(id)]
	if ok {
		delete(m.sessions, s.id)
	}
	m.mu.Unlock()
	if !ok {
		return ErrSessionNotFound
	}
	s.teardown(ctx)
	log.Printf("[editor][manager] session closed session_id=%s", s.id)
	return nil
}

// AnyUnsaved reports the process-wide unsaved-changes flag for navigation
// affordances outside the editor.
func (m *SessionManager) AnyUnsaved(ctx context.Context) (bool, error) {
	if m.flags == nil {
		return false, nil
	}
	return m.flags.AnyUnsaved(ctx)
}

func newQuoteDocument() entities.Quote {
	now := time.Now().UTC()
	return entities.Quote{
		Number:      "Q-" + strings.ToUpper(uuid.NewString()[:8]),
		Status:      entities.QuoteStatusDraft,
		PricingMode: entities.PricingModeManual,
		PSTRate:     defaultPSTRate,
		GSTRate:     defaultGSTRate,
		IssueDate:   now.Format("2006-01-02"),
	}
}

// normalizeQuote re-canonicalizes hydrated price strings and drops legacy
// section variants so the session starts from the same projection the
// fingerprint uses.
func normalizeQuote(q entities.Quote) entities.Quote {
	for i, it := range q.Items {
		if norm, err := money.Normalize(it.Price); err == nil {
			q.Items[i].Price = norm
		}
	}
	for i, svc := range q.OptionalServices {
		if norm, err := money.Normalize(svc.Price); err == nil {
			q.OptionalServices[i].Price = norm
		}
	}
	q.Sections = q.PersistableSections()
	return q
}

// EditorSession is one open proposal editor.
//
// All cross-callback state lives in explicit fields with the mutex as the
// single interleaving point. Timer and poll goroutines take the lock exactly
// like user-driven calls do.
type EditorSession struct {
	id        string
	cfg       SessionConfig
	repo      interfaces.IQuoteRepository
	estimates interfaces.IEstimateProviderFactory
	flags     interfaces.IUnsavedFlagStore
	now       func() time.Time

	mu              sync.Mutex
	doc             entities.Quote
	est             entities.EstimateTotals
	estimate        interfaces.IEstimateProvider
	boundEstimateID string

	ready                bool
	closed               bool
	saving               bool
	lastSavedFingerprint string
	lastSaveAt           time.Time
	lastFlag             bool

	pendingIntent     *entities.NavigationIntent
	exportFingerprint string

	debounce *time.Timer
	stopCh   chan struct{}
}

func (s *EditorSession) ID() string { return s.id }

// SessionSnapshot is a read-only view of the session for the HTTP layer.
type SessionSnapshot struct {
	ID          string
	Quote       entities.Quote
	Totals      entities.Totals
	Estimate    entities.EstimateTotals
	SaveState   entities.SaveState
	Dirty       bool
	Fingerprint string
	ExportStale bool
	HasPending  bool
}

func (s *EditorSession) Snapshot() SessionSnapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	fp := ComputeFingerprint(s.doc, s.est)
	return SessionSnapshot{
		ID:          s.id,
		Quote:       s.doc,
		Totals:      s.doc.ComputeTotals(),
		Estimate:    s.est,
		SaveState:   s.saveStateLocked(),
		Dirty:       s.isDirtyLocked(),
		Fingerprint: fp,
		ExportStale: s.exportFingerprint != "" && fp != s.exportFingerprint,
		HasPending:  s.pendingIntent != nil,
	}
}

// IsDirty is the dirty-state tracker's comparison: current fingerprint versus
// the last fingerprint confirmed persisted. Always false before hydration.
func (s *EditorSession) IsDirty() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.isDirtyLocked()
}

func (s *EditorSession) isDirtyLocked() bool {
	if !s.ready {
		return false
	}
	return ComputeFingerprint(s.doc, s.est) != s.lastSavedFingerprint
}

func (s *EditorSession) saveStateLocked() entities.SaveState {
	switch {
	case s.saving:
		return entities.SaveStateSaving
	case !s.isDirtyLocked():
		return entities.SaveStateClean
	case s.debounce != nil:
		return entities.SaveStateSavePending
	default:
		return entities.SaveStateDirty
	}
}

// ApplyEdit replaces the editable document with the form's current value, the
// same shape every field change handler produced in the original editor.
// Identity fields stay server-owned. Each edit re-arms the debounce timer.
func (s *EditorSession) ApplyEdit(ctx context.Context, doc entities.Quote) error {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return ErrSessionClosed
	}
	if !s.ready {
		s.mu.Unlock()
		return ErrSessionNotReady
	}

	doc.ID = s.doc.ID
	doc.Number = s.doc.Number
	// Status transitions go through the quote lifecycle endpoints, never the
	// editor form; an edit must not move a sent or accepted quote back to
	// draft.
	doc.Status = s.doc.Status
	doc.CreatedAt = s.doc.CreatedAt
	s.doc = doc
	s.bindEstimateLocked()
	s.armDebounceLocked()
	s.syncFlagLocked(ctx)
	s.mu.Unlock()
	return nil
}

// Clear resets the document to editor defaults while keeping the identity
// that must survive: the persisted ID, the auto-assigned quote number, the
// owning project and the lifecycle status.
func (s *EditorSession) Clear(ctx context.Context) error {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return ErrSessionClosed
	}
	if !s.ready {
		s.mu.Unlock()
		return ErrSessionNotReady
	}

	fresh := newQuoteDocument()
	fresh.ID = s.doc.ID
	fresh.Number = s.doc.Number
	fresh.ProjectID = s.doc.ProjectID
	fresh.Status = s.doc.Status
	fresh.CreatedAt = s.doc.CreatedAt
	s.doc = fresh
	s.bindEstimateLocked()
	s.armDebounceLocked()
	s.syncFlagLocked(ctx)
	s.mu.Unlock()
	return nil
}

// Save is the user's explicit save. Unlike autosave it surfaces failures and
// skips every scheduler guard except the in-flight one.
func (s *EditorSession) Save(ctx context.Context) error {
	return s.save(ctx, true)
}

// save is the save controller shared by manual save and both autosave timers.
//
// Ordering contract:
//  1. snapshot the document and compute the fingerprint BEFORE any network
//     call, so edits made during the request keep the session dirty
//  2. in delegated mode, save the estimate first; manual saves abort on
//     failure (never persist a quote referencing an unsaved estimate),
//     autosaves log and proceed best-effort
//  3. only a confirmed repository success commits the pre-call fingerprint,
//     records the assigned identity, and advances the last-save clock
func (s *EditorSession) save(ctx context.Context, manual bool) error {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		if manual {
			return ErrSessionClosed
		}
		return nil
	}
	if !s.ready {
		s.mu.Unlock()
		if manual {
			return ErrSessionNotReady
		}
		return nil
	}
	if s.saving {
		// Dropped, not queued. The next debounce or periodic tick retries
		// while the document stays dirty.
		s.mu.Unlock()
		if manual {
			return ErrSaveInFlight
		}
		log.Printf("[editor][session] autosave dropped, save in flight session_id=%s", s.id)
		return nil
	}
	if !s.isDirtyLocked() {
		s.mu.Unlock()
		return nil
	}
	if !s.doc.HasOwner() && !manual {
		s.mu.Unlock()
		return nil
	}
	if !manual && !s.lastSaveAt.IsZero() && s.now().Sub(s.lastSaveAt) < s.cfg.MinSaveInterval {
		s.mu.Unlock()
		log.Printf("[editor][session] autosave skipped by min-interval guard session_id=%s", s.id)
		return nil
	}
	if manual && !s.doc.HasOwner() {
		s.mu.Unlock()
		return ErrNothingToSave
	}

	s.saving = true
	snapshot := s.doc
	est := s.est
	provider := s.estimate
	delegated := snapshot.PricingMode == entities.PricingModeDelegated && provider != nil
	s.mu.Unlock()

	if delegated {
		if err := provider.Save(ctx); err != nil {
			if manual {
				s.finishSave()
				return fmt.Errorf("%w: %v", ErrEstimateSaveFailed, err)
			}
			log.Printf("[editor][session] estimate autosave failed, proceeding best-effort session_id=%s err=%v", s.id, err)
		}
	}

	now := s.now().UTC()
	persisted := snapshot
	persisted.Sections = snapshot.PersistableSections()
	persisted.DisplayTotal = money.Format(snapshot.ResolveDisplayTotal(est))
	persisted.UpdatedAt = now
	if persisted.CreatedAt.IsZero() {
		persisted.CreatedAt = now
	}

	saved, err := s.repo.Save(ctx, persisted)
	if err != nil {
		// Dirty state and the last-save clock are untouched so the next
		// timer tick retries promptly.
		s.finishSave()
		if manual {
			return err
		}
		log.Printf("[editor][session] autosave failed session_id=%s err=%v", s.id, err)
		return nil
	}

	s.mu.Lock()
	s.saving = false
	if s.doc.ID == "" && saved.ID != "" {
		s.doc.ID = saved.ID
	}
	s.doc.CreatedAt = saved.CreatedAt
	s.doc.UpdatedAt = saved.UpdatedAt
	s.doc.DisplayTotal = saved.DisplayTotal
	// Commit the fingerprint of the state that actually went over the wire,
	// adjusted for the identity the first save assigned. Anything typed while
	// the request was in flight keeps the session dirty.
	committed := snapshot
	committed.ID = saved.ID
	s.lastSavedFingerprint = ComputeFingerprint(committed, est)
	s.lastSaveAt = s.now()
	s.syncFlagLocked(ctx)
	s.mu.Unlock()

	log.Printf("[editor][session] save success session_id=%s quote_id=%s manual=%t", s.id, saved.ID, manual)
	return nil
}

func (s *EditorSession) finishSave() {
	s.mu.Lock()
	s.saving = false
	s.mu.Unlock()
}

// MarkExported records the fingerprint at artifact generation time. The
// generated proposal is stale exactly when the fingerprint has moved since.
func (s *EditorSession) MarkExported() {
	s.mu.Lock()
	s.exportFingerprint = ComputeFingerprint(s.doc, s.est)
	s.mu.Unlock()
}

func (s *EditorSession) Document() entities.Quote {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.doc
}

// armDebounceLocked resets the debounce timer: an autosave attempt fires a
// fixed quiet period after the most recent edit.
func (s *EditorSession) armDebounceLocked() {
	if s.closed {
		return
	}
	if s.debounce != nil {
		s.debounce.Stop()
	}
	s.debounce = time.AfterFunc(s.cfg.Debounce, func() {
		s.mu.Lock()
		s.debounce = nil
		closed := s.closed
		s.mu.Unlock()
		if closed {
			return
		}
		s.autosave()
	})
}

// startTimers launches the periodic safety-net saver and, for delegated
// pricing, the estimate totals poller. Both stop when stopCh closes.
func (s *EditorSession) startTimers() {
	go func() {
		ticker := time.NewTicker(s.cfg.Period)
		defer ticker.Stop()
		for {
			select {
			case <-s.stopCh:
				return
			case <-ticker.C:
				s.autosave()
			}
		}
	}()

	if s.estimates == nil {
		return
	}
	go func() {
		ticker := time.NewTicker(s.cfg.EstimatePoll)
		defer ticker.Stop()
		for {
			select {
			case <-s.stopCh:
				return
			case <-ticker.C:
				s.pollEstimate()
			}
		}
	}()
}

func (s *EditorSession) autosave() {
	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	// Autosave errors never reach the user; save() already logged them.
	_ = s.save(ctx, false)
}

// pollEstimate pulls the delegated estimate getters into the session cache so
// the rest of the system sees the numbers as ordinary state.
func (s *EditorSession) pollEstimate() {
	s.mu.Lock()
	provider := s.estimate
	delegated := !s.closed && s.doc.PricingMode == entities.PricingModeDelegated
	s.mu.Unlock()
	if provider == nil || !delegated {
		return
	}

	// Getters stay outside the lock; providers may block on I/O.
	grand := provider.GetGrandTotal()
	total := provider.GetTotalEstimate()
	pst := provider.GetPST()
	gst := provider.GetGST()

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()

	s.mu.Lock()
	if !s.closed && s.doc.PricingMode == entities.PricingModeDelegated {
		s.est = entities.EstimateTotals{GrandTotal: grand, TotalEstimate: total, PST: pst, GST: gst}
		s.syncFlagLocked(ctx)
	}
	s.mu.Unlock()
}

// bindEstimateLocked keeps the session's provider in step with the estimate
// the document references. Re-binds when the reference changes mid-session.
func (s *EditorSession) bindEstimateLocked() {
	if s.estimates == nil {
		return
	}
	if s.doc.EstimateID == "" {
		s.estimate = nil
		return
	}
	if s.estimate == nil || s.boundEstimateID != s.doc.EstimateID {
		s.estimate = s.estimates.Provider(s.doc.EstimateID)
		s.boundEstimateID = s.doc.EstimateID
	}
}

func (s *EditorSession) captureEstimateLocked() {
	if s.estimate == nil || s.doc.PricingMode != entities.PricingModeDelegated {
		return
	}
	s.est = entities.EstimateTotals{
		GrandTotal:    s.estimate.GetGrandTotal(),
		TotalEstimate: s.estimate.GetTotalEstimate(),
		PST:           s.estimate.GetPST(),
		GST:           s.estimate.GetGST(),
	}
}

// syncFlagLocked pushes the session's dirtiness into the process-wide
// registry on transitions only. The tracker is the registry's single writer.
func (s *EditorSession) syncFlagLocked(ctx context.Context) {
	if s.flags == nil {
		return
	}
	dirty := s.isDirtyLocked()
	if dirty == s.lastFlag {
		return
	}
	s.lastFlag = dirty
	if err := s.flags.SetUnsaved(ctx, s.id, dirty); err != nil {
		log.Printf("[editor][session] unsaved flag update failed session_id=%s err=%v", s.id, err)
	}
}

func (s *EditorSession) teardown(ctx context.Context) {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return
	}
	s.closed = true
	if s.debounce != nil {
		s.debounce.Stop()
		s.debounce = nil
	}
	close(s.stopCh)
	s.pendingIntent = nil
	s.mu.Unlock()

	if s.flags != nil {
		if err := s.flags.Clear(ctx, s.id); err != nil {
			log.Printf("[editor][session] unsaved flag clear failed session_id=%s err=%v", s.id, err)
		}
	}
}
