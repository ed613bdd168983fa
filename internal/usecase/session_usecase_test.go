package usecase

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"go.uber.org/mock/gomock"

	"summit_contracting/internal/domain/entities"
	mock_interfaces "summit_contracting/internal/usecase/interfaces/mocks"
)

func testSessionConfig() SessionConfig {
	// Long timers so only direct calls drive the scenarios.
	return SessionConfig{
		Debounce:        time.Hour,
		Period:          time.Hour,
		MinSaveInterval: 3 * time.Second,
		EstimatePoll:    time.Hour,
	}
}

func quietFlags(ctrl *gomock.Controller) *mock_interfaces.MockIUnsavedFlagStore {
	flags := mock_interfaces.NewMockIUnsavedFlagStore(ctrl)
	flags.EXPECT().SetUnsaved(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
	flags.EXPECT().Clear(gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
	return flags
}

func editedDoc() entities.Quote {
	return entities.Quote{
		ProjectID: "p-1",
		Title:     "Kitchen reno",
		Items:     []entities.PricingItem{{Name: "Framing", Price: "1,000.00", PST: true}},
		PSTRate:   7,
		GSTRate:   5,
	}
}

func TestSessionManager_Open(t *testing.T) {
	t.Run("new quote starts clean with assigned number", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		repo := mock_interfaces.NewMockIQuoteRepository(ctrl)
		m := NewSessionManager(testSessionConfig(), repo, nil, quietFlags(ctrl))

		s, err := m.Open(context.Background(), "")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		defer m.Close(context.Background(), s.ID())

		snap := s.Snapshot()
		if snap.Dirty {
			t.Fatalf("fresh session must not be dirty")
		}
		if snap.SaveState != entities.SaveStateClean {
			t.Fatalf("expected clean, got %s", snap.SaveState)
		}
		if !strings.HasPrefix(snap.Quote.Number, "Q-") {
			t.Fatalf("expected auto-assigned number, got %q", snap.Quote.Number)
		}
		if snap.Quote.PricingMode != entities.PricingModeManual {
			t.Fatalf("expected manual default, got %q", snap.Quote.PricingMode)
		}
	})

	t.Run("hydration normalizes prices and stays clean", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		repo := mock_interfaces.NewMockIQuoteRepository(ctrl)
		repo.EXPECT().GetByID(gomock.Any(), "q-1").Return(entities.Quote{
			ID:     "q-1",
			Number: "Q-OLD",
			Items:  []entities.PricingItem{{Name: "Framing", Price: "1234.5"}},
			Sections: []entities.Section{
				{Type: entities.SectionTypeText, Title: "Scope"},
				{Type: entities.SectionTypeEstimate, Title: "legacy"},
			},
		}, nil)
		m := NewSessionManager(testSessionConfig(), repo, nil, quietFlags(ctrl))

		s, err := m.Open(context.Background(), "q-1")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		defer m.Close(context.Background(), s.ID())

		snap := s.Snapshot()
		if snap.Dirty {
			t.Fatalf("hydrated session must open clean")
		}
		if got := snap.Quote.Items[0].Price; got != "1,234.50" {
			t.Fatalf("expected normalized price, got %q", got)
		}
		if len(snap.Quote.Sections) != 1 {
			t.Fatalf("legacy sections must be dropped on hydration, got %d", len(snap.Quote.Sections))
		}
	})

	t.Run("missing quote", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		repo := mock_interfaces.NewMockIQuoteRepository(ctrl)
		repo.EXPECT().GetByID(gomock.Any(), "nope").Return(entities.Quote{}, nil)
		m := NewSessionManager(testSessionConfig(), repo, nil, quietFlags(ctrl))

		_, err := m.Open(context.Background(), "nope")
		if !errors.Is(err, ErrQuoteNotFound) {
			t.Fatalf("expected ErrQuoteNotFound, got %v", err)
		}
	})
}

func TestEditorSession_DirtyTracking(t *testing.T) {
	t.Run("edit marks dirty and pushes the flag", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		repo := mock_interfaces.NewMockIQuoteRepository(ctrl)
		flags := mock_interfaces.NewMockIUnsavedFlagStore(ctrl)
		m := NewSessionManager(testSessionConfig(), repo, nil, flags)

		s, err := m.Open(context.Background(), "")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		flags.EXPECT().SetUnsaved(gomock.Any(), s.ID(), true).Return(nil)
		flags.EXPECT().Clear(gomock.Any(), s.ID()).Return(nil)
		defer m.Close(context.Background(), s.ID())

		if err := s.ApplyEdit(context.Background(), editedDoc()); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		snap := s.Snapshot()
		if !snap.Dirty {
			t.Fatalf("edit must mark the session dirty")
		}
		if snap.SaveState != entities.SaveStateSavePending {
			t.Fatalf("expected save_pending while debounce armed, got %s", snap.SaveState)
		}
		if snap.SaveState.Badge() != "Unsaved changes" {
			t.Fatalf("unexpected badge %q", snap.SaveState.Badge())
		}
	})

	t.Run("reverting the edit returns to clean", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		repo := mock_interfaces.NewMockIQuoteRepository(ctrl)
		m := NewSessionManager(testSessionConfig(), repo, nil, quietFlags(ctrl))

		s, err := m.Open(context.Background(), "")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		defer m.Close(context.Background(), s.ID())

		before := s.Document()
		changed := before
		changed.Title = "draft title"
		if err := s.ApplyEdit(context.Background(), changed); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if !s.IsDirty() {
			t.Fatalf("expected dirty after edit")
		}

		if err := s.ApplyEdit(context.Background(), before); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if s.IsDirty() {
			t.Fatalf("identical content must compare clean, not dirty")
		}
	})
}

func TestEditorSession_Save(t *testing.T) {
	t.Run("manual save without owner", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		repo := mock_interfaces.NewMockIQuoteRepository(ctrl)
		m := NewSessionManager(testSessionConfig(), repo, nil, quietFlags(ctrl))

		s, _ := m.Open(context.Background(), "")
		defer m.Close(context.Background(), s.ID())

		doc := editedDoc()
		doc.ProjectID = ""
		if err := s.ApplyEdit(context.Background(), doc); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if err := s.Save(context.Background()); !errors.Is(err, ErrNothingToSave) {
			t.Fatalf("expected ErrNothingToSave, got %v", err)
		}
	})

	t.Run("clean save is a no-op", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		repo := mock_interfaces.NewMockIQuoteRepository(ctrl)
		m := NewSessionManager(testSessionConfig(), repo, nil, quietFlags(ctrl))

		s, _ := m.Open(context.Background(), "")
		defer m.Close(context.Background(), s.ID())

		if err := s.Save(context.Background()); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	})

	t.Run("first save records assigned identity", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		repo := mock_interfaces.NewMockIQuoteRepository(ctrl)
		repo.EXPECT().Save(gomock.Any(), gomock.Any()).DoAndReturn(
			func(_ context.Context, q entities.Quote) (entities.Quote, error) {
				if q.ID != "" {
					t.Fatalf("first save must not carry an id, got %q", q.ID)
				}
				if q.DisplayTotal != "1,070.00" {
					t.Fatalf("expected display total 1,070.00, got %q", q.DisplayTotal)
				}
				q.ID = "q-77"
				return q, nil
			})
		m := NewSessionManager(testSessionConfig(), repo, nil, quietFlags(ctrl))

		s, _ := m.Open(context.Background(), "")
		defer m.Close(context.Background(), s.ID())

		if err := s.ApplyEdit(context.Background(), editedDoc()); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if err := s.Save(context.Background()); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if got := s.Document().ID; got != "q-77" {
			t.Fatalf("expected recorded id q-77, got %q", got)
		}
		if got := s.Document().DisplayTotal; got != "1,070.00" {
			t.Fatalf("expected persisted display total on the session, got %q", got)
		}
		if s.IsDirty() {
			t.Fatalf("confirmed save must leave the session clean")
		}
	})

	t.Run("concurrent save is dropped, not queued", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		repo := mock_interfaces.NewMockIQuoteRepository(ctrl)
		started := make(chan struct{})
		release := make(chan struct{})
		repo.EXPECT().Save(gomock.Any(), gomock.Any()).DoAndReturn(
			func(_ context.Context, q entities.Quote) (entities.Quote, error) {
				close(started)
				<-release
				q.ID = "q-1"
				return q, nil
			})
		m := NewSessionManager(testSessionConfig(), repo, nil, quietFlags(ctrl))

		s, _ := m.Open(context.Background(), "")
		defer m.Close(context.Background(), s.ID())
		if err := s.ApplyEdit(context.Background(), editedDoc()); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		done := make(chan error, 1)
		go func() { done <- s.Save(context.Background()) }()
		<-started

		if err := s.Save(context.Background()); !errors.Is(err, ErrSaveInFlight) {
			t.Fatalf("expected ErrSaveInFlight, got %v", err)
		}

		close(release)
		if err := <-done; err != nil {
			t.Fatalf("first save failed: %v", err)
		}
	})

	t.Run("edits during the request keep the session dirty", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		repo := mock_interfaces.NewMockIQuoteRepository(ctrl)
		started := make(chan struct{})
		release := make(chan struct{})
		repo.EXPECT().Save(gomock.Any(), gomock.Any()).DoAndReturn(
			func(_ context.Context, q entities.Quote) (entities.Quote, error) {
				close(started)
				<-release
				q.ID = "q-1"
				return q, nil
			})
		m := NewSessionManager(testSessionConfig(), repo, nil, quietFlags(ctrl))

		s, _ := m.Open(context.Background(), "")
		defer m.Close(context.Background(), s.ID())
		if err := s.ApplyEdit(context.Background(), editedDoc()); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		done := make(chan error, 1)
		go func() { done <- s.Save(context.Background()) }()
		<-started

		midEdit := editedDoc()
		midEdit.Notes = "typed while saving"
		if err := s.ApplyEdit(context.Background(), midEdit); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		close(release)
		if err := <-done; err != nil {
			t.Fatalf("save failed: %v", err)
		}

		if !s.IsDirty() {
			t.Fatalf("mid-save edit must survive the fingerprint commit")
		}
	})

	t.Run("failed save keeps dirty state for retry", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		repo := mock_interfaces.NewMockIQuoteRepository(ctrl)
		repo.EXPECT().Save(gomock.Any(), gomock.Any()).Return(entities.Quote{}, errors.New("dynamo down"))
		m := NewSessionManager(testSessionConfig(), repo, nil, quietFlags(ctrl))

		s, _ := m.Open(context.Background(), "")
		defer m.Close(context.Background(), s.ID())
		if err := s.ApplyEdit(context.Background(), editedDoc()); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if err := s.Save(context.Background()); err == nil {
			t.Fatalf("expected save error")
		}
		if !s.IsDirty() {
			t.Fatalf("failed save must leave the session dirty")
		}
	})
}

func TestEditorSession_LifecycleStatusSurvivesEditing(t *testing.T) {
	acceptedQuote := func() entities.Quote {
		return entities.Quote{
			ID:          "q-1",
			Number:      "Q-1001",
			ProjectID:   "p-1",
			Title:       "Kitchen reno",
			IssueDate:   "2026-08-01",
			Status:      entities.QuoteStatusAccepted,
			Items:       []entities.PricingItem{{Name: "Framing", Price: "1,000.00", PST: true}},
			PricingMode: entities.PricingModeManual,
			PSTRate:     7,
			GSTRate:     5,
		}
	}
	// The form payload never carries identity or status; this is the document
	// the DTO layer hands to ApplyEdit.
	formDoc := func() entities.Quote {
		doc := acceptedQuote()
		doc.ID = ""
		doc.Number = ""
		doc.Status = ""
		return doc
	}

	t.Run("content-identical edit stays clean", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		repo := mock_interfaces.NewMockIQuoteRepository(ctrl)
		repo.EXPECT().GetByID(gomock.Any(), "q-1").Return(acceptedQuote(), nil)
		m := NewSessionManager(testSessionConfig(), repo, nil, quietFlags(ctrl))

		s, err := m.Open(context.Background(), "q-1")
		if err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		defer m.Close(context.Background(), s.ID())

		if err := s.ApplyEdit(context.Background(), formDoc()); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if s.IsDirty() {
			t.Fatalf("identical content must not dirty the session")
		}
		if got := s.Document().Status; got != entities.QuoteStatusAccepted {
			t.Fatalf("expected accepted, got %q", got)
		}
	})

	t.Run("save persists the lifecycle status", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		repo := mock_interfaces.NewMockIQuoteRepository(ctrl)
		repo.EXPECT().GetByID(gomock.Any(), "q-1").Return(acceptedQuote(), nil)
		repo.EXPECT().Save(gomock.Any(), gomock.Any()).DoAndReturn(
			func(_ context.Context, q entities.Quote) (entities.Quote, error) {
				if q.Status != entities.QuoteStatusAccepted {
					t.Fatalf("save must not regress status, got %q", q.Status)
				}
				return q, nil
			})
		m := NewSessionManager(testSessionConfig(), repo, nil, quietFlags(ctrl))

		s, _ := m.Open(context.Background(), "q-1")
		defer m.Close(context.Background(), s.ID())

		doc := formDoc()
		doc.Title = "Kitchen reno, phase 2"
		if err := s.ApplyEdit(context.Background(), doc); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if err := s.Save(context.Background()); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if got := s.Document().Status; got != entities.QuoteStatusAccepted {
			t.Fatalf("expected accepted after save, got %q", got)
		}
	})

	t.Run("clear keeps the lifecycle status", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		repo := mock_interfaces.NewMockIQuoteRepository(ctrl)
		repo.EXPECT().GetByID(gomock.Any(), "q-1").Return(acceptedQuote(), nil)
		m := NewSessionManager(testSessionConfig(), repo, nil, quietFlags(ctrl))

		s, _ := m.Open(context.Background(), "q-1")
		defer m.Close(context.Background(), s.ID())

		if err := s.Clear(context.Background()); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if got := s.Document().Status; got != entities.QuoteStatusAccepted {
			t.Fatalf("expected accepted after clear, got %q", got)
		}
	})
}

func TestEditorSession_AutosaveGates(t *testing.T) {
	t.Run("skips without owning identity", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		repo := mock_interfaces.NewMockIQuoteRepository(ctrl)
		m := NewSessionManager(testSessionConfig(), repo, nil, quietFlags(ctrl))

		s, _ := m.Open(context.Background(), "")
		defer m.Close(context.Background(), s.ID())

		doc := editedDoc()
		doc.ProjectID = ""
		if err := s.ApplyEdit(context.Background(), doc); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if err := s.save(context.Background(), false); err != nil {
			t.Fatalf("ownerless autosave must be a silent skip, got %v", err)
		}
	})

	t.Run("honors the min save interval", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		repo := mock_interfaces.NewMockIQuoteRepository(ctrl)
		m := NewSessionManager(testSessionConfig(), repo, nil, quietFlags(ctrl))

		s, _ := m.Open(context.Background(), "")
		defer m.Close(context.Background(), s.ID())
		if err := s.ApplyEdit(context.Background(), editedDoc()); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		s.mu.Lock()
		s.lastSaveAt = time.Now()
		s.mu.Unlock()

		// Inside the interval: no repository call expected.
		if err := s.save(context.Background(), false); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		// Outside the interval the autosave goes through.
		repo.EXPECT().Save(gomock.Any(), gomock.Any()).DoAndReturn(
			func(_ context.Context, q entities.Quote) (entities.Quote, error) {
				q.ID = "q-1"
				return q, nil
			})
		s.mu.Lock()
		s.lastSaveAt = time.Now().Add(-time.Minute)
		s.mu.Unlock()
		if err := s.save(context.Background(), false); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	})

	t.Run("manual save ignores the interval", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		repo := mock_interfaces.NewMockIQuoteRepository(ctrl)
		repo.EXPECT().Save(gomock.Any(), gomock.Any()).DoAndReturn(
			func(_ context.Context, q entities.Quote) (entities.Quote, error) {
				q.ID = "q-1"
				return q, nil
			})
		m := NewSessionManager(testSessionConfig(), repo, nil, quietFlags(ctrl))

		s, _ := m.Open(context.Background(), "")
		defer m.Close(context.Background(), s.ID())
		if err := s.ApplyEdit(context.Background(), editedDoc()); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		s.mu.Lock()
		s.lastSaveAt = time.Now()
		s.mu.Unlock()

		if err := s.Save(context.Background()); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	})
}

func TestEditorSession_DelegatedEstimate(t *testing.T) {
	delegatedDoc := func() entities.Quote {
		doc := editedDoc()
		doc.PricingMode = entities.PricingModeDelegated
		doc.EstimateID = "est-1"
		return doc
	}

	t.Run("manual save aborts when the estimate save fails", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		repo := mock_interfaces.NewMockIQuoteRepository(ctrl)
		provider := mock_interfaces.NewMockIEstimateProvider(ctrl)
		factory := mock_interfaces.NewMockIEstimateProviderFactory(ctrl)
		factory.EXPECT().Provider("est-1").Return(provider)
		provider.EXPECT().Save(gomock.Any()).Return(errors.New("estimate api down"))
		m := NewSessionManager(testSessionConfig(), repo, factory, quietFlags(ctrl))

		s, _ := m.Open(context.Background(), "")
		defer m.Close(context.Background(), s.ID())
		if err := s.ApplyEdit(context.Background(), delegatedDoc()); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		err := s.Save(context.Background())
		if !errors.Is(err, ErrEstimateSaveFailed) {
			t.Fatalf("expected ErrEstimateSaveFailed, got %v", err)
		}
		if !s.IsDirty() {
			t.Fatalf("aborted save must leave the session dirty")
		}
	})

	t.Run("autosave proceeds best-effort past an estimate failure", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		repo := mock_interfaces.NewMockIQuoteRepository(ctrl)
		provider := mock_interfaces.NewMockIEstimateProvider(ctrl)
		factory := mock_interfaces.NewMockIEstimateProviderFactory(ctrl)
		factory.EXPECT().Provider("est-1").Return(provider)
		provider.EXPECT().Save(gomock.Any()).Return(errors.New("estimate api down"))
		repo.EXPECT().Save(gomock.Any(), gomock.Any()).DoAndReturn(
			func(_ context.Context, q entities.Quote) (entities.Quote, error) {
				q.ID = "q-1"
				return q, nil
			})
		m := NewSessionManager(testSessionConfig(), repo, factory, quietFlags(ctrl))

		s, _ := m.Open(context.Background(), "")
		defer m.Close(context.Background(), s.ID())
		if err := s.ApplyEdit(context.Background(), delegatedDoc()); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}

		if err := s.save(context.Background(), false); err != nil {
			t.Fatalf("autosave must swallow the estimate error, got %v", err)
		}
	})

	t.Run("estimate saves before the quote on success", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		repo := mock_interfaces.NewMockIQuoteRepository(ctrl)
		provider := mock_interfaces.NewMockIEstimateProvider(ctrl)
		factory := mock_interfaces.NewMockIEstimateProviderFactory(ctrl)
		factory.EXPECT().Provider("est-1").Return(provider)
		gomock.InOrder(
			provider.EXPECT().Save(gomock.Any()).Return(nil),
			repo.EXPECT().Save(gomock.Any(), gomock.Any()).DoAndReturn(
				func(_ context.Context, q entities.Quote) (entities.Quote, error) {
					q.ID = "q-1"
					return q, nil
				}),
		)
		m := NewSessionManager(testSessionConfig(), repo, factory, quietFlags(ctrl))

		s, _ := m.Open(context.Background(), "")
		defer m.Close(context.Background(), s.ID())
		if err := s.ApplyEdit(context.Background(), delegatedDoc()); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
		if err := s.Save(context.Background()); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	})
}

func TestEditorSession_Clear(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := mock_interfaces.NewMockIQuoteRepository(ctrl)
	repo.EXPECT().GetByID(gomock.Any(), "q-1").Return(entities.Quote{
		ID:        "q-1",
		Number:    "Q-KEEP",
		ProjectID: "p-1",
		Title:     "Old title",
		Items:     []entities.PricingItem{{Name: "Framing", Price: "100.00"}},
	}, nil)
	m := NewSessionManager(testSessionConfig(), repo, nil, quietFlags(ctrl))

	s, err := m.Open(context.Background(), "q-1")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	defer m.Close(context.Background(), s.ID())

	if err := s.Clear(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	doc := s.Document()
	if doc.ID != "q-1" || doc.Number != "Q-KEEP" || doc.ProjectID != "p-1" {
		t.Fatalf("clear must keep identity, got id=%q number=%q project=%q", doc.ID, doc.Number, doc.ProjectID)
	}
	if doc.Title != "" || len(doc.Items) != 0 {
		t.Fatalf("clear must reset the editable content")
	}
	if !s.IsDirty() {
		t.Fatalf("clearing a non-empty quote is an edit")
	}
}

func TestSessionManager_Close(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := mock_interfaces.NewMockIQuoteRepository(ctrl)
	flags := mock_interfaces.NewMockIUnsavedFlagStore(ctrl)
	flags.EXPECT().SetUnsaved(gomock.Any(), gomock.Any(), gomock.Any()).Return(nil).AnyTimes()
	m := NewSessionManager(testSessionConfig(), repo, nil, flags)

	s, _ := m.Open(context.Background(), "")
	flags.EXPECT().Clear(gomock.Any(), s.ID()).Return(nil)

	if err := m.Close(context.Background(), s.ID()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if _, err := m.Get(s.ID()); !errors.Is(err, ErrSessionNotFound) {
		t.Fatalf("expected ErrSessionNotFound, got %v", err)
	}
	if err := s.ApplyEdit(context.Background(), editedDoc()); !errors.Is(err, ErrSessionClosed) {
		t.Fatalf("expected ErrSessionClosed, got %v", err)
	}
	if err := m.Close(context.Background(), s.ID()); !errors.Is(err, ErrSessionNotFound) {
		t.Fatalf("double close should report ErrSessionNotFound, got %v", err)
	}
}

func TestSessionManager_AnyUnsaved(t *testing.T) {
	ctrl := gomock.NewController(t)
	flags := mock_interfaces.NewMockIUnsavedFlagStore(ctrl)
	flags.EXPECT().AnyUnsaved(gomock.Any()).Return(true, nil)
	m := NewSessionManager(testSessionConfig(), mock_interfaces.NewMockIQuoteRepository(ctrl), nil, flags)

	got, err := m.AnyUnsaved(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !got {
		t.Fatalf("expected true")
	}
}

func TestEditorSession_ExportStaleness(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := mock_interfaces.NewMockIQuoteRepository(ctrl)
	m := NewSessionManager(testSessionConfig(), repo, nil, quietFlags(ctrl))

	s, _ := m.Open(context.Background(), "")
	defer m.Close(context.Background(), s.ID())

	if s.Snapshot().ExportStale {
		t.Fatalf("no export yet, staleness must be false")
	}

	s.MarkExported()
	if s.Snapshot().ExportStale {
		t.Fatalf("freshly exported artifact is not stale")
	}

	doc := editedDoc()
	if err := s.ApplyEdit(context.Background(), doc); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !s.Snapshot().ExportStale {
		t.Fatalf("edit after export must mark the artifact stale")
	}

	s.MarkExported()
	if s.Snapshot().ExportStale {
		t.Fatalf("re-export clears staleness")
	}
}
