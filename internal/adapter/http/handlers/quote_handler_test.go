package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"summit_contracting/internal/adapter/http/handlers/mocks"
	"summit_contracting/internal/domain/entities"
	"summit_contracting/internal/usecase"

	"github.com/gin-gonic/gin"
	"go.uber.org/mock/gomock"
)

func TestQuoteHandler_GetQuote(t *testing.T) {
	gin.SetMode(gin.TestMode)

	t.Run("invalid id", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc := mocks.NewMockIQuoteUseCase(ctrl)
		h := NewQuoteHandler(uc)

		r := gin.New()
		r.GET("/v1/quotes/:quote_id", h.GetQuote)

		uc.EXPECT().GetByID(gomock.Any(), "q-1").Return(entities.Quote{}, usecase.ErrInvalidQuoteID)

		req := httptest.NewRequest(http.MethodGet, "/v1/quotes/q-1", nil)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		if w.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d", w.Code)
		}
	})

	t.Run("not found", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc := mocks.NewMockIQuoteUseCase(ctrl)
		h := NewQuoteHandler(uc)

		r := gin.New()
		r.GET("/v1/quotes/:quote_id", h.GetQuote)

		uc.EXPECT().GetByID(gomock.Any(), "q-missing").Return(entities.Quote{}, usecase.ErrQuoteNotFound)

		req := httptest.NewRequest(http.MethodGet, "/v1/quotes/q-missing", nil)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		if w.Code != http.StatusNotFound {
			t.Fatalf("expected 404, got %d", w.Code)
		}
	})

	t.Run("success", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc := mocks.NewMockIQuoteUseCase(ctrl)
		h := NewQuoteHandler(uc)

		r := gin.New()
		r.GET("/v1/quotes/:quote_id", h.GetQuote)

		uc.EXPECT().GetByID(gomock.Any(), "q-1").Return(entities.Quote{
			ID:          "q-1",
			Number:      "Q-1001",
			Status:      entities.QuoteStatusDraft,
			PricingMode: entities.PricingModeManual,
		}, nil)

		req := httptest.NewRequest(http.MethodGet, "/v1/quotes/q-1", nil)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		if w.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", w.Code)
		}
		var body map[string]any
		_ = json.Unmarshal(w.Body.Bytes(), &body)
		if body["quote_id"] != "q-1" || body["id"] != "q-1" {
			t.Fatalf("unexpected body: %s", w.Body.String())
		}
	})
}

func TestQuoteHandler_StatusTransitions(t *testing.T) {
	gin.SetMode(gin.TestMode)

	cases := []struct {
		name       string
		path       string
		register   func(r *gin.Engine, h *QuoteHandler)
		expect     func(uc *mocks.MockIQuoteUseCase)
		wantStatus string
	}{
		{
			name: "send",
			path: "/v1/quotes/q-1/send",
			register: func(r *gin.Engine, h *QuoteHandler) {
				r.PATCH("/v1/quotes/:quote_id/send", h.SendQuote)
			},
			expect: func(uc *mocks.MockIQuoteUseCase) {
				uc.EXPECT().SendByID(gomock.Any(), "q-1").Return(entities.Quote{ID: "q-1", Status: entities.QuoteStatusSent}, nil)
			},
			wantStatus: "sent",
		},
		{
			name: "accept",
			path: "/v1/quotes/q-1/accept",
			register: func(r *gin.Engine, h *QuoteHandler) {
				r.PATCH("/v1/quotes/:quote_id/accept", h.AcceptQuote)
			},
			expect: func(uc *mocks.MockIQuoteUseCase) {
				uc.EXPECT().AcceptByID(gomock.Any(), "q-1").Return(entities.Quote{ID: "q-1", Status: entities.QuoteStatusAccepted}, nil)
			},
			wantStatus: "accepted",
		},
		{
			name: "reject",
			path: "/v1/quotes/q-1/reject",
			register: func(r *gin.Engine, h *QuoteHandler) {
				r.PATCH("/v1/quotes/:quote_id/reject", h.RejectQuote)
			},
			expect: func(uc *mocks.MockIQuoteUseCase) {
				uc.EXPECT().RejectByID(gomock.Any(), "q-1").Return(entities.Quote{ID: "q-1", Status: entities.QuoteStatusRejected}, nil)
			},
			wantStatus: "rejected",
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			defer ctrl.Finish()
			uc := mocks.NewMockIQuoteUseCase(ctrl)
			h := NewQuoteHandler(uc)

			r := gin.New()
			tc.register(r, h)
			tc.expect(uc)

			req := httptest.NewRequest(http.MethodPatch, tc.path, nil)
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)

			if w.Code != http.StatusOK {
				t.Fatalf("expected 200, got %d", w.Code)
			}
			var body map[string]any
			_ = json.Unmarshal(w.Body.Bytes(), &body)
			if body["status"] != tc.wantStatus {
				t.Fatalf("expected status %q, got %s", tc.wantStatus, w.Body.String())
			}
		})
	}

	t.Run("transition on missing quote", func(t *testing.T) {
		ctrl := gomock.NewController(t)
		defer ctrl.Finish()
		uc := mocks.NewMockIQuoteUseCase(ctrl)
		h := NewQuoteHandler(uc)

		r := gin.New()
		r.PATCH("/v1/quotes/:quote_id/send", h.SendQuote)

		uc.EXPECT().SendByID(gomock.Any(), "q-missing").Return(entities.Quote{}, usecase.ErrQuoteNotFound)

		req := httptest.NewRequest(http.MethodPatch, "/v1/quotes/q-missing/send", nil)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		if w.Code != http.StatusNotFound {
			t.Fatalf("expected 404, got %d", w.Code)
		}
	})
}
