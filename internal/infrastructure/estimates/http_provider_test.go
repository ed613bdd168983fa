package estimates

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestHTTPProvider_GettersCacheTotals(t *testing.T) {
	hits := 0
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/estimates/est-1/totals" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		hits++
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"grand_total":"1595.00","total_estimate":"1500.00","pst":"70.00","gst":"25.00"}`))
	}))
	defer srv.Close()

	factory := NewHTTPProviderFactory(srv.URL + "/")
	p := factory.Provider("est-1").(*httpProvider)
	p.refreshTTL = time.Hour

	if got := p.GetGrandTotal().StringFixed(2); got != "1595.00" {
		t.Fatalf("expected 1595.00, got %s", got)
	}
	if got := p.GetTotalEstimate().StringFixed(2); got != "1500.00" {
		t.Fatalf("expected 1500.00, got %s", got)
	}
	if got := p.GetPST().StringFixed(2); got != "70.00" {
		t.Fatalf("expected 70.00, got %s", got)
	}
	if got := p.GetGST().StringFixed(2); got != "25.00" {
		t.Fatalf("expected 25.00, got %s", got)
	}
	if hits != 1 {
		t.Fatalf("expected a single fetch within the TTL, got %d", hits)
	}
}

func TestHTTPProvider_RefreshFailureKeepsLastTotals(t *testing.T) {
	fail := false
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		if fail {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		_, _ = w.Write([]byte(`{"grand_total":"100.00","total_estimate":"95.00","pst":"3.00","gst":"2.00"}`))
	}))
	defer srv.Close()

	p := NewHTTPProviderFactory(srv.URL).Provider("est-1").(*httpProvider)
	p.refreshTTL = 0

	if got := p.GetGrandTotal().StringFixed(2); got != "100.00" {
		t.Fatalf("expected 100.00, got %s", got)
	}

	fail = true
	if got := p.GetGrandTotal().StringFixed(2); got != "100.00" {
		t.Fatalf("expected previous totals to survive refresh failure, got %s", got)
	}
}

func TestHTTPProvider_UnfetchedTotalsAreZero(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	p := NewHTTPProviderFactory(srv.URL).Provider("est-9").(*httpProvider)

	if !p.GetGrandTotal().IsZero() {
		t.Fatalf("expected zero grand total before any successful fetch")
	}
}

func TestHTTPProvider_Save(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if r.Method != http.MethodPost || r.URL.Path != "/estimates/est-1/save" {
				t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
			}
			w.WriteHeader(http.StatusNoContent)
		}))
		defer srv.Close()

		p := NewHTTPProviderFactory(srv.URL).Provider("est-1")
		if err := p.Save(context.Background()); err != nil {
			t.Fatalf("unexpected error: %v", err)
		}
	})

	t.Run("service error surfaces", func(t *testing.T) {
		srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			w.WriteHeader(http.StatusConflict)
			_, _ = w.Write([]byte("estimate locked"))
		}))
		defer srv.Close()

		p := NewHTTPProviderFactory(srv.URL).Provider("est-1")
		err := p.Save(context.Background())
		if err == nil {
			t.Fatalf("expected error")
		}
	})
}
