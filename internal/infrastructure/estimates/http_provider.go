package estimates

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"summit_contracting/internal/usecase/interfaces"
)

// HTTPProviderFactory builds estimate providers backed by the estimating
// service's REST API. One provider per estimate; the editor session asks the
// factory whenever a quote references an estimate.
type HTTPProviderFactory struct {
	baseURL string
	client  *http.Client
}

func NewHTTPProviderFactory(baseURL string) *HTTPProviderFactory {
	return &HTTPProviderFactory{
		baseURL: strings.TrimRight(baseURL, "/"),
		client:  &http.Client{Timeout: 10 * time.Second},
	}
}

func (f *HTTPProviderFactory) Provider(estimateID string) interfaces.IEstimateProvider {
	return &httpProvider{
		baseURL:    f.baseURL,
		estimateID: estimateID,
		client:     f.client,
		refreshTTL: time.Second,
	}
}

var _ interfaces.IEstimateProviderFactory = (*HTTPProviderFactory)(nil)

// httpProvider caches the last totals the service returned. The getters are
// cheap and never fail: a refresh error keeps serving the previous numbers.
type httpProvider struct {
	baseURL    string
	estimateID string
	client     *http.Client
	refreshTTL time.Duration

	mu        sync.Mutex
	totals    totalsPayload
	fetchedAt time.Time
}

type totalsPayload struct {
	GrandTotal    string `json:"grand_total"`
	TotalEstimate string `json:"total_estimate"`
	PST           string `json:"pst"`
	GST           string `json:"gst"`
}

func (p *httpProvider) Save(ctx context.Context) error {
	endpoint := fmt.Sprintf("%s/estimates/%s/save", p.baseURL, url.PathEscape(p.estimateID))
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, endpoint, nil)
	if err != nil {
		return err
	}
	resp, err := p.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return fmt.Errorf("estimate save: service returned %d: %s", resp.StatusCode, strings.TrimSpace(string(body)))
	}
	return nil
}

func (p *httpProvider) GetGrandTotal() decimal.Decimal {
	return p.field(func(t totalsPayload) string { return t.GrandTotal })
}

func (p *httpProvider) GetTotalEstimate() decimal.Decimal {
	return p.field(func(t totalsPayload) string { return t.TotalEstimate })
}

func (p *httpProvider) GetPST() decimal.Decimal {
	return p.field(func(t totalsPayload) string { return t.PST })
}

func (p *httpProvider) GetGST() decimal.Decimal {
	return p.field(func(t totalsPayload) string { return t.GST })
}

func (p *httpProvider) field(pick func(totalsPayload) string) decimal.Decimal {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.refreshLocked()
	d, err := decimal.NewFromString(pick(p.totals))
	if err != nil {
		return decimal.Zero
	}
	return d
}

func (p *httpProvider) refreshLocked() {
	if time.Since(p.fetchedAt) < p.refreshTTL {
		return
	}
	p.fetchedAt = time.Now()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	endpoint := fmt.Sprintf("%s/estimates/%s/totals", p.baseURL, url.PathEscape(p.estimateID))
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return
	}
	resp, err := p.client.Do(req)
	if err != nil {
		log.Printf("[estimates][provider] totals refresh failed estimate_id=%s err=%v", p.estimateID, err)
		return
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		log.Printf("[estimates][provider] totals refresh status=%d estimate_id=%s", resp.StatusCode, p.estimateID)
		return
	}

	var payload totalsPayload
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		log.Printf("[estimates][provider] totals decode failed estimate_id=%s err=%v", p.estimateID, err)
		return
	}
	p.totals = payload
}
