package httpapi

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/minhvo/go-ev-store/internal/cache"
	"github.com/minhvo/go-ev-store/internal/config"
	"github.com/minhvo/go-ev-store/internal/models"
	"github.com/shopspring/decimal"
)

func newTestServer() *Server {
	gin.SetMode(gin.TestMode)
	cfg := &config.Config{}
	cfg.Payment.FrontendBaseURL = "http://localhost:3000"
	cfg.Payment.DefaultGateway = "vnpay"
	cfg.Session.TTL = time.Hour
	return NewServer(cfg, nil, cache.NewNoop())
}

func doRequest(s *Server, method, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	s.Engine().ServeHTTP(rec, req)
	return rec
}

func TestHealth(t *testing.T) {
	s := newTestServer()
	rec := doRequest(s, http.MethodGet, "/health", "")
	if rec.Code != http.StatusOK {
		t.Errorf("status = %d, want 200", rec.Code)
	}
}

func TestCreateOrderValidation(t *testing.T) {
	s := newTestServer()

	cases := []struct {
		name string
		body string
	}{
		{"empty body", `{}`},
		{"missing vehicle", `{"payment_method":"deposit","customer_info":{"name":"A","phone":"0900000000"}}`},
		{"missing customer name", `{"vehicle_id":1,"customer_info":{"phone":"0900000000"}}`},
		{"bad email", `{"vehicle_id":1,"customer_info":{"name":"A","phone":"0900000000","email":"nope"}}`},
		{"malformed json", `{"vehicle_id":`},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec := doRequest(s, http.MethodPost, "/api/v1/orders", tc.body)
			if rec.Code != http.StatusBadRequest {
				t.Errorf("status = %d, want 400", rec.Code)
			}
		})
	}
}

func TestUpdateOrderStatusInvalidID(t *testing.T) {
	s := newTestServer()
	rec := doRequest(s, http.MethodPatch, "/api/v1/orders/abc/status", `{"status":"processing"}`)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}
}

func TestUpdateOrderStatusMissingStatus(t *testing.T) {
	s := newTestServer()
	rec := doRequest(s, http.MethodPatch, "/api/v1/orders/1/status", `{"note":"no status"}`)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}
}

func TestListMyOrdersUnauthorized(t *testing.T) {
	s := newTestServer()
	rec := doRequest(s, http.MethodGet, "/api/v1/me/orders", "")
	if rec.Code != http.StatusUnauthorized {
		t.Errorf("status = %d, want 401", rec.Code)
	}
}

func TestGetVehicleInvalidID(t *testing.T) {
	s := newTestServer()
	rec := doRequest(s, http.MethodGet, "/api/v1/vehicles/abc", "")
	if rec.Code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", rec.Code)
	}
}

func TestUpdateVehicleStockValidation(t *testing.T) {
	s := newTestServer()

	rec := doRequest(s, http.MethodPatch, "/api/v1/vehicles/abc/stock", `{"stock":5,"version":1}`)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("invalid id: status = %d, want 400", rec.Code)
	}

	rec = doRequest(s, http.MethodPatch, "/api/v1/vehicles/1/stock", `{"stock":5}`)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("missing version: status = %d, want 400", rec.Code)
	}
}

func TestNotifyPaymentValidation(t *testing.T) {
	s := newTestServer()

	rec := doRequest(s, http.MethodPost, "/api/v1/payments/notify", `{"transaction_id":"TXN1"}`)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("missing status: status = %d, want 400", rec.Code)
	}

	rec = doRequest(s, http.MethodPost, "/api/v1/payments/notify", `{"transaction_id":"TXN1","status":"maybe"}`)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("bad status value: status = %d, want 400", rec.Code)
	}
}

func TestMetricsFromVehicle(t *testing.T) {
	v := models.Vehicle{
		Price:       decimal.NewFromInt(20_000_000),
		Discount:    decimal.NewFromInt(2_500_000),
		Rating:      4.6,
		ReviewCount: 12,
	}

	m := metricsFromVehicle(v)
	if m.CurrentPrice != 17_500_000 {
		t.Errorf("current price = %v, want 17500000", m.CurrentPrice)
	}
	// no explicit original price: fall back to the list price
	if m.OriginalPrice != 20_000_000 {
		t.Errorf("original price = %v, want 20000000", m.OriginalPrice)
	}

	v.OriginalPrice = decimal.NewFromInt(22_000_000)
	m = metricsFromVehicle(v)
	if m.OriginalPrice != 22_000_000 {
		t.Errorf("original price = %v, want 22000000", m.OriginalPrice)
	}
}

func TestVehicleViews(t *testing.T) {
	now := time.Now()
	v := models.Vehicle{
		Price:         decimal.NewFromInt(20_000_000),
		Discount:      decimal.NewFromInt(2_500_000),
		OriginalPrice: decimal.NewFromInt(20_000_000),
		IsFeatured:    true,
		Rating:        4.8,
		ReviewCount:   40,
		CreatedAt:     now.Add(-90 * 24 * time.Hour),
	}

	list := listView(v, now)
	if list.Badge == nil {
		t.Fatal("expected a badge")
	}
	if list.Badge.Kind != "HOT" {
		t.Errorf("list badge = %s, want HOT", list.Badge.Kind)
	}
	if len(list.Badges) != 0 {
		t.Errorf("list view should not carry the full badge set, got %d", len(list.Badges))
	}

	detail := detailView(v, now)
	if len(detail.Badges) != 3 {
		t.Fatalf("detail badges = %d, want 3 (HOT, SALE, TOP_RATED)", len(detail.Badges))
	}
	if detail.Badges[0].Kind != "HOT" || detail.Badges[1].Kind != "SALE" || detail.Badges[2].Kind != "TOP_RATED" {
		t.Errorf("badge order = %s, %s, %s",
			detail.Badges[0].Kind, detail.Badges[1].Kind, detail.Badges[2].Kind)
	}
	if detail.Badges[1].Label != "-13%" {
		t.Errorf("sale label = %q, want -13%%", detail.Badges[1].Label)
	}
	if detail.Badges[2].Label != "★4.8" {
		t.Errorf("top rated label = %q, want ★4.8", detail.Badges[2].Label)
	}
}
