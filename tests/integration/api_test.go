package integration

import (
	"context"
	"database/sql"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/minhvo/go-ev-store/internal/cache"
	"github.com/minhvo/go-ev-store/internal/config"
	"github.com/minhvo/go-ev-store/internal/httpapi"
	"github.com/minhvo/go-ev-store/internal/models"
	"github.com/minhvo/go-ev-store/internal/store"
	"github.com/shopspring/decimal"
)

func newAPIServer(db *sql.DB) *httpapi.Server {
	gin.SetMode(gin.TestMode)
	cfg := &config.Config{}
	cfg.Payment.FrontendBaseURL = "http://localhost:3000"
	cfg.Payment.DefaultGateway = "vnpay"
	cfg.Session.TTL = time.Hour
	return httpapi.NewServer(cfg, db, cache.NewNoop())
}

func TestGetOrderByCodeOwnership(t *testing.T) {
	db, cleanup := setupTestDB(t)
	defer cleanup()

	ctx := context.Background()
	server := newAPIServer(db)

	owner, err := store.CreateCustomer(ctx, db, "owner@example.com", "Owner", "0900000001")
	if err != nil {
		t.Fatalf("Create owner: %v", err)
	}
	ownerSession, err := store.CreateSession(ctx, db, owner.ID, time.Hour)
	if err != nil {
		t.Fatalf("Create owner session: %v", err)
	}

	stranger, err := store.CreateCustomer(ctx, db, "stranger@example.com", "Stranger", "0900000002")
	if err != nil {
		t.Fatalf("Create stranger: %v", err)
	}
	strangerSession, err := store.CreateSession(ctx, db, stranger.ID, time.Hour)
	if err != nil {
		t.Fatalf("Create stranger session: %v", err)
	}

	vehicle, err := store.CreateVehicle(ctx, db, store.CreateVehicleRequest{
		SKU:   "EV-API-001",
		Name:  "Klara A2",
		Price: decimal.NewFromInt(26_900_000),
		Stock: 3,
	})
	if err != nil {
		t.Fatalf("Create vehicle: %v", err)
	}

	result, err := store.CreateOrder(ctx, db, store.CreateOrderRequest{
		VehicleID:     vehicle.ID,
		CustomerID:    &owner.ID,
		PaymentMethod: models.PaymentMethodDeposit,
		CustomerInfo:  models.CustomerInfo{Name: "Owner", Phone: "0900000001"},
	})
	if err != nil {
		t.Fatalf("Create order: %v", err)
	}

	get := func(token string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodGet,
			"/api/v1/orders/code/"+result.Order.OrderCode, nil)
		if token != "" {
			req.Header.Set("Authorization", "Bearer "+token)
		}
		rec := httptest.NewRecorder()
		server.Engine().ServeHTTP(rec, req)
		return rec
	}

	// guests track by code alone
	if rec := get(""); rec.Code != http.StatusOK {
		t.Errorf("guest lookup status = %d, want 200", rec.Code)
	}

	if rec := get(ownerSession.Token); rec.Code != http.StatusOK {
		t.Errorf("owner lookup status = %d, want 200", rec.Code)
	}

	if rec := get(strangerSession.Token); rec.Code != http.StatusForbidden {
		t.Errorf("foreign lookup status = %d, want 403", rec.Code)
	}
}
