package integration

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/minhvo/go-ev-store/internal/database"
	"github.com/minhvo/go-ev-store/internal/store"
)

func TestSessionRoundtrip(t *testing.T) {
	db, cleanup := setupTestDB(t)
	defer cleanup()

	ctx := context.Background()

	customer, err := store.CreateCustomer(ctx, db, "session@example.com", "Session User", "0955555555")
	if err != nil {
		t.Fatalf("Create customer: %v", err)
	}

	session, err := store.CreateSession(ctx, db, customer.ID, time.Hour)
	if err != nil {
		t.Fatalf("Create session: %v", err)
	}
	if session.Token == "" {
		t.Fatal("empty session token")
	}

	resolved, err := store.ResolveSession(ctx, db, session.Token)
	if err != nil {
		t.Fatalf("Resolve session: %v", err)
	}
	if resolved.ID != customer.ID {
		t.Errorf("resolved customer = %d, want %d", resolved.ID, customer.ID)
	}
	if resolved.Email != "session@example.com" {
		t.Errorf("resolved email = %q", resolved.Email)
	}

	if _, err := store.ResolveSession(ctx, db, "not-a-token"); !errors.Is(err, database.ErrSessionNotFound) {
		t.Errorf("expected session not found, got: %v", err)
	}
}

func TestGetCustomerByEmail(t *testing.T) {
	db, cleanup := setupTestDB(t)
	defer cleanup()

	ctx := context.Background()

	created, err := store.CreateCustomer(ctx, db, "lookup@example.com", "Lookup", "")
	if err != nil {
		t.Fatalf("Create customer: %v", err)
	}

	got, err := store.GetCustomerByEmail(ctx, db, "lookup@example.com")
	if err != nil {
		t.Fatalf("Get by email: %v", err)
	}
	if got.ID != created.ID {
		t.Errorf("customer id = %d, want %d", got.ID, created.ID)
	}

	if _, err := store.GetCustomerByEmail(ctx, db, "missing@example.com"); !errors.Is(err, database.ErrCustomerNotFound) {
		t.Errorf("expected customer not found, got: %v", err)
	}
}
