package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/minhvo/go-ev-store/internal/database"
	"github.com/minhvo/go-ev-store/internal/models"
)

func CreateCustomer(ctx context.Context, db *sql.DB, email, name, phone string) (*models.Customer, error) {
	customer := &models.Customer{}

	query := `
		INSERT INTO customers (email, name, phone, created_at, updated_at, version)
		VALUES ($1, $2, $3, NOW(), NOW(), 1)
		RETURNING id, email, name, phone, created_at, updated_at, version`

	err := db.QueryRowContext(ctx, query, email, name, phone).Scan(
		&customer.ID,
		&customer.Email,
		&customer.Name,
		&customer.Phone,
		&customer.CreatedAt,
		&customer.UpdatedAt,
		&customer.Version,
	)
	if err != nil {
		return nil, fmt.Errorf("create customer: %w", err)
	}

	return customer, nil
}

func GetCustomer(ctx context.Context, db *sql.DB, id int64) (*models.Customer, error) {
	customer := &models.Customer{}

	query := `
		SELECT id, email, name, phone, created_at, updated_at, version
		FROM customers
		WHERE id = $1`

	err := db.QueryRowContext(ctx, query, id).Scan(
		&customer.ID,
		&customer.Email,
		&customer.Name,
		&customer.Phone,
		&customer.CreatedAt,
		&customer.UpdatedAt,
		&customer.Version,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, database.ErrCustomerNotFound
		}
		return nil, fmt.Errorf("get customer: %w", err)
	}

	return customer, nil
}

func GetCustomerByEmail(ctx context.Context, db *sql.DB, email string) (*models.Customer, error) {
	customer := &models.Customer{}

	query := `
		SELECT id, email, name, phone, created_at, updated_at, version
		FROM customers
		WHERE email = $1`

	err := db.QueryRowContext(ctx, query, email).Scan(
		&customer.ID,
		&customer.Email,
		&customer.Name,
		&customer.Phone,
		&customer.CreatedAt,
		&customer.UpdatedAt,
		&customer.Version,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, database.ErrCustomerNotFound
		}
		return nil, fmt.Errorf("get customer by email: %w", err)
	}

	return customer, nil
}

// CreateSession issues an opaque bearer token for a customer.
func CreateSession(ctx context.Context, db *sql.DB, customerID int64, ttl time.Duration) (*models.Session, error) {
	session := &models.Session{}
	token := uuid.NewString()

	query := `
		INSERT INTO customer_sessions (token, customer_id, expires_at, created_at)
		VALUES ($1, $2, NOW() + $3::interval, NOW())
		RETURNING token, customer_id, expires_at, created_at`

	interval := fmt.Sprintf("%d seconds", int64(ttl.Seconds()))
	err := db.QueryRowContext(ctx, query, token, customerID, interval).Scan(
		&session.Token,
		&session.CustomerID,
		&session.ExpiresAt,
		&session.CreatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("create session: %w", err)
	}

	return session, nil
}

// ResolveSession maps a bearer token to its customer. Expired or unknown
// tokens return ErrSessionNotFound.
func ResolveSession(ctx context.Context, db *sql.DB, token string) (*models.Customer, error) {
	customer := &models.Customer{}

	query := `
		SELECT c.id, c.email, c.name, c.phone, c.created_at, c.updated_at, c.version
		FROM customer_sessions s
		JOIN customers c ON c.id = s.customer_id
		WHERE s.token = $1 AND s.expires_at > NOW()`

	err := db.QueryRowContext(ctx, query, token).Scan(
		&customer.ID,
		&customer.Email,
		&customer.Name,
		&customer.Phone,
		&customer.CreatedAt,
		&customer.UpdatedAt,
		&customer.Version,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, database.ErrSessionNotFound
		}
		return nil, fmt.Errorf("resolve session: %w", err)
	}

	return customer, nil
}
