package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/minhvo/go-ev-store/internal/database"
	"github.com/minhvo/go-ev-store/internal/models"
)

func CreateShowroom(ctx context.Context, db *sql.DB, name, address, phone string) (*models.Showroom, error) {
	showroom := &models.Showroom{}

	query := `
		INSERT INTO showrooms (name, address, phone, created_at)
		VALUES ($1, $2, $3, NOW())
		RETURNING id, name, address, phone, created_at`

	err := db.QueryRowContext(ctx, query, name, address, phone).Scan(
		&showroom.ID,
		&showroom.Name,
		&showroom.Address,
		&showroom.Phone,
		&showroom.CreatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("create showroom: %w", err)
	}

	return showroom, nil
}

func GetShowroom(ctx context.Context, db *sql.DB, id int64) (*models.Showroom, error) {
	showroom := &models.Showroom{}

	query := `
		SELECT id, name, address, phone, created_at
		FROM showrooms
		WHERE id = $1`

	err := db.QueryRowContext(ctx, query, id).Scan(
		&showroom.ID,
		&showroom.Name,
		&showroom.Address,
		&showroom.Phone,
		&showroom.CreatedAt,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, database.ErrShowroomNotFound
		}
		return nil, fmt.Errorf("get showroom: %w", err)
	}

	return showroom, nil
}
