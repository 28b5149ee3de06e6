package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/lib/pq"
	"github.com/minhvo/go-ev-store/internal/database"
	"github.com/minhvo/go-ev-store/internal/models"
	"github.com/shopspring/decimal"
)

type CreateVehicleRequest struct {
	SKU             string
	Name            string
	Description     string
	Price           decimal.Decimal
	Discount        decimal.Decimal
	OriginalPrice   decimal.Decimal
	Colors          []string
	Batteries       []string
	Stock           int
	IsFeatured      bool
	ForceNew        bool
	ForceBestSeller bool
	Rating          float64
	ReviewCount     int
}

const vehicleColumns = `id, sku, name, description, price, discount, original_price,
	colors, batteries, stock_quantity, is_featured, sales_count, rating, review_count,
	force_new, force_best_seller, created_at, updated_at, version`

func scanVehicle(row interface{ Scan(...interface{}) error }) (*models.Vehicle, error) {
	vehicle := &models.Vehicle{}
	err := row.Scan(
		&vehicle.ID,
		&vehicle.SKU,
		&vehicle.Name,
		&vehicle.Description,
		&vehicle.Price,
		&vehicle.Discount,
		&vehicle.OriginalPrice,
		pq.Array(&vehicle.Colors),
		pq.Array(&vehicle.Batteries),
		&vehicle.StockQuantity,
		&vehicle.IsFeatured,
		&vehicle.SalesCount,
		&vehicle.Rating,
		&vehicle.ReviewCount,
		&vehicle.ForceNew,
		&vehicle.ForceBestSeller,
		&vehicle.CreatedAt,
		&vehicle.UpdatedAt,
		&vehicle.Version,
	)
	if err != nil {
		return nil, err
	}
	return vehicle, nil
}

func CreateVehicle(ctx context.Context, db *sql.DB, req CreateVehicleRequest) (*models.Vehicle, error) {
	query := `
		INSERT INTO vehicles (sku, name, description, price, discount, original_price,
			colors, batteries, stock_quantity, is_featured, force_new, force_best_seller,
			rating, review_count, created_at, updated_at, version)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, NOW(), NOW(), 1)
		RETURNING ` + vehicleColumns

	row := db.QueryRowContext(ctx, query,
		req.SKU, req.Name, req.Description, req.Price, req.Discount, req.OriginalPrice,
		pq.Array(req.Colors), pq.Array(req.Batteries), req.Stock,
		req.IsFeatured, req.ForceNew, req.ForceBestSeller, req.Rating, req.ReviewCount)

	vehicle, err := scanVehicle(row)
	if err != nil {
		return nil, fmt.Errorf("create vehicle: %w", err)
	}
	return vehicle, nil
}

func GetVehicle(ctx context.Context, db *sql.DB, id int64) (*models.Vehicle, error) {
	query := `SELECT ` + vehicleColumns + ` FROM vehicles WHERE id = $1`

	vehicle, err := scanVehicle(db.QueryRowContext(ctx, query, id))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, database.ErrVehicleNotFound
		}
		return nil, fmt.Errorf("get vehicle: %w", err)
	}
	return vehicle, nil
}

func ListVehicles(ctx context.Context, db *sql.DB, page, pageSize int) (*OffsetPage, error) {
	var total int64
	err := db.QueryRowContext(ctx, `SELECT COUNT(*) FROM vehicles`).Scan(&total)
	if err != nil {
		return nil, fmt.Errorf("count vehicles: %w", err)
	}

	offset := (page - 1) * pageSize
	query := `
		SELECT ` + vehicleColumns + `
		FROM vehicles
		ORDER BY created_at DESC
		LIMIT $1 OFFSET $2`

	rows, err := db.QueryContext(ctx, query, pageSize, offset)
	if err != nil {
		return nil, fmt.Errorf("list vehicles: %w", err)
	}
	defer rows.Close()

	var vehicles []models.Vehicle
	for rows.Next() {
		vehicle, err := scanVehicle(rows)
		if err != nil {
			return nil, fmt.Errorf("scan vehicle: %w", err)
		}
		vehicles = append(vehicles, *vehicle)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows error: %w", err)
	}

	totalPages := int(total) / pageSize
	if int(total)%pageSize > 0 {
		totalPages++
	}

	return &OffsetPage{
		Items:      vehicles,
		Total:      total,
		Page:       page,
		PageSize:   pageSize,
		TotalPages: totalPages,
	}, nil
}

// RecordVehicleSale takes one unit out of stock and bumps the sales counter
// that feeds BESTSELLER scoring. The row lock is NOWAIT; a concurrently held
// lock surfaces as ErrLockTimeout. Runs inside the caller's transaction.
func RecordVehicleSale(ctx context.Context, tx *sql.Tx, vehicleID int64) error {
	var stock int
	err := tx.QueryRowContext(ctx,
		`SELECT stock_quantity
		 FROM vehicles
		 WHERE id = $1
		 FOR UPDATE NOWAIT`,
		vehicleID).Scan(&stock)
	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok && pqErr.Code == "55P03" {
			return database.ErrLockTimeout
		}
		if err == sql.ErrNoRows {
			return database.ErrVehicleNotFound
		}
		return fmt.Errorf("lock vehicle: %w", err)
	}

	if stock < 1 {
		return database.ErrInsufficientStock
	}

	_, err = tx.ExecContext(ctx,
		`UPDATE vehicles
		 SET sales_count = sales_count + 1,
		     stock_quantity = stock_quantity - 1,
		     updated_at = NOW()
		 WHERE id = $1`,
		vehicleID)
	if err != nil {
		return fmt.Errorf("record vehicle sale: %w", err)
	}

	return nil
}

// UpdateVehicleStock replaces the stock level using the version the caller
// read; a write that raced another update fails instead of clobbering it.
func UpdateVehicleStock(ctx context.Context, db *sql.DB, vehicleID int64, newStock, version int) error {
	result, err := db.ExecContext(ctx,
		`UPDATE vehicles
		 SET stock_quantity = $1, version = version + 1, updated_at = NOW()
		 WHERE id = $2 AND version = $3`,
		newStock, vehicleID, version)
	if err != nil {
		return fmt.Errorf("update vehicle stock: %w", err)
	}

	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("get rows affected: %w", err)
	}
	if rowsAffected == 0 {
		return database.ErrOptimisticLockFailed
	}

	return nil
}
