package store

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/lib/pq"
	"github.com/minhvo/go-ev-store/internal/database"
	"github.com/minhvo/go-ev-store/internal/models"
	"github.com/minhvo/go-ev-store/internal/pricing"
)

type CreateOrderRequest struct {
	VehicleID       int64
	CustomerID      *int64
	ShowroomID      *int64
	PaymentMethod   string
	SelectedColor   string
	SelectedBattery string
	SelectedGifts   []string
	CustomerInfo    models.CustomerInfo
	AppointmentDate *time.Time
	Notes           string
	Gateway         string
}

type CreateOrderResult struct {
	Order       *models.Order
	Transaction *models.PaymentTransaction
	Pricing     pricing.Quote
}

const orderColumns = `id, order_code, vehicle_id, customer_id, showroom_id, status,
	payment_status, payment_method, selected_color, selected_battery, selected_gifts,
	info_name, info_phone, info_email, info_address, appointment_date, notes,
	base_price, discount, registration_fee, license_plate_fee, total_amount,
	deposit_amount, remaining_amount, created_at, updated_at, version`

func scanOrder(row interface{ Scan(...interface{}) error }) (*models.Order, error) {
	order := &models.Order{}
	var customerID, showroomID sql.NullInt64
	var appointment sql.NullTime

	err := row.Scan(
		&order.ID,
		&order.OrderCode,
		&order.VehicleID,
		&customerID,
		&showroomID,
		&order.Status,
		&order.PaymentStatus,
		&order.PaymentMethod,
		&order.SelectedColor,
		&order.SelectedBattery,
		pq.Array(&order.SelectedGifts),
		&order.CustomerInfo.Name,
		&order.CustomerInfo.Phone,
		&order.CustomerInfo.Email,
		&order.CustomerInfo.Address,
		&appointment,
		&order.Notes,
		&order.BasePrice,
		&order.Discount,
		&order.RegistrationFee,
		&order.LicensePlateFee,
		&order.TotalAmount,
		&order.DepositAmount,
		&order.RemainingAmount,
		&order.CreatedAt,
		&order.UpdatedAt,
		&order.Version,
	)
	if err != nil {
		return nil, err
	}

	if customerID.Valid {
		order.CustomerID = &customerID.Int64
	}
	if showroomID.Valid {
		order.ShowroomID = &showroomID.Int64
	}
	if appointment.Valid {
		t := appointment.Time
		order.AppointmentDate = &t
	}
	return order, nil
}

// CreateOrder prices the vehicle, assigns the next sequential order code and
// persists the order, its seed tracking row and the initial pending payment
// transaction in a single serializable transaction. The code comes from a
// database sequence, so concurrent checkouts never collide.
func CreateOrder(ctx context.Context, db *sql.DB, req CreateOrderRequest) (*CreateOrderResult, error) {
	var result *CreateOrderResult

	err := database.WithRetry(ctx, db, database.TxOptions{
		IsolationLevel: sql.LevelSerializable,
		MaxRetries:     3,
	}, func(tx *sql.Tx) error {
		vehicle := &models.Vehicle{}
		err := tx.QueryRowContext(ctx,
			`SELECT id, price, discount FROM vehicles WHERE id = $1`,
			req.VehicleID).Scan(&vehicle.ID, &vehicle.Price, &vehicle.Discount)
		if err != nil {
			if err == sql.ErrNoRows {
				return database.ErrVehicleNotFound
			}
			return fmt.Errorf("load vehicle: %w", err)
		}

		quote := pricing.Compute(vehicle.Price, vehicle.Discount, req.PaymentMethod)

		var seq int64
		if err := tx.QueryRowContext(ctx, `SELECT nextval('order_code_seq')`).Scan(&seq); err != nil {
			return fmt.Errorf("next order code: %w", err)
		}
		orderCode := pricing.FormatOrderCode(seq)

		order := &models.Order{
			OrderCode:       orderCode,
			VehicleID:       req.VehicleID,
			CustomerID:      req.CustomerID,
			ShowroomID:      req.ShowroomID,
			Status:          models.OrderStatusPendingPayment,
			PaymentStatus:   models.PaymentStatusPending,
			PaymentMethod:   req.PaymentMethod,
			SelectedColor:   req.SelectedColor,
			SelectedBattery: req.SelectedBattery,
			SelectedGifts:   req.SelectedGifts,
			CustomerInfo:    req.CustomerInfo,
			AppointmentDate: req.AppointmentDate,
			Notes:           req.Notes,
			BasePrice:       quote.BasePrice,
			Discount:        quote.Discount,
			RegistrationFee: quote.RegistrationFee,
			LicensePlateFee: quote.LicensePlateFee,
			TotalAmount:     quote.TotalAmount,
			DepositAmount:   quote.DepositAmount,
			RemainingAmount: quote.RemainingAmount,
			Version:         1,
		}

		err = tx.QueryRowContext(ctx,
			`INSERT INTO orders (order_code, vehicle_id, customer_id, showroom_id, status,
				payment_status, payment_method, selected_color, selected_battery, selected_gifts,
				info_name, info_phone, info_email, info_address, appointment_date, notes,
				base_price, discount, registration_fee, license_plate_fee, total_amount,
				deposit_amount, remaining_amount, created_at, updated_at, version)
			 VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16,
				$17, $18, $19, $20, $21, $22, $23, NOW(), NOW(), 1)
			 RETURNING id, created_at, updated_at`,
			order.OrderCode, order.VehicleID, order.CustomerID, order.ShowroomID, order.Status,
			order.PaymentStatus, order.PaymentMethod, order.SelectedColor, order.SelectedBattery,
			pq.Array(order.SelectedGifts),
			order.CustomerInfo.Name, order.CustomerInfo.Phone, order.CustomerInfo.Email,
			order.CustomerInfo.Address, order.AppointmentDate, order.Notes,
			order.BasePrice, order.Discount, order.RegistrationFee, order.LicensePlateFee,
			order.TotalAmount, order.DepositAmount, order.RemainingAmount,
		).Scan(&order.ID, &order.CreatedAt, &order.UpdatedAt)
		if err != nil {
			return fmt.Errorf("create order: %w", err)
		}

		entry, err := appendTracking(ctx, tx, order.ID, order.Status,
			"Order created, awaiting payment", "system")
		if err != nil {
			return err
		}
		order.Tracking = []models.TrackingEntry{*entry}

		txn, err := CreatePaymentTransaction(ctx, tx, order, req.Gateway)
		if err != nil {
			return err
		}
		order.Transactions = []models.PaymentTransaction{*txn}

		result = &CreateOrderResult{Order: order, Transaction: txn, Pricing: quote}
		return nil
	})

	if err != nil {
		return nil, err
	}
	return result, nil
}

func appendTracking(ctx context.Context, tx *sql.Tx, orderID int64, status, note, updatedBy string) (*models.TrackingEntry, error) {
	entry := &models.TrackingEntry{
		OrderID:   orderID,
		Status:    status,
		Note:      note,
		UpdatedBy: updatedBy,
	}

	err := tx.QueryRowContext(ctx,
		`INSERT INTO order_tracking (order_id, status, note, updated_by, created_at)
		 VALUES ($1, $2, $3, $4, NOW())
		 RETURNING id, created_at`,
		orderID, status, note, updatedBy).Scan(&entry.ID, &entry.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("append tracking: %w", err)
	}
	return entry, nil
}

// GetOrderByCode returns an order with its vehicle, showroom, tracking
// history and payment transactions populated.
func GetOrderByCode(ctx context.Context, db *sql.DB, code string) (*models.Order, error) {
	query := `SELECT ` + orderColumns + ` FROM orders WHERE order_code = $1`

	order, err := scanOrder(db.QueryRowContext(ctx, query, code))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, database.ErrOrderNotFound
		}
		return nil, fmt.Errorf("get order by code: %w", err)
	}

	if err := loadOrderRelations(ctx, db, order); err != nil {
		return nil, err
	}
	return order, nil
}

func getOrderByID(ctx context.Context, db *sql.DB, id int64) (*models.Order, error) {
	query := `SELECT ` + orderColumns + ` FROM orders WHERE id = $1`

	order, err := scanOrder(db.QueryRowContext(ctx, query, id))
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, database.ErrOrderNotFound
		}
		return nil, fmt.Errorf("get order: %w", err)
	}

	if err := loadOrderRelations(ctx, db, order); err != nil {
		return nil, err
	}
	return order, nil
}

func loadOrderRelations(ctx context.Context, db *sql.DB, order *models.Order) error {
	vehicle, err := GetVehicle(ctx, db, order.VehicleID)
	if err != nil {
		return err
	}
	order.Vehicle = vehicle

	if order.ShowroomID != nil {
		showroom, err := GetShowroom(ctx, db, *order.ShowroomID)
		if err != nil {
			return err
		}
		order.Showroom = showroom
	}

	rows, err := db.QueryContext(ctx,
		`SELECT id, order_id, status, note, updated_by, created_at
		 FROM order_tracking
		 WHERE order_id = $1
		 ORDER BY created_at, id`,
		order.ID)
	if err != nil {
		return fmt.Errorf("get tracking history: %w", err)
	}
	defer rows.Close()

	var tracking []models.TrackingEntry
	for rows.Next() {
		var entry models.TrackingEntry
		err := rows.Scan(
			&entry.ID,
			&entry.OrderID,
			&entry.Status,
			&entry.Note,
			&entry.UpdatedBy,
			&entry.CreatedAt,
		)
		if err != nil {
			return fmt.Errorf("scan tracking entry: %w", err)
		}
		tracking = append(tracking, entry)
	}
	if err := rows.Err(); err != nil {
		return fmt.Errorf("rows error: %w", err)
	}
	order.Tracking = tracking

	transactions, err := ListOrderTransactions(ctx, db, order.ID)
	if err != nil {
		return err
	}
	order.Transactions = transactions

	return nil
}

// UpdateOrderStatus appends one tracking entry and replaces the order status.
// Any status string is accepted and transitions are not validated against a
// table; the history is the record, not a gate. A completed order bumps the
// vehicle's sales counter.
func UpdateOrderStatus(ctx context.Context, db *sql.DB, orderID int64, newStatus, note, updatedBy string) (*models.Order, error) {
	if note == "" {
		note = fmt.Sprintf("Status updated: %s", newStatus)
	}
	if updatedBy == "" {
		updatedBy = "system"
	}

	err := database.WithTransaction(ctx, db, database.DefaultTxOptions(), func(tx *sql.Tx) error {
		var vehicleID int64
		err := tx.QueryRowContext(ctx,
			`UPDATE orders
			 SET status = $1, updated_at = NOW(), version = version + 1
			 WHERE id = $2
			 RETURNING vehicle_id`,
			newStatus, orderID).Scan(&vehicleID)
		if err != nil {
			if err == sql.ErrNoRows {
				return database.ErrOrderNotFound
			}
			return fmt.Errorf("update order status: %w", err)
		}

		if _, err := appendTracking(ctx, tx, orderID, newStatus, note, updatedBy); err != nil {
			return err
		}

		if newStatus == models.OrderStatusCompleted {
			if err := RecordVehicleSale(ctx, tx, vehicleID); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return getOrderByID(ctx, db, orderID)
}

// ListCustomerOrders pages a customer's orders newest first.
func ListCustomerOrders(ctx context.Context, db *sql.DB, customerID int64, cursor string, limit int) (*CursorPage, error) {
	cursorData, err := DecodeCursor(cursor)
	if err != nil {
		return nil, fmt.Errorf("decode cursor: %w", err)
	}

	query := `
		SELECT ` + orderColumns + `
		FROM orders
		WHERE customer_id = $1
		  AND (created_at, id) < ($2, $3)
		ORDER BY created_at DESC, id DESC
		LIMIT $4`

	rows, err := db.QueryContext(ctx, query, customerID, cursorData.CreatedAt, cursorData.ID, limit+1)
	if err != nil {
		return nil, fmt.Errorf("list customer orders: %w", err)
	}
	defer rows.Close()

	var orders []models.Order
	for rows.Next() {
		order, err := scanOrder(rows)
		if err != nil {
			return nil, fmt.Errorf("scan order: %w", err)
		}
		orders = append(orders, *order)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows error: %w", err)
	}

	hasMore := len(orders) > limit
	if hasMore {
		orders = orders[:limit]
	}

	var nextCursor string
	if hasMore && len(orders) > 0 {
		lastOrder := orders[len(orders)-1]
		nextCursor = EncodeCursor(OrderCursor{
			CreatedAt: lastOrder.CreatedAt,
			ID:        lastOrder.ID,
		})
	}

	return &CursorPage{
		Items:      orders,
		NextCursor: nextCursor,
		HasMore:    hasMore,
	}, nil
}
