package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/minhvo/go-ev-store/internal/database"
	"github.com/minhvo/go-ev-store/internal/models"
	"github.com/minhvo/go-ev-store/internal/pricing"
)

// CreatePaymentTransaction inserts the pending transaction that accompanies
// an order. Amount is the order's deposit at creation time; retries insert
// new rows rather than mutating old ones. Runs inside the caller's
// transaction so the order never exists without its payment attempt.
func CreatePaymentTransaction(ctx context.Context, tx *sql.Tx, order *models.Order, gateway string) (*models.PaymentTransaction, error) {
	now := time.Now()
	txn := &models.PaymentTransaction{
		OrderID:       order.ID,
		TransactionID: pricing.FormatTransactionID(order.OrderCode, now.UnixMilli()),
		Amount:        order.DepositAmount,
		Status:        models.TransactionStatusPending,
		Gateway:       gateway,
	}

	metadata, err := json.Marshal(map[string]string{
		"order_code": order.OrderCode,
		"created_at": now.UTC().Format(time.RFC3339),
	})
	if err != nil {
		return nil, fmt.Errorf("marshal transaction metadata: %w", err)
	}
	txn.Metadata = metadata

	err = tx.QueryRowContext(ctx,
		`INSERT INTO payment_transactions (order_id, transaction_id, amount, status, gateway, metadata, created_at, updated_at)
		 VALUES ($1, $2, $3, $4, $5, $6, NOW(), NOW())
		 RETURNING id, created_at, updated_at`,
		txn.OrderID, txn.TransactionID, txn.Amount, txn.Status, txn.Gateway, txn.Metadata,
	).Scan(&txn.ID, &txn.CreatedAt, &txn.UpdatedAt)
	if err != nil {
		return nil, fmt.Errorf("create payment transaction: %w", err)
	}

	return txn, nil
}

func ListOrderTransactions(ctx context.Context, db *sql.DB, orderID int64) ([]models.PaymentTransaction, error) {
	rows, err := db.QueryContext(ctx,
		`SELECT id, order_id, transaction_id, amount, status, gateway, metadata, created_at, updated_at
		 FROM payment_transactions
		 WHERE order_id = $1
		 ORDER BY created_at, id`,
		orderID)
	if err != nil {
		return nil, fmt.Errorf("list order transactions: %w", err)
	}
	defer rows.Close()

	var transactions []models.PaymentTransaction
	for rows.Next() {
		var txn models.PaymentTransaction
		err := rows.Scan(
			&txn.ID,
			&txn.OrderID,
			&txn.TransactionID,
			&txn.Amount,
			&txn.Status,
			&txn.Gateway,
			&txn.Metadata,
			&txn.CreatedAt,
			&txn.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("scan payment transaction: %w", err)
		}
		transactions = append(transactions, txn)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("rows error: %w", err)
	}

	return transactions, nil
}

// SettleTransaction applies a gateway result. On success the transaction,
// the order's payment status and the order status move together and a
// deposit_paid tracking entry is appended; on failure only the payment
// side flips.
func SettleTransaction(ctx context.Context, db *sql.DB, transactionID string, success bool) (*models.PaymentTransaction, error) {
	txnStatus := models.TransactionStatusFailed
	if success {
		txnStatus = models.TransactionStatusSuccess
	}

	txn := &models.PaymentTransaction{}
	err := database.WithTransaction(ctx, db, database.DefaultTxOptions(), func(tx *sql.Tx) error {
		err := tx.QueryRowContext(ctx,
			`UPDATE payment_transactions
			 SET status = $1, updated_at = NOW()
			 WHERE transaction_id = $2
			 RETURNING id, order_id, transaction_id, amount, status, gateway, metadata, created_at, updated_at`,
			txnStatus, transactionID).Scan(
			&txn.ID,
			&txn.OrderID,
			&txn.TransactionID,
			&txn.Amount,
			&txn.Status,
			&txn.Gateway,
			&txn.Metadata,
			&txn.CreatedAt,
			&txn.UpdatedAt,
		)
		if err != nil {
			if err == sql.ErrNoRows {
				return database.ErrTransactionNotFound
			}
			return fmt.Errorf("settle transaction: %w", err)
		}

		if success {
			_, err = tx.ExecContext(ctx,
				`UPDATE orders
				 SET payment_status = $1, status = $2, updated_at = NOW(), version = version + 1
				 WHERE id = $3`,
				models.PaymentStatusPaid, models.OrderStatusDepositPaid, txn.OrderID)
			if err != nil {
				return fmt.Errorf("mark order paid: %w", err)
			}

			_, err = appendTracking(ctx, tx, txn.OrderID, models.OrderStatusDepositPaid,
				"Deposit payment confirmed", "gateway")
			return err
		}

		_, err = tx.ExecContext(ctx,
			`UPDATE orders
			 SET payment_status = $1, updated_at = NOW(), version = version + 1
			 WHERE id = $2`,
			models.PaymentStatusFailed, txn.OrderID)
		if err != nil {
			return fmt.Errorf("mark order payment failed: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return txn, nil
}
