package models

import (
	"encoding/json"
	"time"

	"github.com/shopspring/decimal"
)

type Customer struct {
	ID        int64     `json:"id"`
	Email     string    `json:"email"`
	Name      string    `json:"name"`
	Phone     string    `json:"phone,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
	Version   int       `json:"version"`
}

// Session is an opaque bearer token resolving to a customer.
type Session struct {
	Token      string    `json:"token"`
	CustomerID int64     `json:"customer_id"`
	ExpiresAt  time.Time `json:"expires_at"`
	CreatedAt  time.Time `json:"created_at"`
}

type Showroom struct {
	ID        int64     `json:"id"`
	Name      string    `json:"name"`
	Address   string    `json:"address"`
	Phone     string    `json:"phone,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// Vehicle is a catalog item. Price, Discount and OriginalPrice are whole-dong
// VND amounts; a zero OriginalPrice means no strikethrough price is set.
type Vehicle struct {
	ID              int64           `json:"id"`
	SKU             string          `json:"sku"`
	Name            string          `json:"name"`
	Description     string          `json:"description,omitempty"`
	Price           decimal.Decimal `json:"price"`
	Discount        decimal.Decimal `json:"discount"`
	OriginalPrice   decimal.Decimal `json:"original_price"`
	Colors          []string        `json:"colors"`
	Batteries       []string        `json:"batteries"`
	StockQuantity   int             `json:"stock_quantity"`
	IsFeatured      bool            `json:"is_featured"`
	SalesCount      int             `json:"sales_count"`
	Rating          float64         `json:"rating"`
	ReviewCount     int             `json:"review_count"`
	ForceNew        bool            `json:"force_new"`
	ForceBestSeller bool            `json:"force_best_seller"`
	CreatedAt       time.Time       `json:"created_at"`
	UpdatedAt       time.Time       `json:"updated_at"`
	Version         int             `json:"version"`
}

// CustomerInfo is the contact block captured at checkout. Orders keep their
// own copy so guest checkouts work without a customer record.
type CustomerInfo struct {
	Name    string `json:"name"`
	Phone   string `json:"phone"`
	Email   string `json:"email,omitempty"`
	Address string `json:"address,omitempty"`
}

type Order struct {
	ID              int64                `json:"id"`
	OrderCode       string               `json:"order_code"`
	VehicleID       int64                `json:"vehicle_id"`
	CustomerID      *int64               `json:"customer_id,omitempty"`
	ShowroomID      *int64               `json:"showroom_id,omitempty"`
	Status          string               `json:"status"`
	PaymentStatus   string               `json:"payment_status"`
	PaymentMethod   string               `json:"payment_method"`
	SelectedColor   string               `json:"selected_color,omitempty"`
	SelectedBattery string               `json:"selected_battery,omitempty"`
	SelectedGifts   []string             `json:"selected_gifts,omitempty"`
	CustomerInfo    CustomerInfo         `json:"customer_info"`
	AppointmentDate *time.Time           `json:"appointment_date,omitempty"`
	Notes           string               `json:"notes,omitempty"`
	BasePrice       decimal.Decimal      `json:"base_price"`
	Discount        decimal.Decimal      `json:"discount"`
	RegistrationFee decimal.Decimal      `json:"registration_fee"`
	LicensePlateFee decimal.Decimal      `json:"license_plate_fee"`
	TotalAmount     decimal.Decimal      `json:"total_amount"`
	DepositAmount   decimal.Decimal      `json:"deposit_amount"`
	RemainingAmount decimal.Decimal      `json:"remaining_amount"`
	CreatedAt       time.Time            `json:"created_at"`
	UpdatedAt       time.Time            `json:"updated_at"`
	Version         int                  `json:"version"`
	Tracking        []TrackingEntry      `json:"tracking_history,omitempty"`
	Transactions    []PaymentTransaction `json:"transactions,omitempty"`
	Vehicle         *Vehicle             `json:"vehicle,omitempty"`
	Showroom        *Showroom            `json:"showroom,omitempty"`
}

// TrackingEntry is one append-only row of an order's status history.
type TrackingEntry struct {
	ID        int64     `json:"id"`
	OrderID   int64     `json:"order_id"`
	Status    string    `json:"status"`
	Note      string    `json:"note"`
	UpdatedBy string    `json:"updated_by"`
	CreatedAt time.Time `json:"timestamp"`
}

type PaymentTransaction struct {
	ID            int64           `json:"id"`
	OrderID       int64           `json:"order_id"`
	TransactionID string          `json:"transaction_id"`
	Amount        decimal.Decimal `json:"amount"`
	Status        string          `json:"status"`
	Gateway       string          `json:"gateway"`
	Metadata      json.RawMessage `json:"metadata,omitempty"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`
}

const (
	OrderStatusPendingPayment = "pending_payment"
	OrderStatusDepositPaid    = "deposit_paid"
	OrderStatusProcessing     = "processing"
	OrderStatusReadyForPickup = "ready_for_pickup"
	OrderStatusCompleted      = "completed"
	OrderStatusCancelled      = "cancelled"
	OrderStatusRefunded       = "refunded"
)

const (
	PaymentStatusPending = "pending"
	PaymentStatusPaid    = "paid"
	PaymentStatusFailed  = "failed"
)

const (
	PaymentMethodDeposit     = "deposit"
	PaymentMethodFullPayment = "full_payment"
	PaymentMethodInstallment = "installment"
)

const (
	TransactionStatusPending = "pending"
	TransactionStatusSuccess = "success"
	TransactionStatusFailed  = "failed"
)
