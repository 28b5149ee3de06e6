package httpapi

import (
	"time"

	"github.com/minhvo/go-ev-store/internal/models"
)

type customerInfoRequest struct {
	Name    string `json:"name" validate:"required"`
	Phone   string `json:"phone" validate:"required"`
	Email   string `json:"email" validate:"omitempty,email"`
	Address string `json:"address"`
}

func (r customerInfoRequest) toModel() models.CustomerInfo {
	return models.CustomerInfo{
		Name:    r.Name,
		Phone:   r.Phone,
		Email:   r.Email,
		Address: r.Address,
	}
}

// createOrderRequest mirrors the checkout submission. PaymentMethod is a
// free string: unknown methods are priced with a zero deposit split rather
// than rejected.
type createOrderRequest struct {
	VehicleID       int64               `json:"vehicle_id" validate:"required,gt=0"`
	PaymentMethod   string              `json:"payment_method"`
	SelectedColor   string              `json:"selected_color"`
	SelectedBattery string              `json:"selected_battery"`
	SelectedGifts   []string            `json:"selected_gifts"`
	CustomerInfo    customerInfoRequest `json:"customer_info" validate:"required"`
	ShowroomID      *int64              `json:"showroom_id" validate:"omitempty,gt=0"`
	AppointmentDate *time.Time          `json:"appointment_date"`
	Notes           string              `json:"notes"`
	Gateway         string              `json:"gateway"`
}

type updateOrderStatusRequest struct {
	Status string `json:"status" validate:"required"`
	Note   string `json:"note"`
}

type paymentNotifyRequest struct {
	TransactionID string `json:"transaction_id" validate:"required"`
	Status        string `json:"status" validate:"required,oneof=success failed"`
}

// createVehicleRequest takes whole-dong VND amounts.
type createVehicleRequest struct {
	SKU             string   `json:"sku" validate:"required"`
	Name            string   `json:"name" validate:"required"`
	Description     string   `json:"description"`
	Price           int64    `json:"price" validate:"required,gt=0"`
	Discount        int64    `json:"discount" validate:"gte=0"`
	OriginalPrice   int64    `json:"original_price" validate:"gte=0"`
	Colors          []string `json:"colors"`
	Batteries       []string `json:"batteries"`
	Stock           int      `json:"stock" validate:"gte=0"`
	IsFeatured      bool     `json:"is_featured"`
	ForceNew        bool     `json:"force_new"`
	ForceBestSeller bool     `json:"force_best_seller"`
	Rating          float64  `json:"rating" validate:"gte=0,lte=5"`
	ReviewCount     int      `json:"review_count" validate:"gte=0"`
}

// updateVehicleStockRequest carries the version the caller read along with
// the new level; a stale version is rejected, not overwritten.
type updateVehicleStockRequest struct {
	Stock   int `json:"stock" validate:"gte=0"`
	Version int `json:"version" validate:"required,gt=0"`
}

type createShowroomRequest struct {
	Name    string `json:"name" validate:"required"`
	Address string `json:"address" validate:"required"`
	Phone   string `json:"phone"`
}

type createCustomerRequest struct {
	Email string `json:"email" validate:"required,email"`
	Name  string `json:"name" validate:"required"`
	Phone string `json:"phone"`
}

type createSessionRequest struct {
	Email string `json:"email" validate:"required,email"`
}

type badgeView struct {
	Kind     string `json:"kind"`
	Label    string `json:"label"`
	Priority int    `json:"priority"`
}
