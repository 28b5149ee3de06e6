package httpapi

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/minhvo/go-ev-store/internal/database"
	"github.com/minhvo/go-ev-store/internal/store"
)

func (s *Server) createOrder(c *gin.Context) {
	ctx := c.Request.Context()

	var req createOrderRequest
	if err := bindAndValidate(c, &req, s.validate); err != nil {
		return
	}

	storeReq := store.CreateOrderRequest{
		VehicleID:       req.VehicleID,
		ShowroomID:      req.ShowroomID,
		PaymentMethod:   req.PaymentMethod,
		SelectedColor:   req.SelectedColor,
		SelectedBattery: req.SelectedBattery,
		SelectedGifts:   req.SelectedGifts,
		CustomerInfo:    req.CustomerInfo.toModel(),
		AppointmentDate: req.AppointmentDate,
		Notes:           req.Notes,
		Gateway:         req.Gateway,
	}
	if storeReq.Gateway == "" {
		storeReq.Gateway = s.cfg.Payment.DefaultGateway
	}
	if principal, ok := currentPrincipal(c); ok {
		id := principal.CustomerID
		storeReq.CustomerID = &id
	}

	result, err := store.CreateOrder(ctx, s.db, storeReq)
	if err != nil {
		if errors.Is(err, database.ErrVehicleNotFound) {
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	paymentURL := fmt.Sprintf("%s/payment?orderCode=%s&txn=%s",
		s.cfg.Payment.FrontendBaseURL, result.Order.OrderCode, result.Transaction.TransactionID)

	c.JSON(http.StatusCreated, gin.H{
		"order":          result.Order,
		"payment_url":    paymentURL,
		"transaction_id": result.Transaction.TransactionID,
		"meta": gin.H{
			"pricing": result.Pricing,
		},
	})
}

// getOrderByCode allows guest tracking: an unauthenticated lookup by code
// succeeds, but an authenticated caller may not read someone else's order.
func (s *Server) getOrderByCode(c *gin.Context) {
	order, err := store.GetOrderByCode(c.Request.Context(), s.db, c.Param("code"))
	if err != nil {
		respondError(c, err)
		return
	}

	if principal, ok := currentPrincipal(c); ok {
		if order.CustomerID != nil && *order.CustomerID != principal.CustomerID {
			c.JSON(http.StatusForbidden, gin.H{"error": "order belongs to another customer"})
			return
		}
	}

	c.JSON(http.StatusOK, order)
}

func (s *Server) updateOrderStatus(c *gin.Context) {
	id, err := parseID(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid order id"})
		return
	}

	var req updateOrderStatusRequest
	if err := bindAndValidate(c, &req, s.validate); err != nil {
		return
	}

	updatedBy := ""
	if principal, ok := currentPrincipal(c); ok {
		updatedBy = principal.Username
	}

	order, err := store.UpdateOrderStatus(c.Request.Context(), s.db, id, req.Status, req.Note, updatedBy)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, order)
}

func (s *Server) listMyOrders(c *gin.Context) {
	principal, ok := currentPrincipal(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "authentication required"})
		return
	}

	_, limit := parsePageParams(c)
	page, err := store.ListCustomerOrders(c.Request.Context(), s.db, principal.CustomerID,
		c.Query("cursor"), limit)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusOK, page)
}

func (s *Server) notifyPayment(c *gin.Context) {
	var req paymentNotifyRequest
	if err := bindAndValidate(c, &req, s.validate); err != nil {
		return
	}

	txn, err := store.SettleTransaction(c.Request.Context(), s.db,
		req.TransactionID, req.Status == "success")
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, txn)
}
