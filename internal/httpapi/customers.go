package httpapi

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/minhvo/go-ev-store/internal/store"
)

func (s *Server) createCustomer(c *gin.Context) {
	var req createCustomerRequest
	if err := bindAndValidate(c, &req, s.validate); err != nil {
		return
	}

	customer, err := store.CreateCustomer(c.Request.Context(), s.db, req.Email, req.Name, req.Phone)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, customer)
}

func (s *Server) createSession(c *gin.Context) {
	var req createSessionRequest
	if err := bindAndValidate(c, &req, s.validate); err != nil {
		return
	}

	ctx := c.Request.Context()
	customer, err := store.GetCustomerByEmail(ctx, s.db, req.Email)
	if err != nil {
		respondError(c, err)
		return
	}

	session, err := store.CreateSession(ctx, s.db, customer.ID, s.cfg.Session.TTL)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, session)
}

func (s *Server) createShowroom(c *gin.Context) {
	var req createShowroomRequest
	if err := bindAndValidate(c, &req, s.validate); err != nil {
		return
	}

	showroom, err := store.CreateShowroom(c.Request.Context(), s.db, req.Name, req.Address, req.Phone)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, showroom)
}
