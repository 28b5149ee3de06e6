package httpapi

import (
	"database/sql"
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	validatorv10 "github.com/go-playground/validator/v10"
	"github.com/minhvo/go-ev-store/internal/cache"
	"github.com/minhvo/go-ev-store/internal/config"
	"github.com/minhvo/go-ev-store/internal/database"
)

type Server struct {
	engine   *gin.Engine
	db       *sql.DB
	cfg      *config.Config
	cache    cache.Cache
	validate *validatorv10.Validate
}

func NewServer(cfg *config.Config, db *sql.DB, c cache.Cache) *Server {
	engine := gin.New()
	engine.Use(gin.Recovery(), requestID(), requestLogger(), auth(db))

	s := &Server{
		engine:   engine,
		db:       db,
		cfg:      cfg,
		cache:    c,
		validate: newValidator(),
	}
	s.registerRoutes()
	return s
}

func (s *Server) Engine() *gin.Engine { return s.engine }

func (s *Server) registerRoutes() {
	s.engine.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	v1 := s.engine.Group("/api/v1")
	{
		orders := v1.Group("/orders")
		orders.POST("", s.createOrder)
		orders.GET("/code/:code", s.getOrderByCode)
		orders.PATCH("/:id/status", s.updateOrderStatus)

		v1.GET("/me/orders", s.listMyOrders)
		v1.POST("/payments/notify", s.notifyPayment)

		vehicles := v1.Group("/vehicles")
		vehicles.POST("", s.createVehicle)
		vehicles.GET("", s.listVehicles)
		vehicles.GET("/:id", s.getVehicle)
		vehicles.PATCH("/:id/stock", s.updateVehicleStock)

		v1.POST("/showrooms", s.createShowroom)
		v1.POST("/customers", s.createCustomer)
		v1.POST("/sessions", s.createSession)
	}
}

func mapErrorToStatus(err error) int {
	switch {
	case errors.Is(err, database.ErrOrderNotFound),
		errors.Is(err, database.ErrVehicleNotFound),
		errors.Is(err, database.ErrCustomerNotFound),
		errors.Is(err, database.ErrShowroomNotFound),
		errors.Is(err, database.ErrTransactionNotFound):
		return http.StatusNotFound
	case errors.Is(err, database.ErrSessionNotFound):
		return http.StatusUnauthorized
	case errors.Is(err, database.ErrOptimisticLockFailed),
		errors.Is(err, database.ErrInsufficientStock),
		errors.Is(err, database.ErrLockTimeout):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

func respondError(c *gin.Context, err error) {
	c.JSON(mapErrorToStatus(err), gin.H{"error": err.Error()})
}

func parseID(raw string) (int64, error) {
	return strconv.ParseInt(raw, 10, 64)
}

func parsePageParams(c *gin.Context) (page, pageSize int) {
	page, _ = strconv.Atoi(c.Query("page"))
	if page < 1 {
		page = 1
	}
	pageSize, _ = strconv.Atoi(c.Query("page_size"))
	if pageSize < 1 || pageSize > 100 {
		pageSize = 20
	}
	return page, pageSize
}
