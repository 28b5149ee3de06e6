package httpapi

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/minhvo/go-ev-store/internal/badge"
	"github.com/minhvo/go-ev-store/internal/models"
	"github.com/minhvo/go-ev-store/internal/store"
	"github.com/shopspring/decimal"
)

const vehicleCacheTTL = 5 * time.Minute

// vehicleView decorates a vehicle with its computed badge(s). Badges are
// never persisted; they are recomputed on every render.
type vehicleView struct {
	models.Vehicle
	Badge  *badgeView  `json:"badge,omitempty"`
	Badges []badgeView `json:"badges,omitempty"`
}

func toBadgeView(b badge.Badge) badgeView {
	return badgeView{Kind: string(b.Kind), Label: badge.Label(b), Priority: b.Priority}
}

func metricsFromVehicle(v models.Vehicle) badge.Metrics {
	current, _ := v.Price.Sub(v.Discount).Float64()
	original, _ := v.OriginalPrice.Float64()
	if original <= 0 {
		original, _ = v.Price.Float64()
	}

	return badge.Metrics{
		IsFeatured:      v.IsFeatured,
		ForceBestSeller: v.ForceBestSeller,
		ForceNew:        v.ForceNew,
		SalesCount:      v.SalesCount,
		CreatedAt:       v.CreatedAt,
		OriginalPrice:   original,
		CurrentPrice:    current,
		Rating:          v.Rating,
		ReviewCount:     v.ReviewCount,
	}
}

func listView(v models.Vehicle, now time.Time) vehicleView {
	view := vehicleView{Vehicle: v}
	if b, ok := badge.Compute(metricsFromVehicle(v), now); ok {
		bv := toBadgeView(b)
		view.Badge = &bv
	}
	return view
}

func detailView(v models.Vehicle, now time.Time) vehicleView {
	view := listView(v, now)
	for _, b := range badge.ComputeAll(metricsFromVehicle(v), now) {
		view.Badges = append(view.Badges, toBadgeView(b))
	}
	return view
}

func (s *Server) createVehicle(c *gin.Context) {
	var req createVehicleRequest
	if err := bindAndValidate(c, &req, s.validate); err != nil {
		return
	}

	vehicle, err := store.CreateVehicle(c.Request.Context(), s.db, store.CreateVehicleRequest{
		SKU:             req.SKU,
		Name:            req.Name,
		Description:     req.Description,
		Price:           decimal.NewFromInt(req.Price),
		Discount:        decimal.NewFromInt(req.Discount),
		OriginalPrice:   decimal.NewFromInt(req.OriginalPrice),
		Colors:          req.Colors,
		Batteries:       req.Batteries,
		Stock:           req.Stock,
		IsFeatured:      req.IsFeatured,
		ForceNew:        req.ForceNew,
		ForceBestSeller: req.ForceBestSeller,
		Rating:          req.Rating,
		ReviewCount:     req.ReviewCount,
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	c.JSON(http.StatusCreated, vehicle)
}

func (s *Server) listVehicles(c *gin.Context) {
	page, pageSize := parsePageParams(c)

	result, err := store.ListVehicles(c.Request.Context(), s.db, page, pageSize)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	now := time.Now()
	vehicles, _ := result.Items.([]models.Vehicle)
	views := make([]vehicleView, 0, len(vehicles))
	for _, v := range vehicles {
		views = append(views, listView(v, now))
	}
	result.Items = views

	c.JSON(http.StatusOK, result)
}

func (s *Server) updateVehicleStock(c *gin.Context) {
	id, err := parseID(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid vehicle id"})
		return
	}

	var req updateVehicleStockRequest
	if err := bindAndValidate(c, &req, s.validate); err != nil {
		return
	}

	ctx := c.Request.Context()
	if err := store.UpdateVehicleStock(ctx, s.db, id, req.Stock, req.Version); err != nil {
		respondError(c, err)
		return
	}

	vehicle, err := store.GetVehicle(ctx, s.db, id)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, vehicle)
}

// getVehicle serves the detail page: full badge candidate list, read through
// the cache. Cache failures degrade to a plain database read.
func (s *Server) getVehicle(c *gin.Context) {
	ctx := c.Request.Context()

	id, err := parseID(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid vehicle id"})
		return
	}

	key := s.cache.GenerateKey("vehicle", c.Param("id"))
	if cached, err := s.cache.Get(ctx, key); err == nil && cached != "" {
		c.Data(http.StatusOK, "application/json", []byte(cached))
		return
	}

	vehicle, err := store.GetVehicle(ctx, s.db, id)
	if err != nil {
		respondError(c, err)
		return
	}

	view := detailView(*vehicle, time.Now())
	if body, err := json.Marshal(view); err == nil {
		_ = s.cache.Set(ctx, key, body, vehicleCacheTTL)
	}

	c.JSON(http.StatusOK, view)
}
