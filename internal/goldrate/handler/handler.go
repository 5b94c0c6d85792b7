package handler

import (
	"net/http"
	"time"

	"github.com/fekuna/goldsmith-catalog-service/internal/apperror"
	"github.com/fekuna/goldsmith-catalog-service/internal/goldrate"
	"github.com/fekuna/goldsmith-catalog-service/internal/goldrate/dto"
	"github.com/fekuna/goldsmith-catalog-service/internal/httpx"
	"github.com/fekuna/goldsmith-catalog-service/internal/model"
	"github.com/fekuna/goldsmith-catalog-service/pkg/logger"
	"github.com/labstack/echo/v4"
)

type GoldRateHandler struct {
	uc     goldrate.UseCase
	logger logger.ZapLogger
}

func NewGoldRateHandler(uc goldrate.UseCase, log logger.ZapLogger) *GoldRateHandler {
	return &GoldRateHandler{
		uc:     uc,
		logger: log,
	}
}

func (h *GoldRateHandler) Register(g *echo.Group) {
	g.GET("/gold-rates", h.ListRates)
	g.POST("/gold-rates", h.SetRate)
	g.DELETE("/gold-rates/:karat", h.DeleteRate)
}

type setRateRequest struct {
	Karat       string   `json:"karat" validate:"required,oneof=24k 22k 18k"`
	RatePerGram *float64 `json:"ratePerGram" validate:"required,gt=0"`
}

type RateResponse struct {
	Karat          model.Karat `json:"karat" example:"22k"`
	RatePerGram    float64     `json:"ratePerGram" example:"8345.67"`
	RatePerUnitAlt float64     `json:"ratePerUnitAlt" example:"66765.36"`
	UpdatedAt      time.Time   `json:"updatedAt"`
}

// ListRates godoc
// @Summary  Get current gold rates for all karats
// @Tags     GoldRates
// @Produce  json
// @Success  200 {array} RateResponse
// @Router   /api/gold-rates [get]
func (h *GoldRateHandler) ListRates(c echo.Context) error {
	rates, err := h.uc.ListRates(c.Request().Context())
	if err != nil {
		return err
	}

	out := make([]RateResponse, len(rates))
	for i := range rates {
		out[i] = mapRateToResponse(&rates[i])
	}
	return c.JSON(http.StatusOK, out)
}

// SetRate godoc
// @Summary  Set or update the gold rate for a karat
// @Tags     GoldRates
// @Accept   json
// @Produce  json
// @Param    body body setRateRequest true "karat and rate per gram"
// @Success  200 {object} RateResponse
// @Failure  400 {object} httpx.MessageResponse
// @Router   /api/gold-rates [post]
func (h *GoldRateHandler) SetRate(c echo.Context) error {
	var req setRateRequest
	if err := c.Bind(&req); err != nil {
		return apperror.InvalidInput("Unable to parse gold rate")
	}
	if req.Karat == "" || req.RatePerGram == nil {
		return apperror.InvalidInput("karat and ratePerGram are required")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	rate, err := h.uc.SetRate(c.Request().Context(), &dto.SetRateInput{
		Karat:       req.Karat,
		RatePerGram: *req.RatePerGram,
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, mapRateToResponse(rate))
}

// DeleteRate godoc
// @Summary  Remove the gold rate for a karat
// @Tags     GoldRates
// @Produce  json
// @Param    karat path string true "karat" Enums(24k, 22k, 18k)
// @Success  200 {object} httpx.MessageResponse
// @Failure  404 {object} httpx.MessageResponse
// @Router   /api/gold-rates/{karat} [delete]
func (h *GoldRateHandler) DeleteRate(c echo.Context) error {
	karat, err := model.ParseKarat(c.Param("karat"))
	if err != nil {
		return apperror.InvalidInput("Invalid karat value")
	}
	if err := h.uc.DeleteRate(c.Request().Context(), karat); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, httpx.MessageResponse{Message: "Gold rate deleted successfully"})
}

func mapRateToResponse(r *model.GoldRate) RateResponse {
	return RateResponse{
		Karat:          r.Karat,
		RatePerGram:    r.RatePerGram,
		RatePerUnitAlt: r.RatePerSovereign,
		UpdatedAt:      r.UpdatedAt,
	}
}
