package handler

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"freightquote/internal/model"
	"freightquote/internal/storage"
	"freightquote/pkg/logger"
	"freightquote/prometheus"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// QuoteRequest defines the structure for quote creation requests
type QuoteRequest struct {
	Origin      string     `json:"origin"`
	Destination string     `json:"destination"`
	Weight      float64    `json:"weight"`
	Volume      float64    `json:"volume"`
	CargoType   string     `json:"cargo_type"`
	Deadline    *time.Time `json:"deadline"`
	Notes       string     `json:"notes"`
}

// ListQuotes lists quotes filtered by the caller's role: clients see their
// own, carriers see everything still biddable, admins and auditors see all.
func (h *Handler) ListQuotes(c echo.Context) error {
	log := logger.FromContext(c)
	prometheus.RecordQuoteOperation("list")

	userID, ok := callerID(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, echo.Map{"message": "authentication required"})
	}

	quotes, err := h.Store.GetQuotes(c.Request().Context())
	if err != nil {
		log.Error("Failed to list quotes", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "Failed to list quotes"})
	}

	switch callerRole(c) {
	case model.RoleClient:
		own := make([]model.Quote, 0, len(quotes))
		for _, q := range quotes {
			if q.ClientID == userID {
				own = append(own, q)
			}
		}
		quotes = own
	case model.RoleCarrier:
		open := make([]model.Quote, 0, len(quotes))
		for _, q := range quotes {
			if q.Status != model.QuoteStatusClosed {
				open = append(open, q)
			}
		}
		quotes = open
	}

	return c.JSON(http.StatusOK, quotes)
}

// CreateQuote creates a freight request owned by the calling client
func (h *Handler) CreateQuote(c echo.Context) error {
	log := logger.FromContext(c)
	prometheus.RecordQuoteOperation("create")

	userID, ok := callerID(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, echo.Map{"message": "authentication required"})
	}

	var req QuoteRequest
	if err := c.Bind(&req); err != nil {
		log.Error("Invalid request data", zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid request"})
	}
	if msg := validateQuoteRequest(&req); msg != "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": msg})
	}

	quote := model.Quote{
		Origin:      strings.TrimSpace(req.Origin),
		Destination: strings.TrimSpace(req.Destination),
		Weight:      req.Weight,
		Volume:      req.Volume,
		CargoType:   strings.TrimSpace(req.CargoType),
		Deadline:    req.Deadline,
		Notes:       req.Notes,
	}
	if err := h.Store.CreateQuote(c.Request().Context(), userID, &quote); err != nil {
		log.Error("Failed to create quote", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "Failed to create quote"})
	}

	go h.updateOpenQuoteCount()

	log.Info("Quote created",
		zap.Uint("id", quote.ID),
		zap.String("origin", quote.Origin),
		zap.String("destination", quote.Destination))
	return c.JSON(http.StatusCreated, quote)
}

// GetQuote returns one quote with its client and bids-with-carrier loaded.
// Any authenticated user may fetch any quote by id.
func (h *Handler) GetQuote(c echo.Context) error {
	prometheus.RecordQuoteOperation("get")

	id, ok := pathID(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "Invalid quote ID"})
	}
	quote, err := h.Store.GetQuote(c.Request().Context(), id)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"message": "Quote not found"})
		}
		logger.FromContext(c).Error("Failed to get quote", zap.Uint("id", id), zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "Failed to get quote"})
	}
	return c.JSON(http.StatusOK, quote)
}

// CloseQuote moves a quote to "closed". Only the owning client or an admin
// may close it.
func (h *Handler) CloseQuote(c echo.Context) error {
	log := logger.FromContext(c)
	prometheus.RecordQuoteOperation("close")

	userID, ok := callerID(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, echo.Map{"message": "authentication required"})
	}
	id, okID := pathID(c, "id")
	if !okID {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "Invalid quote ID"})
	}

	quote, err := h.Store.GetQuote(c.Request().Context(), id)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"message": "Quote not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "Failed to close quote"})
	}
	if quote.ClientID != userID && callerRole(c) != model.RoleAdmin {
		return c.JSON(http.StatusForbidden, echo.Map{"message": "Forbidden"})
	}

	closed, err := h.Store.CloseQuote(c.Request().Context(), id)
	if err != nil {
		log.Error("Failed to close quote", zap.Uint("id", id), zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "Failed to close quote"})
	}

	go h.updateOpenQuoteCount()

	log.Info("Quote closed", zap.Uint("id", id))
	return c.JSON(http.StatusOK, closed)
}

func validateQuoteRequest(req *QuoteRequest) string {
	if strings.TrimSpace(req.Origin) == "" {
		return "origin is required"
	}
	if strings.TrimSpace(req.Destination) == "" {
		return "destination is required"
	}
	if req.Weight <= 0 {
		return "weight must be positive"
	}
	if strings.TrimSpace(req.CargoType) == "" {
		return "cargo_type is required"
	}
	return ""
}
