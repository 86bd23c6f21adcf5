package handler

import (
	"errors"
	"net/http"

	"freightquote/internal/model"
	"freightquote/internal/storage"
	"freightquote/pkg/logger"
	"freightquote/prometheus"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// BidRequest defines the structure for bid creation requests
type BidRequest struct {
	Amount        float64 `json:"amount"`
	EstimatedDays int     `json:"estimated_days"`
	Conditions    string  `json:"conditions"`
}

// CreateBid creates a pending bid from the calling carrier against the
// quote in the path. The quote moves from "open" to "responded".
func (h *Handler) CreateBid(c echo.Context) error {
	log := logger.FromContext(c)
	prometheus.RecordBidOperation("create")

	carrierID, ok := callerID(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, echo.Map{"message": "authentication required"})
	}
	quoteID, okID := pathID(c, "id")
	if !okID {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "Invalid quote ID"})
	}

	var req BidRequest
	if err := c.Bind(&req); err != nil {
		log.Error("Invalid request data", zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid request"})
	}
	if req.Amount <= 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "amount must be positive"})
	}
	if req.EstimatedDays <= 0 {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "estimated_days must be positive"})
	}

	bid := model.Bid{
		Amount:        req.Amount,
		EstimatedDays: req.EstimatedDays,
		Conditions:    req.Conditions,
	}
	if err := h.Store.CreateBid(c.Request().Context(), carrierID, quoteID, &bid); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"message": "Quote not found"})
		}
		log.Error("Failed to create bid", zap.Uint("quote_id", quoteID), zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "Failed to create bid"})
	}

	go h.updateOpenQuoteCount()

	log.Info("Bid created",
		zap.Uint("id", bid.ID),
		zap.Uint("quote_id", quoteID),
		zap.Float64("amount", bid.Amount))
	return c.JSON(http.StatusCreated, bid)
}

// ListQuoteBids lists the bids placed against a quote
func (h *Handler) ListQuoteBids(c echo.Context) error {
	prometheus.RecordBidOperation("list")

	quoteID, ok := pathID(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "Invalid quote ID"})
	}
	bids, err := h.Store.GetBidsForQuote(c.Request().Context(), quoteID)
	if err != nil {
		logger.FromContext(c).Error("Failed to list bids", zap.Uint("quote_id", quoteID), zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "Failed to list bids"})
	}
	return c.JSON(http.StatusOK, bids)
}

// AcceptBid marks a bid as accepted. The caller must be the client owning
// the bid's parent quote; at most one bid per quote can be accepted.
func (h *Handler) AcceptBid(c echo.Context) error {
	return h.decideBid(c, "accept")
}

// RejectBid marks a pending bid as rejected by the quote's owner
func (h *Handler) RejectBid(c echo.Context) error {
	return h.decideBid(c, "reject")
}

func (h *Handler) decideBid(c echo.Context, decision string) error {
	log := logger.FromContext(c)
	prometheus.RecordBidOperation(decision)

	clientID, ok := callerID(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, echo.Map{"message": "authentication required"})
	}
	bidID, okID := pathID(c, "id")
	if !okID {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "Invalid bid ID"})
	}

	var bid *model.Bid
	var err error
	if decision == "accept" {
		bid, err = h.Store.AcceptBid(c.Request().Context(), bidID, clientID)
	} else {
		bid, err = h.Store.RejectBid(c.Request().Context(), bidID, clientID)
	}
	if err != nil {
		switch {
		case errors.Is(err, storage.ErrNotFound):
			return c.JSON(http.StatusNotFound, echo.Map{"message": "Bid not found"})
		case errors.Is(err, storage.ErrNotQuoteOwner):
			log.Warn("Caller does not own the bid's quote",
				zap.Uint("bid_id", bidID),
				zap.Uint("client_id", clientID))
			return c.JSON(http.StatusForbidden, echo.Map{"message": "Forbidden"})
		case errors.Is(err, storage.ErrBidNotPending), errors.Is(err, storage.ErrAlreadyAccepted):
			return c.JSON(http.StatusConflict, echo.Map{"message": err.Error()})
		}
		log.Error("Failed to update bid status", zap.Uint("bid_id", bidID), zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "Failed to update bid"})
	}

	log.Info("Bid status updated",
		zap.Uint("bid_id", bid.ID),
		zap.String("status", bid.Status))
	return c.JSON(http.StatusOK, bid)
}
