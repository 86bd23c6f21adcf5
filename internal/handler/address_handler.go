package handler

import (
	"errors"
	"net/http"
	"strings"

	"freightquote/internal/model"
	"freightquote/internal/storage"
	"freightquote/pkg/logger"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// AddressRequest defines the structure for address create/update requests
type AddressRequest struct {
	Street       string `json:"street"`
	Number       string `json:"number"`
	Neighborhood string `json:"neighborhood"`
	City         string `json:"city"`
	State        string `json:"state"`
	ZipCode      string `json:"zip_code"`
	Country      string `json:"country"`
}

// ListAddresses lists addresses owned by the company or carrier in the
// path. Carriers are companies, so the same table backs both routes.
func (h *Handler) ListAddresses(c echo.Context) error {
	companyID, ok := pathID(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "Invalid company ID"})
	}
	addresses, err := h.Store.GetAddresses(c.Request().Context(), companyID)
	if err != nil {
		logger.FromContext(c).Error("Failed to list addresses", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "Failed to list addresses"})
	}
	return c.JSON(http.StatusOK, addresses)
}

// CreateAddress creates an address for the company or carrier in the path
func (h *Handler) CreateAddress(c echo.Context) error {
	log := logger.FromContext(c)

	companyID, ok := pathID(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "Invalid company ID"})
	}

	var req AddressRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid request"})
	}
	if msg := validateAddressRequest(&req); msg != "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": msg})
	}

	address := model.Address{
		CompanyID:    companyID,
		Street:       strings.TrimSpace(req.Street),
		Number:       strings.TrimSpace(req.Number),
		Neighborhood: strings.TrimSpace(req.Neighborhood),
		City:         strings.TrimSpace(req.City),
		State:        strings.TrimSpace(req.State),
		ZipCode:      strings.TrimSpace(req.ZipCode),
		Country:      strings.TrimSpace(req.Country),
	}
	if err := h.Store.CreateAddress(c.Request().Context(), &address); err != nil {
		log.Error("Failed to create address", zap.Uint("company_id", companyID), zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "Failed to create address"})
	}

	log.Info("Address created", zap.Uint("id", address.ID), zap.Uint("company_id", companyID))
	return c.JSON(http.StatusCreated, address)
}

// UpdateAddress replaces the fields of an existing address
func (h *Handler) UpdateAddress(c echo.Context) error {
	log := logger.FromContext(c)

	id, ok := pathID(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "Invalid address ID"})
	}

	var req AddressRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid request"})
	}
	if msg := validateAddressRequest(&req); msg != "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": msg})
	}

	address, err := h.Store.GetAddress(c.Request().Context(), id)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"message": "Not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "Failed to update address"})
	}

	address.Street = strings.TrimSpace(req.Street)
	address.Number = strings.TrimSpace(req.Number)
	address.Neighborhood = strings.TrimSpace(req.Neighborhood)
	address.City = strings.TrimSpace(req.City)
	address.State = strings.TrimSpace(req.State)
	address.ZipCode = strings.TrimSpace(req.ZipCode)
	if req.Country != "" {
		address.Country = strings.TrimSpace(req.Country)
	}

	if err := h.Store.UpdateAddress(c.Request().Context(), address); err != nil {
		log.Error("Failed to update address", zap.Uint("id", id), zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "Failed to update address"})
	}
	return c.JSON(http.StatusOK, address)
}

// DeleteAddress removes an address. Deletion is unconditional; the address
// id is taken from the path.
func (h *Handler) DeleteAddress(c echo.Context) error {
	id, ok := pathID(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "Invalid address ID"})
	}
	if err := h.Store.DeleteAddress(c.Request().Context(), id); err != nil {
		logger.FromContext(c).Error("Failed to delete address", zap.Uint("id", id), zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "Failed to delete address"})
	}
	return c.NoContent(http.StatusNoContent)
}

func validateAddressRequest(req *AddressRequest) string {
	if strings.TrimSpace(req.Street) == "" {
		return "street is required"
	}
	if strings.TrimSpace(req.Number) == "" {
		return "number is required"
	}
	if strings.TrimSpace(req.Neighborhood) == "" {
		return "neighborhood is required"
	}
	if strings.TrimSpace(req.City) == "" {
		return "city is required"
	}
	if strings.TrimSpace(req.State) == "" {
		return "state is required"
	}
	if strings.TrimSpace(req.ZipCode) == "" {
		return "zip_code is required"
	}
	return ""
}
