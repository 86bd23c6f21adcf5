package handler

import (
	"errors"
	"net/http"
	"strings"

	"freightquote/internal/model"
	"freightquote/internal/storage"
	"freightquote/internal/validate"
	"freightquote/pkg/logger"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// CompanyRequest defines the structure for company creation requests
type CompanyRequest struct {
	Name         string `json:"name"`
	TradeName    string `json:"trade_name"`
	CNPJ         string `json:"cnpj"`
	ContactInfo  string `json:"contact_info"`
	Type         string `json:"type"`
	Status       string `json:"status"`
	FreightTypes string `json:"freight_types"`
	Regions      string `json:"regions"`
}

// ListCompanies lists companies, optionally filtered by type. Soft-deleted
// rows appear only when include_deleted is passed.
func (h *Handler) ListCompanies(c echo.Context) error {
	return h.listCompanies(c, c.QueryParam("type"))
}

// ListCarriers lists carrier companies
func (h *Handler) ListCarriers(c echo.Context) error {
	return h.listCompanies(c, model.CompanyTypeCarrier)
}

func (h *Handler) listCompanies(c echo.Context, companyType string) error {
	includeDeleted := c.QueryParam("include_deleted") == "true"
	companies, err := h.Store.GetCompanies(c.Request().Context(), companyType, includeDeleted)
	if err != nil {
		logger.FromContext(c).Error("Failed to list companies", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "Failed to list companies"})
	}
	return c.JSON(http.StatusOK, companies)
}

// CreateCompany creates a company record
func (h *Handler) CreateCompany(c echo.Context) error {
	return h.createCompany(c, "")
}

// CreateCarrier creates a company record forced to the carrier type
func (h *Handler) CreateCarrier(c echo.Context) error {
	return h.createCompany(c, model.CompanyTypeCarrier)
}

func (h *Handler) createCompany(c echo.Context, forcedType string) error {
	log := logger.FromContext(c)

	var req CompanyRequest
	if err := c.Bind(&req); err != nil {
		log.Error("Invalid request data", zap.Error(err))
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid request"})
	}
	if forcedType != "" {
		req.Type = forcedType
	}

	if msg := validateCompanyRequest(&req); msg != "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": msg})
	}

	cnpj := validate.SanitizeCNPJ(req.CNPJ)
	count, err := h.Store.CountCompaniesByCNPJ(c.Request().Context(), cnpj, 0)
	if err != nil {
		log.Error("Failed to check CNPJ uniqueness", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "Failed to create company"})
	}
	if count > 0 {
		log.Warn("Company with this CNPJ already exists", zap.String("cnpj", cnpj))
		return c.JSON(http.StatusConflict, echo.Map{"message": "Company with this CNPJ already exists"})
	}

	actorID, _ := callerID(c)
	company := model.Company{
		Name:         strings.TrimSpace(req.Name),
		TradeName:    strings.TrimSpace(req.TradeName),
		CNPJ:         cnpj,
		ContactInfo:  req.ContactInfo,
		Type:         req.Type,
		Status:       req.Status,
		FreightTypes: req.FreightTypes,
		Regions:      req.Regions,
	}
	if err := h.Store.CreateCompany(c.Request().Context(), &company, &actorID); err != nil {
		log.Error("Failed to create company", zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "Failed to create company"})
	}

	log.Info("Company created",
		zap.Uint("id", company.ID),
		zap.String("name", company.Name),
		zap.String("type", company.Type))
	return c.JSON(http.StatusCreated, company)
}

// GetCompany returns a company by id
func (h *Handler) GetCompany(c echo.Context) error {
	return h.getCompany(c, "")
}

// GetCarrier returns a carrier company by id
func (h *Handler) GetCarrier(c echo.Context) error {
	return h.getCompany(c, model.CompanyTypeCarrier)
}

func (h *Handler) getCompany(c echo.Context, requiredType string) error {
	id, ok := pathID(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "Invalid company ID"})
	}
	company, err := h.Store.GetCompany(c.Request().Context(), id)
	if err != nil || (requiredType != "" && company.Type != requiredType) {
		return c.JSON(http.StatusNotFound, echo.Map{"message": "Not found"})
	}
	return c.JSON(http.StatusOK, company)
}

// UpdateCompany applies a partial update to a company record
func (h *Handler) UpdateCompany(c echo.Context) error {
	return h.updateCompany(c, "")
}

// UpdateCarrier applies a partial update to a carrier company. A client-type
// company is not reachable through the carrier routes.
func (h *Handler) UpdateCarrier(c echo.Context) error {
	return h.updateCompany(c, model.CompanyTypeCarrier)
}

func (h *Handler) updateCompany(c echo.Context, requiredType string) error {
	log := logger.FromContext(c)

	id, ok := pathID(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "Invalid company ID"})
	}

	var req struct {
		Name         *string `json:"name"`
		TradeName    *string `json:"trade_name"`
		CNPJ         *string `json:"cnpj"`
		ContactInfo  *string `json:"contact_info"`
		Status       *string `json:"status"`
		FreightTypes *string `json:"freight_types"`
		Regions      *string `json:"regions"`
	}
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid request"})
	}

	company, err := h.Store.GetCompany(c.Request().Context(), id)
	if err != nil || (requiredType != "" && company.Type != requiredType) {
		return c.JSON(http.StatusNotFound, echo.Map{"message": "Not found"})
	}

	if req.Name != nil {
		company.Name = strings.TrimSpace(*req.Name)
	}
	if req.TradeName != nil {
		company.TradeName = strings.TrimSpace(*req.TradeName)
	}
	if req.CNPJ != nil {
		cnpj := validate.SanitizeCNPJ(*req.CNPJ)
		if !validate.ValidCNPJ(cnpj) {
			return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid cnpj"})
		}
		if cnpj != company.CNPJ {
			count, err := h.Store.CountCompaniesByCNPJ(c.Request().Context(), cnpj, company.ID)
			if err != nil {
				log.Error("Failed to check CNPJ uniqueness", zap.Error(err))
				return c.JSON(http.StatusInternalServerError, echo.Map{"message": "Failed to update company"})
			}
			if count > 0 {
				return c.JSON(http.StatusConflict, echo.Map{"message": "Company with this CNPJ already exists"})
			}
		}
		company.CNPJ = cnpj
	}
	if req.ContactInfo != nil {
		company.ContactInfo = *req.ContactInfo
	}
	if req.Status != nil {
		switch *req.Status {
		case model.CompanyStatusActive, model.CompanyStatusInactive, model.CompanyStatusDeleted:
			company.Status = *req.Status
		default:
			return c.JSON(http.StatusBadRequest, echo.Map{"message": "invalid status"})
		}
	}
	if req.FreightTypes != nil {
		company.FreightTypes = *req.FreightTypes
	}
	if req.Regions != nil {
		company.Regions = *req.Regions
	}

	actorID, _ := callerID(c)
	if err := h.Store.UpdateCompany(c.Request().Context(), company, &actorID); err != nil {
		log.Error("Failed to update company", zap.Uint("id", id), zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "Failed to update company"})
	}

	log.Info("Company updated", zap.Uint("id", company.ID), zap.String("name", company.Name))
	return c.JSON(http.StatusOK, company)
}

// DeleteCompany soft-deletes a company: the status flips to "deleted" and
// the row is retained.
func (h *Handler) DeleteCompany(c echo.Context) error {
	return h.deleteCompany(c, "")
}

// DeleteCarrier soft-deletes a carrier company
func (h *Handler) DeleteCarrier(c echo.Context) error {
	return h.deleteCompany(c, model.CompanyTypeCarrier)
}

func (h *Handler) deleteCompany(c echo.Context, requiredType string) error {
	log := logger.FromContext(c)

	id, ok := pathID(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"message": "Invalid company ID"})
	}

	company, err := h.Store.GetCompany(c.Request().Context(), id)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"message": "Not found"})
		}
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "Failed to delete company"})
	}
	if requiredType != "" && company.Type != requiredType {
		return c.JSON(http.StatusNotFound, echo.Map{"message": "Not found"})
	}

	company.Status = model.CompanyStatusDeleted
	actorID, _ := callerID(c)
	if err := h.Store.UpdateCompany(c.Request().Context(), company, &actorID); err != nil {
		log.Error("Failed to delete company", zap.Uint("id", id), zap.Error(err))
		return c.JSON(http.StatusInternalServerError, echo.Map{"message": "Failed to delete company"})
	}

	log.Info("Company deleted", zap.Uint("id", id))
	return c.NoContent(http.StatusNoContent)
}

func validateCompanyRequest(req *CompanyRequest) string {
	if strings.TrimSpace(req.Name) == "" {
		return "name is required"
	}
	if !validate.ValidCNPJ(validate.SanitizeCNPJ(req.CNPJ)) {
		return "invalid cnpj"
	}
	switch req.Type {
	case model.CompanyTypeClient, model.CompanyTypeCarrier:
	default:
		return "type must be client or carrier"
	}
	switch req.Status {
	case "", model.CompanyStatusActive, model.CompanyStatusInactive:
	default:
		return "invalid status"
	}
	return ""
}
