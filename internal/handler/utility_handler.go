package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"propertyhub/internal/pagination"
	"propertyhub/internal/repository"
	"propertyhub/internal/service"
)

const invalidUtilityID = "Invalid utility bill ID"

// UtilityHandler handles utility bill endpoints.
type UtilityHandler struct {
	utilityService service.UtilityService
}

// NewUtilityHandler creates a new utility handler.
func NewUtilityHandler(utilityService service.UtilityService) *UtilityHandler {
	return &UtilityHandler{utilityService: utilityService}
}

// UtilityRequest represents a utility bill create or update request.
// PropertyID and Amount accept JSON numbers as well as strings.
type UtilityRequest struct {
	PropertyID scalar `json:"propertyId" swaggertype:"integer" example:"1"`
	Type       string `json:"type" enums:"electricity,water,gas"`
	Amount     scalar `json:"amount" swaggertype:"number" example:"100.5" maximum:"9999999999.99"`
	Date       string `json:"date" example:"2024-03-01"`
}

func (r UtilityRequest) input() service.UtilityInput {
	return service.UtilityInput{
		PropertyID: string(r.PropertyID),
		Type:       r.Type,
		Amount:     string(r.Amount),
		Date:       r.Date,
	}
}

// ListByProperty godoc
// @Summary List utility bills of a property
// @Tags utilities
// @Produce json
// @Param propertyId path int true "Property ID"
// @Param sortBy query string false "type, amount or date"
// @Param sortOrder query string false "asc or desc"
// @Param page query int false "Page number"
// @Param limit query int false "Page size (default 10, max 100)" maximum(100)
// @Success 200 {object} pagination.Page[model.Utility]
// @Failure 400 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /utilities/{propertyId} [get]
func (h *UtilityHandler) ListByProperty(c echo.Context) error {
	propertyID, err := pathID(c, "propertyId", invalidPropertyID)
	if err != nil {
		return err
	}

	page, err := h.utilityService.ListByProperty(c.Request().Context(), repository.UtilityQuery{
		PropertyID: propertyID,
		SortBy:     c.QueryParam("sortBy"),
		SortOrder:  c.QueryParam("sortOrder"),
		Page:       pagination.ParseRequest(c.QueryParam("page"), c.QueryParam("limit")),
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, page)
}

// Get godoc
// @Summary Get a utility bill
// @Tags utilities
// @Produce json
// @Param id path int true "Utility bill ID"
// @Success 200 {object} model.Utility
// @Failure 400 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /utilities/bill/{id} [get]
func (h *UtilityHandler) Get(c echo.Context) error {
	id, err := pathID(c, "id", invalidUtilityID)
	if err != nil {
		return err
	}

	utility, err := h.utilityService.Get(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, utility)
}

// Create godoc
// @Summary Record a utility bill
// @Tags utilities
// @Accept json
// @Produce json
// @Param request body UtilityRequest true "Utility bill"
// @Success 201 {object} model.Utility
// @Failure 400 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /utilities [post]
func (h *UtilityHandler) Create(c echo.Context) error {
	var req UtilityRequest
	if err := bindJSON(c, &req); err != nil {
		return err
	}

	utility, err := h.utilityService.Create(c.Request().Context(), req.input())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, utility)
}

// Update godoc
// @Summary Update a utility bill
// @Tags utilities
// @Accept json
// @Produce json
// @Param id path int true "Utility bill ID"
// @Param request body UtilityRequest true "Utility bill"
// @Success 200 {object} model.Utility
// @Failure 400 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /utilities/bill/{id} [put]
func (h *UtilityHandler) Update(c echo.Context) error {
	id, err := pathID(c, "id", invalidUtilityID)
	if err != nil {
		return err
	}

	var req UtilityRequest
	if err := bindJSON(c, &req); err != nil {
		return err
	}

	utility, err := h.utilityService.Update(c.Request().Context(), id, req.input())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, utility)
}

// Delete godoc
// @Summary Delete a utility bill
// @Tags utilities
// @Produce json
// @Param id path int true "Utility bill ID"
// @Success 200 {object} MessageResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /utilities/bill/{id} [delete]
func (h *UtilityHandler) Delete(c echo.Context) error {
	id, err := pathID(c, "id", invalidUtilityID)
	if err != nil {
		return err
	}

	if err := h.utilityService.Delete(c.Request().Context(), id); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, MessageResponse{Message: "Utility bill deleted successfully"})
}
