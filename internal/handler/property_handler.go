package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"propertyhub/internal/pagination"
	"propertyhub/internal/repository"
	"propertyhub/internal/service"
)

const invalidPropertyID = "Invalid property ID"

// PropertyHandler handles property endpoints.
type PropertyHandler struct {
	propertyService service.PropertyService
}

// NewPropertyHandler creates a new property handler.
func NewPropertyHandler(propertyService service.PropertyService) *PropertyHandler {
	return &PropertyHandler{propertyService: propertyService}
}

// PropertyRequest represents a property create or update request.
type PropertyRequest struct {
	Name    string `json:"name" example:"Sunset Apartments"`
	Address string `json:"address" example:"123 Main St"`
	Type    string `json:"type" enums:"residential,commercial"`
}

func (r PropertyRequest) input() service.PropertyInput {
	return service.PropertyInput{Name: r.Name, Address: r.Address, Type: r.Type}
}

// List godoc
// @Summary List all properties
// @Tags properties
// @Produce json
// @Success 200 {array} model.Property
// @Failure 500 {object} errors.ErrorResponse
// @Router /properties [get]
func (h *PropertyHandler) List(c echo.Context) error {
	properties, err := h.propertyService.List(c.Request().Context())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, properties)
}

// Search godoc
// @Summary Search properties
// @Tags properties
// @Produce json
// @Param term query string false "Substring of name or address"
// @Param type query string false "all, residential or commercial"
// @Param sortBy query string false "name, type or address"
// @Param sortOrder query string false "asc or desc"
// @Param page query int false "Page number"
// @Param limit query int false "Page size (default 10, max 100)" maximum(100)
// @Success 200 {object} pagination.Page[model.Property]
// @Failure 500 {object} errors.ErrorResponse
// @Router /properties/search [get]
func (h *PropertyHandler) Search(c echo.Context) error {
	page, err := h.propertyService.Search(c.Request().Context(), repository.PropertyQuery{
		Term:      c.QueryParam("term"),
		Type:      c.QueryParam("type"),
		SortBy:    c.QueryParam("sortBy"),
		SortOrder: c.QueryParam("sortOrder"),
		Page:      pagination.ParseRequest(c.QueryParam("page"), c.QueryParam("limit")),
	})
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, page)
}

// Get godoc
// @Summary Get a property with its first page of utility bills
// @Tags properties
// @Produce json
// @Param id path int true "Property ID"
// @Success 200 {object} service.PropertyDetail
// @Failure 400 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /properties/{id} [get]
func (h *PropertyHandler) Get(c echo.Context) error {
	id, err := pathID(c, "id", invalidPropertyID)
	if err != nil {
		return err
	}

	detail, err := h.propertyService.GetWithUtilities(c.Request().Context(), id)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, detail)
}

// Create godoc
// @Summary Create a property
// @Tags properties
// @Accept json
// @Produce json
// @Param request body PropertyRequest true "Property"
// @Success 201 {object} model.Property
// @Failure 400 {object} errors.ErrorResponse
// @Router /properties [post]
func (h *PropertyHandler) Create(c echo.Context) error {
	var req PropertyRequest
	if err := bindJSON(c, &req); err != nil {
		return err
	}

	property, err := h.propertyService.Create(c.Request().Context(), req.input())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusCreated, property)
}

// Update godoc
// @Summary Update a property
// @Tags properties
// @Accept json
// @Produce json
// @Param id path int true "Property ID"
// @Param request body PropertyRequest true "Property"
// @Success 200 {object} model.Property
// @Failure 400 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /properties/{id} [put]
func (h *PropertyHandler) Update(c echo.Context) error {
	id, err := pathID(c, "id", invalidPropertyID)
	if err != nil {
		return err
	}

	var req PropertyRequest
	if err := bindJSON(c, &req); err != nil {
		return err
	}

	property, err := h.propertyService.Update(c.Request().Context(), id, req.input())
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, property)
}

// Delete godoc
// @Summary Delete a property and its utility bills
// @Tags properties
// @Produce json
// @Param id path int true "Property ID"
// @Success 200 {object} MessageResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 404 {object} errors.ErrorResponse
// @Router /properties/{id} [delete]
func (h *PropertyHandler) Delete(c echo.Context) error {
	id, err := pathID(c, "id", invalidPropertyID)
	if err != nil {
		return err
	}

	if err := h.propertyService.Delete(c.Request().Context(), id); err != nil {
		return err
	}
	return c.JSON(http.StatusOK, MessageResponse{Message: "Property deleted successfully"})
}
