package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"propertyhub/internal/auth"
	"propertyhub/internal/errors"
	"propertyhub/internal/middleware"
	"propertyhub/internal/service"
)

// AuthHandler handles authentication endpoints.
type AuthHandler struct {
	authService service.AuthService
}

// NewAuthHandler creates a new auth handler.
func NewAuthHandler(authService service.AuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

// SignupRequest represents a user registration request.
type SignupRequest struct {
	Email    string `json:"email" example:"a@b.com"`
	Password string `json:"password" example:"pw123456"`
	Username string `json:"username,omitempty" example:"jdoe"`
	FullName string `json:"fullName" example:"Jane Doe"`
}

// LoginRequest represents a user login request. Identifier may hold an
// email or a username.
type LoginRequest struct {
	Identifier string `json:"identifier,omitempty"`
	Email      string `json:"email,omitempty" example:"a@b.com"`
	Username   string `json:"username,omitempty"`
	Password   string `json:"password" example:"pw123456"`
}

// ValidateResponse is returned for a token that passed the gate.
type ValidateResponse struct {
	Valid bool         `json:"valid"`
	User  *auth.Claims `json:"user"`
}

// Signup godoc
// @Summary Register a new user
// @Tags auth
// @Accept json
// @Produce json
// @Param request body SignupRequest true "Registration data"
// @Success 201 {object} service.AuthResult
// @Failure 400 {object} errors.ErrorResponse
// @Failure 409 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /auth/signup [post]
func (h *AuthHandler) Signup(c echo.Context) error {
	var req SignupRequest
	if err := bindJSON(c, &req); err != nil {
		return err
	}

	result, err := h.authService.Signup(c.Request().Context(), service.SignupInput{
		Email:    req.Email,
		Password: req.Password,
		Username: req.Username,
		FullName: req.FullName,
	})
	if err != nil {
		return err
	}

	return c.JSON(http.StatusCreated, result)
}

// Login godoc
// @Summary Login user
// @Tags auth
// @Accept json
// @Produce json
// @Param request body LoginRequest true "Login credentials"
// @Success 200 {object} service.AuthResult
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /auth/login [post]
func (h *AuthHandler) Login(c echo.Context) error {
	var req LoginRequest
	if err := bindJSON(c, &req); err != nil {
		return err
	}

	result, err := h.authService.Login(c.Request().Context(), service.LoginInput(req))
	if err != nil {
		return err
	}

	return c.JSON(http.StatusOK, result)
}

// Logout godoc
// @Summary Logout user
// @Description Tokens are stateless; the client discards its copy.
// @Tags auth
// @Produce json
// @Success 200 {object} MessageResponse
// @Router /auth/logout [post]
func (h *AuthHandler) Logout(c echo.Context) error {
	return c.JSON(http.StatusOK, MessageResponse{Message: "Logged out successfully"})
}

// Validate godoc
// @Summary Validate the bearer token
// @Tags auth
// @Produce json
// @Security BearerAuth
// @Success 200 {object} ValidateResponse
// @Failure 401 {object} errors.ErrorResponse
// @Router /auth/validate [get]
func (h *AuthHandler) Validate(c echo.Context) error {
	claims, ok := middleware.ClaimsFromContext(c)
	if !ok {
		return errors.ErrAuthenticationFailed
	}
	return c.JSON(http.StatusOK, ValidateResponse{Valid: true, User: claims})
}
