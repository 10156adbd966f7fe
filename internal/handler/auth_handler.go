package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"taskhub/internal/auth"
	"taskhub/internal/errors"
	"taskhub/internal/model"
	"taskhub/internal/service"
)

// AuthHandler handles authentication endpoints.
type AuthHandler struct {
	authService  service.AuthService
	secureCookie bool
}

// NewAuthHandler creates a new auth handler. secureCookie controls the Secure
// flag on the renewal cookie.
func NewAuthHandler(authService service.AuthService, secureCookie bool) *AuthHandler {
	return &AuthHandler{authService: authService, secureCookie: secureCookie}
}

// RegisterRequest represents a user registration request.
type RegisterRequest struct {
	Email    string `json:"email" validate:"required,email,max=255"`
	Password string `json:"password" validate:"required,min=6,max=128,hasletter"`
	Name     string `json:"name" validate:"required,min=2,max=50,personname"`
}

// LoginRequest represents a user login request.
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// AuthResponse represents an authentication response. The renewal token is
// only ever sent as an HttpOnly cookie.
type AuthResponse struct {
	AccessToken string               `json:"access_token"`
	User        *model.PublicProfile `json:"user,omitempty"`
}

// Register godoc
// @Summary Register a new user
// @Tags auth
// @Accept json
// @Produce json
// @Param request body RegisterRequest true "Registration data"
// @Success 201 {object} AuthResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 409 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /auth/register [post]
func (h *AuthHandler) Register(c echo.Context) error {
	var req RegisterRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	result, err := h.authService.Register(c.Request().Context(), req.Email, req.Password, req.Name)
	if err != nil {
		return respondError(err)
	}

	c.SetCookie(auth.NewRenewalCookie(result.Tokens.RenewalToken, h.secureCookie))
	return c.JSON(http.StatusCreated, AuthResponse{
		AccessToken: result.Tokens.AccessToken,
		User:        &result.User,
	})
}

// Login godoc
// @Summary Login user
// @Tags auth
// @Accept json
// @Produce json
// @Param request body LoginRequest true "Login credentials"
// @Success 200 {object} AuthResponse
// @Failure 400 {object} errors.ErrorResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 500 {object} errors.ErrorResponse
// @Router /auth/login [post]
func (h *AuthHandler) Login(c echo.Context) error {
	var req LoginRequest
	if err := bindAndValidate(c, &req); err != nil {
		return err
	}

	result, err := h.authService.Login(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		return respondError(err)
	}

	c.SetCookie(auth.NewRenewalCookie(result.Tokens.RenewalToken, h.secureCookie))
	return c.JSON(http.StatusOK, AuthResponse{
		AccessToken: result.Tokens.AccessToken,
		User:        &result.User,
	})
}

// Refresh godoc
// @Summary Refresh access token
// @Description Reads the renewal token from the refreshToken cookie.
// @Tags auth
// @Produce json
// @Success 200 {object} AuthResponse
// @Failure 401 {object} errors.ErrorResponse
// @Failure 503 {object} errors.ErrorResponse
// @Router /auth/refresh [post]
func (h *AuthHandler) Refresh(c echo.Context) error {
	cookie, err := c.Cookie(auth.RenewalCookieName)
	if err != nil || cookie.Value == "" {
		return respondError(errors.ErrUnauthenticated)
	}

	accessToken, err := h.authService.Refresh(c.Request().Context(), cookie.Value)
	if err != nil {
		return respondError(err)
	}

	return c.JSON(http.StatusOK, AuthResponse{AccessToken: accessToken})
}

// Logout godoc
// @Summary Logout user
// @Description Clears the renewal cookie. Already-issued access tokens stay valid until they expire.
// @Tags auth
// @Success 204
// @Failure 503 {object} errors.ErrorResponse
// @Router /auth/logout [post]
func (h *AuthHandler) Logout(c echo.Context) error {
	var token string
	if cookie, err := c.Cookie(auth.RenewalCookieName); err == nil {
		token = cookie.Value
	}

	if err := h.authService.Logout(c.Request().Context(), token); err != nil {
		return respondError(err)
	}

	c.SetCookie(auth.ClearRenewalCookie(h.secureCookie))
	return c.NoContent(http.StatusNoContent)
}
