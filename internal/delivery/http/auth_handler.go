package http

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"stocksim/internal/delivery/http/dto"
	"stocksim/internal/domain"
	"stocksim/internal/middleware"
	"stocksim/internal/service"
)

// AuthHandler handles registration, login and logout
type AuthHandler struct {
	accounts *service.AccountService
	sessions *middleware.SessionManager
}

// NewAuthHandler creates a new AuthHandler
func NewAuthHandler(accounts *service.AccountService, sessions *middleware.SessionManager) *AuthHandler {
	return &AuthHandler{
		accounts: accounts,
		sessions: sessions,
	}
}

// Register handles user registration and logs the new user in
// POST /api/auth/register
func (h *AuthHandler) Register(c echo.Context) error {
	var req dto.RegisterRequest
	if err := c.Bind(&req); err != nil {
		return BadRequestResponse(c, "Invalid request payload")
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	user, err := h.accounts.Register(ctx, req.Username, req.Password, req.Confirmation)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrUsernameRequired),
			errors.Is(err, domain.ErrPasswordRequired),
			errors.Is(err, domain.ErrConfirmationRequired),
			errors.Is(err, domain.ErrPasswordMismatch),
			errors.Is(err, domain.ErrDuplicateUsername):
			return BadRequestResponse(c, err.Error())
		}
		return InternalServerErrorResponse(c, "Failed to register user")
	}

	token, err := h.sessions.Issue(user.ID)
	if err != nil {
		return InternalServerErrorResponse(c, "Failed to create session")
	}
	h.setSessionCookie(c, token, int(middleware.SessionTTL.Seconds()))

	return CreatedResponse(c, dto.AuthResponse{
		Token: token,
		User:  userOutput(user),
	})
}

// Login handles user login
// POST /api/auth/login
func (h *AuthHandler) Login(c echo.Context) error {
	var req dto.LoginRequest
	if err := c.Bind(&req); err != nil {
		return BadRequestResponse(c, "Invalid request payload")
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	user, err := h.accounts.Authenticate(ctx, req.Username, req.Password)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidCredentials) {
			return ForbiddenResponse(c, err.Error())
		}
		return InternalServerErrorResponse(c, "Failed to log in")
	}

	token, err := h.sessions.Issue(user.ID)
	if err != nil {
		return InternalServerErrorResponse(c, "Failed to create session")
	}
	h.setSessionCookie(c, token, int(middleware.SessionTTL.Seconds()))

	return SuccessMessageResponse(c, "Logged in successfully", dto.AuthResponse{
		Token: token,
		User:  userOutput(user),
	})
}

// Logout clears the session cookie
// POST /api/auth/logout
func (h *AuthHandler) Logout(c echo.Context) error {
	h.setSessionCookie(c, "", -1)
	return SuccessMessageResponse(c, "Logged out successfully", nil)
}

func (h *AuthHandler) setSessionCookie(c echo.Context, token string, maxAge int) {
	c.SetCookie(&http.Cookie{
		Name:     middleware.SessionCookieName,
		Value:    token,
		Path:     "/",
		HttpOnly: true,
		SameSite: http.SameSiteStrictMode,
		MaxAge:   maxAge,
	})
}

func userOutput(user *domain.User) *dto.UserOutput {
	return &dto.UserOutput{
		ID:       user.ID.String(),
		Username: user.Username,
		Cash:     user.Cash.StringFixed(2),
	}
}
