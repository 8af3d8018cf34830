package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/O-GDev/EarlyWarningSystem-sub001/internal/middleware"
	"github.com/O-GDev/EarlyWarningSystem-sub001/internal/models"
	"github.com/O-GDev/EarlyWarningSystem-sub001/internal/services"
	"github.com/O-GDev/EarlyWarningSystem-sub001/internal/validation"
	"go.uber.org/zap"
)

// AuthHandler handles login, logout, registration and session status
type AuthHandler struct {
	auth         *services.AuthService
	cookieSecure bool
	logger       *zap.SugaredLogger
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(auth *services.AuthService, cookieSecure bool, logger *zap.SugaredLogger) *AuthHandler {
	return &AuthHandler{auth: auth, cookieSecure: cookieSecure, logger: logger}
}

type credentials struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// Login handles POST /api/auth/login
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	res, ok := readBody(w, r, validation.Login.Create)
	if !ok {
		return
	}
	var creds credentials
	if err := res.Decode(&creds); err != nil {
		respondError(w, http.StatusBadRequest, "Validation error: Expected a JSON object")
		return
	}

	user, token, err := h.auth.Login(r.Context(), creds.Username, creds.Password)
	if errors.Is(err, services.ErrInvalidCredentials) {
		respondError(w, http.StatusUnauthorized, "Invalid username or password")
		return
	}
	if err != nil {
		h.logger.Errorw("Login failed", "error", err)
		respondError(w, http.StatusInternalServerError, "Failed to log in")
		return
	}

	h.setCookie(w, token, h.auth.SessionTTL())
	respondJSON(w, http.StatusOK, user.Session())
}

// Register handles POST /api/auth/register
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	res, ok := readBody(w, r, validation.Users.Create)
	if !ok {
		return
	}
	var user models.User
	if err := res.Decode(&user); err != nil {
		h.logger.Errorw("Failed to decode registration", "error", err)
		respondError(w, http.StatusInternalServerError, "Failed to register user")
		return
	}
	// self-registration cannot grant privileges
	user.Role = models.RoleUser

	created, token, err := h.auth.Register(r.Context(), user)
	if errors.Is(err, services.ErrUsernameTaken) {
		respondError(w, http.StatusBadRequest, "Username already exists")
		return
	}
	if errors.Is(err, services.ErrPasswordTooLong) {
		respondInvalid(w, passwordTooLong)
		return
	}
	if err != nil {
		h.logger.Errorw("Registration failed", "error", err)
		respondError(w, http.StatusInternalServerError, "Failed to register user")
		return
	}

	h.setCookie(w, token, h.auth.SessionTTL())
	respondJSON(w, http.StatusCreated, created.Session())
}

// Logout handles POST /api/auth/logout
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	if err := h.auth.Logout(r.Context(), middleware.SessionToken(r)); err != nil {
		h.logger.Errorw("Logout failed", "error", err)
		respondError(w, http.StatusInternalServerError, "Failed to log out")
		return
	}
	h.setCookie(w, "", -1)
	respondJSON(w, http.StatusOK, map[string]bool{"success": true})
}

// Status handles GET /api/auth/status
func (h *AuthHandler) Status(w http.ResponseWriter, r *http.Request) {
	user, err := h.auth.Authenticate(r.Context(), middleware.SessionToken(r))
	if err != nil {
		if !errors.Is(err, services.ErrUnauthorized) {
			h.logger.Errorw("Session lookup failed", "error", err)
		}
		respondJSON(w, http.StatusOK, map[string]bool{"authenticated": false})
		return
	}
	respondJSON(w, http.StatusOK, map[string]interface{}{
		"authenticated": true,
		"user":          user.Session(),
	})
}

// setCookie writes the session cookie; a negative ttl expires it
func (h *AuthHandler) setCookie(w http.ResponseWriter, token string, ttl time.Duration) {
	c := &http.Cookie{
		Name:     middleware.SessionCookie,
		Value:    token,
		Path:     "/",
		HttpOnly: true,
		Secure:   h.cookieSecure,
		SameSite: http.SameSiteLaxMode,
	}
	if ttl < 0 {
		c.MaxAge = -1
	} else {
		c.MaxAge = int(ttl.Seconds())
		c.Expires = time.Now().Add(ttl)
	}
	http.SetCookie(w, c)
}
