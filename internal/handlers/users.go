package handlers

import (
	"errors"
	"net/http"

	"github.com/O-GDev/EarlyWarningSystem-sub001/internal/models"
	"github.com/O-GDev/EarlyWarningSystem-sub001/internal/services"
	"github.com/O-GDev/EarlyWarningSystem-sub001/internal/store"
	"github.com/O-GDev/EarlyWarningSystem-sub001/internal/validation"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// bcrypt caps passwords in bytes; the schema can only count characters
var passwordTooLong = validation.Result{Errors: []validation.FieldError{
	{Field: "password", Message: "Must be at most 72 bytes"},
}}

// UserHandler serves /api/users. Responses never carry the password.
type UserHandler struct {
	*Resource[models.User]
	auth   *services.AuthService
	logger *zap.SugaredLogger
}

// NewUserHandler creates a new user handler
func NewUserHandler(st *store.Store, auth *services.AuthService, logger *zap.SugaredLogger) *UserHandler {
	res := NewResource("User", st.Users, validation.Users, logger)
	res.view = func(u models.User) any { return u.Public() }
	return &UserHandler{Resource: res, auth: auth, logger: logger}
}

// Routes mounts the user endpoints, all behind gate
func (h *UserHandler) Routes(r chi.Router, gate func(http.Handler) http.Handler) {
	r.Use(gate)
	r.Get("/", h.List)
	r.Get("/{id}", h.Get)
	r.Post("/", h.Create)
	r.Put("/{id}", h.Update)
	r.Delete("/{id}", h.Delete)
}

// Create handles POST /api/users
func (h *UserHandler) Create(w http.ResponseWriter, r *http.Request) {
	res, ok := readBody(w, r, validation.Users.Create)
	if !ok {
		return
	}
	var user models.User
	if err := res.Decode(&user); err != nil {
		h.logger.Errorw("Failed to decode user", "error", err)
		respondError(w, http.StatusInternalServerError, "Failed to create user")
		return
	}

	created, err := h.auth.CreateUser(user)
	if errors.Is(err, services.ErrUsernameTaken) {
		respondError(w, http.StatusBadRequest, "Username already exists")
		return
	}
	if errors.Is(err, services.ErrPasswordTooLong) {
		respondInvalid(w, passwordTooLong)
		return
	}
	if err != nil {
		h.logger.Errorw("Failed to create user", "error", err)
		respondError(w, http.StatusInternalServerError, "Failed to create user")
		return
	}

	h.logger.Infow("User created", "id", created.ID, "by", currentUserID(r))
	respondJSON(w, http.StatusCreated, created.Public())
}

// Update handles PUT /api/users/{id}
func (h *UserHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := h.parseID(w, r)
	if !ok {
		return
	}
	res, ok := readBody(w, r, validation.Users.Update)
	if !ok {
		return
	}

	updated, found, err := h.auth.UpdateUser(id, res.Patch)
	switch {
	case errors.Is(err, services.ErrUsernameTaken):
		respondError(w, http.StatusBadRequest, "Username already exists")
	case errors.Is(err, services.ErrPasswordTooLong):
		respondInvalid(w, passwordTooLong)
	case err != nil:
		h.logger.Errorw("Failed to update user", "id", id, "error", err)
		respondError(w, http.StatusInternalServerError, "Failed to update user")
	case !found:
		respondError(w, http.StatusNotFound, "User not found")
	default:
		respondJSON(w, http.StatusOK, updated.Public())
	}
}
