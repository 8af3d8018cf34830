package handlers

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/O-GDev/EarlyWarningSystem-sub001/internal/store"
	"github.com/O-GDev/EarlyWarningSystem-sub001/internal/validation"
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"
)

// Resource serves list, get, create, update and delete for one entity kind
type Resource[T any] struct {
	kind   string // display name, e.g. "Call log"
	items  *store.Collection[T]
	schema *validation.Schema
	logger *zap.SugaredLogger

	// prepare fills server-known fields before a create
	prepare func(r *http.Request, item *T)
	// view shapes an entity for the response
	view func(T) any
	// created and updated run after a successful mutation
	created func(T)
	updated func(T)
}

// NewResource creates a handler for one collection
func NewResource[T any](kind string, items *store.Collection[T], schema *validation.Schema, logger *zap.SugaredLogger) *Resource[T] {
	return &Resource[T]{
		kind:   kind,
		items:  items,
		schema: schema,
		logger: logger,
	}
}

// Routes mounts the resource. Reads go through read, mutations through write.
func (h *Resource[T]) Routes(r chi.Router, read, write func(http.Handler) http.Handler) {
	r.With(read).Get("/", h.List)
	r.With(read).Get("/{id}", h.Get)
	r.With(write).Post("/", h.Create)
	r.With(write).Put("/{id}", h.Update)
	r.With(write).Delete("/{id}", h.Delete)
}

// List handles GET /api/<plural>[?limit=N]
func (h *Resource[T]) List(w http.ResponseWriter, r *http.Request) {
	limit := store.NoLimit
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n < 0 {
			respondError(w, http.StatusBadRequest, "Invalid limit")
			return
		}
		limit = n
	}

	items := h.items.List(limit)
	out := make([]any, 0, len(items))
	for _, item := range items {
		out = append(out, h.render(item))
	}
	respondJSON(w, http.StatusOK, out)
}

// Get handles GET /api/<plural>/{id}
func (h *Resource[T]) Get(w http.ResponseWriter, r *http.Request) {
	id, ok := h.parseID(w, r)
	if !ok {
		return
	}
	item, found := h.items.Get(id)
	if !found {
		respondError(w, http.StatusNotFound, h.kind+" not found")
		return
	}
	respondJSON(w, http.StatusOK, h.render(item))
}

// Create handles POST /api/<plural>
func (h *Resource[T]) Create(w http.ResponseWriter, r *http.Request) {
	res, ok := readBody(w, r, h.schema.Create)
	if !ok {
		return
	}

	var item T
	if err := res.Decode(&item); err != nil {
		h.logger.Errorw("Failed to decode "+h.noun(), "error", err)
		respondError(w, http.StatusInternalServerError, "Failed to create "+h.noun())
		return
	}
	if h.prepare != nil {
		h.prepare(r, &item)
	}

	item = h.items.Create(item)
	if h.created != nil {
		h.created(item)
	}
	respondJSON(w, http.StatusCreated, h.render(item))
}

// Update handles PUT /api/<plural>/{id}
func (h *Resource[T]) Update(w http.ResponseWriter, r *http.Request) {
	id, ok := h.parseID(w, r)
	if !ok {
		return
	}
	res, ok := readBody(w, r, h.schema.Update)
	if !ok {
		return
	}

	item, found, err := h.items.Update(id, res.Patch)
	if err != nil {
		h.logger.Errorw("Failed to update "+h.noun(), "id", id, "error", err)
		respondError(w, http.StatusInternalServerError, "Failed to update "+h.noun())
		return
	}
	if !found {
		respondError(w, http.StatusNotFound, h.kind+" not found")
		return
	}
	if h.updated != nil {
		h.updated(item)
	}
	respondJSON(w, http.StatusOK, h.render(item))
}

// Delete handles DELETE /api/<plural>/{id}
func (h *Resource[T]) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := h.parseID(w, r)
	if !ok {
		return
	}
	if !h.items.Delete(id) {
		respondError(w, http.StatusNotFound, h.kind+" not found")
		return
	}
	respondJSON(w, http.StatusOK, map[string]bool{"success": true})
}

func (h *Resource[T]) parseID(w http.ResponseWriter, r *http.Request) (int, bool) {
	id, err := strconv.Atoi(chi.URLParam(r, "id"))
	if err != nil || id < 1 {
		respondError(w, http.StatusBadRequest, "Invalid "+h.noun()+" ID")
		return 0, false
	}
	return id, true
}

func (h *Resource[T]) render(item T) any {
	if h.view != nil {
		return h.view(item)
	}
	return item
}

func (h *Resource[T]) noun() string {
	return strings.ToLower(h.kind)
}
