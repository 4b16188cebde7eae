package handler

import (
	"log/slog"
	"net/http"
	"scaffold-rental/internal/api/handler/dto"
	"scaffold-rental/internal/domain/record"

	"github.com/go-chi/chi/v5"
)

// RecordHandler serves the CRUD routes of one collection. R is the request
// body type that converts into the entity.
type RecordHandler[T record.Entity, R dto.Request[T]] struct {
	service record.Service[T]
	logger  *slog.Logger
}

func NewRecordHandler[T record.Entity, R dto.Request[T]](s record.Service[T], l *slog.Logger) *RecordHandler[T, R] {
	if s == nil {
		panic("record service cannot be nil")
	}
	if l == nil {
		panic("logger cannot be nil")
	}
	return &RecordHandler[T, R]{
		service: s,
		logger:  l.With("component", "RecordHandler", "collection", s.Collection()),
	}
}

// Routes mounts list, create, get, update and delete under the caller's prefix.
func (h *RecordHandler[T, R]) Routes(r chi.Router) {
	r.Get("/", h.List)
	r.Post("/", h.Create)
	r.Route("/{key}", func(r chi.Router) {
		r.Get("/", h.Get)
		r.Put("/", h.Update)
		r.Delete("/", h.Delete)
	})
}

func (h *RecordHandler[T, R]) decode(w http.ResponseWriter, r *http.Request) (T, bool) {
	var (
		req  R
		zero T
	)
	if err := decodeJSON(r, &req); err != nil {
		h.logger.WarnContext(r.Context(), "Failed to decode request body", slog.Any("error", err))
		respondError(w, invalidBody(err))
		return zero, false
	}
	if err := dto.Validate(req); err != nil {
		h.logger.WarnContext(r.Context(), "Request failed struct validation", slog.Any("error", err))
		respondError(w, err)
		return zero, false
	}
	return req.ToDomain(), true
}

// List handles GET /api/v1/{collection}
// @Summary List records
// @Description Returns every record of the collection in insertion order.
// @Tags Records
// @Produce json
// @Param collection path string true "customers, vendors, inventory or orders"
// @Success 200 {array} object "Records"
// @Failure 500 {object} dto.ErrorResponse "Internal server error"
// @Router /api/v1/{collection} [get]
// @Security BearerAuth
func (h *RecordHandler[T, R]) List(w http.ResponseWriter, r *http.Request) {
	recs, err := h.service.List(r.Context())
	if err != nil {
		h.logger.ErrorContext(r.Context(), "Service failed to list records", slog.Any("error", err))
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, recs)
}

// Get handles GET /api/v1/{collection}/{key}
// @Summary Get one record
// @Tags Records
// @Produce json
// @Param collection path string true "Collection name"
// @Param key path string true "Record key"
// @Success 200 {object} object "Record"
// @Failure 404 {object} dto.ErrorResponse "Record not found"
// @Router /api/v1/{collection}/{key} [get]
// @Security BearerAuth
func (h *RecordHandler[T, R]) Get(w http.ResponseWriter, r *http.Request) {
	key, err := pathParam(r, "key")
	if err != nil {
		respondError(w, err)
		return
	}

	rec, err := h.service.Get(r.Context(), key)
	if err != nil {
		h.logger.Log(r.Context(), logLevelFor(err), "Service failed to get record", slog.String("key", key), slog.Any("error", err))
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, rec)
}

// Create handles POST /api/v1/{collection}
// @Summary Add a record
// @Tags Records
// @Accept json
// @Produce json
// @Param collection path string true "Collection name"
// @Success 201 {object} object "Created record"
// @Failure 400 {object} dto.ErrorResponse "Validation failed"
// @Failure 409 {object} dto.ErrorResponse "Key already exists"
// @Router /api/v1/{collection} [post]
// @Security BearerAuth
func (h *RecordHandler[T, R]) Create(w http.ResponseWriter, r *http.Request) {
	rec, ok := h.decode(w, r)
	if !ok {
		return
	}

	created, err := h.service.Add(r.Context(), rec)
	if err != nil {
		h.logger.Log(r.Context(), logLevelFor(err), "Service failed to add record", slog.Any("error", err))
		respondError(w, err)
		return
	}
	h.logger.InfoContext(r.Context(), "Record created", slog.String("key", created.Key()))
	respondJSON(w, http.StatusCreated, created)
}

// Update handles PUT /api/v1/{collection}/{key}
// @Summary Replace a record
// @Description The body key must equal the path key.
// @Tags Records
// @Accept json
// @Produce json
// @Param collection path string true "Collection name"
// @Param key path string true "Record key"
// @Success 200 {object} object "Updated record"
// @Failure 400 {object} dto.ErrorResponse "Validation failed or key changed"
// @Failure 404 {object} dto.ErrorResponse "Record not found"
// @Router /api/v1/{collection}/{key} [put]
// @Security BearerAuth
func (h *RecordHandler[T, R]) Update(w http.ResponseWriter, r *http.Request) {
	key, err := pathParam(r, "key")
	if err != nil {
		respondError(w, err)
		return
	}
	rec, ok := h.decode(w, r)
	if !ok {
		return
	}

	updated, err := h.service.Update(r.Context(), key, rec)
	if err != nil {
		h.logger.Log(r.Context(), logLevelFor(err), "Service failed to update record", slog.String("key", key), slog.Any("error", err))
		respondError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, updated)
}

// Delete handles DELETE /api/v1/{collection}/{key}
// @Summary Delete a record
// @Tags Records
// @Param collection path string true "Collection name"
// @Param key path string true "Record key"
// @Success 204 "Deleted"
// @Failure 404 {object} dto.ErrorResponse "Record not found"
// @Router /api/v1/{collection}/{key} [delete]
// @Security BearerAuth
func (h *RecordHandler[T, R]) Delete(w http.ResponseWriter, r *http.Request) {
	key, err := pathParam(r, "key")
	if err != nil {
		respondError(w, err)
		return
	}

	if err := h.service.Delete(r.Context(), key); err != nil {
		h.logger.Log(r.Context(), logLevelFor(err), "Service failed to delete record", slog.String("key", key), slog.Any("error", err))
		respondError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
