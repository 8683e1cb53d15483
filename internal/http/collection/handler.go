package collection

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/elcarbonero/brasa/internal/collection"
)

type Handler struct {
	svc *collection.Service
}

func NewHandler(svc *collection.Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) Routes(r chi.Router) {
	r.Post("/", h.create)
	r.Get("/", h.list)
	r.Get("/{id}", h.get)
	r.Patch("/{id}", h.update)
	r.Delete("/{id}", h.delete)
}

type collectionResponse struct {
	ID         uuid.UUID         `json:"id"`
	SaleID     uuid.UUID         `json:"venta_id"`
	PendingUSD float64           `json:"monto_pendiente"`
	PendingBS  float64           `json:"monto_pendiente_bs"`
	DueDate    *time.Time        `json:"fecha_vencimiento,omitempty"`
	Status     collection.Status `json:"estado"`
	Notes      string            `json:"notas,omitempty"`
}

func toResponse(c *collection.Collection) collectionResponse {
	return collectionResponse{
		ID:         c.ID,
		SaleID:     c.SaleID,
		PendingUSD: c.PendingUSD,
		PendingBS:  c.PendingBS,
		DueDate:    c.DueDate,
		Status:     c.Status,
		Notes:      c.Notes,
	}
}

type createCollectionRequest struct {
	SaleID     uuid.UUID  `json:"venta_id"`
	PendingUSD float64    `json:"monto_pendiente"`
	DueDate    *time.Time `json:"fecha_vencimiento,omitempty"`
	Notes      string     `json:"notas"`
}

func (h *Handler) create(w http.ResponseWriter, r *http.Request) {
	var req createCollectionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	c, err := h.svc.Create(r.Context(), collection.CreateParams{
		SaleID:     req.SaleID,
		PendingUSD: req.PendingUSD,
		DueDate:    req.DueDate,
		Notes:      req.Notes,
	})
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusCreated)

	if err := json.NewEncoder(w).Encode(toResponse(c)); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	page := 1
	limit := 10

	if p, err := strconv.Atoi(r.URL.Query().Get("page")); err == nil && p > 0 {
		page = p
	}

	if l, err := strconv.Atoi(r.URL.Query().Get("limit")); err == nil && l > 0 {
		limit = l
	}

	collections, count, err := h.svc.List(r.Context(), page, limit)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	resp := struct {
		Data  []collectionResponse `json:"data"`
		Count int                  `json:"count"`
	}{
		Data:  make([]collectionResponse, len(collections)),
		Count: count,
	}

	for i, c := range collections {
		resp.Data[i] = toResponse(c)
	}

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(resp); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

func (h *Handler) get(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}

	c, err := h.svc.Get(r.Context(), id)
	if err != nil {
		if errors.Is(err, collection.ErrNotFound) {
			http.Error(w, "collection not found", http.StatusNotFound)
			return
		}

		http.Error(w, "internal error", http.StatusInternalServerError)

		return
	}

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(toResponse(c)); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

type updateCollectionRequest struct {
	PendingUSD *float64           `json:"monto_pendiente,omitempty"`
	PendingBS  *float64           `json:"monto_pendiente_bs,omitempty"`
	DueDate    *time.Time         `json:"fecha_vencimiento,omitempty"`
	Status     *collection.Status `json:"estado,omitempty"`
	Notes      *string            `json:"notas,omitempty"`
}

func (h *Handler) update(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}

	var req updateCollectionRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	c, err := h.svc.Get(r.Context(), id)
	if err != nil {
		if errors.Is(err, collection.ErrNotFound) {
			http.Error(w, "collection not found", http.StatusNotFound)
			return
		}

		http.Error(w, "internal error", http.StatusInternalServerError)

		return
	}

	if req.PendingUSD != nil {
		c.PendingUSD = *req.PendingUSD
	}

	if req.PendingBS != nil {
		c.PendingBS = *req.PendingBS
	}

	if req.DueDate != nil {
		c.DueDate = req.DueDate
	}

	if req.Status != nil {
		c.Status = *req.Status
	}

	if req.Notes != nil {
		c.Notes = *req.Notes
	}

	if err := h.svc.Update(r.Context(), c); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(toResponse(c)); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}

func (h *Handler) delete(w http.ResponseWriter, r *http.Request) {
	id, err := uuid.Parse(chi.URLParam(r, "id"))
	if err != nil {
		http.Error(w, "invalid id", http.StatusBadRequest)
		return
	}

	if err := h.svc.Delete(r.Context(), id); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}
