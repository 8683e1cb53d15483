package audit

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/elcarbonero/brasa/internal/audit"
)

type Handler struct {
	svc *audit.Service
}

func NewHandler(svc *audit.Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) Routes(r chi.Router) {
	r.Get("/", h.list)
}

type entryResponse struct {
	ID         uuid.UUID `json:"id"`
	Timestamp  time.Time `json:"timestamp"`
	UserID     string    `json:"user_id,omitempty"`
	Table      string    `json:"table_name"`
	Operation  string    `json:"operation"`
	RecordID   string    `json:"record_id,omitempty"`
	Query      string    `json:"query_text,omitempty"`
	DurationMS int64     `json:"execution_time_ms,omitempty"`
	ErrMessage string    `json:"error_message,omitempty"`
}

func (h *Handler) list(w http.ResponseWriter, r *http.Request) {
	page := 1
	limit := 25

	if p, err := strconv.Atoi(r.URL.Query().Get("page")); err == nil && p > 0 {
		page = p
	}

	if l, err := strconv.Atoi(r.URL.Query().Get("limit")); err == nil && l > 0 {
		limit = l
	}

	entries, count, err := h.svc.List(r.Context(), page, limit)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	resp := struct {
		Data  []entryResponse `json:"data"`
		Count int             `json:"count"`
	}{
		Data:  make([]entryResponse, len(entries)),
		Count: count,
	}

	for i, e := range entries {
		resp.Data[i] = entryResponse{
			ID:         e.ID,
			Timestamp:  e.Timestamp,
			UserID:     e.UserID,
			Table:      e.Table,
			Operation:  e.Operation,
			RecordID:   e.RecordID,
			Query:      e.Query,
			DurationMS: e.DurationMS,
			ErrMessage: e.ErrMessage,
		}
	}

	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(resp); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}
