package settings

import (
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/elcarbonero/brasa/internal/settings"
)

type Handler struct {
	svc *settings.Service
}

func NewHandler(svc *settings.Service) *Handler {
	return &Handler{svc: svc}
}

func (h *Handler) Routes(r chi.Router) {
	r.Get("/empresa", h.getCompany)
	r.Put("/empresa", h.updateCompany)
	r.Get("/notificaciones", h.getNotifications)
	r.Put("/notificaciones", h.updateNotifications)
}

type companyPayload struct {
	Name    string `json:"nombre_empresa"`
	TaxID   string `json:"rif_nit"`
	Phone   string `json:"telefono"`
	Email   string `json:"email"`
	Address string `json:"direccion"`
	LogoURL string `json:"logo_url,omitempty"`
}

func (h *Handler) getCompany(w http.ResponseWriter, r *http.Request) {
	c, err := h.svc.Company(r.Context())
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	h.writeJSON(w, companyPayload{
		Name:    c.Name,
		TaxID:   c.TaxID,
		Phone:   c.Phone,
		Email:   c.Email,
		Address: c.Address,
		LogoURL: c.LogoURL,
	})
}

func (h *Handler) updateCompany(w http.ResponseWriter, r *http.Request) {
	var req companyPayload
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	c := &settings.Company{
		Name:    req.Name,
		TaxID:   req.TaxID,
		Phone:   req.Phone,
		Email:   req.Email,
		Address: req.Address,
		LogoURL: req.LogoURL,
	}
	if err := h.svc.UpdateCompany(r.Context(), c); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	h.writeJSON(w, req)
}

type notificationsPayload struct {
	LowStock        bool `json:"stock_bajo"`
	OverdueInvoices bool `json:"facturas_vencidas"`
	NewSales        bool `json:"nuevas_ventas"`
}

func (h *Handler) getNotifications(w http.ResponseWriter, r *http.Request) {
	n, err := h.svc.Notifications(r.Context())
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	h.writeJSON(w, notificationsPayload{
		LowStock:        n.LowStock,
		OverdueInvoices: n.OverdueInvoices,
		NewSales:        n.NewSales,
	})
}

func (h *Handler) updateNotifications(w http.ResponseWriter, r *http.Request) {
	var req notificationsPayload
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, err.Error(), http.StatusBadRequest)
		return
	}

	n := &settings.Notifications{
		LowStock:        req.LowStock,
		OverdueInvoices: req.OverdueInvoices,
		NewSales:        req.NewSales,
	}
	if err := h.svc.UpdateNotifications(r.Context(), n); err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}

	h.writeJSON(w, req)
}

func (h *Handler) writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")

	if err := json.NewEncoder(w).Encode(v); err != nil {
		slog.Error("failed to encode response", "error", err)
	}
}
