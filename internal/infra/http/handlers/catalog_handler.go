package handlers

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/ahsandevhub/wetraineducattiontech-sub000/internal/entity"
)

// CatalogHandler is the read-only services surface behind the marketing
// pages and the checkout selection.
type CatalogHandler struct {
	Services entity.ServiceRepositoryInterface
}

func NewCatalogHandler(services entity.ServiceRepositoryInterface) *CatalogHandler {
	return &CatalogHandler{Services: services}
}

// serviceView adds the derived pricing fields the storefront shows.
type serviceView struct {
	*entity.Service
	EffectivePrice *int64 `json:"effective_price"`
	CustomQuote    bool   `json:"custom_quote"`
}

func newServiceView(svc *entity.Service) serviceView {
	view := serviceView{Service: svc, CustomQuote: svc.IsCustomQuote()}
	if !view.CustomQuote {
		price := svc.EffectivePrice()
		view.EffectivePrice = &price
	}
	return view
}

func (h *CatalogHandler) HandleList(w http.ResponseWriter, r *http.Request) {
	services, err := h.Services.List(r.Context(), r.URL.Query().Get("category"))
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal error"})
		return
	}

	views := make([]serviceView, 0, len(services))
	for _, svc := range services {
		views = append(views, newServiceView(svc))
	}
	writeJSON(w, http.StatusOK, views)
}

func (h *CatalogHandler) HandleGet(w http.ResponseWriter, r *http.Request) {
	svc, err := h.Services.FindByID(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		if errors.Is(err, entity.ErrServiceNotFound) {
			writeJSON(w, http.StatusNotFound, map[string]string{"error": "service not found"})
			return
		}
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal error"})
		return
	}
	writeJSON(w, http.StatusOK, newServiceView(svc))
}
