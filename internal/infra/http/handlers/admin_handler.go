package handlers

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/ahsandevhub/wetraineducattiontech-sub000/internal/infra/http/middleware"
	"github.com/ahsandevhub/wetraineducattiontech-sub000/internal/usecase"
)

// AdminHandler exposes the four admin-only status transitions. The acting
// identity comes from the auth middleware; the usecase re-verifies the
// admin role against the store before mutating.
type AdminHandler struct {
	Transitions *usecase.AdminTransitionsUseCase
}

func NewAdminHandler(transitions *usecase.AdminTransitionsUseCase) *AdminHandler {
	return &AdminHandler{Transitions: transitions}
}

type transitionFn func(ctx context.Context, actorID, id string) error

func (h *AdminHandler) HandleMarkPaid(w http.ResponseWriter, r *http.Request) {
	h.apply(w, r, h.Transitions.MarkPaid)
}

func (h *AdminHandler) HandleRejectPayment(w http.ResponseWriter, r *http.Request) {
	h.apply(w, r, h.Transitions.RejectPayment)
}

func (h *AdminHandler) HandleCompleteOrder(w http.ResponseWriter, r *http.Request) {
	h.apply(w, r, h.Transitions.CompleteOrder)
}

func (h *AdminHandler) HandleCancelOrder(w http.ResponseWriter, r *http.Request) {
	h.apply(w, r, h.Transitions.CancelOrder)
}

func (h *AdminHandler) apply(w http.ResponseWriter, r *http.Request, fn transitionFn) {
	actorID := middleware.ActorID(r.Context())
	id := chi.URLParam(r, "id")

	if err := fn(r.Context(), actorID, id); err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]bool{"ok": true})
}
