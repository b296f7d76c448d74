package handlers

import (
	"net/http"
	"strconv"

	"github.com/ahsandevhub/wetraineducattiontech-sub000/internal/entity"
	"github.com/ahsandevhub/wetraineducattiontech-sub000/internal/infra/http/middleware"
)

const accountHistoryLimit = 50

// AccountHandler serves the buyer dashboard: the caller's own payment and
// order history, newest first. The actor id from the auth middleware is
// the only filter, so nobody can read another account's rows.
type AccountHandler struct {
	Payments entity.PaymentRepositoryInterface
	Orders   entity.OrderRepositoryInterface
}

func NewAccountHandler(payments entity.PaymentRepositoryInterface, orders entity.OrderRepositoryInterface) *AccountHandler {
	return &AccountHandler{Payments: payments, Orders: orders}
}

func (h *AccountHandler) HandlePayments(w http.ResponseWriter, r *http.Request) {
	payments, err := h.Payments.ListByUser(r.Context(), middleware.ActorID(r.Context()), historyLimit(r))
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal error"})
		return
	}
	if payments == nil {
		payments = []*entity.Payment{}
	}
	writeJSON(w, http.StatusOK, payments)
}

func (h *AccountHandler) HandleOrders(w http.ResponseWriter, r *http.Request) {
	orders, err := h.Orders.ListByUser(r.Context(), middleware.ActorID(r.Context()), historyLimit(r))
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal error"})
		return
	}
	if orders == nil {
		orders = []*entity.Order{}
	}
	writeJSON(w, http.StatusOK, orders)
}

func historyLimit(r *http.Request) int {
	limit, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	if limit <= 0 || limit > accountHistoryLimit {
		return accountHistoryLimit
	}
	return limit
}
