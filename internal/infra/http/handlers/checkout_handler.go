package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/ahsandevhub/wetraineducattiontech-sub000/internal/infra/http/middleware"
	"github.com/ahsandevhub/wetraineducattiontech-sub000/internal/usecase"
)

type CheckoutHandler struct {
	InitiateUC *usecase.InitiateCheckoutUseCase
	ConfirmUC  *usecase.ConfirmCheckoutUseCase
}

func NewCheckoutHandler(initiateUC *usecase.InitiateCheckoutUseCase, confirmUC *usecase.ConfirmCheckoutUseCase) *CheckoutHandler {
	return &CheckoutHandler{InitiateUC: initiateUC, ConfirmUC: confirmUC}
}

func (h *CheckoutHandler) HandleInitiate(w http.ResponseWriter, r *http.Request) {
	var input usecase.InitiateCheckoutInput
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON: " + err.Error()})
		return
	}

	output, err := h.InitiateUC.Execute(r.Context(), input)
	if err != nil {
		middleware.RecordCheckout(input.Method, "rejected")
		writeError(w, err)
		return
	}

	middleware.RecordCheckout(input.Method, "created")
	writeJSON(w, http.StatusCreated, output)
}

type confirmRequest struct {
	SessionID string `json:"sessionId"`
	Status    string `json:"status"`
}

func (h *CheckoutHandler) HandleConfirm(w http.ResponseWriter, r *http.Request) {
	var req confirmRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON: " + err.Error()})
		return
	}

	if err := h.ConfirmUC.Execute(r.Context(), req.SessionID, req.Status); err != nil {
		writeError(w, err)
		return
	}

	middleware.RecordConfirmation(req.Status)
	writeJSON(w, http.StatusOK, map[string]bool{"ok": true})
}
