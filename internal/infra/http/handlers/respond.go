package handlers

import (
	"encoding/json"
	"net/http"
	"strings"

	"github.com/ahsandevhub/wetraineducattiontech-sub000/internal/usecase"
)

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

// writeError maps the usecase error taxonomy onto HTTP statuses.
// Authorization failures are 403, business rejections 4xx with the
// human-readable reason, infrastructure faults a plain 500.
func writeError(w http.ResponseWriter, err error) {
	switch e := err.(type) {
	case *usecase.AuthorizationError:
		writeJSON(w, http.StatusForbidden, map[string]string{"error": e.Message})
	case *usecase.DomainError:
		status := http.StatusBadRequest
		switch {
		case e.Code == usecase.CodeCustomQuote:
			status = http.StatusUnprocessableEntity
		case strings.HasSuffix(e.Code, "_NOT_FOUND"):
			status = http.StatusNotFound
		}
		writeJSON(w, status, map[string]string{"error": e.Message, "code": e.Code})
	case *usecase.TechnicalError:
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal error"})
	default:
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal error"})
	}
}
