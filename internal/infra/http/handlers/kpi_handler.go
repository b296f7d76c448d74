package handlers

import (
	"errors"
	"net/http"
	"time"

	"github.com/ahsandevhub/wetraineducattiontech-sub000/internal/entity"
	"github.com/ahsandevhub/wetraineducattiontech-sub000/internal/infra/http/middleware"
	"github.com/ahsandevhub/wetraineducattiontech-sub000/internal/usecase"
)

type KpiHandler struct {
	Kpi      *usecase.KpiUseCase
	Profiles entity.ProfileRepositoryInterface
}

func NewKpiHandler(kpi *usecase.KpiUseCase, profiles entity.ProfileRepositoryInterface) *KpiHandler {
	return &KpiHandler{Kpi: kpi, Profiles: profiles}
}

func (h *KpiHandler) HandleMetrics(w http.ResponseWriter, r *http.Request) {
	scope, dr, ok := h.resolveQuery(w, r)
	if !ok {
		return
	}

	metrics := h.Kpi.ComputeMetrics(r.Context(), scope, dr)
	writeJSON(w, http.StatusOK, struct {
		usecase.KpiMetrics
		Band string `json:"band"`
	}{metrics, usecase.ConversionBand(metrics.ConversionRate)})
}

func (h *KpiHandler) HandleBreakdown(w http.ResponseWriter, r *http.Request) {
	scope, dr, ok := h.resolveQuery(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, h.Kpi.ComputeStatusBreakdown(r.Context(), scope, dr))
}

func (h *KpiHandler) HandleTimeSeries(w http.ResponseWriter, r *http.Request) {
	scope, dr, ok := h.resolveQuery(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, h.Kpi.ComputeTimeSeries(r.Context(), scope, dr))
}

// HandleMarketers is the admin-only per-marketer performance table.
func (h *KpiHandler) HandleMarketers(w http.ResponseWriter, r *http.Request) {
	actor, ok := h.loadActor(w, r)
	if !ok {
		return
	}
	if !actor.IsAdmin() {
		writeJSON(w, http.StatusForbidden, map[string]string{"error": "administrator role required"})
		return
	}

	dr, err := parseRange(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, h.Kpi.ComputeMarketerPerformance(r.Context(), dr))
}

func (h *KpiHandler) HandleSources(w http.ResponseWriter, r *http.Request) {
	scope, dr, ok := h.resolveQuery(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, h.Kpi.ComputeSourceHistogram(r.Context(), scope, dr))
}

// resolveQuery parses scope and range. Non-admins always get their own
// leads (owner scope), whatever the query string asked for.
func (h *KpiHandler) resolveQuery(w http.ResponseWriter, r *http.Request) (entity.LeadScope, entity.DateRange, bool) {
	actor, ok := h.loadActor(w, r)
	if !ok {
		return entity.LeadScope{}, entity.DateRange{}, false
	}

	dr, err := parseRange(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return entity.LeadScope{}, entity.DateRange{}, false
	}

	if !actor.IsAdmin() {
		return entity.ScopeOwner(actor.ID), dr, true
	}

	q := r.URL.Query()
	switch q.Get("scope") {
	case "owner":
		return entity.ScopeOwner(q.Get("id")), dr, true
	case "creator":
		return entity.ScopeCreator(q.Get("id")), dr, true
	default:
		return entity.ScopeAll(), dr, true
	}
}

func (h *KpiHandler) loadActor(w http.ResponseWriter, r *http.Request) (*entity.Profile, bool) {
	actorID := middleware.ActorID(r.Context())
	actor, err := h.Profiles.FindByID(r.Context(), actorID)
	if err != nil {
		if errors.Is(err, entity.ErrProfileNotFound) {
			writeJSON(w, http.StatusForbidden, map[string]string{"error": "unknown actor"})
		} else {
			writeJSON(w, http.StatusInternalServerError, map[string]string{"error": "internal error"})
		}
		return nil, false
	}
	return actor, true
}

// parseRange accepts either a named preset (?range=this_month) or
// explicit ISO bounds (?from=&to=), both optional.
func parseRange(r *http.Request) (entity.DateRange, error) {
	q := r.URL.Query()

	if preset := q.Get("range"); preset != "" {
		return usecase.ResolvePreset(preset, time.Now()), nil
	}

	var dr entity.DateRange
	if from := q.Get("from"); from != "" {
		t, err := time.Parse(time.RFC3339, from)
		if err != nil {
			return dr, errors.New("from must be an RFC3339 timestamp")
		}
		dr.From = &t
	}
	if to := q.Get("to"); to != "" {
		t, err := time.Parse(time.RFC3339, to)
		if err != nil {
			return dr, errors.New("to must be an RFC3339 timestamp")
		}
		dr.To = &t
	}
	return dr, nil
}
