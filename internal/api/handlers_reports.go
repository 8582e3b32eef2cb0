package api

import (
	"net/http"
	"strconv"
	"time"

	"github.com/caiorodriguesslv/planwise-backend/internal/common"
)

func parseIntParam(r *http.Request, name string) (int, error) {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return 0, common.Validationf("query parameter %q is required", name)
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, common.Validationf("invalid value %q for %q", raw, name)
	}
	return v, nil
}

func (s *Server) handleFinancialSummary(w http.ResponseWriter, r *http.Request) {
	summary, err := s.reports.Summary(r.Context(), ownerFromContext(r.Context()), nil)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, summary)
}

func (s *Server) handleFinancialSummaryRange(w http.ResponseWriter, r *http.Request) {
	dateRange, err := parseRangeParams(r)
	if err != nil {
		writeError(w, err)
		return
	}

	summary, err := s.reports.Summary(r.Context(), ownerFromContext(r.Context()), dateRange)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, summary)
}

func (s *Server) handleMonthlySummary(w http.ResponseWriter, r *http.Request) {
	year, err := parseIntParam(r, "year")
	if err != nil {
		writeError(w, err)
		return
	}
	month, err := parseIntParam(r, "month")
	if err != nil {
		writeError(w, err)
		return
	}

	report, err := s.reports.Monthly(r.Context(), ownerFromContext(r.Context()), year, time.Month(month))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, report)
}

func (s *Server) handleYearlySummary(w http.ResponseWriter, r *http.Request) {
	year, err := parseIntParam(r, "year")
	if err != nil {
		writeError(w, err)
		return
	}

	report, err := s.reports.Yearly(r.Context(), ownerFromContext(r.Context()), year)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, report)
}

func (s *Server) handleGoalsSummary(w http.ResponseWriter, r *http.Request) {
	summary, err := s.reports.Goals(r.Context(), ownerFromContext(r.Context()))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, summary)
}
