package api

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/caiorodriguesslv/planwise-backend/internal/common"
	"github.com/caiorodriguesslv/planwise-backend/internal/ledger"
	"github.com/caiorodriguesslv/planwise-backend/internal/model"
)

type goalRequest struct {
	Description string      `json:"description"`
	TargetValue model.Money `json:"targetValue"`
	Deadline    apiDate     `json:"deadline"`
}

func (req goalRequest) toInput() ledger.GoalInput {
	return ledger.GoalInput{
		Description: req.Description,
		TargetValue: req.TargetValue,
		Deadline:    req.Deadline.Time,
	}
}

type progressRequest struct {
	Value model.Money `json:"value"`
}

type progressResponse struct {
	Progress model.Percent `json:"progress"`
}

type sweepResponse struct {
	Updated int `json:"updated"`
}

type countResponse struct {
	Count int64 `json:"count"`
}

func (s *Server) handleCreateGoal(w http.ResponseWriter, r *http.Request) {
	var req goalRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, err)
		return
	}

	goal, err := s.goals.Create(r.Context(), ownerFromContext(r.Context()), req.toInput())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, toGoalResponse(goal))
}

func (s *Server) handleListGoals(w http.ResponseWriter, r *http.Request) {
	goals, err := s.goals.List(r.Context(), ownerFromContext(r.Context()))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toGoalResponses(goals))
}

func (s *Server) handleListGoalsByStatus(w http.ResponseWriter, r *http.Request) {
	status, err := model.ParseGoalStatus(mux.Vars(r)["status"])
	if err != nil {
		writeError(w, common.Validationf("%v", err))
		return
	}

	goals, err := s.goals.ListByStatus(r.Context(), ownerFromContext(r.Context()), status)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toGoalResponses(goals))
}

func (s *Server) handleListExpiredGoals(w http.ResponseWriter, r *http.Request) {
	goals, err := s.goals.ListByStatus(r.Context(), ownerFromContext(r.Context()), model.GoalExpired)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toGoalResponses(goals))
}

func (s *Server) handleCountGoalsByStatus(w http.ResponseWriter, r *http.Request) {
	status, err := model.ParseGoalStatus(mux.Vars(r)["status"])
	if err != nil {
		writeError(w, common.Validationf("%v", err))
		return
	}

	count, err := s.goals.CountByStatus(r.Context(), ownerFromContext(r.Context()), status)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, countResponse{Count: count})
}

func (s *Server) handleGetGoal(w http.ResponseWriter, r *http.Request) {
	goal, err := s.goals.Get(r.Context(), ownerFromContext(r.Context()), mux.Vars(r)["id"])
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toGoalResponse(goal))
}

func (s *Server) handleSearchGoals(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("q")
	if query == "" {
		writeError(w, common.Validationf("query parameter %q is required", "q"))
		return
	}

	goals, err := s.goals.Search(r.Context(), ownerFromContext(r.Context()), query)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toGoalResponses(goals))
}

func (s *Server) handleUpdateGoal(w http.ResponseWriter, r *http.Request) {
	var req goalRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, err)
		return
	}

	goal, err := s.goals.Update(r.Context(), ownerFromContext(r.Context()), mux.Vars(r)["id"], req.toInput())
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toGoalResponse(goal))
}

func (s *Server) handleSetGoalProgress(w http.ResponseWriter, r *http.Request) {
	var req progressRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, err)
		return
	}

	goal, err := s.goals.SetProgress(r.Context(), ownerFromContext(r.Context()), mux.Vars(r)["id"], req.Value)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toGoalResponse(goal))
}

func (s *Server) handleAddGoalProgress(w http.ResponseWriter, r *http.Request) {
	var req progressRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, err)
		return
	}

	goal, err := s.goals.AddProgress(r.Context(), ownerFromContext(r.Context()), mux.Vars(r)["id"], req.Value)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toGoalResponse(goal))
}

func (s *Server) handleGetGoalProgress(w http.ResponseWriter, r *http.Request) {
	progress, err := s.goals.Progress(r.Context(), ownerFromContext(r.Context()), mux.Vars(r)["id"])
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, progressResponse{Progress: progress})
}

func (s *Server) handleDeleteGoal(w http.ResponseWriter, r *http.Request) {
	if err := s.goals.Delete(r.Context(), ownerFromContext(r.Context()), mux.Vars(r)["id"]); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleSweepExpiredGoals(w http.ResponseWriter, r *http.Request) {
	updated, err := s.goals.SweepExpired(r.Context(), ownerFromContext(r.Context()))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, sweepResponse{Updated: updated})
}
