package api

import (
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/caiorodriguesslv/planwise-backend/internal/common"
	"github.com/caiorodriguesslv/planwise-backend/internal/model"
)

type createCategoryRequest struct {
	Name string `json:"name"`
	Type string `json:"type"`
}

type renameCategoryRequest struct {
	Name string `json:"name"`
}

func pathID(r *http.Request) (int64, error) {
	raw := mux.Vars(r)["id"]
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil || id <= 0 {
		return 0, common.Validationf("invalid id %q", raw)
	}
	return id, nil
}

func (s *Server) handleCreateCategory(w http.ResponseWriter, r *http.Request) {
	var req createCategoryRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, err)
		return
	}

	kind, err := model.ParseCategoryKind(req.Type)
	if err != nil {
		writeError(w, common.Validationf("%v", err))
		return
	}

	cat, err := s.categories.Create(r.Context(), ownerFromContext(r.Context()), req.Name, kind)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, toCategoryResponse(cat))
}

func (s *Server) handleListCategories(w http.ResponseWriter, r *http.Request) {
	cats, err := s.categories.List(r.Context(), ownerFromContext(r.Context()))
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toCategoryResponses(cats))
}

func (s *Server) handleListCategoriesByKind(w http.ResponseWriter, r *http.Request) {
	kind, err := model.ParseCategoryKind(mux.Vars(r)["type"])
	if err != nil {
		writeError(w, common.Validationf("%v", err))
		return
	}

	cats, err := s.categories.ListByKind(r.Context(), ownerFromContext(r.Context()), kind)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toCategoryResponses(cats))
}

func (s *Server) handleGetCategory(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, err)
		return
	}

	cat, err := s.categories.Get(r.Context(), ownerFromContext(r.Context()), id)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toCategoryResponse(cat))
}

func (s *Server) handleSearchCategories(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("q")
	if query == "" {
		writeError(w, common.Validationf("query parameter %q is required", "q"))
		return
	}

	cats, err := s.categories.Search(r.Context(), ownerFromContext(r.Context()), query)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toCategoryResponses(cats))
}

func (s *Server) handleRenameCategory(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, err)
		return
	}

	var req renameCategoryRequest
	if err := decodeJSON(r, &req); err != nil {
		writeError(w, err)
		return
	}

	cat, err := s.categories.Rename(r.Context(), ownerFromContext(r.Context()), id, req.Name)
	if err != nil {
		writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, toCategoryResponse(cat))
}

func (s *Server) handleDeleteCategory(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		writeError(w, err)
		return
	}

	if err := s.categories.Delete(r.Context(), ownerFromContext(r.Context()), id); err != nil {
		writeError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}
