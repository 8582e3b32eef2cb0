package api

import (
	"net/http"
	"strconv"

	"github.com/gorilla/mux"

	"github.com/caiorodriguesslv/planwise-backend/internal/common"
	"github.com/caiorodriguesslv/planwise-backend/internal/ledger"
	"github.com/caiorodriguesslv/planwise-backend/internal/model"
	"github.com/caiorodriguesslv/planwise-backend/internal/service"
)

type transactionRequest struct {
	Description string      `json:"description"`
	Amount      model.Money `json:"amount"`
	Date        apiDate     `json:"date"`
	CategoryID  int64       `json:"categoryId"`
}

func (req transactionRequest) toInput() ledger.TransactionInput {
	return ledger.TransactionInput{
		Description: req.Description,
		Amount:      req.Amount,
		Date:        req.Date.Time,
		CategoryID:  req.CategoryID,
	}
}

type totalResponse struct {
	Total model.Money `json:"total"`
}

func (s *Server) createTransactionHandler(kind model.TransactionKind) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req transactionRequest
		if err := decodeJSON(r, &req); err != nil {
			writeError(w, err)
			return
		}

		txn, err := s.transactions.Create(r.Context(), ownerFromContext(r.Context()), kind, req.toInput())
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusCreated, toTransactionResponse(txn))
	}
}

func (s *Server) listTransactionsHandler(kind model.TransactionKind) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		filter := service.TransactionFilter{}
		if raw := r.URL.Query().Get("limit"); raw != "" {
			limit, err := strconv.Atoi(raw)
			if err != nil || limit < 0 {
				writeError(w, common.Validationf("invalid limit %q", raw))
				return
			}
			filter.Limit = limit
		}
		if raw := r.URL.Query().Get("offset"); raw != "" {
			offset, err := strconv.Atoi(raw)
			if err != nil || offset < 0 {
				writeError(w, common.Validationf("invalid offset %q", raw))
				return
			}
			filter.Offset = offset
		}

		txns, err := s.transactions.List(r.Context(), ownerFromContext(r.Context()), kind, filter)
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, toTransactionResponses(txns))
	}
}

func (s *Server) listTransactionsByRangeHandler(kind model.TransactionKind) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		dateRange, err := parseRangeParams(r)
		if err != nil {
			writeError(w, err)
			return
		}

		filter := service.TransactionFilter{StartDate: &dateRange.Start, EndDate: &dateRange.End}
		txns, err := s.transactions.List(r.Context(), ownerFromContext(r.Context()), kind, filter)
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, toTransactionResponses(txns))
	}
}

func (s *Server) listTransactionsByCategoryHandler(kind model.TransactionKind) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		categoryID, err := pathID(r)
		if err != nil {
			writeError(w, err)
			return
		}

		txns, err := s.transactions.ListByCategory(r.Context(), ownerFromContext(r.Context()), kind, categoryID)
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, toTransactionResponses(txns))
	}
}

func (s *Server) searchTransactionsHandler(kind model.TransactionKind) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		query := r.URL.Query().Get("q")
		if query == "" {
			writeError(w, common.Validationf("query parameter %q is required", "q"))
			return
		}

		txns, err := s.transactions.Search(r.Context(), ownerFromContext(r.Context()), kind, query)
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, toTransactionResponses(txns))
	}
}

func (s *Server) getTransactionHandler(kind model.TransactionKind) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		txn, err := s.transactions.Get(r.Context(), ownerFromContext(r.Context()), kind, mux.Vars(r)["id"])
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, toTransactionResponse(txn))
	}
}

func (s *Server) updateTransactionHandler(kind model.TransactionKind) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req transactionRequest
		if err := decodeJSON(r, &req); err != nil {
			writeError(w, err)
			return
		}

		txn, err := s.transactions.Update(r.Context(), ownerFromContext(r.Context()), kind, mux.Vars(r)["id"], req.toInput())
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, toTransactionResponse(txn))
	}
}

func (s *Server) deleteTransactionHandler(kind model.TransactionKind) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := s.transactions.Delete(r.Context(), ownerFromContext(r.Context()), kind, mux.Vars(r)["id"]); err != nil {
			writeError(w, err)
			return
		}
		w.WriteHeader(http.StatusNoContent)
	}
}

func (s *Server) totalTransactionsHandler(kind model.TransactionKind, ranged bool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var dateRange *service.DateRange
		if ranged {
			parsed, err := parseRangeParams(r)
			if err != nil {
				writeError(w, err)
				return
			}
			dateRange = parsed
		}

		total, err := s.reports.TotalByKind(r.Context(), ownerFromContext(r.Context()), kind, dateRange)
		if err != nil {
			writeError(w, err)
			return
		}
		writeJSON(w, http.StatusOK, totalResponse{Total: total})
	}
}
