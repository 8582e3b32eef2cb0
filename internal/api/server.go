package api

import (
	"net/http"

	"github.com/gorilla/mux"

	"github.com/caiorodriguesslv/planwise-backend/internal/auth"
	"github.com/caiorodriguesslv/planwise-backend/internal/ledger"
	"github.com/caiorodriguesslv/planwise-backend/internal/model"
)

// Server wires the core services into an HTTP router.
type Server struct {
	issuer       *auth.TokenIssuer
	auth         *auth.Service
	categories   *ledger.CategoryService
	transactions *ledger.TransactionService
	goals        *ledger.GoalService
	reports      *ledger.ReportService
}

// NewServer creates the HTTP boundary over the given services.
func NewServer(
	issuer *auth.TokenIssuer,
	authSvc *auth.Service,
	categories *ledger.CategoryService,
	transactions *ledger.TransactionService,
	goals *ledger.GoalService,
	reports *ledger.ReportService,
) *Server {
	return &Server{
		issuer:       issuer,
		auth:         authSvc,
		categories:   categories,
		transactions: transactions,
		goals:        goals,
		reports:      reports,
	}
}

// Router builds the route table. Everything under /api except auth requires
// a bearer token.
func (s *Server) Router() *mux.Router {
	r := mux.NewRouter()
	r.Use(requestLogger)

	r.HandleFunc("/health", s.handleHealth).Methods(http.MethodGet)

	r.HandleFunc("/api/auth/register", s.handleRegister).Methods(http.MethodPost)
	r.HandleFunc("/api/auth/login", s.handleLogin).Methods(http.MethodPost)

	protected := r.PathPrefix("/api").Subrouter()
	protected.Use(s.authenticate)

	protected.HandleFunc("/users/me", s.handleMe).Methods(http.MethodGet)
	protected.Handle("/users", requireAdmin(http.HandlerFunc(s.handleListUsers))).Methods(http.MethodGet)

	cat := protected.PathPrefix("/categories").Subrouter()
	cat.HandleFunc("", s.handleCreateCategory).Methods(http.MethodPost)
	cat.HandleFunc("", s.handleListCategories).Methods(http.MethodGet)
	cat.HandleFunc("/search", s.handleSearchCategories).Methods(http.MethodGet)
	cat.HandleFunc("/type/{type}", s.handleListCategoriesByKind).Methods(http.MethodGet)
	cat.HandleFunc("/{id:[0-9]+}", s.handleGetCategory).Methods(http.MethodGet)
	cat.HandleFunc("/{id:[0-9]+}", s.handleRenameCategory).Methods(http.MethodPut)
	cat.HandleFunc("/{id:[0-9]+}", s.handleDeleteCategory).Methods(http.MethodDelete)

	s.mountTransactionRoutes(protected.PathPrefix("/incomes").Subrouter(), model.TransactionIncome)
	s.mountTransactionRoutes(protected.PathPrefix("/expenses").Subrouter(), model.TransactionExpense)

	goals := protected.PathPrefix("/goals").Subrouter()
	goals.HandleFunc("", s.handleCreateGoal).Methods(http.MethodPost)
	goals.HandleFunc("", s.handleListGoals).Methods(http.MethodGet)
	goals.HandleFunc("/search", s.handleSearchGoals).Methods(http.MethodGet)
	goals.HandleFunc("/expired", s.handleListExpiredGoals).Methods(http.MethodGet)
	goals.HandleFunc("/status/{status}", s.handleListGoalsByStatus).Methods(http.MethodGet)
	goals.HandleFunc("/count/status/{status}", s.handleCountGoalsByStatus).Methods(http.MethodGet)
	goals.HandleFunc("/update-expired", s.handleSweepExpiredGoals).Methods(http.MethodPost)
	goals.HandleFunc("/{id}", s.handleGetGoal).Methods(http.MethodGet)
	goals.HandleFunc("/{id}", s.handleUpdateGoal).Methods(http.MethodPut)
	goals.HandleFunc("/{id}", s.handleDeleteGoal).Methods(http.MethodDelete)
	goals.HandleFunc("/{id}/progress", s.handleSetGoalProgress).Methods(http.MethodPut)
	goals.HandleFunc("/{id}/progress", s.handleGetGoalProgress).Methods(http.MethodGet)
	goals.HandleFunc("/{id}/add-progress", s.handleAddGoalProgress).Methods(http.MethodPut)

	reports := protected.PathPrefix("/reports").Subrouter()
	reports.HandleFunc("/financial-summary", s.handleFinancialSummary).Methods(http.MethodGet)
	reports.HandleFunc("/financial-summary/date-range", s.handleFinancialSummaryRange).Methods(http.MethodGet)
	reports.HandleFunc("/monthly-summary", s.handleMonthlySummary).Methods(http.MethodGet)
	reports.HandleFunc("/yearly-summary", s.handleYearlySummary).Methods(http.MethodGet)
	reports.HandleFunc("/goals-summary", s.handleGoalsSummary).Methods(http.MethodGet)

	return r
}

func (s *Server) mountTransactionRoutes(r *mux.Router, kind model.TransactionKind) {
	r.HandleFunc("", s.createTransactionHandler(kind)).Methods(http.MethodPost)
	r.HandleFunc("", s.listTransactionsHandler(kind)).Methods(http.MethodGet)
	r.HandleFunc("/search", s.searchTransactionsHandler(kind)).Methods(http.MethodGet)
	r.HandleFunc("/date-range", s.listTransactionsByRangeHandler(kind)).Methods(http.MethodGet)
	r.HandleFunc("/total", s.totalTransactionsHandler(kind, false)).Methods(http.MethodGet)
	r.HandleFunc("/total/date-range", s.totalTransactionsHandler(kind, true)).Methods(http.MethodGet)
	r.HandleFunc("/category/{id:[0-9]+}", s.listTransactionsByCategoryHandler(kind)).Methods(http.MethodGet)
	r.HandleFunc("/{id}", s.getTransactionHandler(kind)).Methods(http.MethodGet)
	r.HandleFunc("/{id}", s.updateTransactionHandler(kind)).Methods(http.MethodPut)
	r.HandleFunc("/{id}", s.deleteTransactionHandler(kind)).Methods(http.MethodDelete)
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
