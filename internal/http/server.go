// Package http exposes the household modules as a JSON API. It is the
// presentation boundary: handlers translate requests into service calls
// and never leak raw errors to the client.
package http

import (
	"net/http"
	"time"

	"casa/internal/middleware/trace"
	"casa/internal/services"
)

type Server struct {
	http.Server

	budget  *services.BudgetService
	kitchen *services.KitchenService
	tasks   *services.TaskService

	// now is the clock used for expiry classification; tests pin it.
	now func() time.Time

	tracer *trace.Middleware
}

func NewServer(addr string, budget *services.BudgetService, kitchen *services.KitchenService, tasks *services.TaskService) *Server {
	s := &Server{
		budget:  budget,
		kitchen: kitchen,
		tasks:   tasks,
		now:     time.Now,
		tracer:  trace.NewMiddleware(),
	}

	mux := http.NewServeMux()

	mux.HandleFunc("GET /healthz", s.handleHealth)
	mux.HandleFunc("GET /readyz", s.handleReady)

	mux.HandleFunc("GET /api/expenses", s.handleListExpenses)
	mux.HandleFunc("POST /api/expenses", s.handleCreateExpense)
	mux.HandleFunc("POST /api/expenses/delete", s.handleDeleteExpenses)
	mux.HandleFunc("GET /api/budget/summary", s.handleBudgetSummary)

	mux.HandleFunc("GET /api/categories", s.handleKitchenOverview)
	mux.HandleFunc("POST /api/categories", s.handleCreateCategory)
	mux.HandleFunc("POST /api/categories/seed", s.handleSeedCategories)
	mux.HandleFunc("DELETE /api/categories/{id}", s.handleDeleteCategory)

	mux.HandleFunc("POST /api/items", s.handleCreateItem)
	mux.HandleFunc("POST /api/items/{id}/increment", s.handleIncrementItem)
	mux.HandleFunc("POST /api/items/{id}/decrement", s.handleDecrementItem)
	mux.HandleFunc("DELETE /api/items/{id}", s.handleDeleteItem)

	mux.HandleFunc("GET /api/tasks", s.handleListTasks)
	mux.HandleFunc("POST /api/tasks", s.handleCreateTask)
	mux.HandleFunc("POST /api/tasks/{id}/toggle", s.handleToggleTask)
	mux.HandleFunc("POST /api/tasks/delete", s.handleDeleteTasks)

	s.Addr = addr
	s.Handler = s.tracer.Middleware(securityHeaders(mux))
	return s
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleReady(w http.ResponseWriter, r *http.Request) {
	// The store is opened before the server starts, so readiness equals liveness.
	respondJSON(w, http.StatusOK, map[string]string{"status": "ready"})
}

// securityHeaders sets conservative defaults for a local-only JSON API.
func securityHeaders(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-Content-Type-Options", "nosniff")
		w.Header().Set("X-Frame-Options", "DENY")
		w.Header().Set("Referrer-Policy", "no-referrer")
		next.ServeHTTP(w, r)
	})
}
