package http

import (
	"log/slog"
	"net/http"
	"time"

	"casa/internal/core"
)

type taskResponse struct {
	ID        int64  `json:"id"`
	Title     string `json:"title"`
	Priority  string `json:"priority"`
	Done      bool   `json:"done"`
	CreatedAt string `json:"created_at"`
}

type createTaskRequest struct {
	Title    string `json:"title"`
	Priority string `json:"priority"`
}

func taskToResponse(t core.Task) taskResponse {
	return taskResponse{
		ID:        t.ID,
		Title:     t.Title,
		Priority:  string(t.Priority),
		Done:      t.Done,
		CreatedAt: t.CreatedAt.UTC().Format(time.RFC3339),
	}
}

func (s *Server) handleListTasks(w http.ResponseWriter, r *http.Request) {
	tasks, err := s.tasks.List(r.Context())
	if err != nil {
		respondError(w, r, err)
		return
	}
	out := make([]taskResponse, len(tasks))
	for i, t := range tasks {
		out[i] = taskToResponse(t)
	}
	respondJSON(w, http.StatusOK, out)
}

func (s *Server) handleCreateTask(w http.ResponseWriter, r *http.Request) {
	var req createTaskRequest
	if err := decodeJSON(r, &req); err != nil {
		respondJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return
	}

	// The title is passed through untouched: blank titles are allowed.
	task, err := s.tasks.AddTask(r.Context(), sanitizeInput(req.Title), core.Priority(req.Priority))
	if err != nil {
		respondError(w, r, err)
		return
	}

	slog.InfoContext(r.Context(), "Task created",
		"task_id", task.ID,
		"priority", string(task.Priority))
	respondJSON(w, http.StatusCreated, taskToResponse(task))
}

func (s *Server) handleToggleTask(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		respondJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid id"})
		return
	}
	task, err := s.tasks.Toggle(r.Context(), id)
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, taskToResponse(task))
}

func (s *Server) handleDeleteTasks(w http.ResponseWriter, r *http.Request) {
	var req deleteByIDsRequest
	if err := decodeJSON(r, &req); err != nil {
		respondJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return
	}
	if err := s.tasks.DeleteTasks(r.Context(), req.IDs); err != nil {
		respondError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]int{"deleted": len(req.IDs)})
}
