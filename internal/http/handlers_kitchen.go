package http

import (
	"log/slog"
	"net/http"

	"casa/internal/core"
	"casa/internal/services"
)

type itemResponse struct {
	ID              int64  `json:"id"`
	CategoryID      int64  `json:"category_id"`
	Name            string `json:"name"`
	Quantity        int    `json:"quantity"`
	ExpiresOn       string `json:"expires_on"`
	DaysUntilExpiry int    `json:"days_until_expiry"`
	Urgency         string `json:"urgency"`
}

type categoryResponse struct {
	ID        int64          `json:"id"`
	Name      string         `json:"name"`
	Items     []itemResponse `json:"items"`
	MoreItems int            `json:"more_items"`
}

type createCategoryRequest struct {
	Name string `json:"name"`
}

type createItemRequest struct {
	CategoryID int64  `json:"category_id"`
	Name       string `json:"name"`
	Quantity   int    `json:"quantity"`
	ExpiresOn  string `json:"expires_on"`
}

type quantityResponse struct {
	ID       int64 `json:"id"`
	Quantity int   `json:"quantity"`
	Deleted  bool  `json:"deleted"`
}

func categoryViewToResponse(v services.CategoryView) categoryResponse {
	items := make([]itemResponse, len(v.Items))
	for i, it := range v.Items {
		items[i] = itemResponse{
			ID:              it.ID,
			CategoryID:      it.CategoryID,
			Name:            it.Name,
			Quantity:        it.Quantity,
			ExpiresOn:       it.Expiry.Format("2006-01-02"),
			DaysUntilExpiry: it.DaysUntilExpiry,
			Urgency:         string(it.Urgency),
		}
	}
	return categoryResponse{ID: v.ID, Name: v.Name, Items: items, MoreItems: v.MoreItems}
}

func (s *Server) handleKitchenOverview(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query().Get("q")
	views, err := s.kitchen.Overview(r.Context(), s.now(), query)
	if err != nil {
		respondError(w, r, err)
		return
	}
	out := make([]categoryResponse, len(views))
	for i, v := range views {
		out[i] = categoryViewToResponse(v)
	}
	respondJSON(w, http.StatusOK, out)
}

func (s *Server) handleCreateCategory(w http.ResponseWriter, r *http.Request) {
	var req createCategoryRequest
	if err := decodeJSON(r, &req); err != nil {
		respondJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return
	}
	category, err := s.kitchen.AddCategory(r.Context(), sanitizeInput(req.Name))
	if err != nil {
		respondError(w, r, err)
		return
	}
	slog.InfoContext(r.Context(), "Category created",
		"category_id", category.ID,
		"category_name", category.Name)
	respondJSON(w, http.StatusCreated, categoryResponse{ID: category.ID, Name: category.Name, Items: []itemResponse{}})
}

func (s *Server) handleSeedCategories(w http.ResponseWriter, r *http.Request) {
	added, err := s.kitchen.SeedDefaults(r.Context())
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]int{"added": added})
}

func (s *Server) handleDeleteCategory(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		respondJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid id"})
		return
	}
	if err := s.kitchen.DeleteCategory(r.Context(), id); err != nil {
		respondError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]int64{"deleted": id})
}

func (s *Server) handleCreateItem(w http.ResponseWriter, r *http.Request) {
	var req createItemRequest
	if err := decodeJSON(r, &req); err != nil {
		respondJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid request body"})
		return
	}
	expiry, err := parseDate(req.ExpiresOn)
	if err != nil {
		respondJSON(w, http.StatusUnprocessableEntity, errorResponse{Error: "invalid input"})
		return
	}

	item, err := s.kitchen.AddItem(r.Context(), core.Item{
		CategoryID: req.CategoryID,
		Name:       sanitizeInput(req.Name),
		Quantity:   req.Quantity,
		Expiry:     expiry,
	})
	if err != nil {
		respondError(w, r, err)
		return
	}

	slog.InfoContext(r.Context(), "Kitchen item created",
		"item_id", item.ID,
		"item_name", item.Name,
		"category_id", item.CategoryID)
	days := core.DaysUntilExpiry(s.now(), item.Expiry)
	respondJSON(w, http.StatusCreated, itemResponse{
		ID:              item.ID,
		CategoryID:      item.CategoryID,
		Name:            item.Name,
		Quantity:        item.Quantity,
		ExpiresOn:       item.Expiry.Format("2006-01-02"),
		DaysUntilExpiry: days,
		Urgency:         string(core.ClassifyExpiry(days)),
	})
}

func (s *Server) handleIncrementItem(w http.ResponseWriter, r *http.Request) {
	s.adjustItem(w, r, +1)
}

func (s *Server) handleDecrementItem(w http.ResponseWriter, r *http.Request) {
	s.adjustItem(w, r, -1)
}

func (s *Server) adjustItem(w http.ResponseWriter, r *http.Request, delta int) {
	id, err := pathID(r)
	if err != nil {
		respondJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid id"})
		return
	}
	var remaining int
	var deleted bool
	if delta > 0 {
		remaining, deleted, err = s.kitchen.IncrementItem(r.Context(), id)
	} else {
		remaining, deleted, err = s.kitchen.DecrementItem(r.Context(), id)
	}
	if err != nil {
		respondError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, quantityResponse{ID: id, Quantity: remaining, Deleted: deleted})
}

func (s *Server) handleDeleteItem(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		respondJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid id"})
		return
	}
	if err := s.kitchen.DeleteItem(r.Context(), id); err != nil {
		respondError(w, r, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]int64{"deleted": id})
}
