package http

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"casa/internal/services"
	"casa/internal/storage"
)

func newTestServer(t *testing.T) *Server {
	t.Helper()
	repo, err := storage.NewSQLiteRepository(filepath.Join(t.TempDir(), "casa.db"))
	if err != nil {
		t.Fatalf("open repository: %v", err)
	}
	t.Cleanup(func() { repo.Close() })

	srv := NewServer(":0",
		services.NewBudgetService(repo),
		services.NewKitchenService(repo),
		services.NewTaskService(repo))
	// Pin the clock so urgency classification is deterministic.
	srv.now = func() time.Time {
		return time.Date(2026, 8, 30, 12, 0, 0, 0, time.UTC)
	}
	return srv
}

func do(t *testing.T, srv *Server, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body != "" {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}
	rr := httptest.NewRecorder()
	srv.Handler.ServeHTTP(rr, req)
	return rr
}

func decode(t *testing.T, rr *httptest.ResponseRecorder, dst any) {
	t.Helper()
	if err := json.Unmarshal(rr.Body.Bytes(), dst); err != nil {
		t.Fatalf("decode %q: %v", rr.Body.String(), err)
	}
}

func TestHealthEndpoints(t *testing.T) {
	srv := newTestServer(t)
	for _, path := range []string{"/healthz", "/readyz"} {
		if rr := do(t, srv, http.MethodGet, path, ""); rr.Code != http.StatusOK {
			t.Fatalf("%s status=%d", path, rr.Code)
		}
	}
}

func TestExpenseEndpoints(t *testing.T) {
	srv := newTestServer(t)

	// Unparsable amount: 422, nothing created.
	rr := do(t, srv, http.MethodPost, "/api/expenses", `{"name":"coffee","amount":"abc"}`)
	if rr.Code != http.StatusUnprocessableEntity {
		t.Fatalf("bad amount expected 422, got %d", rr.Code)
	}
	// Blank name: 422.
	rr = do(t, srv, http.MethodPost, "/api/expenses", `{"name":"  ","amount":"1.50"}`)
	if rr.Code != http.StatusUnprocessableEntity {
		t.Fatalf("blank name expected 422, got %d", rr.Code)
	}

	rr = do(t, srv, http.MethodPost, "/api/expenses", `{"name":"coffee","amount":"2,50"}`)
	if rr.Code != http.StatusCreated {
		t.Fatalf("create expected 201, got %d: %s", rr.Code, rr.Body.String())
	}
	var created expenseResponse
	decode(t, rr, &created)
	if created.AmountCents != 250 {
		t.Fatalf("expected 250 cents, got %d", created.AmountCents)
	}

	rr = do(t, srv, http.MethodGet, "/api/budget/summary", "")
	if rr.Code != http.StatusOK {
		t.Fatalf("summary status=%d", rr.Code)
	}
	var summary budgetSummaryResponse
	decode(t, rr, &summary)
	if summary.TotalCents != 250 {
		t.Fatalf("expected total 250, got %d", summary.TotalCents)
	}

	rr = do(t, srv, http.MethodPost, "/api/expenses/delete", fmt.Sprintf(`{"ids":[%d]}`, created.ID))
	if rr.Code != http.StatusOK {
		t.Fatalf("delete status=%d", rr.Code)
	}
	rr = do(t, srv, http.MethodGet, "/api/expenses", "")
	var list []expenseResponse
	decode(t, rr, &list)
	if len(list) != 0 {
		t.Fatalf("expected empty list, got %+v", list)
	}
}

func TestKitchenEndpoints(t *testing.T) {
	srv := newTestServer(t)

	// Seeding twice yields exactly the four defaults.
	for i := 0; i < 2; i++ {
		if rr := do(t, srv, http.MethodPost, "/api/categories/seed", ""); rr.Code != http.StatusOK {
			t.Fatalf("seed status=%d", rr.Code)
		}
	}
	rr := do(t, srv, http.MethodGet, "/api/categories", "")
	var categories []categoryResponse
	decode(t, rr, &categories)
	if len(categories) != 4 {
		t.Fatalf("expected 4 categories after double seed, got %d", len(categories))
	}

	var fridgeID int64
	for _, c := range categories {
		if c.Name == "Refrigerator" {
			fridgeID = c.ID
		}
	}

	// Item without a category: 422.
	rr = do(t, srv, http.MethodPost, "/api/items", `{"name":"Milk","quantity":1,"expires_on":"2026-08-31"}`)
	if rr.Code != http.StatusUnprocessableEntity {
		t.Fatalf("missing category expected 422, got %d", rr.Code)
	}

	body := fmt.Sprintf(`{"category_id":%d,"name":"Milk","quantity":2,"expires_on":"2026-08-31"}`, fridgeID)
	rr = do(t, srv, http.MethodPost, "/api/items", body)
	if rr.Code != http.StatusCreated {
		t.Fatalf("create item expected 201, got %d: %s", rr.Code, rr.Body.String())
	}
	var item itemResponse
	decode(t, rr, &item)
	if item.Urgency != "warning" || item.DaysUntilExpiry != 1 {
		t.Fatalf("expected warning/1 day against pinned clock, got %s/%d", item.Urgency, item.DaysUntilExpiry)
	}

	// Search by item name surfaces the parent category.
	rr = do(t, srv, http.MethodGet, "/api/categories?q=milk", "")
	decode(t, rr, &categories)
	if len(categories) != 1 || categories[0].Name != "Refrigerator" {
		t.Fatalf("expected Refrigerator via item match, got %+v", categories)
	}

	// Two decrements: 2 -> 1 -> gone.
	path := fmt.Sprintf("/api/items/%d/decrement", item.ID)
	var qty quantityResponse
	rr = do(t, srv, http.MethodPost, path, "")
	decode(t, rr, &qty)
	if qty.Quantity != 1 || qty.Deleted {
		t.Fatalf("first decrement expected quantity 1, got %+v", qty)
	}
	rr = do(t, srv, http.MethodPost, path, "")
	decode(t, rr, &qty)
	if !qty.Deleted {
		t.Fatalf("second decrement expected deletion, got %+v", qty)
	}
	if rr = do(t, srv, http.MethodPost, path, ""); rr.Code != http.StatusNotFound {
		t.Fatalf("decrement of deleted item expected 404, got %d", rr.Code)
	}

	// Category delete cascades.
	body = fmt.Sprintf(`{"category_id":%d,"name":"Eggs","quantity":1,"expires_on":"2026-09-15"}`, fridgeID)
	if rr = do(t, srv, http.MethodPost, "/api/items", body); rr.Code != http.StatusCreated {
		t.Fatalf("create item status=%d", rr.Code)
	}
	if rr = do(t, srv, http.MethodDelete, fmt.Sprintf("/api/categories/%d", fridgeID), ""); rr.Code != http.StatusOK {
		t.Fatalf("delete category status=%d", rr.Code)
	}
	rr = do(t, srv, http.MethodGet, "/api/categories?q=eggs", "")
	decode(t, rr, &categories)
	if len(categories) != 0 {
		t.Fatalf("cascade left items findable: %+v", categories)
	}
}

func TestTaskEndpoints(t *testing.T) {
	srv := newTestServer(t)

	// Blank title is allowed.
	rr := do(t, srv, http.MethodPost, "/api/tasks", `{"title":"","priority":""}`)
	if rr.Code != http.StatusCreated {
		t.Fatalf("blank task expected 201, got %d: %s", rr.Code, rr.Body.String())
	}
	var blank taskResponse
	decode(t, rr, &blank)
	if blank.Priority != "None" || blank.Done {
		t.Fatalf("expected None/incomplete defaults, got %+v", blank)
	}

	// Unknown priority is rejected.
	if rr = do(t, srv, http.MethodPost, "/api/tasks", `{"title":"x","priority":"Urgent"}`); rr.Code != http.StatusUnprocessableEntity {
		t.Fatalf("bad priority expected 422, got %d", rr.Code)
	}

	rr = do(t, srv, http.MethodPost, "/api/tasks", `{"title":"A","priority":"High"}`)
	var a taskResponse
	decode(t, rr, &a)

	// Listing sorts High before None, incomplete before done.
	rr = do(t, srv, http.MethodPost, fmt.Sprintf("/api/tasks/%d/toggle", blank.ID), "")
	if rr.Code != http.StatusOK {
		t.Fatalf("toggle status=%d", rr.Code)
	}
	rr = do(t, srv, http.MethodGet, "/api/tasks", "")
	var tasks []taskResponse
	decode(t, rr, &tasks)
	if len(tasks) != 2 || tasks[0].ID != a.ID || !tasks[1].Done {
		t.Fatalf("unexpected order: %+v", tasks)
	}

	rr = do(t, srv, http.MethodPost, "/api/tasks/delete", fmt.Sprintf(`{"ids":[%d,%d]}`, a.ID, blank.ID))
	if rr.Code != http.StatusOK {
		t.Fatalf("delete status=%d", rr.Code)
	}
	rr = do(t, srv, http.MethodGet, "/api/tasks", "")
	decode(t, rr, &tasks)
	if len(tasks) != 0 {
		t.Fatalf("expected no tasks, got %+v", tasks)
	}
}

func TestToggleUnknownTask(t *testing.T) {
	srv := newTestServer(t)
	if rr := do(t, srv, http.MethodPost, "/api/tasks/999/toggle", ""); rr.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rr.Code)
	}
}
