package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/taskforge/task-api/internal/api/middleware"
	"github.com/taskforge/task-api/internal/core/domain"
	"github.com/taskforge/task-api/internal/core/ports"
)

type stubTaskService struct {
	task    *domain.Task
	listRes *ports.ListTasksResult
	err     error

	lastWho    domain.Identity
	lastID     string
	lastCreate ports.CreateTaskInput
	lastUpdate ports.UpdateTaskInput
	lastList   ports.ListTasksInput
}

func (s *stubTaskService) Create(_ context.Context, who domain.Identity, in ports.CreateTaskInput) (*domain.Task, error) {
	s.lastWho, s.lastCreate = who, in
	return s.task, s.err
}

func (s *stubTaskService) Get(_ context.Context, who domain.Identity, id string) (*domain.Task, error) {
	s.lastWho, s.lastID = who, id
	return s.task, s.err
}

func (s *stubTaskService) List(_ context.Context, who domain.Identity, in ports.ListTasksInput) (*ports.ListTasksResult, error) {
	s.lastWho, s.lastList = who, in
	return s.listRes, s.err
}

func (s *stubTaskService) Update(_ context.Context, who domain.Identity, id string, in ports.UpdateTaskInput) (*domain.Task, error) {
	s.lastWho, s.lastID, s.lastUpdate = who, id, in
	return s.task, s.err
}

func (s *stubTaskService) Delete(_ context.Context, who domain.Identity, id string) error {
	s.lastWho, s.lastID = who, id
	return s.err
}

func sampleTask() *domain.Task {
	now := time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC)
	return &domain.Task{
		ID:        "t-1",
		Title:     "Write report",
		Priority:  domain.PriorityLow,
		Status:    domain.StatusPending,
		UserID:    "u-1",
		CreatedAt: now,
		UpdatedAt: now,
	}
}

func newTaskTestContext(t *testing.T, method, target, body string) (echo.Context, *httptest.ResponseRecorder) {
	t.Helper()
	e := echo.New()
	e.Validator = NewValidator()
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.Set(middleware.CtxUserID, "u-1")
	c.Set(middleware.CtxRole, domain.RoleUser)
	return c, rec
}

func TestTaskHandler_Create(t *testing.T) {
	svc := &stubTaskService{task: sampleTask()}
	h := NewTaskHandler(svc)

	body := `{"title":"Write report","priority":"Low"}`
	c, rec := newTaskTestContext(t, http.MethodPost, "/api/tasks", body)

	if err := h.Create(c); err != nil {
		t.Fatalf("create: %v", err)
	}
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}
	if svc.lastWho.UserID != "u-1" {
		t.Fatalf("identity not forwarded: %+v", svc.lastWho)
	}
	if svc.lastCreate.Title != "Write report" {
		t.Fatalf("title not forwarded: %q", svc.lastCreate.Title)
	}

	var resp taskResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.ID != "t-1" || resp.Status != "Pending" {
		t.Fatalf("unexpected response: %+v", resp)
	}
}

func TestTaskHandler_Create_ValidationFailures(t *testing.T) {
	h := NewTaskHandler(&stubTaskService{task: sampleTask()})

	cases := []struct {
		name string
		body string
	}{
		{"missing title", `{"priority":"Low"}`},
		{"bad priority", `{"title":"x","priority":"Urgent"}`},
		{"bad status", `{"title":"x","status":"Done"}`},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			c, _ := newTaskTestContext(t, http.MethodPost, "/api/tasks", tc.body)
			err := h.Create(c)
			he, ok := err.(*echo.HTTPError)
			if !ok || he.Code != http.StatusBadRequest {
				t.Fatalf("expected 400, got %v", err)
			}
		})
	}
}

func TestTaskHandler_Create_MissingIdentity(t *testing.T) {
	h := NewTaskHandler(&stubTaskService{task: sampleTask()})

	e := echo.New()
	e.Validator = NewValidator()
	req := httptest.NewRequest(http.MethodPost, "/api/tasks", strings.NewReader(`{"title":"x"}`))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	c := e.NewContext(req, httptest.NewRecorder())

	err := h.Create(c)
	he, ok := err.(*echo.HTTPError)
	if !ok || he.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 without auth claims, got %v", err)
	}
}

func TestTaskHandler_List(t *testing.T) {
	svc := &stubTaskService{listRes: &ports.ListTasksResult{
		Items:      []*domain.Task{sampleTask()},
		Total:      1,
		Page:       2,
		Limit:      10,
		TotalPages: 1,
	}}
	h := NewTaskHandler(svc)

	target := "/api/tasks?status=Pending&priority=Low&search=report&page=2&limit=10"
	c, rec := newTaskTestContext(t, http.MethodGet, target, "")

	if err := h.List(c); err != nil {
		t.Fatalf("list: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if svc.lastList.Status != "Pending" || svc.lastList.Priority != "Low" || svc.lastList.Search != "report" {
		t.Fatalf("filters not forwarded: %+v", svc.lastList)
	}
	if svc.lastList.Page != 2 || svc.lastList.Limit != 10 {
		t.Fatalf("pagination not forwarded: %+v", svc.lastList)
	}

	var resp listTasksResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if len(resp.Data) != 1 || resp.Pagination.Total != 1 {
		t.Fatalf("unexpected response: %+v", resp)
	}
}

func TestTaskHandler_List_DueDateFilters(t *testing.T) {
	svc := &stubTaskService{listRes: &ports.ListTasksResult{}}
	h := NewTaskHandler(svc)

	c, _ := newTaskTestContext(t, http.MethodGet,
		"/api/tasks?due_from=2026-03-01T00:00:00Z&due_to=2026-03-31T00:00:00Z", "")
	if err := h.List(c); err != nil {
		t.Fatalf("list: %v", err)
	}
	if svc.lastList.DueFrom.IsZero() || svc.lastList.DueTo.IsZero() {
		t.Fatalf("due date bounds not forwarded: %+v", svc.lastList)
	}

	c, _ = newTaskTestContext(t, http.MethodGet, "/api/tasks?due_from=yesterday", "")
	err := h.List(c)
	he, ok := err.(*echo.HTTPError)
	if !ok || he.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for invalid due_from, got %v", err)
	}
}

func TestTaskHandler_Get(t *testing.T) {
	svc := &stubTaskService{task: sampleTask()}
	h := NewTaskHandler(svc)

	c, rec := newTaskTestContext(t, http.MethodGet, "/api/tasks/t-1", "")
	c.SetParamNames("id")
	c.SetParamValues("t-1")

	if err := h.Get(c); err != nil {
		t.Fatalf("get: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if svc.lastID != "t-1" {
		t.Fatalf("id not forwarded: %q", svc.lastID)
	}
}

func TestTaskHandler_Get_NotFound(t *testing.T) {
	h := NewTaskHandler(&stubTaskService{err: domain.ErrTaskNotFound})

	c, _ := newTaskTestContext(t, http.MethodGet, "/api/tasks/missing", "")
	c.SetParamNames("id")
	c.SetParamValues("missing")

	if err := h.Get(c); !errors.Is(err, domain.ErrTaskNotFound) {
		t.Fatalf("expected task not found error to propagate, got %v", err)
	}
}

func TestTaskHandler_Update(t *testing.T) {
	updated := sampleTask()
	updated.Status = domain.StatusCompleted
	svc := &stubTaskService{task: updated}
	h := NewTaskHandler(svc)

	c, rec := newTaskTestContext(t, http.MethodPut, "/api/tasks/t-1", `{"status":"Completed"}`)
	c.SetParamNames("id")
	c.SetParamValues("t-1")

	if err := h.Update(c); err != nil {
		t.Fatalf("update: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if svc.lastUpdate.Status == nil || *svc.lastUpdate.Status != "Completed" {
		t.Fatalf("status not forwarded: %+v", svc.lastUpdate)
	}
	if svc.lastUpdate.Title != nil {
		t.Fatalf("absent fields must stay nil: %+v", svc.lastUpdate)
	}
}

func TestTaskHandler_Delete(t *testing.T) {
	svc := &stubTaskService{}
	h := NewTaskHandler(svc)

	c, rec := newTaskTestContext(t, http.MethodDelete, "/api/tasks/t-1", "")
	c.SetParamNames("id")
	c.SetParamValues("t-1")

	if err := h.Delete(c); err != nil {
		t.Fatalf("delete: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp deletedResponse
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode response: %v", err)
	}
	if resp.Message != "task deleted successfully" {
		t.Fatalf("unexpected message: %q", resp.Message)
	}
}
