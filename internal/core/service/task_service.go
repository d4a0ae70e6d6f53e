package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/taskforge/task-api/internal/core/domain"
	"github.com/taskforge/task-api/internal/core/ports"
)

const (
	defaultPageLimit = 20
	maxPageLimit     = 100
)

// TaskService implements task CRUD with per-owner scoping. Non-admin callers
// only ever see their own tasks; foreign task ids surface as not-found so
// existence cannot be probed.
type TaskService struct {
	repo ports.TaskRepository
	log  zerolog.Logger
}

func NewTaskService(repo ports.TaskRepository, log zerolog.Logger) *TaskService {
	return &TaskService{repo: repo, log: log}
}

// ownerScope returns the user_id filter applied to repository calls:
// empty for admins (no filter), the caller's id otherwise.
func ownerScope(who domain.Identity) string {
	if who.IsAdmin() {
		return ""
	}
	return who.UserID
}

func (s *TaskService) Create(ctx context.Context, who domain.Identity, in ports.CreateTaskInput) (*domain.Task, error) {
	priority := domain.TaskPriority(in.Priority)
	if priority == "" {
		priority = domain.PriorityLow
	}
	status := domain.TaskStatus(in.Status)
	if status == "" {
		status = domain.StatusPending
	}

	now := time.Now().UTC()
	task := &domain.Task{
		ID:          uuid.New().String(),
		Title:       in.Title,
		Description: in.Description,
		DueDate:     in.DueDate,
		Priority:    priority,
		Status:      status,
		UserID:      who.UserID,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	if err := s.repo.Create(ctx, task); err != nil {
		s.log.Error().Err(err).Str("user_id", who.UserID).Msg("failed to create task")
		return nil, err
	}

	s.log.Info().Str("task_id", task.ID).Str("user_id", who.UserID).Msg("task created")
	return task, nil
}

func (s *TaskService) Get(ctx context.Context, who domain.Identity, id string) (*domain.Task, error) {
	return s.repo.FindByID(ctx, id, ownerScope(who))
}

func (s *TaskService) List(ctx context.Context, who domain.Identity, in ports.ListTasksInput) (*ports.ListTasksResult, error) {
	page := in.Page
	if page < 1 {
		page = 1
	}
	limit := in.Limit
	if limit < 1 {
		limit = defaultPageLimit
	}
	if limit > maxPageLimit {
		limit = maxPageLimit
	}

	items, total, err := s.repo.List(ctx, ports.TaskFilter{
		UserID:   ownerScope(who),
		Status:   in.Status,
		Priority: in.Priority,
		Search:   in.Search,
		DueFrom:  in.DueFrom,
		DueTo:    in.DueTo,
		Page:     page,
		Limit:    limit,
	})
	if err != nil {
		return nil, err
	}

	totalPages := int(total) / limit
	if int(total)%limit != 0 {
		totalPages++
	}

	return &ports.ListTasksResult{
		Items:      items,
		Total:      total,
		Page:       page,
		Limit:      limit,
		TotalPages: totalPages,
	}, nil
}

func (s *TaskService) Update(ctx context.Context, who domain.Identity, id string, in ports.UpdateTaskInput) (*domain.Task, error) {
	task, err := s.repo.FindByID(ctx, id, ownerScope(who))
	if err != nil {
		return nil, err
	}

	if in.Title != nil {
		task.Title = *in.Title
	}
	if in.Description != nil {
		task.Description = *in.Description
	}
	if in.DueDate != nil {
		task.DueDate = in.DueDate
	}
	if in.Priority != nil {
		task.Priority = domain.TaskPriority(*in.Priority)
	}
	if in.Status != nil {
		task.Status = domain.TaskStatus(*in.Status)
	}
	task.UpdatedAt = time.Now().UTC()

	if err := s.repo.Update(ctx, task); err != nil {
		return nil, err
	}
	return task, nil
}

func (s *TaskService) Delete(ctx context.Context, who domain.Identity, id string) error {
	if err := s.repo.Delete(ctx, id, ownerScope(who)); err != nil {
		return err
	}
	s.log.Info().Str("task_id", id).Str("user_id", who.UserID).Msg("task deleted")
	return nil
}
