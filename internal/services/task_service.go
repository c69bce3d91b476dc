package services

import (
	"context"
	"fmt"

	"casa/internal/core"
	"casa/internal/storage"
)

// TaskService implements the to-do mutation operations and the sorted view.
type TaskService struct {
	storage *storage.SQLiteRepository
}

func NewTaskService(storage *storage.SQLiteRepository) *TaskService {
	return &TaskService{storage: storage}
}

// AddTask inserts a task with the given title and priority. The title is
// not validated: the upstream behavior allows blank titles and keeping
// that is deliberate. An empty priority defaults to None.
func (s *TaskService) AddTask(ctx context.Context, title string, priority core.Priority) (core.Task, error) {
	if priority == "" {
		priority = core.PriorityNone
	}
	task := core.Task{Title: title, Priority: priority}
	if err := task.Validate(); err != nil {
		return core.Task{}, fmt.Errorf("validate task: %w", err)
	}
	saved, err := s.storage.AddTask(ctx, task)
	if err != nil {
		return core.Task{}, fmt.Errorf("save task: %w", err)
	}
	return saved, nil
}

// List returns tasks in display order: incomplete first, then by priority
// rank, then by creation order.
func (s *TaskService) List(ctx context.Context) ([]core.Task, error) {
	tasks, err := s.storage.ListTasks(ctx)
	if err != nil {
		return nil, fmt.Errorf("list tasks: %w", err)
	}
	return core.SortTasks(tasks), nil
}

// Toggle flips the done flag of a task.
func (s *TaskService) Toggle(ctx context.Context, id int64) (core.Task, error) {
	task, err := s.storage.ToggleTask(ctx, id)
	if err != nil {
		return core.Task{}, fmt.Errorf("toggle task: %w", err)
	}
	return task, nil
}

// DeleteTasks removes tasks by stable id, never by view position.
func (s *TaskService) DeleteTasks(ctx context.Context, ids []int64) error {
	if err := s.storage.DeleteTasks(ctx, ids); err != nil {
		return fmt.Errorf("delete tasks: %w", err)
	}
	return nil
}
