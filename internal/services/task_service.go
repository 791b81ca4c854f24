package services

import (
	"context"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"company-portal/internal/domain"
	apperrors "company-portal/internal/errors"
	"company-portal/internal/validation"
)

// taskServiceImpl implements the TaskService interface
type taskServiceImpl struct {
	*gateway
	validator *validation.TaskValidator
	newID     func() string
}

// NewTaskService creates a new TaskService instance
func NewTaskService(deps Dependencies) TaskService {
	return newTaskService(newGateway(deps), deps)
}

func newTaskService(g *gateway, deps Dependencies) *taskServiceImpl {
	return &taskServiceImpl{
		gateway:   g,
		validator: validation.NewTaskValidatorWithConfig(deps.Config),
		newID:     uuid.NewString,
	}
}

// persist reports a failed write without undoing the local change; the next
// Load reconciles the store with the backend. The token is resolved by the
// caller before the store is touched.
func (t *taskServiceImpl) persist(ctx context.Context, operation, id string, fn func(ctx context.Context) error) error {
	err := t.call(ctx, operation, fn)
	if err != nil && apperrors.ShouldLogError(err) {
		t.logger.Error("task change not persisted",
			zap.String("operation", operation),
			zap.String("task_id", id),
			zap.Error(err),
		)
	}
	return err
}

// Load replaces the store's tasks with the persisted list
func (t *taskServiceImpl) Load(ctx context.Context) ([]domain.Task, error) {
	token, err := t.token("list tasks")
	if err != nil {
		return nil, err
	}

	var tasks []domain.Task
	err = t.call(ctx, "list tasks", func(ctx context.Context) error {
		var err error
		tasks, err = t.backend.ListTasks(ctx, token)
		return err
	})
	if err != nil {
		return nil, err
	}

	if err := t.store.SetTasks(tasks); err != nil {
		return nil, err
	}
	return t.store.Tasks(), nil
}

// Add fills defaults, validates and appends the task. An empty id is
// replaced by a generated one.
func (t *taskServiceImpl) Add(ctx context.Context, task domain.Task) (*domain.Task, error) {
	task.Title = strings.TrimSpace(task.Title)
	if strings.TrimSpace(task.ID) == "" {
		task.ID = t.newID()
	}
	if task.Priority == "" {
		task.Priority = domain.PriorityMedium
	}
	if strings.TrimSpace(task.Category) == "" {
		task.Category = domain.DefaultCategory
	}
	if task.DueDate != nil {
		due := domain.DateOf(*task.DueDate)
		task.DueDate = &due
	}

	if err := t.validator.ValidateTask(task); err != nil {
		return nil, apperrors.NewValidationError("invalid task", err)
	}
	token, err := t.token("create task")
	if err != nil {
		return nil, err
	}
	if err := t.store.AddTask(task); err != nil {
		return nil, err
	}

	added := task.Clone()
	err = t.persist(ctx, "create task", task.ID, func(ctx context.Context) error {
		return t.backend.CreateTask(ctx, token, task)
	})
	return &added, err
}

// Toggle flips completion. An unknown id changes nothing and returns nil.
func (t *taskServiceImpl) Toggle(ctx context.Context, id string) (*domain.Task, error) {
	if _, ok := t.store.Task(id); !ok {
		return nil, nil
	}
	token, err := t.token("update task")
	if err != nil {
		return nil, err
	}

	t.store.ToggleTaskCompletion(id)
	task, ok := t.store.Task(id)
	if !ok {
		return nil, nil
	}

	err = t.persist(ctx, "update task", id, func(ctx context.Context) error {
		return t.backend.UpdateTask(ctx, token, task)
	})
	return &task, err
}

// Update merges the set fields into the task. An unknown id changes nothing.
func (t *taskServiceImpl) Update(ctx context.Context, id string, update domain.TaskUpdate) (*domain.Task, error) {
	if update.Title != nil {
		title := strings.TrimSpace(*update.Title)
		update.Title = &title
	}
	if err := t.validator.ValidateTaskUpdate(update); err != nil {
		return nil, apperrors.NewValidationError("invalid task", err)
	}
	if _, ok := t.store.Task(id); !ok {
		return nil, nil
	}
	token, err := t.token("update task")
	if err != nil {
		return nil, err
	}

	t.store.UpdateTask(id, update)
	task, ok := t.store.Task(id)
	if !ok {
		return nil, nil
	}

	err = t.persist(ctx, "update task", id, func(ctx context.Context) error {
		return t.backend.UpdateTask(ctx, token, task)
	})
	return &task, err
}

// Delete removes the task. An unknown id is a no-op.
func (t *taskServiceImpl) Delete(ctx context.Context, id string) error {
	if _, ok := t.store.Task(id); !ok {
		return nil
	}
	token, err := t.token("delete task")
	if err != nil {
		return err
	}

	t.store.DeleteTask(id)
	return t.persist(ctx, "delete task", id, func(ctx context.Context) error {
		return t.backend.DeleteTask(ctx, token, id)
	})
}
