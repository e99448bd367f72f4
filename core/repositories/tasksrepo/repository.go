// Package tasksrepo owns the task rules: validation, defaults, partial
// updates and the owner check that guards every operation.
package tasksrepo

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/jrazmi/tasker/core/repositories"
	"github.com/jrazmi/tasker/sdk/logger"
	"github.com/jrazmi/tasker/sdk/validation"
)

var (
	// ErrTaskNotFound covers both a missing task and one owned by someone
	// else. Callers cannot tell the two apart.
	ErrTaskNotFound = errors.New("task not found or unauthorized")
	ErrInvalidField = errors.New("invalid field")
)

// Storer defines the data storage interface for Task.
type Storer interface {
	Create(ctx context.Context, input NewTask) (Task, error)
	GetByID(ctx context.Context, taskID string) (Task, error)
	ListByOwner(ctx context.Context, userID string) ([]Task, error)
	Update(ctx context.Context, task Task) error
	Delete(ctx context.Context, taskID string) error
}

// Repository provides access to task storage.
type Repository struct {
	log    *logger.Logger
	storer Storer
	now    func() time.Time
}

// NewRepository creates a new Task repository
func NewRepository(log *logger.Logger, storer Storer) *Repository {
	return &Repository{
		log:    log,
		storer: storer,
		now:    time.Now,
	}
}

// Create validates input, applies defaults and stores the task for userID.
func (r *Repository) Create(ctx context.Context, userID string, input CreateTask) (Task, error) {
	nt, err := validateCreate(userID, input, r.timestamp())
	if err != nil {
		return Task{}, err
	}

	task, err := r.storer.Create(ctx, nt)
	if err != nil {
		return Task{}, fmt.Errorf("create task: %w", err)
	}

	r.log.InfoContext(ctx, "task created", "task_id", task.TaskID, "user_id", userID)
	return task, nil
}

// List returns the tasks owned by userID, newest first.
func (r *Repository) List(ctx context.Context, userID string) ([]Task, error) {
	tasks, err := r.storer.ListByOwner(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list tasks: %w", err)
	}
	if tasks == nil {
		tasks = []Task{}
	}
	return tasks, nil
}

// Get returns one task after the owner check.
func (r *Repository) Get(ctx context.Context, userID, taskID string) (Task, error) {
	task, err := r.storer.GetByID(ctx, taskID)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return Task{}, ErrTaskNotFound
		}
		return Task{}, fmt.Errorf("get task: %w", err)
	}

	if task.UserID != userID {
		return Task{}, ErrTaskNotFound
	}

	return task, nil
}

// Update applies patch to the task. Validation completes before the write.
func (r *Repository) Update(ctx context.Context, userID, taskID string, patch Patch) (Task, error) {
	return r.mutate(ctx, userID, taskID, func(t Task) (Task, error) {
		return Resolve(t, patch)
	})
}

// Complete marks the task Completed.
func (r *Repository) Complete(ctx context.Context, userID, taskID string) (Task, error) {
	return r.mutate(ctx, userID, taskID, func(t Task) (Task, error) {
		return Resolve(t, Patch{Status: validation.Some(string(StatusCompleted))})
	})
}

// SetReminder stores reminder as given. It must be YYYY-MM-DD HH:MM.
func (r *Repository) SetReminder(ctx context.Context, userID, taskID, reminder string) (Task, error) {
	if !validation.ValidReminder(reminder) {
		return Task{}, &FieldError{Field: "reminder", Message: msgInvalidReminder}
	}

	return r.mutate(ctx, userID, taskID, func(t Task) (Task, error) {
		t.Reminder = &reminder
		return t, nil
	})
}

// Share adds sharedUserID to the task's shared set. The id is not checked
// against existing users.
func (r *Repository) Share(ctx context.Context, userID, taskID, sharedUserID string) (Task, error) {
	sharedUserID = strings.TrimSpace(sharedUserID)
	if sharedUserID == "" {
		return Task{}, &FieldError{Field: "shared_user_id", Message: "Missing required field: shared_user_id"}
	}

	return r.mutate(ctx, userID, taskID, func(t Task) (Task, error) {
		t.SharedWith = validation.AppendUnique(append([]string{}, t.SharedWith...), sharedUserID)
		return t, nil
	})
}

// Delete removes the task. Deleting twice reports ErrTaskNotFound.
func (r *Repository) Delete(ctx context.Context, userID, taskID string) error {
	if _, err := r.Get(ctx, userID, taskID); err != nil {
		return err
	}

	if err := r.storer.Delete(ctx, taskID); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return ErrTaskNotFound
		}
		return fmt.Errorf("delete task: %w", err)
	}

	r.log.InfoContext(ctx, "task deleted", "task_id", taskID, "user_id", userID)
	return nil
}

// mutate is the shared read, owner check, change, write sequence. The last
// writer wins.
func (r *Repository) mutate(ctx context.Context, userID, taskID string, change func(Task) (Task, error)) (Task, error) {
	task, err := r.Get(ctx, userID, taskID)
	if err != nil {
		return Task{}, err
	}

	updated, err := change(task)
	if err != nil {
		return Task{}, err
	}
	updated.UpdatedAt = r.advance(task.UpdatedAt)

	if err := r.storer.Update(ctx, updated); err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return Task{}, ErrTaskNotFound
		}
		return Task{}, fmt.Errorf("update task: %w", err)
	}

	return updated, nil
}

// timestamp is the current time at the precision both backends keep.
func (r *Repository) timestamp() time.Time {
	return r.now().UTC().Truncate(time.Millisecond)
}

// advance returns a timestamp strictly after prev.
func (r *Repository) advance(prev time.Time) time.Time {
	now := r.timestamp()
	if !now.After(prev) {
		return prev.Add(time.Millisecond)
	}
	return now
}
