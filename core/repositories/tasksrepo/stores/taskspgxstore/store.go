// Package taskspgxstore persists tasks in postgres.
package taskspgxstore

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jrazmi/tasker/core/repositories"
	"github.com/jrazmi/tasker/core/repositories/tasksrepo"
	"github.com/jrazmi/tasker/infrastructure/postgresdb"
	"github.com/jrazmi/tasker/sdk/logger"
)

const columns = `task_id, user_id, title, description, due_date, status, priority,
	reminder, shared_with, created_at, updated_at`

type Store struct {
	log  *logger.Logger
	pool *postgresdb.Pool
}

func NewStore(log *logger.Logger, pool *postgresdb.Pool) *Store {
	return &Store{
		log:  log,
		pool: pool,
	}
}

func (s *Store) Create(ctx context.Context, input tasksrepo.NewTask) (tasksrepo.Task, error) {
	query := `INSERT INTO tasks (` + columns + `)
		VALUES (@task_id, @user_id, @title, @description, @due_date, @status, @priority,
			@reminder, @shared_with, @created_at, @created_at)
		RETURNING ` + columns

	args := pgx.NamedArgs{
		"task_id":     uuid.NewString(),
		"user_id":     input.UserID,
		"title":       input.Title,
		"description": input.Description,
		"due_date":    input.DueDate,
		"status":      string(input.Status),
		"priority":    string(input.Priority),
		"reminder":    input.Reminder,
		"shared_with": nonNil(input.SharedWith),
		"created_at":  input.CreatedAt,
	}

	rows, err := s.pool.Query(ctx, query, args)
	if err != nil {
		return tasksrepo.Task{}, mapError(err)
	}
	defer rows.Close()

	task, err := pgx.CollectOneRow(rows, pgx.RowToStructByName[tasksrepo.Task])
	if err != nil {
		return tasksrepo.Task{}, mapError(err)
	}

	return task, nil
}

func (s *Store) GetByID(ctx context.Context, taskID string) (tasksrepo.Task, error) {
	query := `SELECT ` + columns + `
		FROM tasks
		WHERE task_id = @task_id`

	rows, err := s.pool.Query(ctx, query, pgx.NamedArgs{"task_id": taskID})
	if err != nil {
		return tasksrepo.Task{}, mapError(err)
	}
	defer rows.Close()

	task, err := pgx.CollectOneRow(rows, pgx.RowToStructByName[tasksrepo.Task])
	if err != nil {
		return tasksrepo.Task{}, mapError(err)
	}

	return task, nil
}

func (s *Store) ListByOwner(ctx context.Context, userID string) ([]tasksrepo.Task, error) {
	query := `SELECT ` + columns + `
		FROM tasks
		WHERE user_id = @user_id
		ORDER BY created_at DESC, task_id DESC`

	rows, err := s.pool.Query(ctx, query, pgx.NamedArgs{"user_id": userID})
	if err != nil {
		return nil, mapError(err)
	}
	defer rows.Close()

	tasks, err := pgx.CollectRows(rows, pgx.RowToStructByName[tasksrepo.Task])
	if err != nil {
		return nil, mapError(err)
	}

	return tasks, nil
}

// Update writes every mutable column of task.
func (s *Store) Update(ctx context.Context, task tasksrepo.Task) error {
	query := `UPDATE tasks SET
			title = @title,
			description = @description,
			due_date = @due_date,
			status = @status,
			priority = @priority,
			reminder = @reminder,
			shared_with = @shared_with,
			updated_at = @updated_at
		WHERE task_id = @task_id`

	args := pgx.NamedArgs{
		"task_id":     task.TaskID,
		"title":       task.Title,
		"description": task.Description,
		"due_date":    task.DueDate,
		"status":      string(task.Status),
		"priority":    string(task.Priority),
		"reminder":    task.Reminder,
		"shared_with": nonNil(task.SharedWith),
		"updated_at":  task.UpdatedAt,
	}

	tag, err := s.pool.Exec(ctx, query, args)
	if err != nil {
		return mapError(err)
	}
	if tag.RowsAffected() == 0 {
		return repositories.ErrNotFound
	}

	return nil
}

func (s *Store) Delete(ctx context.Context, taskID string) error {
	tag, err := s.pool.Exec(ctx, `DELETE FROM tasks WHERE task_id = @task_id`, pgx.NamedArgs{"task_id": taskID})
	if err != nil {
		return mapError(err)
	}
	if tag.RowsAffected() == 0 {
		return repositories.ErrNotFound
	}

	return nil
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}

func mapError(err error) error {
	err = postgresdb.HandlePgError(err)
	switch {
	case errors.Is(err, postgresdb.ErrDBNotFound):
		return repositories.ErrNotFound
	case errors.Is(err, postgresdb.ErrDBDuplicatedEntry):
		return repositories.ErrDuplicate
	}
	return fmt.Errorf("tasks store: %w", err)
}
