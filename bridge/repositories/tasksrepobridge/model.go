package tasksrepobridge

import (
	"github.com/jrazmi/tasker/core/repositories/tasksrepo"
	"github.com/jrazmi/tasker/sdk/validation"
)

// Task is the wire form of a task.
type Task struct {
	ID          string   `json:"id"`
	Title       string   `json:"title"`
	Description string   `json:"description"`
	DueDate     *string  `json:"due_date"`
	Status      string   `json:"status"`
	Priority    string   `json:"priority"`
	UserID      string   `json:"user_id"`
	Reminder    *string  `json:"reminder"`
	SharedWith  []string `json:"shared_with"`
	CreatedAt   string   `json:"created_at"`
	UpdatedAt   string   `json:"updated_at"`
}

type reminderRequest struct {
	Reminder string `json:"reminder"`
}

type shareRequest struct {
	SharedUserID string `json:"shared_user_id"`
}

// MarshalToBridge converts a repository task to its wire form.
func MarshalToBridge(t tasksrepo.Task) Task {
	shared := t.SharedWith
	if shared == nil {
		shared = []string{}
	}

	return Task{
		ID:          t.TaskID,
		Title:       t.Title,
		Description: t.Description,
		DueDate:     validation.FormatDatePtr(t.DueDate),
		Status:      string(t.Status),
		Priority:    string(t.Priority),
		UserID:      t.UserID,
		Reminder:    t.Reminder,
		SharedWith:  shared,
		CreatedAt:   validation.FormatTimestamp(t.CreatedAt),
		UpdatedAt:   validation.FormatTimestamp(t.UpdatedAt),
	}
}

func MarshalListToBridge(tasks []tasksrepo.Task) []Task {
	out := make([]Task, len(tasks))
	for i, t := range tasks {
		out[i] = MarshalToBridge(t)
	}
	return out
}
