package tasksrepo

import (
	"bytes"
	"encoding/json"
	"slices"
	"strings"
	"time"

	"github.com/jrazmi/tasker/sdk/validation"
)

// validateCreate checks a creation payload and builds the record to store.
func validateCreate(userID string, input CreateTask, now time.Time) (NewTask, error) {
	title := strings.TrimSpace(input.Title)
	if title == "" {
		return NewTask{}, &FieldError{Field: "title", Message: msgMissingRequired}
	}

	if validation.IsBlank(input.DueDate) {
		return NewTask{}, &FieldError{Field: "due_date", Message: msgMissingRequired}
	}
	due, err := validation.ParseDate(strings.TrimSpace(input.DueDate))
	if err != nil {
		return NewTask{}, &FieldError{Field: "due_date", Message: msgInvalidDate}
	}

	status := StatusPending
	if input.Status != "" {
		status = Status(input.Status)
		if !status.Valid() {
			return NewTask{}, &FieldError{Field: "status", Message: msgInvalidStatus}
		}
	}

	priority := PriorityMedium
	if input.Priority != "" {
		priority = Priority(input.Priority)
		if !priority.Valid() {
			return NewTask{}, &FieldError{Field: "priority", Message: msgInvalidPriority}
		}
	}

	var reminder *string
	if r := strings.TrimSpace(input.Reminder); r != "" {
		if !validation.ValidReminder(r) {
			return NewTask{}, &FieldError{Field: "reminder", Message: msgInvalidReminder}
		}
		reminder = &r
	}

	return NewTask{
		UserID:      userID,
		Title:       title,
		Description: input.Description,
		DueDate:     &due,
		Status:      status,
		Priority:    priority,
		Reminder:    reminder,
		SharedWith:  validation.AppendUnique([]string{}, input.SharedWith...),
		CreatedAt:   now,
	}, nil
}

// Resolve merges patch into task and returns the result. Every present field
// is validated before anything is applied, so on error task is untouched.
// UpdatedAt is left to the caller.
func Resolve(task Task, patch Patch) (Task, error) {
	out := task
	out.SharedWith = slices.Clone(task.SharedWith)

	if patch.Title.Set {
		title := strings.TrimSpace(patch.Title.Value)
		if title == "" {
			return task, &FieldError{Field: "title", Message: "Title cannot be blank."}
		}
		out.Title = title
	}

	if patch.Description.Set {
		out.Description = patch.Description.Value
	}

	if patch.DueDate.Set {
		due, err := parseDueDate(patch.DueDate.Value)
		if err != nil {
			return task, err
		}
		out.DueDate = &due
	}

	if patch.Status.Set {
		status := Status(patch.Status.Value)
		if !status.Valid() {
			return task, &FieldError{Field: "status", Message: msgInvalidStatus}
		}
		out.Status = status
	}

	if patch.Priority.Set {
		priority := Priority(patch.Priority.Value)
		if !priority.Valid() {
			return task, &FieldError{Field: "priority", Message: msgInvalidPriority}
		}
		out.Priority = priority
	}

	if patch.Reminder.Set {
		// null or blank clears the reminder
		r := strings.TrimSpace(validation.GetStringOrEmpty(patch.Reminder.Value))
		switch {
		case r == "":
			out.Reminder = nil
		case validation.ValidReminder(r):
			out.Reminder = &r
		default:
			return task, &FieldError{Field: "reminder", Message: msgInvalidReminder}
		}
	}

	if patch.SharedWith.Set {
		out.SharedWith = validation.AppendUnique([]string{}, patch.SharedWith.Value...)
	}

	return out, nil
}

// parseDueDate accepts "YYYY-MM-DD" or {"$date": "<ISO-8601>"}.
func parseDueDate(raw json.RawMessage) (time.Time, error) {
	invalid := &FieldError{Field: "due_date", Message: msgInvalidDate}

	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || raw[0] == 'n' {
		return time.Time{}, invalid
	}

	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		t, err := validation.ParseDate(strings.TrimSpace(s))
		if err != nil {
			return time.Time{}, invalid
		}
		return t, nil
	}

	var wrapped struct {
		Date *string `json:"$date"`
	}
	if err := json.Unmarshal(raw, &wrapped); err != nil || wrapped.Date == nil {
		return time.Time{}, invalid
	}

	t, err := validation.ParseISODate(*wrapped.Date)
	if err != nil {
		return time.Time{}, invalid
	}
	return t, nil
}

func trimAll(values []string) []string {
	out := make([]string, 0, len(values))
	for _, v := range values {
		out = append(out, strings.TrimSpace(v))
	}
	return out
}
