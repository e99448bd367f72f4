package tasksrepo

import (
	"encoding/json"
	"time"

	"github.com/jrazmi/tasker/sdk/validation"
)

// Status is where a task stands. Only Pending and Completed exist.
type Status string

const (
	StatusPending   Status = "Pending"
	StatusCompleted Status = "Completed"
)

// Valid reports whether s is a known status.
func (s Status) Valid() bool {
	return validation.OneOf(s, StatusPending, StatusCompleted)
}

// Priority ranks a task. Medium is the default.
type Priority string

const (
	PriorityLow    Priority = "Low"
	PriorityMedium Priority = "Medium"
	PriorityHigh   Priority = "High"
)

// Valid reports whether p is a known priority.
func (p Priority) Valid() bool {
	return validation.OneOf(p, PriorityLow, PriorityMedium, PriorityHigh)
}

// Task is a stored task. DueDate is a UTC calendar date.
type Task struct {
	TaskID      string     `db:"task_id"`
	UserID      string     `db:"user_id"`
	Title       string     `db:"title"`
	Description string     `db:"description"`
	DueDate     *time.Time `db:"due_date"`
	Status      Status     `db:"status"`
	Priority    Priority   `db:"priority"`
	Reminder    *string    `db:"reminder"`
	SharedWith  []string   `db:"shared_with"`
	CreatedAt   time.Time  `db:"created_at"`
	UpdatedAt   time.Time  `db:"updated_at"`
}

// NewTask is a validated task ready to persist. The store assigns the id and
// sets UpdatedAt to CreatedAt.
type NewTask struct {
	UserID      string
	Title       string
	Description string
	DueDate     *time.Time
	Status      Status
	Priority    Priority
	Reminder    *string
	SharedWith  []string
	CreatedAt   time.Time
}

// CreateTask is the creation payload.
type CreateTask struct {
	Title       string     `json:"title"`
	Description string     `json:"description"`
	DueDate     string     `json:"due_date"`
	Status      string     `json:"status"`
	Priority    string     `json:"priority"`
	Reminder    string     `json:"reminder"`
	SharedWith  SharedWith `json:"shared_with"`
}

// Patch is a partial update. Only fields present in the payload are applied.
type Patch struct {
	Title       validation.Optional[string]          `json:"title"`
	Description validation.Optional[string]          `json:"description"`
	DueDate     validation.Optional[json.RawMessage] `json:"due_date"`
	Status      validation.Optional[string]          `json:"status"`
	Priority    validation.Optional[string]          `json:"priority"`
	Reminder    validation.Optional[*string]         `json:"reminder"`
	SharedWith  validation.Optional[SharedWith]      `json:"shared_with"`
}

// SharedWith is a set of user ids. It decodes from a JSON array of strings
// or from a comma separated string.
type SharedWith []string

func (s *SharedWith) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*s = nil
		return nil
	}

	var list []string
	if err := json.Unmarshal(data, &list); err == nil {
		*s = validation.AppendUnique(nil, trimAll(list)...)
		return nil
	}

	var csv string
	if err := json.Unmarshal(data, &csv); err == nil {
		*s = validation.AppendUnique(nil, validation.SplitList(csv, ",")...)
		return nil
	}

	return &FieldError{Field: "shared_with", Message: "Invalid shared_with. Expected a list of user ids or a comma separated string."}
}

const (
	msgMissingRequired = "Missing required fields: title and due_date"
	msgInvalidDate     = "Invalid date format. Expected YYYY-MM-DD."
	msgInvalidStatus   = "Invalid status. Expected Pending or Completed."
	msgInvalidPriority = "Invalid priority. Expected Low, Medium or High."
	msgInvalidReminder = "Invalid reminder format. Expected format is YYYY-MM-DD HH:MM"
)

// FieldError reports a single rejected field. Message is safe to show to
// the client.
type FieldError struct {
	Field   string
	Message string
}

func (e *FieldError) Error() string {
	return e.Message
}

func (e *FieldError) Is(target error) bool {
	return target == ErrInvalidField
}
