package tasksmongostore

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/jrazmi/tasker/core/repositories"
	"github.com/jrazmi/tasker/core/repositories/tasksrepo"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestDocument_RoundTrip(t *testing.T) {
	due := time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC)
	reminder := "2024-01-15 09:00"
	stamp := time.Date(2024, 1, 10, 8, 0, 0, 0, time.UTC)

	id := primitive.NewObjectID()
	in := tasksrepo.Task{
		TaskID:     id.Hex(),
		UserID:     "u1",
		Title:      "Buy milk",
		DueDate:    &due,
		Status:     tasksrepo.StatusPending,
		Priority:   tasksrepo.PriorityHigh,
		Reminder:   &reminder,
		SharedWith: []string{"u2"},
		CreatedAt:  stamp,
		UpdatedAt:  stamp,
	}

	raw, err := bson.Marshal(fromTask(id, in))
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}
	var doc document
	if err := bson.Unmarshal(raw, &doc); err != nil {
		t.Fatalf("unmarshal: %v", err)
	}
	out := doc.toTask()

	if out.TaskID != in.TaskID || out.Title != in.Title || out.Priority != in.Priority {
		t.Errorf("Unexpected task %+v", out)
	}
	if out.DueDate == nil || !out.DueDate.Equal(due) {
		t.Errorf("Expected due date %s, got %v", due, out.DueDate)
	}
	if out.Reminder == nil || *out.Reminder != reminder {
		t.Errorf("Expected reminder %s, got %v", reminder, out.Reminder)
	}
	if !out.UpdatedAt.Equal(stamp) {
		t.Errorf("Expected updated_at %s, got %s", stamp, out.UpdatedAt)
	}
}

func TestDocument_NilSharedWithStoredEmpty(t *testing.T) {
	doc := fromTask(primitive.NewObjectID(), tasksrepo.Task{})
	if doc.SharedWith == nil {
		t.Error("Expected shared_with stored as an empty array")
	}
}

func TestInvalidIDIsNotFound(t *testing.T) {
	s := &Store{}
	ctx := context.Background()

	if _, err := s.GetByID(ctx, "not-an-object-id"); !errors.Is(err, repositories.ErrNotFound) {
		t.Errorf("GetByID: expected ErrNotFound, got %v", err)
	}
	if err := s.Update(ctx, tasksrepo.Task{TaskID: "zzz"}); !errors.Is(err, repositories.ErrNotFound) {
		t.Errorf("Update: expected ErrNotFound, got %v", err)
	}
	if err := s.Delete(ctx, ""); !errors.Is(err, repositories.ErrNotFound) {
		t.Errorf("Delete: expected ErrNotFound, got %v", err)
	}
}
