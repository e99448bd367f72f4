// Package tasksmongostore persists tasks in a mongo collection.
package tasksmongostore

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jrazmi/tasker/core/repositories"
	"github.com/jrazmi/tasker/core/repositories/tasksrepo"
	"github.com/jrazmi/tasker/infrastructure/mongodb"
	"github.com/jrazmi/tasker/schema"
	"github.com/jrazmi/tasker/sdk/logger"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// document is the stored shape. The ObjectID stays inside this package.
type document struct {
	ID          primitive.ObjectID `bson:"_id,omitempty"`
	UserID      string             `bson:"user_id"`
	Title       string             `bson:"title"`
	Description string             `bson:"description"`
	DueDate     *time.Time         `bson:"due_date"`
	Status      string             `bson:"status"`
	Priority    string             `bson:"priority"`
	Reminder    *string            `bson:"reminder"`
	SharedWith  []string           `bson:"shared_with"`
	CreatedAt   time.Time          `bson:"created_at"`
	UpdatedAt   time.Time          `bson:"updated_at"`
}

func fromTask(id primitive.ObjectID, t tasksrepo.Task) document {
	shared := t.SharedWith
	if shared == nil {
		shared = []string{}
	}
	return document{
		ID:          id,
		UserID:      t.UserID,
		Title:       t.Title,
		Description: t.Description,
		DueDate:     t.DueDate,
		Status:      string(t.Status),
		Priority:    string(t.Priority),
		Reminder:    t.Reminder,
		SharedWith:  shared,
		CreatedAt:   t.CreatedAt,
		UpdatedAt:   t.UpdatedAt,
	}
}

func (d document) toTask() tasksrepo.Task {
	var due *time.Time
	if d.DueDate != nil {
		u := d.DueDate.UTC()
		due = &u
	}
	return tasksrepo.Task{
		TaskID:      d.ID.Hex(),
		UserID:      d.UserID,
		Title:       d.Title,
		Description: d.Description,
		DueDate:     due,
		Status:      tasksrepo.Status(d.Status),
		Priority:    tasksrepo.Priority(d.Priority),
		Reminder:    d.Reminder,
		SharedWith:  d.SharedWith,
		CreatedAt:   d.CreatedAt.UTC(),
		UpdatedAt:   d.UpdatedAt.UTC(),
	}
}

type Store struct {
	log  *logger.Logger
	coll *mongo.Collection
}

func NewStore(log *logger.Logger, db *mongodb.Database) *Store {
	return &Store{
		log:  log,
		coll: db.Collection(schema.TasksCollection),
	}
}

func (s *Store) Create(ctx context.Context, input tasksrepo.NewTask) (tasksrepo.Task, error) {
	doc := fromTask(primitive.NewObjectID(), tasksrepo.Task{
		UserID:      input.UserID,
		Title:       input.Title,
		Description: input.Description,
		DueDate:     input.DueDate,
		Status:      input.Status,
		Priority:    input.Priority,
		Reminder:    input.Reminder,
		SharedWith:  input.SharedWith,
		CreatedAt:   input.CreatedAt,
		UpdatedAt:   input.CreatedAt,
	})

	if _, err := s.coll.InsertOne(ctx, doc); err != nil {
		return tasksrepo.Task{}, mapError(err)
	}

	return doc.toTask(), nil
}

func (s *Store) GetByID(ctx context.Context, taskID string) (tasksrepo.Task, error) {
	id, err := primitive.ObjectIDFromHex(taskID)
	if err != nil {
		return tasksrepo.Task{}, repositories.ErrNotFound
	}

	var doc document
	if err := s.coll.FindOne(ctx, bson.M{"_id": id}).Decode(&doc); err != nil {
		return tasksrepo.Task{}, mapError(err)
	}

	return doc.toTask(), nil
}

func (s *Store) ListByOwner(ctx context.Context, userID string) ([]tasksrepo.Task, error) {
	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}, {Key: "_id", Value: -1}})

	cursor, err := s.coll.Find(ctx, bson.M{"user_id": userID}, opts)
	if err != nil {
		return nil, mapError(err)
	}
	defer cursor.Close(ctx)

	var docs []document
	if err := cursor.All(ctx, &docs); err != nil {
		return nil, mapError(err)
	}

	tasks := make([]tasksrepo.Task, 0, len(docs))
	for _, d := range docs {
		tasks = append(tasks, d.toTask())
	}
	return tasks, nil
}

// Update replaces the whole document.
func (s *Store) Update(ctx context.Context, task tasksrepo.Task) error {
	id, err := primitive.ObjectIDFromHex(task.TaskID)
	if err != nil {
		return repositories.ErrNotFound
	}

	res, err := s.coll.ReplaceOne(ctx, bson.M{"_id": id}, fromTask(id, task))
	if err != nil {
		return mapError(err)
	}
	if res.MatchedCount == 0 {
		return repositories.ErrNotFound
	}

	return nil
}

func (s *Store) Delete(ctx context.Context, taskID string) error {
	id, err := primitive.ObjectIDFromHex(taskID)
	if err != nil {
		return repositories.ErrNotFound
	}

	res, err := s.coll.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return mapError(err)
	}
	if res.DeletedCount == 0 {
		return repositories.ErrNotFound
	}

	return nil
}

func mapError(err error) error {
	err = mongodb.HandleMongoError(err)
	switch {
	case errors.Is(err, mongodb.ErrDBNotFound):
		return repositories.ErrNotFound
	case errors.Is(err, mongodb.ErrDBDuplicatedEntry):
		return repositories.ErrDuplicate
	}
	return fmt.Errorf("tasks store: %w", err)
}
