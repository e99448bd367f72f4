// Package schema contains the storage layouts for each backend: embedded
// SQL migrations for postgres and index definitions for mongo.
package schema

import (
	"embed"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MigrationsFS contains all SQL migration files from pgmigrations directory.
//
//go:embed pgmigrations/*.sql
var MigrationsFS embed.FS

// Collection names used by the mongo stores.
const (
	UsersCollection = "users"
	TasksCollection = "tasks"
)

// MongoIndexes returns the indexes each collection needs, keyed by
// collection name. Usernames are unique.
func MongoIndexes() map[string][]mongo.IndexModel {
	return map[string][]mongo.IndexModel{
		UsersCollection: {
			{
				Keys:    bson.D{{Key: "username", Value: 1}},
				Options: options.Index().SetName("users_username_unique").SetUnique(true),
			},
		},
		TasksCollection: {
			{
				Keys:    bson.D{{Key: "user_id", Value: 1}, {Key: "created_at", Value: -1}},
				Options: options.Index().SetName("tasks_user_id_created_at"),
			},
		},
	}
}
