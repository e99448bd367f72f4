// Package tasksrepobridge exposes the caller's tasks over HTTP. Every route
// expects mid.Authenticate to have run.
package tasksrepobridge

import (
	"github.com/jrazmi/tasker/core/repositories/tasksrepo"
	"github.com/jrazmi/tasker/infrastructure/web"
	"github.com/jrazmi/tasker/sdk/logger"
)

// Config holds configuration for the Task bridge
type Config struct {
	Log        *logger.Logger
	Repository *tasksrepo.Repository
	Middleware []web.Middleware
}

// AddHttpRoutes registers the task routes on group.
func AddHttpRoutes(group *web.RouteGroup, cfg Config) {
	b := newBridge(cfg)

	group.GET("/tasks", b.httpList, cfg.Middleware...)
	group.POST("/tasks", b.httpCreate, cfg.Middleware...)
	group.GET("/tasks/{task_id}", b.httpGetByID, cfg.Middleware...)
	group.PUT("/tasks/{task_id}", b.httpUpdate, cfg.Middleware...)
	group.DELETE("/tasks/{task_id}", b.httpDelete, cfg.Middleware...)
	group.PUT("/tasks/{task_id}/complete", b.httpComplete, cfg.Middleware...)
	group.PUT("/tasks/{task_id}/set_reminder", b.httpSetReminder, cfg.Middleware...)
	group.PUT("/tasks/{task_id}/share", b.httpShare, cfg.Middleware...)
}
