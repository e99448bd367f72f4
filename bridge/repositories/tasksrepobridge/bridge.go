package tasksrepobridge

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/jrazmi/tasker/bridge/scaffolding/errs"
	"github.com/jrazmi/tasker/bridge/scaffolding/mid"
	"github.com/jrazmi/tasker/core/repositories/tasksrepo"
	"github.com/jrazmi/tasker/infrastructure/web"
	"github.com/jrazmi/tasker/sdk/logger"
)

type bridge struct {
	log            *logger.Logger
	taskRepository *tasksrepo.Repository
}

func newBridge(cfg Config) *bridge {
	return &bridge{
		log:            cfg.Log,
		taskRepository: cfg.Repository,
	}
}

func (b *bridge) httpList(ctx context.Context, r *http.Request) web.Encoder {
	userID, err := mid.GetUserID(ctx)
	if err != nil {
		return errs.New(errs.Unauthenticated, err)
	}

	tasks, err := b.taskRepository.List(ctx, userID)
	if err != nil {
		return errs.New(errs.InternalOnlyLog, err)
	}

	return web.NewJSONResponse(MarshalListToBridge(tasks))
}

func (b *bridge) httpCreate(ctx context.Context, r *http.Request) web.Encoder {
	userID, err := mid.GetUserID(ctx)
	if err != nil {
		return errs.New(errs.Unauthenticated, err)
	}

	var input tasksrepo.CreateTask
	if err := web.Decode(r, &input); err != nil {
		if errors.Is(err, web.ErrEmptyBody) {
			return errs.Newf(errs.Unprocessable, "Missing required fields: title and due_date")
		}
		if appErr := fieldError(errs.Unprocessable, err); appErr != nil {
			return appErr
		}
		return errs.Newf(errs.InvalidArgument, "Invalid request body")
	}

	task, err := b.taskRepository.Create(ctx, userID, input)
	if err != nil {
		return toAppError(errs.Unprocessable, err)
	}

	return web.NewJSONResponseWithStatus(MarshalToBridge(task), http.StatusCreated)
}

func (b *bridge) httpGetByID(ctx context.Context, r *http.Request) web.Encoder {
	userID, err := mid.GetUserID(ctx)
	if err != nil {
		return errs.New(errs.Unauthenticated, err)
	}

	task, err := b.taskRepository.Get(ctx, userID, web.Param(r, "task_id"))
	if err != nil {
		return toAppError(errs.InvalidArgument, err)
	}

	return web.NewJSONResponse(MarshalToBridge(task))
}

func (b *bridge) httpUpdate(ctx context.Context, r *http.Request) web.Encoder {
	userID, err := mid.GetUserID(ctx)
	if err != nil {
		return errs.New(errs.Unauthenticated, err)
	}

	var patch tasksrepo.Patch
	if err := web.Decode(r, &patch); err != nil {
		if errors.Is(err, web.ErrEmptyBody) {
			return errs.Newf(errs.InvalidArgument, "No data provided")
		}
		if appErr := fieldError(errs.InvalidArgument, err); appErr != nil {
			return appErr
		}
		return errs.Newf(errs.InvalidArgument, "Invalid request body")
	}

	task, err := b.taskRepository.Update(ctx, userID, web.Param(r, "task_id"), patch)
	if err != nil {
		return toAppError(errs.InvalidArgument, err)
	}

	return web.NewJSONResponse(MarshalToBridge(task))
}

func (b *bridge) httpDelete(ctx context.Context, r *http.Request) web.Encoder {
	userID, err := mid.GetUserID(ctx)
	if err != nil {
		return errs.New(errs.Unauthenticated, err)
	}

	if err := b.taskRepository.Delete(ctx, userID, web.Param(r, "task_id")); err != nil {
		return toAppError(errs.InvalidArgument, err)
	}

	return web.NewMessage("Task deleted successfully!", http.StatusOK)
}

func (b *bridge) httpComplete(ctx context.Context, r *http.Request) web.Encoder {
	userID, err := mid.GetUserID(ctx)
	if err != nil {
		return errs.New(errs.Unauthenticated, err)
	}

	task, err := b.taskRepository.Complete(ctx, userID, web.Param(r, "task_id"))
	if err != nil {
		return toAppError(errs.InvalidArgument, err)
	}

	return web.NewJSONResponse(MarshalToBridge(task))
}

func (b *bridge) httpSetReminder(ctx context.Context, r *http.Request) web.Encoder {
	userID, err := mid.GetUserID(ctx)
	if err != nil {
		return errs.New(errs.Unauthenticated, err)
	}

	var input reminderRequest
	if err := web.Decode(r, &input); err != nil && !errors.Is(err, web.ErrEmptyBody) {
		return errs.Newf(errs.InvalidArgument, "Invalid request body")
	}

	if _, err := b.taskRepository.SetReminder(ctx, userID, web.Param(r, "task_id"), input.Reminder); err != nil {
		return toAppError(errs.InvalidArgument, err)
	}

	return web.NewMessage("Reminder set successfully!", http.StatusOK)
}

func (b *bridge) httpShare(ctx context.Context, r *http.Request) web.Encoder {
	userID, err := mid.GetUserID(ctx)
	if err != nil {
		return errs.New(errs.Unauthenticated, err)
	}

	var input shareRequest
	if err := web.Decode(r, &input); err != nil && !errors.Is(err, web.ErrEmptyBody) {
		return errs.Newf(errs.InvalidArgument, "Invalid request body")
	}

	if _, err := b.taskRepository.Share(ctx, userID, web.Param(r, "task_id"), input.SharedUserID); err != nil {
		return toAppError(errs.InvalidArgument, err)
	}

	return web.NewMessage("Task shared successfully!", http.StatusOK)
}

// fieldError maps a decode failure caused by a field's value to code. It
// returns nil for malformed JSON.
func fieldError(code errs.ErrCode, err error) *errs.Error {
	var fe *tasksrepo.FieldError
	if errors.As(err, &fe) {
		return errs.Newf(code, "%s", fe.Message)
	}

	var te *json.UnmarshalTypeError
	if errors.As(err, &te) {
		return errs.Newf(code, "Invalid type for field: %s", te.Field)
	}

	return nil
}

// toAppError maps repository errors. Field failures take invalid.
func toAppError(invalid errs.ErrCode, err error) *errs.Error {
	var fe *tasksrepo.FieldError
	switch {
	case errors.Is(err, tasksrepo.ErrTaskNotFound):
		return errs.Newf(errs.NotFound, "Task not found or unauthorized")
	case errors.As(err, &fe):
		return errs.Newf(invalid, "%s", fe.Message)
	}
	return errs.New(errs.InternalOnlyLog, err)
}
