package errs_test

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
	"testing"

	"github.com/jrazmi/tasker/bridge/scaffolding/errs"
)

func TestError_Encode(t *testing.T) {
	e := errs.Newf(errs.NotFound, "Task not found or unauthorized")

	data, contentType, err := e.Encode()
	if err != nil {
		t.Fatalf("Encode failed: %v", err)
	}
	if contentType != "application/json" {
		t.Errorf("Unexpected content type %s", contentType)
	}
	want := `{"code":"not_found","message":"Task not found or unauthorized"}`
	if string(data) != want {
		t.Errorf("Expected %s, got %s", want, data)
	}
}

func TestError_HTTPStatus(t *testing.T) {
	tests := []struct {
		code errs.ErrCode
		want int
	}{
		{errs.InvalidArgument, http.StatusBadRequest},
		{errs.Unprocessable, http.StatusUnprocessableEntity},
		{errs.Unauthenticated, http.StatusUnauthorized},
		{errs.NotFound, http.StatusNotFound},
		{errs.AlreadyExists, http.StatusConflict},
		{errs.Unavailable, http.StatusServiceUnavailable},
		{errs.Internal, http.StatusInternalServerError},
		{errs.InternalOnlyLog, http.StatusInternalServerError},
		{errs.ErrCode{}, http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.code.String(), func(t *testing.T) {
			if got := errs.New(tt.code, errors.New("x")).HTTPStatus(); got != tt.want {
				t.Errorf("HTTPStatus() = %d, want %d", got, tt.want)
			}
		})
	}
}

func TestError_Source(t *testing.T) {
	e := errs.Newf(errs.Internal, "boom")

	if !strings.Contains(e.FileName, "errs_test.go") {
		t.Errorf("Expected caller file, got %s", e.FileName)
	}
	if !strings.Contains(e.FuncName, "TestError_Source") {
		t.Errorf("Expected caller func, got %s", e.FuncName)
	}
}

func TestGetError(t *testing.T) {
	inner := errs.Newf(errs.AlreadyExists, "Username already exists")
	wrapped := fmt.Errorf("signup: %w", inner)

	if got := errs.GetError(wrapped); got != inner {
		t.Errorf("Expected the wrapped error back, got %v", got)
	}
	if errs.GetError(errors.New("plain")) != nil {
		t.Error("Expected nil for a plain error")
	}
}
