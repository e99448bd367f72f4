package web

import (
	"fmt"
	"log/slog"
	"net/http"
	"strings"

	"github.com/jrazmi/tasker/sdk/environment"
)

type WebHandler struct {
	mux       *http.ServeMux
	log       *slog.Logger
	telemetry Telemetry

	corsOrigins    []string
	defaultHeaders map[string]string

	globalMiddleware []Middleware
}

// HandlerOptions is the exportable configuration struct
type HandlerOptions struct {
	CORSOrigins    []string          `env:"CORS_ORIGINS" default:"*" separator:","`
	DefaultHeaders map[string]string `json:"default_headers"`
}

type HandlerOption func(*handlerOptions)

type handlerOptions struct {
	log              *slog.Logger
	telemetry        Telemetry
	corsOrigins      []string
	defaultHeaders   map[string]string
	globalMiddleware []Middleware
}

// WithLogging sets the logger
func WithLogging(log *slog.Logger) HandlerOption {
	return func(o *handlerOptions) {
		o.log = log
	}
}

// WithTelemetry sets the telemetry provider
func WithTelemetry(tel Telemetry) HandlerOption {
	return func(o *handlerOptions) {
		o.telemetry = tel
	}
}

// WithCORS sets CORS origins. An empty list disables CORS handling.
func WithCORS(origins []string) HandlerOption {
	return func(o *handlerOptions) {
		o.corsOrigins = origins
	}
}

func WithDefaultHeaders(headers map[string]string) HandlerOption {
	return func(o *handlerOptions) {
		if o.defaultHeaders == nil {
			o.defaultHeaders = make(map[string]string)
		}
		for k, v := range headers {
			o.defaultHeaders[k] = v
		}
	}
}

// WithGlobalMiddleware adds middleware applied to every route, in order.
func WithGlobalMiddleware(middleware ...Middleware) HandlerOption {
	return func(o *handlerOptions) {
		o.globalMiddleware = append(o.globalMiddleware, middleware...)
	}
}

// NewWebHandlerFromEnv creates a new WebHandler from environment variables
func NewWebHandlerFromEnv(prefix string, opts ...HandlerOption) (*WebHandler, error) {
	var options HandlerOptions
	if err := environment.ParseEnvTags(prefix, &options); err != nil {
		return nil, fmt.Errorf("parsing webhandler config: %w", err)
	}
	return NewWebHandler(options, opts...), nil
}

func NewWebHandler(cfg HandlerOptions, opts ...HandlerOption) *WebHandler {
	internalOpts := &handlerOptions{
		corsOrigins:      cfg.CORSOrigins,
		defaultHeaders:   make(map[string]string),
		globalMiddleware: make([]Middleware, 0),
	}
	for k, v := range cfg.DefaultHeaders {
		internalOpts.defaultHeaders[k] = v
	}

	for _, opt := range opts {
		opt(internalOpts)
	}

	handler := &WebHandler{
		mux:              http.NewServeMux(),
		log:              internalOpts.log,
		telemetry:        internalOpts.telemetry,
		corsOrigins:      internalOpts.corsOrigins,
		defaultHeaders:   internalOpts.defaultHeaders,
		globalMiddleware: internalOpts.globalMiddleware,
	}

	// cors runs first, ahead of logging and error handling
	if len(handler.corsOrigins) > 0 {
		handler.globalMiddleware = append([]Middleware{handler.corsMiddleware()}, handler.globalMiddleware...)
	}

	return handler
}

func (a *WebHandler) Handle(method, path string, handler HandlerFunc, middleware ...Middleware) {
	finalHandler := a.buildHandlerChain(handler, middleware...)

	httpHandler := func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if a.telemetry != nil {
			ctx = a.telemetry.SetTraceID(ctx)
		}
		ctx = setWriter(ctx, w)
		for k, v := range a.defaultHeaders {
			w.Header().Set(k, v)
		}

		resp := finalHandler(ctx, r)

		if err := Respond(ctx, w, resp); err != nil && a.log != nil {
			a.log.ErrorContext(ctx, "respond error", "error", err)
		}
	}

	pattern := fmt.Sprintf("%s %s", strings.ToUpper(method), path)
	a.mux.HandleFunc(pattern, httpHandler)
}


func (a *WebHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	// routes are registered per method, so preflight never reaches the mux
	if r.Method == http.MethodOptions && len(a.corsOrigins) > 0 {
		a.setCORSHeaders(w, r)
		w.WriteHeader(http.StatusNoContent)
		return
	}
	a.mux.ServeHTTP(w, r)
}
