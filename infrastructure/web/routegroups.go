package web

import "strings"

type RouteGroup struct {
	webHandler *WebHandler
	prefix     string
	middleware []Middleware
}

func (wh *WebHandler) Group(prefix string, middleware ...Middleware) *RouteGroup {
	return &RouteGroup{
		webHandler: wh,
		prefix:     strings.TrimSuffix(prefix, "/"),
		middleware: middleware,
	}
}

func (g *RouteGroup) Handle(method, path string, handler HandlerFunc, middleware ...Middleware) {
	g.webHandler.Handle(method, g.prefix+path, handler, g.chain(middleware)...)
}

// Group nests a group under g. Middleware of the parent runs first.
func (g *RouteGroup) Group(prefix string, middleware ...Middleware) *RouteGroup {
	return &RouteGroup{
		webHandler: g.webHandler,
		prefix:     g.prefix + strings.TrimSuffix(prefix, "/"),
		middleware: g.chain(middleware),
	}
}

// chain copies so sibling groups never share a backing array.
func (g *RouteGroup) chain(extra []Middleware) []Middleware {
	out := make([]Middleware, 0, len(g.middleware)+len(extra))
	out = append(out, g.middleware...)
	return append(out, extra...)
}
