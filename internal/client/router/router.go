// Package router maps paths to pages and enforces the login guard.
package router

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/dmitrijs2005/deepneumoscan/internal/logging"
)

const (
	PathAuth      = "/"
	PathHome      = "/home"
	PathSelf      = "/self"
	PathScan      = "/scan"
	PathCure      = "/cure"
	PathHistory   = "/history"
	PathHospitals = "/hospitals"
)

var (
	ErrUnknownRoute = errors.New("unknown route")
	ErrAuthRequired = errors.New("login required")
)

// Page is a screen the router can show. Activate is called on entry and
// must not block; Deactivate on exit.
type Page interface {
	Activate(ctx context.Context)
	Deactivate()
}

// Guard reports whether a session exists.
type Guard interface {
	IsAuthenticated() bool
}

type route struct {
	page      Page
	protected bool
}

type Router struct {
	mu      sync.Mutex
	routes  map[string]route
	current string
	guard   Guard
	logger  logging.Logger
}

func New(guard Guard, logger logging.Logger) *Router {
	return &Router{routes: make(map[string]route), guard: guard, logger: logger}
}

// Register adds a page. Protected pages require a session.
func (r *Router) Register(path string, p Page, protected bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.routes[path] = route{page: p, protected: protected}
}

// Navigate leaves the current page and enters the one at path. Without a
// session a protected path redirects to PathAuth and ErrAuthRequired is
// returned.
func (r *Router) Navigate(ctx context.Context, path string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	rt, ok := r.routes[path]
	if !ok {
		return fmt.Errorf("%w: %s", ErrUnknownRoute, path)
	}

	if rt.protected && (r.guard == nil || !r.guard.IsAuthenticated()) {
		r.logger.Debug(ctx, "redirecting to login", "path", path)
		if auth, ok := r.routes[PathAuth]; ok && path != PathAuth {
			r.switchTo(ctx, PathAuth, auth.page)
		}
		return fmt.Errorf("%w: %s", ErrAuthRequired, path)
	}

	r.switchTo(ctx, path, rt.page)
	return nil
}

func (r *Router) switchTo(ctx context.Context, path string, p Page) {
	if cur, ok := r.routes[r.current]; ok && r.current != "" {
		cur.page.Deactivate()
	}
	r.current = path
	p.Activate(ctx)
	r.logger.Debug(ctx, "navigated", "path", path)
}

// Current returns the active path and page.
func (r *Router) Current() (string, Page) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.current == "" {
		return "", nil
	}
	return r.current, r.routes[r.current].page
}

// Reload re-enters the current page, e.g. after a language change.
func (r *Router) Reload(ctx context.Context) error {
	r.mu.Lock()
	path := r.current
	r.mu.Unlock()
	if path == "" {
		return nil
	}
	return r.Navigate(ctx, path)
}
