package workflow

import (
	"context"
	"sync"
	"time"

	"github.com/dmitrijs2005/deepneumoscan/internal/client/client"
	"github.com/dmitrijs2005/deepneumoscan/internal/client/i18n"
	"github.com/dmitrijs2005/deepneumoscan/internal/client/models"
	"github.com/dmitrijs2005/deepneumoscan/internal/client/services"
	"github.com/dmitrijs2005/deepneumoscan/internal/logging"
)

// Identity is the read side of the session store.
type Identity interface {
	User() (models.User, bool)
}

// Navigator switches the active page.
type Navigator interface {
	Navigate(ctx context.Context, path string) error
}

// Deps are the collaborators shared by every page.
type Deps struct {
	Client  client.Client
	Auth    services.AuthService
	Session Identity
	Loader  *i18n.Loader
	Logger  logging.Logger
	Nav     Navigator

	// DefaultLanguage is used for strings while nobody is logged in.
	DefaultLanguage string

	// Timeout bounds every backend request made by a page.
	Timeout time.Duration
	Now     func() time.Time
}

func (d Deps) now() time.Time {
	if d.Now == nil {
		return time.Now()
	}
	return d.Now()
}

// page carries what every page shares: the activation generation and the
// localized strings of the current activation.
type page struct {
	deps Deps

	mu      sync.Mutex
	gen     uint64
	strings i18n.Strings
	ready   chan struct{}
}

func newPage(deps Deps) *page {
	return &page{deps: deps, strings: i18n.Strings{}, ready: make(chan struct{})}
}

// activate starts a new generation and loads its strings in the background.
func (p *page) activate(ctx context.Context) uint64 {
	p.mu.Lock()
	p.gen++
	gen := p.gen
	ready := make(chan struct{})
	p.ready = ready
	p.mu.Unlock()

	if p.deps.Loader == nil {
		p.apply(gen, func() { close(ready) })
		return gen
	}

	ch := p.deps.Loader.LoadAsync(ctx, p.language())
	go func() {
		s := <-ch
		p.apply(gen, func() {
			p.strings = s
			close(ready)
		})
	}()
	return gen
}

// language is the user's language, else the configured default. The loader
// maps "" to English.
func (p *page) language() string {
	if u, ok := p.user(); ok && u.Language != "" {
		return u.Language
	}
	return p.deps.DefaultLanguage
}

func (p *page) deactivate() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.gen++
}

// apply runs fn under the page lock if gen is still the current
// generation. It reports whether fn ran.
func (p *page) apply(gen uint64, fn func()) bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	if gen != p.gen {
		return false
	}
	fn()
	return true
}

func (p *page) generation() uint64 {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.gen
}

// Strings returns the strings of the current activation. Until they are
// loaded the mapping is empty and lookups return their defaults.
func (p *page) Strings() i18n.Strings {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.strings
}

// Ready is closed once the strings of the current activation arrived.
func (p *page) Ready() <-chan struct{} {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.ready
}

func (p *page) user() (models.User, bool) {
	if p.deps.Session == nil {
		return models.User{}, false
	}
	return p.deps.Session.User()
}

func (p *page) requireUser() error {
	if _, ok := p.user(); !ok {
		return models.ErrNotAuthenticated
	}
	return nil
}

func (p *page) userID() string {
	u, _ := p.user()
	return u.ID
}

func (p *page) logger() logging.Logger {
	if p.deps.Logger == nil {
		return logging.NewNop()
	}
	return p.deps.Logger
}
