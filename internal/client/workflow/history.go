package workflow

import (
	"context"
	"errors"
	"strings"

	"github.com/dmitrijs2005/deepneumoscan/internal/client/models"
)

// HistoryPage lists past results. The list is fetched on every activation
// and after every delete; nothing is cached or removed locally.
type HistoryPage struct {
	*page
	del *Controller[string, struct{}]

	items  []models.HistoryRecord
	loaded chan struct{}
}

func NewHistoryPage(deps Deps) *HistoryPage {
	p := &HistoryPage{page: newPage(deps), loaded: make(chan struct{})}
	p.del = NewController("", p.sendDelete, ControllerConfig[string]{
		Timeout: deps.Timeout,
		Validate: func(id string) error {
			if err := p.requireUser(); err != nil {
				return err
			}
			if id == "" {
				return models.ErrMissingField
			}
			return nil
		},
	})
	return p
}

// Activate starts the string load and the list fetch in the background.
func (p *HistoryPage) Activate(ctx context.Context) {
	gen := p.activate(ctx)

	loaded := make(chan struct{})
	p.apply(gen, func() {
		p.items = nil
		p.loaded = loaded
	})

	go func() {
		uid, items := p.fetch(ctx)
		p.apply(gen, func() {
			if uid == p.userID() {
				p.items = items
			}
			close(loaded)
		})
	}()
}

func (p *HistoryPage) Deactivate() {
	p.deactivate()
	p.del.Deactivate()
}

// Clear forgets the fetched list. A fetch still in flight for the previous
// user is dropped when it returns.
func (p *HistoryPage) Clear() {
	p.del.Discard("")
	p.mu.Lock()
	defer p.mu.Unlock()
	p.items = nil
}

func (p *HistoryPage) Title() string {
	return p.Strings().Get("history", "History")
}

// Loaded is closed when the list of the current activation has arrived.
func (p *HistoryPage) Loaded() <-chan struct{} {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.loaded
}

// Items returns the last fetched list, in backend order.
func (p *HistoryPage) Items() []models.HistoryRecord {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]models.HistoryRecord(nil), p.items...)
}

// Refresh re-fetches the list synchronously.
func (p *HistoryPage) Refresh(ctx context.Context) {
	gen := p.generation()
	uid, items := p.fetch(ctx)
	p.apply(gen, func() {
		if uid == p.userID() {
			p.items = items
		}
	})
}

// Delete removes a record on the backend and then re-fetches the list,
// whether the delete succeeded or not. The delete error is returned.
func (p *HistoryPage) Delete(ctx context.Context, id string) error {
	if err := p.del.Edit(func(in *string) error {
		*in = strings.TrimSpace(id)
		return nil
	}); err != nil {
		return err
	}

	_, err := p.del.Submit(ctx)
	if errors.Is(err, ErrDiscarded) {
		return err
	}
	if err != nil {
		p.del.Acknowledge()
	}

	p.Refresh(ctx)
	return err
}

// fetch never fails: errors are logged and yield an empty list. It
// returns the user id the list belongs to.
func (p *HistoryPage) fetch(ctx context.Context) (string, []models.HistoryRecord) {
	u, ok := p.user()
	if !ok {
		return "", []models.HistoryRecord{}
	}

	if p.deps.Timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, p.deps.Timeout)
		defer cancel()
	}

	items, err := p.deps.Client.ListHistory(ctx, u.ID)
	if err != nil {
		p.logger().Warn(ctx, "failed to load history", "user_id", u.ID, "error", err)
		return u.ID, []models.HistoryRecord{}
	}
	return u.ID, items
}

func (p *HistoryPage) sendDelete(ctx context.Context, id string) (struct{}, error) {
	return struct{}{}, p.deps.Client.DeleteHistory(ctx, id)
}
