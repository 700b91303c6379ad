// Package session owns the authenticated identity of the client and its
// language preference.
//
// The Store is the single source of truth: it is created once at start-up,
// loaded with Init from the local metadata table, and injected into every
// page that needs the current user. The persisted record lives under the
// key "user" and is always written whole, in one statement, before the
// in-memory copy changes. A record that cannot be parsed is treated as
// "logged out".
package session

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"sync"

	"github.com/dmitrijs2005/deepneumoscan/internal/client/models"
	"github.com/dmitrijs2005/deepneumoscan/internal/client/repositories/metadata"
	"github.com/dmitrijs2005/deepneumoscan/internal/common"
	"github.com/dmitrijs2005/deepneumoscan/internal/dbx"
	"github.com/dmitrijs2005/deepneumoscan/internal/logging"
)

// UserKey is the metadata key of the persisted identity.
const UserKey = "user"

type Store struct {
	mu     sync.RWMutex
	db     *sql.DB
	user   *models.User
	logger logging.Logger

	listeners []func(ctx context.Context)
}

func NewStore(db *sql.DB, logger logging.Logger) *Store {
	return &Store{db: db, logger: logger}
}

func (s *Store) repo(tx dbx.DBTX) metadata.Repository {
	return metadata.NewSQLiteRepository(tx)
}

// Init loads the persisted identity. Read failures are returned; a
// malformed record is logged and treated as absent.
func (s *Store) Init(ctx context.Context) error {
	raw, err := s.repo(s.db).Get(ctx, UserKey)
	if err != nil {
		return fmt.Errorf("load session: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.user = nil
	if raw == nil {
		return nil
	}

	u, err := models.ParseUser(raw)
	if err != nil {
		s.logger.Warn(ctx, "ignoring malformed session record", "error", err)
		return nil
	}
	s.user = &u
	return nil
}

// User returns a copy of the current identity.
func (s *Store) User() (models.User, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.user == nil {
		return models.User{}, false
	}
	return *s.user, true
}

func (s *Store) IsAuthenticated() bool {
	_, ok := s.User()
	return ok
}

// Language is the current user's language, or the default one.
func (s *Store) Language() string {
	u, _ := s.User()
	return common.LanguageOrDefault(u.Language)
}

// OnIdentityChange registers fn to run whenever the identity is replaced
// by a different user id or cleared. fn runs after the change, without the
// store lock held.
func (s *Store) OnIdentityChange(fn func(ctx context.Context)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.listeners = append(s.listeners, fn)
}

func (s *Store) notify(ctx context.Context) {
	s.mu.RLock()
	listeners := append(([]func(context.Context))(nil), s.listeners...)
	s.mu.RUnlock()

	for _, fn := range listeners {
		fn(ctx)
	}
}

// SetUser replaces the identity.
func (s *Store) SetUser(ctx context.Context, u models.User) error {
	if err := u.Validate(); err != nil {
		return err
	}
	raw, err := json.Marshal(u)
	if err != nil {
		return err
	}

	s.mu.Lock()
	if err := s.repo(s.db).Set(ctx, UserKey, raw); err != nil {
		s.mu.Unlock()
		return fmt.Errorf("save session: %w", err)
	}
	changed := s.user == nil || s.user.ID != u.ID
	s.user = &u
	s.mu.Unlock()

	s.logger.Info(ctx, "session started", "user_id", u.ID)
	if changed {
		s.notify(ctx)
	}
	return nil
}

// SetLanguage changes the language of the current user. Without a user it
// does nothing. The persisted record is re-read and rewritten in one
// transaction so the stored and in-memory users stay identical.
func (s *Store) SetLanguage(ctx context.Context, code string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.user == nil {
		return nil
	}

	updated := *s.user
	updated.Language = code

	err := dbx.WithTx(ctx, s.db, nil, func(ctx context.Context, tx dbx.DBTX) error {
		repo := s.repo(tx)

		raw, err := repo.Get(ctx, UserKey)
		if err != nil {
			return err
		}
		if raw != nil {
			if persisted, perr := models.ParseUser(raw); perr == nil && persisted.ID == updated.ID {
				persisted.Language = code
				updated = persisted
			}
		}

		b, err := json.Marshal(updated)
		if err != nil {
			return err
		}
		return repo.Set(ctx, UserKey, b)
	})
	if err != nil {
		return fmt.Errorf("save language: %w", err)
	}

	s.user = &updated
	return nil
}

// Clear removes the identity (logout).
func (s *Store) Clear(ctx context.Context) error {
	s.mu.Lock()
	if err := s.repo(s.db).Delete(ctx, UserKey); err != nil {
		s.mu.Unlock()
		return fmt.Errorf("clear session: %w", err)
	}
	changed := s.user != nil
	s.user = nil
	s.mu.Unlock()

	if changed {
		s.notify(ctx)
	}
	return nil
}
