package workflow

import (
	"context"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/dmitrijs2005/deepneumoscan/internal/client/backendtest"
	"github.com/dmitrijs2005/deepneumoscan/internal/client/client"
	"github.com/dmitrijs2005/deepneumoscan/internal/client/i18n"
	"github.com/dmitrijs2005/deepneumoscan/internal/client/models"
	"github.com/dmitrijs2005/deepneumoscan/internal/client/services"
	"github.com/dmitrijs2005/deepneumoscan/internal/client/session"
	"github.com/dmitrijs2005/deepneumoscan/internal/logging"
	"github.com/stretchr/testify/require"
)

var (
	jpegData = []byte("\xff\xd8\xff\xe0\x00\x10JFIF\x00fake-xray")
	testNow  = time.Date(2025, 3, 14, 9, 0, 0, 0, time.UTC)
	testUser = models.User{ID: "u1", Name: "A", Email: "a@b.com", Language: "en"}
)

type fakeNav struct {
	mu    sync.Mutex
	paths []string
}

func (n *fakeNav) Navigate(_ context.Context, path string) error {
	n.mu.Lock()
	defer n.mu.Unlock()
	n.paths = append(n.paths, path)
	return nil
}

func (n *fakeNav) Paths() []string {
	n.mu.Lock()
	defer n.mu.Unlock()
	return append([]string(nil), n.paths...)
}

type env struct {
	backend *backendtest.Backend
	store   *session.Store
	nav     *fakeNav
	deps    Deps
}

func newEnv(t *testing.T, user *models.User) *env {
	t.Helper()
	ctx := context.Background()
	nop := logging.NewNop()

	b, srv := backendtest.NewServer(t)
	c, err := client.NewHTTPClient(srv.URL, 2*time.Second, nop)
	require.NoError(t, err)

	db, err := client.InitDatabase(ctx, filepath.Join(t.TempDir(), "workflow.db"))
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	store := session.NewStore(db, nop)
	require.NoError(t, store.Init(ctx))
	if user != nil {
		require.NoError(t, store.SetUser(ctx, *user))
	}

	nav := &fakeNav{}
	return &env{
		backend: b,
		store:   store,
		nav:     nav,
		deps: Deps{
			Client:  c,
			Auth:    services.NewAuthService(c, store),
			Session: store,
			Loader:  i18n.NewLoader(c, nop),
			Logger:  nop,
			Nav:     nav,
			Timeout: 2 * time.Second,
			Now:     func() time.Time { return testNow },
		},
	}
}

func waitClosed(t *testing.T, ch <-chan struct{}) {
	t.Helper()
	select {
	case <-ch:
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for page")
	}
}
