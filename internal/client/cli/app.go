package cli

import (
	"bufio"
	"context"
	"database/sql"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/dmitrijs2005/deepneumoscan/internal/client/client"
	"github.com/dmitrijs2005/deepneumoscan/internal/client/config"
	"github.com/dmitrijs2005/deepneumoscan/internal/client/i18n"
	"github.com/dmitrijs2005/deepneumoscan/internal/client/router"
	"github.com/dmitrijs2005/deepneumoscan/internal/client/services"
	"github.com/dmitrijs2005/deepneumoscan/internal/client/session"
	"github.com/dmitrijs2005/deepneumoscan/internal/client/workflow"
	"github.com/dmitrijs2005/deepneumoscan/internal/logging"
)

type App struct {
	config  *config.Config
	db      *sql.DB
	api     client.Client
	session *session.Store
	auth    services.AuthService
	router  *router.Router
	logger  logging.Logger

	authPage  *workflow.AuthPage
	home      *workflow.HomePage
	self      *workflow.SelfAssessmentPage
	scan      *workflow.ScanPage
	cure      *workflow.CurePage
	history   *workflow.HistoryPage
	hospitals *workflow.HospitalsPage

	reader *bufio.Reader
	out    io.Writer
}

// NewApp opens the local database, restores the session and builds every
// page. The caller must call Close (Run does it).
func NewApp(ctx context.Context, c *config.Config, logger logging.Logger) (*App, error) {
	db, err := client.InitDatabase(ctx, c.DatabasePath)
	if err != nil {
		logger.Error(ctx, "error initializing database", "path", c.DatabasePath, "error", err)
		return nil, err
	}

	apiClient, err := client.NewHTTPClient(c.BackendURL, c.RequestTimeout, logger)
	if err != nil {
		_ = db.Close()
		return nil, err
	}

	store := session.NewStore(db, logger)
	if err := store.Init(ctx); err != nil {
		_ = db.Close()
		return nil, err
	}

	a := &App{
		config:  c,
		db:      db,
		api:     apiClient,
		session: store,
		auth:    services.NewAuthService(apiClient, store),
		logger:  logger,
		reader:  bufio.NewReader(os.Stdin),
		out:     os.Stdout,
	}
	a.router = router.New(store, logger)

	deps := workflow.Deps{
		Client:          apiClient,
		Auth:            a.auth,
		Session:         store,
		Loader:          i18n.NewLoader(apiClient, logger),
		Logger:          logger,
		Nav:             a.router,
		DefaultLanguage: c.DefaultLanguage,
		Timeout:         c.RequestTimeout,
	}

	a.authPage = workflow.NewAuthPage(deps)
	a.home = workflow.NewHomePage(deps)
	a.self = workflow.NewSelfAssessmentPage(deps)
	a.scan = workflow.NewScanPage(deps)
	a.cure = workflow.NewCurePage(deps)
	a.history = workflow.NewHistoryPage(deps)
	a.hospitals = workflow.NewHospitalsPage(deps)

	a.router.Register(router.PathAuth, a.authPage, false)
	a.router.Register(router.PathHome, a.home, true)
	a.router.Register(router.PathSelf, a.self, true)
	a.router.Register(router.PathScan, a.scan, true)
	a.router.Register(router.PathCure, a.cure, true)
	a.router.Register(router.PathHistory, a.history, true)
	a.router.Register(router.PathHospitals, a.hospitals, false)

	store.OnIdentityChange(a.clearPages)

	return a, nil
}

// clearPages forgets every form and result when the identity changes.
func (a *App) clearPages(context.Context) {
	a.self.Clear()
	a.scan.Clear()
	a.cure.Clear()
	a.history.Clear()
}

// Run shows the start page and blocks in the REPL until the user exits or
// input ends.
func (a *App) Run(ctx context.Context) {
	defer a.Close(ctx)

	fmt.Fprintln(a.out, "Welcome to deepneumoscan (type 'help' for commands)")
	if a.isLoggedIn() {
		_ = a.Home(ctx)
	} else {
		_ = a.router.Navigate(ctx, router.PathAuth)
	}

	runREPL(ctx, a, a.getStatus, a.reader)
}

func (a *App) Close(ctx context.Context) {
	if err := a.auth.Close(ctx); err != nil {
		a.logger.Warn(ctx, "error closing backend client", "error", err)
	}
	if err := a.db.Close(); err != nil {
		a.logger.Warn(ctx, "error closing database", "error", err)
	}
}

func (a *App) isLoggedIn() bool {
	return a.session.IsAuthenticated()
}

func (a *App) getStatus() string {
	path, _ := a.router.Current()
	u, ok := a.session.User()
	if !ok {
		return path
	}
	return fmt.Sprintf("%s (%s %s)", path, u.Name, u.Language)
}

// navigate switches page and explains a refusal to the user.
func (a *App) navigate(ctx context.Context, path string) error {
	if err := a.router.Navigate(ctx, path); err != nil {
		a.printErr(err)
		return err
	}
	return nil
}

// waitFor blocks until ch is closed or the request timeout passes.
func (a *App) waitFor(ch <-chan struct{}) {
	d := a.config.RequestTimeout
	if d <= 0 {
		d = 20 * time.Second
	}
	select {
	case <-ch:
	case <-time.After(d):
	}
}

func (a *App) println(args ...any) {
	fmt.Fprintln(a.out, args...)
}

func (a *App) printf(format string, args ...any) {
	fmt.Fprintf(a.out, format, args...)
}
