package cli

import (
	"bufio"
	"bytes"
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/dmitrijs2005/deepneumoscan/internal/client/backendtest"
	"github.com/dmitrijs2005/deepneumoscan/internal/client/config"
	"github.com/dmitrijs2005/deepneumoscan/internal/client/models"
	"github.com/dmitrijs2005/deepneumoscan/internal/client/router"
	"github.com/dmitrijs2005/deepneumoscan/internal/client/workflow"
	"github.com/dmitrijs2005/deepneumoscan/internal/logging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ------------ helpers ------------

var jpegData = []byte("\xff\xd8\xff\xe0\x00\x10JFIF\x00cli-xray")

var testUser = models.User{ID: "u1", Name: "A", Email: "a@b.com", Language: "en"}

func readerFromLines(lines ...string) *bufio.Reader {
	if len(lines) == 0 || lines[len(lines)-1] != "" {
		lines = append(lines, "")
	}
	return bufio.NewReader(strings.NewReader(strings.Join(lines, "\n")))
}

func stubPassword(t *testing.T, pw string) {
	t.Helper()
	orig := getPassword
	getPassword = func(_ io.Writer) ([]byte, error) { return []byte(pw), nil }
	t.Cleanup(func() { getPassword = orig })
}

func newTestApp(t *testing.T, lines ...string) (*App, *backendtest.Backend, *bytes.Buffer) {
	t.Helper()
	b, srv := backendtest.NewServer(t)

	cfg := &config.Config{}
	cfg.LoadDefaults()
	cfg.BackendURL = srv.URL
	cfg.DatabasePath = filepath.Join(t.TempDir(), "cli.db")
	cfg.RequestTimeout = 2 * time.Second

	a, err := NewApp(context.Background(), cfg, logging.NewNop())
	require.NoError(t, err)
	t.Cleanup(func() { a.Close(context.Background()) })

	out := &bytes.Buffer{}
	a.out = out
	a.reader = readerFromLines(lines...)
	return a, b, out
}

func login(t *testing.T, a *App) {
	t.Helper()
	require.NoError(t, a.session.SetUser(context.Background(), testUser))
}

func currentPath(a *App) string {
	p, _ := a.router.Current()
	return p
}

// ------------ tests ------------

func TestNewApp_InvalidBackendURL(t *testing.T) {
	cfg := &config.Config{}
	cfg.LoadDefaults()
	cfg.BackendURL = "ftp://nope"
	cfg.DatabasePath = filepath.Join(t.TempDir(), "cli.db")

	_, err := NewApp(context.Background(), cfg, logging.NewNop())
	require.Error(t, err)
}

func TestLogin_StoresUserAndShowsHome(t *testing.T) {
	a, b, out := newTestApp(t, "a@b.com")
	b.AddAccount("a@b.com", "x", models.LoginResult{UserID: "u1", Name: "A", Language: "en"})
	stubPassword(t, "x")

	require.NoError(t, a.Login(context.Background()))

	u, ok := a.session.User()
	require.True(t, ok)
	assert.Equal(t, testUser, u)
	assert.Equal(t, router.PathHome, currentPath(a))
	assert.Contains(t, out.String(), "Welcome, A")
	assert.Contains(t, out.String(), "Self Assessment")
	assert.Equal(t, "/home (A en)", a.getStatus())
}

func TestLogin_WrongPassword(t *testing.T) {
	a, b, out := newTestApp(t, "a@b.com")
	b.AddAccount("a@b.com", "x", models.LoginResult{UserID: "u1", Name: "A", Language: "en"})
	stubPassword(t, "wrong")

	require.Error(t, a.Login(context.Background()))

	assert.False(t, a.isLoggedIn())
	assert.Contains(t, out.String(), "Not authorized: login failed")
	assert.Equal(t, router.PathAuth, currentPath(a))
	assert.Equal(t, workflow.Editing, a.authPage.State())
}

func TestSignup_CreatesAccountAndLogsIn(t *testing.T) {
	a, b, _ := newTestApp(t, "B", "kn", "b@c.com")
	stubPassword(t, "pw")

	require.NoError(t, a.Signup(context.Background()))

	u, ok := a.session.User()
	require.True(t, ok)
	assert.Equal(t, "B", u.Name)
	assert.Equal(t, "kn", u.Language)
	assert.Equal(t, 1, b.Calls(backendtest.RouteSignup))
	assert.Equal(t, router.PathHome, currentPath(a))
}

func TestProtectedCommand_RequiresLogin(t *testing.T) {
	a, b, out := newTestApp(t)

	require.ErrorIs(t, a.SelfAssessment(context.Background()), router.ErrAuthRequired)

	assert.Contains(t, out.String(), "Please log in first")
	assert.Equal(t, router.PathAuth, currentPath(a))
	assert.Zero(t, b.Calls(backendtest.RouteSelf))
}

func TestSelfAssessment_ClampsAndSubmits(t *testing.T) {
	a, b, out := newTestApp(t, "2", "3", "-1", "9")
	login(t, a)

	require.NoError(t, a.SelfAssessment(context.Background()))

	scores := []int{}
	for _, ans := range a.self.Input() {
		scores = append(scores, ans.Score)
	}
	assert.Equal(t, []int{2, 3, 0, 3}, scores)
	assert.Contains(t, out.String(), "Predicted condition: pneumonia")
	assert.Len(t, b.History("u1"), 1)
}

func TestScan_SubmitsForm(t *testing.T) {
	img := filepath.Join(t.TempDir(), "chest.jpg")
	require.NoError(t, os.WriteFile(img, jpegData, 0o600))
	dest := filepath.Join(t.TempDir(), "annotated.jpg")

	a, b, out := newTestApp(t, "Pat", "40", "female", "none", img, dest)
	login(t, a)

	require.NoError(t, a.Scan(context.Background()))

	assert.Contains(t, out.String(), "Prediction: normal")
	up := b.LastScan()
	require.NotNil(t, up)
	assert.Equal(t, "female", up.Fields["gender"])
	assert.Equal(t, "40", up.Fields["age"])
	assert.Equal(t, "u1", up.Fields["user_id"])

	saved, err := os.ReadFile(dest)
	require.NoError(t, err)
	assert.Equal(t, jpegData, saved)
}

func TestScan_WithoutFile_NoRequest(t *testing.T) {
	a, b, out := newTestApp(t, "", "", "", "", "")
	login(t, a)

	require.ErrorIs(t, a.Scan(context.Background()), workflow.ErrValidation)

	assert.Contains(t, out.String(), "Invalid input: a JPEG image must be attached")
	assert.Zero(t, b.Calls(backendtest.RouteScan))
	assert.Equal(t, workflow.Editing, a.scan.State())
}

func TestScan_InvalidGender(t *testing.T) {
	a, b, out := newTestApp(t, "Pat", "40", "robot")
	login(t, a)

	require.ErrorIs(t, a.Scan(context.Background()), models.ErrInvalidGender)
	assert.Contains(t, out.String(), "gender must be")
	assert.Zero(t, b.Calls(backendtest.RouteScan))
}

func TestCure_AddsEntriesAndSubmits(t *testing.T) {
	a, _, out := newTestApp(t, "2099-03-20 1", "not a line", "")
	login(t, a)

	require.NoError(t, a.Cure(context.Background()))

	entries := a.cure.Input()
	require.Len(t, entries, 2)
	assert.Equal(t, models.SymptomEntry{Date: "2099-03-20", Score: 1}, entries[1])
	assert.Contains(t, out.String(), "Skipping")
	assert.Contains(t, out.String(), "Evaluation: improving")
}

func TestHistoryAndDelete(t *testing.T) {
	a, b, out := newTestApp(t)
	login(t, a)
	first := b.AddHistory("u1", "self_assessment", map[string]any{"predicted_condition": "healthy"})
	second := b.AddHistory("u1", "xray_scan", map[string]any{"prediction": "normal"})
	ctx := context.Background()

	require.NoError(t, a.History(ctx))
	assert.Contains(t, out.String(), first)
	assert.Contains(t, out.String(), second)

	out.Reset()
	require.NoError(t, a.Delete(ctx, first))
	assert.Contains(t, out.String(), "Deleted "+first)

	items := a.history.Items()
	require.Len(t, items, 1)
	assert.Equal(t, second, items[0].ID)
	assert.Len(t, b.History("u1"), 1)
}

func TestHistory_Empty(t *testing.T) {
	a, _, out := newTestApp(t)
	login(t, a)

	require.NoError(t, a.History(context.Background()))
	assert.Contains(t, out.String(), "(no records)")
}

func TestDelete_Missing(t *testing.T) {
	a, _, out := newTestApp(t)
	login(t, a)

	require.Error(t, a.Delete(context.Background(), "nope"))
	assert.Contains(t, out.String(), "404")
	assert.Contains(t, out.String(), "(no records)")
}

func TestHospitals_WithPosition(t *testing.T) {
	a, _, out := newTestApp(t, "12.5, 77.1")

	require.NoError(t, a.Hospitals(context.Background(), ""))
	assert.Contains(t, out.String(), "Get Directions: https://www.google.com/maps/search/hospital/@12.5,77.1,15z")
}

func TestHospitals_BadPosition(t *testing.T) {
	a, _, out := newTestApp(t, "north")

	require.NoError(t, a.Hospitals(context.Background(), "clinic"))
	assert.Contains(t, out.String(), "expected lat,lng")
	assert.Contains(t, out.String(), "https://www.google.com/maps/search/clinic\n")
}

func TestLanguage(t *testing.T) {
	a, _, out := newTestApp(t)
	ctx := context.Background()

	require.NoError(t, a.Language(ctx, "kn"))
	assert.Contains(t, out.String(), "Log in to change the language")

	login(t, a)
	require.NoError(t, a.Home(ctx))
	require.ErrorIs(t, a.Language(ctx, "fr"), models.ErrUnknownLanguage)
	require.NoError(t, a.Language(ctx, "KN"))

	u, _ := a.session.User()
	assert.Equal(t, "kn", u.Language)
	assert.Equal(t, router.PathHome, currentPath(a))
}

func TestLogout(t *testing.T) {
	a, _, out := newTestApp(t)
	login(t, a)
	ctx := context.Background()
	require.NoError(t, a.Home(ctx))

	require.NoError(t, a.Logout(ctx))

	assert.False(t, a.isLoggedIn())
	assert.Equal(t, router.PathAuth, currentPath(a))
	assert.Contains(t, out.String(), "Logged out")
}

func TestLogout_NextUserStartsWithEmptyPages(t *testing.T) {
	img := filepath.Join(t.TempDir(), "chest.jpg")
	require.NoError(t, os.WriteFile(img, jpegData, 0o600))

	a, b, out := newTestApp(t,
		"Alice Patient", "", "female", "HIV", img, "-",
		"2099-03-20 1", "",
		"b@c.com",
	)
	b.AddAccount("b@c.com", "y", models.LoginResult{UserID: "u2", Name: "B", Language: "en"})
	b.AddHistory("u1", "xray_scan", map[string]any{"prediction": "normal"})
	stubPassword(t, "y")
	ctx := context.Background()

	login(t, a)
	require.NoError(t, a.Scan(ctx))
	assert.Contains(t, out.String(), "Age []\n> ")
	assert.Equal(t, "", b.LastScan().Fields["age"])
	require.NoError(t, a.Cure(ctx))
	require.NoError(t, a.History(ctx))
	require.NotEmpty(t, a.history.Items())

	require.NoError(t, a.Logout(ctx))
	require.NoError(t, a.Login(ctx))

	u, ok := a.session.User()
	require.True(t, ok)
	assert.Equal(t, "u2", u.ID)

	assert.Equal(t, models.NewScanSubmission(), a.scan.Input())
	_, ok = a.scan.Result()
	assert.False(t, ok)
	_, err := a.scan.SaveAnnotated(filepath.Join(t.TempDir(), "leak.jpg"))
	require.ErrorIs(t, err, workflow.ErrNoResult)

	require.Len(t, a.cure.Input(), 1)
	_, ok = a.cure.Result()
	assert.False(t, ok)
	_, ok = a.self.Result()
	assert.False(t, ok)
	assert.Empty(t, a.history.Items())
}

func TestRun_ExitsOnCommand(t *testing.T) {
	silencePrintln(t)
	a, _, out := newTestApp(t, "hospitals", "", "exit")

	done := make(chan struct{})
	go func() {
		a.Run(context.Background())
		close(done)
	}()

	select {
	case <-done:
	case <-time.After(5 * time.Second):
		t.Fatal("Run did not return")
	}
	assert.Contains(t, out.String(), "Welcome to deepneumoscan")
	assert.Contains(t, out.String(), "https://www.google.com/maps/search/hospital")
}

func TestDescribeError(t *testing.T) {
	assert.Equal(t, "Please log in first (commands: login, signup)", describeError(router.ErrAuthRequired))
	assert.Equal(t, "Please wait, a request is already running", describeError(workflow.ErrSubmitInProgress))
	assert.Equal(t, "Error: boom", describeError(assertErr("boom")))
}

type assertErr string

func (e assertErr) Error() string { return string(e) }
