package i18n

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/dmitrijs2005/deepneumoscan/internal/client/backendtest"
	"github.com/dmitrijs2005/deepneumoscan/internal/client/client"
	"github.com/dmitrijs2005/deepneumoscan/internal/logging"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeSource struct {
	m        map[string]string
	err      error
	lastLang string
}

func (f *fakeSource) Strings(_ context.Context, lang string) (map[string]string, error) {
	f.lastLang = lang
	return f.m, f.err
}

func TestStrings_Get(t *testing.T) {
	s := Strings{"welcome": "Hello", "empty": ""}

	assert.Equal(t, "Hello", s.Get("welcome", "Welcome"))
	assert.Equal(t, "Default", s.Get("missing", "Default"))
	assert.Equal(t, "Default", s.Get("empty", "Default"))

	var nilStrings Strings
	assert.Equal(t, "Default", nilStrings.Get("welcome", "Default"))
}

func TestStrings_Format(t *testing.T) {
	s := Strings{"greet": "Namaskara, {name}!"}

	assert.Equal(t, "Namaskara, A!", s.Format("greet", "Welcome, {name}", map[string]string{"name": "A"}))
	assert.Equal(t, "Welcome, B", Strings{}.Format("greet", "Welcome, {name}", map[string]string{"name": "B"}))
	assert.Equal(t, "Welcome, {name}", Strings{}.Format("greet", "Welcome, {name}", nil))
}

func TestLoad_DefaultsLanguageToEnglish(t *testing.T) {
	src := &fakeSource{m: map[string]string{"a": "b"}}
	l := NewLoader(src, logging.NewNop())

	s := l.Load(context.Background(), "")
	assert.Equal(t, "en", src.lastLang)
	assert.Equal(t, Strings{"a": "b"}, s)
}

func TestLoad_ErrorYieldsEmpty(t *testing.T) {
	src := &fakeSource{err: errors.New("boom")}
	l := NewLoader(src, logging.NewNop())

	s := l.Load(context.Background(), "kn")
	require.NotNil(t, s)
	assert.Empty(t, s)
	assert.Equal(t, "Welcome", s.Get("welcome", "Welcome"))
}

func TestLoadAsync_DeliversOnce(t *testing.T) {
	src := &fakeSource{m: map[string]string{"welcome": "Hi"}}
	l := NewLoader(src, logging.NewNop())

	ch := l.LoadAsync(context.Background(), "en")
	select {
	case s := <-ch:
		assert.Equal(t, "Hi", s.Get("welcome", ""))
	case <-time.After(time.Second):
		t.Fatal("strings not delivered")
	}
	_, open := <-ch
	assert.False(t, open)
}

func TestLoad_AgainstBackend(t *testing.T) {
	b, srv := backendtest.NewServer(t)
	b.SetStrings("kn", map[string]string{"welcome": "Swagata"})

	c, err := client.NewHTTPClient(srv.URL, time.Second, logging.NewNop())
	require.NoError(t, err)
	l := NewLoader(c, logging.NewNop())
	ctx := context.Background()

	assert.Equal(t, "Swagata", l.Load(ctx, "kn").Get("welcome", "Welcome"))

	unknown := l.Load(ctx, "xx")
	assert.Empty(t, unknown)
	assert.Equal(t, "Welcome", unknown.Get("welcome", "Welcome"))

	b.Fail(backendtest.RouteStrings, 500)
	assert.Empty(t, l.Load(ctx, "kn"))
}
