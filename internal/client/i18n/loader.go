// Package i18n loads display strings from the backend. Loading never fails:
// any problem yields an empty Strings and every lookup falls back to the
// default text supplied by the caller.
package i18n

import (
	"context"
	"strings"

	"github.com/dmitrijs2005/deepneumoscan/internal/common"
	"github.com/dmitrijs2005/deepneumoscan/internal/logging"
)

// Source fetches the raw key/text mapping for a language.
type Source interface {
	Strings(ctx context.Context, lang string) (map[string]string, error)
}

type Strings map[string]string

// Get returns the text for key, or fallback when it is missing or empty.
func (s Strings) Get(key, fallback string) string {
	if v, ok := s[key]; ok && v != "" {
		return v
	}
	return fallback
}

// Format is Get followed by substitution of {name} placeholders.
func (s Strings) Format(key, fallback string, vars map[string]string) string {
	text := s.Get(key, fallback)
	if len(vars) == 0 {
		return text
	}
	pairs := make([]string, 0, len(vars)*2)
	for k, v := range vars {
		pairs = append(pairs, "{"+k+"}", v)
	}
	return strings.NewReplacer(pairs...).Replace(text)
}

type Loader struct {
	source Source
	logger logging.Logger
}

func NewLoader(source Source, logger logging.Logger) *Loader {
	return &Loader{source: source, logger: logger}
}

// Load returns the strings for lang ("en" when empty).
func (l *Loader) Load(ctx context.Context, lang string) Strings {
	lang = common.LanguageOrDefault(lang)

	m, err := l.source.Strings(ctx, lang)
	if err != nil {
		l.logger.Warn(ctx, "failed to load strings, using defaults", "lang", lang, "error", err)
		return Strings{}
	}
	if m == nil {
		return Strings{}
	}
	return Strings(m)
}

// LoadAsync runs Load in a goroutine. The channel receives exactly one
// value and is then closed.
func (l *Loader) LoadAsync(ctx context.Context, lang string) <-chan Strings {
	ch := make(chan Strings, 1)
	go func() {
		defer close(ch)
		ch <- l.Load(ctx, lang)
	}()
	return ch
}
