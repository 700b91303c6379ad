package client

import (
	"net/http"
	"net/http/httptest"
	"testing"
)

// newRawServer serves h directly; used where the fake backend cannot
// produce the response under test.
func newRawServer(t *testing.T, h http.HandlerFunc) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(h)
	t.Cleanup(srv.Close)
	return srv
}
