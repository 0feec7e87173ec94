package main

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"bookcatalog/internal/book"
	"bookcatalog/internal/config"
	"bookcatalog/internal/httpx"
	"bookcatalog/internal/importer"
	"bookcatalog/internal/testutil"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testConfig() *config.Config {
	return &config.Config{
		DBDriver:           config.DriverSQLite,
		SQLitePath:         ":memory:",
		DBTimeout:          5 * time.Second,
		CORSAllowedOrigins: []string{"http://app.example"},
		RateLimitRPS:       100,
		RateLimitBurst:     100,
	}
}

func newTestServer(t *testing.T) (http.Handler, *store) {
	t.Helper()
	cfg := testConfig()

	st, err := openStore(context.Background(), cfg)
	require.NoError(t, err)
	t.Cleanup(st.close)

	limiter := httpx.NewRateLimitMiddleware(cfg.RateLimitRPS, cfg.RateLimitBurst, cfg.TrustProxy)
	t.Cleanup(limiter.Close)

	return newHandler(cfg, newRouter(st.books), limiter), st
}

func TestRouter_Health(t *testing.T) {
	h, _ := newTestServer(t)

	w := testutil.Do(h, testutil.NewRequest("healthz"))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "ok", w.Body.String())
	assert.NotEmpty(t, w.Header().Get("X-Request-Id"))
	assert.Equal(t, "nosniff", w.Header().Get("X-Content-Type-Options"))

	w = testutil.Do(h, testutil.NewRequest("readyz"))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "ready", w.Body.String())
}

func TestRouter_ReadyzReportsStorageFailure(t *testing.T) {
	ctrl := gomock.NewController(t)
	repo := book.NewMockRepository(ctrl)
	repo.EXPECT().Ping(gomock.Any()).Return(errors.New("connection refused"))

	w := testutil.Do(newRouter(repo), testutil.NewRequest("readyz"))

	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	assert.Contains(t, w.Body.String(), "NOT_READY")
}

func TestRouter_BundledImportThenLookups(t *testing.T) {
	h, st := newTestServer(t)
	require.NoError(t, importer.NewService(st.books, st.runs, importer.Config{}).Run(context.Background()))

	w := testutil.Do(h, testutil.NewRequest("books", "Go"))
	require.Equal(t, http.StatusOK, w.Code)
	found := testutil.DecodeJSON[[]book.Book](t, w)
	assert.Equal(t, []string{"The Go Programming Language", "Concurrency in Go", "Learning Go"}, testutil.Titles(found))

	w = testutil.Do(h, testutil.NewRequest("book", "title", "Learning Go"))
	require.Equal(t, http.StatusOK, w.Code)
	exact := testutil.DecodeJSON[[]book.Book](t, w)
	require.Len(t, exact, 1)
	assert.Equal(t, 2, exact[0].Rating)

	w = testutil.Do(h, testutil.NewRequest("book", "Martin Fowler"))
	require.Equal(t, http.StatusOK, w.Code)
	byTitle := testutil.DecodeJSON[map[string]book.Book](t, w)
	assert.Len(t, byTitle, 2)
	assert.Equal(t, 22, byTitle["Refactoring"].Rating)

	w = testutil.Do(h, testutil.NewRequest("book", "Nobody At All"))
	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{}`, w.Body.String())
}

func TestRouter_CORSPreflight(t *testing.T) {
	h, _ := newTestServer(t)

	r := httptest.NewRequest(http.MethodOptions, "/books/Go", nil)
	r.Header.Set("Origin", "http://app.example")
	w := testutil.Do(h, r)

	assert.Equal(t, http.StatusNoContent, w.Code)
	assert.Equal(t, "http://app.example", w.Header().Get("Access-Control-Allow-Origin"))
}

func TestRouter_UnknownMethod(t *testing.T) {
	h, _ := newTestServer(t)

	w := testutil.Do(h, httptest.NewRequest(http.MethodPost, "/book/Ann", nil))

	assert.Equal(t, http.StatusMethodNotAllowed, w.Code)
}
