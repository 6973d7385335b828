package server

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/taiwoajasa245/memories-api/internal/database"
	"github.com/taiwoajasa245/memories-api/pkg/config"
	"github.com/taiwoajasa245/memories-api/pkg/util"
)

func newTestConfig(t *testing.T) *config.Config {
	t.Helper()
	dir := t.TempDir()
	return &config.Config{
		Port:              "0",
		DBDriver:          database.DriverSQLite,
		SQLitePath:        filepath.Join(dir, "memories.db"),
		StoreBackend:      "sql",
		DataDir:           dir,
		DocumentCacheSize: 8,
		Timezone:          "UTC",
		Participants:      []string{"Ichrak", "Yassine"},
		ParticipantEmails: map[string]string{},
		RevealInterval:    20 * time.Millisecond,
	}
}

func newTestServer(t *testing.T, cfg *config.Config) *Server {
	t.Helper()
	db, err := database.New(cfg)
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	s, err := NewServer(db, cfg, zerolog.Nop())
	require.NoError(t, err)
	return s
}

func serve(h http.Handler, method, path, body, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)
	return rec
}

func TestHealthAndHome(t *testing.T) {
	h := newTestServer(t, newTestConfig(t)).Handler()

	rec := serve(h, http.MethodGet, "/health", "", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"status":"up"`)

	rec = serve(h, http.MethodGet, "/", "", "")
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestOpenSiteRoutes(t *testing.T) {
	h := newTestServer(t, newTestConfig(t)).Handler()

	for _, path := range []string{
		"/api/adventures", "/api/library", "/api/letters",
		"/api/memories", "/api/playlist", "/api/preferences",
	} {
		rec := serve(h, http.MethodGet, path, "", "")
		assert.Equal(t, http.StatusOK, rec.Code, path)
		assert.Contains(t, rec.Body.String(), `"success":true`, path)
	}

	rec := serve(h, http.MethodGet, "/api/gallery", "", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `[]`, rec.Body.String())

	rec = serve(h, http.MethodPost, "/api/gallery", `[{"id":"1","url":"u","caption":"c","date":"2024-01-01"}]`, "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"success":true}`, rec.Body.String())

	rec = serve(h, http.MethodPost, "/api/adventures/travel/items", `{"text":"Kyoto"}`, "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Kyoto")

	rec = serve(h, http.MethodGet, "/api/auth/verify", "", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"enabled":false`)
}

func TestProtectedSite(t *testing.T) {
	cfg := newTestConfig(t)
	hash, err := util.HashPasswordBcrypt("forever")
	require.NoError(t, err)
	cfg.SitePasswordHash = hash
	cfg.JWTSecret = "test-secret"
	h := newTestServer(t, cfg).Handler()

	rec := serve(h, http.MethodGet, "/api/letters", "", "")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = serve(h, http.MethodPost, "/api/auth/login", `{"password":"forever"}`, "")
	require.Equal(t, http.StatusOK, rec.Code)
	var env struct {
		Data struct {
			Token string `json:"token"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))

	rec = serve(h, http.MethodGet, "/api/letters", "", env.Data.Token)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestPastDueLetterOpensAndJobsStop(t *testing.T) {
	s := newTestServer(t, newTestConfig(t))
	h := s.Handler()

	s.StartBackgroundJobs()

	rec := serve(h, http.MethodPost, "/api/letters",
		`{"from":"Ichrak","to":"Yassine","message":"past due","revealDate":"2000-01-01","revealImmediately":false}`, "")
	require.Equal(t, http.StatusOK, rec.Code)

	var env struct {
		Data struct {
			Revealed []json.RawMessage `json:"revealed"`
			Sealed   []json.RawMessage `json:"sealed"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &env))
	assert.Len(t, env.Data.Revealed, 1)
	assert.Empty(t, env.Data.Sealed)

	done := make(chan struct{})
	go func() {
		s.StopBackgroundJobs()
		close(done)
	}()
	select {
	case <-done:
	case <-time.After(2 * time.Second):
		t.Fatal("background jobs did not stop")
	}
}

func TestServerWithMailConfigured(t *testing.T) {
	cfg := newTestConfig(t)
	cfg.SmtpFrom = "us@example.com"
	cfg.SmtpPassword = "app-password"
	cfg.SmtpHost = "127.0.0.1"
	cfg.SmtpPort = "1"
	cfg.ParticipantEmails = map[string]string{"Yassine": "yassine@example.com"}
	require.True(t, cfg.MailEnabled())

	h := newTestServer(t, cfg).Handler()

	rec := serve(h, http.MethodPost, "/api/letters",
		`{"from":"Ichrak","to":"Yassine","message":"later","revealDate":"2999-01-01","revealImmediately":false}`, "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"sealed":[{`)
}
