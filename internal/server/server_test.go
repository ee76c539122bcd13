package server

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/phanxgames/folio/content"
)

func writeFile(t *testing.T, dir, name, body string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(body), 0o644))
}

func newTestServer(t *testing.T) (*Server, string) {
	t.Helper()
	dir := t.TempDir()
	writeFile(t, dir, "profile.json", `{"first_name":"Ada","last_name":"Lovelace","title":"Engineer"}`)
	writeFile(t, dir, "metrics.json", `[{"value":"15+","label":"Projects"},{"value":"100M+","label":"Requests"}]`)
	writeFile(t, dir, "about_me.md", "Hello **world**\n")
	writeFile(t, dir, "about_logo.md", "logo")
	writeFile(t, dir, "tech_stack.json", `{"categories":[{"name":"Backend","tags":["Go","Python"]}]}`)

	static := t.TempDir()
	writeFile(t, static, "index.html", "<html>folio</html>")
	writeFile(t, static, "app.css", "body{}")

	srv := New(Config{StaticDir: static}, content.NewStore(dir, nil), nil)
	return srv, dir
}

func get(t *testing.T, srv *Server, path string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	w := httptest.NewRecorder()
	srv.Handler().ServeHTTP(w, req)
	return w
}

func TestHealthCheck(t *testing.T) {
	srv, _ := newTestServer(t)
	w := get(t, srv, "/healthz")
	require.Equal(t, http.StatusOK, w.Code)

	var body map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "ok", body["status"])
}

func TestSectionEndpoints(t *testing.T) {
	srv, _ := newTestServer(t)

	w := get(t, srv, "/api/profile")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "application/json", w.Header().Get("Content-Type"))
	var profile content.Profile
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &profile))
	assert.Equal(t, "Ada Lovelace", profile.FullName())

	w = get(t, srv, "/api/metrics")
	require.Equal(t, http.StatusOK, w.Code)
	var metrics []content.Metric
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &metrics))
	require.Len(t, metrics, 2)
	assert.Equal(t, "100M+", metrics[1].Value)

	w = get(t, srv, "/api/about")
	require.Equal(t, http.StatusOK, w.Code)
	var about content.About
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &about))
	assert.Equal(t, "<p>Hello <strong>world</strong></p>", about.AboutMe)

	w = get(t, srv, "/api/tech-stack")
	require.Equal(t, http.StatusOK, w.Code)
	var stack content.TechStack
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &stack))
	require.Len(t, stack.Categories, 1)
	assert.Equal(t, []string{"Go", "Python"}, stack.Categories[0].Tags)
}

func TestMissingSectionIsNotFound(t *testing.T) {
	srv, _ := newTestServer(t)
	w := get(t, srv, "/api/contact")
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestMalformedSectionIsServerError(t *testing.T) {
	srv, dir := newTestServer(t)
	writeFile(t, dir, "skills.json", `{"skills": [`)
	w := get(t, srv, "/api/skills")
	assert.Equal(t, http.StatusInternalServerError, w.Code)
}

func TestStaticAndIndex(t *testing.T) {
	srv, _ := newTestServer(t)

	w := get(t, srv, "/")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "folio")

	w = get(t, srv, "/static/app.css")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "body{}", w.Body.String())
}

func TestCORSHeaders(t *testing.T) {
	srv, _ := newTestServer(t)

	req := httptest.NewRequest(http.MethodOptions, "/api/profile", nil)
	req.Header.Set("Origin", "http://example.com")
	req.Header.Set("Access-Control-Request-Method", "GET")
	w := httptest.NewRecorder()
	srv.Handler().ServeHTTP(w, req)

	assert.NotEmpty(t, w.Header().Get("Access-Control-Allow-Origin"))
}

func TestRequestMetrics(t *testing.T) {
	srv, _ := newTestServer(t)
	get(t, srv, "/api/profile")
	get(t, srv, "/api/profile")
	get(t, srv, "/api/contact")

	ok := srv.metrics.requests.WithLabelValues("/api/profile", http.MethodGet, "200")
	assert.Equal(t, 2.0, testutil.ToFloat64(ok))
	missing := srv.metrics.requests.WithLabelValues("/api/contact", http.MethodGet, "404")
	assert.Equal(t, 1.0, testutil.ToFloat64(missing))

	w := get(t, srv, "/metrics")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "folio_http_request_duration_seconds")
}
