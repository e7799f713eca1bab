package server

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/gokatarajesh/trivia-api/internal/config"
	"github.com/gokatarajesh/trivia-api/internal/logging"
)

type recordingRoutes struct {
	called string
	pathID string
	hasLog bool
	panics bool
}

func (s *recordingRoutes) record(name string, w http.ResponseWriter, r *http.Request) {
	if s.panics {
		panic("boom")
	}
	s.called = name
	s.pathID = r.PathValue("id")
	_, s.hasLog = logging.Lookup(r.Context())
	w.Header().Set("Content-Type", "application/json")
	_, _ = w.Write([]byte(`{"success":true}`))
}

func (s *recordingRoutes) ListCategories(w http.ResponseWriter, r *http.Request) {
	s.record("ListCategories", w, r)
}

func (s *recordingRoutes) ListQuestions(w http.ResponseWriter, r *http.Request) {
	s.record("ListQuestions", w, r)
}

func (s *recordingRoutes) CreateOrSearchQuestions(w http.ResponseWriter, r *http.Request) {
	s.record("CreateOrSearchQuestions", w, r)
}

func (s *recordingRoutes) DeleteQuestion(w http.ResponseWriter, r *http.Request) {
	s.record("DeleteQuestion", w, r)
}

func (s *recordingRoutes) QuestionsByCategory(w http.ResponseWriter, r *http.Request) {
	s.record("QuestionsByCategory", w, r)
}

func (s *recordingRoutes) PlayQuiz(w http.ResponseWriter, r *http.Request) {
	s.record("PlayQuiz", w, r)
}

func testConfig() *config.App {
	return &config.App{
		HTTPAddr: "127.0.0.1:0",
		CORS: config.CORS{
			AllowedOrigins: []string{"*"},
			AllowedMethods: []string{"GET", "PATCH", "POST", "DELETE", "OPTIONS"},
			AllowedHeaders: []string{"Content-Type", "Authorization"},
			MaxAge:         3600,
		},
	}
}

func newTestRouter(routes *recordingRoutes, ping PingFunc) http.Handler {
	if ping == nil {
		ping = func(context.Context) error { return nil }
	}
	return NewRouter(testConfig(), zerolog.Nop(), ping, routes)
}

func decodeEnvelope(t *testing.T, rec *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return body
}

func TestRoutesDispatch(t *testing.T) {
	cases := []struct {
		method  string
		path    string
		handler string
		id      string
	}{
		{http.MethodGet, "/categories", "ListCategories", ""},
		{http.MethodGet, "/categories/3/questions", "QuestionsByCategory", "3"},
		{http.MethodGet, "/questions?page=2", "ListQuestions", ""},
		{http.MethodPost, "/questions", "CreateOrSearchQuestions", ""},
		{http.MethodDelete, "/questions/12", "DeleteQuestion", "12"},
		{http.MethodPost, "/quizzes", "PlayQuiz", ""},
	}

	for _, tc := range cases {
		t.Run(tc.method+" "+tc.path, func(t *testing.T) {
			routes := &recordingRoutes{}
			rec := httptest.NewRecorder()
			newTestRouter(routes, nil).ServeHTTP(rec, httptest.NewRequest(tc.method, tc.path, nil))

			assert.Equal(t, http.StatusOK, rec.Code)
			assert.Equal(t, tc.handler, routes.called)
			assert.Equal(t, tc.id, routes.pathID)
			assert.True(t, routes.hasLog, "request logger should be in context")
		})
	}
}

func TestUnknownRouteUsesEnvelope(t *testing.T) {
	rec := httptest.NewRecorder()
	newTestRouter(&recordingRoutes{}, nil).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/nope", nil))

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	body := decodeEnvelope(t, rec)
	assert.Equal(t, false, body["success"])
	assert.Equal(t, float64(404), body["error"])
	assert.Equal(t, "resource not found", body["message"])
}

func TestDisallowedMethodUsesEnvelope(t *testing.T) {
	rec := httptest.NewRecorder()
	newTestRouter(&recordingRoutes{}, nil).ServeHTTP(rec, httptest.NewRequest(http.MethodPut, "/questions", nil))

	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
	assert.Contains(t, rec.Header().Get("Allow"), http.MethodPost)
	body := decodeEnvelope(t, rec)
	assert.Equal(t, float64(405), body["error"])
	assert.Equal(t, "method not allowed", body["message"])
}

func TestHealthz(t *testing.T) {
	rec := httptest.NewRecorder()
	newTestRouter(&recordingRoutes{}, nil).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())
}

func TestPingFailure(t *testing.T) {
	ping := func(context.Context) error { return errors.New("postgres down") }

	rec := httptest.NewRecorder()
	newTestRouter(&recordingRoutes{}, ping).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/v1/ping", nil))

	assert.Equal(t, http.StatusBadGateway, rec.Code)
	assert.Equal(t, float64(502), decodeEnvelope(t, rec)["error"])
}

func TestMetricsExposed(t *testing.T) {
	router := newTestRouter(&recordingRoutes{}, nil)
	router.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/categories", nil))

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `trivia_http_requests_total{route="GET /categories",status="200"}`)
}

func TestCORSPreflight(t *testing.T) {
	req := httptest.NewRequest(http.MethodOptions, "/questions", nil)
	req.Header.Set("Origin", "http://localhost:3000")
	req.Header.Set("Access-Control-Request-Method", http.MethodDelete)

	rec := httptest.NewRecorder()
	newTestRouter(&recordingRoutes{}, nil).ServeHTTP(rec, req)

	assert.Less(t, rec.Code, 300)
	assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
	assert.Contains(t, rec.Header().Get("Access-Control-Allow-Methods"), http.MethodDelete)
}

func TestRequestIDPropagation(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/healthz", nil)
	req.Header.Set("X-Request-ID", "req-42")

	rec := httptest.NewRecorder()
	newTestRouter(&recordingRoutes{}, nil).ServeHTTP(rec, req)
	assert.Equal(t, "req-42", rec.Header().Get("X-Request-ID"))

	rec = httptest.NewRecorder()
	newTestRouter(&recordingRoutes{}, nil).ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	assert.NotEmpty(t, rec.Header().Get("X-Request-ID"))
}

func TestHandlerPanicUsesEnvelope(t *testing.T) {
	var buf bytes.Buffer
	router := NewRouter(testConfig(), zerolog.New(&buf), func(context.Context) error { return nil }, &recordingRoutes{panics: true})

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/categories", nil))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	body := decodeEnvelope(t, rec)
	assert.Equal(t, float64(500), body["error"])
	assert.Equal(t, "internal server error", body["message"])
	assert.Contains(t, buf.String(), "handler panicked")
	assert.Contains(t, buf.String(), `"status":500`)
}

func TestPingFailureLogsWithRequestID(t *testing.T) {
	var buf bytes.Buffer
	ping := func(context.Context) error { return errors.New("redis down") }
	router := NewRouter(testConfig(), zerolog.New(&buf), ping, &recordingRoutes{})

	req := httptest.NewRequest(http.MethodGet, "/v1/ping", nil)
	req.Header.Set("X-Request-ID", "ping-1")
	router.ServeHTTP(httptest.NewRecorder(), req)

	assert.Contains(t, buf.String(), "dependency ping failed")
	assert.Contains(t, buf.String(), `"request_id":"ping-1"`)
}
