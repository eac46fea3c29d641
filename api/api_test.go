package api

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/linesmerrill/fiscal-cidadao/databases"
	"github.com/linesmerrill/fiscal-cidadao/geolocation"
	"github.com/linesmerrill/fiscal-cidadao/session"
)

func newManager(t *testing.T) *session.Manager {
	t.Helper()
	m := session.NewManager(databases.Seed, session.DefaultOptions(), session.Deps{
		Violations: databases.NewViolationTypeDatabase(),
		Evidence:   databases.NewEvidenceDatabase(),
		Locator:    geolocation.NewMockLocator(0),
	})
	t.Cleanup(m.Close)
	return m
}

func TestHealthCheckHandler(t *testing.T) {
	rr := httptest.NewRecorder()
	HealthCheckHandler(rr, httptest.NewRequest("GET", "/health", nil))

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.JSONEq(t, `{"alive": true}`, rr.Body.String())
}

func TestSessionMiddleware(t *testing.T) {
	m := newManager(t)
	var seen *session.Session
	handler := SessionMiddleware(m, "https://fiscal.example.com")(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		s, ok := SessionFromContext(r.Context())
		require.True(t, ok)
		seen = s
	}))

	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, httptest.NewRequest("GET", "/", nil))
	cookies := rr.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, SessionCookie, cookies[0].Name)
	assert.Equal(t, seen.ID, cookies[0].Value)
	assert.True(t, cookies[0].Secure)
	first := seen

	req := httptest.NewRequest("GET", "/", nil)
	req.AddCookie(cookies[0])
	rr = httptest.NewRecorder()
	handler.ServeHTTP(rr, req)
	assert.Empty(t, rr.Result().Cookies())
	assert.Same(t, first, seen)

	req = httptest.NewRequest("GET", "/", nil)
	req.AddCookie(&http.Cookie{Name: SessionCookie, Value: "expired"})
	rr = httptest.NewRecorder()
	handler.ServeHTTP(rr, req)
	assert.Len(t, rr.Result().Cookies(), 1)
	assert.NotSame(t, first, seen)
	assert.Equal(t, 2, m.Len())
}

func TestSessionFromContext_Missing(t *testing.T) {
	_, ok := SessionFromContext(httptest.NewRequest("GET", "/", nil).Context())
	assert.False(t, ok)
}

func TestTimeoutMiddleware(t *testing.T) {
	slow := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-r.Context().Done():
		case <-time.After(time.Second):
		}
		w.WriteHeader(http.StatusOK)
	})

	rr := httptest.NewRecorder()
	TimeoutMiddleware(20*time.Millisecond)(slow).ServeHTTP(rr, httptest.NewRequest("GET", "/slow", nil))
	assert.Equal(t, http.StatusRequestTimeout, rr.Code)
	assert.Contains(t, rr.Body.String(), "Request timeout")
}

func TestTimeoutMiddleware_Skip(t *testing.T) {
	called := false
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, hasDeadline := r.Context().Deadline()
		assert.False(t, hasDeadline)
		called = true
	})

	TimeoutMiddleware(time.Millisecond, "/ws")(next).ServeHTTP(httptest.NewRecorder(), httptest.NewRequest("GET", "/ws", nil))
	assert.True(t, called)
}

func TestMetricsMiddleware_RequestID(t *testing.T) {
	var id string
	next := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id = RequestIDFromContext(r.Context())
		w.WriteHeader(http.StatusTeapot)
	})

	rr := httptest.NewRecorder()
	MetricsMiddleware(next).ServeHTTP(rr, httptest.NewRequest("GET", "/anything", nil))
	assert.Equal(t, http.StatusTeapot, rr.Code)
	assert.NotEmpty(t, id)
	assert.Equal(t, id, rr.Header().Get(RequestIDHeader))

	req := httptest.NewRequest("GET", "/anything", nil)
	req.Header.Set(RequestIDHeader, "abc")
	rr = httptest.NewRecorder()
	MetricsMiddleware(next).ServeHTTP(rr, req)
	assert.Equal(t, "abc", id)
}
