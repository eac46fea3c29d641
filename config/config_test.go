package config

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	json "github.com/goccy/go-json"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/linesmerrill/fiscal-cidadao/models"
)

func TestNew(t *testing.T) {
	t.Setenv("FISCAL_PORT", "9090")
	conf, err := New()

	require.NoError(t, err)
	assert.Equal(t, "9090", conf.Port)
	assert.Equal(t, ":9090", conf.Addr())
}

func TestLoadDefaults(t *testing.T) {
	conf, err := Load()

	require.NoError(t, err)
	assert.Equal(t, "8080", conf.Port)
	assert.Equal(t, "local", conf.Env)
	assert.Equal(t, 2*time.Second, conf.GeolocationDelay)
	assert.Equal(t, 1500*time.Millisecond, conf.SubmissionDelay)
	assert.Equal(t, 3*time.Second, conf.NotificationTTL)
	assert.Equal(t, 30*time.Minute, conf.SessionIdleTimeout)
	assert.Equal(t, "@every 5m", conf.SweepSchedule)
	assert.Equal(t, int64(32<<20), conf.MaxUploadBytes)
	assert.Equal(t, 15, conf.ExperiencePerReport)
}

func TestLoadFallsBackToUnprefixedPort(t *testing.T) {
	t.Setenv("PORT", "5000")
	conf, err := Load()

	require.NoError(t, err)
	assert.Equal(t, "5000", conf.Port)
}

func TestLoadRejectsInvalidValues(t *testing.T) {
	t.Setenv("FISCAL_ENV", "staging")
	_, err := Load()
	assert.Error(t, err)
}

func TestLoadRejectsBadDuration(t *testing.T) {
	t.Setenv("FISCAL_SUBMISSION_DELAY", "soon")
	_, err := Load()
	assert.Error(t, err)
}

func TestErrorStatus(t *testing.T) {
	rr := httptest.NewRecorder()
	ErrorStatus("error it borked", http.StatusBadRequest, rr, errors.New("bad request"))

	assert.Equal(t, http.StatusBadRequest, rr.Code)
	var body models.ErrorMessageResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &body))
	assert.Equal(t, "error it borked", body.Response.Message)
	assert.Equal(t, "bad request", body.Response.Error)
}

func TestSetLoggerSetsDevelopmentLogger(t *testing.T) {
	l, err := setLogger("development")
	assert.NoError(t, err)
	assert.True(t, l.Core().Enabled(1))
}

func TestSetLoggerSetsProductionLogger(t *testing.T) {
	l, err := setLogger("production")
	assert.NoError(t, err)
	assert.True(t, l.Core().Enabled(2))
}

func TestSetLoggerSetsLocalLogger(t *testing.T) {
	l, err := setLogger("local")
	assert.NoError(t, err)
	assert.True(t, l.Core().Enabled(0))
}
