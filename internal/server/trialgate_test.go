package server

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jonathan/atsfit/internal/trial"
)

func newGatedHandler(t *testing.T, maxAttempts int) (http.Handler, *int) {
	t.Helper()
	env := newTestEnv(t)
	env.server.trials = trial.NewManager(trial.NewMemoryStore(), trial.WithMaxAttempts(maxAttempts))

	calls := 0
	gated := env.server.withTrialGate(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		calls++
		w.WriteHeader(http.StatusOK)
	}))
	return gated, &calls
}

func TestWithTrialGate_AllowsUpToCap(t *testing.T) {
	gated, calls := newGatedHandler(t, 3)

	for i := 0; i < 3; i++ {
		rec := httptest.NewRecorder()
		gated.ServeHTTP(rec, httptest.NewRequest("POST", "/gated", nil))
		assert.Equal(t, http.StatusOK, rec.Code, "attempt %d should pass", i+1)
	}
	assert.Equal(t, 3, *calls)
}

func TestWithTrialGate_BlocksWhenExhausted(t *testing.T) {
	gated, calls := newGatedHandler(t, 1)

	rec := httptest.NewRecorder()
	gated.ServeHTTP(rec, httptest.NewRequest("POST", "/gated", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	rec = httptest.NewRecorder()
	gated.ServeHTTP(rec, httptest.NewRequest("POST", "/gated", nil))
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
	assert.Contains(t, rec.Body.String(), "trial_limit_reached")
	assert.Contains(t, rec.Body.String(), "Trial limit reached")
	assert.Equal(t, 1, *calls)
}

func TestWithTrialGate_SetsRemainingHeader(t *testing.T) {
	gated, _ := newGatedHandler(t, 3)

	rec := httptest.NewRecorder()
	gated.ServeHTTP(rec, httptest.NewRequest("POST", "/gated", nil))
	assert.Equal(t, "2", rec.Header().Get("X-Trial-Remaining"))
}

func TestWithTrialGate_ResetRestoresAccess(t *testing.T) {
	env := newTestEnv(t)
	env.server.trials = trial.NewManager(trial.NewMemoryStore(), trial.WithMaxAttempts(1))
	gated := env.server.withTrialGate(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	}))

	rec := httptest.NewRecorder()
	gated.ServeHTTP(rec, httptest.NewRequest("POST", "/gated", nil))
	require.Equal(t, http.StatusOK, rec.Code)

	rec = httptest.NewRecorder()
	gated.ServeHTTP(rec, httptest.NewRequest("POST", "/gated", nil))
	require.Equal(t, http.StatusTooManyRequests, rec.Code)

	resetRec := env.do("POST", "/api/trial/reset", nil)
	require.Equal(t, http.StatusOK, resetRec.Code)

	rec = httptest.NewRecorder()
	gated.ServeHTTP(rec, httptest.NewRequest("POST", "/gated", nil))
	assert.Equal(t, http.StatusOK, rec.Code)
}
