package app_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"go-roster/internal/app"
	"go-roster/internal/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func testConfig() *config.Config {
	return &config.Config{
		App:     config.AppConfig{Env: "test"},
		Storage: config.StorageConfig{Driver: config.StorageDriverMemory},
		Session: config.SessionConfig{
			Passcode:   "123456",
			Secret:     "test-secret",
			TTL:        time.Hour,
			CookieName: "roster_session",
		},
		Import: config.ImportConfig{MaxBytes: 1 << 20},
	}
}

type envelope struct {
	Ok    bool            `json:"ok"`
	Data  json.RawMessage `json:"data"`
	Error *struct {
		Code string `json:"code"`
	} `json:"error"`
}

func call(t *testing.T, a *app.App, method, path, token, body string) (int, envelope) {
	t.Helper()
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	a.Router.ServeHTTP(w, req)

	var env envelope
	if strings.HasPrefix(w.Header().Get("Content-Type"), "application/json") {
		require.NoError(t, json.Unmarshal(w.Body.Bytes(), &env))
	}
	return w.Code, env
}

func TestBuildApp_RosterFlow(t *testing.T) {
	a, err := app.BuildApp(testConfig(), zap.NewNop())
	require.NoError(t, err)
	defer a.Close(context.Background())

	w := httptest.NewRecorder()
	a.Router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	assert.Equal(t, http.StatusOK, w.Code)

	status, _ := call(t, a, http.MethodGet, "/api/v1/staff", "", "")
	assert.Equal(t, http.StatusUnauthorized, status)

	status, env := call(t, a, http.MethodPost, "/api/v1/session/login", "", `{"passcode":"000000"}`)
	assert.Equal(t, http.StatusUnauthorized, status)
	assert.Equal(t, "INVALID_PASSCODE", env.Error.Code)

	status, env = call(t, a, http.MethodPost, "/api/v1/session/login", "", `{"passcode":"123456"}`)
	require.Equal(t, http.StatusOK, status)
	var login struct {
		Token string `json:"token"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &login))
	require.NotEmpty(t, login.Token)

	status, env = call(t, a, http.MethodPost, "/api/v1/staff", login.Token,
		`{"staffId":"S1","name":"A","mobile":"9876543210","email":"a@b.co","designation":"Prof","dateOfJoining":"2020-01-01"}`)
	require.Equal(t, http.StatusCreated, status)
	var created struct {
		ID         string `json:"id"`
		Type       string `json:"type"`
		Status     string `json:"status"`
		Experience string `json:"experience"`
	}
	require.NoError(t, json.Unmarshal(env.Data, &created))
	assert.NotEmpty(t, created.ID)
	assert.Equal(t, "Teaching", created.Type)
	assert.Equal(t, "Active", created.Status)
	assert.Equal(t, "0Y 0M", created.Experience)

	status, env = call(t, a, http.MethodGet, "/api/v1/staff?status=Active", login.Token, "")
	require.Equal(t, http.StatusOK, status)
	assert.Contains(t, string(env.Data), created.ID)

	status, _ = call(t, a, http.MethodPost, "/api/v1/session/logout", login.Token, "")
	assert.Equal(t, http.StatusOK, status)

	status, _ = call(t, a, http.MethodGet, "/api/v1/staff", login.Token, "")
	assert.Equal(t, http.StatusUnauthorized, status)
}
