package server

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jmtong/talentpipe/internal/db"
)

func newAuthedEnv(t *testing.T) (*testEnv, *JWTService) {
	t.Helper()

	jwtService, err := NewJWTService("router-test-secret")
	require.NoError(t, err)

	store := newFakeStore()
	srv, err := NewWithDeps(Config{}, Deps{
		Store: store,
		LLM:   newFakeLLM(),
		JWT:   jwtService,
	})
	require.NoError(t, err)

	return &testEnv{server: srv, store: store}, jwtService
}

func TestAuthEnabled_HealthOpen(t *testing.T) {
	env, _ := newAuthedEnv(t)

	rec := env.request(t, "GET", "/health", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestAuthEnabled_RejectsMissingToken(t *testing.T) {
	env, _ := newAuthedEnv(t)

	rec := env.request(t, "GET", "/jobs", nil)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAuthEnabled_TokenUserWins(t *testing.T) {
	env, jwtService := newAuthedEnv(t)

	userID := uuid.New()
	token, err := jwtService.GenerateToken(userID)
	require.NoError(t, err)

	body, err := json.Marshal(map[string]string{"content": "Senior backend engineer"})
	require.NoError(t, err)

	req := httptest.NewRequest("POST", "/jobs", bytes.NewReader(body))
	req.Header.Set("Authorization", "Bearer "+token)
	req.RemoteAddr = "10.0.0.1:12345"
	rec := httptest.NewRecorder()
	env.server.Handler().ServeHTTP(rec, req)

	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	job := decodeBody[db.Job](t, rec)
	assert.Equal(t, userID, job.UserID)
}

func TestAuthEnabled_RejectsBadToken(t *testing.T) {
	env, _ := newAuthedEnv(t)

	req := httptest.NewRequest("GET", "/jobs", nil)
	req.Header.Set("Authorization", "Bearer garbage")
	req.RemoteAddr = "10.0.0.1:12345"
	rec := httptest.NewRecorder()
	env.server.Handler().ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}
