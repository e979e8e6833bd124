package api_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/require"

	"github.com/tasktrack/tasktrack-api/internal/api"
	apimiddleware "github.com/tasktrack/tasktrack-api/internal/api/middleware"
	"github.com/tasktrack/tasktrack-api/internal/api/shared"
	"github.com/tasktrack/tasktrack-api/internal/config"
	"github.com/tasktrack/tasktrack-api/internal/mocks"
	"github.com/tasktrack/tasktrack-api/internal/service/auth"
)

// testEnv wires the handlers onto an in-memory store stack with a stub token
// scheme: GenerateToken returns "token-<userID>" and ValidateToken reverses
// it, so tests can mint credentials without real signing.
type testEnv struct {
	router chi.Router
	users  *mocks.MockUserStore
	tasks  *mocks.MockTaskStore
	jwt    *mocks.MockJWTService
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()

	env := &testEnv{
		users: mocks.NewMockUserStore(),
		tasks: mocks.NewMockTaskStore(),
		jwt: &mocks.MockJWTService{
			Lifetime: time.Hour,
		},
	}

	env.jwt.GenerateTokenFn = func(ctx context.Context, userID int64) (string, error) {
		return fmt.Sprintf("token-%d", userID), nil
	}
	env.jwt.ValidateTokenFn = func(ctx context.Context, tokenString string) (*auth.Claims, error) {
		raw, ok := strings.CutPrefix(tokenString, "token-")
		if !ok {
			return nil, auth.ErrInvalidToken
		}
		if raw == "expired" {
			return nil, auth.ErrExpiredToken
		}
		userID, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return nil, auth.ErrInvalidToken
		}
		return &auth.Claims{UserID: userID}, nil
	}

	authHandler := api.NewAuthHandler(env.users, env.jwt, &mocks.MockPasswordVerifier{},
		config.ServerConfig{Env: "development"})
	taskHandler := api.NewTaskHandler(env.tasks)
	authMiddleware := apimiddleware.NewAuthMiddleware(env.jwt, env.users)

	r := chi.NewRouter()
	r.Use(apimiddleware.TraceMiddleware)
	r.Post("/auth/register", authHandler.Register)
	r.Post("/auth/login", authHandler.Login)

	r.Group(func(r chi.Router) {
		r.Use(authMiddleware.Authenticate)
		r.Post("/auth/logout", authHandler.Logout)
		r.Get("/auth/me", authHandler.Me)
		r.Route("/tasks", func(r chi.Router) {
			r.Get("/", taskHandler.List)
			r.Post("/", taskHandler.Create)
			r.Get("/{id}", taskHandler.Get)
			r.Put("/{id}", taskHandler.Update)
			r.Patch("/{id}", taskHandler.Update)
			r.Delete("/{id}", taskHandler.Delete)
		})
	})

	env.router = r
	return env
}

type requestOption func(*http.Request)

func withToken(token string) requestOption {
	return func(r *http.Request) {
		r.AddCookie(&http.Cookie{Name: shared.SessionCookieName, Value: token})
	}
}

func withBearer(token string) requestOption {
	return func(r *http.Request) {
		r.Header.Set("Authorization", "Bearer "+token)
	}
}

// do performs a request against the test router and decodes the response
// envelope.
func (env *testEnv) do(
	t *testing.T,
	method, path string,
	body interface{},
	opts ...requestOption,
) (*httptest.ResponseRecorder, shared.Envelope) {
	t.Helper()

	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(data)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	for _, opt := range opts {
		opt(req)
	}

	rec := httptest.NewRecorder()
	env.router.ServeHTTP(rec, req)

	var envelope shared.Envelope
	if rec.Body.Len() > 0 {
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &envelope),
			"response body is not a valid envelope: %s", rec.Body.String())
	}
	return rec, envelope
}

// register creates a user through the API and returns its ID and session
// token.
func (env *testEnv) register(t *testing.T, name, email, password string) (int64, string) {
	t.Helper()

	rec, envelope := env.do(t, http.MethodPost, "/auth/register", map[string]string{
		"name":     name,
		"email":    email,
		"password": password,
	})
	require.Equal(t, http.StatusCreated, rec.Code, "registration failed: %s", rec.Body.String())

	data := decodeData[api.AuthResponse](t, envelope)
	return data.User.ID, data.Token
}

// createTask creates a task through the API for the given session token.
func (env *testEnv) createTask(
	t *testing.T,
	token, title, priority, endDate string,
) api.TaskResponse {
	t.Helper()

	rec, envelope := env.do(t, http.MethodPost, "/tasks/", map[string]string{
		"title":    title,
		"priority": priority,
		"endDate":  endDate,
	}, withToken(token))
	require.Equal(t, http.StatusCreated, rec.Code, "task creation failed: %s", rec.Body.String())

	return decodeData[api.TaskResponse](t, envelope)
}

// decodeData re-marshals the envelope's data field into a concrete type.
func decodeData[T any](t *testing.T, envelope shared.Envelope) T {
	t.Helper()

	var out T
	raw, err := json.Marshal(envelope.Data)
	require.NoError(t, err)
	require.NoError(t, json.Unmarshal(raw, &out))
	return out
}

// sessionCookie returns the session cookie set on the response, or nil.
func sessionCookie(rec *httptest.ResponseRecorder) *http.Cookie {
	for _, cookie := range rec.Result().Cookies() {
		if cookie.Name == shared.SessionCookieName {
			return cookie
		}
	}
	return nil
}
