package api_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/munidigital/portalctl/internal/api"
	"github.com/munidigital/portalctl/internal/models"
)

// tokenFunc adapts a closure to the TokenSource interface.
type tokenFunc func() string

func (f tokenFunc) Token() string { return f() }

func newClient(t *testing.T, serverURL string, tokens api.TokenSource) *api.Client {
	t.Helper()

	client, err := api.New(api.Config{
		BaseURL:  serverURL,
		Timeout:  5 * time.Second,
		Tokens:   tokens,
		Logger:   zerolog.Nop(),
		MaxTries: 2,
	})
	require.NoError(t, err)

	return client
}

func TestClient_AttachesToken(t *testing.T) {
	t.Run("sends the stored bearer token", func(t *testing.T) {
		var gotAuth string
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			gotAuth = r.Header.Get("Authorization")
			assert.NotEmpty(t, r.Header.Get("X-Request-Id"))
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte("[]"))
		}))
		defer server.Close()

		client := newClient(t, server.URL, tokenFunc(func() string { return "Bearer abc" }))

		_, err := client.Users.List(context.Background())
		require.NoError(t, err)
		assert.Equal(t, "Bearer abc", gotAuth)
	})

	t.Run("sends unauthenticated when no token is present", func(t *testing.T) {
		var sawAuth bool
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, sawAuth = r.Header["Authorization"]
			_, _ = w.Write([]byte("[]"))
		}))
		defer server.Close()

		client := newClient(t, server.URL, tokenFunc(func() string { return "" }))

		_, err := client.Users.List(context.Background())
		require.NoError(t, err)
		assert.False(t, sawAuth)
	})
}

func TestClient_Login(t *testing.T) {
	t.Run("returns the token on success", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, "/login", r.URL.Path)

			var body map[string]string
			require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
			assert.Equal(t, "alice", body["username"])

			_ = json.NewEncoder(w).Encode(map[string]string{"token": "the-token"})
		}))
		defer server.Close()

		client := newClient(t, server.URL, nil)

		token, err := client.Login(context.Background(), "alice", "secret")
		require.NoError(t, err)
		assert.Equal(t, "the-token", token)
	})

	t.Run("unauthorized on login means bad credentials", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusUnauthorized)
		}))
		defer server.Close()

		client := newClient(t, server.URL, nil)

		_, err := client.Login(context.Background(), "a", "wrong")
		assert.ErrorIs(t, err, api.ErrInvalidCredentials)
	})
}

func TestClient_ErrorTaxonomy(t *testing.T) {
	t.Run("unauthorized on a resource means session expired", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusUnauthorized)
		}))
		defer server.Close()

		client := newClient(t, server.URL, tokenFunc(func() string { return "Bearer stale" }))

		_, err := client.Terms.GetLatest(context.Background())
		assert.ErrorIs(t, err, api.ErrSessionExpired)
	})

	t.Run("forbidden carries the server message", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusForbidden)
			_ = json.NewEncoder(w).Encode(map[string]string{"message": "not allowed"})
		}))
		defer server.Close()

		client := newClient(t, server.URL, nil)

		err := client.Terms.Delete(context.Background(), 1)

		var perr *api.PermissionError
		require.ErrorAs(t, err, &perr)
		assert.Equal(t, "not allowed", perr.Message)
	})

	t.Run("duplicate markers become field errors", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusForbidden)
			_ = json.NewEncoder(w).Encode(map[string]string{"message": "duplicate username constraint"})
		}))
		defer server.Close()

		client := newClient(t, server.URL, nil)

		_, err := client.Users.Create(context.Background(), models.CreateUserRequest{Username: "taken"})

		var verr *api.ValidationError
		require.ErrorAs(t, err, &verr)
		assert.Contains(t, verr.Fields, "username")
	})

	t.Run("bad request decodes the field map", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusBadRequest)
			_ = json.NewEncoder(w).Encode(map[string]string{"email": "must be a valid email"})
		}))
		defer server.Close()

		client := newClient(t, server.URL, nil)

		_, err := client.Users.Register(context.Background(), models.RegisterUserRequest{})

		var verr *api.ValidationError
		require.ErrorAs(t, err, &verr)
		assert.Equal(t, "must be a valid email", verr.Fields["email"])
	})

	t.Run("server errors are retried then reported", func(t *testing.T) {
		var calls int
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			calls++
			w.WriteHeader(http.StatusInternalServerError)
		}))
		defer server.Close()

		client := newClient(t, server.URL, nil)

		_, err := client.CreditTitles.Page(context.Background(), 0)

		var terr *api.TransportError
		require.ErrorAs(t, err, &terr)
		assert.Equal(t, http.StatusInternalServerError, terr.Status)
		assert.Equal(t, 2, calls)
	})

	t.Run("network failure surfaces as a transport error", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
		server.Close() // nothing listens anymore

		client := newClient(t, server.URL, nil)

		_, err := client.Users.List(context.Background())

		var terr *api.TransportError
		require.ErrorAs(t, err, &terr)
		assert.Zero(t, terr.Status)
	})

	t.Run("unauthorized is not retried", func(t *testing.T) {
		var calls int
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			calls++
			w.WriteHeader(http.StatusUnauthorized)
		}))
		defer server.Close()

		client := newClient(t, server.URL, tokenFunc(func() string { return "Bearer stale" }))

		_, err := client.Users.List(context.Background())
		assert.ErrorIs(t, err, api.ErrSessionExpired)
		assert.Equal(t, 1, calls)
	})
}

func TestClient_BasePaths(t *testing.T) {
	var paths []string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		paths = append(paths, r.URL.Path)
		_, _ = w.Write([]byte("{}"))
	}))
	defer server.Close()

	client := newClient(t, server.URL, nil)
	ctx := context.Background()

	_, _ = client.Users.Get(ctx, 1)
	_, _ = client.Terms.GetLatest(ctx)
	_, _ = client.Taxpayers.Info(ctx, "123")
	_, _ = client.CreditTitles.Get(ctx, 9)
	_ = client.Password.RequestReset(ctx, "a@b.c")

	assert.Equal(t, []string{
		"/api/v1/users/1",
		"/api/v1/terms/latest",
		"/api/v1/taxpayers/123",
		"/api/v1/credit-titles/9",
		"/api/v1/password/reset",
	}, paths)
}
