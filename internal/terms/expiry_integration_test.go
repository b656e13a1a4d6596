package terms_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/munidigital/portalctl/internal/api"
	"github.com/munidigital/portalctl/internal/cache"
	"github.com/munidigital/portalctl/internal/session"
	"github.com/munidigital/portalctl/internal/terms"
)

// A resource call rejected as unauthorized must leave the client logged
// out, with no token left in durable storage.
func TestExpiredTokenClearsSession(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "Bearer stale-token", r.Header.Get("Authorization"))
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer server.Close()

	dir := t.TempDir()
	store, err := session.NewStore(dir)
	require.NoError(t, err)
	require.NoError(t, store.SetAuthenticated(session.User{ID: 7, Username: "alice"}, false, "stale-token"))

	client, err := api.New(api.Config{
		BaseURL:  server.URL,
		Timeout:  5 * time.Second,
		Tokens:   store,
		Logger:   zerolog.Nop(),
		MaxTries: 1,
	})
	require.NoError(t, err)

	manager := session.NewManager(store, client)
	svc := terms.New(client.Terms, cache.NewMemory(), manager)

	_, err = svc.Latest(context.Background())
	assert.ErrorIs(t, err, api.ErrSessionExpired)

	assert.False(t, store.Current().IsAuth)
	assert.Empty(t, store.Token())

	_, statErr := os.Stat(filepath.Join(dir, "token"))
	assert.True(t, os.IsNotExist(statErr))
}
