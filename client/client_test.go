package client_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/jrsteele09/go-stock-server/client"
	"github.com/jrsteele09/go-stock-server/internal/config"
	"github.com/jrsteele09/go-stock-server/internal/errors"
	"github.com/jrsteele09/go-stock-server/products/repofake"
	"github.com/jrsteele09/go-stock-server/server"
	"github.com/jrsteele09/go-stock-server/sessions"
	"github.com/stretchr/testify/require"
)

const testCredential = "mi-token-secreto-123"

type testFixture struct {
	store  *sessions.FileStore
	client *client.Client
}

func newFixture(t *testing.T, handler http.Handler) *testFixture {
	t.Helper()

	ts := httptest.NewServer(handler)
	store := sessions.NewFileStore(filepath.Join(t.TempDir(), "session.yaml"))
	c := client.New(ts.URL, store)
	t.Cleanup(func() {
		c.Close()
		ts.Close()
	})
	return &testFixture{store: store, client: c}
}

func newStockServer(t *testing.T) http.Handler {
	t.Helper()

	t.Setenv("ENV", "TEST")
	t.Setenv("ADMIN_USERNAME", "")
	t.Setenv("ADMIN_PASSWORD", "")
	srv, err := server.New(config.New(), repofake.NewFakeProductRepo(), testCredential)
	require.NoError(t, err)
	return srv
}

func TestClient_Scenario(t *testing.T) {
	f := newFixture(t, newStockServer(t))
	ctx := context.Background()

	session, err := f.client.Login(ctx, "admin", "1234")
	require.NoError(t, err)
	require.Equal(t, testCredential, session.Token)

	stored, err := f.store.Load()
	require.NoError(t, err)
	require.Equal(t, testCredential, stored.Token)

	created, err := f.client.Create(ctx, client.ProductRequest{SKU: "A1", Name: "Widget", Quantity: 5})
	require.NoError(t, err)
	require.NotEmpty(t, created.ID)

	list, err := f.client.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)

	updated, err := f.client.Update(ctx, created.ID, client.ProductRequest{SKU: "A1", Name: "Widget", Quantity: 3})
	require.NoError(t, err)
	require.Equal(t, 3, updated.Quantity)

	msg, err := f.client.Delete(ctx, created.ID)
	require.NoError(t, err)
	require.NotEmpty(t, msg)

	list, err = f.client.List(ctx)
	require.NoError(t, err)
	require.Empty(t, list)

	require.NoError(t, f.client.Logout())
	_, err = f.client.List(ctx)
	require.ErrorIs(t, err, errors.ErrNotLoggedIn)
}

func TestClient_LoginFailure(t *testing.T) {
	f := newFixture(t, newStockServer(t))

	_, err := f.client.Login(context.Background(), "admin", "wrong")
	require.ErrorIs(t, err, errors.ErrInvalidCredentials)

	var apiErr *client.APIError
	require.True(t, errors.As(err, &apiErr))
	require.Equal(t, http.StatusUnauthorized, apiErr.StatusCode)
	require.Equal(t, errors.ErrInvalidCredentials.Error(), apiErr.Message)

	session, err := f.store.Load()
	require.NoError(t, err)
	require.Nil(t, session)
}

func TestClient_RejectedCredentialClearsSession(t *testing.T) {
	t.Run("forbidden", func(t *testing.T) {
		f := newFixture(t, newStockServer(t))
		require.NoError(t, f.store.Save(&sessions.Session{Token: "stale-token"}))

		_, err := f.client.List(context.Background())
		require.ErrorIs(t, err, errors.ErrForbidden)

		session, err := f.store.Load()
		require.NoError(t, err)
		require.Nil(t, session)
	})

	t.Run("unauthorized", func(t *testing.T) {
		f := newFixture(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusUnauthorized)
			_, _ = w.Write([]byte(`{"message":"unauthorized: no token provided"}`))
		}))
		require.NoError(t, f.store.Save(&sessions.Session{Token: "whatever"}))

		_, err := f.client.Create(context.Background(), client.ProductRequest{SKU: "A1", Name: "Widget", Quantity: 1})
		require.ErrorIs(t, err, errors.ErrUnauthorized)
		require.Equal(t, "unauthorized: no token provided", err.Error())

		session, err := f.store.Load()
		require.NoError(t, err)
		require.Nil(t, session)
	})
}

func TestClient_OtherErrorsKeepSession(t *testing.T) {
	f := newFixture(t, newStockServer(t))
	ctx := context.Background()

	_, err := f.client.Login(ctx, "admin", "1234")
	require.NoError(t, err)

	_, err = f.client.Delete(ctx, "missing")
	require.ErrorIs(t, err, errors.ErrNotFound)

	_, err = f.client.Create(ctx, client.ProductRequest{SKU: "", Name: "Widget", Quantity: 1})
	require.ErrorIs(t, err, errors.ErrInvalidInput)
	require.Contains(t, err.Error(), "sku")

	session, err := f.store.Load()
	require.NoError(t, err)
	require.NotNil(t, session)
}
