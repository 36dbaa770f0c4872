package config_test

import (
	"path/filepath"
	"testing"

	"github.com/jrsteele09/go-stock-server/internal/config"
	"github.com/stretchr/testify/require"
)

func TestEnvVars_GetPort(t *testing.T) {
	t.Run("default", func(t *testing.T) {
		t.Setenv("PORT", "")
		require.Equal(t, ":3000", config.New().GetPort())
	})

	t.Run("bare number", func(t *testing.T) {
		t.Setenv("PORT", "8081")
		require.Equal(t, ":8081", config.New().GetPort())
	})

	t.Run("already prefixed", func(t *testing.T) {
		t.Setenv("PORT", ":9000")
		require.Equal(t, ":9000", config.New().GetPort())
	})
}

func TestCors_GetAllowedOrigins(t *testing.T) {
	t.Run("wildcard by default", func(t *testing.T) {
		t.Setenv("CORS_ALLOWED_ORIGINS", "")
		origins := config.New().GetAllowedOrigins()
		require.True(t, origins.IsAllowedOrigin("*"))
	})

	t.Run("comma separated list", func(t *testing.T) {
		t.Setenv("CORS_ALLOWED_ORIGINS", "http://a.test, http://b.test,")
		origins := config.New().GetAllowedOrigins()
		require.Len(t, origins, 2)
		require.True(t, origins.IsAllowedOrigin("http://a.test"))
		require.True(t, origins.IsAllowedOrigin("http://b.test"))
		require.False(t, origins.IsAllowedOrigin("*"))
	})
}

func TestStore_GetDBFile(t *testing.T) {
	t.Setenv("DB_FILE", "")
	t.Setenv("FOLDER", "/tmp/stock")
	require.Equal(t, filepath.Join("/tmp/stock", "db.json"), config.New().GetDBFile())

	t.Setenv("DB_FILE", "/var/lib/stock/products.json")
	require.Equal(t, "/var/lib/stock/products.json", config.New().GetDBFile())
}

func TestAuth_Defaults(t *testing.T) {
	t.Setenv("ADMIN_USERNAME", "")
	t.Setenv("ADMIN_PASSWORD", "")
	t.Setenv("AUTH_TOKEN", "")
	c := config.New()
	require.Equal(t, "admin", c.GetAdminUsername())
	require.Equal(t, "1234", c.GetAdminPassword())
	require.Empty(t, c.GetStaticToken())
	require.Equal(t, 32, c.GetTokenSecretLength())
}
