package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadFromEnvironment(t *testing.T) {
	t.Setenv("JWT_SECRET", "0123456789abcdef0123")
	t.Setenv("MONGODB_CONNECTION_URI", "mongodb://localhost:27017")
	t.Setenv("CORS_ORIGINS", "http://a.test, http://b.test")
	t.Setenv("REQUEST_TIMEOUT", "3s")

	cfg, err := Load(filepath.Join(t.TempDir(), "missing.env"))
	require.Error(t, err, "an explicit env file must exist")
	assert.Nil(t, cfg)

	cfg, err = Load(writeEnv(t, ""))
	require.NoError(t, err)
	assert.Equal(t, ":8080", cfg.Address)
	assert.Equal(t, "videotube", cfg.MongoDB_DBName)
	assert.Equal(t, 3*time.Second, cfg.RequestTimeout)
	assert.Equal(t, []string{"http://a.test", "http://b.test"}, cfg.Origins())
	assert.Equal(t, "minio", cfg.Media_Backend)
}

func TestLoadFromFile(t *testing.T) {
	t.Setenv("JWT_SECRET", "0123456789abcdef0123")
	t.Setenv("MONGODB_CONNECTION_URI", "mongodb://localhost:27017")
	t.Cleanup(func() { os.Unsetenv("MONGODB_DBNAME") })

	cfg, err := Load(writeEnv(t, "MONGODB_DBNAME=from_file\n"))
	require.NoError(t, err)
	assert.Equal(t, "from_file", cfg.MongoDB_DBName)
}

func TestLoadRejectsInvalid(t *testing.T) {
	t.Setenv("JWT_SECRET", "short")
	t.Setenv("MONGODB_CONNECTION_URI", "mongodb://localhost:27017")

	_, err := Load(writeEnv(t, ""))
	assert.Error(t, err)

	t.Setenv("JWT_SECRET", "0123456789abcdef0123")
	t.Setenv("MEDIA_BACKEND", "cloudinary")
	_, err = Load(writeEnv(t, ""))
	assert.Error(t, err)
	assert.Nil(t, NewConfig(writeEnv(t, "")))
}

func writeEnv(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "test.env")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}
