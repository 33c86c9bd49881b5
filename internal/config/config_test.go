package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("JWT_SECRET", "s3cret")
	t.Setenv("DATABASE_URL", "postgres://localhost/bistro")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 5000, cfg.ServerPort)
	assert.Equal(t, ":5000", cfg.Addr())
	assert.Equal(t, DriverPostgres, cfg.StoreDriver)
	assert.Equal(t, time.Hour, cfg.JWTTTL)
	assert.Equal(t, []string{"http://localhost:5173"}, cfg.CORSOrigins)
	assert.False(t, cfg.KafkaEnabled())
	assert.False(t, cfg.SearchEnabled())
}

func TestLoadRequiresSecret(t *testing.T) {
	t.Setenv("JWT_SECRET", "")
	os.Unsetenv("JWT_SECRET")
	t.Setenv("DATABASE_URL", "postgres://localhost/bistro")

	_, err := Load()
	require.Error(t, err)
}

func TestLoadFromDotEnv(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, ".env")
	require.NoError(t, os.WriteFile(path, []byte("STORE_DRIVER=mongo\nMONGO_URI=mongodb://localhost:27017\nKAFKA_BROKERS=k1:9092,k2:9092\n"), 0o600))
	t.Setenv("JWT_SECRET", "s3cret")
	t.Cleanup(func() {
		os.Unsetenv("STORE_DRIVER")
		os.Unsetenv("MONGO_URI")
		os.Unsetenv("KAFKA_BROKERS")
	})

	cfg, err := Load(path, filepath.Join(dir, "missing.env"))
	require.NoError(t, err)
	assert.Equal(t, DriverMongo, cfg.StoreDriver)
	assert.Equal(t, []string{"k1:9092", "k2:9092"}, cfg.KafkaBrokers)
	assert.True(t, cfg.KafkaEnabled())
}

func TestValidate(t *testing.T) {
	cases := []struct {
		name string
		cfg  Config
		ok   bool
	}{
		{"sqlite ok", Config{StoreDriver: DriverSQLite, DatabaseURL: "file:bistro.db", ServerPort: 5000}, true},
		{"sqlite without url", Config{StoreDriver: DriverSQLite, ServerPort: 5000}, false},
		{"mongo without uri", Config{StoreDriver: DriverMongo, ServerPort: 5000}, false},
		{"unknown driver", Config{StoreDriver: "redis", ServerPort: 5000}, false},
		{"bad port", Config{StoreDriver: DriverSQLite, DatabaseURL: "x", ServerPort: 0}, false},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.cfg.Validate()
			if tc.ok {
				assert.NoError(t, err)
			} else {
				assert.Error(t, err)
			}
		})
	}
}
