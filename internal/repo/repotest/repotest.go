// Package repotest opens throwaway stores for tests.
package repotest

import (
	"context"
	"os"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/Skotchmaster/bistro/internal/db"
	"github.com/Skotchmaster/bistro/internal/repo"
)

// NewGorm returns a migrated store backed by a private in-memory SQLite database.
func NewGorm(t testing.TB) *repo.GormRepo {
	t.Helper()
	ctx := context.Background()

	gdb, err := db.Open(ctx, "sqlite", ":memory:")
	require.NoError(t, err)

	r := repo.NewGormRepo(gdb)
	require.NoError(t, r.Migrate(ctx))
	t.Cleanup(func() { _ = r.Close(ctx) })
	return r
}

// NewMongo connects to MONGO_TEST_URI and returns a store on a fresh database,
// or skips the test when the variable is unset.
func NewMongo(t testing.TB) *repo.MongoRepo {
	t.Helper()
	uri := os.Getenv("MONGO_TEST_URI")
	if uri == "" {
		t.Skip("MONGO_TEST_URI not set")
	}
	ctx := context.Background()

	client, err := db.OpenMongo(ctx, uri)
	require.NoError(t, err)

	r := repo.NewMongoRepo(client, "bistro_test_"+sanitize(t.Name()))
	require.NoError(t, r.DB.Drop(ctx))
	require.NoError(t, r.Migrate(ctx))
	t.Cleanup(func() {
		_ = r.DB.Drop(ctx)
		_ = r.Close(ctx)
	})
	return r
}

func sanitize(name string) string {
	out := []byte(name)
	for i, c := range out {
		switch {
		case c >= 'a' && c <= 'z', c >= 'A' && c <= 'Z', c >= '0' && c <= '9':
		default:
			out[i] = '_'
		}
	}
	if len(out) > 40 {
		out = out[:40]
	}
	return string(out)
}
