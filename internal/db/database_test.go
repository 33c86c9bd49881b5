package db

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOpenSQLite(t *testing.T) {
	gdb, err := Open(context.Background(), "sqlite", ":memory:")
	require.NoError(t, err)

	sqlDB, err := gdb.DB()
	require.NoError(t, err)
	assert.Equal(t, 1, sqlDB.Stats().MaxOpenConnections)
	require.NoError(t, sqlDB.Close())
}

func TestOpenRejectsBadInput(t *testing.T) {
	_, err := Open(context.Background(), "sqlite", "")
	assert.Error(t, err)

	_, err = Open(context.Background(), "mysql", "dsn")
	assert.Error(t, err)

	_, err = OpenMongo(context.Background(), "")
	assert.Error(t, err)
}
