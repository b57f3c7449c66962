package storage

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOpen_File(t *testing.T) {
	port, err := Open(context.Background(), Options{Backend: BackendFile, Dir: t.TempDir()})
	require.NoError(t, err)
	assert.IsType(t, &FileStore{}, port)
	assert.NoError(t, Close(port))
}

func TestOpen_DefaultsToFile(t *testing.T) {
	port, err := Open(context.Background(), Options{Dir: t.TempDir()})
	require.NoError(t, err)
	assert.IsType(t, &FileStore{}, port)
}

func TestOpen_FileRequiresDir(t *testing.T) {
	_, err := Open(context.Background(), Options{Backend: BackendFile})
	var backendErr *BackendError
	assert.ErrorAs(t, err, &backendErr)
}

func TestOpen_Memory(t *testing.T) {
	port, err := Open(context.Background(), Options{Backend: BackendMemory})
	require.NoError(t, err)
	assert.IsType(t, &MemoryStore{}, port)
}

func TestOpen_Redis(t *testing.T) {
	mr := miniredis.RunT(t)
	port, err := Open(context.Background(), Options{Backend: BackendRedis, RedisURL: "redis://" + mr.Addr()})
	require.NoError(t, err)
	assert.IsType(t, &RedisStore{}, port)
	assert.NoError(t, Close(port))
}

func TestOpen_RedisRequiresURL(t *testing.T) {
	_, err := Open(context.Background(), Options{Backend: BackendRedis})
	assert.Error(t, err)
}

func TestOpen_PostgresRequiresURL(t *testing.T) {
	_, err := Open(context.Background(), Options{Backend: BackendPostgres})
	assert.Error(t, err)
}

func TestOpen_UnknownBackend(t *testing.T) {
	_, err := Open(context.Background(), Options{Backend: "s3"})
	var backendErr *BackendError
	require.ErrorAs(t, err, &backendErr)
	assert.Equal(t, "s3", backendErr.Backend)
	assert.Contains(t, err.Error(), "unknown backend")
}
