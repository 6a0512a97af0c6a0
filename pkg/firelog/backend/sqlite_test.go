package backend

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestSQLite(t *testing.T) *SQLite {
	t.Helper()
	s, err := NewSQLite(filepath.Join(t.TempDir(), "events.db"))
	require.NoError(t, err)
	t.Cleanup(func() { s.Close() })
	return s
}

func TestSQLiteDeliverAndReadBack(t *testing.T) {
	s := newTestSQLite(t)
	ctx := context.Background()

	require.NoError(t, s.Deliver(ctx, "events", []byte(`{"a":1}`), "pk-1"))
	require.NoError(t, s.Deliver(ctx, "events", []byte(`{"a":2}`), "pk-2"))
	require.NoError(t, s.Deliver(ctx, "other", []byte(`{"b":1}`), "pk-3"))

	records, err := s.Records(ctx, "events")
	require.NoError(t, err)
	require.Len(t, records, 2)

	assert.Equal(t, "pk-1", records[0].PartitionKey)
	assert.Equal(t, []byte(`{"a":1}`), records[0].Data)
	assert.Equal(t, "pk-2", records[1].PartitionKey)
	assert.Equal(t, "events", records[1].Stream)
}

func TestSQLiteEmptyStream(t *testing.T) {
	s := newTestSQLite(t)

	records, err := s.Records(context.Background(), "nothing")
	require.NoError(t, err)
	assert.Empty(t, records)
}

func TestSQLiteClosed(t *testing.T) {
	s := newTestSQLite(t)
	require.NoError(t, s.Close())
	require.NoError(t, s.Close(), "double close is a no-op")

	err := s.Deliver(context.Background(), "events", []byte("x"), "pk")
	assert.ErrorIs(t, err, ErrBackendClosed)

	_, err = s.Records(context.Background(), "events")
	assert.ErrorIs(t, err, ErrBackendClosed)
}
