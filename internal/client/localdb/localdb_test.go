package localdb

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/couplediaries/couplediaries/internal/client/models"
	"github.com/couplediaries/couplediaries/internal/client/repositories/metadata"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOpen_MigratesAndPersists(t *testing.T) {
	ctx := context.Background()
	path := filepath.Join(t.TempDir(), "client.db")

	db, err := Open(ctx, path)
	require.NoError(t, err)
	require.NoError(t, db.Metadata.Set(ctx, metadata.KeyUserID, []byte("u1")))
	require.NoError(t, db.Cards.Insert(ctx, &models.Card{ID: "1", Mood: "Curious"}))
	require.NoError(t, db.Close())

	// reopening runs migrations again as a no-op
	db, err = Open(ctx, path)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	v, err := db.Metadata.Get(ctx, metadata.KeyUserID)
	require.NoError(t, err)
	assert.Equal(t, []byte("u1"), v)

	all, err := db.CardsTx(db.SQL).GetAll(ctx)
	require.NoError(t, err)
	assert.Len(t, all, 1)
}

func TestOpen_BadPath(t *testing.T) {
	_, err := Open(context.Background(), filepath.Join(t.TempDir(), "missing", "dir", "client.db"))
	assert.Error(t, err)
}
