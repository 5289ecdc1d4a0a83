package mongodb_test

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/google/uuid"
	autherrors "github.com/jrsteele09/linkedin-post-stats/internal/errors"
	"github.com/jrsteele09/linkedin-post-stats/internal/mongodb"
	"github.com/jrsteele09/linkedin-post-stats/users"
	usersmongodb "github.com/jrsteele09/linkedin-post-stats/users/mongodb"
	"github.com/stretchr/testify/require"
)

// Runs against a real server only when MONGODB_TEST_URI is set.
func TestStore(t *testing.T) {
	uri := os.Getenv("MONGODB_TEST_URI")
	if uri == "" {
		t.Skip("MONGODB_TEST_URI not set")
	}
	ctx := context.Background()
	db, err := mongodb.Database(ctx, uri, "users_test_"+uuid.New().String()[:8])
	require.NoError(t, err)
	t.Cleanup(func() {
		_ = db.Drop(context.Background())
		_ = db.Client().Disconnect(context.Background())
	})

	repo, err := usersmongodb.NewStore(db)
	require.NoError(t, err)

	alice := &users.User{ID: uuid.New().String(), Username: "alice", PasswordHash: "hash", DateJoined: time.Now().UTC()}
	require.NoError(t, repo.Create(ctx, alice))

	err = repo.Create(ctx, &users.User{ID: uuid.New().String(), Username: "alice", PasswordHash: "other"})
	require.ErrorIs(t, err, autherrors.ErrDuplicateUsername)

	byName, err := repo.GetByUsername(ctx, "alice")
	require.NoError(t, err)
	require.Equal(t, alice.ID, byName.ID)
	require.Equal(t, "hash", byName.PasswordHash)

	byID, err := repo.GetByID(ctx, alice.ID)
	require.NoError(t, err)
	require.Equal(t, "alice", byID.Username)

	_, err = repo.GetByUsername(ctx, "bob")
	require.ErrorIs(t, err, autherrors.ErrUserNotFound)
}
