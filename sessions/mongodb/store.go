package mongodb

import (
	"context"
	"time"

	autherrors "github.com/jrsteele09/linkedin-post-stats/internal/errors"
	"github.com/jrsteele09/linkedin-post-stats/sessions"
	"github.com/pkg/errors"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const createIndexTimeout = 5 * time.Second

type store struct {
	collection *mongo.Collection
}

// NewStore returns a sessions.Repo backed by the "sessions" collection.
// Documents are removed by the server's TTL monitor once expiresAt passes;
// the session manager also ignores them from that instant.
func NewStore(database *mongo.Database) (sessions.Repo, error) {
	ctx, cancel :=
		context.WithTimeout(context.Background(), createIndexTimeout)
	defer cancel()
	unique := true
	var expireAfterSeconds int32
	collection := database.Collection("sessions")
	if _, err := collection.Indexes().CreateMany(
		ctx,
		[]mongo.IndexModel{
			{
				Keys: bson.M{
					"id": 1,
				},
				Options: &options.IndexOptions{
					Unique: &unique,
				},
			},
			{
				Keys: bson.M{
					"expiresAt": 1,
				},
				Options: &options.IndexOptions{
					ExpireAfterSeconds: &expireAfterSeconds,
				},
			},
		},
	); err != nil {
		return nil, errors.Wrap(err, "error adding indexes to sessions collection")
	}
	return &store{
		collection: collection,
	}, nil
}

func (s *store) Upsert(ctx context.Context, session *sessions.Session) error {
	upsert := true
	if _, err := s.collection.ReplaceOne(
		ctx,
		bson.M{"id": session.ID},
		session,
		&options.ReplaceOptions{
			Upsert: &upsert,
		},
	); err != nil {
		return errors.Wrapf(err, "error upserting session %q", session.ID)
	}
	return nil
}

func (s *store) Get(ctx context.Context, sessionID string) (*sessions.Session, error) {
	session := &sessions.Session{}
	res := s.collection.FindOne(ctx, bson.M{"id": sessionID})
	if res.Err() == mongo.ErrNoDocuments {
		return nil, autherrors.ErrNoSuchSession
	}
	if res.Err() != nil {
		return nil, errors.Wrapf(res.Err(), "error finding session %q", sessionID)
	}
	if err := res.Decode(session); err != nil {
		return nil, errors.Wrapf(err, "error decoding session %q", sessionID)
	}
	return session, nil
}

func (s *store) Delete(ctx context.Context, sessionID string) error {
	if _, err := s.collection.DeleteOne(ctx, bson.M{"id": sessionID}); err != nil {
		return errors.Wrapf(err, "error deleting session %q", sessionID)
	}
	return nil
}
