package mongodb

import (
	"context"
	"time"

	autherrors "github.com/jrsteele09/linkedin-post-stats/internal/errors"
	"github.com/jrsteele09/linkedin-post-stats/internal/mongodb"
	"github.com/jrsteele09/linkedin-post-stats/users"
	"github.com/pkg/errors"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const createIndexTimeout = 5 * time.Second

type store struct {
	collection *mongo.Collection
}

// NewStore returns a users.UserRepo backed by the "users" collection. Unique
// indexes on id and username are created if missing.
func NewStore(database *mongo.Database) (users.UserRepo, error) {
	ctx, cancel :=
		context.WithTimeout(context.Background(), createIndexTimeout)
	defer cancel()
	unique := true
	collection := database.Collection("users")
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
					"username": 1,
				},
				Options: &options.IndexOptions{
					Unique: &unique,
				},
			},
		},
	); err != nil {
		return nil, errors.Wrap(err, "error adding indexes to users collection")
	}
	return &store{
		collection: collection,
	}, nil
}

func (s *store) Create(ctx context.Context, user *users.User) error {
	if _, err := s.collection.InsertOne(ctx, user); err != nil {
		if mongodb.IsDuplicateKey(err) {
			return autherrors.ErrDuplicateUsername
		}
		return errors.Wrapf(err, "error inserting new user %q", user.Username)
	}
	return nil
}

func (s *store) GetByUsername(
	ctx context.Context,
	username string,
) (*users.User, error) {
	return s.findOne(ctx, bson.M{"username": username})
}

func (s *store) GetByID(ctx context.Context, id string) (*users.User, error) {
	return s.findOne(ctx, bson.M{"id": id})
}

func (s *store) findOne(ctx context.Context, filter bson.M) (*users.User, error) {
	user := &users.User{}
	res := s.collection.FindOne(ctx, filter)
	if res.Err() == mongo.ErrNoDocuments {
		return nil, autherrors.ErrUserNotFound
	}
	if res.Err() != nil {
		return nil, errors.Wrap(res.Err(), "error finding user")
	}
	if err := res.Decode(user); err != nil {
		return nil, errors.Wrap(err, "error decoding user")
	}
	return user, nil
}
