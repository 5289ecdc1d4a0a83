package main

import (
	"context"
	"net/http"

	"github.com/go-redis/redis/v8"
	"github.com/jrsteele09/linkedin-post-stats/internal/config"
	"github.com/jrsteele09/linkedin-post-stats/internal/mongodb"
	redisclient "github.com/jrsteele09/linkedin-post-stats/internal/redis"
	"github.com/jrsteele09/linkedin-post-stats/server"
	sessionsmongodb "github.com/jrsteele09/linkedin-post-stats/sessions/mongodb"
	sessionsredis "github.com/jrsteele09/linkedin-post-stats/sessions/redis"
	fakesessionrepo "github.com/jrsteele09/linkedin-post-stats/sessions/repofakes"
	"github.com/jrsteele09/linkedin-post-stats/users"
	usersmongodb "github.com/jrsteele09/linkedin-post-stats/users/mongodb"
	fakeuserrepo "github.com/jrsteele09/linkedin-post-stats/users/repofake"
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
	"go.mongodb.org/mongo-driver/mongo"
)

// stores holds the chosen repos and the connections behind them.
type stores struct {
	repos server.Repos
	mongo *mongo.Database
	redis *redis.Client
}

func (s *stores) Close() {
	if s.mongo != nil {
		if err := s.mongo.Client().Disconnect(context.Background()); err != nil {
			log.Err(err).Msg("error disconnecting from mongodb")
		}
	}
	if s.redis != nil {
		if err := s.redis.Close(); err != nil {
			log.Err(err).Msg("error closing redis client")
		}
	}
}

func openStores(ctx context.Context, c config.StoreConfig) (*stores, error) {
	s := &stores{}
	mongoDB := func() (*mongo.Database, error) {
		if s.mongo == nil {
			db, err := mongodb.Database(ctx, c.GetMongoURI(), c.GetMongoDatabase())
			if err != nil {
				return nil, err
			}
			s.mongo = db
		}
		return s.mongo, nil
	}

	var err error
	s.repos.Users, err = openUserRepo(c.GetUserStore(), mongoDB)
	if err != nil {
		s.Close()
		return nil, err
	}

	switch c.GetSessionStore() {
	case config.StoreMemory:
		s.repos.Sessions = fakesessionrepo.NewFakeSessionRepo()
	case config.StoreMongoDB:
		var db *mongo.Database
		if db, err = mongoDB(); err == nil {
			s.repos.Sessions, err = sessionsmongodb.NewStore(db)
		}
	case config.StoreRedis:
		s.redis, err = redisclient.Client(ctx, redisclient.Options{
			Addr:     c.GetRedisAddr(),
			Password: c.GetRedisPassword(),
			DB:       c.GetRedisDB(),
		})
		if err == nil {
			s.repos.Sessions = sessionsredis.NewStore(s.redis, c.GetRedisPrefix())
		}
	default:
		err = errors.Errorf("unknown SESSION_STORE %q", c.GetSessionStore())
	}
	if err != nil {
		s.Close()
		return nil, errors.Wrap(err, "error opening session store")
	}

	log.Info().
		Str("users", c.GetUserStore()).
		Str("sessions", c.GetSessionStore()).
		Msg("stores ready")
	return s, nil
}

func openUserRepo(kind string, mongoDB func() (*mongo.Database, error)) (users.UserRepo, error) {
	switch kind {
	case config.StoreMemory:
		return fakeuserrepo.NewFakeUserRepo(), nil
	case config.StoreMongoDB:
		db, err := mongoDB()
		if err != nil {
			return nil, errors.Wrap(err, "error opening user store")
		}
		return usersmongodb.NewStore(db)
	default:
		return nil, errors.Errorf("unknown USER_STORE %q", kind)
	}
}

func newHandler(c config.Config, s *stores) (http.Handler, error) {
	return server.New(c, s.repos)
}
