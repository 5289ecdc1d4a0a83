package redis

import (
	"context"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/pkg/errors"
)

const pingTimeout = 5 * time.Second

// Options describes a Redis connection.
type Options struct {
	Addr     string
	Password string
	DB       int
}

// Client returns a connected Redis client. No retries are configured; a
// failed command surfaces immediately to the caller.
func Client(ctx context.Context, o Options) (*redis.Client, error) {
	client := redis.NewClient(&redis.Options{
		Addr:       o.Addr,
		Password:   o.Password,
		DB:         o.DB,
		MaxRetries: -1,
	})
	pingCtx, cancel := context.WithTimeout(ctx, pingTimeout)
	defer cancel()
	if err := client.Ping(pingCtx).Err(); err != nil {
		_ = client.Close()
		return nil, errors.Wrapf(err, "error connecting to redis at %s", o.Addr)
	}
	return client, nil
}
