package infra

import (
	"context"
	"fmt"

	miniredis "github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
)

// EmbeddedRedis is an in-process store used when no external Redis is
// configured. It keeps all persistence local to the host machine.
type EmbeddedRedis struct {
	server *miniredis.Miniredis
	client *redis.Client
}

// NewEmbeddedRedis starts the embedded server and a client against it.
func NewEmbeddedRedis(ctx context.Context) (*EmbeddedRedis, error) {
	server, err := miniredis.Run()
	if err != nil {
		return nil, fmt.Errorf("start embedded store: %w", err)
	}
	client := redis.NewClient(&redis.Options{Addr: server.Addr()})
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		server.Close()
		return nil, fmt.Errorf("ping embedded store: %w", err)
	}
	return &EmbeddedRedis{server: server, client: client}, nil
}

// Client returns the Redis client bound to the embedded server.
func (e *EmbeddedRedis) Client() *redis.Client {
	return e.client
}

// Close shuts down the client and the embedded server.
func (e *EmbeddedRedis) Close() error {
	err := e.client.Close()
	e.server.Close()
	return err
}
