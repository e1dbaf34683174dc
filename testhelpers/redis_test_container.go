package testhelpers

import (
	"context"
	"fmt"
	"time"

	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/redis"
	"github.com/testcontainers/testcontainers-go/wait"
)

type RedisContainer struct {
	*redis.RedisContainer
	ConnectionString string
}

// CreateRedisContainer starts a throwaway Redis; ConnectionString is host:port
// as expected by redis.Options.Addr.
func CreateRedisContainer(ctx context.Context) (*RedisContainer, error) {
	redisContainer, err := redis.Run(ctx,
		"redis:7.2-alpine",
		redis.WithLogLevel(redis.LogLevelNotice),
		testcontainers.WithWaitStrategy(
			wait.ForLog("Ready to accept connections").WithStartupTimeout(5*time.Second),
		),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create redis container: %w", err)
	}
	endpoint, err := redisContainer.Endpoint(ctx, "")
	if err != nil {
		return nil, fmt.Errorf("failed to get redis endpoint: %w", err)
	}

	return &RedisContainer{
		RedisContainer:   redisContainer,
		ConnectionString: endpoint,
	}, nil
}
