package testutils

import (
	"context"
	"os"
	"testing"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
)

// testDB keeps test data away from anything a developer runs locally
const testDB = 15

// RedisClient connects to addr, flushes the test database and registers
// cleanup. The test is skipped when nothing answers.
func RedisClient(t *testing.T, addr string) redis.UniversalClient {
	t.Helper()

	client := redis.NewClient(&redis.Options{
		Addr: addr,
		DB:   testDB,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		t.Skipf("Redis not available at %s: %v", addr, err)
	}

	require.NoError(t, client.FlushDB(ctx).Err(), "failed to flush test database")

	t.Cleanup(func() {
		_ = client.FlushDB(context.Background()).Err()
		_ = client.Close()
	})

	return client
}

// LocalRedisAddrFromEnv returns REDIS_TEST_ADDR, empty when unset
func LocalRedisAddrFromEnv() string {
	return os.Getenv("REDIS_TEST_ADDR")
}
