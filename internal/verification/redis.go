package verification

import (
	"context"

	"github.com/redis/go-redis/v9"
)

// RedisStore is the shared backend: codes live under a key prefix with the
// TTL enforced by Redis itself, so in-flight password resets survive
// process restarts and work across multiple instances.
type RedisStore struct {
	client *redis.Client
	prefix string
}

// NewRedisStore wraps an already-connected client.
func NewRedisStore(client *redis.Client) *RedisStore {
	return &RedisStore{client: client, prefix: "pesv:verify:"}
}

func (s *RedisStore) key(email string) string { return s.prefix + email }

// Put records the code with the store TTL, replacing any previous one.
func (s *RedisStore) Put(ctx context.Context, email, code string) error {
	return s.client.Set(ctx, s.key(email), code, TTL).Err()
}

// consumeScript compares and deletes in one round trip so two concurrent
// redemptions cannot both succeed.
var consumeScript = redis.NewScript(`
	if redis.call('GET', KEYS[1]) == ARGV[1] then
		redis.call('DEL', KEYS[1])
		return 1
	end
	return 0
`)

// Consume verifies and deletes the code.  Expiry is Redis's: a key past
// its TTL is simply gone, which reads as a mismatch here.
func (s *RedisStore) Consume(ctx context.Context, email, code string) (bool, error) {
	n, err := consumeScript.Run(ctx, s.client, []string{s.key(email)}, code).Int()
	if err != nil {
		return false, err
	}
	return n == 1, nil
}
