package sessions

import (
	"context"
	"errors"
	"log"
	"os"
	"strconv"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/google/uuid"

	"servitec/internal/auth"
	"servitec/internal/usecase/interfaces"
)

const sessionKeyPrefix = "session:"

// RedisSessionStore keeps client sessions server-side in Redis. Keys are
// opaque UUIDs handed to the browser in a cookie; values hold the client id.
// Expiry is delegated to Redis TTLs, so a vanished key means the session is
// gone regardless of whether it expired or was revoked.
type RedisSessionStore struct {
	rdb *redis.Client
}

var (
	_ interfaces.ISessionStore = (*RedisSessionStore)(nil)
	_ auth.SessionStore        = (*RedisSessionStore)(nil)
)

// ConnectRedis creates a Redis client using environment variables.
//
// Supported env vars:
//   - REDIS_ADDR (default: localhost:6379)
//   - REDIS_PASSWORD (optional)
func ConnectRedis() *redis.Client {
	addr := getenvDefault("REDIS_ADDR", "localhost:6379")
	rdb := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: getenvDefault("REDIS_PASSWORD", ""),
	})
	if err := rdb.Ping(context.Background()).Err(); err != nil {
		log.Fatalf("failed to connect to redis at %s: %v", addr, err)
	}
	return rdb
}

func NewRedisSessionStore(rdb *redis.Client) *RedisSessionStore {
	return &RedisSessionStore{rdb: rdb}
}

func (s *RedisSessionStore) Create(ctx context.Context, clientID int64, ttl time.Duration) (string, error) {
	sessionID := uuid.NewString()
	key := sessionKeyPrefix + sessionID
	if err := s.rdb.Set(ctx, key, strconv.FormatInt(clientID, 10), ttl).Err(); err != nil {
		return "", err
	}
	return sessionID, nil
}

func (s *RedisSessionStore) Get(ctx context.Context, sessionID string) (int64, error) {
	val, err := s.rdb.Get(ctx, sessionKeyPrefix+sessionID).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return 0, auth.ErrSessionNotFound
		}
		return 0, err
	}

	clientID, err := strconv.ParseInt(val, 10, 64)
	if err != nil {
		// A corrupt value reads as a missing session.
		log.Printf("[auth][sessions] corrupt session value session_id=%s err=%v", sessionID, err)
		return 0, auth.ErrSessionNotFound
	}
	return clientID, nil
}

func (s *RedisSessionStore) Delete(ctx context.Context, sessionID string) error {
	return s.rdb.Del(ctx, sessionKeyPrefix+sessionID).Err()
}

func getenvDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
