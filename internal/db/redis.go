package db

import (
	"context"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// releaseScript deletes the lock only while it still holds our value.
var releaseScript = redis.NewScript(`
if redis.call("GET", KEYS[1]) == ARGV[1] then
	return redis.call("DEL", KEYS[1])
end
return 0`)

// AcquireLock takes a redis lock that expires after ttl. Without redis the lock is always granted.
func (s Storage) AcquireLock(key string, ttl time.Duration) (bool, error) {
	if s.rds == nil {
		return true, nil
	}

	ok, err := s.rds.SetNX(context.Background(), key, s.owner, ttl).Result()
	if err != nil {
		return false, fmt.Errorf("redis SetNX 시 오류 발생. %w", err)
	}

	s.lg.Info().Msgf("Lock %s acquired: %t", key, ok)
	return ok, nil
}

// ReleaseLock leaves a lock that expired and was taken over by another instance untouched.
func (s Storage) ReleaseLock(key string) {
	if s.rds == nil {
		return
	}

	n, err := releaseScript.Run(context.Background(), s.rds, []string{key}, s.owner).Int()
	if err != nil {
		s.lg.Error().Err(err).Msgf("Failed to release lock %s", key)
		return
	}
	if n == 0 {
		s.lg.Warn().Msgf("Lock %s no longer held by %s", key, s.owner)
	}
}

func lockOwner() string {
	host, _ := os.Hostname()
	return host + ":" + strconv.Itoa(os.Getpid()) + ":" + uuid.NewString()
}
