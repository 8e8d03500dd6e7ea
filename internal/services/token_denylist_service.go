package services

import (
	"debitcard-backend/internal/database"
	"errors"
	"time"

	"github.com/go-redis/redis/v8"
)

const denylistPrefix = "denylist:"

var ErrDenylistUnavailable = errors.New("token denylist is not configured")

// AddToDenylist revokes the token with the given jti for expiration.
func AddToDenylist(tokenID string, expiration time.Duration) error {
	if database.RedisClient == nil {
		return ErrDenylistUnavailable
	}
	if expiration <= 0 {
		return nil
	}
	return database.RedisClient.Set(database.Ctx, denylistPrefix+tokenID, 1, expiration).Err()
}

func IsDenylisted(tokenID string) (bool, error) {
	if database.RedisClient == nil {
		return false, ErrDenylistUnavailable
	}
	val, err := database.RedisClient.Get(database.Ctx, denylistPrefix+tokenID).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return false, nil
		}
		return false, err
	}
	return val != "", nil
}
