package resultcache

import (
	"context"
	"errors"
	"strconv"
	"strings"
	"time"

	"github.com/lotopool/backend/internal/entity"
	"github.com/lotopool/backend/pkg/xredis"
)

// redisStore backs the ephemeral tier with a shared redis, useful when
// multiple API replicas should share the fast tier.
type redisStore struct {
	redisClient xredis.Client
}

func NewRedisStore(redisClient xredis.Client) *redisStore {
	return &redisStore{redisClient: redisClient}
}

func (s *redisStore) Get(ctx context.Context, key Key) (*CachedResult, error) {
	var entry CachedResult
	if err := s.redisClient.GetObj(ctx, key.String(), &entry); err != nil {
		if errors.Is(err, xredis.ErrNil) {
			return nil, ErrNotFound
		}

		return nil, err
	}

	return &entry, nil
}

func (s *redisStore) Set(
	ctx context.Context, key Key, entry *CachedResult, ttl time.Duration,
) error {
	return s.redisClient.SetObj(ctx, key.String(), entry, ttl)
}

func (s *redisStore) Delete(ctx context.Context, key Key) error {
	return s.redisClient.Del(ctx, key.String())
}

func (s *redisStore) Scan(ctx context.Context) ([]Key, error) {
	raw, err := s.redisClient.Keys(ctx, "result:*")
	if err != nil {
		return nil, err
	}

	keys := make([]Key, 0, len(raw))
	for _, r := range raw {
		parts := strings.Split(r, ":")
		if len(parts) != 3 {
			continue
		}

		drawNumber, err := strconv.Atoi(parts[2])
		if err != nil {
			continue
		}

		keys = append(keys, Key{
			LotteryType: entity.LotteryType(parts[1]),
			DrawNumber:  drawNumber,
		})
	}

	return keys, nil
}
