package resultcache

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/lotopool/backend/internal/domain/caixa"
	"github.com/lotopool/backend/internal/entity"
)

// ErrNotFound is returned on a cache miss at any tier.
var ErrNotFound = errors.New("result not found in cache")

// ErrStorage wraps durable tier failures. Callers treat it as a miss instead
// of failing the request.
var ErrStorage = errors.New("result cache storage error")

type Key struct {
	LotteryType entity.LotteryType
	DrawNumber  int
}

func (k Key) String() string {
	return fmt.Sprintf("result:%s:%d", k.LotteryType, k.DrawNumber)
}

// CachedResult wraps a normalized draw result with the metadata driving
// expiry. IsCompleted is frozen at write time.
type CachedResult struct {
	Result      caixa.Result `json:"result"`
	FetchedAt   time.Time    `json:"fetched_at"`
	IsCompleted bool         `json:"is_completed"`
}

// Store is the ephemeral tier substrate. Implementations must support
// concurrent readers and last-write-wins on concurrent writes to the same
// key; the durable tier's upserts remain the source of truth.
type Store interface {
	Get(ctx context.Context, key Key) (*CachedResult, error)
	Set(ctx context.Context, key Key, entry *CachedResult, ttl time.Duration) error
	Delete(ctx context.Context, key Key) error
	Scan(ctx context.Context) ([]Key, error)
}
