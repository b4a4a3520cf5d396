package resultcache

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/lotopool/backend/config"
	"github.com/lotopool/backend/internal/domain/caixa"
	"github.com/lotopool/backend/internal/entity"
	"github.com/lotopool/backend/internal/repository"
	"github.com/lotopool/backend/pkg/xcontext"
	"gorm.io/gorm"
)

const (
	defaultEphemeralTTL = 2 * time.Hour
	defaultCompletedTTL = 30 * 24 * time.Hour
	defaultPendingTTL   = 24 * time.Hour
)

// Cache composes the ephemeral store and the durable lottery_results table.
// Reads prefer the ephemeral tier and promote durable hits into it; writes go
// through both tiers.
type Cache struct {
	ephemeral  Store
	resultRepo repository.LotteryResultRepository

	ephemeralTTL time.Duration
	completedTTL time.Duration
	pendingTTL   time.Duration

	now func() time.Time
}

func New(
	ephemeral Store,
	resultRepo repository.LotteryResultRepository,
	cfg config.CacheConfigs,
) *Cache {
	c := &Cache{
		ephemeral:    ephemeral,
		resultRepo:   resultRepo,
		ephemeralTTL: cfg.EphemeralTTL,
		completedTTL: cfg.CompletedTTL,
		pendingTTL:   cfg.PendingTTL,
		now:          time.Now,
	}

	if c.ephemeralTTL == 0 {
		c.ephemeralTTL = defaultEphemeralTTL
	}
	if c.completedTTL == 0 {
		c.completedTTL = defaultCompletedTTL
	}
	if c.pendingTTL == 0 {
		c.pendingTTL = defaultPendingTTL
	}

	return c
}

func (c *Cache) Get(ctx context.Context, key Key) (*CachedResult, error) {
	entry, err := c.ephemeral.Get(ctx, key)
	if err == nil {
		return entry, nil
	}

	if !errors.Is(err, ErrNotFound) {
		xcontext.Logger(ctx).Warnf("Ephemeral cache read failed for %s: %v", key, err)
	}

	row, err := c.resultRepo.GetByTypeAndDraw(ctx, key.LotteryType, key.DrawNumber)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}

		// Durable tier failure degrades to a miss.
		xcontext.Logger(ctx).Errorf("Durable cache read failed for %s: %v", key, err)
		return nil, ErrNotFound
	}

	entry = entryFromEntity(row)
	if c.expired(entry) {
		return nil, ErrNotFound
	}

	// Promote so the next read skips the durable tier.
	if err := c.ephemeral.Set(ctx, key, entry, c.ephemeralTTL); err != nil {
		xcontext.Logger(ctx).Warnf("Cannot promote %s to ephemeral tier: %v", key, err)
	}

	return entry, nil
}

// Set writes through both tiers. An ephemeral failure is logged only; a
// durable failure is reported as ErrStorage so the caller can decide to keep
// serving the fetched result.
func (c *Cache) Set(ctx context.Context, key Key, result *caixa.Result) error {
	now := c.now()
	entry := &CachedResult{
		Result:      *result,
		FetchedAt:   now,
		IsCompleted: result.IsCompleted(now),
	}

	if err := c.ephemeral.Set(ctx, key, entry, c.ephemeralTTL); err != nil {
		xcontext.Logger(ctx).Warnf("Ephemeral cache write failed for %s: %v", key, err)
	}

	if err := c.resultRepo.Upsert(ctx, entryToEntity(key, entry)); err != nil {
		return fmt.Errorf("%w: %v", ErrStorage, err)
	}

	return nil
}

func (c *Cache) Remove(ctx context.Context, key Key) error {
	if err := c.ephemeral.Delete(ctx, key); err != nil {
		xcontext.Logger(ctx).Warnf("Ephemeral cache delete failed for %s: %v", key, err)
	}

	if err := c.resultRepo.DeleteByTypeAndDraw(ctx, key.LotteryType, key.DrawNumber); err != nil {
		return fmt.Errorf("%w: %v", ErrStorage, err)
	}

	return nil
}

// Cleanup deletes every expired durable row and its ephemeral entry. Each
// row's TTL is recomputed from its own completion flag, so a concurrent
// write's fresh fetched_at keeps that row alive. Idempotent.
func (c *Cache) Cleanup(ctx context.Context) (int, error) {
	rows, err := c.resultRepo.GetAll(ctx)
	if err != nil {
		return 0, fmt.Errorf("%w: %v", ErrStorage, err)
	}

	var expiredIDs []string
	live := make(map[Key]bool, len(rows))
	for i := range rows {
		key := Key{LotteryType: rows[i].LotteryType, DrawNumber: rows[i].DrawNumber}
		if !c.expired(entryFromEntity(&rows[i])) {
			live[key] = true
			continue
		}

		expiredIDs = append(expiredIDs, rows[i].ID)
	}

	if err := c.resultRepo.DeleteByIDs(ctx, expiredIDs); err != nil {
		return 0, fmt.Errorf("%w: %v", ErrStorage, err)
	}

	// Sweep ephemeral entries whose durable row expired or never landed.
	keys, err := c.ephemeral.Scan(ctx)
	if err != nil {
		xcontext.Logger(ctx).Warnf("Ephemeral cache scan failed: %v", err)
		return len(expiredIDs), nil
	}

	for _, key := range keys {
		if live[key] {
			continue
		}

		if err := c.ephemeral.Delete(ctx, key); err != nil {
			xcontext.Logger(ctx).Warnf("Ephemeral cache delete failed for %s: %v", key, err)
		}
	}

	return len(expiredIDs), nil
}

func (c *Cache) expired(entry *CachedResult) bool {
	ttl := c.pendingTTL
	if entry.IsCompleted {
		ttl = c.completedTTL
	}

	return c.now().Sub(entry.FetchedAt) > ttl
}

func entryToEntity(key Key, entry *CachedResult) *entity.LotteryResult {
	winners := entity.Map{}
	for tier, count := range entry.Result.WinnersByTier {
		winners[tier] = count
	}

	prizes := entity.Map{}
	for tier, value := range entry.Result.PrizesByTier {
		prizes[tier] = value
	}

	return &entity.LotteryResult{
		Base:          entity.Base{ID: uuid.NewString()},
		LotteryType:   key.LotteryType,
		DrawNumber:    key.DrawNumber,
		DrawDate:      entry.Result.DrawDate,
		Numbers:       entity.Array[int](entry.Result.Numbers),
		Accumulated:   entry.Result.Accumulated,
		WinnersByTier: winners,
		PrizesByTier:  prizes,
		RawPayload:    sanitize(string(entry.Result.Raw)),
		FetchedAt:     entry.FetchedAt,
		IsCompleted:   entry.IsCompleted,
	}
}

func entryFromEntity(row *entity.LotteryResult) *CachedResult {
	winners := make(map[string]int)
	for tier, count := range row.WinnersByTier {
		switch v := count.(type) {
		case float64:
			winners[tier] = int(v)
		case int:
			winners[tier] = v
		}
	}

	prizes := make(map[string]float64)
	for tier, value := range row.PrizesByTier {
		switch v := value.(type) {
		case float64:
			prizes[tier] = v
		case int:
			prizes[tier] = float64(v)
		}
	}

	return &CachedResult{
		Result: caixa.Result{
			LotteryType:   row.LotteryType,
			DrawNumber:    row.DrawNumber,
			DrawDate:      row.DrawDate,
			Numbers:       []int(row.Numbers),
			Accumulated:   row.Accumulated,
			WinnersByTier: winners,
			PrizesByTier:  prizes,
			Raw:           []byte(row.RawPayload),
		},
		FetchedAt:   row.FetchedAt,
		IsCompleted: row.IsCompleted,
	}
}

// sanitize strips control characters the durable store rejects or corrupts,
// keeping ordinary whitespace.
func sanitize(s string) string {
	return strings.Map(func(r rune) rune {
		if r == '\n' || r == '\t' || r == '\r' {
			return r
		}
		if r < 0x20 || r == 0x7f {
			return -1
		}
		return r
	}, s)
}
