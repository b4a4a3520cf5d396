package ranking

import (
	"context"
	"fmt"

	"github.com/lotopool/backend/internal/repository"
	"github.com/lotopool/backend/pkg/xcontext"
	"github.com/lotopool/backend/pkg/xredis"
	"github.com/redis/go-redis/v9"
)

// Leaderboard is a redis zset view over competition_rankings for cheap top-N
// reads. It is lazily rebuilt from the database on a missing key and
// invalidated after each recompute.
type Leaderboard interface {
	Top(ctx context.Context, competitionID string, offset, limit int) ([]Entry, error)
	Rank(ctx context.Context, competitionID, userID string) (uint64, error)
	Invalidate(ctx context.Context, competitionID string) error
}

type Entry struct {
	UserID      string
	TotalPoints int
	Rank        int
}

type leaderboard struct {
	rankingRepo repository.RankingRepository
	redisClient xredis.Client
}

func NewLeaderboard(
	rankingRepo repository.RankingRepository,
	redisClient xredis.Client,
) *leaderboard {
	return &leaderboard{rankingRepo: rankingRepo, redisClient: redisClient}
}

func redisKeyLeaderboard(competitionID string) string {
	return fmt.Sprintf("leaderboard:%s", competitionID)
}

func (l *leaderboard) Top(
	ctx context.Context, competitionID string, offset, limit int,
) ([]Entry, error) {
	key := redisKeyLeaderboard(competitionID)
	if err := l.ensureLoaded(ctx, competitionID, key); err != nil {
		return nil, err
	}

	results, err := l.redisClient.ZRevRangeWithScores(ctx, key, offset, limit)
	if err != nil {
		return nil, err
	}

	entries := make([]Entry, 0, len(results))
	for i, z := range results {
		entries = append(entries, Entry{
			UserID:      z.Member.(string),
			TotalPoints: int(z.Score),
			Rank:        offset + i + 1,
		})
	}

	return entries, nil
}

func (l *leaderboard) Rank(
	ctx context.Context, competitionID, userID string,
) (uint64, error) {
	key := redisKeyLeaderboard(competitionID)
	if err := l.ensureLoaded(ctx, competitionID, key); err != nil {
		return 0, err
	}

	rank, err := l.redisClient.ZRevRank(ctx, key, userID)
	if err != nil {
		xcontext.Logger(ctx).Debugf("Cannot get rev rank: %v", err)
		return 0, nil
	}

	return rank + 1, nil
}

func (l *leaderboard) Invalidate(ctx context.Context, competitionID string) error {
	return l.redisClient.Del(ctx, redisKeyLeaderboard(competitionID))
}

func (l *leaderboard) ensureLoaded(ctx context.Context, competitionID, key string) error {
	ok, err := l.redisClient.Exist(ctx, key)
	if err != nil {
		return err
	}

	if ok {
		return nil
	}

	rankings, err := l.rankingRepo.GetByCompetitionID(ctx, competitionID)
	if err != nil {
		return err
	}

	for _, row := range rankings {
		err := l.redisClient.ZAdd(ctx, key, redis.Z{
			Member: row.UserID,
			Score:  float64(row.TotalPoints),
		})
		if err != nil {
			return err
		}
	}

	return nil
}
