package ranking

import (
	"context"
	"testing"

	"github.com/lotopool/backend/internal/repository"
	"github.com/lotopool/backend/pkg/testutil"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
)

func Test_leaderboard_TopReadsFromRedis(t *testing.T) {
	ctx := testutil.MockContext()

	leaderboard := NewLeaderboard(repository.NewRankingRepository(), &testutil.MockRedisClient{
		ExistFunc: func(ctx context.Context, key string) (bool, error) {
			return true, nil
		},
		ZRevRangeWithScoresFunc: func(ctx context.Context, key string, offset, limit int) ([]redis.Z, error) {
			return []redis.Z{
				{Member: "user1", Score: 1006},
				{Member: "user2", Score: 1},
			}, nil
		},
	})

	entries, err := leaderboard.Top(ctx, testutil.Competition1.ID, 0, 10)
	require.NoError(t, err)
	require.Equal(t, []Entry{
		{UserID: "user1", TotalPoints: 1006, Rank: 1},
		{UserID: "user2", TotalPoints: 1, Rank: 2},
	}, entries)
}

func Test_leaderboard_lazilyRebuildsFromDatabase(t *testing.T) {
	ctx := testutil.MockContext()
	testutil.CreateFixtureDb(ctx)

	drawScoreRepo := repository.NewDrawScoreRepository()
	rankingRepo := repository.NewRankingRepository()

	insertScore(t, ctx, drawScoreRepo, testutil.User1.ID, "result1", 4, 104)
	require.NoError(t, NewAggregator(drawScoreRepo, rankingRepo).Recompute(ctx, testutil.Competition1.ID))

	loaded := map[string]float64{}
	leaderboard := NewLeaderboard(rankingRepo, &testutil.MockRedisClient{
		ZAddFunc: func(ctx context.Context, key string, z redis.Z) error {
			loaded[z.Member.(string)] = z.Score
			return nil
		},
	})

	_, err := leaderboard.Top(ctx, testutil.Competition1.ID, 0, 10)
	require.NoError(t, err)
	require.Equal(t, map[string]float64{testutil.User1.ID: 104}, loaded)
}
