package domain

import (
	"context"
	"testing"
	"time"

	"github.com/lotopool/backend/config"
	"github.com/lotopool/backend/internal/domain/caixa"
	"github.com/lotopool/backend/internal/domain/resultcache"
	"github.com/lotopool/backend/internal/entity"
	"github.com/lotopool/backend/internal/repository"
	"github.com/lotopool/backend/pkg/errorx"
	"github.com/lotopool/backend/pkg/testutil"
	"github.com/stretchr/testify/require"
)

func newTestOrchestrator(client caixa.Client) (*Orchestrator, *resultcache.Cache) {
	cache := resultcache.New(
		resultcache.NewMemoryStore(),
		repository.NewLotteryResultRepository(),
		config.CacheConfigs{},
	)
	return NewOrchestrator(client, cache), cache
}

func drawResult(drawNumber int, drawDate time.Time) *caixa.Result {
	return &caixa.Result{
		LotteryType: entity.MegaSena,
		DrawNumber:  drawNumber,
		DrawDate:    drawDate,
		Numbers:     []int{4, 18, 29, 37, 42, 55},
		Raw:         []byte(`{"loteria":"megasena"}`),
	}
}

func Test_Orchestrator_latestIsAlwaysLiveFetchedAndWrittenThrough(t *testing.T) {
	ctx := testutil.MockContext()

	calls := 0
	client := &testutil.MockCaixaClient{
		FetchLatestFunc: func(ctx context.Context, lotteryType entity.LotteryType) (*caixa.Result, error) {
			calls++
			return drawResult(2650, time.Now().AddDate(0, 0, -1)), nil
		},
	}

	orchestrator, cache := newTestOrchestrator(client)

	result, err := orchestrator.GetOrFetch(ctx, entity.MegaSena, 0)
	require.NoError(t, err)
	require.Equal(t, 2650, result.DrawNumber)

	// A cached latest is never trusted; each latest request goes live.
	_, err = orchestrator.GetOrFetch(ctx, entity.MegaSena, 0)
	require.NoError(t, err)
	require.Equal(t, 2, calls)

	// The fetched result was still written through under its own draw number.
	key := resultcache.Key{LotteryType: entity.MegaSena, DrawNumber: 2650}
	entry, err := cache.Get(ctx, key)
	require.NoError(t, err)
	require.Equal(t, 2650, entry.Result.DrawNumber)
}

func Test_Orchestrator_numberedDrawIsServedFromCache(t *testing.T) {
	ctx := testutil.MockContext()

	calls := 0
	client := &testutil.MockCaixaClient{
		FetchByDrawNumberFunc: func(ctx context.Context, lotteryType entity.LotteryType, drawNumber int) (*caixa.Result, error) {
			calls++
			return drawResult(drawNumber, time.Now().AddDate(0, 0, -1)), nil
		},
	}

	orchestrator, _ := newTestOrchestrator(client)

	_, err := orchestrator.GetOrFetch(ctx, entity.MegaSena, 2650)
	require.NoError(t, err)

	_, err = orchestrator.GetOrFetch(ctx, entity.MegaSena, 2650)
	require.NoError(t, err)
	require.Equal(t, 1, calls)
}

func Test_Orchestrator_providerFailureCachesNothing(t *testing.T) {
	ctx := testutil.MockContext()
	orchestrator, cache := newTestOrchestrator(&testutil.MockCaixaClient{})

	_, err := orchestrator.GetOrFetch(ctx, entity.MegaSena, 2650)
	require.ErrorIs(t, err, caixa.ErrProviderUnavailable)

	key := resultcache.Key{LotteryType: entity.MegaSena, DrawNumber: 2650}
	_, err = cache.Get(ctx, key)
	require.ErrorIs(t, err, resultcache.ErrNotFound)
}

func Test_Orchestrator_unsupportedLotteryTypeFailsFast(t *testing.T) {
	ctx := testutil.MockContext()

	client := &testutil.MockCaixaClient{
		FetchLatestFunc: func(ctx context.Context, lotteryType entity.LotteryType) (*caixa.Result, error) {
			t.Fatal("the provider must not be called for an unsupported type")
			return nil, nil
		},
	}

	orchestrator, _ := newTestOrchestrator(client)
	_, err := orchestrator.GetOrFetch(ctx, entity.LotteryType("duplasena"), 0)
	require.Error(t, err)
}

func Test_Orchestrator_GetForDate(t *testing.T) {
	ctx := testutil.MockContext()

	latestDate := time.Now()
	target := latestDate.AddDate(0, 0, -40)

	client := &testutil.MockCaixaClient{
		FetchLatestFunc: func(ctx context.Context, lotteryType entity.LotteryType) (*caixa.Result, error) {
			return drawResult(2650, latestDate), nil
		},
		FetchByDrawNumberFunc: func(ctx context.Context, lotteryType entity.LotteryType, drawNumber int) (*caixa.Result, error) {
			// Two draws a week, so the draw 11 numbers back is ~40 days old.
			return drawResult(drawNumber, latestDate.AddDate(0, 0, (drawNumber-2650)*7/2)), nil
		},
	}

	orchestrator, _ := newTestOrchestrator(client)

	// A recent target matches the latest draw directly.
	result, err := orchestrator.GetForDate(ctx, entity.MegaSena, latestDate.AddDate(0, 0, -2))
	require.NoError(t, err)
	require.Equal(t, 2650, result.DrawNumber)

	// An older target resolves through the cadence estimate.
	result, err = orchestrator.GetForDate(ctx, entity.MegaSena, target)
	require.NoError(t, err)
	require.NotEqual(t, 2650, result.DrawNumber)
	require.LessOrEqual(t, absDays(result.DrawDate, target), 7)

	// A target past the latest draw estimates forward along the cadence.
	future := latestDate.AddDate(0, 0, 10)
	result, err = orchestrator.GetForDate(ctx, entity.MegaSena, future)
	require.NoError(t, err)
	require.Equal(t, 2652, result.DrawNumber)
	require.LessOrEqual(t, absDays(result.DrawDate, future), 7)
}

func Test_Orchestrator_GetForDateFallsBackToLatest(t *testing.T) {
	ctx := testutil.MockContext()

	latestDate := time.Now()
	client := &testutil.MockCaixaClient{
		FetchLatestFunc: func(ctx context.Context, lotteryType entity.LotteryType) (*caixa.Result, error) {
			return drawResult(2650, latestDate), nil
		},
	}

	orchestrator, _ := newTestOrchestrator(client)

	// Every probe fails; the latest result is still better than nothing.
	result, err := orchestrator.GetForDate(ctx, entity.MegaSena, latestDate.AddDate(0, 0, -60))
	require.NoError(t, err)
	require.Equal(t, 2650, result.DrawNumber)
}

func Test_convertResultError(t *testing.T) {
	ctx := testutil.MockContext()

	err := convertResultError(ctx, caixa.ErrProviderUnavailable)
	errx := errorx.Error{}
	require.ErrorAs(t, err, &errx)
	require.Equal(t, errorx.Unavailable, errx.Code)

	err = convertResultError(ctx, caixa.ErrMalformedResponse)
	require.ErrorAs(t, err, &errx)
	require.Equal(t, errorx.BadResponse, errx.Code)
}

func Test_convertLotteryResult(t *testing.T) {
	completed := convertLotteryResult(drawResult(2650, time.Now().AddDate(0, 0, -1)))
	require.True(t, completed.IsCompleted)
	require.Equal(t, "megasena", completed.LotteryType)

	pending := convertLotteryResult(drawResult(2651, time.Now().AddDate(0, 0, 1)))
	require.False(t, pending.IsCompleted)
}

func absDays(a, b time.Time) int {
	days := int(a.Sub(b).Hours() / 24)
	if days < 0 {
		return -days
	}

	return days
}
