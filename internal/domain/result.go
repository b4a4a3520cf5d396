package domain

import (
	"context"
	"errors"
	"time"

	"github.com/lotopool/backend/internal/domain/caixa"
	"github.com/lotopool/backend/internal/domain/resultcache"
	"github.com/lotopool/backend/internal/domain/scoring"
	"github.com/lotopool/backend/internal/entity"
	"github.com/lotopool/backend/internal/model"
	"github.com/lotopool/backend/pkg/dateutil"
	"github.com/lotopool/backend/pkg/enum"
	"github.com/lotopool/backend/pkg/errorx"
	"github.com/lotopool/backend/pkg/xcontext"
)

// dateMatchWindowDays bounds how far a draw's date may sit from a requested
// target date and still be considered the matching draw.
const dateMatchWindowDays = 7

// Orchestrator is the engine entry point for draw results: cache lookup with
// provider fallback and write-through. It never substitutes placeholder data;
// provider failures propagate to the caller.
type Orchestrator struct {
	client caixa.Client
	cache  *resultcache.Cache
}

func NewOrchestrator(client caixa.Client, cache *resultcache.Cache) *Orchestrator {
	return &Orchestrator{client: client, cache: cache}
}

// GetOrFetch returns the result for a draw. A zero drawNumber means "latest",
// which always goes live: the newest draw's prize estimate and accumulation
// status can change between fetches, so a cached latest is never trusted. The
// fetched result is still written through under its own draw number.
func (o *Orchestrator) GetOrFetch(
	ctx context.Context, lotteryType entity.LotteryType, drawNumber int,
) (*caixa.Result, error) {
	if _, err := scoring.RulesFor(lotteryType); err != nil {
		return nil, err
	}

	if drawNumber == 0 {
		result, err := o.client.FetchLatest(ctx, lotteryType)
		if err != nil {
			return nil, err
		}

		o.writeThrough(ctx, result)
		return result, nil
	}

	key := resultcache.Key{LotteryType: lotteryType, DrawNumber: drawNumber}
	if entry, err := o.cache.Get(ctx, key); err == nil {
		result := entry.Result
		return &result, nil
	}

	result, err := o.client.FetchByDrawNumber(ctx, lotteryType, drawNumber)
	if err != nil {
		return nil, err
	}

	o.writeThrough(ctx, result)
	return result, nil
}

// GetForDate resolves the draw closest to a target calendar date. It prefers
// the latest result; outside the match window it estimates a draw number from
// the lottery's cadence and probes a small neighborhood, falling back to
// latest when nothing matches.
func (o *Orchestrator) GetForDate(
	ctx context.Context, lotteryType entity.LotteryType, target time.Time,
) (*caixa.Result, error) {
	latest, err := o.GetOrFetch(ctx, lotteryType, 0)
	if err != nil {
		return nil, err
	}

	if dateutil.DaysBetween(latest.DrawDate, target) <= dateMatchWindowDays {
		return latest, nil
	}

	rules, err := scoring.RulesFor(lotteryType)
	if err != nil {
		return nil, err
	}

	days := int(target.Sub(latest.DrawDate).Hours() / 24)
	estimate := latest.DrawNumber + days*rules.DrawsPerWeek/7

	for _, delta := range []int{0, 1, -1, 2, -2} {
		candidate := estimate + delta
		if candidate <= 0 || candidate == latest.DrawNumber {
			continue
		}

		result, err := o.GetOrFetch(ctx, lotteryType, candidate)
		if err != nil {
			xcontext.Logger(ctx).Debugf("Probe of draw %d failed: %v", candidate, err)
			continue
		}

		if dateutil.DaysBetween(result.DrawDate, target) <= dateMatchWindowDays {
			return result, nil
		}
	}

	return latest, nil
}

// writeThrough caches a fetched result. A storage failure must not fail the
// request; the fetched result is still served.
func (o *Orchestrator) writeThrough(ctx context.Context, result *caixa.Result) {
	key := resultcache.Key{LotteryType: result.LotteryType, DrawNumber: result.DrawNumber}
	if err := o.cache.Set(ctx, key, result); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot write result %s through cache: %v", key, err)
	}
}

type ResultDomain interface {
	GetResult(context.Context, *model.GetResultRequest) (*model.GetResultResponse, error)
	GetResultForDate(context.Context, *model.GetResultForDateRequest) (*model.GetResultForDateResponse, error)
	InvalidateResult(context.Context, *model.InvalidateResultRequest) (*model.InvalidateResultResponse, error)
	CleanupResultCache(context.Context, *model.CleanupResultCacheRequest) (*model.CleanupResultCacheResponse, error)
	TestConnectivity(context.Context, *model.TestConnectivityRequest) (*model.TestConnectivityResponse, error)
}

type resultDomain struct {
	orchestrator *Orchestrator
	cache        *resultcache.Cache
	client       caixa.Client
}

func NewResultDomain(
	orchestrator *Orchestrator,
	cache *resultcache.Cache,
	client caixa.Client,
) *resultDomain {
	return &resultDomain{orchestrator: orchestrator, cache: cache, client: client}
}

func (d *resultDomain) GetResult(
	ctx context.Context, req *model.GetResultRequest,
) (*model.GetResultResponse, error) {
	lotteryType, err := enum.ToEnum[entity.LotteryType](req.LotteryType)
	if err != nil {
		return nil, errorx.New(errorx.BadRequest, "Invalid lottery type")
	}

	result, err := d.orchestrator.GetOrFetch(ctx, lotteryType, req.DrawNumber)
	if err != nil {
		return nil, convertResultError(ctx, err)
	}

	return &model.GetResultResponse{Result: convertLotteryResult(result)}, nil
}

func (d *resultDomain) GetResultForDate(
	ctx context.Context, req *model.GetResultForDateRequest,
) (*model.GetResultForDateResponse, error) {
	lotteryType, err := enum.ToEnum[entity.LotteryType](req.LotteryType)
	if err != nil {
		return nil, errorx.New(errorx.BadRequest, "Invalid lottery type")
	}

	target, err := time.ParseInLocation("2006-01-02", req.Date, time.Local)
	if err != nil {
		return nil, errorx.New(errorx.BadRequest, "Invalid date, expected YYYY-MM-DD")
	}

	result, err := d.orchestrator.GetForDate(ctx, lotteryType, target)
	if err != nil {
		return nil, convertResultError(ctx, err)
	}

	return &model.GetResultForDateResponse{Result: convertLotteryResult(result)}, nil
}

func (d *resultDomain) InvalidateResult(
	ctx context.Context, req *model.InvalidateResultRequest,
) (*model.InvalidateResultResponse, error) {
	lotteryType, err := enum.ToEnum[entity.LotteryType](req.LotteryType)
	if err != nil {
		return nil, errorx.New(errorx.BadRequest, "Invalid lottery type")
	}

	if req.DrawNumber <= 0 {
		return nil, errorx.New(errorx.BadRequest, "Draw number must be a positive number")
	}

	key := resultcache.Key{LotteryType: lotteryType, DrawNumber: req.DrawNumber}
	if err := d.cache.Remove(ctx, key); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot invalidate result %s: %v", key, err)
		return nil, errorx.Unknown
	}

	return &model.InvalidateResultResponse{}, nil
}

func (d *resultDomain) CleanupResultCache(
	ctx context.Context, req *model.CleanupResultCacheRequest,
) (*model.CleanupResultCacheResponse, error) {
	removed, err := d.cache.Cleanup(ctx)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot cleanup result cache: %v", err)
		return nil, errorx.Unknown
	}

	return &model.CleanupResultCacheResponse{Removed: removed}, nil
}

func (d *resultDomain) TestConnectivity(
	ctx context.Context, req *model.TestConnectivityRequest,
) (*model.TestConnectivityResponse, error) {
	return &model.TestConnectivityResponse{Connected: d.client.TestConnectivity(ctx)}, nil
}

// convertResultError maps engine failures to API errors. Provider failures
// surface as an explicit unavailable state; no placeholder result is ever
// returned in their place.
func convertResultError(ctx context.Context, err error) error {
	switch {
	case errors.Is(err, scoring.ErrUnsupportedLotteryType):
		return errorx.New(errorx.BadRequest, "Unsupported lottery type")
	case errors.Is(err, caixa.ErrMalformedResponse):
		xcontext.Logger(ctx).Errorf("Provider returned malformed data: %v", err)
		return errorx.New(errorx.BadResponse, "Provider returned invalid results")
	case errors.Is(err, caixa.ErrProviderUnavailable):
		xcontext.Logger(ctx).Warnf("Provider unavailable: %v", err)
		return errorx.New(errorx.Unavailable, "Results are temporarily unavailable, try again later")
	default:
		xcontext.Logger(ctx).Errorf("Cannot get result: %v", err)
		return errorx.Unknown
	}
}
