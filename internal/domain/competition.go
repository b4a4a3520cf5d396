package domain

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/lotopool/backend/internal/domain/caixa"
	"github.com/lotopool/backend/internal/domain/ranking"
	"github.com/lotopool/backend/internal/domain/scoring"
	"github.com/lotopool/backend/internal/entity"
	"github.com/lotopool/backend/internal/model"
	"github.com/lotopool/backend/internal/repository"
	"github.com/lotopool/backend/pkg/dateutil"
	"github.com/lotopool/backend/pkg/enum"
	"github.com/lotopool/backend/pkg/errorx"
	"github.com/lotopool/backend/pkg/xcontext"
	"github.com/pkg/math"
	"github.com/puzpuzpuz/xsync"
	"golang.org/x/sync/errgroup"
	"gorm.io/gorm"
)

type CompetitionDomain interface {
	Create(context.Context, *model.CreateCompetitionRequest) (*model.CreateCompetitionResponse, error)
	Join(context.Context, *model.JoinCompetitionRequest) (*model.JoinCompetitionResponse, error)
	ProcessDraw(context.Context, *model.ProcessDrawRequest) (*model.ProcessDrawResponse, error)
	GetRankings(context.Context, *model.GetRankingsRequest) (*model.GetRankingsResponse, error)
	GetLeaderboard(context.Context, *model.GetLeaderboardRequest) (*model.GetLeaderboardResponse, error)
	GetMyRank(context.Context, *model.GetMyRankRequest) (*model.GetMyRankResponse, error)
	GetParticipantScores(context.Context, *model.GetParticipantScoresRequest) (*model.GetParticipantScoresResponse, error)
}

type competitionDomain struct {
	competitionRepo   repository.CompetitionRepository
	drawScoreRepo     repository.DrawScoreRepository
	rankingRepo       repository.RankingRepository
	ticketRepo        repository.TicketRepository
	userRepo          repository.UserRepository
	lotteryResultRepo repository.LotteryResultRepository

	orchestrator *Orchestrator
	aggregator   *ranking.Aggregator
	leaderboard  ranking.Leaderboard

	// Draw processing is serialized per competition, not globally.
	locks *xsync.MapOf[string, *sync.Mutex]
}

func NewCompetitionDomain(
	competitionRepo repository.CompetitionRepository,
	drawScoreRepo repository.DrawScoreRepository,
	rankingRepo repository.RankingRepository,
	ticketRepo repository.TicketRepository,
	userRepo repository.UserRepository,
	lotteryResultRepo repository.LotteryResultRepository,
	orchestrator *Orchestrator,
	aggregator *ranking.Aggregator,
	leaderboard ranking.Leaderboard,
) *competitionDomain {
	return &competitionDomain{
		competitionRepo:   competitionRepo,
		drawScoreRepo:     drawScoreRepo,
		rankingRepo:       rankingRepo,
		ticketRepo:        ticketRepo,
		userRepo:          userRepo,
		lotteryResultRepo: lotteryResultRepo,
		orchestrator:      orchestrator,
		aggregator:        aggregator,
		leaderboard:       leaderboard,
		locks:             xsync.NewMapOf[*sync.Mutex](),
	}
}

func (d *competitionDomain) Create(
	ctx context.Context, req *model.CreateCompetitionRequest,
) (*model.CreateCompetitionResponse, error) {
	if req.StartTime.After(req.EndTime) {
		return nil, errorx.New(errorx.BadRequest, "Invalid competition time")
	}

	lotteryType, err := enum.ToEnum[entity.LotteryType](req.LotteryType)
	if err != nil {
		return nil, errorx.New(errorx.BadRequest, "Invalid lottery type")
	}

	competition := &entity.Competition{
		Base:        entity.Base{ID: uuid.NewString()},
		Name:        req.Name,
		LotteryType: lotteryType,
		StartTime:   req.StartTime,
		EndTime:     req.EndTime,
	}

	if err := d.competitionRepo.Create(ctx, competition); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot create competition: %v", err)
		return nil, errorx.Unknown
	}

	return &model.CreateCompetitionResponse{ID: competition.ID}, nil
}

func (d *competitionDomain) Join(
	ctx context.Context, req *model.JoinCompetitionRequest,
) (*model.JoinCompetitionResponse, error) {
	userID := xcontext.RequestUserID(ctx)
	if userID == "" {
		return nil, errorx.New(errorx.Unauthenticated, "Not authenticated")
	}

	competition, err := d.competitionRepo.GetByID(ctx, req.CompetitionID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorx.New(errorx.NotFound, "Not found competition")
		}

		xcontext.Logger(ctx).Errorf("Cannot get competition: %v", err)
		return nil, errorx.Unknown
	}

	if competition.EndTime.Before(time.Now()) {
		return nil, errorx.New(errorx.Unavailable, "The competition has ended")
	}

	err = d.competitionRepo.AddParticipant(ctx, &entity.CompetitionParticipant{
		CompetitionID: competition.ID,
		UserID:        userID,
	})
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot add participant: %v", err)
		return nil, errorx.Unknown
	}

	return &model.JoinCompetitionResponse{}, nil
}

// ProcessDraw is the single entry point collaborators invoke when a draw
// result should be folded into a competition.
func (d *competitionDomain) ProcessDraw(
	ctx context.Context, req *model.ProcessDrawRequest,
) (*model.ProcessDrawResponse, error) {
	competition, err := d.competitionRepo.GetByID(ctx, req.CompetitionID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorx.New(errorx.NotFound, "Not found competition")
		}

		xcontext.Logger(ctx).Errorf("Cannot get competition: %v", err)
		return nil, errorx.Unknown
	}

	result, err := d.orchestrator.GetOrFetch(ctx, competition.LotteryType, req.DrawNumber)
	if err != nil {
		return nil, convertResultError(ctx, err)
	}

	if !result.IsCompleted(time.Now()) {
		return nil, errorx.New(errorx.Unavailable, "The draw has not occurred yet")
	}

	participants, err := d.processDrawForCompetition(ctx, competition, result)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot process draw %d: %v", result.DrawNumber, err)
		return nil, errorx.Unknown
	}

	return &model.ProcessDrawResponse{
		DrawNumber:   result.DrawNumber,
		Participants: participants,
	}, nil
}

func (d *competitionDomain) processDrawForCompetition(
	ctx context.Context, competition *entity.Competition, result *caixa.Result,
) (int, error) {
	mutex, _ := d.locks.LoadOrStore(competition.ID, &sync.Mutex{})
	mutex.Lock()
	defer mutex.Unlock()

	// The orchestrator wrote the result through the cache, so the durable row
	// exists unless storage is degraded; without it score rows have nothing
	// to reference.
	row, err := d.lotteryResultRepo.GetByTypeAndDraw(ctx, result.LotteryType, result.DrawNumber)
	if err != nil {
		return 0, err
	}

	participants, err := d.competitionRepo.GetParticipants(ctx, competition.ID)
	if err != nil {
		return 0, err
	}

	concurrency := xcontext.Configs(ctx).Scoring.MaxConcurrency
	if concurrency <= 0 {
		concurrency = 8
	}

	outcomes := make([]*scoring.Outcome, len(participants))
	eg, egCtx := errgroup.WithContext(ctx)
	eg.SetLimit(concurrency)
	for i := range participants {
		i := i
		eg.Go(func() error {
			outcome, err := d.scoreParticipant(egCtx, participants[i].UserID, competition, result)
			if err != nil {
				return err
			}

			outcomes[i] = outcome
			return nil
		})
	}

	if err := eg.Wait(); err != nil {
		return 0, err
	}

	txCtx := xcontext.WithDBTransaction(ctx)
	defer xcontext.WithRollbackDBTransaction(txCtx)

	for i, participant := range participants {
		outcome := outcomes[i]
		breakdown := entity.Map{}
		for key, hits := range outcome.HitBreakdown {
			breakdown[key] = hits
		}

		score := &entity.ParticipantDrawScore{
			Base:             entity.Base{ID: uuid.NewString()},
			UserID:           participant.UserID,
			CompetitionID:    competition.ID,
			LotteryResultID:  row.ID,
			TotalHits:        outcome.TotalHits,
			BestGameHits:     outcome.BestGameHits,
			HitBreakdown:     breakdown,
			TotalGamesPlayed: outcome.TotalGamesPlayed,
			PointsEarned:     outcome.PointsEarned,
		}

		if outcome.PrizeTier != "" {
			score.PrizeTier.String = outcome.PrizeTier
			score.PrizeTier.Valid = true
		}

		if err := d.drawScoreRepo.Upsert(txCtx, score); err != nil {
			return 0, err
		}
	}

	xcontext.WithCommitDBTransaction(txCtx)

	if err := d.aggregator.Recompute(ctx, competition.ID); err != nil {
		return 0, err
	}

	if err := d.leaderboard.Invalidate(ctx, competition.ID); err != nil {
		xcontext.Logger(ctx).Warnf("Cannot invalidate leaderboard: %v", err)
	}

	err = d.competitionRepo.CheckAndSetLastProcessedDraw(ctx, competition.ID, result.DrawNumber)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return 0, err
	}

	return len(participants), nil
}

func (d *competitionDomain) scoreParticipant(
	ctx context.Context,
	userID string,
	competition *entity.Competition,
	result *caixa.Result,
) (*scoring.Outcome, error) {
	tickets, err := d.ticketRepo.GetByUserAndLotteryType(ctx, userID, competition.LotteryType)
	if err != nil {
		return nil, err
	}

	total := &scoring.Outcome{HitBreakdown: make(map[string]int)}
	for i := range tickets {
		if !ticketPlaysDraw(&tickets[i], result) {
			continue
		}

		outcome, err := scoring.Score(
			tickets[i].ID, []int(tickets[i].Numbers), result, competition.LotteryType)
		if err != nil {
			return nil, err
		}

		total.Merge(outcome)
	}

	return total, nil
}

// ticketPlaysDraw matches a ticket's pool to the draw by exact draw number,
// or by calendar day for pools scheduled by date only.
func ticketPlaysDraw(ticket *entity.Ticket, result *caixa.Result) bool {
	if ticket.Pool.DrawNumber != 0 {
		return ticket.Pool.DrawNumber == result.DrawNumber
	}

	return dateutil.DaysBetween(ticket.Pool.DrawDate, result.DrawDate) == 0
}

func (d *competitionDomain) GetRankings(
	ctx context.Context, req *model.GetRankingsRequest,
) (*model.GetRankingsResponse, error) {
	if _, err := d.competitionRepo.GetByID(ctx, req.CompetitionID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorx.New(errorx.NotFound, "Not found competition")
		}

		xcontext.Logger(ctx).Errorf("Cannot get competition: %v", err)
		return nil, errorx.Unknown
	}

	cfg := xcontext.Configs(ctx).ApiServer
	limit := req.Limit
	if limit == 0 {
		limit = cfg.DefaultLimit
	}
	limit = math.MinInt(limit, cfg.MaxLimit)

	rankings, err := d.rankingRepo.GetByCompetitionIDPaged(ctx, req.CompetitionID, req.Offset, limit)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get rankings: %v", err)
		return nil, errorx.Unknown
	}

	userIDs := make([]string, 0, len(rankings))
	for _, row := range rankings {
		userIDs = append(userIDs, row.UserID)
	}

	users, err := d.userRepo.GetByIDs(ctx, userIDs)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get users: %v", err)
		return nil, errorx.Unknown
	}

	nameByID := make(map[string]string, len(users))
	for _, user := range users {
		nameByID[user.ID] = user.Name
	}

	resp := &model.GetRankingsResponse{Rankings: []model.CompetitionRanking{}}
	for i := range rankings {
		resp.Rankings = append(resp.Rankings,
			convertRanking(&rankings[i], nameByID[rankings[i].UserID]))
	}

	return resp, nil
}

func (d *competitionDomain) GetLeaderboard(
	ctx context.Context, req *model.GetLeaderboardRequest,
) (*model.GetLeaderboardResponse, error) {
	cfg := xcontext.Configs(ctx).ApiServer
	limit := req.Limit
	if limit == 0 {
		limit = cfg.DefaultLimit
	}
	limit = math.MinInt(limit, cfg.MaxLimit)

	entries, err := d.leaderboard.Top(ctx, req.CompetitionID, req.Offset, limit)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get leaderboard: %v", err)
		return nil, errorx.Unknown
	}

	userIDs := make([]string, 0, len(entries))
	for _, entry := range entries {
		userIDs = append(userIDs, entry.UserID)
	}

	users, err := d.userRepo.GetByIDs(ctx, userIDs)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get users: %v", err)
		return nil, errorx.Unknown
	}

	nameByID := make(map[string]string, len(users))
	for _, user := range users {
		nameByID[user.ID] = user.Name
	}

	resp := &model.GetLeaderboardResponse{Entries: []model.LeaderboardEntry{}}
	for _, entry := range entries {
		resp.Entries = append(resp.Entries, model.LeaderboardEntry{
			UserID:      entry.UserID,
			UserName:    nameByID[entry.UserID],
			TotalPoints: entry.TotalPoints,
			Rank:        entry.Rank,
		})
	}

	return resp, nil
}

func (d *competitionDomain) GetMyRank(
	ctx context.Context, req *model.GetMyRankRequest,
) (*model.GetMyRankResponse, error) {
	userID := xcontext.RequestUserID(ctx)
	if userID == "" {
		return nil, errorx.New(errorx.Unauthenticated, "Not authenticated")
	}

	rank, err := d.leaderboard.Rank(ctx, req.CompetitionID, userID)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get rank: %v", err)
		return nil, errorx.Unknown
	}

	return &model.GetMyRankResponse{Rank: rank}, nil
}

func (d *competitionDomain) GetParticipantScores(
	ctx context.Context, req *model.GetParticipantScoresRequest,
) (*model.GetParticipantScoresResponse, error) {
	scores, err := d.drawScoreRepo.GetByUserAndCompetition(ctx, req.UserID, req.CompetitionID)
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get participant scores: %v", err)
		return nil, errorx.Unknown
	}

	resp := &model.GetParticipantScoresResponse{Scores: []model.ParticipantDrawScore{}}
	for i := range scores {
		resp.Scores = append(resp.Scores, convertDrawScore(&scores[i]))
	}

	return resp, nil
}
