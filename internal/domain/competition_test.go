package domain

import (
	"context"
	"testing"
	"time"

	"github.com/lotopool/backend/internal/domain/caixa"
	"github.com/lotopool/backend/internal/domain/ranking"
	"github.com/lotopool/backend/internal/entity"
	"github.com/lotopool/backend/internal/model"
	"github.com/lotopool/backend/internal/repository"
	"github.com/lotopool/backend/pkg/errorx"
	"github.com/lotopool/backend/pkg/testutil"
	"github.com/stretchr/testify/require"
)

func newTestCompetitionDomain(client caixa.Client) CompetitionDomain {
	orchestrator, _ := newTestOrchestrator(client)
	drawScoreRepo := repository.NewDrawScoreRepository()
	rankingRepo := repository.NewRankingRepository()

	return NewCompetitionDomain(
		repository.NewCompetitionRepository(),
		drawScoreRepo,
		rankingRepo,
		repository.NewTicketRepository(),
		repository.NewUserRepository(),
		repository.NewLotteryResultRepository(),
		orchestrator,
		ranking.NewAggregator(drawScoreRepo, rankingRepo),
		ranking.NewLeaderboard(rankingRepo, &testutil.MockRedisClient{}),
	)
}

func processableClient() *testutil.MockCaixaClient {
	return &testutil.MockCaixaClient{
		FetchByDrawNumberFunc: func(ctx context.Context, lotteryType entity.LotteryType, drawNumber int) (*caixa.Result, error) {
			return drawResult(drawNumber, time.Now().AddDate(0, 0, -1)), nil
		},
	}
}

func Test_competitionDomain_ProcessDraw(t *testing.T) {
	ctx := testutil.MockContext()
	testutil.CreateFixtureDb(ctx)

	domain := newTestCompetitionDomain(processableClient())

	resp, err := domain.ProcessDraw(ctx, &model.ProcessDrawRequest{
		CompetitionID: testutil.Competition1.ID,
		DrawNumber:    testutil.Pool1.DrawNumber,
	})
	require.NoError(t, err)
	require.Equal(t, testutil.Pool1.DrawNumber, resp.DrawNumber)
	require.Equal(t, 2, resp.Participants)

	// Ticket1 matches all six drawn numbers.
	scores, err := domain.GetParticipantScores(ctx, &model.GetParticipantScoresRequest{
		CompetitionID: testutil.Competition1.ID,
		UserID:        testutil.User1.ID,
	})
	require.NoError(t, err)
	require.Len(t, scores.Scores, 1)
	require.Equal(t, 6, scores.Scores[0].TotalHits)
	require.Equal(t, 6, scores.Scores[0].BestGameHits)
	require.Equal(t, 1006, scores.Scores[0].PointsEarned)
	require.Equal(t, "sena", scores.Scores[0].PrizeTier)

	// Ticket2 plays two games and hits one number in the first.
	scores, err = domain.GetParticipantScores(ctx, &model.GetParticipantScoresRequest{
		CompetitionID: testutil.Competition1.ID,
		UserID:        testutil.User2.ID,
	})
	require.NoError(t, err)
	require.Len(t, scores.Scores, 1)
	require.Equal(t, 1, scores.Scores[0].TotalHits)
	require.Equal(t, 2, scores.Scores[0].TotalGamesPlayed)
	require.Equal(t, 1, scores.Scores[0].PointsEarned)
	require.Equal(t, "", scores.Scores[0].PrizeTier)

	rankings, err := domain.GetRankings(ctx, &model.GetRankingsRequest{
		CompetitionID: testutil.Competition1.ID,
	})
	require.NoError(t, err)
	require.Len(t, rankings.Rankings, 2)
	require.Equal(t, testutil.User1.ID, rankings.Rankings[0].UserID)
	require.Equal(t, testutil.User1.Name, rankings.Rankings[0].UserName)
	require.Equal(t, 1, rankings.Rankings[0].CurrentRank)
	require.Equal(t, testutil.User2.ID, rankings.Rankings[1].UserID)
	require.Equal(t, 2, rankings.Rankings[1].CurrentRank)

	competition, err := repository.NewCompetitionRepository().GetByID(ctx, testutil.Competition1.ID)
	require.NoError(t, err)
	require.Equal(t, testutil.Pool1.DrawNumber, competition.LastProcessedDraw)
}

func Test_competitionDomain_ProcessDrawIsIdempotent(t *testing.T) {
	ctx := testutil.MockContext()
	testutil.CreateFixtureDb(ctx)

	domain := newTestCompetitionDomain(processableClient())

	req := &model.ProcessDrawRequest{
		CompetitionID: testutil.Competition1.ID,
		DrawNumber:    testutil.Pool1.DrawNumber,
	}

	_, err := domain.ProcessDraw(ctx, req)
	require.NoError(t, err)

	_, err = domain.ProcessDraw(ctx, req)
	require.NoError(t, err)

	// Still one score row per participant, and nobody moved.
	scores, err := domain.GetParticipantScores(ctx, &model.GetParticipantScoresRequest{
		CompetitionID: testutil.Competition1.ID,
		UserID:        testutil.User1.ID,
	})
	require.NoError(t, err)
	require.Len(t, scores.Scores, 1)

	rankings, err := domain.GetRankings(ctx, &model.GetRankingsRequest{
		CompetitionID: testutil.Competition1.ID,
	})
	require.NoError(t, err)
	require.Equal(t, 0, rankings.Rankings[0].RankChange)
	require.Equal(t, 0, rankings.Rankings[1].RankChange)
}

func Test_competitionDomain_ProcessDrawRejectsPendingDraw(t *testing.T) {
	ctx := testutil.MockContext()
	testutil.CreateFixtureDb(ctx)

	client := &testutil.MockCaixaClient{
		FetchByDrawNumberFunc: func(ctx context.Context, lotteryType entity.LotteryType, drawNumber int) (*caixa.Result, error) {
			return drawResult(drawNumber, time.Now().AddDate(0, 0, 2)), nil
		},
	}

	domain := newTestCompetitionDomain(client)
	_, err := domain.ProcessDraw(ctx, &model.ProcessDrawRequest{
		CompetitionID: testutil.Competition1.ID,
		DrawNumber:    testutil.Pool1.DrawNumber,
	})

	errx := errorx.Error{}
	require.ErrorAs(t, err, &errx)
	require.Equal(t, errorx.Unavailable, errx.Code)
}

func Test_competitionDomain_ProcessDrawSurfacesProviderFailure(t *testing.T) {
	ctx := testutil.MockContext()
	testutil.CreateFixtureDb(ctx)

	domain := newTestCompetitionDomain(&testutil.MockCaixaClient{})
	_, err := domain.ProcessDraw(ctx, &model.ProcessDrawRequest{
		CompetitionID: testutil.Competition1.ID,
		DrawNumber:    testutil.Pool1.DrawNumber,
	})

	errx := errorx.Error{}
	require.ErrorAs(t, err, &errx)
	require.Equal(t, errorx.Unavailable, errx.Code)

	// No score rows were fabricated for the failed draw.
	scores, err := domain.GetParticipantScores(ctx, &model.GetParticipantScoresRequest{
		CompetitionID: testutil.Competition1.ID,
		UserID:        testutil.User1.ID,
	})
	require.NoError(t, err)
	require.Empty(t, scores.Scores)
}

func Test_competitionDomain_CreateAndJoin(t *testing.T) {
	ctx := testutil.MockContextWithUserID(testutil.User1.ID)
	testutil.CreateFixtureDb(ctx)

	domain := newTestCompetitionDomain(&testutil.MockCaixaClient{})

	created, err := domain.Create(ctx, &model.CreateCompetitionRequest{
		Name:        "Quina do Escritorio",
		LotteryType: "quina",
		StartTime:   time.Now(),
		EndTime:     time.Now().AddDate(0, 1, 0),
	})
	require.NoError(t, err)
	require.NotEmpty(t, created.ID)

	_, err = domain.Join(ctx, &model.JoinCompetitionRequest{CompetitionID: created.ID})
	require.NoError(t, err)

	// Joining twice is a no-op.
	_, err = domain.Join(ctx, &model.JoinCompetitionRequest{CompetitionID: created.ID})
	require.NoError(t, err)

	_, err = domain.Create(ctx, &model.CreateCompetitionRequest{
		Name:        "Invalid",
		LotteryType: "duplasena",
		StartTime:   time.Now(),
		EndTime:     time.Now().AddDate(0, 1, 0),
	})
	errx := errorx.Error{}
	require.ErrorAs(t, err, &errx)
	require.Equal(t, errorx.BadRequest, errx.Code)
}
