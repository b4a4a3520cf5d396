package domain

import (
	"time"

	"github.com/lotopool/backend/internal/domain/caixa"
	"github.com/lotopool/backend/internal/entity"
	"github.com/lotopool/backend/internal/model"
)

func convertLotteryResult(result *caixa.Result) model.LotteryResult {
	return model.LotteryResult{
		LotteryType:   string(result.LotteryType),
		DrawNumber:    result.DrawNumber,
		DrawDate:      result.DrawDate.Format("2006-01-02"),
		Numbers:       result.Numbers,
		Accumulated:   result.Accumulated,
		IsCompleted:   result.IsCompleted(time.Now()),
		WinnersByTier: result.WinnersByTier,
		PrizesByTier:  result.PrizesByTier,
	}
}

func convertRanking(ranking *entity.CompetitionRanking, userName string) model.CompetitionRanking {
	return model.CompetitionRanking{
		UserID:             ranking.UserID,
		UserName:           userName,
		TotalPoints:        ranking.TotalPoints,
		TotalHits:          ranking.TotalHits,
		TotalGamesPlayed:   ranking.TotalGamesPlayed,
		DrawsParticipated:  ranking.DrawsParticipated,
		AverageHitsPerDraw: ranking.AverageHitsPerDraw,
		CurrentRank:        ranking.CurrentRank,
		PreviousRank:       ranking.PreviousRank,
		RankChange:         ranking.RankChange,
	}
}

func convertDrawScore(score *entity.ParticipantDrawScore) model.ParticipantDrawScore {
	breakdown := make(map[string]int, len(score.HitBreakdown))
	for key, hits := range score.HitBreakdown {
		switch v := hits.(type) {
		case float64:
			breakdown[key] = int(v)
		case int:
			breakdown[key] = v
		}
	}

	return model.ParticipantDrawScore{
		LotteryResultID:  score.LotteryResultID,
		TotalHits:        score.TotalHits,
		BestGameHits:     score.BestGameHits,
		HitBreakdown:     breakdown,
		TotalGamesPlayed: score.TotalGamesPlayed,
		PointsEarned:     score.PointsEarned,
		PrizeTier:        score.PrizeTier.String,
	}
}
