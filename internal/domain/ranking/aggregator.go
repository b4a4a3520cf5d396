package ranking

import (
	"context"
	"sort"

	"github.com/google/uuid"
	"github.com/lotopool/backend/internal/entity"
	"github.com/lotopool/backend/internal/repository"
	"github.com/lotopool/backend/pkg/xcontext"
)

// Aggregator consolidates per-draw scores into competition standings. The
// whole table is recomputed per run; it is never patched incrementally, so a
// late-arriving or corrected draw result cannot leave the standings drifted.
type Aggregator struct {
	drawScoreRepo repository.DrawScoreRepository
	rankingRepo   repository.RankingRepository
}

func NewAggregator(
	drawScoreRepo repository.DrawScoreRepository,
	rankingRepo repository.RankingRepository,
) *Aggregator {
	return &Aggregator{drawScoreRepo: drawScoreRepo, rankingRepo: rankingRepo}
}

type aggregate struct {
	userID            string
	totalPoints       int
	totalHits         int
	totalGamesPlayed  int
	drawsParticipated int
}

func (a *Aggregator) Recompute(ctx context.Context, competitionID string) error {
	scores, err := a.drawScoreRepo.GetByCompetitionID(ctx, competitionID)
	if err != nil {
		return err
	}

	previous, err := a.rankingRepo.GetByCompetitionID(ctx, competitionID)
	if err != nil {
		return err
	}

	previousRankByUser := make(map[string]int, len(previous))
	for _, row := range previous {
		previousRankByUser[row.UserID] = row.CurrentRank
	}

	byUser := make(map[string]*aggregate)
	for _, score := range scores {
		agg, ok := byUser[score.UserID]
		if !ok {
			agg = &aggregate{userID: score.UserID}
			byUser[score.UserID] = agg
		}

		agg.totalPoints += score.PointsEarned
		agg.totalHits += score.TotalHits
		agg.totalGamesPlayed += score.TotalGamesPlayed
		agg.drawsParticipated++
	}

	ordered := make([]*aggregate, 0, len(byUser))
	for _, agg := range byUser {
		ordered = append(ordered, agg)
	}

	// Points desc, hits desc, then participant ID so reruns over unchanged
	// inputs assign identical ranks.
	sort.Slice(ordered, func(i, j int) bool {
		if ordered[i].totalPoints != ordered[j].totalPoints {
			return ordered[i].totalPoints > ordered[j].totalPoints
		}
		if ordered[i].totalHits != ordered[j].totalHits {
			return ordered[i].totalHits > ordered[j].totalHits
		}
		return ordered[i].userID < ordered[j].userID
	})

	ctx = xcontext.WithDBTransaction(ctx)
	defer xcontext.WithRollbackDBTransaction(ctx)

	ranked := make(map[string]bool, len(ordered))
	for i, agg := range ordered {
		currentRank := i + 1
		ranked[agg.userID] = true

		row := &entity.CompetitionRanking{
			Base:              entity.Base{ID: uuid.NewString()},
			UserID:            agg.userID,
			CompetitionID:     competitionID,
			TotalPoints:       agg.totalPoints,
			TotalHits:         agg.totalHits,
			TotalGamesPlayed:  agg.totalGamesPlayed,
			DrawsParticipated: agg.drawsParticipated,
			CurrentRank:       currentRank,
		}

		if agg.drawsParticipated > 0 {
			row.AverageHitsPerDraw = float64(agg.totalHits) / float64(agg.drawsParticipated)
		}

		if prev, ok := previousRankByUser[agg.userID]; ok {
			row.PreviousRank = prev
			row.RankChange = prev - currentRank
		}

		if err := a.rankingRepo.Upsert(ctx, row); err != nil {
			return err
		}
	}

	var stale []string
	for _, row := range previous {
		if !ranked[row.UserID] {
			stale = append(stale, row.UserID)
		}
	}

	if err := a.rankingRepo.DeleteByUserIDs(ctx, competitionID, stale); err != nil {
		return err
	}

	xcontext.WithCommitDBTransaction(ctx)
	return nil
}
