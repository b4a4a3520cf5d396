package repository

import (
	"context"

	"github.com/lotopool/backend/internal/entity"
	"github.com/lotopool/backend/pkg/xcontext"
	"gorm.io/gorm/clause"
)

type DrawScoreRepository interface {
	Upsert(ctx context.Context, score *entity.ParticipantDrawScore) error
	GetByCompetitionID(ctx context.Context, competitionID string) ([]entity.ParticipantDrawScore, error)
	GetByUserAndCompetition(ctx context.Context, userID, competitionID string) ([]entity.ParticipantDrawScore, error)
}

type drawScoreRepository struct{}

func NewDrawScoreRepository() *drawScoreRepository {
	return &drawScoreRepository{}
}

// Upsert re-derives the row idempotently when the same draw is reprocessed.
func (r *drawScoreRepository) Upsert(ctx context.Context, score *entity.ParticipantDrawScore) error {
	return xcontext.DB(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{
			{Name: "user_id"}, {Name: "competition_id"}, {Name: "lottery_result_id"},
		},
		DoUpdates: clause.AssignmentColumns([]string{
			"total_hits",
			"best_game_hits",
			"hit_breakdown",
			"total_games_played",
			"points_earned",
			"prize_tier",
			"updated_at",
		}),
	}).Create(score).Error
}

func (r *drawScoreRepository) GetByCompetitionID(
	ctx context.Context, competitionID string,
) ([]entity.ParticipantDrawScore, error) {
	var results []entity.ParticipantDrawScore
	if err := xcontext.DB(ctx).Find(&results, "competition_id=?", competitionID).Error; err != nil {
		return nil, err
	}

	return results, nil
}

func (r *drawScoreRepository) GetByUserAndCompetition(
	ctx context.Context, userID, competitionID string,
) ([]entity.ParticipantDrawScore, error) {
	var results []entity.ParticipantDrawScore
	err := xcontext.DB(ctx).
		Find(&results, "user_id=? AND competition_id=?", userID, competitionID).Error
	if err != nil {
		return nil, err
	}

	return results, nil
}
