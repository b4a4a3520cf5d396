package repository

import (
	"context"

	"github.com/lotopool/backend/internal/entity"
	"github.com/lotopool/backend/pkg/xcontext"
	"gorm.io/gorm/clause"
)

type RankingRepository interface {
	Upsert(ctx context.Context, ranking *entity.CompetitionRanking) error
	GetByCompetitionID(ctx context.Context, competitionID string) ([]entity.CompetitionRanking, error)
	GetByCompetitionIDPaged(ctx context.Context, competitionID string, offset, limit int) ([]entity.CompetitionRanking, error)
	DeleteByUserIDs(ctx context.Context, competitionID string, userIDs []string) error
}

type rankingRepository struct{}

func NewRankingRepository() *rankingRepository {
	return &rankingRepository{}
}

func (r *rankingRepository) Upsert(ctx context.Context, ranking *entity.CompetitionRanking) error {
	return xcontext.DB(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "user_id"}, {Name: "competition_id"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"total_points",
			"total_hits",
			"total_games_played",
			"draws_participated",
			"average_hits_per_draw",
			"current_rank",
			"previous_rank",
			"rank_change",
			"updated_at",
		}),
	}).Create(ranking).Error
}

func (r *rankingRepository) GetByCompetitionID(
	ctx context.Context, competitionID string,
) ([]entity.CompetitionRanking, error) {
	var results []entity.CompetitionRanking
	err := xcontext.DB(ctx).Order("current_rank ASC").
		Find(&results, "competition_id=?", competitionID).Error
	if err != nil {
		return nil, err
	}

	return results, nil
}

func (r *rankingRepository) GetByCompetitionIDPaged(
	ctx context.Context, competitionID string, offset, limit int,
) ([]entity.CompetitionRanking, error) {
	var results []entity.CompetitionRanking
	err := xcontext.DB(ctx).Order("current_rank ASC").
		Offset(offset).Limit(limit).
		Find(&results, "competition_id=?", competitionID).Error
	if err != nil {
		return nil, err
	}

	return results, nil
}

// DeleteByUserIDs drops ranking rows for participants who no longer have any
// score in the competition after a full recompute.
func (r *rankingRepository) DeleteByUserIDs(
	ctx context.Context, competitionID string, userIDs []string,
) error {
	if len(userIDs) == 0 {
		return nil
	}

	return xcontext.DB(ctx).
		Where("competition_id=? AND user_id IN (?)", competitionID, userIDs).
		Delete(&entity.CompetitionRanking{}).Error
}
