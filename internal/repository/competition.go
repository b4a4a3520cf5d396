package repository

import (
	"context"
	"time"

	"github.com/lotopool/backend/internal/entity"
	"github.com/lotopool/backend/pkg/xcontext"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type CompetitionRepository interface {
	Create(ctx context.Context, competition *entity.Competition) error
	GetByID(ctx context.Context, id string) (*entity.Competition, error)
	GetActive(ctx context.Context, now time.Time) ([]entity.Competition, error)
	CheckAndSetLastProcessedDraw(ctx context.Context, id string, drawNumber int) error

	AddParticipant(ctx context.Context, participant *entity.CompetitionParticipant) error
	GetParticipants(ctx context.Context, competitionID string) ([]entity.CompetitionParticipant, error)
}

type competitionRepository struct{}

func NewCompetitionRepository() *competitionRepository {
	return &competitionRepository{}
}

func (r *competitionRepository) Create(ctx context.Context, competition *entity.Competition) error {
	return xcontext.DB(ctx).Create(competition).Error
}

func (r *competitionRepository) GetByID(ctx context.Context, id string) (*entity.Competition, error) {
	var result entity.Competition
	if err := xcontext.DB(ctx).Take(&result, "id=?", id).Error; err != nil {
		return nil, err
	}

	return &result, nil
}

func (r *competitionRepository) GetActive(ctx context.Context, now time.Time) ([]entity.Competition, error) {
	var results []entity.Competition
	err := xcontext.DB(ctx).
		Find(&results, "start_time <= ? AND end_time >= ?", now, now).Error
	if err != nil {
		return nil, err
	}

	return results, nil
}

// CheckAndSetLastProcessedDraw advances the watermark only forward; it
// returns gorm.ErrRecordNotFound when drawNumber is not newer.
func (r *competitionRepository) CheckAndSetLastProcessedDraw(
	ctx context.Context, id string, drawNumber int,
) error {
	tx := xcontext.DB(ctx).Model(&entity.Competition{}).
		Where("id=? AND last_processed_draw < ?", id, drawNumber).
		Update("last_processed_draw", drawNumber)
	if tx.Error != nil {
		return tx.Error
	}

	if tx.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}

	return nil
}

func (r *competitionRepository) AddParticipant(
	ctx context.Context, participant *entity.CompetitionParticipant,
) error {
	return xcontext.DB(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "competition_id"}, {Name: "user_id"}},
		DoNothing: true,
	}).Create(participant).Error
}

func (r *competitionRepository) GetParticipants(
	ctx context.Context, competitionID string,
) ([]entity.CompetitionParticipant, error) {
	var results []entity.CompetitionParticipant
	if err := xcontext.DB(ctx).Find(&results, "competition_id=?", competitionID).Error; err != nil {
		return nil, err
	}

	return results, nil
}
