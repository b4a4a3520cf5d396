package repository

import (
	"context"

	"github.com/lotopool/backend/internal/entity"
	"github.com/lotopool/backend/pkg/xcontext"
	"gorm.io/gorm/clause"
)

type LotteryResultRepository interface {
	Upsert(ctx context.Context, result *entity.LotteryResult) error
	GetByTypeAndDraw(ctx context.Context, lotteryType entity.LotteryType, drawNumber int) (*entity.LotteryResult, error)
	GetAll(ctx context.Context) ([]entity.LotteryResult, error)
	DeleteByTypeAndDraw(ctx context.Context, lotteryType entity.LotteryType, drawNumber int) error
	DeleteByIDs(ctx context.Context, ids []string) error
}

type lotteryResultRepository struct{}

func NewLotteryResultRepository() *lotteryResultRepository {
	return &lotteryResultRepository{}
}

// Upsert converges concurrent writers on the same (lottery_type, draw_number)
// to a single row.
func (r *lotteryResultRepository) Upsert(ctx context.Context, result *entity.LotteryResult) error {
	return xcontext.DB(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "lottery_type"}, {Name: "draw_number"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"draw_date",
			"numbers",
			"accumulated",
			"winners_by_tier",
			"prizes_by_tier",
			"raw_payload",
			"fetched_at",
			"is_completed",
			"updated_at",
		}),
	}).Create(result).Error
}

func (r *lotteryResultRepository) GetByTypeAndDraw(
	ctx context.Context, lotteryType entity.LotteryType, drawNumber int,
) (*entity.LotteryResult, error) {
	var result entity.LotteryResult
	err := xcontext.DB(ctx).
		Take(&result, "lottery_type=? AND draw_number=?", lotteryType, drawNumber).Error
	if err != nil {
		return nil, err
	}

	return &result, nil
}

func (r *lotteryResultRepository) GetAll(ctx context.Context) ([]entity.LotteryResult, error) {
	var results []entity.LotteryResult
	if err := xcontext.DB(ctx).Find(&results).Error; err != nil {
		return nil, err
	}

	return results, nil
}

// Deletes are unscoped: a soft-deleted row would still hold the unique index
// and shadow the next write-through of the same draw.
func (r *lotteryResultRepository) DeleteByTypeAndDraw(
	ctx context.Context, lotteryType entity.LotteryType, drawNumber int,
) error {
	return xcontext.DB(ctx).Unscoped().
		Where("lottery_type=? AND draw_number=?", lotteryType, drawNumber).
		Delete(&entity.LotteryResult{}).Error
}

func (r *lotteryResultRepository) DeleteByIDs(ctx context.Context, ids []string) error {
	if len(ids) == 0 {
		return nil
	}

	return xcontext.DB(ctx).Unscoped().Delete(&entity.LotteryResult{}, "id IN (?)", ids).Error
}
