package repository

import (
	"context"

	"github.com/lotopool/backend/internal/entity"
	"github.com/lotopool/backend/pkg/xcontext"
)

type TicketRepository interface {
	Create(ctx context.Context, ticket *entity.Ticket) error
	GetByUserAndLotteryType(ctx context.Context, userID string, lotteryType entity.LotteryType) ([]entity.Ticket, error)
}

type ticketRepository struct{}

func NewTicketRepository() *ticketRepository {
	return &ticketRepository{}
}

func (r *ticketRepository) Create(ctx context.Context, ticket *entity.Ticket) error {
	return xcontext.DB(ctx).Create(ticket).Error
}

func (r *ticketRepository) GetByUserAndLotteryType(
	ctx context.Context, userID string, lotteryType entity.LotteryType,
) ([]entity.Ticket, error) {
	var results []entity.Ticket
	err := xcontext.DB(ctx).Preload("Pool").
		Joins("JOIN pools ON pools.id = tickets.pool_id").
		Where("tickets.user_id=? AND pools.lottery_type=?", userID, lotteryType).
		Find(&results).Error
	if err != nil {
		return nil, err
	}

	return results, nil
}
