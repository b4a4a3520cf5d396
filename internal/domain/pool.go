package domain

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/lotopool/backend/internal/domain/scoring"
	"github.com/lotopool/backend/internal/entity"
	"github.com/lotopool/backend/internal/model"
	"github.com/lotopool/backend/internal/repository"
	"github.com/lotopool/backend/pkg/enum"
	"github.com/lotopool/backend/pkg/errorx"
	"github.com/lotopool/backend/pkg/xcontext"
	"gorm.io/gorm"
)

type PoolDomain interface {
	CreatePool(context.Context, *model.CreatePoolRequest) (*model.CreatePoolResponse, error)
	CreateTicket(context.Context, *model.CreateTicketRequest) (*model.CreateTicketResponse, error)
}

type poolDomain struct {
	poolRepo   repository.PoolRepository
	ticketRepo repository.TicketRepository
}

func NewPoolDomain(
	poolRepo repository.PoolRepository,
	ticketRepo repository.TicketRepository,
) *poolDomain {
	return &poolDomain{poolRepo: poolRepo, ticketRepo: ticketRepo}
}

func (d *poolDomain) CreatePool(
	ctx context.Context, req *model.CreatePoolRequest,
) (*model.CreatePoolResponse, error) {
	userID := xcontext.RequestUserID(ctx)
	if userID == "" {
		return nil, errorx.New(errorx.Unauthenticated, "Not authenticated")
	}

	lotteryType, err := enum.ToEnum[entity.LotteryType](req.LotteryType)
	if err != nil {
		return nil, errorx.New(errorx.BadRequest, "Invalid lottery type")
	}

	drawDate, err := time.ParseInLocation("2006-01-02", req.DrawDate, time.Local)
	if err != nil {
		return nil, errorx.New(errorx.BadRequest, "Invalid draw date, expected YYYY-MM-DD")
	}

	if req.DrawNumber < 0 {
		return nil, errorx.New(errorx.BadRequest, "Draw number cannot be negative")
	}

	pool := &entity.Pool{
		Base:        entity.Base{ID: uuid.NewString()},
		Name:        req.Name,
		LotteryType: lotteryType,
		DrawDate:    drawDate,
		DrawNumber:  req.DrawNumber,
		OwnerID:     userID,
	}

	if err := d.poolRepo.Create(ctx, pool); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot create pool: %v", err)
		return nil, errorx.Unknown
	}

	return &model.CreatePoolResponse{ID: pool.ID}, nil
}

func (d *poolDomain) CreateTicket(
	ctx context.Context, req *model.CreateTicketRequest,
) (*model.CreateTicketResponse, error) {
	userID := xcontext.RequestUserID(ctx)
	if userID == "" {
		return nil, errorx.New(errorx.Unauthenticated, "Not authenticated")
	}

	pool, err := d.poolRepo.GetByID(ctx, req.PoolID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errorx.New(errorx.NotFound, "Not found pool")
		}

		xcontext.Logger(ctx).Errorf("Cannot get pool: %v", err)
		return nil, errorx.Unknown
	}

	rules, err := scoring.RulesFor(pool.LotteryType)
	if err != nil {
		return nil, errorx.New(errorx.BadRequest, "Unsupported lottery type")
	}

	if len(req.Numbers) < rules.NumbersPerGame {
		return nil, errorx.New(errorx.BadRequest,
			"A ticket needs at least %d numbers", rules.NumbersPerGame)
	}

	for _, n := range req.Numbers {
		if n < 1 || n > rules.MaxNumber {
			return nil, errorx.New(errorx.BadRequest,
				"Number %d is out of range 1..%d", n, rules.MaxNumber)
		}
	}

	ticket := &entity.Ticket{
		Base:    entity.Base{ID: uuid.NewString()},
		PoolID:  pool.ID,
		UserID:  userID,
		Numbers: entity.Array[int](req.Numbers),
	}

	if err := d.ticketRepo.Create(ctx, ticket); err != nil {
		xcontext.Logger(ctx).Errorf("Cannot create ticket: %v", err)
		return nil, errorx.Unknown
	}

	return &model.CreateTicketResponse{ID: ticket.ID}, nil
}
