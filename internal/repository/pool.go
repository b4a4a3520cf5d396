package repository

import (
	"context"

	"github.com/lotopool/backend/internal/entity"
	"github.com/lotopool/backend/pkg/xcontext"
)

type PoolRepository interface {
	Create(ctx context.Context, pool *entity.Pool) error
	GetByID(ctx context.Context, id string) (*entity.Pool, error)
}

type poolRepository struct{}

func NewPoolRepository() *poolRepository {
	return &poolRepository{}
}

func (r *poolRepository) Create(ctx context.Context, pool *entity.Pool) error {
	return xcontext.DB(ctx).Create(pool).Error
}

func (r *poolRepository) GetByID(ctx context.Context, id string) (*entity.Pool, error) {
	var result entity.Pool
	if err := xcontext.DB(ctx).Take(&result, "id=?", id).Error; err != nil {
		return nil, err
	}

	return &result, nil
}
