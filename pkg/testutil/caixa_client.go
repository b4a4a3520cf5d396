package testutil

import (
	"context"

	"github.com/lotopool/backend/internal/domain/caixa"
	"github.com/lotopool/backend/internal/entity"
)

type MockCaixaClient struct {
	FetchLatestFunc       func(ctx context.Context, lotteryType entity.LotteryType) (*caixa.Result, error)
	FetchByDrawNumberFunc func(ctx context.Context, lotteryType entity.LotteryType, drawNumber int) (*caixa.Result, error)
	TestConnectivityFunc  func(ctx context.Context) bool
}

func (m *MockCaixaClient) FetchLatest(
	ctx context.Context, lotteryType entity.LotteryType,
) (*caixa.Result, error) {
	if m.FetchLatestFunc != nil {
		return m.FetchLatestFunc(ctx, lotteryType)
	}

	return nil, caixa.ErrProviderUnavailable
}

func (m *MockCaixaClient) FetchByDrawNumber(
	ctx context.Context, lotteryType entity.LotteryType, drawNumber int,
) (*caixa.Result, error) {
	if m.FetchByDrawNumberFunc != nil {
		return m.FetchByDrawNumberFunc(ctx, lotteryType, drawNumber)
	}

	return nil, caixa.ErrProviderUnavailable
}

func (m *MockCaixaClient) TestConnectivity(ctx context.Context) bool {
	if m.TestConnectivityFunc != nil {
		return m.TestConnectivityFunc(ctx)
	}

	return true
}
