package testutil

import (
	"context"
	"time"

	"github.com/lotopool/backend/config"
	"github.com/lotopool/backend/internal/entity"
	"github.com/lotopool/backend/pkg/logger"
	"github.com/lotopool/backend/pkg/xcontext"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func MockContext() context.Context {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{})
	if err != nil {
		panic(err)
	}

	cfg := config.Configs{
		Env: "testing",
		ApiServer: config.ServerConfigs{
			MaxLimit:     50,
			DefaultLimit: 10,
		},
		Loteria: config.LoteriaConfigs{
			BaseURL:        "http://localhost",
			RequestTimeout: time.Second,
			MaxRetries:     2,
			RetryBackoff:   time.Millisecond,
			MaxBackoff:     time.Millisecond,
		},
		Cache: config.CacheConfigs{
			EphemeralTTL:    2 * time.Hour,
			CompletedTTL:    30 * 24 * time.Hour,
			PendingTTL:      24 * time.Hour,
			CleanupInterval: 4 * time.Hour,
		},
		Scoring: config.ScoringConfigs{
			MaxConcurrency: 4,
		},
	}

	ctx := context.Background()
	ctx = xcontext.WithConfigs(ctx, cfg)
	ctx = xcontext.WithLogger(ctx, logger.NewLogger(logger.WARNING))
	ctx = xcontext.WithDB(ctx, db)

	if err := entity.MigrateTable(ctx); err != nil {
		panic(err)
	}

	return ctx
}

func MockContextWithUserID(userID string) context.Context {
	return xcontext.WithRequestUserID(MockContext(), userID)
}
