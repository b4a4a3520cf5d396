package main

import (
	"context"
	"net/http"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/lotopool/backend/config"
	"github.com/lotopool/backend/internal/domain"
	"github.com/lotopool/backend/internal/domain/caixa"
	"github.com/lotopool/backend/internal/domain/ranking"
	"github.com/lotopool/backend/internal/domain/resultcache"
	"github.com/lotopool/backend/internal/repository"
	"github.com/lotopool/backend/pkg/logger"
	"github.com/lotopool/backend/pkg/router"
	"github.com/lotopool/backend/pkg/xcontext"
	"github.com/lotopool/backend/pkg/xredis"
	"github.com/urfave/cli/v2"

	"gorm.io/driver/mysql"
	"gorm.io/gorm"
)

type srv struct {
	app *cli.App
	ctx context.Context

	lotteryResultRepo repository.LotteryResultRepository
	competitionRepo   repository.CompetitionRepository
	drawScoreRepo     repository.DrawScoreRepository
	rankingRepo       repository.RankingRepository
	poolRepo          repository.PoolRepository
	ticketRepo        repository.TicketRepository
	userRepo          repository.UserRepository

	redisClient xredis.Client

	caixaClient caixa.Client
	resultCache *resultcache.Cache

	orchestrator      *domain.Orchestrator
	resultDomain      domain.ResultDomain
	competitionDomain domain.CompetitionDomain
	poolDomain        domain.PoolDomain
	aggregator        *ranking.Aggregator
	leaderboard       ranking.Leaderboard

	router *router.Router
	server *http.Server
}

func (s *srv) loadConfig() {
	cfg := config.Configs{
		Env: getEnv("ENV", "local"),
		Database: config.DatabaseConfigs{
			Host:     getEnv("MYSQL_HOST", "mysql"),
			Port:     getEnv("MYSQL_PORT", "3306"),
			User:     getEnv("MYSQL_USER", "lotopool"),
			Password: getEnv("MYSQL_PASSWORD", "lotopool"),
			Database: getEnv("MYSQL_DATABASE", "lotopool"),
		},
		ApiServer: config.ServerConfigs{
			Host:         getEnv("API_HOST", ""),
			Port:         getEnv("API_PORT", "8080"),
			AllowCORS:    strings.Split(getEnv("API_ALLOW_CORS", "http://localhost:3000"), ","),
			DefaultLimit: getIntEnv("API_DEFAULT_LIMIT", 10),
			MaxLimit:     getIntEnv("API_MAX_LIMIT", 50),
		},
		Redis: config.RedisConfigs{
			Addr: getEnv("REDIS_ADDRESS", "localhost:6379"),
		},
		Loteria: config.LoteriaConfigs{
			BaseURL:        getEnv("LOTERIA_BASE_URL", "https://loteriascaixa-api.herokuapp.com"),
			RequestTimeout: getDurationEnv("LOTERIA_REQUEST_TIMEOUT", 30*time.Second),
			MaxRetries:     getIntEnv("LOTERIA_MAX_RETRIES", 2),
			RetryBackoff:   getDurationEnv("LOTERIA_RETRY_BACKOFF", time.Second),
			MaxBackoff:     getDurationEnv("LOTERIA_MAX_BACKOFF", 3*time.Second),
		},
		Cache: config.CacheConfigs{
			EphemeralTTL:    getDurationEnv("CACHE_EPHEMERAL_TTL", 2*time.Hour),
			CompletedTTL:    getDurationEnv("CACHE_COMPLETED_TTL", 30*24*time.Hour),
			PendingTTL:      getDurationEnv("CACHE_PENDING_TTL", 24*time.Hour),
			CleanupInterval: getDurationEnv("CACHE_CLEANUP_INTERVAL", 4*time.Hour),
		},
		Scoring: config.ScoringConfigs{
			MaxConcurrency: getIntEnv("SCORING_MAX_CONCURRENCY", 8),
		},
	}

	s.ctx = context.Background()
	s.ctx = xcontext.WithConfigs(s.ctx, cfg)
	level := logger.INFO
	if cfg.Env == "local" {
		level = logger.DEBUG
	}
	s.ctx = xcontext.WithLogger(s.ctx, logger.NewLogger(level))
}

func (s *srv) newDatabase() *gorm.DB {
	cfg := xcontext.Configs(s.ctx)
	db, err := gorm.Open(mysql.Open(cfg.Database.ConnectionString()), &gorm.Config{})
	if err != nil {
		panic(err)
	}

	return db
}

func (s *srv) loadDatabase() {
	s.ctx = xcontext.WithDB(s.ctx, s.newDatabase())
}

func (s *srv) loadRedisClient() {
	var err error
	s.redisClient, err = xredis.NewClient(s.ctx, xcontext.Configs(s.ctx).Redis)
	if err != nil {
		panic(err)
	}
}

func (s *srv) loadRepos() {
	s.lotteryResultRepo = repository.NewLotteryResultRepository()
	s.competitionRepo = repository.NewCompetitionRepository()
	s.drawScoreRepo = repository.NewDrawScoreRepository()
	s.rankingRepo = repository.NewRankingRepository()
	s.poolRepo = repository.NewPoolRepository()
	s.ticketRepo = repository.NewTicketRepository()
	s.userRepo = repository.NewUserRepository()
}

func (s *srv) loadDomains() {
	cfg := xcontext.Configs(s.ctx)

	s.caixaClient = caixa.NewClient(cfg.Loteria)
	s.resultCache = resultcache.New(
		resultcache.NewRedisStore(s.redisClient),
		s.lotteryResultRepo,
		cfg.Cache,
	)
	s.orchestrator = domain.NewOrchestrator(s.caixaClient, s.resultCache)

	s.aggregator = ranking.NewAggregator(s.drawScoreRepo, s.rankingRepo)
	s.leaderboard = ranking.NewLeaderboard(s.rankingRepo, s.redisClient)

	s.resultDomain = domain.NewResultDomain(s.orchestrator, s.resultCache, s.caixaClient)
	s.poolDomain = domain.NewPoolDomain(s.poolRepo, s.ticketRepo)
	s.competitionDomain = domain.NewCompetitionDomain(
		s.competitionRepo,
		s.drawScoreRepo,
		s.rankingRepo,
		s.ticketRepo,
		s.userRepo,
		s.lotteryResultRepo,
		s.orchestrator,
		s.aggregator,
		s.leaderboard,
	)
}

func getEnv(key, def string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}

	return def
}

func getIntEnv(key string, def int) int {
	value, err := strconv.Atoi(os.Getenv(key))
	if err != nil {
		return def
	}

	return value
}

func getDurationEnv(key string, def time.Duration) time.Duration {
	value, err := time.ParseDuration(os.Getenv(key))
	if err != nil {
		return def
	}

	return value
}
