package main

import (
	"github.com/lotopool/backend/internal/domain/cron"
	"github.com/lotopool/backend/pkg/xcontext"
	"github.com/urfave/cli/v2"
)

func (s *srv) startCron(*cli.Context) error {
	s.loadConfig()
	s.loadDatabase()
	s.loadRedisClient()
	s.loadRepos()
	s.loadDomains()

	cfg := xcontext.Configs(s.ctx)

	cronJobManager := cron.NewCronJobManager()
	cronJobManager.Register(
		cron.NewCacheCleanupCronJob(s.resultCache, cfg.Cache.CleanupInterval),
		cron.NewProcessResultsCronJob(s.competitionRepo, s.orchestrator, s.competitionDomain),
	)
	cronJobManager.Start(s.ctx)

	return nil
}
