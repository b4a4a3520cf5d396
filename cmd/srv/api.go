package main

import (
	"fmt"
	"net/http"

	"github.com/lotopool/backend/pkg/router"
	"github.com/lotopool/backend/pkg/xcontext"
	"github.com/rs/cors"
	"github.com/urfave/cli/v2"
)

func (s *srv) startApi(*cli.Context) error {
	s.loadConfig()
	s.loadDatabase()
	s.loadRedisClient()
	s.loadRepos()
	s.loadDomains()
	s.loadRouter()

	cfg := xcontext.Configs(s.ctx)
	corsHandler := cors.New(cors.Options{
		AllowedOrigins:   cfg.ApiServer.AllowCORS,
		AllowedMethods:   []string{http.MethodGet, http.MethodPost},
		AllowedHeaders:   []string{"*"},
		AllowCredentials: true,
	})

	s.server = &http.Server{
		Addr:    fmt.Sprintf("%s:%s", cfg.ApiServer.Host, cfg.ApiServer.Port),
		Handler: corsHandler.Handler(s.router.Handler()),
	}

	xcontext.Logger(s.ctx).Infof("Starting api server on port %s", cfg.ApiServer.Port)
	if err := s.server.ListenAndServe(); err != nil {
		panic(err)
	}

	return nil
}

func (s *srv) loadRouter() {
	s.router = router.New(s.ctx)
	s.router.Use(router.Authenticate())

	// Result API.
	router.GET(s.router, "/getResult", s.resultDomain.GetResult)
	router.GET(s.router, "/getResultForDate", s.resultDomain.GetResultForDate)
	router.GET(s.router, "/testResultConnectivity", s.resultDomain.TestConnectivity)
	router.POST(s.router, "/invalidateResult", s.resultDomain.InvalidateResult)
	router.POST(s.router, "/cleanupResultCache", s.resultDomain.CleanupResultCache)

	// Competition API.
	router.GET(s.router, "/getCompetitionRankings", s.competitionDomain.GetRankings)
	router.GET(s.router, "/getLeaderboard", s.competitionDomain.GetLeaderboard)
	router.GET(s.router, "/getParticipantScores", s.competitionDomain.GetParticipantScores)
	router.POST(s.router, "/processDraw", s.competitionDomain.ProcessDraw)

	authRouter := s.router.Group("")
	authRouter.Use(router.RequireAuthentication())
	{
		router.POST(authRouter, "/createCompetition", s.competitionDomain.Create)
		router.POST(authRouter, "/joinCompetition", s.competitionDomain.Join)
		router.GET(authRouter, "/getMyRank", s.competitionDomain.GetMyRank)
		router.POST(authRouter, "/createPool", s.poolDomain.CreatePool)
		router.POST(authRouter, "/createTicket", s.poolDomain.CreateTicket)
	}
}
