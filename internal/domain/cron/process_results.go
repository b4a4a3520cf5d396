package cron

import (
	"context"
	"time"

	"github.com/lotopool/backend/internal/domain"
	"github.com/lotopool/backend/internal/model"
	"github.com/lotopool/backend/internal/repository"
	"github.com/lotopool/backend/pkg/xcontext"
)

// ProcessResultsCronJob advances every active competition to the newest
// completed draw of its lottery. Draws between the last processed one and the
// latest are folded in order so no draw is skipped.
type ProcessResultsCronJob struct {
	competitionRepo   repository.CompetitionRepository
	orchestrator      *domain.Orchestrator
	competitionDomain domain.CompetitionDomain
}

func NewProcessResultsCronJob(
	competitionRepo repository.CompetitionRepository,
	orchestrator *domain.Orchestrator,
	competitionDomain domain.CompetitionDomain,
) *ProcessResultsCronJob {
	return &ProcessResultsCronJob{
		competitionRepo:   competitionRepo,
		orchestrator:      orchestrator,
		competitionDomain: competitionDomain,
	}
}

func (job *ProcessResultsCronJob) Do(ctx context.Context) {
	competitions, err := job.competitionRepo.GetActive(ctx, time.Now())
	if err != nil {
		xcontext.Logger(ctx).Errorf("Cannot get active competitions: %v", err)
		return
	}

	for _, competition := range competitions {
		latest, err := job.orchestrator.GetOrFetch(ctx, competition.LotteryType, 0)
		if err != nil {
			xcontext.Logger(ctx).Warnf("Cannot fetch latest %s result: %v",
				competition.LotteryType, err)
			continue
		}

		if !latest.IsCompleted(time.Now()) {
			continue
		}

		if latest.DrawNumber <= competition.LastProcessedDraw {
			continue
		}

		from := latest.DrawNumber
		if competition.LastProcessedDraw > 0 {
			from = competition.LastProcessedDraw + 1
		}

		for drawNumber := from; drawNumber <= latest.DrawNumber; drawNumber++ {
			_, err := job.competitionDomain.ProcessDraw(ctx, &model.ProcessDrawRequest{
				CompetitionID: competition.ID,
				DrawNumber:    drawNumber,
			})
			if err != nil {
				xcontext.Logger(ctx).Warnf("Cannot process draw %d of competition %s: %v",
					drawNumber, competition.ID, err)
				break
			}
		}
	}
}

func (job *ProcessResultsCronJob) RunNow() bool {
	return true
}

func (job *ProcessResultsCronJob) Next() time.Time {
	return time.Now().Add(time.Hour)
}
