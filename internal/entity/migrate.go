package entity

import (
	"context"

	"github.com/lotopool/backend/pkg/xcontext"
)

func MigrateTable(ctx context.Context) error {
	return xcontext.DB(ctx).AutoMigrate(
		&User{},
		&Pool{},
		&Ticket{},
		&LotteryResult{},
		&Competition{},
		&CompetitionParticipant{},
		&ParticipantDrawScore{},
		&CompetitionRanking{},
	)
}
