package testutil

import (
	"context"
	"time"

	"github.com/lotopool/backend/internal/entity"
	"github.com/lotopool/backend/pkg/xcontext"
)

var (
	User1 = entity.User{
		Base: entity.Base{ID: "user1"},
		Name: "user1",
	}
	User2 = entity.User{
		Base: entity.Base{ID: "user2"},
		Name: "user2",
	}

	Competition1 = entity.Competition{
		Base:        entity.Base{ID: "competition1"},
		Name:        "Mega da Firma",
		LotteryType: entity.MegaSena,
		StartTime:   time.Now().AddDate(0, -1, 0),
		EndTime:     time.Now().AddDate(0, 1, 0),
	}

	Pool1 = entity.Pool{
		Base:        entity.Base{ID: "pool1"},
		Name:        "pool1",
		LotteryType: entity.MegaSena,
		DrawNumber:  2650,
		DrawDate:    time.Date(2024, 3, 9, 0, 0, 0, 0, time.Local),
		OwnerID:     User1.ID,
	}

	Ticket1 = entity.Ticket{
		Base:    entity.Base{ID: "ticket1"},
		PoolID:  Pool1.ID,
		UserID:  User1.ID,
		Numbers: entity.Array[int]{4, 18, 29, 37, 42, 55},
	}
	Ticket2 = entity.Ticket{
		Base:    entity.Base{ID: "ticket2"},
		PoolID:  Pool1.ID,
		UserID:  User2.ID,
		Numbers: entity.Array[int]{1, 2, 3, 4, 5, 6, 10, 20, 30, 40, 50, 60},
	}
)

func CreateFixtureDb(ctx context.Context) {
	insertUsers(ctx)
	insertCompetitions(ctx)
	insertPools(ctx)
	insertTickets(ctx)
}

func insertUsers(ctx context.Context) {
	for _, user := range []entity.User{User1, User2} {
		if err := xcontext.DB(ctx).Create(&user).Error; err != nil {
			panic(err)
		}
	}
}

func insertCompetitions(ctx context.Context) {
	if err := xcontext.DB(ctx).Create(&Competition1).Error; err != nil {
		panic(err)
	}

	participants := []entity.CompetitionParticipant{
		{CompetitionID: Competition1.ID, UserID: User1.ID},
		{CompetitionID: Competition1.ID, UserID: User2.ID},
	}
	for _, participant := range participants {
		if err := xcontext.DB(ctx).Create(&participant).Error; err != nil {
			panic(err)
		}
	}
}

func insertPools(ctx context.Context) {
	if err := xcontext.DB(ctx).Create(&Pool1).Error; err != nil {
		panic(err)
	}
}

func insertTickets(ctx context.Context) {
	for _, ticket := range []entity.Ticket{Ticket1, Ticket2} {
		if err := xcontext.DB(ctx).Create(&ticket).Error; err != nil {
			panic(err)
		}
	}
}
