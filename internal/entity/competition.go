package entity

import (
	"database/sql"
	"time"
)

type Competition struct {
	Base

	Name        string
	LotteryType LotteryType

	StartTime time.Time
	EndTime   time.Time

	// LastProcessedDraw is the highest draw number already folded into this
	// competition's scores.
	LastProcessedDraw int
}

type CompetitionParticipant struct {
	CompetitionID string      `gorm:"primaryKey"`
	Competition   Competition `gorm:"foreignKey:CompetitionID"`

	UserID string `gorm:"primaryKey"`
	User   User   `gorm:"foreignKey:UserID"`

	CreatedAt time.Time
}

// ParticipantDrawScore is one row per (participant, competition, draw).
// Reprocessing the same draw upserts the row with identical values, the
// scoring engine being deterministic.
type ParticipantDrawScore struct {
	Base

	UserID string `gorm:"uniqueIndex:idx_participant_draw_scores_key"`
	User   User   `gorm:"foreignKey:UserID"`

	CompetitionID string      `gorm:"uniqueIndex:idx_participant_draw_scores_key"`
	Competition   Competition `gorm:"foreignKey:CompetitionID"`

	LotteryResultID string        `gorm:"uniqueIndex:idx_participant_draw_scores_key"`
	LotteryResult   LotteryResult `gorm:"foreignKey:LotteryResultID"`

	TotalHits        int
	BestGameHits     int
	HitBreakdown     Map
	TotalGamesPlayed int
	PointsEarned     int

	// PrizeTier labels the best single game's exact hit count when it matches
	// a named tier of the lottery (e.g. "sena" for 6 hits on megasena).
	PrizeTier sql.NullString
}

// CompetitionRanking is a derived view over ParticipantDrawScore, fully
// recomputed each time a draw is processed.
type CompetitionRanking struct {
	Base

	UserID string `gorm:"uniqueIndex:idx_competition_rankings_key"`
	User   User   `gorm:"foreignKey:UserID"`

	CompetitionID string      `gorm:"uniqueIndex:idx_competition_rankings_key"`
	Competition   Competition `gorm:"foreignKey:CompetitionID"`

	TotalPoints        int
	TotalHits          int
	TotalGamesPlayed   int
	DrawsParticipated  int
	AverageHitsPerDraw float64

	CurrentRank  int
	PreviousRank int
	// RankChange is previous minus current; positive means the participant
	// moved up.
	RankChange int
}
