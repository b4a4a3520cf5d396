package entity

import (
	"time"

	"github.com/lotopool/backend/pkg/enum"
)

type LotteryType string

var (
	MegaSena  = enum.New(LotteryType("megasena"))
	Lotofacil = enum.New(LotteryType("lotofacil"))
	Quina     = enum.New(LotteryType("quina"))
)

// LotteryResult is the durable tier of the result cache. One row per draw,
// upserted on (lottery_type, draw_number). Rows are superseded by newer
// writes, never mutated in place.
type LotteryResult struct {
	Base

	LotteryType LotteryType `gorm:"uniqueIndex:idx_lottery_results_type_draw"`
	DrawNumber  int         `gorm:"uniqueIndex:idx_lottery_results_type_draw"`

	DrawDate      time.Time
	Numbers       Array[int]
	Accumulated   bool
	WinnersByTier Map
	PrizesByTier  Map

	// RawPayload keeps the sanitized provider body for auditability.
	RawPayload string `gorm:"type:text"`

	FetchedAt time.Time
	// IsCompleted is frozen at write time: the draw date was on or before the
	// day the row was written.
	IsCompleted bool
}
