package model

import "time"

type CreateCompetitionRequest struct {
	Name        string    `json:"name"`
	LotteryType string    `json:"lottery_type"`
	StartTime   time.Time `json:"start_time"`
	EndTime     time.Time `json:"end_time"`
}

type CreateCompetitionResponse struct {
	ID string `json:"id"`
}

type JoinCompetitionRequest struct {
	CompetitionID string `json:"competition_id"`
}

type JoinCompetitionResponse struct{}

type ProcessDrawRequest struct {
	CompetitionID string `json:"competition_id"`
	// DrawNumber zero resolves to the latest draw of the competition's
	// lottery.
	DrawNumber int `json:"draw_number"`
}

type ProcessDrawResponse struct {
	DrawNumber   int `json:"draw_number"`
	Participants int `json:"participants"`
}

type CompetitionRanking struct {
	UserID             string  `json:"user_id"`
	UserName           string  `json:"user_name"`
	TotalPoints        int     `json:"total_points"`
	TotalHits          int     `json:"total_hits"`
	TotalGamesPlayed   int     `json:"total_games_played"`
	DrawsParticipated  int     `json:"draws_participated"`
	AverageHitsPerDraw float64 `json:"average_hits_per_draw"`
	CurrentRank        int     `json:"current_rank"`
	PreviousRank       int     `json:"previous_rank"`
	RankChange         int     `json:"rank_change"`
}

type GetRankingsRequest struct {
	CompetitionID string `json:"competition_id" form:"competition_id"`
	Offset        int    `json:"offset" form:"offset"`
	Limit         int    `json:"limit" form:"limit"`
}

type GetRankingsResponse struct {
	Rankings []CompetitionRanking `json:"rankings"`
}

type LeaderboardEntry struct {
	UserID      string `json:"user_id"`
	UserName    string `json:"user_name"`
	TotalPoints int    `json:"total_points"`
	Rank        int    `json:"rank"`
}

type GetLeaderboardRequest struct {
	CompetitionID string `json:"competition_id" form:"competition_id"`
	Offset        int    `json:"offset" form:"offset"`
	Limit         int    `json:"limit" form:"limit"`
}

type GetLeaderboardResponse struct {
	Entries []LeaderboardEntry `json:"entries"`
}

type GetMyRankRequest struct {
	CompetitionID string `json:"competition_id" form:"competition_id"`
}

type GetMyRankResponse struct {
	Rank uint64 `json:"rank"`
}

type ParticipantDrawScore struct {
	LotteryResultID  string         `json:"lottery_result_id"`
	TotalHits        int            `json:"total_hits"`
	BestGameHits     int            `json:"best_game_hits"`
	HitBreakdown     map[string]int `json:"hit_breakdown"`
	TotalGamesPlayed int            `json:"total_games_played"`
	PointsEarned     int            `json:"points_earned"`
	PrizeTier        string         `json:"prize_tier,omitempty"`
}

type GetParticipantScoresRequest struct {
	CompetitionID string `json:"competition_id" form:"competition_id"`
	UserID        string `json:"user_id" form:"user_id"`
}

type GetParticipantScoresResponse struct {
	Scores []ParticipantDrawScore `json:"scores"`
}
