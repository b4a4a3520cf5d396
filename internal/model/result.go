package model

type LotteryResult struct {
	LotteryType   string             `json:"lottery_type"`
	DrawNumber    int                `json:"draw_number"`
	DrawDate      string             `json:"draw_date"`
	Numbers       []int              `json:"numbers"`
	Accumulated   bool               `json:"accumulated"`
	WinnersByTier map[string]int     `json:"winners_by_tier"`
	PrizesByTier  map[string]float64 `json:"prizes_by_tier"`
	IsCompleted   bool               `json:"is_completed"`
}

type GetResultRequest struct {
	LotteryType string `json:"lottery_type" form:"lottery_type"`
	// DrawNumber zero means the latest draw.
	DrawNumber int `json:"draw_number" form:"draw_number"`
}

type GetResultResponse struct {
	Result LotteryResult `json:"result"`
}

type GetResultForDateRequest struct {
	LotteryType string `json:"lottery_type" form:"lottery_type"`
	Date        string `json:"date" form:"date"`
}

type GetResultForDateResponse struct {
	Result LotteryResult `json:"result"`
}

type InvalidateResultRequest struct {
	LotteryType string `json:"lottery_type"`
	DrawNumber  int    `json:"draw_number"`
}

type InvalidateResultResponse struct{}

type CleanupResultCacheRequest struct{}

type CleanupResultCacheResponse struct {
	Removed int `json:"removed"`
}

type TestConnectivityRequest struct{}

type TestConnectivityResponse struct {
	Connected bool `json:"connected"`
}
