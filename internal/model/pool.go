package model

type CreatePoolRequest struct {
	Name        string `json:"name"`
	LotteryType string `json:"lottery_type"`
	// DrawDate is YYYY-MM-DD; DrawNumber may be zero for pools scheduled by
	// date only.
	DrawDate   string `json:"draw_date"`
	DrawNumber int    `json:"draw_number"`
}

type CreatePoolResponse struct {
	ID string `json:"id"`
}

type CreateTicketRequest struct {
	PoolID  string `json:"pool_id"`
	Numbers []int  `json:"numbers"`
}

type CreateTicketResponse struct {
	ID string `json:"id"`
}
