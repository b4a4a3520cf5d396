package caixa

import (
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/lotopool/backend/internal/entity"
	"github.com/lotopool/backend/pkg/dateutil"
)

var (
	// ErrProviderUnavailable is returned after retries are exhausted. The
	// caller must surface it; fabricating numbers on failure is never an
	// option in a money-handling flow.
	ErrProviderUnavailable = errors.New("draw result provider unavailable")

	// ErrMalformedResponse is returned when the provider answers with a
	// structurally invalid body. It is never retried.
	ErrMalformedResponse = errors.New("malformed provider response")
)

// Result is the canonical, normalized form of one official draw.
type Result struct {
	LotteryType   entity.LotteryType
	DrawNumber    int
	DrawDate      time.Time
	Numbers       []int
	Accumulated   bool
	WinnersByTier map[string]int
	PrizesByTier  map[string]float64

	// Raw keeps the provider body as received, before any sanitization.
	Raw []byte
}

// IsCompleted reports whether the draw date is on or before now's calendar
// day; a completed draw's result is an immutable historical fact.
func (r *Result) IsCompleted(now time.Time) bool {
	return dateutil.IsOnOrBeforeDay(r.DrawDate, now)
}

type providerPrize struct {
	Descricao   string  `json:"descricao"`
	Faixa       int     `json:"faixa"`
	Ganhadores  int     `json:"ganhadores"`
	ValorPremio float64 `json:"valorPremio"`
}

type providerPayload struct {
	Loteria    string          `json:"loteria"`
	Concurso   int             `json:"concurso"`
	Data       string          `json:"data"`
	Dezenas    []string        `json:"dezenas"`
	Acumulou   bool            `json:"acumulou"`
	Premiacoes []providerPrize `json:"premiacoes"`
}

const providerDateLayout = "02/01/2006"

func parseResult(lotteryType entity.LotteryType, body []byte) (*Result, error) {
	var payload providerPayload
	if err := json.Unmarshal(body, &payload); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedResponse, err)
	}

	if payload.Concurso <= 0 {
		return nil, fmt.Errorf("%w: missing draw number", ErrMalformedResponse)
	}

	if len(payload.Dezenas) == 0 {
		return nil, fmt.Errorf("%w: empty drawn numbers", ErrMalformedResponse)
	}

	drawDate, err := time.ParseInLocation(providerDateLayout, payload.Data, time.Local)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid draw date %q", ErrMalformedResponse, payload.Data)
	}

	numbers := make([]int, 0, len(payload.Dezenas))
	for _, d := range payload.Dezenas {
		n, err := strconv.Atoi(d)
		if err != nil || n <= 0 {
			return nil, fmt.Errorf("%w: invalid drawn number %q", ErrMalformedResponse, d)
		}

		numbers = append(numbers, n)
	}

	result := &Result{
		LotteryType:   lotteryType,
		DrawNumber:    payload.Concurso,
		DrawDate:      drawDate,
		Numbers:       numbers,
		Accumulated:   payload.Acumulou,
		WinnersByTier: make(map[string]int),
		PrizesByTier:  make(map[string]float64),
		Raw:           body,
	}

	for _, p := range payload.Premiacoes {
		tier := p.Descricao
		if tier == "" {
			tier = strconv.Itoa(p.Faixa)
		}

		result.WinnersByTier[tier] = p.Ganhadores
		result.PrizesByTier[tier] = p.ValorPremio
	}

	return result, nil
}
