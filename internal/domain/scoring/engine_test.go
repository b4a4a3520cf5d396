package scoring

import (
	"testing"
	"time"

	"github.com/lotopool/backend/internal/domain/caixa"
	"github.com/lotopool/backend/internal/entity"
	"github.com/stretchr/testify/require"
)

func megaSenaResult(numbers []int) *caixa.Result {
	return &caixa.Result{
		LotteryType: entity.MegaSena,
		DrawNumber:  2650,
		DrawDate:    time.Date(2024, 3, 9, 0, 0, 0, 0, time.Local),
		Numbers:     numbers,
	}
}

func Test_Score_partitionsFlatSequenceIntoGames(t *testing.T) {
	// 23 numbers on megasena is 3 full games; the trailing 5 are discarded.
	numbers := []int{
		1, 2, 3, 4, 5, 6,
		7, 8, 9, 10, 11, 12,
		13, 14, 15, 16, 17, 18,
		19, 20, 21, 22, 23,
	}

	outcome, err := Score("ticket1", numbers, megaSenaResult([]int{1, 2, 20, 21, 22, 23}), entity.MegaSena)
	require.NoError(t, err)
	require.Equal(t, 3, outcome.TotalGamesPlayed)
	require.Equal(t, 2, outcome.TotalHits)
	require.Equal(t, map[string]int{
		"ticket1:0": 2,
		"ticket1:1": 0,
		"ticket1:2": 0,
	}, outcome.HitBreakdown)
}

func Test_Score_bonusIsExactTierNotCumulative(t *testing.T) {
	numbers := []int{4, 18, 29, 37, 42, 55}
	outcome, err := Score("ticket1", numbers,
		megaSenaResult([]int{4, 18, 29, 37, 42, 60}), entity.MegaSena)
	require.NoError(t, err)

	// 5 hits earns 5 base points plus the quina bonus only.
	require.Equal(t, 5, outcome.TotalHits)
	require.Equal(t, 5, outcome.BestGameHits)
	require.Equal(t, 505, outcome.PointsEarned)
	require.Equal(t, "quina", outcome.PrizeTier)
}

func Test_Score_prizeTierComesFromBestSingleGame(t *testing.T) {
	// Two games with 3 hits each: 6 total hits is not a sena.
	numbers := []int{
		1, 2, 3, 51, 52, 53,
		4, 5, 6, 54, 55, 56,
	}

	outcome, err := Score("ticket1", numbers,
		megaSenaResult([]int{1, 2, 3, 4, 5, 6}), entity.MegaSena)
	require.NoError(t, err)
	require.Equal(t, 6, outcome.TotalHits)
	require.Equal(t, 3, outcome.BestGameHits)
	require.Equal(t, "", outcome.PrizeTier)
	require.Equal(t, 6, outcome.PointsEarned)
}

func Test_Score_isDeterministic(t *testing.T) {
	numbers := []int{4, 18, 29, 37, 42, 55, 1, 2, 3, 50, 51, 52}
	result := megaSenaResult([]int{4, 18, 29, 1, 2, 60})

	first, err := Score("ticket1", numbers, result, entity.MegaSena)
	require.NoError(t, err)

	second, err := Score("ticket1", numbers, result, entity.MegaSena)
	require.NoError(t, err)
	require.Equal(t, first, second)
}

func Test_Score_unsupportedLotteryType(t *testing.T) {
	_, err := Score("ticket1", []int{1, 2, 3}, megaSenaResult(nil), entity.LotteryType("duplasena"))
	require.ErrorIs(t, err, ErrUnsupportedLotteryType)
}

func Test_Outcome_Merge(t *testing.T) {
	result := megaSenaResult([]int{4, 18, 29, 37, 42, 55})

	first, err := Score("ticket1", []int{4, 18, 29, 37, 42, 55}, result, entity.MegaSena)
	require.NoError(t, err)

	second, err := Score("ticket2", []int{4, 18, 1, 2, 3, 5}, result, entity.MegaSena)
	require.NoError(t, err)

	first.Merge(second)
	require.Equal(t, 8, first.TotalHits)
	require.Equal(t, 6, first.BestGameHits)
	require.Equal(t, 2, first.TotalGamesPlayed)
	require.Equal(t, "sena", first.PrizeTier)
	require.Len(t, first.HitBreakdown, 2)
}
