package scoring

import (
	"errors"

	"github.com/lotopool/backend/internal/entity"
)

// ErrUnsupportedLotteryType is a caller error; it fails fast without retry.
var ErrUnsupportedLotteryType = errors.New("unsupported lottery type")

// Rules fixes the per-lottery constants: game size, draw cadence, and the
// exact-hit-count bonus and prize-tier tables.
type Rules struct {
	NumbersPerGame   int
	MaxNumber        int
	DrawsPerWeek     int
	BasePointsPerHit int

	// BonusByHits maps an exact hit count to a fixed bonus. Tiers are not
	// cumulative: 5 hits earns the 5-tier bonus only.
	BonusByHits map[int]int

	// TierNames maps an exact hit count to the lottery's named prize tier.
	TierNames map[int]string
}

var rulesByType = map[entity.LotteryType]Rules{
	entity.MegaSena: {
		NumbersPerGame:   6,
		MaxNumber:        60,
		DrawsPerWeek:     2,
		BasePointsPerHit: 1,
		BonusByHits:      map[int]int{6: 1000, 5: 500, 4: 100},
		TierNames:        map[int]string{6: "sena", 5: "quina", 4: "quadra"},
	},
	entity.Lotofacil: {
		NumbersPerGame:   15,
		MaxNumber:        25,
		DrawsPerWeek:     6,
		BasePointsPerHit: 1,
		BonusByHits:      map[int]int{15: 500, 14: 200, 13: 100, 12: 50, 11: 20},
		TierNames: map[int]string{
			15: "15 acertos", 14: "14 acertos", 13: "13 acertos",
			12: "12 acertos", 11: "11 acertos",
		},
	},
	entity.Quina: {
		NumbersPerGame:   5,
		MaxNumber:        80,
		DrawsPerWeek:     6,
		BasePointsPerHit: 1,
		BonusByHits:      map[int]int{5: 800, 4: 300, 3: 60},
		TierNames:        map[int]string{5: "quina", 4: "quadra", 3: "terno"},
	},
}

func RulesFor(lotteryType entity.LotteryType) (Rules, error) {
	rules, ok := rulesByType[lotteryType]
	if !ok {
		return Rules{}, ErrUnsupportedLotteryType
	}

	return rules, nil
}

// Bonus returns the exact-match tier bonus for a hit count.
func (r Rules) Bonus(hits int) int {
	return r.BonusByHits[hits]
}

// TierName returns the named prize tier for an exact hit count, or "" when
// the count has no named tier.
func (r Rules) TierName(hits int) string {
	return r.TierNames[hits]
}
