package scoring

import (
	"fmt"

	"github.com/lotopool/backend/internal/domain/caixa"
	"github.com/lotopool/backend/internal/entity"
)

// Outcome is the result of scoring one ticket against one draw.
type Outcome struct {
	TotalHits        int
	BestGameHits     int
	HitBreakdown     map[string]int
	TotalGamesPlayed int
	PointsEarned     int

	// PrizeTier is derived from BestGameHits: a tier means one game matched
	// that many numbers, not that hits summed across games reached it.
	PrizeTier string
}

// Score partitions the ticket's flat number sequence into games and counts
// hits against the draw. Pure and deterministic: identical inputs always
// produce identical outcomes, which makes reprocessing a draw idempotent.
func Score(
	ticketID string,
	numbers []int,
	result *caixa.Result,
	lotteryType entity.LotteryType,
) (*Outcome, error) {
	rules, err := RulesFor(lotteryType)
	if err != nil {
		return nil, err
	}

	drawn := make(map[int]bool, len(result.Numbers))
	for _, n := range result.Numbers {
		drawn[n] = true
	}

	outcome := &Outcome{HitBreakdown: make(map[string]int)}

	// A trailing chunk smaller than a full game is not scored.
	games := len(numbers) / rules.NumbersPerGame
	for game := 0; game < games; game++ {
		chunk := numbers[game*rules.NumbersPerGame : (game+1)*rules.NumbersPerGame]

		hits := 0
		for _, n := range chunk {
			if drawn[n] {
				hits++
			}
		}

		outcome.HitBreakdown[fmt.Sprintf("%s:%d", ticketID, game)] = hits
		outcome.TotalHits += hits
		outcome.PointsEarned += hits*rules.BasePointsPerHit + rules.Bonus(hits)
		if hits > outcome.BestGameHits {
			outcome.BestGameHits = hits
		}
	}

	outcome.TotalGamesPlayed = games
	outcome.PrizeTier = rules.TierName(outcome.BestGameHits)
	return outcome, nil
}

// Merge folds another ticket's outcome into o. Used to combine all of a
// participant's tickets for one draw.
func (o *Outcome) Merge(other *Outcome) {
	o.TotalHits += other.TotalHits
	o.TotalGamesPlayed += other.TotalGamesPlayed
	o.PointsEarned += other.PointsEarned
	for key, hits := range other.HitBreakdown {
		o.HitBreakdown[key] = hits
	}

	if other.BestGameHits > o.BestGameHits {
		o.BestGameHits = other.BestGameHits
		o.PrizeTier = other.PrizeTier
	}
}
