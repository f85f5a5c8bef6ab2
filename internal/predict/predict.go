// Package predict computes the deterministic win-probability estimate for a
// home/away matchup from team-level aggregates. The scoring function is a
// fixed, auditable linear formula, not a learned model.
package predict

import (
	"math"
	"strings"

	"github.com/hoopiq/courtside/internal/stats"
)

// Config holds the scoring constants so tests and deployments can vary them
// without touching the algorithm.
type Config struct {
	// HomeCourtBonus is the fixed probability edge granted to the home side.
	HomeCourtBonus float64
	// NetRatingDivisor rescales the roughly ±20-point net-rating spread onto
	// the same ±1.0 scale as a win-percentage difference.
	NetRatingDivisor float64
	// MinProb and MaxProb bound the raw probability. The engine never
	// asserts more than MaxProb or less than MinProb in either direction,
	// however lopsided the inputs.
	MinProb float64
	MaxProb float64
}

// DefaultConfig returns the production scoring constants.
func DefaultConfig() Config {
	return Config{
		HomeCourtBonus:   0.03,
		NetRatingDivisor: 20,
		MinProb:          0.20,
		MaxProb:          0.80,
	}
}

// Predictor scores matchups against an index of team aggregates.
type Predictor struct {
	cfg Config
}

// New creates a Predictor with the given constants.
func New(cfg Config) *Predictor {
	return &Predictor{cfg: cfg}
}

// Predict estimates the outcome of a home/away matchup. When either team's
// stats are missing from the index, it returns the neutral 50/50 fallback;
// missing stats are a defined condition, not an error, so the signature has
// no error return.
func (p *Predictor) Predict(homeAbbr, awayAbbr string, ix *stats.Index) stats.MatchupPrediction {
	homeAbbr = strings.ToUpper(homeAbbr)
	awayAbbr = strings.ToUpper(awayAbbr)

	home, homeOK := ix.Team(homeAbbr)
	away, awayOK := ix.Team(awayAbbr)
	if !homeOK || !awayOK {
		return neutral(homeAbbr, awayAbbr)
	}

	winPctDiff := home.WinPct - away.WinPct
	netRatingDiff := (home.NetRating() - away.NetRating()) / p.cfg.NetRatingDivisor

	prob := 0.5 + winPctDiff/2 + p.cfg.HomeCourtBonus + netRatingDiff
	prob = clamp(prob, p.cfg.MinProb, p.cfg.MaxProb)

	homeProb := int(math.Round(prob * 100))
	awayProb := 100 - homeProb // sums to exactly 100 across rounding

	// A 50/50 split resolves to the home team. Intentional tie-break policy.
	winner := homeAbbr
	if awayProb > homeProb {
		winner = awayAbbr
	}

	return stats.MatchupPrediction{
		HomeAbbr:        homeAbbr,
		AwayAbbr:        awayAbbr,
		HomeWinProb:     homeProb,
		AwayWinProb:     awayProb,
		PredictedWinner: winner,
		Confidence:      max(homeProb, awayProb),
	}
}

// PredictGame scores one scheduled matchup, tagging the result with the
// game id so callers can line predictions up against the schedule.
func (p *Predictor) PredictGame(game stats.ScheduledGame, ix *stats.Index) stats.MatchupPrediction {
	pred := p.Predict(game.Home.Abbreviation, game.Away.Abbreviation, ix)
	pred.GameID = game.GameID
	return pred
}

func neutral(homeAbbr, awayAbbr string) stats.MatchupPrediction {
	return stats.MatchupPrediction{
		HomeAbbr:        homeAbbr,
		AwayAbbr:        awayAbbr,
		HomeWinProb:     50,
		AwayWinProb:     50,
		PredictedWinner: homeAbbr,
		Confidence:      50,
	}
}

func clamp(v, lo, hi float64) float64 {
	return math.Max(lo, math.Min(hi, v))
}
