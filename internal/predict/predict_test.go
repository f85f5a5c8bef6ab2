package predict

import (
	"testing"

	"github.com/hoopiq/courtside/internal/stats"
)

func buildIndex(teams ...stats.TeamStats) *stats.Index {
	return stats.Build(teams, nil, nil)
}

func TestPredict(t *testing.T) {
	ix := buildIndex(
		// net rating +2
		stats.TeamStats{Abbreviation: "BOS", WinPct: 0.60, PPG: 114, OppPPG: 112},
		// net rating -1
		stats.TeamStats{Abbreviation: "LAL", WinPct: 0.40, PPG: 110, OppPPG: 111},
		// hopeless season: net rating -12
		stats.TeamStats{Abbreviation: "DET", WinPct: 0.10, PPG: 104, OppPPG: 116},
		// juggernaut: net rating +11
		stats.TeamStats{Abbreviation: "OKC", WinPct: 0.85, PPG: 120, OppPPG: 109},
	)
	p := New(DefaultConfig())

	tests := []struct {
		name       string
		home, away string
		wantHome   int
		wantWinner string
	}{
		// 0.5 + 0.20/2 + 0.03 + 3/20 = 0.78
		{"favored home", "BOS", "LAL", 78, "BOS"},
		// mirror matchup: 0.5 - 0.10 + 0.03 - 0.15 = 0.28
		{"favored visitor", "LAL", "BOS", 28, "BOS"},
		// raw 1.525 clamps at the ceiling
		{"lopsided clamps high", "OKC", "DET", 80, "OKC"},
		// raw -0.995 clamps at the floor
		{"lopsided clamps low", "DET", "OKC", 20, "OKC"},
		{"lowercase input normalized", "bos", "lal", 78, "BOS"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := p.Predict(tt.home, tt.away, ix)

			if got.HomeWinProb != tt.wantHome {
				t.Errorf("HomeWinProb = %d, want %d", got.HomeWinProb, tt.wantHome)
			}
			if got.HomeWinProb+got.AwayWinProb != 100 {
				t.Errorf("probabilities sum to %d, want 100", got.HomeWinProb+got.AwayWinProb)
			}
			if got.PredictedWinner != tt.wantWinner {
				t.Errorf("PredictedWinner = %s, want %s", got.PredictedWinner, tt.wantWinner)
			}
			wantConf := got.HomeWinProb
			if got.AwayWinProb > wantConf {
				wantConf = got.AwayWinProb
			}
			if got.Confidence != wantConf {
				t.Errorf("Confidence = %d, want %d", got.Confidence, wantConf)
			}
		})
	}
}

func TestPredictBoundsHoldEverywhere(t *testing.T) {
	ix := buildIndex(
		stats.TeamStats{Abbreviation: "AAA", WinPct: 1.0, PPG: 130, OppPPG: 95},
		stats.TeamStats{Abbreviation: "BBB", WinPct: 0.0, PPG: 95, OppPPG: 130},
		stats.TeamStats{Abbreviation: "CCC", WinPct: 0.5, PPG: 110, OppPPG: 110},
	)
	p := New(DefaultConfig())

	abbrs := []string{"AAA", "BBB", "CCC"}
	for _, home := range abbrs {
		for _, away := range abbrs {
			got := p.Predict(home, away, ix)
			if got.HomeWinProb < 20 || got.HomeWinProb > 80 {
				t.Errorf("Predict(%s, %s).HomeWinProb = %d, want within [20, 80]", home, away, got.HomeWinProb)
			}
			if got.HomeWinProb+got.AwayWinProb != 100 {
				t.Errorf("Predict(%s, %s) probabilities sum to %d, want 100", home, away, got.HomeWinProb+got.AwayWinProb)
			}
		}
	}
}

func TestPredictTieGoesToHome(t *testing.T) {
	ix := buildIndex(
		stats.TeamStats{Abbreviation: "BOS", WinPct: 0.5, PPG: 110, OppPPG: 110},
		stats.TeamStats{Abbreviation: "LAL", WinPct: 0.5, PPG: 112, OppPPG: 112},
	)

	// Zero out home court so equal teams land on an even split.
	cfg := DefaultConfig()
	cfg.HomeCourtBonus = 0
	p := New(cfg)

	got := p.Predict("BOS", "LAL", ix)
	if got.HomeWinProb != 50 || got.AwayWinProb != 50 {
		t.Fatalf("split = %d/%d, want 50/50", got.HomeWinProb, got.AwayWinProb)
	}
	if got.PredictedWinner != "BOS" {
		t.Errorf("PredictedWinner = %s, want BOS (home wins ties)", got.PredictedWinner)
	}
	if got.Confidence != 50 {
		t.Errorf("Confidence = %d, want 50", got.Confidence)
	}
}

func TestPredictUnknownTeamFallsBackToNeutral(t *testing.T) {
	ix := buildIndex(stats.TeamStats{Abbreviation: "BOS", WinPct: 0.9, PPG: 120, OppPPG: 100})
	p := New(DefaultConfig())

	tests := []struct {
		name       string
		home, away string
	}{
		{"unknown home", "ZZZ", "BOS"},
		{"unknown away", "BOS", "ZZZ"},
		{"both unknown", "ZZZ", "YYY"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := p.Predict(tt.home, tt.away, ix)
			if got.HomeWinProb != 50 || got.AwayWinProb != 50 {
				t.Errorf("split = %d/%d, want neutral 50/50", got.HomeWinProb, got.AwayWinProb)
			}
			if got.PredictedWinner != got.HomeAbbr {
				t.Errorf("PredictedWinner = %s, want home %s", got.PredictedWinner, got.HomeAbbr)
			}
			if got.Confidence != 50 {
				t.Errorf("Confidence = %d, want 50", got.Confidence)
			}
		})
	}
}

func TestPredictGameTagsGameID(t *testing.T) {
	ix := buildIndex(
		stats.TeamStats{Abbreviation: "BOS", WinPct: 0.6, PPG: 114, OppPPG: 112},
		stats.TeamStats{Abbreviation: "LAL", WinPct: 0.4, PPG: 110, OppPPG: 111},
	)
	p := New(DefaultConfig())

	game := stats.ScheduledGame{
		GameID: "g42",
		Home:   stats.TeamRef{Abbreviation: "BOS"},
		Away:   stats.TeamRef{Abbreviation: "LAL"},
	}

	got := p.PredictGame(game, ix)
	if got.GameID != "g42" {
		t.Errorf("GameID = %q, want g42", got.GameID)
	}
	if got.HomeAbbr != "BOS" || got.AwayAbbr != "LAL" {
		t.Errorf("matchup = %s vs %s, want BOS vs LAL", got.HomeAbbr, got.AwayAbbr)
	}
}
