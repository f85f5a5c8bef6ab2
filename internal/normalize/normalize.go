// Package normalize coerces raw snapshot records into the canonical typed
// model. Records missing a required identity field are dropped with a
// warning; numeric stats default to zero so listings and rankings stay
// total. Team abbreviations are uppercased here and every downstream lookup
// assumes uppercase keys.
package normalize

import (
	"log"
	"strings"

	"github.com/hoopiq/courtside/internal/snapshot"
	"github.com/hoopiq/courtside/internal/stats"
)

// Teams maps raw team-stat records to TeamStats. Rows without a team
// abbreviation are dropped. WinPct is recomputed from the record when the
// team has played games, keeping the wins/(wins+losses) invariant even if
// the snapshot carried a stale value.
func Teams(records []snapshot.Record) []stats.TeamStats {
	teams := make([]stats.TeamStats, 0, len(records))
	for i, rec := range records {
		abbr := strings.ToUpper(rec.Text("abbr"))
		if abbr == "" {
			log.Printf("[normalize] ⚠️  dropping team row %d: missing abbreviation", i+1)
			continue
		}

		t := stats.TeamStats{
			TeamID:       rec.Int("team_id"),
			Abbreviation: abbr,
			Name:         rec.Text("name"),
			City:         rec.Text("city"),
			Conference:   rec.Text("conference"),
			Wins:         rec.Int("wins"),
			Losses:       rec.Int("losses"),
			WinPct:       rec.Float("win_pct"),
			PPG:          rec.Float("ppg"),
			OppPPG:       rec.Float("opp_ppg"),
			FGPct:        shootingPct(rec.Float("fg_pct")),
			FG3Pct:       shootingPct(rec.Float("fg3_pct")),
			RPG:          rec.Float("rpg"),
			APG:          rec.Float("apg"),
			GamesPlayed:  rec.Int("games_played"),
		}

		if t.Wins+t.Losses > 0 {
			t.WinPct = float64(t.Wins) / float64(t.Wins+t.Losses)
		}
		if t.WinPct < 0 {
			t.WinPct = 0
		} else if t.WinPct > 1 {
			t.WinPct = 1
		}

		teams = append(teams, t)
	}
	return teams
}

// Players maps raw player-stat records to PlayerStats. Rows without a
// player id are dropped. Per-game rates are clamped to non-negative.
func Players(records []snapshot.Record) []stats.PlayerStats {
	players := make([]stats.PlayerStats, 0, len(records))
	for i, rec := range records {
		id := rec.Int("player_id")
		if id == 0 {
			log.Printf("[normalize] ⚠️  dropping player row %d (%s): missing player id", i+1, rec.Text("name"))
			continue
		}

		p := stats.PlayerStats{
			PlayerID:     id,
			Name:         rec.Text("name"),
			TeamAbbr:     strings.ToUpper(rec.Text("team_abbr")),
			TeamName:     rec.Text("team_name"),
			Position:     rec.Text("position"),
			Jersey:       rec.Text("jersey"),
			Height:       rec.Text("height"),
			Weight:       rec.Int("weight"),
			Age:          rec.Int("age"),
			Experience:   rec.Text("experience"),
			Season:       rec.Text("season"),
			GamesPlayed:  rec.Int("games_played"),
			GamesStarted: rec.Int("games_started"),
			Minutes:      nonNegative(rec.Float("minutes")),
			PPG:          nonNegative(rec.Float("ppg")),
			RPG:          nonNegative(rec.Float("rpg")),
			APG:          nonNegative(rec.Float("apg")),
			SPG:          nonNegative(rec.Float("spg")),
			BPG:          nonNegative(rec.Float("bpg")),
			FGPct:        shootingPct(rec.Float("fg_pct")),
			FG3Pct:       shootingPct(rec.Float("fg3_pct")),
			FTPct:        shootingPct(rec.Float("ft_pct")),
			Turnovers:    nonNegative(rec.Float("turnovers")),
		}

		players = append(players, p)
	}
	return players
}

// Schedule maps raw schedule records to ScheduledGame entries. Rows without
// a game id or either team abbreviation are dropped.
func Schedule(records []snapshot.Record) []stats.ScheduledGame {
	games := make([]stats.ScheduledGame, 0, len(records))
	for i, rec := range records {
		gameID := rec.Text("game_id")
		homeAbbr := strings.ToUpper(rec.Text("home_team_abbr"))
		awayAbbr := strings.ToUpper(rec.Text("away_team_abbr"))
		if gameID == "" || homeAbbr == "" || awayAbbr == "" {
			log.Printf("[normalize] ⚠️  dropping schedule row %d: missing game id or team abbreviation", i+1)
			continue
		}

		games = append(games, stats.ScheduledGame{
			GameID: gameID,
			Date:   rec.Text("game_date"),
			Time:   rec.Text("game_time"),
			Home: stats.TeamRef{
				TeamID:       rec.Int("home_team_id"),
				Abbreviation: homeAbbr,
				Name:         rec.Text("home_team_name"),
				City:         rec.Text("home_team_city"),
			},
			Away: stats.TeamRef{
				TeamID:       rec.Int("away_team_id"),
				Abbreviation: awayAbbr,
				Name:         rec.Text("away_team_name"),
				City:         rec.Text("away_team_city"),
			},
			Status: normalizeStatus(rec.Text("status")),
		})
	}
	return games
}

// normalizeStatus folds collector status strings onto the canonical set.
func normalizeStatus(raw string) string {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "live", "in_progress", "in progress":
		return stats.StatusLive
	case "final", "completed":
		return stats.StatusFinal
	default:
		return stats.StatusScheduled
	}
}

// shootingPct applies the uniform percentage convention: splits live on the
// 0-100 scale, and values handed over as fractions are scaled up.
func shootingPct(v float64) float64 {
	if v > 0 && v <= 1 {
		return v * 100
	}
	return nonNegative(v)
}

func nonNegative(v float64) float64 {
	if v < 0 {
		return 0
	}
	return v
}
