package stats

// TeamStats is the canonical season-to-date stat line for one team,
// keyed by its uppercase abbreviation (e.g. "BOS", "LAL").
type TeamStats struct {
	TeamID       int     `json:"team_id"`
	Abbreviation string  `json:"abbr"`
	Name         string  `json:"name"`
	City         string  `json:"city"`
	Conference   string  `json:"conference"`
	Wins         int     `json:"wins"`
	Losses       int     `json:"losses"`
	WinPct       float64 `json:"win_pct"`
	PPG          float64 `json:"ppg"`
	OppPPG       float64 `json:"opp_ppg"`
	FGPct        float64 `json:"fg_pct"`
	FG3Pct       float64 `json:"fg3_pct"`
	RPG          float64 `json:"rpg"`
	APG          float64 `json:"apg"`
	GamesPlayed  int     `json:"games_played"`
}

// NetRating is points scored minus points allowed per game.
func (t TeamStats) NetRating() float64 {
	return t.PPG - t.OppPPG
}

// PlayerStats is the canonical season-to-date stat line for one player.
// Shooting splits are on the 0-100 scale; win_pct style fractions are not
// used at the player level.
type PlayerStats struct {
	PlayerID     int     `json:"player_id"`
	Name         string  `json:"name"`
	TeamAbbr     string  `json:"team_abbr"`
	TeamName     string  `json:"team_name"`
	Position     string  `json:"position"`
	Jersey       string  `json:"jersey"`
	Height       string  `json:"height"`
	Weight       int     `json:"weight"`
	Age          int     `json:"age"`
	Experience   string  `json:"experience"`
	Season       string  `json:"season"`
	GamesPlayed  int     `json:"games_played"`
	GamesStarted int     `json:"games_started"`
	Minutes      float64 `json:"minutes"`
	PPG          float64 `json:"ppg"`
	RPG          float64 `json:"rpg"`
	APG          float64 `json:"apg"`
	SPG          float64 `json:"spg"`
	BPG          float64 `json:"bpg"`
	FGPct        float64 `json:"fg_pct"`
	FG3Pct       float64 `json:"fg3_pct"`
	FTPct        float64 `json:"ft_pct"`
	Turnovers    float64 `json:"turnovers"`
}

// Game status values. Unknown snapshot statuses normalize to StatusScheduled.
const (
	StatusScheduled = "scheduled"
	StatusLive      = "live"
	StatusFinal     = "final"
)

// TeamRef identifies one side of a scheduled matchup.
type TeamRef struct {
	TeamID       int    `json:"team_id"`
	Abbreviation string `json:"abbr"`
	Name         string `json:"name"`
	City         string `json:"city"`
}

// ScheduledGame is one entry from the schedule snapshot.
type ScheduledGame struct {
	GameID string  `json:"game_id"`
	Date   string  `json:"date"`
	Time   string  `json:"time"`
	Home   TeamRef `json:"home"`
	Away   TeamRef `json:"away"`
	Status string  `json:"status"`
}

// MatchupPrediction is the derived win-probability estimate for one
// home/away pairing. Probabilities are integer percentages and always sum
// to 100; confidence equals the larger of the two.
type MatchupPrediction struct {
	GameID          string `json:"game_id,omitempty"`
	HomeAbbr        string `json:"home_team"`
	AwayAbbr        string `json:"away_team"`
	HomeWinProb     int    `json:"home_win_probability"`
	AwayWinProb     int    `json:"away_win_probability"`
	PredictedWinner string `json:"predicted_winner"`
	Confidence      int    `json:"confidence"`
}
