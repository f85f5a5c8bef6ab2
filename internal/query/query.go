// Package query provides pure filtering over a stats.Index. No I/O, no
// mutation: every operation returns a fresh slice and an empty result is a
// valid outcome, never an error.
package query

import (
	"strings"

	"github.com/hoopiq/courtside/internal/stats"
)

// TeamFilter narrows a team listing. Zero-value fields pass all records.
type TeamFilter struct {
	Conference string // exact match, case-insensitive
	Search     string // substring of name, city, or abbreviation
}

// PlayerFilter narrows a player listing. Zero-value fields pass all records.
type PlayerFilter struct {
	Position string // exact match, case-insensitive
	TeamAbbr string // exact match after uppercasing
	Search   string // substring of player name
}

// Teams returns teams matching the filter, in snapshot load order.
func Teams(ix *stats.Index, f TeamFilter) []stats.TeamStats {
	out := make([]stats.TeamStats, 0)
	for _, t := range ix.Teams() {
		if f.Conference != "" && !strings.EqualFold(f.Conference, t.Conference) {
			continue
		}
		if f.Search != "" && !matchesTeam(t, f.Search) {
			continue
		}
		out = append(out, t)
	}
	return out
}

// Players returns players matching the filter, ordered by descending PPG
// with player id as the stable secondary order.
func Players(ix *stats.Index, f PlayerFilter) []stats.PlayerStats {
	teamAbbr := strings.ToUpper(f.TeamAbbr)

	out := make([]stats.PlayerStats, 0)
	for _, p := range ix.Players() {
		if f.Position != "" && !strings.EqualFold(f.Position, p.Position) {
			continue
		}
		if teamAbbr != "" && p.TeamAbbr != teamAbbr {
			continue
		}
		if f.Search != "" && !containsFold(p.Name, f.Search) {
			continue
		}
		out = append(out, p)
	}
	return out
}

// Team looks up one team's stat line by abbreviation.
func Team(ix *stats.Index, abbr string) (stats.TeamStats, bool) {
	return ix.Team(strings.ToUpper(abbr))
}

// RosterFor returns the ordered roster for a team abbreviation, empty when
// the team is unknown.
func RosterFor(ix *stats.Index, abbr string) []stats.PlayerStats {
	return ix.Roster(strings.ToUpper(abbr))
}

func matchesTeam(t stats.TeamStats, search string) bool {
	return containsFold(t.Name, search) ||
		containsFold(t.City, search) ||
		containsFold(t.Abbreviation, search)
}

func containsFold(haystack, needle string) bool {
	return strings.Contains(strings.ToLower(haystack), strings.ToLower(needle))
}
