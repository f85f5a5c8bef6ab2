package stats

import (
	"log"
	"sort"
	"sync/atomic"
	"time"
)

// Index is the in-memory lookup structure built from one snapshot load.
// It is immutable after Build returns: readers share it freely and a reload
// produces a brand new Index that replaces it wholesale via Holder.Swap.
type Index struct {
	teams     map[string]TeamStats
	rosters   map[string][]PlayerStats
	teamOrder []string
	players   []PlayerStats
	schedule  []ScheduledGame
	builtAt   time.Time
}

// Build constructs an Index from normalized records. Team abbreviations are
// assumed uppercase (the normalizer's job). Duplicate team abbreviations are
// last-write-wins and logged as a data-quality warning. Rosters are ordered
// by descending PPG, ties broken by ascending player ID so rebuilds from the
// same snapshot are deterministic.
func Build(teams []TeamStats, players []PlayerStats, schedule []ScheduledGame) *Index {
	ix := &Index{
		teams:    make(map[string]TeamStats, len(teams)),
		rosters:  make(map[string][]PlayerStats),
		builtAt:  time.Now(),
		schedule: append([]ScheduledGame(nil), schedule...),
	}

	for _, t := range teams {
		if _, dup := ix.teams[t.Abbreviation]; dup {
			log.Printf("[index] ⚠️  duplicate team abbreviation %s in snapshot, keeping latest row", t.Abbreviation)
		} else {
			ix.teamOrder = append(ix.teamOrder, t.Abbreviation)
		}
		ix.teams[t.Abbreviation] = t
	}

	for _, p := range players {
		ix.rosters[p.TeamAbbr] = append(ix.rosters[p.TeamAbbr], p)
	}
	for abbr := range ix.rosters {
		sortRoster(ix.rosters[abbr])
	}

	ix.players = append([]PlayerStats(nil), players...)
	sortRoster(ix.players)

	return ix
}

func sortRoster(roster []PlayerStats) {
	sort.SliceStable(roster, func(i, j int) bool {
		if roster[i].PPG != roster[j].PPG {
			return roster[i].PPG > roster[j].PPG
		}
		return roster[i].PlayerID < roster[j].PlayerID
	})
}

// Team looks up a team's stat line by uppercase abbreviation.
func (ix *Index) Team(abbr string) (TeamStats, bool) {
	t, ok := ix.teams[abbr]
	return t, ok
}

// Teams returns all team stat lines in snapshot load order.
func (ix *Index) Teams() []TeamStats {
	out := make([]TeamStats, 0, len(ix.teamOrder))
	for _, abbr := range ix.teamOrder {
		out = append(out, ix.teams[abbr])
	}
	return out
}

// Roster returns a team's players ordered by descending PPG. The returned
// slice is a copy; an unknown abbreviation yields an empty roster.
func (ix *Index) Roster(abbr string) []PlayerStats {
	return append([]PlayerStats(nil), ix.rosters[abbr]...)
}

// Players returns every player in the index, ordered by descending PPG.
func (ix *Index) Players() []PlayerStats {
	return append([]PlayerStats(nil), ix.players...)
}

// Schedule returns the scheduled games in snapshot order.
func (ix *Index) Schedule() []ScheduledGame {
	return append([]ScheduledGame(nil), ix.schedule...)
}

// TeamCount reports how many teams the index holds.
func (ix *Index) TeamCount() int { return len(ix.teams) }

// PlayerCount reports how many players the index holds.
func (ix *Index) PlayerCount() int { return len(ix.players) }

// BuiltAt reports when this index was constructed.
func (ix *Index) BuiltAt() time.Time { return ix.builtAt }

// Holder hands a current Index to any number of concurrent readers while a
// single writer swaps in a freshly built one. Readers never block: the swap
// is a single atomic pointer store, so a reader either sees the old complete
// index or the new complete index, never a partial build.
type Holder struct {
	current atomic.Pointer[Index]
}

// NewHolder returns a Holder primed with an empty index so reads before the
// first snapshot load are valid (and empty) rather than nil.
func NewHolder() *Holder {
	h := &Holder{}
	h.current.Store(Build(nil, nil, nil))
	return h
}

// Current returns the most recently swapped-in index.
func (h *Holder) Current() *Index {
	return h.current.Load()
}

// Swap publishes a new index wholesale.
func (h *Holder) Swap(ix *Index) {
	h.current.Store(ix)
}
