package service

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/hoopiq/courtside/internal/normalize"
	"github.com/hoopiq/courtside/internal/predict"
	"github.com/hoopiq/courtside/internal/query"
	"github.com/hoopiq/courtside/internal/snapshot"
	"github.com/hoopiq/courtside/internal/stats"
)

// Engine ties the snapshot loader, normalizer, index, query, and prediction
// components together. It owns the index: Reload is the single writer and
// every read goes through the holder's current pointer, so queries and an
// in-flight reload never contend.
type Engine struct {
	loader    *snapshot.Loader
	holder    *stats.Holder
	predictor *predict.Predictor
}

// NewEngine creates an Engine serving an empty index until the first Reload.
func NewEngine(loader *snapshot.Loader, predictor *predict.Predictor) *Engine {
	return &Engine{
		loader:    loader,
		holder:    stats.NewHolder(),
		predictor: predictor,
	}
}

// Reload loads the snapshot set, normalizes it, and swaps the fresh index in
// wholesale. The previous index keeps serving readers until the swap. On
// error the last-known-good index stays current.
func (e *Engine) Reload(ctx context.Context) (*stats.Index, error) {
	started := time.Now()

	data, err := e.loader.Load(ctx)
	if err != nil {
		return nil, fmt.Errorf("loading snapshots: %w", err)
	}

	ix := stats.Build(
		normalize.Teams(data.Teams),
		normalize.Players(data.Players),
		normalize.Schedule(data.Schedule),
	)
	e.holder.Swap(ix)

	log.Printf("[engine] ✓ index rebuilt: %d teams, %d players, %d scheduled games (%v)",
		ix.TeamCount(), ix.PlayerCount(), len(ix.Schedule()), time.Since(started).Round(time.Millisecond))

	return ix, nil
}

// Index returns the current complete index snapshot.
func (e *Engine) Index() *stats.Index {
	return e.holder.Current()
}

// Teams lists teams matching the filter.
func (e *Engine) Teams(f query.TeamFilter) []stats.TeamStats {
	return query.Teams(e.Index(), f)
}

// Team looks up one team by abbreviation.
func (e *Engine) Team(abbr string) (stats.TeamStats, bool) {
	return query.Team(e.Index(), abbr)
}

// Players lists players matching the filter.
func (e *Engine) Players(f query.PlayerFilter) []stats.PlayerStats {
	return query.Players(e.Index(), f)
}

// Roster lists a team's players ordered by descending PPG.
func (e *Engine) Roster(abbr string) []stats.PlayerStats {
	return query.RosterFor(e.Index(), abbr)
}

// Schedule lists the loaded upcoming games.
func (e *Engine) Schedule() []stats.ScheduledGame {
	return e.Index().Schedule()
}

// Predict scores a single home/away matchup against the current index.
func (e *Engine) Predict(homeAbbr, awayAbbr string) stats.MatchupPrediction {
	return e.predictor.Predict(homeAbbr, awayAbbr, e.Index())
}

// PredictSchedule scores every game in the loaded schedule, one prediction
// per matchup in schedule order.
func (e *Engine) PredictSchedule() []stats.MatchupPrediction {
	ix := e.Index()
	games := ix.Schedule()
	preds := make([]stats.MatchupPrediction, 0, len(games))
	for _, g := range games {
		preds = append(preds, e.predictor.PredictGame(g, ix))
	}
	return preds
}
