package snapshot

import (
	"context"
	"fmt"
	"io"
	"log"
	"path"
	"strings"
)

// Paths names the three snapshots a load pulls from a Source.
type Paths struct {
	Schedule    string
	TeamStats   string
	PlayerStats string
}

// DefaultPaths matches the layout the collection pipeline writes.
func DefaultPaths() Paths {
	return Paths{
		Schedule:    "schedule/upcoming_games.json",
		TeamStats:   "processed/team_stats.csv",
		PlayerStats: "players/player_stats.json",
	}
}

// Data holds the raw parsed records of one snapshot load, before
// normalization.
type Data struct {
	Schedule []Record
	Teams    []Record
	Players  []Record
}

// Loader reads and parses the snapshot set from a Source. A missing or
// unparseable snapshot never fails the load: that source degrades to an
// empty record list and the condition is logged.
type Loader struct {
	source Source
	paths  Paths
}

// NewLoader creates a Loader over src using the given snapshot paths.
func NewLoader(src Source, paths Paths) *Loader {
	return &Loader{source: src, paths: paths}
}

// Load reads all three snapshots. Absent and unparseable snapshots degrade
// to empty record lists; any other source failure (a transient I/O or
// database error) aborts the whole load so callers keep serving the
// previous index instead of swapping in empty data.
func (l *Loader) Load(ctx context.Context) (*Data, error) {
	schedule, err := l.loadOne(ctx, l.paths.Schedule)
	if err != nil {
		return nil, err
	}
	teams, err := l.loadOne(ctx, l.paths.TeamStats)
	if err != nil {
		return nil, err
	}
	players, err := l.loadOne(ctx, l.paths.PlayerStats)
	if err != nil {
		return nil, err
	}

	return &Data{
		Schedule: schedule,
		Teams:    teams,
		Players:  players,
	}, nil
}

func (l *Loader) loadOne(ctx context.Context, name string) ([]Record, error) {
	rc, err := l.source.Open(ctx, name)
	if err == ErrNotFound {
		log.Printf("[loader] ⚠️  snapshot %s is absent, serving empty set", name)
		return []Record{}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("opening snapshot %s: %w", name, err)
	}
	defer rc.Close()

	records, err := decodeByName(name, rc)
	if err != nil {
		log.Printf("[loader] ⚠️  parsing snapshot %s: %v (serving empty set)", name, err)
		return []Record{}, nil
	}

	return records, nil
}

// decodeByName picks the decoder from the snapshot's file extension.
func decodeByName(name string, r io.Reader) ([]Record, error) {
	switch strings.ToLower(path.Ext(name)) {
	case ".csv":
		return DecodeTabular(r)
	case ".json":
		return DecodeRecords(r)
	case ".html", ".htm":
		return DecodeHTMLTable(r)
	default:
		return nil, fmt.Errorf("unsupported snapshot format %q", path.Ext(name))
	}
}
