package scheduler

import (
	"context"
	"encoding/json"
	"log"
	"sync"
	"time"

	"github.com/hoopiq/courtside/internal/service"
	"github.com/hoopiq/courtside/internal/store"
)

// Publisher announces completed reloads and fresh predictions to
// downstream consumers.
type Publisher interface {
	PublishReload(ctx context.Context, summary interface{}) error
	PublishPrediction(ctx context.Context, prediction interface{}) error
}

// Broadcaster pushes reload notifications to connected WebSocket clients.
type Broadcaster interface {
	BroadcastReload(data []byte)
}

// Config holds scheduler configuration.
type Config struct {
	ReloadInterval   time.Duration // Default: 15m
	MaxRetries       int           // Default: 3
	RetryDelay       time.Duration // Default: 5s
	EnableReload     bool          // Default: true
	ArchiveRetention time.Duration // Default: 7 days; 0 disables pruning
	PruneHour        int           // Default: 4 (4 AM)
}

// DefaultConfig returns default scheduler configuration.
func DefaultConfig() *Config {
	return &Config{
		ReloadInterval:   15 * time.Minute,
		MaxRetries:       3,
		RetryDelay:       5 * time.Second,
		EnableReload:     true,
		ArchiveRetention: 7 * 24 * time.Hour,
		PruneHour:        4,
	}
}

// ReloadSummary is the event payload published after a successful rebuild.
type ReloadSummary struct {
	Teams      int       `json:"teams"`
	Players    int       `json:"players"`
	Games      int       `json:"games"`
	BuiltAt    time.Time `json:"built_at"`
	DurationMS int64     `json:"duration_ms"`
}

// Orchestrator owns the single-writer reload loop: it periodically rebuilds
// the stat index from fresh snapshots while readers keep serving the
// last-known-good index. A failed reload is never fatal.
type Orchestrator struct {
	engine      *service.Engine
	publisher   Publisher
	broadcaster Broadcaster
	archive     *store.Database
	config      *Config
	cancel      context.CancelFunc

	mu           sync.Mutex
	lastReloadAt time.Time
	lastError    string
	reloads      int64
}

// NewOrchestrator creates a scheduler around the engine. publisher,
// broadcaster, and archive are optional; nil disables that output.
func NewOrchestrator(engine *service.Engine, publisher Publisher, broadcaster Broadcaster, archive *store.Database, config *Config) *Orchestrator {
	if config == nil {
		config = DefaultConfig()
	}
	return &Orchestrator{
		engine:      engine,
		publisher:   publisher,
		broadcaster: broadcaster,
		archive:     archive,
		config:      config,
	}
}

// Start begins the scheduled tasks and blocks until ctx is cancelled.
func (o *Orchestrator) Start(ctx context.Context) {
	log.Printf("Scheduler starting (reload interval: %v, retries: %d)", o.config.ReloadInterval, o.config.MaxRetries)

	ctx, cancel := context.WithCancel(ctx)
	o.cancel = cancel

	if o.config.EnableReload {
		go o.runReloadLoop(ctx)
	}
	if o.archive != nil && o.config.ArchiveRetention > 0 {
		go o.runArchivePrune(ctx)
	}

	<-ctx.Done()
	log.Println("Scheduler stopping...")
}

// Stop cancels the scheduled tasks.
func (o *Orchestrator) Stop() {
	if o.cancel != nil {
		o.cancel()
	}
}

// runReloadLoop rebuilds the index immediately, then on every tick.
func (o *Orchestrator) runReloadLoop(ctx context.Context) {
	log.Printf("→ Snapshot reload loop started (interval: %v)", o.config.ReloadInterval)

	ticker := time.NewTicker(o.config.ReloadInterval)
	defer ticker.Stop()

	consecutiveErrors := 0

	o.reloadWithRetry(ctx, &consecutiveErrors)

	for {
		select {
		case <-ctx.Done():
			log.Println("→ Snapshot reload loop stopped")
			return
		case <-ticker.C:
			o.reloadWithRetry(ctx, &consecutiveErrors)
		}
	}
}

// reloadWithRetry attempts one reload with per-attempt retry. On exhausted
// retries the last-known-good index keeps serving.
func (o *Orchestrator) reloadWithRetry(ctx context.Context, consecutiveErrors *int) {
	var err error

	for attempt := 1; attempt <= o.config.MaxRetries; attempt++ {
		started := time.Now()
		var summary ReloadSummary

		ix, reloadErr := o.engine.Reload(ctx)
		err = reloadErr
		if err == nil {
			*consecutiveErrors = 0
			summary = ReloadSummary{
				Teams:      ix.TeamCount(),
				Players:    ix.PlayerCount(),
				Games:      len(ix.Schedule()),
				BuiltAt:    ix.BuiltAt(),
				DurationMS: time.Since(started).Milliseconds(),
			}
			o.recordSuccess(summary.BuiltAt)
			o.announce(ctx, summary)
			return
		}

		log.Printf("  ⚠️  Reload attempt %d/%d failed: %v", attempt, o.config.MaxRetries, err)

		if attempt < o.config.MaxRetries {
			select {
			case <-ctx.Done():
				return
			case <-time.After(o.config.RetryDelay):
			}
		}
	}

	*consecutiveErrors++
	o.recordFailure(err)
	log.Printf("  ❌ All %d reload attempts failed (consecutive failures: %d); serving last-known-good index",
		o.config.MaxRetries, *consecutiveErrors)
}

// announce fans the reload event out to the stream publisher and WebSocket
// hub. Both are best-effort: a publish failure never affects the swap.
func (o *Orchestrator) announce(ctx context.Context, summary ReloadSummary) {
	if o.publisher != nil {
		if err := o.publisher.PublishReload(ctx, summary); err != nil {
			log.Printf("  ⚠️  Failed to publish reload event: %v", err)
		}
		for _, prediction := range o.engine.PredictSchedule() {
			if err := o.publisher.PublishPrediction(ctx, prediction); err != nil {
				log.Printf("  ⚠️  Failed to publish prediction for game %s: %v", prediction.GameID, err)
				break
			}
		}
	}
	if o.broadcaster != nil {
		if data, err := json.Marshal(summary); err == nil {
			o.broadcaster.BroadcastReload(data)
		}
	}
}

// runArchivePrune trims the snapshot archive once a day.
func (o *Orchestrator) runArchivePrune(ctx context.Context) {
	log.Printf("→ Archive prune scheduler started (runs at %02d:00 daily, retention %v)", o.config.PruneHour, o.config.ArchiveRetention)

	for {
		now := time.Now()
		nextRun := time.Date(now.Year(), now.Month(), now.Day(), o.config.PruneHour, 0, 0, 0, now.Location())
		if now.After(nextRun) {
			nextRun = nextRun.Add(24 * time.Hour)
		}

		select {
		case <-ctx.Done():
			log.Println("→ Archive prune scheduler stopped")
			return
		case <-time.After(time.Until(nextRun)):
			pruned, err := o.archive.Prune(ctx, o.config.ArchiveRetention)
			if err != nil {
				log.Printf("  ⚠️  Archive prune failed: %v", err)
			} else if pruned > 0 {
				log.Printf("  ✓ Pruned %d archived snapshot rows", pruned)
			}
		}
	}
}

// TriggerReload runs a reload outside the schedule (manual endpoint).
func (o *Orchestrator) TriggerReload(ctx context.Context) error {
	started := time.Now()
	ix, err := o.engine.Reload(ctx)
	if err != nil {
		o.recordFailure(err)
		return err
	}

	summary := ReloadSummary{
		Teams:      ix.TeamCount(),
		Players:    ix.PlayerCount(),
		Games:      len(ix.Schedule()),
		BuiltAt:    ix.BuiltAt(),
		DurationMS: time.Since(started).Milliseconds(),
	}
	o.recordSuccess(summary.BuiltAt)
	o.announce(ctx, summary)
	return nil
}

// Status returns current scheduler status for the status endpoint.
func (o *Orchestrator) Status() map[string]interface{} {
	o.mu.Lock()
	defer o.mu.Unlock()

	status := map[string]interface{}{
		"reload_enabled":  o.config.EnableReload,
		"reload_interval": o.config.ReloadInterval.String(),
		"reload_count":    o.reloads,
	}
	if !o.lastReloadAt.IsZero() {
		status["last_reload_at"] = o.lastReloadAt
	}
	if o.lastError != "" {
		status["last_error"] = o.lastError
	}
	return status
}

func (o *Orchestrator) recordSuccess(at time.Time) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.lastReloadAt = at
	o.lastError = ""
	o.reloads++
}

func (o *Orchestrator) recordFailure(err error) {
	o.mu.Lock()
	defer o.mu.Unlock()
	if err != nil {
		o.lastError = err.Error()
	}
}
