package rest

import (
	"context"
	"encoding/json"
	"log"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"golang.org/x/time/rate"

	"github.com/hoopiq/courtside/internal/cache"
	"github.com/hoopiq/courtside/internal/query"
	"github.com/hoopiq/courtside/internal/service"
)

const predictionCacheTTL = 60 * time.Second

// Reloader triggers and reports on snapshot reloads (the scheduler).
type Reloader interface {
	TriggerReload(ctx context.Context) error
	Status() map[string]interface{}
}

// Handler contains dependencies for HTTP handlers. reloader and respCache
// are optional; nil disables the reload endpoint and response caching.
type Handler struct {
	engine        *service.Engine
	reloader      Reloader
	respCache     *cache.RedisCache
	reloadLimiter *rate.Limiter
}

// NewHandler creates a new handler. The reload endpoint is rate-limited so
// clients cannot turn the loader into a hot loop.
func NewHandler(engine *service.Engine, reloader Reloader, respCache *cache.RedisCache) *Handler {
	return &Handler{
		engine:        engine,
		reloader:      reloader,
		respCache:     respCache,
		reloadLimiter: rate.NewLimiter(rate.Every(30*time.Second), 2),
	}
}

// HealthCheck handles health check requests.
func (h *Handler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]string{
		"status":  "healthy",
		"service": "courtside",
	})
}

// GetTeams returns teams, optionally filtered by conference and search text.
func (h *Handler) GetTeams(w http.ResponseWriter, r *http.Request) {
	teams := h.engine.Teams(query.TeamFilter{
		Conference: r.URL.Query().Get("conference"),
		Search:     r.URL.Query().Get("search"),
	})

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"teams": teams,
		"count": len(teams),
	})
}

// GetTeam returns one team by abbreviation.
func (h *Handler) GetTeam(w http.ResponseWriter, r *http.Request) {
	abbr := mux.Vars(r)["abbr"]

	team, ok := h.engine.Team(abbr)
	if !ok {
		respondError(w, http.StatusNotFound, "Team not found", nil)
		return
	}

	respondJSON(w, http.StatusOK, map[string]interface{}{"team": team})
}

// GetTeamRoster returns a team's players ordered by descending PPG. An
// unknown team yields an empty roster, not an error.
func (h *Handler) GetTeamRoster(w http.ResponseWriter, r *http.Request) {
	abbr := mux.Vars(r)["abbr"]

	roster := h.engine.Roster(abbr)
	respondJSON(w, http.StatusOK, map[string]interface{}{
		"team_abbr": abbr,
		"players":   roster,
		"count":     len(roster),
	})
}

// GetPlayers returns players filtered by position, team, and search text.
func (h *Handler) GetPlayers(w http.ResponseWriter, r *http.Request) {
	players := h.engine.Players(query.PlayerFilter{
		Position: r.URL.Query().Get("position"),
		TeamAbbr: r.URL.Query().Get("team"),
		Search:   r.URL.Query().Get("search"),
	})

	respondJSON(w, http.StatusOK, map[string]interface{}{
		"players": players,
		"count":   len(players),
	})
}

// GetUpcomingGames returns the loaded schedule in snapshot order.
func (h *Handler) GetUpcomingGames(w http.ResponseWriter, r *http.Request) {
	games := h.engine.Schedule()
	respondJSON(w, http.StatusOK, map[string]interface{}{
		"games": games,
		"count": len(games),
	})
}

// GetSchedulePredictions returns one prediction per upcoming scheduled game.
func (h *Handler) GetSchedulePredictions(w http.ResponseWriter, r *http.Request) {
	predictions := h.engine.PredictSchedule()
	respondJSON(w, http.StatusOK, map[string]interface{}{
		"predictions": predictions,
		"count":       len(predictions),
	})
}

// GetPrediction returns the win-probability estimate for a home/away pair.
// Unknown teams yield the neutral 50/50 prediction, not an error.
func (h *Handler) GetPrediction(w http.ResponseWriter, r *http.Request) {
	home := r.URL.Query().Get("home")
	away := r.URL.Query().Get("away")
	if home == "" || away == "" {
		respondError(w, http.StatusBadRequest, "Missing query parameters 'home' and 'away'", nil)
		return
	}

	key := cache.PredictionKey(home, away, h.engine.Index().BuiltAt())
	if h.respCache != nil {
		if cached, err := h.respCache.Get(r.Context(), key); err == nil {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusOK)
			w.Write([]byte(cached))
			return
		}
	}

	prediction := h.engine.Predict(home, away)

	if h.respCache != nil {
		if data, err := json.Marshal(prediction); err == nil {
			if err := h.respCache.Set(r.Context(), key, data, predictionCacheTTL); err != nil {
				log.Printf("⚠️  Failed to cache prediction %s: %v", key, err)
			}
		}
	}

	respondJSON(w, http.StatusOK, prediction)
}

// TriggerReload reloads the snapshot set outside the schedule.
func (h *Handler) TriggerReload(w http.ResponseWriter, r *http.Request) {
	if h.reloader == nil {
		respondError(w, http.StatusServiceUnavailable, "Reload is not enabled", nil)
		return
	}
	if !h.reloadLimiter.Allow() {
		respondError(w, http.StatusTooManyRequests, "Reload rate limit exceeded", nil)
		return
	}

	if err := h.reloader.TriggerReload(r.Context()); err != nil {
		respondError(w, http.StatusInternalServerError, "Reload failed", err)
		return
	}

	ix := h.engine.Index()
	respondJSON(w, http.StatusOK, map[string]interface{}{
		"message": "Snapshot reload complete",
		"teams":   ix.TeamCount(),
		"players": ix.PlayerCount(),
		"games":   len(ix.Schedule()),
	})
}

// GetStatus returns engine and scheduler status.
func (h *Handler) GetStatus(w http.ResponseWriter, r *http.Request) {
	ix := h.engine.Index()
	status := map[string]interface{}{
		"teams":    ix.TeamCount(),
		"players":  ix.PlayerCount(),
		"games":    len(ix.Schedule()),
		"built_at": ix.BuiltAt(),
	}
	if h.reloader != nil {
		status["scheduler"] = h.reloader.Status()
	}

	respondJSON(w, http.StatusOK, status)
}

// respondJSON writes a JSON response.
func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

// respondError writes an error response.
func respondError(w http.ResponseWriter, status int, message string, err error) {
	response := map[string]interface{}{
		"error":  message,
		"status": status,
	}
	if err != nil {
		response["details"] = err.Error()
	}

	respondJSON(w, status, response)
}
