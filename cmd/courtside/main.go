package main

import (
	"context"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/hoopiq/courtside/internal/api/rest"
	"github.com/hoopiq/courtside/internal/api/websocket"
	"github.com/hoopiq/courtside/internal/cache"
	"github.com/hoopiq/courtside/internal/predict"
	"github.com/hoopiq/courtside/internal/publisher"
	"github.com/hoopiq/courtside/internal/scheduler"
	"github.com/hoopiq/courtside/internal/service"
	"github.com/hoopiq/courtside/internal/snapshot"
	"github.com/hoopiq/courtside/internal/store"
)

const (
	serviceName    = "courtside"
	serviceVersion = "1.0.0"
)

func main() {
	log.Printf("Starting %s v%s - NBA Stats Aggregation & Prediction Engine", serviceName, serviceVersion)

	// Load configuration from environment (.env is optional)
	if err := godotenv.Load(); err == nil {
		log.Println("✓ Loaded configuration from .env")
	}
	config := loadConfig()

	// Pick the snapshot source: local filesystem by default, or the
	// Postgres archive when collectors insert payloads there.
	var source snapshot.Source
	var archive *store.Database

	if config.SnapshotSource == "postgres" || config.ArchiveDSN != "" {
		db, err := store.NewDatabase(config.ArchiveDSN)
		if err != nil {
			log.Fatalf("Failed to connect to snapshot archive: %v", err)
		}
		defer db.Close()

		if err := db.EnsureSchema(context.Background()); err != nil {
			log.Fatalf("Failed to ensure archive schema: %v", err)
		}
		archive = db
		log.Println("✓ Connected to snapshot archive database")
	}

	if config.SnapshotSource == "postgres" {
		source = store.NewDatabaseSource(archive)
		log.Println("✓ Snapshot source: postgres archive")
	} else {
		source = snapshot.NewFileSource(config.DataDir)
		log.Printf("✓ Snapshot source: %s", config.DataDir)
	}

	// Redis is optional: without it the service skips response caching
	// and stream publishing but serves everything else.
	var redisCache *cache.RedisCache
	var redisPublisher *publisher.RedisPublisher

	if config.RedisURL != "" {
		maxRetries := 10
		retryDelay := 2 * time.Second

		log.Println("Connecting to Redis...")
		var err error
		for i := 0; i < maxRetries; i++ {
			redisCache, err = cache.NewRedisCache(config.RedisURL)
			if err == nil {
				break
			}

			if i < maxRetries-1 {
				log.Printf("Redis connection attempt %d/%d failed: %v (retrying in %v)", i+1, maxRetries, err, retryDelay)
				time.Sleep(retryDelay)
			} else {
				log.Fatalf("Failed to connect to Redis after %d attempts: %v", maxRetries, err)
			}
		}
		defer redisCache.Close()
		log.Println("✓ Connected to Redis")

		redisPublisher = publisher.NewRedisStreamPublisher(redisCache.Client())
		log.Println("✓ Redis publisher initialized")
	} else {
		log.Println("⚠️  REDIS_URL not set, caching and stream publishing disabled")
	}

	// Wire the engine
	loader := snapshot.NewLoader(source, snapshot.DefaultPaths())
	engine := service.NewEngine(loader, predict.New(predict.DefaultConfig()))

	// Initialize WebSocket server (the scheduler broadcasts through it)
	wsServer := websocket.NewServer()

	schedulerConfig := scheduler.DefaultConfig()
	schedulerConfig.ReloadInterval = config.ReloadInterval
	schedulerConfig.EnableReload = config.EnableReload

	var pub scheduler.Publisher
	if redisPublisher != nil {
		pub = redisPublisher
	}

	sched := scheduler.NewOrchestrator(engine, pub, wsServer, archive, schedulerConfig)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go sched.Start(ctx)
	log.Println("✓ Scheduler started")

	if !config.EnableReload {
		// No reload loop; build the index once so the API has data.
		if _, err := engine.Reload(ctx); err != nil {
			log.Printf("⚠️  Initial snapshot load failed: %v (serving empty index)", err)
		}
	}

	// Initialize REST API server
	handler := rest.NewHandler(engine, sched, redisCache)
	restServer := rest.NewServer(config.RESTPort, handler)
	go func() {
		log.Printf("Starting REST API server on port %s", config.RESTPort)
		if err := restServer.Start(); err != nil {
			log.Printf("REST server error: %v", err)
		}
	}()

	log.Printf("✓ REST API server listening on :%s", config.RESTPort)

	go func() {
		log.Printf("Starting WebSocket server on port %s", config.WSPort)
		if err := wsServer.Start(config.WSPort); err != nil {
			log.Printf("WebSocket server error: %v", err)
		}
	}()

	log.Printf("✓ WebSocket server listening on :%s", config.WSPort)
	log.Printf("✓ Courtside v%s started successfully", serviceVersion)
	log.Printf("  REST API: http://0.0.0.0:%s", config.RESTPort)
	log.Printf("  WebSocket: ws://0.0.0.0:%s", config.WSPort)

	// Wait for interrupt signal
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	<-sigChan

	log.Println("Shutting down Courtside gracefully...")

	cancel()
	sched.Stop()

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer shutdownCancel()

	if err := restServer.Shutdown(shutdownCtx); err != nil {
		log.Printf("REST API server shutdown error: %v", err)
	}
	if err := wsServer.Shutdown(shutdownCtx); err != nil {
		log.Printf("WebSocket server shutdown error: %v", err)
	}

	log.Println("Courtside stopped")
}

type Config struct {
	DataDir        string
	SnapshotSource string
	ArchiveDSN     string
	RedisURL       string
	RESTPort       string
	WSPort         string
	ReloadInterval time.Duration
	EnableReload   bool
	LogLevel       string
}

func loadConfig() Config {
	interval, err := time.ParseDuration(getEnv("RELOAD_INTERVAL", "15m"))
	if err != nil {
		log.Printf("⚠️  Invalid RELOAD_INTERVAL, using 15m: %v", err)
		interval = 15 * time.Minute
	}

	return Config{
		DataDir:        getEnv("DATA_DIR", "./data"),
		SnapshotSource: getEnv("SNAPSHOT_SOURCE", "file"),
		ArchiveDSN:     getEnv("ARCHIVE_DSN", ""),
		RedisURL:       getEnv("REDIS_URL", ""),
		RESTPort:       getEnv("REST_PORT", "8080"),
		WSPort:         getEnv("WS_PORT", "8081"),
		ReloadInterval: interval,
		EnableReload:   getEnv("ENABLE_RELOAD", "true") == "true",
		LogLevel:       getEnv("LOG_LEVEL", "info"),
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
