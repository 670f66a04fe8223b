package main

import (
	"database/sql"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"strings"
	"time"

	_ "github.com/jackc/pgx/v5/stdlib"
	"github.com/joho/godotenv"
	"github.com/lmittmann/tint"
	_ "modernc.org/sqlite"

	"trip-scheduler-service/internal/adapters/cache"
	"trip-scheduler-service/internal/adapters/poi"
	"trip-scheduler-service/internal/adapters/repositories"
	"trip-scheduler-service/internal/adapters/routing"
	"trip-scheduler-service/internal/adapters/weather"
	"trip-scheduler-service/internal/api"
	"trip-scheduler-service/internal/platform/db"
	"trip-scheduler-service/internal/ports"
)

// main is the application composition root.
// It wires concrete adapters (SQLite, ORS, Open-Meteo, Places) behind ports
// and starts the HTTP server.
func main() {
	if err := godotenv.Load(); err != nil {
		slog.Info("No .env file found (using environment variables)")
	}

	setupLogging(getEnv("LOG_LEVEL", "info"))

	dbPath := getEnv("DB_PATH", "data/app.db")
	seedPath := getEnv("SEED_PATH", "data/seeds/pois.json")
	port := getEnv("PORT", "8080")

	sqliteDB, err := openDB(dbPath)
	if err != nil {
		fatal(err)
	}
	defer sqliteDB.Close()

	// Initialize schema and seed demo data on startup for local runs.
	if err := initAndSeed(sqliteDB, seedPath); err != nil {
		fatal(err)
	}

	kvCache, err := buildKVCache()
	if err != nil {
		fatal(err)
	}

	poiProvider := buildPOIProvider(sqliteDB)
	matrixProvider := buildMatrixProvider(sqliteDB)
	weatherProvider := buildWeatherProvider(kvCache)
	planRepo, cleanup, err := buildPlanRepository()
	if err != nil {
		fatal(err)
	}
	defer cleanup()

	router := api.NewRouter(poiProvider, matrixProvider, weatherProvider, planRepo)

	// Timeouts are tuned for cold-cache planning (external API latency).
	slog.Info("Server listening", "addr", ":"+port)
	srv := &http.Server{
		Addr:              ":" + port,
		Handler:           router,
		ReadHeaderTimeout: 5 * time.Second,
		ReadTimeout:       10 * time.Second,
		WriteTimeout:      120 * time.Second,
		IdleTimeout:       60 * time.Second,
	}
	fatal(srv.ListenAndServe())
}

func setupLogging(level string) {
	var lvl slog.Level
	switch strings.ToLower(level) {
	case "debug":
		lvl = slog.LevelDebug
	case "warn":
		lvl = slog.LevelWarn
	default:
		lvl = slog.LevelInfo
	}

	handler := tint.NewHandler(os.Stderr, &tint.Options{
		Level:      lvl,
		TimeFormat: time.Kitchen,
	})
	slog.SetDefault(slog.New(handler))
}

func buildKVCache() (ports.KVCache, error) {
	backend := strings.ToLower(getEnv("CACHE_BACKEND", "memory"))
	switch backend {
	case "memory":
		return cache.NewMemoryCache(30 * time.Minute), nil
	case "redis":
		addr := getEnv("REDIS_ADDR", "localhost:6379")
		c, err := cache.NewRedisCache(addr)
		if err != nil {
			return nil, fmt.Errorf("build cache: connect redis at %q: %w", addr, err)
		}
		return c, nil
	default:
		return nil, fmt.Errorf("build cache: unknown CACHE_BACKEND %q", backend)
	}
}

func buildPOIProvider(sqliteDB *sql.DB) ports.POIProvider {
	repo := repositories.NewSqlitePOIRepository(sqliteDB)

	apiKey := strings.TrimSpace(os.Getenv("PLACES_API_KEY"))
	if apiKey == "" {
		slog.Info("PLACES_API_KEY not set, serving the static catalog")
		return poi.NewStaticPOIProvider(repo)
	}

	provider, err := poi.NewPlacesPOIProvider(apiKey)
	if err != nil {
		slog.Warn("places client init failed, serving the static catalog", "err", err)
		return poi.NewStaticPOIProvider(repo)
	}
	return provider
}

func buildMatrixProvider(sqliteDB *sql.DB) ports.MatrixProvider {
	apiKey := strings.TrimSpace(os.Getenv("ORS_API_KEY"))
	if apiKey == "" {
		slog.Info("ORS_API_KEY not set, using synthetic travel times")
		return routing.NewSyntheticMatrixProvider()
	}

	provider, err := routing.NewORSMatrixProvider(apiKey, cache.NewSqliteMatrixCache(sqliteDB))
	if err != nil {
		slog.Warn("ORS client init failed, using synthetic travel times", "err", err)
		return routing.NewSyntheticMatrixProvider()
	}
	return provider
}

func buildWeatherProvider(kvCache ports.KVCache) ports.WeatherProvider {
	if strings.EqualFold(getEnv("WEATHER_PROVIDER", "openmeteo"), "demo") {
		return weather.NewDemoWeatherProvider()
	}
	return weather.NewOpenMeteoProvider(kvCache)
}

func buildPlanRepository() (ports.PlanRepository, func(), error) {
	databaseURL := strings.TrimSpace(os.Getenv("DATABASE_URL"))
	if databaseURL == "" {
		slog.Info("DATABASE_URL not set, keeping plans in memory")
		return repositories.NewMemoryPlanRepository(24 * time.Hour), func() {}, nil
	}

	pg, err := db.Open(databaseURL)
	if err != nil {
		return nil, nil, fmt.Errorf("build plan repository: %w", err)
	}
	return repositories.NewPostgresPlanRepository(pg), func() { _ = pg.Close() }, nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func fatal(err error) {
	slog.Error(err.Error())
	os.Exit(1)
}

func openDB(dbPath string) (*sql.DB, error) {
	sqliteDB, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("openDB: open sqlite database %q: %w", dbPath, err)
	}

	if err := sqliteDB.Ping(); err != nil {
		return nil, fmt.Errorf("openDB: verify sqlite connection to %q: %w", dbPath, err)
	}

	return sqliteDB, nil
}

func initAndSeed(sqliteDB *sql.DB, seedPath string) error {
	if err := repositories.InitSchema(sqliteDB); err != nil {
		return fmt.Errorf("init and seed: %w", err)
	}

	if err := repositories.SeedFromJSON(sqliteDB, seedPath); err != nil {
		return fmt.Errorf("init and seed: %w", err)
	}

	return nil
}
