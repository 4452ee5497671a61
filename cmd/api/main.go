package main

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/jmoiron/sqlx"
	"github.com/redis/go-redis/v9"

	_ "github.com/jackc/pgx/v5/stdlib"

	aiClient "github.com/carbontrackr/engine/internal/adapters/ai"
	"github.com/carbontrackr/engine/internal/adapters/blobstore"
	adapterHTTP "github.com/carbontrackr/engine/internal/adapters/handler/http"
	"github.com/carbontrackr/engine/internal/core/domain"
	"github.com/carbontrackr/engine/internal/core/services"
	"github.com/carbontrackr/engine/internal/core/workers"
)

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// openStore picks the configured storage backend. A backend that cannot be
// reached degrades to the in-memory store with a warning: tracking must keep
// working for this process even when persistence is gone.
func openStore() (domain.BlobStore, *redis.Client) {
	backend := getEnv("STORAGE_BACKEND", "memory")

	switch backend {
	case "postgres":
		dsn := fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=disable",
			getEnv("DB_USER", "carbontrackr"),
			getEnv("DB_PASSWORD", ""),
			getEnv("DB_HOST", "localhost"),
			getEnv("DB_PORT", "5432"),
			getEnv("DB_NAME", "carbontrackr"),
		)

		db, err := sqlx.Connect("pgx", dsn)
		if err != nil {
			log.Printf("Postgres unavailable, falling back to in-memory storage: %v", err)
			return blobstore.NewInMemoryBlobStore(), nil
		}

		db.SetMaxOpenConns(25)
		db.SetMaxIdleConns(25)
		db.SetConnMaxLifetime(5 * time.Minute)

		store := blobstore.NewPostgresBlobStore(db)
		if err := store.Migrate(context.Background()); err != nil {
			log.Printf("Postgres migration failed, falling back to in-memory storage: %v", err)
			return blobstore.NewInMemoryBlobStore(), nil
		}

		log.Println("Storage backend: postgres")
		return store, nil

	case "redis":
		rdb, err := blobstore.NewRedisClient(
			getEnv("REDIS_HOST", "localhost"),
			getEnv("REDIS_PORT", "6379"),
			os.Getenv("REDIS_PASSWORD"),
			0,
		)
		if err != nil {
			log.Printf("Redis unavailable, falling back to in-memory storage: %v", err)
			return blobstore.NewInMemoryBlobStore(), nil
		}

		log.Println("Storage backend: redis")
		return blobstore.NewRedisBlobStore(rdb), rdb

	default:
		log.Println("Storage backend: in-memory (data is lost on restart)")
		return blobstore.NewInMemoryBlobStore(), nil
	}
}

func main() {
	startTime := time.Now()

	_ = godotenv.Load()

	store, rdb := openStore()

	generator := aiClient.NewClient(os.Getenv("OPENAI_BASE_URL"), os.Getenv("OPENAI_MODEL"))

	worker := workers.NewEnrichmentWorker(store, generator)

	recordSvc := services.NewRecordService(store)
	statsSvc := services.NewStatsService(store)
	trendSvc := services.NewTrendService(recordSvc)
	advisorSvc := services.NewAdvisorService(store, generator)
	tipSvc := services.NewTipService(store, worker)
	calculationSvc := services.NewCalculationService(recordSvc, statsSvc, advisorSvc, worker)

	workerCtx, stopWorker := context.WithCancel(context.Background())
	defer stopWorker()
	worker.Start(workerCtx)

	router := adapterHTTP.NewRouter(adapterHTTP.RouterDependencies{
		CalculationHandler: adapterHTTP.NewCalculationHandler(calculationSvc),
		StatsHandler:       adapterHTTP.NewStatsHandler(statsSvc),
		TrendHandler:       adapterHTTP.NewTrendHandler(trendSvc),
		AdvisorHandler:     adapterHTTP.NewAdvisorHandler(tipSvc, advisorSvc),
		Store:              store,
		Redis:              rdb,
		StartTime:          startTime,
	})

	serverPort := getEnv("PORT", "8080")

	srv := &http.Server{
		Addr:         ":" + serverPort,
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  120 * time.Second,
	}

	go func() {
		log.Printf("CarbonTrackr Engine running on http://localhost:%s", serverPort)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Critical server error: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Stop signal received. Shutting down...")

	stopWorker()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal("Forced shutdown error:", err)
	}

	log.Println("Server stopped gracefully.")
}
