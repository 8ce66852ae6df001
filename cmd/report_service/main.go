package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"EduLens/internal/config"
	miniodb "EduLens/internal/database/minio"
	mongodb "EduLens/internal/database/mongo"
	redisdb "EduLens/internal/database/redis"
	"EduLens/internal/embedding"
	"EduLens/internal/llm"
	"EduLens/internal/report_service/api"
	"EduLens/internal/report_service/rag/corpora"
	"EduLens/internal/report_service/rag/loaders"
	"EduLens/internal/report_service/rag/locks"
	"EduLens/internal/report_service/rag/pipeline"
	"EduLens/internal/report_service/rag/retriever"
	"EduLens/internal/report_service/rag/splitters"
	"EduLens/internal/report_service/rag/storages/embedstore"
	"EduLens/internal/report_service/service"
	"EduLens/pkg/logger"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
)

const defaultConfigPath = "config/config.yaml"

func main() {
	// .env is optional; real deployments set the environment directly.
	_ = godotenv.Load()

	// 1. Load Configuration
	cfgPath := os.Getenv("CONFIG_PATH")
	if cfgPath == "" {
		cfgPath = defaultConfigPath
	}
	cfg, err := config.LoadConfig(cfgPath)
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// 2. Initialize Logger
	level, err := logrus.ParseLevel(cfg.Logger.Level)
	if err != nil {
		level = logrus.InfoLevel
	}
	logger.Init(level)
	appLogger := logger.New(cfg.App.Name, "", "")
	appLogger.Info("Starting report service...")

	ctx := context.Background()

	// 3. Initialize Dependencies
	minioClient, err := miniodb.NewClient(ctx, &cfg.Databases.MinIO)
	if err != nil {
		log.Fatalf("Failed to connect to MinIO: %v", err)
	}

	mongoClient, err := mongodb.NewClient(ctx, &cfg.Databases.MongoDB)
	if err != nil {
		log.Fatalf("Failed to connect to MongoDB: %v", err)
	}
	defer mongodb.Close(context.Background(), mongoClient)

	var locker locks.StudentLocker
	if cfg.Databases.Redis.Address != "" {
		redisClient, err := redisdb.NewClient(ctx, &cfg.Databases.Redis)
		if err != nil {
			log.Fatalf("Failed to connect to redis: %v", err)
		}
		locker = locks.NewRedisLocker(redisClient)
	} else {
		appLogger.Warn("Redis not configured; falling back to in-process ingest locks")
		locker = locks.NewKeyedMutex()
	}

	embedder, err := embedding.NewGoogleModel(ctx, cfg.Embedding.Gemini.APIKey, cfg.Embedding.Gemini.Model)
	if err != nil {
		log.Fatalf("Failed to create Gemini embedding client: %v", err)
	}

	generator, err := llm.NewGemini(ctx, cfg.LLM.Gemini.Model, cfg.LLM.Gemini.APIKey)
	if err != nil {
		log.Fatalf("Failed to create Gemini LLM client: %v", err)
	}

	// 4. Assemble the Pipelines
	store := embedstore.NewMongoStore(mongoClient, cfg.Databases.MongoDB.Database, cfg.Databases.MongoDB.Collection)
	loader := loaders.NewMinioLoader(minioClient, cfg.Databases.MinIO.Bucket, appLogger)
	splitter := splitters.NewWordSplitter(cfg.Retrieval.ChunkSize)

	ingestion := pipeline.NewIngestionPipeline(loader, splitter, embedder, store, locker, appLogger)
	report := pipeline.NewReportPipeline(ingestion, store, retriever.NewRetriever(embedder), generator, cfg.Retrieval.TopK, appLogger)

	assistant, err := corpora.NewClient(ctx, cfg.LLM.Gemini.APIKey, cfg.Retrieval.Corpus, appLogger)
	if err != nil {
		log.Fatalf("Failed to create managed corpus client: %v", err)
	}

	svc := service.New(report, assistant, appLogger)

	// 5. Start the HTTP Server
	health := func(ctx context.Context) error {
		if err := miniodb.HealthCheck(ctx, minioClient); err != nil {
			return err
		}
		return mongodb.HealthCheck(ctx, mongoClient)
	}

	if cfg.App.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	router := api.NewRouter(api.NewHandler(svc, health, appLogger), appLogger)

	addr := cfg.Server.Address
	if addr == "" {
		addr = ":8080"
	}
	srv := &http.Server{Addr: addr, Handler: router}

	go func() {
		appLogger.Info("HTTP server listening at " + addr)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Failed to serve HTTP: %v", err)
		}
	}()

	// 6. Graceful Shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	appLogger.Info("Shutting down server...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		appLogger.Error("Server shutdown failed: " + err.Error())
	}
	appLogger.Info("Server gracefully stopped")
}
