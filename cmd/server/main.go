package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"fitchallenge/internal/api"
	"fitchallenge/internal/config"
	"fitchallenge/internal/identity"
	"fitchallenge/internal/imagesearch"
	"fitchallenge/internal/llm"
	"fitchallenge/internal/logger"
	"fitchallenge/internal/metrics"
	"fitchallenge/internal/repository/mongo"
	"fitchallenge/internal/service"
	"fitchallenge/internal/storage"

	"github.com/gin-gonic/gin"
	mongodriver "go.mongodb.org/mongo-driver/mongo"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.uber.org/zap"
)

// @title FitChallenge API
// @version 1.0
// @description Profiles, exercise catalog, generated routines and shared challenges.
// @host localhost:3000
// @BasePath /
func main() {
	// --- Configuration ---
	cfg, err := config.LoadConfig(".")
	if err != nil {
		log.Fatalf("FATAL: Could not load config: %v", err)
	}

	logMiddleware, err := logger.Connect(logger.LoggerConnectProps{
		Production: cfg.Log.Production,
		Level:      cfg.Log.Level,
	})
	if err != nil {
		log.Fatalf("FATAL: Could not build logger: %v", err)
	}
	defer func() { _ = logMiddleware.Sync() }()

	ctx := context.Background()
	zlog := logMiddleware.Logger(ctx)
	zlog.Info("Starting FitChallenge server...")

	metrics.Register()

	// --- Database Connection ---
	dbClient, err := mongo.ConnectDB(ctx, cfg.Database.URI)
	if err != nil {
		zlog.Fatal("Could not connect to MongoDB", zap.Error(err))
	}
	defer func() {
		zlog.Info("Disconnecting MongoDB...")
		if err := mongo.DisconnectDB(context.Background(), dbClient); err != nil {
			zlog.Error("Failed to disconnect MongoDB", zap.Error(err))
		}
	}()
	appDB := dbClient.Database(cfg.Database.Name)
	zlog.Info("Database connection established", zap.String("database", cfg.Database.Name))

	// --- Ensure Indexes ---
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 1*time.Minute)
		defer cancel()
		ensure := map[string]func(context.Context, *mongodriver.Collection) error{
			mongo.ProfileCollectionName:   mongo.EnsureProfileIndexes,
			mongo.ExerciseCollectionName:  mongo.EnsureExerciseIndexes,
			mongo.RoutineCollectionName:   mongo.EnsureRoutineIndexes,
			mongo.ChallengeCollectionName: mongo.EnsureChallengeIndexes,
		}
		for name, fn := range ensure {
			if err := fn(ctx, appDB.Collection(name)); err != nil {
				zlog.Warn("Index creation failed", zap.String("collection", name), zap.Error(err))
			}
		}
		zlog.Info("Index creation process completed")
	}()

	// --- External Clients ---
	gemini, err := llm.Connect(ctx, llm.GeminiConnectProps{
		APIKey:    cfg.Gemini.APIKey,
		ModelName: cfg.Gemini.Model,
		Logger:    logMiddleware,
	})
	if err != nil {
		zlog.Fatal("Could not create Gemini client", zap.Error(err))
	}
	defer func() { _ = gemini.Close() }()

	firebase, err := identity.Connect(ctx, identity.FirebaseConnectProps{
		APIKey: cfg.Firebase.APIKey,
		Logger: logMiddleware,
	})
	if err != nil {
		zlog.Fatal("Could not create identity client", zap.Error(err))
	}

	var images imagesearch.Searcher
	if cfg.Pixabay.APIKey != "" {
		images = imagesearch.NewClient(imagesearch.ClientProps{
			APIKey:  cfg.Pixabay.APIKey,
			BaseURL: cfg.Pixabay.BaseURL,
			Timeout: cfg.Pixabay.Timeout,
			Logger:  logMiddleware,
		})
	} else {
		zlog.Warn("pixabay.api_key not set; challenges will use the default cover")
	}

	var media storage.MediaStorage
	if cfg.S3.Enabled() {
		media, err = storage.NewS3Storage(ctx, cfg.S3, logMiddleware)
		if err != nil {
			zlog.Fatal("Failed to initialize S3 storage", zap.Error(err))
		}
	} else {
		zlog.Info("s3.bucket_name not set; exercise media uploads are disabled")
	}

	// --- Initialize Repositories ---
	profileRepo := mongo.NewMongoProfileRepository(appDB)
	exerciseRepo := mongo.NewMongoExerciseRepository(appDB)
	routineRepo := mongo.NewMongoRoutineRepository(appDB)
	challengeRepo := mongo.NewMongoChallengeRepository(appDB)

	// --- Initialize Services ---
	services := api.Services{
		Auth:     service.NewAuthService(firebase, logMiddleware),
		Profile:  service.NewProfileService(profileRepo),
		Exercise: service.NewExerciseService(exerciseRepo, media),
		Routine: service.NewRoutineService(service.RoutineServiceProps{
			RoutineRepo:  routineRepo,
			ExerciseRepo: exerciseRepo,
			Generator:    gemini,
			Timeout:      cfg.Gemini.Timeout,
			Logger:       logMiddleware,
		}),
		Challenge: service.NewChallengeService(service.ChallengeServiceProps{
			ChallengeRepo: challengeRepo,
			ExerciseRepo:  exerciseRepo,
			Generator:     gemini,
			Images:        images,
			Timeout:       cfg.Gemini.Timeout,
			Logger:        logMiddleware,
		}),
	}

	// --- Initialize Gin Engine ---
	if cfg.Server.ReleaseMode {
		gin.SetMode(gin.ReleaseMode)
	}
	router := gin.New()
	router.Use(gin.Recovery())
	api.SetupRoutes(router, logMiddleware, services)

	// --- Start HTTP Server ---
	server := &http.Server{
		Addr:         cfg.Server.Address,
		Handler:      otelhttp.NewHandler(router, "fitchallenge"),
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  120 * time.Second,
	}

	go func() {
		zlog.Info("Server starting", zap.String("address", cfg.Server.Address))
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			zlog.Fatal("ListenAndServe error", zap.Error(err))
		}
	}()

	// --- Graceful Shutdown ---
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	zlog.Info("Shutting down server...")

	ctxShutdown, cancelShutdown := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancelShutdown()

	if err := server.Shutdown(ctxShutdown); err != nil {
		zlog.Error("Server forced to shutdown", zap.Error(err))
	}

	zlog.Info("Server exiting.")
}
