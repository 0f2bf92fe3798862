package cli

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jackc/pgx/v4/pgxpool"
	"github.com/redis/go-redis/v9"
	"github.com/spf13/cobra"

	"quiz-event-service/internal/app"
	"quiz-event-service/internal/config"
	"quiz-event-service/internal/grading"
	filestore "quiz-event-service/internal/infra/file"
	pgstore "quiz-event-service/internal/infra/postgres"
	redisstore "quiz-event-service/internal/infra/redis"
	"quiz-event-service/internal/question"
	transport "quiz-event-service/internal/transport/http"
)

const (
	defaultSessionWindow = 2 * time.Minute
	defaultProgressTTL   = 24 * time.Hour
)

// NewStartCmd builds the CLI subcommand to start the server.
func NewStartCmd(configPath, port *string) *cobra.Command {
	return &cobra.Command{
		Use:   "start",
		Short: "Start the quiz server",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runServer(cmd.Context(), *configPath, *port)
		},
	}
}

func runServer(ctx context.Context, configPath, portFlag string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return err
	}

	if cfg.Postgres.URL != "" {
		if err := runMigrationsWithConfig(ctx, cfg); err != nil {
			return err
		}
	}

	finalPort := portFlag
	if finalPort == "" {
		finalPort = cfg.Server.Port
	}
	if finalPort == "" {
		finalPort = "8080"
	}

	questions, err := question.LoadFile(cfg.QuestionsPath())
	if err != nil {
		return err
	}
	log.Printf("loaded %d questions (%d malformed blocks skipped)", questions.Len(), questions.SkippedBlocks())

	sessionWindow := config.Duration(cfg.Quiz.SessionWindow, defaultSessionWindow)
	progressTTL := config.Duration(cfg.Quiz.ProgressTTL, defaultProgressTTL)

	var redisClient *redis.Client
	if cfg.Redis.Addr != "" {
		redisClient = redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
	}

	// The pre-distributed participant list is always a plain file the
	// organizer can edit; only the mutable state moves to redis/postgres.
	validIDs := filestore.NewIDSet(cfg.DataPath(cfg.Data.ValidIDsFile, "valid_ids.txt"))

	var usedIDs app.IDSet
	var sessions app.SessionStore
	var progress app.ProgressStore
	if redisClient != nil {
		usedIDs = redisstore.NewIDSet(redisClient, "quiz:used_ids")
		sessions = redisstore.NewSessionStore(redisClient, sessionWindow)
		progress = redisstore.NewProgressStore(redisClient, progressTTL)
	} else {
		usedIDs = filestore.NewIDSet(cfg.DataPath(cfg.Data.UsedIDsFile, "used_ids.txt"))
		sessions = filestore.NewSessionStore(cfg.DataPath(cfg.Data.SessionsFile, "active_sessions.txt"), sessionWindow)
		progress = filestore.NewProgressStore(cfg.DataPath(cfg.Data.ProgressFile, "progress.json"), progressTTL)
	}

	var results app.ResultsStore
	var pool *pgxpool.Pool
	if cfg.Postgres.URL != "" {
		pool, err = pgxpool.Connect(ctx, cfg.Postgres.URL)
		if err != nil {
			return err
		}
		defer pool.Close()
		results = pgstore.NewResultsStore(pool)
	} else {
		results = filestore.NewResultsStore(
			cfg.DataPath(cfg.Data.ResultsCSVFile, "results.csv"),
			cfg.DataPath(cfg.Data.ResultsJSONFile, "results.json"),
		)
	}

	admission := app.NewAdmissionController(validIDs, usedIDs, sessions)
	matcher := grading.NewMatcher(cfg.Quiz.AnswerDelimiter)
	monitor := app.NewMonitor()
	service := app.NewQuizService(questions, matcher, admission, results, progress, monitor)

	handler := transport.NewRouter(service, monitor, cfg.Server.CORSOrigins, cfg.Server.StaticDir)

	server := &http.Server{
		Addr:         ":" + finalPort,
		Handler:      handler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
	}

	go func() {
		log.Printf("starting quiz event service on :%s", finalPort)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Printf("failed to start server: %v", err)
		}
	}()

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

	select {
	case <-stop:
		log.Println("shutting down server...")
	case <-ctx.Done():
		log.Println("context canceled, shutting down server...")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return server.Shutdown(shutdownCtx)
}
