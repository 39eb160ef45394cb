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

	"classquiz-service/internal/app"
	"classquiz-service/internal/auth"
	"classquiz-service/internal/config"
	"classquiz-service/internal/domain"
	"classquiz-service/internal/infra/memory"
	pgstore "classquiz-service/internal/infra/postgres"
	rediscache "classquiz-service/internal/infra/redis"
	transport "classquiz-service/internal/transport/http"
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

	var redisClient *redis.Client
	if cfg.Redis.Addr != "" {
		redisClient = redis.NewClient(&redis.Options{
			Addr:     cfg.Redis.Addr,
			Password: cfg.Redis.Password,
			DB:       cfg.Redis.DB,
		})
	}

	var pool *pgxpool.Pool
	if cfg.Postgres.URL != "" {
		pool, err = pgxpool.Connect(ctx, cfg.Postgres.URL)
		if err != nil {
			return err
		}
	}

	quizTTL := config.TTLDuration(cfg.Quiz.TTL, 10*time.Minute)

	var (
		quizzes   app.QuizRepository
		directory app.QuizDirectory
		attempts  app.AttemptStore
	)
	if pool != nil {
		loader := pgstore.NewQuizLoader(pool)
		directory = loader
		attempts = pgstore.NewAttemptStore(pool)
		if redisClient != nil {
			quizzes = rediscache.NewQuizRepository(redisClient, loader, quizTTL)
		} else {
			quizzes = memory.NewQuizRepository(loader, quizTTL)
		}
	} else {
		loader := memory.NewStaticQuizLoader(sampleQuizzes())
		quizzes = memory.NewQuizRepository(loader, quizTTL)
		directory = loader
		attempts = memory.NewAttemptStore()
	}

	feed := app.NewLeaderboardFeed()
	service := app.NewQuizService(quizzes, directory, attempts, auth.BcryptVerifier{}, feed)

	identity := transport.HeaderIdentityResolver{}
	apiHandler := transport.NewAPIHandler(service, identity, cfg.Leaderboard.TopN)
	wsHandler := transport.NewWSHandler(service, identity)

	mux := http.NewServeMux()
	mux.HandleFunc("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("ok"))
	})
	apiHandler.Register(mux)
	mux.HandleFunc("/ws/leaderboard", wsHandler.ServeWS)

	server := &http.Server{
		Addr:         ":" + finalPort,
		Handler:      mux,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
	}

	go func() {
		log.Printf("starting quiz service on :%s", finalPort)
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

// sampleQuizzes provides minimal demo data so the server runs without a
// database configured.
func sampleQuizzes() map[string]domain.Quiz {
	return map[string]domain.Quiz{
		"quiz-1": {
			ID:        "quiz-1",
			DisplayID: "QZ-100001",
			Title:     "Arithmetic warmup",
			OwnerID:   "teacher-1",
			JoinCode:  "482913",
			Access:    domain.AccessPolicy{Kind: domain.PolicyJoinCodeRequired, JoinCode: "482913"},
			Questions: []domain.Question{
				{
					Prompt:  "What is 2 + 2?",
					Options: []string{"3", "4", "5"},
					Correct: 1,
				},
			},
		},
	}
}
