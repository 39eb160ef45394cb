package cli

import (
	"context"
	"fmt"
	"log"
	"math/rand"
	"time"

	"github.com/jackc/pgx/v4/pgxpool"
	"github.com/spf13/cobra"

	"classquiz-service/internal/auth"
	"classquiz-service/internal/config"
)

// NewBackfillJoinCodesCmd assigns join codes to quizzes that predate them.
// Older records were repaired lazily while being read; this command does
// the repair once, off the request path, and is safe to re-run.
func NewBackfillJoinCodesCmd(configPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "backfill-join-codes",
		Short: "Assign join codes to quizzes missing one",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(*configPath)
			if err != nil {
				return err
			}
			return backfillJoinCodes(cmd.Context(), cfg)
		},
	}
}

func backfillJoinCodes(ctx context.Context, cfg config.Config) error {
	if cfg.Postgres.URL == "" {
		return fmt.Errorf("postgres url not configured")
	}
	pool, err := pgxpool.Connect(ctx, cfg.Postgres.URL)
	if err != nil {
		return err
	}
	defer pool.Close()

	rows, err := pool.Query(ctx, `SELECT id FROM quizzes WHERE join_code IS NULL OR join_code = ''`)
	if err != nil {
		return fmt.Errorf("find quizzes without join code: %w", err)
	}
	ids := make([]string, 0)
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			rows.Close()
			return err
		}
		ids = append(ids, id)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return err
	}

	rnd := rand.New(rand.NewSource(time.Now().UnixNano()))
	repaired := 0
	for _, id := range ids {
		code, err := uniqueJoinCode(ctx, pool, rnd)
		if err != nil {
			return err
		}
		_, err = pool.Exec(ctx,
			`UPDATE quizzes
			 SET join_code = $1,
			     data = jsonb_set(data, '{joinCode}', to_jsonb($1::text))
			 WHERE id = $2 AND (join_code IS NULL OR join_code = '')`,
			code, id,
		)
		if err != nil {
			return fmt.Errorf("backfill quiz %s: %w", id, err)
		}
		repaired++
	}
	log.Printf("backfilled join codes for %d of %d quizzes", repaired, len(ids))
	return nil
}

func uniqueJoinCode(ctx context.Context, pool *pgxpool.Pool, rnd *rand.Rand) (string, error) {
	for i := 0; i < 100; i++ {
		code := auth.NewJoinCode(rnd)
		var exists bool
		if err := pool.QueryRow(ctx, `SELECT EXISTS(SELECT 1 FROM quizzes WHERE join_code=$1)`, code).Scan(&exists); err != nil {
			return "", err
		}
		if !exists {
			return code, nil
		}
	}
	return "", fmt.Errorf("could not find a free join code")
}
