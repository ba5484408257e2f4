package out

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	catalog "wellquest/internal/modules/catalog/domain"
	"wellquest/internal/modules/progress/domain"
	progressout "wellquest/internal/modules/progress/port/out"

	_ "modernc.org/sqlite"
)

type SQLiteHistoryProjector struct {
	db *sql.DB
}

func NewSQLiteHistoryProjector(dbPath string) (progressout.HistoryProjector, error) {
	if err := os.MkdirAll(filepath.Dir(dbPath), 0o755); err != nil {
		return nil, fmt.Errorf("create db dir: %w", err)
	}
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}
	projector := &SQLiteHistoryProjector{db: db}
	if err := projector.ensureSchema(context.Background()); err != nil {
		return nil, err
	}
	return projector, nil
}

func (s *SQLiteHistoryProjector) ensureSchema(ctx context.Context) error {
	const ddl = `
CREATE TABLE IF NOT EXISTS rounds (
  id TEXT PRIMARY KEY,
  game_id TEXT NOT NULL,
  tier INTEGER NOT NULL,
  points INTEGER NOT NULL,
  outcome TEXT NOT NULL,
  reason TEXT,
  played_at TEXT NOT NULL
);
`
	if _, err := s.db.ExecContext(ctx, ddl); err != nil {
		return fmt.Errorf("create rounds table: %w", err)
	}
	return nil
}

func (s *SQLiteHistoryProjector) Record(ctx context.Context, round domain.Round) error {
	const stmt = `
INSERT INTO rounds (id, game_id, tier, points, outcome, reason, played_at)
VALUES (?, ?, ?, ?, ?, ?, ?);
`
	_, err := s.db.ExecContext(ctx, stmt,
		round.ID,
		string(round.GameID),
		round.Tier,
		round.Points,
		round.Outcome,
		round.Reason,
		round.PlayedAt.Format("2006-01-02T15:04:05Z07:00"),
	)
	if err != nil {
		return fmt.Errorf("insert round: %w", err)
	}
	return nil
}

func (s *SQLiteHistoryProjector) Summary(ctx context.Context) ([]domain.GameSummary, error) {
	const query = `
SELECT game_id,
       COUNT(*),
       SUM(CASE WHEN outcome = 'completed' THEN 1 ELSE 0 END),
       MAX(points),
       SUM(points)
FROM rounds
GROUP BY game_id
ORDER BY game_id;
`
	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("query history: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var summaries []domain.GameSummary
	for rows.Next() {
		var gameID string
		var summary domain.GameSummary
		if err := rows.Scan(&gameID, &summary.Rounds, &summary.Completions, &summary.BestPoints, &summary.TotalPoints); err != nil {
			return nil, fmt.Errorf("scan history row: %w", err)
		}
		summary.GameID = catalog.GameID(gameID)
		summaries = append(summaries, summary)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate history: %w", err)
	}
	return summaries, nil
}

func (s *SQLiteHistoryProjector) Reset(ctx context.Context) error {
	if _, err := s.db.ExecContext(ctx, `DELETE FROM rounds`); err != nil {
		return fmt.Errorf("reset history: %w", err)
	}
	return nil
}
