package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	_ "modernc.org/sqlite"

	"github.com/krishngohel/AIDebateTool/pkg/session"
)

const schema = `
CREATE TABLE IF NOT EXISTS debate_turns (
	id           TEXT PRIMARY KEY,
	session_key  TEXT NOT NULL,
	round        INTEGER NOT NULL,
	student_text TEXT NOT NULL,
	ai_reply     TEXT NOT NULL,
	word_count   INTEGER NOT NULL,
	readability  REAL NOT NULL,
	meter        INTEGER NOT NULL,
	leader       TEXT NOT NULL,
	latency_ms   INTEGER NOT NULL,
	status       TEXT NOT NULL,
	category     TEXT NOT NULL DEFAULT '',
	created_at   TIMESTAMP NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_debate_turns_session ON debate_turns(session_key);

CREATE TABLE IF NOT EXISTS debate_summaries (
	session_key     TEXT PRIMARY KEY,
	rounds_played   INTEGER NOT NULL,
	winner          TEXT NOT NULL,
	violations      INTEGER NOT NULL,
	avg_readability REAL NOT NULL,
	ended_at        TIMESTAMP NOT NULL
);
`

// Store persists session logs to a local SQLite file. Single-instance
// deployment; the cgo-free driver keeps the build portable.
type Store struct {
	db *sql.DB
}

var _ session.Store = (*Store)(nil)

func New(path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open sqlite db: %w", err)
	}
	// SQLite writes are serialized anyway; a single connection avoids
	// SQLITE_BUSY under concurrent recorder writes.
	db.SetMaxOpenConns(1)

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("init schema: %w", err)
	}
	return &Store{db: db}, nil
}

func (s *Store) SaveTurn(ctx context.Context, rec *session.TurnRecord) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO debate_turns
			(id, session_key, round, student_text, ai_reply, word_count,
			 readability, meter, leader, latency_ms, status, category, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		rec.ID, rec.SessionKey, rec.Round, rec.StudentText, rec.AIReply,
		rec.WordCount, rec.Readability, rec.Meter, rec.Leader,
		rec.LatencyMs, rec.Status, rec.Category, rec.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert turn record: %w", err)
	}
	return nil
}

func (s *Store) SaveSummary(ctx context.Context, sum *session.Summary) error {
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO debate_summaries
			(session_key, rounds_played, winner, violations, avg_readability, ended_at)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT(session_key) DO UPDATE SET
			rounds_played = excluded.rounds_played,
			winner = excluded.winner,
			violations = excluded.violations,
			avg_readability = excluded.avg_readability,
			ended_at = excluded.ended_at`,
		sum.SessionKey, sum.RoundsPlayed, sum.Winner, sum.Violations,
		sum.AvgReadability, sum.EndedAt,
	)
	if err != nil {
		return fmt.Errorf("insert session summary: %w", err)
	}
	return nil
}

func (s *Store) Close() error {
	return s.db.Close()
}
