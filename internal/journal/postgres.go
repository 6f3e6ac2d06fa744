package journal

import (
	"context"
	"log/slog"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Postgres persists the transcript to charter.journal_entries so finished
// sessions can be reviewed after the server restarts. Writes are best-effort:
// a failed insert is logged and the in-memory transcript stays authoritative.
type Postgres struct {
	db        *pgxpool.Pool
	log       *slog.Logger
	sessionID string
}

// NewPostgres returns a sink writing entries for one session.
func NewPostgres(db *pgxpool.Pool, logger *slog.Logger, sessionID string) *Postgres {
	if logger == nil {
		logger = slog.Default()
	}
	return &Postgres{db: db, log: logger, sessionID: sessionID}
}

// Append inserts the line with the next sequence number for the session.
func (p *Postgres) Append(line string) {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	_, err := p.db.Exec(ctx, `
		INSERT INTO charter.journal_entries (session_id, seq, line, created_at)
		VALUES ($1, COALESCE((
			SELECT MAX(seq) + 1 FROM charter.journal_entries WHERE session_id = $1
		), 1), $2, now())
	`, p.sessionID, line)
	if err != nil {
		p.log.Error("journal append failed", "session_id", p.sessionID, "err", err)
	}
}

// Undo deletes the highest-sequence entry for the session.
func (p *Postgres) Undo() {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	_, err := p.db.Exec(ctx, `
		DELETE FROM charter.journal_entries
		WHERE session_id = $1
		  AND seq = (SELECT MAX(seq) FROM charter.journal_entries WHERE session_id = $1)
	`, p.sessionID)
	if err != nil {
		p.log.Error("journal undo failed", "session_id", p.sessionID, "err", err)
	}
}
