package recap

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"
)

// Ledger records which (user, week) recaps were already delivered, so rerunning
// the batch after a crash or restart never mails the same recap twice.
type Ledger struct {
	db *sql.DB
}

// OpenLedger opens (or creates) the sqlite ledger at dir/recaps.db.
func OpenLedger(dir string) (*Ledger, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating ledger dir %s: %w", dir, err)
	}

	dbPath := filepath.Join(dir, "recaps.db")
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("opening ledger db: %w", err)
	}

	_, err = db.Exec(`CREATE TABLE IF NOT EXISTS sent_recaps (
		user_id    INTEGER NOT NULL,
		week_start TEXT NOT NULL,
		sent_at    TIMESTAMP DEFAULT CURRENT_TIMESTAMP,
		PRIMARY KEY (user_id, week_start)
	)`)
	if err != nil {
		db.Close()
		return nil, fmt.Errorf("creating ledger table: %w", err)
	}

	return &Ledger{db: db}, nil
}

// WasSent reports whether a recap for the given user and week was already
// delivered.
func (l *Ledger) WasSent(userID int64, weekStart string) (bool, error) {
	var count int
	err := l.db.QueryRow(
		`SELECT COUNT(*) FROM sent_recaps WHERE user_id = ? AND week_start = ?`,
		userID, weekStart,
	).Scan(&count)
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// MarkSent records a delivered recap. Marking the same pair twice is a no-op.
func (l *Ledger) MarkSent(userID int64, weekStart string) error {
	_, err := l.db.Exec(
		`INSERT INTO sent_recaps (user_id, week_start) VALUES (?, ?)
		 ON CONFLICT (user_id, week_start) DO NOTHING`,
		userID, weekStart,
	)
	return err
}

// Close closes the underlying database.
func (l *Ledger) Close() error {
	return l.db.Close()
}
