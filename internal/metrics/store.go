package metrics

import (
	"database/sql"
	"fmt"

	"github.com/charmbracelet/log"
)

// counterStore keeps lifetime counters in the metrics table.
type counterStore struct {
	db *sql.DB
}

// New returns a MetricsStore backed by db.
func New(db *sql.DB) MetricsStore {
	return &counterStore{db: db}
}

// Add moves a counter by delta, creating it at zero first. Undo passes a negative delta.
// Failures are logged; a lost counter update never fails a command.
func (c *counterStore) Add(key string, delta int) {
	if delta == 0 {
		return
	}
	_, err := c.db.Exec(`
		INSERT INTO metrics (key, value, updated_at) VALUES (?, ?, datetime('now'))
		ON CONFLICT(key) DO UPDATE SET value = value + excluded.value, updated_at = excluded.updated_at;
	`, key, delta)
	if err != nil {
		log.Error("Failed to update counter", "error", err, "key", key, "delta", delta)
		return
	}
	log.Debug("Updated counter", "key", key, "delta", delta)
}

// GetAll returns every counter keyed by name.
func (c *counterStore) GetAll() (map[string]int, error) {
	rows, err := c.db.Query("SELECT key, value FROM metrics ORDER BY key")
	if err != nil {
		return nil, fmt.Errorf("failed to query counters: %w", err)
	}
	defer rows.Close()

	counters := make(map[string]int)
	for rows.Next() {
		var (
			key   string
			value int
		)
		if err := rows.Scan(&key, &value); err != nil {
			return nil, fmt.Errorf("failed to scan counter: %w", err)
		}
		counters[key] = value
	}
	return counters, rows.Err()
}
