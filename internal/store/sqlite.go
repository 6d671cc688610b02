package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/charmbracelet/log"
	"github.com/mauv0809/crease/internal/scoring"
)

type sqlStore struct {
	db     *sql.DB
	broker *Broker
	now    func() time.Time
}

// New creates a Gateway backed by the matches table. Committed snapshots are published on broker.
func New(db *sql.DB, broker *Broker) Gateway {
	if broker == nil {
		broker = NewBroker()
	}
	return &sqlStore{db: db, broker: broker, now: time.Now}
}

func (s *sqlStore) Create(ctx context.Context, m *scoring.State) error {
	blob, err := encodeState(m)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrPersistence, err)
	}
	ts := s.now().Unix()
	res, err := s.db.ExecContext(ctx, `
		INSERT INTO matches (id, tournament_id, status, version, state, created_at, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(id) DO NOTHING;
	`, m.ID, m.TournamentID, string(m.Status), m.Version, blob, ts, ts)
	if err != nil {
		return fmt.Errorf("%w: failed to insert match %s: %w", ErrPersistence, m.ID, err)
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return fmt.Errorf("%w: %s", ErrExists, m.ID)
	}
	log.Info("Created match", "match_id", m.ID, "tournament_id", m.TournamentID)
	s.broker.Publish(Update{State: m})
	return nil
}

func (s *sqlStore) Put(ctx context.Context, m *scoring.State, events []scoring.Event) error {
	blob, err := encodeState(m)
	if err != nil {
		return fmt.Errorf("%w: %w", ErrPersistence, err)
	}
	res, err := s.db.ExecContext(ctx, `
		UPDATE matches SET status = ?, version = ?, state = ?, updated_at = ?
		WHERE id = ? AND version = ?;
	`, string(m.Status), m.Version, blob, s.now().Unix(), m.ID, m.Version-1)
	if err != nil {
		return fmt.Errorf("%w: failed to update match %s: %w", ErrPersistence, m.ID, err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: %w", ErrPersistence, err)
	}
	if n == 0 {
		if _, err := s.Get(ctx, m.ID); err != nil {
			return err
		}
		log.Warn("Rejected stale snapshot", "match_id", m.ID, "version", m.Version)
		return fmt.Errorf("%w: %s at version %d", ErrVersionConflict, m.ID, m.Version)
	}
	log.Debug("Committed match", "match_id", m.ID, "version", m.Version, "events", len(events))
	s.broker.Publish(Update{State: m, Events: events})
	return nil
}

func (s *sqlStore) Get(ctx context.Context, matchID string) (*scoring.State, error) {
	var blob []byte
	err := s.db.QueryRowContext(ctx, "SELECT state FROM matches WHERE id = ?", matchID).Scan(&blob)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, matchID)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: failed to read match %s: %w", ErrPersistence, matchID, err)
	}
	m, err := decodeState(blob)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrPersistence, err)
	}
	return m, nil
}

func (s *sqlStore) List(ctx context.Context, tournamentID string) ([]*scoring.State, error) {
	query := "SELECT id, state FROM matches"
	var args []any
	if tournamentID != "" {
		query += " WHERE tournament_id = ?"
		args = append(args, tournamentID)
	}
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to list matches: %w", ErrPersistence, err)
	}
	defer rows.Close()

	var matches []*scoring.State
	for rows.Next() {
		var id string
		var blob []byte
		if err := rows.Scan(&id, &blob); err != nil {
			return nil, fmt.Errorf("%w: failed to scan match: %w", ErrPersistence, err)
		}
		m, err := decodeState(blob)
		if err != nil {
			log.Error("Skipping unreadable match", "match_id", id, "error", err)
			continue
		}
		matches = append(matches, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrPersistence, err)
	}
	slices.SortStableFunc(matches, func(a, b *scoring.State) int {
		if c := a.ScheduledAt.Compare(b.ScheduledAt); c != 0 {
			return c
		}
		return strings.Compare(a.ID, b.ID)
	})
	return matches, nil
}

func (s *sqlStore) Subscribe(ctx context.Context, matchID string) (<-chan Update, func()) {
	return s.broker.Subscribe(ctx, matchID)
}
