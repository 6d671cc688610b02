package roster

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"sync"

	"github.com/charmbracelet/log"
)

// store persists teams in the teams table.
type store struct {
	db *sql.DB
	mu sync.RWMutex
}

// New creates a SQL-backed roster Store.
func New(db *sql.DB) Store {
	return &store{db: db}
}

func (s *store) UpsertTeam(ctx context.Context, team Team) error {
	if err := team.Validate(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	players := team.Players
	if players == nil {
		players = []Player{}
	}
	playersJSON, err := json.Marshal(players)
	if err != nil {
		return fmt.Errorf("failed to marshal players: %w", err)
	}

	_, err = s.db.ExecContext(ctx, `
		INSERT INTO teams (id, name, color, logo, players_json)
		VALUES (?, ?, ?, ?, ?)
		ON CONFLICT(id) DO UPDATE SET
			name = excluded.name,
			color = excluded.color,
			logo = excluded.logo,
			players_json = excluded.players_json;
	`, team.ID, team.Name, team.Color, team.Logo, string(playersJSON))
	if err != nil {
		return fmt.Errorf("failed to upsert team %s: %w", team.ID, err)
	}
	log.Debug("Upserted team", "team_id", team.ID, "players", len(team.Players))
	return nil
}

func (s *store) Team(ctx context.Context, teamID string) (Team, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	row := s.db.QueryRowContext(ctx, `SELECT id, name, color, logo, players_json FROM teams WHERE id = ?`, teamID)
	team, err := scanTeam(row)
	if errors.Is(err, sql.ErrNoRows) {
		return Team{}, fmt.Errorf("%w: %s", ErrTeamNotFound, teamID)
	}
	if err != nil {
		return Team{}, fmt.Errorf("failed to get team %s: %w", teamID, err)
	}
	return team, nil
}

func (s *store) Teams(ctx context.Context) ([]Team, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.QueryContext(ctx, `SELECT id, name, color, logo, players_json FROM teams ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("failed to list teams: %w", err)
	}
	defer rows.Close()

	var teams []Team
	for rows.Next() {
		team, err := scanTeam(rows)
		if err != nil {
			log.Error("Failed to scan team row", "error", err)
			continue
		}
		teams = append(teams, team)
	}
	return teams, rows.Err()
}

func (s *store) DeleteTeam(ctx context.Context, teamID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, err := s.db.ExecContext(ctx, `DELETE FROM teams WHERE id = ?`, teamID); err != nil {
		return fmt.Errorf("failed to delete team %s: %w", teamID, err)
	}
	return nil
}

func scanTeam(scanner interface{ Scan(...any) error }) (Team, error) {
	var team Team
	var playersJSON string
	if err := scanner.Scan(&team.ID, &team.Name, &team.Color, &team.Logo, &playersJSON); err != nil {
		return Team{}, err
	}
	if err := json.Unmarshal([]byte(playersJSON), &team.Players); err != nil {
		return Team{}, fmt.Errorf("failed to unmarshal players for team %s: %w", team.ID, err)
	}
	return team, nil
}
