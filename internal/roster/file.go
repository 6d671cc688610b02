package roster

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/charmbracelet/log"
	"gopkg.in/yaml.v3"
)

// File is the on-disk roster layout.
type File struct {
	Teams []Team `json:"teams" yaml:"teams"`
}

// Parse decodes a roster document. JSON is detected by extension; anything else is read as YAML,
// which also accepts plain JSON.
func Parse(name string, data []byte) ([]Team, error) {
	var f File
	switch strings.ToLower(filepath.Ext(name)) {
	case ".json":
		if err := json.Unmarshal(data, &f); err != nil {
			return nil, fmt.Errorf("failed to parse roster %s: %w", name, err)
		}
	default:
		if err := yaml.Unmarshal(data, &f); err != nil {
			return nil, fmt.Errorf("failed to parse roster %s: %w", name, err)
		}
	}
	for _, t := range f.Teams {
		if err := t.Validate(); err != nil {
			return nil, fmt.Errorf("invalid roster %s: %w", name, err)
		}
	}
	return f.Teams, nil
}

// LoadFile reads and parses a roster file from disk.
func LoadFile(path string) ([]Team, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read roster file: %w", err)
	}
	teams, err := Parse(path, data)
	if err != nil {
		return nil, err
	}
	log.Info("Loaded roster file", "path", path, "teams", len(teams))
	return teams, nil
}

// Static is a read-only, in-memory Provider.
type Static struct {
	mu    sync.RWMutex
	order []string
	teams map[string]Team
}

// NewStatic builds a provider over teams. Later duplicates replace earlier ones.
func NewStatic(teams []Team) *Static {
	s := &Static{teams: make(map[string]Team, len(teams))}
	for _, t := range teams {
		if _, ok := s.teams[t.ID]; !ok {
			s.order = append(s.order, t.ID)
		}
		s.teams[t.ID] = t
	}
	return s
}

func (s *Static) Team(_ context.Context, teamID string) (Team, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	t, ok := s.teams[teamID]
	if !ok {
		return Team{}, fmt.Errorf("%w: %s", ErrTeamNotFound, teamID)
	}
	return t, nil
}

func (s *Static) Teams(_ context.Context) ([]Team, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]Team, 0, len(s.order))
	for _, id := range s.order {
		out = append(out, s.teams[id])
	}
	return out, nil
}

// Import upserts every team into dst.
func Import(ctx context.Context, dst Store, teams []Team) error {
	for _, t := range teams {
		if err := dst.UpsertTeam(ctx, t); err != nil {
			return fmt.Errorf("failed to import team %s: %w", t.ID, err)
		}
	}
	return nil
}
