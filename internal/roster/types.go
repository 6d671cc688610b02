package roster

import (
	"encoding/json"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

// Player is a squad member. Only Name is required; everything else is display metadata.
type Player struct {
	Name           string `json:"name" yaml:"name"`
	Role           string `json:"role,omitempty" yaml:"role,omitempty"`
	IsCaptain      bool   `json:"isCaptain,omitempty" yaml:"isCaptain,omitempty"`
	IsWicketKeeper bool   `json:"isWk,omitempty" yaml:"isWk,omitempty"`
	Photo          string `json:"photo,omitempty" yaml:"photo,omitempty"`
}

// playerFields avoids recursing into the custom unmarshalers.
type playerFields Player

// UnmarshalJSON accepts either a bare name ("Rohit") or a full player object.
func (p *Player) UnmarshalJSON(data []byte) error {
	trimmed := strings.TrimSpace(string(data))
	if strings.HasPrefix(trimmed, `"`) {
		var name string
		if err := json.Unmarshal(data, &name); err != nil {
			return err
		}
		*p = Player{Name: strings.TrimSpace(name)}
		return nil
	}
	var fields playerFields
	if err := json.Unmarshal(data, &fields); err != nil {
		return fmt.Errorf("failed to decode player: %w", err)
	}
	fields.Name = strings.TrimSpace(fields.Name)
	*p = Player(fields)
	return nil
}

// UnmarshalYAML accepts either a scalar name or a mapping.
func (p *Player) UnmarshalYAML(value *yaml.Node) error {
	if value.Kind == yaml.ScalarNode {
		*p = Player{Name: strings.TrimSpace(value.Value)}
		return nil
	}
	var fields playerFields
	if err := value.Decode(&fields); err != nil {
		return fmt.Errorf("failed to decode player at line %d: %w", value.Line, err)
	}
	fields.Name = strings.TrimSpace(fields.Name)
	*p = Player(fields)
	return nil
}

// Team is a side with its squad in batting-order preference.
type Team struct {
	ID      string   `json:"id" yaml:"id"`
	Name    string   `json:"name" yaml:"name"`
	Players []Player `json:"players" yaml:"players"`
	Color   string   `json:"color,omitempty" yaml:"color,omitempty"`
	Logo    string   `json:"logo,omitempty" yaml:"logo,omitempty"`
}

// Has reports whether name is on the squad. An empty squad is unchecked and accepts anyone.
func (t Team) Has(name string) bool {
	if len(t.Players) == 0 {
		return true
	}
	for _, p := range t.Players {
		if p.Name == name {
			return true
		}
	}
	return false
}

// Names returns the squad names in roster order.
func (t Team) Names() []string {
	names := make([]string, 0, len(t.Players))
	for _, p := range t.Players {
		names = append(names, p.Name)
	}
	return names
}

// Player looks up a squad member by name.
func (t Team) Player(name string) (Player, bool) {
	for _, p := range t.Players {
		if p.Name == name {
			return p, true
		}
	}
	return Player{}, false
}

// Validate checks the team has an id, a name, and unique non-empty player names.
func (t Team) Validate() error {
	if t.ID == "" {
		return fmt.Errorf("team %q has no id", t.Name)
	}
	if t.Name == "" {
		return fmt.Errorf("team %s has no name", t.ID)
	}
	seen := make(map[string]struct{}, len(t.Players))
	for i, p := range t.Players {
		if p.Name == "" {
			return fmt.Errorf("team %s: player %d has no name", t.ID, i+1)
		}
		if _, dup := seen[p.Name]; dup {
			return fmt.Errorf("team %s: duplicate player %q", t.ID, p.Name)
		}
		seen[p.Name] = struct{}{}
	}
	return nil
}
