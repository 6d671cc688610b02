package match

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/mauv0809/crease/internal/scoring"
)

// envelope carries the command name next to its fields:
//
//	{"type": "record_delivery", "runs": 4, "kind": "legal"}
type envelope struct {
	Type string `json:"type"`
}

var commandTypes = map[string]func() scoring.Command{
	scoring.StartMatch{}.Name():         func() scoring.Command { return &scoring.StartMatch{} },
	scoring.StartInnings{}.Name():       func() scoring.Command { return &scoring.StartInnings{} },
	scoring.RecordDelivery{}.Name():     func() scoring.Command { return &scoring.RecordDelivery{} },
	scoring.SelectNewBatsman{}.Name():   func() scoring.Command { return &scoring.SelectNewBatsman{} },
	scoring.SelectNewBowler{}.Name():    func() scoring.Command { return &scoring.SelectNewBowler{} },
	scoring.RetireBatsman{}.Name():      func() scoring.Command { return &scoring.RetireBatsman{} },
	scoring.SwapStrike{}.Name():         func() scoring.Command { return &scoring.SwapStrike{} },
	scoring.UndoLast{}.Name():           func() scoring.Command { return &scoring.UndoLast{} },
	scoring.StartSecondInnings{}.Name(): func() scoring.Command { return &scoring.StartSecondInnings{} },
	scoring.FinalizeMatch{}.Name():      func() scoring.Command { return &scoring.FinalizeMatch{} },
}

// DecodeCommand parses a JSON command envelope.
func DecodeCommand(data []byte) (scoring.Command, error) {
	var env envelope
	if err := json.Unmarshal(data, &env); err != nil {
		return nil, fmt.Errorf("%w: %w", scoring.ErrInvalidInput, err)
	}
	newCmd, ok := commandTypes[strings.TrimSpace(env.Type)]
	if !ok {
		return nil, fmt.Errorf("%w: %q", scoring.ErrUnknownCommand, env.Type)
	}
	cmd := newCmd()
	if err := json.Unmarshal(data, cmd); err != nil {
		return nil, fmt.Errorf("%w: %s: %w", scoring.ErrInvalidInput, env.Type, err)
	}
	return deref(cmd), nil
}

// EncodeCommand renders cmd as a JSON command envelope.
func EncodeCommand(cmd scoring.Command) ([]byte, error) {
	fields, err := json.Marshal(cmd)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal %s: %w", cmd.Name(), err)
	}
	var m map[string]any
	if err := json.Unmarshal(fields, &m); err != nil {
		return nil, fmt.Errorf("failed to marshal %s: %w", cmd.Name(), err)
	}
	if m == nil {
		m = map[string]any{}
	}
	m["type"] = cmd.Name()
	return json.Marshal(m)
}

// deref returns the value form of a decoded command so callers can compare against literals.
func deref(cmd scoring.Command) scoring.Command {
	switch c := cmd.(type) {
	case *scoring.StartMatch:
		return *c
	case *scoring.StartInnings:
		return *c
	case *scoring.RecordDelivery:
		if c.Kind == "" {
			c.Kind = scoring.KindLegal
		}
		return *c
	case *scoring.SelectNewBatsman:
		return *c
	case *scoring.SelectNewBowler:
		return *c
	case *scoring.RetireBatsman:
		return *c
	case *scoring.SwapStrike:
		return *c
	case *scoring.UndoLast:
		return *c
	case *scoring.StartSecondInnings:
		return *c
	case *scoring.FinalizeMatch:
		return *c
	}
	return cmd
}
