package app

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"

	"github.com/specialistvlad/callplan/internal/plan"
)

// jsonCall mirrors the tool-call shape emitted by most LLM APIs. Arguments may
// be an object or a JSON-encoded string holding one.
type jsonCall struct {
	Name      string          `json:"name"`
	Arguments json.RawMessage `json:"arguments"`
	DependsOn []string        `json:"depends_on"`
}

// decodeCalls reads a JSON array of calls.
func decodeCalls(r io.Reader) ([]plan.Call, error) {
	var raw []jsonCall
	if err := json.NewDecoder(r).Decode(&raw); err != nil {
		return nil, fmt.Errorf("failed to decode calls: %w", err)
	}

	calls := make([]plan.Call, 0, len(raw))
	for i, rc := range raw {
		args, err := decodeArguments(rc.Arguments)
		if err != nil {
			return nil, fmt.Errorf("call %d (%q): %w", i, rc.Name, err)
		}
		calls = append(calls, plan.Call{Name: rc.Name, Arguments: args, DependsOn: rc.DependsOn})
	}
	return calls, nil
}

func decodeArguments(raw json.RawMessage) (map[string]any, error) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return map[string]any{}, nil
	}

	if raw[0] == '"' {
		var encoded string
		if err := json.Unmarshal(raw, &encoded); err != nil {
			return nil, fmt.Errorf("invalid arguments: %w", err)
		}
		if encoded == "" {
			return map[string]any{}, nil
		}
		raw = []byte(encoded)
	}

	args := map[string]any{}
	if err := json.Unmarshal(raw, &args); err != nil {
		return nil, fmt.Errorf("invalid arguments: %w", err)
	}
	return args, nil
}
