package characters

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/KirkDiggler/dado-bot/internal/entities"
	dnderr "github.com/KirkDiggler/dado-bot/internal/errors"
)

func notFound(system entities.GameSystem, name string) error {
	return dnderr.NotFoundf("character '%s' not found in %s", name, system).
		WithMeta("system", string(system)).
		WithMeta("name", name)
}

func alreadyExists(system entities.GameSystem, name string) error {
	return dnderr.AlreadyExistsf("character '%s' already exists in %s", name, system).
		WithMeta("system", string(system)).
		WithMeta("name", name)
}

func validate(record *entities.CharacterRecord) error {
	if record == nil {
		return dnderr.InvalidArgument("character cannot be nil")
	}
	if strings.TrimSpace(record.Name) == "" {
		return dnderr.InvalidArgument("character name is required")
	}
	if _, ok := entities.ParseGameSystem(string(record.System)); !ok {
		return dnderr.InvalidArgumentf("unknown game system '%s'", record.System)
	}
	return nil
}

// cloneFields deep copies a field bag through JSON so callers never share
// nested maps or slices with the store
func cloneFields(fields map[string]any) (map[string]any, error) {
	if fields == nil {
		return map[string]any{}, nil
	}

	raw, err := json.Marshal(fields)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal character fields: %w", err)
	}

	var out map[string]any
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, fmt.Errorf("failed to unmarshal character fields: %w", err)
	}
	return out, nil
}

func cloneRecord(record *entities.CharacterRecord) (*entities.CharacterRecord, error) {
	fields, err := cloneFields(record.Fields)
	if err != nil {
		return nil, err
	}

	out := *record
	out.Fields = fields
	return &out, nil
}
