package testutils

import (
	"github.com/KirkDiggler/dado-bot/internal/entities"
)

// CreateTestCharacterRecord creates a small sheet for the given system
func CreateTestCharacterRecord(system entities.GameSystem, name string) *entities.CharacterRecord {
	return &entities.CharacterRecord{
		System: system,
		Name:   name,
		Fields: map[string]any{
			"level":     float64(1),
			"pv":        float64(100),
			"inventory": []any{"Corda", "Tocha"},
			"attributes": map[string]any{
				"Força": float64(10),
				"Sorte": float64(12),
			},
		},
	}
}
