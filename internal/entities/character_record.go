package entities

import (
	"strings"
	"time"
)

// GameSystem identifies which rulebook a character sheet belongs to
type GameSystem string

const (
	GameSystemCyberpunk   GameSystem = "cyberpunk"
	GameSystemWarhammer   GameSystem = "warhammer"
	GameSystemDemi        GameSystem = "demi"
	GameSystemNahobino    GameSystem = "nahobino"
	GameSystemSamurai     GameSystem = "samurai"
	GameSystemPersonaUser GameSystem = "persona_user"
)

// GameSystems lists every supported system in display order
var GameSystems = []GameSystem{
	GameSystemCyberpunk,
	GameSystemWarhammer,
	GameSystemDemi,
	GameSystemNahobino,
	GameSystemSamurai,
	GameSystemPersonaUser,
}

var gameSystemTitles = map[GameSystem]string{
	GameSystemCyberpunk:   "Cyberpunk",
	GameSystemWarhammer:   "Warhammer",
	GameSystemDemi:        "Demi-fiend",
	GameSystemNahobino:    "Nahobino",
	GameSystemSamurai:     "Samurai",
	GameSystemPersonaUser: "Persona-User",
}

// ParseGameSystem resolves a system key, ignoring case and surrounding spaces
func ParseGameSystem(s string) (GameSystem, bool) {
	gs := GameSystem(strings.ToLower(strings.TrimSpace(s)))
	_, ok := gameSystemTitles[gs]
	return gs, ok
}

// Title is the display name of the system
func (g GameSystem) Title() string {
	return gameSystemTitles[g]
}

// CharacterRecord is a named character sheet. Fields is an opaque bag
// (attributes, resource pools, inventories) shaped by the system's template.
type CharacterRecord struct {
	System    GameSystem     `json:"system"`
	Name      string         `json:"name"`
	Fields    map[string]any `json:"fields"`
	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
}
