package characters

//go:generate mockgen -destination=mock/mock.go -package=mockcharacters -source=interface.go

import (
	"context"

	"github.com/KirkDiggler/dado-bot/internal/entities"
)

// Repository defines the interface for character sheet persistence.
// Records are keyed by system and name; names are unique within a system.
type Repository interface {
	// Create stores a new character sheet
	Create(ctx context.Context, record *entities.CharacterRecord) error

	// Get retrieves a character sheet by system and name
	Get(ctx context.Context, system entities.GameSystem, name string) (*entities.CharacterRecord, error)

	// ListBySystem retrieves every sheet of a system, sorted by name
	ListBySystem(ctx context.Context, system entities.GameSystem) ([]*entities.CharacterRecord, error)

	// Update replaces the fields of an existing sheet
	Update(ctx context.Context, record *entities.CharacterRecord) error

	// Rename moves a sheet to a new name within its system
	Rename(ctx context.Context, system entities.GameSystem, oldName, newName string) error

	// Delete removes a sheet
	Delete(ctx context.Context, system entities.GameSystem, name string) error
}
