package characters

import (
	"context"
	"sort"
	"sync"

	"github.com/KirkDiggler/dado-bot/internal/entities"
)

type recordKey struct {
	system entities.GameSystem
	name   string
}

// InMemoryRepository is an in-memory implementation of the character repository
// Useful for testing and development
type InMemoryRepository struct {
	mu      sync.RWMutex
	records map[recordKey]*entities.CharacterRecord
}

// NewInMemoryRepository creates a new in-memory repository
func NewInMemoryRepository() Repository {
	return &InMemoryRepository{
		records: make(map[recordKey]*entities.CharacterRecord),
	}
}

// Create stores a new character sheet
func (r *InMemoryRepository) Create(_ context.Context, record *entities.CharacterRecord) error {
	if err := validate(record); err != nil {
		return err
	}

	stored, err := cloneRecord(record)
	if err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	key := recordKey{record.System, record.Name}
	if _, exists := r.records[key]; exists {
		return alreadyExists(record.System, record.Name)
	}
	r.records[key] = stored

	return nil
}

// Get retrieves a character sheet by system and name
func (r *InMemoryRepository) Get(_ context.Context, system entities.GameSystem, name string) (*entities.CharacterRecord, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	record, exists := r.records[recordKey{system, name}]
	if !exists {
		return nil, notFound(system, name)
	}

	return cloneRecord(record)
}

// ListBySystem retrieves every sheet of a system, sorted by name
func (r *InMemoryRepository) ListBySystem(_ context.Context, system entities.GameSystem) ([]*entities.CharacterRecord, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var out []*entities.CharacterRecord
	for key, record := range r.records {
		if key.system != system {
			continue
		}
		copied, err := cloneRecord(record)
		if err != nil {
			return nil, err
		}
		out = append(out, copied)
	}

	sort.Slice(out, func(i, j int) bool {
		return out[i].Name < out[j].Name
	})
	return out, nil
}

// Update replaces the fields of an existing sheet
func (r *InMemoryRepository) Update(_ context.Context, record *entities.CharacterRecord) error {
	if err := validate(record); err != nil {
		return err
	}

	stored, err := cloneRecord(record)
	if err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	key := recordKey{record.System, record.Name}
	if _, exists := r.records[key]; !exists {
		return notFound(record.System, record.Name)
	}
	r.records[key] = stored

	return nil
}

// Rename moves a sheet to a new name within its system
func (r *InMemoryRepository) Rename(_ context.Context, system entities.GameSystem, oldName, newName string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	oldKey := recordKey{system, oldName}
	record, exists := r.records[oldKey]
	if !exists {
		return notFound(system, oldName)
	}

	newKey := recordKey{system, newName}
	if _, taken := r.records[newKey]; taken {
		return alreadyExists(system, newName)
	}

	delete(r.records, oldKey)
	record.Name = newName
	r.records[newKey] = record

	return nil
}

// Delete removes a sheet
func (r *InMemoryRepository) Delete(_ context.Context, system entities.GameSystem, name string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	key := recordKey{system, name}
	if _, exists := r.records[key]; !exists {
		return notFound(system, name)
	}
	delete(r.records, key)

	return nil
}
