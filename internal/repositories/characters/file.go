package characters

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"sync"

	"github.com/KirkDiggler/dado-bot/internal/entities"
	dnderr "github.com/KirkDiggler/dado-bot/internal/errors"
)

// fileData is the on-disk layout: system -> character name -> field bag
type fileData map[entities.GameSystem]map[string]map[string]any

// fileRepo keeps every sheet in one JSON file and rewrites the whole file on each edit
type fileRepo struct {
	mu   sync.Mutex
	path string
	data fileData
}

// NewFile opens the character file at path. A missing or empty file starts an empty store.
func NewFile(path string) (Repository, error) {
	r := &fileRepo{
		path: path,
		data: fileData{},
	}
	if err := r.load(); err != nil {
		return nil, err
	}
	return r, nil
}

// storageError marks a disk or encoding failure as internal, keeping the cause
func storageError(err error, format string, args ...any) error {
	return dnderr.WrapWithCode(err, dnderr.CodeInternal, fmt.Sprintf(format, args...))
}

func (r *fileRepo) load() error {
	raw, err := os.ReadFile(r.path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	if err != nil {
		return storageError(err, "failed to read character file %s", r.path)
	}
	if len(bytes.TrimSpace(raw)) == 0 {
		return nil
	}

	if err := json.Unmarshal(raw, &r.data); err != nil {
		return storageError(err, "failed to parse character file %s", r.path)
	}
	return nil
}

// save writes to a temp file in the same directory and renames it over the original
func (r *fileRepo) save() error {
	out := make(fileData, len(r.data))
	for system, sheets := range r.data {
		out[system] = sheets
	}
	for _, system := range entities.GameSystems {
		if out[system] == nil {
			out[system] = map[string]map[string]any{}
		}
	}

	raw, err := json.MarshalIndent(out, "", "  ")
	if err != nil {
		return storageError(err, "failed to marshal character data")
	}

	tmp, err := os.CreateTemp(filepath.Dir(r.path), ".character_data-*.json")
	if err != nil {
		return storageError(err, "failed to create temp file")
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(raw); err != nil {
		_ = tmp.Close()
		return storageError(err, "failed to write character data")
	}
	if err := tmp.Close(); err != nil {
		return storageError(err, "failed to close temp file")
	}
	if err := os.Rename(tmp.Name(), r.path); err != nil {
		return storageError(err, "failed to replace character file")
	}

	return nil
}

func (r *fileRepo) sheets(system entities.GameSystem) map[string]map[string]any {
	if r.data[system] == nil {
		r.data[system] = map[string]map[string]any{}
	}
	return r.data[system]
}

func toRecord(system entities.GameSystem, name string, fields map[string]any) (*entities.CharacterRecord, error) {
	copied, err := cloneFields(fields)
	if err != nil {
		return nil, err
	}
	return &entities.CharacterRecord{
		System: system,
		Name:   name,
		Fields: copied,
	}, nil
}

// Create stores a new character sheet
func (r *fileRepo) Create(_ context.Context, record *entities.CharacterRecord) error {
	if err := validate(record); err != nil {
		return err
	}

	fields, err := cloneFields(record.Fields)
	if err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	sheets := r.sheets(record.System)
	if _, exists := sheets[record.Name]; exists {
		return alreadyExists(record.System, record.Name)
	}

	sheets[record.Name] = fields
	if err := r.save(); err != nil {
		delete(sheets, record.Name)
		return err
	}

	return nil
}

// Get retrieves a character sheet by system and name
func (r *fileRepo) Get(_ context.Context, system entities.GameSystem, name string) (*entities.CharacterRecord, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	fields, exists := r.data[system][name]
	if !exists {
		return nil, notFound(system, name)
	}

	return toRecord(system, name, fields)
}

// ListBySystem retrieves every sheet of a system, sorted by name
func (r *fileRepo) ListBySystem(_ context.Context, system entities.GameSystem) ([]*entities.CharacterRecord, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	names := make([]string, 0, len(r.data[system]))
	for name := range r.data[system] {
		names = append(names, name)
	}
	sort.Strings(names)

	out := make([]*entities.CharacterRecord, 0, len(names))
	for _, name := range names {
		record, err := toRecord(system, name, r.data[system][name])
		if err != nil {
			return nil, err
		}
		out = append(out, record)
	}
	return out, nil
}

// Update replaces the fields of an existing sheet
func (r *fileRepo) Update(_ context.Context, record *entities.CharacterRecord) error {
	if err := validate(record); err != nil {
		return err
	}

	fields, err := cloneFields(record.Fields)
	if err != nil {
		return err
	}

	r.mu.Lock()
	defer r.mu.Unlock()

	sheets := r.sheets(record.System)
	previous, exists := sheets[record.Name]
	if !exists {
		return notFound(record.System, record.Name)
	}

	sheets[record.Name] = fields
	if err := r.save(); err != nil {
		sheets[record.Name] = previous
		return err
	}

	return nil
}

// Rename moves a sheet to a new name within its system
func (r *fileRepo) Rename(_ context.Context, system entities.GameSystem, oldName, newName string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	sheets := r.sheets(system)
	fields, exists := sheets[oldName]
	if !exists {
		return notFound(system, oldName)
	}
	if _, taken := sheets[newName]; taken {
		return alreadyExists(system, newName)
	}

	delete(sheets, oldName)
	sheets[newName] = fields
	if err := r.save(); err != nil {
		delete(sheets, newName)
		sheets[oldName] = fields
		return err
	}

	return nil
}

// Delete removes a sheet
func (r *fileRepo) Delete(_ context.Context, system entities.GameSystem, name string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	sheets := r.sheets(system)
	fields, exists := sheets[name]
	if !exists {
		return notFound(system, name)
	}

	delete(sheets, name)
	if err := r.save(); err != nil {
		sheets[name] = fields
		return err
	}

	return nil
}
