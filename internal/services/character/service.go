package character

import (
	"context"
	"log/slog"
	"slices"
	"strings"

	"github.com/KirkDiggler/dado-bot/internal/entities"
	dnderr "github.com/KirkDiggler/dado-bot/internal/errors"
	"github.com/KirkDiggler/dado-bot/internal/repositories/characters"
)

// Repository is an alias for the character repository interface
type Repository = characters.Repository

// Service defines the character sheet service interface
type Service interface {
	// Systems lists the supported game systems
	Systems() []entities.GameSystem

	// Create makes a new sheet from the system's template
	Create(ctx context.Context, system entities.GameSystem, name string) (*entities.CharacterRecord, error)

	// Get retrieves a sheet
	Get(ctx context.Context, system entities.GameSystem, name string) (*entities.CharacterRecord, error)

	// List returns the sheet names of a system, sorted
	List(ctx context.Context, system entities.GameSystem) ([]string, error)

	// Rename gives a sheet a new name within its system
	Rename(ctx context.Context, system entities.GameSystem, oldName, newName string) error

	// Delete removes a sheet
	Delete(ctx context.Context, system entities.GameSystem, name string) error

	// SetField assigns a value at a dotted path such as attributes.forca
	SetField(ctx context.Context, input *SetFieldInput) (*entities.CharacterRecord, error)

	// AddItem appends an entry to a list field such as inventory
	AddItem(ctx context.Context, input *AddItemInput) (*entities.CharacterRecord, error)

	// RemoveItem removes the entry at a zero-based index from a list field
	RemoveItem(ctx context.Context, input *RemoveItemInput) (*entities.CharacterRecord, error)
}

// SetFieldInput identifies a field to overwrite
type SetFieldInput struct {
	System entities.GameSystem
	Name   string
	Path   string
	Value  any
}

// AddItemInput identifies a list to append to
type AddItemInput struct {
	System entities.GameSystem
	Name   string
	List   string
	Item   string
}

// RemoveItemInput identifies a list entry to remove
type RemoveItemInput struct {
	System entities.GameSystem
	Name   string
	List   string
	Index  int
}

// service implements the Service interface
type service struct {
	repository Repository
	templates  Templates
	logger     *slog.Logger
}

// ServiceConfig holds configuration for the service
type ServiceConfig struct {
	Repository Repository   // Required
	Templates  Templates    // Optional, defaults to the embedded templates
	Logger     *slog.Logger // Optional
}

// NewService creates a new character service
func NewService(cfg *ServiceConfig) Service {
	if cfg == nil || cfg.Repository == nil {
		panic("repository is required")
	}

	svc := &service{
		repository: cfg.Repository,
		templates:  cfg.Templates,
		logger:     cfg.Logger,
	}
	if svc.templates == nil {
		svc.templates = DefaultTemplates()
	}
	if svc.logger == nil {
		svc.logger = slog.Default()
	}

	return svc
}

func (s *service) Systems() []entities.GameSystem {
	return slices.Clone(entities.GameSystems)
}

func (s *service) template(system entities.GameSystem) (*Template, error) {
	if _, ok := entities.ParseGameSystem(string(system)); !ok {
		return nil, dnderr.InvalidArgumentf("unknown game system '%s'", system)
	}
	tmpl := s.templates[system]
	if tmpl == nil {
		return nil, dnderr.Internalf("no template for %s", system)
	}
	return tmpl, nil
}

func cleanName(name string) (string, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return "", dnderr.InvalidArgument("character name is required")
	}
	return name, nil
}

// Create makes a new sheet from the system's template
func (s *service) Create(ctx context.Context, system entities.GameSystem, name string) (*entities.CharacterRecord, error) {
	name, err := cleanName(name)
	if err != nil {
		return nil, err
	}

	tmpl, err := s.template(system)
	if err != nil {
		return nil, err
	}

	fields, err := tmpl.NewFields()
	if err != nil {
		return nil, dnderr.Wrapf(err, "failed to build %s sheet", system)
	}

	record := &entities.CharacterRecord{
		System: system,
		Name:   name,
		Fields: fields,
	}
	if err := s.repository.Create(ctx, record); err != nil {
		return nil, dnderr.Wrapf(err, "failed to create sheet '%s'", name).
			WithMeta("operation", "Create")
	}

	s.logger.InfoContext(ctx, "character sheet created", "system", system, "name", name)
	return record, nil
}

func (s *service) Get(ctx context.Context, system entities.GameSystem, name string) (*entities.CharacterRecord, error) {
	name, err := cleanName(name)
	if err != nil {
		return nil, err
	}

	record, err := s.repository.Get(ctx, system, name)
	if err != nil {
		return nil, dnderr.Wrapf(err, "failed to get sheet '%s'", name)
	}
	return record, nil
}

func (s *service) List(ctx context.Context, system entities.GameSystem) ([]string, error) {
	if _, err := s.template(system); err != nil {
		return nil, err
	}

	records, err := s.repository.ListBySystem(ctx, system)
	if err != nil {
		return nil, dnderr.Wrapf(err, "failed to list %s sheets", system)
	}

	names := make([]string, 0, len(records))
	for _, record := range records {
		names = append(names, record.Name)
	}
	slices.Sort(names)
	return names, nil
}

func (s *service) Rename(ctx context.Context, system entities.GameSystem, oldName, newName string) error {
	oldName, err := cleanName(oldName)
	if err != nil {
		return err
	}
	newName, err = cleanName(newName)
	if err != nil {
		return err
	}
	if oldName == newName {
		return dnderr.InvalidArgumentf("sheet is already named '%s'", newName)
	}

	if err := s.repository.Rename(ctx, system, oldName, newName); err != nil {
		return dnderr.Wrapf(err, "failed to rename sheet '%s'", oldName).
			WithMeta("new_name", newName)
	}

	s.logger.InfoContext(ctx, "character sheet renamed", "system", system, "from", oldName, "to", newName)
	return nil
}

func (s *service) Delete(ctx context.Context, system entities.GameSystem, name string) error {
	name, err := cleanName(name)
	if err != nil {
		return err
	}

	if err := s.repository.Delete(ctx, system, name); err != nil {
		return dnderr.Wrapf(err, "failed to delete sheet '%s'", name)
	}

	s.logger.InfoContext(ctx, "character sheet deleted", "system", system, "name", name)
	return nil
}

// edit loads a sheet, applies fn, and saves it
func (s *service) edit(ctx context.Context, system entities.GameSystem, name string, fn func(*entities.CharacterRecord) error) (*entities.CharacterRecord, error) {
	record, err := s.Get(ctx, system, name)
	if err != nil {
		return nil, err
	}
	if record.Fields == nil {
		record.Fields = map[string]any{}
	}

	if err := fn(record); err != nil {
		return nil, err
	}

	if err := s.repository.Update(ctx, record); err != nil {
		return nil, dnderr.Wrapf(err, "failed to save sheet '%s'", record.Name)
	}
	return record, nil
}

func (s *service) SetField(ctx context.Context, input *SetFieldInput) (*entities.CharacterRecord, error) {
	if input == nil {
		return nil, dnderr.InvalidArgument("input is required")
	}

	return s.edit(ctx, input.System, input.Name, func(record *entities.CharacterRecord) error {
		return setPath(record.Fields, input.Path, input.Value)
	})
}

func (s *service) AddItem(ctx context.Context, input *AddItemInput) (*entities.CharacterRecord, error) {
	if input == nil {
		return nil, dnderr.InvalidArgument("input is required")
	}

	item := strings.TrimSpace(input.Item)
	if item == "" {
		return nil, dnderr.InvalidArgument("item is required")
	}

	tmpl, err := s.template(input.System)
	if err != nil {
		return nil, err
	}

	return s.edit(ctx, input.System, input.Name, func(record *entities.CharacterRecord) error {
		list, err := listAt(record.Fields, input.List)
		if err != nil {
			return err
		}

		if _, unique := tmpl.UniqueLists[input.List]; unique && slices.Contains(list, any(item)) {
			return dnderr.AlreadyExistsf("'%s' is already in %s", item, input.List)
		}

		record.Fields[input.List] = append(list, item)
		return nil
	})
}

func (s *service) RemoveItem(ctx context.Context, input *RemoveItemInput) (*entities.CharacterRecord, error) {
	if input == nil {
		return nil, dnderr.InvalidArgument("input is required")
	}

	tmpl, err := s.template(input.System)
	if err != nil {
		return nil, err
	}

	return s.edit(ctx, input.System, input.Name, func(record *entities.CharacterRecord) error {
		list, err := listAt(record.Fields, input.List)
		if err != nil {
			return err
		}
		if input.Index < 0 || input.Index >= len(list) {
			return dnderr.InvalidArgumentf("no entry %d in %s (%d entries)", input.Index, input.List, len(list))
		}

		removed := list[input.Index]
		list = slices.Delete(list, input.Index, input.Index+1)
		record.Fields[input.List] = list

		// Removing the equipped entry moves the slot to the first remaining one
		equippedField := tmpl.UniqueLists[input.List]
		removedName, _ := removed.(string)
		equipped, _ := record.Fields[equippedField].(string)
		if equippedField != "" && removedName != "" && equipped == removedName {
			if len(list) > 0 {
				record.Fields[equippedField] = list[0]
			} else {
				record.Fields[equippedField] = ""
			}
		}
		return nil
	})
}
