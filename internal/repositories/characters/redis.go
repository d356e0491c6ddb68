package characters

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/KirkDiggler/dado-bot/internal/clock"
	"github.com/KirkDiggler/dado-bot/internal/entities"
	"github.com/redis/go-redis/v9"
	"golang.org/x/sync/errgroup"
)

// Data represents the serialized form of a character sheet in Redis
type Data struct {
	System    entities.GameSystem `json:"system"`
	Name      string              `json:"name"`
	Fields    map[string]any      `json:"fields"`
	CreatedAt time.Time           `json:"created_at"`
	UpdatedAt time.Time           `json:"updated_at"`
}

// redisRepo implements the Repository interface using Redis
type redisRepo struct {
	client       redis.UniversalClient
	timeProvider clock.TimeProvider
}

// RedisRepoConfig holds configuration for the Redis repository
type RedisRepoConfig struct {
	Client       redis.UniversalClient // Required
	TimeProvider clock.TimeProvider    // Optional, defaults to the wall clock
}

// NewRedis creates a new Redis-backed character repository
func NewRedis(client redis.UniversalClient, timeProvider clock.TimeProvider) Repository {
	return NewRedisRepository(&RedisRepoConfig{
		Client:       client,
		TimeProvider: timeProvider,
	})
}

// NewRedisRepository creates a Redis repository from a full config
func NewRedisRepository(cfg *RedisRepoConfig) Repository {
	if cfg == nil || cfg.Client == nil {
		panic("redis client is required")
	}

	timeProvider := cfg.TimeProvider
	if timeProvider == nil {
		timeProvider = clock.New()
	}

	return &redisRepo{
		client:       cfg.Client,
		timeProvider: timeProvider,
	}
}

func characterKey(system entities.GameSystem, name string) string {
	return fmt.Sprintf("character:%s:%s", system, name)
}

func systemKey(system entities.GameSystem) string {
	return fmt.Sprintf("system:%s:characters", system)
}

func toData(record *entities.CharacterRecord) ([]byte, error) {
	data := Data{
		System:    record.System,
		Name:      record.Name,
		Fields:    record.Fields,
		CreatedAt: record.CreatedAt,
		UpdatedAt: record.UpdatedAt,
	}

	jsonData, err := json.Marshal(data)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal character data: %w", err)
	}
	return jsonData, nil
}

func fromData(jsonData []byte) (*entities.CharacterRecord, error) {
	var data Data
	if err := json.Unmarshal(jsonData, &data); err != nil {
		return nil, fmt.Errorf("failed to unmarshal character data: %w", err)
	}
	if data.Fields == nil {
		data.Fields = map[string]any{}
	}

	return &entities.CharacterRecord{
		System:    data.System,
		Name:      data.Name,
		Fields:    data.Fields,
		CreatedAt: data.CreatedAt,
		UpdatedAt: data.UpdatedAt,
	}, nil
}

// Create stores a new character sheet
func (r *redisRepo) Create(ctx context.Context, record *entities.CharacterRecord) error {
	if err := validate(record); err != nil {
		return err
	}

	now := r.timeProvider.Now()
	record.CreatedAt = now
	record.UpdatedAt = now

	jsonData, err := toData(record)
	if err != nil {
		return err
	}

	created, err := r.client.SetNX(ctx, characterKey(record.System, record.Name), string(jsonData), 0).Result()
	if err != nil {
		return fmt.Errorf("failed to create character in Redis: %w", err)
	}
	if !created {
		return alreadyExists(record.System, record.Name)
	}

	if err := r.client.SAdd(ctx, systemKey(record.System), record.Name).Err(); err != nil {
		return fmt.Errorf("failed to index character in Redis: %w", err)
	}

	return nil
}

// Get retrieves a character sheet by system and name
func (r *redisRepo) Get(ctx context.Context, system entities.GameSystem, name string) (*entities.CharacterRecord, error) {
	jsonData, err := r.client.Get(ctx, characterKey(system, name)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, notFound(system, name)
		}
		return nil, fmt.Errorf("failed to get character from Redis: %w", err)
	}

	return fromData(jsonData)
}

// ListBySystem retrieves every sheet of a system, sorted by name
func (r *redisRepo) ListBySystem(ctx context.Context, system entities.GameSystem) ([]*entities.CharacterRecord, error) {
	names, err := r.client.SMembers(ctx, systemKey(system)).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to list %s characters from Redis: %w", system, err)
	}

	records := make([]*entities.CharacterRecord, len(names))

	g, ctx := errgroup.WithContext(ctx)
	for i, name := range names {
		g.Go(func() error {
			record, err := r.Get(ctx, system, name)
			if err != nil {
				return fmt.Errorf("failed to get character %s: %w", name, err)
			}
			records[i] = record
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	sort.Slice(records, func(i, j int) bool {
		return records[i].Name < records[j].Name
	})
	return records, nil
}

// Update replaces the fields of an existing sheet
func (r *redisRepo) Update(ctx context.Context, record *entities.CharacterRecord) error {
	if err := validate(record); err != nil {
		return err
	}

	record.UpdatedAt = r.timeProvider.Now()

	jsonData, err := toData(record)
	if err != nil {
		return err
	}

	updated, err := r.client.SetXX(ctx, characterKey(record.System, record.Name), string(jsonData), 0).Result()
	if err != nil {
		return fmt.Errorf("failed to update character in Redis: %w", err)
	}
	if !updated {
		return notFound(record.System, record.Name)
	}

	return nil
}

// Rename moves a sheet to a new name within its system
func (r *redisRepo) Rename(ctx context.Context, system entities.GameSystem, oldName, newName string) error {
	record, err := r.Get(ctx, system, oldName)
	if err != nil {
		return err
	}

	taken, err := r.client.Exists(ctx, characterKey(system, newName)).Result()
	if err != nil {
		return fmt.Errorf("failed to check character name in Redis: %w", err)
	}
	if taken > 0 {
		return alreadyExists(system, newName)
	}

	record.Name = newName
	record.UpdatedAt = r.timeProvider.Now()
	jsonData, err := toData(record)
	if err != nil {
		return err
	}

	pipe := r.client.Pipeline()
	pipe.Set(ctx, characterKey(system, newName), string(jsonData), 0)
	pipe.Del(ctx, characterKey(system, oldName))
	pipe.SRem(ctx, systemKey(system), oldName)
	pipe.SAdd(ctx, systemKey(system), newName)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to rename character in Redis: %w", err)
	}

	return nil
}

// Delete removes a sheet
func (r *redisRepo) Delete(ctx context.Context, system entities.GameSystem, name string) error {
	pipe := r.client.Pipeline()
	del := pipe.Del(ctx, characterKey(system, name))
	pipe.SRem(ctx, systemKey(system), name)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to delete character from Redis: %w", err)
	}

	if del.Val() == 0 {
		return notFound(system, name)
	}
	return nil
}
