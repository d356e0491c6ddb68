package characters_test

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/KirkDiggler/dado-bot/internal/entities"
	"github.com/KirkDiggler/dado-bot/internal/logging"
	"github.com/KirkDiggler/dado-bot/internal/repositories/characters"
	"github.com/KirkDiggler/dado-bot/internal/testutils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOpen_FileStoreWithoutRedis(t *testing.T) {
	path := filepath.Join(t.TempDir(), "character_data.json")

	repo, closer, err := characters.Open(context.Background(), &characters.OpenConfig{
		DataFile: path,
		Logger:   logging.Discard(),
	})
	require.NoError(t, err)
	defer closer.Close()

	ctx := context.Background()
	require.NoError(t, repo.Create(ctx, testutils.CreateTestCharacterRecord(entities.GameSystemSamurai, "Jin")))
	assert.FileExists(t, path)
}

func TestOpen_BadRedisURLFallsBackToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "character_data.json")

	repo, closer, err := characters.Open(context.Background(), &characters.OpenConfig{
		RedisURL: "not a url",
		DataFile: path,
		Logger:   logging.Discard(),
	})
	require.NoError(t, err)
	defer closer.Close()

	names, err := repo.ListBySystem(context.Background(), entities.GameSystemSamurai)
	require.NoError(t, err)
	assert.Empty(t, names)
}
