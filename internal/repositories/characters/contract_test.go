package characters_test

import (
	"context"
	"testing"

	"github.com/KirkDiggler/dado-bot/internal/entities"
	dnderr "github.com/KirkDiggler/dado-bot/internal/errors"
	"github.com/KirkDiggler/dado-bot/internal/repositories/characters"
	"github.com/KirkDiggler/dado-bot/internal/testutils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// runRepositoryContract exercises behavior every store must share
func runRepositoryContract(t *testing.T, newRepo func(t *testing.T) characters.Repository) {
	ctx := context.Background()

	t.Run("create and get", func(t *testing.T) {
		repo := newRepo(t)
		record := testutils.CreateTestCharacterRecord(entities.GameSystemDemi, "Aiko")

		require.NoError(t, repo.Create(ctx, record))

		got, err := repo.Get(ctx, entities.GameSystemDemi, "Aiko")
		require.NoError(t, err)
		assert.Equal(t, entities.GameSystemDemi, got.System)
		assert.Equal(t, "Aiko", got.Name)
		assert.Equal(t, record.Fields, got.Fields)
	})

	t.Run("duplicate create fails", func(t *testing.T) {
		repo := newRepo(t)
		require.NoError(t, repo.Create(ctx, testutils.CreateTestCharacterRecord(entities.GameSystemDemi, "Aiko")))

		err := repo.Create(ctx, testutils.CreateTestCharacterRecord(entities.GameSystemDemi, "Aiko"))
		require.Error(t, err)
		assert.True(t, dnderr.IsAlreadyExists(err), "got %v", err)
	})

	t.Run("same name in another system is allowed", func(t *testing.T) {
		repo := newRepo(t)
		require.NoError(t, repo.Create(ctx, testutils.CreateTestCharacterRecord(entities.GameSystemDemi, "Aiko")))
		require.NoError(t, repo.Create(ctx, testutils.CreateTestCharacterRecord(entities.GameSystemSamurai, "Aiko")))
	})

	t.Run("invalid records are rejected", func(t *testing.T) {
		repo := newRepo(t)

		err := repo.Create(ctx, testutils.CreateTestCharacterRecord(entities.GameSystemDemi, "  "))
		assert.True(t, dnderr.IsInvalidArgument(err), "got %v", err)

		err = repo.Create(ctx, testutils.CreateTestCharacterRecord("dnd5e", "Aiko"))
		assert.True(t, dnderr.IsInvalidArgument(err), "got %v", err)

		err = repo.Create(ctx, nil)
		assert.True(t, dnderr.IsInvalidArgument(err), "got %v", err)
	})

	t.Run("get missing", func(t *testing.T) {
		repo := newRepo(t)

		_, err := repo.Get(ctx, entities.GameSystemWarhammer, "Ghost")
		require.Error(t, err)
		assert.True(t, dnderr.IsNotFound(err), "got %v", err)
	})

	t.Run("returned records are copies", func(t *testing.T) {
		repo := newRepo(t)
		require.NoError(t, repo.Create(ctx, testutils.CreateTestCharacterRecord(entities.GameSystemDemi, "Aiko")))

		got, err := repo.Get(ctx, entities.GameSystemDemi, "Aiko")
		require.NoError(t, err)
		got.Fields["pv"] = float64(1)
		got.Fields["attributes"].(map[string]any)["Força"] = float64(99)

		again, err := repo.Get(ctx, entities.GameSystemDemi, "Aiko")
		require.NoError(t, err)
		assert.Equal(t, float64(100), again.Fields["pv"])
		assert.Equal(t, float64(10), again.Fields["attributes"].(map[string]any)["Força"])
	})

	t.Run("list by system is sorted and scoped", func(t *testing.T) {
		repo := newRepo(t)
		for _, name := range []string{"Zed", "Aiko", "Mika"} {
			require.NoError(t, repo.Create(ctx, testutils.CreateTestCharacterRecord(entities.GameSystemNahobino, name)))
		}
		require.NoError(t, repo.Create(ctx, testutils.CreateTestCharacterRecord(entities.GameSystemCyberpunk, "V")))

		list, err := repo.ListBySystem(ctx, entities.GameSystemNahobino)
		require.NoError(t, err)
		require.Len(t, list, 3)
		assert.Equal(t, "Aiko", list[0].Name)
		assert.Equal(t, "Mika", list[1].Name)
		assert.Equal(t, "Zed", list[2].Name)

		empty, err := repo.ListBySystem(ctx, entities.GameSystemWarhammer)
		require.NoError(t, err)
		assert.Empty(t, empty)
	})

	t.Run("update", func(t *testing.T) {
		repo := newRepo(t)
		record := testutils.CreateTestCharacterRecord(entities.GameSystemDemi, "Aiko")
		require.NoError(t, repo.Create(ctx, record))

		record.Fields["pv"] = float64(42)
		require.NoError(t, repo.Update(ctx, record))

		got, err := repo.Get(ctx, entities.GameSystemDemi, "Aiko")
		require.NoError(t, err)
		assert.Equal(t, float64(42), got.Fields["pv"])

		err = repo.Update(ctx, testutils.CreateTestCharacterRecord(entities.GameSystemDemi, "Ghost"))
		assert.True(t, dnderr.IsNotFound(err), "got %v", err)
	})

	t.Run("rename", func(t *testing.T) {
		repo := newRepo(t)
		require.NoError(t, repo.Create(ctx, testutils.CreateTestCharacterRecord(entities.GameSystemDemi, "Aiko")))
		require.NoError(t, repo.Create(ctx, testutils.CreateTestCharacterRecord(entities.GameSystemDemi, "Mika")))

		require.NoError(t, repo.Rename(ctx, entities.GameSystemDemi, "Aiko", "Aiko Kurosawa"))

		_, err := repo.Get(ctx, entities.GameSystemDemi, "Aiko")
		assert.True(t, dnderr.IsNotFound(err), "got %v", err)

		got, err := repo.Get(ctx, entities.GameSystemDemi, "Aiko Kurosawa")
		require.NoError(t, err)
		assert.Equal(t, "Aiko Kurosawa", got.Name)
		assert.Equal(t, float64(100), got.Fields["pv"])

		err = repo.Rename(ctx, entities.GameSystemDemi, "Aiko Kurosawa", "Mika")
		assert.True(t, dnderr.IsAlreadyExists(err), "got %v", err)

		err = repo.Rename(ctx, entities.GameSystemDemi, "Ghost", "Spirit")
		assert.True(t, dnderr.IsNotFound(err), "got %v", err)

		list, err := repo.ListBySystem(ctx, entities.GameSystemDemi)
		require.NoError(t, err)
		require.Len(t, list, 2)
		assert.Equal(t, "Aiko Kurosawa", list[0].Name)
	})

	t.Run("delete", func(t *testing.T) {
		repo := newRepo(t)
		require.NoError(t, repo.Create(ctx, testutils.CreateTestCharacterRecord(entities.GameSystemDemi, "Aiko")))

		require.NoError(t, repo.Delete(ctx, entities.GameSystemDemi, "Aiko"))

		_, err := repo.Get(ctx, entities.GameSystemDemi, "Aiko")
		assert.True(t, dnderr.IsNotFound(err), "got %v", err)

		err = repo.Delete(ctx, entities.GameSystemDemi, "Aiko")
		assert.True(t, dnderr.IsNotFound(err), "got %v", err)
	})
}
