package repository

import (
	"context"
	"testing"

	"cardbot/domain/entities"
	"cardbot/repository/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCardSetRepository_Membership(t *testing.T) {
	t.Parallel()
	testDB := testutil.SetupTestDatabase(t)

	cards := NewCardRepositoryScoped(testDB.DB, testGuildID)
	repo := NewCardSetRepositoryScoped(testDB.DB, testGuildID)
	ctx := context.Background()

	card := testutil.CreateTestCard("Wisp", "Uncommon")
	require.NoError(t, cards.Create(ctx, card))

	set := &entities.CardSet{Name: "Spirits", Description: "Ghostly things"}
	require.NoError(t, repo.Create(ctx, set))
	assert.NotZero(t, set.ID)

	found, err := repo.GetByName(ctx, "spirits")
	require.NoError(t, err)
	require.NotNil(t, found)
	assert.Equal(t, set.ID, found.ID)

	added, err := repo.AddCard(ctx, set.ID, card.CardID)
	require.NoError(t, err)
	assert.True(t, added)

	added, err = repo.AddCard(ctx, set.ID, card.CardID)
	require.NoError(t, err)
	assert.False(t, added)

	members, err := repo.ListCards(ctx, set.ID)
	require.NoError(t, err)
	require.Len(t, members, 1)
	assert.Equal(t, "Wisp", members[0].Name)

	inPreset, err := repo.IsCardInPreset(ctx, card.CardID)
	require.NoError(t, err)
	assert.False(t, inPreset)

	preset := &entities.CardSet{Name: "Starter", IsPreset: true}
	require.NoError(t, repo.Create(ctx, preset))
	_, err = repo.AddCard(ctx, preset.ID, card.CardID)
	require.NoError(t, err)

	inPreset, err = repo.IsCardInPreset(ctx, card.CardID)
	require.NoError(t, err)
	assert.True(t, inPreset)

	require.NoError(t, repo.RemoveCardFromAll(ctx, card.CardID))
	members, err = repo.ListCards(ctx, preset.ID)
	require.NoError(t, err)
	assert.Empty(t, members)

	deleted, err := repo.Delete(ctx, set.ID)
	require.NoError(t, err)
	assert.True(t, deleted)

	sets, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, sets, 1)
	assert.Equal(t, "Starter", sets[0].Name)
}

func TestEventRepository_SetsAndClaims(t *testing.T) {
	t.Parallel()
	testDB := testutil.SetupTestDatabase(t)

	repo := NewEventRepositoryScoped(testDB.DB, testGuildID)
	ctx := context.Background()

	event := testutil.CreateTestEvent("Daily", 50, 1, 2)
	require.NoError(t, repo.Create(ctx, event))

	noSets := testutil.CreateTestEvent("Weekly", 200)
	require.NoError(t, repo.Create(ctx, noSets))

	got, err := repo.Get(ctx, "Weekly")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Empty(t, got.SetIDs)

	require.NoError(t, repo.RemoveSetFromAll(ctx, 1))
	got, err = repo.Get(ctx, "Daily")
	require.NoError(t, err)
	assert.Equal(t, []int64{2}, got.SetIDs)

	claim := &entities.EventClaim{UserID: 7, EventName: "Daily", LastClaim: event.CreatedAt}
	require.NoError(t, repo.UpsertClaim(ctx, claim))

	stored, err := repo.GetClaim(ctx, 7, "Daily")
	require.NoError(t, err)
	require.NotNil(t, stored)
	assert.True(t, stored.LastClaim.Equal(event.CreatedAt))

	deleted, err := repo.Delete(ctx, "Daily")
	require.NoError(t, err)
	assert.True(t, deleted)

	stored, err = repo.GetClaim(ctx, 7, "Daily")
	require.NoError(t, err)
	assert.Nil(t, stored)
}
