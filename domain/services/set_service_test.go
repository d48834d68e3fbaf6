package services

import (
	"context"
	"testing"

	"cardbot/domain"
	"cardbot/domain/entities"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newTestSetService(m *TestMocks) *setService {
	return NewSetService(TestGuildID, m.CardRepo, m.SetRepo, m.EventRepo, m.RarityRepo).(*setService)
}

func TestSetService_Create(t *testing.T) {
	t.Parallel()

	t.Run("duplicate name", func(t *testing.T) {
		mocks := NewTestMocks()
		mocks.SetRepo.On("GetByName", mock.Anything, "base").Return(&entities.CardSet{ID: 1, Name: "Base"}, nil)

		_, err := newTestSetService(mocks).Create(context.Background(), "base", "")

		require.ErrorIs(t, err, domain.ErrInvalid)
		msg, _ := domain.UserMessage(err)
		assert.Equal(t, "Set `Base` already exists.", msg)
	})

	t.Run("creates a user set", func(t *testing.T) {
		mocks := NewTestMocks()
		mocks.SetRepo.On("GetByName", mock.Anything, "Base").Return(nil, nil)
		mocks.SetRepo.On("Create", mock.Anything, mock.MatchedBy(func(s *entities.CardSet) bool {
			return s.Name == "Base" && !s.IsPreset && s.GuildID == TestGuildID
		})).Return(nil)

		set, err := newTestSetService(mocks).Create(context.Background(), "Base", " starter cards ")

		require.NoError(t, err)
		assert.Equal(t, "starter cards", set.Description)
		mocks.AssertAllExpectations(t)
	})
}

func TestSetService_AddCard(t *testing.T) {
	t.Parallel()

	base := &entities.CardSet{ID: TestSetID, Name: "Base"}
	dragon := testCard(TestCardID, "Dragon", "Rare")

	tests := []struct {
		name     string
		added    bool
		wantKind error
	}{
		{name: "adds a new member", added: true},
		{name: "already a member", added: false, wantKind: domain.ErrInvalid},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			mocks := NewTestMocks()
			mocks.SetRepo.On("GetByName", mock.Anything, "Base").Return(base, nil)
			mocks.ExpectCardLookup("Dragon", dragon)
			mocks.SetRepo.On("AddCard", mock.Anything, TestSetID, TestCardID).Return(tt.added, nil)

			card, err := newTestSetService(mocks).AddCard(context.Background(), "Base", "Dragon")

			if tt.wantKind != nil {
				assert.ErrorIs(t, err, tt.wantKind)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, dragon, card)
		})
	}
}

func TestSetService_Delete_DetachesFromEvents(t *testing.T) {
	mocks := NewTestMocks()
	mocks.SetRepo.On("GetByName", mock.Anything, "Base").Return(&entities.CardSet{ID: TestSetID, Name: "Base"}, nil)
	mocks.EventRepo.On("RemoveSetFromAll", mock.Anything, TestSetID).Return(nil)
	mocks.SetRepo.On("Delete", mock.Anything, TestSetID).Return(true, nil)

	err := newTestSetService(mocks).Delete(context.Background(), "Base")

	require.NoError(t, err)
	mocks.AssertAllExpectations(t)
}

func TestSetService_ImportPreset(t *testing.T) {
	t.Parallel()

	preset := func() *entities.PresetSet {
		return &entities.PresetSet{
			Name:        "Starter",
			Description: "First cards",
			Rarities: []entities.PresetRarity{
				{Name: "Shiny", Weight: 0.1, BurnValue: int64Ptr(75)},
			},
			Cards: []entities.PresetCard{
				{Name: "Slime", Rarity: "common"},
				{Name: "Spark", Rarity: "Shiny"},
				{Name: "Blob", Rarity: "Odd"},
				{Name: "Goo", Rarity: "odd"},
			},
		}
	}

	t.Run("creates set, missing rarities and cards", func(t *testing.T) {
		mocks := NewTestMocks()
		mocks.SetRepo.On("GetByName", mock.Anything, "Starter").Return(nil, nil)
		mocks.SetRepo.On("Create", mock.Anything, mock.MatchedBy(func(s *entities.CardSet) bool {
			return s.IsPreset
		})).Run(func(args mock.Arguments) {
			args.Get(1).(*entities.CardSet).ID = TestSetID
		}).Return(nil)

		mocks.RarityRepo.On("Get", mock.Anything, "common").Return(&entities.Rarity{Name: "Common", Weight: 1}, nil).Once()
		mocks.RarityRepo.On("Get", mock.Anything, "Shiny").Return(nil, nil).Once()
		mocks.RarityRepo.On("Get", mock.Anything, "Odd").Return(nil, nil).Once()
		mocks.RarityRepo.On("Upsert", mock.Anything, mock.MatchedBy(func(r *entities.Rarity) bool {
			return r.Name == "Shiny" && r.Weight == 0.1 && *r.BurnValue == 75
		})).Return(nil).Once()
		mocks.RarityRepo.On("Upsert", mock.Anything, mock.MatchedBy(func(r *entities.Rarity) bool {
			return r.Name == "Odd" && r.Weight == importedRarityWeight && *r.BurnValue == importedRarityBurnValue
		})).Return(nil).Once()

		mocks.CardRepo.On("GetByName", mock.Anything, mock.Anything).Return(nil, nil)
		next := 0
		mocks.CardRepo.On("Create", mock.Anything, mock.Anything).Run(func(args mock.Arguments) {
			next++
			args.Get(1).(*entities.Card).CardID = entities.FormatCardID(int64(next))
		}).Return(nil)
		mocks.SetRepo.On("AddCard", mock.Anything, TestSetID, mock.Anything).Return(true, nil)

		detail, err := newTestSetService(mocks).ImportPreset(context.Background(), preset(), true)

		require.NoError(t, err)
		require.Len(t, detail.Cards, 4)
		assert.Equal(t, "Common", detail.Cards[0].Rarity)
		assert.Equal(t, "Odd", detail.Cards[3].Rarity)
		assert.True(t, detail.Set.IsPreset)
		mocks.SetRepo.AssertNumberOfCalls(t, "AddCard", 4)
		mocks.AssertAllExpectations(t)
	})

	t.Run("already loaded", func(t *testing.T) {
		mocks := NewTestMocks()
		mocks.SetRepo.On("GetByName", mock.Anything, "Starter").Return(&entities.CardSet{Name: "Starter"}, nil)

		_, err := newTestSetService(mocks).ImportPreset(context.Background(), preset(), true)

		assert.ErrorIs(t, err, domain.ErrInvalid)
		mocks.CardRepo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	})

	t.Run("preset without cards", func(t *testing.T) {
		mocks := NewTestMocks()
		_, err := newTestSetService(mocks).ImportPreset(context.Background(), &entities.PresetSet{Name: "Empty"}, false)
		assert.ErrorIs(t, err, domain.ErrInvalid)
	})
}

func TestSetService_Edit(t *testing.T) {
	t.Parallel()

	t.Run("nothing to change", func(t *testing.T) {
		mocks := NewTestMocks()
		_, err := newTestSetService(mocks).Edit(context.Background(), "Base", entities.CardSetPatch{})
		assert.ErrorIs(t, err, domain.ErrInvalid)
	})

	t.Run("renames and describes", func(t *testing.T) {
		mocks := NewTestMocks()
		mocks.SetRepo.On("GetByName", mock.Anything, "Base").Return(&entities.CardSet{ID: TestSetID, Name: "Base"}, nil)
		mocks.SetRepo.On("GetByName", mock.Anything, "Core").Return(nil, nil)
		mocks.SetRepo.On("Update", mock.Anything, mock.MatchedBy(func(s *entities.CardSet) bool {
			return s.ID == TestSetID && s.Name == "Core" && s.Description == "the first cards"
		})).Return(nil)
		name, description := " Core ", "the first cards"

		set, err := newTestSetService(mocks).Edit(context.Background(), "Base", entities.CardSetPatch{Name: &name, Description: &description})

		require.NoError(t, err)
		assert.Equal(t, "Core", set.Name)
		mocks.AssertAllExpectations(t)
	})

	t.Run("changing only the case of the name", func(t *testing.T) {
		mocks := NewTestMocks()
		mocks.SetRepo.On("GetByName", mock.Anything, "Base").Return(&entities.CardSet{ID: TestSetID, Name: "Base"}, nil).Once()
		mocks.SetRepo.On("Update", mock.Anything, mock.Anything).Return(nil)
		name := "BASE"

		set, err := newTestSetService(mocks).Edit(context.Background(), "Base", entities.CardSetPatch{Name: &name})

		require.NoError(t, err)
		assert.Equal(t, "BASE", set.Name)
		mocks.AssertAllExpectations(t)
	})

	t.Run("name taken by another set", func(t *testing.T) {
		mocks := NewTestMocks()
		mocks.SetRepo.On("GetByName", mock.Anything, "Base").Return(&entities.CardSet{ID: TestSetID, Name: "Base"}, nil)
		mocks.SetRepo.On("GetByName", mock.Anything, "Core").Return(&entities.CardSet{ID: TestSetID + 1, Name: "Core"}, nil)
		name := "Core"

		_, err := newTestSetService(mocks).Edit(context.Background(), "Base", entities.CardSetPatch{Name: &name})

		require.ErrorIs(t, err, domain.ErrInvalid)
		msg, _ := domain.UserMessage(err)
		assert.Equal(t, "Set `Core` already exists.", msg)
		mocks.SetRepo.AssertNotCalled(t, "Update", mock.Anything, mock.Anything)
	})
}

func TestSetService_Unload(t *testing.T) {
	t.Parallel()

	t.Run("hand made sets are refused", func(t *testing.T) {
		mocks := NewTestMocks()
		mocks.SetRepo.On("GetByName", mock.Anything, "Base").Return(&entities.CardSet{ID: TestSetID, Name: "Base"}, nil)

		_, err := newTestSetService(mocks).Unload(context.Background(), "Base")

		assert.ErrorIs(t, err, domain.ErrInvalid)
		mocks.SetRepo.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
	})

	t.Run("removes a preset and keeps its cards", func(t *testing.T) {
		mocks := NewTestMocks()
		mocks.SetRepo.On("GetByName", mock.Anything, "Starter").Return(&entities.CardSet{ID: TestSetID, Name: "Starter", IsPreset: true}, nil)
		mocks.EventRepo.On("RemoveSetFromAll", mock.Anything, TestSetID).Return(nil)
		mocks.SetRepo.On("Delete", mock.Anything, TestSetID).Return(true, nil)

		set, err := newTestSetService(mocks).Unload(context.Background(), "Starter")

		require.NoError(t, err)
		assert.Equal(t, "Starter", set.Name)
		mocks.CardRepo.AssertNotCalled(t, "Delete", mock.Anything, mock.Anything)
		mocks.AssertAllExpectations(t)
	})
}

func TestSetService_Export(t *testing.T) {
	t.Parallel()

	t.Run("presets are not exportable", func(t *testing.T) {
		mocks := NewTestMocks()
		mocks.SetRepo.On("GetByName", mock.Anything, "Starter").Return(&entities.CardSet{ID: TestSetID, Name: "Starter", IsPreset: true}, nil)

		_, err := newTestSetService(mocks).Export(context.Background(), "Starter")

		require.ErrorIs(t, err, domain.ErrInvalid)
		msg, _ := domain.UserMessage(err)
		assert.Equal(t, "Preset sets cannot be exported.", msg)
		mocks.SetRepo.AssertNotCalled(t, "ListCards", mock.Anything, mock.Anything)
	})

	t.Run("lists cards and the rarities they use", func(t *testing.T) {
		burn := int64(40)
		mocks := NewTestMocks()
		mocks.SetRepo.On("GetByName", mock.Anything, "Base").Return(&entities.CardSet{ID: TestSetID, Name: "Base", Description: "core"}, nil)
		mocks.SetRepo.On("ListCards", mock.Anything, TestSetID).Return([]*entities.Card{
			testCard("00000001", "Dragon", "Rare"),
			testCard("00000002", "Wyvern", "Rare"),
			testCard("00000003", "Slime", "Mystery"),
		}, nil)
		mocks.RarityRepo.On("Get", mock.Anything, "Rare").Return(&entities.Rarity{Name: "Rare", Weight: 0.2, BurnValue: &burn}, nil).Once()
		mocks.RarityRepo.On("Get", mock.Anything, "Mystery").Return(nil, nil).Once()

		preset, err := newTestSetService(mocks).Export(context.Background(), "Base")

		require.NoError(t, err)
		assert.Equal(t, "Base", preset.Name)
		assert.Equal(t, "core", preset.Description)
		require.Len(t, preset.Cards, 3)
		assert.Equal(t, "Slime", preset.Cards[2].Name)
		require.Len(t, preset.Rarities, 1)
		assert.Equal(t, entities.PresetRarity{Name: "Rare", Weight: 0.2, BurnValue: &burn}, preset.Rarities[0])
		require.NoError(t, preset.Validate())
		mocks.AssertAllExpectations(t)
	})
}
