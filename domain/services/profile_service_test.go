package services

import (
	"context"
	"errors"
	"strings"
	"testing"

	"cardbot/domain"
	"cardbot/domain/entities"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newProfileService(m *TestMocks) *profileService {
	return NewProfileService(TestGuildID, m.Ledger, m.ProfileRepo, m.CardRepo).(*profileService)
}

func strPtr(s string) *string { return &s }

func TestProfileService_Get(t *testing.T) {
	t.Parallel()

	t.Run("user without a profile", func(t *testing.T) {
		t.Parallel()

		mocks := NewTestMocks()
		mocks.ProfileRepo.On("Get", mock.Anything, TestUser1ID).Return(nil, nil)
		mocks.Ledger.On("Inventory", mock.Anything, TestUser1ID).Return([]*entities.InventoryCard{}, nil)

		view, err := newProfileService(mocks).Get(context.Background(), TestUser1ID)

		require.NoError(t, err)
		assert.Equal(t, TestUser1ID, view.Profile.UserID)
		assert.Empty(t, view.Profile.Bio)
		assert.Nil(t, view.FavouriteCard)
		assert.Zero(t, view.TotalCards)
		mocks.AssertAllExpectations(t)
	})

	t.Run("with favourite and holdings", func(t *testing.T) {
		t.Parallel()

		card := testCard(TestCardID, "Dragon", TestRarityName)
		mocks := NewTestMocks()
		mocks.ProfileRepo.On("Get", mock.Anything, TestUser1ID).Return(&entities.Profile{
			GuildID: TestGuildID, UserID: TestUser1ID, Bio: "hi", FavouriteCardID: strPtr(TestCardID),
		}, nil)
		mocks.CardRepo.On("GetByID", mock.Anything, TestCardID).Return(card, nil)
		mocks.Ledger.On("Inventory", mock.Anything, TestUser1ID).Return([]*entities.InventoryCard{
			{Card: card, Quantity: 3},
			{Card: testCard(TestOtherCard, "Wyrm", TestRarityName), Quantity: 2},
		}, nil)

		view, err := newProfileService(mocks).Get(context.Background(), TestUser1ID)

		require.NoError(t, err)
		assert.Equal(t, card, view.FavouriteCard)
		assert.Equal(t, 2, view.DistinctCards)
		assert.Equal(t, int64(5), view.TotalCards)
	})
}

func TestProfileService_Update(t *testing.T) {
	t.Parallel()

	t.Run("empty patch", func(t *testing.T) {
		t.Parallel()

		mocks := NewTestMocks()
		_, err := newProfileService(mocks).Update(context.Background(), TestUser1ID, entities.ProfilePatch{})
		assert.True(t, errors.Is(err, domain.ErrInvalid))
	})

	t.Run("sets favourite by name", func(t *testing.T) {
		t.Parallel()

		card := testCard(TestCardID, "Dragon", TestRarityName)
		mocks := NewTestMocks()
		mocks.ProfileRepo.On("Get", mock.Anything, TestUser1ID).Return(nil, nil)
		mocks.CardRepo.On("Find", mock.Anything, "Dragon").Return(card, nil)
		mocks.ProfileRepo.On("Upsert", mock.Anything, mock.MatchedBy(func(p *entities.Profile) bool {
			return p.FavouriteCardID != nil && *p.FavouriteCardID == TestCardID && p.Bio == "collector"
		})).Return(nil)
		mocks.CardRepo.On("GetByID", mock.Anything, TestCardID).Return(card, nil)
		mocks.Ledger.On("Inventory", mock.Anything, TestUser1ID).Return([]*entities.InventoryCard{}, nil)

		view, err := newProfileService(mocks).Update(context.Background(), TestUser1ID, entities.ProfilePatch{
			Bio:           strPtr("  collector "),
			FavouriteCard: strPtr("Dragon"),
		})

		require.NoError(t, err)
		assert.Equal(t, card, view.FavouriteCard)
		mocks.AssertAllExpectations(t)
	})

	t.Run("empty favourite clears it", func(t *testing.T) {
		t.Parallel()

		mocks := NewTestMocks()
		mocks.ProfileRepo.On("Get", mock.Anything, TestUser1ID).Return(&entities.Profile{
			GuildID: TestGuildID, UserID: TestUser1ID, FavouriteCardID: strPtr(TestCardID),
		}, nil)
		mocks.ProfileRepo.On("Upsert", mock.Anything, mock.MatchedBy(func(p *entities.Profile) bool {
			return p.FavouriteCardID == nil
		})).Return(nil)
		mocks.Ledger.On("Inventory", mock.Anything, TestUser1ID).Return([]*entities.InventoryCard{}, nil)

		view, err := newProfileService(mocks).Update(context.Background(), TestUser1ID, entities.ProfilePatch{
			FavouriteCard: strPtr(""),
		})

		require.NoError(t, err)
		assert.Nil(t, view.FavouriteCard)
		mocks.CardRepo.AssertNotCalled(t, "Find", mock.Anything, mock.Anything)
	})

	t.Run("unknown favourite", func(t *testing.T) {
		t.Parallel()

		mocks := NewTestMocks()
		mocks.ProfileRepo.On("Get", mock.Anything, TestUser1ID).Return(nil, nil)
		mocks.CardRepo.On("Find", mock.Anything, "Nope").Return(nil, nil)

		_, err := newProfileService(mocks).Update(context.Background(), TestUser1ID, entities.ProfilePatch{
			FavouriteCard: strPtr("Nope"),
		})

		assert.True(t, errors.Is(err, domain.ErrNotFound))
		mocks.ProfileRepo.AssertNotCalled(t, "Upsert", mock.Anything, mock.Anything)
	})

	t.Run("bio too long", func(t *testing.T) {
		t.Parallel()

		mocks := NewTestMocks()
		mocks.ProfileRepo.On("Get", mock.Anything, TestUser1ID).Return(nil, nil)

		_, err := newProfileService(mocks).Update(context.Background(), TestUser1ID, entities.ProfilePatch{
			Bio: strPtr(strings.Repeat("x", entities.MaxProfileBioLength+1)),
		})

		assert.True(t, errors.Is(err, domain.ErrInvalid))
		mocks.ProfileRepo.AssertNotCalled(t, "Upsert", mock.Anything, mock.Anything)
	})
}
