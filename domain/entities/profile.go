package entities

import (
	"fmt"
	"time"
)

const (
	MaxProfileBioLength       = 300
	MaxProfileSearchingLength = 100
)

// Profile is the self-description a user shows to the guild
type Profile struct {
	GuildID         int64     `db:"guild_id"`
	UserID          int64     `db:"user_id"`
	Bio             string    `db:"bio"`
	FavouriteCardID *string   `db:"favourite_card_id"`
	SearchingFor    string    `db:"searching_for"`
	UpdatedAt       time.Time `db:"updated_at"`
}

// Validate checks the free-text field lengths
func (p *Profile) Validate() error {
	if len([]rune(p.Bio)) > MaxProfileBioLength {
		return fmt.Errorf("bio cannot exceed %d characters", MaxProfileBioLength)
	}
	if len([]rune(p.SearchingFor)) > MaxProfileSearchingLength {
		return fmt.Errorf("searching for cannot exceed %d characters", MaxProfileSearchingLength)
	}
	return nil
}

// ProfilePatch holds the optional fields of a profile update. An empty
// FavouriteCard clears the favourite.
type ProfilePatch struct {
	Bio           *string
	FavouriteCard *string
	SearchingFor  *string
}

// IsEmpty reports whether the patch changes nothing
func (p ProfilePatch) IsEmpty() bool {
	return p.Bio == nil && p.FavouriteCard == nil && p.SearchingFor == nil
}

// ProfileView is a profile with the figures shown next to it
type ProfileView struct {
	Profile       *Profile
	FavouriteCard *Card
	DistinctCards int
	TotalCards    int64
}
