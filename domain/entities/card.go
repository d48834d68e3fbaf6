package entities

import (
	"fmt"
	"strings"
	"time"
)

const (
	// MaxCardDescriptionLength is the longest description a card may carry
	MaxCardDescriptionLength = 180

	// CardIDWidth is the zero-padded width of a card id
	CardIDWidth = 8
)

// Card is a collectible defined by guild administrators
type Card struct {
	GuildID        int64     `db:"guild_id"`
	CardID         string    `db:"card_id"`
	Name           string    `db:"name"`
	Description    string    `db:"description"`
	Rarity         string    `db:"rarity"`
	ImageURL       string    `db:"image_url"`
	LocalImagePath string    `db:"local_image_path"`
	CreatedAt      time.Time `db:"created_at"`
	UpdatedAt      time.Time `db:"updated_at"`
}

// FormatCardID renders a sequence number as a card id, e.g. 7 -> "00000007"
func FormatCardID(seq int64) string {
	return fmt.Sprintf("%0*d", CardIDWidth, seq)
}

// Validate checks the fields an administrator controls
func (c *Card) Validate() error {
	if strings.TrimSpace(c.Name) == "" {
		return fmt.Errorf("card name cannot be empty")
	}
	if len([]rune(c.Description)) > MaxCardDescriptionLength {
		return fmt.Errorf("description cannot exceed %d characters", MaxCardDescriptionLength)
	}
	if strings.TrimSpace(c.Rarity) == "" {
		return fmt.Errorf("card rarity cannot be empty")
	}
	return nil
}

// CardPatch holds the optional fields of a card edit
type CardPatch struct {
	Name        *string
	Description *string
	Rarity      *string
	ImageURL    *string
}

// IsEmpty reports whether the patch changes nothing
func (p CardPatch) IsEmpty() bool {
	return p.Name == nil && p.Description == nil && p.Rarity == nil && p.ImageURL == nil
}

// Apply copies the set fields onto card
func (p CardPatch) Apply(card *Card) {
	if p.Name != nil {
		card.Name = strings.TrimSpace(*p.Name)
	}
	if p.Description != nil {
		card.Description = *p.Description
	}
	if p.Rarity != nil {
		card.Rarity = *p.Rarity
	}
	if p.ImageURL != nil {
		card.ImageURL = *p.ImageURL
		card.LocalImagePath = ""
	}
}
