package entities

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"
)

// CardSet groups cards that can be awarded together by events
type CardSet struct {
	ID          int64     `db:"id"`
	GuildID     int64     `db:"guild_id"`
	Name        string    `db:"name"`
	Description string    `db:"description"`
	IsPreset    bool      `db:"is_preset"`
	CreatedAt   time.Time `db:"created_at"`
}

// CardSetDetail is a set together with its member cards
type CardSetDetail struct {
	Set   *CardSet
	Cards []*Card
}

// CardSetPatch holds the optional fields of a set edit
type CardSetPatch struct {
	Name        *string
	Description *string
}

// IsEmpty reports whether the patch changes nothing
func (p CardSetPatch) IsEmpty() bool {
	return p.Name == nil && p.Description == nil
}

// PresetSet is the import and export format for a card set
type PresetSet struct {
	Name        string         `json:"name"`
	Description string         `json:"description"`
	Rarities    []PresetRarity `json:"rarities"`
	Cards       []PresetCard   `json:"cards"`
}

// DecodePreset reads a preset set from JSON. Unknown fields are rejected.
func DecodePreset(r io.Reader) (*PresetSet, error) {
	dec := json.NewDecoder(r)
	dec.DisallowUnknownFields()

	var preset PresetSet
	if err := dec.Decode(&preset); err != nil {
		return nil, fmt.Errorf("invalid preset JSON: %w", err)
	}
	return &preset, nil
}

// EncodePreset writes a preset as indented JSON that DecodePreset accepts
func EncodePreset(w io.Writer, preset *PresetSet) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(preset); err != nil {
		return fmt.Errorf("failed to encode preset: %w", err)
	}
	return nil
}

// Validate checks a preset before import
func (p *PresetSet) Validate() error {
	if strings.TrimSpace(p.Name) == "" {
		return errors.New("preset set name cannot be empty")
	}
	if len(p.Cards) == 0 {
		return errors.New("preset contains no cards")
	}
	for i := range p.Cards {
		if strings.TrimSpace(p.Cards[i].Name) == "" {
			return fmt.Errorf("preset card %d has no name", i+1)
		}
		if strings.TrimSpace(p.Cards[i].Rarity) == "" {
			return fmt.Errorf("preset card %q has no rarity", p.Cards[i].Name)
		}
	}
	return nil
}

// PresetRarity is a rarity definition inside a preset
type PresetRarity struct {
	Name      string  `json:"name"`
	Weight    float64 `json:"weight"`
	BurnValue *int64  `json:"burn_value,omitempty"`
}

// PresetCard is a card definition inside a preset
type PresetCard struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Rarity      string `json:"rarity"`
	ImageURL    string `json:"image_url"`
}
