package common

import (
	"fmt"
	"strings"
	"time"

	"cardbot/domain/entities"
)

// FormatBalance formats a balance amount with thousand separators
func FormatBalance(balance int64) string {
	if balance < 0 {
		return "-" + FormatBalance(-balance)
	}
	str := fmt.Sprintf("%d", balance)

	n := len(str)
	if n <= 3 {
		return str
	}

	var result strings.Builder
	for i, digit := range str {
		if i > 0 && (n-i)%3 == 0 {
			result.WriteRune(',')
		}
		result.WriteRune(digit)
	}
	return result.String()
}

// FormatPoints renders an amount with its unit, e.g. "1,250 points"
func FormatPoints(amount int64) string {
	if amount == 1 || amount == -1 {
		return FormatBalance(amount) + " point"
	}
	return FormatBalance(amount) + " points"
}

// FormatCardLine renders a card as "`00000001` **Name** (Rarity)"
func FormatCardLine(card *entities.Card) string {
	return fmt.Sprintf("`%s` **%s** (%s)", card.CardID, card.Name, card.Rarity)
}

// FormatInventoryLine renders a holding with its quantity
func FormatInventoryLine(item *entities.InventoryCard) string {
	return fmt.Sprintf("%s x%d", FormatCardLine(item.Card), item.Quantity)
}

// FormatListingLine renders a marketplace listing
func FormatListingLine(listing *entities.SaleListing) string {
	name := listing.CardName
	if name == "" {
		name = listing.CardID
	}
	return fmt.Sprintf("#%d **%s** (%s) for %s by <@%d>",
		listing.ID, name, listing.CardRarity, FormatPoints(listing.Price), listing.UserID)
}

// FormatBurnValue renders a rarity's burn value, which may be unset
func FormatBurnValue(r *entities.Rarity) string {
	if r.BurnValue == nil {
		return "not burnable"
	}
	return FormatPoints(*r.BurnValue)
}

// FormatDiscordTimestamp formats a time as a Discord timestamp that displays in user's local timezone
// Format types: "t" = short time, "T" = long time, "d" = short date, "D" = long date,
// "f" = short date/time, "F" = long date/time, "R" = relative time
func FormatDiscordTimestamp(t time.Time, format string) string {
	return fmt.Sprintf("<t:%d:%s>", t.Unix(), format)
}

// JoinLines joins lines, falling back to empty when there are none
func JoinLines(lines []string, empty string) string {
	if len(lines) == 0 {
		return empty
	}
	return strings.Join(lines, "\n")
}

// Truncate shortens s to max runes with an ellipsis
func Truncate(s string, max int) string {
	r := []rune(s)
	if len(r) <= max {
		return s
	}
	if max <= 1 {
		return string(r[:max])
	}
	return string(r[:max-1]) + "…"
}
