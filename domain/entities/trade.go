package entities

import (
	"time"

	"github.com/google/uuid"
)

// TradeOffer is a pending one-for-one card swap. Offers live in memory only.
type TradeOffer struct {
	ID                uuid.UUID
	GuildID           int64
	InitiatorID       int64
	RecipientID       int64
	OfferedCardID     string
	OfferedCardName   string
	RequestedCardID   string
	RequestedCardName string
	ChannelID         string
	MessageID         string
	CreatedAt         time.Time
	ExpiresAt         time.Time
}

// IsExpired reports whether the offer has passed its expiry at now
func (o *TradeOffer) IsExpired(now time.Time) bool {
	return !now.Before(o.ExpiresAt)
}

// IsParticipant reports whether userID is either side of the trade
func (o *TradeOffer) IsParticipant(userID int64) bool {
	return userID == o.InitiatorID || userID == o.RecipientID
}

// TradeRecord is a settled trade
type TradeRecord struct {
	ID                int64     `db:"id"`
	GuildID           int64     `db:"guild_id"`
	InitiatorID       int64     `db:"initiator_id"`
	RecipientID       int64     `db:"recipient_id"`
	InitiatorCardID   string    `db:"initiator_card_id"`
	RecipientCardID   string    `db:"recipient_card_id"`
	InitiatorCardName string    `db:"initiator_card_name"`
	RecipientCardName string    `db:"recipient_card_name"`
	CreatedAt         time.Time `db:"created_at"`
}

// CounterpartyOf returns the other side of the trade from userID's view
func (r *TradeRecord) CounterpartyOf(userID int64) int64 {
	if userID == r.InitiatorID {
		return r.RecipientID
	}
	return r.InitiatorID
}
