package services

import (
	"sync"
	"time"

	"cardbot/domain"
	"cardbot/domain/entities"

	"github.com/google/uuid"
)

// DefaultTradeOfferTTL is how long a trade offer stays open
const DefaultTradeOfferTTL = 12 * time.Hour

// TradeOfferBook holds pending trade offers in memory. Removing an offer is atomic,
// so each offer is resolved at most once.
type TradeOfferBook struct {
	mu     sync.Mutex
	offers map[uuid.UUID]*entities.TradeOffer
	ttl    time.Duration
	now    func() time.Time
}

// NewTradeOfferBook creates an empty book
func NewTradeOfferBook(ttl time.Duration) *TradeOfferBook {
	return NewTradeOfferBookWithClock(ttl, time.Now)
}

// NewTradeOfferBookWithClock creates an empty book that reads time from now
func NewTradeOfferBookWithClock(ttl time.Duration, now func() time.Time) *TradeOfferBook {
	if ttl <= 0 {
		ttl = DefaultTradeOfferTTL
	}
	return &TradeOfferBook{
		offers: make(map[uuid.UUID]*entities.TradeOffer),
		ttl:    ttl,
		now:    now,
	}
}

// Put stores an offer, assigning its id and expiry
func (b *TradeOfferBook) Put(offer *entities.TradeOffer) *entities.TradeOffer {
	b.mu.Lock()
	defer b.mu.Unlock()

	if offer.ID == uuid.Nil {
		offer.ID = uuid.New()
	}
	offer.CreatedAt = b.now()
	offer.ExpiresAt = offer.CreatedAt.Add(b.ttl)
	b.offers[offer.ID] = offer

	cp := *offer
	return &cp
}

// Get returns a copy of a pending offer
func (b *TradeOfferBook) Get(id uuid.UUID) (*entities.TradeOffer, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()

	offer, ok := b.offers[id]
	if !ok || offer.IsExpired(b.now()) {
		return nil, false
	}
	cp := *offer
	return &cp, true
}

// Take removes and returns an offer if authorize accepts it. A rejected offer stays in the book.
func (b *TradeOfferBook) Take(id uuid.UUID, authorize func(*entities.TradeOffer) error) (*entities.TradeOffer, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	offer, ok := b.offers[id]
	if !ok {
		return nil, domain.Unavailable("This trade offer has expired or was already resolved.")
	}
	if offer.IsExpired(b.now()) {
		delete(b.offers, id)
		return nil, domain.Unavailable("This trade offer has expired.")
	}
	if authorize != nil {
		if err := authorize(offer); err != nil {
			return nil, err
		}
	}

	delete(b.offers, id)
	return offer, nil
}

// SetMessage remembers where the offer was posted so expiry can edit it
func (b *TradeOfferBook) SetMessage(id uuid.UUID, channelID, messageID string) {
	b.mu.Lock()
	defer b.mu.Unlock()

	if offer, ok := b.offers[id]; ok {
		offer.ChannelID = channelID
		offer.MessageID = messageID
	}
}

// Expire removes and returns every expired offer
func (b *TradeOfferBook) Expire() []*entities.TradeOffer {
	b.mu.Lock()
	defer b.mu.Unlock()

	now := b.now()
	var expired []*entities.TradeOffer
	for id, offer := range b.offers {
		if offer.IsExpired(now) {
			expired = append(expired, offer)
			delete(b.offers, id)
		}
	}
	return expired
}

// Len returns the number of offers held, expired or not
func (b *TradeOfferBook) Len() int {
	b.mu.Lock()
	defer b.mu.Unlock()
	return len(b.offers)
}
