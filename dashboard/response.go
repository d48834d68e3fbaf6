package dashboard

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"cardbot/domain"
	"cardbot/domain/entities"

	log "github.com/sirupsen/logrus"
)

type errorResponse struct {
	Error string `json:"error"`
}

type balanceResponse struct {
	GuildID int64 `json:"guild_id,string"`
	UserID  int64 `json:"user_id,string"`
	Balance int64 `json:"balance"`
}

type cardResponse struct {
	CardID      string `json:"card_id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	Rarity      string `json:"rarity"`
	ImageURL    string `json:"image_url,omitempty"`
}

type inventoryItemResponse struct {
	Card     cardResponse `json:"card"`
	Quantity int64        `json:"quantity"`
}

type inventoryResponse struct {
	UserID     int64                   `json:"user_id,string"`
	TotalCards int64                   `json:"total_cards"`
	Items      []inventoryItemResponse `json:"items"`
}

type listingResponse struct {
	ID         int64     `json:"id"`
	SellerID   int64     `json:"seller_id,string"`
	CardID     string    `json:"card_id"`
	CardName   string    `json:"card_name,omitempty"`
	CardRarity string    `json:"card_rarity,omitempty"`
	Price      int64     `json:"price"`
	CreatedAt  time.Time `json:"created_at"`
}

type purchaseResponse struct {
	Listing       listingResponse `json:"listing"`
	BuyerBalance  int64           `json:"buyer_balance"`
	SellerBalance int64           `json:"seller_balance"`
}

type burnResponse struct {
	Card         cardResponse `json:"card"`
	PointsEarned int64        `json:"points_earned"`
	NewBalance   int64        `json:"new_balance"`
	Remaining    int64        `json:"remaining"`
}

func newCardResponse(c *entities.Card) cardResponse {
	if c == nil {
		return cardResponse{}
	}
	return cardResponse{
		CardID:      c.CardID,
		Name:        c.Name,
		Description: c.Description,
		Rarity:      c.Rarity,
		ImageURL:    c.ImageURL,
	}
}

func newListingResponse(l *entities.SaleListing) listingResponse {
	return listingResponse{
		ID:         l.ID,
		SellerID:   l.UserID,
		CardID:     l.CardID,
		CardName:   l.CardName,
		CardRarity: l.CardRarity,
		Price:      l.Price,
		CreatedAt:  l.CreatedAt,
	}
}

func newListingsResponse(listings []*entities.SaleListing) []listingResponse {
	out := make([]listingResponse, 0, len(listings))
	for _, l := range listings {
		out = append(out, newListingResponse(l))
	}
	return out
}

// statusFor maps a ledger error kind to an HTTP status
func statusFor(err error) int {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, domain.ErrUnavailable):
		return http.StatusConflict
	case errors.Is(err, domain.ErrInsufficient), errors.Is(err, domain.ErrConfigMissing):
		return http.StatusUnprocessableEntity
	case errors.Is(err, domain.ErrInvalid):
		return http.StatusBadRequest
	case errors.Is(err, domain.ErrCooldown):
		return http.StatusTooManyRequests
	default:
		return http.StatusInternalServerError
	}
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		log.WithError(err).Error("Failed to write dashboard response")
	}
}

func writeErrorMessage(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, errorResponse{Error: message})
}

// writeError reports ledger rule failures with their message and hides everything else
func writeError(w http.ResponseWriter, r *http.Request, err error) {
	if msg, ok := domain.UserMessage(err); ok {
		writeErrorMessage(w, statusFor(err), msg)
		return
	}

	log.WithError(err).WithFields(log.Fields{
		"method": r.Method,
		"path":   r.URL.Path,
	}).Error("Dashboard request failed")
	writeErrorMessage(w, http.StatusInternalServerError, "internal server error")
}
