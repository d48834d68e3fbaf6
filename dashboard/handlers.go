package dashboard

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strconv"

	"cardbot/application"
	"cardbot/domain/entities"
)

const (
	maxBodyBytes     = 64 << 10
	maxListingsLimit = 100
	defaultListings  = 25
)

type sellRequest struct {
	UserID int64  `json:"user_id,string"`
	CardID string `json:"card_id"`
	Price  int64  `json:"price"`
}

type buyRequest struct {
	UserID int64 `json:"user_id,string"`
}

type burnRequest struct {
	CardID string `json:"card_id"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleBalance(w http.ResponseWriter, r *http.Request) {
	guildID, userID, ok := guildAndUser(w, r)
	if !ok {
		return
	}

	var balance int64
	err := s.runner.Run(r.Context(), guildID, func(svc *application.Services) error {
		var err error
		balance, err = svc.Ledger.Balance(r.Context(), userID)
		return err
	})
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, balanceResponse{GuildID: guildID, UserID: userID, Balance: balance})
}

func (s *Server) handleInventory(w http.ResponseWriter, r *http.Request) {
	guildID, userID, ok := guildAndUser(w, r)
	if !ok {
		return
	}

	var items []*entities.InventoryCard
	err := s.runner.Run(r.Context(), guildID, func(svc *application.Services) error {
		var err error
		items, err = svc.Ledger.Inventory(r.Context(), userID)
		return err
	})
	if err != nil {
		writeError(w, r, err)
		return
	}

	resp := inventoryResponse{
		UserID:     userID,
		TotalCards: entities.TotalCards(items),
		Items:      make([]inventoryItemResponse, 0, len(items)),
	}
	for _, item := range items {
		resp.Items = append(resp.Items, inventoryItemResponse{Card: newCardResponse(item.Card), Quantity: item.Quantity})
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleBurn(w http.ResponseWriter, r *http.Request) {
	guildID, userID, ok := guildAndUser(w, r)
	if !ok {
		return
	}
	var req burnRequest
	if !decodeBody(w, r, &req) {
		return
	}

	var result *entities.BurnResult
	err := s.runner.Run(r.Context(), guildID, func(svc *application.Services) error {
		var err error
		result, err = svc.Burn.Burn(r.Context(), userID, req.CardID)
		return err
	})
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, burnResponse{
		Card:         newCardResponse(result.Card),
		PointsEarned: result.PointsEarned,
		NewBalance:   result.NewBalance,
		Remaining:    result.Remaining,
	})
}

func (s *Server) handleListings(w http.ResponseWriter, r *http.Request) {
	guildID, ok := pathInt(w, r, "guild")
	if !ok {
		return
	}

	limit := defaultListings
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n <= 0 {
			writeErrorMessage(w, http.StatusBadRequest, "limit must be a positive integer")
			return
		}
		limit = min(n, maxListingsLimit)
	}

	var sellerID int64
	if raw := r.URL.Query().Get("seller_id"); raw != "" {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			writeErrorMessage(w, http.StatusBadRequest, "seller_id must be an integer")
			return
		}
		sellerID = id
	}

	var listings []*entities.SaleListing
	err := s.runner.Run(r.Context(), guildID, func(svc *application.Services) error {
		var err error
		if sellerID != 0 {
			listings, err = svc.Market.ListingsBySeller(r.Context(), sellerID)
		} else {
			listings, err = svc.Market.Listings(r.Context(), limit)
		}
		return err
	})
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, newListingsResponse(listings))
}

func (s *Server) handleSell(w http.ResponseWriter, r *http.Request) {
	guildID, ok := pathInt(w, r, "guild")
	if !ok {
		return
	}
	var req sellRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if req.UserID == 0 {
		writeErrorMessage(w, http.StatusBadRequest, "user_id is required")
		return
	}

	var listing *entities.SaleListing
	err := s.runner.Run(r.Context(), guildID, func(svc *application.Services) error {
		var err error
		listing, err = svc.Market.Sell(r.Context(), req.UserID, req.CardID, req.Price)
		return err
	})
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, newListingResponse(listing))
}

func (s *Server) handleBuy(w http.ResponseWriter, r *http.Request) {
	guildID, ok := pathInt(w, r, "guild")
	if !ok {
		return
	}
	listingID, ok := pathInt(w, r, "id")
	if !ok {
		return
	}
	var req buyRequest
	if !decodeBody(w, r, &req) {
		return
	}
	if req.UserID == 0 {
		writeErrorMessage(w, http.StatusBadRequest, "user_id is required")
		return
	}

	var result *entities.PurchaseResult
	err := s.runner.Run(r.Context(), guildID, func(svc *application.Services) error {
		var err error
		result, err = svc.Market.Buy(r.Context(), req.UserID, listingID)
		return err
	})
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, purchaseResponse{
		Listing:       newListingResponse(result.Listing),
		BuyerBalance:  result.BuyerBalance,
		SellerBalance: result.SellerBalance,
	})
}

func (s *Server) handleRemoveSale(w http.ResponseWriter, r *http.Request) {
	guildID, ok := pathInt(w, r, "guild")
	if !ok {
		return
	}
	listingID, ok := pathInt(w, r, "id")
	if !ok {
		return
	}
	userID, err := strconv.ParseInt(r.URL.Query().Get("user_id"), 10, 64)
	if err != nil {
		writeErrorMessage(w, http.StatusBadRequest, "user_id query parameter is required")
		return
	}

	var listing *entities.SaleListing
	err = s.runner.Run(r.Context(), guildID, func(svc *application.Services) error {
		var err error
		listing, err = svc.Market.RemoveSale(r.Context(), userID, listingID)
		return err
	})
	if err != nil {
		writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, newListingResponse(listing))
}

func pathInt(w http.ResponseWriter, r *http.Request, name string) (int64, bool) {
	v, err := strconv.ParseInt(r.PathValue(name), 10, 64)
	if err != nil {
		writeErrorMessage(w, http.StatusBadRequest, fmt.Sprintf("%s must be an integer", name))
		return 0, false
	}
	return v, true
}

func guildAndUser(w http.ResponseWriter, r *http.Request) (guildID, userID int64, ok bool) {
	if guildID, ok = pathInt(w, r, "guild"); !ok {
		return 0, 0, false
	}
	if userID, ok = pathInt(w, r, "user"); !ok {
		return 0, 0, false
	}
	return guildID, userID, true
}

func decodeBody(w http.ResponseWriter, r *http.Request, dst any) bool {
	dec := json.NewDecoder(io.LimitReader(r.Body, maxBodyBytes))
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		writeErrorMessage(w, http.StatusBadRequest, "invalid JSON body: "+err.Error())
		return false
	}
	return true
}
