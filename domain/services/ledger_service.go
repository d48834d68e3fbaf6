package services

import (
	"context"
	"errors"
	"fmt"

	"cardbot/domain"
	"cardbot/domain/entities"
	"cardbot/domain/interfaces"
	"cardbot/domain/utils"
	"cardbot/events"

	log "github.com/sirupsen/logrus"
)

const defaultLeaderboardSize = 10

// ledgerService is the only writer of balances and card quantities
type ledgerService struct {
	guildID            int64
	accountRepo        interfaces.AccountRepository
	inventoryRepo      interfaces.InventoryRepository
	balanceHistoryRepo interfaces.BalanceHistoryRepository
	cardRepo           interfaces.CardRepository
	eventPublisher     interfaces.EventPublisher
}

// NewLedgerService creates a new ledger service for one guild
func NewLedgerService(
	guildID int64,
	accountRepo interfaces.AccountRepository,
	inventoryRepo interfaces.InventoryRepository,
	balanceHistoryRepo interfaces.BalanceHistoryRepository,
	cardRepo interfaces.CardRepository,
	eventPublisher interfaces.EventPublisher,
) interfaces.LedgerService {
	return &ledgerService{
		guildID:            guildID,
		accountRepo:        accountRepo,
		inventoryRepo:      inventoryRepo,
		balanceHistoryRepo: balanceHistoryRepo,
		cardRepo:           cardRepo,
		eventPublisher:     eventPublisher,
	}
}

// Balance returns the user's balance, zero when they have no account yet
func (s *ledgerService) Balance(ctx context.Context, userID int64) (int64, error) {
	account, err := s.accountRepo.Get(ctx, userID)
	if err != nil {
		return 0, fmt.Errorf("failed to get account: %w", err)
	}
	if account == nil {
		return 0, nil
	}
	return account.Balance, nil
}

// Credit adds amount to the user's balance
func (s *ledgerService) Credit(ctx context.Context, userID int64, amount int64, txType entities.TransactionType, metadata map[string]any) (int64, error) {
	if amount <= 0 {
		return 0, domain.Invalid("Amount must be greater than 0.")
	}

	newBalance, err := s.accountRepo.Credit(ctx, userID, amount)
	if err != nil {
		return 0, fmt.Errorf("failed to credit balance: %w", err)
	}

	if err := s.record(ctx, userID, newBalance-amount, newBalance, amount, txType, metadata); err != nil {
		return 0, err
	}
	return newBalance, nil
}

// Debit subtracts amount from the user's balance in a single conditional update
func (s *ledgerService) Debit(ctx context.Context, userID int64, amount int64, txType entities.TransactionType, metadata map[string]any) (int64, error) {
	if amount <= 0 {
		return 0, domain.Invalid("Amount must be greater than 0.")
	}

	newBalance, ok, err := s.accountRepo.Debit(ctx, userID, amount)
	if err != nil {
		return 0, fmt.Errorf("failed to debit balance: %w", err)
	}
	if !ok {
		return 0, domain.Insufficient("Insufficient balance.")
	}

	if err := s.record(ctx, userID, newBalance+amount, newBalance, -amount, txType, metadata); err != nil {
		return 0, err
	}
	return newBalance, nil
}

func (s *ledgerService) record(ctx context.Context, userID, before, after, change int64, txType entities.TransactionType, metadata map[string]any) error {
	if metadata == nil {
		metadata = map[string]any{}
	}
	history := &entities.BalanceHistory{
		GuildID:             s.guildID,
		UserID:              userID,
		BalanceBefore:       before,
		BalanceAfter:        after,
		ChangeAmount:        change,
		TransactionType:     txType,
		TransactionMetadata: metadata,
	}
	if err := utils.RecordBalanceChange(ctx, s.balanceHistoryRepo, s.eventPublisher, history); err != nil {
		return err
	}
	metrics.recordLedgerTransaction(ctx, s.guildID, string(txType), change)
	return nil
}

// Transfer moves points from one user to another
func (s *ledgerService) Transfer(ctx context.Context, fromID, toID int64, amount int64) (*interfaces.TransferResult, error) {
	if fromID == toID {
		return nil, domain.Invalid("You cannot give points to yourself.")
	}
	if amount <= 0 {
		return nil, domain.Invalid("Amount must be greater than 0.")
	}

	fromBalance, err := s.Debit(ctx, fromID, amount, entities.TransactionTypeTransferOut, map[string]any{
		"transfer_to": toID,
	})
	if err != nil {
		if errors.Is(err, domain.ErrInsufficient) {
			return nil, domain.Insufficient("You do not have enough points to give %d.", amount)
		}
		return nil, err
	}

	toBalance, err := s.Credit(ctx, toID, amount, entities.TransactionTypeTransferIn, map[string]any{
		"transfer_from": fromID,
	})
	if err != nil {
		return nil, err
	}

	return &interfaces.TransferResult{
		FromBalance: fromBalance,
		ToBalance:   toBalance,
		Amount:      amount,
	}, nil
}

// SetBalance moves the balance to target through a credit or debit so history stays complete
func (s *ledgerService) SetBalance(ctx context.Context, userID int64, target int64) (int64, error) {
	if target < 0 {
		return 0, domain.Invalid("Balance cannot be negative.")
	}

	current, err := s.Balance(ctx, userID)
	if err != nil {
		return 0, err
	}

	diff := target - current
	metadata := map[string]any{"target": target}
	switch {
	case diff > 0:
		return s.Credit(ctx, userID, diff, entities.TransactionTypeAdminAdjust, metadata)
	case diff < 0:
		return s.Debit(ctx, userID, -diff, entities.TransactionTypeAdminAdjust, metadata)
	default:
		return current, nil
	}
}

// AddCard gives n copies of a card to the user
func (s *ledgerService) AddCard(ctx context.Context, userID int64, cardID string, n int64) (int64, error) {
	if n < 1 {
		return 0, domain.Invalid("Quantity must be at least 1.")
	}

	quantity, err := s.inventoryRepo.Add(ctx, userID, cardID, n)
	if err != nil {
		return 0, fmt.Errorf("failed to add card to inventory: %w", err)
	}

	s.publishInventoryChange(userID, cardID, n, quantity)
	return quantity, nil
}

// RemoveCard takes n copies of a card from the user if they hold that many
func (s *ledgerService) RemoveCard(ctx context.Context, userID int64, cardID string, n int64) (int64, error) {
	if n < 1 {
		return 0, domain.Invalid("Quantity must be at least 1.")
	}

	remaining, ok, err := s.inventoryRepo.Remove(ctx, userID, cardID, n)
	if err != nil {
		return 0, fmt.Errorf("failed to remove card from inventory: %w", err)
	}
	if !ok {
		return 0, domain.Insufficient("Insufficient quantity.")
	}

	s.publishInventoryChange(userID, cardID, -n, remaining)
	return remaining, nil
}

func (s *ledgerService) publishInventoryChange(userID int64, cardID string, delta, quantity int64) {
	event := events.InventoryChangeEvent{
		UserID:      userID,
		GuildID:     s.guildID,
		CardID:      cardID,
		Delta:       delta,
		NewQuantity: quantity,
	}
	if err := s.eventPublisher.Publish(event); err != nil {
		log.WithError(err).Error("Failed to publish inventory change event")
	}
}

// Quantity returns how many copies of a card the user holds
func (s *ledgerService) Quantity(ctx context.Context, userID int64, cardID string) (int64, error) {
	quantity, err := s.inventoryRepo.GetQuantity(ctx, userID, cardID)
	if err != nil {
		return 0, fmt.Errorf("failed to get card quantity: %w", err)
	}
	return quantity, nil
}

// Inventory lists the user's holdings
func (s *ledgerService) Inventory(ctx context.Context, userID int64) ([]*entities.InventoryCard, error) {
	items, err := s.inventoryRepo.ListByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to list inventory: %w", err)
	}
	return items, nil
}

// GiftCard moves one copy of a card between users
func (s *ledgerService) GiftCard(ctx context.Context, fromID, toID int64, cardRef string) (*entities.Card, error) {
	if fromID == toID {
		return nil, domain.Invalid("You cannot gift a card to yourself.")
	}

	card, err := findCard(ctx, s.cardRepo, cardRef)
	if err != nil {
		return nil, err
	}

	if _, err := s.RemoveCard(ctx, fromID, card.CardID, 1); err != nil {
		if errors.Is(err, domain.ErrInsufficient) {
			return nil, domain.Insufficient("You do not own any copies of **%s**.", card.Name)
		}
		return nil, err
	}
	if _, err := s.AddCard(ctx, toID, card.CardID, 1); err != nil {
		return nil, err
	}

	return card, nil
}

// Leaderboard returns the richest users in the guild
func (s *ledgerService) Leaderboard(ctx context.Context, limit int) ([]*entities.LeaderboardEntry, error) {
	if limit <= 0 {
		limit = defaultLeaderboardSize
	}
	entries, err := s.accountRepo.TopBalances(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to get leaderboard: %w", err)
	}
	return entries, nil
}

// findCard resolves a card by id or name
func findCard(ctx context.Context, cardRepo interfaces.CardRepository, ref string) (*entities.Card, error) {
	card, err := cardRepo.Find(ctx, ref)
	if err != nil {
		return nil, fmt.Errorf("failed to find card: %w", err)
	}
	if card == nil {
		return nil, domain.NotFound("Card `%s` not found.", ref)
	}
	return card, nil
}
