package entities

// TransactionType represents the type of balance change
type TransactionType string

const (
	// Transfers between users
	TransactionTypeTransferIn  TransactionType = "transfer_in"
	TransactionTypeTransferOut TransactionType = "transfer_out"

	// Card economy
	TransactionTypeBurn        TransactionType = "burn"
	TransactionTypeMarketBuy   TransactionType = "market_buy"
	TransactionTypeMarketSale  TransactionType = "market_sale"
	TransactionTypeEventReward TransactionType = "event_reward"

	// Lottery
	TransactionTypeLottoTicket TransactionType = "lotto_ticket"
	TransactionTypeLottoWin    TransactionType = "lotto_win"
	TransactionTypeLottoHouse  TransactionType = "lotto_house"

	// System
	TransactionTypeMessageReward TransactionType = "message_reward"
	TransactionTypeVoiceReward   TransactionType = "voice_reward"
	TransactionTypeAdminAdjust   TransactionType = "admin_adjust"
)

func (tt TransactionType) String() string {
	return string(tt)
}
