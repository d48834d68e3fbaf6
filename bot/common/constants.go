package common

// Discord color constants
const (
	ColorPrimary = 0x5865F2 // Discord blurple
	ColorSuccess = 0x57F287 // Green
	ColorDanger  = 0xED4245 // Red
	ColorWarning = 0xFEE75C // Yellow
	ColorInfo    = 0x3498DB // Blue
	ColorGold    = 0xF1C40F
)

// Component custom id prefixes
const (
	TradeAcceptPrefix = "trade_accept_"
	TradeDenyPrefix   = "trade_deny_"
	EventClaimSelect  = "event_claim_select"
)

// UI limits
const (
	MaxSelectOptions  = 25
	MaxAutocomplete   = 25
	LeaderboardSize   = 10
	MarketPageSize    = 20
	HistoryPageSize   = 10
	MaxPresetFileSize = 1 << 20
)
