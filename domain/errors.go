package domain

import (
	"errors"
	"fmt"
)

// Sentinel kinds for ledger failures. A LedgerError unwraps to exactly one of these.
var (
	ErrNotFound      = errors.New("not found")
	ErrInsufficient  = errors.New("insufficient")
	ErrConfigMissing = errors.New("configuration missing")
	ErrUnavailable   = errors.New("unavailable")
	ErrInvalid       = errors.New("invalid")
	ErrCooldown      = errors.New("on cooldown")
)

// LedgerError is a business rule failure whose message is safe to show to users
type LedgerError struct {
	Kind    error
	Message string
}

func (e *LedgerError) Error() string {
	return e.Message
}

func (e *LedgerError) Unwrap() error {
	return e.Kind
}

func newLedgerError(kind error, format string, args ...any) *LedgerError {
	return &LedgerError{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

// NotFound reports a missing card, set, event, listing, rarity or lottery
func NotFound(format string, args ...any) error {
	return newLedgerError(ErrNotFound, format, args...)
}

// Insufficient reports a balance, quantity or capacity shortfall
func Insufficient(format string, args ...any) error {
	return newLedgerError(ErrInsufficient, format, args...)
}

// ConfigMissing reports guild configuration that must be set before an operation can run
func ConfigMissing(format string, args ...any) error {
	return newLedgerError(ErrConfigMissing, format, args...)
}

// Unavailable reports a resource that existed but is gone or closed
func Unavailable(format string, args ...any) error {
	return newLedgerError(ErrUnavailable, format, args...)
}

// Invalid reports bad input
func Invalid(format string, args ...any) error {
	return newLedgerError(ErrInvalid, format, args...)
}

// Cooldown reports an action attempted before its cooldown elapsed
func Cooldown(format string, args ...any) error {
	return newLedgerError(ErrCooldown, format, args...)
}

// UserMessage extracts the user-facing message from err if it carries one
func UserMessage(err error) (string, bool) {
	var ledgerErr *LedgerError
	if errors.As(err, &ledgerErr) {
		return ledgerErr.Message, true
	}
	return "", false
}
