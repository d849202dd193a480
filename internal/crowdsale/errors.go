package crowdsale

import "errors"

// Every rejection surfaces as one of these sentinels so callers can tell
// failure kinds apart with errors.Is.
var (
	ErrConstructionInvalid = errors.New("crowdsale construction invalid")
	ErrInvalidAmount       = errors.New("amount must be positive")
	ErrNotOwner            = errors.New("caller is not the sale owner")
	ErrAlreadyFinalized    = errors.New("sale already finalized")
	ErrRefundNotAllowed    = errors.New("refunding is not allowed")
	ErrNoFundsToRefund     = errors.New("no funds to refund")
	ErrTransferFailed      = errors.New("refund transfer failed")
)
