package interfaces

import (
	"context"

	"github.com/shopspring/decimal"
)

// FundsGateway pays contributions back out. Refund treats the transfer as
// atomic-or-fail: an error here must abort the whole refund.
type FundsGateway interface {
	Transfer(ctx context.Context, to string, amount decimal.Decimal) error
}
