package interfaces

import (
	"context"

	"github.com/shopspring/decimal"
)

// TokenIssuer is the external token contract collaborator. The ledger only
// ever needs two capabilities from it: crediting locked units to a
// beneficiary, and unlocking everything minted so far.
type TokenIssuer interface {
	Mint(ctx context.Context, beneficiary string, units decimal.Decimal) error
	Release(ctx context.Context) error
}
