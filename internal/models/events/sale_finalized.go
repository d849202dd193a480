package events

import (
	"time"

	"github.com/shopspring/decimal"
)

const TopicSaleFinalized = "sale_finalized"

type SaleFinalized struct {
	EventID          string          `json:"event_id"`
	ObjectiveMet     bool            `json:"objective_met"`
	TotalReceived    decimal.Decimal `json:"total_received"`
	FundingObjective decimal.Decimal `json:"funding_objective"`
	OccurredAt       time.Time       `json:"occurred_at"`
}
