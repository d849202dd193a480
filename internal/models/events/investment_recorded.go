package events

import (
	"time"

	"github.com/shopspring/decimal"
)

const TopicInvestmentRecorded = "investment_recorded"

type InvestmentRecorded struct {
	EventID     string          `json:"event_id"`
	Contributor string          `json:"contributor"`
	Amount      decimal.Decimal `json:"amount"`
	UnitsMinted decimal.Decimal `json:"units_minted"`
	OccurredAt  time.Time       `json:"occurred_at"`
}
