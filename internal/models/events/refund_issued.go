package events

import (
	"time"

	"github.com/shopspring/decimal"
)

const TopicRefundIssued = "refund_issued"

type RefundIssued struct {
	EventID     string          `json:"event_id"`
	Contributor string          `json:"contributor"`
	Amount      decimal.Decimal `json:"amount"`
	OccurredAt  time.Time       `json:"occurred_at"`
}
