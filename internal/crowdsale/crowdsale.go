package crowdsale

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
	interfaces "github.com/openfund/crowdsale-ledger-system/internal/interfaces"
	"github.com/openfund/crowdsale-ledger-system/internal/models"
	"github.com/openfund/crowdsale-ledger-system/internal/models/events"
	"github.com/shopspring/decimal"
)

// Config carries the one-time construction parameters of a sale.
// All amounts are in the smallest funding denomination.
type Config struct {
	Owner            string          // identity allowed to finalize
	StartTime        time.Time       // must not be in the past at construction
	EndTime          time.Time       // must not precede StartTime
	UnitPrice        decimal.Decimal // price per issued unit, > 0
	FundingObjective decimal.Decimal // total that decides release vs refund, > 0
}

// Crowdsale is the funding state machine: it accepts pooled contributions
// toward the objective and, at finalize time, locks into exactly one of two
// terminal branches, token release or refunding.
//
// All operations run under a single mutex, so each call observes and mutates
// state as an atomic unit.
type Crowdsale struct {
	mu sync.Mutex

	owner            string
	startTime        time.Time
	endTime          time.Time
	unitPrice        decimal.Decimal
	fundingObjective decimal.Decimal

	contributions    map[string]decimal.Decimal // contributor -> cumulative amount
	totalReceived    decimal.Decimal
	totalRefunded    decimal.Decimal
	finalized        bool
	refundingAllowed bool

	issuer    interfaces.TokenIssuer
	gateway   interfaces.FundsGateway
	store     interfaces.SaleStore
	publisher interfaces.EventPublisher
	logger    *slog.Logger
}

// New validates the construction parameters and returns a sale in the Open
// state. Invalid parameters reject construction entirely; no partially
// constructed sale can exist.
func New(
	cfg Config,
	issuer interfaces.TokenIssuer,
	gateway interfaces.FundsGateway,
	store interfaces.SaleStore,
	publisher interfaces.EventPublisher,
	logger *slog.Logger,
) (*Crowdsale, error) {
	if cfg.Owner == "" {
		return nil, fmt.Errorf("%w: owner is required", ErrConstructionInvalid)
	}
	if cfg.StartTime.Before(time.Now()) {
		return nil, fmt.Errorf("%w: start time is in the past", ErrConstructionInvalid)
	}
	if cfg.EndTime.Before(cfg.StartTime) {
		return nil, fmt.Errorf("%w: end time precedes start time", ErrConstructionInvalid)
	}
	if cfg.UnitPrice.Sign() <= 0 {
		return nil, fmt.Errorf("%w: unit price must be positive", ErrConstructionInvalid)
	}
	if cfg.FundingObjective.Sign() <= 0 {
		return nil, fmt.Errorf("%w: funding objective must be positive", ErrConstructionInvalid)
	}
	if issuer == nil || gateway == nil || store == nil || publisher == nil {
		return nil, fmt.Errorf("%w: missing collaborator", ErrConstructionInvalid)
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &Crowdsale{
		owner:            cfg.Owner,
		startTime:        cfg.StartTime,
		endTime:          cfg.EndTime,
		unitPrice:        cfg.UnitPrice,
		fundingObjective: cfg.FundingObjective,
		contributions:    make(map[string]decimal.Decimal),
		issuer:           issuer,
		gateway:          gateway,
		store:            store,
		publisher:        publisher,
		logger:           logger,
	}, nil
}

// Invest credits a contribution and mints the corresponding units to the
// contributor. The whole call is accept-or-reject: any failure leaves the
// ledger state exactly as it was.
//
// The stored sale window (startTime/endTime) is deliberately not checked
// here; the window is recorded and validated at construction only.
// Investing after finalization is likewise not blocked.
func (c *Crowdsale) Invest(ctx context.Context, contributor string, amount decimal.Decimal) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if amount.Sign() <= 0 {
		return ErrInvalidAmount
	}

	prev, hadPrior := c.contributions[contributor]
	c.contributions[contributor] = prev.Add(amount)
	c.totalReceived = c.totalReceived.Add(amount)

	// Integer division: the fractional remainder stays with the contributor
	// as unconverted value and is not tracked separately.
	units, _ := amount.QuoRem(c.unitPrice, 0)

	if err := c.issuer.Mint(ctx, contributor, units); err != nil {
		c.revertContribution(contributor, prev, hadPrior, amount)
		return fmt.Errorf("mint %s units for %s: %w", units, contributor, err)
	}

	c.appendEntry(ctx, contributor, models.EntryContribution, amount)
	c.publish(events.TopicInvestmentRecorded, events.InvestmentRecorded{
		EventID:     uuid.New().String(),
		Contributor: contributor,
		Amount:      amount,
		UnitsMinted: units,
		OccurredAt:  time.Now().UTC(),
	})
	c.logger.Info("investment recorded",
		"contributor", contributor,
		"amount", amount.String(),
		"units_minted", units.String(),
		"total_received", c.totalReceived.String(),
	)
	return nil
}

// Finalize is the single irrevocable branch point. Only the owner may call
// it, and only once: the sale either releases the issued tokens (objective
// met) or opens refunding (objective missed), never both.
func (c *Crowdsale) Finalize(ctx context.Context, caller string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if caller != c.owner {
		return ErrNotOwner
	}
	if c.finalized {
		return ErrAlreadyFinalized
	}

	objectiveMet := c.totalReceived.Cmp(c.fundingObjective) >= 0
	if objectiveMet {
		// A failed release leaves the sale un-finalized so the owner can retry.
		if err := c.issuer.Release(ctx); err != nil {
			return fmt.Errorf("release issued tokens: %w", err)
		}
		c.logger.Info("funding objective met, tokens released",
			"total_received", c.totalReceived.String(),
			"funding_objective", c.fundingObjective.String(),
		)
	} else {
		c.refundingAllowed = true
		c.logger.Info("funding objective not met, refunding opened",
			"total_received", c.totalReceived.String(),
			"funding_objective", c.fundingObjective.String(),
		)
	}
	c.finalized = true

	c.publish(events.TopicSaleFinalized, events.SaleFinalized{
		EventID:          uuid.New().String(),
		ObjectiveMet:     objectiveMet,
		TotalReceived:    c.totalReceived,
		FundingObjective: c.fundingObjective,
		OccurredAt:       time.Now().UTC(),
	})
	return nil
}

// Refund pays the caller's full recorded contribution back. The balance is
// zeroed and the running totals updated before the external transfer, so a
// re-entrant caller can never drain more than their recorded contribution.
// If the transfer fails the whole call rolls back and the caller may retry.
func (c *Crowdsale) Refund(ctx context.Context, caller string) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	if !c.refundingAllowed {
		return ErrRefundNotAllowed
	}
	amount := c.contributions[caller]
	if amount.Sign() <= 0 {
		return ErrNoFundsToRefund
	}

	// Effects before interaction.
	c.contributions[caller] = decimal.Zero
	c.totalRefunded = c.totalRefunded.Add(amount)

	if err := c.gateway.Transfer(ctx, caller, amount); err != nil {
		c.contributions[caller] = amount
		c.totalRefunded = c.totalRefunded.Sub(amount)
		return fmt.Errorf("%w: %v", ErrTransferFailed, err)
	}

	c.appendEntry(ctx, caller, models.EntryRefund, amount)
	c.publish(events.TopicRefundIssued, events.RefundIssued{
		EventID:     uuid.New().String(),
		Contributor: caller,
		Amount:      amount,
		OccurredAt:  time.Now().UTC(),
	})
	c.logger.Info("refund issued",
		"contributor", caller,
		"amount", amount.String(),
		"total_refunded", c.totalRefunded.String(),
	)
	return nil
}

// revertContribution undoes the map and total mutations of a rejected invest.
func (c *Crowdsale) revertContribution(contributor string, prev decimal.Decimal, hadPrior bool, amount decimal.Decimal) {
	if hadPrior {
		c.contributions[contributor] = prev
	} else {
		delete(c.contributions, contributor)
	}
	c.totalReceived = c.totalReceived.Sub(amount)
}

// appendEntry persists an audit record. The ledger decision has already been
// committed at this point, so a failing store only gets logged.
func (c *Crowdsale) appendEntry(ctx context.Context, contributor string, kind models.EntryKind, amount decimal.Decimal) {
	entry := models.LedgerEntry{
		ID:          uuid.New().String(),
		Contributor: contributor,
		Kind:        kind,
		Amount:      amount,
		CreatedAt:   time.Now().UTC(),
	}
	if err := c.store.SaveEntry(ctx, entry); err != nil {
		c.logger.Error("failed to persist ledger entry",
			"entry_id", entry.ID,
			"contributor", contributor,
			"kind", string(kind),
			"error", err,
		)
	}
}

// publish sends an event to the bus, best effort.
func (c *Crowdsale) publish(topic string, event any) {
	if err := c.publisher.Publish(topic, event); err != nil {
		c.logger.Error("failed to publish event", "topic", topic, "error", err)
	}
}

// ContributionOf returns the cumulative contribution of a single
// contributor; zero if they never invested or were fully refunded.
func (c *Crowdsale) ContributionOf(contributor string) decimal.Decimal {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.contributions[contributor]
}

func (c *Crowdsale) TotalReceived() decimal.Decimal {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.totalReceived
}

func (c *Crowdsale) TotalRefunded() decimal.Decimal {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.totalRefunded
}

func (c *Crowdsale) Finalized() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.finalized
}

func (c *Crowdsale) RefundingAllowed() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.refundingAllowed
}

// Status is a point-in-time snapshot of the public sale state.
type Status struct {
	Owner            string          `json:"owner"`
	StartTime        time.Time       `json:"start_time"`
	EndTime          time.Time       `json:"end_time"`
	UnitPrice        decimal.Decimal `json:"unit_price"`
	FundingObjective decimal.Decimal `json:"funding_objective"`
	TotalReceived    decimal.Decimal `json:"total_received"`
	TotalRefunded    decimal.Decimal `json:"total_refunded"`
	Contributors     int             `json:"contributors"`
	Finalized        bool            `json:"finalized"`
	RefundingAllowed bool            `json:"refunding_allowed"`
}

func (c *Crowdsale) Status() Status {
	c.mu.Lock()
	defer c.mu.Unlock()
	return Status{
		Owner:            c.owner,
		StartTime:        c.startTime,
		EndTime:          c.endTime,
		UnitPrice:        c.unitPrice,
		FundingObjective: c.fundingObjective,
		TotalReceived:    c.totalReceived,
		TotalRefunded:    c.totalRefunded,
		Contributors:     len(c.contributions),
		Finalized:        c.finalized,
		RefundingAllowed: c.refundingAllowed,
	}
}
