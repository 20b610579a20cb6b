// Package ledger defines the Credit Ledger service interface (C3): durable
// append-only entries and spending log, atomic spend with TOCTOU-safe
// grace-cell transition, and the accounting queries the tier/grace/debt
// state machine and credit-proof builder depend on.
package ledger

import (
	"context"

	"github.com/andrey/p2psearch-ledger/internal/domain/action"
	"github.com/andrey/p2psearch-ledger/internal/domain/canon"
)

//go:generate moq -out ledger_mocks.go . Service

// Service is the Credit Ledger's public contract.
type Service interface {
	// RecordAction validates quantity > 0, prices the action via the weight
	// table, signs it if a key pair is supplied, appends it durably, and
	// clears the grace cell if the resulting balance is positive. Returns
	// the credits earned.
	RecordAction(ctx context.Context, act action.Action, quantity float64, offPeak bool, note string, keyPair canon.KeyPair) (float64, error)

	// Spend records a debit within a single atomic transaction: insert,
	// re-read balance, set grace-start if newly non-positive, commit. Always
	// returns true on success; debt is permitted by design.
	Spend(ctx context.Context, amount float64, reason string) (bool, error)

	TotalEarned(ctx context.Context) (float64, error)
	TotalSpent(ctx context.Context) (float64, error)
	Balance(ctx context.Context) (float64, error)

	// ContributionScore computes the LLM-capped contribution score driving
	// the tier lookup.
	ContributionScore(ctx context.Context) (float64, error)

	// GraceStart returns the current grace cell value. It only reads the
	// cell; RecordAction clears it whenever the balance it leaves is positive.
	GraceStart(ctx context.Context) (*float64, error)

	RecentEntries(ctx context.Context, limit int) ([]CreditEntry, error)
	SignedEntries(ctx context.Context) ([]CreditEntry, error)
	EarningsByAction(ctx context.Context) (Breakdown, error)
}
