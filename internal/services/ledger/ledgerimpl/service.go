// Package ledgerimpl is the Badger-backed implementation of the Credit
// Ledger service (C3).
package ledgerimpl

import (
	"context"
	"fmt"
	"sort"

	"github.com/go-pkgz/lgr"

	"github.com/andrey/p2psearch-ledger/internal/domain/action"
	"github.com/andrey/p2psearch-ledger/internal/domain/canon"
	"github.com/andrey/p2psearch-ledger/internal/services/ledger"
)

// llmCreditCapRatio caps the LLM share of contribution score at 60% of
// total, preventing LLM-only farming while still letting a crawl-only node
// graduate tiers.
const llmCreditCapRatio = 0.60

// Clock supplies the ledger's notion of "now" in wall-clock seconds. Tests
// inject a fixed clock the same way the scheduler accepts an hour override.
type Clock func() float64

// Service implements ledger.Service against a Store.
type Service struct {
	store  *Store
	logger lgr.L
	clock  Clock
}

// New creates a ledger service over store, using clock for timestamps.
func New(store *Store, logger lgr.L, clock Clock) *Service {
	return &Service{store: store, logger: logger, clock: clock}
}

func (s *Service) RecordAction(ctx context.Context, act action.Action, quantity float64, offPeak bool, note string, keyPair canon.KeyPair) (float64, error) {
	if quantity <= 0 {
		return 0, fmt.Errorf("%w: quantity must be positive, got %v", ledger.ErrInvalidArgument, quantity)
	}

	weight, ok := action.Weight(act)
	if !ok {
		return 0, fmt.Errorf("%w: unknown action %q", ledger.ErrInvalidArgument, act)
	}

	multiplier := 1.0
	if offPeak && action.IsLLM(act) {
		multiplier = action.OffPeakMultiplier
	}
	credits := quantity * weight * multiplier
	timestamp := s.clock()

	id, err := s.store.NextEntryID()
	if err != nil {
		return 0, fmt.Errorf("%w: reserve entry id: %v", ledger.ErrStorage, err)
	}

	entry := ledger.CreditEntry{
		ID:         id,
		Action:     act,
		Quantity:   quantity,
		Weight:     weight,
		Multiplier: multiplier,
		Credits:    credits,
		Timestamp:  timestamp,
		Note:       note,
	}

	canonical := canon.EntryBytes(entry.Action, entry.Quantity, entry.Weight, entry.Multiplier, entry.Credits, entry.Timestamp, entry.Note)
	entry.EntryHash = canon.HashHex(canonical)
	if keyPair != nil {
		entry.Signature = fmt.Sprintf("%x", keyPair.Sign(canonical))
	}

	if err := s.store.InsertEntry(ctx, entry); err != nil {
		return 0, err
	}

	s.logger.Logf("INFO recorded action %s quantity=%v credits=%v offPeak=%v", act, quantity, credits, offPeak)
	return credits, nil
}

func (s *Service) Spend(ctx context.Context, amount float64, reason string) (bool, error) {
	if amount <= 0 {
		return false, fmt.Errorf("%w: amount must be positive, got %v", ledger.ErrInvalidArgument, amount)
	}

	id, err := s.store.NextSpendID()
	if err != nil {
		return false, fmt.Errorf("%w: reserve spend id: %v", ledger.ErrStorage, err)
	}

	sp := ledger.SpendingEntry{
		ID:        id,
		Amount:    amount,
		Reason:    reason,
		Timestamp: s.clock(),
	}

	if err := s.store.InsertSpend(ctx, sp); err != nil {
		return false, err
	}

	s.logger.Logf("INFO spent %v credits, reason=%q", amount, reason)
	return true, nil
}

func (s *Service) TotalEarned(ctx context.Context) (float64, error) {
	entries, err := s.store.AllEntries(ctx)
	if err != nil {
		return 0, err
	}
	var total float64
	for _, e := range entries {
		total += e.Credits
	}
	return total, nil
}

func (s *Service) TotalSpent(ctx context.Context) (float64, error) {
	spends, err := s.store.AllSpends(ctx)
	if err != nil {
		return 0, err
	}
	var total float64
	for _, sp := range spends {
		total += sp.Amount
	}
	return total, nil
}

func (s *Service) Balance(ctx context.Context) (float64, error) {
	return s.store.Balance(ctx)
}

// ContributionScore caps the LLM share of credits at llmCreditCapRatio of
// the total so LLM-only work cannot farm tier graduation on its own.
func (s *Service) ContributionScore(ctx context.Context) (float64, error) {
	entries, err := s.store.AllEntries(ctx)
	if err != nil {
		return 0, err
	}

	var llmRaw, nonLLM float64
	for _, e := range entries {
		if action.IsLLM(e.Action) {
			llmRaw += e.Credits
		} else {
			nonLLM += e.Credits
		}
	}

	total := nonLLM + llmRaw
	llmCapped := llmRaw
	if total > 0 && llmRaw/total > llmCreditCapRatio {
		llmCapped = nonLLM * llmCreditCapRatio / (1 - llmCreditCapRatio)
	}

	return nonLLM + llmCapped, nil
}

func (s *Service) GraceStart(ctx context.Context) (*float64, error) {
	cell, err := s.store.Grace(ctx)
	if err != nil {
		return nil, err
	}
	return cell.GraceStart, nil
}

func (s *Service) RecentEntries(ctx context.Context, limit int) ([]ledger.CreditEntry, error) {
	entries, err := s.store.AllEntries(ctx)
	if err != nil {
		return nil, err
	}
	if limit <= 0 || limit >= len(entries) {
		return entries, nil
	}
	return entries[len(entries)-limit:], nil
}

func (s *Service) SignedEntries(ctx context.Context) ([]ledger.CreditEntry, error) {
	entries, err := s.store.AllEntries(ctx)
	if err != nil {
		return nil, err
	}
	var signed []ledger.CreditEntry
	for _, e := range entries {
		if e.EntryHash != "" && e.Signature != "" {
			signed = append(signed, e)
		}
	}
	sort.SliceStable(signed, func(i, j int) bool {
		return signed[i].Timestamp < signed[j].Timestamp
	})
	return signed, nil
}

func (s *Service) EarningsByAction(ctx context.Context) (ledger.Breakdown, error) {
	entries, err := s.store.AllEntries(ctx)
	if err != nil {
		return nil, err
	}
	out := ledger.Breakdown{}
	for _, e := range entries {
		out[e.Action] += e.Credits
	}
	return out, nil
}

var _ ledger.Service = (*Service)(nil)
