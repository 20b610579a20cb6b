// Package scheduler implements the energy-aware LLM task scheduler (C6):
// preferring off-peak, trusted nodes for LLM work while rejecting claims a
// node cannot plausibly back up.
package scheduler

import (
	"sort"
	"time"

	"github.com/go-pkgz/lgr"

	"github.com/andrey/p2psearch-ledger/internal/domain/action"
	"github.com/andrey/p2psearch-ledger/internal/services/timezone"
)

// Scheduler picks nodes for LLM tasks, preferring off-peak, trusted
// candidates, and consulting a timezone.Verifier before honoring an
// off-peak claim.
type Scheduler struct {
	verifier timezone.Verifier
	logger   lgr.L
}

// New creates a Scheduler backed by a timezone verifier.
func New(verifier timezone.Verifier, logger lgr.L) *Scheduler {
	return &Scheduler{verifier: verifier, logger: logger}
}

// IsOffPeakAt reports whether hour falls in the [start,end) off-peak window,
// supporting midnight wrap when start > end. The start boundary is
// inclusive; the end boundary is exclusive, in both wrap and non-wrap modes.
func IsOffPeakAt(hour, start, end float64) bool {
	if start > end {
		return hour >= start || hour < end
	}
	return hour >= start && hour < end
}

// hourIn returns the current hour-of-day in tz, or the override if supplied.
func hourIn(tz string, override *float64) float64 {
	if override != nil {
		return *override
	}
	loc, err := time.LoadLocation(tz)
	if err != nil {
		loc = time.UTC
	}
	now := time.Now().In(loc)
	return float64(now.Hour()) + float64(now.Minute())/60.0
}

// candidate is a node with its off-peak claim resolved and, if applicable,
// verified against the timezone checker.
type candidate struct {
	node      NodeScheduleInfo
	offPeak   bool
	multiplier float64
}

// classify filters to LLM-capable nodes, resolves each one's off-peak
// claim, and reclassifies implausible or suspicious off-peak claims as
// on-peak (step 3 of the single-task algorithm).
func (s *Scheduler) classify(nodes []NodeScheduleInfo, hourOverride *float64, now float64) []candidate {
	var out []candidate
	for _, n := range nodes {
		if !n.HasLLM {
			continue
		}

		hour := hourIn(n.Timezone, hourOverride)
		claimsOffPeak := IsOffPeakAt(hour, n.OffPeakStart, n.OffPeakEnd)

		offPeak := claimsOffPeak
		if claimsOffPeak {
			check := s.verifier.VerifyTimezone(n.PeerID, n.Timezone, n.IP)
			if !check.Plausible {
				s.logger.Logf("WARN reclassifying peer %s as on-peak: %s", n.PeerID, check.Reason)
				offPeak = false
			} else if s.verifier.SuspicionOf(n.PeerID, now) {
				s.logger.Logf("WARN reclassifying peer %s as on-peak: suspicious timezone change rate", n.PeerID)
				offPeak = false
			}
		}

		multiplier := 1.0
		if offPeak {
			multiplier = action.OffPeakMultiplier
		}
		out = append(out, candidate{node: n, offPeak: offPeak, multiplier: multiplier})
	}
	return out
}

func sortByTrustDesc(cands []candidate) {
	sort.SliceStable(cands, func(i, j int) bool {
		if cands[i].node.TrustScore != cands[j].node.TrustScore {
			return cands[i].node.TrustScore > cands[j].node.TrustScore
		}
		return cands[i].node.PeerID < cands[j].node.PeerID
	})
}

func partition(cands []candidate) (offPeak, onPeak []candidate) {
	for _, c := range cands {
		if c.offPeak {
			offPeak = append(offPeak, c)
		} else {
			onPeak = append(onPeak, c)
		}
	}
	return
}

// Pick selects a single node for one LLM task. hourOverride lets callers
// pin the current hour for deterministic tests; now is the wall-clock
// second used for consistency-tracker lookups.
func (s *Scheduler) Pick(nodes []NodeScheduleInfo, hourOverride *float64, now float64) (Decision, bool) {
	cands := s.classify(nodes, hourOverride, now)
	if len(cands) == 0 {
		return Decision{}, false
	}

	offPeak, onPeak := partition(cands)
	if len(offPeak) > 0 {
		sortByTrustDesc(offPeak)
		top := offPeak[0]
		return Decision{
			PeerID:           top.node.PeerID,
			IsOffPeak:        true,
			CreditMultiplier: top.multiplier,
			Reason:           "off-peak, trusted candidate available",
		}, true
	}

	sortByTrustDesc(onPeak)
	top := onPeak[0]
	return Decision{
		PeerID:           top.node.PeerID,
		IsOffPeak:        false,
		CreditMultiplier: top.multiplier,
		Reason:           "no verified off-peak candidate, falling back to on-peak",
	}, true
}

// PickBatch assigns n tasks round-robin over off-peak candidates
// (descending trust); on-peak candidates are used, also round-robin, only
// when there is no off-peak candidate at all. It returns no decisions if no
// candidates remain.
func (s *Scheduler) PickBatch(nodes []NodeScheduleInfo, n int, hourOverride *float64, now float64) []Decision {
	cands := s.classify(nodes, hourOverride, now)
	offPeak, onPeak := partition(cands)
	sortByTrustDesc(offPeak)
	sortByTrustDesc(onPeak)

	var decisions []Decision
	offIdx, onIdx := 0, 0
	for i := 0; i < n; i++ {
		if len(offPeak) > 0 {
			c := offPeak[offIdx%len(offPeak)]
			offIdx++
			decisions = append(decisions, Decision{
				PeerID:           c.node.PeerID,
				IsOffPeak:        true,
				CreditMultiplier: c.multiplier,
				Reason:           "off-peak, trusted candidate available",
			})
			continue
		}
		if len(onPeak) > 0 {
			c := onPeak[onIdx%len(onPeak)]
			onIdx++
			decisions = append(decisions, Decision{
				PeerID:           c.node.PeerID,
				IsOffPeak:        false,
				CreditMultiplier: c.multiplier,
				Reason:           "no verified off-peak candidate, falling back to on-peak",
			})
			continue
		}
		break
	}
	return decisions
}
