// Package timezoneimpl implements the timezone verifier and consistency
// tracker against the host's IANA zone database and an in-memory, mutex-
// guarded per-peer claim ring.
package timezoneimpl

import (
	"math"
	"sync"
	"time"

	"github.com/go-pkgz/lgr"

	"github.com/andrey/p2psearch-ledger/internal/services/timezone"
)

// ipOffsetTable is a deliberately coarse first-octet -> UTC offset heuristic.
// Implementations may upgrade this to a real GeoIP database behind the same
// Verifier interface without touching callers.
var ipOffsetTable = map[int]float64{
	1:   -8, // west coast NA allocations
	24:  -5, // east coast NA
	41:  2,  // parts of Africa/Europe
	61:  10, // Oceania
	80:  1,  // Western Europe
	103: 8,  // East Asia
	117: 8,  // East/Southeast Asia
	154: 2,  // Africa
	177: -3, // South America
	203: 10, // Oceania
}

func firstOctet(ip string) (int, bool) {
	var a, b, c, d int
	n, err := parseIPv4(ip, &a, &b, &c, &d)
	if err != nil || n != 4 {
		return 0, false
	}
	return a, true
}

// parseIPv4 does a minimal dotted-quad parse; it never panics on garbage
// input and just reports fewer than 4 fields parsed.
func parseIPv4(ip string, a, b, c, d *int) (int, error) {
	fields := [4]*int{a, b, c, d}
	start := 0
	idx := 0
	for i := 0; i <= len(ip); i++ {
		if i == len(ip) || ip[i] == '.' {
			if idx >= 4 {
				return idx, nil
			}
			seg := ip[start:i]
			v, err := atoiOctet(seg)
			if err != nil {
				return idx, err
			}
			*fields[idx] = v
			idx++
			start = i + 1
		}
	}
	return idx, nil
}

func atoiOctet(s string) (int, error) {
	if s == "" {
		return 0, errNotANumber
	}
	v := 0
	for _, ch := range s {
		if ch < '0' || ch > '9' {
			return 0, errNotANumber
		}
		v = v*10 + int(ch-'0')
	}
	if v > 255 {
		return 0, errNotANumber
	}
	return v, nil
}

var errNotANumber = &notANumberError{}

type notANumberError struct{}

func (*notANumberError) Error() string { return "not a number" }

// EstimateOffsetFromIP returns a coarse offset via the static first-octet
// table, or (0, false) when the IP is unmapped.
func EstimateOffsetFromIP(ip string) (float64, bool) {
	octet, ok := firstOctet(ip)
	if !ok {
		return 0, false
	}
	offset, ok := ipOffsetTable[octet]
	return offset, ok
}

// GetTimezoneOffset returns the current UTC offset in hours for an IANA
// zone, falling back to 0 on an unresolvable zone.
func GetTimezoneOffset(iana string) (float64, error) {
	loc, err := time.LoadLocation(iana)
	if err != nil {
		return 0, timezone.ErrZoneUnresolved
	}
	_, offsetSeconds := time.Now().In(loc).Zone()
	return float64(offsetSeconds) / 3600.0, nil
}

func circularDiff(a, b float64) float64 {
	d := math.Abs(a - b)
	if d > 24-d {
		d = 24 - d
	}
	return d
}

// Service implements timezone.Verifier.
type Service struct {
	logger lgr.L

	mu      sync.Mutex
	history map[string][]timezone.Claim
}

// New creates a timezone verifier/consistency tracker.
func New(logger lgr.L) *Service {
	return &Service{logger: logger, history: make(map[string][]timezone.Claim)}
}

func (s *Service) VerifyTimezone(peerID, claimedIANA, ip string) timezone.Check {
	claimedOffset, err := GetTimezoneOffset(claimedIANA)
	if err != nil {
		s.logger.Logf("WARN timezone unresolved for peer %s zone %s, treating as offset 0", peerID, claimedIANA)
		claimedOffset = 0
	}

	estimated, ok := EstimateOffsetFromIP(ip)
	if !ok {
		s.logger.Logf("INFO no IP-derived offset for peer %s, benefit of the doubt", peerID)
		return timezone.Check{
			Plausible:     true,
			Reason:        "ip offset unknown, benefit of the doubt",
			ClaimedOffset: claimedOffset,
		}
	}

	diff := circularDiff(claimedOffset, estimated)
	plausible := diff <= timezone.MaxOffsetDiffHours
	reason := "claimed offset consistent with IP-derived estimate"
	if !plausible {
		reason = "claimed offset diverges from IP-derived estimate beyond threshold"
	}

	s.logger.Logf("INFO timezone check peer=%s claimed=%v estimated=%v diff=%v plausible=%v",
		peerID, claimedOffset, estimated, diff, plausible)

	return timezone.Check{
		Plausible:       plausible,
		Reason:          reason,
		ClaimedOffset:   claimedOffset,
		EstimatedOffset: &estimated,
		OffsetDiffHours: diff,
	}
}

func (s *Service) RecordClaim(peerID, claimedIANA string, now float64) timezone.ClaimRecord {
	s.mu.Lock()
	defer s.mu.Unlock()

	claim := timezone.Claim{Timestamp: now, Zone: claimedIANA}
	s.history[peerID] = prune(append(s.history[peerID], claim), now)

	changes := changesIn24h(s.history[peerID], now)
	return timezone.ClaimRecord{
		Claim:        claim,
		ChangesIn24h: changes,
		Suspicious:   changes >= timezone.MaxTZChangesPerDay,
	}
}

// SuspicionOf is a pure read over the last known zone: it does not append a
// new claim, resolving the source's read-observable side effect into a
// separate, explicitly mutating RecordClaim and a read-only probe.
func (s *Service) SuspicionOf(peerID string, now float64) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	claims := prune(s.history[peerID], now)
	return changesIn24h(claims, now) >= timezone.MaxTZChangesPerDay
}

func prune(claims []timezone.Claim, now float64) []timezone.Claim {
	var kept []timezone.Claim
	for _, c := range claims {
		if now-c.Timestamp <= timezone.PruneWindowHours*3600 {
			kept = append(kept, c)
		}
	}
	return kept
}

// changesIn24h counts distinct transitions between consecutive claims
// within the trailing 24h window.
func changesIn24h(claims []timezone.Claim, now float64) int {
	windowStart := now - 24*3600
	var recent []timezone.Claim
	for _, c := range claims {
		if c.Timestamp >= windowStart {
			recent = append(recent, c)
		}
	}
	changes := 0
	for i := 1; i < len(recent); i++ {
		if recent[i].Zone != recent[i-1].Zone {
			changes++
		}
	}
	return changes
}

var _ timezone.Verifier = (*Service)(nil)
