// Package timezone implements the timezone plausibility verifier and
// per-peer consistency tracker (C5): a defense against nodes gaming the
// energy-aware scheduler by falsely claiming off-peak hours.
package timezone

//go:generate moq -out timezone_mocks.go . Verifier

// Verifier checks a peer's claimed IANA timezone against its IP-derived
// offset estimate and tracks how often a peer has changed its claimed zone.
type Verifier interface {
	// VerifyTimezone checks plausibility of claimedIANA given ip. peerID is
	// used only for logging; this call does not mutate tracker state.
	VerifyTimezone(peerID, claimedIANA, ip string) Check

	// RecordClaim appends a (now, claimedIANA) observation for peerID and
	// returns its rolling 24h change-rate record. This call DOES mutate
	// tracker state.
	RecordClaim(peerID, claimedIANA string, now float64) ClaimRecord

	// SuspicionOf is a pure read: whether peerID's last 24h of claims would
	// be judged suspicious, without recording a new claim. Schedulers should
	// use this instead of RecordClaim's side-effecting return value.
	SuspicionOf(peerID string, now float64) bool
}
