package timezone

// MaxOffsetDiffHours is the plausibility threshold for claimed-vs-estimated
// timezone offset divergence.
const MaxOffsetDiffHours = 2.0

// MaxTZChangesPerDay flags a peer as suspicious once it has claimed this
// many distinct timezone transitions within the trailing 24 hours.
const MaxTZChangesPerDay = 3

// PruneWindowHours bounds how long a peer's claim history is retained.
const PruneWindowHours = 48.0

// Check is the result of verifying a peer's claimed IANA zone against an
// IP-derived offset estimate.
type Check struct {
	Plausible        bool
	Reason           string
	ClaimedOffset    float64
	EstimatedOffset  *float64 // nil when the IP could not be mapped
	OffsetDiffHours  float64
}

// Claim is one recorded (timestamp, timezone) assertion from a peer.
type Claim struct {
	Timestamp float64
	Zone      string
}

// ClaimRecord is returned by RecordClaim: the freshly appended claim plus
// the rolling 24h change count used to flag abuse.
type ClaimRecord struct {
	Claim         Claim
	ChangesIn24h  int
	Suspicious    bool
}
