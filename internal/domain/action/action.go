// Package action enumerates the creditable contribution actions, their
// weights, and the contribution-tier thresholds derived from them.
package action

// Action is a tagged contribution event rewarded with credits.
type Action string

const (
	Crawl          Action = "crawl"
	QueryProcess   Action = "query_process"
	DocHosting     Action = "doc_hosting"
	NetworkUptime  Action = "network_uptime"
	LLMOwn         Action = "llm_own"
	LLMPeer        Action = "llm_peer"
	GitDocs        Action = "git_docs"
	GitFix         Action = "git_fix"
	GitFeature     Action = "git_feature"
	GitMajor       Action = "git_major"
)

// OffPeakMultiplier is applied to LLM actions performed during a node's
// declared off-peak window.
const OffPeakMultiplier = 1.5

var weights = map[Action]float64{
	Crawl:         1.0,
	QueryProcess:  0.5,
	DocHosting:    0.1,
	NetworkUptime: 0.5,
	LLMOwn:        1.5,
	LLMPeer:       2.0,
	GitDocs:       1000,
	GitFix:        10000,
	GitFeature:    50000,
	GitMajor:      100000,
}

var llmActions = map[Action]bool{
	LLMOwn:  true,
	LLMPeer: true,
}

// Weight returns the fixed credit yield per unit of the action. It returns
// (0, false) for an unrecognized action so callers can surface InvalidArgument.
func Weight(a Action) (float64, bool) {
	w, ok := weights[a]
	return w, ok
}

// IsLLM reports whether the action is eligible for the off-peak multiplier.
func IsLLM(a Action) bool {
	return llmActions[a]
}

// Valid reports whether a is one of the closed set of known actions.
func Valid(a Action) bool {
	_, ok := weights[a]
	return ok
}

// Tier buckets contribution score into a cost regime.
type Tier string

const (
	T1 Tier = "T1"
	T2 Tier = "T2"
	T3 Tier = "T3"
)

type tierThreshold struct {
	tier      Tier
	threshold float64
	baseCost  float64
}

// descending threshold order: first one met wins.
var tierTable = []tierThreshold{
	{T3, 1000, 0.033},
	{T2, 100, 0.050},
	{T1, 0, 0.100},
}

// TierForScore performs a descending-threshold table scan and returns the
// tier and its base search cost.
func TierForScore(score float64) (Tier, float64) {
	for _, row := range tierTable {
		if score >= row.threshold {
			return row.tier, row.baseCost
		}
	}
	// unreachable: T1's threshold is 0 and score is never < 0 in practice,
	// but negative scores (shouldn't occur) still fall through to T1.
	return T1, 0.100
}
