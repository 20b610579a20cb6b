package proof

import (
	"github.com/andrey/p2psearch-ledger/internal/domain/action"
	"github.com/andrey/p2psearch-ledger/internal/domain/merkletree"
)

// DefaultSampleSize is how many entries a credit proof samples by default
// when the caller does not ask for a specific K.
const DefaultSampleSize = 10

// SampledEntry is one sampled ledger row included verbatim in a CreditProof,
// carrying the fields needed to rebuild its canonical bytes plus its
// declared hash and signature.
type SampledEntry struct {
	Action     action.Action `json:"action"`
	Quantity   float64       `json:"quantity"`
	Weight     float64       `json:"weight"`
	Multiplier float64       `json:"multiplier"`
	Credits    float64       `json:"credits"`
	Timestamp  float64       `json:"timestamp"`
	Note       string        `json:"note"`
	EntryHash  string        `json:"entry_hash"`
	Signature  string        `json:"signature"`
}

// CreditProof is the wire object a peer presents to prove its ledger
// contents without requiring the requester to trust it outright.
type CreditProof struct {
	PeerID          string                `json:"peer_id"`
	RequestID       string                `json:"request_id,omitempty"`
	TotalEarned     float64               `json:"total_earned"`
	TotalSpent      float64               `json:"total_spent"`
	ActionBreakdown map[action.Action]float64 `json:"action_breakdown"`
	EntryCount      int                   `json:"entry_count"`
	MerkleRoot      string                `json:"merkle_root"`
	RootSignature   string                `json:"root_signature"`
	SampleEntries   []SampledEntry        `json:"sample_entries"`
	SampleProofs    []merkletree.MembershipProof `json:"sample_proofs"`
	Timestamp       float64               `json:"timestamp"`
	PublicKey       string                `json:"public_key"`
}

// VerifyResult is the structured, always-non-raising outcome of verifying a
// CreditProof.
type VerifyResult struct {
	Verified          bool
	MerkleRootValid   bool
	ValidSignatures   int
	InvalidSignatures int
	InvalidProofs     int
	Detail            string
}
