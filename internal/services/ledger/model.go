package ledger

import "github.com/andrey/p2psearch-ledger/internal/domain/action"

// CreditEntry is an immutable, append-only ledger row.
type CreditEntry struct {
	ID         uint64        `json:"id"`
	Action     action.Action `json:"action"`
	Quantity   float64       `json:"quantity"`
	Weight     float64       `json:"weight"`
	Multiplier float64       `json:"multiplier"`
	Credits    float64       `json:"credits"`
	Timestamp  float64       `json:"timestamp"` // wall-clock seconds
	Note       string        `json:"note"`
	EntryHash  string        `json:"entry_hash"` // lowercase hex, 32 bytes
	Signature  string        `json:"signature"`  // lowercase hex, 64 bytes, optional
}

// SpendingEntry is an append-only spend record. Never deleted.
type SpendingEntry struct {
	ID        uint64  `json:"id"`
	Amount    float64 `json:"amount"`
	Reason    string  `json:"reason"`
	Timestamp float64 `json:"timestamp"`
}

// GraceCell is the singleton tracking when (if ever) the balance first went
// non-positive since it was last cleared.
type GraceCell struct {
	GraceStart *float64 `json:"grace_start"`
}

// Breakdown maps an action to the sum of credits earned through it.
type Breakdown map[action.Action]float64
