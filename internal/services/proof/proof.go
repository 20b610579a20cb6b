// Package proof defines the credit-proof builder/verifier service interface
// (C8): composing a signed Merkle root over a node's signed ledger entries
// plus sampled, individually verifiable entries, and the stateless verifier
// any peer can run against it.
package proof

import "context"

//go:generate moq -out proof_mocks.go . Builder

// Builder composes CreditProofs from a node's own ledger. The verifier side
// is a pure function (Verify, below) and needs no interface: it never
// touches the ledger or the network.
type Builder interface {
	Build(ctx context.Context, peerID, requestID string, sampleSize int) (CreditProof, error)
}
