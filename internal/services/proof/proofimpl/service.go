// Package proofimpl builds CreditProofs from a ledger's signed entries.
package proofimpl

import (
	"context"
	"fmt"
	"math/rand"

	"github.com/go-pkgz/lgr"

	"github.com/andrey/p2psearch-ledger/internal/domain/action"
	"github.com/andrey/p2psearch-ledger/internal/domain/canon"
	"github.com/andrey/p2psearch-ledger/internal/domain/merkletree"
	"github.com/andrey/p2psearch-ledger/internal/services/ledger"
	"github.com/andrey/p2psearch-ledger/internal/services/proof"
)

// LedgerReader is the slice of ledger.Service the proof builder needs.
type LedgerReader interface {
	TotalEarned(ctx context.Context) (float64, error)
	TotalSpent(ctx context.Context) (float64, error)
	SignedEntries(ctx context.Context) ([]ledger.CreditEntry, error)
}

// Clock supplies the proof's own timestamp.
type Clock func() float64

// Service builds CreditProofs against a ledger and a signing key pair.
type Service struct {
	ledger  LedgerReader
	keyPair canon.KeyPair
	logger  lgr.L
	clock   Clock
}

// New creates a proof builder. keyPair must not be nil: an unsigned ledger
// has nothing sound to attest to.
func New(ledgerReader LedgerReader, keyPair canon.KeyPair, logger lgr.L, clock Clock) (*Service, error) {
	if keyPair == nil {
		return nil, proof.ErrKeyPairRequired
	}
	return &Service{ledger: ledgerReader, keyPair: keyPair, logger: logger, clock: clock}, nil
}

// Build composes a signed, Merkle-anchored, sample-verifiable CreditProof.
// sampleSize <= 0 uses proof.DefaultSampleSize; it is capped at the number
// of signed entries available.
func (s *Service) Build(ctx context.Context, peerID, requestID string, sampleSize int) (proof.CreditProof, error) {
	totalEarned, err := s.ledger.TotalEarned(ctx)
	if err != nil {
		return proof.CreditProof{}, fmt.Errorf("read total earned: %w", err)
	}
	totalSpent, err := s.ledger.TotalSpent(ctx)
	if err != nil {
		return proof.CreditProof{}, fmt.Errorf("read total spent: %w", err)
	}

	signed, err := s.ledger.SignedEntries(ctx)
	if err != nil {
		return proof.CreditProof{}, fmt.Errorf("read signed entries: %w", err)
	}

	timestamp := s.clock()
	breakdown := map[action.Action]float64{}
	for _, e := range signed {
		breakdown[e.Action] += e.Credits
	}

	if len(signed) == 0 {
		// Empty ledger: trivially valid proof, per spec's empty case.
		return proof.CreditProof{
			PeerID:          peerID,
			RequestID:       requestID,
			TotalEarned:     totalEarned,
			TotalSpent:      totalSpent,
			ActionBreakdown: breakdown,
			EntryCount:      0,
			MerkleRoot:      "",
			RootSignature:   "",
			Timestamp:       timestamp,
			PublicKey:       fmt.Sprintf("%x", s.keyPair.PublicKeyBytes()),
		}, nil
	}

	leaves := make([]string, len(signed))
	for i, e := range signed {
		leaves[i] = e.EntryHash
	}
	tree := merkletree.Build(leaves)
	root := tree.RootHash()

	rootCanonical := canon.RootBytes(root, len(signed), peerID)
	rootSig := s.keyPair.Sign(rootCanonical)

	k := sampleSize
	if k <= 0 {
		k = proof.DefaultSampleSize
	}
	if k > len(signed) {
		k = len(signed)
	}
	indices := sampleIndices(len(signed), k)

	sampleEntries := make([]proof.SampledEntry, 0, k)
	sampleProofs := make([]merkletree.MembershipProof, 0, k)
	for _, idx := range indices {
		e := signed[idx]
		sampleEntries = append(sampleEntries, proof.SampledEntry{
			Action:     e.Action,
			Quantity:   e.Quantity,
			Weight:     e.Weight,
			Multiplier: e.Multiplier,
			Credits:    e.Credits,
			Timestamp:  e.Timestamp,
			Note:       e.Note,
			EntryHash:  e.EntryHash,
			Signature:  e.Signature,
		})
		p, ok := tree.GetProof(idx)
		if !ok {
			return proof.CreditProof{}, fmt.Errorf("build membership proof for sampled index %d", idx)
		}
		sampleProofs = append(sampleProofs, *p)
	}

	s.logger.Logf("INFO built credit proof for peer %s: entries=%d sampled=%d root=%s", peerID, len(signed), k, root)

	return proof.CreditProof{
		PeerID:          peerID,
		RequestID:       requestID,
		TotalEarned:     totalEarned,
		TotalSpent:      totalSpent,
		ActionBreakdown: breakdown,
		EntryCount:      len(signed),
		MerkleRoot:      root,
		RootSignature:   fmt.Sprintf("%x", rootSig),
		SampleEntries:   sampleEntries,
		SampleProofs:    sampleProofs,
		Timestamp:       timestamp,
		PublicKey:       fmt.Sprintf("%x", s.keyPair.PublicKeyBytes()),
	}, nil
}

// sampleIndices picks k distinct indices from [0,n) without replacement,
// returned in ascending order so samples and their proofs line up with a
// deterministic, replay-friendly ordering.
func sampleIndices(n, k int) []int {
	perm := rand.Perm(n)
	picked := perm[:k]
	// simple insertion sort: k is small (sample-size bounded)
	for i := 1; i < len(picked); i++ {
		v := picked[i]
		j := i - 1
		for j >= 0 && picked[j] > v {
			picked[j+1] = picked[j]
			j--
		}
		picked[j+1] = v
	}
	return picked
}

var _ proof.Builder = (*Service)(nil)
