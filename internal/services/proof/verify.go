package proof

import (
	"encoding/hex"
	"fmt"
	"strings"

	"github.com/andrey/p2psearch-ledger/internal/domain/canon"
	"github.com/andrey/p2psearch-ledger/internal/domain/merkletree"
)

// Verify checks every layer of a CreditProof: the root signature, and for
// each sampled entry its hash, its signature, and its Merkle inclusion
// path. It never raises; malformed input is reported in the returned
// VerifyResult so the verifier stays composable and DoS-resistant.
func Verify(p CreditProof) VerifyResult {
	var details []string

	pubKey, err := hex.DecodeString(p.PublicKey)
	if err != nil {
		return VerifyResult{
			Verified: false,
			Detail:   fmt.Sprintf("failed to parse public key: %v", err),
		}
	}

	if p.EntryCount == 0 {
		// Empty ledger: trivially valid.
		return VerifyResult{Verified: true, MerkleRootValid: true, Detail: "empty ledger, trivially verified"}
	}

	rootCanonical := canon.RootBytes(p.MerkleRoot, p.EntryCount, p.PeerID)
	rootSig, err := hex.DecodeString(p.RootSignature)
	merkleRootValid := err == nil && canon.Verify(pubKey, rootCanonical, rootSig)
	if !merkleRootValid {
		details = append(details, "root signature invalid")
	}

	var validSigs, invalidSigs, invalidProofs int

	for i, e := range p.SampleEntries {
		canonical := canon.EntryBytes(e.Action, e.Quantity, e.Weight, e.Multiplier, e.Credits, e.Timestamp, e.Note)
		computedHash := canon.HashHex(canonical)

		if computedHash != e.EntryHash {
			invalidSigs++
			details = append(details, fmt.Sprintf("sample %d: entry hash mismatch", i))
			continue
		}

		sig, err := hex.DecodeString(e.Signature)
		if err != nil || !canon.Verify(pubKey, canonical, sig) {
			invalidSigs++
			details = append(details, fmt.Sprintf("sample %d: signature invalid", i))
			continue
		}
		validSigs++

		if i >= len(p.SampleProofs) {
			invalidProofs++
			details = append(details, fmt.Sprintf("sample %d: missing membership proof", i))
			continue
		}
		mp := p.SampleProofs[i]
		if !merkletree.VerifyProof(&mp) || mp.RootHash != p.MerkleRoot {
			invalidProofs++
			details = append(details, fmt.Sprintf("sample %d: merkle proof invalid", i))
		}
	}

	verified := merkleRootValid && invalidSigs == 0 && invalidProofs == 0 && (validSigs > 0 || len(p.SampleEntries) == 0)

	detail := "verified"
	if !verified {
		detail = strings.Join(details, "; ")
		if detail == "" {
			detail = "verification failed"
		}
	}

	return VerifyResult{
		Verified:          verified,
		MerkleRootValid:   merkleRootValid,
		ValidSignatures:   validSigs,
		InvalidSignatures: invalidSigs,
		InvalidProofs:     invalidProofs,
		Detail:            detail,
	}
}
