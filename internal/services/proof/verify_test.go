package proof

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestVerify_EmptyLedgerIsTriviallyValid(t *testing.T) {
	result := Verify(CreditProof{EntryCount: 0, PublicKey: "ab"})
	assert.True(t, result.Verified)
	assert.True(t, result.MerkleRootValid)
}

func TestVerify_MalformedPublicKeyFails(t *testing.T) {
	result := Verify(CreditProof{EntryCount: 1, PublicKey: "not-hex"})
	assert.False(t, result.Verified)
	assert.Contains(t, result.Detail, "public key")
}

func TestVerify_EntryHashMismatchCountsAsInvalidSignature(t *testing.T) {
	result := Verify(CreditProof{
		PeerID:        "peer",
		EntryCount:    1,
		PublicKey:     "00",
		MerkleRoot:    "deadbeef",
		RootSignature: "00",
		SampleEntries: []SampledEntry{{EntryHash: "doesnotmatch"}},
	})
	assert.False(t, result.Verified)
	assert.Greater(t, result.InvalidSignatures, 0)
}
