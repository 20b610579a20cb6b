package proofimpl

import (
	"context"
	"testing"

	"github.com/go-pkgz/lgr"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andrey/p2psearch-ledger/internal/domain/action"
	"github.com/andrey/p2psearch-ledger/internal/domain/canon"
	"github.com/andrey/p2psearch-ledger/internal/services/ledger"
	"github.com/andrey/p2psearch-ledger/internal/services/proof"
)

// fakeLedger is a minimal in-memory stand-in for ledger.Service, exposing
// only the LedgerReader slice the proof builder depends on.
type fakeLedger struct {
	earned  float64
	spent   float64
	entries []ledger.CreditEntry
}

func (f *fakeLedger) TotalEarned(context.Context) (float64, error) { return f.earned, nil }
func (f *fakeLedger) TotalSpent(context.Context) (float64, error)  { return f.spent, nil }
func (f *fakeLedger) SignedEntries(context.Context) ([]ledger.CreditEntry, error) {
	return f.entries, nil
}

func signedEntry(t *testing.T, kp canon.KeyPair, id uint64, act action.Action, credits float64) ledger.CreditEntry {
	t.Helper()
	e := ledger.CreditEntry{ID: id, Action: act, Quantity: credits, Weight: 1, Multiplier: 1, Credits: credits, Timestamp: 1000 + float64(id), Note: "n"}
	canonical := canon.EntryBytes(e.Action, e.Quantity, e.Weight, e.Multiplier, e.Credits, e.Timestamp, e.Note)
	e.EntryHash = canon.HashHex(canonical)
	e.Signature = hexEncode(kp.Sign(canonical))
	return e
}

func hexEncode(b []byte) string {
	const hexDigits = "0123456789abcdef"
	out := make([]byte, len(b)*2)
	for i, v := range b {
		out[i*2] = hexDigits[v>>4]
		out[i*2+1] = hexDigits[v&0x0f]
	}
	return string(out)
}

func TestNew_RequiresKeyPair(t *testing.T) {
	_, err := New(&fakeLedger{}, nil, lgr.New(lgr.Debug), func() float64 { return 0 })
	assert.ErrorIs(t, err, proof.ErrKeyPairRequired)
}

func TestBuild_EmptyLedgerIsTrivial(t *testing.T) {
	kp, err := canon.NewEd25519KeyPair("peer-empty")
	require.NoError(t, err)
	svc, err := New(&fakeLedger{}, kp, lgr.New(lgr.Debug), func() float64 { return 42 })
	require.NoError(t, err)

	p, err := svc.Build(context.Background(), "peer-empty", "req-1", 0)
	require.NoError(t, err)
	assert.Equal(t, 0, p.EntryCount)
	assert.Equal(t, "", p.MerkleRoot)
	assert.Empty(t, p.SampleEntries)
}

func TestBuild_ProducesVerifiableProof(t *testing.T) {
	kp, err := canon.NewEd25519KeyPair("peer-full")
	require.NoError(t, err)

	fl := &fakeLedger{earned: 100, spent: 10}
	for i := uint64(0); i < 20; i++ {
		fl.entries = append(fl.entries, signedEntry(t, kp, i, action.Crawl, 5))
	}

	svc, err := New(fl, kp, lgr.New(lgr.Debug), func() float64 { return 5000 })
	require.NoError(t, err)

	p, err := svc.Build(context.Background(), "peer-full", "req-2", 5)
	require.NoError(t, err)

	assert.Equal(t, 20, p.EntryCount)
	assert.Len(t, p.SampleEntries, 5)
	assert.Len(t, p.SampleProofs, 5)
	assert.NotEmpty(t, p.MerkleRoot)
	assert.NotEmpty(t, p.RootSignature)

	result := proof.Verify(p)
	assert.True(t, result.Verified, "detail: %s", result.Detail)
	assert.Equal(t, 0, result.InvalidSignatures)
	assert.Equal(t, 0, result.InvalidProofs)
}

func TestBuild_SampleSizeCappedAtEntryCount(t *testing.T) {
	kp, err := canon.NewEd25519KeyPair("peer-small")
	require.NoError(t, err)

	fl := &fakeLedger{}
	fl.entries = append(fl.entries, signedEntry(t, kp, 0, action.Crawl, 1))
	fl.entries = append(fl.entries, signedEntry(t, kp, 1, action.Crawl, 1))

	svc, err := New(fl, kp, lgr.New(lgr.Debug), func() float64 { return 1 })
	require.NoError(t, err)

	p, err := svc.Build(context.Background(), "peer-small", "", 50)
	require.NoError(t, err)
	assert.Len(t, p.SampleEntries, 2)
}

func TestVerify_DetectsTamperedCredits(t *testing.T) {
	kp, err := canon.NewEd25519KeyPair("peer-tamper")
	require.NoError(t, err)

	fl := &fakeLedger{}
	for i := uint64(0); i < 5; i++ {
		fl.entries = append(fl.entries, signedEntry(t, kp, i, action.Crawl, 5))
	}
	svc, err := New(fl, kp, lgr.New(lgr.Debug), func() float64 { return 1 })
	require.NoError(t, err)

	p, err := svc.Build(context.Background(), "peer-tamper", "", 5)
	require.NoError(t, err)

	p.SampleEntries[0].Credits = 9999

	result := proof.Verify(p)
	assert.False(t, result.Verified)
	assert.Greater(t, result.InvalidSignatures, 0)
}

func TestVerify_DetectsForgedRootSignature(t *testing.T) {
	kp, err := canon.NewEd25519KeyPair("peer-forge")
	require.NoError(t, err)
	other, err := canon.NewEd25519KeyPair("impostor")
	require.NoError(t, err)

	fl := &fakeLedger{}
	for i := uint64(0); i < 3; i++ {
		fl.entries = append(fl.entries, signedEntry(t, kp, i, action.Crawl, 5))
	}
	svc, err := New(fl, kp, lgr.New(lgr.Debug), func() float64 { return 1 })
	require.NoError(t, err)

	p, err := svc.Build(context.Background(), "peer-forge", "", 3)
	require.NoError(t, err)

	p.RootSignature = hexEncode(other.Sign(canon.RootBytes(p.MerkleRoot, p.EntryCount, p.PeerID)))

	result := proof.Verify(p)
	assert.False(t, result.Verified)
	assert.False(t, result.MerkleRootValid)
}
