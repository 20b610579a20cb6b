package canon

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andrey/p2psearch-ledger/internal/domain/action"
)

func TestFormatFloat_RoundTrips(t *testing.T) {
	assert.Equal(t, "1", formatFloat(1.0))
	assert.Equal(t, "0.5", formatFloat(0.5))
	assert.Equal(t, "1.3333333333333333", formatFloat(4.0/3.0))
}

func TestEntryBytes_IsDeterministic(t *testing.T) {
	b1 := EntryBytes(action.Crawl, 10, 1.0, 1.0, 10, 1700000000, "note")
	b2 := EntryBytes(action.Crawl, 10, 1.0, 1.0, 10, 1700000000, "note")
	assert.Equal(t, b1, b2)

	b3 := EntryBytes(action.Crawl, 10, 1.0, 1.0, 10, 1700000001, "note")
	assert.NotEqual(t, b1, b3)
}

func TestHashHex_IsStableAndDistinguishing(t *testing.T) {
	h1 := HashHex([]byte("a"))
	h2 := HashHex([]byte("a"))
	h3 := HashHex([]byte("b"))
	assert.Equal(t, h1, h2)
	assert.NotEqual(t, h1, h3)
	assert.Len(t, h1, 64)
}

func TestEd25519KeyPair_SignAndVerify(t *testing.T) {
	kp, err := NewEd25519KeyPair("peer-1")
	require.NoError(t, err)
	assert.Equal(t, "peer-1", kp.PeerID())

	msg := []byte("hello ledger")
	sig := kp.Sign(msg)

	assert.True(t, Verify(kp.PublicKeyBytes(), msg, sig))
	assert.False(t, Verify(kp.PublicKeyBytes(), []byte("tampered"), sig))
}

func TestLoadEd25519KeyPair_RoundTrips(t *testing.T) {
	original, err := NewEd25519KeyPair("peer-2")
	require.NoError(t, err)

	loaded := LoadEd25519KeyPair("peer-2", original.PrivateKeyBytes())
	assert.Equal(t, original.PublicKeyBytes(), loaded.PublicKeyBytes())

	msg := []byte("round trip")
	sig := loaded.Sign(msg)
	assert.True(t, Verify(original.PublicKeyBytes(), msg, sig))
}

func TestVerify_RejectsMalformedInput(t *testing.T) {
	assert.False(t, Verify([]byte("short"), []byte("msg"), []byte("sig")))
}
