// Package canon implements the deterministic byte encoding, hashing, and
// signing primitives shared by the ledger and the credit-proof protocol.
//
// Canonical-bytes identity is the single most important cross-peer contract
// in this system: any divergence in number formatting breaks every proof a
// peer has ever issued. This package pins the format to Go's shortest
// round-trip decimal (strconv.FormatFloat with precision -1), the
// recommendation in the design notes.
package canon

import (
	"crypto/ed25519"
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strconv"

	"github.com/andrey/p2psearch-ledger/internal/domain/action"
)

// formatFloat renders v using the shortest decimal string that round-trips
// back to the same float64. This is the canonical number format referenced
// throughout the spec.
func formatFloat(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}

// EntryBytes builds the canonical byte encoding of a credit entry:
//
//	"{action}|{quantity}|{weight}|{multiplier}|{credits}|{timestamp}|{note}"
func EntryBytes(act action.Action, quantity, weight, multiplier, credits, timestamp float64, note string) []byte {
	s := fmt.Sprintf("%s|%s|%s|%s|%s|%s|%s",
		string(act),
		formatFloat(quantity),
		formatFloat(weight),
		formatFloat(multiplier),
		formatFloat(credits),
		formatFloat(timestamp),
		note,
	)
	return []byte(s)
}

// RootBytes builds the canonical byte encoding signed over a credit proof's
// Merkle root: "{merkle_root}|{entry_count}|{peer_id}".
func RootBytes(merkleRootHex string, entryCount int, peerID string) []byte {
	s := fmt.Sprintf("%s|%d|%s", merkleRootHex, entryCount, peerID)
	return []byte(s)
}

// Hash returns the 32-byte SHA-256 digest of b.
func Hash(b []byte) [32]byte {
	return sha256.Sum256(b)
}

// HashHex returns the lowercase hex encoding of Hash(b).
func HashHex(b []byte) string {
	h := Hash(b)
	return hex.EncodeToString(h[:])
}

// KeyPair is the signing capability the ledger and proof builder depend on.
// Consumers never import crypto globally; they receive this capability,
// which keeps the ledger testable with mock signers.
type KeyPair interface {
	PeerID() string
	PublicKeyBytes() []byte
	Sign(message []byte) []byte
}

// Ed25519KeyPair is the production KeyPair backed by crypto/ed25519.
type Ed25519KeyPair struct {
	peerID string
	pub    ed25519.PublicKey
	priv   ed25519.PrivateKey
}

// NewEd25519KeyPair generates a fresh Ed25519 key pair for peerID.
func NewEd25519KeyPair(peerID string) (*Ed25519KeyPair, error) {
	pub, priv, err := ed25519.GenerateKey(rand.Reader)
	if err != nil {
		return nil, fmt.Errorf("generate ed25519 key pair: %w", err)
	}
	return &Ed25519KeyPair{peerID: peerID, pub: pub, priv: priv}, nil
}

// LoadEd25519KeyPair builds a key pair from an existing 64-byte seed-expanded
// private key (as produced by ed25519.NewKeyFromSeed or persisted to disk).
func LoadEd25519KeyPair(peerID string, priv ed25519.PrivateKey) *Ed25519KeyPair {
	return &Ed25519KeyPair{
		peerID: peerID,
		pub:    priv.Public().(ed25519.PublicKey),
		priv:   priv,
	}
}

func (k *Ed25519KeyPair) PeerID() string { return k.peerID }

func (k *Ed25519KeyPair) PublicKeyBytes() []byte {
	out := make([]byte, len(k.pub))
	copy(out, k.pub)
	return out
}

// PrivateKeyBytes returns the 64-byte seed-expanded private key, so the
// caller can persist a generated key pair to disk for reuse across restarts.
func (k *Ed25519KeyPair) PrivateKeyBytes() []byte {
	out := make([]byte, len(k.priv))
	copy(out, k.priv)
	return out
}

func (k *Ed25519KeyPair) Sign(message []byte) []byte {
	return ed25519.Sign(k.priv, message)
}

// Verify checks sig against message using the 32-byte Ed25519 public key
// pub. It returns false (never panics) on malformed input.
func Verify(pub []byte, message, sig []byte) bool {
	if len(pub) != ed25519.PublicKeySize || len(sig) != ed25519.SignatureSize {
		return false
	}
	return ed25519.Verify(ed25519.PublicKey(pub), message, sig)
}
