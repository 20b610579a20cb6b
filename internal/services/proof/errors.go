package proof

import "errors"

// ErrKeyPairRequired is returned when building a proof without a signing
// capability: an unsigned ledger has nothing sound to attest to.
var ErrKeyPairRequired = errors.New("proof: building a credit proof requires a key pair")
