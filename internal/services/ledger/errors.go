package ledger

import "errors"

// Predefined error kinds per the ledger's failure model: validation errors
// surface as ErrInvalidArgument with no state change; storage errors bubble
// up as ErrStorage with the transaction rolled back.
var (
	ErrInvalidArgument = errors.New("invalid argument")
	ErrStorage         = errors.New("ledger storage error")
	ErrNotFound        = errors.New("entry not found")
)
