package timezone

import "errors"

// ErrZoneUnresolved marks an unknown IANA zone. Per the spec's error table
// this is never fatal: callers treat it as offset 0 and log it.
var ErrZoneUnresolved = errors.New("timezone: zone unresolved, treated as offset 0")
