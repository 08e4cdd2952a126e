package edgegame

import "errors"

// Errors
var (
	ErrNilGraph          = errors.New("nil graph")
	ErrBadEdgeInput      = errors.New("bad edge input")
	ErrUnknownGenerator  = errors.New("unknown graph generator")
	ErrBadGeneratorParam = errors.New("bad graph generator param")
	ErrUnknownStore      = errors.New("unknown memo store kind")
	ErrBadStoreParam     = errors.New("bad memo store param")
	ErrMalformedRecord   = errors.New("malformed memo record")
	ErrMemoConflict      = errors.New("memo record conflicts with solved value")
	ErrStoreReadOnly     = errors.New("memo store was opened read-only")
	ErrStoreClosed       = errors.New("memo store is closed")
	ErrBadConfig         = errors.New("bad config value")
)
