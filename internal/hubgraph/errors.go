package hubgraph

import "errors"

// ErrIntegrity is wrapped by every validation error New returns, so callers
// can treat any malformed network as a single fatal condition.
var ErrIntegrity = errors.New("hubgraph: network integrity violation")

// Validation errors. Each one also matches ErrIntegrity under errors.Is.
var (
	ErrEmptyHubName       = integrity("hub name is empty")
	ErrDuplicateHub       = integrity("hub declared more than once")
	ErrDanglingNeighbor   = integrity("connection names an unknown hub")
	ErrNonPositiveWeight  = integrity("connection distance must be positive")
	ErrWeightTooLarge     = integrity("connection distance exceeds the network limit")
	ErrSelfLoop           = integrity("hub connects to itself")
	ErrDuplicateEdge      = integrity("connection declared more than once")
	ErrAsymmetricEdge     = integrity("return connection has a different distance")
	ErrUnknownDistrictHub = integrity("district maps to an unknown hub")
	ErrDuplicateDistrict  = integrity("district mapped more than once")
)

// integrityError is a validation failure that also unwraps to ErrIntegrity.
type integrityError struct{ msg string }

func integrity(msg string) error { return &integrityError{msg: msg} }

func (e *integrityError) Error() string { return "hubgraph: " + e.msg }

func (e *integrityError) Unwrap() error { return ErrIntegrity }
