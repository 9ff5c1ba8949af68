package modules

import "errors"

var (
	// ErrInvalidVariant indicates a blank variant name or a nil loader.
	ErrInvalidVariant = errors.New("modules: invalid variant")
	// ErrDuplicateVariant indicates an attempt to register a variant twice.
	ErrDuplicateVariant = errors.New("modules: duplicate variant")
	// ErrComponentMismatch occurs when a loader returns a component whose
	// name differs from the variant it was registered under.
	ErrComponentMismatch = errors.New("modules: component name does not match variant")
	// ErrLoadFailed wraps loader failures.
	ErrLoadFailed = errors.New("modules: component load failed")
)
