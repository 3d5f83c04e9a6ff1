package memory

import "errors"

var (
	// ErrBackendUnavailable indicates the similarity backend cannot be
	// reached or constructed. At construction time the System handles it by
	// substituting the fallback store; at call time it surfaces to the
	// caller, which owns any retry policy.
	ErrBackendUnavailable = errors.New("memory: backend unavailable")

	// ErrMalformedRecord indicates a record holds a value the canonical
	// serializer rejects (channels, functions, cyclic structures). The
	// caller is responsible for record contents; already-stored records are
	// never affected.
	ErrMalformedRecord = errors.New("memory: malformed record")
)
