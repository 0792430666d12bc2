package crntext

import (
	"errors"
	"fmt"
	"strings"
)

// Common errors used throughout the crntext package
var (
	// ErrSyntax is returned when input text does not match the CRN grammar.
	ErrSyntax = errors.New("text does not match the CRN grammar")
	// ErrFormat indicates a parse record violated an internal shape invariant.
	ErrFormat = errors.New("malformed reaction record")
	// ErrConsistency indicates species category declarations contradict each other.
	ErrConsistency = errors.New("inconsistent species declaration")
)

// ConsistencyError reports every species that was declared as both a signal
// and a fuel species. It is raised once, after the whole document has been
// processed, rather than on the first offending species.
type ConsistencyError struct {
	Species []string
}

func (e *ConsistencyError) Error() string {
	return fmt.Sprintf("%s declared as signal & fuel species", strings.Join(e.Species, ", "))
}

func (e *ConsistencyError) Unwrap() error {
	return ErrConsistency
}
