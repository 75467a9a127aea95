package suite

import (
	"fmt"
	"sort"

	"golang.org/x/text/unicode/norm"
)

// ResolutionError is returned when a fully-qualified suite identifier
// does not resolve to a value matching a supported fingerprint.
type ResolutionError struct {
	Name    string
	Message string
}

// Error implements the error interface.
func (e *ResolutionError) Error() string {
	return fmt.Sprintf("cannot resolve suite %q: %s", e.Name, e.Message)
}

// Registry is an explicit lookup table of named suites. It stands in
// for process-wide singleton state: hosts construct one at startup,
// register every suite, and treat it as read-only afterwards.
//
// Identifiers are NFC-normalized on both registration and lookup so
// that equal names with different Unicode encodings resolve to the
// same suite.
type Registry struct {
	suites map[string]*Suite
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{suites: make(map[string]*Suite)}
}

// Register adds a suite under its own name.
// Registering a second suite with the same normalized name is an error.
func (r *Registry) Register(s *Suite) error {
	name := norm.NFC.String(s.Name())
	if name == "" {
		return fmt.Errorf("suite name must not be empty")
	}
	if _, ok := r.suites[name]; ok {
		return fmt.Errorf("suite %q is already registered", name)
	}
	r.suites[name] = s
	return nil
}

// Resolve returns the suite registered under the given fully-qualified
// identifier, provided the fingerprint is one this adapter supports.
func (r *Registry) Resolve(fqn string, fp Fingerprint) (*Suite, error) {
	if fp != runnableFingerprint {
		return nil, &ResolutionError{Name: fqn, Message: "unsupported fingerprint"}
	}
	s, ok := r.suites[norm.NFC.String(fqn)]
	if !ok {
		return nil, &ResolutionError{Name: fqn, Message: "no suite registered under that name"}
	}
	return s, nil
}

// Names returns the normalized names of all registered suites, sorted.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.suites))
	for name := range r.suites {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
