package registration

import "strings"

// Entry is a single registration discovered from a source: a factory type
// name mapped to the implementation type names declared for it. No type
// resolution happens at discovery time; names stay strings until the loader
// resolves them through a type registry.
type Entry struct {
	// SourceID identifies the resource the entry came from, for diagnostics.
	SourceID string `json:"source_id"`
	// Key is the factory type name.
	Key string `json:"key"`
	// Implementations are the implementation type names, in declaration order.
	Implementations []string `json:"implementations"`
}

// Source supplies raw registration entries for a loader context.
// Implementations must return entries in a fixed, deterministic order so that
// repeated scans of the same context produce identical factory maps.
type Source interface {
	// ID identifies the source for diagnostics and error reporting.
	ID() string
	// Entries enumerates all registration entries of the source.
	// A malformed entry aborts the enumeration with ErrMalformedRegistration.
	Entries() ([]Entry, error)
}

// StaticSource is a Source backed by literal registration text. It is the
// building block for tests and for embedding registrations in binaries.
type StaticSource struct {
	id   string
	text string
}

// NewStaticSource creates a source from literal text in the standard
// key=value1,value2 line format.
func NewStaticSource(id, text string) *StaticSource {
	return &StaticSource{id: id, text: text}
}

// ID identifies the source.
func (s *StaticSource) ID() string { return s.id }

// Entries parses the literal text into registration entries.
func (s *StaticSource) Entries() ([]Entry, error) {
	return Parse(s.id, strings.NewReader(s.text))
}
