// Package registration defines registration sources: where factory
// registrations come from and how their text format is parsed.
//
// A registration resource is newline-separated text in the form
//
//	# comments and blank lines are ignored
//	FactoryTypeName=ImplementationA, ImplementationB
//	FactoryTypeName=ImplementationC
//
// Repeated keys merge additively; ordering and deduplication across sources
// are the loader's concern, not the source's. Parsing is fail-fast: a single
// malformed line aborts the whole enumeration with the offending source
// identity, keeping the merged factory map deterministic under partial
// failure.
//
// Two Source implementations are provided: FSSource reads every file matching
// a glob pattern from an fs.FS in sorted path order (works with os.DirFS and
// embed.FS alike), and StaticSource wraps literal text for tests and
// embedded registrations.
package registration
