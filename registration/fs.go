package registration

import (
	"io/fs"
	"log/slog"
	"sort"

	"github.com/c360/factorykit/errors"
)

// FSSource discovers registration resources on a file system. All files
// matching the glob pattern are read in lexically sorted path order, which
// fixes the discovery order for a given tree; each file contributes its
// entries under its own path as the source identity.
type FSSource struct {
	fsys    fs.FS
	pattern string
	logger  *slog.Logger
}

// NewFSSource creates a source that reads every file matching pattern
// (an fs.Glob pattern, e.g. "factories/*.factories") from fsys.
func NewFSSource(fsys fs.FS, pattern string) *FSSource {
	return &FSSource{fsys: fsys, pattern: pattern, logger: slog.Default()}
}

// WithLogger replaces the logger used for discovery diagnostics.
func (s *FSSource) WithLogger(logger *slog.Logger) *FSSource {
	if logger != nil {
		s.logger = logger
	}
	return s
}

// ID identifies the source by its glob pattern.
func (s *FSSource) ID() string { return s.pattern }

// Entries reads and parses all matching files in sorted path order.
func (s *FSSource) Entries() ([]Entry, error) {
	matches, err := fs.Glob(s.fsys, s.pattern)
	if err != nil {
		return nil, errors.WrapInvalid(err, "FSSource", "Entries", "glob evaluation")
	}
	sort.Strings(matches)

	var entries []Entry
	for _, path := range matches {
		f, err := s.fsys.Open(path)
		if err != nil {
			return nil, errors.WrapTransient(err, "FSSource", "Entries", "resource open")
		}

		parsed, err := Parse(path, f)
		_ = f.Close()
		if err != nil {
			return nil, err
		}

		s.logger.Debug("parsed registration resource",
			"path", path,
			"entries", len(parsed))
		entries = append(entries, parsed...)
	}

	return entries, nil
}
