package registration

import (
	"bufio"
	"fmt"
	"io"
	"strings"

	"github.com/c360/factorykit/errors"
)

// Parse reads newline-separated registration entries from r in the form
//
//	key=value1,value2,...
//
// Keys and values are trimmed of surrounding whitespace. Blank lines and
// lines starting with '#' are ignored. A line without a '=' separator or
// with an empty key is a malformed registration and aborts the whole parse;
// the returned error names the offending source (fail-fast aggregation).
func Parse(sourceID string, r io.Reader) ([]Entry, error) {
	var entries []Entry

	scanner := bufio.NewScanner(r)
	lineNo := 0
	for scanner.Scan() {
		lineNo++
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		key, values, found := strings.Cut(line, "=")
		key = strings.TrimSpace(key)
		if !found || key == "" {
			return nil, errors.WrapFatal(
				fmt.Errorf("%w: source %q line %d: %q",
					errors.ErrMalformedRegistration, sourceID, lineNo, line),
				"registration", "Parse", "entry parsing")
		}

		entries = append(entries, Entry{
			SourceID:        sourceID,
			Key:             key,
			Implementations: splitValues(values),
		})
	}
	if err := scanner.Err(); err != nil {
		return nil, errors.WrapTransient(err, "registration", "Parse", "source read")
	}

	return entries, nil
}

// splitValues splits a comma-separated value list, trimming each value and
// dropping empties so that trailing commas do not register phantom names.
func splitValues(values string) []string {
	parts := strings.Split(values, ",")
	result := make([]string, 0, len(parts))
	for _, p := range parts {
		if v := strings.TrimSpace(p); v != "" {
			result = append(result, v)
		}
	}
	return result
}
