package tracker

import (
	"fmt"
	"regexp"
	"strings"
)

// CatchAllPath is the reserved "proxy all requests" path template.
// It carries no concrete path to report against, so registration
// skips it: it never produces a matcher entry or a counter, and calls
// that would only have matched it are dropped.
const CatchAllPath = "/{proxy+}"

// templateEntry pairs a compiled path template with the declared path
// it reports under. Entries are immutable after creation.
type templateEntry struct {
	pattern *regexp.Regexp
	// declaredPath is the unprefixed contract path used for
	// reporting (the compiled pattern may include a path prefix).
	declaredPath string
	// compiledFrom is the prefixed template source, used to detect
	// re-registration of the same template.
	compiledFrom string
}

// matcher resolves an observed request path to the declared path
// template it satisfies. Templates are kept in an ordered list and
// tried in registration order; the first full match wins. This makes
// precedence between overlapping templates an explicit part of the
// contract: earlier registrations shadow later ones, and no
// most-specific-match reordering is attempted.
type matcher struct {
	entries []templateEntry
}

// add compiles a template and appends it, unless the identical
// prefixed template is already registered (a second contract
// declaring the same path reuses the existing entry).
func (m *matcher) add(template, declaredPath string) error {
	for _, e := range m.entries {
		if e.compiledFrom == template {
			return nil
		}
	}
	re, err := compileTemplate(template)
	if err != nil {
		return err
	}
	m.entries = append(m.entries, templateEntry{
		pattern:      re,
		declaredPath: declaredPath,
		compiledFrom: template,
	})
	return nil
}

// resolve returns the declared path for the first template that fully
// matches the normalized request path, or false if none do.
func (m *matcher) resolve(path string) (string, bool) {
	for _, e := range m.entries {
		if e.pattern.MatchString(path) {
			return e.declaredPath, true
		}
	}
	return "", false
}

// compileTemplate turns a declared path into an anchored regexp.
// A segment written entirely as a brace-delimited placeholder, e.g.
// "{id}", matches one or more non-whitespace characters within that
// single segment; every other character matches literally. The
// pattern is anchored at both ends so "/users/{id}" matches
// "/users/42" but neither "/users" nor "/users/42/sessions".
func compileTemplate(template string) (*regexp.Regexp, error) {
	segments := strings.Split(template, "/")
	parts := make([]string, len(segments))
	for i, seg := range segments {
		if isPlaceholder(seg) {
			parts[i] = `[^/\s]+`
			continue
		}
		parts[i] = regexp.QuoteMeta(seg)
	}
	re, err := regexp.Compile("^" + strings.Join(parts, "/") + "$")
	if err != nil {
		return nil, fmt.Errorf("compiling path template %q: %w", template, err)
	}
	return re, nil
}

// isPlaceholder reports whether a segment is a parameter placeholder
// occupying the whole segment, e.g. "{userId}".
func isPlaceholder(segment string) bool {
	return len(segment) > 2 &&
		strings.HasPrefix(segment, "{") &&
		strings.HasSuffix(segment, "}")
}
