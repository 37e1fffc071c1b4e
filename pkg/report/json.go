// Package report provides output formatters for coverage records:
// a styled console table, pretty-printed JSON, and a self-contained
// HTML document. Formatters are pure transformations of already
// gathered data; they never resolve names or touch the network.
package report

import (
	"encoding/json"
	"io"

	"github.com/unbound-force/apicov/pkg/coverage"
)

// WriteJSON writes the full coverage state as pretty-printed JSON,
// keyed path -> method -> {responses: {status: count}}. Every record
// is included regardless of count: the persisted file is meant to be
// an always-complete audit trail. Object keys marshal sorted, so the
// output is byte-stable for a given ledger state.
func WriteJSON(w io.Writer, records []coverage.Record) error {
	tree := coverage.BuildTree(records)

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(tree)
}

// ReadJSON parses a persisted coverage.json back into the canonical
// sorted record slice.
func ReadJSON(r io.Reader) ([]coverage.Record, error) {
	var tree coverage.Tree
	if err := json.NewDecoder(r).Decode(&tree); err != nil {
		return nil, err
	}
	return tree.Flatten(), nil
}
