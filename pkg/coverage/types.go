// Package coverage defines the core data types shared between the
// tracker engine and the report formatters: coverage records, match
// outcomes, and the serialized coverage tree.
package coverage

import "sort"

// Record is a reporting-time tuple derived from the ledger: one
// declared (path, method, status) triple and how many observed calls
// hit it. Records are never primary state; they are materialized on
// demand.
type Record struct {
	// Path is the declared path template, unprefixed (e.g.
	// "/users/{id}").
	Path string `json:"path"`

	// Method is the lower-cased HTTP method (e.g. "get").
	Method string `json:"method"`

	// Status is the declared response status as a string (e.g. "200").
	Status string `json:"status"`

	// Count is the number of matching observed calls.
	Count int `json:"count"`
}

// Outcome classifies what happened to a single observed call when it
// was fed to the tracker. It distinguishes "nothing matched" from
// "matched but not declared" without relying on the absence of side
// effects.
type Outcome int

// Outcome values, in increasing order of how far the call got.
const (
	// OutcomeNoResponse means the failure carried no HTTP response at
	// all (pure network failure); there is nothing to count.
	OutcomeNoResponse Outcome = iota

	// OutcomeNoPathMatch means no declared path template matched the
	// normalized request path.
	OutcomeNoPathMatch

	// OutcomeUndeclared means a path template matched but the method
	// or status was not declared for that operation.
	OutcomeUndeclared

	// OutcomeRecorded means a declared counter was incremented.
	OutcomeRecorded
)

func (o Outcome) String() string {
	switch o {
	case OutcomeNoResponse:
		return "no-response"
	case OutcomeNoPathMatch:
		return "no-path-match"
	case OutcomeUndeclared:
		return "undeclared"
	case OutcomeRecorded:
		return "recorded"
	default:
		return "unknown"
	}
}

// MethodCoverage holds the per-status counters for one declared
// operation in the serialized tree.
type MethodCoverage struct {
	Responses map[string]int `json:"responses"`
}

// Tree is the persisted coverage.json shape: path -> method ->
// {responses: {status: count}}. JSON object keys marshal in sorted
// order, so the artifact is deterministic.
type Tree map[string]map[string]MethodCoverage

// BuildTree folds a flat record slice into the nested tree form.
func BuildTree(records []Record) Tree {
	tree := make(Tree)
	for _, r := range records {
		methods, ok := tree[r.Path]
		if !ok {
			methods = make(map[string]MethodCoverage)
			tree[r.Path] = methods
		}
		mc, ok := methods[r.Method]
		if !ok {
			mc = MethodCoverage{Responses: make(map[string]int)}
			methods[r.Method] = mc
		}
		mc.Responses[r.Status] = r.Count
	}
	return tree
}

// Flatten converts a tree back into the canonical sorted record slice
// (by path, then method, then status, lexicographically).
func (t Tree) Flatten() []Record {
	var records []Record
	for path, methods := range t {
		for method, mc := range methods {
			for status, count := range mc.Responses {
				records = append(records, Record{
					Path:   path,
					Method: method,
					Status: status,
					Count:  count,
				})
			}
		}
	}
	SortRecords(records)
	return records
}

// SortRecords sorts records in place into the canonical report order:
// path, then method, then status, lexicographically. The order is
// stable across runs so reports and tests are reproducible.
func SortRecords(records []Record) {
	sort.Slice(records, func(i, j int) bool {
		a, b := records[i], records[j]
		if a.Path != b.Path {
			return a.Path < b.Path
		}
		if a.Method != b.Method {
			return a.Method < b.Method
		}
		return a.Status < b.Status
	})
}
