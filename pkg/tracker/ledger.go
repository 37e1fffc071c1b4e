package tracker

import (
	"github.com/unbound-force/apicov/pkg/coverage"
)

// opKey identifies one declared operation.
type opKey struct {
	path   string
	method string
}

// ledger is the mutable counter store: one counter per declared
// (path, method, status) triple. Counters are created zero-valued at
// contract registration and only ever incremented afterwards. An
// observed call outside the declared surface is a no-op, never an
// error: the tool reports contract coverage, not arbitrary traffic.
type ledger struct {
	counters map[opKey]map[string]int
}

func newLedger() *ledger {
	return &ledger{counters: make(map[opKey]map[string]int)}
}

// ensure creates the counter for a declared triple if it does not
// exist. An existing counter keeps its value, so registering a second
// contract over the same operation merges rather than resets.
func (l *ledger) ensure(path, method, status string) {
	key := opKey{path: path, method: method}
	statuses, ok := l.counters[key]
	if !ok {
		statuses = make(map[string]int)
		l.counters[key] = statuses
	}
	if _, ok := statuses[status]; !ok {
		statuses[status] = 0
	}
}

// record increments the counter for a declared triple by exactly one.
// It reports OutcomeUndeclared, without mutating anything, when the
// operation or the status was never declared.
func (l *ledger) record(path, method, status string) coverage.Outcome {
	statuses, ok := l.counters[opKey{path: path, method: method}]
	if !ok {
		return coverage.OutcomeUndeclared
	}
	if _, ok := statuses[status]; !ok {
		return coverage.OutcomeUndeclared
	}
	statuses[status]++
	return coverage.OutcomeRecorded
}

// snapshot materializes every declared triple, including zero counts,
// in the canonical deterministic order (path, method, status).
func (l *ledger) snapshot() []coverage.Record {
	records := make([]coverage.Record, 0, len(l.counters))
	for key, statuses := range l.counters {
		for status, count := range statuses {
			records = append(records, coverage.Record{
				Path:   key.path,
				Method: key.method,
				Status: status,
				Count:  count,
			})
		}
	}
	coverage.SortRecords(records)
	return records
}
