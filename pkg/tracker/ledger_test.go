package tracker

import (
	"testing"

	"github.com/unbound-force/apicov/pkg/coverage"
)

func TestLedger_EnsureInitializesZero(t *testing.T) {
	l := newLedger()
	l.ensure("/items", "get", "200")
	l.ensure("/items", "get", "404")

	records := l.snapshot()
	if len(records) != 2 {
		t.Fatalf("expected 2 records, got %d", len(records))
	}
	for _, r := range records {
		if r.Count != 0 {
			t.Errorf("counter %s %s %s should start at 0, got %d",
				r.Path, r.Method, r.Status, r.Count)
		}
	}
}

func TestLedger_EnsureDoesNotResetCounts(t *testing.T) {
	l := newLedger()
	l.ensure("/items", "get", "200")
	if got := l.record("/items", "get", "200"); got != coverage.OutcomeRecorded {
		t.Fatalf("record = %v, want recorded", got)
	}

	// Re-registration of the same triple must merge, not replace.
	l.ensure("/items", "get", "200")

	records := l.snapshot()
	if records[0].Count != 1 {
		t.Errorf("count after re-ensure = %d, want 1", records[0].Count)
	}
}

func TestLedger_RecordIncrementsByOne(t *testing.T) {
	l := newLedger()
	l.ensure("/items", "get", "200")

	for i := 0; i < 5; i++ {
		if got := l.record("/items", "get", "200"); got != coverage.OutcomeRecorded {
			t.Fatalf("record #%d = %v, want recorded", i+1, got)
		}
	}

	records := l.snapshot()
	if records[0].Count != 5 {
		t.Errorf("count = %d, want 5", records[0].Count)
	}
}

func TestLedger_UndeclaredIsNoOp(t *testing.T) {
	l := newLedger()
	l.ensure("/items", "get", "200")

	tests := []struct {
		name                 string
		path, method, status string
	}{
		{"undeclared path", "/orders", "get", "200"},
		{"undeclared method", "/items", "post", "200"},
		{"undeclared status", "/items", "get", "404"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := l.record(tt.path, tt.method, tt.status); got != coverage.OutcomeUndeclared {
				t.Errorf("record = %v, want undeclared", got)
			}
		})
	}

	records := l.snapshot()
	if len(records) != 1 || records[0].Count != 0 {
		t.Errorf("undeclared records must leave counters unchanged: %+v", records)
	}
}

func TestLedger_SnapshotOrderDeterministic(t *testing.T) {
	l := newLedger()
	// Insert in deliberately scrambled order.
	l.ensure("/users/{id}", "get", "404")
	l.ensure("/items", "post", "201")
	l.ensure("/users/{id}", "get", "200")
	l.ensure("/items", "get", "200")
	l.ensure("/items", "delete", "204")

	want := []coverage.Record{
		{Path: "/items", Method: "delete", Status: "204"},
		{Path: "/items", Method: "get", Status: "200"},
		{Path: "/items", Method: "post", Status: "201"},
		{Path: "/users/{id}", Method: "get", Status: "200"},
		{Path: "/users/{id}", Method: "get", Status: "404"},
	}

	got := l.snapshot()
	if len(got) != len(want) {
		t.Fatalf("expected %d records, got %d", len(want), len(got))
	}
	for i := range want {
		if got[i].Path != want[i].Path || got[i].Method != want[i].Method || got[i].Status != want[i].Status {
			t.Errorf("record %d = %s %s %s, want %s %s %s", i,
				got[i].Path, got[i].Method, got[i].Status,
				want[i].Path, want[i].Method, want[i].Status)
		}
	}
}
