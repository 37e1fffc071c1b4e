package main

import (
	"strings"
	"testing"

	"github.com/unbound-force/apicov/pkg/coverage"
)

func TestRenderReportContent_Empty(t *testing.T) {
	output := renderReportContent(nil, false)

	if !strings.Contains(output, "0 declared response(s), 0 hit") {
		t.Errorf("expected output to contain '0 declared response(s), 0 hit', got:\n%s", output)
	}
	if !strings.Contains(output, "No coverage recorded.") {
		t.Errorf("expected placeholder for empty report, got:\n%s", output)
	}
}

func TestRenderReportContent_HitsOnly(t *testing.T) {
	records := []coverage.Record{
		{Path: "/items", Method: "get", Status: "200", Count: 2},
		{Path: "/items", Method: "get", Status: "404", Count: 0},
	}

	output := renderReportContent(records, false)

	if !strings.Contains(output, "/items") {
		t.Errorf("expected output to contain '/items', got:\n%s", output)
	}
	if !strings.Contains(output, "2 declared response(s), 1 hit") {
		t.Errorf("expected header counts, got:\n%s", output)
	}
	if strings.Contains(output, "404") {
		t.Errorf("zero-count row should be hidden without showZero, got:\n%s", output)
	}
}

func TestRenderReportContent_ShowZero(t *testing.T) {
	records := []coverage.Record{
		{Path: "/items", Method: "get", Status: "200", Count: 2},
		{Path: "/items", Method: "get", Status: "404", Count: 0},
	}

	output := renderReportContent(records, true)

	if !strings.Contains(output, "404") {
		t.Errorf("expected zero-count row with showZero, got:\n%s", output)
	}
}

func TestRenderReportContent_AllZero(t *testing.T) {
	records := []coverage.Record{
		{Path: "/items", Method: "get", Status: "200", Count: 0},
	}

	output := renderReportContent(records, false)

	if !strings.Contains(output, "No coverage recorded.") {
		t.Errorf("expected placeholder when every row is filtered out, got:\n%s", output)
	}
}

func TestNewReportModel_ContentPrepared(t *testing.T) {
	records := []coverage.Record{
		{Path: "/items", Method: "get", Status: "200", Count: 1},
	}

	m := newReportModel(records, false)

	if m.content == "" {
		t.Error("expected model content to be rendered up front")
	}
	if m.ready {
		t.Error("model should not be ready before the first window size message")
	}
	if m.View() != "Initializing..." {
		t.Errorf("unexpected initial view: %q", m.View())
	}
}
