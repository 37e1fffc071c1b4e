// Package tracker implements the coverage tracking engine: it
// registers contract documents, matches observed HTTP calls against
// the declared path templates, and maintains cumulative hit counters
// per declared (path, method, status) triple.
//
// A Tracker is owned by one instrumented client session and expects
// sequential use: each observed response or error is processed fully
// (normalize, match, count, optionally persist) before the next one.
// It performs no internal locking; a port that records from multiple
// goroutines must serialize calls or guard them with a mutex.
package tracker

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	charmlog "github.com/charmbracelet/log"
	"github.com/unbound-force/apicov/pkg/contract"
	"github.com/unbound-force/apicov/pkg/coverage"
	"github.com/unbound-force/apicov/pkg/report"
)

// Output formats for persisted report artifacts.
const (
	FormatNone = "none"
	FormatHTML = "html"
)

// Names of the artifacts written into Config.OutputPath when
// file output is enabled.
const (
	JSONFileName = "coverage.json"
	HTMLFileName = "coverage_output.html"
)

// ErrNoURL is the normalization failure class: an observed call from
// which no usable URL can be derived. This indicates a defect in the
// calling integration, so it surfaces as an error instead of being
// silently dropped (a silent drop would corrupt coverage silently).
var ErrNoURL = errors.New("observed call has no usable URL")

// Config configures a Tracker.
type Config struct {
	// OutputFormat selects artifact persistence: FormatHTML writes
	// coverage.json and coverage_output.html after every recorded
	// call; FormatNone (the default) keeps coverage in memory only.
	OutputFormat string

	// OutputPath is the directory artifacts are written into.
	// Defaults to the current working directory.
	OutputPath string

	// Debug enables debug-level logging of unmatched and undeclared
	// calls.
	Debug bool

	// Logger receives diagnostics. Defaults to a stderr logger.
	Logger *charmlog.Logger
}

// RegisterOptions modifies a single contract registration.
type RegisterOptions struct {
	// PathPrefix is prepended to every declared path before template
	// compilation. The declared path retained for reporting stays
	// unprefixed, so report output keeps the contract's own
	// vocabulary while supporting deployments where the prefix lives
	// outside the contract (e.g. in a server base URL).
	PathPrefix string
}

// Tracker is the coverage tracking engine. Create one with New and
// register one or more contracts; registrations accumulate into the
// same matcher and ledger.
type Tracker struct {
	cfg     Config
	matcher *matcher
	ledger  *ledger
	logger  *charmlog.Logger
}

// New creates a Tracker from the given configuration.
func New(cfg Config) (*Tracker, error) {
	switch cfg.OutputFormat {
	case "", FormatNone, FormatHTML:
	default:
		return nil, fmt.Errorf("invalid output format %q: must be %q or %q",
			cfg.OutputFormat, FormatNone, FormatHTML)
	}
	if cfg.OutputFormat == "" {
		cfg.OutputFormat = FormatNone
	}
	if cfg.OutputPath == "" {
		cfg.OutputPath = "."
	}

	logger := cfg.Logger
	if logger == nil {
		logger = charmlog.NewWithOptions(os.Stderr, charmlog.Options{
			ReportTimestamp: false,
		})
	}
	if cfg.Debug {
		logger.SetLevel(charmlog.DebugLevel)
	}

	return &Tracker{
		cfg:     cfg,
		matcher: &matcher{},
		ledger:  newLedger(),
		logger:  logger,
	}, nil
}

// Register adds a contract's declared operations to the tracker.
//
// Registration is all-or-nothing for the document: every path
// template is compiled before the matcher or ledger is touched, so a
// template that fails to compile leaves the tracker unchanged. The
// reserved catch-all path is skipped entirely.
func (t *Tracker) Register(doc *contract.Document, opts RegisterOptions) error {
	if doc == nil || len(doc.Operations) == 0 {
		return fmt.Errorf("contract declares no operations")
	}

	type staged struct {
		template     string
		declaredPath string
	}
	var templates []staged
	seen := make(map[string]bool)
	for _, op := range doc.Operations {
		if op.Path == CatchAllPath {
			continue
		}
		template := opts.PathPrefix + op.Path
		if seen[template] {
			continue
		}
		seen[template] = true
		if _, err := compileTemplate(template); err != nil {
			return fmt.Errorf("registering contract: %w", err)
		}
		templates = append(templates, staged{template: template, declaredPath: op.Path})
	}

	for _, s := range templates {
		if err := t.matcher.add(s.template, s.declaredPath); err != nil {
			return fmt.Errorf("registering contract: %w", err)
		}
	}
	for _, op := range doc.Operations {
		if op.Path == CatchAllPath {
			continue
		}
		for _, status := range op.Statuses {
			t.ledger.ensure(op.Path, op.Method, status)
		}
	}
	return nil
}

// RegisterFile loads an OpenAPI document from a file and registers it.
func (t *Tracker) RegisterFile(path string, opts RegisterOptions) error {
	doc, err := contract.LoadFile(path)
	if err != nil {
		return err
	}
	return t.Register(doc, opts)
}

// CallConfig describes how an observed request was issued.
type CallConfig struct {
	Method string
	URL    string
	// BaseURL is the base the URL may have been combined with at
	// request time; empty when the URL is already absolute.
	BaseURL string
}

// Response is the success-side descriptor of an observed exchange.
type Response struct {
	Config CallConfig
	Status int
}

// CallError is the failure-side descriptor. Response is nil for pure
// network failures that produced no HTTP response.
type CallError struct {
	Response *Response
	Err      error
}

// RecordResponse normalizes one observed successful exchange and
// records it against the contract surface. The returned Outcome
// reports how far the call got; an error is returned only for
// normalization failures (ErrNoURL) and best-effort artifact writes
// that failed after the counter was already committed.
func (t *Tracker) RecordResponse(resp Response) (coverage.Outcome, error) {
	path, err := normalizePath(resp.Config)
	if err != nil {
		t.logger.Error("cannot derive request path from observed call",
			"url", resp.Config.URL, "baseURL", resp.Config.BaseURL, "err", err)
		return coverage.OutcomeNoPathMatch, err
	}
	method := strings.ToLower(resp.Config.Method)
	status := strconv.Itoa(resp.Status)

	outcome := t.recordNormalized(path, method, status)

	if t.cfg.OutputFormat == FormatHTML {
		if err := t.Flush(); err != nil {
			t.logger.Warn("writing coverage artifacts failed", "err", err)
			return outcome, err
		}
	}
	return outcome, nil
}

// RecordError consumes the failure side of an observed exchange. An
// embedded HTTP error response (4xx/5xx) is recorded like a success;
// a failure with no response at all cannot be counted against the
// contract and leaves the ledger untouched.
func (t *Tracker) RecordError(ce CallError) (coverage.Outcome, error) {
	if ce.Response == nil {
		t.logger.Warn("observed failure is not an HTTP response; nothing to record",
			"err", ce.Err)
		return coverage.OutcomeNoResponse, nil
	}
	return t.RecordResponse(*ce.Response)
}

// recordNormalized resolves the normalized path and mutates the
// ledger. Unmatched and undeclared calls are silently ignored apart
// from debug logging.
func (t *Tracker) recordNormalized(path, method, status string) coverage.Outcome {
	declaredPath, ok := t.matcher.resolve(path)
	if !ok {
		t.logger.Debug("no declared path matches observed call",
			"path", path, "method", method, "status", status)
		return coverage.OutcomeNoPathMatch
	}
	outcome := t.ledger.record(declaredPath, method, status)
	if outcome == coverage.OutcomeUndeclared {
		t.logger.Debug("call matched a declared path but not a declared operation",
			"path", declaredPath, "method", method, "status", status)
	}
	return outcome
}

// Snapshot returns every declared triple with its current count, in
// the canonical deterministic order.
func (t *Tracker) Snapshot() []coverage.Record {
	return t.ledger.snapshot()
}

// Flush rewrites the coverage artifacts (coverage.json and
// coverage_output.html) in OutputPath from the current ledger state.
// The write is wholesale, not transactional: a partial file from a
// crash is overwritten by the next successful flush, and the
// in-memory ledger stays authoritative throughout.
func (t *Tracker) Flush() error {
	records := t.ledger.snapshot()

	jsonFile, err := os.Create(filepath.Join(t.cfg.OutputPath, JSONFileName))
	if err != nil {
		return fmt.Errorf("writing %s: %w", JSONFileName, err)
	}
	if err := report.WriteJSON(jsonFile, records); err != nil {
		jsonFile.Close()
		return fmt.Errorf("writing %s: %w", JSONFileName, err)
	}
	if err := jsonFile.Close(); err != nil {
		return fmt.Errorf("writing %s: %w", JSONFileName, err)
	}

	htmlFile, err := os.Create(filepath.Join(t.cfg.OutputPath, HTMLFileName))
	if err != nil {
		return fmt.Errorf("writing %s: %w", HTMLFileName, err)
	}
	if err := report.WriteHTML(htmlFile, records); err != nil {
		htmlFile.Close()
		return fmt.Errorf("writing %s: %w", HTMLFileName, err)
	}
	if err := htmlFile.Close(); err != nil {
		return fmt.Errorf("writing %s: %w", HTMLFileName, err)
	}
	return nil
}

// normalizePath derives the path component used for matching: the
// base URL (when present) is concatenated with the request URL, the
// combined string is parsed, and everything but the path (query,
// fragment, scheme, host) is discarded.
func normalizePath(cfg CallConfig) (string, error) {
	raw := cfg.URL
	if cfg.BaseURL != "" {
		raw = cfg.BaseURL + cfg.URL
	}
	if raw == "" {
		return "", fmt.Errorf("%w: neither url nor baseURL is set", ErrNoURL)
	}
	u, err := url.Parse(raw)
	if err != nil {
		return "", fmt.Errorf("%w: parsing %q: %v", ErrNoURL, raw, err)
	}
	if u.Path == "" {
		return "/", nil
	}
	return u.Path, nil
}
