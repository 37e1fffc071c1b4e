// Package contract loads API contract documents and converts them
// into a validated, strongly typed set of declared operations. Source
// documents arrive as loosely typed nested mappings (parsed YAML or
// JSON); malformed documents are rejected here, at the load boundary,
// so the matching and counting logic never sees loose maps.
package contract

import (
	"fmt"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

// Operation is one declared (path, method) pair from a contract,
// with its expected response statuses. Methods are stored lower-case;
// statuses keep their string form from the document.
type Operation struct {
	Path     string
	Method   string
	Statuses []string
}

// Document is the validated in-memory form of a contract.
//
// Operation order is deterministic: paths, then methods, then
// statuses, each sorted lexicographically. Go maps do not preserve
// the source document's key order, so within a single document this
// sorted order is what defines registration order (and therefore
// match precedence) when the document is registered with a tracker.
// Across documents, precedence follows the order of Register calls.
type Document struct {
	Operations []Operation
}

// httpMethods is the set of keys under a path item that name
// operations. Anything else (parameters, summary, servers, ...) is
// ignored by the lenient parsers.
var httpMethods = map[string]bool{
	"get":     true,
	"put":     true,
	"post":    true,
	"delete":  true,
	"options": true,
	"head":    true,
	"patch":   true,
	"trace":   true,
}

// Parse reads a YAML (or JSON) contract fragment with the shape
//
//	paths:
//	  /items:
//	    get:
//	      responses:
//	        "200": {...}
//
// without requiring a full OpenAPI document. Unknown keys are
// ignored; a missing or empty paths mapping is a load error.
func Parse(data []byte) (*Document, error) {
	var raw map[string]any
	if err := yaml.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parsing contract: %w", err)
	}
	return FromMap(raw)
}

// FromMap builds a Document from an already-parsed nested mapping
// (as produced by yaml.v3 or encoding/json into map[string]any).
func FromMap(raw map[string]any) (*Document, error) {
	pathsVal, ok := raw["paths"]
	if !ok {
		return nil, fmt.Errorf("contract has no paths mapping")
	}
	paths, err := asMap(pathsVal)
	if err != nil {
		return nil, fmt.Errorf("contract paths: %w", err)
	}
	if len(paths) == 0 {
		return nil, fmt.Errorf("contract declares no paths")
	}

	doc := &Document{}
	for _, path := range sortedKeys(paths) {
		item, err := asMap(paths[path])
		if err != nil {
			return nil, fmt.Errorf("path %q: %w", path, err)
		}
		for _, method := range sortedKeys(item) {
			m := strings.ToLower(method)
			if !httpMethods[m] {
				continue
			}
			op, err := asMap(item[method])
			if err != nil {
				return nil, fmt.Errorf("path %q method %q: %w", path, method, err)
			}
			statuses, err := operationStatuses(op)
			if err != nil {
				return nil, fmt.Errorf("path %q method %q: %w", path, method, err)
			}
			doc.Operations = append(doc.Operations, Operation{
				Path:     path,
				Method:   m,
				Statuses: statuses,
			})
		}
	}

	if len(doc.Operations) == 0 {
		return nil, fmt.Errorf("contract declares no operations")
	}
	return doc, nil
}

// operationStatuses extracts the sorted status-code strings from an
// operation's responses mapping.
func operationStatuses(op map[string]any) ([]string, error) {
	respVal, ok := op["responses"]
	if !ok {
		return nil, fmt.Errorf("operation has no responses")
	}
	responses, err := asMap(respVal)
	if err != nil {
		return nil, fmt.Errorf("responses: %w", err)
	}
	statuses := sortedKeys(responses)
	if len(statuses) == 0 {
		return nil, fmt.Errorf("operation declares no response statuses")
	}
	return statuses, nil
}

// asMap normalizes the two mapping shapes yaml.v3 and encoding/json
// produce (string-keyed and any-keyed) into map[string]any.
func asMap(v any) (map[string]any, error) {
	switch m := v.(type) {
	case map[string]any:
		return m, nil
	case map[any]any:
		out := make(map[string]any, len(m))
		for k, val := range m {
			ks, ok := k.(string)
			if !ok {
				ks = fmt.Sprint(k)
			}
			out[ks] = val
		}
		return out, nil
	case nil:
		return nil, fmt.Errorf("expected a mapping, got null")
	default:
		return nil, fmt.Errorf("expected a mapping, got %T", v)
	}
}

func sortedKeys(m map[string]any) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
