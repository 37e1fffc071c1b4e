package contract

import (
	"fmt"
	"sort"
	"strings"

	"github.com/getkin/kin-openapi/openapi3"
)

// LoadFile loads an OpenAPI 3.x document (YAML or JSON) from a file
// path and converts it into a Document. The document is not validated
// against the OpenAPI specification; only the paths/operations/
// responses structure needs to be usable.
func LoadFile(path string) (*Document, error) {
	loader := openapi3.NewLoader()
	loader.IsExternalRefsAllowed = true

	doc, err := loader.LoadFromFile(path)
	if err != nil {
		return nil, fmt.Errorf("loading contract from %s: %w", path, err)
	}
	return FromOpenAPI(doc)
}

// LoadBytes loads an OpenAPI 3.x document from memory.
func LoadBytes(data []byte) (*Document, error) {
	loader := openapi3.NewLoader()
	loader.IsExternalRefsAllowed = true

	doc, err := loader.LoadFromData(data)
	if err != nil {
		return nil, fmt.Errorf("loading contract: %w", err)
	}
	return FromOpenAPI(doc)
}

// FromOpenAPI converts an already-parsed kin-openapi document into a
// Document, for callers that hold an *openapi3.T of their own.
func FromOpenAPI(doc *openapi3.T) (*Document, error) {
	if doc == nil || doc.Paths == nil || doc.Paths.Len() == 0 {
		return nil, fmt.Errorf("contract declares no paths")
	}

	pathMap := doc.Paths.Map()
	out := &Document{}
	for _, path := range sortedPathKeys(pathMap) {
		item := pathMap[path]
		if item == nil {
			continue
		}
		ops := item.Operations()
		for _, method := range sortedOpKeys(ops) {
			op := ops[method]
			if op == nil || op.Responses == nil || op.Responses.Len() == 0 {
				return nil, fmt.Errorf("path %q method %q declares no responses", path, method)
			}
			respMap := op.Responses.Map()
			statuses := make([]string, 0, len(respMap))
			for status := range respMap {
				statuses = append(statuses, status)
			}
			sort.Strings(statuses)
			out.Operations = append(out.Operations, Operation{
				Path:     path,
				Method:   strings.ToLower(method),
				Statuses: statuses,
			})
		}
	}

	if len(out.Operations) == 0 {
		return nil, fmt.Errorf("contract declares no operations")
	}
	return out, nil
}

func sortedPathKeys(m map[string]*openapi3.PathItem) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

func sortedOpKeys(m map[string]*openapi3.Operation) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
