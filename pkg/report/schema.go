package report

// Schema is the JSON Schema (Draft 2020-12) for the persisted
// coverage.json artifact. It documents the structure produced by
// WriteJSON: path -> method -> {responses: {status: count}}.
const Schema = `{
  "$schema": "https://json-schema.org/draft/2020-12/schema",
  "$id": "https://github.com/unbound-force/apicov/coverage.schema.json",
  "title": "API Coverage Report",
  "description": "Cumulative hit counts per declared (path, method, status) triple",
  "type": "object",
  "propertyNames": {
    "description": "Declared path template, e.g. /users/{id}",
    "pattern": "^/"
  },
  "additionalProperties": {
    "type": "object",
    "description": "Declared operations for one path, keyed by lower-case HTTP method",
    "propertyNames": {
      "enum": ["get", "put", "post", "delete", "options", "head", "patch", "trace"]
    },
    "additionalProperties": { "$ref": "#/$defs/MethodCoverage" }
  },
  "$defs": {
    "MethodCoverage": {
      "type": "object",
      "required": ["responses"],
      "properties": {
        "responses": {
          "type": "object",
          "description": "Hit count per declared response status",
          "additionalProperties": {
            "type": "integer",
            "minimum": 0
          }
        }
      }
    }
  }
}`
