// Package jsonpath evaluates simple JSONPath expressions ($.a.b[0].c) with
// gjson.
package jsonpath

import (
	"fmt"
	"strings"

	"github.com/tidwall/gjson"
)

// Extract extracts a value from a JSON string using a JSONPath expression
func Extract(json string, path string) (string, error) {
	if json == "" {
		return "", fmt.Errorf("empty JSON string")
	}

	result, err := Lookup(gjson.Parse(json), path)
	if err != nil {
		return "", err
	}

	if result.Type == gjson.Null {
		return "null", nil
	}
	return result.String(), nil
}

// Lookup evaluates path relative to an already parsed value.
func Lookup(value gjson.Result, path string) (gjson.Result, error) {
	if path == "" {
		return gjson.Result{}, fmt.Errorf("empty JSONPath expression")
	}

	result := value.Get(ToGjsonPath(path))
	if !result.Exists() {
		return gjson.Result{}, fmt.Errorf("path not found: %s", path)
	}
	return result, nil
}

// ToGjsonPath converts a JSONPath expression to a gjson path.
//
//	JSONPath: $.users[0].name
//	gjson:    users.0.name
func ToGjsonPath(path string) string {
	path = strings.TrimPrefix(path, "$")
	path = strings.TrimPrefix(path, ".")
	if path == "" {
		return "@this"
	}

	// Quoted bracket notation: ['name'] and ["name"]
	for _, q := range []string{"'", `"`} {
		path = strings.ReplaceAll(path, "["+q, ".")
		path = strings.ReplaceAll(path, q+"]", "")
	}

	// Index notation: [0] -> .0
	path = strings.ReplaceAll(path, "[", ".")
	path = strings.ReplaceAll(path, "]", "")

	return strings.TrimPrefix(path, ".")
}
