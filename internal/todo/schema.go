package todo

import (
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"

	jsonschema "github.com/santhosh-tekuri/jsonschema/v5"
)

//go:embed todos.schema.json
var todosSchemaJSON string

// todosSchema is the compiled schema for the raw "todos" argument.
var todosSchema = jsonschema.MustCompileString("todos.schema.json", todosSchemaJSON)

// ItemSchema returns the JSON schema of a single todo item, for tool
// definitions that describe the array's items.
func ItemSchema() map[string]any {
	var doc struct {
		Items map[string]any `json:"items"`
	}
	if err := json.Unmarshal([]byte(todosSchemaJSON), &doc); err != nil {
		// The schema is embedded at build time; MustCompileString already
		// proved it parses.
		panic(fmt.Sprintf("todo: embedded schema: %v", err))
	}
	return doc.Items
}

// DecodeItems turns the raw "todos" argument of a tool call into items.
// raw is whatever the JSON decoder produced ([]any of map[string]any for a
// well-formed call). Missing fields, wrong types and unknown statuses are
// reported as *ValidationError addressed by item index.
func DecodeItems(raw any) ([]Item, error) {
	if raw == nil {
		return nil, &ValidationError{Index: -1, Field: "todos", Reason: "is required"}
	}

	// Round-trip through JSON so typed Go values validate the same way
	// as decoded request arguments.
	data, err := json.Marshal(raw)
	if err != nil {
		return nil, &ValidationError{Index: -1, Field: "todos", Reason: fmt.Sprintf("is not valid JSON: %v", err)}
	}
	var doc any
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, &ValidationError{Index: -1, Field: "todos", Reason: fmt.Sprintf("is not valid JSON: %v", err)}
	}

	if err := todosSchema.Validate(doc); err != nil {
		return nil, mapSchemaError(err)
	}

	var items []Item
	if err := json.Unmarshal(data, &items); err != nil {
		return nil, &ValidationError{Index: -1, Field: "todos", Reason: fmt.Sprintf("could not be decoded: %v", err)}
	}
	if err := Validate(items); err != nil {
		return nil, err
	}
	return cloneItems(items), nil
}

// mapSchemaError converts a jsonschema failure into a *ValidationError
// built from the first leaf cause.
func mapSchemaError(err error) error {
	var ve *jsonschema.ValidationError
	if !errors.As(err, &ve) {
		return &ValidationError{Index: -1, Field: "todos", Reason: err.Error()}
	}
	leaf := firstLeaf(ve)
	index, field := splitInstanceLocation(leaf.InstanceLocation)
	if index < 0 && field == "" {
		field = "todos"
	}
	return &ValidationError{Index: index, Field: field, Reason: leaf.Message}
}

// firstLeaf walks Causes depth-first to the first error without causes.
func firstLeaf(ve *jsonschema.ValidationError) *jsonschema.ValidationError {
	for len(ve.Causes) > 0 {
		ve = ve.Causes[0]
	}
	return ve
}

// splitInstanceLocation turns a JSON pointer such as "/2/status" into
// (2, "status"). A pointer at the array root yields (-1, "").
func splitInstanceLocation(ptr string) (int, string) {
	ptr = strings.TrimPrefix(ptr, "#")
	ptr = strings.TrimPrefix(ptr, "/")
	if ptr == "" {
		return -1, ""
	}
	parts := strings.SplitN(ptr, "/", 2)
	index, err := strconv.Atoi(parts[0])
	if err != nil {
		return -1, ""
	}
	if len(parts) == 1 {
		return index, ""
	}
	return index, parts[1]
}
