package todo

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"sync"

	jsonschema "github.com/santhosh-tekuri/jsonschema/v5"
)

const snapshotSchemaURL = "snapshot.schema.json"

const snapshotSchema = `{
  "title": "focuslist task snapshot",
  "type": "array",
  "items": {
    "type": "object",
    "required": ["id", "text", "isDone"],
    "properties": {
      "id": {"type": "integer"},
      "text": {"type": "string"},
      "isDone": {"type": "boolean"}
    }
  }
}`

var (
	schemaOnce     sync.Once
	compiledSchema *jsonschema.Schema
	schemaErr      error
)

func loadSchema() (*jsonschema.Schema, error) {
	schemaOnce.Do(func() {
		compiler := jsonschema.NewCompiler()
		compiler.Draft = jsonschema.Draft2020
		if err := compiler.AddResource(snapshotSchemaURL, strings.NewReader(snapshotSchema)); err != nil {
			schemaErr = fmt.Errorf("add snapshot schema: %w", err)
			return
		}
		compiledSchema, schemaErr = compiler.Compile(snapshotSchemaURL)
		if schemaErr != nil {
			schemaErr = fmt.Errorf("compile snapshot schema: %w", schemaErr)
		}
	})
	return compiledSchema, schemaErr
}

// MarshalSnapshot encodes tasks as the persisted JSON array.
// A nil or empty list encodes as [].
func MarshalSnapshot(tasks []Task) ([]byte, error) {
	if tasks == nil {
		tasks = []Task{}
	}
	data, err := json.Marshal(tasks)
	if err != nil {
		return nil, fmt.Errorf("marshal snapshot: %w", err)
	}
	return data, nil
}

// ParseSnapshot decodes and validates a persisted snapshot.
// Tasks with a duplicate id are dropped, keeping the first occurrence.
func ParseSnapshot(data []byte) ([]Task, error) {
	if err := ValidateSnapshot(data); err != nil {
		return nil, err
	}

	var tasks []Task
	if err := json.Unmarshal(data, &tasks); err != nil {
		return nil, fmt.Errorf("parse snapshot: %w", err)
	}
	return dedupe(tasks), nil
}

// ValidateSnapshot checks raw snapshot bytes against the snapshot schema.
// Schema violations are returned as a joined list of *ValidationError.
func ValidateSnapshot(data []byte) error {
	schema, err := loadSchema()
	if err != nil {
		return err
	}

	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	var doc interface{}
	if err := dec.Decode(&doc); err != nil {
		return fmt.Errorf("parse snapshot: %w", err)
	}
	if dec.More() {
		return fmt.Errorf("parse snapshot: trailing data after JSON value")
	}

	if err := schema.Validate(doc); err != nil {
		return schemaErrors(err)
	}
	return nil
}

// SnapshotErrors flattens an error returned by ValidateSnapshot into its
// individual causes.
func SnapshotErrors(err error) []error {
	if err == nil {
		return nil
	}
	if se, ok := err.(*snapshotError); ok {
		return se.errs
	}
	return []error{err}
}

type snapshotError struct {
	errs []error
}

func (e *snapshotError) Error() string {
	msgs := make([]string, 0, len(e.errs))
	for _, err := range e.errs {
		msgs = append(msgs, err.Error())
	}
	return "invalid snapshot: " + strings.Join(msgs, "; ")
}

func schemaErrors(err error) error {
	ve, ok := err.(*jsonschema.ValidationError)
	if !ok {
		return err
	}
	se := &snapshotError{}
	collectSchemaErrors(se, ve)
	if len(se.errs) == 0 {
		se.errs = append(se.errs, &ValidationError{Err: fmt.Errorf("%s", ve.Message)})
	}
	return se
}

func collectSchemaErrors(se *snapshotError, err *jsonschema.ValidationError) {
	if err == nil {
		return
	}
	if len(err.Causes) == 0 {
		se.errs = append(se.errs, &ValidationError{
			Path: jsonPointerToPath(err.InstanceLocation),
			Err:  fmt.Errorf("%s", err.Message),
		})
		return
	}
	for _, cause := range err.Causes {
		collectSchemaErrors(se, cause)
	}
}

// jsonPointerToPath turns "/1/text" into "[1].text".
func jsonPointerToPath(ptr string) string {
	ptr = strings.TrimPrefix(ptr, "#")
	ptr = strings.TrimPrefix(ptr, "/")
	if ptr == "" {
		return ""
	}

	path := ""
	for _, part := range strings.Split(ptr, "/") {
		part = strings.ReplaceAll(part, "~1", "/")
		part = strings.ReplaceAll(part, "~0", "~")
		if part == "" {
			continue
		}
		if idx, err := strconv.Atoi(part); err == nil {
			path += fmt.Sprintf("[%d]", idx)
			continue
		}
		if path == "" {
			path = part
		} else {
			path += "." + part
		}
	}
	return path
}

func dedupe(tasks []Task) []Task {
	seen := make(map[int64]bool, len(tasks))
	out := make([]Task, 0, len(tasks))
	for _, t := range tasks {
		if seen[t.ID] {
			continue
		}
		seen[t.ID] = true
		out = append(out, t)
	}
	return out
}
