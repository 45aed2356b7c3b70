package codec

import "fmt"

// DecodeError reports a payload that could not be mapped onto a domain
// record. Field is the path from the decode root, e.g. "habit_list.items[2].name".
type DecodeError struct {
	Entity string
	Field  string
	Err    error
}

func (e *DecodeError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("decode %s: field %q: %v", e.Entity, e.Field, e.Err)
	}
	return fmt.Sprintf("decode %s: missing required field %q", e.Entity, e.Field)
}

func (e *DecodeError) Unwrap() error { return e.Err }

// missing builds the error for a required field that was absent or null.
func missing(entity, path, field string) *DecodeError {
	return &DecodeError{Entity: entity, Field: join(path, field)}
}

// malformed builds the error for a payload that failed structural decoding.
func malformed(entity, path string, err error) *DecodeError {
	return &DecodeError{Entity: entity, Field: path, Err: err}
}

func join(path, field string) string {
	if path == "" {
		return field
	}
	return path + "." + field
}
