package schema

import "fmt"

// SchemaError reports a type that cannot be described.
type SchemaError struct {
	TypeName string
	Field    string
	Message  string
	Err      error
}

func (e *SchemaError) Error() string {
	where := e.TypeName
	if e.Field != "" {
		where += "." + e.Field
	}
	if where != "" {
		return fmt.Sprintf("schema error for %s: %s", where, e.Message)
	}
	return fmt.Sprintf("schema error: %s", e.Message)
}

func (e *SchemaError) Unwrap() error {
	return e.Err
}
