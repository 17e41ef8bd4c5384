package bind

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrSchemaMismatch    = errors.New("schema mismatch")
	ErrDuplicateElement  = errors.New("duplicate element")
	ErrLeafParse         = errors.New("leaf parse error")
	ErrUnresolvedVariant = errors.New("unresolved variant")
	ErrLeafWrite         = errors.New("leaf write error")
	ErrNilValue          = errors.New("nil value")
)

func at(path string) string {
	if path == "" {
		return ""
	}
	return " at " + path
}

// SchemaMismatchError reports a document that does not have the shape of
// the target: a missing element or attribute, or an unexpected tag.
type SchemaMismatchError struct {
	FieldPath string
	Expected  string
	Actual    string
}

func (e *SchemaMismatchError) Error() string {
	return fmt.Sprintf("schema mismatch%s: expected %s, got %s", at(e.FieldPath), e.Expected, e.Actual)
}

func (e *SchemaMismatchError) Is(target error) bool {
	return target == ErrSchemaMismatch
}

// DuplicateElementError reports a repeated element bound to a single
// valued field.
type DuplicateElementError struct {
	FieldPath string
	Tag       string
}

func (e *DuplicateElementError) Error() string {
	return fmt.Sprintf("duplicate element <%s>%s", e.Tag, at(e.FieldPath))
}

func (e *DuplicateElementError) Is(target error) bool {
	return target == ErrDuplicateElement
}

// LeafParseError reports text that does not convert to its primitive.
type LeafParseError struct {
	FieldPath string
	Text      string
	Kind      string
	Err       error
}

func (e *LeafParseError) Error() string {
	msg := fmt.Sprintf("cannot parse %q as %s%s", e.Text, e.Kind, at(e.FieldPath))
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *LeafParseError) Is(target error) bool {
	return target == ErrLeafParse
}

func (e *LeafParseError) Unwrap() error {
	return e.Err
}

// UnresolvedVariantError reports an untagged enum element no variant
// decodes.
type UnresolvedVariantError struct {
	FieldPath string
	Enum      string
	Tag       string
	// Errs holds the failure of each variant in declaration order.
	Errs []error
}

func (e *UnresolvedVariantError) Error() string {
	msg := fmt.Sprintf("no variant of %s matches <%s>%s", e.Enum, e.Tag, at(e.FieldPath))
	if len(e.Errs) == 0 {
		return msg
	}
	parts := make([]string, len(e.Errs))
	for i, err := range e.Errs {
		parts[i] = err.Error()
	}
	return msg + ": " + strings.Join(parts, "; ")
}

func (e *UnresolvedVariantError) Is(target error) bool {
	return target == ErrUnresolvedVariant
}

// LeafWriteError reports a primitive that cannot be written as text.
type LeafWriteError struct {
	FieldPath string
	Kind      string
	Err       error
}

func (e *LeafWriteError) Error() string {
	msg := fmt.Sprintf("cannot write %s%s", e.Kind, at(e.FieldPath))
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *LeafWriteError) Is(target error) bool {
	return target == ErrLeafWrite
}

func (e *LeafWriteError) Unwrap() error {
	return e.Err
}

// MarshalError reports a value that cannot be encoded.
type MarshalError struct {
	FieldPath string
	Message   string
	Err       error
}

func (e *MarshalError) Error() string {
	if e.FieldPath != "" {
		return fmt.Sprintf("marshal error at %s: %s", e.FieldPath, e.Message)
	}
	return fmt.Sprintf("marshal error: %s", e.Message)
}

func (e *MarshalError) Unwrap() error {
	return e.Err
}

// UnmarshalError reports a destination that cannot be decoded into.
type UnmarshalError struct {
	FieldPath string
	Message   string
	Err       error
}

func (e *UnmarshalError) Error() string {
	if e.FieldPath != "" {
		return fmt.Sprintf("unmarshal error at %s: %s", e.FieldPath, e.Message)
	}
	return fmt.Sprintf("unmarshal error: %s", e.Message)
}

func (e *UnmarshalError) Unwrap() error {
	return e.Err
}
