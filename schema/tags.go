package schema

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/signadot/xdom/naming"
)

// TagKey is the struct tag key read by the registry.
const TagKey = "xdom"

// Meta carries container options when embedded with a tag:
//
//	schema.Meta `xdom:"name=feed,renameAll=snake_case,denyUnknown,tuple"`
type Meta struct{}

var metaType = reflect.TypeFor[Meta]()

// ParseStructTag parses a struct tag value into keys and flags.
// Handles comma or space separated parts: `xdom:"name=a,attr,optional"`
// Supports quoted values with spaces: `xdom:"name='a b'"`
func ParseStructTag(tag string) (map[string]string, error) {
	result := make(map[string]string)
	if tag == "" {
		return result, nil
	}
	var parts []string
	var current strings.Builder
	inSingleQuote := false
	inDoubleQuote := false
	flush := func() {
		part := strings.TrimSpace(current.String())
		if part != "" {
			parts = append(parts, part)
		}
		current.Reset()
	}
	for i := 0; i < len(tag); i++ {
		char := tag[i]
		switch {
		case char == '\'' && !inDoubleQuote:
			inSingleQuote = !inSingleQuote
			current.WriteByte(char)
		case char == '"' && !inSingleQuote:
			inDoubleQuote = !inDoubleQuote
			current.WriteByte(char)
		case (char == ',' || char == ' ') && !inSingleQuote && !inDoubleQuote:
			flush()
		default:
			current.WriteByte(char)
		}
	}
	if inSingleQuote || inDoubleQuote {
		return nil, fmt.Errorf("invalid tag: unterminated quote in %q", tag)
	}
	flush()

	for _, part := range parts {
		if idx := strings.Index(part, "="); idx >= 0 {
			key := strings.TrimSpace(part[:idx])
			if key == "" {
				return nil, fmt.Errorf("invalid tag: empty key in %q", part)
			}
			result[key] = unquoteValue(strings.TrimSpace(part[idx+1:]))
			continue
		}
		result[part] = ""
	}
	return result, nil
}

// unquoteValue removes surrounding single or double quotes from a value.
func unquoteValue(value string) string {
	if len(value) >= 2 {
		first, last := value[0], value[len(value)-1]
		if (first == '\'' && last == '\'') || (first == '"' && last == '"') {
			return value[1 : len(value)-1]
		}
	}
	return value
}

// FieldDef declares the binding of one struct field.
type FieldDef struct {
	// Name is the Go field name, possibly promoted from an embedded
	// struct.
	Name     string
	Rename   string
	Role     Role
	Optional bool
	Required bool
	Skip     bool
}

var roleFlags = map[string]Role{
	"attr":      AttributeRole,
	"attribute": AttributeRole,
	"text":      TextRole,
	"elem":      ElementRole,
	"element":   ElementRole,
	"elems":     ElementsRole,
	"elements":  ElementsRole,
	"flatten":   FlattenRole,
	"tag":       TagRole,
}

// ParseFieldTag reads the binding of a struct field from its tag.
func ParseFieldTag(sf reflect.StructField) (FieldDef, error) {
	def := FieldDef{Name: sf.Name}
	tag, ok := sf.Tag.Lookup(TagKey)
	if !ok {
		return def, nil
	}
	if tag == "-" {
		def.Skip = true
		return def, nil
	}
	parsed, err := ParseStructTag(tag)
	if err != nil {
		return def, err
	}
	roles := 0
	for k, v := range parsed {
		if role, ok := roleFlags[k]; ok {
			def.Role = role
			roles++
			continue
		}
		switch k {
		case "name":
			def.Rename = v
		case "optional":
			def.Optional = true
		case "required":
			def.Required = true
		case "-":
			def.Skip = true
		default:
			return def, fmt.Errorf("unknown tag option %q", k)
		}
	}
	if roles > 1 {
		return def, fmt.Errorf("tag %q declares more than one role", tag)
	}
	if def.Optional && def.Required {
		return def, fmt.Errorf("tag %q is both optional and required", tag)
	}
	return def, nil
}

// StructOpts are container options of a struct.
type StructOpts struct {
	Rename      string
	RenameAll   naming.Style
	DenyUnknown bool
	Tuple       bool
}

// GetStructOpts reads container options from an embedded Meta field.
// It returns nil when typ has no tagged Meta field.
func GetStructOpts(typ reflect.Type) (*StructOpts, error) {
	if typ.Kind() != reflect.Struct {
		return nil, fmt.Errorf("expected struct type, got %s", typ.Kind())
	}
	var found *StructOpts
	for i := 0; i < typ.NumField(); i++ {
		field := typ.Field(i)
		if !field.Anonymous || field.Type != metaType {
			continue
		}
		if found != nil {
			return nil, fmt.Errorf("multiple Meta fields in %s", typ)
		}
		opts, err := ParseStructOpts(field.Tag.Get(TagKey))
		if err != nil {
			return nil, fmt.Errorf("failed to parse tag on field %s: %w", field.Name, err)
		}
		found = opts
	}
	return found, nil
}

// ParseStructOpts parses the tag value of an embedded Meta field.
func ParseStructOpts(tag string) (*StructOpts, error) {
	parsed, err := ParseStructTag(tag)
	if err != nil {
		return nil, err
	}
	opts := &StructOpts{}
	for k, v := range parsed {
		switch k {
		case "name":
			opts.Rename = v
		case "renameAll":
			style, err := naming.ParseStyle(v)
			if err != nil {
				return nil, err
			}
			opts.RenameAll = style
		case "denyUnknown":
			opts.DenyUnknown = true
		case "tuple":
			opts.Tuple = true
		default:
			return nil, fmt.Errorf("unknown container option %q", k)
		}
	}
	return opts, nil
}
