// Package naming converts Go identifiers into wire names.
package naming

import (
	"errors"
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/iancoleman/strcase"
)

// Style is a case convention for wire names.
type Style string

const (
	Lower          Style = "lowercase"
	Upper          Style = "UPPERCASE"
	Pascal         Style = "PascalCase"
	Camel          Style = "camelCase"
	Snake          Style = "snake_case"
	ScreamingSnake Style = "SCREAMING_SNAKE_CASE"
	Kebab          Style = "kebab-case"
	ScreamingKebab Style = "SCREAMING-KEBAB-CASE"
)

// Default is the style used when none is declared.
const Default = Camel

var ErrBadStyle = errors.New("bad naming style")

func ParseStyle(v string) (Style, error) {
	s, ok := map[string]Style{
		"":                     Default,
		"lowercase":            Lower,
		"lower":                Lower,
		"UPPERCASE":            Upper,
		"upper":                Upper,
		"PascalCase":           Pascal,
		"pascal":               Pascal,
		"camelCase":            Camel,
		"camel":                Camel,
		"lowerCamelCase":       Camel,
		"snake_case":           Snake,
		"snake":                Snake,
		"SCREAMING_SNAKE_CASE": ScreamingSnake,
		"screaming_snake":      ScreamingSnake,
		"kebab-case":           Kebab,
		"kebab":                Kebab,
		"SCREAMING-KEBAB-CASE": ScreamingKebab,
		"screaming-kebab":      ScreamingKebab,
	}[v]
	if ok {
		return s, nil
	}
	return "", fmt.Errorf("%w: %q", ErrBadStyle, v)
}

func Styles() []Style {
	return []Style{Lower, Upper, Pascal, Camel, Snake, ScreamingSnake, Kebab, ScreamingKebab}
}

func (s Style) String() string {
	if s == "" {
		return string(Default)
	}
	return string(s)
}

func (s Style) MarshalText() ([]byte, error) {
	return []byte(s.String()), nil
}

func (s *Style) UnmarshalText(d []byte) error {
	ps, err := ParseStyle(string(d))
	if err != nil {
		return err
	}
	*s = ps
	return nil
}

// Apply converts a Go identifier to s. The result never starts with a
// digit: such names are prefixed with '_'.
func (s Style) Apply(name string) string {
	var res string
	switch s {
	case Lower:
		res = strings.ToLower(strcase.ToCamel(name))
	case Upper:
		res = strings.ToUpper(strcase.ToCamel(name))
	case Pascal:
		res = strcase.ToCamel(name)
	case Snake:
		res = strcase.ToSnake(name)
	case ScreamingSnake:
		res = strcase.ToScreamingSnake(name)
	case Kebab:
		res = strcase.ToKebab(name)
	case ScreamingKebab:
		res = strcase.ToScreamingKebab(name)
	default:
		res = strcase.ToLowerCamel(name)
	}
	return ElementSafe(res)
}

// ElementSafe prefixes names that start with a digit so they remain
// valid element names.
func ElementSafe(name string) string {
	r, _ := utf8.DecodeRuneInString(name)
	if unicode.IsDigit(r) {
		return "_" + name
	}
	return name
}

// Key returns the wire name of an identifier: rename verbatim if given,
// otherwise name converted with style.
func Key(name, rename string, style Style) string {
	if rename != "" {
		return rename
	}
	return style.Apply(name)
}
