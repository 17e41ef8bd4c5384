package bind

import (
	"encoding"
	"encoding/base64"
	"reflect"
	"strconv"
	"strings"
)

var (
	textMarshalerType   = reflect.TypeFor[encoding.TextMarshaler]()
	textUnmarshalerType = reflect.TypeFor[encoding.TextUnmarshaler]()
)

// parseLeaf sets v, which must be settable, from text.
func parseLeaf(text string, v reflect.Value, path string) error {
	v = alloc(v)
	if reflect.PointerTo(v.Type()).Implements(textUnmarshalerType) {
		u := v.Addr().Interface().(encoding.TextUnmarshaler)
		if err := u.UnmarshalText([]byte(text)); err != nil {
			return &LeafParseError{FieldPath: path, Text: text, Kind: v.Type().String(), Err: err}
		}
		return nil
	}
	fail := func(err error) error {
		if ne, ok := err.(*strconv.NumError); ok {
			err = ne.Err
		}
		return &LeafParseError{FieldPath: path, Text: text, Kind: v.Kind().String(), Err: err}
	}
	s := strings.TrimSpace(text)
	switch v.Kind() {
	case reflect.String:
		v.SetString(text)
	case reflect.Bool:
		b, err := strconv.ParseBool(s)
		if err != nil {
			return fail(err)
		}
		v.SetBool(b)
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		i, err := strconv.ParseInt(s, 10, v.Type().Bits())
		if err != nil {
			return fail(err)
		}
		v.SetInt(i)
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		u, err := strconv.ParseUint(s, 10, v.Type().Bits())
		if err != nil {
			return fail(err)
		}
		v.SetUint(u)
	case reflect.Float32, reflect.Float64:
		f, err := strconv.ParseFloat(s, v.Type().Bits())
		if err != nil {
			return fail(err)
		}
		v.SetFloat(f)
	case reflect.Slice:
		d, err := base64.StdEncoding.DecodeString(s)
		if err != nil {
			return fail(err)
		}
		v.SetBytes(d)
	default:
		return &LeafParseError{FieldPath: path, Text: text, Kind: v.Kind().String()}
	}
	return nil
}

// formatLeaf writes the primitive v as text.
func formatLeaf(v reflect.Value, path string) (string, error) {
	if v.Type().Implements(textMarshalerType) {
		d, err := v.Interface().(encoding.TextMarshaler).MarshalText()
		if err != nil {
			return "", &LeafWriteError{FieldPath: path, Kind: v.Type().String(), Err: err}
		}
		return string(d), nil
	}
	if reflect.PointerTo(v.Type()).Implements(textMarshalerType) {
		pv := reflect.New(v.Type())
		pv.Elem().Set(v)
		return formatLeaf(pv, path)
	}
	switch v.Kind() {
	case reflect.String:
		return v.String(), nil
	case reflect.Bool:
		return strconv.FormatBool(v.Bool()), nil
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return strconv.FormatInt(v.Int(), 10), nil
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return strconv.FormatUint(v.Uint(), 10), nil
	case reflect.Float32, reflect.Float64:
		return strconv.FormatFloat(v.Float(), 'g', -1, v.Type().Bits()), nil
	case reflect.Slice:
		return base64.StdEncoding.EncodeToString(v.Bytes()), nil
	}
	return "", &LeafWriteError{FieldPath: path, Kind: v.Kind().String()}
}

// alloc follows pointers from v, allocating nil ones.
func alloc(v reflect.Value) reflect.Value {
	for v.Kind() == reflect.Pointer {
		if v.IsNil() {
			v.Set(reflect.New(v.Type().Elem()))
		}
		v = v.Elem()
	}
	return v
}

// indirect follows pointers from v. It reports false on a nil pointer.
func indirect(v reflect.Value) (reflect.Value, bool) {
	for v.Kind() == reflect.Pointer {
		if v.IsNil() {
			return v, false
		}
		v = v.Elem()
	}
	return v, true
}
