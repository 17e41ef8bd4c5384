package svg

import (
	"fmt"
	"strconv"
	"strings"
)

// Length is an SVG length or coordinate: a number with an optional unit
// such as px, em or %.
type Length struct {
	Value float64
	Unit  string
}

func Px(v float64) Length {
	return Length{Value: v}
}

func (l Length) String() string {
	return strconv.FormatFloat(l.Value, 'g', -1, 64) + l.Unit
}

func (l Length) MarshalText() ([]byte, error) {
	return []byte(l.String()), nil
}

func (l *Length) UnmarshalText(d []byte) error {
	s := strings.TrimSpace(string(d))
	i := len(s)
	for i > 0 && isUnitByte(s[i-1]) {
		i--
	}
	v, err := strconv.ParseFloat(s[:i], 64)
	if err != nil {
		return fmt.Errorf("invalid length %q", s)
	}
	l.Value, l.Unit = v, s[i:]
	return nil
}

func isUnitByte(c byte) bool {
	return c == '%' || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}
