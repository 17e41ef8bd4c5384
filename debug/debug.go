package debug

import (
	"encoding/json"
	"fmt"
	"os"
	"strconv"
)

type debug struct {
	Decode bool
	Encode bool
	Tokens bool
	Schema bool
	Patch  bool
	Query  bool
}

var d *debug

func init() {
	d = &debug{}
	d.Decode = boolEnv("XDOM_DEBUG_DECODE")
	d.Encode = boolEnv("XDOM_DEBUG_ENCODE")
	d.Tokens = boolEnv("XDOM_DEBUG_TOKENS")
	d.Schema = boolEnv("XDOM_DEBUG_SCHEMA")
	d.Patch = boolEnv("XDOM_DEBUG_PATCH")
	d.Query = boolEnv("XDOM_DEBUG_QUERY")
}

func boolEnv(v string) bool {
	x := os.Getenv(v)
	if x == "" {
		return false
	}
	b, _ := strconv.ParseBool(x)
	return b
}

func Decode() bool {
	return d.Decode
}
func Encode() bool {
	return d.Encode
}
func Tokens() bool {
	return d.Tokens
}
func Schema() bool {
	return d.Schema
}
func Patch() bool {
	return d.Patch
}
func Query() bool {
	return d.Query
}

func Logf(msg string, args ...any) {
	fmt.Fprintf(os.Stderr, msg, args...)
}

func LogAny(v any) {
	d, err := json.Marshal(v)
	if err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", v)
		return
	}
	os.Stderr.Write(d)
}
