package debug

import (
	"fmt"
	"os"
	"strconv"
)

type debug struct {
	Parse    bool
	Resolve  bool
	Validate bool
	Encode   bool
}

var d *debug

func init() {
	d = &debug{}
	d.Parse = boolEnv("DAXA_DEBUG_PARSE")
	d.Resolve = boolEnv("DAXA_DEBUG_RESOLVE")
	d.Validate = boolEnv("DAXA_DEBUG_VALIDATE")
	d.Encode = boolEnv("DAXA_DEBUG_ENCODE")
}

func boolEnv(v string) bool {
	x := os.Getenv(v)
	if x == "" {
		return false
	}
	b, _ := strconv.ParseBool(x)
	return b
}

func Parse() bool {
	return d.Parse
}
func Resolve() bool {
	return d.Resolve
}
func Validate() bool {
	return d.Validate
}
func Encode() bool {
	return d.Encode
}

func Logf(msg string, args ...any) {
	fmt.Fprintf(os.Stderr, msg, args...)
}
