package token

import "errors"

var ErrNumber = errors.New("malformed number literal")

// Number scans a numeric literal at the start of src. It returns the
// literal text, whether it has a fractional or exponent part, and the
// number of bytes consumed.
func Number(src string) (text string, isFloat bool, n int, err error) {
	i := 0
	if i < len(src) && (src[i] == '-' || src[i] == '+') {
		i++
	}
	d := asciiDigits(src[i:])
	if d == 0 {
		return "", false, 0, ErrNumber
	}
	i += d
	if f := fract(src[i:]); f > 0 {
		i += f
		isFloat = true
	}
	if e := exponent(src[i:]); e > 0 {
		i += e
		isFloat = true
	}
	return src[:i], isFloat, i, nil
}

// Hex scans a 0x-prefixed hex literal (Daxa bytes syntax) at the start
// of src, returning the hex digits (without the prefix) and the bytes
// consumed. Daxa bytes literals must hold an even number of digits.
func Hex(src string) (digits string, n int, err error) {
	if len(src) < 2 || src[0] != '0' || (src[1] != 'x' && src[1] != 'X') {
		return "", 0, ErrNumber
	}
	i := 2
	for i < len(src) && isHexDigit(src[i]) {
		i++
	}
	if i == 2 || (i-2)%2 != 0 {
		return "", 0, ErrNumber
	}
	return src[2:i], i, nil
}

func asciiDigits(s string) int {
	i := 0
	for i < len(s) && s[i] >= '0' && s[i] <= '9' {
		i++
	}
	return i
}

func fract(s string) int {
	if len(s) < 2 || s[0] != '.' {
		return 0
	}
	d := asciiDigits(s[1:])
	if d == 0 {
		return 0
	}
	return 1 + d
}

func exponent(s string) int {
	if len(s) < 2 || (s[0] != 'e' && s[0] != 'E') {
		return 0
	}
	i := 1
	if s[i] == '+' || s[i] == '-' {
		i++
	}
	d := asciiDigits(s[i:])
	if d == 0 {
		return 0
	}
	return i + d
}

func isHexDigit(c byte) bool {
	switch {
	case c >= '0' && c <= '9':
		return true
	case c >= 'a' && c <= 'f':
		return true
	case c >= 'A' && c <= 'F':
		return true
	}
	return false
}
