package token

import (
	"errors"
	"strconv"
	"strings"
	"unicode/utf8"
)

var (
	ErrUnterminatedString = errors.New("unterminated string literal")
	ErrBadEscape          = errors.New("bad escape sequence")
)

// Quoted scans a double-quoted string literal at the start of src and
// returns the decoded value and the number of bytes consumed,
// including both quotes. src must begin with '"'.
func Quoted(src string) (string, int, error) {
	if len(src) == 0 || src[0] != '"' {
		return "", 0, ErrUnterminatedString
	}
	i := 1
	for i < len(src) {
		switch src[i] {
		case '\\':
			if i+1 >= len(src) {
				return "", 0, ErrUnterminatedString
			}
			i += 2
		case '"':
			v, err := strconv.Unquote(src[:i+1])
			if err != nil {
				return "", 0, ErrBadEscape
			}
			return v, i + 1, nil
		case '\n':
			return "", 0, ErrUnterminatedString
		default:
			_, n := utf8.DecodeRuneInString(src[i:])
			i += n
		}
	}
	return "", 0, ErrUnterminatedString
}

// Quote renders v as a Daxa double-quoted string literal.
func Quote(v string) string {
	return strconv.Quote(v)
}

// NeedsQuote reports whether v cannot be written as a bare literal in
// a Daxa document (reserved words, leading digits, specials).
func NeedsQuote(v string) bool {
	if v == "" {
		return true
	}
	switch v {
	case "true", "false", "null":
		return true
	}
	if v[0] >= '0' && v[0] <= '9' {
		return true
	}
	return strings.ContainsAny(v, " \t\n\"\\{}[]():;,@=?")
}
