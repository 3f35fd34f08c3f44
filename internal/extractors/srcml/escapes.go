package srcml

import (
	"regexp"
	"strconv"
)

// escapeSequence matches the escape sequences DecodeEscapes understands.
// Anything else, including a lone backslash, is left as is.
var escapeSequence = regexp.MustCompile(`\\u[0-9a-fA-F]{4}|\\x[0-9a-fA-F]{2}|\\[0-7]{1,3}|\\[\\'"abfnrtv]`)

var singleCharEscapes = map[byte]string{
	'\\': "\\",
	'\'': "'",
	'"':  "\"",
	'a':  "\a",
	'b':  "\b",
	'f':  "\f",
	'n':  "\n",
	'r':  "\r",
	't':  "\t",
	'v':  "\v",
}

// DecodeEscapes replaces literal backslash escape sequences in s with the
// characters they stand for. Only substrings matching an escape sequence are
// decoded, so backslashes that do not start one (e.g. "\q" or Windows paths)
// are preserved.
func DecodeEscapes(s string) string {
	return escapeSequence.ReplaceAllStringFunc(s, decodeEscape)
}

func decodeEscape(seq string) string {
	switch seq[1] {
	case 'u', 'x':
		return decodeCodePoint(seq, seq[2:], 16)
	case '0', '1', '2', '3', '4', '5', '6', '7':
		return decodeCodePoint(seq, seq[1:], 8)
	}
	if r, ok := singleCharEscapes[seq[1]]; ok {
		return r
	}
	return seq
}

func decodeCodePoint(seq, digits string, base int) string {
	n, err := strconv.ParseUint(digits, base, 32)
	if err != nil {
		return seq
	}
	return string(rune(n))
}
