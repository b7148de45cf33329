package main

import (
	"fmt"
	"math"
	"strconv"
	"strings"
)

// parseLiteral converts a command-line argument into a payload value.
//
//	nil            -> nil
//	true, false    -> bool
//	42, 0x2a, -7   -> int (08 and 010 are decimal)
//	3.5, 1e3       -> float64
//	'x', "x"       -> string
//	anything else  -> the word itself, as a string
func parseLiteral(s string) (any, error) {
	switch s {
	case "nil":
		return nil, nil
	case "true":
		return true, nil
	case "false":
		return false, nil
	}

	if len(s) >= 2 {
		switch q := s[0]; {
		case q == '"' && s[len(s)-1] == '"':
			v, err := strconv.Unquote(s)
			if err != nil {
				return nil, fmt.Errorf("invalid string literal %s: %w", s, err)
			}
			return v, nil
		case q == '\'' && s[len(s)-1] == '\'':
			return unquoteSingle(s)
		}
	}

	base := 0
	if leadingZeroDecimal(s) {
		base = 10
	}
	if n, err := strconv.ParseInt(s, base, 64); err == nil {
		if n < math.MinInt || n > math.MaxInt {
			return n, nil
		}
		return int(n), nil
	}
	if looksNumeric(s) {
		if f, err := strconv.ParseFloat(s, 64); err == nil {
			return f, nil
		}
		return nil, fmt.Errorf("invalid number %s", s)
	}
	return s, nil
}

// leadingZeroDecimal reports literals such as "08" or "-010", which are
// read as decimal rather than octal. Prefixed forms like 0x2a or 0o17 keep
// their base.
func leadingZeroDecimal(s string) bool {
	s = strings.TrimLeft(s, "+-")
	return len(s) > 1 && s[0] == '0' && s[1] >= '0' && s[1] <= '9'
}

// looksNumeric keeps words such as "inf" or "nan" as strings.
func looksNumeric(s string) bool {
	s = strings.TrimLeft(s, "+-")
	return s != "" && (s[0] == '.' || (s[0] >= '0' && s[0] <= '9'))
}

func unquoteSingle(s string) (string, error) {
	body := s[1 : len(s)-1]
	var sb strings.Builder
	for i := 0; i < len(body); i++ {
		c := body[i]
		if c == '\'' {
			return "", fmt.Errorf("invalid string literal %s: unescaped quote", s)
		}
		if c != '\\' {
			sb.WriteByte(c)
			continue
		}
		i++
		if i == len(body) {
			return "", fmt.Errorf("invalid string literal %s: trailing backslash", s)
		}
		switch body[i] {
		case '\\', '\'', '"':
			sb.WriteByte(body[i])
		case 'n':
			sb.WriteByte('\n')
		case 't':
			sb.WriteByte('\t')
		case 'r':
			sb.WriteByte('\r')
		case '0':
			sb.WriteByte(0)
		default:
			return "", fmt.Errorf("invalid string literal %s: unknown escape \\%c", s, body[i])
		}
	}
	return sb.String(), nil
}
