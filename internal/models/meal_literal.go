package models

import (
	"strconv"
	"strings"
	"unicode/utf8"
)

// decodeDictLiteral reads the dict repr older journals wrote into the meals
// column, e.g. {'Desayuno': ['pan', 'queso'], 'Cena': []}. Only string keys
// mapping to lists of strings are accepted.
func decodeDictLiteral(cell string) (map[string][]string, bool) {
	scanner := &literalScanner{input: cell}
	result := make(map[string][]string)

	if !scanner.consume('{') {
		return nil, false
	}
	if scanner.consume('}') {
		return result, scanner.done()
	}
	for {
		key, ok := scanner.quoted()
		if !ok || !scanner.consume(':') {
			return nil, false
		}
		foods, ok := scanner.list()
		if !ok {
			return nil, false
		}
		result[key] = foods

		if scanner.consume(',') {
			if scanner.consume('}') {
				return result, scanner.done()
			}
			continue
		}
		if scanner.consume('}') {
			return result, scanner.done()
		}
		return nil, false
	}
}

type literalScanner struct {
	input string
	pos   int
}

func (scanner *literalScanner) skipSpace() {
	for scanner.pos < len(scanner.input) && strings.IndexByte(" \t\r\n", scanner.input[scanner.pos]) >= 0 {
		scanner.pos++
	}
}

func (scanner *literalScanner) consume(token byte) bool {
	scanner.skipSpace()
	if scanner.pos < len(scanner.input) && scanner.input[scanner.pos] == token {
		scanner.pos++
		return true
	}
	return false
}

func (scanner *literalScanner) done() bool {
	scanner.skipSpace()
	return scanner.pos == len(scanner.input)
}

func (scanner *literalScanner) list() ([]string, bool) {
	values := make([]string, 0)
	if !scanner.consume('[') {
		return nil, false
	}
	if scanner.consume(']') {
		return values, true
	}
	for {
		value, ok := scanner.quoted()
		if !ok {
			return nil, false
		}
		values = append(values, value)

		if scanner.consume(',') {
			if scanner.consume(']') {
				return values, true
			}
			continue
		}
		if scanner.consume(']') {
			return values, true
		}
		return nil, false
	}
}

// quoted reads a single- or double-quoted string with backslash escapes.
func (scanner *literalScanner) quoted() (string, bool) {
	scanner.skipSpace()
	if scanner.pos >= len(scanner.input) {
		return "", false
	}
	quote := scanner.input[scanner.pos]
	if quote != '\'' && quote != '"' {
		return "", false
	}
	scanner.pos++

	var builder strings.Builder
	for scanner.pos < len(scanner.input) {
		current := scanner.input[scanner.pos]
		switch {
		case current == quote:
			scanner.pos++
			return builder.String(), true
		case current == '\\':
			value, ok := scanner.escape()
			if !ok {
				return "", false
			}
			builder.WriteString(value)
		default:
			r, size := utf8.DecodeRuneInString(scanner.input[scanner.pos:])
			builder.WriteRune(r)
			scanner.pos += size
		}
	}
	return "", false
}

func (scanner *literalScanner) escape() (string, bool) {
	if scanner.pos+1 >= len(scanner.input) {
		return "", false
	}
	next := scanner.input[scanner.pos+1]
	switch next {
	case '\\', '\'', '"':
		scanner.pos += 2
		return string(next), true
	case 'n':
		scanner.pos += 2
		return "\n", true
	case 't':
		scanner.pos += 2
		return "\t", true
	case 'x', 'u', 'U':
		width := map[byte]int{'x': 2, 'u': 4, 'U': 8}[next]
		start := scanner.pos + 2
		if start+width > len(scanner.input) {
			return "", false
		}
		code, err := strconv.ParseUint(scanner.input[start:start+width], 16, 32)
		if err != nil || !utf8.ValidRune(rune(code)) {
			return "", false
		}
		scanner.pos = start + width
		return string(rune(code)), true
	default:
		scanner.pos += 2
		return "\\" + string(next), true
	}
}
