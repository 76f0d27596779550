package snapshot

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
	"unicode/utf8"
)

// Parse reads a snapshot file: an optional "<?php" open tag, an optional
// "return", exactly one array literal in either array(...) or [...] form,
// an optional ";" and an optional "?>" close tag.
//
// Only literal expressions are understood: quoted strings (including "."
// concatenation of string literals), integers, floats, true, false, null,
// NAN, INF and nested arrays. Anything else yields a *SyntaxError.
func Parse(src []byte) (*Array, error) {
	p := &parser{src: src}

	p.consumeString("\xEF\xBB\xBF")
	p.skipWhitespace()
	if p.consumeFold("<?php") {
		p.skipSpace()
	}
	if p.consumeKeyword("return") {
		p.skipSpace()
	}

	v, err := p.parseValue()
	if err != nil {
		return nil, err
	}
	arr, ok := v.(*Array)
	if !ok {
		return nil, ErrNotArray
	}

	p.skipSpace()
	p.consumeByte(';')
	p.skipSpace()
	p.consumeString("?>")
	p.skipWhitespace()
	if !p.eof() {
		return nil, p.errorf("unexpected trailing content")
	}

	return arr, nil
}

type parser struct {
	src []byte
	pos int
}

func (p *parser) eof() bool {
	return p.pos >= len(p.src)
}

func (p *parser) peek() byte {
	if p.eof() {
		return 0
	}
	return p.src[p.pos]
}

func (p *parser) peekAt(offset int) byte {
	if p.pos+offset >= len(p.src) {
		return 0
	}
	return p.src[p.pos+offset]
}

func (p *parser) errorf(format string, args ...any) *SyntaxError {
	return &SyntaxError{Offset: p.pos, Msg: fmt.Sprintf(format, args...)}
}

func (p *parser) consumeByte(c byte) bool {
	if p.peek() == c && !p.eof() {
		p.pos++
		return true
	}
	return false
}

func (p *parser) consumeString(s string) bool {
	if strings.HasPrefix(string(p.src[p.pos:]), s) {
		p.pos += len(s)
		return true
	}
	return false
}

func (p *parser) consumeFold(s string) bool {
	if len(p.src)-p.pos < len(s) {
		return false
	}
	if strings.EqualFold(string(p.src[p.pos:p.pos+len(s)]), s) {
		p.pos += len(s)
		return true
	}
	return false
}

// consumeKeyword consumes word only when it is not the prefix of a longer
// identifier.
func (p *parser) consumeKeyword(word string) bool {
	start := p.pos
	if !p.consumeFold(word) {
		return false
	}
	if isIdentByte(p.peek()) {
		p.pos = start
		return false
	}
	return true
}

func (p *parser) skipWhitespace() {
	for !p.eof() && isSpace(p.src[p.pos]) {
		p.pos++
	}
}

// skipSpace skips whitespace and comments.
func (p *parser) skipSpace() {
	for !p.eof() {
		c := p.src[p.pos]
		switch {
		case isSpace(c):
			p.pos++
		case c == '#' && p.peekAt(1) != '[', c == '/' && p.peekAt(1) == '/':
			for !p.eof() && p.src[p.pos] != '\n' {
				if p.src[p.pos] == '?' && p.peekAt(1) == '>' {
					return
				}
				p.pos++
			}
		case c == '/' && p.peekAt(1) == '*':
			end := strings.Index(string(p.src[p.pos+2:]), "*/")
			if end < 0 {
				p.pos = len(p.src)
				return
			}
			p.pos += end + 4
		default:
			return
		}
	}
}

func (p *parser) parseValue() (any, error) {
	p.skipSpace()
	if p.eof() {
		return nil, p.errorf("unexpected end of input")
	}

	c := p.src[p.pos]
	switch {
	case c == '[':
		p.pos++
		return p.parseArray(']')
	case c == '\'' || c == '"':
		s, err := p.parseString()
		if err != nil {
			return nil, err
		}
		return p.parseConcat(s)
	case c == '-' || c == '+' || isDigit(c) || (c == '.' && isDigit(p.peekAt(1))):
		return p.parseNumber()
	case isIdentStart(c):
		start := p.pos
		word := p.ident()
		switch strings.ToLower(word) {
		case "array":
			p.skipSpace()
			if !p.consumeByte('(') {
				return nil, p.errorf("expected '(' after array")
			}
			return p.parseArray(')')
		case "true":
			return true, nil
		case "false":
			return false, nil
		case "null":
			return nil, nil
		}
		switch word {
		case "NAN":
			return math.NaN(), nil
		case "INF":
			return math.Inf(1), nil
		}
		p.pos = start
		return nil, p.errorf("unsupported expression %q", word)
	}

	return nil, p.errorf("unexpected character %q", c)
}

func (p *parser) parseArray(closer byte) (*Array, error) {
	arr := NewArray()
	for {
		p.skipSpace()
		if p.eof() {
			return nil, p.errorf("unterminated array, expected %q", closer)
		}
		if p.consumeByte(closer) {
			return arr, nil
		}

		start := p.pos
		v, err := p.parseValue()
		if err != nil {
			return nil, err
		}

		p.skipSpace()
		if p.consumeString("=>") {
			key, err := toKey(v, start)
			if err != nil {
				return nil, err
			}
			val, err := p.parseValue()
			if err != nil {
				return nil, err
			}
			arr.Set(key, val)
		} else {
			arr.Append(v)
		}

		p.skipSpace()
		if p.consumeByte(',') {
			continue
		}
		if p.peek() != closer {
			return nil, p.errorf("expected ',' or %q", closer)
		}
	}
}

func toKey(v any, offset int) (Key, error) {
	switch t := v.(type) {
	case string:
		return StringKey(t), nil
	case int64:
		return IntKey(t), nil
	case bool:
		if t {
			return IntKey(1), nil
		}
		return IntKey(0), nil
	case nil:
		return StringKey(""), nil
	case float64:
		if math.IsNaN(t) || math.IsInf(t, 0) {
			return Key{}, &SyntaxError{Offset: offset, Msg: "illegal offset type"}
		}
		return IntKey(int64(t)), nil
	}
	return Key{}, &SyntaxError{Offset: offset, Msg: "illegal offset type"}
}

// parseConcat folds `'a' . 'b'` chains into one string.
func (p *parser) parseConcat(s string) (any, error) {
	for {
		save := p.pos
		p.skipSpace()
		if p.peek() != '.' || isDigit(p.peekAt(1)) {
			p.pos = save
			return s, nil
		}
		p.pos++
		p.skipSpace()
		if c := p.peek(); c != '\'' && c != '"' {
			return nil, p.errorf("only string literals can be concatenated")
		}
		next, err := p.parseString()
		if err != nil {
			return nil, err
		}
		s += next
	}
}

func (p *parser) parseString() (string, error) {
	if p.src[p.pos] == '\'' {
		return p.parseSingleQuoted()
	}
	return p.parseDoubleQuoted()
}

func (p *parser) parseSingleQuoted() (string, error) {
	start := p.pos
	p.pos++

	var b strings.Builder
	for !p.eof() {
		c := p.src[p.pos]
		switch {
		case c == '\'':
			p.pos++
			return b.String(), nil
		case c == '\\' && (p.peekAt(1) == '\'' || p.peekAt(1) == '\\'):
			b.WriteByte(p.peekAt(1))
			p.pos += 2
		default:
			b.WriteByte(c)
			p.pos++
		}
	}

	return "", &SyntaxError{Offset: start, Msg: "unterminated string"}
}

func (p *parser) parseDoubleQuoted() (string, error) {
	start := p.pos
	p.pos++

	var b strings.Builder
	for !p.eof() {
		c := p.src[p.pos]
		switch c {
		case '"':
			p.pos++
			return b.String(), nil
		case '$':
			if next := p.peekAt(1); isIdentStart(next) || next == '{' {
				return "", p.errorf("variable interpolation is not supported")
			}
			b.WriteByte(c)
			p.pos++
		case '\\':
			if err := p.parseEscape(&b); err != nil {
				return "", err
			}
		default:
			b.WriteByte(c)
			p.pos++
		}
	}

	return "", &SyntaxError{Offset: start, Msg: "unterminated string"}
}

func (p *parser) parseEscape(b *strings.Builder) error {
	next := p.peekAt(1)
	simple := map[byte]byte{
		'n': '\n', 't': '\t', 'r': '\r', 'v': '\v', 'e': 0x1b, 'f': '\f',
		'\\': '\\', '$': '$', '"': '"',
	}
	if r, ok := simple[next]; ok {
		b.WriteByte(r)
		p.pos += 2
		return nil
	}

	switch {
	case next >= '0' && next <= '7':
		p.pos++
		n := 0
		for i := 0; i < 3 && p.peek() >= '0' && p.peek() <= '7'; i++ {
			n = n*8 + int(p.peek()-'0')
			p.pos++
		}
		b.WriteByte(byte(n & 0xFF))
		return nil
	case next == 'x' && isHexDigit(p.peekAt(2)):
		p.pos += 2
		n := 0
		for i := 0; i < 2 && isHexDigit(p.peek()); i++ {
			n = n*16 + hexValue(p.peek())
			p.pos++
		}
		b.WriteByte(byte(n))
		return nil
	case next == 'u' && p.peekAt(2) == '{':
		end := strings.IndexByte(string(p.src[p.pos:]), '}')
		if end < 0 {
			return p.errorf("unterminated unicode escape")
		}
		code, err := strconv.ParseUint(string(p.src[p.pos+3:p.pos+end]), 16, 32)
		if err != nil || code > utf8.MaxRune {
			return p.errorf("invalid unicode escape")
		}
		b.WriteRune(rune(code))
		p.pos += end + 1
		return nil
	}

	b.WriteByte('\\')
	p.pos++
	return nil
}

func (p *parser) parseNumber() (any, error) {
	start := p.pos
	negative := false
	if c := p.peek(); c == '-' || c == '+' {
		negative = c == '-'
		p.pos++
		p.skipSpace()

		if isIdentStart(p.peek()) {
			if word := p.ident(); word == "INF" {
				if negative {
					return math.Inf(-1), nil
				}
				return math.Inf(1), nil
			}
			p.pos = start
			return nil, p.errorf("invalid number")
		}
	}

	if p.peek() == '0' {
		if base, ok := prefixedBase(p.peekAt(1)); ok {
			p.pos += 2
			digitsStart := p.pos
			for isHexDigit(p.peek()) || p.peek() == '_' {
				p.pos++
			}
			return p.integer(strings.ReplaceAll(string(p.src[digitsStart:p.pos]), "_", ""), base, negative, start)
		}
	}

	digitsStart := p.pos
	isFloat := false
	for isDigit(p.peek()) || p.peek() == '_' {
		p.pos++
	}
	if p.peek() == '.' && (isDigit(p.peekAt(1)) || p.pos > digitsStart) {
		isFloat = true
		p.pos++
		for isDigit(p.peek()) || p.peek() == '_' {
			p.pos++
		}
	}
	if c := p.peek(); c == 'e' || c == 'E' {
		save := p.pos
		p.pos++
		if c := p.peek(); c == '+' || c == '-' {
			p.pos++
		}
		if isDigit(p.peek()) {
			isFloat = true
			for isDigit(p.peek()) {
				p.pos++
			}
		} else {
			p.pos = save
		}
	}

	literal := strings.ReplaceAll(string(p.src[digitsStart:p.pos]), "_", "")
	if literal == "" {
		p.pos = start
		return nil, p.errorf("invalid number")
	}

	if isFloat {
		f, err := strconv.ParseFloat(literal, 64)
		if err != nil {
			return nil, &SyntaxError{Offset: start, Msg: fmt.Sprintf("invalid number %q", literal)}
		}
		if negative {
			f = -f
		}
		return f, nil
	}

	if len(literal) > 1 && literal[0] == '0' {
		return p.integer(literal[1:], 8, negative, start)
	}
	return p.integer(literal, 10, negative, start)
}

// integer converts digits in base to int64, falling back to float64 on
// overflow like the host runtime does.
func (p *parser) integer(digits string, base int, negative bool, start int) (any, error) {
	if digits == "" {
		return nil, &SyntaxError{Offset: start, Msg: "invalid number"}
	}
	u, err := strconv.ParseUint(digits, base, 64)
	if err != nil {
		if errors.Is(err, strconv.ErrRange) {
			f := bigToFloat(digits, base)
			if negative {
				f = -f
			}
			return f, nil
		}
		return nil, &SyntaxError{Offset: start, Msg: fmt.Sprintf("invalid number %q", digits)}
	}

	switch {
	case negative && u <= 1<<63:
		return -int64(u - 1) - 1, nil
	case !negative && u <= math.MaxInt64:
		return int64(u), nil
	case negative:
		return -float64(u), nil
	default:
		return float64(u), nil
	}
}

func prefixedBase(c byte) (int, bool) {
	switch c {
	case 'x', 'X':
		return 16, true
	case 'o', 'O':
		return 8, true
	case 'b', 'B':
		return 2, true
	}
	return 0, false
}

func bigToFloat(digits string, base int) float64 {
	f := 0.0
	for i := 0; i < len(digits); i++ {
		f = f*float64(base) + float64(hexValue(digits[i]))
	}
	return f
}

func (p *parser) ident() string {
	start := p.pos
	for isIdentByte(p.peek()) && !p.eof() {
		p.pos++
	}
	return string(p.src[start:p.pos])
}

func isSpace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\n' || c == '\r' || c == '\v' || c == '\f'
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}

func isHexDigit(c byte) bool {
	return isDigit(c) || (c >= 'a' && c <= 'f') || (c >= 'A' && c <= 'F')
}

func hexValue(c byte) int {
	switch {
	case isDigit(c):
		return int(c - '0')
	case c >= 'a' && c <= 'f':
		return int(c-'a') + 10
	default:
		return int(c-'A') + 10
	}
}

func isIdentStart(c byte) bool {
	return c == '_' || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || c >= 0x80
}

func isIdentByte(c byte) bool {
	return isIdentStart(c) || isDigit(c)
}
