package pdf

import (
	"strconv"
	"strings"

	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/unicode"
)

// spaceKerning is the TJ displacement (thousandths of an em) treated as a
// word gap.
const spaceKerning = -200

type tokenKind int

const (
	tokOther tokenKind = iota
	tokNumber
	tokString
	tokArray
	tokOperator
)

type token struct {
	kind  tokenKind
	num   float64
	str   []byte
	op    string
	items []token
}

// ParseContentStream returns the text shown by a page content stream.
// Line breaks follow the text positioning operators: T*, ' and " always
// start a new line, Td/TD start one when they move vertically and Tm when
// the baseline changes.
func ParseContentStream(data []byte) string {
	w := &textWriter{}
	lx := &lexer{data: data}

	var (
		operands []token
		lastY    float64
		haveY    bool
	)

	for {
		tok, ok := lx.next()
		if !ok {
			break
		}
		if tok.kind != tokOperator {
			operands = append(operands, tok)
			continue
		}

		switch tok.op {
		case "Tj":
			if s, ok := lastString(operands); ok {
				w.text(s)
			}
		case "TJ":
			if n := len(operands); n > 0 && operands[n-1].kind == tokArray {
				for _, item := range operands[n-1].items {
					switch item.kind {
					case tokString:
						w.text(item.str)
					case tokNumber:
						if item.num <= spaceKerning {
							w.space()
						}
					}
				}
			}
		case "'", `"`:
			w.newline()
			if s, ok := lastString(operands); ok {
				w.text(s)
			}
		case "T*":
			w.newline()
		case "Td", "TD":
			if n := len(operands); n >= 2 && operands[n-1].kind == tokNumber {
				if operands[n-1].num != 0 {
					w.newline()
				} else {
					w.space()
				}
			}
		case "Tm":
			if n := len(operands); n >= 6 && operands[n-1].kind == tokNumber {
				y := operands[n-1].num
				if haveY && y != lastY {
					w.newline()
				} else if haveY {
					w.space()
				}
				lastY, haveY = y, true
			}
		case "ID":
			lx.skipInlineImage()
		}
		operands = operands[:0]
	}

	return w.String()
}

func lastString(operands []token) ([]byte, bool) {
	if n := len(operands); n > 0 && operands[n-1].kind == tokString {
		return operands[n-1].str, true
	}
	return nil, false
}

// textWriter accumulates decoded text without doubled separators.
type textWriter struct {
	sb   strings.Builder
	last byte
}

func (w *textWriter) text(raw []byte) {
	s := decodeString(raw)
	if s == "" {
		return
	}
	w.sb.WriteString(s)
	w.last = s[len(s)-1]
}

func (w *textWriter) space() {
	if w.sb.Len() == 0 || w.last == ' ' || w.last == '\n' {
		return
	}
	w.sb.WriteByte(' ')
	w.last = ' '
}

func (w *textWriter) newline() {
	if w.sb.Len() == 0 || w.last == '\n' {
		return
	}
	w.sb.WriteByte('\n')
	w.last = '\n'
}

func (w *textWriter) String() string {
	return w.sb.String()
}

// decodeString converts a PDF string to UTF-8. Strings with a UTF-16 byte
// order mark are decoded as UTF-16BE, everything else as a single-byte
// encoding close to PDFDocEncoding.
func decodeString(raw []byte) string {
	if len(raw) >= 2 && raw[0] == 0xFE && raw[1] == 0xFF {
		out, err := unicode.UTF16(unicode.BigEndian, unicode.ExpectBOM).NewDecoder().Bytes(raw)
		if err == nil {
			return string(out)
		}
	}
	out, err := charmap.Windows1252.NewDecoder().Bytes(raw)
	if err != nil {
		return string(raw)
	}
	return string(out)
}

// lexer splits a content stream into operands and operators.
type lexer struct {
	data []byte
	pos  int
}

func isWhite(c byte) bool {
	switch c {
	case 0, '\t', '\n', '\f', '\r', ' ':
		return true
	}
	return false
}

func isDelim(c byte) bool {
	switch c {
	case '(', ')', '<', '>', '[', ']', '{', '}', '/', '%':
		return true
	}
	return false
}

func (l *lexer) skipSpace() {
	for l.pos < len(l.data) {
		c := l.data[l.pos]
		switch {
		case isWhite(c):
			l.pos++
		case c == '%':
			for l.pos < len(l.data) && l.data[l.pos] != '\n' && l.data[l.pos] != '\r' {
				l.pos++
			}
		default:
			return
		}
	}
}

func (l *lexer) next() (token, bool) {
	l.skipSpace()
	if l.pos >= len(l.data) {
		return token{}, false
	}

	c := l.data[l.pos]
	switch {
	case c == '(':
		l.pos++
		return token{kind: tokString, str: l.literal()}, true
	case c == '<':
		if l.pos+1 < len(l.data) && l.data[l.pos+1] == '<' {
			l.pos += 2
			return token{kind: tokOther}, true
		}
		l.pos++
		return token{kind: tokString, str: l.hex()}, true
	case c == '>':
		l.pos++
		if l.pos < len(l.data) && l.data[l.pos] == '>' {
			l.pos++
		}
		return token{kind: tokOther}, true
	case c == '[':
		l.pos++
		return token{kind: tokArray, items: l.array()}, true
	case c == ']', c == '{', c == '}', c == ')':
		l.pos++
		return token{kind: tokOther}, true
	case c == '/':
		l.pos++
		l.regular()
		return token{kind: tokOther}, true
	}

	word := l.regular()
	if word == "" {
		l.pos++
		return token{kind: tokOther}, true
	}
	if f, err := strconv.ParseFloat(word, 64); err == nil {
		return token{kind: tokNumber, num: f}, true
	}
	return token{kind: tokOperator, op: word}, true
}

func (l *lexer) regular() string {
	start := l.pos
	for l.pos < len(l.data) && !isWhite(l.data[l.pos]) && !isDelim(l.data[l.pos]) {
		l.pos++
	}
	return string(l.data[start:l.pos])
}

func (l *lexer) array() []token {
	var items []token
	for {
		l.skipSpace()
		if l.pos >= len(l.data) {
			return items
		}
		if l.data[l.pos] == ']' {
			l.pos++
			return items
		}
		tok, ok := l.next()
		if !ok {
			return items
		}
		items = append(items, tok)
	}
}

// literal reads a parenthesised string; the opening paren is consumed.
func (l *lexer) literal() []byte {
	var out []byte
	depth := 1
	for l.pos < len(l.data) {
		c := l.data[l.pos]
		l.pos++
		switch c {
		case '(':
			depth++
			out = append(out, c)
		case ')':
			depth--
			if depth == 0 {
				return out
			}
			out = append(out, c)
		case '\\':
			out = l.escape(out)
		default:
			out = append(out, c)
		}
	}
	return out
}

func (l *lexer) escape(out []byte) []byte {
	if l.pos >= len(l.data) {
		return out
	}
	c := l.data[l.pos]
	l.pos++
	switch c {
	case 'n':
		return append(out, '\n')
	case 'r':
		return append(out, '\r')
	case 't':
		return append(out, '\t')
	case 'b':
		return append(out, '\b')
	case 'f':
		return append(out, '\f')
	case '\r':
		if l.pos < len(l.data) && l.data[l.pos] == '\n' {
			l.pos++
		}
		return out
	case '\n':
		return out
	}
	if c >= '0' && c <= '7' {
		v := int(c - '0')
		for i := 0; i < 2 && l.pos < len(l.data); i++ {
			d := l.data[l.pos]
			if d < '0' || d > '7' {
				break
			}
			v = v*8 + int(d-'0')
			l.pos++
		}
		return append(out, byte(v))
	}
	return append(out, c)
}

// hex reads a hex string; the opening angle bracket is consumed.
func (l *lexer) hex() []byte {
	var digits []byte
	for l.pos < len(l.data) {
		c := l.data[l.pos]
		l.pos++
		if c == '>' {
			break
		}
		if isWhite(c) {
			continue
		}
		digits = append(digits, c)
	}
	if len(digits)%2 == 1 {
		digits = append(digits, '0')
	}
	out := make([]byte, 0, len(digits)/2)
	for i := 0; i+1 < len(digits); i += 2 {
		v, err := strconv.ParseUint(string(digits[i:i+2]), 16, 8)
		if err != nil {
			continue
		}
		out = append(out, byte(v))
	}
	return out
}

// skipInlineImage moves past inline image data up to and including EI.
func (l *lexer) skipInlineImage() {
	for l.pos+2 < len(l.data) {
		if isWhite(l.data[l.pos]) && l.data[l.pos+1] == 'E' && l.data[l.pos+2] == 'I' &&
			(l.pos+3 == len(l.data) || isWhite(l.data[l.pos+3])) {
			l.pos += 3
			return
		}
		l.pos++
	}
	l.pos = len(l.data)
}
