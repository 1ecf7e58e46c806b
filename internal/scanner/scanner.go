// Package scanner provides a minimal Python tokenizer for signature slices.
// It distinguishes just enough token kinds for trailing-boundary detection:
// the terminating colon, comments, strings, and the two newline flavors.
package scanner

import "strings"

// Kind is the kind of a scanned token.
type Kind int

const (
	EOF Kind = iota
	Colon
	Comment
	NL      // newline inside brackets or on a line without code
	Newline // newline terminating a logical line
	String
	Name
	Number
	Op
)

var kindNames = map[Kind]string{
	EOF:     "eof",
	Colon:   "colon",
	Comment: "comment",
	NL:      "nl",
	Newline: "newline",
	String:  "string",
	Name:    "name",
	Number:  "number",
	Op:      "op",
}

func (k Kind) String() string {
	if s, ok := kindNames[k]; ok {
		return s
	}
	return "unknown"
}

// Token is a single scanned token. Line is 1-indexed relative to the
// scanned text and refers to the line the token starts on.
type Token struct {
	Kind Kind
	Text string
	Line int
}

// PhysicalLines returns the number of physical lines the token text spans,
// ignoring a trailing newline. An empty text spans zero lines.
func (t Token) PhysicalLines() int {
	if t.Text == "" {
		return 0
	}
	n := strings.Count(t.Text, "\n")
	if !strings.HasSuffix(t.Text, "\n") {
		n++
	}
	return n
}

// Scan tokenizes src. A newline is Newline when it terminates a logical
// line (code was seen on the line, outside brackets) and NL otherwise,
// mirroring how Python's tokenize module separates the two.
func Scan(src string) []Token {
	s := &scanner{src: src, line: 1}
	var tokens []Token
	for {
		tok := s.next()
		tokens = append(tokens, tok)
		if tok.Kind == EOF {
			return tokens
		}
	}
}

type scanner struct {
	src         string
	pos         int
	line        int
	depth       int  // bracket nesting
	lineHasCode bool // a non-trivia token was seen on the current line
}

func (s *scanner) next() Token {
	for s.pos < len(s.src) {
		c := s.src[s.pos]
		switch {
		case c == ' ' || c == '\t' || c == '\r':
			s.pos++

		case c == '\\' && s.pos+1 < len(s.src) && s.src[s.pos+1] == '\n':
			// Explicit line continuation produces no token.
			s.pos += 2
			s.line++

		case c == '\n':
			kind := Newline
			if s.depth > 0 || !s.lineHasCode {
				kind = NL
			}
			tok := Token{Kind: kind, Text: "\n", Line: s.line}
			s.pos++
			s.line++
			s.lineHasCode = false
			return tok

		case c == '#':
			start := s.pos
			for s.pos < len(s.src) && s.src[s.pos] != '\n' {
				s.pos++
			}
			return Token{Kind: Comment, Text: s.src[start:s.pos], Line: s.line}

		case c == '\'' || c == '"':
			return s.scanString(s.pos)

		case isNameStart(c):
			start := s.pos
			for s.pos < len(s.src) && isNameChar(s.src[s.pos]) {
				s.pos++
			}
			text := s.src[start:s.pos]
			if isStringPrefix(text) && s.pos < len(s.src) && (s.src[s.pos] == '\'' || s.src[s.pos] == '"') {
				return s.scanString(start)
			}
			s.lineHasCode = true
			return Token{Kind: Name, Text: text, Line: s.line}

		case isDigit(c):
			start := s.pos
			for s.pos < len(s.src) && isNumberChar(s.src[s.pos]) {
				s.pos++
			}
			s.lineHasCode = true
			return Token{Kind: Number, Text: s.src[start:s.pos], Line: s.line}

		case c == ':':
			s.pos++
			s.lineHasCode = true
			return Token{Kind: Colon, Text: ":", Line: s.line}

		default:
			s.lineHasCode = true
			switch c {
			case '(', '[', '{':
				s.depth++
			case ')', ']', '}':
				if s.depth > 0 {
					s.depth--
				}
			case '-':
				if s.pos+1 < len(s.src) && s.src[s.pos+1] == '>' {
					tok := Token{Kind: Op, Text: "->", Line: s.line}
					s.pos += 2
					return tok
				}
			}
			tok := Token{Kind: Op, Text: string(c), Line: s.line}
			s.pos++
			return tok
		}
	}
	return Token{Kind: EOF, Line: s.line}
}

// scanString consumes a string literal starting at start (which may point
// at a prefix such as r or f). Triple-quoted strings may span lines.
func (s *scanner) scanString(start int) Token {
	line := s.line
	s.pos = start
	for s.pos < len(s.src) && s.src[s.pos] != '\'' && s.src[s.pos] != '"' {
		s.pos++ // skip prefix letters
	}
	quote := s.src[s.pos]
	triple := strings.HasPrefix(s.src[s.pos:], strings.Repeat(string(quote), 3))

	if triple {
		s.pos += 3
		for s.pos < len(s.src) {
			if s.src[s.pos] == quote && strings.HasPrefix(s.src[s.pos:], strings.Repeat(string(quote), 3)) {
				s.pos += 3
				break
			}
			if s.src[s.pos] == '\n' {
				s.line++
			}
			s.pos++
		}
	} else {
		s.pos++
		for s.pos < len(s.src) && s.src[s.pos] != quote && s.src[s.pos] != '\n' {
			if s.src[s.pos] == '\\' && s.pos+1 < len(s.src) {
				if s.src[s.pos+1] == '\n' {
					s.line++
				}
				s.pos++
			}
			s.pos++
		}
		if s.pos < len(s.src) && s.src[s.pos] == quote {
			s.pos++
		}
	}

	s.lineHasCode = true
	return Token{Kind: String, Text: s.src[start:s.pos], Line: line}
}

func isNameStart(c byte) bool {
	return c == '_' || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || c >= 0x80
}

func isNameChar(c byte) bool {
	return isNameStart(c) || isDigit(c)
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}

func isNumberChar(c byte) bool {
	return isDigit(c) || c == '.' || c == '_' || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

func isStringPrefix(text string) bool {
	if len(text) == 0 || len(text) > 2 {
		return false
	}
	for i := 0; i < len(text); i++ {
		switch text[i] {
		case 'r', 'R', 'b', 'B', 'u', 'U', 'f', 'F':
		default:
			return false
		}
	}
	return true
}
