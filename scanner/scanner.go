// Package scanner converts Lox source text into a stream of lexical tokens.
package scanner

import (
	"github.com/aldenridge/lox/loxerror"
	"github.com/aldenridge/lox/token"
)

// Scan scans src and returns the tokens it contains.
// If any lexical errors are encountered, scanning still runs to completion so that every error in the source
// is reported, but a nil token slice is returned alongside the accumulated errors.
func Scan(src string) ([]token.Token, error) {
	s := &scanner{src: src, line: 1}
	return s.scan()
}

type scanner struct {
	src string

	start   int // index of the first byte of the lexeme currently being scanned
	current int // index of the next byte to be read
	line    int // line of the byte at src[current]

	tokens []token.Token
	errs   loxerror.List
}

func (s *scanner) scan() ([]token.Token, error) {
	for !s.atEnd() {
		s.start = s.current
		s.scanToken()
	}
	if err := s.errs.Err(); err != nil {
		return nil, err
	}
	return s.tokens, nil
}

func (s *scanner) scanToken() {
	c := s.advance()
	switch c {
	case ' ', '\r', '\t':
	case '\n':
		s.line++
	case '(':
		s.addToken(token.LeftParen)
	case ')':
		s.addToken(token.RightParen)
	case '{':
		s.addToken(token.LeftBrace)
	case '}':
		s.addToken(token.RightBrace)
	case ',':
		s.addToken(token.Comma)
	case '.':
		s.addToken(token.Dot)
	case '-':
		s.addToken(token.Minus)
	case '+':
		s.addToken(token.Plus)
	case ';':
		s.addToken(token.Semicolon)
	case '*':
		s.addToken(token.Star)
	case '!':
		s.addToken(s.ifMatch('=', token.BangEqual, token.Bang))
	case '=':
		s.addToken(s.ifMatch('=', token.EqualEqual, token.Equal))
	case '<':
		s.addToken(s.ifMatch('=', token.LessEqual, token.Less))
	case '>':
		s.addToken(s.ifMatch('=', token.GreaterEqual, token.Greater))
	case '/':
		if s.match('/') {
			for s.peek() != '\n' && !s.atEnd() {
				s.advance()
			}
		} else {
			s.addToken(token.Slash)
		}
	case '"':
		s.scanString()
	default:
		switch {
		case isDigit(c):
			s.scanNumber()
		case isAlpha(c):
			s.scanIdent()
		default:
			s.errs.Add(token.Position{Line: s.line}, "Unexpected character: '%c'", c)
		}
	}
}

func (s *scanner) scanString() {
	startLine := s.line
	for s.peek() != '"' && !s.atEnd() {
		if s.peek() == '\n' {
			s.line++
		}
		s.advance()
	}
	if s.atEnd() {
		s.errs.Add(token.Position{Line: startLine}, "Unterminated string.")
		return
	}
	s.advance() // consume the closing "
	value := s.src[s.start+1 : s.current-1]
	s.tokens = append(s.tokens, token.Token{Type: token.String, Lexeme: value, Pos: token.Position{Line: startLine}})
}

func (s *scanner) scanNumber() {
	for isDigit(s.peek()) {
		s.advance()
	}
	if s.peek() == '.' && isDigit(s.peekNext()) {
		s.advance() // consume the '.'
		for isDigit(s.peek()) {
			s.advance()
		}
	}
	s.addToken(token.Number)
}

func (s *scanner) scanIdent() {
	for isAlphaNumeric(s.peek()) {
		s.advance()
	}
	s.addToken(token.LookupIdent(s.lexeme()))
}

func (s *scanner) lexeme() string {
	return s.src[s.start:s.current]
}

func (s *scanner) addToken(t token.Type) {
	lexeme := ""
	if t == token.Ident || t == token.Number {
		lexeme = s.lexeme()
	}
	s.tokens = append(s.tokens, token.Token{Type: t, Lexeme: lexeme, Pos: token.Position{Line: s.line}})
}

func (s *scanner) advance() byte {
	c := s.src[s.current]
	s.current++
	return c
}

func (s *scanner) match(want byte) bool {
	if s.atEnd() || s.src[s.current] != want {
		return false
	}
	s.current++
	return true
}

func (s *scanner) ifMatch(want byte, yes, no token.Type) token.Type {
	if s.match(want) {
		return yes
	}
	return no
}

func (s *scanner) peek() byte {
	if s.atEnd() {
		return 0
	}
	return s.src[s.current]
}

func (s *scanner) peekNext() byte {
	if s.current+1 >= len(s.src) {
		return 0
	}
	return s.src[s.current+1]
}

func (s *scanner) atEnd() bool {
	return s.current >= len(s.src)
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}

func isAlpha(c byte) bool {
	return c == '_' || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

func isAlphaNumeric(c byte) bool {
	return isAlpha(c) || isDigit(c)
}
