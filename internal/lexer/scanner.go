// Package lexer implements the Lox scanner: source text to a token
// sequence, per spec.md §4.1.
package lexer

import (
	"strconv"

	"github.com/hashicorp/go-multierror"
	"github.com/sirupsen/logrus"

	"github.com/letung3105/glox/internal/diagnostics"
	"github.com/letung3105/glox/internal/token"
)

// Scanner turns source runes into a flat token sequence ending in EOF.
// Errors are collected rather than aborting the scan, matching spec.md's
// "errors are reported but do not abort" failure semantics.
type Scanner struct {
	source  []rune
	tokens  []*token.Token
	start   int
	current int
	line    int
	errs    *multierror.Error
	log     *logrus.Entry
}

// New constructs a Scanner over source.
func New(source string) *Scanner {
	return &Scanner{
		source: []rune(source),
		line:   1,
		log:    logrus.WithField("component", "lexer"),
	}
}

// Scan runs the scanner to completion and returns the token stream (always
// non-nil, always EOF-terminated) along with an aggregated error of every
// scan error encountered, or nil if there were none.
func (s *Scanner) Scan() ([]*token.Token, error) {
	for !s.isAtEnd() {
		s.start = s.current
		s.scanToken()
	}
	s.tokens = append(s.tokens, token.New(token.EOF, "", nil, s.line))
	s.log.Debugf("scanned %d tokens", len(s.tokens))
	return s.tokens, s.errs.ErrorOrNil()
}

func (s *Scanner) scanToken() {
	c := s.advance()
	switch c {
	case '(':
		s.addToken(token.LEFT_PAREN, nil)
	case ')':
		s.addToken(token.RIGHT_PAREN, nil)
	case '{':
		s.addToken(token.LEFT_BRACE, nil)
	case '}':
		s.addToken(token.RIGHT_BRACE, nil)
	case ',':
		s.addToken(token.COMMA, nil)
	case '.':
		s.addToken(token.DOT, nil)
	case '-':
		s.addToken(token.MINUS, nil)
	case '+':
		s.addToken(token.PLUS, nil)
	case ';':
		s.addToken(token.SEMICOLON, nil)
	case '*':
		s.addToken(token.STAR, nil)
	case '!':
		if s.match('=') {
			s.addToken(token.BANG_EQUAL, nil)
		} else {
			s.addToken(token.BANG, nil)
		}
	case '=':
		if s.match('=') {
			s.addToken(token.EQUAL_EQUAL, nil)
		} else {
			s.addToken(token.EQUAL, nil)
		}
	case '<':
		if s.match('=') {
			s.addToken(token.LESS_EQUAL, nil)
		} else {
			s.addToken(token.LESS, nil)
		}
	case '>':
		if s.match('=') {
			s.addToken(token.GREATER_EQUAL, nil)
		} else {
			s.addToken(token.GREATER, nil)
		}
	case '/':
		if s.match('/') {
			for s.peek() != '\n' && !s.isAtEnd() {
				s.advance()
			}
		} else {
			s.addToken(token.SLASH, nil)
		}
	case ' ', '\r', '\t':
		// ignore whitespace
	case '\n':
		s.line++
	case '"':
		s.scanString()
	default:
		switch {
		case isDigit(c):
			s.scanNumber()
		case isAlpha(c):
			s.scanIdentifier()
		default:
			s.err(s.line, "Unexpected character.")
		}
	}
}

func (s *Scanner) scanString() {
	for s.peek() != '"' && !s.isAtEnd() {
		if s.peek() == '\n' {
			s.line++
		}
		s.advance()
	}
	if s.isAtEnd() {
		s.err(s.line, "Unterminated string.")
		return
	}
	// consume closing quote
	s.advance()
	val := string(s.source[s.start+1 : s.current-1])
	s.addToken(token.STRING, val)
}

func (s *Scanner) scanNumber() {
	for isDigit(s.peek()) {
		s.advance()
	}
	if s.peek() == '.' && isDigit(s.peekNext()) {
		s.advance()
		for isDigit(s.peek()) {
			s.advance()
		}
	}
	lexeme := string(s.source[s.start:s.current])
	val, err := strconv.ParseFloat(lexeme, 64)
	if err != nil {
		s.err(s.line, "Invalid number literal.")
		return
	}
	s.addToken(token.NUMBER, val)
}

func (s *Scanner) scanIdentifier() {
	for isAlphaNumeric(s.peek()) {
		s.advance()
	}
	lexeme := string(s.source[s.start:s.current])
	typ, isKeyword := token.Keywords[lexeme]
	if !isKeyword {
		typ = token.IDENTIFIER
	}
	s.addToken(typ, nil)
}

func (s *Scanner) advance() rune {
	c := s.source[s.current]
	s.current++
	return c
}

func (s *Scanner) match(expected rune) bool {
	if s.isAtEnd() || s.source[s.current] != expected {
		return false
	}
	s.current++
	return true
}

func (s *Scanner) peek() rune {
	if s.isAtEnd() {
		return 0
	}
	return s.source[s.current]
}

func (s *Scanner) peekNext() rune {
	if s.current+1 >= len(s.source) {
		return 0
	}
	return s.source[s.current+1]
}

func (s *Scanner) isAtEnd() bool {
	return s.current >= len(s.source)
}

func (s *Scanner) addToken(typ token.Type, literal interface{}) {
	lexeme := string(s.source[s.start:s.current])
	s.tokens = append(s.tokens, token.New(typ, lexeme, literal, s.line))
}

func (s *Scanner) err(line int, message string) {
	s.log.Debugf("line %d: %s", line, message)
	s.errs = multierror.Append(s.errs, diagnostics.NewScanError(line, message))
}

func isDigit(c rune) bool {
	return c >= '0' && c <= '9'
}

func isAlpha(c rune) bool {
	return c == '_' || (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

func isAlphaNumeric(c rune) bool {
	return isAlpha(c) || isDigit(c)
}
