package reader

import (
	"bufio"
	"io"
	"strconv"
	"strings"
)

const tabColumns = 4

// InputStream reads characters and tokens from a scene source, tracking the
// current line and column. One character and one token can be pushed back.
type InputStream struct {
	reader   *bufio.Reader
	Location SourceLocation

	savedChar     byte
	hasSavedChar  bool
	savedLocation SourceLocation
	peeking       bool

	savedToken *Token
}

// Create a stream over r; fileName is registered for error reporting.
func NewInputStream(r io.Reader, fileName string) *InputStream {
	index := -1
	if fileName != "" {
		index = RegisterFile(fileName)
	}
	return &InputStream{
		reader:   bufio.NewReader(r),
		Location: SourceLocation{FileIndex: index, Line: 1, Col: 1},
	}
}

func isSkippable(c byte) bool {
	return c == ' ' || c == '\n' || c == '\t' || c == '\r' || c == '#'
}

func isDigit(c byte) bool {
	return c >= '0' && c <= '9'
}

func isAlpha(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

func (s *InputStream) updateLocation(c byte) {
	switch c {
	case 0: // EOF, nothing to do
	case '\n':
		s.Location.Line++
		s.Location.Col = 1
	case '\t':
		s.Location.Col += tabColumns
	default:
		s.Location.Col++
	}
}

// ReadChar returns the next character, or 0 at the end of the stream.
func (s *InputStream) ReadChar() byte {
	var c byte
	if s.hasSavedChar {
		c = s.savedChar
		s.hasSavedChar = false
	} else {
		b, err := s.reader.ReadByte()
		if err != nil {
			b = 0
		}
		c = b
	}

	s.savedLocation = s.Location
	s.updateLocation(c)
	s.peeking = false

	return c
}

// UnreadChar pushes the last character back onto the stream.
func (s *InputStream) UnreadChar(c byte) {
	s.savedChar = c
	s.hasSavedChar = true
	s.Location = s.savedLocation
}

// PeekChar looks at the next character without consuming it.
func (s *InputStream) PeekChar() byte {
	c := s.ReadChar()
	s.peeking = true
	s.UnreadChar(c)
	return c
}

func (s *InputStream) skipComment() {
	c := byte('#')
	for c != '\n' && c != '\r' && c != 0 {
		c = s.ReadChar()
	}
}

func (s *InputStream) skipWhitespaceAndComments() {
	c := s.ReadChar()
	for isSkippable(c) {
		if c == '#' {
			s.skipComment()
		}
		c = s.ReadChar()
		if c == 0 {
			return
		}
	}
	s.UnreadChar(c)
}

// ReadToken returns the next token: a keyword, an identifier, a string or
// number literal, a symbol, or EOF.
func (s *InputStream) ReadToken() (Token, error) {
	if s.savedToken != nil {
		token := *s.savedToken
		s.savedToken = nil
		return token, nil
	}

	s.skipWhitespaceAndComments()
	c := s.PeekChar()

	if c == 0 {
		return Token{Tag: TokenStop, Location: s.Location}, nil
	}

	location := s.Location

	switch {
	case strings.IndexByte(symbols, c) >= 0:
		return Token{Tag: TokenSymbol, Symbol: s.ReadChar(), Location: location}, nil
	case c == '"':
		s.ReadChar() // skip the opening quote
		return s.readStringToken(location)
	case isDigit(c) || c == '-':
		return s.readNumberToken(location)
	case isAlpha(c):
		return s.readIdentifierOrKeyword(location), nil
	}

	return Token{}, grammarErrorf(s.Location, "invalid character %q", string(s.ReadChar()))
}

// UnreadToken pushes a token back; only one token of lookahead is supported.
func (s *InputStream) UnreadToken(token Token) {
	t := token
	s.savedToken = &t
}

func (s *InputStream) readIdentifierOrKeyword(location SourceLocation) Token {
	var sb strings.Builder
	for {
		c := s.PeekChar()
		// the first character is known not to be a digit
		if !isAlpha(c) && !isDigit(c) && c != '_' {
			break
		}
		sb.WriteByte(s.ReadChar())
	}

	value := sb.String()
	if kw, ok := keywords[value]; ok {
		return Token{Tag: TokenKeyword, Keyword: kw, Location: location}
	}
	return Token{Tag: TokenIdentifier, Str: value, Location: location}
}

func (s *InputStream) readStringToken(location SourceLocation) (Token, error) {
	var sb strings.Builder
	for {
		c := s.ReadChar()
		if c == '"' {
			break
		}
		if c == 0 {
			return Token{}, grammarErrorf(location, "unterminated string")
		}
		sb.WriteByte(c)
	}
	return Token{Tag: TokenString, Str: sb.String(), Location: location}, nil
}

func (s *InputStream) readNumberToken(location SourceLocation) (Token, error) {
	var sb strings.Builder
	dots, exponents := false, false

	// a '-' is only part of the literal at the start or right after the
	// exponent, so "-1-2" lexes as two numbers
	if s.PeekChar() == '-' {
		sb.WriteByte(s.ReadChar())
	}

	for {
		c := s.PeekChar()
		if !isDigit(c) && c != '.' && c != 'e' && c != 'E' {
			break
		}

		// reject early what strconv would silently truncate, e.g. 1.2.3
		if c == '.' {
			if dots {
				return Token{}, grammarErrorf(s.Location, "too many '.' in number literal")
			}
			dots = true
		} else if c == 'e' || c == 'E' {
			if exponents {
				return Token{}, grammarErrorf(s.Location, "too many exponents in number literal")
			}
			exponents = true
			sb.WriteByte(s.ReadChar())
			if s.PeekChar() == '-' || s.PeekChar() == '+' {
				sb.WriteByte(s.ReadChar())
			}
			continue
		}

		sb.WriteByte(s.ReadChar())
	}

	value := sb.String()
	number, err := strconv.ParseFloat(value, 32)
	if err != nil {
		return Token{}, grammarErrorf(location, "%q is not a valid number", value)
	}

	return Token{Tag: TokenNumber, Number: float32(number), Location: location}, nil
}
