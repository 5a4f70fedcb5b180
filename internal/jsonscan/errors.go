package jsonscan

import (
	"errors"
	"fmt"
	"strings"
)

var (
	errUnterminatedString = errors.New("unterminated string")
	errMalformedNumber    = errors.New("malformed number")
	errExponentRejected   = errors.New("exponent notation rejected")
)

const diagnosticWindow = 8

// ScanError reports a lexical failure together with the tokens already
// materialized before the failure, so a diagnostic window can be rendered.
type ScanError struct {
	Pos    int
	Msg    string
	Tokens []Token
}

func (e *ScanError) Error() string {
	return fmt.Sprintf("jsonscan: %s at byte %d", e.Msg, e.Pos)
}

// Diagnostic renders up to diagnosticWindow tokens scanned just before
// the failure, followed by a "<-- here" marker at the failure point, for
// human-facing error output.
func (e *ScanError) Diagnostic(buf []byte) string {
	n := len(e.Tokens)
	lo := n - diagnosticWindow
	if lo < 0 {
		lo = 0
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%s\n", e.Error())
	for i := lo; i < n; i++ {
		b.WriteString(describeToken(e.Tokens[i], buf))
		b.WriteByte(' ')
	}
	b.WriteString("<-- here")
	return b.String()
}

func describeToken(t Token, buf []byte) string {
	switch t.Kind {
	case KindString:
		return fmt.Sprintf("%q", t.Text(buf))
	case KindNumber:
		return fmt.Sprintf("%v", t.Float)
	case KindBool:
		return fmt.Sprintf("%v", t.Bool)
	case KindNull:
		return "null"
	case KindPunct:
		return string(t.Punct)
	case KindEOF:
		return "<eof>"
	default:
		return "?"
	}
}

// ParseError reports a failure in the materializer's token-consuming
// parse, distinct from a lexical ScanError: the tokens were well-formed
// but did not match the expected grammar at the given index.
type ParseError struct {
	TokenIndex int
	Msg        string
	Tokens     []Token
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("jsonscan: %s at token %d", e.Msg, e.TokenIndex)
}

// Diagnostic renders a ±diagnosticWindow-token window around the failing
// token index.
func (e *ParseError) Diagnostic(buf []byte) string {
	n := len(e.Tokens)
	lo := e.TokenIndex - diagnosticWindow
	if lo < 0 {
		lo = 0
	}
	hi := e.TokenIndex + diagnosticWindow
	if hi > n {
		hi = n
	}

	var b strings.Builder
	fmt.Fprintf(&b, "%s\n", e.Error())
	for i := lo; i < hi; i++ {
		b.WriteString(describeToken(e.Tokens[i], buf))
		if i == e.TokenIndex {
			b.WriteString("[HERE]")
		}
		b.WriteByte(' ')
	}
	return b.String()
}
