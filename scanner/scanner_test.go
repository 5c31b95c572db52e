package scanner_test

import (
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/aldenridge/lox/scanner"
	"github.com/aldenridge/lox/token"
)

func TestScanPunctuationAndOperators(t *testing.T) {
	tokens, err := scanner.Scan("(){},.-+;/* ! != = == > >= < <=")
	if err != nil {
		t.Fatalf("Scan returned unexpected error: %s", err)
	}

	want := []token.Type{
		token.LeftParen, token.RightParen, token.LeftBrace, token.RightBrace,
		token.Comma, token.Dot, token.Minus, token.Plus, token.Semicolon,
		token.Slash, token.Star, token.Bang, token.BangEqual, token.Equal,
		token.EqualEqual, token.Greater, token.GreaterEqual, token.Less, token.LessEqual,
	}
	var got []token.Type
	for _, tok := range tokens {
		got = append(got, tok.Type)
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("token types mismatch (-want +got):\n%s", diff)
	}
}

func TestScanLineComment(t *testing.T) {
	tokens, err := scanner.Scan("1 // this is a comment\n2")
	if err != nil {
		t.Fatalf("Scan returned unexpected error: %s", err)
	}
	if len(tokens) != 2 {
		t.Fatalf("got %d tokens, want 2: %v", len(tokens), tokens)
	}
	if tokens[1].Pos.Line != 2 {
		t.Errorf("second token on line %d, want 2", tokens[1].Pos.Line)
	}
}

func TestScanString(t *testing.T) {
	tokens, err := scanner.Scan(`"hello, world"`)
	if err != nil {
		t.Fatalf("Scan returned unexpected error: %s", err)
	}
	if len(tokens) != 1 {
		t.Fatalf("got %d tokens, want 1", len(tokens))
	}
	if tokens[0].Type != token.String || tokens[0].Lexeme != "hello, world" {
		t.Errorf("got %+v, want String %q", tokens[0], "hello, world")
	}
}

func TestScanMultilineString(t *testing.T) {
	tokens, err := scanner.Scan("\"a\nb\"\n1")
	if err != nil {
		t.Fatalf("Scan returned unexpected error: %s", err)
	}
	if tokens[1].Pos.Line != 3 {
		t.Errorf("number after multiline string on line %d, want 3", tokens[1].Pos.Line)
	}
}

func TestScanUnterminatedString(t *testing.T) {
	_, err := scanner.Scan(`"unterminated`)
	if err == nil {
		t.Fatal("Scan returned no error for unterminated string")
	}
	if !strings.Contains(err.Error(), "Unterminated string.") {
		t.Errorf("error %q does not contain expected message", err.Error())
	}
}

func TestScanNumber(t *testing.T) {
	tokens, err := scanner.Scan("123 45.67")
	if err != nil {
		t.Fatalf("Scan returned unexpected error: %s", err)
	}
	want := []string{"123", "45.67"}
	var got []string
	for _, tok := range tokens {
		got = append(got, tok.Lexeme)
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("number lexemes mismatch (-want +got):\n%s", diff)
	}
}

func TestScanIdentsAndKeywords(t *testing.T) {
	tokens, err := scanner.Scan("foo class and orbit")
	if err != nil {
		t.Fatalf("Scan returned unexpected error: %s", err)
	}
	want := []token.Type{token.Ident, token.Class, token.And, token.Ident}
	var got []token.Type
	for _, tok := range tokens {
		got = append(got, tok.Type)
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("token types mismatch (-want +got):\n%s", diff)
	}
	if tokens[3].Lexeme != "orbit" {
		t.Errorf("got lexeme %q, want %q", tokens[3].Lexeme, "orbit")
	}
}

func TestScanUnexpectedCharacter(t *testing.T) {
	_, err := scanner.Scan("1 @ 2")
	if err == nil {
		t.Fatal("Scan returned no error for unexpected character")
	}
	if !strings.Contains(err.Error(), "Unexpected character: '@'") {
		t.Errorf("error %q does not contain expected message", err.Error())
	}
}

func TestScanAccumulatesMultipleErrors(t *testing.T) {
	_, err := scanner.Scan("@ # $")
	if err == nil {
		t.Fatal("Scan returned no error")
	}
	for _, want := range []string{"'@'", "'#'", "'$'"} {
		if !strings.Contains(err.Error(), want) {
			t.Errorf("error %q missing %s", err.Error(), want)
		}
	}
}
