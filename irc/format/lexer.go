// Copyright (c) 2026 chatfmt contributors
// released under the MIT license

package format

import (
	"fmt"
	"strings"
	"unicode/utf8"
)

// TokenKind discriminates the variants of Token.
type TokenKind uint8

const (
	// PlainToken is a run of literal text.
	PlainToken TokenKind = iota
	// MarkdownToken is a delimited span such as **bold** or ||spoiler||.
	MarkdownToken
	// DirectiveToken is a dollar-code such as $b or $c4,1.
	DirectiveToken
	// UnknownToken is a single character that matched nothing else,
	// or a single byte that isn't valid UTF-8.
	UnknownToken
)

// SpanKind is the kind of a markdown span.
type SpanKind uint8

const (
	BoldSpan SpanKind = iota
	ItalicSpan
	BoldItalicSpan
	CodeSpan
	SpoilerSpan
)

// DirectiveKind is the kind of a dollar-code directive.
type DirectiveKind uint8

const (
	StartBold DirectiveKind = iota
	StartItalic
	StartMonospace
	ResetFormatting
	StartColor
	EndColor
)

// Token is one lexical unit of chat markup.
type Token struct {
	Kind      TokenKind
	Span      SpanKind      // MarkdownToken only
	Directive DirectiveKind // DirectiveToken only
	// Text is the de-escaped content of a PlainToken or MarkdownToken,
	// or the character of an UnknownToken.
	Text string
	// StartColor only:
	Foreground    ColorCode
	Background    ColorCode
	HasBackground bool
	// Raw is the slice of the input this token was lexed from.
	Raw string
}

var spanNames = map[SpanKind]string{
	BoldSpan:       "bold",
	ItalicSpan:     "italic",
	BoldItalicSpan: "bolditalic",
	CodeSpan:       "code",
	SpoilerSpan:    "spoiler",
}

var directiveNames = map[DirectiveKind]string{
	StartBold:       "$b",
	StartItalic:     "$i",
	StartMonospace:  "$m",
	ResetFormatting: "$r",
	StartColor:      "$c",
	EndColor:        "$c",
}

func (s SpanKind) String() string {
	return spanNames[s]
}

func (t Token) String() string {
	switch t.Kind {
	case PlainToken:
		return fmt.Sprintf("plain(%q)", t.Text)
	case MarkdownToken:
		return fmt.Sprintf("%s(%q)", t.Span, t.Text)
	case DirectiveToken:
		switch t.Directive {
		case StartColor:
			if t.HasBackground {
				return fmt.Sprintf("$c(%s,%s)", t.Foreground, t.Background)
			}
			return fmt.Sprintf("$c(%s)", t.Foreground)
		case EndColor:
			return "$c()"
		default:
			return directiveNames[t.Directive]
		}
	default:
		return fmt.Sprintf("unknown(%q)", t.Text)
	}
}

// markdown span delimiters, in priority order: the longest and most specific
// delimiters must be tried first
var spanDelimiters = []struct {
	open, close string
	kind        SpanKind
}{
	{"___", "___", BoldItalicSpan},
	{"***", "***", BoldItalicSpan},
	{"**_", "_**", BoldItalicSpan},
	{"__*", "*__", BoldItalicSpan},
	{"__", "__", BoldSpan},
	{"**", "**", BoldSpan},
	{"_", "_", ItalicSpan},
	{"*", "*", ItalicSpan},
	{"`", "`", CodeSpan},
	{"||", "||", SpoilerSpan},
}

// Lex splits chat markup into tokens. With markdownOnly set, dollar-codes
// are not recognized. Every byte of the input ends up in exactly one token.
func Lex(input string, markdownOnly bool) (tokens []Token) {
	remaining := input
	for len(remaining) != 0 {
		token, n := lexToken(remaining, markdownOnly)
		token.Raw = remaining[:n]
		tokens = append(tokens, token)
		remaining = remaining[n:]
	}
	return tokens
}

// lexToken tries each alternative at the current position; first match wins.
func lexToken(s string, markdownOnly bool) (token Token, n int) {
	if text, n := plainRun(s, markdownOnly); n != 0 {
		return Token{Kind: PlainToken, Text: text}, n
	}
	if token, n = lexMarkdown(s, markdownOnly); n != 0 {
		return
	}
	if !markdownOnly {
		if token, n = lexDirective(s); n != 0 {
			return
		}
	}
	// a byte that isn't valid UTF-8 goes through on its own
	_, size := utf8.DecodeRuneInString(s)
	return Token{Kind: UnknownToken, Text: s[:size]}, size
}

func lexMarkdown(s string, markdownOnly bool) (token Token, n int) {
	for _, delim := range spanDelimiters {
		if text, n := between(s, delim.open, delim.close, markdownOnly); n != 0 {
			return Token{Kind: MarkdownToken, Span: delim.kind, Text: text}, n
		}
	}
	return Token{}, 0
}

func lexDirective(s string) (token Token, n int) {
	if len(s) < 2 || s[0] != '$' {
		return Token{}, 0
	}
	token.Kind = DirectiveToken
	switch s[1] {
	case 'b':
		token.Directive = StartBold
	case 'i':
		token.Directive = StartItalic
	case 'm':
		token.Directive = StartMonospace
	case 'r':
		token.Directive = ResetFormatting
	case 'c':
		return lexColor(s)
	default:
		return Token{}, 0
	}
	return token, 2
}

// lexColor matches $cFG[,BG]; if no color follows, the $c alone ends color.
func lexColor(s string) (token Token, n int) {
	token.Kind = DirectiveToken
	n = len("$c")
	fg, fgLen := colorValue(s[n:])
	if fgLen == 0 {
		token.Directive = EndColor
		return token, n
	}
	token.Directive = StartColor
	token.Foreground = fg
	n += fgLen
	if strings.HasPrefix(s[n:], ",") {
		if bg, bgLen := colorValue(s[n+1:]); bgLen != 0 {
			token.Background = bg
			token.HasBackground = true
			n += 1 + bgLen
		}
	}
	return token, n
}
