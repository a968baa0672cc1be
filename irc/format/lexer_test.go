// Copyright (c) 2026 chatfmt contributors
// released under the MIT license

package format

import (
	"reflect"
	"testing"
)

func assertEqual(found, expected interface{}, t *testing.T) {
	t.Helper()
	if !reflect.DeepEqual(found, expected) {
		t.Errorf("expected %#v, found %#v", expected, found)
	}
}

func TestLexTokens(t *testing.T) {
	tokens := Lex("hi **there** $c4,1x\\_y$c!", false)
	expected := []Token{
		{Kind: PlainToken, Text: "hi ", Raw: "hi "},
		{Kind: MarkdownToken, Span: BoldSpan, Text: "there", Raw: "**there**"},
		{Kind: PlainToken, Text: " ", Raw: " "},
		{Kind: DirectiveToken, Directive: StartColor, Foreground: Red, Background: Black, HasBackground: true, Raw: "$c4,1"},
		{Kind: PlainToken, Text: "x_y", Raw: "x\\_y"},
		{Kind: DirectiveToken, Directive: EndColor, Raw: "$c"},
		{Kind: PlainToken, Text: "!", Raw: "!"},
	}
	assertEqual(tokens, expected, t)
}

func TestLexSpanPriority(t *testing.T) {
	testCases := map[string]Token{
		"___x___": {Kind: MarkdownToken, Span: BoldItalicSpan, Text: "x", Raw: "___x___"},
		"***x***": {Kind: MarkdownToken, Span: BoldItalicSpan, Text: "x", Raw: "***x***"},
		"**_x_**": {Kind: MarkdownToken, Span: BoldItalicSpan, Text: "x", Raw: "**_x_**"},
		"__*x*__": {Kind: MarkdownToken, Span: BoldItalicSpan, Text: "x", Raw: "__*x*__"},
		"__x__":   {Kind: MarkdownToken, Span: BoldSpan, Text: "x", Raw: "__x__"},
		"**x**":   {Kind: MarkdownToken, Span: BoldSpan, Text: "x", Raw: "**x**"},
		"_x_":     {Kind: MarkdownToken, Span: ItalicSpan, Text: "x", Raw: "_x_"},
		"*x*":     {Kind: MarkdownToken, Span: ItalicSpan, Text: "x", Raw: "*x*"},
		"`x`":     {Kind: MarkdownToken, Span: CodeSpan, Text: "x", Raw: "`x`"},
		"||x||":   {Kind: MarkdownToken, Span: SpoilerSpan, Text: "x", Raw: "||x||"},
	}
	for input, expected := range testCases {
		tokens := Lex(input, false)
		if len(tokens) != 1 {
			t.Errorf("%s: expected one token, got %v", input, tokens)
			continue
		}
		assertEqual(tokens[0], expected, t)
	}
}

func TestLexDirectives(t *testing.T) {
	testCases := map[string]string{
		"$b":             "$b",
		"$i":             "$i",
		"$m":             "$m",
		"$r":             "$r",
		"$c":             "$c()",
		"$cxyz":          "$c()",
		"$c12":           "$c(lightblue)",
		"$c07":           "$c(orange)",
		"$c42":           "$c(42)",
		"$cgrey,pink":    "$c(grey,pink)",
		"$clightgrey,98": "$c(lightgrey,98)",
		"$c3,":           "$c(green)",
	}
	for input, expected := range testCases {
		tokens := Lex(input, false)
		if len(tokens) == 0 {
			t.Errorf("%s: lexing failed", input)
			continue
		}
		assertEqual(tokens[0].String(), expected, t)
	}
}

func TestLexMarkdownOnly(t *testing.T) {
	tokens := Lex("$b`$c`", true)
	expected := []Token{
		{Kind: PlainToken, Text: "$b", Raw: "$b"},
		{Kind: MarkdownToken, Span: CodeSpan, Text: "$c", Raw: "`$c`"},
	}
	assertEqual(tokens, expected, t)

	// without the flag, `$c` can't be span content
	tokens = Lex("`$c`", false)
	assertEqual(len(tokens), 3, t)
	assertEqual(tokens[0].Kind, UnknownToken, t)
	assertEqual(tokens[1].Directive, EndColor, t)
}

func TestLexUnknown(t *testing.T) {
	tokens := Lex("*☃", false)
	assertEqual(tokens, []Token{
		{Kind: UnknownToken, Text: "*", Raw: "*"},
		{Kind: PlainToken, Text: "☃", Raw: "☃"},
	}, t)
}

func TestLexInvalidUTF8(t *testing.T) {
	assertEqual(Lex("ok \xc3**x**", false), []Token{
		{Kind: PlainToken, Text: "ok ", Raw: "ok "},
		{Kind: UnknownToken, Text: "\xc3", Raw: "\xc3"},
		{Kind: MarkdownToken, Span: BoldSpan, Text: "x", Raw: "**x**"},
	}, t)
	assertEqual(Lex("\xff\xfe", true), []Token{
		{Kind: UnknownToken, Text: "\xff", Raw: "\xff"},
		{Kind: UnknownToken, Text: "\xfe", Raw: "\xfe"},
	}, t)
	// span content must be valid
	assertEqual(len(Lex("**\xfe**", false)), 5, t)

	if tokens := Lex("", true); len(tokens) != 0 {
		t.Errorf("empty input should lex to no tokens, got %v", tokens)
	}
}

func TestPlainRun(t *testing.T) {
	testCases := []struct {
		input        string
		markdownOnly bool
		text         string
		n            int
	}{
		{"abc*", false, "abc", 3},
		{"a\\*b\\|c_", false, "a*b|c", 7},
		{"$$5", false, "$5", 3},
		{"a$b", false, "a", 1},
		{"a$b", true, "a$b", 3},
		{"\\$", false, "$", 2},
		{"\\$", true, "\\$", 2},
		{"*", false, "", 0},
		{"x\xff", false, "x", 1},
	}
	for _, tt := range testCases {
		text, n := plainRun(tt.input, tt.markdownOnly)
		if text != tt.text || n != tt.n {
			t.Errorf("plainRun(%q, %v): expected (%q, %d), got (%q, %d)", tt.input, tt.markdownOnly, tt.text, tt.n, text, n)
		}
	}
}

func TestColorValue(t *testing.T) {
	testCases := []struct {
		input string
		color ColorCode
		n     int
	}{
		{"4", Red, 1},
		{"04", Red, 2},
		{"42x", ColorCode(42), 2},
		{"99", LightGreen, 1},
		{"7,", Orange, 1},
		{"redder", Red, 3},
		{"lightgreenish", LightGreen, 10},
		{"Red", 0, 0},
		{"x", 0, 0},
		{"", 0, 0},
	}
	for _, tt := range testCases {
		color, n := colorValue(tt.input)
		if color != tt.color || n != tt.n {
			t.Errorf("colorValue(%q): expected (%v, %d), got (%v, %d)", tt.input, tt.color, tt.n, color, n)
		}
	}
}
