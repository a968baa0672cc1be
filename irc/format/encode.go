// Copyright (c) 2026 chatfmt contributors
// released under the MIT license

package format

import (
	"strings"
)

const (
	// ByteLimit is the size of a single IRC message, used as a capacity hint.
	// The encoder never truncates; segmenting is up to the sender.
	ByteLimit = 512
)

// Encode converts chat markup into IRC wire formatting, e.g.
// "**hi** $c4,1there$c" into "\x02hi\x02 \x034,1there\x03".
// Anything that isn't markup, including invalid UTF-8, is copied as is.
func Encode(text string, markdownOnly bool) string {
	return EncodeTokens(Lex(text, markdownOnly))
}

// EncodeTokens renders a token sequence as IRC wire formatting.
func EncodeTokens(tokens []Token) string {
	var out strings.Builder
	out.Grow(ByteLimit)

	for i, token := range tokens {
		// a color code is ambiguous if a digit follows it
		var following string
		if i+1 < len(tokens) {
			following = tokens[i+1].leadingText()
		}

		switch token.Kind {
		case PlainToken, UnknownToken:
			out.WriteString(token.Text)
		case MarkdownToken:
			encodeSpan(&out, token)
		case DirectiveToken:
			switch token.Directive {
			case StartBold:
				out.WriteByte(Bold.Byte())
			case StartItalic:
				out.WriteByte(Italics.Byte())
			case StartMonospace:
				out.WriteByte(Monospace.Byte())
			case ResetFormatting:
				out.WriteByte(Reset.Byte())
			case StartColor:
				writeColor(&out, token.Foreground, token.Background, token.HasBackground, following)
			case EndColor:
				out.WriteByte(Color.Byte())
			}
		}
	}

	return out.String()
}

func encodeSpan(out *strings.Builder, token Token) {
	switch token.Span {
	case BoldSpan:
		wrap(out, token.Text, Bold)
	case ItalicSpan:
		wrap(out, token.Text, Italics)
	case BoldItalicSpan:
		wrap(out, token.Text, Bold, Italics)
	case CodeSpan:
		wrap(out, token.Text, Monospace)
	case SpoilerSpan:
		// black on black: there is no spoiler primitive on the wire
		writeColor(out, Black, Black, true, token.Text)
		out.WriteString(token.Text)
		out.WriteByte(Color.Byte())
	}
}

// wrap writes the modifiers, the text, then the same modifiers in the same order.
func wrap(out *strings.Builder, text string, modifiers ...Modifier) {
	for _, m := range modifiers {
		out.WriteByte(m.Byte())
	}
	out.WriteString(text)
	for _, m := range modifiers {
		out.WriteByte(m.Byte())
	}
}

func writeColor(out *strings.Builder, fg, bg ColorCode, hasBg bool, following string) {
	pad := len(following) != 0 && isDigit(following[0])
	out.WriteByte(Color.Byte())
	if !hasBg {
		writeDigits(out, fg, pad)
		return
	}
	out.WriteString(fg.Digits())
	out.WriteByte(',')
	writeDigits(out, bg, pad)
}

func writeDigits(out *strings.Builder, color ColorCode, pad bool) {
	if pad {
		out.WriteString(color.PaddedDigits())
	} else {
		out.WriteString(color.Digits())
	}
}

// leadingText is the literal text this token starts with on the wire,
// if it doesn't start with a control byte.
func (t Token) leadingText() string {
	switch t.Kind {
	case PlainToken, UnknownToken:
		return t.Text
	default:
		return ""
	}
}
