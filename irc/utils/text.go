// Copyright (c) 2017 Daniel Oaks <daniel@danieloaks.net>
// Copyright (c) 2026 chatfmt contributors
// released under the MIT license

package utils

import (
	"strings"
	"unicode/utf8"

	"github.com/ergochat/irc-go/ircfmt"

	"github.com/ergochat/chatfmt/irc/format"
)

const (
	// MinSegmentBytes is the smallest segment size SplitFormatted will use;
	// it leaves room for a full formatting prefix plus a 4-byte character.
	MinSegmentBytes = 32
)

// SplitMessage represents a message that's been split for sending.
type SplitMessage struct {
	Message string
	Wrapped []string // if this is nil, `Message` didn't need wrapping
}

// Lines returns the lines to send.
func (sm SplitMessage) Lines() []string {
	if sm.Wrapped == nil {
		return []string{sm.Message}
	}
	return sm.Wrapped
}

// SplitFormatted splits IRC-formatted text into segments of at most maxBytes
// bytes. Text that fits is left alone; otherwise each segment starts by
// re-establishing the formatting in effect at that point, so that every
// segment renders the same way when received on its own.
func SplitFormatted(encoded string, maxBytes int) (result SplitMessage) {
	result.Message = encoded
	if maxBytes < MinSegmentBytes {
		maxBytes = MinSegmentBytes
	}
	if len(encoded) <= maxBytes {
		return
	}

	sb := segmentBuilder{maxBytes: maxBytes}
	for _, chunk := range ircfmt.Split(encoded) {
		sb.Add(chunk)
	}
	result.Wrapped = sb.Lines()
	return
}

// segmentBuilder accumulates formatted chunks into lines of bounded length.
type segmentBuilder struct {
	maxBytes int
	buf      strings.Builder
	// formatting in effect at the end of buf
	state  ircfmt.FormattedSubstring
	result []string
}

// Add appends a formatted chunk, starting new lines as necessary.
func (sb *segmentBuilder) Add(chunk ircfmt.FormattedSubstring) {
	content := chunk.Content
	chunk.Content = ""
	for len(content) != 0 {
		prefix := formatTransition(sb.state, chunk, content)
		n := sb.fit(content, sb.maxBytes-sb.buf.Len()-len(prefix))
		if n == 0 {
			sb.flush()
			continue
		}
		sb.buf.WriteString(prefix)
		sb.buf.WriteString(content[:n])
		sb.state = chunk
		content = content[n:]
		if len(content) != 0 {
			sb.flush()
		}
	}
}

// fit returns how many bytes of content to place in the current line,
// given avail bytes of room. 0 means the current line should be flushed first.
func (sb *segmentBuilder) fit(content string, avail int) int {
	if len(content) <= avail {
		return len(content)
	}
	if avail <= 0 {
		return 0
	}
	cut := avail
	for 0 < cut && !utf8.RuneStart(content[cut]) {
		cut--
	}
	if cut == 0 {
		if sb.buf.Len() != 0 {
			return 0
		}
		// not UTF-8; any cut is as good as another
		cut = avail
	}
	// natural word boundary
	if space := strings.LastIndexByte(content[:cut], ' '); space != -1 {
		return space + 1
	}
	// this word would take up more than half a line... just split in the middle of it
	if sb.buf.Len() < sb.maxBytes/2 {
		return cut
	}
	return 0
}

func (sb *segmentBuilder) flush() {
	if sb.buf.Len() != 0 {
		sb.result = append(sb.result, sb.buf.String())
		sb.buf.Reset()
	}
	sb.state = ircfmt.FormattedSubstring{}
}

// Lines terminates the line-building and returns all the lines.
func (sb *segmentBuilder) Lines() (result []string) {
	sb.flush()
	result = sb.result
	sb.result = nil
	return
}

// formatTransition returns the control bytes that change the formatting
// from `from` to `to` (both with empty Content), ahead of the text `following`.
func formatTransition(from, to ircfmt.FormattedSubstring, following string) string {
	if from == to {
		return ""
	}
	var buf strings.Builder
	if from.IsFormatted() {
		buf.WriteByte(format.Reset.Byte())
	}
	writeFormatting(&buf, to, following)
	return buf.String()
}

func writeFormatting(buf *strings.Builder, f ircfmt.FormattedSubstring, following string) {
	toggles := []struct {
		on       bool
		modifier format.Modifier
	}{
		{f.Bold, format.Bold},
		{f.Italic, format.Italics},
		{f.Monospace, format.Monospace},
		{f.Underline, format.Underline},
		{f.Strikethrough, format.Strikethrough},
		{f.ReverseColor, format.ReverseColor},
	}
	for _, toggle := range toggles {
		if toggle.on {
			buf.WriteByte(toggle.modifier.Byte())
		}
	}
	if f.ForegroundColor.IsSet || f.BackgroundColor.IsSet {
		// always two digits, since the segment content may start with one
		buf.WriteByte(format.Color.Byte())
		buf.WriteString(colorDigits(f.ForegroundColor))
		// "\x0304,5" would be read as a background color
		if f.BackgroundColor.IsSet || startsWithBackground(following) {
			buf.WriteByte(',')
			buf.WriteString(colorDigits(f.BackgroundColor))
		}
	}
}

func startsWithBackground(text string) bool {
	return 2 <= len(text) && text[0] == ',' && '0' <= text[1] && text[1] <= '9'
}

func colorDigits(code ircfmt.ColorCode) string {
	if color, ok := format.ColorFromCode(int(code.Value)); code.IsSet && ok {
		return color.PaddedDigits()
	}
	// "99 - Default Foreground/Background"
	return "99"
}
