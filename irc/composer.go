// Copyright (c) 2026 chatfmt contributors
// released under the MIT license

package irc

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/ergochat/irc-go/ircmsg"

	"github.com/ergochat/chatfmt/irc/format"
	"github.com/ergochat/chatfmt/irc/logger"
	"github.com/ergochat/chatfmt/irc/utils"
)

const (
	PrivmsgCommand = "PRIVMSG"
	NoticeCommand  = "NOTICE"
)

// Composer turns user-authored text into formatted IRC lines.
// It is safe for concurrent use.
type Composer struct {
	config *Config
	logger *logger.Manager
}

// NewComposer returns a Composer using a loaded (validated) config.
func NewComposer(config *Config, logman *logger.Manager) *Composer {
	return &Composer{
		config: config,
		logger: logman,
	}
}

func (c *Composer) markdownOnly(requested bool) bool {
	return requested || c.config.Formatting.MarkdownOnly
}

func (c *Composer) normalize(text string) string {
	// invalid UTF-8 is sent as is, so leave it alone here too
	if c.config.Formatting.normalizer == nil || !utf8.ValidString(text) {
		return text
	}
	return c.config.Formatting.normalizer(text)
}

// Tokens lexes text the same way Encode does, for inspection.
func (c *Composer) Tokens(text string, markdownOnly bool) (tokens []format.Token) {
	return format.Lex(c.normalize(text), c.markdownOnly(markdownOnly))
}

// Encode transcodes chat markup into IRC formatting.
func (c *Composer) Encode(text string, markdownOnly bool) string {
	text = c.normalize(text)
	if !utf8.ValidString(text) {
		c.logger.Debug("encode", "input is not UTF-8, invalid bytes are sent as is", fmt.Sprintf("%q", text))
	}
	tokens := format.Lex(text, c.markdownOnly(markdownOnly))
	c.logger.Debug("encode", fmt.Sprintf("lexed %d tokens from %d bytes", len(tokens), len(text)))
	return format.EncodeTokens(tokens)
}

// Compose encodes text and frames it as one or more PRIVMSG or NOTICE
// lines (without the trailing CRLF). Each input line is encoded on its own,
// and encoded lines too long for the wire are split.
func (c *Composer) Compose(command, target, text string, markdownOnly bool) (result []string, err error) {
	command = strings.ToUpper(command)
	if command != PrivmsgCommand && command != NoticeCommand {
		return nil, ErrUnknownCommand
	}
	if !isValidTarget(target) {
		return nil, ErrInvalidTarget
	}

	lineLen := c.config.Wire.MaxLineBytes - c.config.Wire.SourceReserve
	// "PRIVMSG #chan :" ... "\r\n"
	budget := lineLen - (len(command) + 1 + len(target) + 2 + 2)
	if budget < utils.MinSegmentBytes {
		return nil, ErrTargetTooLong
	}

	for _, line := range strings.Split(text, "\n") {
		line = strings.TrimSuffix(line, "\r")
		if line == "" {
			continue
		}
		split := utils.SplitFormatted(c.Encode(line, markdownOnly), budget)
		segments := split.Lines()
		if 1 < len(segments) {
			c.logger.Debug("split", fmt.Sprintf("split %d bytes for %s into %d lines", len(split.Message), target, len(segments)))
		}
		for _, segment := range segments {
			msg := ircmsg.MakeMessage(nil, "", command, target, segment)
			msg.ForceTrailing()
			lineBytes, err := msg.LineBytesStrict(true, lineLen)
			if err != nil {
				return nil, fmt.Errorf("could not frame message to %s: %w", target, err)
			}
			result = append(result, strings.TrimSuffix(string(lineBytes), "\r\n"))
		}
	}

	if len(result) == 0 {
		return nil, ErrEmptyMessage
	}
	return result, nil
}

// isValidTarget checks that a target can be sent as a non-trailing parameter.
func isValidTarget(target string) bool {
	return target != "" && target[0] != ':' && !strings.ContainsAny(target, " \r\n\x00")
}
