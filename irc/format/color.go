// Copyright (c) 2026 chatfmt contributors
// released under the MIT license

package format

import (
	"strconv"
)

// Modifier is a formatting toggle with a fixed control byte on the wire.
// Values match the ircfmt package in github.com/ergochat/irc-go; see
// https://modern.ircdocs.horse/formatting.html
type Modifier byte

const (
	Bold      Modifier = 0x02
	Italics   Modifier = 0x1d
	Monospace Modifier = 0x11
	Color     Modifier = 0x03
	Reset     Modifier = 0x0f

	// never emitted by the transcoder; these are needed to re-render
	// formatting state decoded from arbitrary wire text
	Underline     Modifier = 0x1f
	Strikethrough Modifier = 0x1e
	ReverseColor  Modifier = 0x16
)

// Byte returns the control byte for the modifier.
func (m Modifier) Byte() byte {
	return byte(m)
}

// String returns the control byte as a one-byte string.
func (m Modifier) String() string {
	return string([]byte{byte(m)})
}

// ColorCode is a slot in the IRC color palette. 0-15 are the named colors,
// 16-98 the extended colors.
type ColorCode uint8

const (
	White ColorCode = iota
	Black
	Blue
	Green
	Red
	Brown
	Magenta
	Orange
	Yellow
	LightGreen
	Cyan
	LightCyan
	LightBlue
	Pink
	Grey
	LightGrey

	// MaxColorCode is the highest valid code; 99 means "default" on the wire
	// and is not a color.
	MaxColorCode ColorCode = 98
)

var colorNames = [...]string{
	White:      "white",
	Black:      "black",
	Blue:       "blue",
	Green:      "green",
	Red:        "red",
	Brown:      "brown",
	Magenta:    "magenta",
	Orange:     "orange",
	Yellow:     "yellow",
	LightGreen: "lightgreen",
	Cyan:       "cyan",
	LightCyan:  "lightcyan",
	LightBlue:  "lightblue",
	Pink:       "pink",
	Grey:       "grey",
	LightGrey:  "lightgrey",
}

// ColorFromCode returns the color for a numeric code, if it's in the palette.
func ColorFromCode(code int) (color ColorCode, ok bool) {
	if 0 <= code && code <= int(MaxColorCode) {
		return ColorCode(code), true
	}
	return 0, false
}

// ColorFromName resolves a palette name like "lightblue".
func ColorFromName(name string) (color ColorCode, ok bool) {
	for i, n := range colorNames {
		if n == name {
			return ColorCode(i), true
		}
	}
	return 0, false
}

// Name returns the palette name, or "" for the extended colors.
func (c ColorCode) Name() string {
	if int(c) < len(colorNames) {
		return colorNames[c]
	}
	return ""
}

// IsNamed reports whether the color is one of the 16 named colors.
func (c ColorCode) IsNamed() bool {
	return int(c) < len(colorNames)
}

// Digits is the canonical (unpadded) decimal form used on the wire.
func (c ColorCode) Digits() string {
	return strconv.Itoa(int(c))
}

// PaddedDigits is the two-digit form, required when a digit follows the code.
func (c ColorCode) PaddedDigits() string {
	if c < 10 {
		return "0" + c.Digits()
	}
	return c.Digits()
}

func (c ColorCode) String() string {
	if name := c.Name(); name != "" {
		return name
	}
	return c.Digits()
}
