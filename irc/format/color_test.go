// Copyright (c) 2026 chatfmt contributors
// released under the MIT license

package format

import (
	"testing"

	"github.com/ergochat/irc-go/ircfmt"
)

func TestColorFromCode(t *testing.T) {
	for _, code := range []int{0, 1, 15, 16, 42, 98} {
		color, ok := ColorFromCode(code)
		if !ok || int(color) != code {
			t.Errorf("code %d should be valid, got %v %v", code, color, ok)
		}
	}
	for _, code := range []int{-1, 99, 100, 255} {
		if _, ok := ColorFromCode(code); ok {
			t.Errorf("code %d should be invalid", code)
		}
	}
}

func TestColorNames(t *testing.T) {
	for i := White; i <= LightGrey; i++ {
		color, ok := ColorFromName(i.Name())
		if !ok || color != i {
			t.Errorf("name %q doesn't map back to %d", i.Name(), i)
		}
		// ircfmt's names have spaces in them ("light blue")
		expected := ircfmt.Unescape("$c[" + ircfmtName(i.Name()) + "]")
		if got := "\x03" + i.Digits(); got != expected {
			t.Errorf("%s: digits %q disagree with ircfmt %q", i.Name(), got, expected)
		}
	}
	if _, ok := ColorFromName("gray"); ok {
		t.Errorf("gray isn't a palette name")
	}
	assertEqual(ColorCode(50).Name(), "", t)
	assertEqual(ColorCode(50).IsNamed(), false, t)
	assertEqual(Pink.IsNamed(), true, t)
}

func ircfmtName(name string) string {
	if len(name) > 5 && name[:5] == "light" {
		return "light " + name[5:]
	}
	return name
}

func TestColorDigits(t *testing.T) {
	assertEqual(Black.Digits(), "1", t)
	assertEqual(Black.PaddedDigits(), "01", t)
	assertEqual(LightBlue.Digits(), "12", t)
	assertEqual(LightBlue.PaddedDigits(), "12", t)
	assertEqual(ColorCode(98).PaddedDigits(), "98", t)
	assertEqual(Red.String(), "red", t)
	assertEqual(ColorCode(77).String(), "77", t)
}

func TestModifierBytes(t *testing.T) {
	// cross-check against ircfmt's own decoder
	chunks := ircfmt.Split(Bold.String() + Italics.String() + Monospace.String() + "x" + Reset.String() + "y")
	if len(chunks) != 2 {
		t.Fatalf("unexpected chunks %#v", chunks)
	}
	if !(chunks[0].Bold && chunks[0].Italic && chunks[0].Monospace) {
		t.Errorf("modifiers not recognized: %#v", chunks[0])
	}
	assertEqual(chunks[1].IsFormatted(), false, t)

	chunks = ircfmt.Split(Underline.String() + Strikethrough.String() + ReverseColor.String() + "z")
	if !(chunks[0].Underline && chunks[0].Strikethrough && chunks[0].ReverseColor) {
		t.Errorf("modifiers not recognized: %#v", chunks[0])
	}

	assertEqual(ircfmt.Unescape("$b$i$m$r$c"), "\x02\x1d\x11\x0f\x03", t)
	assertEqual(Color.Byte(), byte(0x03), t)
}
