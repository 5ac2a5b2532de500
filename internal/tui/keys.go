package tui

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/gdamore/tcell/v2"
)

// KeyBinding matches one tcell key event.
type KeyBinding struct {
	Key  tcell.Key
	Rune rune
	Mod  tcell.ModMask
}

var namedKeys = map[string]tcell.Key{
	"enter":     tcell.KeyEnter,
	"tab":       tcell.KeyTab,
	"esc":       tcell.KeyEscape,
	"escape":    tcell.KeyEscape,
	"backspace": tcell.KeyBackspace2,
	"delete":    tcell.KeyDelete,
	"home":      tcell.KeyHome,
	"end":       tcell.KeyEnd,
	"up":        tcell.KeyUp,
	"down":      tcell.KeyDown,
	"left":      tcell.KeyLeft,
	"right":     tcell.KeyRight,
	"f1":        tcell.KeyF1,
	"f2":        tcell.KeyF2,
	"f3":        tcell.KeyF3,
	"f4":        tcell.KeyF4,
	"f5":        tcell.KeyF5,
	"f6":        tcell.KeyF6,
	"f7":        tcell.KeyF7,
	"f8":        tcell.KeyF8,
	"f9":        tcell.KeyF9,
	"f10":       tcell.KeyF10,
	"f11":       tcell.KeyF11,
	"f12":       tcell.KeyF12,
}

// ParseKeyBinding parses bindings such as "alt+\", "ctrl+k" or "f5".
// Modifiers are alt, ctrl, shift and meta, joined to the key with "+".
func ParseKeyBinding(s string) (KeyBinding, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return KeyBinding{}, fmt.Errorf("%w: empty", ErrInvalidKeyBinding)
	}

	var parts []string
	switch {
	case s == "+":
		parts = []string{"+"}
	case strings.HasSuffix(s, "++"):
		parts = append(strings.Split(s[:len(s)-2], "+"), "+")
	default:
		parts = strings.Split(s, "+")
	}

	var mod tcell.ModMask
	for _, m := range parts[:len(parts)-1] {
		switch strings.ToLower(m) {
		case "alt":
			mod |= tcell.ModAlt
		case "ctrl":
			mod |= tcell.ModCtrl
		case "shift":
			mod |= tcell.ModShift
		case "meta":
			mod |= tcell.ModMeta
		default:
			return KeyBinding{}, fmt.Errorf("%w: unknown modifier %q in %q", ErrInvalidKeyBinding, m, s)
		}
	}

	key := parts[len(parts)-1]
	if k, ok := namedKeys[strings.ToLower(key)]; ok {
		return KeyBinding{Key: k, Mod: mod}, nil
	}
	if key == "space" {
		key = " "
	}
	if utf8.RuneCountInString(key) != 1 {
		return KeyBinding{}, fmt.Errorf("%w: unknown key %q in %q", ErrInvalidKeyBinding, key, s)
	}

	r, _ := utf8.DecodeRuneInString(key)
	if mod&tcell.ModCtrl != 0 {
		lower := r | 0x20
		if lower >= 'a' && lower <= 'z' {
			return KeyBinding{Key: tcell.KeyCtrlA + tcell.Key(lower-'a'), Mod: mod}, nil
		}
	}
	return KeyBinding{Key: tcell.KeyRune, Rune: r, Mod: mod}, nil
}

// MustParseKeyBinding is ParseKeyBinding that panics on error.
func MustParseKeyBinding(s string) KeyBinding {
	b, err := ParseKeyBinding(s)
	if err != nil {
		panic(err)
	}
	return b
}

// Matches reports whether ev is this binding.
func (b KeyBinding) Matches(ev *tcell.EventKey) bool {
	if ev == nil || ev.Key() != b.Key {
		return false
	}
	if b.Key == tcell.KeyRune {
		return ev.Rune() == b.Rune && ev.Modifiers() == b.Mod
	}
	if b.isCtrlLetter() {
		// Terminals differ on whether ctrl letters carry ModCtrl.
		return ev.Modifiers()|tcell.ModCtrl == b.Mod|tcell.ModCtrl
	}
	return ev.Modifiers() == b.Mod
}

// String returns the binding in ParseKeyBinding form.
func (b KeyBinding) String() string {
	var parts []string
	if b.Mod&tcell.ModCtrl != 0 {
		parts = append(parts, "ctrl")
	}
	if b.Mod&tcell.ModAlt != 0 {
		parts = append(parts, "alt")
	}
	if b.Mod&tcell.ModShift != 0 {
		parts = append(parts, "shift")
	}
	if b.Mod&tcell.ModMeta != 0 {
		parts = append(parts, "meta")
	}

	switch {
	case b.Key == tcell.KeyRune && b.Rune == ' ':
		parts = append(parts, "space")
	case b.Key == tcell.KeyRune:
		parts = append(parts, string(b.Rune))
	case b.isCtrlLetter():
		parts = append(parts, string(rune('a'+(b.Key-tcell.KeyCtrlA))))
	default:
		name := "?"
		for n, k := range namedKeys {
			if k == b.Key && (name == "?" || n < name) {
				name = n
			}
		}
		parts = append(parts, name)
	}
	return strings.Join(parts, "+")
}

func (b KeyBinding) isCtrlLetter() bool {
	return b.Mod&tcell.ModCtrl != 0 && b.Key >= tcell.KeyCtrlA && b.Key <= tcell.KeyCtrlZ
}
