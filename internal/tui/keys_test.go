package tui

import (
	"testing"

	"github.com/gdamore/tcell/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseKeyBinding(t *testing.T) {
	tests := []struct {
		in   string
		want KeyBinding
	}{
		{"alt+\\", KeyBinding{Key: tcell.KeyRune, Rune: '\\', Mod: tcell.ModAlt}},
		{"ctrl+k", KeyBinding{Key: tcell.KeyCtrlK, Mod: tcell.ModCtrl}},
		{"Ctrl+K", KeyBinding{Key: tcell.KeyCtrlK, Mod: tcell.ModCtrl}},
		{"alt+space", KeyBinding{Key: tcell.KeyRune, Rune: ' ', Mod: tcell.ModAlt}},
		{"f5", KeyBinding{Key: tcell.KeyF5}},
		{"shift+tab", KeyBinding{Key: tcell.KeyTab, Mod: tcell.ModShift}},
		{"x", KeyBinding{Key: tcell.KeyRune, Rune: 'x'}},
		{"alt++", KeyBinding{Key: tcell.KeyRune, Rune: '+', Mod: tcell.ModAlt}},
		{"+", KeyBinding{Key: tcell.KeyRune, Rune: '+'}},
		{"  alt+x  ", KeyBinding{Key: tcell.KeyRune, Rune: 'x', Mod: tcell.ModAlt}},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseKeyBinding(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestParseKeyBinding_Errors(t *testing.T) {
	for _, in := range []string{"", "   ", "hyper+x", "alt+xy", "ctrl+"} {
		_, err := ParseKeyBinding(in)
		assert.ErrorIs(t, err, ErrInvalidKeyBinding, in)
	}
}

func TestMustParseKeyBinding_Panics(t *testing.T) {
	assert.Panics(t, func() { MustParseKeyBinding("nope+x") })
}

func TestKeyBindingMatches(t *testing.T) {
	altBackslash := MustParseKeyBinding("alt+\\")
	assert.True(t, altBackslash.Matches(tcell.NewEventKey(tcell.KeyRune, '\\', tcell.ModAlt)))
	assert.False(t, altBackslash.Matches(tcell.NewEventKey(tcell.KeyRune, '\\', tcell.ModNone)))
	assert.False(t, altBackslash.Matches(tcell.NewEventKey(tcell.KeyRune, '/', tcell.ModAlt)))
	assert.False(t, altBackslash.Matches(nil))

	ctrlK := MustParseKeyBinding("ctrl+k")
	assert.True(t, ctrlK.Matches(tcell.NewEventKey(tcell.KeyCtrlK, 0, tcell.ModCtrl)))
	assert.True(t, ctrlK.Matches(tcell.NewEventKey(tcell.KeyCtrlK, 0, tcell.ModNone)))
	assert.False(t, ctrlK.Matches(tcell.NewEventKey(tcell.KeyCtrlL, 0, tcell.ModCtrl)))

	f5 := MustParseKeyBinding("f5")
	assert.True(t, f5.Matches(tcell.NewEventKey(tcell.KeyF5, 0, tcell.ModNone)))
	assert.False(t, f5.Matches(tcell.NewEventKey(tcell.KeyF5, 0, tcell.ModShift)))
}

func TestKeyBindingString(t *testing.T) {
	for _, in := range []string{"alt+\\", "ctrl+k", "alt+space", "f5", "x", "ctrl+alt+d"} {
		b := MustParseKeyBinding(in)
		assert.Equal(t, in, b.String())

		again, err := ParseKeyBinding(b.String())
		require.NoError(t, err)
		assert.Equal(t, b, again)
	}
}
