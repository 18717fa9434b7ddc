package action

import (
	"fmt"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/gdamore/tcell/v2"
)

// KeyStroke is a normalized key combination. Letters are stored lower case
// with ModShift carrying the case; Ctrl+letter is stored as the letter rune
// with ModCtrl, whatever control code the terminal sent.
type KeyStroke struct {
	Key  tcell.Key
	Rune rune
	Mod  tcell.ModMask
}

// namedKeys maps lower-case key names to tcell keys.
var namedKeys = func() map[string]tcell.Key {
	m := make(map[string]tcell.Key, len(tcell.KeyNames)+8)
	for k, name := range tcell.KeyNames {
		if strings.HasPrefix(name, "Ctrl-") {
			continue
		}
		m[strings.ToLower(name)] = k
	}
	m["escape"] = tcell.KeyEsc
	m["return"] = tcell.KeyEnter
	m["del"] = tcell.KeyDelete
	m["pageup"] = tcell.KeyPgUp
	m["pagedown"] = tcell.KeyPgDn
	m["arrowleft"] = tcell.KeyLeft
	m["arrowright"] = tcell.KeyRight
	m["arrowup"] = tcell.KeyUp
	m["arrowdown"] = tcell.KeyDown
	return m
}()

var runeAliases = map[string]rune{
	"space": ' ',
	"plus":  '+',
	"minus": '-',
	"comma": ',',
}

// ParseKey parses a spec like "ctrl+shift+w", "alt+Left", "?" or "shift+R".
func ParseKey(spec string) (KeyStroke, error) {
	spec = strings.TrimSpace(spec)
	if spec == "" {
		return KeyStroke{}, fmt.Errorf("%w: empty key spec", ErrInvalidAction)
	}

	parts := strings.Split(spec, "+")
	if spec == "+" || strings.HasSuffix(spec, "++") {
		// "ctrl++" binds the plus key itself.
		parts = append(parts[:len(parts)-2], "+")
	}

	var mod tcell.ModMask
	for _, p := range parts[:len(parts)-1] {
		switch strings.ToLower(strings.TrimSpace(p)) {
		case "":
			continue
		case "ctrl", "control", "ctrlormeta", "cmd":
			mod |= tcell.ModCtrl
		case "shift":
			mod |= tcell.ModShift
		case "alt", "option":
			mod |= tcell.ModAlt
		case "meta":
			mod |= tcell.ModMeta
		default:
			return KeyStroke{}, fmt.Errorf("%w: unknown modifier %q in %q", ErrInvalidAction, p, spec)
		}
	}

	name := strings.TrimSpace(parts[len(parts)-1])
	if name == "" {
		return KeyStroke{}, fmt.Errorf("%w: missing key in %q", ErrInvalidAction, spec)
	}
	if r, ok := runeAliases[strings.ToLower(name)]; ok {
		return normalize(tcell.KeyRune, r, mod), nil
	}
	if utf8.RuneCountInString(name) == 1 {
		r, _ := utf8.DecodeRuneInString(name)
		return normalize(tcell.KeyRune, r, mod), nil
	}
	if k, ok := namedKeys[strings.ToLower(name)]; ok {
		return normalize(k, 0, mod), nil
	}
	return KeyStroke{}, fmt.Errorf("%w: unknown key %q in %q", ErrInvalidAction, name, spec)
}

// MustParseKey is ParseKey for static specs; it panics on error.
func MustParseKey(spec string) KeyStroke {
	ks, err := ParseKey(spec)
	if err != nil {
		panic(err)
	}
	return ks
}

// FromEvent normalizes a terminal key event.
func FromEvent(ev *tcell.EventKey) KeyStroke {
	return normalize(ev.Key(), ev.Rune(), ev.Modifiers())
}

// Matches reports whether ev is this key stroke.
func (ks KeyStroke) Matches(ev *tcell.EventKey) bool {
	if ev == nil {
		return false
	}
	return FromEvent(ev) == ks
}

// String returns a display form such as "Ctrl+Shift+W".
func (ks KeyStroke) String() string {
	var parts []string
	if ks.Mod&tcell.ModCtrl != 0 {
		parts = append(parts, "Ctrl")
	}
	if ks.Mod&tcell.ModAlt != 0 {
		parts = append(parts, "Alt")
	}
	if ks.Mod&tcell.ModMeta != 0 {
		parts = append(parts, "Meta")
	}
	if ks.Mod&tcell.ModShift != 0 {
		parts = append(parts, "Shift")
	}
	switch {
	case ks.Key == tcell.KeyRune && ks.Rune == ' ':
		parts = append(parts, "Space")
	case ks.Key == tcell.KeyRune:
		parts = append(parts, strings.ToUpper(string(ks.Rune)))
	default:
		name, ok := tcell.KeyNames[ks.Key]
		if !ok {
			name = fmt.Sprintf("Key[%d]", ks.Key)
		}
		parts = append(parts, name)
	}
	return strings.Join(parts, "+")
}

func normalize(key tcell.Key, r rune, mod tcell.ModMask) KeyStroke {
	// Control codes overlap Backspace/Tab/Enter; those only count as letters
	// when the terminal reported Ctrl.
	if key >= tcell.KeyCtrlA && key <= tcell.KeyCtrlZ {
		plain := key == tcell.KeyBackspace || key == tcell.KeyTab || key == tcell.KeyEnter
		if !plain || mod&tcell.ModCtrl != 0 {
			return KeyStroke{Key: tcell.KeyRune, Rune: 'a' + rune(key-tcell.KeyCtrlA), Mod: mod | tcell.ModCtrl}
		}
		return KeyStroke{Key: key, Mod: mod}
	}
	if key != tcell.KeyRune {
		return KeyStroke{Key: key, Mod: mod}
	}
	switch {
	case unicode.IsUpper(r):
		r = unicode.ToLower(r)
		mod |= tcell.ModShift
	case !unicode.IsLetter(r):
		// Shift is implied by the character itself ("?" vs "/").
		mod &^= tcell.ModShift
	}
	return KeyStroke{Key: tcell.KeyRune, Rune: r, Mod: mod}
}
