package hosted

import (
	"github.com/gdamore/tcell/v2"
	"golang.org/x/text/encoding/charmap"

	"github.com/dshills/ktty/internal/input/key"
	"github.com/dshills/ktty/internal/vga"
)

// palette maps VGA color numbers to the terminal's 16 ANSI colors.
var palette = [16]tcell.Color{
	vga.ColorBlack:      tcell.ColorBlack,
	vga.ColorBlue:       tcell.ColorNavy,
	vga.ColorGreen:      tcell.ColorGreen,
	vga.ColorCyan:       tcell.ColorTeal,
	vga.ColorRed:        tcell.ColorMaroon,
	vga.ColorMagenta:    tcell.ColorPurple,
	vga.ColorBrown:      tcell.ColorOlive,
	vga.ColorLightGray:  tcell.ColorSilver,
	vga.ColorDarkGray:   tcell.ColorGray,
	vga.ColorLightBlue:  tcell.ColorBlue,
	vga.ColorLightGreen: tcell.ColorLime,
	vga.ColorLightCyan:  tcell.ColorAqua,
	vga.ColorLightRed:   tcell.ColorRed,
	vga.ColorPink:       tcell.ColorFuchsia,
	vga.ColorYellow:     tcell.ColorYellow,
	vga.ColorWhite:      tcell.ColorWhite,
}

// convertStyle converts a VGA attribute byte to a tcell style.
func convertStyle(s vga.Style) tcell.Style {
	style := tcell.StyleDefault.
		Foreground(palette[s.Foreground()]).
		Background(palette[s.Background()])
	if s.Blink() {
		style = style.Blink(true)
	}
	return style
}

// glyphRune converts a code page 437 glyph to the rune the terminal draws.
// Control codes have no printable form and show as blanks.
func glyphRune(b byte) rune {
	r := charmap.CodePage437.DecodeByte(b)
	if r < 0x20 || r == 0x7F {
		return ' '
	}
	return r
}

// runeGlyph converts a typed rune to its code page 437 byte.
func runeGlyph(r rune) (byte, bool) {
	return charmap.CodePage437.EncodeRune(r)
}

// convertKey converts a terminal key press to a console key event.
// Returns false for keys the console keyboard does not have.
func convertKey(e *tcell.EventKey) (key.Event, bool) {
	mods := convertMod(e.Modifiers())

	switch e.Key() {
	case tcell.KeyRune:
		b, ok := runeGlyph(e.Rune())
		if !ok {
			return key.Event{}, false
		}
		return key.NewCharEvent(b, mods.Without(key.ModShift)), true
	case tcell.KeyEnter:
		return key.NewSpecialEvent(key.KeyEnter, mods), true
	case tcell.KeyBackspace, tcell.KeyBackspace2:
		return key.NewSpecialEvent(key.KeyBackspace, mods), true
	case tcell.KeyDelete:
		return key.NewSpecialEvent(key.KeyDelete, mods), true
	case tcell.KeyHome:
		return key.NewSpecialEvent(key.KeyHome, mods), true
	case tcell.KeyEnd:
		return key.NewSpecialEvent(key.KeyEnd, mods), true
	case tcell.KeyUp:
		return key.NewSpecialEvent(key.KeyUp, mods), true
	case tcell.KeyDown:
		return key.NewSpecialEvent(key.KeyDown, mods), true
	case tcell.KeyLeft:
		if mods.Has(key.ModCtrl) {
			return key.NewSpecialEvent(key.KeySwitchScreenLeft, mods), true
		}
		return key.NewSpecialEvent(key.KeyLeft, mods), true
	case tcell.KeyRight:
		if mods.Has(key.ModCtrl) {
			return key.NewSpecialEvent(key.KeySwitchScreenRight, mods), true
		}
		return key.NewSpecialEvent(key.KeyRight, mods), true
	default:
		return key.Event{}, false
	}
}

func convertMod(m tcell.ModMask) key.Modifier {
	var result key.Modifier
	if m&tcell.ModShift != 0 {
		result = result.With(key.ModShift)
	}
	if m&tcell.ModCtrl != 0 {
		result = result.With(key.ModCtrl)
	}
	if m&tcell.ModAlt != 0 {
		result = result.With(key.ModAlt)
	}
	return result
}
