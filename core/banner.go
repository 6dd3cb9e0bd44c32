package core

// DefaultBannerText is shown at power-up
const DefaultBannerText = "BUILDSERVER"

// Glyphs loaded into slots 0-2 at power-up
var (
	GlyphBackslash = [8]byte{0x00, 0x10, 0x08, 0x04, 0x02, 0x01, 0x00, 0x00}
	GlyphSmiley    = [8]byte{0x00, 0x0A, 0x0A, 0x0A, 0x00, 0x11, 0x0E, 0x00}
	GlyphSad       = [8]byte{0x00, 0x0A, 0x0A, 0x0A, 0x00, 0x0E, 0x11, 0x00}
)

// ShowBanner loads the default glyphs and prints the startup line:
// a space, two backslash glyphs and the text.
func ShowBanner(display DisplayDriver, text string) {
	display.DefineGlyph(0, GlyphBackslash)
	display.DefineGlyph(1, GlyphSmiley)
	display.DefineGlyph(2, GlyphSad)

	display.PrintGlyph(' ')
	display.PrintGlyph(0)
	display.PrintGlyph(0)
	display.Print([]byte(text))
}
