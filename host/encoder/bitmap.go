package encoder

import (
	"strconv"
	"strings"

	"lcdlink/protocol"
)

// ParseBitmap reads up to eight whitespace separated hex bytes, e.g.
// "1F 0A 00". Missing rows stay zero and tokens past the eighth are
// ignored. A token may carry a 0x prefix; values wider than a byte keep
// their low 8 bits. Tokens that are not hex become zero and are returned
// in malformed.
func ParseBitmap(text string) (bitmap [protocol.GlyphRows]byte, malformed []string) {
	tokens := strings.Fields(text)
	if len(tokens) > protocol.GlyphRows {
		tokens = tokens[:protocol.GlyphRows]
	}

	for i, tok := range tokens {
		digits := strings.TrimPrefix(strings.TrimPrefix(tok, "0x"), "0X")
		v, err := strconv.ParseUint(digits, 16, 64)
		if err != nil {
			malformed = append(malformed, tok)
			continue
		}
		bitmap[i] = uint8(v)
	}
	return bitmap, malformed
}
