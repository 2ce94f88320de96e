package themes

import (
	"fmt"
	"unicode/utf8"

	"golang.org/x/text/encoding"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// decodeArt normalises a sidecar art file to UTF-8.
//
// A UTF-8 or UTF-16 byte order mark selects that encoding and is stripped.
// Without a BOM, valid UTF-8 is kept as is and anything else is read as
// Windows-1252, which is what older art files saved on Windows use for
// characters such as ° and ¤.
func decodeArt(data []byte) (string, error) {
	var fallback transform.Transformer = encoding.Nop.NewDecoder()
	if !utf8.Valid(data) {
		fallback = charmap.Windows1252.NewDecoder()
	}

	out, _, err := transform.Bytes(unicode.BOMOverride(fallback), data)
	if err != nil {
		return "", fmt.Errorf("failed to decode art: %w", err)
	}
	return string(out), nil
}
