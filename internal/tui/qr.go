package tui

import (
	"fmt"
	"strings"

	"github.com/skip2/go-qrcode"
)

// QRCode renders text as a QR code in half-block characters, two modules
// per line. Light modules are drawn so the code scans on dark terminals.
func QRCode(text string) (string, error) {
	qr, err := qrcode.New(text, qrcode.Low)
	if err != nil {
		return "", fmt.Errorf("generating qr code: %w", err)
	}
	matrix := qr.Bitmap()

	light := func(y, x int) bool {
		return y < len(matrix) && !matrix[y][x]
	}

	var b strings.Builder
	for y := 0; y < len(matrix); y += 2 {
		for x := range matrix[y] {
			top, bottom := light(y, x), light(y+1, x)
			switch {
			case top && bottom:
				b.WriteRune('█')
			case top:
				b.WriteRune('▀')
			case bottom:
				b.WriteRune('▄')
			default:
				b.WriteRune(' ')
			}
		}
		b.WriteByte('\n')
	}
	return strings.TrimRight(b.String(), "\n"), nil
}
