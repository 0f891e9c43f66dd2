package qr

import (
	"github.com/skip2/go-qrcode"
)

const DefaultSize = 256

// PNG encodes content at high error-correction so printed codes survive wear.
func PNG(content string, size int) ([]byte, error) {
	if size <= 0 {
		size = DefaultSize
	}
	return qrcode.Encode(content, qrcode.High, size)
}
