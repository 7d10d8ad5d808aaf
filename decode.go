package wastesort

import (
	"bytes"
	"fmt"
	"image"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	_ "golang.org/x/image/webp"
)

// DecodeImage decodes raw image bytes into a pixel grid plus the format tag
// reported by the decoder. The registered decoders (gif, jpeg, png, webp)
// are the supported container formats; anything else is a decode error. The
// classification core never parses the container itself.
func DecodeImage(data []byte) (image.Image, string, error) {
	img, format, err := image.Decode(bytes.NewReader(data))
	if err != nil {
		return nil, "", fmt.Errorf("decode image: %w", err)
	}
	return img, format, nil
}
