package llm

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"image"
	"image/jpeg"
	"os"

	// Decoders for the accepted upload formats.
	_ "image/png"
)

// EncodeImageDataURL re-encodes img as JPEG at the given quality and wraps
// the bytes in a base64 data URL, the form the inference endpoint expects.
func EncodeImageDataURL(img image.Image, quality int) (string, error) {
	if quality <= 0 || quality > 100 {
		quality = 95
	}
	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: quality}); err != nil {
		return "", fmt.Errorf("encode jpeg: %w", err)
	}
	return "data:image/jpeg;base64," + base64.StdEncoding.EncodeToString(buf.Bytes()), nil
}

// DecodeImageFile opens and decodes a PNG or JPEG file.
func DecodeImageFile(path string) (image.Image, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("decode image %q: %w", path, err)
	}
	return img, nil
}
