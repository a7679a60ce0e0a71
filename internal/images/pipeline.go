package images

import (
	"bytes"
	"errors"
	"fmt"
	"image"
	_ "image/gif"
	"image/jpeg"
	_ "image/png"
	"time"
)

var ErrUnsupportedImage = errors.New("unsupported image type")

const jpegQuality = 90

// Normalized is an image ready for upload.
type Normalized struct {
	Data        []byte
	ContentType string
	Extension   string
}

// Normalize decodes the upload and re-encodes anything that is not already
// a JPEG, mirroring the camera path of the mobile app which always produced
// JPEG. JPEG input passes through untouched.
func Normalize(raw []byte) (*Normalized, error) {
	img, format, err := image.Decode(bytes.NewReader(raw))
	if err != nil {
		return nil, ErrUnsupportedImage
	}

	if format == "jpeg" {
		return &Normalized{Data: raw, ContentType: "image/jpeg", Extension: "jpg"}, nil
	}

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: jpegQuality}); err != nil {
		return nil, fmt.Errorf("re-encode image: %w", err)
	}

	return &Normalized{Data: buf.Bytes(), ContentType: "image/jpeg", Extension: "jpg"}, nil
}

// ObjectName builds the storage object name the existing bucket uses.
func ObjectName(now time.Time, extension string) string {
	return fmt.Sprintf("dish_%d.%s", now.UnixMilli(), extension)
}
