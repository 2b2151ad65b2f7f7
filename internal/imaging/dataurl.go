package imaging

import (
	"bytes"
	"encoding/base64"
	"errors"
	"fmt"
	"image"
	"strings"

	"github.com/disintegration/imaging"
)

// MIME types accepted for canvas export. "image/jpg" is not a registered
// type but pages still pass it to toDataURL, so it is treated as JPEG.
const (
	MimePNG  = "image/png"
	MimeJPEG = "image/jpeg"
)

// ErrNotDataURL is returned when a string is not a base64 data URL.
var ErrNotDataURL = errors.New("not a base64 data URL")

// DataURL is a decoded "data:<mime>;base64,<payload>" string.
type DataURL struct {
	MimeType string
	Data     []byte
}

// String re-encodes the data URL.
func (d DataURL) String() string {
	return "data:" + d.MimeType + ";base64," + base64.StdEncoding.EncodeToString(d.Data)
}

// ParseDataURL splits and decodes a base64 data URL.
func ParseDataURL(s string) (*DataURL, error) {
	rest, ok := strings.CutPrefix(s, "data:")
	if !ok {
		return nil, ErrNotDataURL
	}
	header, payload, ok := strings.Cut(rest, ",")
	if !ok {
		return nil, ErrNotDataURL
	}
	mime, ok := strings.CutSuffix(header, ";base64")
	if !ok {
		return nil, ErrNotDataURL
	}
	if mime == "" {
		mime = "text/plain"
	}

	data, err := base64.StdEncoding.DecodeString(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to decode data URL payload: %w", err)
	}

	return &DataURL{MimeType: mime, Data: data}, nil
}

// NormalizeMime maps a requested export type onto one the encoder supports.
// Unknown types fall back to PNG, which is what browsers do for toDataURL.
func NormalizeMime(mime string) string {
	switch strings.ToLower(mime) {
	case MimeJPEG, "image/jpg":
		return MimeJPEG
	default:
		return MimePNG
	}
}

// EncodeDataURL encodes img as a data URL of the given MIME type.
func EncodeDataURL(img image.Image, mime string) (string, error) {
	mime = NormalizeMime(mime)
	format := imaging.PNG
	var opts []imaging.EncodeOption
	if mime == MimeJPEG {
		format = imaging.JPEG
		// Chrome's default toDataURL quality
		opts = append(opts, imaging.JPEGQuality(92))
	}

	var buf bytes.Buffer
	if err := imaging.Encode(&buf, img, format, opts...); err != nil {
		return "", fmt.Errorf("failed to encode %s: %w", mime, err)
	}

	return DataURL{MimeType: mime, Data: buf.Bytes()}.String(), nil
}

// DecodeDataURL parses a data URL and decodes its payload as an image.
func DecodeDataURL(s string) (image.Image, error) {
	d, err := ParseDataURL(s)
	if err != nil {
		return nil, err
	}
	img, err := imaging.Decode(bytes.NewReader(d.Data))
	if err != nil {
		return nil, fmt.Errorf("failed to decode image: %w", err)
	}
	return img, nil
}
