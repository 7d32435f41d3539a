package imaging

import (
	"bytes"
	"encoding/base64"
	"errors"
	"fmt"
	"image"
	"strings"

	_ "image/jpeg"
	_ "image/png"

	_ "golang.org/x/image/webp"
)

// ErrInvalidImage marks an unparseable image payload. This is the one input
// failure that surfaces to the caller as a request-level error instead of a
// "no match" outcome.
var ErrInvalidImage = errors.New("invalid image payload")

// Image is the decoded handle passed through to the CLIP service. The pixels
// are never touched locally; only the config is sniffed to validate the input.
type Image struct {
	Format  string // "jpeg", "png", "webp"
	Width   int
	Height  int
	DataURL string // normalized data URL for the CLIP payload
}

// Decode accepts a base64 image, with or without a "data:image/...;base64,"
// prefix, validates it decodes as jpeg/png/webp and returns the handle.
func Decode(payload string) (*Image, error) {
	raw := payload
	if idx := strings.IndexByte(raw, ','); idx >= 0 && strings.HasPrefix(raw, "data:") {
		raw = raw[idx+1:]
	}
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return nil, ErrInvalidImage
	}

	decoded, err := base64.StdEncoding.DecodeString(raw)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidImage, err)
	}

	cfg, format, err := image.DecodeConfig(bytes.NewReader(decoded))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidImage, err)
	}

	return &Image{
		Format:  format,
		Width:   cfg.Width,
		Height:  cfg.Height,
		DataURL: "data:image/" + format + ";base64," + raw,
	}, nil
}
