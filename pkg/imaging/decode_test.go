package imaging

import (
	"errors"
	"strings"
	"testing"
)

const tinyPNG = "iVBORw0KGgoAAAANSUhEUgAAAAEAAAABCAYAAAAfFcSJAAAADUlEQVR42mNkYPhfDwAChwGA60e6kgAAAABJRU5ErkJggg=="

func TestDecodeBarePayload(t *testing.T) {
	img, err := Decode(tinyPNG)
	if err != nil {
		t.Fatalf("Decode error: %v", err)
	}
	if img.Format != "png" || img.Width != 1 || img.Height != 1 {
		t.Errorf("decoded %s %dx%d, want png 1x1", img.Format, img.Width, img.Height)
	}
	if !strings.HasPrefix(img.DataURL, "data:image/png;base64,") {
		t.Error("DataURL must carry the normalized prefix")
	}
}

func TestDecodeDataURL(t *testing.T) {
	img, err := Decode("data:image/png;base64," + tinyPNG)
	if err != nil {
		t.Fatalf("Decode error: %v", err)
	}
	if img.Format != "png" {
		t.Errorf("format = %q, want png", img.Format)
	}
}

func TestDecodeRejectsGarbage(t *testing.T) {
	cases := []string{
		"",
		"data:image/png;base64,",
		"not base64 at all!!",
		"aGVsbG8gd29ybGQ=", // valid base64, not an image
	}
	for _, payload := range cases {
		if _, err := Decode(payload); !errors.Is(err, ErrInvalidImage) {
			t.Errorf("Decode(%q) err = %v, want ErrInvalidImage", payload, err)
		}
	}
}
