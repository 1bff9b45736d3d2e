package utils

import (
	"bytes"
	"image"
	"image/png"
	"strings"
	"testing"
)

func encodePNG(t *testing.T, width, height int) []byte {
	t.Helper()
	var buf bytes.Buffer
	if err := png.Encode(&buf, image.NewRGBA(image.Rect(0, 0, width, height))); err != nil {
		t.Fatalf("failed to encode test png: %v", err)
	}
	return buf.Bytes()
}

func TestSniffImage(t *testing.T) {
	data := encodePNG(t, 48, 96)

	format, width, height, err := SniffImage(data)
	if err != nil {
		t.Fatalf("SniffImage failed: %v", err)
	}
	if format != "png" {
		t.Errorf("format = %q, want png", format)
	}
	if width != 48 || height != 96 {
		t.Errorf("dimensions = %dx%d, want 48x96", width, height)
	}
}

func TestSniffImageInvalid(t *testing.T) {
	if _, _, _, err := SniffImage([]byte("not an image")); err == nil {
		t.Fatal("expected error for non-image data")
	}
}

func TestMimeTypeForFormat(t *testing.T) {
	tests := []struct {
		format string
		want   string
		ok     bool
	}{
		{"jpeg", "image/jpeg", true},
		{"png", "image/png", true},
		{"webp", "image/webp", true},
		{"bmp", "image/bmp", true},
		{"tiff", "image/tiff", true},
		{"gif", "", false},
	}

	for _, tt := range tests {
		got, ok := MimeTypeForFormat(tt.format)
		if ok != tt.ok || got != tt.want {
			t.Errorf("MimeTypeForFormat(%q) = %q, %v; want %q, %v", tt.format, got, ok, tt.want, tt.ok)
		}
	}
}

func TestToDataURL(t *testing.T) {
	got := ToDataURL([]byte("hello"), "image/png")

	if !strings.HasPrefix(got, "data:image/png;base64,") {
		t.Errorf("missing data URL prefix: %q", got)
	}
	if !strings.HasSuffix(got, "aGVsbG8=") {
		t.Errorf("unexpected payload encoding: %q", got)
	}
}
