package utils

import (
	"bytes"
	"encoding/base64"
	"fmt"
	"image"
	_ "image/jpeg" // JPEG 디코더 등록
	_ "image/png"  // PNG 디코더 등록

	_ "github.com/kolesa-team/go-webp/webp" // WebP 포맷 등록 (init에서 image.RegisterFormat 호출)
	_ "golang.org/x/image/bmp"                 // BMP 디코더 등록
	_ "golang.org/x/image/tiff"                // TIFF 디코더 등록
)

// formatMimeTypes - 디코더가 보고하는 포맷명 → MIME 타입
var formatMimeTypes = map[string]string{
	"jpeg": "image/jpeg",
	"png":  "image/png",
	"webp": "image/webp",
	"bmp":  "image/bmp",
	"tiff": "image/tiff",
}

// SniffImage - 이미지 헤더를 디코드해서 포맷과 픽셀 크기 반환
// 전체 픽셀 디코딩 없이 헤더만 읽는다
func SniffImage(data []byte) (format string, width, height int, err error) {
	cfg, format, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return "", 0, 0, fmt.Errorf("failed to decode image: %w", err)
	}
	return format, cfg.Width, cfg.Height, nil
}

// MimeTypeForFormat - 포맷명에 해당하는 MIME 타입 반환
func MimeTypeForFormat(format string) (string, bool) {
	mime, ok := formatMimeTypes[format]
	return mime, ok
}

// ToDataURL - 이미지 바이너리를 base64 data URL로 변환
func ToDataURL(data []byte, mimeType string) string {
	return "data:" + mimeType + ";base64," + base64.StdEncoding.EncodeToString(data)
}
