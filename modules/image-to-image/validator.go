package imagetoimage

import (
	"strings"
	"unicode/utf8"

	"ark-image-server/modules/common/utils"
)

// allowedFormats - image.DecodeConfig가 보고하는 포맷명 기준
var allowedFormats = map[string]bool{
	"jpeg": true,
	"png":  true,
	"webp": true,
	"bmp":  true,
	"tiff": true,
}

// ValidateImage - 업로드 이미지 검증 (크기 → 디코딩 → 포맷 → 픽셀 치수 순)
// 네트워크 호출 전에만 실행되고 부수효과가 없다
func ValidateImage(data []byte, maxSizeMB int) (format string, genErr *GenerationError) {
	if len(data) == 0 {
		return "", newError(ErrInputValidation, "Empty image file")
	}

	// 파일 크기 검증
	sizeMB := float64(len(data)) / (1024 * 1024)
	if sizeMB > float64(maxSizeMB) {
		return "", newError(ErrInputValidation,
			"Image size (%.2fMB) exceeds maximum allowed size (%dMB)", sizeMB, maxSizeMB)
	}

	// 디코딩 가능 여부 (헤더만 읽음)
	format, width, height, err := utils.SniffImage(data)
	if err != nil {
		return "", wrapError(ErrInputValidation, err, "Invalid image file")
	}

	// 허용 포맷 검증
	if !allowedFormats[format] {
		return "", newError(ErrInputValidation,
			"Unsupported image format: %s (supported: %s)",
			format, strings.Join(SupportedFormats, ", "))
	}

	// 픽셀 치수 검증
	if width < MinDimension || height < MinDimension {
		return "", newError(ErrInputValidation,
			"Image is too small (minimum %dx%d pixels, got %dx%d)",
			MinDimension, MinDimension, width, height)
	}
	if width > MaxDimension || height > MaxDimension {
		return "", newError(ErrInputValidation,
			"Image is too large (maximum %dx%d pixels, got %dx%d)",
			MaxDimension, MaxDimension, width, height)
	}

	return format, nil
}

// ValidatePrompt - 프롬프트 검증 (trim 후 1~1000자, 바이트가 아닌 문자 수 기준)
func ValidatePrompt(prompt string) (string, *GenerationError) {
	prompt = strings.TrimSpace(prompt)
	length := utf8.RuneCountInString(prompt)
	if length < MinPromptLen {
		return "", newError(ErrInputValidation, "Prompt is required (1-%d characters)", MaxPromptLen)
	}
	if length > MaxPromptLen {
		return "", newError(ErrInputValidation,
			"Prompt too long (%d characters, max %d)", length, MaxPromptLen)
	}
	return prompt, nil
}

// ValidateSize - size enum 검증 (빈 값은 기본값)
func ValidateSize(size string) (string, *GenerationError) {
	if size == "" {
		return DefaultSize, nil
	}
	for _, option := range SizeOptions {
		if size == option {
			return size, nil
		}
	}
	return "", newError(ErrInputValidation,
		"Invalid size: %s (supported: %s)", size, strings.Join(SizeOptions, ", "))
}

// ValidateResponseFormat - response_format enum 검증 (빈 값은 기본값)
func ValidateResponseFormat(responseFormat string) (string, *GenerationError) {
	switch responseFormat {
	case "":
		return DefaultResponseFormat, nil
	case ResponseFormatURL, ResponseFormatB64:
		return responseFormat, nil
	}
	return "", newError(ErrInputValidation,
		"Invalid response_format: %s (supported: %s, %s)",
		responseFormat, ResponseFormatURL, ResponseFormatB64)
}
