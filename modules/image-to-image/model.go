package imagetoimage

// 생성 파라미터 enum 값
const (
	Size1K = "1K"
	Size2K = "2K"
	Size4K = "4K"

	ResponseFormatURL = "url"
	ResponseFormatB64 = "b64_json"
)

// 기본값 (size=2K, response_format=url, watermark=true)
const (
	DefaultSize           = Size2K
	DefaultResponseFormat = ResponseFormatURL
	DefaultWatermark      = true
)

// 이미지 제약
const (
	MinDimension = 32
	MaxDimension = 4096
	MinPromptLen = 1
	MaxPromptLen = 1000
)

// GenerationRequest - 검증 완료된 생성 요청 (요청당 1개 생성 후 폐기)
type GenerationRequest struct {
	ImageData      []byte
	ImageFormat    string // sniff된 포맷명 (jpeg, png, ...)
	Prompt         string
	Size           string
	ResponseFormat string
	Watermark      bool
}

// ImageToImageResponse - HTTP API 응답 구조체
// image_url과 image_data는 response_format에 따라 한쪽만 채워진다
type ImageToImageResponse struct {
	Success        bool    `json:"success"`
	Message        string  `json:"message"`
	ImageURL       string  `json:"image_url,omitempty"`
	ImageData      string  `json:"image_data,omitempty"`
	PromptUsed     string  `json:"prompt_used"`
	Size           string  `json:"size,omitempty"`
	ModelUsed      string  `json:"model_used"`
	GenerationTime float64 `json:"generation_time,omitempty"`
}

// ArkRequest - BytePlus Ark images/generations 요청 구조체
type ArkRequest struct {
	Model                     string `json:"model"`
	Prompt                    string `json:"prompt"`
	Image                     string `json:"image"` // base64 data URL
	SequentialImageGeneration string `json:"sequential_image_generation"`
	Size                      string `json:"size"`
	ResponseFormat            string `json:"response_format"`
	Watermark                 bool   `json:"watermark"`
	Stream                    bool   `json:"stream"`
}

// ArkImage - Ark 응답의 생성 이미지 1건
type ArkImage struct {
	URL     string `json:"url,omitempty"`
	B64JSON string `json:"b64_json,omitempty"`
	Size    string `json:"size,omitempty"`
}

// ArkResponse - Ark 응답 구조체
type ArkResponse struct {
	Model   string     `json:"model"`
	Created int64      `json:"created"`
	Data    []ArkImage `json:"data"`
	Error   *ArkError  `json:"error,omitempty"`
}

// ArkError - Ark 에러 페이로드
type ArkError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// HealthResponse - /health 응답
type HealthResponse struct {
	Status               string `json:"status"` // healthy | degraded
	CredentialConfigured bool   `json:"credential_configured"`
	Service              string `json:"service"`
	Model                string `json:"model"`
}

// 지원 포맷 (validator와 /info가 공유)
var SupportedFormats = []string{"JPEG", "PNG", "WebP", "BMP", "TIFF"}

// 지원 사이즈 옵션
var SizeOptions = []string{Size1K, Size2K, Size4K}
