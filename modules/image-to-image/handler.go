package imagetoimage

import (
	"encoding/json"
	"io"
	"log"
	"net/http"
	"strconv"
	"strings"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"ark-image-server/modules/common/activity"
	"ark-image-server/modules/common/config"
)

type Handler struct {
	cfg      *config.Config
	service  *Service
	recorder *activity.Recorder
}

func NewHandler(cfg *config.Config, recorder *activity.Recorder) *Handler {
	return &Handler{
		cfg:      cfg,
		service:  NewService(cfg),
		recorder: recorder,
	}
}

// RegisterRoutes - 라우터에 Image-to-Image 엔드포인트 등록
func (h *Handler) RegisterRoutes(r *mux.Router) {
	r.HandleFunc("/api/v1/image-to-image", h.HandleGenerate).Methods("POST", "OPTIONS")
	r.HandleFunc("/api/v1/image-to-image/health", h.HandleHealth).Methods("GET")
	r.HandleFunc("/api/v1/image-to-image/info", h.HandleInfo).Methods("GET")
	log.Println("✅ Image-to-Image routes registered: /api/v1/image-to-image")
}

// HandleGenerate - POST /api/v1/image-to-image
// multipart 필드: image(필수), prompt(필수), size, response_format, watermark
func (h *Handler) HandleGenerate(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	requestID := uuid.New().String()

	// 전송 계층 상한 - 실제 파일 크기 검증은 validator가 담당
	r.Body = http.MaxBytesReader(w, r.Body, h.cfg.MaxFileSizeBytes()*3)

	req, genErr := h.parseGenerationRequest(r)
	if genErr != nil {
		log.Printf("❌ [ImageToImage] Request %s rejected: %s", requestID, genErr.Message)
		h.record(r, requestID, activity.OutcomeRejected, "", 0)
		h.writeFailure(w, genErr, req)
		return
	}

	log.Printf("🎨 [ImageToImage] Request %s: prompt=%s, size=%s, format=%s, image=%dB",
		requestID, truncateString(req.Prompt, 30), req.Size, req.ResponseFormat, len(req.ImageData))

	result, genErr := h.service.Generate(r.Context(), req)
	if genErr != nil {
		outcome := activity.OutcomeUpstreamFailed
		if !genErr.IsUpstream() {
			outcome = activity.OutcomeRejected
		}
		log.Printf("⚠️  [ImageToImage] Request %s failed: %v", requestID, genErr)
		h.record(r, requestID, outcome, req.Size, result.GenerationTime)
		w.WriteHeader(genErr.HTTPStatus())
		json.NewEncoder(w).Encode(result)
		return
	}

	h.record(r, requestID, activity.OutcomeSucceeded, req.Size, result.GenerationTime)
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(result)
}

// parseGenerationRequest - multipart 파싱 + 입력 검증
func (h *Handler) parseGenerationRequest(r *http.Request) (*GenerationRequest, *GenerationError) {
	if err := r.ParseMultipartForm(h.cfg.MaxFileSizeBytes()); err != nil {
		return nil, wrapError(ErrInputValidation, err, "Invalid multipart form data")
	}

	file, header, err := r.FormFile("image")
	if err != nil {
		return nil, wrapError(ErrInputValidation, err, "Image file is required")
	}
	defer file.Close()

	// 선언된 content type 확인 (실제 포맷 판별은 바이트 sniff가 기준)
	contentType := header.Header.Get("Content-Type")
	if contentType != "" && !strings.HasPrefix(contentType, "image/") &&
		contentType != "application/octet-stream" {
		return nil, newError(ErrInputValidation,
			"Invalid file type: %s. Please upload an image file (JPEG, PNG, etc.)", contentType)
	}

	imageData, err := io.ReadAll(file)
	if err != nil {
		return nil, wrapError(ErrInputValidation, err, "Error reading uploaded image file")
	}

	prompt, genErr := ValidatePrompt(r.FormValue("prompt"))
	if genErr != nil {
		return nil, genErr
	}

	size, genErr := ValidateSize(r.FormValue("size"))
	if genErr != nil {
		return nil, genErr
	}

	responseFormat, genErr := ValidateResponseFormat(r.FormValue("response_format"))
	if genErr != nil {
		return nil, genErr
	}

	watermark := DefaultWatermark
	if raw := r.FormValue("watermark"); raw != "" {
		parsed, err := strconv.ParseBool(raw)
		if err != nil {
			return nil, newError(ErrInputValidation, "Invalid watermark value: %s (expected true/false)", raw)
		}
		watermark = parsed
	}

	// 이미지 검증 (크기/포맷/치수) - 네트워크 호출 전
	format, genErr := ValidateImage(imageData, h.cfg.MaxFileSizeMB)
	if genErr != nil {
		return nil, genErr
	}

	return &GenerationRequest{
		ImageData:      imageData,
		ImageFormat:    format,
		Prompt:         prompt,
		Size:           size,
		ResponseFormat: responseFormat,
		Watermark:      watermark,
	}, nil
}

// writeFailure - 검증 단계 실패 응답 (업스트림 호출 전에 끝난 경우)
func (h *Handler) writeFailure(w http.ResponseWriter, genErr *GenerationError, req *GenerationRequest) {
	prompt := ""
	size := ""
	if req != nil {
		prompt = req.Prompt
		size = req.Size
	}
	w.WriteHeader(genErr.HTTPStatus())
	json.NewEncoder(w).Encode(ImageToImageResponse{
		Success:    false,
		Message:    genErr.Message,
		PromptUsed: prompt,
		Size:       size,
		ModelUsed:  h.cfg.ArkModel,
	})
}

func (h *Handler) record(r *http.Request, requestID, outcome, size string, elapsedSec float64) {
	h.recorder.Record(r.Context(), activity.Entry{
		RequestID: requestID,
		Outcome:   outcome,
		Size:      size,
		ElapsedMS: int64(elapsedSec * 1000),
	})
}

// HandleHealth - GET /api/v1/image-to-image/health
// 자격증명 미설정이면 degraded - 설정이 바뀌지 않는 한 응답은 항상 동일
func (h *Handler) HandleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	status := "healthy"
	if !h.cfg.CredentialConfigured() {
		status = "degraded"
	}

	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(HealthResponse{
		Status:               status,
		CredentialConfigured: h.cfg.CredentialConfigured(),
		Service:              "image-to-image",
		Model:                h.cfg.ArkModel,
	})
}

// HandleInfo - GET /api/v1/image-to-image/info
// 정적 capability 메타데이터 - 외부 호출 없음
func (h *Handler) HandleInfo(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(map[string]interface{}{
		"service":                 "image-to-image",
		"description":             "Generate new images based on input images and text prompts using BytePlus Ark AI",
		"model":                   h.cfg.ArkModel,
		"supported_formats":       SupportedFormats,
		"size_options":            SizeOptions,
		"max_file_size":           strconv.Itoa(h.cfg.MaxFileSizeMB) + "MB",
		"default_size":            DefaultSize,
		"default_response_format": DefaultResponseFormat,
		"default_watermark":       DefaultWatermark,
		"limits": map[string]string{
			"prompt_length":    "1-1000 characters",
			"image_dimensions": "32x32 to 4096x4096 pixels",
		},
	})
}
