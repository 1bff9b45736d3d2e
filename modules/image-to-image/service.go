package imagetoimage

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net"
	"net/http"
	"time"

	"ark-image-server/modules/common/config"
	"ark-image-server/modules/common/utils"
)

type Service struct {
	cfg        *config.Config
	httpClient *http.Client
}

func NewService(cfg *config.Config) *Service {
	return &Service{
		cfg: cfg,
		httpClient: &http.Client{
			Timeout: time.Duration(cfg.ArkTimeoutSeconds) * time.Second,
		},
	}
}

// Generate - 검증된 요청을 Ark API로 전달하고 결과를 매핑
// 실패해도 항상 구조화된 응답을 반환한다. 재시도 없음 - 호출당 1회 시도
func (s *Service) Generate(ctx context.Context, req *GenerationRequest) (*ImageToImageResponse, *GenerationError) {
	start := time.Now()

	// 자격증명 확인 (네트워크 호출 전)
	if !s.cfg.CredentialConfigured() {
		genErr := newError(ErrConfiguration, "ARK_API_KEY not configured")
		return s.failure(req, genErr, start), genErr
	}

	arkReq, genErr := s.buildArkRequest(req)
	if genErr != nil {
		return s.failure(req, genErr, start), genErr
	}

	jsonBody, err := json.Marshal(arkReq)
	if err != nil {
		genErr := wrapError(ErrConfiguration, err, "Failed to marshal upstream request")
		return s.failure(req, genErr, start), genErr
	}

	log.Printf("🎨 [ImageToImage] Generating image - size: %s, format: %s, prompt: %s",
		req.Size, req.ResponseFormat, truncateString(req.Prompt, 50))

	callCtx, cancel := context.WithTimeout(ctx, time.Duration(s.cfg.ArkTimeoutSeconds)*time.Second)
	defer cancel()

	httpReq, err := http.NewRequestWithContext(callCtx, http.MethodPost, s.cfg.ArkBaseURL, bytes.NewReader(jsonBody))
	if err != nil {
		genErr := wrapError(ErrConfiguration, err, "Failed to create upstream request")
		return s.failure(req, genErr, start), genErr
	}

	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Authorization", "Bearer "+s.cfg.ArkAPIKey)

	resp, err := s.httpClient.Do(httpReq)
	if err != nil {
		genErr := classifyTransportError(err)
		log.Printf("❌ [ImageToImage] Ark API call failed: %v", err)
		return s.failure(req, genErr, start), genErr
	}
	defer resp.Body.Close()

	bodyBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		genErr := wrapError(ErrNetworkConnection, err, "Failed to read upstream response")
		return s.failure(req, genErr, start), genErr
	}

	if resp.StatusCode != http.StatusOK {
		genErr := classifyUpstreamStatus(resp.StatusCode, bodyBytes)
		log.Printf("❌ [ImageToImage] Ark API error: status=%d, body=%s",
			resp.StatusCode, truncateString(string(bodyBytes), 200))
		return s.failure(req, genErr, start), genErr
	}

	var arkResp ArkResponse
	if err := json.Unmarshal(bodyBytes, &arkResp); err != nil {
		genErr := wrapError(ErrUpstreamServer, err, "Failed to parse upstream response")
		return s.failure(req, genErr, start), genErr
	}

	if arkResp.Error != nil {
		genErr := newError(ErrUpstreamServer, "Upstream error: %s", arkResp.Error.Message)
		return s.failure(req, genErr, start), genErr
	}

	if len(arkResp.Data) == 0 {
		genErr := newError(ErrUpstreamServer, "No image generated by upstream service")
		return s.failure(req, genErr, start), genErr
	}

	// response_format에 따라 URL 또는 base64 한쪽만 채움
	first := arkResp.Data[0]
	result := &ImageToImageResponse{
		Success:        true,
		Message:        "Image generated successfully",
		PromptUsed:     req.Prompt,
		Size:           req.Size,
		ModelUsed:      s.cfg.ArkModel,
		GenerationTime: elapsedSeconds(start),
	}

	switch req.ResponseFormat {
	case ResponseFormatB64:
		if first.B64JSON == "" {
			genErr := newError(ErrUpstreamServer, "Upstream returned no base64 image data")
			return s.failure(req, genErr, start), genErr
		}
		result.ImageData = first.B64JSON
	default:
		if first.URL == "" {
			genErr := newError(ErrUpstreamServer, "Upstream returned no image URL")
			return s.failure(req, genErr, start), genErr
		}
		result.ImageURL = first.URL
	}

	log.Printf("✅ [ImageToImage] Image generated successfully in %.2fs", result.GenerationTime)
	return result, nil
}

// buildArkRequest - 검증 완료된 요청에서 Ark 페이로드 구성
func (s *Service) buildArkRequest(req *GenerationRequest) (*ArkRequest, *GenerationError) {
	mimeType, ok := utils.MimeTypeForFormat(req.ImageFormat)
	if !ok {
		// validator를 통과한 요청이면 도달할 수 없다
		return nil, newError(ErrConfiguration, "Unknown image format: %s", req.ImageFormat)
	}

	return &ArkRequest{
		Model:                     s.cfg.ArkModel,
		Prompt:                    req.Prompt,
		Image:                     utils.ToDataURL(req.ImageData, mimeType),
		SequentialImageGeneration: "disabled",
		Size:                      req.Size,
		ResponseFormat:            req.ResponseFormat,
		Watermark:                 req.Watermark,
		Stream:                    false,
	}, nil
}

// failure - 실패를 응답 구조체로 매핑 (핸들러 밖으로 throw하지 않음)
func (s *Service) failure(req *GenerationRequest, genErr *GenerationError, start time.Time) *ImageToImageResponse {
	return &ImageToImageResponse{
		Success:        false,
		Message:        genErr.Message,
		PromptUsed:     req.Prompt,
		Size:           req.Size,
		ModelUsed:      s.cfg.ArkModel,
		GenerationTime: elapsedSeconds(start),
	}
}

// classifyTransportError - 전송 계층 에러 분류 (timeout vs connection)
func classifyTransportError(err error) *GenerationError {
	if errors.Is(err, context.DeadlineExceeded) {
		return wrapError(ErrNetworkTimeout, err, "Request timeout - image generation took too long")
	}
	var netErr net.Error
	if errors.As(err, &netErr) && netErr.Timeout() {
		return wrapError(ErrNetworkTimeout, err, "Request timeout - image generation took too long")
	}
	return wrapError(ErrNetworkConnection, err, "Network error - failed to reach generation service")
}

// classifyUpstreamStatus - 업스트림 HTTP 상태 분류
func classifyUpstreamStatus(status int, body []byte) *GenerationError {
	message := fmt.Sprintf("API request failed with status %d", status)

	var arkResp ArkResponse
	if err := json.Unmarshal(body, &arkResp); err == nil && arkResp.Error != nil && arkResp.Error.Message != "" {
		message += ": " + arkResp.Error.Message
	} else if len(body) > 0 {
		message += ": " + truncateString(string(body), 200)
	}

	switch {
	case status == http.StatusUnauthorized || status == http.StatusForbidden:
		return newError(ErrUpstreamAuth, "%s", message)
	case status == http.StatusTooManyRequests:
		return newError(ErrUpstreamRateLimit, "%s", message)
	case status >= 400 && status < 500:
		return newError(ErrUpstreamRequest, "%s", message)
	default:
		return newError(ErrUpstreamServer, "%s", message)
	}
}

// elapsedSeconds - 경과 시간 (초)
func elapsedSeconds(start time.Time) float64 {
	return time.Since(start).Seconds()
}

func truncateString(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen] + "..."
}
