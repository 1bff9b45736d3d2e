package imagetoimage

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"ark-image-server/modules/common/config"
)

func testConfig(baseURL string) *config.Config {
	return &config.Config{
		ArkAPIKey:         "test-key",
		ArkBaseURL:        baseURL,
		ArkModel:          config.DefaultArkModel,
		ArkTimeoutSeconds: 5,
		MaxFileSizeMB:     10,
	}
}

func testGenerationRequest(t *testing.T) *GenerationRequest {
	t.Helper()
	return &GenerationRequest{
		ImageData:      makeTestImage(t, "jpeg", 64, 64),
		ImageFormat:    "jpeg",
		Prompt:         "Make this a watercolor painting",
		Size:           Size2K,
		ResponseFormat: ResponseFormatURL,
		Watermark:      true,
	}
}

func TestGenerateSuccessURL(t *testing.T) {
	var gotReq ArkRequest
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if auth := r.Header.Get("Authorization"); auth != "Bearer test-key" {
			t.Errorf("Authorization = %q, want bearer credential", auth)
		}
		if ct := r.Header.Get("Content-Type"); ct != "application/json" {
			t.Errorf("Content-Type = %q", ct)
		}
		if err := json.NewDecoder(r.Body).Decode(&gotReq); err != nil {
			t.Fatalf("failed to decode upstream request: %v", err)
		}
		json.NewEncoder(w).Encode(ArkResponse{
			Model:   config.DefaultArkModel,
			Created: time.Now().Unix(),
			Data:    []ArkImage{{URL: "https://example.com/generated.png", Size: "2048x2048"}},
		})
	}))
	defer server.Close()

	service := NewService(testConfig(server.URL))
	result, genErr := service.Generate(context.Background(), testGenerationRequest(t))
	if genErr != nil {
		t.Fatalf("Generate failed: %v", genErr)
	}

	if !result.Success {
		t.Error("success = false, want true")
	}
	if result.ImageURL != "https://example.com/generated.png" {
		t.Errorf("image_url = %q", result.ImageURL)
	}
	if result.ImageData != "" {
		t.Errorf("image_data = %q, want empty with url response format", result.ImageData)
	}
	if result.ModelUsed != "seedream-4-0-250828" {
		t.Errorf("model_used = %q", result.ModelUsed)
	}
	if result.Size != Size2K {
		t.Errorf("size = %q, want %q", result.Size, Size2K)
	}
	if result.PromptUsed != "Make this a watercolor painting" {
		t.Errorf("prompt_used = %q", result.PromptUsed)
	}

	// 업스트림 페이로드 검증
	if gotReq.Model != config.DefaultArkModel {
		t.Errorf("upstream model = %q", gotReq.Model)
	}
	if gotReq.SequentialImageGeneration != "disabled" {
		t.Errorf("sequential_image_generation = %q", gotReq.SequentialImageGeneration)
	}
	if gotReq.Stream {
		t.Error("stream = true, want false")
	}
	if !gotReq.Watermark {
		t.Error("watermark = false, want true")
	}
	if !strings.HasPrefix(gotReq.Image, "data:image/jpeg;base64,") {
		t.Errorf("image field is not a jpeg data URL: %.40q", gotReq.Image)
	}
}

func TestGenerateSuccessB64(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(ArkResponse{
			Data: []ArkImage{{B64JSON: "aGVsbG8="}},
		})
	}))
	defer server.Close()

	req := testGenerationRequest(t)
	req.ResponseFormat = ResponseFormatB64

	service := NewService(testConfig(server.URL))
	result, genErr := service.Generate(context.Background(), req)
	if genErr != nil {
		t.Fatalf("Generate failed: %v", genErr)
	}

	if result.ImageData != "aGVsbG8=" {
		t.Errorf("image_data = %q", result.ImageData)
	}
	if result.ImageURL != "" {
		t.Errorf("image_url = %q, want empty with b64_json response format", result.ImageURL)
	}
}

func TestGenerateUpstreamStatusClassification(t *testing.T) {
	tests := []struct {
		name       string
		status     int
		wantKind   ErrorKind
		wantStatus int
	}{
		{"auth 401", http.StatusUnauthorized, ErrUpstreamAuth, 401},
		{"auth 403", http.StatusForbidden, ErrUpstreamAuth, 401},
		{"rate limit", http.StatusTooManyRequests, ErrUpstreamRateLimit, 429},
		{"bad request", http.StatusBadRequest, ErrUpstreamRequest, 502},
		{"server error", http.StatusInternalServerError, ErrUpstreamServer, 502},
		{"bad gateway", http.StatusBadGateway, ErrUpstreamServer, 502},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				json.NewEncoder(w).Encode(ArkResponse{
					Error: &ArkError{Code: "TestError", Message: "upstream rejected the request"},
				})
			}))
			defer server.Close()

			service := NewService(testConfig(server.URL))
			result, genErr := service.Generate(context.Background(), testGenerationRequest(t))
			if genErr == nil {
				t.Fatal("expected classified error")
			}
			if genErr.Kind != tt.wantKind {
				t.Errorf("kind = %q, want %q", genErr.Kind, tt.wantKind)
			}
			if genErr.HTTPStatus() != tt.wantStatus {
				t.Errorf("status = %d, want %d", genErr.HTTPStatus(), tt.wantStatus)
			}
			if result.Success {
				t.Error("success = true on failure")
			}
			if !strings.Contains(result.Message, "upstream rejected the request") {
				t.Errorf("message %q does not carry the upstream detail", result.Message)
			}
		})
	}
}

func TestGenerateTimeout(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-r.Context().Done():
		case <-time.After(3 * time.Second):
		}
	}))
	defer server.Close()

	cfg := testConfig(server.URL)
	cfg.ArkTimeoutSeconds = 1

	service := NewService(cfg)
	result, genErr := service.Generate(context.Background(), testGenerationRequest(t))
	if genErr == nil {
		t.Fatal("expected timeout error")
	}
	if genErr.Kind != ErrNetworkTimeout {
		t.Errorf("kind = %q, want %q", genErr.Kind, ErrNetworkTimeout)
	}
	if genErr.HTTPStatus() != 504 {
		t.Errorf("status = %d, want 504", genErr.HTTPStatus())
	}
	if !strings.Contains(strings.ToLower(result.Message), "timeout") {
		t.Errorf("message %q does not reference timeout", result.Message)
	}
	if result.GenerationTime < 1 {
		t.Errorf("generation_time = %.3f, want at least the timeout bound", result.GenerationTime)
	}
}

func TestGenerateConnectionError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close() // 즉시 닫아서 connection refused 유도

	service := NewService(testConfig(server.URL))
	_, genErr := service.Generate(context.Background(), testGenerationRequest(t))
	if genErr == nil {
		t.Fatal("expected connection error")
	}
	if genErr.Kind != ErrNetworkConnection {
		t.Errorf("kind = %q, want %q", genErr.Kind, ErrNetworkConnection)
	}
	if genErr.HTTPStatus() != 502 {
		t.Errorf("status = %d, want 502", genErr.HTTPStatus())
	}
}

func TestGenerateMissingCredential(t *testing.T) {
	var calls int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
	}))
	defer server.Close()

	cfg := testConfig(server.URL)
	cfg.ArkAPIKey = ""

	service := NewService(cfg)
	result, genErr := service.Generate(context.Background(), testGenerationRequest(t))
	if genErr == nil {
		t.Fatal("expected configuration error")
	}
	if genErr.Kind != ErrConfiguration {
		t.Errorf("kind = %q, want %q", genErr.Kind, ErrConfiguration)
	}
	if genErr.HTTPStatus() != 503 {
		t.Errorf("status = %d, want 503", genErr.HTTPStatus())
	}
	if result.Success {
		t.Error("success = true on configuration failure")
	}
	if got := atomic.LoadInt32(&calls); got != 0 {
		t.Errorf("upstream calls = %d, want 0", got)
	}
}

func TestGenerateNoImageReturned(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		json.NewEncoder(w).Encode(ArkResponse{Data: []ArkImage{}})
	}))
	defer server.Close()

	service := NewService(testConfig(server.URL))
	_, genErr := service.Generate(context.Background(), testGenerationRequest(t))
	if genErr == nil {
		t.Fatal("expected error for empty upstream data")
	}
	if genErr.Kind != ErrUpstreamServer {
		t.Errorf("kind = %q, want %q", genErr.Kind, ErrUpstreamServer)
	}
}
