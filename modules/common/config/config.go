package config

import (
	"fmt"
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config 구조체 - 모든 환경변수를 담음 (로드 후 변경 없음)
type Config struct {
	// BytePlus Ark API
	ArkAPIKey         string
	ArkBaseURL        string
	ArkModel          string
	ArkTimeoutSeconds int

	// 업로드 제한
	MaxFileSizeMB int

	// Gemini API (스토리 생성용, optional)
	GeminiAPIKey string
	GeminiModel  string

	// Redis (activity 기록용, optional)
	RedisHost     string
	RedisPort     string
	RedisUsername string
	RedisPassword string
	RedisUseTLS   bool

	// Server
	Port string
}

// 기본값 상수
const (
	DefaultArkBaseURL = "https://ark.ap-southeast.bytepluses.com/api/v3/images/generations"
	DefaultArkModel   = "seedream-4-0-250828"
)

// LoadConfig - 환경변수 로드
func LoadConfig() (*Config, error) {
	// .env 파일 로드 (있으면)
	if err := godotenv.Load(); err != nil {
		log.Println("⚠️  .env file not found, using environment variables")
	}

	// Redis UseTLS 파싱
	useTLS := true // 기본값
	if tlsStr := os.Getenv("REDIS_USE_TLS"); tlsStr != "" {
		if parsed, err := strconv.ParseBool(tlsStr); err == nil {
			useTLS = parsed
		}
	}

	timeoutSeconds, err := getEnvInt("ARK_TIMEOUT_SECONDS", 60)
	if err != nil {
		return nil, err
	}

	maxFileSizeMB, err := getEnvInt("MAX_FILE_SIZE_MB", 10)
	if err != nil {
		return nil, err
	}

	cfg := &Config{
		// Ark
		ArkAPIKey:         getEnv("ARK_API_KEY", ""),
		ArkBaseURL:        getEnv("ARK_BASE_URL", DefaultArkBaseURL),
		ArkModel:          getEnv("ARK_MODEL", DefaultArkModel),
		ArkTimeoutSeconds: timeoutSeconds,

		// Upload
		MaxFileSizeMB: maxFileSizeMB,

		// Gemini
		GeminiAPIKey: getEnv("GEMINI_API_KEY", ""),
		GeminiModel:  getEnv("GEMINI_MODEL", "gemini-1.5-flash"),

		// Redis (미설정이면 activity 기록 비활성화)
		RedisHost:     getEnv("REDIS_HOST", ""),
		RedisPort:     getEnv("REDIS_PORT", "6379"),
		RedisUsername: getEnv("REDIS_USERNAME", ""),
		RedisPassword: getEnv("REDIS_PASSWORD", ""),
		RedisUseTLS:   useTLS,

		// Server
		Port: getEnv("PORT", "8080"),
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	log.Println("✅ Configuration loaded successfully")
	log.Printf("   Ark model: %s (timeout: %ds)", cfg.ArkModel, cfg.ArkTimeoutSeconds)
	log.Printf("   Max upload size: %dMB", cfg.MaxFileSizeMB)
	if cfg.ArkAPIKey == "" {
		// 키가 없어도 서버는 뜬다 - /health가 degraded로 보고
		log.Println("⚠️  ARK_API_KEY not configured - generation requests will be rejected")
	}

	return cfg, nil
}

// validate - 값 범위 검증 (자격증명 존재 여부는 검증하지 않음)
func (c *Config) validate() error {
	if c.ArkTimeoutSeconds <= 0 {
		return fmt.Errorf("ARK_TIMEOUT_SECONDS must be positive, got %d", c.ArkTimeoutSeconds)
	}
	if c.MaxFileSizeMB <= 0 {
		return fmt.Errorf("MAX_FILE_SIZE_MB must be positive, got %d", c.MaxFileSizeMB)
	}
	if c.ArkBaseURL == "" {
		return fmt.Errorf("ARK_BASE_URL is required")
	}
	if c.ArkModel == "" {
		return fmt.Errorf("ARK_MODEL is required")
	}
	return nil
}

// CredentialConfigured - Ark 자격증명 설정 여부
func (c *Config) CredentialConfigured() bool {
	return c.ArkAPIKey != ""
}

// MaxFileSizeBytes - 업로드 제한 (바이트)
func (c *Config) MaxFileSizeBytes() int64 {
	return int64(c.MaxFileSizeMB) << 20
}

// getEnv - 환경변수 가져오기 (기본값 지원)
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvInt - 정수 환경변수 가져오기 (기본값 지원)
func getEnvInt(key string, defaultValue int) (int, error) {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue, nil
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return 0, fmt.Errorf("%s must be an integer, got %q", key, value)
	}
	return parsed, nil
}

// GetRedisAddr - Redis 연결 문자열 생성
func (c *Config) GetRedisAddr() string {
	return fmt.Sprintf("%s:%s", c.RedisHost, c.RedisPort)
}
