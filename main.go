package main

import (
	"encoding/json"
	"log"
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"ark-image-server/modules/common/activity"
	"ark-image-server/modules/common/config"
	redisclient "ark-image-server/modules/common/redis"
	imagetoimage "ark-image-server/modules/image-to-image"
	textwithimage "ark-image-server/modules/text-with-image"
)

var startTime = time.Now()

// CORS 헤더 추가
func enableCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")

		if r.Method == "OPTIONS" {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// 헬스 체크 엔드포인트 (liveness)
func healthCheck(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(map[string]string{
		"status":  "healthy",
		"service": "ark-image-server",
	})
}

// 서버 메트릭 조회 엔드포인트
func metricsHandler(recorder *activity.Recorder) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")

		stats, err := recorder.Snapshot(r.Context())
		if err != nil {
			log.Printf("⚠️  Failed to read activity stats: %v", err)
			stats = &activity.Stats{Recent: []activity.Entry{}}
		}

		json.NewEncoder(w).Encode(map[string]interface{}{
			"server": map[string]interface{}{
				"uptime":    time.Since(startTime).String(),
				"startTime": startTime,
			},
			"activityEnabled": recorder.Enabled(),
			"generations":     stats,
		})
	}
}

func main() {
	// 환경변수 로드
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("❌ Failed to load config: %v", err)
	}

	// Redis 연결 (optional - 실패해도 activity 기록만 비활성화)
	recorder := activity.NewRecorder(redisclient.Connect(cfg))

	// 라우터 설정
	r := mux.NewRouter()
	r.Use(enableCORS)

	r.HandleFunc("/", healthCheck).Methods("GET")
	r.HandleFunc("/health", healthCheck).Methods("GET")
	r.HandleFunc("/metrics", metricsHandler(recorder)).Methods("GET")

	imagetoimage.NewHandler(cfg, recorder).RegisterRoutes(r)
	textwithimage.NewHandler(cfg).RegisterRoutes(r)

	log.Printf("🚀 Ark Image Server starting on port %s", cfg.Port)
	log.Printf("🎨 Image-to-Image: POST http://localhost:%s/api/v1/image-to-image", cfg.Port)
	log.Printf("📖 Text-with-Image: POST http://localhost:%s/api/v1/text-with-image/generate-story-simple", cfg.Port)
	log.Printf("❤️  Health check: http://localhost:%s/api/v1/image-to-image/health", cfg.Port)
	log.Printf("📊 Metrics: http://localhost:%s/metrics", cfg.Port)

	// 서버 시작
	if err := http.ListenAndServe(":"+cfg.Port, r); err != nil {
		log.Fatalf("Server failed to start: %v", err)
	}
}
