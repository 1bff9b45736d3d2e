package textwithimage

import (
	"encoding/json"
	"log"
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"ark-image-server/modules/common/config"
)

type Handler struct {
	cfg     *config.Config
	service *Service
}

func NewHandler(cfg *config.Config) *Handler {
	return &Handler{
		cfg:     cfg,
		service: NewService(cfg),
	}
}

// RegisterRoutes - 라우터에 Text-with-Image 엔드포인트 등록
func (h *Handler) RegisterRoutes(r *mux.Router) {
	r.HandleFunc("/api/v1/text-with-image/generate-story-simple", h.HandleGenerateStory).Methods("POST", "OPTIONS")
	r.HandleFunc("/api/v1/text-with-image/info", h.HandleInfo).Methods("GET")
	log.Println("✅ Text-with-Image routes registered: /api/v1/text-with-image")
}

// HandleGenerateStory - POST /api/v1/text-with-image/generate-story-simple
func (h *Handler) HandleGenerateStory(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	start := time.Now()

	var req StoryRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		w.WriteHeader(http.StatusBadRequest)
		json.NewEncoder(w).Encode(StoryResponse{
			Success: false,
			Message: "Invalid request format",
		})
		return
	}

	if err := ValidateRequest(&req); err != nil {
		log.Printf("❌ [TextWithImage] Invalid request: %v", err)
		w.WriteHeader(http.StatusBadRequest)
		json.NewEncoder(w).Encode(StoryResponse{
			Success: false,
			Message: err.Error(),
		})
		return
	}

	story, err := h.service.GenerateStory(r.Context(), &req)
	if err != nil {
		log.Printf("❌ [TextWithImage] Story generation failed: %v", err)
		w.WriteHeader(http.StatusInternalServerError)
		json.NewEncoder(w).Encode(StoryResponse{
			Success:        false,
			Message:        "Failed to generate story: " + err.Error(),
			ProcessingTime: time.Since(start).Seconds(),
		})
		return
	}

	log.Printf("✅ [TextWithImage] Story generated for %s (%d pages, %.2fs)",
		req.Name, len(story.Pages), time.Since(start).Seconds())

	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(StoryResponse{
		Success:        true,
		Message:        "Story generated successfully for " + req.Name + "!",
		Story:          story,
		ProcessingTime: time.Since(start).Seconds(),
	})
}

// HandleInfo - GET /api/v1/text-with-image/info
func (h *Handler) HandleInfo(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	json.NewEncoder(w).Encode(map[string]interface{}{
		"service":         "text-with-image",
		"description":     "Generate personalized illustrated stories from character details and a story idea",
		"styles":          StyleOptions,
		"languages":       LanguageOptions,
		"chapter_options": []string{"Single", "Two", "Four", "Six", "Ten"},
		"gemini_backed":   h.service.genaiClient != nil,
		"limits": map[string]string{
			"name":       "1-50 characters",
			"age":        "1-100",
			"story_idea": "10-1000 characters",
		},
	})
}
