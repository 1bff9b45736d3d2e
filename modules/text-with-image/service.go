package textwithimage

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"strings"

	"github.com/google/generative-ai-go/genai"
	"google.golang.org/api/option"

	"ark-image-server/modules/common/config"
)

type Service struct {
	cfg         *config.Config
	genaiClient *genai.Client // nil이면 템플릿 기반 생성
}

func NewService(cfg *config.Config) *Service {
	service := &Service{cfg: cfg}

	if cfg.GeminiAPIKey == "" {
		log.Println("⚠️  [TextWithImage] GEMINI_API_KEY not set - using template-based stories")
		return service
	}

	client, err := genai.NewClient(context.Background(), option.WithAPIKey(cfg.GeminiAPIKey))
	if err != nil {
		log.Printf("⚠️  [TextWithImage] Failed to create Gemini client: %v - using templates", err)
		return service
	}

	log.Println("✅ [TextWithImage] Gemini client initialized")
	service.genaiClient = client
	return service
}

// ValidateRequest - 스토리 요청 검증
func ValidateRequest(req *StoryRequest) error {
	if req.Gender != GenderMale && req.Gender != GenderFemale {
		return fmt.Errorf("invalid gender: %q (expected %s or %s)", req.Gender, GenderMale, GenderFemale)
	}
	name := strings.TrimSpace(req.Name)
	if len(name) < MinNameLen || len(name) > MaxNameLen {
		return fmt.Errorf("name must be %d-%d characters", MinNameLen, MaxNameLen)
	}
	if req.Age < MinAge || req.Age > MaxAge {
		return fmt.Errorf("age must be between %d and %d", MinAge, MaxAge)
	}
	if _, ok := stylePrompts[req.Style]; !ok {
		return fmt.Errorf("invalid style: %q (supported: %s)", req.Style, strings.Join(StyleOptions, ", "))
	}
	if _, ok := storyTemplates[req.Language]; !ok {
		return fmt.Errorf("invalid language: %q (supported: %s)", req.Language, strings.Join(LanguageOptions, ", "))
	}
	if len(req.StoryIdea) < MinStoryIdeaLen || len(req.StoryIdea) > MaxStoryIdeaLen {
		return fmt.Errorf("story_idea must be %d-%d characters", MinStoryIdeaLen, MaxStoryIdeaLen)
	}
	if _, ok := ChapterPages[req.ChapterNumber]; !ok {
		return fmt.Errorf("invalid chapter_number: %q", req.ChapterNumber)
	}
	return nil
}

// GenerateStory - 스토리 생성 (Gemini 우선, 실패 시 템플릿 fallback)
func (s *Service) GenerateStory(ctx context.Context, req *StoryRequest) (*GeneratedStory, error) {
	if err := ValidateRequest(req); err != nil {
		return nil, err
	}

	totalPages := ChapterPages[req.ChapterNumber]

	var pages []StoryPage
	if s.genaiClient != nil {
		geminiPages, err := s.generateGeminiPages(ctx, req, totalPages)
		if err != nil {
			log.Printf("⚠️  [TextWithImage] Gemini generation failed: %v - falling back to templates", err)
			pages = s.generateTemplatePages(req, totalPages)
		} else {
			pages = geminiPages
		}
	} else {
		pages = s.generateTemplatePages(req, totalPages)
	}

	title := storyTitle(req.Name)

	return &GeneratedStory{
		StoryTitle:            title,
		CharacterName:         req.Name,
		CharacterGender:       req.Gender,
		CharacterAge:          req.Age,
		Style:                 req.Style,
		Language:              req.Language,
		TotalChapters:         totalPages,
		CoverImageDescription: buildCoverDescription(req, title),
		Pages:                 pages,
	}, nil
}

// geminiStoryPayload - Gemini JSON 응답 구조
type geminiStoryPayload struct {
	Pages []struct {
		PageNumber int    `json:"page_number"`
		Title      string `json:"title"`
		Content    string `json:"content"`
	} `json:"pages"`
}

// generateGeminiPages - Gemini로 페이지 생성
func (s *Service) generateGeminiPages(ctx context.Context, req *StoryRequest, totalPages int) ([]StoryPage, error) {
	model := s.genaiClient.GenerativeModel(s.cfg.GeminiModel)

	log.Printf("📖 [TextWithImage] Generating %d-page story for %s via Gemini", totalPages, req.Name)

	resp, err := model.GenerateContent(ctx, genai.Text(buildGeminiPrompt(req, totalPages)))
	if err != nil {
		return nil, err
	}

	if len(resp.Candidates) == 0 || resp.Candidates[0].Content == nil ||
		len(resp.Candidates[0].Content.Parts) == 0 {
		return nil, fmt.Errorf("no content generated")
	}

	text, ok := resp.Candidates[0].Content.Parts[0].(genai.Text)
	if !ok {
		return nil, fmt.Errorf("unexpected content type in response")
	}

	var payload geminiStoryPayload
	if err := json.Unmarshal([]byte(stripCodeFences(string(text))), &payload); err != nil {
		return nil, fmt.Errorf("failed to parse story JSON: %w", err)
	}
	if len(payload.Pages) == 0 {
		return nil, fmt.Errorf("story JSON contained no pages")
	}

	pages := make([]StoryPage, 0, len(payload.Pages))
	for _, p := range payload.Pages {
		pages = append(pages, StoryPage{
			PageNumber:       p.PageNumber,
			Title:            p.Title,
			Content:          p.Content,
			ImageDescription: buildImageDescription(p.Content, req.Name, req.Style, p.PageNumber),
		})
	}

	log.Printf("✅ [TextWithImage] Generated %d pages via Gemini", len(pages))
	return pages, nil
}

// generateTemplatePages - 템플릿 기반 페이지 생성 (결정적, 외부 호출 없음)
func (s *Service) generateTemplatePages(req *StoryRequest, totalPages int) []StoryPage {
	templates := templatesForLanguage(req.Language)
	adjective := genderAdjective(req.Gender, req.Language)

	if totalPages == 1 {
		content := fmt.Sprintf(templates["intro"], adjective, req.Name) + " " +
			req.StoryIdea + " " + fmt.Sprintf(templates["ending"], req.Name)
		return []StoryPage{{
			PageNumber:       1,
			Title:            "The Adventure of " + req.Name,
			Content:          content,
			ImageDescription: buildImageDescription(content, req.Name, req.Style, 1),
		}}
	}

	structure := []struct {
		title    string
		template string
		twoArgs  bool
	}{
		{"Introduction", templates["intro"], true},
		{"Adventure Begins", templates["adventure_start"], false},
		{"The Challenge", templates["conflict"], false},
		{"Resolution", templates["resolution"], false},
		{"Happy Ending", templates["ending"], false},
	}

	pages := make([]StoryPage, 0, totalPages)
	for i := 0; i < totalPages; i++ {
		var title, content string
		if i < len(structure) {
			title = structure[i].title
			if structure[i].twoArgs {
				content = fmt.Sprintf(structure[i].template, adjective, req.Name)
			} else {
				content = fmt.Sprintf(structure[i].template, req.Name)
			}
			if i == 1 {
				content += " " + req.StoryIdea
			}
		} else {
			title = fmt.Sprintf("Chapter %d", i+1)
			content = fmt.Sprintf("The story of %s continues with new adventures and discoveries.", req.Name)
		}

		pages = append(pages, StoryPage{
			PageNumber:       i + 1,
			Title:            title,
			Content:          content,
			ImageDescription: buildImageDescription(content, req.Name, req.Style, i+1),
		})
	}

	return pages
}

// stripCodeFences - 모델이 markdown fence로 감싼 JSON 처리
func stripCodeFences(s string) string {
	s = strings.TrimSpace(s)
	if strings.HasPrefix(s, "```") {
		s = strings.TrimPrefix(s, "```json")
		s = strings.TrimPrefix(s, "```")
		s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	}
	return strings.TrimSpace(s)
}
