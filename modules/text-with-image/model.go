package textwithimage

// 캐릭터 성별
const (
	GenderMale   = "Male"
	GenderFemale = "Female"
)

// 스토리 스타일
var StyleOptions = []string{"Cartoon", "Storybook", "Illustration", "Colorful", "Simple"}

// 지원 언어
var LanguageOptions = []string{"English", "Arabic", "French", "Spanish", "Italian"}

// 챕터 선택지 → 페이지 수
var ChapterPages = map[string]int{
	"Single": 1,
	"Two":    2,
	"Four":   4,
	"Six":    6,
	"Ten":    10,
}

// 입력 제약
const (
	MinNameLen      = 1
	MaxNameLen      = 50
	MinAge          = 1
	MaxAge          = 100
	MinStoryIdeaLen = 10
	MaxStoryIdeaLen = 1000
)

// StoryRequest - 스토리 생성 요청 (JSON body)
type StoryRequest struct {
	Gender        string `json:"gender"`
	Name          string `json:"name"`
	Age           int    `json:"age"`
	Style         string `json:"style"`
	Language      string `json:"language"`
	StoryIdea     string `json:"story_idea"`
	ChapterNumber string `json:"chapter_number"`
}

// StoryPage - 스토리 1페이지
type StoryPage struct {
	PageNumber       int    `json:"page_number"`
	Title            string `json:"title"`
	Content          string `json:"content"`
	ImageDescription string `json:"image_description"`
}

// GeneratedStory - 생성된 스토리 전체
type GeneratedStory struct {
	StoryTitle            string      `json:"story_title"`
	CharacterName         string      `json:"character_name"`
	CharacterGender       string      `json:"character_gender"`
	CharacterAge          int         `json:"character_age"`
	Style                 string      `json:"style"`
	Language              string      `json:"language"`
	TotalChapters         int         `json:"total_chapters"`
	CoverImageDescription string      `json:"cover_image_description"`
	Pages                 []StoryPage `json:"pages"`
}

// StoryResponse - HTTP API 응답 구조체
type StoryResponse struct {
	Success        bool            `json:"success"`
	Message        string          `json:"message"`
	Story          *GeneratedStory `json:"story,omitempty"`
	ProcessingTime float64         `json:"processing_time,omitempty"`
}
