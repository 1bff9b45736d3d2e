package textwithimage

import (
	"fmt"
	"strings"
)

// storyTemplates - 언어별 스토리 템플릿 (Gemini 미사용 시 fallback)
var storyTemplates = map[string]map[string]string{
	"English": {
		"intro":           "Once upon a time, there was %s named %s.",
		"adventure_start": "%s discovered something magical that would change everything.",
		"conflict":        "But %s faced a great challenge that tested their courage.",
		"resolution":      "With determination and heart, %s found a way to overcome the obstacle.",
		"ending":          "And so %s learned that with courage and kindness, anything is possible.",
	},
	"Spanish": {
		"intro":           "Érase una vez, había %s llamado %s.",
		"adventure_start": "%s descubrió algo mágico que lo cambiaría todo.",
		"conflict":        "Pero %s enfrentó un gran desafío que puso a prueba su valor.",
		"resolution":      "Con determinación y corazón, %s encontró una manera de superar el obstáculo.",
		"ending":          "Y así %s aprendió que con valor y bondad, todo es posible.",
	},
	"French": {
		"intro":           "Il était une fois, il y avait %s nommé %s.",
		"adventure_start": "%s découvrit quelque chose de magique qui allait tout changer.",
		"conflict":        "Mais %s fit face à un grand défi qui testa son courage.",
		"resolution":      "Avec détermination et cœur, %s trouva un moyen de surmonter l'obstacle.",
		"ending":          "Et ainsi %s apprit qu'avec courage et gentillesse, tout est possible.",
	},
	"Italian": {
		"intro":           "C'era una volta %s chiamato %s.",
		"adventure_start": "%s scoprì qualcosa di magico che avrebbe cambiato tutto.",
		"conflict":        "Ma %s affrontò una grande sfida che mise alla prova il suo coraggio.",
		"resolution":      "Con determinazione e cuore, %s trovò un modo per superare l'ostacolo.",
		"ending":          "E così %s imparò che con coraggio e gentilezza, tutto è possibile.",
	},
	"Arabic": {
		"intro":           "كان يا ما كان، كان هناك %s يُدعى %s.",
		"adventure_start": "اكتشف %s شيئًا سحريًا من شأنه أن يغير كل شيء.",
		"conflict":        "لكن %s واجه تحديًا كبيرًا اختبر شجاعته.",
		"resolution":      "بالعزيمة والقلب، وجد %s طريقة للتغلب على العقبة.",
		"ending":          "وهكذا تعلم %s أنه بالشجاعة واللطف، كل شيء ممكن.",
	},
}

// stylePrompts - 스타일별 이미지 프롬프트
var stylePrompts = map[string]string{
	"Cartoon":      "bright, animated, cartoon-style illustration with bold colors and fun characters",
	"Storybook":    "classic storybook illustration with soft watercolor style and whimsical details",
	"Illustration": "detailed digital illustration with rich colors and artistic composition",
	"Colorful":     "vibrant, colorful artwork with dynamic composition and cheerful atmosphere",
	"Simple":       "minimalist, clean illustration with simple shapes and gentle colors",
}

// genderAdjectives - 언어별 캐릭터 표현
var genderAdjectives = map[string]map[string]string{
	"English": {GenderMale: "a young boy", GenderFemale: "a young girl"},
	"Spanish": {GenderMale: "un niño", GenderFemale: "una niña"},
	"French":  {GenderMale: "un garçon", GenderFemale: "une fille"},
	"Italian": {GenderMale: "un ragazzo", GenderFemale: "una ragazza"},
	"Arabic":  {GenderMale: "فتى", GenderFemale: "فتاة"},
}

// genderAdjective - 언어에 맞는 캐릭터 표현 (기본값 지원)
func genderAdjective(gender, language string) string {
	if byLang, ok := genderAdjectives[language]; ok {
		if adj, ok := byLang[gender]; ok {
			return adj
		}
	}
	return "a child"
}

// templatesForLanguage - 언어별 템플릿 (미지원 언어는 English)
func templatesForLanguage(language string) map[string]string {
	if templates, ok := storyTemplates[language]; ok {
		return templates
	}
	return storyTemplates["English"]
}

// buildGeminiPrompt - Gemini 스토리 생성 프롬프트 구성
func buildGeminiPrompt(req *StoryRequest, totalPages int) string {
	return fmt.Sprintf(`Create a %d-page children's story about %s, a %d-year-old %s character.
Story theme: %s
Style: %s
Language: %s

Requirements:
- Each page should have EXACTLY 25 words or less
- Distribute the complete story across %d pages
- Make it age-appropriate and engaging
- Each page should advance the story

Respond with valid JSON only, no markdown fences:
{"pages": [{"page_number": 1, "title": "Page Title", "content": "Story content (max 25 words)"}]}`,
		totalPages, req.Name, req.Age, strings.ToLower(req.Gender),
		req.StoryIdea, req.Style, req.Language, totalPages)
}

// buildImageDescription - 페이지 내용 기반 삽화 설명 생성
func buildImageDescription(content, characterName, style string, pageNumber int) string {
	stylePrompt, ok := stylePrompts[style]
	if !ok {
		stylePrompt = "illustration"
	}

	parts := []string{stylePrompt, "showing " + characterName}

	contentLower := strings.ToLower(content)
	scene := "in a whimsical storybook setting"
	for _, candidate := range sceneKeywords {
		if containsAny(contentLower, candidate.keywords) {
			scene = candidate.description
			break
		}
	}
	parts = append(parts, scene)

	for _, candidate := range moodKeywords {
		if containsAny(contentLower, candidate.keywords) {
			parts = append(parts, candidate.description)
			break
		}
	}

	parts = append(parts, fmt.Sprintf("page %d illustration", pageNumber))
	return strings.Join(parts, ", ")
}

// buildCoverDescription - 표지 이미지 설명 생성
func buildCoverDescription(req *StoryRequest, title string) string {
	stylePrompt, ok := stylePrompts[req.Style]
	if !ok {
		stylePrompt = "illustration"
	}
	return fmt.Sprintf(
		"Book cover design in %s style, featuring %s, %s of %d years old, as the main character. "+
			"Title '%s' prominently displayed at the top. Cover scene depicts the story theme: %s. "+
			"Colorful, eye-catching design suitable for children's book, inviting and magical atmosphere",
		strings.ToLower(stylePrompt), req.Name,
		strings.ToLower(genderAdjective(req.Gender, req.Language)), req.Age,
		title, req.StoryIdea)
}

// storyTitle - 캐릭터 이름 기반 제목
func storyTitle(characterName string) string {
	return "The Amazing Adventures of " + characterName
}

type keywordMatch struct {
	description string
	keywords    []string
}

// sceneKeywords - 페이지 내용에서 배경을 추출하기 위한 키워드 (순서 고정)
var sceneKeywords = []keywordMatch{
	{"in a magical enchanted forest with glowing trees", []string{"forest", "trees", "woods", "enchanted"}},
	{"in a royal castle with tall towers", []string{"castle", "palace", "kingdom", "royal"}},
	{"in a beautiful garden with colorful flowers", []string{"garden", "flowers", "butterfly"}},
	{"under a starry night sky", []string{"night", "stars", "moon"}},
	{"on a sunny beach with golden sand", []string{"beach", "sand", "ocean", "sea"}},
}

// moodKeywords - 페이지 내용에서 분위기를 추출하기 위한 키워드 (순서 고정)
var moodKeywords = []keywordMatch{
	{"with a bright, joyful smile", []string{"happy", "joy", "smile", "laugh"}},
	{"with wonder and curiosity in their eyes", []string{"wonder", "curious", "amazed", "discover"}},
	{"with determination and courage", []string{"brave", "courage", "determined", "challenge"}},
	{"with magical sparkles around them", []string{"magic", "magical", "sparkle", "glow"}},
}

func containsAny(s string, keywords []string) bool {
	for _, keyword := range keywords {
		if strings.Contains(s, keyword) {
			return true
		}
	}
	return false
}
