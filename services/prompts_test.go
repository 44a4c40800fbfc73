package services

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/renukakulkarni2721/MindMirror/models"
)

func TestBuildDailyTextPromptDeterministic(t *testing.T) {
	text := "I felt overwhelmed today but grateful for my friends"
	first := buildDailyTextPrompt(text)
	second := buildDailyTextPrompt(text)

	if first != second {
		t.Fatal("prompt is not deterministic for identical input")
	}
	if !strings.Contains(first, text) {
		t.Fatal("prompt does not embed the reflection verbatim")
	}
	for _, field := range []string{"transcript", "primaryEmotion", "secondaryEmotion", "theme", "emotionalIntensity", "dailyInsight"} {
		if !strings.Contains(first, field) {
			t.Fatalf("prompt missing field %q", field)
		}
	}
}

func TestBuildDailyAudioPromptMentionsTranscription(t *testing.T) {
	prompt := buildDailyAudioPrompt()
	if !strings.Contains(prompt, "transcribe") {
		t.Fatal("audio prompt must ask for transcription")
	}
	if !strings.Contains(prompt, "dailyInsight") {
		t.Fatal("audio prompt must request the analysis fields")
	}
}

func TestBuildWeeklyPromptTruncatesExcerpt(t *testing.T) {
	long := strings.Repeat("a", 500)
	reflections := []models.ReflectionRecord{
		{Date: "2025-06-01", PrimaryEmotion: "stress", Theme: "work", EmotionalIntensity: "high", Transcript: long},
	}
	prompt := buildWeeklyPrompt(reflections)

	if strings.Contains(prompt, long) {
		t.Fatal("excerpt was not truncated")
	}
	if !strings.Contains(prompt, strings.Repeat("a", maxExcerptLen)+"...") {
		t.Fatal("truncated excerpt missing from prompt")
	}
	for _, field := range []string{"dominantEmotions", "dominantThemes", "emotionalPattern", "weeklyInsight", "reflectiveQuestion"} {
		if !strings.Contains(prompt, field) {
			t.Fatalf("prompt missing field %q", field)
		}
	}
}

func TestBuildWeeklyPromptKeepsMultiByteExcerptValid(t *testing.T) {
	// 中文长文本，截断点不能落在字符中间
	long := strings.Repeat("今天的心情很复杂，", 60)
	reflections := []models.ReflectionRecord{
		{Date: "2025-06-01", PrimaryEmotion: "anxiety", Theme: "work", EmotionalIntensity: "high", Transcript: long},
	}
	prompt := buildWeeklyPrompt(reflections)

	if !utf8.ValidString(prompt) {
		t.Fatal("prompt contains invalid UTF-8 after truncation")
	}
	if strings.Contains(prompt, long) {
		t.Fatal("excerpt was not truncated")
	}
	runes := []rune(long)
	if !strings.Contains(prompt, string(runes[:maxExcerptLen])+"...") {
		t.Fatal("truncated excerpt missing from prompt")
	}
}

func TestBuildWeeklyPromptEmbedsSummaries(t *testing.T) {
	reflections := []models.ReflectionRecord{
		{Date: "2025-06-01", PrimaryEmotion: "joy", SecondaryEmotion: "calm", Theme: "family", EmotionalIntensity: "medium", Transcript: "a lovely dinner"},
		{Date: "2025-06-02", PrimaryEmotion: "stress", Theme: "work", EmotionalIntensity: "high", Transcript: "deadline pressure"},
	}
	prompt := buildWeeklyPrompt(reflections)

	for _, want := range []string{"2025-06-01", "2025-06-02", "a lovely dinner", "deadline pressure", "joy", "stress"} {
		if !strings.Contains(prompt, want) {
			t.Fatalf("prompt missing %q", want)
		}
	}
}
