package services

import (
	"fmt"
	"strings"

	"github.com/renukakulkarni2721/MindMirror/models"
)

// 周度提示词中单条反思摘录的最大长度
const maxExcerptLen = 200

const analysisGuidelines = `Guidelines:
- Choose primaryEmotion and secondaryEmotion freely, e.g. joy, gratitude, overwhelm, stress, sadness, calm. secondaryEmotion may be an empty string when nothing fits.
- theme should be one of: work, relationships, self, health, family, creativity, growth, finances.
- emotionalIntensity must be exactly one of: low, medium, high.
- dailyInsight is 2-3 sentences of warm, non-judgmental reflection on what the person is feeling. Focus on awareness, not solutions. Never give medical, diagnostic or therapeutic advice.
- Respond with a single JSON object only, no markdown, no extra text.`

// buildDailyTextPrompt 构造文字反思的分析提示词，纯函数
func buildDailyTextPrompt(text string) string {
	return fmt.Sprintf(`You are an emotional awareness assistant for a private journaling app. Analyze the journal entry below and return a JSON object with exactly these fields: transcript, primaryEmotion, secondaryEmotion, theme, emotionalIntensity, dailyInsight.

The transcript field must repeat the journal entry verbatim.

%s

Journal entry:
"""
%s
"""`, analysisGuidelines, text)
}

// buildDailyAudioPrompt 构造语音反思的提示词，音频字节随消息另行携带
func buildDailyAudioPrompt() string {
	return fmt.Sprintf(`You are an emotional awareness assistant for a private journaling app. The attached audio is a spoken journal entry. First transcribe it, then analyze it, and return a JSON object with exactly these fields: transcript, primaryEmotion, secondaryEmotion, theme, emotionalIntensity, dailyInsight.

The transcript field must contain the full transcription of the audio.

%s`, analysisGuidelines)
}

// buildWeeklyPrompt 构造周度模式分析的提示词，逐条嵌入反思摘要
func buildWeeklyPrompt(reflections []models.ReflectionRecord) string {
	var sb strings.Builder
	for _, r := range reflections {
		// 按字符截断，避免把多字节文本切在半个字符上
		excerpt := r.Transcript
		if runes := []rune(excerpt); len(runes) > maxExcerptLen {
			excerpt = string(runes[:maxExcerptLen]) + "..."
		}
		sb.WriteString(fmt.Sprintf("- date: %s | primaryEmotion: %s | secondaryEmotion: %s | theme: %s | intensity: %s\n  excerpt: %s\n",
			r.Date, r.PrimaryEmotion, r.SecondaryEmotion, r.Theme, r.EmotionalIntensity, excerpt))
	}

	return fmt.Sprintf(`You are an emotional awareness assistant for a private journaling app. Below are a user's recent daily reflections. Identify their emotional patterns over the week and return a JSON object with exactly these fields: dominantEmotions (array of strings), dominantThemes (array of strings), emotionalPattern (string), weeklyInsight (string), reflectiveQuestion (string).

weeklyInsight should be warm and non-judgmental, focused on awareness rather than solutions. reflectiveQuestion is one open question inviting gentle self-reflection. Never give medical, diagnostic or therapeutic advice. Respond with a single JSON object only, no markdown, no extra text.

Reflections:
%s`, sb.String())
}
