package services

import (
	"encoding/json"
	"strings"

	"github.com/renukakulkarni2721/MindMirror/models"
)

// stripCodeFence 去掉模型输出外层的一对 markdown 代码围栏（``` 或 ```json）
func stripCodeFence(raw string) string {
	s := strings.TrimSpace(raw)
	if !strings.HasPrefix(s, "```") {
		return s
	}

	// 跳过 ```json 或 ``` 所在行
	if idx := strings.Index(s, "\n"); idx != -1 {
		s = s[idx+1:]
	} else {
		s = strings.TrimPrefix(s, "```json")
		s = strings.TrimPrefix(s, "```")
	}
	if idx := strings.LastIndex(s, "```"); idx != -1 {
		s = s[:idx]
	}
	return strings.TrimSpace(s)
}

// extractAnalysis 解析每日分析的模型输出并校验字段
func extractAnalysis(raw string) (*models.AnalysisData, error) {
	cleaned := stripCodeFence(raw)

	var data models.AnalysisData
	if err := json.Unmarshal([]byte(cleaned), &data); err != nil {
		return nil, &ParseError{Raw: raw, Err: err}
	}

	if data.Transcript == "" {
		return nil, &SchemaViolationError{Field: "transcript", Reason: "is empty"}
	}
	if data.PrimaryEmotion == "" {
		return nil, &SchemaViolationError{Field: "primaryEmotion", Reason: "is empty"}
	}
	if data.Theme == "" {
		return nil, &SchemaViolationError{Field: "theme", Reason: "is empty"}
	}
	if data.DailyInsight == "" {
		return nil, &SchemaViolationError{Field: "dailyInsight", Reason: "is empty"}
	}

	// 强度归一化到约定的枚举值
	intensity := strings.ToLower(strings.TrimSpace(data.EmotionalIntensity))
	switch intensity {
	case models.IntensityLow, models.IntensityMedium, models.IntensityHigh:
		data.EmotionalIntensity = intensity
	default:
		return nil, &SchemaViolationError{Field: "emotionalIntensity", Reason: "must be low, medium or high"}
	}

	return &data, nil
}

// extractWeekly 解析周度分析的模型输出并校验字段
func extractWeekly(raw string) (*models.WeeklyAnalysis, error) {
	cleaned := stripCodeFence(raw)

	var data models.WeeklyAnalysis
	if err := json.Unmarshal([]byte(cleaned), &data); err != nil {
		return nil, &ParseError{Raw: raw, Err: err}
	}

	if len(data.DominantEmotions) == 0 {
		return nil, &SchemaViolationError{Field: "dominantEmotions", Reason: "is empty"}
	}
	if len(data.DominantThemes) == 0 {
		return nil, &SchemaViolationError{Field: "dominantThemes", Reason: "is empty"}
	}
	if data.EmotionalPattern == "" {
		return nil, &SchemaViolationError{Field: "emotionalPattern", Reason: "is empty"}
	}
	if data.WeeklyInsight == "" {
		return nil, &SchemaViolationError{Field: "weeklyInsight", Reason: "is empty"}
	}
	if data.ReflectiveQuestion == "" {
		return nil, &SchemaViolationError{Field: "reflectiveQuestion", Reason: "is empty"}
	}

	return &data, nil
}
