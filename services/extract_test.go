package services

import (
	"errors"
	"testing"
)

const cleanAnalysisJSON = `{"transcript":"I felt calm today","primaryEmotion":"calm","secondaryEmotion":"","theme":"self","emotionalIntensity":"low","dailyInsight":"You noticed a quieter day. That attention to stillness matters."}`

func TestExtractAnalysisCleanJSON(t *testing.T) {
	data, err := extractAnalysis(cleanAnalysisJSON)
	if err != nil {
		t.Fatalf("extractAnalysis error: %v", err)
	}
	if data.Transcript != "I felt calm today" {
		t.Fatalf("transcript=%q", data.Transcript)
	}
	if data.PrimaryEmotion != "calm" || data.Theme != "self" || data.EmotionalIntensity != "low" {
		t.Fatalf("unexpected fields: %+v", data)
	}
}

func TestExtractAnalysisStripsFence(t *testing.T) {
	fenced := "```json\n" + cleanAnalysisJSON + "\n```"
	data, err := extractAnalysis(fenced)
	if err != nil {
		t.Fatalf("extractAnalysis error: %v", err)
	}

	plain, err := extractAnalysis(cleanAnalysisJSON)
	if err != nil {
		t.Fatalf("extractAnalysis error on clean input: %v", err)
	}
	if *data != *plain {
		t.Fatalf("fenced result %+v != plain result %+v", data, plain)
	}
}

func TestExtractAnalysisStripsBareFence(t *testing.T) {
	fenced := "```\n" + cleanAnalysisJSON + "\n```"
	if _, err := extractAnalysis(fenced); err != nil {
		t.Fatalf("extractAnalysis error: %v", err)
	}
}

func TestExtractAnalysisParseErrorKeepsRaw(t *testing.T) {
	raw := "sorry, I can't do that"
	_, err := extractAnalysis(raw)

	var parseErr *ParseError
	if !errors.As(err, &parseErr) {
		t.Fatalf("err=%v, want *ParseError", err)
	}
	if parseErr.Raw != raw {
		t.Fatalf("parseErr.Raw=%q, want original text", parseErr.Raw)
	}
}

func TestExtractAnalysisIntensityEnum(t *testing.T) {
	bad := `{"transcript":"t","primaryEmotion":"joy","secondaryEmotion":"","theme":"work","emotionalIntensity":"extreme","dailyInsight":"i"}`
	_, err := extractAnalysis(bad)

	var schemaErr *SchemaViolationError
	if !errors.As(err, &schemaErr) {
		t.Fatalf("err=%v, want *SchemaViolationError", err)
	}
	if schemaErr.Field != "emotionalIntensity" {
		t.Fatalf("field=%q, want emotionalIntensity", schemaErr.Field)
	}
}

func TestExtractAnalysisIntensityNormalized(t *testing.T) {
	upper := `{"transcript":"t","primaryEmotion":"joy","secondaryEmotion":"","theme":"work","emotionalIntensity":"High","dailyInsight":"i"}`
	data, err := extractAnalysis(upper)
	if err != nil {
		t.Fatalf("extractAnalysis error: %v", err)
	}
	if data.EmotionalIntensity != "high" {
		t.Fatalf("intensity=%q, want high", data.EmotionalIntensity)
	}
}

func TestExtractAnalysisMissingRequiredField(t *testing.T) {
	noEmotion := `{"transcript":"t","secondaryEmotion":"","theme":"work","emotionalIntensity":"low","dailyInsight":"i"}`
	_, err := extractAnalysis(noEmotion)

	var schemaErr *SchemaViolationError
	if !errors.As(err, &schemaErr) {
		t.Fatalf("err=%v, want *SchemaViolationError", err)
	}
}

func TestExtractWeekly(t *testing.T) {
	raw := "```json\n" + `{"dominantEmotions":["stress","gratitude"],"dominantThemes":["work"],"emotionalPattern":"stress peaks midweek","weeklyInsight":"A demanding week, softened by the people around you.","reflectiveQuestion":"What helped you recover?"}` + "\n```"
	data, err := extractWeekly(raw)
	if err != nil {
		t.Fatalf("extractWeekly error: %v", err)
	}
	if len(data.DominantEmotions) != 2 || data.ReflectiveQuestion == "" {
		t.Fatalf("unexpected weekly data: %+v", data)
	}
}

func TestExtractWeeklyRejectsEmpty(t *testing.T) {
	_, err := extractWeekly(`{"dominantEmotions":[],"dominantThemes":[],"emotionalPattern":"","weeklyInsight":"","reflectiveQuestion":""}`)

	var schemaErr *SchemaViolationError
	if !errors.As(err, &schemaErr) {
		t.Fatalf("err=%v, want *SchemaViolationError", err)
	}
}

func TestExtractWeeklyRequiresEveryField(t *testing.T) {
	cases := []struct {
		name  string
		raw   string
		field string
	}{
		{
			name:  "missing dominantThemes",
			raw:   `{"dominantEmotions":["stress"],"dominantThemes":[],"emotionalPattern":"steady","weeklyInsight":"ok","reflectiveQuestion":"why?"}`,
			field: "dominantThemes",
		},
		{
			name:  "missing emotionalPattern",
			raw:   `{"dominantEmotions":["stress"],"dominantThemes":["work"],"emotionalPattern":"","weeklyInsight":"ok","reflectiveQuestion":"why?"}`,
			field: "emotionalPattern",
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := extractWeekly(tc.raw)
			var schemaErr *SchemaViolationError
			if !errors.As(err, &schemaErr) {
				t.Fatalf("err=%v, want *SchemaViolationError", err)
			}
			if schemaErr.Field != tc.field {
				t.Fatalf("field=%q, want %q", schemaErr.Field, tc.field)
			}
		})
	}
}
