package models

import (
	"fmt"
	"regexp"
	"time"
)

// 解码后的音频大小上限 10MB
const MaxAudioBytes = 10 << 20

var dateRe = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)

// DailyAnalysisRequest 每日分析请求结构体，textInput 和 audioData 二选一
type DailyAnalysisRequest struct {
	UserID    string `json:"userId" binding:"required"`
	Date      string `json:"date"`      // YYYY-MM-DD，缺省取服务器当前UTC日期
	TextInput string `json:"textInput"` // 文字反思
	AudioData string `json:"audioData"` // base64编码的音频
	MimeType  string `json:"mimeType"`  // 音频MIME类型
}

// Validate 校验输入并补全缺省日期
func (r *DailyAnalysisRequest) Validate() error {
	hasText := r.TextInput != ""
	hasAudio := r.AudioData != ""
	if !hasText && !hasAudio {
		return fmt.Errorf("textInput or audioData is required")
	}
	if hasText && hasAudio {
		return fmt.Errorf("provide only one of textInput and audioData")
	}
	if hasAudio && r.MimeType == "" {
		return fmt.Errorf("mimeType is required for audio input")
	}

	if r.Date == "" {
		r.Date = time.Now().UTC().Format("2006-01-02")
	} else if !dateRe.MatchString(r.Date) {
		return fmt.Errorf("date must be in YYYY-MM-DD format")
	}
	return nil
}

// WeeklyAnalysisRequest 周度分析请求结构体
type WeeklyAnalysisRequest struct {
	UserID string `json:"userId" binding:"required"`
}

// DeleteReflectionRequest 删除反思请求结构体，所有权按userId重新校验
type DeleteReflectionRequest struct {
	UserID string `json:"userId" binding:"required"`
}
