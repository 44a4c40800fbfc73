package models

import "time"

// 反思记录的分析状态机：pending -> completed | failed
const (
	StatusPending   = "pending"
	StatusCompleted = "completed"
	StatusFailed    = "failed"
)

// 情绪强度约定值
const (
	IntensityLow    = "low"
	IntensityMedium = "medium"
	IntensityHigh   = "high"
)

// ReflectionRecord 反思记录模型，每用户每天一条（逻辑约定，不强制唯一，
// 重复的 (user_id, date) 以最新一条为准）
type ReflectionRecord struct {
	ID                 string    `gorm:"type:varchar(50);primaryKey" json:"id"`
	UserID             string    `gorm:"type:varchar(50);index:idx_user_date" json:"userId"`
	Date               string    `gorm:"type:varchar(10);index:idx_user_date" json:"date"` // YYYY-MM-DD
	Transcript         string    `gorm:"type:text" json:"transcript"`
	PrimaryEmotion     string    `gorm:"type:varchar(50)" json:"primaryEmotion"`
	SecondaryEmotion   string    `gorm:"type:varchar(50)" json:"secondaryEmotion"`
	Theme              string    `gorm:"type:varchar(50)" json:"theme"`
	EmotionalIntensity string    `gorm:"type:varchar(10)" json:"emotionalIntensity"` // low/medium/high
	DailyInsight       string    `gorm:"type:text" json:"dailyInsight"`
	Status             string    `gorm:"type:varchar(20)" json:"status"`
	CreatedAt          time.Time `json:"createdAt"`
}

func (ReflectionRecord) TableName() string {
	return "reflection_records"
}

// AnalysisData 模型对单条反思的结构化分析结果
type AnalysisData struct {
	Transcript         string `json:"transcript"`
	PrimaryEmotion     string `json:"primaryEmotion"`
	SecondaryEmotion   string `json:"secondaryEmotion"`
	Theme              string `json:"theme"`
	EmotionalIntensity string `json:"emotionalIntensity"`
	DailyInsight       string `json:"dailyInsight"`
}

// WeeklyAnalysis 周度情绪模式分析，按需计算，不落库
type WeeklyAnalysis struct {
	DominantEmotions   []string `json:"dominantEmotions"`
	DominantThemes     []string `json:"dominantThemes"`
	EmotionalPattern   string   `json:"emotionalPattern"`
	WeeklyInsight      string   `json:"weeklyInsight"`
	ReflectiveQuestion string   `json:"reflectiveQuestion"`
}
