package models

// DailyAnalysisResponse 每日分析响应结构体
type DailyAnalysisResponse struct {
	Success      bool          `json:"success"`
	ReflectionID string        `json:"reflectionId"`
	Status       string        `json:"status"`
	Data         *AnalysisData `json:"data"`
}

// ReflectionListResponse 反思列表响应结构体
type ReflectionListResponse struct {
	Success     bool               `json:"success"`
	Reflections []ReflectionRecord `json:"reflections"`
}

// ReflectionResponse 单条反思响应结构体
type ReflectionResponse struct {
	Success    bool              `json:"success"`
	Reflection *ReflectionRecord `json:"reflection"`
}

// WeeklyAnalysisResponse 周度分析响应结构体
type WeeklyAnalysisResponse struct {
	Success         bool            `json:"success"`
	HasEnoughData   bool            `json:"hasEnoughData"`
	ReflectionCount int             `json:"reflectionCount"`
	Data            *WeeklyAnalysis `json:"data,omitempty"`
}

// StatusResponse 分析状态响应结构体
type StatusResponse struct {
	Success bool   `json:"success"`
	Status  string `json:"status"`
}
