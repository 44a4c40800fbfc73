package services

import (
	"errors"
	"fmt"
)

// 周度分析至少需要的反思条数
const MinWeeklyReflections = 3

// ErrInsufficientData 反思条数不足，无法做周度分析
var ErrInsufficientData = errors.New("not enough reflections for weekly analysis")

// ErrReflectionNotFound 反思记录不存在
var ErrReflectionNotFound = errors.New("reflection not found")

// ErrForbidden 操作者不是记录的所有者
var ErrForbidden = errors.New("reflection belongs to another user")

// RateLimitedError 模型服务限流，重试耗尽后返回
type RateLimitedError struct {
	Err error
}

func (e *RateLimitedError) Error() string {
	return "AI service is temporarily busy, please try again in a moment."
}

func (e *RateLimitedError) Unwrap() error { return e.Err }

// AnalysisFailedError 非限流类的分析失败（网络、解析、字段校验）
type AnalysisFailedError struct {
	Err error
}

func (e *AnalysisFailedError) Error() string {
	return fmt.Sprintf("analysis failed: %v", e.Err)
}

func (e *AnalysisFailedError) Unwrap() error { return e.Err }

// ParseError 模型输出无法解析为JSON，保留原始文本便于排查
type ParseError struct {
	Raw string
	Err error
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("model output is not valid JSON: %v", e.Err)
}

func (e *ParseError) Unwrap() error { return e.Err }

// SchemaViolationError 模型输出解析成功但不满足期望的字段约束
type SchemaViolationError struct {
	Field  string
	Reason string
}

func (e *SchemaViolationError) Error() string {
	return fmt.Sprintf("model output schema violation: field %q %s", e.Field, e.Reason)
}
