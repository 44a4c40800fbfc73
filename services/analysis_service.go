package services

import (
	"context"
	"fmt"
	"time"

	"github.com/renukakulkarni2721/MindMirror/config"
	"github.com/renukakulkarni2721/MindMirror/models"

	"github.com/tmc/langchaingo/llms"
)

// AnalysisService 分析网关：构造提示词 -> 调用模型（带限流重试）-> 解析结构化结果。
// 不负责持久化，失败一律以带类型的错误返回，不向外抛原始传输异常。
type AnalysisService struct {
	model        llms.Model
	maxAttempts  int
	initialDelay time.Duration
	sleep        sleepFunc
}

// NewAnalysisService 创建分析服务，模型客户端由调用方注入
func NewAnalysisService(client *GeminiClient) *AnalysisService {
	return &AnalysisService{
		model:        client.Model,
		maxAttempts:  defaultMaxAttempts,
		initialDelay: defaultInitialDelay,
		sleep:        sleepWithContext,
	}
}

// generate 调用模型并返回文本输出，限流时指数退避重试
func (s *AnalysisService) generate(ctx context.Context, parts []llms.ContentPart) (string, error) {
	messages := []llms.MessageContent{
		{
			Role:  llms.ChatMessageTypeHuman,
			Parts: parts,
		},
	}

	return retryWithBackoff(ctx, func() (string, error) {
		resp, err := s.model.GenerateContent(ctx, messages,
			llms.WithTemperature(0.7),
			llms.WithJSONMode(),
		)
		if err != nil {
			return "", err
		}
		if len(resp.Choices) == 0 {
			return "", fmt.Errorf("模型未返回内容")
		}
		return resp.Choices[0].Content, nil
	}, s.maxAttempts, s.initialDelay, s.sleep)
}

// AnalyzeText 分析一条文字反思
func (s *AnalysisService) AnalyzeText(ctx context.Context, text string) (*models.AnalysisData, error) {
	raw, err := s.generate(ctx, []llms.ContentPart{
		llms.TextPart(buildDailyTextPrompt(text)),
	})
	if err != nil {
		return nil, classifyFailure(err)
	}

	data, err := extractAnalysis(raw)
	if err != nil {
		config.Logger.Errorw("每日分析结果解析失败", "error", err)
		return nil, &AnalysisFailedError{Err: err}
	}
	return data, nil
}

// AnalyzeAudio 分析一条语音反思，音频字节内联在消息中一并发给模型
func (s *AnalysisService) AnalyzeAudio(ctx context.Context, data []byte, mimeType string) (*models.AnalysisData, error) {
	raw, err := s.generate(ctx, []llms.ContentPart{
		llms.TextPart(buildDailyAudioPrompt()),
		llms.BinaryPart(mimeType, data),
	})
	if err != nil {
		return nil, classifyFailure(err)
	}

	result, err := extractAnalysis(raw)
	if err != nil {
		config.Logger.Errorw("语音分析结果解析失败", "error", err)
		return nil, &AnalysisFailedError{Err: err}
	}
	return result, nil
}

// AnalyzeWeekly 对最近的反思做周度模式分析，少于3条直接失败
func (s *AnalysisService) AnalyzeWeekly(ctx context.Context, reflections []models.ReflectionRecord) (*models.WeeklyAnalysis, error) {
	if len(reflections) < MinWeeklyReflections {
		return nil, ErrInsufficientData
	}

	raw, err := s.generate(ctx, []llms.ContentPart{
		llms.TextPart(buildWeeklyPrompt(reflections)),
	})
	if err != nil {
		return nil, classifyFailure(err)
	}

	result, err := extractWeekly(raw)
	if err != nil {
		config.Logger.Errorw("周度分析结果解析失败", "error", err)
		return nil, &AnalysisFailedError{Err: err}
	}
	return result, nil
}

// classifyFailure 把传输层错误归类为限流或一般分析失败
func classifyFailure(err error) error {
	if isRateLimitError(err) {
		return &RateLimitedError{Err: err}
	}
	return &AnalysisFailedError{Err: err}
}
