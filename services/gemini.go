package services

import (
	"context"
	"fmt"

	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/googleai"
)

// GeminiClient Gemini 模型客户端，显式构造后注入到分析服务，
// 测试时可以直接用假的 llms.Model 替换
type GeminiClient struct {
	Model llms.Model
}

// NewGeminiClient 创建 Gemini 客户端
func NewGeminiClient(ctx context.Context, apiKey, model string) (*GeminiClient, error) {
	g, err := googleai.New(ctx,
		googleai.WithAPIKey(apiKey),
		googleai.WithDefaultModel(model),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create Gemini client: %w", err)
	}

	return &GeminiClient{
		Model: g,
	}, nil
}
