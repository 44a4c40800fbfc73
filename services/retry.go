package services

import (
	"context"
	"strings"
	"time"

	"github.com/renukakulkarni2721/MindMirror/config"
)

const (
	defaultMaxAttempts  = 3
	defaultInitialDelay = 2 * time.Second
)

// sleepFunc 可替换的延时实现，测试时注入假实现
type sleepFunc func(ctx context.Context, d time.Duration) error

func sleepWithContext(ctx context.Context, d time.Duration) error {
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-time.After(d):
		return nil
	}
}

// isRateLimitError 判断是否是模型服务限流错误
func isRateLimitError(err error) bool {
	if err == nil {
		return false
	}
	msg := strings.ToLower(err.Error())
	return strings.Contains(msg, "429") ||
		strings.Contains(msg, "too many requests") ||
		strings.Contains(msg, "resource_exhausted") ||
		strings.Contains(msg, "resourceexhausted")
}

// retryWithBackoff 指数退避重试。只有限流错误会重试，其余错误立即返回；
// 延时依次为 initialDelay, initialDelay*2, initialDelay*4...
func retryWithBackoff[T any](ctx context.Context, op func() (T, error), maxAttempts int, initialDelay time.Duration, sleep sleepFunc) (T, error) {
	var zero T
	var lastErr error

	for attempt := 0; attempt < maxAttempts; attempt++ {
		result, err := op()
		if err == nil {
			return result, nil
		}
		lastErr = err

		// 非限流错误视为不可恢复，立即失败
		if !isRateLimitError(err) {
			return zero, err
		}

		if attempt == maxAttempts-1 {
			break
		}

		delay := initialDelay << uint(attempt)
		config.Logger.Warnw("模型服务限流，等待后重试",
			"attempt", attempt+1,
			"maxAttempts", maxAttempts,
			"delay", delay.String(),
		)
		if err := sleep(ctx, delay); err != nil {
			return zero, err
		}
	}

	return zero, lastErr
}
