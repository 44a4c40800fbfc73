package services

import (
	"context"
	"fmt"
	"time"

	"github.com/renukakulkarni2721/MindMirror/config"

	"github.com/go-redis/redis/v8"
)

// quotaCounter 额度计数用到的Redis命令子集
type quotaCounter interface {
	Incr(ctx context.Context, key string) *redis.IntCmd
	Expire(ctx context.Context, key string, expiration time.Duration) *redis.BoolCmd
}

// QuotaService 每用户每日分析额度，计数放在Redis里按天过期
type QuotaService struct {
	client quotaCounter
	limit  int
}

// NewQuotaService limit<=0 表示不限制
func NewQuotaService(client quotaCounter, limit int) *QuotaService {
	return &QuotaService{client: client, limit: limit}
}

// Consume 占用一次额度，返回剩余次数；超额返回 false。
// Redis 异常时放行，额度只是保护措施，不能挡住正常请求。
func (q *QuotaService) Consume(ctx context.Context, userID string) (bool, int) {
	if q == nil || q.client == nil || q.limit <= 0 {
		return true, -1
	}

	key := fmt.Sprintf("quota:%s:%s", userID, time.Now().UTC().Format("2006-01-02"))
	count, err := q.client.Incr(ctx, key).Result()
	if err != nil {
		config.Logger.Errorw("额度计数失败，跳过额度检查", "error", err, "uid", userID)
		return true, -1
	}
	if count == 1 {
		// 48小时过期，跨时区的一天也能覆盖
		q.client.Expire(ctx, key, 48*time.Hour)
	}

	remaining := q.limit - int(count)
	if remaining < 0 {
		return false, 0
	}
	return true, remaining
}
