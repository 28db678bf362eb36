package health

import (
	"context"
	"fmt"
	"time"

	"github.com/go-redis/redis/v8"
)

// UpstreamHealthManager 出款上游健康管理
// 成功率跌破阈值即临时熔断，出款前先问 IsDisabled
type UpstreamHealthManager struct {
	Redis     *redis.Client
	Strategy  SuccessRateStrategy
	Threshold float64 // 熔断阈值，例如 60.0
	TTL       time.Duration
}

func (m *UpstreamHealthManager) Update(upstream string, success bool) error {
	ctx := context.Background()
	key := fmt.Sprintf("payout_upstream:success_rate:%s", upstream)

	currentRate, err := m.Redis.Get(ctx, key).Float64()
	if err != nil {
		currentRate = 100.0
	}

	newRate := m.Strategy.Update(currentRate, success)
	if newRate < m.Threshold {
		// 熔断标记
		_ = m.Redis.Set(ctx, m.disabledKey(upstream), 1, m.TTL).Err()
	}

	// 更新成功率缓存
	return m.Redis.Set(ctx, key, newRate, m.TTL).Err()
}

func (m *UpstreamHealthManager) IsDisabled(upstream string) bool {
	ctx := context.Background()
	val, err := m.Redis.Get(ctx, m.disabledKey(upstream)).Int()
	return err == nil && val == 1
}

func (m *UpstreamHealthManager) disabledKey(upstream string) string {
	return fmt.Sprintf("payout_upstream:disabled:%s", upstream)
}
