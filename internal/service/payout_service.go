package service

import (
	"context"
	"log"
	"time"

	"aff-payout-api/internal/config"
	"aff-payout-api/internal/constant"
	"aff-payout-api/internal/dal"
	"aff-payout-api/internal/engine"
	"aff-payout-api/internal/schedule"
	rediskey "aff-payout-api/internal/types/redis-key"
)

// RunDuePayouts 调度发放入口：redis 锁防止并发推进调度钟
func RunDuePayouts(ctx context.Context, cadences []string) (*engine.RunResult, error) {
	parsed := make([]schedule.Cadence, 0, len(cadences))
	for _, s := range cadences {
		cad, err := schedule.ParseCadence(s)
		if err != nil {
			return nil, constant.NewError(constant.CodeInvalidPayoutSchedule)
		}
		parsed = append(parsed, cad)
	}

	lockKey := rediskey.PayoutRunLockKey()
	ttl := time.Duration(config.C.Payout.RunLockTTLSec) * time.Second
	ok, err := dal.RedisClient.SetNX(ctx, lockKey, 1, ttl).Result()
	if err != nil {
		log.Printf("[PAYOUT] ❌ 获取调度锁失败: %v", err)
		return nil, err
	}
	if !ok {
		return nil, constant.NewError(constant.CodePayoutRunning)
	}
	defer dal.RedisClient.Del(context.Background(), lockKey)

	res, err := Eng.ProcessDuePayouts(ctx, parsed...)
	if err != nil {
		return nil, err
	}
	log.Printf("[PAYOUT] 调度完成: fired=%v scanned=%d settled=%d skipped=%d failed=%d",
		res.Fired, res.Scanned, res.Settled, res.Skipped, res.Failed)
	return res, nil
}
