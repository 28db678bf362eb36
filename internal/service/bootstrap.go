package service

import (
	"context"
	"log"
	"time"

	"aff-payout-api/internal/channel/health"
	"aff-payout-api/internal/config"
	"aff-payout-api/internal/dal"
	"aff-payout-api/internal/dao"
	"aff-payout-api/internal/engine"
	"aff-payout-api/internal/idgen"
	"aff-payout-api/internal/notify"
	"aff-payout-api/internal/schedule"
	"aff-payout-api/internal/transfer"
	"aff-payout-api/internal/utils"
)

// Eng 结算引擎单例，Init 之后可用
var Eng *engine.Engine

var store *dao.Store

func Init() {
	store = dao.NewStore()

	hm := &health.UpstreamHealthManager{
		Redis:     dal.RedisClient,
		Strategy:  health.NewStrategy(config.C.Payout.HealthStrategy),
		Threshold: config.C.Payout.HealthDisable,
		TTL:       time.Duration(config.C.Payout.HealthTTLMin) * time.Minute,
	}
	exec := transfer.NewUpstreamExecutor(hm)

	clock := schedule.NewClock(schedule.PeriodsFromConfig(config.C.Payout))

	Eng = engine.New(store, exec, clock, engine.Options{
		Publisher:    &settledPublisher{},
		AuditAlerter: &tgAuditAlerter{},
		NewRecordID:  idgen.New,
		DueScanLimit: config.C.Payout.DueScanLimit,
		BatchLimit:   config.C.Payout.BatchLimit,
	})

	seedBootstrapAdmin()

	// 启动时探一次出款上游，不可达只告警不拦启动
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := utils.CheckUpstreamHealth(ctx, config.C.Upstream.DisburseApiUrl); err != nil {
			log.Printf("[BOOT] ⚠️ 出款上游探测失败: %v", err)
		}
	}()
}

// 首个管理员来自配置，后续管理员由其通过接口任命
func seedBootstrapAdmin() {
	id := config.C.Security.BootstrapAdmin
	if id == 0 {
		return
	}
	ok, err := store.IsAdmin(id)
	if err != nil {
		log.Printf("[BOOT] 查询初始管理员失败: %v", err)
		return
	}
	if ok {
		return
	}
	if err := store.SetAdmin(id, true); err != nil {
		log.Printf("[BOOT] 写入初始管理员失败: %v", err)
		return
	}
	log.Printf("[BOOT] 初始管理员已就位: %d", id)
}

// tgAuditAlerter 历史落档失败走 Telegram 报警
type tgAuditAlerter struct{}

func (tgAuditAlerter) NotifyAuditDegraded(rec *engine.PayoutRecord, cause error) {
	notify.NotifyAuditDegraded(rec, cause)
}
