package main

import (
	"log"

	"github.com/gin-gonic/gin"

	"aff-payout-api/internal/config"
	"aff-payout-api/internal/dal"
	"aff-payout-api/internal/handler"
	"aff-payout-api/internal/idgen"
	"aff-payout-api/internal/logger"
	"aff-payout-api/internal/middleware"
	"aff-payout-api/internal/mq"
	"aff-payout-api/internal/service"
	"aff-payout-api/internal/shard"
	"aff-payout-api/internal/system"
)

func main() {
	// load config env
	config.Init()

	// init infra
	dal.InitMainDB()
	dal.InitLedgerDB()
	dal.InitRedis()
	dal.InitRabbitMQ()

	// idgen
	idgen.Init(1)

	// 请求留痕日志
	logger.InitLogger()

	// 分表引擎与系统参数
	shard.InitShardEngines()
	system.Config()

	// 结算引擎
	service.Init()

	// start consumers
	go mq.StartConsumers(service.Eng)

	// http server
	if config.C.Server.Mode != "debug" {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()
	r.Use(middleware.Recover())
	r.Use(logger.RequestAudit())

	v1 := r.Group("/api/v1")
	{
		ch := handler.NewCommissionHandler()
		ph := handler.NewPayoutHandler()

		v1.POST("/commissions", middleware.AuthHMAC(), ch.Record)
		v1.POST("/payouts/recipient", middleware.AuthHMAC(), ph.Recipient)
		// 调度发放不设权限门槛，外部调度器可直接驱动；并发由 redis 锁串行化
		v1.POST("/payouts/run", ph.Run)
		v1.GET("/payouts/due", ph.Due)
		v1.GET("/records/:id", ph.GetRecord)
		v1.GET("/merchants/:id/records", ph.ListRecords)
		v1.GET("/affiliates/:id/records", ph.ListAffiliateRecords)
		v1.GET("/recipients/:id/records", ph.ListRecipientRecords)
		v1.GET("/balances/:id", ph.GetBalance)
	}

	admin := r.Group("/api/v1/admin", middleware.AdminAuth())
	{
		ah := handler.NewAdminHandler()
		ph := handler.NewPayoutHandler()

		admin.POST("/payouts/batch", ph.Batch)
		admin.POST("/schedule/init", ph.InitSchedule)
		admin.POST("/merchants", ah.SetMerchantConfig)
		admin.GET("/merchants/:id", ah.GetMerchantConfig)
		admin.POST("/splits", ah.SetSplit)
		admin.GET("/merchants/:id/splits/:affiliateId", ah.GetSplit)
		admin.POST("/threshold", ah.SetThreshold)
		admin.POST("/admins", ah.SetAdmin)
	}

	addr := ":" + config.C.Server.Port
	log.Printf("listening %s", addr)
	if err := r.Run(addr); err != nil {
		log.Fatal(err)
	}
}
