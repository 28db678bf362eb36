package config

import (
	"flag"
	"log"
	"strings"
	"time"

	"github.com/spf13/viper"
)

type ServerCfg struct {
	Port string `mapstructure:"port"`
	Mode string `mapstructure:"mode"`
}
type ProjectCfg struct {
	Name string `mapstructure:"name"`
}
type MysqlCfg struct {
	Host         string `mapstructure:"host"`
	Port         int    `mapstructure:"port"`
	Database     string `mapstructure:"database"`
	Username     string `mapstructure:"username"`
	Password     string `mapstructure:"password"`
	Charset      string `mapstructure:"charset"`
	MaxIdleConns int    `mapstructure:"maxIdleConns"`
	MaxOpenConns int    `mapstructure:"maxOpenConns"`
}
type RabbitCfg struct {
	URL string `mapstructure:"url"`
}
type RedisCfg struct {
	Addr     string `mapstructure:"addr"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}
type SecurityCfg struct {
	HMACSecret     string `mapstructure:"hmacSecret"`
	AdminToken     string `mapstructure:"adminToken"`
	BootstrapAdmin uint64 `mapstructure:"bootstrapAdmin"`
}

// PayoutCfg 结算调度配置
// 周期长度用钟表时长表示，对应源环境固定出块速率下的每日 144 块
type PayoutCfg struct {
	DailyPeriod    time.Duration `mapstructure:"dailyPeriod"`
	WeeklyPeriod   time.Duration `mapstructure:"weeklyPeriod"`
	MonthlyPeriod  time.Duration `mapstructure:"monthlyPeriod"`
	DueScanLimit   int           `mapstructure:"dueScanLimit"`   // 单次调度最多处理人数
	BatchLimit     int           `mapstructure:"batchLimit"`     // 管理员批量结算单次上限
	RecordShards   uint32        `mapstructure:"recordShards"`   // 结算历史分表数
	RunLockTTLSec  int           `mapstructure:"runLockTTLSec"`  // 调度执行锁 TTL
	HealthDisable  float64       `mapstructure:"healthDisable"`  // 出款上游熔断阈值
	HealthTTLMin   int           `mapstructure:"healthTTLMin"`   // 健康状态缓存 TTL（分钟）
	HealthStrategy string        `mapstructure:"healthStrategy"` // ewma|sliding|decay
}

type UpstreamCfg struct {
	DisburseApiUrl string        `mapstructure:"disburseApiUrl"`
	Timeout        time.Duration `mapstructure:"timeout"`
	RetryTimes     int           `mapstructure:"retryTimes"`
	RetryInterval  time.Duration `mapstructure:"retryInterval"`
}

type Root struct {
	Server    ServerCfg   `mapstructure:"server"`
	Project   ProjectCfg  `mapstructure:"project"`
	MysqlMain MysqlCfg    `mapstructure:"mysql_main"`
	MysqlLedg MysqlCfg    `mapstructure:"mysql_ledger"`
	RabbitMQ  RabbitCfg   `mapstructure:"rabbitmq"`
	Redis     RedisCfg    `mapstructure:"redis"`
	Security  SecurityCfg `mapstructure:"security"`
	Payout    PayoutCfg   `mapstructure:"payout"`
	Upstream  UpstreamCfg `mapstructure:"upstream"`
}

var C Root

func Init() {
	env := flag.String("env", "dev", "config env: dev|prod")
	flag.Parse()

	v := viper.New()
	v.SetConfigFile("config/config." + *env + ".yaml")
	if err := v.ReadInConfig(); err != nil {
		log.Fatalf("read config file failed: %v", err)
	}
	if err := v.Unmarshal(&C); err != nil {
		log.Fatalf("unmarshal config failed: %v", err)
	}

	// sane defaults
	if strings.TrimSpace(C.Server.Port) == "" {
		C.Server.Port = "8080"
	}
	if strings.TrimSpace(C.Project.Name) == "" {
		C.Project.Name = "aff-payout"
	}
	ApplyPayoutDefaults(&C.Payout)
	if C.Upstream.Timeout <= 0 {
		C.Upstream.Timeout = 10 * time.Second
	}
	if C.Upstream.RetryTimes <= 0 {
		C.Upstream.RetryTimes = 3
	}
	if C.Upstream.RetryInterval <= 0 {
		C.Upstream.RetryInterval = 2 * time.Second
	}
}

// ApplyPayoutDefaults 填充调度默认值（测试也会直接用）
func ApplyPayoutDefaults(p *PayoutCfg) {
	if p.DailyPeriod <= 0 {
		p.DailyPeriod = 24 * time.Hour
	}
	if p.WeeklyPeriod <= 0 {
		p.WeeklyPeriod = 7 * p.DailyPeriod
	}
	if p.MonthlyPeriod <= 0 {
		p.MonthlyPeriod = 30 * p.DailyPeriod
	}
	if p.DueScanLimit <= 0 {
		p.DueScanLimit = 100
	}
	if p.BatchLimit <= 0 {
		p.BatchLimit = 20
	}
	if p.RecordShards == 0 {
		p.RecordShards = 4
	}
	if p.RunLockTTLSec <= 0 {
		p.RunLockTTLSec = 60
	}
	if p.HealthDisable <= 0 {
		p.HealthDisable = 60.0
	}
	if p.HealthTTLMin <= 0 {
		p.HealthTTLMin = 30
	}
	if strings.TrimSpace(p.HealthStrategy) == "" {
		p.HealthStrategy = "ewma"
	}
}
