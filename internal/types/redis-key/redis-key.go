package rediskey

import "aff-payout-api/internal/config"

// 配置表数据 redis key
func SysConfigKey() string {
	return config.C.Project.Name + ":system:config"
}

// 调度执行锁 redis key
func PayoutRunLockKey() string {
	return config.C.Project.Name + ":payout:run-lock"
}
