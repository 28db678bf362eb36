package shard

import (
	"fmt"
	"log"
	"time"
)

// ShardEngine 分表路由器
// 结算历史只增不改，按月份 + 记录号散列分表
type ShardEngine struct {
	BaseTable  string
	ShardCount uint32
	Strategy   ShardStrategy
}

// NewShardEngine 创建分片引擎
func NewShardEngine(base string, count uint32) *ShardEngine {
	return &ShardEngine{
		BaseTable:  base,
		ShardCount: count,
		Strategy:   NewCRC32Strategy(count),
	}
}

// GetTable 根据结算记录号和时间获取分表名
func (e *ShardEngine) GetTable(recordID uint64, t time.Time) string {
	if t.IsZero() || t.Year() < 2000 {
		log.Printf("[ShardEngine] 非法时间: %v，使用当前时间", t)
		t = time.Now()
	}
	month := t.Format("200601")
	shard := e.Strategy.GetShard(recordID)
	return fmt.Sprintf("%s_%s_p%d", e.BaseTable, month, shard)
}

// AllTables 当月所有分表，供跨分表查询
func (e *ShardEngine) AllTables(t time.Time) []string {
	month := t.Format("200601")
	out := make([]string, 0, e.ShardCount)
	for i := uint32(0); i < e.ShardCount; i++ {
		out = append(out, fmt.Sprintf("%s_%s_p%d", e.BaseTable, month, i))
	}
	return out
}
