package shard

import "aff-payout-api/internal/config"

var (
	RecordShard *ShardEngine
)

// InitShardEngines 初始化分片引擎
func InitShardEngines() {
	RecordShard = NewShardEngine("w_payout_record", config.C.Payout.RecordShards)
}
