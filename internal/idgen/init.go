package idgen

import (
	"log"
)

// Init 初始化默认节点（nodeID 支持多实例部署，范围 0-1023）
func Init(nodeID int64) {
	if nodeID < 0 || nodeID > 1023 {
		log.Fatalf("[IDGen] invalid node id: %d", nodeID)
	}
	if err := InitNode("default", nodeID); err != nil {
		log.Fatalf("[IDGen] InitNode failed: %v", err)
	}
	log.Printf("[IDGen] Snowflake node initialized: nodeID=%d", nodeID)
}
