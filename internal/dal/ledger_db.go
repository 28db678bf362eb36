package dal

import (
	"fmt"
	"log"
	"time"

	"aff-payout-api/internal/config"

	"gorm.io/driver/mysql"
	"gorm.io/gorm"
)

var LedgerDB *gorm.DB

// InitLedgerDB 资金库：待结算余额 + 结算历史分表
func InitLedgerDB() {
	c := config.C.MysqlLedg
	dsn := fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?charset=%s&parseTime=True&loc=Local",
		c.Username, c.Password, c.Host, c.Port, c.Database, c.Charset)
	db, err := gorm.Open(mysql.Open(dsn), &gorm.Config{})
	if err != nil {
		log.Fatalf("connect ledger db failed: %v", err)
	}
	sqlDB, _ := db.DB()
	sqlDB.SetMaxIdleConns(c.MaxIdleConns)
	sqlDB.SetMaxOpenConns(c.MaxOpenConns)
	sqlDB.SetConnMaxLifetime(2 * time.Hour)
	LedgerDB = db
}
