package mainmodel

// SysConfig 系统参数表
type SysConfig struct {
	ConfigId    int64  `gorm:"column:config_id;primaryKey;autoIncrement" json:"configId"`
	ConfigKey   string `gorm:"column:config_key;size:100;not null" json:"configKey"`
	ConfigValue string `gorm:"column:config_value;size:500" json:"configValue"`
}

func (SysConfig) TableName() string { return "w_sys_config" }
