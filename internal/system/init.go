package system

import (
	"log"
)

var BotChatID string

func Config() {

	BotChatID = (&ConfigSystem{}).GetConfigCacheByConfigKey("sys.telegram.notify.group").ConfigValue

	log.Printf("Telegram, 结算异常报警群ID: %s", BotChatID)

}
