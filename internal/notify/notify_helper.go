package notify

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"aff-payout-api/internal/system"
)

// NotifyTransferAlert 出款异常报警
func NotifyTransferAlert(level, title string, recipientID uint64, amount int64, extra map[string]string) {
	var sb strings.Builder
	sb.WriteString(fmt.Sprintf("*[%s] %s*\n", strings.ToUpper(level), escapeMarkdown(title)))
	sb.WriteString(fmt.Sprintf("*时间:* %s\n", time.Now().Format("2006-01-02 15:04:05")))
	sb.WriteString(fmt.Sprintf("收款人: %d\n", recipientID))
	sb.WriteString(fmt.Sprintf("金额(最小单位): %d\n", amount))
	for k, v := range extra {
		if v != "" {
			sb.WriteString(fmt.Sprintf("%s: %s\n", escapeMarkdown(k), escapeMarkdown(v)))
		}
	}
	send(sb.String())
}

// NotifyAuditDegraded 结算历史落档失败（降级审计）报警
// record 任意可序列化结构，原样附在消息里供人工补档
func NotifyAuditDegraded(record interface{}, cause error) {
	b, _ := json.Marshal(record)
	var sb strings.Builder
	sb.WriteString("*[ERROR] 结算历史落档失败*\n")
	sb.WriteString(fmt.Sprintf("*时间:* %s\n", time.Now().Format("2006-01-02 15:04:05")))
	if cause != nil {
		sb.WriteString(fmt.Sprintf("原因: %s\n", escapeMarkdown(cause.Error())))
	}
	sb.WriteString("*记录:*\n")
	sb.WriteString(fmt.Sprintf("`%s`\n", escapeMarkdown(string(b))))
	send(sb.String())
}

func send(content string) {
	chatID := system.BotChatID
	if chatID == "" {
		return
	}
	NotifySendMsgToTG(chatID, content)
}

func escapeMarkdown(s string) string {
	replacer := strings.NewReplacer(
		"_", "\\_",
		"*", "\\*",
		"[", "\\[",
		"`", "\\`",
	)
	return replacer.Replace(s)
}
