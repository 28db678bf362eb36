package transfer

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"strconv"

	"aff-payout-api/internal/channel/health"
	"aff-payout-api/internal/config"
	"aff-payout-api/internal/notify"
	"aff-payout-api/internal/utils"
)

// 出款上游编码，健康状态按它归档
const upstreamName = "disburse"

var (
	ErrUpstreamDisabled = errors.New("disburse upstream disabled by health manager")
	ErrUpstreamRejected = errors.New("disburse upstream rejected transfer")
)

// UpstreamExecutor 调出款上游完成真实转账
// 这是系统里唯一移动资金的地方：超时有界、带重试、失败一定报错不挂起
type UpstreamExecutor struct {
	Health   *health.UpstreamHealthManager
	Exponent int32 // 金额换算小数位
}

func NewUpstreamExecutor(h *health.UpstreamHealthManager) *UpstreamExecutor {
	return &UpstreamExecutor{Health: h, Exponent: 2}
}

// ExecuteTransfer 给收款人转 amount（最小货币单位）
// 同一次调用成功只报告一次；失败由调用方恢复余额
func (u *UpstreamExecutor) ExecuteTransfer(ctx context.Context, recipientID uint64, amount int64) error {
	if u.Health != nil && u.Health.IsDisabled(upstreamName) {
		log.Printf("[TRANSFER] 上游已熔断，拒绝出款: recipient=%d", recipientID)
		return ErrUpstreamDisabled
	}

	ctxTimeout, cancel := context.WithTimeout(ctx, config.C.Upstream.Timeout)
	defer cancel()

	params := map[string]string{
		"recipientId": strconv.FormatUint(recipientID, 10),
		"amount":      utils.FormatMinorUnits(amount, u.Exponent),
	}
	params["sign"] = utils.GenerateSign(params, config.C.Security.HMACSecret)

	apiUrl := config.C.Upstream.DisburseApiUrl
	log.Printf("[TRANSFER] 请求出款: url=%s recipient=%d amount=%d", apiUrl, recipientID, amount)

	var resp string
	err := utils.DoWithRetry(ctxTimeout, config.C.Upstream.RetryTimes, config.C.Upstream.RetryInterval, func() error {
		r, err := utils.HttpPostJsonWithContext(ctxTimeout, apiUrl, params)
		if err != nil {
			return err
		}
		resp = r
		return nil
	})
	if err != nil {
		u.markResult(false)
		log.Printf("[TRANSFER] 出款请求失败(重试后仍失败): %v", err)
		notify.NotifyTransferAlert("error", "出款上游请求失败", recipientID, amount, map[string]string{
			"错误":   err.Error(),
			"重试次数": strconv.Itoa(config.C.Upstream.RetryTimes),
		})
		return fmt.Errorf("disburse request failed: %w", err)
	}

	// 上游响应里 code 可能是字符串也可能是数字
	var response struct {
		Code utils.StringOrNumber `json:"code"`
		Msg  utils.FlexibleMsg    `json:"msg"`
		Data struct {
			TradeNo utils.StringOrNumber `json:"trade_no"`
			Status  utils.StringOrNumber `json:"status"`
		} `json:"data"`
	}
	if respErr := json.Unmarshal([]byte(resp), &response); respErr != nil {
		u.markResult(false)
		log.Printf("[TRANSFER] 出款响应解析失败: %v, raw=%s", respErr, resp)
		return fmt.Errorf("disburse response invalid: %w", respErr)
	}
	if string(response.Code) != "0" {
		u.markResult(false)
		log.Printf("[TRANSFER] 出款被拒: code=%s msg=%s", response.Code, response.Msg.Text)
		notify.NotifyTransferAlert("warn", "出款上游拒绝转账", recipientID, amount, map[string]string{
			"上游Code": string(response.Code),
			"上游Msg":  response.Msg.Text,
		})
		return ErrUpstreamRejected
	}

	u.markResult(true)
	log.Printf("[TRANSFER] 出款成功: recipient=%d amount=%d tradeNo=%s", recipientID, amount, response.Data.TradeNo)
	return nil
}

func (u *UpstreamExecutor) markResult(success bool) {
	if u.Health == nil {
		return
	}
	if err := u.Health.Update(upstreamName, success); err != nil {
		log.Printf("[TRANSFER] 健康状态更新失败: %v", err)
	}
}
