package engine

import (
	"context"
	"log"
)

// settleTransfer 清结一个收款人的全部待结算余额
//
// 采用"先清零、后转账、失败恢复"（attempt-then-restore）：
//  1. 原子读出余额并清零（授权转账金额的同一步）
//  2. 调用 Executor 转账
//  3. 转账失败则把同等金额原数入回，再返回 ErrTransferFailed
//
// 先验证后清零的另一种做法会在"转账成功但清零失败"时重复打款，
// 这里宁可承担恢复步骤本身失败时的短暂差异，也不冒重复打款的险。
// 返回实际转出的金额。
func (e *Engine) settleTransfer(ctx context.Context, recipientID uint64, threshold, height int64) (int64, error) {
	pb, err := e.store.GetPending(recipientID)
	if err != nil {
		return 0, err
	}
	if pb == nil || pb.Amount == 0 {
		return 0, ErrNoPendingPayout
	}
	if pb.Amount < threshold {
		return 0, ErrThresholdNotMet
	}

	cleared, err := e.store.ClearPending(recipientID)
	if err != nil {
		return 0, err
	}

	if err := e.exec.ExecuteTransfer(ctx, recipientID, cleared.Amount); err != nil {
		log.Printf("[TRANSFER] 转账失败，恢复余额: recipient=%d amount=%d err=%v", recipientID, cleared.Amount, err)
		if _, rerr := e.store.Accrue(recipientID, cleared.MerchantID, cleared.AffiliateID, cleared.Amount, height); rerr != nil {
			// 恢复失败是最坏情况：记录完整上下文供人工对账
			log.Printf("[TRANSFER] ❌ 余额恢复失败: recipient=%d amount=%d err=%v", recipientID, cleared.Amount, rerr)
		}
		return 0, ErrTransferFailed
	}

	log.Printf("[TRANSFER] 转账成功: recipient=%d amount=%d", recipientID, cleared.Amount)
	return cleared.Amount, nil
}

// recordHistory 落一条结算历史并广播事件
// 落档失败不回滚已完成的转账，按降级审计处理：告警 + 日志，照样返回记录。
func (e *Engine) recordHistory(merchantID, affiliateID uint64, disbursed []Disbursement, height int64) *PayoutRecord {
	var total int64
	for _, d := range disbursed {
		total += d.Amount
	}
	rec := &PayoutRecord{
		RecordID:      e.newRecordID(),
		MerchantID:    merchantID,
		AffiliateID:   affiliateID,
		Disbursements: disbursed,
		Total:         total,
		Height:        height,
	}
	if err := e.store.AppendRecord(rec); err != nil {
		log.Printf("[HISTORY] ❌ 结算历史落档失败(降级审计): record=%d err=%v", rec.RecordID, err)
		if e.audit != nil {
			e.audit.NotifyAuditDegraded(rec, err)
		}
	}
	if e.pub != nil {
		e.pub.PublishPayoutSettled(rec)
	}
	return rec
}
