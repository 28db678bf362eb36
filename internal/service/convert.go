package service

import (
	"strconv"

	"aff-payout-api/internal/dto"
	"aff-payout-api/internal/engine"
	"aff-payout-api/internal/utils"
)

func RecordVO(rec *engine.PayoutRecord) *dto.PayoutRecordVO {
	if rec == nil {
		return nil
	}
	vo := &dto.PayoutRecordVO{
		RecordId:    strconv.FormatUint(rec.RecordID, 10),
		MerchantId:  rec.MerchantID,
		AffiliateId: rec.AffiliateID,
		Total:       utils.FormatMinorUnits(rec.Total, dto.AmountExponent),
		Height:      rec.Height,
	}
	for _, d := range rec.Disbursements {
		vo.Disbursements = append(vo.Disbursements, dto.DisbursementVO{
			RecipientId: d.RecipientID,
			Amount:      utils.FormatMinorUnits(d.Amount, dto.AmountExponent),
		})
	}
	return vo
}

func AccrualVO(res *engine.AccrualResult) *dto.AccrualResp {
	out := &dto.AccrualResp{Settled: RecordVO(res.Settled)}
	for _, p := range res.Portions {
		out.Portions = append(out.Portions, dto.PortionVO{
			RecipientId: p.RecipientID,
			Amount:      utils.FormatMinorUnits(p.Amount, dto.AmountExponent),
		})
	}
	return out
}

func RunVO(res *engine.RunResult) *dto.RunResultVO {
	vo := &dto.RunResultVO{
		Scanned: res.Scanned,
		Settled: res.Settled,
		Skipped: res.Skipped,
		Failed:  res.Failed,
	}
	for _, cad := range res.Fired {
		vo.Fired = append(vo.Fired, cad.String())
	}
	for _, id := range res.RecordIDs {
		vo.RecordIds = append(vo.RecordIds, strconv.FormatUint(id, 10))
	}
	return vo
}

func BalanceVO(b *engine.PendingBalance) *dto.PendingBalanceVO {
	if b == nil {
		return nil
	}
	return &dto.PendingBalanceVO{
		RecipientId: b.RecipientID,
		MerchantId:  b.MerchantID,
		AffiliateId: b.AffiliateID,
		Amount:      utils.FormatMinorUnits(b.Amount, dto.AmountExponent),
		LastUpdated: b.LastUpdated,
	}
}
