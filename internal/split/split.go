package split

import (
	"errors"
	"fmt"
)

// TotalShareBp 全部份额之和必须恰好等于 10000 基点
const TotalShareBp = 10000

// MaxRecipients 一笔佣金最多拆给 10 个收款人
const MaxRecipients = 10

var (
	ErrInvalidSplit      = errors.New("split shares must sum to exactly 10000 bp")
	ErrTooManyRecipients = errors.New("split recipient count exceeds limit")
	ErrNegativeShare     = errors.New("split share must be non-negative")
	ErrZeroRecipient     = errors.New("split recipient id must be non-zero")
)

// Recipient 一个收款人及其份额（基点）
type Recipient struct {
	RecipientID uint64 `json:"recipient_id"`
	ShareBp     int32  `json:"share_bp"`
}

// Validate 校验分佣配置：1-10 个收款人，份额之和恰好 10000 基点
// 空列表之和为 0，同样拒绝。写入时是唯一的校验关口，读取时不再复查。
func Validate(recipients []Recipient) error {
	if len(recipients) > MaxRecipients {
		return fmt.Errorf("%w: %d > %d", ErrTooManyRecipients, len(recipients), MaxRecipients)
	}
	var sum int64
	for _, r := range recipients {
		if r.RecipientID == 0 {
			return ErrZeroRecipient
		}
		if r.ShareBp < 0 {
			return ErrNegativeShare
		}
		sum += int64(r.ShareBp)
	}
	if sum != TotalShareBp {
		return fmt.Errorf("%w: got %d", ErrInvalidSplit, sum)
	}
	return nil
}

// Apply 把一笔佣金按份额拆开，逐人向下取整，余数不再分配
func Apply(recipients []Recipient, amount int64) []Portion {
	out := make([]Portion, 0, len(recipients))
	for _, r := range recipients {
		out = append(out, Portion{
			RecipientID: r.RecipientID,
			Amount:      amount * int64(r.ShareBp) / TotalShareBp,
		})
	}
	return out
}

// Portion 拆分结果
type Portion struct {
	RecipientID uint64
	Amount      int64
}
