package utils

import (
	"errors"

	"github.com/shopspring/decimal"
)

// 对外金额一律十进制字符串，内部账本一律最小货币单位整数

var ErrBadAmount = errors.New("amount is not a valid decimal")

// ParseMinorUnits 把十进制金额串换算成最小单位整数（exponent 位小数）
// 精度超出 exponent 的输入按非法处理，不做静默舍入
func ParseMinorUnits(s string, exponent int32) (int64, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return 0, ErrBadAmount
	}
	shifted := d.Shift(exponent)
	if !shifted.IsInteger() {
		return 0, ErrBadAmount
	}
	return shifted.IntPart(), nil
}

// FormatMinorUnits 最小单位整数还原成十进制金额串
func FormatMinorUnits(v int64, exponent int32) string {
	return decimal.New(v, -exponent).StringFixed(exponent)
}
