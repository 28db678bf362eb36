package utils

import (
	"encoding/json"
	"strings"
)

// StringOrNumber 兼容 string 或 number 的 JSON 字段
// 出款上游回包里的 code、status 两种类型都出现过
type StringOrNumber string

// UnmarshalJSON 支持自动兼容 string 或 number
func (s *StringOrNumber) UnmarshalJSON(b []byte) error {
	if len(b) == 0 {
		*s = ""
		return nil
	}

	// 判断首字符是否为引号 => 说明是字符串
	if b[0] == '"' {
		var str string
		if err := json.Unmarshal(b, &str); err != nil {
			return err
		}
		*s = StringOrNumber(str)
		return nil
	}

	// 否则为数字 => 直接转成字符串
	*s = StringOrNumber(strings.TrimSpace(string(b)))
	return nil
}
