package dto

// 金额精度：接口与 MQ 上的金额一律用十进制字符串，内部用最小货币单位（分）
const AmountExponent = 2
