package health

// 衰减策略 出款失败一次成功率衰减 5%，成功不回升
// 适合对连续失败敏感、靠 TTL 过期自愈的场景
type DecayStrategy struct {
	Factor float64 // e.g. 0.95
}

func (d *DecayStrategy) Update(current float64, success bool) float64 {
	if success {
		return current
	}
	updated := current * d.Factor
	if updated < 0 {
		return 0
	}
	return updated
}
