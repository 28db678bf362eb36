package health

type SuccessRateStrategy interface {
	Update(current float64, success bool) float64
}

// NewStrategy 按配置名选择策略
func NewStrategy(name string) SuccessRateStrategy {
	switch name {
	case "sliding":
		return &SlidingStrategy{StepUp: 2, StepDown: 10}
	case "decay":
		return &DecayStrategy{Factor: 0.95}
	default:
		return &EWMAStrategy{Alpha: 0.1}
	}
}
