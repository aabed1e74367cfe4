package swap

// PriceOracle answers whether the price condition of a limit order is met.
// Injected into the engine so real pricing logic can be substituted
// without touching order execution.
type PriceOracle interface {
	PriceConditionMet(price float64) bool
}

// ThresholdOracle is the stub oracle: the condition is met while the limit
// price stays at or below MaxPrice.
type ThresholdOracle struct {
	MaxPrice float64
}

func (o ThresholdOracle) PriceConditionMet(price float64) bool {
	return price <= o.MaxPrice
}

// DefaultOracle mirrors the service's historical placeholder threshold.
func DefaultOracle() ThresholdOracle {
	return ThresholdOracle{MaxPrice: 1.2}
}
