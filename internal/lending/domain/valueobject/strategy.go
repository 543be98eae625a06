package valueobject

import "fmt"

// ---------------------------------------------------------------------------
// Strategy – immutable value object
// ---------------------------------------------------------------------------

// Strategy identifies a debt repayment ordering rule.
type Strategy struct {
	value string
}

const (
	strategyAvalanche = "avalanche"
	strategySnowball  = "snowball"
)

var (
	// StrategyAvalanche pays the highest-interest-rate loan first.
	StrategyAvalanche = Strategy{value: strategyAvalanche}
	// StrategySnowball pays the lowest-balance loan first.
	StrategySnowball = Strategy{value: strategySnowball}
)

var validStrategies = map[string]Strategy{
	strategyAvalanche: StrategyAvalanche,
	strategySnowball:  StrategySnowball,
}

// NewStrategy creates a Strategy from a raw string.
func NewStrategy(s string) (Strategy, error) {
	v, ok := validStrategies[s]
	if !ok {
		return Strategy{}, fmt.Errorf("invalid repayment strategy: %q", s)
	}
	return v, nil
}

// String returns the string representation of the strategy.
func (s Strategy) String() string { return s.value }

// IsZero returns true if the strategy has not been initialised.
func (s Strategy) IsZero() bool { return s.value == "" }

// Equal returns true when both strategies carry the same value.
func (s Strategy) Equal(other Strategy) bool { return s.value == other.value }
