package instrument

import (
	"fmt"
	"math"
)

// Kind 期权类型。
type Kind int

const (
	Call Kind = iota
	Put
)

func (k Kind) String() string {
	if k == Call {
		return "C"
	}
	return "P"
}

// Option 期权合约的不可变快照。每个模拟步由外部驱动替换为剩余步数少一的新快照。
type Option struct {
	ID               int
	Kind             Kind
	StepsUntilExpiry int
	Strike           int
	UnderlyingID     int
	UnderlyingName   string
}

// NewOption 构造并校验期权快照。
func NewOption(id int, kind Kind, stepsUntilExpiry, strike, underlyingID int, underlyingName string) (Option, error) {
	if stepsUntilExpiry < 0 {
		return Option{}, fmt.Errorf("option %d: steps until expiry must be non-negative", id)
	}
	return Option{
		ID:               id,
		Kind:             kind,
		StepsUntilExpiry: stepsUntilExpiry,
		Strike:           strike,
		UnderlyingID:     underlyingID,
		UnderlyingName:   underlyingName,
	}, nil
}

// OptionFromUnderlying 基于标的快照构造期权。
func OptionFromUnderlying(u Underlying, id int, kind Kind, stepsUntilExpiry, strike int) (Option, error) {
	return NewOption(id, kind, stepsUntilExpiry, strike, u.ID, u.Name)
}

func (o Option) String() string {
	return fmt.Sprintf("%d (%ds %s %d%s)", o.ID, o.StepsUntilExpiry, o.UnderlyingName, o.Strike, o.Kind)
}

// AdvanceStep 返回剩余步数减一的新快照；已到期则原样返回。
func (o Option) AdvanceStep() Option {
	if o.StepsUntilExpiry == 0 {
		return o
	}
	next := o
	next.StepsUntilExpiry--
	return next
}

// ContractMatches 合约条款是否一致（忽略 ID）。
func (o Option) ContractMatches(other Option) bool {
	other.ID = o.ID
	return o == other
}

// Intrinsic 给定标的估值的内在价值。
func (o Option) Intrinsic(spot float64) float64 {
	if o.Kind == Call {
		return math.Max(spot-float64(o.Strike), 0)
	}
	return math.Max(float64(o.Strike)-spot, 0)
}
