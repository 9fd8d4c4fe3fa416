package ledger

import (
	"fmt"
	"math"

	sdkmath "cosmossdk.io/math"
)

// IndexScale is the fixed-point scale applied to reward-per-staked-unit
// indices. Amounts are plain integers; indices carry IndexScale extra
// precision so that per-unit rewards survive integer division.
const IndexScale = 1_000_000_000_000 // 10^12

var indexScale = sdkmath.NewInt(IndexScale)

// Index is a monotonically increasing reward-per-staked-unit accumulator.
// The zero value is a valid zero index.
type Index struct {
	v sdkmath.Int
}

func ZeroIndex() Index {
	return Index{v: sdkmath.ZeroInt()}
}

// ParseIndex restores an index from its decimal string form.
func ParseIndex(s string) (Index, error) {
	v, ok := sdkmath.NewIntFromString(s)
	if !ok {
		return Index{}, fmt.Errorf("invalid index value %q", s)
	}
	if v.IsNegative() {
		return Index{}, fmt.Errorf("negative index value %q", s)
	}
	return Index{v: v}, nil
}

func (i Index) value() sdkmath.Int {
	if i.v.IsNil() {
		return sdkmath.ZeroInt()
	}
	return i.v
}

func (i Index) String() string {
	return i.value().String()
}

func (i Index) IsZero() bool {
	return i.value().IsZero()
}

func (i Index) Equal(o Index) bool {
	return i.value().Equal(o.value())
}

func (i Index) LT(o Index) bool {
	return i.value().LT(o.value())
}

// Add returns i + o. Indices only ever grow; there is no public subtraction
// besides Delta.
func (i Index) Add(o Index) Index {
	return Index{v: i.value().Add(o.value())}
}

// Delta returns i - checkpoint. A checkpoint ahead of the index means the
// two values belong to different histories and is reported as overflow.
func (i Index) Delta(checkpoint Index) (Index, error) {
	if i.value().LT(checkpoint.value()) {
		return Index{}, fmt.Errorf("index checkpoint ahead of index: %w", ErrArithmeticOverflow)
	}
	return Index{v: i.value().Sub(checkpoint.value())}, nil
}

// AccrueIndex converts a yield amount into an index increment:
// yield * IndexScale / totalStaked. Callers must guard with
// "no stake, no accrual"; a zero denominator is an error here.
func AccrueIndex(yield, totalStaked uint64) (Index, error) {
	if totalStaked == 0 {
		return Index{}, fmt.Errorf("accrue with zero total staked: %w", ErrDivisionByZero)
	}
	inc := sdkmath.NewIntFromUint64(yield).
		Mul(indexScale).
		Quo(sdkmath.NewIntFromUint64(totalStaked))
	return Index{v: inc}, nil
}

// Owed returns the reward owed to a stake of the given size over an index
// delta: amount * delta / IndexScale. Results beyond the uint64 range are
// a fatal accounting error, never wrapped.
func Owed(amount uint64, delta Index) (uint64, error) {
	owed := sdkmath.NewIntFromUint64(amount).
		Mul(delta.value()).
		Quo(indexScale)
	if !owed.IsUint64() {
		return 0, fmt.Errorf("owed amount exceeds uint64: %w", ErrArithmeticOverflow)
	}
	return owed.Uint64(), nil
}

// mulDiv computes a * b / den with an arbitrary-precision intermediate.
func mulDiv(a, b, den uint64) (uint64, error) {
	if den == 0 {
		return 0, ErrDivisionByZero
	}
	r := sdkmath.NewIntFromUint64(a).
		Mul(sdkmath.NewIntFromUint64(b)).
		Quo(sdkmath.NewIntFromUint64(den))
	if !r.IsUint64() {
		return 0, ErrArithmeticOverflow
	}
	return r.Uint64(), nil
}

func addUint64(a, b uint64) (uint64, error) {
	if a > math.MaxUint64-b {
		return 0, ErrArithmeticOverflow
	}
	return a + b, nil
}

func subUint64(a, b uint64) (uint64, error) {
	if b > a {
		return 0, ErrArithmeticOverflow
	}
	return a - b, nil
}
