package units

import (
	"math"
	"strconv"
)

// Quantity is a numeric value tagged with a Unit.
type Quantity struct {
	Value float64
	Unit  Unit
}

// New returns value tagged with unit.
func New(value float64, unit Unit) Quantity {
	return Quantity{Value: value, Unit: unit}
}

// Add returns q + o.
//
// Linear quantities must share dimensions; o is converted into q's unit.
// Adding two magnitudes multiplies their physical references:
// mag(A) + mag(B) = mag(A B).
func (q Quantity) Add(o Quantity) (Quantity, error) {
	switch {
	case q.Unit.log && o.Unit.log:
		u := Unit{
			name:  mulName(q.Unit.name, o.Unit.name),
			dims:  q.Unit.dims.add(o.Unit.dims),
			scale: q.Unit.factor() * o.Unit.factor(),
			log:   true,
		}
		return Quantity{Value: q.Value + o.Value, Unit: u}, nil
	case !q.Unit.log && !o.Unit.log:
		if q.Unit.dims != o.Unit.dims {
			return Quantity{}, incompatible("add", q.Unit, o.Unit)
		}
		return Quantity{Value: q.Value + o.Value*(o.Unit.factor()/q.Unit.factor()), Unit: q.Unit}, nil
	}
	return Quantity{}, incompatible("add", q.Unit, o.Unit)
}

// Sub returns q - o.
//
// Linear quantities must share dimensions; o is converted into q's unit.
// Subtracting two magnitudes is a flux ratio: mag(A) - mag(B) = mag(A / B).
func (q Quantity) Sub(o Quantity) (Quantity, error) {
	switch {
	case q.Unit.log && o.Unit.log:
		u := Unit{
			name:  divName(q.Unit.name, o.Unit.name),
			dims:  q.Unit.dims.sub(o.Unit.dims),
			scale: q.Unit.factor() / o.Unit.factor(),
			log:   true,
		}
		return Quantity{Value: q.Value - o.Value, Unit: u}, nil
	case !q.Unit.log && !o.Unit.log:
		if q.Unit.dims != o.Unit.dims {
			return Quantity{}, incompatible("subtract", q.Unit, o.Unit)
		}
		return Quantity{Value: q.Value - o.Value*(o.Unit.factor()/q.Unit.factor()), Unit: q.Unit}, nil
	}
	return Quantity{}, incompatible("subtract", q.Unit, o.Unit)
}

// Mul returns q * o. Both quantities must be linear.
func (q Quantity) Mul(o Quantity) (Quantity, error) {
	if q.Unit.log || o.Unit.log {
		return Quantity{}, incompatible("multiply", q.Unit, o.Unit)
	}
	return Quantity{Value: q.Value * o.Value, Unit: q.Unit.Mul(o.Unit)}, nil
}

// Div returns q / o. Both quantities must be linear.
func (q Quantity) Div(o Quantity) (Quantity, error) {
	if q.Unit.log || o.Unit.log {
		return Quantity{}, incompatible("divide", q.Unit, o.Unit)
	}
	return Quantity{Value: q.Value / o.Value, Unit: q.Unit.Div(o.Unit)}, nil
}

// Scale multiplies the value by f and keeps the unit.
func (q Quantity) Scale(f float64) Quantity {
	return Quantity{Value: q.Value * f, Unit: q.Unit}
}

// Trunc truncates the value toward zero and keeps the unit.
func (q Quantity) Trunc() Quantity {
	return Quantity{Value: math.Trunc(q.Value), Unit: q.Unit}
}

// To converts q to target. Linear and logarithmic units convert into each
// other when their physical dimensions match:
//
//	mag(P) -> T: x = 10^(-0.4 m) * P / T
//	X -> mag(P): m = -2.5 log10(x * X / P), x > 0
func (q Quantity) To(target Unit) (Quantity, error) {
	if !q.Unit.Compatible(target) {
		return Quantity{}, incompatible("convert", q.Unit, target)
	}
	ratio := q.Unit.factor() / target.factor()

	var v float64
	switch {
	case !q.Unit.log && !target.log:
		v = q.Value * ratio
	case q.Unit.log && target.log:
		v = q.Value - 2.5*math.Log10(ratio)
	case q.Unit.log:
		v = math.Pow(10, -0.4*q.Value) * ratio
	default:
		x := q.Value * ratio
		if x <= 0 {
			return Quantity{}, &UnitError{Op: "convert", From: q.Unit, To: target, Err: ErrNonPositive}
		}
		v = -2.5 * math.Log10(x)
	}
	return Quantity{Value: v, Unit: target}, nil
}

// Int64 returns the value truncated to an int64. NaN, infinite and
// out-of-range values yield a *UnitError wrapping ErrOutOfRange.
func (q Quantity) Int64() (int64, error) {
	v := math.Trunc(q.Value)
	// float64(math.MaxInt64) rounds up to 2^63, which is already out of range.
	if math.IsNaN(v) || v < math.MinInt64 || v >= math.MaxInt64 {
		return 0, &UnitError{Op: "int64", From: q.Unit, To: q.Unit, Err: ErrOutOfRange}
	}
	return int64(v), nil
}

// ValueIn returns the value of q expressed in target.
func (q Quantity) ValueIn(target Unit) (float64, error) {
	c, err := q.To(target)
	if err != nil {
		return 0, err
	}
	return c.Value, nil
}

// String formats the quantity as "<value> <unit>".
func (q Quantity) String() string {
	s := strconv.FormatFloat(q.Value, 'g', -1, 64)
	if u := q.Unit.String(); u != "" {
		s += " " + u
	}
	return s
}
