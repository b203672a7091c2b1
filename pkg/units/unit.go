package units

import (
	"math"
	"strconv"
	"strings"
)

// Base dimensions tracked by the algebra.
const (
	dimCount = iota
	dimTime
	dimAngle
	numDims
)

// dims holds the exponent of each base dimension.
type dims [numDims]int8

func (d dims) add(o dims) dims {
	for i := range d {
		d[i] += o[i]
	}
	return d
}

func (d dims) sub(o dims) dims {
	for i := range d {
		d[i] -= o[i]
	}
	return d
}

func (d dims) mul(n int8) dims {
	for i := range d {
		d[i] *= n
	}
	return d
}

// Unit is a physical unit: a dimension vector, a scale factor to the base
// units (ct, s, arcsec) and, for magnitudes, a logarithmic flag.
//
// For a logarithmic unit mag(P), dims/scale/name describe the physical
// reference P. The zero Unit is Dimensionless.
type Unit struct {
	name  string
	dims  dims
	scale float64
	log   bool
}

// Named units.
var (
	Dimensionless = Unit{scale: 1}

	Count = Unit{name: "ct", dims: dims{dimCount: 1}, scale: 1}

	Second = Unit{name: "s", dims: dims{dimTime: 1}, scale: 1}
	Minute = Unit{name: "min", dims: dims{dimTime: 1}, scale: 60}
	Hour   = Unit{name: "h", dims: dims{dimTime: 1}, scale: 3600}

	Arcsec = Unit{name: "arcsec", dims: dims{dimAngle: 1}, scale: 1}
	Arcmin = Unit{name: "arcmin", dims: dims{dimAngle: 1}, scale: 60}
	Degree = Unit{name: "deg", dims: dims{dimAngle: 1}, scale: 3600}
	Radian = Unit{name: "rad", dims: dims{dimAngle: 1}, scale: 180 * 3600 / math.Pi}

	CountPerSecond = Count.Div(Second)

	Mag                = Dimensionless.Mag()
	MagCountPerSecond  = CountPerSecond.Mag()
	MagPerSquareArcsec = Arcsec.Pow(-2).Mag()
)

// factor returns the scale to base units; the zero Unit has scale 1.
func (u Unit) factor() float64 {
	if u.scale == 0 {
		return 1
	}
	return u.scale
}

// IsLogarithmic reports whether u is a magnitude unit.
func (u Unit) IsLogarithmic() bool { return u.log }

// Physical returns the linear reference unit of a magnitude unit, or u itself
// when u is already linear.
func (u Unit) Physical() Unit {
	u.log = false
	return u
}

// Mul returns the product of two linear units.
// It panics if either unit is logarithmic.
func (u Unit) Mul(o Unit) Unit {
	mustLinear("Mul", u, o)
	return Unit{
		name:  mulName(u.name, o.name),
		dims:  u.dims.add(o.dims),
		scale: u.factor() * o.factor(),
	}
}

// Div returns the ratio of two linear units.
// It panics if either unit is logarithmic.
func (u Unit) Div(o Unit) Unit {
	mustLinear("Div", u, o)
	return Unit{
		name:  divName(u.name, o.name),
		dims:  u.dims.sub(o.dims),
		scale: u.factor() / o.factor(),
	}
}

// Pow raises a linear unit to an integer power.
// It panics if u is logarithmic.
func (u Unit) Pow(n int) Unit {
	mustLinear("Pow", u)
	if n == 0 {
		return Dimensionless
	}
	return Unit{
		name:  powName(u.name, n),
		dims:  u.dims.mul(int8(n)),
		scale: math.Pow(u.factor(), float64(n)),
	}
}

// Mag wraps a linear unit into the magnitude unit mag(u).
// It panics if u is already logarithmic.
func (u Unit) Mag() Unit {
	mustLinear("Mag", u)
	u.scale = u.factor()
	u.log = true
	return u
}

// Equal reports whether u and o describe the same unit. Names are ignored.
func (u Unit) Equal(o Unit) bool {
	return u.log == o.log && u.dims == o.dims && u.factor() == o.factor()
}

// Compatible reports whether a quantity in u can be converted to o.
func (u Unit) Compatible(o Unit) bool {
	return u.dims == o.dims
}

// String returns the unit symbol, e.g. "ct / s" or "mag(ct / s)".
func (u Unit) String() string {
	if !u.log {
		return u.name
	}
	if u.name == "" {
		return "mag"
	}
	return "mag(" + u.name + ")"
}

func mustLinear(op string, us ...Unit) {
	for _, u := range us {
		if u.log {
			panic("units: " + op + " of logarithmic unit " + u.String())
		}
	}
}

func mulName(a, b string) string {
	switch {
	case a == "":
		return b
	case b == "":
		return a
	}
	return a + " " + paren(b)
}

func divName(a, b string) string {
	switch {
	case b == "":
		return a
	case a == b:
		return ""
	case a == "":
		return "1 / " + paren(b)
	}
	return a + " / " + paren(b)
}

func powName(a string, n int) string {
	switch {
	case a == "" || n == 1:
		return a
	case n < 0:
		return divName("", powName(a, -n))
	}
	return paren(a) + strconv.Itoa(n)
}

func paren(s string) string {
	if strings.ContainsAny(s, " /") {
		return "(" + s + ")"
	}
	return s
}
