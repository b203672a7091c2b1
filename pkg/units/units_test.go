package units

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestUnitString(t *testing.T) {
	tests := []struct {
		name string
		unit Unit
		want string
	}{
		{"dimensionless", Dimensionless, ""},
		{"count rate", CountPerSecond, "ct / s"},
		{"plain magnitude", Mag, "mag"},
		{"count rate magnitude", MagCountPerSecond, "mag(ct / s)"},
		{"surface brightness", MagPerSquareArcsec, "mag(1 / arcsec2)"},
		{"square arcsec", Arcsec.Pow(2), "arcsec2"},
		{"rate per area", CountPerSecond.Div(Arcsec.Pow(2)), "ct / s / arcsec2"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.unit.String())
		})
	}
}

func TestUnitEqual(t *testing.T) {
	assert.True(t, Count.Div(Second).Equal(CountPerSecond))
	assert.True(t, Unit{}.Equal(Dimensionless))
	assert.False(t, CountPerSecond.Equal(MagCountPerSecond))
	assert.False(t, Arcsec.Equal(Arcmin))
	assert.True(t, Arcsec.Compatible(Degree))
	assert.False(t, Arcsec.Compatible(Second))
}

func TestUnitAlgebraPanicsOnMagnitudes(t *testing.T) {
	assert.Panics(t, func() { Mag.Mul(Second) })
	assert.Panics(t, func() { Second.Div(MagCountPerSecond) })
	assert.Panics(t, func() { MagPerSquareArcsec.Pow(2) })
	assert.Panics(t, func() { Mag.Mag() })
}

func TestQuantity_SubMagnitudes(t *testing.T) {
	diff, err := New(25, MagCountPerSecond).Sub(New(28, Mag))
	require.NoError(t, err)
	assert.Equal(t, -3.0, diff.Value)
	assert.True(t, diff.Unit.Equal(MagCountPerSecond), "got %s", diff.Unit)

	flux, err := diff.To(CountPerSecond)
	require.NoError(t, err)
	assert.InDelta(t, math.Pow(10, 1.2), flux.Value, 1e-12)
}

func TestQuantity_SubSameMagnitudeUnitLosesReference(t *testing.T) {
	diff, err := New(25, MagCountPerSecond).Sub(New(28, MagCountPerSecond))
	require.NoError(t, err)
	assert.True(t, diff.Unit.Equal(Mag))

	_, err = diff.To(CountPerSecond)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrIncompatible)
}

func TestQuantity_MixedLogLinearFails(t *testing.T) {
	_, err := New(25, MagCountPerSecond).Sub(New(3, CountPerSecond))
	require.Error(t, err)

	var ue *UnitError
	require.True(t, errors.As(err, &ue))
	assert.Equal(t, "subtract", ue.Op)
	assert.ErrorIs(t, err, ErrIncompatible)

	_, err = New(1, Count).Add(New(1, Mag))
	assert.ErrorIs(t, err, ErrIncompatible)

	_, err = New(1, Mag).Mul(New(2, Second))
	assert.ErrorIs(t, err, ErrIncompatible)

	_, err = New(1, Second).Div(New(2, Mag))
	assert.ErrorIs(t, err, ErrIncompatible)
}

func TestQuantity_AddSubLinear(t *testing.T) {
	sum, err := New(1, Minute).Add(New(30, Second))
	require.NoError(t, err)
	assert.InDelta(t, 1.5, sum.Value, 1e-12)
	assert.True(t, sum.Unit.Equal(Minute))

	diff, err := New(1, Degree).Sub(New(30, Arcmin))
	require.NoError(t, err)
	assert.InDelta(t, 0.5, diff.Value, 1e-12)

	_, err = New(1, Second).Add(New(1, Arcsec))
	assert.ErrorIs(t, err, ErrIncompatible)
}

func TestQuantity_AddMagnitudes(t *testing.T) {
	sum, err := New(20, MagPerSquareArcsec).Add(New(1, Mag))
	require.NoError(t, err)
	assert.Equal(t, 21.0, sum.Value)
	assert.True(t, sum.Unit.Equal(MagPerSquareArcsec))
}

func TestQuantity_ToLinear(t *testing.T) {
	tests := []struct {
		name   string
		in     Quantity
		target Unit
		want   float64
	}{
		{"arcmin to arcsec", New(1, Arcmin), Arcsec, 60},
		{"deg to arcmin", New(1, Degree), Arcmin, 60},
		{"arcsec to arcsec", New(0.2, Arcsec), Arcsec, 0.2},
		{"rad to deg", New(1, Radian), Degree, 180 / math.Pi},
		{"hour to s", New(2, Hour), Second, 7200},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := tt.in.ValueIn(tt.target)
			require.NoError(t, err)
			assert.InDelta(t, tt.want, got, 1e-9)
		})
	}
}

func TestQuantity_ToIncompatible(t *testing.T) {
	_, err := New(1, Minute).To(Arcsec)
	require.Error(t, err)
	var ue *UnitError
	require.True(t, errors.As(err, &ue))
	assert.Equal(t, "convert", ue.Op)
	assert.Contains(t, err.Error(), `"min"`)
}

func TestQuantity_LinearToMagnitude(t *testing.T) {
	m, err := New(100, CountPerSecond).To(MagCountPerSecond)
	require.NoError(t, err)
	assert.InDelta(t, -5.0, m.Value, 1e-12)

	_, err = New(0, CountPerSecond).To(MagCountPerSecond)
	assert.ErrorIs(t, err, ErrNonPositive)

	_, err = New(-1, CountPerSecond).To(MagCountPerSecond)
	assert.ErrorIs(t, err, ErrNonPositive)
}

func TestQuantity_MagnitudeRescale(t *testing.T) {
	// One square arcminute collects 3600 times the flux of one square arcsecond.
	perArcmin2 := Arcmin.Pow(-2).Mag()
	m, err := New(20, MagPerSquareArcsec).To(perArcmin2)
	require.NoError(t, err)
	assert.InDelta(t, 20-2.5*math.Log10(3600), m.Value, 1e-12)

	back, err := m.To(MagPerSquareArcsec)
	require.NoError(t, err)
	assert.InDelta(t, 20, back.Value, 1e-12)
}

func TestQuantity_MulToCounts(t *testing.T) {
	total, err := New(2, CountPerSecond).Mul(New(100, Second))
	require.NoError(t, err)

	counts, err := total.To(Count)
	require.NoError(t, err)
	assert.Equal(t, 200.0, counts.Value)
	assert.True(t, counts.Unit.Equal(Count))

	rate, err := New(200, Count).Div(New(2, Minute))
	require.NoError(t, err)
	v, err := rate.ValueIn(CountPerSecond)
	require.NoError(t, err)
	assert.InDelta(t, 200.0/120, v, 1e-12)
}

func TestQuantity_Trunc(t *testing.T) {
	assert.Equal(t, 42.0, New(42.9, Count).Trunc().Value)
	assert.Equal(t, -42.0, New(-42.9, Count).Trunc().Value)
	assert.Equal(t, 0.0, New(0.99, Count).Trunc().Value)
	assert.True(t, New(1.5, Count).Trunc().Unit.Equal(Count))
}

func TestQuantity_Int64(t *testing.T) {
	tests := []struct {
		name  string
		value float64
		want  int64
	}{
		{"positive", 42.9, 42},
		{"negative", -42.9, -42},
		{"min int64", math.MinInt64, math.MinInt64},
		{"largest below 2^63", math.Nextafter(math.Exp2(63), 0), int64(math.Nextafter(math.Exp2(63), 0))},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := New(tt.value, Count).Int64()
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestQuantity_Int64OutOfRange(t *testing.T) {
	for _, v := range []float64{math.Exp2(63), 1e300, -1e300, math.Inf(1), math.Inf(-1), math.NaN()} {
		_, err := New(v, Count).Int64()
		assert.ErrorIs(t, err, ErrOutOfRange, "value %v", v)
		var ue *UnitError
		assert.True(t, errors.As(err, &ue), "value %v: got %T", v, err)
	}
}

func TestQuantity_Scale(t *testing.T) {
	q := New(10, Count).Scale(0.04)
	assert.Equal(t, 10*0.04, q.Value)
	assert.True(t, q.Unit.Equal(Count))
}

func TestQuantity_String(t *testing.T) {
	assert.Equal(t, "25 mag(ct / s)", New(25, MagCountPerSecond).String())
	assert.Equal(t, "0.5", New(0.5, Dimensionless).String())
}
