package grin_test

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gonum.org/v1/gonum/mat"

	"github.com/bob-anderson-ok/GRINlens/grin"
)

func mustLens(t *testing.T, n0, pitch, length float64) grin.Lens {
	t.Helper()
	l, err := grin.NewLens(n0, pitch, length)
	require.NoError(t, err)
	return l
}

func TestNewLensValidation(t *testing.T) {
	_, err := grin.NewLens(1.5, 0.25, 0.0)
	assert.ErrorIs(t, err, grin.ErrInvalidGeometry, "zero length")

	_, err = grin.NewLens(1.5, 0.25, -3.0)
	assert.ErrorIs(t, err, grin.ErrInvalidGeometry, "negative length")

	_, err = grin.NewLens(0.0, 0.25, 10.0)
	assert.ErrorIs(t, err, grin.ErrInvalidGeometry, "zero index")

	_, err = grin.NewLens(1.5, 0.25, 10.0)
	assert.NoError(t, err)
}

func TestGradientPeriodRoundTrip(t *testing.T) {
	lengths := []float64{0.5, 1.0, 7.0, 10.0, 250.0}
	pitches := []float64{0.01, 0.1, 0.23, 0.25, 0.5, 1.0, 1.75}

	for _, length := range lengths {
		for _, pitch := range pitches {
			g, err := grin.Gradient(pitch, length)
			require.NoError(t, err)
			assert.InEpsilon(t, pitch, grin.Period(g, length), 1e-9,
				"pitch=%g length=%g", pitch, length)
		}
	}
}

func TestGradientZeroLength(t *testing.T) {
	_, err := grin.Gradient(0.25, 0.0)
	assert.ErrorIs(t, err, grin.ErrInvalidGeometry)
}

func TestParabolicProfileIndex(t *testing.T) {
	// On axis the profile equals the on-axis index exactly.
	assert.Equal(t, 1.48, grin.ParabolicProfileIndex(1.48, 0.25, 7.0, 0.0))

	// Off axis the index drops; far enough off axis it goes negative, and the
	// function reports the raw parabola without clamping.
	assert.Less(t, grin.ParabolicProfileIndex(1.48, 0.25, 7.0, 1.0), 1.48)
	assert.Less(t, grin.ParabolicProfileIndex(1.48, 0.25, 7.0, 10.0), 0.0)

	// The profile is even in r.
	assert.Equal(t,
		grin.ParabolicProfileIndex(1.48, 0.25, 7.0, 0.6),
		grin.ParabolicProfileIndex(1.48, 0.25, 7.0, -0.6))
}

func TestHyperbolicSecantProfileIndex(t *testing.T) {
	// At r=0 the cosh term is 1 and the index reduces to n0.
	assert.InDelta(t, 1.6, grin.HyperbolicSecantProfileIndex(1.6, 0.3, 0.0), 1e-12)

	// For n0 >= 1 the index stays real and >= 1 everywhere.
	for _, r := range []float64{-50.0, -2.0, 0.3, 1.0, 100.0} {
		n := grin.HyperbolicSecantProfileIndex(1.6, 0.3, r)
		assert.False(t, math.IsNaN(n))
		assert.GreaterOrEqual(t, n, 1.0, "r=%g", r)
	}
}

func TestABCDDeterminant(t *testing.T) {
	lenses := []grin.Lens{
		mustLens(t, 1.5, 0.1, 10.0),
		mustLens(t, 1.6, 0.2, 8.0),
		mustLens(t, 1.48, 0.25, 7.0),
		mustLens(t, 1.48, 0.5, 7.0),
	}

	for _, l := range lenses {
		for _, z := range grin.Linspace(0.0, l.LengthMm, 17) {
			m := l.ABCD(z)
			assert.InDelta(t, 1.0, mat.Det(m), 1e-9,
				"det of ABCD at z=%g for %+v", z, l)
		}
	}
}

func TestABCDEntries(t *testing.T) {
	l := mustLens(t, 1.48, 0.25, 7.0)
	g := 2.0 * math.Pi * 0.25 / 7.0

	// At z=0 the matrix is the identity.
	m := l.ABCD(0.0)
	assert.InDelta(t, 1.0, m.At(0, 0), 1e-12)
	assert.InDelta(t, 0.0, m.At(0, 1), 1e-12)
	assert.InDelta(t, 0.0, m.At(1, 0), 1e-12)
	assert.InDelta(t, 1.0, m.At(1, 1), 1e-12)

	// At the quarter-pitch plane g*z = pi/2, so the diagonal vanishes.
	m = l.ABCD(7.0)
	assert.InDelta(t, 0.0, m.At(0, 0), 1e-12)
	assert.InDelta(t, 1.0/(g*1.48), m.At(0, 1), 1e-12)
	assert.InDelta(t, -1.48*g, m.At(1, 0), 1e-12)
	assert.InDelta(t, 0.0, m.At(1, 1), 1e-12)
}

func TestEFLMatchesTransferMatrix(t *testing.T) {
	// The effective focal length of any thick element is -1/C of its full
	// transfer matrix.
	for _, l := range []grin.Lens{
		mustLens(t, 1.5, 0.1, 10.0),
		mustLens(t, 1.6, 0.2, 8.0),
		mustLens(t, 1.48, 0.23, 7.0),
	} {
		m := l.ABCD(l.LengthMm)
		assert.InEpsilon(t, -1.0/m.At(1, 0), l.EFL(), 1e-12)
	}
}

func TestCardinalPoints(t *testing.T) {
	cases := []struct {
		n0, pitch, length, offset float64
		want                      [6]float64
	}{
		{1.5, 0.1, 10.0, 0.0, [6]float64{-14.603865748353549, 0.0,
			3.4475050508922784, 6.552494949107722, 10.0, 24.60386574835355}},
		{1.5, 0.1, 10.0, 2.0, [6]float64{-12.603865748353549, 2.0,
			5.447505050892278, 8.552494949107722, 12.0, 26.60386574835355}},
		{1.6, 0.2, 8.0, 1.0, [6]float64{-0.2928143940846031, 1.0,
			3.8908208674633746, 6.109179132536625, 9.0, 10.292814394084603}},
	}

	for _, c := range cases {
		l := mustLens(t, c.n0, c.pitch, c.length)
		cp := l.CardinalPoints(c.offset)
		got := [6]float64{cp.FF, cp.FL, cp.FPP, cp.SPP, cp.SL, cp.BF}
		for i := range got {
			assert.InDelta(t, c.want[i], got[i], 1e-6,
				"component %d for n0=%g pitch=%g length=%g offset=%g",
				i, c.n0, c.pitch, c.length, c.offset)
		}
	}
}

func TestCardinalPointsOffsetLinearity(t *testing.T) {
	l := mustLens(t, 1.48, 0.23, 7.0)
	base := l.CardinalPoints(0.0)

	for _, offset := range []float64{-12.5, -1.0, 0.0, 0.25, 3.0, 1000.0} {
		cp := l.CardinalPoints(offset)
		assert.InDelta(t, base.FF+offset, cp.FF, 1e-9)
		assert.InDelta(t, base.FL+offset, cp.FL, 1e-9)
		assert.InDelta(t, base.FPP+offset, cp.FPP, 1e-9)
		assert.InDelta(t, base.SPP+offset, cp.SPP, 1e-9)
		assert.InDelta(t, base.SL+offset, cp.SL, 1e-9)
		assert.InDelta(t, base.BF+offset, cp.BF, 1e-9)
	}
}

func TestNAMaxAngleConsistency(t *testing.T) {
	l := mustLens(t, 1.48, 0.25, 7.0)
	for _, d := range []float64{0.5, 1.0, 1.8, 2.0} {
		assert.Equal(t, math.Sin(l.MaxAngle(d)), l.NA(d), "diameter=%g", d)
		assert.False(t, math.IsNaN(l.NA(d)))
	}
}

func TestEFLNearHalfIntegerPitch(t *testing.T) {
	// A half-integer pitch makes the lens afocal: the focal length formula
	// diverges, and the result must come back as a huge value or infinity,
	// never a panic.
	for _, pitch := range []float64{0.5, 1.0, 1.5} {
		l := mustLens(t, 1.5, pitch, 10.0)
		efl := l.EFL()
		assert.True(t, math.IsInf(efl, 0) || math.Abs(efl) > 1e12,
			"pitch=%g efl=%g", pitch, efl)
	}
}

func TestImageDistanceMatchesTransferMatrix(t *testing.T) {
	// The conjugate formula is algebra on the full-length transfer matrix:
	// image distance = (A*s - B) / (D - C*s).
	l := mustLens(t, 1.5, 0.1, 10.0)
	m := l.ABCD(l.LengthMm)
	a, b := m.At(0, 0), m.At(0, 1)
	c, d := m.At(1, 0), m.At(1, 1)

	for _, s := range []float64{1.0, 5.0, 20.0, 100.0} {
		want := (a*s - b) / (d - c*s)
		assert.InEpsilon(t, want, l.ImageDistance(s), 1e-12, "s=%g", s)
	}
}

func TestImageDistanceSingularity(t *testing.T) {
	// An object at the conjugate-singular plane drives the denominator of the
	// imaging formula to zero. The result blows up but must not panic.
	l := mustLens(t, 1.5, 0.1, 10.0)
	g := 2.0 * math.Pi * 0.1 / 10.0
	twopp := 2.0 * math.Pi * 0.1
	s := -math.Cos(twopp) / (1.5 * g * math.Sin(twopp))

	di := l.ImageDistance(s)
	assert.True(t, math.IsInf(di, 0) || math.Abs(di) > 1e9, "got %g", di)
}

func TestImageMagSingularity(t *testing.T) {
	l := mustLens(t, 1.5, 0.1, 10.0)
	g := 2.0 * math.Pi * 0.1 / 10.0
	twopp := 2.0 * math.Pi * 0.1
	s := math.Cos(twopp) / (1.5 * g * math.Sin(twopp))

	mag := l.ImageMag(s)
	assert.True(t, math.IsInf(mag, 0) || math.Abs(mag) > 1e9, "got %g", mag)
}
