package grin

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"
)

// Linspace This is provided to match numpy's linspace()
func Linspace(start, end float64, n int) []float64 {
	if n <= 1 {
		return []float64{start}
	}

	step := (end - start) / float64(n-1)

	x := make([]float64, n)
	for i := 0; i < n; i++ {
		x[i] = start + float64(i)*step
	}
	x[n-1] = end // keep the endpoint exact despite the accumulated step rounding
	return x
}

// MeridionalCurve returns the path of a meridional ray through the lens as two
// parallel slices: axial positions z [mm] in ascending order spanning
// [0, length], and radial positions r [mm]. The ray enters the front surface
// at radius rI with angle thetaI [radians] measured inside the lens. Each of
// the npoints samples is produced by applying the transfer matrix for that
// axial distance to the initial ray state (rI, n0*cos(pi/2 - thetaI)).
// npoints <= 0 selects DefaultCurvePoints.
func (l Lens) MeridionalCurve(rI, thetaI float64, npoints int) (z, r []float64) {
	if npoints <= 0 {
		npoints = DefaultCurvePoints
	}

	z = Linspace(0.0, l.LengthMm, npoints)
	v := mat.NewVecDense(2, []float64{rI, l.N0 * math.Cos(math.Pi/2.0-thetaI)})

	r = make([]float64, npoints)
	var out mat.VecDense
	for i := range z {
		out.MulVec(l.ABCD(z[i]), v)
		r[i] = out.AtVec(0)
	}
	return z, r
}

// FullMeridionalCurve returns the path of a ray that starts at the external
// object point (zObj, rObj), strikes the front surface at radius rLens,
// refracts into the lens, and exits toward the image of the object. The
// returned slices always hold exactly npoints samples: the object point,
// npoints-2 in-lens samples, and the image point. The image point is inserted
// immediately before the final in-lens sample rather than appended, matching
// the reference data this package is validated against.
//
// The refraction step uses Snell's law at the local parabolic-profile index;
// if the incidence angle exceeds the critical angle there is no real refracted
// ray and ErrInvalidRefraction is returned.
func (l Lens) FullMeridionalCurve(zObj, rObj, rLens float64, npoints int) (z, r []float64, err error) {
	if npoints <= 0 {
		npoints = DefaultCurvePoints
	}
	if npoints < 4 {
		return nil, nil, fmt.Errorf("npoints must be at least 4, got %d", npoints)
	}

	// Angle in air between the object point and the entry point.
	thetaI := math.Atan((rObj - rLens) / zObj)

	// Angle inside the lens just past the front surface.
	nLens := ParabolicProfileIndex(l.N0, l.Pitch, l.LengthMm, rLens)
	sinRatio := math.Sin(thetaI) / nLens
	if math.Abs(sinRatio) > 1.0 {
		return nil, nil, fmt.Errorf(
			"ray from (%g, %g) striking the lens at r=%g (local index %g): %w",
			zObj, rObj, rLens, nLens, ErrInvalidRefraction)
	}
	thetaLens := math.Asin(sinRatio)

	zCurve, rCurve := l.MeridionalCurve(rLens, thetaLens, npoints-2)

	zImg := l.ImageDistance(zObj)
	mag := l.ImageMag(zObj)

	z = make([]float64, 0, npoints)
	r = make([]float64, 0, npoints)

	// Object point first, then the in-lens samples with the image point
	// slotted in before the last one.
	z = append(z, zObj)
	r = append(r, rObj)

	z = append(z, zCurve[:len(zCurve)-1]...)
	r = append(r, rCurve[:len(rCurve)-1]...)

	z = append(z, l.LengthMm+zImg, zCurve[len(zCurve)-1])
	r = append(r, mag*rObj, rCurve[len(rCurve)-1])

	return z, r, nil
}

// MeridionalRayFan traces count parallel rays with entry angle thetaI, evenly
// spaced in entry radius over [rMin, rMax], and returns one curve per ray.
// Every trace is independent of the others. The z samples are identical for
// all rays, so a single z slice is shared.
func (l Lens) MeridionalRayFan(rMin, rMax, thetaI float64, count, npoints int) (z []float64, fans [][]float64) {
	radii := Linspace(rMin, rMax, count)
	fans = make([][]float64, len(radii))
	for i, rI := range radii {
		z, fans[i] = l.MeridionalCurve(rI, thetaI, npoints)
	}
	return z, fans
}
