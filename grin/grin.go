// Package grin provides paraxial (ABCD matrix) calculations for gradient-index
// lenses: refractive-index profiles, focal lengths and cardinal points, imaging
// conjugates, numerical aperture, and meridional ray traces suitable for plotting.
//
// All lengths are in millimeters and all angles are in radians. The front
// surface of the lens sits at z = 0 and z increases along the propagation
// direction.
package grin

import (
	"errors"
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"
)

// DefaultCurvePoints is the number of samples returned by MeridionalCurve and
// FullMeridionalCurve when the caller passes npoints <= 0.
const DefaultCurvePoints = 40

// ErrInvalidGeometry is returned when a lens is described with a non-positive
// length or on-axis index.
var ErrInvalidGeometry = errors.New("invalid lens geometry")

// ErrInvalidRefraction is returned when a ray strikes the front surface at an
// angle beyond the critical angle, so Snell's law has no real solution there.
var ErrInvalidRefraction = errors.New("ray angle exceeds critical angle at lens surface")

// Lens describes one GRIN lens segment. Pitch is the fraction of a full
// sinusoidal index-oscillation period spanned by the physical length, so a
// quarter-pitch lens (Pitch = 0.25) focuses a collimated beam exactly on its
// back surface.
type Lens struct {
	N0       float64 // index of refraction on the lens axis [unitless]
	Pitch    float64 // fraction of a full index-oscillation period [unitless]
	LengthMm float64 // axial length of the lens [mm]
}

// CardinalPoints holds the six axial coordinates that characterize the
// paraxial imaging behavior of a lens. All values are in mm relative to the
// offset passed to Lens.CardinalPoints.
type CardinalPoints struct {
	FF  float64 // front focal point [mm]
	FL  float64 // front lens surface [mm]
	FPP float64 // front (first) principal plane [mm]
	SPP float64 // back (second) principal plane [mm]
	SL  float64 // back lens surface [mm]
	BF  float64 // back focal point [mm]
}

// NewLens validates the lens description and returns it as a value.
// A zero or negative length or on-axis index is rejected here so that the
// failure happens at the API boundary instead of as a division by zero deep
// inside a downstream formula.
func NewLens(n0, pitch, lengthMm float64) (Lens, error) {
	if lengthMm <= 0.0 {
		return Lens{}, fmt.Errorf("lens length must be positive, got %g mm: %w", lengthMm, ErrInvalidGeometry)
	}
	if n0 <= 0.0 {
		return Lens{}, fmt.Errorf("on-axis index must be positive, got %g: %w", n0, ErrInvalidGeometry)
	}
	return Lens{N0: n0, Pitch: pitch, LengthMm: lengthMm}, nil
}

// Gradient returns the geometric gradient of a grin lens based on its pitch
// and length. The gradient is the spatial frequency of the index-profile
// oscillation [1/mm].
func Gradient(pitch, lengthMm float64) (float64, error) {
	if lengthMm == 0.0 {
		return 0.0, fmt.Errorf("lens length must be non-zero: %w", ErrInvalidGeometry)
	}
	return 2.0 * math.Pi * pitch / lengthMm, nil
}

// Period returns the pitch of a grin lens based on its gradient and length.
// It is the exact algebraic inverse of Gradient.
func Period(grad, lengthMm float64) float64 {
	return lengthMm * grad / (2.0 * math.Pi)
}

// ParabolicProfileIndex returns the index of a parabolic grin lens at radial
// distance r from the axis. The profile is not clamped: far enough off axis
// the parabola turns negative, which is outside the paraxial region where the
// formula is meaningful.
func ParabolicProfileIndex(n0, pitch, lengthMm, r float64) float64 {
	x := math.Pi * pitch * r / lengthMm
	return n0 * (1.0 - 2.0*x*x)
}

// HyperbolicSecantProfileIndex returns the index of a hyperbolic-secant grin
// lens at radial distance r from the axis. Alpha plays the role the gradient
// plays for a parabolic lens [1/mm]. The result is real and >= 1 for any real
// r whenever n0 >= 1.
func HyperbolicSecantProfileIndex(n0, alpha, r float64) float64 {
	c := math.Cosh(alpha * r)
	return math.Sqrt(1.0 + (n0*n0-1.0)/(c*c))
}

// gradient is the unexported form used by methods; Lens values built through
// NewLens always have a positive length.
func (l Lens) gradient() float64 {
	return 2.0 * math.Pi * l.Pitch / l.LengthMm
}

// IndexAt returns the parabolic-profile refractive index at radial distance r.
func (l Lens) IndexAt(r float64) float64 {
	return ParabolicProfileIndex(l.N0, l.Pitch, l.LengthMm, r)
}

// ABCD returns the 2x2 ray-transfer matrix for meridional propagation from the
// front surface to axial distance z inside the lens. The matrix maps the ray
// state (r, n*theta) at the front surface to the state at z and has unit
// determinant for every z.
func (l Lens) ABCD(z float64) *mat.Dense {
	g := l.gradient()
	cos := math.Cos(g * z)
	sin := math.Sin(g * z)
	return mat.NewDense(2, 2, []float64{
		cos, sin / g / l.N0,
		-l.N0 * g * sin, cos,
	})
}

// EFL returns the effective focal length of the lens [mm]. When the pitch is a
// half-integer the lens is afocal and the result diverges; the raw IEEE result
// (a very large value, or infinity) is returned rather than an error because
// callers may legitimately probe near that condition.
func (l Lens) EFL() float64 {
	twopp := 2.0 * math.Pi * l.Pitch
	return l.LengthMm / math.Sin(twopp) / (twopp * l.N0)
}

// FFL returns the front focal length of the lens [mm], with the same
// singularity behavior as EFL.
func (l Lens) FFL() float64 {
	twopp := 2.0 * math.Pi * l.Pitch
	return -l.LengthMm / math.Tan(twopp) / (twopp * l.N0)
}

// BFL returns the position of the back focal point measured from the front
// surface [mm], with the same singularity behavior as EFL.
func (l Lens) BFL() float64 {
	twopp := 2.0 * math.Pi * l.Pitch
	return l.LengthMm + l.LengthMm/math.Tan(twopp)/(twopp*l.N0)
}

// MaxAngle returns the maximum acceptance half-angle in air [radians] for a
// lens of the given diameter [mm]. The radicand is always in [0, 1) for real
// inputs because cosh(x) >= 1.
func (l Lens) MaxAngle(diameterMm float64) float64 {
	c := math.Cosh(diameterMm * l.Pitch * math.Pi / l.LengthMm)
	return l.N0 * math.Sqrt(1.0-1.0/(c*c))
}

// NA returns the numerical aperture of the lens in air for the given diameter.
func (l Lens) NA(diameterMm float64) float64 {
	return math.Sin(l.MaxAngle(diameterMm))
}

// ImageDistance returns the distance from the back surface of the lens to the
// image of an object located s mm in front of the lens. An object at a
// conjugate-singular plane drives the denominator to zero and the result to
// infinity, following the underlying formula.
func (l Lens) ImageDistance(s float64) float64 {
	g := l.gradient()
	twopp := 2.0 * math.Pi * l.Pitch
	numer := s*math.Cos(twopp) - math.Sin(twopp)/g/l.N0
	denom := l.N0*g*s*math.Sin(twopp) + math.Cos(twopp)
	return numer / denom
}

// ImageMag returns the transverse magnification for an object located s mm in
// front of the lens, with the same singularity class as ImageDistance.
func (l Lens) ImageMag(s float64) float64 {
	g := l.gradient()
	twopp := 2.0 * math.Pi * l.Pitch
	return 1.0 / (g*l.N0*s*math.Sin(twopp) - math.Cos(twopp))
}

// CardinalPoints returns the six cardinal points of the lens. Offset shifts
// every coordinate by the same amount; with offset 0 the front surface sits at
// z = 0. Singular pitch values propagate from EFL/FFL/BFL as infinities.
func (l Lens) CardinalPoints(offset float64) CardinalPoints {
	efl := l.EFL()
	ffl := l.FFL()
	bfl := l.BFL()

	return CardinalPoints{
		FF:  offset + ffl,
		FL:  offset,
		FPP: offset + ffl + efl,
		SPP: offset + bfl - efl,
		SL:  offset + l.LengthMm,
		BF:  offset + bfl,
	}
}
