package grin

import (
	"fmt"
	"image"
	"image/color"
	"image/png"
	"math"
	"os"

	"gonum.org/v1/plot"
	_ "gonum.org/v1/plot/font/liberation"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	vgdraw "gonum.org/v1/plot/vg/draw"
	"gonum.org/v1/plot/vg/vgimg"
)

// StepTicks is a custom tick marker for plots with fixed step intervals.
type StepTicks struct {
	Step   float64
	Format string
}

func (t StepTicks) Ticks(min, max float64) []plot.Tick {
	var ticks []plot.Tick
	start := math.Ceil(min/t.Step) * t.Step
	for v := start; v <= max; v += t.Step {
		ticks = append(ticks, plot.Tick{
			Value: v,
			Label: fmt.Sprintf(t.Format, v),
		})
	}
	return ticks
}

// PrincipalPlanesPlot returns a fresh plot showing the lens cross-section with
// its cardinal points annotated: the principal planes H and H' as dashed
// vertical lines and the focal points f and f' as filled dots. Cardinal points
// that land further than 10 lens lengths from the lens are left off the plot,
// since near a half-integer pitch they run away to infinity.
//
// Meridional ray curves can be overlaid on the returned plot with
// AddMeridionalCurve before rendering it.
func PrincipalPlanesPlot(l Lens, diameterMm float64) (*plot.Plot, error) {
	cp := l.CardinalPoints(0.0)
	radius := diameterMm / 2.0

	p := plot.New()

	// Modify the font fields directly on existing styles
	p.Title.TextStyle.Font.Typeface = "Liberation"
	p.Title.TextStyle.Font.Variant = "Sans"
	p.Title.TextStyle.Font.Size = vg.Points(12)

	p.X.Label.TextStyle.Font.Typeface = "Liberation"
	p.X.Label.TextStyle.Font.Variant = "Sans"
	p.X.Label.TextStyle.Font.Size = vg.Points(12)

	p.Y.Label.TextStyle.Font.Typeface = "Liberation"
	p.Y.Label.TextStyle.Font.Variant = "Sans"
	p.Y.Label.TextStyle.Font.Size = vg.Points(12)

	p.X.Tick.Label.Font.Typeface = "Liberation"
	p.X.Tick.Label.Font.Variant = "Sans"
	p.X.Tick.Label.Font.Size = vg.Points(10)

	p.Y.Tick.Label.Font.Typeface = "Liberation"
	p.Y.Tick.Label.Font.Variant = "Sans"
	p.Y.Tick.Label.Font.Size = vg.Points(10)

	p.Title.Text = fmt.Sprintf("pitch=%.2f, n0=%.3f", l.Pitch, l.N0)
	p.X.Label.Text = "z (mm)"
	p.Y.Label.Text = "r (mm)"
	p.X.Tick.Marker = StepTicks{Step: l.LengthMm / 5.0, Format: "%.1f"}
	p.Add(plotter.NewGrid())

	// Shaded rectangle for the lens body
	body, err := plotter.NewPolygon(plotter.XYs{
		{X: cp.FL, Y: -radius},
		{X: cp.SL, Y: -radius},
		{X: cp.SL, Y: radius},
		{X: cp.FL, Y: radius},
	})
	if err != nil {
		return nil, err
	}
	body.Color = color.RGBA{R: 211, G: 211, B: 211, A: 90}
	body.LineStyle.Width = 0
	p.Add(body)

	// Optical axis across the lens
	axis, err := plotter.NewLine(plotter.XYs{
		{X: cp.FL, Y: 0.0},
		{X: cp.SL, Y: 0.0},
	})
	if err != nil {
		return nil, err
	}
	axis.Width = vg.Points(0.5)
	axis.Color = color.RGBA{A: 255}
	p.Add(axis)

	var labelPts plotter.XYs
	var labels []string

	for _, plane := range []struct {
		z    float64
		name string
	}{
		{cp.FPP, "H"},
		{cp.SPP, "H'"},
	} {
		if math.Abs(plane.z) >= 10.0*l.LengthMm {
			continue
		}
		vline, err := plotter.NewLine(plotter.XYs{
			{X: plane.z, Y: -radius},
			{X: plane.z, Y: radius},
		})
		if err != nil {
			return nil, err
		}
		vline.Dashes = []vg.Length{vg.Points(2), vg.Points(2)}
		vline.Color = color.RGBA{A: 255}
		p.Add(vline)
		labelPts = append(labelPts, plotter.XY{X: plane.z, Y: -radius})
		labels = append(labels, plane.name)
	}

	var focalPts plotter.XYs
	for _, focus := range []struct {
		z    float64
		name string
	}{
		{cp.FF, "f"},
		{cp.BF, "f'"},
	} {
		if math.Abs(focus.z) >= 10.0*l.LengthMm {
			continue
		}
		focalPts = append(focalPts, plotter.XY{X: focus.z, Y: 0.0})
		labelPts = append(labelPts, plotter.XY{X: focus.z, Y: 0.0})
		labels = append(labels, focus.name)
	}

	if len(focalPts) > 0 {
		scatter, err := plotter.NewScatter(focalPts)
		if err != nil {
			return nil, err
		}
		scatter.Shape = vgdraw.CircleGlyph{}
		scatter.Radius = vg.Points(3)
		scatter.Color = color.RGBA{A: 255}
		p.Add(scatter)
	}

	if len(labels) > 0 {
		lbls, err := plotter.NewLabels(plotter.XYLabels{XYs: labelPts, Labels: labels})
		if err != nil {
			return nil, err
		}
		for i := range lbls.TextStyle {
			lbls.TextStyle[i].Font.Typeface = "Liberation"
			lbls.TextStyle[i].Font.Variant = "Sans"
			lbls.TextStyle[i].Font.Size = vg.Points(14)
		}
		p.Add(lbls)
	}

	return p, nil
}

// AddMeridionalCurve overlays one ray path (as produced by MeridionalCurve or
// FullMeridionalCurve) on a plot.
func AddMeridionalCurve(p *plot.Plot, z, r []float64, col color.Color) error {
	n := len(z)
	pts := make(plotter.XYs, n)
	for i := 0; i < n; i++ {
		pts[i].X = z[i]
		pts[i].Y = r[i]
	}

	line, err := plotter.NewLine(pts)
	if err != nil {
		return err
	}
	line.Color = col
	p.Add(line)
	return nil
}

// RenderPlotImage renders a plot into an in-memory image of the requested
// pixel size.
func RenderPlotImage(p *plot.Plot, wPx, hPx float64) image.Image {
	// Choose a "virtual" size in vg units and map to pixels via DPI.
	const dpi = 96
	width := vg.Length(wPx) * vg.Inch / dpi
	height := vg.Length(hPx) * vg.Inch / dpi

	c := vgimg.New(width, height)
	dc := vgdraw.New(c)
	p.Draw(dc)

	return c.Image()
}

// SavePrincipalPlanesPlot creates the principal-planes diagram, overlays the
// supplied ray curves (if any), and writes the result to a PNG file.
func SavePrincipalPlanesPlot(filename string, l Lens, diameterMm float64, rays [][2][]float64, wPx, hPx float64) (err error) {
	p, err := PrincipalPlanesPlot(l, diameterMm)
	if err != nil {
		return err
	}

	for _, ray := range rays {
		if err := AddMeridionalCurve(p, ray[0], ray[1], color.RGBA{B: 255, A: 255}); err != nil {
			return err
		}
	}

	img := RenderPlotImage(p, wPx, hPx)

	f, err := os.Create(filename)
	if err != nil {
		return err
	}
	defer func() {
		if cerr := f.Close(); cerr != nil && err == nil {
			err = cerr
		}
	}()

	return png.Encode(f, img)
}
