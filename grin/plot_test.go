package grin_test

import (
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bob-anderson-ok/GRINlens/grin"
)

func TestPrincipalPlanesPlot(t *testing.T) {
	l := mustLens(t, 1.48, 0.23, 7.0)

	p, err := grin.PrincipalPlanesPlot(l, 2.0)
	require.NoError(t, err)

	z, r := l.MeridionalCurve(0.5, 0.0, 40)
	require.NoError(t, grin.AddMeridionalCurve(p, z, r, color.RGBA{B: 255, A: 255}))

	img := grin.RenderPlotImage(p, 800, 400)
	assert.Equal(t, 800, img.Bounds().Dx())
	assert.Equal(t, 400, img.Bounds().Dy())
}

func TestPrincipalPlanesPlotAfocal(t *testing.T) {
	// A half-pitch lens has focal points at infinity; the plot must still
	// build, just without the runaway annotations.
	l := mustLens(t, 1.48, 0.5, 7.0)
	_, err := grin.PrincipalPlanesPlot(l, 2.0)
	assert.NoError(t, err)
}

func TestStepTicks(t *testing.T) {
	ticks := grin.StepTicks{Step: 2.0, Format: "%.0f"}.Ticks(0.0, 10.0)
	require.Len(t, ticks, 6)
	assert.Equal(t, "0", ticks[0].Label)
	assert.Equal(t, 10.0, ticks[5].Value)
}