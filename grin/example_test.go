package grin_test

import (
	"fmt"
	"log"

	"github.com/bob-anderson-ok/GRINlens/grin"
)

// Example characterizes a typical 0.1-pitch GRIN rod and traces a collimated
// ray through it.
func Example() {
	lens, err := grin.NewLens(1.5, 0.1, 10.0)
	if err != nil {
		log.Fatalf("Failed to describe lens: %v", err)
	}

	fmt.Printf("EFL = %.3f mm\n", lens.EFL())
	fmt.Printf("FFL = %.3f mm\n", lens.FFL())
	fmt.Printf("BFL = %.3f mm\n", lens.BFL())
	fmt.Printf("NA = %.4f\n", lens.NA(1.8))

	cp := lens.CardinalPoints(0.0)
	fmt.Printf("FF=%.6f FL=%.6f FPP=%.6f SPP=%.6f SL=%.6f BF=%.6f\n",
		cp.FF, cp.FL, cp.FPP, cp.SPP, cp.SL, cp.BF)

	z, r := lens.MeridionalCurve(0.5, 0.0, 0)
	fmt.Printf("Traced %d points from z=%.1f to z=%.1f, exit radius %.3f mm\n",
		len(z), z[0], z[len(z)-1], r[len(r)-1])

	// Output:
	// EFL = 18.051 mm
	// FFL = -14.604 mm
	// BFL = 24.604 mm
	// NA = 0.0846
	// FF=-14.603866 FL=0.000000 FPP=3.447505 SPP=6.552495 SL=10.000000 BF=24.603866
	// Traced 40 points from z=0.0 to z=10.0, exit radius 0.405 mm
}
