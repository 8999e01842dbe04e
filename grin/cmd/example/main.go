// Example program demonstrating how to use the grin package to:
// 1. Characterize a GRIN lens (focal lengths, cardinal points, NA)
// 2. Trace a fan of collimated meridional rays through the lens
// 3. Trace a single ray from an external object point to its image
// 4. Draw the principal-planes diagram with the ray fan overlaid
//
// Usage:
//
//	go run main.go
//
// The diagram is written to principal_planes.png in the current directory.
package main

import (
	"fmt"
	"log"

	"github.com/bob-anderson-ok/GRINlens/grin"
)

func main() {
	fmt.Println("GRIN Lens Characterization Example")
	fmt.Println("==================================")

	// A quarter-pitch rod lens, the classic fiber-coupling geometry: a
	// collimated beam entering the front surface focuses exactly on the back
	// surface.
	lens, err := grin.NewLens(1.48, 0.25, 7.0)
	if err != nil {
		log.Fatalf("Failed to describe lens: %v", err)
	}
	diameterMm := 2.0

	fmt.Printf("\nLens: n0=%.3f pitch=%.2f length=%.1f mm diameter=%.1f mm\n",
		lens.N0, lens.Pitch, lens.LengthMm, diameterMm)

	fmt.Printf("\n  EFL: %8.3f mm\n", lens.EFL())
	fmt.Printf("  FFL: %8.3f mm\n", lens.FFL())
	fmt.Printf("  BFL: %8.3f mm\n", lens.BFL())
	fmt.Printf("  NA:  %8.4f (max acceptance half-angle %.4f radians)\n",
		lens.NA(diameterMm), lens.MaxAngle(diameterMm))

	cp := lens.CardinalPoints(0.0)
	fmt.Println("\nCardinal points (mm from front surface):")
	fmt.Printf("  front focal point:      %8.3f\n", cp.FF)
	fmt.Printf("  front lens surface:     %8.3f\n", cp.FL)
	fmt.Printf("  front principal plane:  %8.3f\n", cp.FPP)
	fmt.Printf("  back principal plane:   %8.3f\n", cp.SPP)
	fmt.Printf("  back lens surface:      %8.3f\n", cp.SL)
	fmt.Printf("  back focal point:       %8.3f\n", cp.BF)

	// Trace a collimated fan across most of the aperture.
	z, fans := lens.MeridionalRayFan(-0.8, 0.8, 0.0, 11, 40)
	fmt.Printf("\nTraced %d collimated rays, %d samples each\n", len(fans), len(z))

	rays := make([][2][]float64, len(fans))
	for i, fan := range fans {
		rays[i] = [2][]float64{z, fan}
	}

	// Trace one ray from an external object point to its image.
	zObj, rObj, rLens := 20.0, 1.0, 0.5
	zFull, rFull, err := lens.FullMeridionalCurve(zObj, rObj, rLens, 40)
	if err != nil {
		log.Fatalf("Ray trace failed: %v", err)
	}
	fmt.Printf("Object at (%.1f, %.1f) images %.3f mm behind the lens with magnification %.4f\n",
		zObj, rObj, lens.ImageDistance(zObj), lens.ImageMag(zObj))
	rays = append(rays, [2][]float64{zFull, rFull})

	outputPlot := "principal_planes.png"
	err = grin.SavePrincipalPlanesPlot(outputPlot, lens, diameterMm, rays, 1200, 500)
	if err != nil {
		log.Printf("Could not save principal-planes plot: %v\n", err)
	} else {
		fmt.Printf("\nSaved principal-planes diagram to %s\n", outputPlot)
	}

	fmt.Println("\nDone!")
}
