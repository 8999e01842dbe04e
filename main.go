package main

import (
	"errors"
	"fmt"
	"os"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"

	"github.com/bob-anderson-ok/GRINlens/grin"
)

// !!!!! This MUST match the app name given in the run configuration !!!!!
const version = "1_0_0"

// !!!!! This MUST match the app name given in the run configuration !!!!!

const plotFileName = "principalPlanes.png"

type LensDesign struct {
	ShowInput          bool
	WindowSizePixels   int
	Title              string
	N0                 float64 // index of refraction on the lens axis [unitless]
	Pitch              float64 // fraction of a full index-oscillation period [unitless]
	LengthMm           float64 // axial length of the lens [mm]
	DiameterMm         float64 // diameter of the lens [mm]
	RayFanCount        int     // number of collimated rays to trace across the aperture
	RayFanAngleRadians float64 // entry angle of the ray fan [radians]
	CurvePoints        int     // samples per traced ray (0 selects the package default)
	ObjectGiven        bool
	ObjectZMm          float64 // axial distance from the front surface to the object [mm]
	ObjectRMm          float64 // radius at which the traced ray leaves the object [mm]
	ObjectRayRLensMm   float64 // radius at which the traced ray strikes the lens [mm]
}

func main() {

	programStart := time.Now()

	// We supply an ID (hopefully unique) because we may need to use the preferences API
	myApp := app.NewWithID("com.gmail.ok.anderson.bob.grinlens")
	w := myApp.NewWindow("GRINlensApp - GRIN lens cardinal points and meridional ray traces")
	w.Resize(fyne.Size{Height: 500, Width: 1200})

	args := os.Args

	if len(args) != 2 {
		fmt.Println("\n\tWrong number of arguments.\n\tUsage: GRINlensApp <parameter-file>")
		os.Exit(1)
	}

	path := args[1]

	// Read the Json5 (or Json) parameter file
	data, err := os.ReadFile(path)
	if err != nil {
		fmt.Println(fmt.Errorf("\n\tAttempt to read input file %q failed: %w\n", path, err))
		os.Exit(2)
	}

	jsonTable, err := parseJsonTable(data)
	if err != nil {
		fmt.Println(fmt.Errorf("\n\tFormat error in file %q: %w\n", path, err))
		os.Exit(3)
	}

	var design LensDesign
	msg, ok := validateJsonFileAndFillDesign(jsonTable, &design)
	if !ok {
		fmt.Println(msg)
		os.Exit(4)
	}

	// Check for user wanting printout of complete jsonTable
	if design.ShowInput {
		fmt.Printf("%s", "\nPrintout of complete jsonTable contents...\n")
		fmt.Println(string(data))
	}

	fmt.Printf("\nVersion %s\n\n", version)

	lens, err := grin.NewLens(design.N0, design.Pitch, design.LengthMm)
	if err != nil {
		fmt.Println(fmt.Errorf("\n\tThe lens parameters are unusable: %w", err))
		os.Exit(5)
	}

	if design.DiameterMm <= 0.0 {
		fmt.Println(fmt.Errorf("\n\tThe lens diameter must be positive."))
		os.Exit(6)
	}

	if design.RayFanCount < 0 {
		fmt.Println(fmt.Errorf("\n\tray_fan_count must not be negative."))
		os.Exit(7)
	}

	g, err := grin.Gradient(lens.Pitch, lens.LengthMm)
	if err != nil {
		fmt.Println(fmt.Errorf("\n\tGradient calculation failed: %w", err))
		os.Exit(5)
	}
	fmt.Printf("Index gradient is %0.4f /mm (pitch %0.3f over %0.3f mm)\n", g, lens.Pitch, lens.LengthMm)
	fmt.Printf("Index at lens edge is %0.4f (on axis %0.4f)\n\n", lens.IndexAt(design.DiameterMm/2.0), lens.N0)

	fmt.Printf("EFL is %0.4f mm\n", lens.EFL())
	fmt.Printf("FFL is %0.4f mm\n", lens.FFL())
	fmt.Printf("BFL is %0.4f mm\n", lens.BFL())
	fmt.Printf("NA is %0.4f (max acceptance half-angle %0.4f radians)\n\n", lens.NA(design.DiameterMm), lens.MaxAngle(design.DiameterMm))

	cp := lens.CardinalPoints(0.0)
	fmt.Printf("Cardinal points (mm from front surface):\n")
	fmt.Printf("  FF  %9.4f   front focal point\n", cp.FF)
	fmt.Printf("  FL  %9.4f   front lens surface\n", cp.FL)
	fmt.Printf("  FPP %9.4f   front principal plane\n", cp.FPP)
	fmt.Printf("  SPP %9.4f   back principal plane\n", cp.SPP)
	fmt.Printf("  SL  %9.4f   back lens surface\n", cp.SL)
	fmt.Printf("  BF  %9.4f   back focal point\n\n", cp.BF)

	start := time.Now() // Time the ray tracing

	var rays [][2][]float64

	if design.RayFanCount > 0 {
		rSpan := 0.8 * design.DiameterMm / 2.0 // keep the fan inside the paraxial region
		z, fans := lens.MeridionalRayFan(-rSpan, rSpan, design.RayFanAngleRadians, design.RayFanCount, design.CurvePoints)
		for _, fan := range fans {
			rays = append(rays, [2][]float64{z, fan})
		}
		fmt.Printf("Traced a fan of %d rays, %d samples each\n", len(fans), len(z))
	}

	if design.ObjectGiven {
		z, r, err := lens.FullMeridionalCurve(design.ObjectZMm, design.ObjectRMm, design.ObjectRayRLensMm, design.CurvePoints)
		if err != nil {
			if errors.Is(err, grin.ErrInvalidRefraction) {
				fmt.Println(fmt.Errorf("\n\tThe object ray cannot enter the lens: %w", err))
				os.Exit(8)
			}
			fmt.Println(fmt.Errorf("\n\tObject ray trace failed: %w", err))
			os.Exit(9)
		}
		rays = append(rays, [2][]float64{z, r})
		fmt.Printf("Object at z=%0.3f mm images %0.4f mm behind the lens (magnification %0.4f)\n",
			design.ObjectZMm, lens.ImageDistance(design.ObjectZMm), lens.ImageMag(design.ObjectZMm))
	}

	elapsed := time.Since(start)
	fmt.Printf("Ray tracing took %s\n", elapsed)

	err = grin.SavePrincipalPlanesPlot(plotFileName, lens, design.DiameterMm, rays, 1200, 500)
	if err != nil {
		fmt.Println(fmt.Errorf("writing of %q failed: %w", plotFileName, err))
		os.Exit(10)
	}
	fmt.Printf("Saved principal-planes diagram to %q\n", plotFileName)

	elapsed = time.Since(programStart)
	fmt.Printf("\nTotal program run time is %s\n", elapsed)

	if design.WindowSizePixels > 0 {
		size := design.WindowSizePixels

		winTitle := design.Title
		winTitle += fmt.Sprintf("  (pitch=%0.2f, n0=%0.3f)", lens.Pitch, lens.N0)

		// w is our main window, created at the beginning of the program
		w.SetTitle(winTitle)
		w.SetPadded(false)
		w.CenterOnScreen()

		img := canvas.NewImageFromFile(plotFileName)
		img.FillMode = canvas.ImageFillContain
		w.Resize(fyne.Size{Height: float32(size) * 500.0 / 1200.0, Width: float32(size)})

		w.SetContent(container.NewStack(img))
		w.ShowAndRun()
	}
}
