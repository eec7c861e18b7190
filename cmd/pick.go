package cmd

import (
	"fmt"

	"github.com/urfave/cli"

	"github.com/df07/go-raytrace-engine/pkg/renderer"
)

// Report the surface seen through a pixel.
func PickPixel(ctx *cli.Context) error {
	setupLogging(ctx)

	sc, camera, config, err := setupScene(ctx)
	if err != nil {
		return err
	}

	x, y := ctx.Int("x"), ctx.Int("y")
	rt := renderer.NewRaytracer(sc, camera, config, nil)
	rec, hit, err := rt.PickPixel(x, y)
	if err != nil {
		return err
	}

	if !hit {
		fmt.Fprintf(ctx.App.Writer, "pixel (%d, %d): background\n", x, y)
		return nil
	}

	material := "<none>"
	if rec.Material != nil {
		material = rec.Material.Name
	}
	fmt.Fprintf(ctx.App.Writer, "pixel (%d, %d): %s (material %s) t=%.4f point=%v normal=%v\n",
		x, y, rec.Name, material, rec.T, rec.Point, rec.Normal)
	return nil
}
