package main

import (
	"fmt"
	"os"

	"github.com/urfave/cli"

	"github.com/df07/go-raytrace-engine/cmd"
)

func newApp() *cli.App {
	app := cli.NewApp()
	app.Name = "raytracer"
	app.Usage = "render scenes with a Whitted-style ray tracer"
	app.Version = "0.1.0"
	app.Flags = []cli.Flag{
		cli.BoolFlag{
			Name:  "v",
			Usage: "enable verbose logging",
		},
		cli.BoolFlag{
			Name:  "vv",
			Usage: "enable even more verbose logging",
		},
	}
	app.Commands = []cli.Command{
		{
			Name:   "list-scenes",
			Usage:  "list the built-in scenes",
			Action: cmd.ListScenes,
		},
		{
			Name:  "render",
			Usage: "render a single frame",
			Description: `
Render one frame of a built-in scene at full resolution. The frame is written
to <out>/<scene>/<name>.png and, when --s3-bucket is set, uploaded to
<s3-prefix>/<scene>/<name>.png.

Flags fall back to RAYTRACER_* and S3_* environment variables, which may also
be set in a .env file in the working directory.`,
			Flags:  append(append([]cli.Flag{}, cmd.SceneFlags...), cmd.RenderFlags...),
			Action: cmd.RenderFrame,
		},
		{
			Name:        "preview",
			Usage:       "render a low resolution preview",
			Description: `Render at 1/factor resolution and scale the result up to the frame size.`,
			Flags: append(append([]cli.Flag{
				cli.IntFlag{
					Name:   "factor, f",
					Value:  4,
					Usage:  "downscale factor",
					EnvVar: "RAYTRACER_PREVIEW_FACTOR",
				},
			}, cmd.SceneFlags...), cmd.RenderFlags...),
			Action: cmd.RenderPreview,
		},
		{
			Name:  "pick",
			Usage: "report the surface seen through a pixel",
			Flags: append([]cli.Flag{
				cli.IntFlag{
					Name:  "x",
					Usage: "pixel column, 0 is the left edge",
				},
				cli.IntFlag{
					Name:  "y",
					Usage: "pixel row, 0 is the top edge",
				},
			}, cmd.SceneFlags...),
			Action: cmd.PickPixel,
		},
	}
	return app
}

func main() {
	cmd.LoadEnv(".env")

	if err := newApp().Run(os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}
