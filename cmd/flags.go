package cmd

import (
	"context"
	"fmt"
	"image"
	"time"

	"github.com/urfave/cli"

	"github.com/df07/go-raytrace-engine/pkg/output"
	"github.com/df07/go-raytrace-engine/pkg/renderer"
	"github.com/df07/go-raytrace-engine/pkg/scene"
)

// SceneFlags select the scene and frame geometry
var SceneFlags = []cli.Flag{
	cli.StringFlag{
		Name:   "scene, s",
		Value:  "default",
		Usage:  "built-in scene id (see list-scenes)",
		EnvVar: "RAYTRACER_SCENE",
	},
	cli.IntFlag{
		Name:   "width",
		Value:  800,
		Usage:  "frame width",
		EnvVar: "RAYTRACER_WIDTH",
	},
	cli.IntFlag{
		Name:   "height",
		Value:  450,
		Usage:  "frame height",
		EnvVar: "RAYTRACER_HEIGHT",
	},
}

// RenderFlags control the worker pool and where frames go
var RenderFlags = []cli.Flag{
	cli.IntFlag{
		Name:   "workers, w",
		Value:  0,
		Usage:  "render goroutines, 0 for one per CPU",
		EnvVar: "RAYTRACER_WORKERS",
	},
	cli.IntFlag{
		Name:   "rows",
		Value:  8,
		Usage:  "scanlines per band handed to a worker",
		EnvVar: "RAYTRACER_ROWS",
	},
	cli.StringFlag{
		Name:   "out, o",
		Value:  "output",
		Usage:  "directory for rendered frames, empty to skip writing a file",
		EnvVar: "RAYTRACER_OUT",
	},
	cli.StringFlag{
		Name:  "name",
		Usage: "frame name, defaults to render_<timestamp>",
	},
	cli.StringFlag{
		Name:   "s3-bucket",
		Usage:  "upload frames to this bucket",
		EnvVar: "S3_BUCKET",
	},
	cli.StringFlag{
		Name:   "s3-prefix",
		Usage:  "key prefix for uploaded frames",
		EnvVar: "S3_PREFIX",
	},
	cli.StringFlag{
		Name:   "s3-region",
		Value:  "us-east-1",
		Usage:  "bucket region",
		EnvVar: "S3_REGION",
	},
	cli.StringFlag{
		Name:   "s3-endpoint",
		Usage:  "endpoint of an S3-compatible store",
		EnvVar: "S3_ENDPOINT",
	},
	cli.StringFlag{
		Name:   "s3-access-key",
		EnvVar: "S3_ACCESS_KEY",
		Usage:  "static access key, defaults to the AWS credential chain",
	},
	cli.StringFlag{
		Name:   "s3-secret-key",
		EnvVar: "S3_SECRET_KEY",
		Usage:  "static secret key",
	},
	cli.DurationFlag{
		Name:   "s3-timeout",
		Value:  output.DefaultUploadTimeout,
		Usage:  "upload timeout",
		EnvVar: "S3_TIMEOUT",
	},
}

// Load the selected scene and a camera matching the frame aspect ratio.
func setupScene(ctx *cli.Context) (*scene.Scene, *renderer.Camera, renderer.Config, error) {
	config := renderer.DefaultConfig()
	config.Width = ctx.Int("width")
	config.Height = ctx.Int("height")
	config.Workers = ctx.Int("workers")
	config.RowsPerTask = ctx.Int("rows")
	if ctx.IsSet("factor") {
		config.PreviewFactor = ctx.Int("factor")
	}

	if config.Width <= 0 || config.Height <= 0 {
		return nil, nil, config, fmt.Errorf("invalid frame size %dx%d", config.Width, config.Height)
	}

	sc, err := scene.Load(ctx.String("scene"))
	if err != nil {
		return nil, nil, config, err
	}
	logger.Infof("loaded scene %q with %d primitives and %d lights", ctx.String("scene"), sc.PrimitiveCount(), len(sc.Lights()))

	return sc, renderer.NewCameraForView(sc.View, config.AspectRatio()), config, nil
}

// Build the sink chain selected by --out and --s3-bucket. A nil sink means
// nothing is written.
func setupSinks(ctx *cli.Context) (output.Sink, error) {
	var sinks output.MultiSink

	if dir := ctx.String("out"); dir != "" {
		sinks = append(sinks, output.NewFileSink(dir))
	}

	if bucket := ctx.String("s3-bucket"); bucket != "" {
		s3Sink, err := output.DialS3(output.S3Config{
			Bucket:    bucket,
			Prefix:    ctx.String("s3-prefix"),
			Region:    ctx.String("s3-region"),
			Endpoint:  ctx.String("s3-endpoint"),
			AccessKey: ctx.String("s3-access-key"),
			SecretKey: ctx.String("s3-secret-key"),
			Timeout:   ctx.Duration("s3-timeout"),
		})
		if err != nil {
			return nil, err
		}
		sinks = append(sinks, s3Sink)
	}

	if len(sinks) == 0 {
		return nil, nil
	}
	return sinks, nil
}

// frameName returns the object name for a frame: <scene>/<name>
func frameName(ctx *cli.Context, now time.Time) string {
	name := ctx.String("name")
	if name == "" {
		name = "render_" + now.Format("20060102_150405")
	}
	return ctx.String("scene") + "/" + name
}

func writeFrame(ctx *cli.Context, img image.Image) error {
	sink, err := setupSinks(ctx)
	if err != nil {
		return err
	}
	if sink == nil {
		logger.Notice("no output configured, frame discarded")
		return nil
	}
	return sink.Write(context.Background(), frameName(ctx, time.Now()), img)
}
