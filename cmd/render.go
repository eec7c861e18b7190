package cmd

import (
	"bytes"
	"fmt"
	"image"

	"github.com/olekukonko/tablewriter"
	"github.com/urfave/cli"

	"github.com/df07/go-raytrace-engine/pkg/renderer"
)

// Render a full resolution frame and write it to the configured sinks.
func RenderFrame(ctx *cli.Context) error {
	setupLogging(ctx)

	sc, camera, config, err := setupScene(ctx)
	if err != nil {
		return err
	}

	rt := renderer.NewRaytracer(sc, camera, config, nil)
	img := image.NewRGBA(image.Rect(0, 0, config.Width, config.Height))
	stats, err := rt.Render(img)
	if err != nil {
		return err
	}

	displayFrameStats(stats)
	return writeFrame(ctx, img)
}

// Render a low resolution pass scaled up to the full frame size.
func RenderPreview(ctx *cli.Context) error {
	setupLogging(ctx)

	sc, camera, config, err := setupScene(ctx)
	if err != nil {
		return err
	}

	rt := renderer.NewRaytracer(sc, camera, config, nil)
	img := image.NewRGBA(image.Rect(0, 0, config.Width, config.Height))
	stats, err := rt.RenderPreview(img, ctx.Int("factor"))
	if err != nil {
		return err
	}

	displayFrameStats(stats)
	return writeFrame(ctx, img)
}

func displayFrameStats(stats renderer.RenderStats) {
	logger.Noticef("frame statistics\n%s", formatFrameStats(stats))
}

func formatFrameStats(stats renderer.RenderStats) string {
	var buf bytes.Buffer
	table := tablewriter.NewWriter(&buf)
	table.SetAutoFormatHeaders(false)
	table.SetAutoWrapText(false)
	table.SetHeader([]string{"Pixels", "Hits", "Misses", "Bands", "Workers", "Pixels/s"})
	table.Append([]string{
		fmt.Sprintf("%d", stats.Pixels),
		fmt.Sprintf("%d (%02.1f %%)", stats.Hits, 100*stats.HitRatio()),
		fmt.Sprintf("%d", stats.Misses),
		fmt.Sprintf("%d", stats.Bands),
		fmt.Sprintf("%d", stats.Workers),
		fmt.Sprintf("%.0f", stats.PixelsPerSecond()),
	})
	table.SetFooter([]string{"", "", "", "", "TOTAL", stats.Duration.String()})

	table.Render()
	return buf.String()
}
