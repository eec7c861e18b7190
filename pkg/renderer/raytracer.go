package renderer

import (
	"fmt"
	"image"
	"image/draw"
	"math"
	"runtime"
	"time"

	"github.com/nfnt/resize"

	"github.com/df07/go-raytrace-engine/pkg/core"
	"github.com/df07/go-raytrace-engine/pkg/integrator"
	"github.com/df07/go-raytrace-engine/pkg/log"
	"github.com/df07/go-raytrace-engine/pkg/material"
	"github.com/df07/go-raytrace-engine/pkg/scene"
)

// Config contains rendering configuration
type Config struct {
	Width         int // Image width
	Height        int // Image height
	Workers       int // Worker goroutines, 0 means one per CPU
	RowsPerTask   int // Scanlines per band handed to a worker
	PreviewFactor int // Downscale factor used by RenderPreview
}

// DefaultConfig returns the default rendering configuration
func DefaultConfig() Config {
	return Config{
		Width:         800,
		Height:        450,
		Workers:       runtime.NumCPU(),
		RowsPerTask:   8,
		PreviewFactor: 4,
	}
}

// AspectRatio returns width / height
func (c Config) AspectRatio() float64 {
	return float64(c.Width) / float64(c.Height)
}

// Raytracer renders a scene through a camera into 8-bit RGBA buffers
type Raytracer struct {
	scene      *scene.Scene
	camera     *Camera
	integrator *integrator.PhongIntegrator
	config     Config
	logger     log.Logger
}

// NewRaytracer creates a new raytracer. A nil integrator uses default offsets.
func NewRaytracer(s *scene.Scene, camera *Camera, config Config, integ *integrator.PhongIntegrator) *Raytracer {
	if integ == nil {
		integ = integrator.NewPhongIntegrator(integrator.DefaultConfig())
	}
	if config.RowsPerTask <= 0 {
		config.RowsPerTask = DefaultConfig().RowsPerTask
	}
	if config.PreviewFactor <= 0 {
		config.PreviewFactor = DefaultConfig().PreviewFactor
	}
	return &Raytracer{
		scene:      s,
		camera:     camera,
		integrator: integ,
		config:     config,
		logger:     log.New("renderer"),
	}
}

// Config returns the rendering configuration
func (rt *Raytracer) Config() Config {
	return rt.config
}

// SetScene replaces the scene rendered by subsequent passes
func (rt *Raytracer) SetScene(s *scene.Scene) {
	rt.scene = s
}

// SetCamera replaces the camera used by subsequent passes
func (rt *Raytracer) SetCamera(camera *Camera) {
	rt.camera = camera
}

// Render fills img, which must be exactly Width×Height, with one ray per pixel
func (rt *Raytracer) Render(img *image.RGBA) (RenderStats, error) {
	if err := rt.prepare(); err != nil {
		return RenderStats{}, err
	}
	if img == nil || img.Bounds().Dx() != rt.config.Width || img.Bounds().Dy() != rt.config.Height {
		return RenderStats{}, fmt.Errorf("%w: want %dx%d", ErrBufferSize, rt.config.Width, rt.config.Height)
	}

	stats, err := rt.renderPass(img)
	if err != nil {
		return RenderStats{}, err
	}
	rt.logger.Infof("rendered %dx%d in %s (%d bands, %d workers, %.1f%% hits)",
		rt.config.Width, rt.config.Height, stats.Duration, stats.Bands, stats.Workers, 100*stats.HitRatio())
	return stats, nil
}

// RenderPreview renders at 1/factor resolution and scales the result up to
// fill img with nearest-neighbour sampling. A factor <= 0 uses PreviewFactor.
func (rt *Raytracer) RenderPreview(img *image.RGBA, factor int) (RenderStats, error) {
	if err := rt.prepare(); err != nil {
		return RenderStats{}, err
	}
	if img == nil || img.Bounds().Dx() != rt.config.Width || img.Bounds().Dy() != rt.config.Height {
		return RenderStats{}, fmt.Errorf("%w: want %dx%d", ErrBufferSize, rt.config.Width, rt.config.Height)
	}
	if factor <= 0 {
		factor = rt.config.PreviewFactor
	}

	small := image.NewRGBA(image.Rect(0, 0, max(rt.config.Width/factor, 1), max(rt.config.Height/factor, 1)))
	stats, err := rt.renderPass(small)
	if err != nil {
		return RenderStats{}, err
	}

	upscaled := resize.Resize(uint(rt.config.Width), uint(rt.config.Height), small, resize.NearestNeighbor)
	draw.Draw(img, img.Bounds(), upscaled, upscaled.Bounds().Min, draw.Src)

	rt.logger.Infof("rendered %dx%d preview (1/%d) in %s", small.Bounds().Dx(), small.Bounds().Dy(), factor, stats.Duration)
	return stats, nil
}

// Pick returns the nearest surface along ray
func (rt *Raytracer) Pick(ray core.Ray) (material.HitRecord, bool, error) {
	if rt.scene == nil {
		return material.HitRecord{}, false, ErrSceneNotDefined
	}
	if err := rt.scene.Build(); err != nil {
		return material.HitRecord{}, false, err
	}

	var rec material.HitRecord
	hit := rt.scene.Hit(ray, rt.integrator.Config().TMin, math.Inf(1), &rec)
	return rec, hit, nil
}

// PickPixel returns the nearest surface seen through the center of pixel (x, y),
// with (0, 0) the top-left pixel
func (rt *Raytracer) PickPixel(x, y int) (material.HitRecord, bool, error) {
	if rt.camera == nil {
		return material.HitRecord{}, false, ErrCameraNotDefined
	}
	if x < 0 || y < 0 || x >= rt.config.Width || y >= rt.config.Height {
		return material.HitRecord{}, false, fmt.Errorf("%w: (%d, %d)", ErrPixelOutOfRange, x, y)
	}
	u, v := pixelToUV(x, y, rt.config.Width, rt.config.Height)
	return rt.Pick(rt.camera.GetRay(u, v))
}

// prepare validates the inputs and rebuilds the BVH before workers start
func (rt *Raytracer) prepare() error {
	if rt.scene == nil {
		return ErrSceneNotDefined
	}
	if rt.camera == nil {
		return ErrCameraNotDefined
	}
	if err := rt.scene.Build(); err != nil {
		return err
	}

	bvhStats := rt.scene.BVH().Stats()
	rt.logger.Debugf("BVH: %d nodes, %d leaves, depth %d, %d shapes",
		bvhStats.TotalNodes, bvhStats.LeafNodes, bvhStats.MaxDepth, bvhStats.TotalShapes)
	return nil
}

// renderPass shades every pixel of img in parallel bands
func (rt *Raytracer) renderPass(img *image.RGBA) (RenderStats, error) {
	start := time.Now()
	width, height := img.Bounds().Dx(), img.Bounds().Dy()

	pool := NewWorkerPool(rt.config.Workers)
	bands := SplitBands(height, rt.config.RowsPerTask)

	results, err := pool.Run(bands, func(band BandTask) RenderStats {
		return rt.renderBand(img, band, width, height)
	})
	if err != nil {
		return RenderStats{}, err
	}

	stats := RenderStats{Workers: pool.NumWorkers()}
	for _, r := range results {
		stats.Merge(r)
	}
	stats.Duration = time.Since(start)
	return stats, nil
}

// renderBand shades rows [band.Y0, band.Y1). Each pixel owns a disjoint slot in img.
func (rt *Raytracer) renderBand(img *image.RGBA, band BandTask, width, height int) RenderStats {
	stats := RenderStats{Bands: 1}
	tMin := rt.integrator.Config().TMin
	origin := img.Bounds().Min

	for j := band.Y0; j < band.Y1; j++ {
		for i := 0; i < width; i++ {
			u, v := pixelToUV(i, j, width, height)
			ray := rt.camera.GetRay(u, v)

			var color core.Vec3
			var rec material.HitRecord
			if rt.scene.Hit(ray, tMin, math.Inf(1), &rec) {
				color = rt.integrator.Shade(ray, &rec, rt.scene)
				stats.Hits++
			} else {
				color = rt.integrator.Background(ray, rt.scene)
				stats.Misses++
			}

			offset := img.PixOffset(origin.X+i, origin.Y+j)
			r, g, b := vec3ToBytes(color)
			img.Pix[offset+0] = r
			img.Pix[offset+1] = g
			img.Pix[offset+2] = b
			img.Pix[offset+3] = 255
			stats.Pixels++
		}
	}
	return stats
}

// pixelToUV maps the center of pixel (i, j) to camera coordinates with v=1 at the top row
func pixelToUV(i, j, width, height int) (float64, float64) {
	u := (float64(i) + 0.5) / float64(width)
	v := 1.0 - (float64(j)+0.5)/float64(height)
	return u, v
}

// vec3ToBytes clamps a color to [0, 1] and quantizes each channel
func vec3ToBytes(c core.Vec3) (uint8, uint8, uint8) {
	c = c.Clamp(0.0, 1.0)
	return uint8(255 * c.X), uint8(255 * c.Y), uint8(255 * c.Z)
}
