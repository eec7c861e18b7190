package material

import (
	"github.com/df07/go-raytrace-engine/pkg/core"
)

// newGeneratedTexture fills a width×height texture from a per-pixel function
func newGeneratedTexture(width, height int, pixel func(x, y int) core.Vec3) *ImageTexture {
	pixels := make([]core.Vec3, width*height)
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			pixels[y*width+x] = pixel(x, y)
		}
	}
	return &ImageTexture{Width: width, Height: height, Pixels: pixels}
}

// NewCheckerboardTexture creates a checkerboard pattern in texture space.
// Unlike Checker, the pattern follows the surface parameterization.
func NewCheckerboardTexture(width, height, checkSize int, color1, color2 core.Vec3) *ImageTexture {
	return newGeneratedTexture(width, height, func(x, y int) core.Vec3 {
		if (x/checkSize+y/checkSize)%2 == 0 {
			return color1
		}
		return color2
	})
}

// NewUVDebugTexture creates a texture showing UV coordinates as colors
// U maps to red channel, V maps to green channel
func NewUVDebugTexture(width, height int) *ImageTexture {
	return newGeneratedTexture(width, height, func(x, y int) core.Vec3 {
		u := float64(x) / float64(max(width-1, 1))
		v := 1.0 - float64(y)/float64(max(height-1, 1))
		return core.NewVec3(u, v, 0.0)
	})
}

// NewGradientTexture creates a vertical gradient from color1 (top) to color2 (bottom)
func NewGradientTexture(width, height int, color1, color2 core.Vec3) *ImageTexture {
	return newGeneratedTexture(width, height, func(x, y int) core.Vec3 {
		t := float64(y) / float64(max(height-1, 1))
		return color1.Lerp(color2, t)
	})
}
