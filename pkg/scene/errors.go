package scene

import "errors"

var (
	ErrLightIndex      = errors.New("scene: light index out of range")
	ErrShapeNotFound   = errors.New("scene: shape not found")
	ErrUnknownMaterial = errors.New("scene: unknown material")
	ErrUnknownScene    = errors.New("scene: unknown scene")
)
