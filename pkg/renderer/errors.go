package renderer

import "errors"

var (
	ErrSceneNotDefined  = errors.New("renderer: scene not defined")
	ErrCameraNotDefined = errors.New("renderer: camera not defined")
	ErrBufferSize       = errors.New("renderer: image buffer does not match configured size")
	ErrPixelOutOfRange  = errors.New("renderer: pixel out of range")
)
