package output

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image"
	"os"
	"path/filepath"
	"strings"

	"github.com/disintegration/imaging"

	"github.com/df07/go-raytrace-engine/pkg/log"
)

var (
	ErrNoBucket = errors.New("output: S3 bucket not configured")
	ErrNoImage  = errors.New("output: nil image")
)

var logger = log.New("output")

// Sink stores a finished frame under name
type Sink interface {
	Write(ctx context.Context, name string, img image.Image) error
}

// EncodePNG encodes img as PNG
func EncodePNG(img image.Image) ([]byte, error) {
	if img == nil {
		return nil, ErrNoImage
	}
	var buf bytes.Buffer
	if err := imaging.Encode(&buf, img, imaging.PNG); err != nil {
		return nil, fmt.Errorf("encode png: %w", err)
	}
	return buf.Bytes(), nil
}

// pngName appends the .png extension when name has none
func pngName(name string) string {
	if strings.EqualFold(filepath.Ext(name), ".png") {
		return name
	}
	return name + ".png"
}

// FileSink writes PNG files below Dir
type FileSink struct {
	Dir string
}

// NewFileSink creates a sink writing into dir
func NewFileSink(dir string) *FileSink {
	return &FileSink{Dir: dir}
}

// Path returns the file a frame called name is written to
func (s *FileSink) Path(name string) string {
	return filepath.Join(s.Dir, pngName(name))
}

func (s *FileSink) Write(ctx context.Context, name string, img image.Image) error {
	if img == nil {
		return ErrNoImage
	}
	if err := ctx.Err(); err != nil {
		return err
	}

	filename := s.Path(name)
	if err := os.MkdirAll(filepath.Dir(filename), 0755); err != nil {
		return fmt.Errorf("create output directory: %w", err)
	}
	if err := imaging.Save(img, filename); err != nil {
		return fmt.Errorf("save %s: %w", filename, err)
	}

	logger.Noticef("wrote frame to %s", filename)
	return nil
}

// MultiSink writes every frame to each of its sinks in order, stopping at the first error
type MultiSink []Sink

func (m MultiSink) Write(ctx context.Context, name string, img image.Image) error {
	for _, sink := range m {
		if err := sink.Write(ctx, name, img); err != nil {
			return err
		}
	}
	return nil
}
