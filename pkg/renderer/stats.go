package renderer

import "time"

// RenderStats contains statistics about one rendering pass
type RenderStats struct {
	Pixels   int           // Pixels written
	Hits     int           // Primary rays that hit a surface
	Misses   int           // Primary rays that fell through to the sky
	Bands    int           // Scanline bands processed
	Workers  int           // Worker goroutines used
	Duration time.Duration // Wall time of the pass
}

// Merge adds the counters of other into s
func (s *RenderStats) Merge(other RenderStats) {
	s.Pixels += other.Pixels
	s.Hits += other.Hits
	s.Misses += other.Misses
	s.Bands += other.Bands
}

// HitRatio returns the fraction of primary rays that hit something
func (s RenderStats) HitRatio() float64 {
	if s.Pixels == 0 {
		return 0
	}
	return float64(s.Hits) / float64(s.Pixels)
}

// PixelsPerSecond returns the pass throughput
func (s RenderStats) PixelsPerSecond() float64 {
	if s.Duration <= 0 {
		return 0
	}
	return float64(s.Pixels) / s.Duration.Seconds()
}
