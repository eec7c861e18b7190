package renderer

import (
	"context"
	"fmt"
	"runtime"

	"golang.org/x/sync/errgroup"
)

// BandTask is a horizontal strip of scanlines [Y0, Y1)
type BandTask struct {
	ID int // Index into the result slice
	Y0 int
	Y1 int
}

// WorkerPool distributes bands across a fixed number of goroutines.
// Workers pull the next band as soon as they finish one.
type WorkerPool struct {
	numWorkers int
}

// NewWorkerPool creates a worker pool with the specified number of workers
func NewWorkerPool(numWorkers int) *WorkerPool {
	if numWorkers <= 0 {
		numWorkers = runtime.NumCPU()
	}
	return &WorkerPool{numWorkers: numWorkers}
}

// NumWorkers returns the number of workers in the pool
func (wp *WorkerPool) NumWorkers() int {
	return wp.numWorkers
}

// SplitBands cuts height scanlines into bands of rowsPerTask rows
func SplitBands(height, rowsPerTask int) []BandTask {
	if rowsPerTask <= 0 {
		rowsPerTask = 1
	}
	tasks := make([]BandTask, 0, (height+rowsPerTask-1)/rowsPerTask)
	for y := 0; y < height; y += rowsPerTask {
		tasks = append(tasks, BandTask{ID: len(tasks), Y0: y, Y1: min(y+rowsPerTask, height)})
	}
	return tasks
}

// Run executes work for every task and returns the per-task stats indexed by
// task ID. It returns once all workers have stopped. A panicking worker is
// reported as an error and stops the remaining bands from being handed out.
func (wp *WorkerPool) Run(tasks []BandTask, work func(BandTask) RenderStats) ([]RenderStats, error) {
	results := make([]RenderStats, len(tasks))
	queue := make(chan BandTask)
	g, ctx := errgroup.WithContext(context.Background())

	g.Go(func() error {
		defer close(queue)
		for _, task := range tasks {
			select {
			case queue <- task:
			case <-ctx.Done():
				return nil
			}
		}
		return nil
	})

	for i := 0; i < wp.numWorkers; i++ {
		i := i
		g.Go(func() (err error) {
			defer func() {
				if r := recover(); r != nil {
					err = fmt.Errorf("renderer: worker %d panicked: %v", i, r)
				}
			}()
			for task := range queue {
				results[task.ID] = work(task)
			}
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}
