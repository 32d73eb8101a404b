package spectral

import (
	"runtime"
	"sync"
)

// runFrames calls the work function for every frame in [0, numFrames) and
// drives progress from the calling goroutine. newWorker is called once per
// worker so each can own its scratch buffers.
func (s *STFT) runFrames(numFrames int, progress Progress, newWorker func() func(frame int)) {
	progress.Start(numFrames)
	defer progress.Finish()

	numWorkers := s.workerCount(numFrames)
	if numWorkers <= 1 {
		work := newWorker()
		for i := 0; i < numFrames; i++ {
			work(i)
			progress.Update(i + 1)
		}
		return
	}

	jobs := make(chan int, numFrames)
	done := make(chan struct{}, numFrames)

	var wg sync.WaitGroup
	for w := 0; w < numWorkers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()

			work := newWorker()
			for frame := range jobs {
				work(frame)
				done <- struct{}{}
			}
		}()
	}

	for i := 0; i < numFrames; i++ {
		jobs <- i
	}
	close(jobs)

	for finished := 1; finished <= numFrames; finished++ {
		<-done
		progress.Update(finished)
	}
	wg.Wait()
}

// workerCount picks the pool size from Config.Workers or the workload
func (s *STFT) workerCount(numFrames int) int {
	if numFrames <= 1 {
		return 1
	}
	if s.cfg.Workers > 0 {
		return min(s.cfg.Workers, numFrames)
	}

	numCPU := runtime.NumCPU()

	// small workloads don't pay for goroutines
	if numFrames < 100 {
		return max(min(numCPU/2, numFrames), 1)
	}
	if numFrames < 1000 {
		return min(numCPU, 8)
	}
	return numCPU
}
