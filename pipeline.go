package cull

import "sync"

// taskRange splits n items into contiguous chunks across workersCount
// goroutines and waits for completion. fn receives the [start, end) range
// of its chunk so workers write results by index without sharing.
func taskRange(workersCount, n int, fn func(start, end int)) {
	var wg sync.WaitGroup
	chunkSize := (n + workersCount - 1) / workersCount

	for workerID := 0; workerID < workersCount; workerID++ {
		start := workerID * chunkSize
		end := min(start+chunkSize, n)
		if start >= end {
			break
		}
		wg.Add(1)
		go func(start, end int) {
			defer wg.Done()
			fn(start, end)
		}(start, end)
	}
	wg.Wait()
}
