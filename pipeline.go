package tindem

import "sync"

// parallelFor runs fn(i) for every i in [0, n), splitting the range into one
// contiguous chunk per worker, and returns once all chunks are done.
func parallelFor(workersCount, n int, fn func(i int)) {
	if n == 0 {
		return
	}
	workersCount = max(1, min(workersCount, n))

	var wg sync.WaitGroup
	chunkSize := (n + workersCount - 1) / workersCount

	for workerID := 0; workerID < workersCount; workerID++ {
		wg.Add(1)
		go func(start, end int) {
			defer wg.Done()
			for i := start; i < end; i++ {
				fn(i)
			}
		}(workerID*chunkSize, min((workerID+1)*chunkSize, n))
	}
	wg.Wait()
}
