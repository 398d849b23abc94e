package stance

import "sync"

// task runs fn over data in contiguous chunks spread across workersCount
// goroutines. Per-contact work is independent, so no synchronization beyond
// the final join is needed.
func task[T any](workersCount int, data []T, fn func(i int, data *T)) {
	var wg sync.WaitGroup
	dataSize := len(data)
	chunkSize := (dataSize + workersCount - 1) / workersCount

	for workerID := 0; workerID < workersCount; workerID++ {
		wg.Add(1)
		go func(start, end int) {
			defer wg.Done()
			for i := start; i < end; i++ {
				fn(i, &data[i])
			}
		}(workerID*chunkSize, min((workerID+1)*chunkSize, dataSize))
	}
	wg.Wait()
}
