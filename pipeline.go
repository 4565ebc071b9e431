package planar

import "golang.org/x/sync/errgroup"

// task splits data in workersCount chunks and runs fn on every element
func task[T any](workersCount int, data []T, fn func(data T)) {
	dataSize := len(data)
	if dataSize == 0 {
		return
	}
	workersCount = max(1, workersCount)
	chunkSize := (dataSize + workersCount - 1) / workersCount

	var g errgroup.Group
	for start := 0; start < dataSize; start += chunkSize {
		end := min(start+chunkSize, dataSize)
		g.Go(func() error {
			for i := start; i < end; i++ {
				fn(data[i])
			}
			return nil
		})
	}
	_ = g.Wait()
}
