package build

import (
	"context"
	"sync"
)

// runPool calls work for every index in [0, n) on at most workers
// goroutines. Indexes still queued when ctx is cancelled are passed to
// cancelled instead.
func runPool(ctx context.Context, workers, n int, work func(ctx context.Context, idx int), cancelled func(idx int, err error)) {
	if n == 0 {
		return
	}
	if workers < 1 {
		workers = 1
	}
	if workers > n {
		workers = n
	}

	var wg sync.WaitGroup
	jobs := make(chan int, n)

	for range workers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for idx := range jobs {
				if err := ctx.Err(); err != nil {
					cancelled(idx, err)
					continue
				}
				work(ctx, idx)
			}
		}()
	}

	for i := range n {
		jobs <- i
	}
	close(jobs)

	wg.Wait()
}
