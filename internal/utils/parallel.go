package utils

import (
	"context"
	"sync"
)

// ParallelTask is one independent unit of work.
type ParallelTask func(ctx context.Context) error

// RunParallelTasks executes tasks concurrently and returns their errors in
// task order. A nil entry means that task succeeded.
func RunParallelTasks(ctx context.Context, tasks ...ParallelTask) []error {
	var wg sync.WaitGroup
	errs := make([]error, len(tasks))

	wg.Add(len(tasks))
	for i, task := range tasks {
		go func(index int, t ParallelTask) {
			defer wg.Done()
			errs[index] = t(ctx)
		}(i, task)
	}

	wg.Wait()
	return errs
}

// FirstError returns the first non-nil error in errs.
func FirstError(errs []error) error {
	for _, err := range errs {
		if err != nil {
			return err
		}
	}
	return nil
}
