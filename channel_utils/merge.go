package channel_utils

import (
	"generate-lecture-video/application/ports/outbound"
	"sync"
)

// MergeChannels fans any number of channels into one, draining each on
// the worker pool. The merged channel closes once every input closes.
func MergeChannels[T any](workerPool outbound.TaskDispatcher, channels ...<-chan T) (<-chan T, error) {
	var wg sync.WaitGroup
	merged := make(chan T)

	drain := func(c <-chan T) {
		for val := range c {
			merged <- val
		}
		wg.Done()
	}

	wg.Add(len(channels))
	for _, c := range channels {
		ch := c
		err := workerPool.Submit(func() {
			drain(ch)
		})
		if err != nil {
			wg.Done()
			return nil, err
		}
	}

	err := workerPool.Submit(func() {
		wg.Wait()
		close(merged)
	})
	if err != nil {
		return nil, err
	}

	return merged, nil
}
