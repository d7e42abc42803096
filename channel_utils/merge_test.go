package channel_utils

import (
	"sort"
	"testing"

	"github.com/panjf2000/ants/v2"
)

func TestMergeChannels(t *testing.T) {
	workerPool, err := ants.NewPool(10)
	if err != nil {
		t.Fatal("Failed to create worker pool:", err)
	}
	defer workerPool.Release()

	first := make(chan int)
	second := make(chan int)

	merged, err := MergeChannels(workerPool, first, second)
	if err != nil {
		t.Fatal("Failed to merge channels:", err)
	}

	go func() {
		defer close(first)
		first <- 1
		first <- 2
	}()
	go func() {
		defer close(second)
		second <- 3
	}()

	var got []int
	for val := range merged {
		got = append(got, val)
	}

	sort.Ints(got)
	if len(got) != 3 || got[0] != 1 || got[1] != 2 || got[2] != 3 {
		t.Fatal("unexpected merged values:", got)
	}
}
