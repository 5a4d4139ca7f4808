package parallel

import (
	"sync"
	"sync/atomic"
	"testing"
)

func TestRunCoversEveryRowOnce(t *testing.T) {
	tests := []struct {
		name string
		rows int
	}{
		{"zero", 0},
		{"single", 1},
		{"below chunk size", minRowsPerChunk - 1},
		{"exact chunk", minRowsPerChunk},
		{"many chunks", 1000},
		{"uneven tail", 1000 + 7},
	}
	pool := NewWorkerPool(4)
	defer pool.Close()

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			counts := make([]int32, tt.rows)
			pool.Run(tt.rows, func(y int) {
				atomic.AddInt32(&counts[y], 1)
			})
			for y, n := range counts {
				if n != 1 {
					t.Fatalf("row %d visited %d times", y, n)
				}
			}
		})
	}
}

func TestRunBlocksUntilDone(t *testing.T) {
	pool := NewWorkerPool(2)
	defer pool.Close()

	var sum atomic.Int64
	pool.Run(500, func(y int) {
		sum.Add(int64(y))
	})
	if got, want := sum.Load(), int64(500*499/2); got != want {
		t.Errorf("sum after Run = %d, want %d", got, want)
	}
}

func TestConcurrentRuns(t *testing.T) {
	pool := NewWorkerPool(4)
	defer pool.Close()

	var wg sync.WaitGroup
	for g := 0; g < 4; g++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			counts := make([]int32, 300)
			pool.Run(300, func(y int) {
				atomic.AddInt32(&counts[y], 1)
			})
			for y, n := range counts {
				if n != 1 {
					t.Errorf("row %d visited %d times", y, n)
					return
				}
			}
		}()
	}
	wg.Wait()
}

func TestCloseIsIdempotent(t *testing.T) {
	pool := NewWorkerPool(2)
	pool.Close()
	pool.Close()
}

func TestSharedRows(t *testing.T) {
	counts := make([]int32, 200)
	Rows(200, func(y int) {
		atomic.AddInt32(&counts[y], 1)
	})
	for y, n := range counts {
		if n != 1 {
			t.Fatalf("row %d visited %d times", y, n)
		}
	}
}
