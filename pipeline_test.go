package planar

import (
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTask(t *testing.T) {
	tests := []struct {
		name    string
		size    int
		workers int
	}{
		{"empty", 0, 4},
		{"fewer items than workers", 3, 8},
		{"uneven chunks", 10, 3},
		{"single worker", 7, 1},
		{"no worker", 5, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			data := make([]int, tt.size)
			for i := range data {
				data[i] = i + 1
			}

			var sum, calls atomic.Int64
			task(tt.workers, data, func(v int) {
				sum.Add(int64(v))
				calls.Add(1)
			})

			assert.Equal(t, int64(tt.size), calls.Load())
			assert.Equal(t, int64(tt.size*(tt.size+1)/2), sum.Load())
		})
	}
}
