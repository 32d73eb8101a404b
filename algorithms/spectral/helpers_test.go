package spectral

import (
	"fmt"
	"sync"
)

// recorder captures Progress calls in order
type recorder struct {
	mu     sync.Mutex
	events []string
	total  int
	counts []int
}

func (r *recorder) Start(total int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.total = total
	r.events = append(r.events, fmt.Sprintf("start:%d", total))
}

func (r *recorder) Update(done int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.counts = append(r.counts, done)
	r.events = append(r.events, "update")
}

func (r *recorder) Finish() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, "finish")
}

// shortWindow returns one weight too few
type shortWindow struct{}

func (shortWindow) Coefficients(n int) []float64 { return make([]float64, max(n-1, 0)) }
func (shortWindow) Name() string                 { return "short" }
