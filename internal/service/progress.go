package service

import (
	"sync"

	"github.com/kapu/osu-scraper-go/internal/util"
)

// ProgressFunc receives the completion percentage (0-100) of a running
// aggregation. Values never decrease and a successful run ends with exactly 100.
type ProgressFunc func(percent float64)

type progressTracker struct {
	mu      sync.Mutex
	report  ProgressFunc
	current float64
}

func newProgressTracker(report ProgressFunc) *progressTracker {
	return &progressTracker{report: report}
}

func (t *progressTracker) Advance(step float64) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if step > 0 {
		// float steps can overshoot by an ulp on the last item
		t.current = util.ClampFloat(t.current+step, 0, 100)
	}
	t.emit()
}

func (t *progressTracker) Complete() {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.current = 100
	t.emit()
}

func (t *progressTracker) emit() {
	if t.report != nil {
		t.report(t.current)
	}
}
