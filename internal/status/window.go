// internal/status/window.go
package status

import "time"

// Window is a fixed-size ring of the most recent latency samples.
// The oldest sample is evicted once WindowSize is reached.
type Window struct {
	buf  [WindowSize]time.Duration
	next int
	n    int
}

// Add records d, evicting the oldest sample when full.
func (w *Window) Add(d time.Duration) {
	w.buf[w.next] = d
	w.next = (w.next + 1) % WindowSize
	if w.n < WindowSize {
		w.n++
	}
}

// Len is the number of samples held.
func (w *Window) Len() int { return w.n }

// Average is the mean of the held samples, zero when empty.
func (w *Window) Average() time.Duration {
	if w.n == 0 {
		return 0
	}
	var sum time.Duration
	for i := 0; i < w.n; i++ {
		sum += w.buf[i]
	}
	return sum / time.Duration(w.n)
}

// Max is the slowest held sample, zero when empty.
func (w *Window) Max() time.Duration {
	if w.Len() == 0 {
		return 0
	}
	var slowest time.Duration
	for _, d := range w.Samples() {
		if d > slowest {
			slowest = d
		}
	}
	return slowest
}

// Samples returns the held samples oldest first.
func (w *Window) Samples() []time.Duration {
	out := make([]time.Duration, 0, w.n)
	start := (w.next - w.n + WindowSize) % WindowSize
	for i := 0; i < w.n; i++ {
		out = append(out, w.buf[(start+i)%WindowSize])
	}
	return out
}
