package window

import "errors"

// ErrEmptyWindow is returned when a statistic is requested from a window
// holding no samples.
var ErrEmptyWindow = errors.New("window: no samples")

// Window is a fixed-capacity ring buffer of float64 samples with a running
// sum. Push and eviction are O(1); Mean never re-scans the buffer. Each
// instance owns its own backing array, so differently sized windows over the
// same series never alias.
type Window struct {
	buf  []float64
	head int // index of the oldest sample
	n    int
	sum  float64
}

// New creates a Window holding at most capacity samples.
func New(capacity int) *Window {
	if capacity <= 0 {
		panic("window: capacity must be positive")
	}
	return &Window{buf: make([]float64, capacity)}
}

// Push appends one sample, evicting the oldest if the window is full.
func (w *Window) Push(v float64) {
	if w.n == len(w.buf) {
		w.sum -= w.buf[w.head]
		w.buf[w.head] = v
		w.sum += v
		w.head = (w.head + 1) % len(w.buf)
		return
	}
	w.buf[(w.head+w.n)%len(w.buf)] = v
	w.sum += v
	w.n++
}

// Fill pushes v until the window is full. Used to seed a fresh simulation
// where every horizon starts at the initial price.
func (w *Window) Fill(v float64) {
	for !w.Full() {
		w.Push(v)
	}
}

// Len returns the number of samples currently held.
func (w *Window) Len() int { return w.n }

// Cap returns the fixed capacity.
func (w *Window) Cap() int { return len(w.buf) }

// Full reports whether the window holds capacity samples.
func (w *Window) Full() bool { return w.n == len(w.buf) }

// Mean returns the running sum divided by the current length.
func (w *Window) Mean() (float64, error) {
	if w.n == 0 {
		return 0, ErrEmptyWindow
	}
	return w.sum / float64(w.n), nil
}

// At returns the i-th sample in chronological order (0 = oldest).
func (w *Window) At(i int) float64 {
	if i < 0 || i >= w.n {
		panic("window: index out of range")
	}
	return w.buf[(w.head+i)%len(w.buf)]
}

// Oldest returns the oldest sample still held.
func (w *Window) Oldest() (float64, error) {
	if w.n == 0 {
		return 0, ErrEmptyWindow
	}
	return w.buf[w.head], nil
}

// Reset discards all samples, keeping the capacity.
func (w *Window) Reset() {
	w.head = 0
	w.n = 0
	w.sum = 0
}
