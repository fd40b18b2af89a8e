package signal

import "github.com/zappabad/crowdcraft/internal/window"

const (
	// minChangePct is the rise from the oldest sample to the current price
	// required to call the short window an uptrend.
	minChangePct = 10.0
	// maxDrawdownPct disqualifies a trend that dipped more than this far
	// below its running peak at any point in the window.
	maxDrawdownPct = 5.0
)

// Momentum evaluates the short price window for a qualifying uptrend and
// returns 1.0 when it finds one, 0.0 otherwise. The output is strictly
// binary: momentum agents either pile in or stay out.
//
// A trend qualifies when the price rose at least 10% from the oldest sample
// to the current price AND never fell more than 5% below its running peak
// anywhere in the window. The drawdown check is one-way over the whole
// window: a single disqualifying dip invalidates the trend even if price
// later recovers.
func Momentum(w *window.Window, price float64) float64 {
	if !w.Full() {
		return 0
	}

	start := w.At(0)
	changePct := (price - start) / start * 100

	peak := start
	for i := 0; i < w.Len(); i++ {
		s := w.At(i)
		if s > peak {
			peak = s
		}
		if (peak-s)/peak*100 > maxDrawdownPct {
			return 0
		}
	}

	if changePct >= minChangePct {
		return 1.0
	}
	return 0
}
