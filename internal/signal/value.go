package signal

import "github.com/zappabad/crowdcraft/internal/window"

// valueGain scales how aggressively value agents buy into undervaluation.
const valueGain = 2.0

// Value returns a graded buy signal proportional to how far the current
// price sits below the medium-term moving average, 0 when price is at or
// above it. Unlike Momentum the output is continuous and unbounded above:
// the deeper the discount, the harder value agents buy. The binary/graded
// asymmetry between the two signals is deliberate.
func Value(w *window.Window, price float64) float64 {
	if !w.Full() {
		return 0
	}
	avg, err := w.Mean()
	if err != nil {
		return 0
	}
	if price >= avg {
		return 0
	}
	return (avg - price) / avg * valueGain
}
