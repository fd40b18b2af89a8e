package engine

// weekLength is the action cadence once the bootstrap period ends.
const weekLength = 7

// Clock is an explicit value describing where a run stands in simulated
// time. The simulation replaces it once per day instead of mutating ambient
// counters, which keeps stepping pure and lets parameter sweeps run many
// clocks side by side.
type Clock struct {
	Day int
}

// Bootstrapping reports whether Day is still inside the bootstrap period.
// The transition out is one-way: Day only ever increases.
func (c Clock) Bootstrapping(bootstrapDays int) bool {
	return c.Day <= bootstrapDays
}

// ActionDay reports whether a full action batch runs on this day: every day
// while bootstrapping, then weekly once active. Day 0 counts as a trading
// week under the modulus; that behavior is load-bearing and kept as is.
func (c Clock) ActionDay(bootstrapDays int) bool {
	if c.Bootstrapping(bootstrapDays) {
		return true
	}
	return c.Day%weekLength == 0
}

// NextDay returns the clock advanced by one simulated day.
func (c Clock) NextDay() Clock {
	return Clock{Day: c.Day + 1}
}

// Terminal reports whether the run has used up its configured length.
func (c Clock) Terminal(simulationDays int) bool {
	return c.Day >= simulationDays
}
