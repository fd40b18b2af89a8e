package agents

const (
	// momentumCrowdThreshold is the share past which momentum stops paying.
	momentumCrowdThreshold = 0.5
	// valueBoostThreshold is the share past which value-side selling
	// pressure gets amplified.
	valueBoostThreshold = 0.3
	valueBoostRate      = 0.5
)

// Adjust applies the crowding feedback to blended demand.
//
// Step 1: past a 50% momentum share, momentum effectiveness decays linearly,
// reaching zero when every agent chases the trend. Step 2: past a 30% share,
// demand that is still negative after step 1 (value-driven selling pressure
// dominating) is amplified. The steps are sequential on the same scalar:
// step 2 reads step 1's output, not the raw input.
func Adjust(demand, momentumShare float64) float64 {
	if momentumShare > momentumCrowdThreshold {
		demand *= 1 - (momentumShare - momentumCrowdThreshold)
	}
	if momentumShare > valueBoostThreshold && demand < 0 {
		demand *= 1 + (momentumShare-valueBoostThreshold)*valueBoostRate
	}
	return demand
}
