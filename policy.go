package arbiter

// selectBest returns the index of the strictly highest score, or -1 if no
// score is positive. The scan starts from a best of 0 and only replaces it on
// a strictly greater score, so the first registered service wins ties.
func selectBest(scores []float64) (int, float64) {
	best, highest := -1, 0.0
	for i, s := range scores {
		if s > highest {
			best, highest = i, s
		}
	}
	return best, highest
}
