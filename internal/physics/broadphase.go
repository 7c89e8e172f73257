package physics

// BroadPhase produces candidate collision pairs as index pairs into the
// world's body slice, in the order resolution will process them. Candidates
// still go through the narrow-phase CheckCollision, so a broad phase may
// over-report but must never miss an overlapping pair. AllPairs is the
// default; a spatial grid or sweep-and-prune can be swapped in behind this
// interface for large worlds.
type BroadPhase interface {
	Pairs(bodies []*Body) [][2]int
}

// AllPairs is the O(n²) scan over every body pair, skipping pairs where
// both bodies are static. Fine up to a few hundred bodies.
type AllPairs struct{}

// Pairs returns every non-static-static index pair (i, j) with i < j, in
// ascending storage order.
func (AllPairs) Pairs(bodies []*Body) [][2]int {
	var pairs [][2]int
	for i := 0; i < len(bodies); i++ {
		for j := i + 1; j < len(bodies); j++ {
			if bodies[i].Type == BodyStatic && bodies[j].Type == BodyStatic {
				continue
			}
			pairs = append(pairs, [2]int{i, j})
		}
	}
	return pairs
}
