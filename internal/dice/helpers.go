package dice

import (
	"fmt"
	"math"
)

// weightResolution turns fractional weights into die faces
const weightResolution = 1000

// Shuffle permutes n items with Fisher-Yates, calling swap for each exchange
func Shuffle(r Roller, n int, swap func(i, j int)) error {
	for i := n - 1; i > 0; i-- {
		roll, err := r.Roll(i + 1)
		if err != nil {
			return fmt.Errorf("shuffle: %w", err)
		}
		j := roll - 1
		if j != i {
			swap(i, j)
		}
	}
	return nil
}

// Pick returns an index in [0, n)
func Pick(r Roller, n int) (int, error) {
	if n < 1 {
		return 0, fmt.Errorf("pick from empty set")
	}
	roll, err := r.Roll(n)
	if err != nil {
		return 0, err
	}
	return roll - 1, nil
}

// WeightedIndex returns an index chosen proportionally to weights.
// Non-positive weights are never chosen.
func WeightedIndex(r Roller, weights []float64) (int, error) {
	faces := make([]int, len(weights))
	total := 0
	for i, w := range weights {
		if w <= 0 {
			continue
		}
		faces[i] = int(math.Round(w * weightResolution))
		if faces[i] == 0 {
			faces[i] = 1
		}
		total += faces[i]
	}
	if total == 0 {
		return 0, fmt.Errorf("no positive weights among %d options", len(weights))
	}

	roll, err := r.Roll(total)
	if err != nil {
		return 0, err
	}

	for i, f := range faces {
		if roll <= f {
			return i, nil
		}
		roll -= f
	}
	return len(faces) - 1, nil
}
