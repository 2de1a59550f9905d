package testutil

import (
	"math/rand"

	"github.com/hyperspmv/hyperspmv/internal/matrixio"
)

// RandomSparseCOO builds an n x n matrix with approximately density*n*n
// distinct nonzeros (plus a full diagonal, to keep every row and column
// non-empty), using rng for both placement and values. Placement uses
// rejection sampling against a seen-set: pick a candidate, skip it if
// already taken, retry until the budget is placed or attempts run out.
func RandomSparseCOO(rng *rand.Rand, n int, density float64) *matrixio.COOMatrix {
	seen := make(map[[2]int]bool, n)
	elements := make([]matrixio.Element, 0, n)

	for i := 0; i < n; i++ {
		key := [2]int{i, i}
		seen[key] = true
		elements = append(elements, matrixio.Element{Row: i, Col: i, Val: rng.Float64()*2 + 1})
	}

	target := int(density * float64(n) * float64(n))
	maxAttempts := target * 8
	for attempt := 0; len(elements) < target+n && attempt < maxAttempts; attempt++ {
		r := rng.Intn(n)
		c := rng.Intn(n)
		key := [2]int{r, c}
		if seen[key] {
			continue
		}
		seen[key] = true
		elements = append(elements, matrixio.Element{Row: r, Col: c, Val: rng.Float64()*2 - 1})
	}

	return &matrixio.COOMatrix{N: n, M: len(elements), Elements: elements}
}
