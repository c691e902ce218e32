package enumerator

import (
	"math/rand/v2"
	"sort"
)

// Enumerator walks every cell of a rows x cols grid exactly once, in an order
// fixed when the enumerator is built
type Enumerator interface {
	// Reset rewinds to the first cell without reshuffling
	Reset()
	// Next returns the next cell, or ok=false when the grid is exhausted
	Next() (row, col int, ok bool)
}

type cell struct {
	row, col int
}

// sequence is a precomputed traversal shared by both enumerators
type sequence struct {
	cells  []cell
	cursor int
}

func (s *sequence) Reset() {
	s.cursor = 0
}

func (s *sequence) Next() (int, int, bool) {
	if s.cursor >= len(s.cells) {
		return 0, 0, false
	}
	c := s.cells[s.cursor]
	s.cursor++
	return c.row, c.col, true
}

// IncreasingRowsRandomColumns visits rows in ascending order and, within each
// row, the columns in a random order
type IncreasingRowsRandomColumns struct {
	sequence
}

func NewIncreasingRowsRandomColumns(rows, cols int, rng *rand.Rand) *IncreasingRowsRandomColumns {
	e := &IncreasingRowsRandomColumns{}
	e.cells = make([]cell, 0, rows*cols)
	for row := 0; row < rows; row++ {
		for _, col := range permutation(cols, rng) {
			e.cells = append(e.cells, cell{row: row, col: col})
		}
	}
	return e
}

// IncreasingColumnsRandomRows visits columns in ascending order and, within
// each column, the rows in a random order
type IncreasingColumnsRandomRows struct {
	sequence
}

func NewIncreasingColumnsRandomRows(rows, cols int, rng *rand.Rand) *IncreasingColumnsRandomRows {
	e := &IncreasingColumnsRandomRows{}
	e.cells = make([]cell, 0, rows*cols)
	for col := 0; col < cols; col++ {
		for _, row := range permutation(rows, rng) {
			e.cells = append(e.cells, cell{row: row, col: col})
		}
	}
	return e
}

// permutation shuffles 0..n-1 by sorting on random keys
func permutation(n int, rng *rand.Rand) []int {
	keys := make([]float64, n)
	perm := make([]int, n)
	for i := range perm {
		perm[i] = i
		keys[i] = rng.Float64()
	}
	sort.SliceStable(perm, func(a, b int) bool {
		return keys[perm[a]] < keys[perm[b]]
	})
	return perm
}
