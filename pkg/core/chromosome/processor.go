package chromosome

import (
	"fmt"

	"github.com/jakechorley/shiftgen/pkg/core/constraints"
	"github.com/jakechorley/shiftgen/pkg/core/enumerator"
	"github.com/jakechorley/shiftgen/pkg/core/matrix"
)

// Processor decodes a chromosome into an allocation. Each gene is the
// roulette spin for one unforced cell, taken in enumerator order; after every
// choice the enforcers propagate it to the cells still open.
type Processor struct {
	enumerator enumerator.Enumerator
	enforcers  []constraints.Enforcer
}

func NewProcessor(e enumerator.Enumerator, enforcers []constraints.Enforcer) *Processor {
	return &Processor{
		enumerator: e,
		enforcers:  enforcers,
	}
}

// Decode leaves m holding the allocation encoded by genes. It panics when the
// number of genes differs from the number of unforced cells.
func (p *Processor) Decode(m *matrix.ShiftMatrix, genes []float64) {
	m.ResetUnforced()
	p.enumerator.Reset()

	used := 0
	for {
		day, slot, ok := p.enumerator.Next()
		if !ok {
			break
		}

		cell := m.At(day, slot)
		if cell.Forced {
			continue
		}
		if used >= len(genes) {
			panic(fmt.Sprintf("chromosome: %d genes for more unforced cells", len(genes)))
		}
		gene := genes[used]
		used++

		if cell.Processed {
			continue
		}
		cell.Process(float32(gene))
		for _, e := range p.enforcers {
			e.Apply(m, day, slot)
		}
	}

	if used != len(genes) {
		panic(fmt.Sprintf("chromosome: %d genes for %d unforced cells", len(genes), used))
	}
}
