package matrix

import (
	"github.com/jakechorley/shiftgen/pkg/core/model"
)

// Build creates the matrix for a problem.
//
// Closures are applied first and force their cells empty. Aptitude overrides
// then set the initial aptitudes, and unavailabilities zero them. An item
// unavailable from day d is also kept off any slot whose length would make it
// still busy on day d.
func Build(p *model.Problem) *ShiftMatrix {
	m := New(p.Days, p.Slots, p.Items, p.DefaultAptitude)

	for _, c := range p.SlotClosures {
		for day := c.Days.From; day <= c.Days.To; day++ {
			for slot := c.Slots.From; slot <= c.Slots.To; slot++ {
				m.At(day, slot).Force(nil)
			}
		}
	}

	for _, a := range p.ItemAptitudes {
		for day := a.Days.From; day <= a.Days.To; day++ {
			for slot := a.Slots.From; slot <= a.Slots.To; slot++ {
				cell := m.At(day, slot)
				for item := a.Items.From; item <= a.Items.To; item++ {
					cell.InitialAptitudes[item] = a.Aptitude
				}
			}
		}
	}

	for _, u := range p.ItemUnavailabilities {
		for slot := u.Slots.From; slot <= u.Slots.To; slot++ {
			fromDay := max(0, u.Days.From-slotLength(p, slot)+1)
			for day := fromDay; day <= u.Days.To; day++ {
				cell := m.At(day, slot)
				for item := u.Items.From; item <= u.Items.To; item++ {
					cell.InitialAptitudes[item] = 0
				}
			}
		}
	}

	for _, c := range m.cells {
		if !c.Forced {
			copy(c.CurrentAptitudes, c.InitialAptitudes)
		}
	}

	return m
}

func slotLength(p *model.Problem, slot int) int {
	if p.SlotLengths == nil {
		return 1
	}
	return p.SlotLengths[slot]
}
