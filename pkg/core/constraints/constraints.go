package constraints

import (
	"github.com/jakechorley/shiftgen/pkg/core/model"
)

// Build returns the enforcers a problem needs, in the order they must run.
// An enforcer whose configuration is absent is left out rather than added as
// a no-op.
func Build(p *model.Problem) []Enforcer {
	var enforcers []Enforcer

	if p.ConsecutiveSlotAptitudes != nil && p.SlotLengths != nil {
		enforcers = append(enforcers, NewConsecutiveSlotAptitude(p.ConsecutiveSlotAptitudes, p.SlotLengths))
	}

	if p.CrossItemAptitudes != nil {
		enforcers = append(enforcers, NewCrossItemAptitude(p.CrossItemAptitudes))
	}

	if p.SlotLengths != nil {
		enforcers = append(enforcers, NewItemIsBusyForSlotLength(p.SlotLengths))
	}

	if p.MaxConsecutiveWorkingDays > 0 && p.RestAfterMaxWorkingDaysReached > 0 {
		enforcers = append(enforcers, NewMaxWorkingDays(p.MaxConsecutiveWorkingDays, p.RestAfterMaxWorkingDaysReached))
	}

	// Slot compatibility always applies: without explicit compatibilities an
	// item covers at most one slot per day
	enforcers = append(enforcers, NewNoUbiquityOverIncompatibleSlots(p.CompatibleSlots, p.SlotLengths, p.Slots))

	return enforcers
}

// Names lists enforcer names, in order
func Names(enforcers []Enforcer) []string {
	names := make([]string, len(enforcers))
	for i, e := range enforcers {
		names[i] = e.Name()
	}
	return names
}
