package model

import (
	"errors"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
)

// SlotClosure closes a block of slots over a range of days. Closed cells
// never receive an item.
type SlotClosure struct {
	Days  IntRange
	Slots IntRange
}

// ItemAptitude overrides the initial aptitude of a block of items for the
// given days and slots
type ItemAptitude struct {
	Days     IntRange
	Slots    IntRange
	Items    IntRange
	Aptitude float32 `validate:"gte=0"`
}

// ItemUnavailability marks a block of items as unavailable for the given
// days and slots
type ItemUnavailability struct {
	Days  IntRange
	Slots IntRange
	Items IntRange
}

// Problem describes a shift allocation problem. Build it with NewProblem and
// the setter methods, then treat it as read-only: solvers share a single
// Problem between threads.
type Problem struct {
	Days  int `validate:"min=1"`
	Slots int `validate:"min=2"`
	Items int `validate:"min=2"`

	DefaultAptitude float32 `validate:"gte=0"`
	FirstDay        time.Time

	// SlotLengths is the number of days an item is busy once it covers a slot
	SlotLengths []int     `validate:"dive,min=1"`
	SlotWeights []float32 `validate:"dive,gte=0"`

	// Optional arrays stay nil until the matching setter is used
	ItemWeights        []float32 `validate:"omitempty,dive,gte=0"`
	SlotValues         []float32 `validate:"omitempty,dive,gte=0"`
	ItemStartupEfforts []float32 `validate:"omitempty,dive,gte=0"`

	// CompatibleSlots[s1][s2] reports whether one item may cover s1 and s2
	// on the same day. nil means no pair of slots is compatible.
	CompatibleSlots [][]bool

	// ConsecutiveSlotAptitudes[preceding][following] multiplies the aptitude
	// of an item for the following slot once it has covered the preceding one
	ConsecutiveSlotAptitudes [][]float32

	// CrossItemAptitudes is indexed slot1, slot2, item1, item2
	CrossItemAptitudes [][][][]float32

	MaxConsecutiveWorkingDays      int `validate:"gte=0"`
	RestAfterMaxWorkingDaysReached int `validate:"gte=0"`

	SlotClosures         []SlotClosure
	ItemAptitudes        []ItemAptitude `validate:"dive"`
	ItemUnavailabilities []ItemUnavailability
}

var (
	ErrTooFewDays  = errors.New("days must be greater or equal to 1")
	ErrTooFewSlots = errors.New("slots must be greater or equal to 2")
	ErrTooFewItems = errors.New("items must be greater or equal to 2")
)

var validate *validator.Validate

func init() {
	validate = validator.New()
}

// NewProblem creates a problem with default aptitude 1, slot lengths 1 and
// slot weights 1, starting today
func NewProblem(days, slots, items int) (*Problem, error) {
	if days < 1 {
		return nil, ErrTooFewDays
	}
	if slots < 2 {
		return nil, ErrTooFewSlots
	}
	if items < 2 {
		return nil, ErrTooFewItems
	}

	p := &Problem{
		Days:            days,
		Slots:           slots,
		Items:           items,
		DefaultAptitude: 1,
		FirstDay:        truncateToDay(time.Now()),
		SlotLengths:     make([]int, slots),
		SlotWeights:     make([]float32, slots),
	}
	for i := 0; i < slots; i++ {
		p.SlotLengths[i] = 1
		p.SlotWeights[i] = 1
	}

	return p, nil
}

// DayDate returns the calendar date of the given day index
func (p *Problem) DayDate(day int) time.Time {
	return p.FirstDay.AddDate(0, 0, day)
}

// AllDays returns the range covering the whole horizon
func (p *Problem) AllDays() IntRange { return IntRange{From: 0, To: p.Days - 1} }

// AllSlots returns the range covering every slot
func (p *Problem) AllSlots() IntRange { return IntRange{From: 0, To: p.Slots - 1} }

// AllItems returns the range covering every item
func (p *Problem) AllItems() IntRange { return IntRange{From: 0, To: p.Items - 1} }

func (p *Problem) SetSlotLength(length int, slots IntRange) error {
	if length < 1 {
		return fmt.Errorf("slot length must be at least 1 (got %d)", length)
	}
	if err := slots.within("slot", p.Slots); err != nil {
		return err
	}
	for s := slots.From; s <= slots.To; s++ {
		p.SlotLengths[s] = length
	}
	return nil
}

func (p *Problem) SetSlotWeight(weight float32, slots IntRange) error {
	if weight < 0 {
		return fmt.Errorf("slot weight must not be negative (got %g)", weight)
	}
	if err := slots.within("slot", p.Slots); err != nil {
		return err
	}
	for s := slots.From; s <= slots.To; s++ {
		p.SlotWeights[s] = weight
	}
	return nil
}

func (p *Problem) SetItemWeight(weight float32, items IntRange) error {
	if weight < 0 {
		return fmt.Errorf("item weight must not be negative (got %g)", weight)
	}
	if err := items.within("item", p.Items); err != nil {
		return err
	}
	if p.ItemWeights == nil {
		p.ItemWeights = filled(p.Items, 1)
	}
	for i := items.From; i <= items.To; i++ {
		p.ItemWeights[i] = weight
	}
	return nil
}

func (p *Problem) SetSlotValue(value float32, slots IntRange) error {
	if value < 0 {
		return fmt.Errorf("slot value must not be negative (got %g)", value)
	}
	if err := slots.within("slot", p.Slots); err != nil {
		return err
	}
	if p.SlotValues == nil {
		p.SlotValues = filled(p.Slots, 1)
	}
	for s := slots.From; s <= slots.To; s++ {
		p.SlotValues[s] = value
	}
	return nil
}

// SetCompatibleSlots lets a single item cover both slots on the same day.
// Compatibility is symmetric.
func (p *Problem) SetCompatibleSlots(slot1, slot2 int) error {
	if slot1 == slot2 {
		return fmt.Errorf("cannot make slot %d compatible with itself", slot1)
	}
	if err := Single(slot1).within("slot", p.Slots); err != nil {
		return err
	}
	if err := Single(slot2).within("slot", p.Slots); err != nil {
		return err
	}
	if p.CompatibleSlots == nil {
		p.CompatibleSlots = make([][]bool, p.Slots)
		for s := range p.CompatibleSlots {
			p.CompatibleSlots[s] = make([]bool, p.Slots)
		}
	}
	p.CompatibleSlots[slot1][slot2] = true
	p.CompatibleSlots[slot2][slot1] = true
	return nil
}

func (p *Problem) SetItemStartupEffort(effort float32, item int) error {
	if effort < 0 {
		return fmt.Errorf("startup effort must not be negative (got %g)", effort)
	}
	if err := Single(item).within("item", p.Items); err != nil {
		return err
	}
	if p.ItemStartupEfforts == nil {
		p.ItemStartupEfforts = filled(p.Items, 1)
	}
	p.ItemStartupEfforts[item] = effort
	return nil
}

// SetConsecutiveSlotAptitude sets the multiplier applied to an item's
// aptitude for the following slots after it covered one of the preceding
// slots
func (p *Problem) SetConsecutiveSlotAptitude(multiplier float32, preceding, following IntRange) error {
	if multiplier < 0 {
		return fmt.Errorf("aptitude multiplier must not be negative (got %g)", multiplier)
	}
	if err := preceding.within("preceding slot", p.Slots); err != nil {
		return err
	}
	if err := following.within("following slot", p.Slots); err != nil {
		return err
	}
	if p.ConsecutiveSlotAptitudes == nil {
		p.ConsecutiveSlotAptitudes = make([][]float32, p.Slots)
		for s := range p.ConsecutiveSlotAptitudes {
			p.ConsecutiveSlotAptitudes[s] = filled(p.Slots, 1)
		}
	}
	for prec := preceding.From; prec <= preceding.To; prec++ {
		for foll := following.From; foll <= following.To; foll++ {
			p.ConsecutiveSlotAptitudes[prec][foll] = multiplier
		}
	}
	return nil
}

// SetCrossItemAptitude sets the multiplier applied to item2's aptitude for
// slot2 when item1 covers slot1 on the same day
func (p *Problem) SetCrossItemAptitude(multiplier float32, slot1, slot2, item1, item2 int) error {
	if multiplier < 0 {
		return fmt.Errorf("aptitude multiplier must not be negative (got %g)", multiplier)
	}
	for _, s := range []int{slot1, slot2} {
		if err := Single(s).within("slot", p.Slots); err != nil {
			return err
		}
	}
	for _, i := range []int{item1, item2} {
		if err := Single(i).within("item", p.Items); err != nil {
			return err
		}
	}
	if p.CrossItemAptitudes == nil {
		p.CrossItemAptitudes = make([][][][]float32, p.Slots)
		for s1 := 0; s1 < p.Slots; s1++ {
			p.CrossItemAptitudes[s1] = make([][][]float32, p.Slots)
			for s2 := 0; s2 < p.Slots; s2++ {
				p.CrossItemAptitudes[s1][s2] = make([][]float32, p.Items)
				for i1 := 0; i1 < p.Items; i1++ {
					p.CrossItemAptitudes[s1][s2][i1] = filled(p.Items, 1)
				}
			}
		}
	}
	p.CrossItemAptitudes[slot1][slot2][item1][item2] = multiplier
	return nil
}

// SetMaxConsecutiveWorkingDays limits how many days in a row an item can
// work, followed by a mandatory rest
func (p *Problem) SetMaxConsecutiveWorkingDays(max, rest int) error {
	if max < 0 || rest < 0 {
		return fmt.Errorf("max working days (%d) and rest (%d) must not be negative", max, rest)
	}
	p.MaxConsecutiveWorkingDays = max
	p.RestAfterMaxWorkingDaysReached = rest
	return nil
}

func (p *Problem) CloseSlots(days, slots IntRange) error {
	if err := days.within("day", p.Days); err != nil {
		return err
	}
	if err := slots.within("slot", p.Slots); err != nil {
		return err
	}
	p.SlotClosures = append(p.SlotClosures, SlotClosure{Days: days, Slots: slots})
	return nil
}

func (p *Problem) AssignAptitude(aptitude float32, items, days, slots IntRange) error {
	if aptitude < 0 {
		return fmt.Errorf("aptitude must not be negative (got %g)", aptitude)
	}
	if err := p.checkBlock(items, days, slots); err != nil {
		return err
	}
	p.ItemAptitudes = append(p.ItemAptitudes, ItemAptitude{
		Days:     days,
		Slots:    slots,
		Items:    items,
		Aptitude: aptitude,
	})
	return nil
}

func (p *Problem) MakeUnavailable(items, days, slots IntRange) error {
	if err := p.checkBlock(items, days, slots); err != nil {
		return err
	}
	p.ItemUnavailabilities = append(p.ItemUnavailabilities, ItemUnavailability{
		Days:  days,
		Slots: slots,
		Items: items,
	})
	return nil
}

// Validate checks counts, array shapes and every configured range
func (p *Problem) Validate() error {
	if err := validate.Struct(p); err != nil {
		return fmt.Errorf("problem validation failed: %w", err)
	}

	if len(p.SlotLengths) != p.Slots {
		return fmt.Errorf("slot lengths: expected %d entries, got %d", p.Slots, len(p.SlotLengths))
	}
	if len(p.SlotWeights) != p.Slots {
		return fmt.Errorf("slot weights: expected %d entries, got %d", p.Slots, len(p.SlotWeights))
	}
	if p.ItemWeights != nil && len(p.ItemWeights) != p.Items {
		return fmt.Errorf("item weights: expected %d entries, got %d", p.Items, len(p.ItemWeights))
	}
	if p.SlotValues != nil && len(p.SlotValues) != p.Slots {
		return fmt.Errorf("slot values: expected %d entries, got %d", p.Slots, len(p.SlotValues))
	}
	if p.ItemStartupEfforts != nil && len(p.ItemStartupEfforts) != p.Items {
		return fmt.Errorf("item startup efforts: expected %d entries, got %d", p.Items, len(p.ItemStartupEfforts))
	}
	if p.CompatibleSlots != nil && !isSquare(len(p.CompatibleSlots), p.Slots, func(i int) int { return len(p.CompatibleSlots[i]) }) {
		return fmt.Errorf("compatible slots must be a %dx%d matrix", p.Slots, p.Slots)
	}
	if p.ConsecutiveSlotAptitudes != nil && !isSquare(len(p.ConsecutiveSlotAptitudes), p.Slots, func(i int) int { return len(p.ConsecutiveSlotAptitudes[i]) }) {
		return fmt.Errorf("consecutive slot aptitudes must be a %dx%d matrix", p.Slots, p.Slots)
	}
	if p.CrossItemAptitudes != nil {
		if err := p.checkCrossItemShape(); err != nil {
			return err
		}
	}

	for i, c := range p.SlotClosures {
		if err := c.Days.within("day", p.Days); err != nil {
			return fmt.Errorf("slot closure %d: %w", i, err)
		}
		if err := c.Slots.within("slot", p.Slots); err != nil {
			return fmt.Errorf("slot closure %d: %w", i, err)
		}
	}
	for i, a := range p.ItemAptitudes {
		if err := p.checkBlock(a.Items, a.Days, a.Slots); err != nil {
			return fmt.Errorf("item aptitude %d: %w", i, err)
		}
	}
	for i, u := range p.ItemUnavailabilities {
		if err := p.checkBlock(u.Items, u.Days, u.Slots); err != nil {
			return fmt.Errorf("item unavailability %d: %w", i, err)
		}
	}

	return nil
}

func (p *Problem) checkBlock(items, days, slots IntRange) error {
	if err := items.within("item", p.Items); err != nil {
		return err
	}
	if err := days.within("day", p.Days); err != nil {
		return err
	}
	return slots.within("slot", p.Slots)
}

func (p *Problem) checkCrossItemShape() error {
	shapeErr := fmt.Errorf("cross item aptitudes must be a %dx%dx%dx%d tensor", p.Slots, p.Slots, p.Items, p.Items)
	if len(p.CrossItemAptitudes) != p.Slots {
		return shapeErr
	}
	for _, bySlot := range p.CrossItemAptitudes {
		if len(bySlot) != p.Slots {
			return shapeErr
		}
		for _, byItem := range bySlot {
			if !isSquare(len(byItem), p.Items, func(i int) int { return len(byItem[i]) }) {
				return shapeErr
			}
		}
	}
	return nil
}

func isSquare(rows, n int, rowLen func(int) int) bool {
	if rows != n {
		return false
	}
	for i := 0; i < rows; i++ {
		if rowLen(i) != n {
			return false
		}
	}
	return true
}

func filled(n int, v float32) []float32 {
	out := make([]float32, n)
	for i := range out {
		out[i] = v
	}
	return out
}

func truncateToDay(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, t.Location())
}
