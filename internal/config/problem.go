package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/teambition/rrule-go"
	"gopkg.in/yaml.v3"

	"github.com/jakechorley/shiftgen/pkg/core/model"
)

const dateLayout = "2006-01-02"

// SlotLength sets how many days an item stays busy after covering the slots
type SlotLength struct {
	Slots  string `yaml:"slots"`
	Length int    `yaml:"length" validate:"min=1"`
}

// SlotSetting assigns a value to a range of slots (weights, values)
type SlotSetting struct {
	Slots string  `yaml:"slots"`
	Value float32 `yaml:"value" validate:"gte=0"`
}

// ItemSetting assigns a value to a range of items
type ItemSetting struct {
	Items string  `yaml:"items"`
	Value float32 `yaml:"value" validate:"gte=0"`
}

type StartupEffort struct {
	Item   int     `yaml:"item" validate:"gte=0"`
	Effort float32 `yaml:"effort" validate:"gte=0"`
}

// SlotPair marks two slots one item may cover on the same day
type SlotPair struct {
	First  int `yaml:"first" validate:"gte=0"`
	Second int `yaml:"second" validate:"gte=0,nefield=First"`
}

type ConsecutiveSlotRule struct {
	Preceding  string  `yaml:"preceding"`
	Following  string  `yaml:"following"`
	Multiplier float32 `yaml:"multiplier" validate:"gte=0"`
}

type CrossItemRule struct {
	Slot1      int     `yaml:"slot1" validate:"gte=0"`
	Slot2      int     `yaml:"slot2" validate:"gte=0"`
	Item1      int     `yaml:"item1" validate:"gte=0"`
	Item2      int     `yaml:"item2" validate:"gte=0"`
	Multiplier float32 `yaml:"multiplier" validate:"gte=0"`
}

type WorkingDaysLimit struct {
	Max  int `yaml:"max" validate:"min=1"`
	Rest int `yaml:"rest" validate:"min=1"`
}

// DaySelector picks days either by index range, by recurrence rule against
// the calendar starting at firstDay, or both (the intersection)
type DaySelector struct {
	Days  string `yaml:"days,omitempty"`
	RRule string `yaml:"rrule,omitempty"`
}

type Closure struct {
	DaySelector `yaml:",inline"`
	Slots       string `yaml:"slots"`
}

type Aptitude struct {
	DaySelector `yaml:",inline"`
	Items       string  `yaml:"items"`
	Slots       string  `yaml:"slots"`
	Aptitude    float32 `yaml:"aptitude" validate:"gte=0"`
}

type Unavailability struct {
	DaySelector `yaml:",inline"`
	Items       string `yaml:"items"`
	Slots       string `yaml:"slots"`
}

// ProblemFile is the YAML definition of a shift allocation problem. Ranges
// are written as "3", "2-5", or left empty for the whole axis.
type ProblemFile struct {
	Days            int      `yaml:"days" validate:"min=1"`
	Slots           int      `yaml:"slots" validate:"min=2"`
	Items           int      `yaml:"items" validate:"min=2"`
	FirstDay        string   `yaml:"firstDay,omitempty" validate:"omitempty,datetime=2006-01-02"`
	DefaultAptitude *float32 `yaml:"defaultAptitude,omitempty" validate:"omitempty,gte=0"`

	SlotLengths        []SlotLength    `yaml:"slotLengths,omitempty" validate:"dive"`
	SlotWeights        []SlotSetting   `yaml:"slotWeights,omitempty" validate:"dive"`
	SlotValues         []SlotSetting   `yaml:"slotValues,omitempty" validate:"dive"`
	ItemWeights        []ItemSetting   `yaml:"itemWeights,omitempty" validate:"dive"`
	ItemStartupEfforts []StartupEffort `yaml:"itemStartupEfforts,omitempty" validate:"dive"`
	CompatibleSlots    []SlotPair      `yaml:"compatibleSlots,omitempty" validate:"dive"`

	ConsecutiveSlotAptitudes  []ConsecutiveSlotRule `yaml:"consecutiveSlotAptitudes,omitempty" validate:"dive"`
	CrossItemAptitudes        []CrossItemRule       `yaml:"crossItemAptitudes,omitempty" validate:"dive"`
	MaxConsecutiveWorkingDays *WorkingDaysLimit     `yaml:"maxConsecutiveWorkingDays,omitempty"`

	Closures         []Closure        `yaml:"closures,omitempty" validate:"dive"`
	Aptitudes        []Aptitude       `yaml:"aptitudes,omitempty" validate:"dive"`
	Unavailabilities []Unavailability `yaml:"unavailabilities,omitempty" validate:"dive"`
}

// LoadProblem reads a problem definition and converts it into a validated
// model.Problem
func LoadProblem(path string) (*model.Problem, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read problem file: %w", err)
	}

	var pf ProblemFile
	if err := yaml.Unmarshal(data, &pf); err != nil {
		return nil, fmt.Errorf("failed to parse problem file: %w", err)
	}

	return pf.ToProblem()
}

// ValidateProblemFile runs struct validation and checks rrule syntax
func ValidateProblemFile(pf *ProblemFile) error {
	if err := validate.Struct(pf); err != nil {
		return fmt.Errorf("problem file validation failed: %w", err)
	}

	selectors := make([]DaySelector, 0, len(pf.Closures)+len(pf.Aptitudes)+len(pf.Unavailabilities))
	for _, c := range pf.Closures {
		selectors = append(selectors, c.DaySelector)
	}
	for _, a := range pf.Aptitudes {
		selectors = append(selectors, a.DaySelector)
	}
	for _, u := range pf.Unavailabilities {
		selectors = append(selectors, u.DaySelector)
	}
	for i, s := range selectors {
		if s.RRule == "" {
			continue
		}
		if _, err := rrule.StrToRRule(s.RRule); err != nil {
			return fmt.Errorf("invalid rrule in day selector %d: %w", i, err)
		}
	}

	return nil
}

// ToProblem builds the model.Problem the file describes
func (pf *ProblemFile) ToProblem() (*model.Problem, error) {
	if err := ValidateProblemFile(pf); err != nil {
		return nil, err
	}

	p, err := model.NewProblem(pf.Days, pf.Slots, pf.Items)
	if err != nil {
		return nil, err
	}

	if pf.FirstDay != "" {
		firstDay, err := time.Parse(dateLayout, pf.FirstDay)
		if err != nil {
			return nil, fmt.Errorf("invalid firstDay: %w", err)
		}
		p.FirstDay = firstDay
	}
	if pf.DefaultAptitude != nil {
		p.DefaultAptitude = *pf.DefaultAptitude
	}

	for i, s := range pf.SlotLengths {
		slots, err := parseRange(s.Slots, pf.Slots)
		if err != nil {
			return nil, fmt.Errorf("slotLengths[%d]: %w", i, err)
		}
		if err := p.SetSlotLength(s.Length, slots); err != nil {
			return nil, fmt.Errorf("slotLengths[%d]: %w", i, err)
		}
	}
	for i, s := range pf.SlotWeights {
		slots, err := parseRange(s.Slots, pf.Slots)
		if err != nil {
			return nil, fmt.Errorf("slotWeights[%d]: %w", i, err)
		}
		if err := p.SetSlotWeight(s.Value, slots); err != nil {
			return nil, fmt.Errorf("slotWeights[%d]: %w", i, err)
		}
	}
	for i, s := range pf.SlotValues {
		slots, err := parseRange(s.Slots, pf.Slots)
		if err != nil {
			return nil, fmt.Errorf("slotValues[%d]: %w", i, err)
		}
		if err := p.SetSlotValue(s.Value, slots); err != nil {
			return nil, fmt.Errorf("slotValues[%d]: %w", i, err)
		}
	}
	for i, s := range pf.ItemWeights {
		items, err := parseRange(s.Items, pf.Items)
		if err != nil {
			return nil, fmt.Errorf("itemWeights[%d]: %w", i, err)
		}
		if err := p.SetItemWeight(s.Value, items); err != nil {
			return nil, fmt.Errorf("itemWeights[%d]: %w", i, err)
		}
	}
	for i, s := range pf.ItemStartupEfforts {
		if err := p.SetItemStartupEffort(s.Effort, s.Item); err != nil {
			return nil, fmt.Errorf("itemStartupEfforts[%d]: %w", i, err)
		}
	}
	for i, pair := range pf.CompatibleSlots {
		if err := p.SetCompatibleSlots(pair.First, pair.Second); err != nil {
			return nil, fmt.Errorf("compatibleSlots[%d]: %w", i, err)
		}
	}
	for i, r := range pf.ConsecutiveSlotAptitudes {
		preceding, err := parseRange(r.Preceding, pf.Slots)
		if err != nil {
			return nil, fmt.Errorf("consecutiveSlotAptitudes[%d]: %w", i, err)
		}
		following, err := parseRange(r.Following, pf.Slots)
		if err != nil {
			return nil, fmt.Errorf("consecutiveSlotAptitudes[%d]: %w", i, err)
		}
		if err := p.SetConsecutiveSlotAptitude(r.Multiplier, preceding, following); err != nil {
			return nil, fmt.Errorf("consecutiveSlotAptitudes[%d]: %w", i, err)
		}
	}
	for i, r := range pf.CrossItemAptitudes {
		if err := p.SetCrossItemAptitude(r.Multiplier, r.Slot1, r.Slot2, r.Item1, r.Item2); err != nil {
			return nil, fmt.Errorf("crossItemAptitudes[%d]: %w", i, err)
		}
	}
	if limit := pf.MaxConsecutiveWorkingDays; limit != nil {
		if err := p.SetMaxConsecutiveWorkingDays(limit.Max, limit.Rest); err != nil {
			return nil, fmt.Errorf("maxConsecutiveWorkingDays: %w", err)
		}
	}

	for i, c := range pf.Closures {
		days, slots, err := pf.resolveBlock(c.DaySelector, c.Slots, p.FirstDay)
		if err != nil {
			return nil, fmt.Errorf("closures[%d]: %w", i, err)
		}
		for _, d := range days {
			if err := p.CloseSlots(d, slots); err != nil {
				return nil, fmt.Errorf("closures[%d]: %w", i, err)
			}
		}
	}
	for i, a := range pf.Aptitudes {
		days, slots, err := pf.resolveBlock(a.DaySelector, a.Slots, p.FirstDay)
		if err != nil {
			return nil, fmt.Errorf("aptitudes[%d]: %w", i, err)
		}
		items, err := parseRange(a.Items, pf.Items)
		if err != nil {
			return nil, fmt.Errorf("aptitudes[%d]: %w", i, err)
		}
		for _, d := range days {
			if err := p.AssignAptitude(a.Aptitude, items, d, slots); err != nil {
				return nil, fmt.Errorf("aptitudes[%d]: %w", i, err)
			}
		}
	}
	for i, u := range pf.Unavailabilities {
		days, slots, err := pf.resolveBlock(u.DaySelector, u.Slots, p.FirstDay)
		if err != nil {
			return nil, fmt.Errorf("unavailabilities[%d]: %w", i, err)
		}
		items, err := parseRange(u.Items, pf.Items)
		if err != nil {
			return nil, fmt.Errorf("unavailabilities[%d]: %w", i, err)
		}
		for _, d := range days {
			if err := p.MakeUnavailable(items, d, slots); err != nil {
				return nil, fmt.Errorf("unavailabilities[%d]: %w", i, err)
			}
		}
	}

	if err := p.Validate(); err != nil {
		return nil, err
	}
	return p, nil
}

func (pf *ProblemFile) resolveBlock(sel DaySelector, slotSpec string, firstDay time.Time) ([]model.IntRange, model.IntRange, error) {
	days, err := resolveDays(sel, firstDay, pf.Days)
	if err != nil {
		return nil, model.IntRange{}, err
	}
	slots, err := parseRange(slotSpec, pf.Slots)
	if err != nil {
		return nil, model.IntRange{}, err
	}
	return days, slots, nil
}

// parseRange reads "3", "2-5" or "" (whole axis of length limit)
func parseRange(s string, limit int) (model.IntRange, error) {
	s = strings.TrimSpace(s)
	if s == "" || s == "*" {
		return model.IntRange{From: 0, To: limit - 1}, nil
	}

	from, to, isRange := strings.Cut(s, "-")
	start, err := strconv.Atoi(strings.TrimSpace(from))
	if err != nil {
		return model.IntRange{}, fmt.Errorf("invalid range %q: %w", s, err)
	}
	if !isRange {
		return model.Single(start), nil
	}
	end, err := strconv.Atoi(strings.TrimSpace(to))
	if err != nil {
		return model.IntRange{}, fmt.Errorf("invalid range %q: %w", s, err)
	}
	return model.NewIntRange(start, end)
}

// resolveDays turns a selector into contiguous day ranges. Without an rrule
// the result is the single range in sel.Days.
func resolveDays(sel DaySelector, firstDay time.Time, days int) ([]model.IntRange, error) {
	window, err := parseRange(sel.Days, days)
	if err != nil {
		return nil, err
	}
	if sel.RRule == "" {
		return []model.IntRange{window}, nil
	}

	rule, err := rrule.StrToRRule(sel.RRule)
	if err != nil {
		return nil, fmt.Errorf("failed to parse rrule: %w", err)
	}

	searchStart := firstDay.AddDate(0, 0, window.From)
	searchEnd := firstDay.AddDate(0, 0, window.To)
	rule.DTStart(searchStart)

	indexByDate := make(map[string]int, window.Len())
	for day := window.From; day <= window.To; day++ {
		indexByDate[firstDay.AddDate(0, 0, day).Format(dateLayout)] = day
	}

	var selected []int
	for _, occurrence := range rule.Between(searchStart, searchEnd, true) {
		if day, ok := indexByDate[occurrence.Format(dateLayout)]; ok {
			selected = append(selected, day)
		}
	}

	return contiguous(selected), nil
}

// contiguous groups ascending day indices into ranges
func contiguous(days []int) []model.IntRange {
	var ranges []model.IntRange
	for _, d := range days {
		if n := len(ranges); n > 0 && ranges[n-1].To+1 == d {
			ranges[n-1].To = d
			continue
		}
		if n := len(ranges); n > 0 && ranges[n-1].To >= d {
			continue
		}
		ranges = append(ranges, model.Single(d))
	}
	return ranges
}
