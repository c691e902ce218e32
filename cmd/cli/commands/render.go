package commands

import (
	"fmt"
	"io"
	"sort"
	"strings"

	"github.com/jakechorley/shiftgen/pkg/core/model"
)

// ANSI color codes
const (
	colorReset  = "\033[0m"
	colorGreen  = "\033[32m"
	colorRed    = "\033[31m"
	colorYellow = "\033[33m"
	colorDim    = "\033[2m"
)

// fitnessColor grades a fitness in [0, 1]
func fitnessColor(fitness float64, green, yellow, red string) string {
	switch {
	case fitness >= 0.8:
		return green
	case fitness >= 0.5:
		return yellow
	default:
		return red
	}
}

// renderSolution prints one row per day and one column per slot. Empty
// cells are dimmed dashes.
func renderSolution(w io.Writer, p *model.Problem, s *model.Solution) {
	const dateWidth = 18
	cellWidth := len(fmt.Sprintf("%d", p.Items-1)) + 4

	fmt.Fprintf(w, "%-*s", dateWidth, "Day")
	for slot := 0; slot < s.Slots(); slot++ {
		fmt.Fprintf(w, "%*s", cellWidth, fmt.Sprintf("S%d", slot))
	}
	fmt.Fprintln(w)
	fmt.Fprintln(w, strings.Repeat("─", dateWidth+cellWidth*s.Slots()))

	for day := 0; day < s.Days(); day++ {
		fmt.Fprintf(w, "%-*s", dateWidth, p.DayDate(day).Format("2006-01-02 Mon"))
		for slot := 0; slot < s.Slots(); slot++ {
			item, ok := s.ItemAt(day, slot)
			if !ok {
				fmt.Fprintf(w, "%s%*s%s", colorDim, cellWidth, "-", colorReset)
				continue
			}
			fmt.Fprintf(w, "%*d", cellWidth, item)
		}
		fmt.Fprintln(w)
	}
}

// itemLoad counts the working days of every item
func itemLoad(s *model.Solution, items int) []int {
	days := make([]int, items)
	for item, byDay := range s.ItemAllocations(items) {
		for _, slot := range byDay {
			if slot != nil {
				days[item]++
			}
		}
	}
	return days
}

// renderItemLoad prints how many days each item works, busiest first
func renderItemLoad(w io.Writer, s *model.Solution, items int) {
	load := itemLoad(s, items)

	order := make([]int, items)
	for i := range order {
		order[i] = i
	}
	sort.SliceStable(order, func(a, b int) bool {
		return load[order[a]] > load[order[b]]
	})

	fmt.Fprintln(w, "Working days per item:")
	for _, item := range order {
		fmt.Fprintf(w, "  Item %-4d %3d %s\n", item, load[item], strings.Repeat("■", load[item]))
	}
}
