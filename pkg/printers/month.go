package printers

import (
	"fmt"
	"strings"
	"time"

	"github.com/fatih/color"

	"tableflip.dev/flowlog/pkg/calendar"
	"tableflip.dev/flowlog/pkg/entry"
	"tableflip.dev/flowlog/pkg/flow"
)

const width = len("11 12 13 14 15 16 17") // an example week

var heat = map[flow.Flow][]color.Attribute{
	flow.None:        {color.FgWhite},
	flow.Spotting:    {color.FgHiMagenta},
	flow.Light:       {color.FgMagenta},
	flow.Medium:      {color.FgHiRed},
	flow.Heavy:       {color.FgRed, color.Bold},
	flow.Apocalyptic: {color.FgRed, color.Bold, color.BlinkSlow},
}

// FlowColor is the printer color of a flow level, plus any extra attributes.
func FlowColor(f flow.Flow, extra ...color.Attribute) *color.Color {
	a, ok := heat[f]
	if !ok {
		a = []color.Attribute{color.Faint}
	}
	return color.New(append(append([]color.Attribute{}, a...), extra...)...)
}

// Month prints a month grid with logged days drawn in their flow color.
// today is underlined when it falls in the month.
func (pp *PrettyPrint) Month(year int, month time.Month, cells []calendar.Cell, start calendar.WeekStart, today entry.Date) {
	w := pp.out()
	tf := color.New(color.FgWhite, color.Italic)

	m := fmt.Sprintf("%s %d", month, year)
	mid := (width - len(m)) / 2
	_, _ = tf.Fprintf(w, "%s%s\n", strings.Repeat(" ", mid), m)
	_, _ = color.New(color.Faint).Fprintln(w, strings.Join(start.Weekdays(), " "))

	for _, week := range calendar.Grid(year, month, cells, start) {
		parts := make([]string, 0, 7)
		for _, c := range week {
			if c == nil {
				parts = append(parts, "  ")
				continue
			}
			var extra []color.Attribute
			if today.SameMonth(year, month) && today.Day == c.Day {
				extra = append(extra, color.Underline)
			}
			p := color.New(color.Faint, color.FgWhite).Add(extra...)
			if c.Logged() {
				p = FlowColor(*c.Flow, extra...)
			}
			parts = append(parts, p.Sprintf("%2d", c.Day))
		}
		_, _ = fmt.Fprintln(w, strings.TrimRight(strings.Join(parts, " "), " "))
	}
	pp.NewLine()
}

// Legend prints every flow symbol in its color on one line.
func (pp *PrettyPrint) Legend() {
	parts := make([]string, 0, len(flow.Options()))
	for _, f := range flow.Options() {
		parts = append(parts, FlowColor(f).Sprintf("%s %s", f.Symbol(), f))
	}
	_, _ = fmt.Fprintln(pp.out(), strings.Join(parts, "  "))
}
