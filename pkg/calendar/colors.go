package calendar

import (
	"github.com/charmbracelet/lipgloss"
	"github.com/lucasb-eyer/go-colorful"

	"tableflip.dev/flowlog/pkg/flow"
)

var (
	rampLow, _  = colorful.Hex("#f4c7c3")
	rampHigh, _ = colorful.Hex("#7b0a12")
	noneColor   = lipgloss.Color("#6c8ebf")
)

// HeatColor blends from pale to deep red as the flow gets heavier. None has
// no heat and renders slate blue, apart from the grey of unlogged days.
func HeatColor(f flow.Flow) lipgloss.TerminalColor {
	if f == flow.None || !f.Valid() {
		return noneColor
	}
	t := float64(f-flow.Spotting) / float64(flow.Apocalyptic-flow.Spotting)
	return lipgloss.Color(rampLow.BlendLab(rampHigh, t).Clamped().Hex())
}

// Swatch renders the flow symbol in its heat color.
func Swatch(f flow.Flow) string {
	return lipgloss.NewStyle().Foreground(HeatColor(f)).Render(f.Symbol())
}
