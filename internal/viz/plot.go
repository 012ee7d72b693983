package viz

import (
	"github.com/guptarohit/asciigraph"

	"github.com/jacobbriones1/DynoDiff/internal/lake"
)

// PlotSeries renders a concentration series as a terminal line chart.
func PlotSeries(series lake.Series, caption string) string {
	return asciigraph.Plot(series.Concentrations(),
		asciigraph.Height(12),
		asciigraph.Width(80),
		asciigraph.Caption(caption),
	)
}
