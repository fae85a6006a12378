package viz

import (
	"fmt"
	"strings"

	"github.com/guptarohit/asciigraph"

	"github.com/anukaran/pbreactor/internal/reactor"
)

// Variable names accepted by ProfilePlot.
var ProfileVars = []string{"x_ch4", "t", "p", "y_ch4", "y_h2", "f_ch4", "f_h2"}

// ProfilePlot renders one axial profile as an ASCII chart. The conversion
// profile is computed from the methane flow; everything else is plotted
// directly in its internal unit.
func ProfilePlot(res *reactor.Result, variable string, width, height int) (string, error) {
	data, caption, err := profileSeries(res, variable)
	if err != nil {
		return "", err
	}
	graph := asciigraph.Plot(data,
		asciigraph.Height(height),
		asciigraph.Width(width),
		asciigraph.Caption(caption),
	)
	return graph, nil
}

func profileSeries(res *reactor.Result, variable string) ([]float64, string, error) {
	switch strings.ToLower(variable) {
	case "x_ch4", "conversion":
		data := make([]float64, len(res.FCH4))
		if res.FCH4In > 0 {
			for i, f := range res.FCH4 {
				data[i] = (res.FCH4In - f) / res.FCH4In
			}
		}
		return data, "CH4 conversion vs position", nil
	case "t", "temperature":
		return res.T, "temperature [K] vs position", nil
	case "p", "pressure":
		return res.P, "pressure [Pa] vs position", nil
	case "y_ch4":
		return res.YCH4, "CH4 mole fraction vs position", nil
	case "y_h2":
		return res.YH2, "H2 mole fraction vs position", nil
	case "f_ch4":
		return res.FCH4, "CH4 flow [kmol/s] vs position", nil
	case "f_h2":
		return res.FH2, "H2 flow [kmol/s] vs position", nil
	default:
		return nil, "", fmt.Errorf("unknown profile variable %q", variable)
	}
}

// Summary formats the outlet metrics of a run as a bordered panel.
func Summary(label string, res *reactor.Result) string {
	row := func(name, value string) string {
		return LabelStyle.Render(fmt.Sprintf("%-18s", name)) + ValueStyle.Render(value)
	}

	lines := []string{
		TitleStyle.Render(label),
		"",
		row("Conversion", fmt.Sprintf("%.2f %%", res.Conversion*100)),
		row("H2 product", fmt.Sprintf("%.4g Nm3/h", res.H2FlowNm3h)),
		row("H2 mass rate", fmt.Sprintf("%.4g kg/s", res.H2MassRate)),
		row("Carbon rate", fmt.Sprintf("%.4g kg/s", res.CarbonRate)),
		row("Outlet T", fmt.Sprintf("%.1f K", res.OutletTemp)),
		row("Pressure drop", fmt.Sprintf("%.4g Pa", res.PressureDrop)),
		row("Steps", fmt.Sprintf("%d (%d rejected)", res.Steps, res.Rejected)),
	}
	return PanelStyle.Render(strings.Join(lines, "\n"))
}
