// Package gradient colors text with a blend across a list of hex colors.
package gradient

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/lucasb-eyer/go-colorful"
)

var PastelColors = []string{"#00E2FD", "#6D90FA", "#FF22EE", "#FF8D7A", "#FFC851"}
var PastelGreenBlue = []string{"#C2E59C", "#64B3F4"}
var GreenPinkBlue = []string{"#CAEFD7", "#F5BFD7", "#ABC9E9"}

// Static renders s through r, blending the foreground from the first color
// to the last. Invalid colors leave s unstyled.
func Static(r *lipgloss.Renderer, s string, hexColors ...string) string {
	switch len(hexColors) {
	case 0:
		return s
	case 1:
		return r.NewStyle().Foreground(lipgloss.Color(hexColors[0])).Render(s)
	}

	runes := []rune(s)
	if len(runes) == 0 {
		return s
	}

	colors := make([]colorful.Color, len(hexColors))
	for i, hex := range hexColors {
		c, err := colorful.Hex(hex)
		if err != nil {
			return s
		}
		colors[i] = c
	}

	var sb strings.Builder
	for i, ch := range runes {
		c := At(colors, ratio(i, len(runes)))
		sb.WriteString(r.NewStyle().Foreground(lipgloss.Color(c.Clamped().Hex())).Render(string(ch)))
	}
	return sb.String()
}

// At returns the color a fraction t along the blend of colors.
func At(colors []colorful.Color, t float64) colorful.Color {
	if len(colors) == 1 {
		return colors[0]
	}
	segments := len(colors) - 1
	i := min(int(t*float64(segments)), segments-1)
	local := t*float64(segments) - float64(i)
	return colors[i].BlendLab(colors[i+1], local)
}

func ratio(i, n int) float64 {
	if n < 2 {
		return 0
	}
	return float64(i) / float64(n-1)
}
