package main

import (
	"io"

	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"

	"png-achunk/pkg/gradient"
)

type styles struct {
	renderer *lipgloss.Renderer

	file   lipgloss.Style
	kind   lipgloss.Style
	flags  lipgloss.Style
	size   lipgloss.Style
	hash   lipgloss.Style
	failed lipgloss.Style
}

func newStyles(w io.Writer, noColor bool) styles {
	r := lipgloss.NewRenderer(w)
	if noColor {
		r.SetColorProfile(termenv.Ascii)
	}

	return styles{
		renderer: r,

		file:   r.NewStyle().Bold(true),
		kind:   r.NewStyle().Foreground(lipgloss.Color("#ffb3c6")).Width(6),
		flags:  r.NewStyle().Foreground(lipgloss.Color("#8f8f8f")).Width(34),
		size:   r.NewStyle().Align(lipgloss.Right).Width(9),
		hash:   r.NewStyle().Faint(true),
		failed: r.NewStyle().Foreground(lipgloss.Color("#ff5f5f")),
	}
}

func (s styles) path(p string) string {
	return s.file.Render(gradient.Static(s.renderer, p, gradient.PastelGreenBlue...))
}
