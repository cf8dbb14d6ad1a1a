package tui

import (
	"strings"

	"github.com/charmbracelet/lipgloss"
)

const (
	modalMaxWidth = 72
	modalMinWidth = 24
	modalPadX     = 2
)

func modalWidth(screenW int) int {
	w := screenW - 8
	if w > modalMaxWidth {
		w = modalMaxWidth
	}
	if w < modalMinWidth {
		w = modalMinWidth
	}
	return w
}

func modalBodyWidth(screenW int) int {
	return modalWidth(screenW) - 2*modalPadX
}

// renderModalBox draws a modal with a header row carrying the title and the close icon.
func renderModalBox(screenW int, title string, body string) string {
	w := modalWidth(screenW)
	bodyW := w - 2*modalPadX

	closeIcon := "[x]"
	titleW := bodyW - lipgloss.Width(closeIcon) - 1
	header := lipgloss.NewStyle().
		Width(w).
		Padding(0, modalPadX).
		Bold(true).
		Foreground(colorModalHeaderFg).
		Background(colorModalHeaderBg).
		Render(lipgloss.JoinHorizontal(lipgloss.Top,
			lipgloss.NewStyle().Width(titleW+1).Render(truncate(title, titleW)),
			closeIcon,
		))

	content := lipgloss.NewStyle().
		Width(w).
		Padding(1, modalPadX).
		Foreground(colorSurfaceFg).
		Background(colorSurfaceBg).
		Render(strings.TrimRight(body, "\n"))

	return lipgloss.JoinVertical(lipgloss.Left, header, content)
}

// placeCentered positions s in the middle of the screen.
func placeCentered(width, height int, s string) string {
	if width <= 0 || height <= 0 {
		return s
	}
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, s)
}

// centeredBounds returns the top-left corner and size of s once placed by placeCentered.
func centeredBounds(width, height int, s string) (x, y, w, h int) {
	w, h = lipgloss.Width(s), lipgloss.Height(s)
	x = (width - w) / 2
	y = (height - h) / 2
	if x < 0 {
		x = 0
	}
	if y < 0 {
		y = 0
	}
	return x, y, w, h
}
