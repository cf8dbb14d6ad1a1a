package tui

import (
	"fmt"
	"strings"

	"filelib-cli/internal/controller"
	"filelib-cli/internal/model"

	"github.com/charmbracelet/lipgloss"
)

func (m appModel) View() string {
	if top := controller.TopModal(m.state); top != "" {
		return placeCentered(m.width, m.height, m.renderModal(top))
	}

	header := lipgloss.NewStyle().
		Bold(true).
		Render(fmt.Sprintf("filelib  %s  library=%s  path=%s",
			emptyAsDash(m.server),
			m.ctrl.LibraryID(),
			m.ctrl.LibraryPath(),
		))

	var body string
	if !m.state.Revealed {
		body = m.viewPlaceholder()
	} else {
		body = m.viewListing()
	}

	status := ""
	if m.busy() {
		status = m.spinner.View() + " " + styleMuted().Render(m.busyLabel())
	}
	footer := m.help.View(m.keys)
	return strings.Join([]string{header, body, status, footer}, "\n\n")
}

func (m appModel) busyLabel() string {
	switch {
	case m.state.Submitting && controller.Renaming(m.state):
		return "renaming" + glyphEllipsis()
	case m.state.Submitting:
		return "creating" + glyphEllipsis()
	case m.state.Deleting:
		return "deleting" + glyphEllipsis()
	default:
		return "loading" + glyphEllipsis()
	}
}

// viewPlaceholder stands in for the listing until the first one has arrived.
func (m appModel) viewPlaceholder() string {
	if m.loadErr != nil {
		return styleError().Render("Could not load the library.") + "\n" + styleMuted().Render("r: retry   q: quit")
	}
	return m.spinner.View() + " " + styleMuted().Render("Loading library"+glyphEllipsis())
}

func (m appModel) viewListing() string {
	var lines []string

	lines = append(lines, checkbox(m.state.SelectAll)+" "+lipgloss.NewStyle().Bold(true).Render("Select all"))

	if m.filtering {
		lines = append(lines, m.filterInput.View())
	} else if m.state.Filter != "" {
		lines = append(lines, styleMuted().Render("filter: "+m.state.Filter+"   sort: "+m.sort.String()))
	} else {
		lines = append(lines, styleMuted().Render("sort: "+m.sort.String()))
	}

	vis := controller.Visible(m.state)
	if len(vis) == 0 {
		if len(m.state.Items) == 0 {
			lines = append(lines, styleMuted().Render("(empty)"))
		} else {
			lines = append(lines, styleMuted().Render("(no matches)"))
		}
		return strings.Join(lines, "\n")
	}

	rowW := m.width
	if rowW <= 0 {
		rowW = 80
	}
	start, end := m.listWindow(len(vis))
	for i := start; i < end; i++ {
		it := m.state.Items[vis[i]]
		lines = append(lines, m.renderRow(it, i == m.cursor, rowW))
	}
	if end-start < len(vis) {
		lines = append(lines, styleMuted().Render(fmt.Sprintf("%d-%d of %d", start+1, end, len(vis))))
	}
	return strings.Join(lines, "\n")
}

// listWindow returns the slice of visible rows that fits the screen around the cursor.
func (m appModel) listWindow(n int) (int, int) {
	rows := m.height - 12
	if m.height <= 0 || rows >= n {
		return 0, n
	}
	if rows < 3 {
		rows = 3
	}
	start := m.cursor - rows/2
	if start < 0 {
		start = 0
	}
	if start+rows > n {
		start = n - rows
	}
	return start, start + rows
}

func (m appModel) renderRow(it controller.Item, selected bool, w int) string {
	name := it.Entry.Name()
	if it.Entry.IsFolder() {
		name += "/"
	}
	size := ""
	if it.Entry.Type == model.EntryTypeFile {
		size = humanSize(it.Entry.Size)
	}
	prefix := "  "
	if selected {
		prefix = glyphCursor() + " "
	}
	left := prefix + checkbox(it.Checked) + " "
	nameW := w - lipgloss.Width(left) - 10
	row := left + lipgloss.NewStyle().Width(nameW).Render(truncate(name, nameW)) + fmt.Sprintf("%9s", size)
	if selected {
		return lipgloss.NewStyle().
			Foreground(colorSelectedFg).
			Background(colorSelectedBg).
			Render(row)
	}
	return row
}

func (m appModel) renderModal(id controller.ModalID) string {
	switch id {
	case controller.ModalPrompt:
		title := m.state.Prompt.Title
		if title == "" {
			title = "New entry"
		}
		hint := "enter: create   esc/ctrl+g: cancel"
		if controller.Renaming(m.state) {
			hint = "enter: rename   esc/ctrl+g: cancel"
		}
		if m.state.Submitting {
			hint = m.spinner.View() + " " + m.busyLabel()
		}
		body := renderInputLine(modalBodyWidth(m.width), m.input.View()) + "\n\n" + styleMuted().Render(hint)
		return renderModalBox(m.width, title, body)

	case controller.ModalAlert:
		body := lipgloss.NewStyle().Width(modalBodyWidth(m.width)).Render(m.state.Alert)
		return renderModalBox(m.width, "Error", body+"\n\n"+styleMuted().Render("enter: ok   x/ctrl+g: close"))

	case controller.ModalConfirmDelete:
		sel := controller.Selected(m.state)
		names := make([]string, 0, len(sel))
		for i, e := range sel {
			if i == 5 {
				names = append(names, fmt.Sprintf("  %s and %d more", glyphEllipsis(), len(sel)-i))
				break
			}
			names = append(names, "  "+glyphBullet()+" "+m.ctrl.Resolve(e.Path))
		}
		body := fmt.Sprintf("Delete %d %s?\n\n%s", len(sel), plural(len(sel), "entry", "entries"), strings.Join(names, "\n"))
		return renderConfirmModal(m.width, "Delete", body, "Delete", "Cancel", m.confirmFocus)

	case controller.ModalHelp:
		return renderModalBox(m.width, "Help", m.helpView.View()+"\n\n"+styleMuted().Render("↑/↓: scroll   enter/?: close"))
	}
	return renderModalBox(m.width, string(id), "")
}

func checkbox(on bool) string {
	if on {
		return "[x]"
	}
	return "[ ]"
}

func plural(n int, one, many string) string {
	if n == 1 {
		return one
	}
	return many
}

func emptyAsDash(s string) string {
	if strings.TrimSpace(s) == "" {
		return "-"
	}
	return s
}

func humanSize(n uint64) string {
	const unit = 1024
	if n < unit {
		return fmt.Sprintf("%d B", n)
	}
	div, exp := uint64(unit), 0
	for v := n / unit; v >= unit; v /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %ciB", float64(n)/float64(div), "KMGTPE"[exp])
}
