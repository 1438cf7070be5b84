package cmd

import (
	"fmt"

	"github.com/charmbracelet/lipgloss"
)

var (
	titleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("205"))
	labelStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))

	aspectOnStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("0")).Background(lipgloss.Color("205")).Padding(0, 1)
	aspectOffStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("240")).Padding(0, 1)

	historyCursorStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("86"))
	historyItemStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("250"))

	errorBoxStyle = lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("204")).
			Foreground(lipgloss.Color("204")).
			Padding(0, 2)

	placeholderStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	statusStyle      = lipgloss.NewStyle().Foreground(lipgloss.Color("86"))
)

func leftWidth(total int) int {
	w := int(float64(total) * 0.4)
	if w < 30 {
		w = 30
	}
	if w > total {
		w = total
	}
	return w
}

func (m model) View() string {
	if m.width == 0 {
		return "Initializing..."
	}

	switch m.overlay {
	case overlayLightbox:
		if m.lightbox != nil {
			return m.lightbox.view()
		}
	case overlayEdit:
		if m.editor != nil {
			return m.editor.view(m.width, m.height)
		}
	}

	footer := m.footerView()
	bodyHeight := m.height - lipgloss.Height(footer)
	if bodyHeight < 3 {
		bodyHeight = 3
	}

	lw := leftWidth(m.width)
	left := m.leftPanelView(lw, bodyHeight)
	right := m.rightPanelView(m.width-lw, bodyHeight)
	body := lipgloss.JoinHorizontal(lipgloss.Top, left, right)

	return lipgloss.JoinVertical(lipgloss.Left, body, footer)
}

func (m model) footerView() string {
	if m.status != "" {
		return statusStyle.Render(m.status)
	}
	return m.help.View(m.keys)
}

func (m model) leftPanelView(width, height int) string {
	style := lipgloss.NewStyle().
		Width(width).
		Height(height).
		BorderStyle(lipgloss.NormalBorder()).
		BorderRight(true).
		Padding(0, 1)

	prompt := labelStyle.Render("Prompt") + "\n" + m.textInput.View()

	aspects := labelStyle.Render("Aspect") + "\n"
	for i, opt := range aspectOptions {
		if i == m.aspectIdx {
			aspects += aspectOnStyle.Render(opt.label)
		} else {
			aspects += aspectOffStyle.Render(opt.label)
		}
	}

	content := lipgloss.JoinVertical(lipgloss.Left,
		titleStyle.Render("glimt"),
		"",
		prompt,
		"",
		aspects,
		"",
		m.historyView(width-4, height-12),
	)
	return style.Render(content)
}

func (m model) historyView(width, rows int) string {
	records := m.store.All()
	header := labelStyle.Render(fmt.Sprintf("History (%d)", len(records)))
	if len(records) == 0 {
		return header + "\n" + placeholderStyle.Render("No generations yet")
	}
	if rows < 1 {
		rows = 1
	}

	// Keep the cursor visible in a window of the list.
	start := 0
	if m.histCursor >= rows {
		start = m.histCursor - rows + 1
	}

	out := header + "\n"
	for i := start; i < len(records) && i < start+rows; i++ {
		line := records[i].Prompt
		// Truncate on runes so a multibyte prompt never renders as
		// broken UTF-8.
		if runes, maxLen := []rune(line), width-10; maxLen > 3 && len(runes) > maxLen {
			line = string(runes[:maxLen-3]) + "..."
		}
		line = fmt.Sprintf("%s (%s)", line, records[i].AspectRatio)
		if i == m.histCursor {
			out += historyCursorStyle.Render("> "+line) + "\n"
		} else {
			out += historyItemStyle.Render("  "+line) + "\n"
		}
	}
	return out
}

func (m model) rightPanelView(width, height int) string {
	style := lipgloss.NewStyle().Width(width).Height(height)

	switch m.displayMode() {
	case modeLoading:
		return style.Render(m.spinnerPopup(width, height))

	case modeError:
		box := errorBoxStyle.Render(m.errMsg)
		return style.Render(lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, box))

	case modeImage:
		cols, rows := fitImage(m.current.img, width-2, height-2)
		content := renderImage(m.protocol, m.current.data, m.current.img, cols, rows)
		return style.Render(lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, content))

	default:
		placeholder := placeholderStyle.Render("Image will be displayed here")
		return style.Render(lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, placeholder))
	}
}

func (m model) spinnerPopup(width, height int) string {
	popup := lipgloss.NewStyle().
		Width(40).
		Height(3).
		BorderStyle(lipgloss.RoundedBorder()).
		BorderForeground(lipgloss.Color("205")).
		Align(lipgloss.Center, lipgloss.Center)

	content := fmt.Sprintf("%s Generating image...", m.spinner.View())
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center, popup.Render(content))
}
