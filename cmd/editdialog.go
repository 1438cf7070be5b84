package cmd

import (
	"fmt"
	"image"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/glimt/glimt/internal/imaging"
)

// editState tracks the crop dialog's lifecycle:
// uninitialized -> active -> saved or cancelled.
type editState int

const (
	editUninitialized editState = iota
	editActive
	editSaved
	editCancelled
)

// editModel is the interactive crop dialog. The selection lives in display
// pixel space: the preview is cols cells wide and rows cells tall, which is
// cols x rows*2 display pixels in halfblock rendering.
type editModel struct {
	img   image.Image
	state editState

	cols     int
	rows     int
	displayW int
	displayH int

	// sel is the in-progress selection; committed is the last completed
	// one. Save works only off committed, so it stays disabled until the
	// user has finished at least one adjustment.
	sel       imaging.Rect
	committed imaging.Rect

	result  []byte
	saveErr string
}

func newEditModel(img image.Image, availCols, availRows int) *editModel {
	cols, rows := fitImage(img, availCols, availRows)
	m := &editModel{
		img:      img,
		state:    editUninitialized,
		cols:     cols,
		rows:     rows,
		displayW: cols,
		displayH: rows * 2,
	}
	m.initSelection()
	return m
}

// initSelection centers an initial crop covering 90% of the preview. The
// preview already preserves the image's native aspect ratio, so the
// selection does too. This moves the dialog from uninitialized to active;
// the initial selection is not committed, so save starts disabled.
func (m *editModel) initSelection() {
	w := m.displayW * 9 / 10
	h := m.displayH * 9 / 10
	if w < 1 {
		w = 1
	}
	if h < 1 {
		h = 1
	}
	m.sel = imaging.Rect{
		X: (m.displayW - w) / 2,
		Y: (m.displayH - h) / 2,
		W: w,
		H: h,
	}
	m.state = editActive
}

func (m *editModel) update(msg tea.KeyMsg) {
	if m.state != editActive {
		return
	}

	switch msg.String() {
	case "esc":
		m.state = editCancelled

	case "enter":
		if m.committed.Empty() {
			return
		}
		m.save()

	case "up":
		m.adjust(0, -1, 0, 0)
	case "down":
		m.adjust(0, 1, 0, 0)
	case "left":
		m.adjust(-1, 0, 0, 0)
	case "right":
		m.adjust(1, 0, 0, 0)

	case "shift+up":
		m.adjust(0, 0, 0, -1)
	case "shift+down":
		m.adjust(0, 0, 0, 1)
	case "shift+left":
		m.adjust(0, 0, -1, 0)
	case "shift+right":
		m.adjust(0, 0, 1, 0)
	}
}

// adjust moves or resizes the selection. A terminal reports no key-release
// events, so every keypress is a completed gesture: the adjusted selection
// is committed immediately.
func (m *editModel) adjust(dx, dy, dw, dh int) {
	sel := m.sel
	sel.X += dx
	sel.Y += dy
	sel.W += dw
	sel.H += dh

	if sel.W < 0 {
		sel.W = 0
	}
	if sel.H < 0 {
		sel.H = 0
	}
	if sel.W > m.displayW {
		sel.W = m.displayW
	}
	if sel.H > m.displayH {
		sel.H = m.displayH
	}
	if sel.X < 0 {
		sel.X = 0
	}
	if sel.Y < 0 {
		sel.Y = 0
	}
	if sel.X+sel.W > m.displayW {
		sel.X = m.displayW - sel.W
	}
	if sel.Y+sel.H > m.displayH {
		sel.Y = m.displayH - sel.H
	}

	m.sel = sel
	m.committed = sel
	m.saveErr = ""
}

func (m *editModel) save() {
	data, err := imaging.Crop(m.img, m.displayW, m.displayH, m.committed)
	if err != nil {
		m.saveErr = err.Error()
		return
	}
	m.result = data
	m.state = editSaved
}

var (
	editTitleStyle = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("205"))
	editFrameStyle = lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("205")).
			Padding(0, 1)
	editHintStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	editErrStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("204"))
)

func (m *editModel) view(width, height int) string {
	preview := halfblockImage(m.img, m.cols, m.rows, &m.sel)

	saveHint := "enter save (adjust the selection first)"
	if !m.committed.Empty() {
		saveHint = "enter save"
	}
	footer := editHintStyle.Render(fmt.Sprintf(
		"arrows move · shift+arrows resize · %s · esc cancel", saveHint))
	info := editHintStyle.Render(fmt.Sprintf("selection %dx%d at (%d,%d)",
		m.sel.W, m.sel.H, m.sel.X, m.sel.Y))
	if m.saveErr != "" {
		info = editErrStyle.Render(m.saveErr)
	}

	body := lipgloss.JoinVertical(lipgloss.Center,
		editTitleStyle.Render("Crop image"),
		preview,
		info,
		footer,
	)
	return lipgloss.Place(width, height, lipgloss.Center, lipgloss.Center,
		editFrameStyle.Render(body))
}
