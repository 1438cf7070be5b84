package cmd

import (
	"image"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// lightboxModel is the full-screen image viewer. It is modal: while active
// it receives all key and mouse input, and it closes on esc or on a click
// outside the image region. Clicks on the image itself do nothing.
type lightboxModel struct {
	img      image.Image
	raw      []byte
	protocol displayProtocol

	width  int
	height int

	// Cell bounds of the rendered image, for outside-click detection.
	imgX int
	imgY int
	imgW int
	imgH int
}

func newLightboxModel(img image.Image, raw []byte, protocol displayProtocol, width, height int) *lightboxModel {
	lb := &lightboxModel{img: img, raw: raw, protocol: protocol}
	lb.resize(width, height)
	return lb
}

func (lb *lightboxModel) resize(width, height int) {
	lb.width = width
	lb.height = height
	cols, rows := fitImage(lb.img, width-2, height-2)
	lb.imgW = cols
	lb.imgH = rows
	lb.imgX = (width - cols) / 2
	lb.imgY = (height - rows) / 2
}

// update processes one message and reports whether the lightbox closed.
func (lb *lightboxModel) update(msg tea.Msg) bool {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		if msg.String() == "esc" {
			return true
		}
	case tea.MouseMsg:
		if msg.Action == tea.MouseActionPress && msg.Button == tea.MouseButtonLeft {
			return !lb.contains(msg.X, msg.Y)
		}
	}
	return false
}

// contains reports whether a cell coordinate falls on the image region.
func (lb *lightboxModel) contains(x, y int) bool {
	return x >= lb.imgX && x < lb.imgX+lb.imgW &&
		y >= lb.imgY && y < lb.imgY+lb.imgH
}

func (lb *lightboxModel) view() string {
	content := renderImage(lb.protocol, lb.raw, lb.img, lb.imgW, lb.imgH)
	return lipgloss.Place(lb.width, lb.height, lipgloss.Center, lipgloss.Center, content,
		lipgloss.WithWhitespaceChars(" "),
		lipgloss.WithWhitespaceForeground(lipgloss.Color("0")))
}
