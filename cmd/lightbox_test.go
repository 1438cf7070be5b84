package cmd

import (
	"image/color"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestLightbox(t *testing.T) *lightboxModel {
	t.Helper()
	img := testImage(t, 100, 100)
	raw := testPNG(t, 100, 100, color.RGBA{A: 255})
	return newLightboxModel(img, raw, protocolHalfblock, 80, 24)
}

func TestLightboxCentersImage(t *testing.T) {
	lb := newTestLightbox(t)

	// 100x100 image in an 80x24 terminal: height-limited to 22 rows
	// (44 pixels), so 44 columns, centered.
	assert.Equal(t, 44, lb.imgW)
	assert.Equal(t, 22, lb.imgH)
	assert.Equal(t, (80-44)/2, lb.imgX)
	assert.Equal(t, (24-22)/2, lb.imgY)
}

func TestLightboxClosesOnEscape(t *testing.T) {
	lb := newTestLightbox(t)
	assert.True(t, lb.update(tea.KeyMsg{Type: tea.KeyEsc}))
}

func TestLightboxClosesOnOutsideClick(t *testing.T) {
	lb := newTestLightbox(t)
	closed := lb.update(tea.MouseMsg{
		X: 0, Y: 0,
		Action: tea.MouseActionPress,
		Button: tea.MouseButtonLeft,
	})
	assert.True(t, closed)
}

func TestLightboxIgnoresClickOnImage(t *testing.T) {
	lb := newTestLightbox(t)
	closed := lb.update(tea.MouseMsg{
		X: lb.imgX + lb.imgW/2, Y: lb.imgY + lb.imgH/2,
		Action: tea.MouseActionPress,
		Button: tea.MouseButtonLeft,
	})
	assert.False(t, closed)
}

func TestLightboxIgnoresOtherKeysAndMotion(t *testing.T) {
	lb := newTestLightbox(t)
	assert.False(t, lb.update(tea.KeyMsg{Type: tea.KeyEnter}))
	assert.False(t, lb.update(tea.MouseMsg{X: 0, Y: 0, Action: tea.MouseActionMotion}))
}

func TestLightboxResizeRecentersImage(t *testing.T) {
	lb := newTestLightbox(t)
	lb.resize(120, 60)
	require.Equal(t, (120-lb.imgW)/2, lb.imgX)
	require.Equal(t, (60-lb.imgH)/2, lb.imgY)
}

func TestLightboxViewIsFullScreen(t *testing.T) {
	lb := newTestLightbox(t)
	view := lb.view()
	assert.NotEmpty(t, view)
}
