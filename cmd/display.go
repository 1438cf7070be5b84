package cmd

import (
	"encoding/base64"
	"fmt"
	"image"
	"image/color"
	"os"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"golang.org/x/image/draw"

	"github.com/glimt/glimt/internal/imaging"
)

// displayProtocol selects how images are rendered into the terminal.
type displayProtocol int

const (
	// protocolHalfblock draws the image with ▀ cells and truecolor. Works
	// everywhere, at terminal-cell resolution.
	protocolHalfblock displayProtocol = iota
	// protocolKitty uses the kitty graphics protocol.
	protocolKitty
	// protocolITerm uses iTerm2 inline images (also WezTerm, mintty).
	protocolITerm
)

// detectProtocol picks the best available protocol from the environment.
func detectProtocol() displayProtocol {
	if os.Getenv("KITTY_WINDOW_ID") != "" || strings.Contains(os.Getenv("TERM"), "kitty") {
		return protocolKitty
	}
	switch os.Getenv("TERM_PROGRAM") {
	case "iTerm.app", "WezTerm", "mintty":
		return protocolITerm
	}
	return protocolHalfblock
}

func parseProtocol(s string) (displayProtocol, bool) {
	switch s {
	case "auto":
		return detectProtocol(), true
	case "kitty":
		return protocolKitty, true
	case "iterm":
		return protocolITerm, true
	case "halfblock":
		return protocolHalfblock, true
	}
	return 0, false
}

// renderImage renders encoded image bytes for the active protocol. The
// halfblock path needs the decoded image and the cell box to fill.
func renderImage(proto displayProtocol, raw []byte, img image.Image, cols, rows int) string {
	switch proto {
	case protocolKitty:
		return kittyImage(raw)
	case protocolITerm:
		return itermImage(raw)
	default:
		return halfblockImage(img, cols, rows, nil)
	}
}

func kittyImage(data []byte) string {
	encoded := base64.StdEncoding.EncodeToString(data)
	return fmt.Sprintf("\033_Ga=T,f=100;%s\033\\", encoded)
}

func itermImage(data []byte) string {
	encoded := base64.StdEncoding.EncodeToString(data)
	return fmt.Sprintf("\033]1337;File=inline=1;size=%d;width=auto;height=auto:%s\a\n", len(data), encoded)
}

// fitImage returns the cell box (cols x rows) that shows img as large as
// possible inside the available area while preserving its aspect ratio.
// A cell is one pixel wide and two pixels tall in halfblock rendering.
func fitImage(img image.Image, availCols, availRows int) (cols, rows int) {
	if img == nil || availCols <= 0 || availRows <= 0 {
		return 0, 0
	}
	b := img.Bounds()
	pxW, pxH := float64(b.Dx()), float64(b.Dy())
	scale := float64(availCols) / pxW
	if s := float64(availRows*2) / pxH; s < scale {
		scale = s
	}
	cols = int(pxW * scale)
	rows = int(pxH * scale / 2)
	if cols < 1 {
		cols = 1
	}
	if rows < 1 {
		rows = 1
	}
	return cols, rows
}

// halfblockImage scales img into a cols x rows cell grid and renders it two
// vertical pixels per cell. If sel is non-nil, everything outside sel
// (expressed in display pixels: cols wide, rows*2 tall) is dimmed, the way
// a crop overlay masks the unselected region.
func halfblockImage(img image.Image, cols, rows int, sel *imaging.Rect) string {
	if img == nil || cols <= 0 || rows <= 0 {
		return ""
	}
	scaled := image.NewRGBA(image.Rect(0, 0, cols, rows*2))
	draw.ApproxBiLinear.Scale(scaled, scaled.Bounds(), img, img.Bounds(), draw.Src, nil)

	var sb strings.Builder
	for y := 0; y < rows; y++ {
		for x := 0; x < cols; x++ {
			top := pixelColor(scaled, x, y*2, sel)
			bottom := pixelColor(scaled, x, y*2+1, sel)
			style := lipgloss.NewStyle().
				Foreground(lipgloss.Color(hexColor(top))).
				Background(lipgloss.Color(hexColor(bottom)))
			sb.WriteString(style.Render("▀"))
		}
		if y < rows-1 {
			sb.WriteString("\n")
		}
	}
	return sb.String()
}

func pixelColor(img *image.RGBA, x, y int, sel *imaging.Rect) color.RGBA {
	c := img.RGBAAt(x, y)
	if sel != nil && !insideRect(x, y, *sel) {
		c.R /= 3
		c.G /= 3
		c.B /= 3
	}
	return c
}

func insideRect(x, y int, r imaging.Rect) bool {
	return x >= r.X && x < r.X+r.W && y >= r.Y && y < r.Y+r.H
}

func hexColor(c color.RGBA) string {
	return fmt.Sprintf("#%02x%02x%02x", c.R, c.G, c.B)
}
