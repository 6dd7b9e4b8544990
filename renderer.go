package main

import (
	"bytes"
	"fmt"
	"image/color"
	"log"
	"math"
	"sort"
	"strings"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/hajimehoshi/ebiten/v2/colorm"
	"github.com/hajimehoshi/ebiten/v2/text/v2"
	"golang.org/x/image/font/gofont/goregular"
)

// Overlay message display duration
const overlayMessageDuration = 2 * time.Second

// Common colors used in rendering
var (
	colorWhite    = color.RGBA{255, 255, 255, 255}
	colorGray     = color.RGBA{180, 180, 180, 255}
	colorYellow   = color.RGBA{255, 255, 100, 255}
	colorGreen    = color.RGBA{100, 255, 100, 255}
	colorLightRed = color.RGBA{255, 150, 150, 255}
	colorEditorBG = color.RGBA{24, 26, 30, 255}
	colorStatusBG = color.RGBA{16, 17, 20, 255}
	colorSelectBG = color.RGBA{60, 80, 120, 255}

	// Background colors for semi-transparent overlays
	bgColorMedium = color.RGBA{0, 0, 0, 160}
	bgColorDark   = color.RGBA{0, 0, 0, 200}
)

const statusBarHeight = 26

// Renderer handles all drawing operations
type Renderer struct {
	renderState RenderState
	fontSource  *text.GoTextFaceSource
}

// NewRenderer creates a new Renderer
func NewRenderer(renderState RenderState) *Renderer {
	s, err := text.NewGoTextFaceSource(bytes.NewReader(goregular.TTF))
	if err != nil {
		log.Fatal(err)
	}
	return &Renderer{
		renderState: renderState,
		fontSource:  s,
	}
}

func (r *Renderer) font(size float64) *text.GoTextFace {
	return &text.GoTextFace{Source: r.fontSource, Size: size}
}

// Draw renders one frame for the active mode.
func (r *Renderer) Draw(screen *ebiten.Image) {
	if r.renderState.Mode() == ModeCompare {
		r.drawCompare(screen)
	} else {
		r.drawEditor(screen)
	}
	r.drawOverlayMessage(screen)
}

// drawCompare renders the overlay: nothing but the mock, at 1:1 scale with
// the configured opacity, over a fully transparent background.
func (r *Renderer) drawCompare(screen *ebiten.Image) {
	sel := r.renderState.Selected()
	if sel == nil || sel.Image == nil {
		return
	}

	panX, panY := r.renderState.PanOffset()
	opacity := r.renderState.Opacity()

	if r.renderState.InvertColors() {
		var cm colorm.ColorM
		cm.Scale(-1, -1, -1, 1)
		cm.Translate(1, 1, 1, 0)
		cm.Scale(1, 1, 1, opacity)
		op := &colorm.DrawImageOptions{}
		op.GeoM.Translate(panX, panY)
		colorm.DrawImage(screen, sel.Image, cm, op)
		return
	}

	op := &ebiten.DrawImageOptions{}
	op.ColorScale.ScaleAlpha(float32(opacity))
	op.GeoM.Translate(panX, panY)
	screen.DrawImage(sel.Image, op)
}

// drawEditor renders the opaque editor window: mock preview, status line and
// any open panels.
func (r *Renderer) drawEditor(screen *ebiten.Image) {
	screen.Fill(colorEditorBG)

	w := screen.Bounds().Dx()
	h := screen.Bounds().Dy()

	sel := r.renderState.Selected()
	if sel == nil {
		r.drawWelcome(screen, w, h)
	} else if sel.Image != nil {
		r.drawPreview(screen, sel.Image, w, h-statusBarHeight)
	}

	r.drawStatusLine(screen, w, h)

	if r.renderState.ShowingRecent() {
		r.drawRecentPanel(screen, w, h)
	}
	if r.renderState.ShowingHelp() {
		r.drawHelpOverlay(screen, w, h)
	}
}

func (r *Renderer) drawWelcome(screen *ebiten.Image, w, h int) {
	lines := []string{
		"Mockover",
		"",
		"Drop a design mock here (png/jpg/webp/bmp/gif),",
		"or a bundle (zip/rar/7z).",
		"",
		"Press C to enter compare mode, ? for help.",
	}
	font := r.font(18)
	y := float64(h)/2 - float64(len(lines))*12
	for _, line := range lines {
		DrawText(screen, line, font, float64(w)/2-float64(len(line))*4.5, y, colorGray)
		y += 24
	}
}

// drawPreview scales the mock to fit the editor area without upscaling.
func (r *Renderer) drawPreview(screen *ebiten.Image, img *ebiten.Image, maxW, maxH int) {
	iw, ih := img.Bounds().Dx(), img.Bounds().Dy()

	scale := 1.0
	if iw > maxW || ih > maxH {
		scale = math.Min(float64(maxW)/float64(iw), float64(maxH)/float64(ih))
	}

	op := &ebiten.DrawImageOptions{}
	op.GeoM.Scale(scale, scale)
	sw, sh := float64(iw)*scale, float64(ih)*scale
	op.GeoM.Translate(float64(maxW)/2-sw/2, float64(maxH)/2-sh/2)
	screen.DrawImage(img, op)
}

func (r *Renderer) drawStatusLine(screen *ebiten.Image, w, h int) {
	DrawFilledRect(screen, 0, float64(h-statusBarHeight), float64(w), statusBarHeight, colorStatusBG)

	var left string
	if sel := r.renderState.Selected(); sel != nil {
		dims := ""
		if sel.Image != nil {
			dims = fmt.Sprintf("  %dx%d", sel.Image.Bounds().Dx(), sel.Image.Bounds().Dy())
		}
		page := ""
		if r.renderState.PageCount() > 1 {
			page = fmt.Sprintf("  [%d/%d]", r.renderState.PageIndex()+1, r.renderState.PageCount())
		}
		left = sel.Name + dims + page
	} else {
		left = "no mock selected"
	}

	right := fmt.Sprintf("opacity %d%%", int(r.renderState.Opacity()*100+0.5))
	if r.renderState.InvertColors() {
		right += "  inverted"
	}
	if r.renderState.ClickThrough() {
		right += "  click-through"
	}

	font := r.font(14)
	y := float64(h - statusBarHeight + 5)
	DrawText(screen, left, font, 8, y, colorWhite)
	DrawText(screen, right, font, float64(w)-float64(len(right))*7.5-8, y, colorGray)

	if status := r.renderState.ConfigStatus(); status.Status == "Warning" || status.Status == "Error" {
		warn := fmt.Sprintf("config: %s", status.Status)
		DrawText(screen, warn, font, float64(w)/2-float64(len(warn))*3.5, y, colorLightRed)
	}
}

func (r *Renderer) drawRecentPanel(screen *ebiten.Image, w, h int) {
	entries := r.renderState.RecentEntries()
	panelW := 340.0
	x := float64(w) - panelW

	DrawFilledRect(screen, x, 0, panelW, float64(h-statusBarHeight), bgColorDark)

	font := r.font(15)
	DrawText(screen, "Recent images", r.font(17), x+12, 10, colorYellow)

	if len(entries) == 0 {
		DrawText(screen, "(empty)", font, x+12, 44, colorGray)
		return
	}

	selIdx := r.renderState.RecentSelection()
	y := 44.0
	for i, e := range entries {
		if i == selIdx {
			DrawFilledRect(screen, x+4, y-3, panelW-8, 40, colorSelectBG)
		}
		name := e.Name
		if len(name) > 38 {
			name = name[:35] + "..."
		}
		DrawText(screen, name, font, x+12, y, colorWhite)
		DrawText(screen, e.LastUsed.Format("2006-01-02 15:04"), r.font(12), x+12, y+18, colorGray)
		y += 44
	}

	DrawText(screen, "J/K select  O open  X remove", r.font(12), x+12, float64(h-statusBarHeight)-22, colorGray)
}

func (r *Renderer) drawHelpOverlay(screen *ebiten.Image, w, h int) {
	DrawFilledRect(screen, 0, 0, float64(w), float64(h), bgColorMedium)

	keybindings := r.renderState.Keybindings()
	descriptions := GetActionDescriptions()

	actions := make([]string, 0, len(keybindings))
	for action := range keybindings {
		if _, known := descriptions[action]; known {
			actions = append(actions, action)
		}
	}
	sort.Strings(actions)

	font := r.font(15)
	DrawText(screen, "Keybindings", r.font(19), 24, 16, colorYellow)

	y := 52.0
	for _, action := range actions {
		keys := strings.Join(keybindings[action], ", ")
		DrawText(screen, keys, font, 24, y, colorGreen)
		DrawText(screen, descriptions[action], font, 220, y, colorWhite)
		y += 21
		if y > float64(h)-40 {
			break
		}
	}
}

func (r *Renderer) drawOverlayMessage(screen *ebiten.Image) {
	message, shownAt := r.renderState.OverlayMessage()
	if message == "" || time.Since(shownAt) >= overlayMessageDuration {
		return
	}

	w := screen.Bounds().Dx()
	font := r.font(16)
	textW := float64(len(message)) * 8.5
	x := float64(w)/2 - textW/2

	DrawFilledRect(screen, x-10, 14, textW+20, 28, bgColorDark)
	DrawText(screen, message, font, x, 19, colorWhite)
}
