package main

import (
	"context"
	"errors"
	"io/fs"
	"log"
	"os"
	"sort"
	"time"

	"github.com/hajimehoshi/ebiten/v2"
	"github.com/maruel/natural"
)

// Game is the main application state. It owns the selection, the overlay
// appearance and the UI panels, and implements ebiten.Game plus the
// RenderState/InputActions/InputState interfaces consumed by the renderer and
// the input handler.
type Game struct {
	ctx context.Context

	cfg       Config
	cfgResult ConfigLoadResult

	store      Store
	controller *ModeController
	importer   *Importer
	recent     *RecentList
	input      *InputHandler
	renderer   *Renderer

	// Current selection: the flat page list and the active page
	sources  []MockSource
	pageIdx  int
	selected *SelectedImage

	// Overlay appearance
	opacity      float64
	invert       bool
	clickThrough bool
	panX, panY   float64

	// UI state
	showHelp     bool
	showRecent   bool
	recentSel    int
	overlayMsg   string
	overlayMsgAt time.Time

	window NativeWindow
}

// NewGame creates the game with all collaborators wired up.
func NewGame(cfgResult ConfigLoadResult, store Store) *Game {
	cfg := cfgResult.Config
	g := &Game{
		ctx:          context.Background(),
		cfg:          cfg,
		cfgResult:    cfgResult,
		store:        store,
		importer:     NewImporter(cfg.CacheSize),
		recent:       NewRecentList(store),
		opacity:      cfg.Opacity,
		invert:       cfg.InvertColors,
		clickThrough: cfg.CompareClickThrough,
		window:       ebitenWindow{},
	}

	g.controller = NewModeController(g.window, NewWindowStateCache(store), func() bool {
		return g.selected != nil
	})
	g.controller.SetCompareWidth(cfg.CompareWidth)
	g.controller.SetClickThrough(cfg.CompareClickThrough)

	keys := NewKeybindingManager(cfg.Keybindings)
	mouse := NewMousebindingManager(cfg.Mousebindings, cfg.Mouse)
	g.input = NewInputHandler(g, g, keys, mouse)
	g.renderer = NewRenderer(g)

	g.recent.Load(g.ctx)
	return g
}

// OpenPaths loads the mocks named on the command line: images, directories
// and bundles.
func (g *Game) OpenPaths(args []string) error {
	sources, err := collectMockSources(args)
	if err != nil {
		return err
	}
	g.setSources(sources, 0)
	return nil
}

// RestoreLastImage reloads the mock that was selected when the app last
// exited, if one was recorded and is still loadable.
func (g *Game) RestoreLastImage() {
	sel := restoreSelection(g.ctx, g.store, g.importer)
	if sel == nil {
		return
	}
	g.selected = sel
	g.pageIdx = 0
	if sel.SourcePath != "" {
		g.sources = []MockSource{parseMockSource(sel.SourcePath)}
	} else {
		g.sources = []MockSource{{Path: sel.Name, Data: sel.Bytes}}
	}
}

// setSources replaces the page list and selects the page at idx. The previous
// bundle's decoded images are released first.
func (g *Game) setSources(sources []MockSource, idx int) {
	if len(sources) == 0 {
		return
	}
	g.importer.ReleaseAll()
	g.selected = nil
	g.sources = sources
	g.selectPage(idx)
}

// selectPage imports the page at idx and records it as the active selection.
func (g *Game) selectPage(idx int) {
	if idx < 0 || idx >= len(g.sources) {
		return
	}
	sel, err := g.importer.ImportSource(g.sources[idx])
	if err != nil {
		log.Printf("Error: %v", err)
		// Show a placeholder so the page list stays navigable; nothing is
		// recorded in history for a page that failed to load.
		name := g.sources[idx].displayName()
		g.pageIdx = idx
		g.selected = &SelectedImage{
			Name:  name,
			Image: CreateErrorImage(400, 300, name, err.Error()),
		}
		return
	}
	g.pageIdx = idx
	g.selected = sel
	g.recent.Touch(g.ctx, sel)
	rememberSelection(g.ctx, g.store, sel)
}

// Update implements ebiten.Game
func (g *Game) Update() error {
	if files := ebiten.DroppedFiles(); files != nil {
		g.handleDrop(files)
	}
	g.input.HandleInput()
	return nil
}

// Draw implements ebiten.Game
func (g *Game) Draw(screen *ebiten.Image) {
	g.renderer.Draw(screen)
}

// Layout implements ebiten.Game
func (g *Game) Layout(outsideWidth, outsideHeight int) (int, int) {
	return outsideWidth, outsideHeight
}

// handleDrop loads images dropped onto the window. Multiple dropped files
// become a page list in natural order.
func (g *Game) handleDrop(files fs.FS) {
	type dropped struct {
		name string
		data []byte
	}
	var drops []dropped

	err := fs.WalkDir(files, ".", func(path string, d fs.DirEntry, err error) error {
		if err != nil || d.IsDir() {
			return err
		}
		if !isSupportedExt(path) {
			log.Printf("Warning: ignoring dropped file %s: unsupported format", path)
			return nil
		}
		data, err := fs.ReadFile(files, path)
		if err != nil {
			log.Printf("Error: reading dropped file %s: %v", path, err)
			return nil
		}
		drops = append(drops, dropped{name: path, data: data})
		return nil
	})
	if err != nil {
		log.Printf("Error: reading dropped files: %v", err)
		return
	}
	if len(drops) == 0 {
		return
	}

	sort.Slice(drops, func(i, j int) bool {
		return natural.Less(drops[i].name, drops[j].name)
	})

	sources := make([]MockSource, 0, len(drops))
	for _, d := range drops {
		sources = append(sources, MockSource{Path: d.name, Data: d.data})
	}
	g.setSources(sources, 0)
}

// RenderState implementation

func (g *Game) Mode() Mode                     { return g.controller.Mode() }
func (g *Game) Selected() *SelectedImage       { return g.selected }
func (g *Game) PageIndex() int                 { return g.pageIdx }
func (g *Game) PageCount() int                 { return len(g.sources) }
func (g *Game) Opacity() float64               { return g.opacity }
func (g *Game) InvertColors() bool             { return g.invert }
func (g *Game) ClickThrough() bool             { return g.clickThrough }
func (g *Game) PanOffset() (float64, float64)  { return g.panX, g.panY }
func (g *Game) ShowingHelp() bool              { return g.showHelp }
func (g *Game) ShowingRecent() bool            { return g.showRecent }
func (g *Game) RecentEntries() []RecentImage   { return g.recent.Entries() }
func (g *Game) RecentSelection() int           { return g.recentSel }
func (g *Game) ConfigStatus() ConfigLoadResult { return g.cfgResult }

func (g *Game) OverlayMessage() (string, time.Time) {
	return g.overlayMsg, g.overlayMsgAt
}

func (g *Game) Keybindings() map[string][]string {
	return g.cfg.Keybindings
}

// InputState implementation

func (g *Game) RecentPanelOpen() bool { return g.showRecent }

// InputActions implementation

// Exit leaves compare mode if needed, persists the session and terminates.
func (g *Game) Exit() {
	if g.controller.Mode() == ModeCompare {
		if err := g.controller.ExitCompare(g.ctx); err != nil {
			log.Printf("Error: %v", err)
		}
	}

	saveConfig(g.sessionConfig())

	g.importer.ReleaseAll()
	os.Exit(0)
}

// sessionConfig is the configuration persisted at exit: the configured
// values plus the session's appearance settings and the live editor window
// size. The size is left untouched when the window is still in compare mode
// (a failed exit transition), so the overlay width never becomes the editor
// size.
func (g *Game) sessionConfig() Config {
	cfg := g.cfg
	if g.controller.Mode() == ModeNormal {
		if w, h, err := g.window.Size(g.ctx); err == nil {
			cfg.WindowWidth = w
			cfg.WindowHeight = h
		}
	}
	cfg.Opacity = g.opacity
	cfg.InvertColors = g.invert
	return cfg
}

func (g *Game) ToggleHelp() {
	g.showHelp = !g.showHelp
}

// ToggleCompare switches between the editor window and the compare overlay.
func (g *Game) ToggleCompare() {
	if g.controller.Mode() == ModeCompare {
		if err := g.controller.ExitCompare(g.ctx); err != nil && !errors.Is(err, errTransitionPending) {
			log.Printf("Error: %v", err)
			g.ShowOverlayMessage("could not leave compare mode")
		}
		return
	}

	if g.selected == nil {
		g.ShowOverlayMessage("no mock selected")
		return
	}
	g.showHelp = false
	g.showRecent = false
	if err := g.controller.EnterCompare(g.ctx); err != nil && !errors.Is(err, errTransitionPending) {
		log.Printf("Error: %v", err)
		g.ShowOverlayMessage("could not enter compare mode")
	}
}

func (g *Game) OpacityUp() {
	g.setOpacity(g.opacity + g.cfg.OpacityStep)
}

func (g *Game) OpacityDown() {
	g.setOpacity(g.opacity - g.cfg.OpacityStep)
}

func (g *Game) OpacityReset() {
	g.setOpacity(g.cfg.Opacity)
}

func (g *Game) setOpacity(v float64) {
	if v < minOpacity {
		v = minOpacity
	}
	if v > 1.0 {
		v = 1.0
	}
	g.opacity = v
}

func (g *Game) ToggleInvert() {
	g.invert = !g.invert
}

// ToggleClickThrough flips whether the overlay ignores mouse input. In
// compare mode it takes effect immediately, otherwise on the next entry.
func (g *Game) ToggleClickThrough() {
	g.clickThrough = !g.clickThrough
	g.controller.SetClickThrough(g.clickThrough)
	if g.controller.Mode() == ModeCompare {
		if err := g.window.SetMousePassthrough(g.ctx, g.clickThrough); err != nil {
			log.Printf("Error: %v", err)
		}
	}
	if g.clickThrough {
		g.ShowOverlayMessage("click-through on")
	} else {
		g.ShowOverlayMessage("click-through off")
	}
}

func (g *Game) PanBy(dx, dy float64) {
	g.panX += dx
	g.panY += dy
}

func (g *Game) PanReset() {
	g.panX = 0
	g.panY = 0
}

func (g *Game) NextPage() {
	if len(g.sources) < 2 {
		return
	}
	g.selectPage((g.pageIdx + 1) % len(g.sources))
}

func (g *Game) PreviousPage() {
	if len(g.sources) < 2 {
		return
	}
	g.selectPage((g.pageIdx - 1 + len(g.sources)) % len(g.sources))
}

func (g *Game) ToggleRecentPanel() {
	g.showRecent = !g.showRecent
	g.recentSel = 0
}

func (g *Game) RecentNext() {
	if !g.showRecent {
		return
	}
	if n := len(g.recent.Entries()); n > 0 {
		g.recentSel = (g.recentSel + 1) % n
	}
}

func (g *Game) RecentPrevious() {
	if !g.showRecent {
		return
	}
	if n := len(g.recent.Entries()); n > 0 {
		g.recentSel = (g.recentSel - 1 + n) % n
	}
}

// RecentOpen loads the highlighted history entry.
func (g *Game) RecentOpen() {
	if !g.showRecent {
		return
	}
	entries := g.recent.Entries()
	if g.recentSel < 0 || g.recentSel >= len(entries) {
		return
	}
	entry := entries[g.recentSel]

	var sources []MockSource
	if entry.Path != "" {
		sources = []MockSource{parseMockSource(entry.Path)}
	} else {
		sources = []MockSource{{Path: entry.Name, Data: entry.Data}}
	}
	g.setSources(sources, 0)
	g.showRecent = false
}

func (g *Game) RecentRemove() {
	if !g.showRecent {
		return
	}
	entries := g.recent.Entries()
	if g.recentSel < 0 || g.recentSel >= len(entries) {
		return
	}
	g.recent.Remove(g.ctx, entries[g.recentSel].ID)
	if n := len(g.recent.Entries()); g.recentSel >= n && n > 0 {
		g.recentSel = n - 1
	}
}

// ClearImage drops the current selection and its restart-restore record.
func (g *Game) ClearImage() {
	if g.controller.Mode() == ModeCompare {
		if err := g.controller.ExitCompare(g.ctx); err != nil {
			log.Printf("Error: %v", err)
			return
		}
	}
	g.importer.Release(g.selected)
	g.selected = nil
	g.sources = nil
	g.pageIdx = 0
	g.PanReset()
	forgetSelection(g.ctx, g.store)
}

// ResetWindowSize restores the configured editor window size. Only the
// editor window is resettable; the overlay keeps its cached geometry.
func (g *Game) ResetWindowSize() {
	if g.controller.Mode() != ModeNormal {
		return
	}
	if err := g.window.SetSize(g.ctx, g.cfg.WindowWidth, g.cfg.WindowHeight); err != nil {
		log.Printf("Error: %v", err)
	}
}

func (g *Game) ShowOverlayMessage(message string) {
	g.overlayMsg = message
	g.overlayMsgAt = time.Now()
}
