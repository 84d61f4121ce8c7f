package ui

import (
	_ "embed"
	"slices"
	"strings"
)

// DefaultCSS styles the HUD when no stylesheet was loaded.
//
//go:embed hud.css
var DefaultCSS string

const (
	actionPrefix = "action-"
	presetPrefix = "preset-"
	activeClass  = "active"

	rowLeft      = 12
	actionRowTop = 52
	presetRowTop = 94
	buttonWidth  = 96
	buttonHeight = 32
	buttonGap    = 8

	titleText   = "Silly Billy"
	loadingText = "Loading..."
	oopsText    = "Oops!"
	retryText   = "Press Enter to try again"
	hintText    = "Click a part to poke it. Arrows tilt, right-drag orbits, wheel zooms, ` opens the console."
)

// Mode selects which screen the HUD shows.
type Mode int

const (
	ModeLoading Mode = iota
	ModeRunning
	ModeError
)

// Target is what a click on the HUD asks for: one action or one preset.
type Target struct {
	Action string
	Preset string
}

// HUD is the 2D overlay: title, action and preset buttons, motion status, hint, tapped-part
// inspector, and the loading and error screens.
type HUD struct {
	engine *Engine
	mode   Mode

	title   *Node
	status  *Node
	hint    *Node
	actions []*Node
	presets []*Node

	screen     *Node
	loading    *Node
	oopsTitle  *Node
	oopsDetail *Node
	oopsRetry  *Node

	inspector *Inspector
	selection Selection
	selected  bool

	nodes []*Node
}

// NewHUD returns a HUD in loading mode with one button per action, in the given order.
// If engine has no stylesheet, DefaultCSS is used.
func NewHUD(engine *Engine, actions []string) *HUD {
	if !engine.HasStylesheet() {
		sheet, _ := ParseCSS(DefaultCSS)
		engine.SetStylesheet(sheet)
	}
	h := &HUD{
		engine:     engine,
		title:      NewNode("label", "", "title", titleText),
		status:     NewNode("label", "", "status", ""),
		hint:       NewNode("label", "", "hint", hintText),
		screen:     NewNode("panel", "screen", "", ""),
		loading:    NewNode("label", "message", "loading", loadingText),
		oopsTitle:  NewNode("label", "message", "oops-title", oopsText),
		oopsDetail: NewNode("label", "", "oops-detail", ""),
		oopsRetry:  NewNode("label", "", "oops-retry", retryText),
		inspector:  NewInspector(),
	}
	for i, a := range actions {
		h.actions = append(h.actions, button(actionPrefix+a, label(a), i, actionRowTop, "button"))
	}
	return h
}

func button(id, text string, i int, top float32, class string) *Node {
	n := NewNode("button", class, id, text)
	n.Bounds.X = float32(rowLeft + i*(buttonWidth+buttonGap))
	n.Bounds.Y = top
	n.Bounds.Width = buttonWidth
	n.Bounds.Height = buttonHeight
	return n
}

func label(name string) string {
	if name == "" {
		return name
	}
	return strings.ToUpper(name[:1]) + name[1:]
}

// Mode returns the current screen.
func (h *HUD) Mode() Mode {
	return h.mode
}

// ShowLoading shows the loading screen.
func (h *HUD) ShowLoading() {
	h.mode = ModeLoading
}

// ShowRunning shows the controls over the scene.
func (h *HUD) ShowRunning() {
	h.mode = ModeRunning
}

// ShowError shows the error screen with err's message.
func (h *HUD) ShowError(err error) {
	h.mode = ModeError
	h.oopsDetail.Text = ""
	if err != nil {
		h.oopsDetail.Text = err.Error()
	}
}

// SetPresets shows one button per preset name and marks active.
func (h *HUD) SetPresets(names []string, active string) {
	if !slices.EqualFunc(names, h.presets, func(name string, n *Node) bool { return n.ID == presetPrefix+name }) {
		h.presets = h.presets[:0]
		for i, name := range names {
			h.presets = append(h.presets, button(presetPrefix+name, label(name), i, presetRowTop, "button preset"))
		}
	}
	for _, n := range h.presets {
		n.SetClass(activeClass, n.ID == presetPrefix+active)
	}
}

// SetStatus sets the motion status line.
func (h *HUD) SetStatus(text string) {
	h.status.Text = text
}

// Inspect shows sel in the inspector; ok false hides it.
func (h *HUD) Inspect(sel Selection, ok bool) {
	h.selection = sel
	h.selected = ok
}

// layout hands the nodes of the current mode to the engine.
func (h *HUD) layout() {
	nodes := h.nodes[:0]
	switch h.mode {
	case ModeLoading:
		nodes = append(nodes, h.screen, h.loading)
	case ModeError:
		nodes = append(nodes, h.screen, h.oopsTitle, h.oopsDetail, h.oopsRetry)
	default:
		nodes = append(nodes, h.title)
		nodes = append(nodes, h.actions...)
		nodes = append(nodes, h.presets...)
		nodes = append(nodes, h.status, h.hint)
		nodes = h.inspector.AppendNodes(nodes, h.selected, h.selection)
	}
	h.nodes = nodes
	h.engine.SetNodes(nodes)
}

// Draw draws the current screen. Call after the 3D scene.
func (h *HUD) Draw() {
	h.layout()
	h.engine.Draw()
}

// Click returns the button under (x, y) on a screenW×screenH screen. ok is false when the point
// is not on a button, so the click belongs to the scene.
func (h *HUD) Click(x, y float32, screenW, screenH int32) (t Target, ok bool) {
	if h.mode != ModeRunning {
		return Target{}, false
	}
	h.layout()
	n := h.engine.HitTest(x, y, screenW, screenH)
	if n == nil {
		return Target{}, false
	}
	if name, found := strings.CutPrefix(n.ID, actionPrefix); found {
		return Target{Action: name}, true
	}
	if name, found := strings.CutPrefix(n.ID, presetPrefix); found {
		return Target{Preset: name}, true
	}
	return Target{}, false
}
