package ui

import (
	"os"

	rl "github.com/gen2brain/raylib-go/raylib"
)

const defaultFontSize = 20

// Engine holds the current stylesheet and nodes, and draws them with raylib.
// Draw order is node order (first node drawn first, then on top the next).
// Resolved styles are cached per node and only recomputed when the stylesheet or the node's
// classes or id change.
// If font is loaded (LoadFont), text is drawn with that font; otherwise raylib's default (pixel) font is used.
type Engine struct {
	sheet  *Stylesheet
	nodes  []*Node
	styles map[*Node]cachedStyle
	font   rl.Font
}

type cachedStyle struct {
	key   string
	style ComputedStyle
}

// New creates an empty UI engine (no stylesheet, no nodes).
func New() *Engine {
	return &Engine{styles: make(map[*Node]cachedStyle)}
}

// LoadCSS loads and parses a CSS file from path. Replaces the current stylesheet.
func (e *Engine) LoadCSS(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return err
	}
	sheet, err := ParseCSS(string(data))
	if err != nil {
		return err
	}
	e.SetStylesheet(sheet)
	return nil
}

// SetStylesheet sets the stylesheet directly (e.g. from embedded CSS).
func (e *Engine) SetStylesheet(sheet *Stylesheet) {
	e.sheet = sheet
	clear(e.styles)
}

// LoadFont loads a TTF font from path for text rendering. If loading fails, the engine keeps using the default font.
// Call after the window/OpenGL context exists.
func (e *Engine) LoadFont(path string) error {
	f := rl.LoadFontEx(path, 48, nil)
	if f.Texture.ID == 0 {
		return os.ErrNotExist
	}
	rl.SetTextureFilter(f.Texture, rl.FilterBilinear)
	if e.font.Texture.ID != 0 {
		rl.UnloadFont(e.font)
	}
	e.font = f
	return nil
}

// Font returns the loaded font; its texture ID is zero when none is loaded.
func (e *Engine) Font() rl.Font {
	return e.font
}

// Unload frees the font. Call before the window closes.
func (e *Engine) Unload() {
	if e.font.Texture.ID != 0 {
		rl.UnloadFont(e.font)
		e.font = rl.Font{}
	}
}

// AddNode appends a node. Nodes are drawn in order.
func (e *Engine) AddNode(n *Node) {
	e.nodes = append(e.nodes, n)
}

// SetNodes replaces all nodes.
func (e *Engine) SetNodes(nodes []*Node) {
	e.nodes = nodes
	for n := range e.styles {
		if !contains(nodes, n) {
			delete(e.styles, n)
		}
	}
}

func contains(nodes []*Node, n *Node) bool {
	for _, m := range nodes {
		if m == n {
			return true
		}
	}
	return false
}

// matches reports whether a ".class" or "#id" selector applies to n.
func matches(sel string, n *Node) bool {
	if len(sel) < 2 {
		return false
	}
	switch sel[0] {
	case '.':
		return n.HasClass(sel[1:])
	case '#':
		return n.ID == sel[1:]
	}
	return false
}

// resolveProps returns merged properties for a node (classes and id matched; last wins).
func (e *Engine) resolveProps(n *Node) map[string]string {
	merged := make(map[string]string)
	if e.sheet == nil {
		return merged
	}
	for _, rule := range e.sheet.Rules {
		if matches(rule.Selector, n) {
			for k, v := range rule.Props {
				merged[k] = v
			}
		}
	}
	return merged
}

// style returns the cached computed style of n and applies its size and pixel position to n.Bounds.
func (e *Engine) style(n *Node) ComputedStyle {
	key := n.styleKey()
	c, ok := e.styles[n]
	if !ok || c.key != key {
		c = cachedStyle{key: key, style: ResolveProps(e.resolveProps(n))}
		e.styles[n] = c
	}
	resolveBounds(n, c.style)
	return c.style
}

// resolveBounds sets n.Bounds from style. Unset size or position keeps the value set in code.
func resolveBounds(n *Node, style ComputedStyle) {
	if style.Width > 0 {
		n.Bounds.Width = float32(style.Width)
	}
	if style.Height > 0 {
		n.Bounds.Height = float32(style.Height)
	}
	if style.HasLeft {
		n.Bounds.X = float32(style.Left)
	}
	if style.HasTop {
		n.Bounds.Y = float32(style.Top)
	}
}

// screenRect returns where n is drawn on a screenW×screenH screen, resolving percentage positions.
func screenRect(n *Node, style ComputedStyle, screenW, screenH int32) (x, y, w, h int32) {
	w = int32(n.Bounds.Width)
	h = int32(n.Bounds.Height)
	x = int32(n.Bounds.X)
	y = int32(n.Bounds.Y)
	if style.LeftPct >= 0 {
		x = (screenW-w)*style.LeftPct/100 + style.Left
	}
	if style.TopPct >= 0 {
		y = (screenH-h)*style.TopPct/100 + style.Top
	}
	return x, y, w, h
}

// HitTest returns the topmost node with an id whose drawn rectangle contains (x, y), or nil.
func (e *Engine) HitTest(x, y float32, screenW, screenH int32) *Node {
	for i := len(e.nodes) - 1; i >= 0; i-- {
		n := e.nodes[i]
		style := e.style(n)
		if n.ID == "" {
			continue
		}
		nx, ny, w, h := screenRect(n, style, screenW, screenH)
		r := rl.Rectangle{X: float32(nx), Y: float32(ny), Width: float32(w), Height: float32(h)}
		if w > 0 && h > 0 && rl.CheckCollisionPointRec(rl.NewVector2(x, y), r) {
			return n
		}
	}
	return nil
}

// Draw draws all nodes: for each node, resolve style (cached), then draw background, border, and text.
func (e *Engine) Draw() {
	screenW := int32(rl.GetScreenWidth())
	screenH := int32(rl.GetScreenHeight())
	for _, n := range e.nodes {
		style := e.style(n)
		x, y, w, h := screenRect(n, style, screenW, screenH)

		if style.Background.A > 0 {
			rl.DrawRectangle(x, y, w, h, style.Background)
		}
		if style.HasBorder && w > 0 && h > 0 {
			rl.DrawRectangleLines(x, y, w, h, style.Border)
		}
		if n.Text != "" {
			e.drawText(n.Text, x, y, w, style)
		}
	}
}

func (e *Engine) drawText(text string, x, y, w int32, style ComputedStyle) {
	pad := style.Padding
	if pad <= 0 {
		pad = 4
	}
	size := style.FontSize
	textX := x + pad
	if e.font.Texture.ID != 0 {
		if style.TextAlign == AlignCenter {
			tw := rl.MeasureTextEx(e.font, text, float32(size), 1).X
			textX = x + (w-int32(tw))/2
		}
		rl.DrawTextEx(e.font, text, rl.NewVector2(float32(textX), float32(y+pad)), float32(size), 1, style.Color)
		return
	}
	if style.TextAlign == AlignCenter {
		textX = x + (w-rl.MeasureText(text, size))/2
	}
	rl.DrawText(text, textX, y+pad, size, style.Color)
}

// HasStylesheet returns whether a stylesheet with rules is set.
func (e *Engine) HasStylesheet() bool {
	return e.sheet != nil && len(e.sheet.Rules) > 0
}

// Stylesheet returns the current stylesheet (may be nil).
func (e *Engine) Stylesheet() *Stylesheet {
	return e.sheet
}
