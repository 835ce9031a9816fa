// Package surface resolves the UI surfaces a bomber client draws on: the
// matchfield canvas with its 2D context, the stats region and the ready
// control. Host documents implement Provider; the terminal host and HTML
// pages both build a Document.
package surface

import (
	"errors"
	"fmt"
	"strings"

	"github.com/vovakirdan/tui-bomber/internal/core"
)

// ContextKind2D is the only drawing context kind a canvas hands out.
const ContextKind2D = "2d"

// Default canvas size when the element does not specify one.
const (
	DefaultCanvasWidth  = 300
	DefaultCanvasHeight = 150
)

// ErrNoContext is returned when a drawing context cannot be acquired.
var ErrNoContext = errors.New("surface: drawing context unavailable")

// Context2D is a drawing context bound to a fixed-size canvas.
// *core.Screen satisfies it.
type Context2D interface {
	Width() int
	Height() int
	Clear()
	Set(x, y int, r rune)
	DrawText(x, y int, text string)
	DrawBox(r core.Rect)
}

// Element is a node of a host document.
// Elements are owned by the goroutine that drives the host; they are not
// safe for concurrent mutation.
type Element struct {
	id       string
	tag      string
	text     string
	attrs    map[string]string
	parent   *Element
	children []*Element

	// canvas only
	width, height int
	newContext    func(w, h int) Context2D
	ctx           Context2D

	onActivate []func()
}

func newElement(tag string) *Element {
	return &Element{
		tag:   strings.ToLower(tag),
		attrs: make(map[string]string),
	}
}

// ID returns the element id, empty for anonymous elements.
func (e *Element) ID() string {
	return e.id
}

// Tag returns the lower-case tag name.
func (e *Element) Tag() string {
	return e.tag
}

// Text returns the element's text content.
func (e *Element) Text() string {
	return e.text
}

// SetText replaces the element's text content.
func (e *Element) SetText(text string) {
	e.text = text
}

// Attr returns an attribute value.
func (e *Element) Attr(name string) (string, bool) {
	v, ok := e.attrs[strings.ToLower(name)]
	return v, ok
}

// SetAttr sets an attribute value.
func (e *Element) SetAttr(name, value string) {
	e.attrs[strings.ToLower(name)] = value
}

// Parent returns the parent element, nil when detached.
func (e *Element) Parent() *Element {
	return e.parent
}

// Attached reports whether the element has been inserted into a tree.
func (e *Element) Attached() bool {
	return e.parent != nil
}

// Children returns the direct children.
func (e *Element) Children() []*Element {
	return e.children
}

// AppendChild moves child under e.
func (e *Element) AppendChild(child *Element) {
	if child == nil || child == e {
		return
	}
	if child.parent != nil {
		child.parent.removeChild(child)
	}
	child.parent = e
	e.children = append(e.children, child)
}

func (e *Element) removeChild(child *Element) {
	for i, c := range e.children {
		if c == child {
			e.children = append(e.children[:i], e.children[i+1:]...)
			child.parent = nil
			return
		}
	}
}

// IsCanvas reports whether the element can hand out a drawing context.
func (e *Element) IsCanvas() bool {
	return e.tag == "canvas"
}

// Size returns the canvas dimensions.
func (e *Element) Size() (int, int) {
	return e.width, e.height
}

// GetContext returns the canvas drawing context of the given kind.
// Repeated calls return the same context.
func (e *Element) GetContext(kind string) (Context2D, error) {
	if !e.IsCanvas() {
		return nil, fmt.Errorf("%w: <%s> is not a canvas", ErrNoContext, e.tag)
	}
	if kind != ContextKind2D {
		return nil, fmt.Errorf("%w: unsupported context %q", ErrNoContext, kind)
	}
	if e.ctx == nil {
		factory := e.newContext
		if factory == nil {
			factory = screenContext
		}
		e.ctx = factory(e.width, e.height)
		if e.ctx == nil {
			return nil, ErrNoContext
		}
	}
	return e.ctx, nil
}

// OnActivate registers a callback run when the element is activated.
func (e *Element) OnActivate(fn func()) {
	if fn != nil {
		e.onActivate = append(e.onActivate, fn)
	}
}

// Activate runs the activation callbacks in registration order, the way a
// click dispatches to listeners.
func (e *Element) Activate() {
	for _, fn := range e.onActivate {
		fn()
	}
}

func screenContext(w, h int) Context2D {
	return core.NewScreen(w, h)
}
