package surface

import "strings"

// Document is an in-memory element tree indexed by id.
type Document struct {
	body       *Element
	byID       map[string]*Element
	newContext func(w, h int) Context2D
}

// NewDocument creates an empty document with a body element.
func NewDocument() *Document {
	return &Document{
		body: newElement("body"),
		byID: make(map[string]*Element),
	}
}

// SetContextFactory sets how canvases created afterwards build their 2D context.
func (d *Document) SetContextFactory(fn func(w, h int) Context2D) {
	d.newContext = fn
}

// Body returns the root element.
func (d *Document) Body() *Element {
	return d.body
}

// CreateElement returns a new detached element.
func (d *Document) CreateElement(tag string) *Element {
	e := newElement(tag)
	if e.IsCanvas() {
		e.width, e.height = DefaultCanvasWidth, DefaultCanvasHeight
		e.newContext = d.newContext
	}
	return e
}

// Append creates an element with the given id under parent (body when nil)
// and indexes it. The first element registered under an id wins.
func (d *Document) Append(parent *Element, tag, id string) *Element {
	if parent == nil {
		parent = d.body
	}
	e := d.CreateElement(tag)
	parent.AppendChild(e)
	d.index(e, id)
	return e
}

// AppendCanvas appends a canvas with explicit dimensions.
func (d *Document) AppendCanvas(parent *Element, id string, width, height int) *Element {
	e := d.Append(parent, "canvas", id)
	e.width, e.height = width, height
	return e
}

func (d *Document) index(e *Element, id string) {
	if id == "" {
		return
	}
	e.id = id
	e.attrs["id"] = id
	if _, exists := d.byID[id]; !exists {
		d.byID[id] = e
	}
}

// GetElementByID returns the element registered under id.
func (d *Document) GetElementByID(id string) (*Element, bool) {
	e, ok := d.byID[id]
	return e, ok
}

// QuerySelector supports id selectors ("#stats"); a bare name is treated as an id.
func (d *Document) QuerySelector(selector string) (*Element, bool) {
	return d.GetElementByID(strings.TrimPrefix(strings.TrimSpace(selector), "#"))
}

// Remove detaches the element registered under id and drops it from the index.
func (d *Document) Remove(id string) {
	e, ok := d.byID[id]
	if !ok {
		return
	}
	if e.parent != nil {
		e.parent.removeChild(e)
	}
	delete(d.byID, id)
}

// IDs returns every indexed id.
func (d *Document) IDs() []string {
	ids := make([]string, 0, len(d.byID))
	for id := range d.byID {
		ids = append(ids, id)
	}
	return ids
}
