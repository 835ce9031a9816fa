package surface

import (
	"errors"
	"fmt"
)

// ErrMissingElement is wrapped by HandleResolutionError when an id is absent.
var ErrMissingElement = errors.New("surface: element not found")

// Provider looks up elements in a host document and creates new ones.
type Provider interface {
	QuerySelector(selector string) (*Element, bool)
	CreateElement(tag string) *Element
}

// IDs names the surfaces a host document must expose.
type IDs struct {
	Stats       string
	Matchfield  string
	ReadyButton string
}

// DefaultIDs returns the element ids of the reference frontend page.
func DefaultIDs() IDs {
	return IDs{
		Stats:       "stats",
		Matchfield:  "matchfield",
		ReadyButton: "readyButton",
	}
}

// Required returns the ids in resolution order.
func (ids IDs) Required() []string {
	return []string{ids.Stats, ids.Matchfield, ids.ReadyButton}
}

// HandleResolutionError reports a required surface that could not be resolved.
// It is a fatal startup condition: the document is assumed static, so there
// is no retry.
type HandleResolutionError struct {
	ID  string
	Err error
}

func (e *HandleResolutionError) Error() string {
	return fmt.Sprintf("surface: cannot resolve #%s: %v", e.ID, e.Err)
}

func (e *HandleResolutionError) Unwrap() error {
	return e.Err
}

// Handles are the resolved surfaces plus the detached labels that will
// display a player's name and position.
type Handles struct {
	Stats      *Element
	Matchfield *Element
	Context    Context2D
	Ready      *Element

	// Labels are created detached; attaching them is up to the renderer.
	NameLabel *Element
	PosXLabel *Element
	PosYLabel *Element
}

// Resolve looks up every required surface and acquires the matchfield's 2D
// context. The first surface that cannot be resolved is reported as a
// *HandleResolutionError.
func Resolve(p Provider, ids IDs) (*Handles, error) {
	stats, err := lookup(p, ids.Stats)
	if err != nil {
		return nil, err
	}

	field, err := lookup(p, ids.Matchfield)
	if err != nil {
		return nil, err
	}
	ctx, err := field.GetContext(ContextKind2D)
	if err != nil {
		return nil, &HandleResolutionError{ID: ids.Matchfield, Err: err}
	}

	ready, err := lookup(p, ids.ReadyButton)
	if err != nil {
		return nil, err
	}

	return &Handles{
		Stats:      stats,
		Matchfield: field,
		Context:    ctx,
		Ready:      ready,
		NameLabel:  p.CreateElement("p"),
		PosXLabel:  p.CreateElement("p"),
		PosYLabel:  p.CreateElement("p"),
	}, nil
}

func lookup(p Provider, id string) (*Element, error) {
	if id == "" {
		return nil, &HandleResolutionError{ID: id, Err: fmt.Errorf("%w: empty id", ErrMissingElement)}
	}
	e, ok := p.QuerySelector("#" + id)
	if !ok || e == nil {
		return nil, &HandleResolutionError{ID: id, Err: ErrMissingElement}
	}
	return e, nil
}

// Labels returns the three stats labels in display order.
func (h *Handles) Labels() []*Element {
	return []*Element{h.NameLabel, h.PosXLabel, h.PosYLabel}
}

// AttachLabels inserts the labels into the stats region. Calling it twice
// keeps a single copy of each label.
func (h *Handles) AttachLabels() {
	for _, l := range h.Labels() {
		h.Stats.AppendChild(l)
	}
}

// ShowPlayer writes a player's name and position into the labels.
func (h *Handles) ShowPlayer(name string, x, y int) {
	h.NameLabel.SetText("Name: " + name)
	h.PosXLabel.SetText(fmt.Sprintf("X: %d", x))
	h.PosYLabel.SetText(fmt.Sprintf("Y: %d", y))
}
