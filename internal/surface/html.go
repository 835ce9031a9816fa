package surface

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"golang.org/x/net/html"
)

// ParseHTML builds a Document from an HTML page. Every element is copied
// with its attributes and text; elements carrying an id are indexed.
func ParseHTML(r io.Reader) (*Document, error) {
	root, err := html.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("surface: cannot parse html: %w", err)
	}

	doc := NewDocument()
	var walk func(n *html.Node, parent *Element)
	walk = func(n *html.Node, parent *Element) {
		next := parent
		switch n.Type {
		case html.ElementNode:
			switch n.Data {
			case "html", "head", "body":
				// Document wrappers collapse into the body.
				copyAttrs(doc.body, n)
				next = doc.body
				for c := n.FirstChild; c != nil; c = c.NextSibling {
					walk(c, next)
				}
				return
			}
			e := doc.CreateElement(n.Data)
			copyAttrs(e, n)
			if e.IsCanvas() {
				e.width = intAttr(n, "width", DefaultCanvasWidth)
				e.height = intAttr(n, "height", DefaultCanvasHeight)
			}
			parent.AppendChild(e)
			if id, ok := e.Attr("id"); ok {
				doc.index(e, id)
			}
			next = e
		case html.TextNode:
			if text := strings.TrimSpace(n.Data); text != "" && parent != doc.body {
				if parent.text != "" {
					parent.text += " "
				}
				parent.text += text
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c, next)
		}
	}
	walk(root, doc.body)

	return doc, nil
}

func copyAttrs(e *Element, n *html.Node) {
	for _, a := range n.Attr {
		e.SetAttr(a.Key, a.Val)
	}
}

func intAttr(n *html.Node, key string, def int) int {
	for _, a := range n.Attr {
		if a.Key != key {
			continue
		}
		v, err := strconv.Atoi(strings.TrimSpace(a.Val))
		if err != nil || v < 0 {
			return def
		}
		return v
	}
	return def
}
