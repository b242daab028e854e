// Package htmldoc implements the dispatcher's document port over a parsed HTML page.
//
// Matching follows the DOM: the marker class and each element's class attribute
// are split on ASCII whitespace, and an element is a mount point when it carries
// every marker token (case-sensitive). Template content is inert and never matched. The
// configuration string is the element's dataset entry for the marker's data key,
// i.e. the data-* attribute obtained by converting the camelCase key to kebab-case.
package htmldoc

import (
	"context"
	"fmt"
	"io"
	"os"
	"slices"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"github.com/petricontrols/bootstrap/domain/entities"
	"github.com/petricontrols/bootstrap/domain/ports"
	"github.com/petricontrols/bootstrap/wireformat"
)

// Document is an immutable snapshot of a parsed HTML page.
type Document struct {
	root *html.Node
}

var _ ports.Document = (*Document)(nil)

// Parse reads and parses an HTML page.
func Parse(r io.Reader) (*Document, error) {
	root, err := html.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("failed to parse html: %w", err)
	}
	return &Document{root: root}, nil
}

// ParseString parses an HTML page held in memory.
func ParseString(s string) (*Document, error) {
	return Parse(strings.NewReader(s))
}

// ParseFile opens and parses the HTML page at path.
func ParseFile(path string) (*Document, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open page: %w", err)
	}
	defer f.Close()
	return Parse(f)
}

// Query implements ports.Document. Elements are returned in document order.
// A missing id or data attribute yields an empty string.
func (d *Document) Query(ctx context.Context, marker entities.Marker) ([]entities.MountPoint, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	attrName, err := DatasetAttribute(marker.DataKey)
	if err != nil {
		return nil, err
	}

	classes := strings.FieldsFunc(marker.Class, isASCIIWhitespace)
	mounts := []entities.MountPoint{}
	d.walk(func(n *html.Node) {
		if !hasClasses(n, classes) {
			return
		}
		mounts = append(mounts, entities.MountPoint{
			ID:     attr(n, "id"),
			Config: attr(n, attrName),
			Index:  len(mounts),
		})
	})
	return mounts, nil
}

// Element is a read-only view of one element, as exposed to module instances.
type Element = wireformat.ElementWire

// Lookup returns the first element whose id equals id.
func (d *Document) Lookup(id string) (Element, bool) {
	if id == "" {
		return Element{}, false
	}

	var found *html.Node
	d.walk(func(n *html.Node) {
		if found == nil && attr(n, "id") == id {
			found = n
		}
	})
	if found == nil {
		return Element{}, false
	}

	el := Element{
		Tag:        found.Data,
		Attributes: make(map[string]string, len(found.Attr)),
		Text:       strings.TrimSpace(textContent(found)),
	}
	for _, a := range found.Attr {
		el.Attributes[a.Key] = a.Val
		if key, ok := DatasetKey(a.Key); ok {
			if el.Dataset == nil {
				el.Dataset = make(map[string]string)
			}
			el.Dataset[key] = a.Val
		}
	}
	return el, true
}

// walk visits every element node in document order (pre-order, depth first).
// The contents of <template> elements are not part of the document and are skipped.
func (d *Document) walk(visit func(*html.Node)) {
	var rec func(*html.Node)
	rec = func(n *html.Node) {
		if n.Type == html.ElementNode {
			visit(n)
			if n.DataAtom == atom.Template {
				return
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			rec(c)
		}
	}
	rec(d.root)
}

func attr(n *html.Node, key string) string {
	for _, a := range n.Attr {
		if a.Namespace == "" && a.Key == key {
			return a.Val
		}
	}
	return ""
}

// hasClasses reports whether the element's class list contains every class.
// An empty set matches nothing, as getElementsByClassName("") does.
func hasClasses(n *html.Node, classes []string) bool {
	if len(classes) == 0 {
		return false
	}
	tokens := strings.FieldsFunc(attr(n, "class"), isASCIIWhitespace)
	for _, class := range classes {
		if !slices.Contains(tokens, class) {
			return false
		}
	}
	return true
}

func isASCIIWhitespace(r rune) bool {
	switch r {
	case ' ', '\t', '\n', '\f', '\r':
		return true
	}
	return false
}

func textContent(n *html.Node) string {
	var sb strings.Builder
	var rec func(*html.Node)
	rec = func(n *html.Node) {
		if n.Type == html.TextNode {
			sb.WriteString(n.Data)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			rec(c)
		}
	}
	rec(n)
	return sb.String()
}
