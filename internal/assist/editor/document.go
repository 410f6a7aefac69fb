package editor

import (
	"fmt"
	"os"
	"strings"

	"golang.org/x/net/html"

	"github.com/codepane-dev/codepane/internal/assist"
)

// lineClass marks a rendered code line in the host editor's DOM. Line
// elements are located by this class only for reading; the writable
// region is located by its role attribute, which stays stable across host
// editor versions while class names do not.
const lineClass = "view-line"

// editableRole is the ARIA role carried by the host editor's primary
// editable region.
const editableRole = "textbox"

// Document is a Surface over an HTML document on disk. It reads the
// markup of the rendered code lines and writes code into the element
// carrying the editable role, rewriting the file in place.
type Document struct {
	path     string
	onChange func(code string)
}

// NewDocument creates a Document surface for the page at path.
func NewDocument(path string) *Document {
	return &Document{path: path}
}

// OnChange registers a callback fired after every successful write, in
// place of the synthetic input event a live page would receive.
func (d *Document) OnChange(fn func(code string)) {
	d.onChange = fn
}

// ReadMarkup implements Surface. It returns the outer markup of every
// rendered code line, one line element per text line.
func (d *Document) ReadMarkup() (string, error) {
	doc, err := d.parse()
	if err != nil {
		return "", err
	}

	var b strings.Builder
	for _, n := range findAll(doc, func(n *html.Node) bool { return hasClass(n, lineClass) }) {
		if b.Len() > 0 {
			b.WriteByte('\n')
		}
		if err := html.Render(&b, n); err != nil {
			return "", fmt.Errorf("rendering line markup: %w", err)
		}
	}
	return b.String(), nil
}

// WriteCode implements Surface. The whole document is re-serialized so
// the mutation is visible to whatever watches the file.
func (d *Document) WriteCode(code string) error {
	doc, err := d.parse()
	if err != nil {
		return err
	}

	target := find(doc, func(n *html.Node) bool { return attr(n, "role") == editableRole })
	if target == nil {
		return assist.ErrEditorNotFound
	}

	for c := target.FirstChild; c != nil; {
		next := c.NextSibling
		target.RemoveChild(c)
		c = next
	}
	target.AppendChild(&html.Node{Type: html.TextNode, Data: code})

	var b strings.Builder
	if err := html.Render(&b, doc); err != nil {
		return fmt.Errorf("rendering page: %w", err)
	}
	if err := os.WriteFile(d.path, []byte(b.String()), 0644); err != nil {
		return fmt.Errorf("writing page file: %w", err)
	}

	if d.onChange != nil {
		d.onChange(code)
	}
	return nil
}

func (d *Document) parse() (*html.Node, error) {
	f, err := os.Open(d.path)
	if err != nil {
		return nil, fmt.Errorf("opening page file: %w", err)
	}
	defer f.Close()

	doc, err := html.Parse(f)
	if err != nil {
		return nil, fmt.Errorf("parsing page file: %w", err)
	}
	return doc, nil
}

// find returns the first node in document order matching pred.
func find(n *html.Node, pred func(*html.Node) bool) *html.Node {
	if n.Type == html.ElementNode && pred(n) {
		return n
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if m := find(c, pred); m != nil {
			return m
		}
	}
	return nil
}

// findAll returns every node in document order matching pred, without
// descending into matches.
func findAll(n *html.Node, pred func(*html.Node) bool) []*html.Node {
	if n.Type == html.ElementNode && pred(n) {
		return []*html.Node{n}
	}
	var out []*html.Node
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		out = append(out, findAll(c, pred)...)
	}
	return out
}

func attr(n *html.Node, key string) string {
	for _, a := range n.Attr {
		if a.Key == key {
			return a.Val
		}
	}
	return ""
}

func hasClass(n *html.Node, class string) bool {
	for _, c := range strings.Fields(attr(n, "class")) {
		if c == class {
			return true
		}
	}
	return false
}
