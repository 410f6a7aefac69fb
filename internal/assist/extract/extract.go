// Package extract converts the raw markup of a host editor's visible line
// container into a clean source-code string suitable for prompt inclusion.
package extract

import (
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// Code cleans the raw markup copied from an editor's line container.
//
// Editors render each logical line as a separate block element and wrap
// tokens in synthetic spans; Code strips the wrappers and rejoins the
// blocks with one newline per visible line. Entities are decoded and
// non-breaking spaces (which editors use to preserve indentation) become
// plain spaces. Already-clean plain text passes through unchanged.
//
// On empty or unparseable input, Code returns an empty string. It never
// fails.
func Code(markup string) string {
	if strings.TrimSpace(markup) == "" {
		return ""
	}

	container := &html.Node{Type: html.ElementNode, Data: "div", DataAtom: atom.Div}
	nodes, err := html.ParseFragment(strings.NewReader(markup), container)
	if err != nil {
		return ""
	}

	var lines []string
	for _, n := range nodes {
		switch n.Type {
		case html.TextNode:
			// Loose text between line blocks is usually formatting
			// whitespace from the serializer; keep it only when it
			// carries content.
			if t := normalize(n.Data); strings.TrimSpace(t) != "" {
				lines = append(lines, t)
			}
		case html.ElementNode:
			lines = append(lines, blockText(n))
		}
	}

	return strings.Join(lines, "\n")
}

// blockText flattens one line block to its visible text. A <br> inside a
// block is a line break; a block holding nothing but a <br> is an empty
// line.
func blockText(n *html.Node) string {
	var b strings.Builder
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		switch {
		case n.Type == html.TextNode:
			b.WriteString(normalize(n.Data))
		case n.Type == html.ElementNode && n.DataAtom == atom.Br:
			b.WriteByte('\n')
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		walk(c)
	}

	text := b.String()
	if text == "\n" {
		return ""
	}
	return text
}

// normalize maps presentation-only characters to their plain equivalents.
func normalize(s string) string {
	return strings.Map(func(r rune) rune {
		switch r {
		case '\u00a0': // non-breaking space
			return ' '
		case '\u200b', '\ufeff': // zero-width space, BOM
			return -1
		}
		return r
	}, s)
}
