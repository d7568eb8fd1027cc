// Package richtext flattens a job description DOM subtree into plain text
// with a small markup vocabulary: <b>…</b> for bold spans, "* " bullets,
// and blank lines between paragraphs.
package richtext

import (
	"regexp"
	"strings"

	"golang.org/x/net/html"
)

var excessNewlines = regexp.MustCompile(`\n{3,}`)

// Reconstruct serializes the children of n. The result is trimmed.
func Reconstruct(n *html.Node) string {
	if n == nil {
		return ""
	}
	if n.Type == html.TextNode {
		return strings.TrimSpace(collapse(n.Data))
	}
	var b strings.Builder
	writeChildren(&b, n)
	return strings.TrimSpace(b.String())
}

func collapse(s string) string {
	return excessNewlines.ReplaceAllString(s, "\n\n")
}

func render(n *html.Node) string {
	var b strings.Builder
	writeChildren(&b, n)
	return b.String()
}

func writeChildren(b *strings.Builder, n *html.Node) {
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		switch c.Type {
		case html.TextNode:
			b.WriteString(collapse(c.Data))
		case html.ElementNode:
			writeElement(b, c)
		}
	}
}

func writeElement(b *strings.Builder, el *html.Node) {
	switch strings.ToLower(el.Data) {
	case "strong", "b":
		b.WriteString("<b>")
		b.WriteString(render(el))
		b.WriteString("</b>")
	case "ul", "ol":
		b.WriteString("\n")
		writeList(b, el)
	case "li":
		writeItem(b, el)
	case "br":
		b.WriteString("\n\n")
	case "p":
		b.WriteString(strings.TrimSpace(render(el)))
		b.WriteString("\n\n")
	default:
		writeChildren(b, el)
	}
}

// writeList emits the items of a list. Line breaks directly inside the list
// are dropped.
func writeList(b *strings.Builder, list *html.Node) {
	for c := list.FirstChild; c != nil; c = c.NextSibling {
		switch c.Type {
		case html.TextNode:
			b.WriteString(collapse(c.Data))
		case html.ElementNode:
			switch strings.ToLower(c.Data) {
			case "li":
				writeItem(b, c)
			case "br":
			default:
				b.WriteString(render(c))
			}
		}
	}
}

func writeItem(b *strings.Builder, li *html.Node) {
	b.WriteString("* ")
	b.WriteString(strings.TrimSpace(render(li)))
	b.WriteString("\n")
}
