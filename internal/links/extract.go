package links

import (
	"regexp"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/text"
)

// Link is a link found in reply content
type Link struct {
	Label string
	Href  string
}

var markdown = goldmark.New(goldmark.WithExtensions(extension.Linkify))

// bareRoute matches internal paths written as plain text, e.g. "see /products/PS123".
// A part number never ends in punctuation, so "see /products/PS123." stops at the 3.
var bareRoute = regexp.MustCompile(`(?:^|[\s(])(/products/[A-Za-z0-9](?:[A-Za-z0-9_.-]*[A-Za-z0-9])?(?:/installation-guide)?/?)`)

// Extract returns the links in markdown content in document order, without
// duplicates. Bare internal paths in text count as links.
func Extract(content string) []Link {
	source := []byte(content)
	doc := markdown.Parser().Parse(text.NewReader(source))

	var found []Link
	seen := make(map[string]bool)
	add := func(label, href string) {
		href = strings.TrimSpace(href)
		if href == "" || seen[href] {
			return
		}
		seen[href] = true
		if label == "" {
			label = href
		}
		found = append(found, Link{Label: label, Href: href})
	}

	// goldmark splits a paragraph into several text nodes (at "_" or "*" for
	// example), so bare paths are matched over the joined text of each run.
	var run strings.Builder
	flush := func() {
		for _, m := range bareRoute.FindAllStringSubmatch(run.String(), -1) {
			add("", m[1])
		}
		run.Reset()
	}

	_ = ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if n.Type() == ast.TypeBlock {
			flush()
			return ast.WalkContinue, nil
		}
		if !entering {
			return ast.WalkContinue, nil
		}
		switch node := n.(type) {
		case *ast.Link:
			flush()
			add(nodeText(node, source), string(node.Destination))
			return ast.WalkSkipChildren, nil
		case *ast.AutoLink:
			flush()
			add(string(node.Label(source)), string(node.URL(source)))
		case *ast.Text:
			run.Write(node.Segment.Value(source))
			if node.SoftLineBreak() || node.HardLineBreak() {
				run.WriteByte('\n')
			}
		case *ast.String:
			run.Write(node.Value)
		}
		return ast.WalkContinue, nil
	})
	flush()

	return found
}

// nodeText concatenates the text under n
func nodeText(n ast.Node, source []byte) string {
	var sb strings.Builder
	_ = ast.Walk(n, func(c ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		switch t := c.(type) {
		case *ast.Text:
			sb.Write(t.Segment.Value(source))
		case *ast.String:
			sb.Write(t.Value)
		}
		return ast.WalkContinue, nil
	})
	return sb.String()
}
