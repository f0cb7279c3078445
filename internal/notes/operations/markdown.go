package operations

import (
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
)

// MarkdownLines flattens a text block written in markdown into display lines:
// headings and paragraphs become one line each, list items get a bullet.
func MarkdownLines(markdown string) []string {
	source := []byte(markdown)
	doc := goldmark.DefaultParser().Parse(text.NewReader(source))

	var lines []string
	ast.Walk(doc, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}

		switch n.Kind() {
		case ast.KindHeading, ast.KindParagraph, ast.KindTextBlock:
			line := strings.TrimSpace(string(n.Text(source)))
			if line == "" {
				return ast.WalkSkipChildren, nil
			}
			if n.Parent() != nil && n.Parent().Kind() == ast.KindListItem {
				line = "• " + line
			}
			lines = append(lines, line)
			return ast.WalkSkipChildren, nil
		case ast.KindFencedCodeBlock, ast.KindCodeBlock:
			segments := n.Lines()
			for i := 0; i < segments.Len(); i++ {
				seg := segments.At(i)
				lines = append(lines, strings.TrimRight(string(seg.Value(source)), "\n"))
			}
			return ast.WalkSkipChildren, nil
		}

		return ast.WalkContinue, nil
	})

	return lines
}
