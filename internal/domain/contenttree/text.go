package contenttree

import (
	"strings"

	"golang.org/x/net/html"
)

// PlainText strips markup from a description and folds all whitespace,
// including tabs and line breaks, into single spaces.
func PlainText(input string) string {
	if input == "" {
		return ""
	}
	if !strings.ContainsAny(input, "<&") {
		return strings.Join(strings.Fields(input), " ")
	}

	node, err := html.Parse(strings.NewReader(input))
	if err != nil {
		return strings.Join(strings.Fields(input), " ")
	}

	var builder strings.Builder
	extractText(node, &builder)
	return strings.Join(strings.Fields(builder.String()), " ")
}

func extractText(node *html.Node, builder *strings.Builder) {
	switch node.Type {
	case html.TextNode:
		builder.WriteString(node.Data)
	case html.ElementNode:
		if node.Data == "br" || node.Data == "p" || node.Data == "li" {
			builder.WriteRune(' ')
		}
	}

	for child := node.FirstChild; child != nil; child = child.NextSibling {
		extractText(child, builder)
	}
}
