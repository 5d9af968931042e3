package htmlutil

import (
	"bytes"
	"strings"
	"unicode"

	"golang.org/x/net/html"
)

// Text returns the concatenated text content of node, depth first.
func Text(node *html.Node) string {
	var buffer bytes.Buffer
	textRecursive(node, &buffer)
	return buffer.String()
}

func textRecursive(node *html.Node, buffer *bytes.Buffer) {
	if node == nil {
		return
	}
	if node.Type == html.TextNode {
		buffer.WriteString(node.Data)
		return
	}
	child := node.FirstChild
	for child != nil {
		textRecursive(child, buffer)
		child = child.NextSibling
	}
}

func StripNonPrintable(s string) string {
	newStr := strings.Builder{}
	for _, c := range s {
		if unicode.IsPrint(c) {
			newStr.WriteRune(c)
		}
	}
	return newStr.String()
}
