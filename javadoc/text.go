package javadoc

import (
	"html"
	"regexp"
	"strings"
)

var (
	blankLine = regexp.MustCompile(`\n[ \t]*\n`)
	htmlTag   = regexp.MustCompile(`<[^>]+>`)
)

// PlainText renders nodes as plain text. Inline tags collapse to their
// content, HTML elements are dropped and entities are decoded. Line
// structure is preserved so callers can still detect paragraphs.
func PlainText(nodes []Node) string {
	var sb strings.Builder
	for _, node := range nodes {
		sb.WriteString(plainNode(node))
	}
	return sb.String()
}

func plainNode(node Node) string {
	switch n := node.(type) {
	case Text:
		return n.Content
	case Code:
		return n.Content
	case Literal:
		return n.Content
	case Link:
		if len(n.Label) > 0 {
			return PlainText(n.Label)
		}
		return formatReference(n.Reference)
	case Value:
		return formatReference(n.Reference)
	case Return:
		if n.Inline {
			return PlainText(n.Description)
		}
		return ""
	case UnknownInlineTag:
		return n.Content
	case StartElement:
		// <p> and <br> separate paragraphs in rendered Javadoc
		switch strings.ToLower(n.Name) {
		case "p", "br":
			return "\n\n"
		}
		return ""
	case Entity:
		return decodeEntity(n.Name)
	default:
		return ""
	}
}

// formatReference reduces a reference like java.util.List#add(E) to its
// simple name.
func formatReference(ref string) string {
	if idx := strings.LastIndex(ref, "#"); idx >= 0 {
		member := ref[idx+1:]
		if paren := strings.Index(member, "("); paren >= 0 {
			member = member[:paren]
		}
		return member
	}
	if idx := strings.LastIndex(ref, "."); idx >= 0 {
		return ref[idx+1:]
	}
	return ref
}

func decodeEntity(name string) string {
	if name == "nbsp" || name == "#160" {
		return " "
	}
	return html.UnescapeString("&" + name + ";")
}

// Collapse replaces every run of whitespace with a single space and trims
// the result.
func Collapse(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

// StripHTML removes anything that looks like an HTML tag.
func StripHTML(s string) string {
	return htmlTag.ReplaceAllString(s, "")
}

// firstParagraph returns s up to the first blank line.
func firstParagraph(s string) string {
	s = strings.TrimLeft(s, " \t\r\n")
	if loc := blankLine.FindStringIndex(s); loc != nil {
		return s[:loc[0]]
	}
	return s
}

// tagText renders a tag value: everything up to the first blank line,
// whitespace-collapsed.
func tagText(nodes []Node) string {
	return Collapse(firstParagraph(strings.ReplaceAll(PlainText(nodes), "\r\n", "\n")))
}
