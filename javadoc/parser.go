package javadoc

import (
	"strings"
	"unicode"
)

// Parser is a recursive-descent parser for Javadoc comments.
type Parser struct {
	input []rune
	pos   int
	len   int
}

// Parse parses a Javadoc comment string and returns a DocComment AST.
// The comment may include or omit the surrounding /** and */ markers.
func Parse(javadoc string) *DocComment {
	p := &Parser{
		input: []rune(javadoc),
	}
	p.len = len(p.input)
	return p.parseDocComment()
}

func (p *Parser) parseDocComment() *DocComment {
	p.skipCommentStart()

	doc := &DocComment{}
	doc.Body = p.parseContent(false)
	doc.BlockTags = p.parseBlockTags()

	return doc
}

// skipCommentStart skips the leading /** and any whitespace/asterisks.
func (p *Parser) skipCommentStart() {
	p.skipWhitespace()
	if p.match("/**") {
		p.advance(3)
	}
	p.skipLinePrefix()
}

// skipLinePrefix skips leading whitespace and a single asterisk at the start of a line.
func (p *Parser) skipLinePrefix() {
	p.skipHorizontalWhitespace()
	if p.peek() == '*' && p.peekAt(1) != '/' {
		p.advance(1)
		if p.peek() == ' ' {
			p.advance(1)
		}
	}
}

// parseContent parses rich text content (text, HTML, inline tags).
// If inInlineTag is true, parsing stops at an unmatched '}'.
func (p *Parser) parseContent(inInlineTag bool) []Node {
	var nodes []Node
	var textBuf strings.Builder
	depth := 0

	flushText := func() {
		if textBuf.Len() > 0 {
			nodes = append(nodes, Text{Content: textBuf.String()})
			textBuf.Reset()
		}
	}

	for p.pos < p.len {
		ch := p.peek()

		if ch == '*' && p.peekAt(1) == '/' {
			break
		}

		if !inInlineTag && p.isAtBlockTag() {
			break
		}

		switch ch {
		case '\n', '\r':
			textBuf.WriteRune(ch)
			p.advance(1)
			if ch == '\r' && p.peek() == '\n' {
				textBuf.WriteRune('\n')
				p.advance(1)
			}
			p.skipLinePrefix()

		case '{':
			if p.peekAt(1) == '@' {
				flushText()
				if node := p.parseInlineTag(); node != nil {
					nodes = append(nodes, node)
				}
			} else {
				if inInlineTag {
					depth++
				}
				textBuf.WriteRune(ch)
				p.advance(1)
			}

		case '}':
			if inInlineTag {
				if depth == 0 {
					flushText()
					return nodes
				}
				depth--
			}
			textBuf.WriteRune(ch)
			p.advance(1)

		case '<':
			flushText()
			if node := p.parseHTML(); node != nil {
				nodes = append(nodes, node)
			}

		case '&':
			flushText()
			if node := p.parseEntity(); node != nil {
				nodes = append(nodes, node)
			}

		default:
			textBuf.WriteRune(ch)
			p.advance(1)
		}
	}

	flushText()
	return nodes
}

// isAtBlockTag checks if we're at the start of a block tag (@ at start of line).
func (p *Parser) isAtBlockTag() bool {
	if p.peek() != '@' {
		return false
	}
	if p.pos == 0 {
		return true
	}

	i := p.pos - 1
	for i >= 0 {
		ch := p.input[i]
		if ch == '\n' || ch == '\r' {
			return true
		}
		if ch == '*' {
			// the line prefix asterisk, or the opening /**
			j := i - 1
			for j >= 0 && (p.input[j] == ' ' || p.input[j] == '\t' || p.input[j] == '*' || p.input[j] == '/') {
				j--
			}
			if j < 0 || p.input[j] == '\n' || p.input[j] == '\r' {
				return true
			}
		}
		if ch != ' ' && ch != '\t' {
			return false
		}
		i--
	}
	return true
}

// parseInlineTag parses an inline tag like {@code ...} or {@link ...}.
func (p *Parser) parseInlineTag() Node {
	if !p.match("{@") {
		return nil
	}
	p.advance(2)

	tagName := p.readTagName()
	if tagName == "" {
		return Text{Content: "{@"}
	}

	p.skipHorizontalWhitespace()

	var node Node
	switch tagName {
	case "code":
		node = Code{Content: p.readBalancedContent()}
	case "literal":
		node = Literal{Content: p.readBalancedContent()}
	case "link":
		node = p.parseLinkTag(false)
	case "linkplain":
		node = p.parseLinkTag(true)
	case "value":
		node = Value{Reference: p.readReference()}
	case "return":
		node = Return{Description: p.parseContent(true), Inline: true}
	default:
		node = UnknownInlineTag{Name: tagName, Content: p.readBalancedContent()}
	}

	if p.peek() == '}' {
		p.advance(1)
	}

	return node
}

// parseLinkTag parses the content of a {@link ...} or {@linkplain ...} tag.
func (p *Parser) parseLinkTag(plain bool) Node {
	ref := p.readReference()
	p.skipHorizontalWhitespace()

	var label []Node
	if p.peek() != '}' {
		label = p.parseContent(true)
	}

	return Link{Reference: ref, Label: label, Plain: plain}
}

// parseHTML parses an HTML element or comment. Attributes are skipped.
func (p *Parser) parseHTML() Node {
	if !p.match("<") {
		return nil
	}

	if p.match("<!--") {
		return p.parseHTMLComment()
	}

	p.advance(1)

	if p.peek() == '/' {
		p.advance(1)
		name := p.readHTMLName()
		p.skipHorizontalWhitespace()
		if p.peek() == '>' {
			p.advance(1)
		}
		return EndElement{Name: name}
	}

	name := p.readHTMLName()
	if name == "" {
		return Text{Content: "<"}
	}

	p.skipHTMLAttributes()

	selfClose := false
	if p.peek() == '/' {
		selfClose = true
		p.advance(1)
	}
	if p.peek() == '>' {
		p.advance(1)
	}

	return StartElement{Name: name, SelfClose: selfClose}
}

// parseHTMLComment parses an HTML comment <!-- ... -->, which renders as nothing.
func (p *Parser) parseHTMLComment() Node {
	p.advance(4)
	for p.pos < p.len {
		if p.match("-->") {
			p.advance(3)
			return nil
		}
		if p.match("*/") {
			break
		}
		p.advance(1)
	}
	return nil
}

// skipHTMLAttributes advances past the attributes of a start tag, stopping
// at '>' or '/'. Quoted values may contain either.
func (p *Parser) skipHTMLAttributes() {
	for p.pos < p.len {
		switch ch := p.peek(); ch {
		case '>', '/':
			return
		case '"', '\'':
			p.readQuotedString()
		case '\n', '\r':
			p.advance(1)
			p.skipLinePrefix()
		default:
			if ch == '*' && p.peekAt(1) == '/' {
				return
			}
			p.advance(1)
		}
	}
}

// parseEntity parses an HTML entity like &nbsp; or &#160;.
func (p *Parser) parseEntity() Node {
	if p.peek() != '&' {
		return nil
	}
	p.advance(1)

	start := p.pos
	if p.peek() == '#' {
		p.advance(1)
		if p.peek() == 'x' || p.peek() == 'X' {
			p.advance(1)
			for isHexDigit(p.peek()) {
				p.advance(1)
			}
		} else {
			for isDigit(p.peek()) {
				p.advance(1)
			}
		}
	} else {
		for isLetter(p.peek()) {
			p.advance(1)
		}
	}

	name := string(p.input[start:p.pos])

	if p.peek() == ';' {
		p.advance(1)
		return Entity{Name: name}
	}

	// Not a valid entity, return as text
	return Text{Content: "&" + name}
}

// parseBlockTags parses block tags until end of comment.
func (p *Parser) parseBlockTags() []Node {
	var tags []Node

	for p.pos < p.len {
		p.skipWhitespace()
		p.skipLinePrefix()

		if p.match("*/") {
			break
		}

		if p.peek() != '@' {
			p.advance(1)
			continue
		}

		p.advance(1)
		tagName := p.readTagName()
		if tagName == "" {
			continue
		}

		p.skipHorizontalWhitespace()

		var tag Node
		switch tagName {
		case "param":
			tag = p.parseParamTag()
		case "return":
			tag = Return{Description: p.parseContent(false)}
		case "throws", "exception":
			exc := p.readReference()
			p.skipHorizontalWhitespace()
			tag = Throws{Exception: exc, Description: p.parseContent(false)}
		case "since":
			tag = Since{Version: p.parseContent(false)}
		default:
			tag = BlockTag{Name: tagName, Content: p.parseContent(false)}
		}

		tags = append(tags, tag)
	}

	return tags
}

// parseParamTag parses a @param tag.
func (p *Parser) parseParamTag() Node {
	isTypeParam := false
	if p.peek() == '<' {
		isTypeParam = true
		p.advance(1)
	}

	name := p.readIdentifier()

	if isTypeParam && p.peek() == '>' {
		p.advance(1)
	}

	p.skipHorizontalWhitespace()
	desc := p.parseContent(false)

	return Param{Name: name, IsTypeParam: isTypeParam, Description: desc}
}

// Helper methods for reading tokens

func (p *Parser) peek() rune {
	if p.pos >= p.len {
		return 0
	}
	return p.input[p.pos]
}

func (p *Parser) peekAt(offset int) rune {
	pos := p.pos + offset
	if pos >= p.len || pos < 0 {
		return 0
	}
	return p.input[pos]
}

func (p *Parser) advance(n int) {
	p.pos += n
	if p.pos > p.len {
		p.pos = p.len
	}
}

func (p *Parser) match(s string) bool {
	if p.pos+len(s) > p.len {
		return false
	}
	i := 0
	for _, ch := range s {
		if p.input[p.pos+i] != ch {
			return false
		}
		i++
	}
	return true
}

func (p *Parser) skipWhitespace() {
	for p.pos < p.len && isWhitespace(p.peek()) {
		p.advance(1)
	}
}

func (p *Parser) skipHorizontalWhitespace() {
	for p.pos < p.len && (p.peek() == ' ' || p.peek() == '\t') {
		p.advance(1)
	}
}

// readTagName reads a tag name. Dots are allowed between identifier
// parts so that cc.treturn is read as one name.
func (p *Parser) readTagName() string {
	start := p.pos
	for p.pos < p.len {
		ch := p.peek()
		if isJavaIdentifierPart(ch) {
			p.advance(1)
			continue
		}
		if ch == '.' && p.pos > start && isJavaIdentifierStart(p.peekAt(1)) {
			p.advance(1)
			continue
		}
		break
	}
	return string(p.input[start:p.pos])
}

func (p *Parser) readIdentifier() string {
	start := p.pos
	if p.pos < p.len && isJavaIdentifierStart(p.peek()) {
		p.advance(1)
		for p.pos < p.len && isJavaIdentifierPart(p.peek()) {
			p.advance(1)
		}
	}
	return string(p.input[start:p.pos])
}

// readReference reads a reference such as package.Class#member(params),
// stopping at whitespace, '}' or the end of the comment.
func (p *Parser) readReference() string {
	start := p.pos
	for p.pos < p.len {
		ch := p.peek()
		if isWhitespace(ch) || ch == '}' || (ch == '*' && p.peekAt(1) == '/') {
			break
		}
		p.advance(1)
	}
	return strings.TrimSpace(string(p.input[start:p.pos]))
}

func (p *Parser) readQuotedString() string {
	if p.peek() != '"' && p.peek() != '\'' {
		return ""
	}
	quote := p.peek()
	p.advance(1)

	start := p.pos
	for p.pos < p.len && p.peek() != quote {
		if p.peek() == '\\' && p.peekAt(1) == quote {
			p.advance(2)
		} else {
			p.advance(1)
		}
	}

	result := string(p.input[start:p.pos])
	if p.peek() == quote {
		p.advance(1)
	}
	return result
}

func (p *Parser) readHTMLName() string {
	start := p.pos
	for p.pos < p.len {
		ch := p.peek()
		if isLetter(ch) || isDigit(ch) || ch == '-' || ch == '_' || ch == ':' {
			p.advance(1)
		} else {
			break
		}
	}
	return string(p.input[start:p.pos])
}

// readBalancedContent reads content until a closing '}', handling nested braces.
func (p *Parser) readBalancedContent() string {
	start := p.pos
	depth := 0

	for p.pos < p.len {
		ch := p.peek()

		if ch == '{' {
			depth++
			p.advance(1)
		} else if ch == '}' {
			if depth == 0 {
				break
			}
			depth--
			p.advance(1)
		} else if ch == '*' && p.peekAt(1) == '/' {
			break
		} else {
			p.advance(1)
		}
	}

	return strings.TrimPrefix(string(p.input[start:p.pos]), " ")
}

// Character classification helpers

func isWhitespace(ch rune) bool {
	return ch == ' ' || ch == '\t' || ch == '\n' || ch == '\r'
}

func isJavaIdentifierStart(ch rune) bool {
	return unicode.IsLetter(ch) || ch == '_' || ch == '$'
}

func isJavaIdentifierPart(ch rune) bool {
	return unicode.IsLetter(ch) || unicode.IsDigit(ch) || ch == '_' || ch == '$'
}

func isLetter(ch rune) bool {
	return unicode.IsLetter(ch)
}

func isDigit(ch rune) bool {
	return ch >= '0' && ch <= '9'
}

func isHexDigit(ch rune) bool {
	return isDigit(ch) || (ch >= 'a' && ch <= 'f') || (ch >= 'A' && ch <= 'F')
}
