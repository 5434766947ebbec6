// Package javadoc parses Javadoc comments and extracts the tags that the
// stub generator cares about.
package javadoc

// Node is the interface implemented by all Javadoc AST nodes.
type Node interface {
	node()
}

// DocComment represents a complete Javadoc comment.
type DocComment struct {
	Body      []Node // Main description content
	BlockTags []Node // Block tags like @param, @return, etc.
}

func (DocComment) node() {}

// Text represents plain text content.
type Text struct {
	Content string
}

func (Text) node() {}

// Code represents an {@code ...} inline tag.
type Code struct {
	Content string
}

func (Code) node() {}

// Literal represents an {@literal ...} inline tag.
type Literal struct {
	Content string
}

func (Literal) node() {}

// Link represents an {@link ...} or {@linkplain ...} inline tag.
type Link struct {
	Reference string // The reference (e.g., "java.util.List#add")
	Label     []Node // Optional label content
	Plain     bool   // true for @linkplain, false for @link
}

func (Link) node() {}

// Value represents an {@value ...} inline tag.
type Value struct {
	Reference string
}

func (Value) node() {}

// UnknownInlineTag represents an inline tag without dedicated handling,
// for example {@cc.usage ...}.
type UnknownInlineTag struct {
	Name    string
	Content string
}

func (UnknownInlineTag) node() {}

// Return represents an {@return ...} inline tag or @return block tag.
type Return struct {
	Description []Node
	Inline      bool // true if {@return ...}, false if @return
}

func (Return) node() {}

// Param represents a @param block tag.
type Param struct {
	Name        string
	IsTypeParam bool // true if <T>, false if regular parameter
	Description []Node
}

func (Param) node() {}

// Throws represents a @throws or @exception block tag.
type Throws struct {
	Exception   string
	Description []Node
}

func (Throws) node() {}

// Since represents a @since block tag.
type Since struct {
	Version []Node
}

func (Since) node() {}

// BlockTag represents any other block tag. Dotted names such as
// cc.treturn and cc.since end up here.
type BlockTag struct {
	Name    string
	Content []Node
}

func (BlockTag) node() {}

// StartElement represents the start of an HTML element.
type StartElement struct {
	Name      string
	SelfClose bool
}

func (StartElement) node() {}

// EndElement represents the end of an HTML element.
type EndElement struct {
	Name string
}

func (EndElement) node() {}

// Entity represents an HTML entity like &nbsp; or &#160;.
type Entity struct {
	Name string // The entity name without & and ;
}

func (Entity) node() {}
