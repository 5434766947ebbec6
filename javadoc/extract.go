package javadoc

import (
	"strings"
)

// Tag names used by CC: Tweaked on top of the standard Javadoc set.
const (
	TagMultiReturn = "cc.treturn"
	TagSince       = "cc.since"
)

// ReturnValue is one slot of a (possibly multi-value) return.
type ReturnValue struct {
	Type        string `json:"type" yaml:"type"`
	Description string `json:"description,omitempty" yaml:"description,omitempty"`
}

// Doc holds the parts of a doc comment that end up in a stub.
type Doc struct {
	Description       string
	Params            map[string]string
	Returns           []ReturnValue
	ReturnDescription string
	Throws            []string
	Since             string
}

// ReturnTypes lists the type of every return slot.
func (d Doc) ReturnTypes() []string {
	types := make([]string, 0, len(d.Returns))
	for _, r := range d.Returns {
		types = append(types, r.Type)
	}
	return types
}

// Extract pulls the description, parameter docs, return values, thrown
// conditions and version out of a doc comment. Missing tags leave the
// corresponding field empty.
func Extract(comment string) Doc {
	doc := Doc{Params: map[string]string{}}
	if strings.TrimSpace(comment) == "" {
		return doc
	}

	parsed := Parse(comment)
	doc.Description = Collapse(PlainText(parsed.Body))

	var multi []ReturnValue
	var single *Return
	for _, tag := range parsed.BlockTags {
		switch t := tag.(type) {
		case Param:
			if t.IsTypeParam || t.Name == "" {
				continue
			}
			if _, seen := doc.Params[t.Name]; !seen {
				doc.Params[t.Name] = tagText(t.Description)
			}
		case Return:
			if single == nil {
				single = &t
			}
		case Throws:
			doc.Throws = append(doc.Throws, Collapse(t.Exception+" "+tagText(t.Description)))
		case Since:
			if doc.Since == "" {
				doc.Since = firstWord(tagText(t.Version))
			}
		case BlockTag:
			switch t.Name {
			case TagMultiReturn:
				if r, ok := multiReturn(t.Content); ok {
					multi = append(multi, r)
				}
			case TagSince:
				if v := firstWord(tagText(t.Content)); v != "" {
					doc.Since = v
				}
			}
		}
	}

	switch {
	case len(multi) > 0:
		doc.Returns = multi
		parts := make([]string, 0, len(multi))
		for _, r := range multi {
			parts = append(parts, r.Type+": "+r.Description)
		}
		doc.ReturnDescription = strings.Join(parts, " ")
	case single != nil:
		desc := tagText(single.Description)
		doc.Returns = []ReturnValue{{Type: InferType(desc), Description: desc}}
		doc.ReturnDescription = desc
	}

	return doc
}

// multiReturn splits "<type> <description>" from a cc.treturn tag.
func multiReturn(content []Node) (ReturnValue, bool) {
	text := tagText(content)
	if text == "" {
		return ReturnValue{}, false
	}
	typ, desc, _ := strings.Cut(text, " ")
	return ReturnValue{Type: typ, Description: strings.TrimSpace(desc)}, true
}

// InferType guesses a Lua type from a free-text return description. The
// checks run in a fixed order and are only a heuristic: "the number of
// ticks" in a boolean's description still yields number.
func InferType(description string) string {
	lower := strings.ToLower(description)
	switch {
	case strings.Contains(lower, "boolean"):
		return "boolean"
	case strings.Contains(lower, "number"), strings.Contains(lower, "int"):
		return "number"
	case strings.Contains(lower, "string"):
		return "string"
	case strings.Contains(lower, "table"):
		return "table"
	default:
		return "any"
	}
}

// Paragraphs returns the paragraphs of a comment's main description, with
// HTML removed and whitespace collapsed inside each paragraph.
func Paragraphs(comment string) []string {
	if strings.TrimSpace(comment) == "" {
		return nil
	}
	parsed := Parse(comment)
	body := strings.ReplaceAll(PlainText(parsed.Body), "\r\n", "\n")

	var paras []string
	for _, chunk := range blankLine.Split(body, -1) {
		if p := Collapse(StripHTML(chunk)); p != "" {
			paras = append(paras, p)
		}
	}
	return paras
}

// Paragraph returns the first paragraph of a comment's main description.
func Paragraph(comment string) string {
	if paras := Paragraphs(comment); len(paras) > 0 {
		return paras[0]
	}
	return ""
}

func firstWord(s string) string {
	if fields := strings.Fields(s); len(fields) > 0 {
		return fields[0]
	}
	return ""
}
