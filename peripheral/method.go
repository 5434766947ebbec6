package peripheral

import (
	"regexp"
	"strings"

	"github.com/dhamidi/ccstub/luatype"
)

var (
	docCommentRe = regexp.MustCompile(`(?s)/\*\*.*?\*/`)

	// public [modifiers] ReturnType name(
	declRe = regexp.MustCompile(`\bpublic\s+(?:(?:final|static|synchronized|abstract|default|native)\s+)*` +
		`([\w.$]+(?:\s*<[^(){};]*?>)?(?:\s*\[\s*\])*)\s+(\w+)\s*\(`)

	// ) [throws A, B] { or ;
	declTrailerRe = regexp.MustCompile(`^\s*(?:throws\s+[\w.$]+(?:\s*,\s*[\w.$]+)*)?\s*[{;]`)

	paramPrefixRe = regexp.MustCompile(`^(?:@[\w.]+(?:\s*\([^)]*\))?|final)\s+`)
	paramRe       = regexp.MustCompile(`(?s)^(.+?)\s+(\w+)$`)
	singleAliasRe = regexp.MustCompile(`^\s*(?:value\s*=\s*)?"([^"]+)"\s*(?:,|$)`)
)

// Site is the text window around one marker annotation.
type Site struct {
	// Offset of the marker in the file.
	Offset int
	// Text runs from the marker up to the next marker or the end of file.
	Text string
	// Doc is the doc comment directly before the marker, if any.
	Doc string
}

// Signature is what ExtractSignature recovers from a Site.
type Signature struct {
	JavaName   string
	ReturnType string
	Aliases    []string
	Params     []Parameter
	Doc        string
}

// FindSites locates every @marker annotation in src. A doc comment is
// attached to a site when it ends at most distance characters before the
// marker.
func FindSites(src, marker string, distance int) []Site {
	markerRe := regexp.MustCompile(`@` + regexp.QuoteMeta(marker) + `\b`)
	docs := docCommentRe.FindAllStringIndex(src, -1)

	// markers mentioned inside doc comments are not annotations
	var locs [][]int
	for _, loc := range markerRe.FindAllStringIndex(src, -1) {
		if !inSpan(docs, loc[0]) {
			locs = append(locs, loc)
		}
	}
	if len(locs) == 0 {
		return nil
	}

	sites := make([]Site, 0, len(locs))
	d := 0
	for i, loc := range locs {
		end := len(src)
		if i+1 < len(locs) {
			end = locs[i+1][0]
		}
		site := Site{Offset: loc[0], Text: src[loc[0]:end]}

		for d < len(docs) && docs[d][1] <= loc[0] {
			d++
		}
		if d > 0 && loc[0]-docs[d-1][1] < distance {
			site.Doc = src[docs[d-1][0]:docs[d-1][1]]
		}

		sites = append(sites, site)
	}
	return sites
}

// ExtractSignature parses the annotated method declaration in a site. It
// returns false when no declaration follows the marker.
//
// Explicit names in the annotation replace the Java method name entirely.
// Parameters whose type contains one of contextTypes are dropped.
func ExtractSignature(site Site, contextTypes []string) (Signature, bool) {
	text := site.Text
	if !strings.HasPrefix(text, "@") {
		return Signature{}, false
	}

	// skip the annotation name, then its arguments
	i := 1
	for i < len(text) && isIdentPart(text[i]) {
		i++
	}
	var args string
	j := skipSpace(text, i)
	if j < len(text) && text[j] == '(' {
		if end := matchParen(text, j); end > 0 {
			args = text[j+1 : end]
			i = end + 1
		}
	}

	rest := text[i:]
	for _, m := range declRe.FindAllStringSubmatchIndex(rest, -1) {
		open := m[1] - 1
		close := matchParen(rest, open)
		if close < 0 || !declTrailerRe.MatchString(rest[close+1:]) {
			continue
		}

		sig := Signature{
			ReturnType: strings.Join(strings.Fields(rest[m[2]:m[3]]), " "),
			JavaName:   rest[m[4]:m[5]],
			Params:     parseParams(rest[open+1:close], contextTypes),
			Doc:        site.Doc,
		}
		sig.Aliases = parseAliases(args)
		if len(sig.Aliases) == 0 {
			sig.Aliases = []string{sig.JavaName}
		}
		return sig, true
	}
	return Signature{}, false
}

func inSpan(spans [][]int, pos int) bool {
	for _, sp := range spans {
		if pos >= sp[0] && pos < sp[1] {
			return true
		}
	}
	return false
}

// parseAliases reads explicit names from annotation arguments such as
// ({ "getTextColour", "getTextColor" }) or ("name").
func parseAliases(args string) []string {
	if open := strings.IndexByte(args, '{'); open >= 0 {
		close := strings.IndexByte(args[open:], '}')
		if close < 0 {
			return nil
		}
		var names []string
		for _, part := range strings.Split(args[open+1:open+close], ",") {
			name := strings.Trim(strings.TrimSpace(part), `"'`)
			if name != "" {
				names = append(names, name)
			}
		}
		return names
	}
	if m := singleAliasRe.FindStringSubmatch(args); m != nil {
		return []string{m[1]}
	}
	return nil
}

// parseParams splits a parameter list on top-level commas.
func parseParams(list string, contextTypes []string) []Parameter {
	var params []Parameter
	for _, raw := range splitTopLevel(list) {
		p, ok := parseParam(raw)
		if !ok || isContextType(p.JavaType, contextTypes) {
			continue
		}
		params = append(params, p)
	}
	return params
}

func parseParam(raw string) (Parameter, bool) {
	s := strings.TrimSpace(raw)
	var prefix strings.Builder
	for {
		loc := paramPrefixRe.FindStringIndex(s)
		if loc == nil {
			break
		}
		prefix.WriteString(s[:loc[1]])
		s = s[loc[1]:]
	}

	m := paramRe.FindStringSubmatch(s)
	if m == nil {
		return Parameter{}, false
	}
	javaType := strings.Join(strings.Fields(m[1]), " ")
	return Parameter{
		Name:     m[2],
		JavaType: javaType,
		LuaType:  luatype.Map(javaType),
		Optional: luatype.IsOptional(prefix.String() + javaType),
	}, true
}

func isContextType(javaType string, contextTypes []string) bool {
	for _, ct := range contextTypes {
		if ct != "" && strings.Contains(javaType, ct) {
			return true
		}
	}
	return false
}

// splitTopLevel splits on commas outside <> and ().
func splitTopLevel(s string) []string {
	var parts []string
	depth := 0
	start := 0
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case '<', '(':
			depth++
		case '>', ')':
			if depth > 0 {
				depth--
			}
		case ',':
			if depth == 0 {
				if part := strings.TrimSpace(s[start:i]); part != "" {
					parts = append(parts, part)
				}
				start = i + 1
			}
		}
	}
	if part := strings.TrimSpace(s[start:]); part != "" {
		parts = append(parts, part)
	}
	return parts
}

// matchParen returns the index of the ')' matching the '(' at open, or -1.
func matchParen(s string, open int) int {
	depth := 0
	inString := false
	for i := open; i < len(s); i++ {
		c := s[i]
		if inString {
			if c == '\\' {
				i++
			} else if c == '"' {
				inString = false
			}
			continue
		}
		switch c {
		case '"':
			inString = true
		case '(':
			depth++
		case ')':
			depth--
			if depth == 0 {
				return i
			}
		}
	}
	return -1
}

func skipSpace(s string, i int) int {
	for i < len(s) && (s[i] == ' ' || s[i] == '\t' || s[i] == '\n' || s[i] == '\r') {
		i++
	}
	return i
}

func isIdentPart(c byte) bool {
	return c == '_' || c == '$' || c == '.' ||
		(c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z') || (c >= '0' && c <= '9')
}
