package peripheral

import (
	"fmt"
	"os"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/tliron/commonlog"

	"github.com/dhamidi/ccstub/config"
	"github.com/dhamidi/ccstub/javadoc"
	"github.com/dhamidi/ccstub/luatype"
)

var (
	classRe = regexp.MustCompile(`\bpublic\s+(?:(?:abstract|final|sealed|static)\s+)*class\s+(\w+)` +
		`(?:\s*<[^{]*?>)?(?:\s+extends\s+([\w.]+))?`)
	packageRe   = regexp.MustCompile(`(?m)^\s*package\s+([\w.]+)\s*;`)
	importRe    = regexp.MustCompile(`(?m)^\s*import\s+(?:static\s+)?([\w.]+)\.(\w+)\s*;`)
	getTypeRe   = regexp.MustCompile(`public\s+(?:final\s+)?String\s+getType\s*\(\s*\)\s*\{\s*return\s+"([^"]+)"\s*;`)
	annotatedRe = regexp.MustCompile(`^\s*(?:@[\w.]+(?:\s*\([^)]*\))?\s*)*$`)
)

// Extractor turns Java source files into Classes. Every class it builds is
// stored in Registry, which is shared across all calls.
type Extractor struct {
	Root     string
	Config   *config.Config
	Registry *Registry

	log   commonlog.Logger
	index map[string]string
}

func NewExtractor(root string, cfg *config.Config, registry *Registry) *Extractor {
	if registry == nil {
		registry = NewRegistry()
	}
	return &Extractor{
		Root:     root,
		Config:   cfg,
		Registry: registry,
		log:      commonlog.GetLogger("ccstub.peripheral"),
	}
}

// ExtractClass extracts the public class declared in path, then resolves
// and merges its parent. It returns nil and no error when the file does
// not declare a public class.
func (e *Extractor) ExtractClass(path string) (*Class, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	src := string(data)

	decl := classRe.FindStringSubmatchIndex(src)
	if decl == nil {
		return nil, nil
	}
	name := src[decl[2]:decl[3]]
	var extends string
	if decl[4] >= 0 {
		extends = src[decl[4]:decl[5]]
	}
	parent := resolveParent(src, extends)

	if cached, ok := e.Registry.Lookup(name); ok {
		e.Registry.hits++
		return cached, nil
	}

	rel := e.relative(path)
	class := &Class{
		Name:        name,
		SourceFile:  rel,
		ScriptType:  e.scriptType(src, name),
		Description: classDescription(src, decl[0]),
	}
	if parent != "" {
		class.Parents = []string{simpleName(parent)}
	}

	for _, site := range FindSites(src, e.Config.Marker, e.Config.DocDistance) {
		sig, ok := ExtractSignature(site, e.Config.ContextTypes)
		if !ok {
			e.log.Debugf("%s: no method declaration after @%s at offset %d", rel, e.Config.Marker, site.Offset)
			continue
		}
		class.Methods = append(class.Methods, buildMethods(sig, rel)...)
	}

	// Register before touching the parent so a cycle ends at this entry.
	e.Registry.register(class)

	if parent != "" {
		e.mergeParent(class, parent)
	}

	return class, nil
}

func (e *Extractor) mergeParent(class *Class, qualified string) {
	parentName := simpleName(qualified)
	path, ok := e.locate(qualified)
	if !ok {
		e.log.Noticef("%s: parent class %s not found", class.Name, parentName)
		return
	}

	parent, err := e.ExtractClass(path)
	if err != nil {
		e.log.Errorf("%s", err)
		return
	}
	if parent == nil || parent == class {
		return
	}

	added := 0
	for _, m := range parent.Methods {
		if class.HasMethod(m.Name) {
			continue
		}
		class.Methods = append(class.Methods, m.Clone())
		added++
		e.log.Noticef("merged method '%s' from %s", m.Name, m.SourceFile)
	}
	if added > 0 {
		e.log.Noticef("merged %d methods from parent %s into %s", added, parentName, class.Name)
	}
}

// buildMethods creates one Method per alias of sig.
func buildMethods(sig Signature, sourceFile string) []Method {
	doc := javadoc.Extract(sig.Doc)

	params := make([]Parameter, len(sig.Params))
	for i, p := range sig.Params {
		p.Description = doc.Params[p.Name]
		params[i] = p
	}

	declared := luatype.Map(sig.ReturnType)
	var returns []string
	switch {
	case len(doc.Returns) > 0:
		// a documented return wins, even when its type could only be guessed as any
		returns = doc.ReturnTypes()
	case declared != luatype.None:
		returns = []string{declared}
	}

	methods := make([]Method, 0, len(sig.Aliases))
	for i, alias := range sig.Aliases {
		m := Method{
			Name:              alias,
			Aliases:           sig.Aliases,
			Params:            params,
			ReturnTypes:       returns,
			ReturnDescription: doc.ReturnDescription,
			Throws:            doc.Throws,
			Since:             doc.Since,
			SourceFile:        sourceFile,
		}
		if i == 0 {
			m.Description = doc.Description
		}
		methods = append(methods, m.Clone())
	}
	return methods
}

// resolveParent qualifies the extends clause: already qualified, then
// imports, then the current package, else the bare name.
func resolveParent(src, extends string) string {
	if extends == "" || strings.Contains(extends, ".") {
		return extends
	}
	for _, m := range importRe.FindAllStringSubmatch(src, -1) {
		if m[2] == extends {
			return m[1] + "." + m[2]
		}
	}
	if m := packageRe.FindStringSubmatch(src); m != nil {
		return m[1] + "." + extends
	}
	return extends
}

func (e *Extractor) scriptType(src, className string) string {
	if m := getTypeRe.FindStringSubmatch(src); m != nil {
		return m[1]
	}
	return strings.ToLower(strings.TrimSuffix(className, e.Config.TypeSuffix))
}

// classDescription returns the paragraphs of the doc comment directly
// before the class declaration at offset, separated by blank lines.
func classDescription(src string, offset int) string {
	docs := docCommentRe.FindAllStringIndex(src[:offset], -1)
	if len(docs) == 0 {
		return ""
	}
	last := docs[len(docs)-1]
	if !annotatedRe.MatchString(src[last[1]:offset]) {
		return ""
	}
	return strings.Join(javadoc.Paragraphs(src[last[0]:last[1]]), "\n\n")
}

func (e *Extractor) relative(path string) string {
	rel, err := filepath.Rel(e.Root, path)
	if err != nil {
		return filepath.ToSlash(path)
	}
	return filepath.ToSlash(rel)
}

func simpleName(qualified string) string {
	if i := strings.LastIndex(qualified, "."); i >= 0 {
		return qualified[i+1:]
	}
	return qualified
}
