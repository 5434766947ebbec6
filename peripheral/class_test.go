package peripheral

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dhamidi/ccstub/config"
)

const (
	fixtureRoot = "testdata/cc"
	commonDir   = "testdata/cc/projects/common/src/main/java/dan200/computercraft/shared/peripheral"
)

func newTestExtractor(t *testing.T) *Extractor {
	t.Helper()
	cfg := config.Default()
	require.NoError(t, cfg.Validate())
	return NewExtractor(fixtureRoot, cfg, NewRegistry())
}

func methodNames(c *Class) []string {
	names := make([]string, 0, len(c.Methods))
	for _, m := range c.Methods {
		names = append(names, m.Name)
	}
	return names
}

func findMethod(t *testing.T, c *Class, name string) Method {
	t.Helper()
	for _, m := range c.Methods {
		if m.Name == name {
			return m
		}
	}
	t.Fatalf("method %s not found in %s (have %v)", name, c.Name, methodNames(c))
	return Method{}
}

func TestExtractClassMergesBaseClass(t *testing.T) {
	e := newTestExtractor(t)

	monitor, err := e.ExtractClass(filepath.Join(commonDir, "monitor", "MonitorPeripheral.java"))
	require.NoError(t, err)
	require.NotNil(t, monitor)

	assert.Equal(t, "MonitorPeripheral", monitor.Name)
	assert.Equal(t, "monitor", monitor.ScriptType)
	assert.Equal(t, []string{"TermMethods"}, monitor.Parents)
	assert.Equal(t,
		"projects/common/src/main/java/dan200/computercraft/shared/peripheral/monitor/MonitorPeripheral.java",
		monitor.SourceFile)
	assert.Equal(t, []string{
		"setTextScale", "getTextScale", "getSize",
		"write", "getCursorPos", "getTextColour", "getTextColor",
	}, methodNames(monitor))

	// the monitor's own getSize wins over the inherited one
	getSize := findMethod(t, monitor, "getSize")
	assert.Equal(t, monitor.SourceFile, getSize.SourceFile)
	assert.Equal(t, []string{"number", "number"}, getSize.ReturnTypes)
	assert.Empty(t, getSize.Params)

	write := findMethod(t, monitor, "write")
	assert.Equal(t, "projects/core/src/main/java/dan200/computercraft/core/apis/TermMethods.java", write.SourceFile)
	require.Len(t, write.Params, 1)
	assert.Equal(t, "string", write.Params[0].LuaType)
	assert.Equal(t, "The text to write.", write.Params[0].Description)
	assert.Empty(t, write.ReturnTypes)

	scale := findMethod(t, monitor, "setTextScale")
	assert.Equal(t, "1.81.0", scale.Since)
	assert.Equal(t, []string{"LuaException Rejects invalid arguments."}, scale.Throws)

	// "The monitor's current scale." names no type, so the documented return stays any
	assert.Equal(t, []string{"any"}, findMethod(t, monitor, "getTextScale").ReturnTypes)

	assert.Equal(t,
		"Monitors are a block which act as a terminal, displaying information on one side. "+
			"This allows them to be read and interacted with in-world without opening a GUI.\n\n"+
			"Monitors act as terminal redirects.",
		monitor.Description)

	term, ok := e.Registry.Lookup("TermMethods")
	require.True(t, ok)
	assert.Equal(t, "termmethods", term.ScriptType)
}

func TestExtractClassAliasesShareData(t *testing.T) {
	e := newTestExtractor(t)

	speaker, err := e.ExtractClass(filepath.Join(commonDir, "speaker", "SpeakerPeripheral.java"))
	require.NoError(t, err)
	require.NotNil(t, speaker)

	assert.Equal(t, []string{"playNote", "playSound", "playSoundEffect", "halt"}, methodNames(speaker))
	assert.False(t, speaker.HasMethod("stop"), "explicit aliases replace the Java name")
	assert.False(t, speaker.HasMethod("notPublic"))

	primary := findMethod(t, speaker, "playSound")
	alias := findMethod(t, speaker, "playSoundEffect")
	assert.Equal(t, "Play a sound.", primary.Description)
	assert.Empty(t, alias.Description)
	assert.Equal(t, primary.Params, alias.Params)
	assert.Equal(t, primary.ReturnTypes, alias.ReturnTypes)
	assert.Equal(t, []string{"playSound", "playSoundEffect"}, alias.Aliases)

	// aliases own their data
	alias.Params[0].Name = "changed"
	assert.Equal(t, "name", findMethod(t, speaker, "playSound").Params[0].Name)

	require.Len(t, primary.Params, 3)
	assert.True(t, primary.Params[1].Optional)
	assert.Equal(t, "table", primary.Params[2].LuaType)
	assert.Equal(t, []string{"any"}, primary.ReturnTypes)

	note := findMethod(t, speaker, "playNote")
	require.Len(t, note.Params, 3)
	assert.Equal(t, "instrumentA", note.Params[0].Name)
	assert.False(t, note.Params[0].Optional)
	assert.True(t, note.Params[1].Optional)
	assert.True(t, note.Params[2].Optional)
	assert.Equal(t, "The pitch to play the note at, in semitones. Defaults to 12.", note.Params[2].Description)

	assert.Equal(t, "speaker", speaker.ScriptType)
	assert.Empty(t, speaker.Parents)
}

func TestExtractClassIsMemoised(t *testing.T) {
	e := newTestExtractor(t)
	path := filepath.Join(commonDir, "monitor", "MonitorPeripheral.java")

	first, err := e.ExtractClass(path)
	require.NoError(t, err)
	assert.Zero(t, e.Registry.Hits())

	second, err := e.ExtractClass(path)
	require.NoError(t, err)

	assert.Same(t, first, second)
	assert.Equal(t, 1, e.Registry.Hits())
	assert.Equal(t, 2, e.Registry.Len())
}

func TestExtractClassTerminatesOnCycle(t *testing.T) {
	e := newTestExtractor(t)

	chicken, err := e.ExtractClass(filepath.Join(commonDir, "cycle", "ChickenPeripheral.java"))
	require.NoError(t, err)
	require.NotNil(t, chicken)

	egg, ok := e.Registry.Lookup("EggPeripheral")
	require.True(t, ok)

	assert.Equal(t, []string{"cluck", "lay", "hatch"}, methodNames(chicken))
	assert.Equal(t, []string{"hatch", "lay", "cluck"}, methodNames(egg))
	assert.Equal(t, chicken.SourceFile, findMethod(t, chicken, "lay").SourceFile)
	assert.Equal(t, egg.SourceFile, findMethod(t, egg, "lay").SourceFile)
	// egg's parent lookup ends at chicken's registered entry
	assert.Equal(t, 1, e.Registry.Hits())
	assert.Equal(t, 2, e.Registry.Len())
}

func TestExtractClassMissingParent(t *testing.T) {
	e := newTestExtractor(t)

	orphan, err := e.ExtractClass(filepath.Join(commonDir, "misc", "OrphanPeripheral.java"))
	require.NoError(t, err)
	require.NotNil(t, orphan)

	assert.Equal(t, []string{"MissingBase"}, orphan.Parents)
	assert.Equal(t, []string{"ping"}, methodNames(orphan))
	assert.Equal(t, "orphan", orphan.ScriptType)
}

func TestExtractClassSkipsNonClasses(t *testing.T) {
	e := newTestExtractor(t)

	c, err := e.ExtractClass(filepath.Join(commonDir, "misc", "SidedPeripheral.java"))
	require.NoError(t, err)
	assert.Nil(t, c)
	assert.Zero(t, e.Registry.Len())
}

func TestExtractClassReadError(t *testing.T) {
	e := newTestExtractor(t)

	c, err := e.ExtractClass(filepath.Join(commonDir, "nope", "NopePeripheral.java"))
	require.Error(t, err)
	assert.Nil(t, c)
}

func TestExtractClassReturnTypes(t *testing.T) {
	root := t.TempDir()
	path := filepath.Join(root, "LampPeripheral.java")
	require.NoError(t, os.WriteFile(path, []byte(`package a;
public class LampPeripheral {
    /** @return If the lamp is lit. */
    @LuaFunction
    public final boolean isOn() { return true; }

    /** @return Whether the lamp is lit. */
    @LuaFunction
    public final boolean isLit() { return true; }

    /** Turns the lamp off. */
    @LuaFunction
    public final boolean toggle() { return true; }

    @LuaFunction
    public final void off() {}
}
`), 0o644))

	e := NewExtractor(root, config.Default(), nil)
	lamp, err := e.ExtractClass(path)
	require.NoError(t, err)
	require.NotNil(t, lamp)

	// a documented return keeps its guessed type over the Java one
	assert.Equal(t, []string{"any"}, findMethod(t, lamp, "isOn").ReturnTypes)
	assert.Equal(t, "If the lamp is lit.", findMethod(t, lamp, "isOn").ReturnDescription)
	assert.Equal(t, []string{"any"}, findMethod(t, lamp, "isLit").ReturnTypes)

	assert.Equal(t, []string{"boolean"}, findMethod(t, lamp, "toggle").ReturnTypes)
	assert.Empty(t, findMethod(t, lamp, "off").ReturnTypes)
}

func TestLocateByIndex(t *testing.T) {
	root := t.TempDir()
	dir := filepath.Join(root, "projects", "core", "src", "main", "java", "a", "b")
	require.NoError(t, os.MkdirAll(dir, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "Base.java"), []byte("public class Base {}"), 0o644))

	cfg := config.Default()
	e := NewExtractor(root, cfg, nil)

	path, ok := e.locate("Base")
	require.True(t, ok)
	assert.Equal(t, filepath.Join(dir, "Base.java"), path)

	path, ok = e.locate("a.b.Base")
	require.True(t, ok)
	assert.Equal(t, filepath.Join(dir, "Base.java"), path)

	_, ok = e.locate("TermMethods")
	assert.False(t, ok, "missing base class files are not searched for")
}

func TestResolveParent(t *testing.T) {
	src := "package a.b;\nimport x.y.Imported;\nimport static z.Util.helper;\n"

	assert.Equal(t, "q.r.Qualified", resolveParent(src, "q.r.Qualified"))
	assert.Equal(t, "x.y.Imported", resolveParent(src, "Imported"))
	assert.Equal(t, "a.b.Local", resolveParent(src, "Local"))
	assert.Equal(t, "Bare", resolveParent("public class X extends Bare {}", "Bare"))
	assert.Equal(t, "", resolveParent(src, ""))
}
