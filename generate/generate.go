// Package generate drives a full run: discover peripheral sources, extract
// them and write one stub per peripheral type.
package generate

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/tliron/commonlog"

	"github.com/dhamidi/ccstub/config"
	"github.com/dhamidi/ccstub/peripheral"
	"github.com/dhamidi/ccstub/stub"
)

type Options struct {
	// Root is the CC: Tweaked checkout.
	Root string
	// OutDir receives the stubs. Run creates it if needed.
	OutDir string
	// Config defaults to config.Default when nil.
	Config *config.Config
}

// Extraction is the result of scanning a source tree.
type Extraction struct {
	// Files are the discovered peripheral sources, sorted.
	Files []string
	// Peripherals holds one class per script type, in discovery order. A
	// later file with the same type replaces the earlier class in place.
	Peripherals []*peripheral.Class
	Registry    *peripheral.Registry
	// Failed counts files that could not be read.
	Failed int
}

type Summary struct {
	Extraction
	Written []string
}

// Run extracts every peripheral under opts.Root and writes its stub into
// opts.OutDir. Progress is reported to out. Per-file failures are logged
// and skipped; only a missing root or an unwritable output aborts the run.
func Run(opts Options, out io.Writer) (*Summary, error) {
	cfg, err := opts.config()
	if err != nil {
		return nil, err
	}

	opts.Config = cfg
	ex, err := Extract(opts, out)
	if err != nil {
		return nil, err
	}

	if err := os.MkdirAll(opts.OutDir, 0o755); err != nil {
		return nil, fmt.Errorf("create output dir: %w", err)
	}

	summary := &Summary{Extraction: *ex}
	for _, c := range ex.Peripherals {
		path, err := stub.Write(cfg, opts.OutDir, c)
		if err != nil {
			return summary, err
		}
		fmt.Fprintf(out, "Generated: %s\n", path)
		summary.Written = append(summary.Written, path)
	}

	fmt.Fprintf(out, "\nGenerated %d Lua type definition files in %s\n", len(summary.Written), opts.OutDir)
	return summary, nil
}

// Extract discovers and extracts peripherals without writing stubs.
func Extract(opts Options, out io.Writer) (*Extraction, error) {
	log := commonlog.GetLogger("ccstub.generate")

	cfg, err := opts.config()
	if err != nil {
		return nil, err
	}

	info, err := os.Stat(opts.Root)
	if err != nil {
		return nil, fmt.Errorf("stat %s: %w", opts.Root, err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("%s is not a directory", opts.Root)
	}

	files, err := Discover(opts.Root, cfg)
	if err != nil {
		return nil, err
	}
	fmt.Fprintf(out, "Found %d peripheral files\n", len(files))

	extractor := peripheral.NewExtractor(opts.Root, cfg, nil)
	prewarm(extractor, log)

	ex := &Extraction{Files: files, Registry: extractor.Registry}
	byType := make(map[string]int)
	for _, file := range files {
		class, err := extractor.ExtractClass(file)
		if err != nil {
			log.Errorf("%s", err)
			ex.Failed++
			continue
		}
		if class == nil {
			log.Debugf("%s: no public class", file)
			continue
		}

		if i, ok := byType[class.ScriptType]; ok {
			log.Noticef("%s replaces %s for type %s", class.Name, ex.Peripherals[i].Name, class.ScriptType)
			ex.Peripherals[i] = class
		} else {
			byType[class.ScriptType] = len(ex.Peripherals)
			ex.Peripherals = append(ex.Peripherals, class)
		}

		report(out, class)
	}

	return ex, nil
}

// Discover returns the files under the configured source directory whose
// base name matches the file pattern. A missing source directory yields no
// files.
func Discover(root string, cfg *config.Config) ([]string, error) {
	dir := filepath.Join(root, filepath.FromSlash(cfg.SourceDir))

	var files []string
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			if path == dir && errors.Is(err, fs.ErrNotExist) {
				return fs.SkipDir
			}
			return err
		}
		if !d.IsDir() && cfg.MatchFile(d.Name()) {
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walk %s: %w", dir, err)
	}

	slices.Sort(files)
	return files, nil
}

// prewarm extracts the configured base classes first so peripherals that
// extend them find them in the registry.
func prewarm(extractor *peripheral.Extractor, log commonlog.Logger) {
	names := make([]string, 0, len(extractor.Config.BaseClasses))
	for name := range extractor.Config.BaseClasses {
		names = append(names, name)
	}
	slices.Sort(names)

	for _, name := range names {
		path := filepath.Join(extractor.Root, filepath.FromSlash(extractor.Config.BaseClasses[name]))
		if _, err := os.Stat(path); err != nil {
			log.Debugf("base class %s not present: %s", name, path)
			continue
		}
		if _, err := extractor.ExtractClass(path); err != nil {
			log.Errorf("%s", err)
		}
	}
}

func report(out io.Writer, class *peripheral.Class) {
	fmt.Fprintf(out, "Parsed: %s (%s) - %d methods\n", class.Name, class.ScriptType, len(class.Methods))

	bySource := make(map[string][]string)
	for _, m := range class.Methods {
		bySource[m.SourceFile] = append(bySource[m.SourceFile], m.Name)
	}
	sources := make([]string, 0, len(bySource))
	for source := range bySource {
		sources = append(sources, source)
	}
	slices.Sort(sources)

	for _, source := range sources {
		names := bySource[source]
		slices.Sort(names)
		fmt.Fprintf(out, "  Methods from %s: %s\n", source, strings.Join(names, ", "))
	}
}

func (o Options) config() (*config.Config, error) {
	if o.Config == nil {
		cfg := config.Default()
		return cfg, cfg.Validate()
	}
	return o.Config, o.Config.Validate()
}
