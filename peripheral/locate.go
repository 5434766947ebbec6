package peripheral

import (
	"io/fs"
	"os"
	"path/filepath"
	"strings"
)

// locate finds the source file of a (possibly qualified) class name: the
// base class table first, then the package path under each search root,
// then any file with a matching name under the search roots.
func (e *Extractor) locate(qualified string) (string, bool) {
	name := simpleName(qualified)

	if base, ok := e.Config.BaseClasses[name]; ok {
		path := filepath.Join(e.Root, filepath.FromSlash(base))
		return path, fileExists(path)
	}

	if pkg := strings.TrimSuffix(qualified, name); pkg != "" {
		pkgPath := filepath.FromSlash(strings.ReplaceAll(strings.TrimSuffix(pkg, "."), ".", "/"))
		for _, root := range e.Config.SearchRoots {
			path := filepath.Join(e.Root, filepath.FromSlash(root), pkgPath, name+".java")
			if fileExists(path) {
				return path, true
			}
		}
	}

	if e.index == nil {
		e.index = e.buildIndex()
	}
	path, ok := e.index[name]
	return path, ok
}

// buildIndex maps every class file name under the search roots to its
// first occurrence in walk order.
func (e *Extractor) buildIndex() map[string]string {
	index := make(map[string]string)
	for _, root := range e.Config.SearchRoots {
		dir := filepath.Join(e.Root, filepath.FromSlash(root))
		err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				if path == dir {
					return fs.SkipDir
				}
				return nil
			}
			if d.IsDir() || filepath.Ext(path) != ".java" {
				return nil
			}
			name := strings.TrimSuffix(d.Name(), ".java")
			if _, seen := index[name]; !seen {
				index[name] = path
			}
			return nil
		})
		if err != nil {
			e.log.Warningf("walk %s: %s", dir, err)
		}
	}
	return index
}

func fileExists(path string) bool {
	info, err := os.Stat(path)
	return err == nil && !info.IsDir()
}
