// Package yangsrc builds schema trees from YANG sources.
//
// Sources are parsed into raw statements with goyang and then converted to
// schema nodes. Groupings are referenced from the nodes that use them, not
// expanded; augments are attached to their target with the augmenting module
// recorded as the declaring module; leafref paths are resolved to their
// target node where possible.
package yangsrc

import (
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/openconfig/goyang/pkg/yang"
	"golang.org/x/sync/errgroup"

	"github.com/alpakka/wools/schema"
)

// Loader collects parsed module statements until Build is called.
type Loader struct {
	logger *slog.Logger

	modules    map[string]*yang.Statement
	order      []string
	submodules map[string][]*yang.Statement
}

// Creates a new empty Loader. A nil logger uses slog.Default.
func NewLoader(logger *slog.Logger) *Loader {
	if logger == nil {
		logger = slog.Default()
	}
	return &Loader{
		logger:     logger.With("component", "yangsrc"),
		modules:    make(map[string]*yang.Statement),
		submodules: make(map[string][]*yang.Statement),
	}
}

// AddSource parses YANG text. path is only used in error messages.
func (l *Loader) AddSource(input, path string) error {
	stmts, err := parse(input, path)
	if err != nil {
		return err
	}
	return l.add(stmts, path)
}

func parse(input, path string) ([]*yang.Statement, error) {
	stmts, err := yang.Parse(input, path)
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}
	return stmts, nil
}

func (l *Loader) add(stmts []*yang.Statement, path string) error {
	for _, st := range stmts {
		switch st.Keyword {
		case "module":
			if _, ok := l.modules[st.Argument]; ok {
				return fmt.Errorf("module %s defined twice (%s)", st.Argument, path)
			}
			l.modules[st.Argument] = st
			l.order = append(l.order, st.Argument)
		case "submodule":
			parent := argOf(st, "belongs-to")
			if parent == "" {
				return fmt.Errorf("submodule %s has no belongs-to (%s)", st.Argument, path)
			}
			l.submodules[parent] = append(l.submodules[parent], st)
		default:
			return fmt.Errorf("unexpected top-level statement %q in %s", st.Keyword, path)
		}
	}
	return nil
}

// LoadFile parses one YANG file.
func (l *Loader) LoadFile(path string) error {
	return l.loadFiles([]string{path})
}

// Recursively loads all '.yang' files from a directory.
func (l *Loader) LoadDirectory(dirPath string) error {
	files, err := yangFiles(dirPath)
	if err != nil {
		return err
	}
	return l.loadFiles(files)
}

func yangFiles(dirPath string) ([]string, error) {
	var files []string
	walkFunc := func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}
		if !strings.HasSuffix(p, ".yang") {
			return nil
		}
		files = append(files, p)
		return nil
	}
	if err := filepath.WalkDir(dirPath, walkFunc); err != nil {
		return nil, err
	}
	return files, nil
}

// Load reads every path, each a file or a directory.
func (l *Loader) Load(paths ...string) error {
	var files []string
	for _, p := range paths {
		info, err := os.Stat(p)
		if err != nil {
			return err
		}
		if !info.IsDir() {
			files = append(files, p)
			continue
		}
		found, err := yangFiles(p)
		if err != nil {
			return err
		}
		files = append(files, found...)
	}
	return l.loadFiles(files)
}

// loadFiles reads and parses files concurrently, then registers the parsed
// statements in the order the files were given.
func (l *Loader) loadFiles(files []string) error {
	parsed := make([][]*yang.Statement, len(files))

	var eg errgroup.Group
	eg.SetLimit(runtime.GOMAXPROCS(0))
	for i, path := range files {
		eg.Go(func() error {
			b, err := os.ReadFile(path)
			if err != nil {
				return err
			}
			l.logger.Debug("loading YANG file", "path", path)
			stmts, err := parse(string(b), path)
			if err != nil {
				return err
			}
			parsed[i] = stmts
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return err
	}

	for i, path := range files {
		if err := l.add(parsed[i], path); err != nil {
			return err
		}
	}
	return nil
}

// Build converts every loaded module into a schema catalog. Modules are
// converted imported-first so that groupings and augment targets of other
// modules exist when they are referenced.
func (l *Loader) Build() (*schema.Catalog, error) {
	b := newBuild(l)
	for _, name := range l.dependencyOrder() {
		if err := b.module(l.modules[name]); err != nil {
			return nil, err
		}
	}
	b.applyAugments()
	b.resolveLeafrefs()

	cat := schema.NewCatalog()
	for _, name := range l.order {
		if err := cat.AddModule(b.modules[name].node); err != nil {
			return nil, err
		}
	}
	return cat, nil
}

// LoadCatalog is a shortcut for loading paths and building the catalog.
func LoadCatalog(logger *slog.Logger, paths ...string) (*schema.Catalog, error) {
	l := NewLoader(logger)
	if err := l.Load(paths...); err != nil {
		return nil, err
	}
	return l.Build()
}

func (l *Loader) dependencyOrder() []string {
	var out []string
	state := make(map[string]int)
	var visit func(name string)
	visit = func(name string) {
		st, ok := l.modules[name]
		if !ok || state[name] != 0 {
			return
		}
		state[name] = 1
		for _, imp := range subs(st, "import") {
			visit(imp.Argument)
		}
		state[name] = 2
		out = append(out, name)
	}
	for _, name := range l.order {
		visit(name)
	}
	return out
}

func subs(st *yang.Statement, keyword string) []*yang.Statement {
	var out []*yang.Statement
	for _, s := range st.SubStatements() {
		if s.Keyword == keyword {
			out = append(out, s)
		}
	}
	return out
}

func argOf(st *yang.Statement, keyword string) string {
	for _, s := range st.SubStatements() {
		if s.Keyword == keyword {
			return s.Argument
		}
	}
	return ""
}
