// Package emit renders wool descriptors into Java sources.
package emit

import (
	"embed"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/flosch/pongo2/v6"

	"github.com/alpakka/wools/wool"
)

//go:embed templates/*.tpl
var templateFS embed.FS

const (
	tplClass         = "class.java.tpl"
	tplEnum          = "enum.java.tpl"
	tplBaseExtension = "base_extension.java.tpl"
	tplTypeExtension = "type_extension.java.tpl"
	tplUnion         = "union.java.tpl"
	tplBits          = "bits.java.tpl"
	tplInterface     = "interface.java.tpl"
	tplBackend       = "backend.java.tpl"
	tplRoutes        = "routes.java.tpl"
	tplPom           = "pom.xml.tpl"
)

var filters = map[string]pongo2.FilterFunction{
	"firstupper": func(in *pongo2.Value, _ *pongo2.Value) (*pongo2.Value, *pongo2.Error) {
		return pongo2.AsValue(wool.FirstUpper(in.String())), nil
	},
	"firstlower": func(in *pongo2.Value, _ *pongo2.Value) (*pongo2.Value, *pongo2.Error) {
		return pongo2.AsValue(wool.FirstLower(in.String())), nil
	},
	"javadefault": func(in *pongo2.Value, _ *pongo2.Value) (*pongo2.Value, *pongo2.Error) {
		return pongo2.AsValue(wool.JavaDefault(in.String())), nil
	},
}

func init() {
	for name, fn := range filters {
		if pongo2.FilterExists(name) {
			continue
		}
		if err := pongo2.RegisterFilter(name, fn); err != nil {
			panic(err)
		}
	}
}

// File is one rendered output file. Path is relative to the output
// directory.
type File struct {
	Path    string
	Content string
}

// Emitter renders the modules of a wool result.
type Emitter struct {
	logger    *slog.Logger
	cfg       *wool.Config
	templates map[string]*pongo2.Template
}

// New compiles the embedded templates.
func New(cfg *wool.Config) (*Emitter, error) {
	if cfg == nil {
		cfg = wool.DefaultConfig()
	} else {
		cfg = cfg.WithDefaults()
	}
	e := &Emitter{
		logger:    cfg.Logger.With("component", "emit"),
		cfg:       cfg,
		templates: make(map[string]*pongo2.Template),
	}

	entries, err := templateFS.ReadDir("templates")
	if err != nil {
		return nil, err
	}
	for _, ent := range entries {
		b, err := templateFS.ReadFile("templates/" + ent.Name())
		if err != nil {
			return nil, err
		}
		tpl, err := pongo2.FromString(string(b))
		if err != nil {
			return nil, fmt.Errorf("compiling template %s: %w", ent.Name(), err)
		}
		e.templates[ent.Name()] = tpl
	}
	return e, nil
}

func (e *Emitter) header() string {
	if e.cfg.Copyright == "" {
		return ""
	}
	var sb strings.Builder
	sb.WriteString("/*\n")
	for _, line := range strings.Split(strings.TrimRight(e.cfg.Copyright, "\n"), "\n") {
		sb.WriteString(strings.TrimRight(" * "+line, " "))
		sb.WriteString("\n")
	}
	sb.WriteString(" */\n")
	return sb.String()
}

func (e *Emitter) render(name, key string, view any) (string, error) {
	tpl, ok := e.templates[name]
	if !ok {
		return "", fmt.Errorf("unknown template %s", name)
	}
	out, err := tpl.Execute(pongo2.Context{key: view, "header": e.header()})
	if err != nil {
		return "", fmt.Errorf("rendering %s: %w", name, err)
	}
	return out, nil
}

func javaFile(subpath, name, content string) File {
	return File{Path: filepath.Join("src", subpath, name+".java"), Content: content}
}

// ModuleFiles renders every file of one module, in emission order: enums,
// type extensions, base extensions, classes, unions, bits, then the backend
// interface, its stub implementation and the route table unless the
// configuration asks for beans only.
func (e *Emitter) ModuleFiles(m *wool.Module) ([]File, error) {
	var files []File
	subpath := m.Subpath()

	add := func(tpl, key, name string, view any) error {
		out, err := e.render(tpl, key, view)
		if err != nil {
			return fmt.Errorf("module %s, %s: %w", m.Name, name, err)
		}
		files = append(files, javaFile(subpath, name, out))
		return nil
	}

	for _, en := range m.Enums() {
		if err := add(tplEnum, "e", en.Name, newEnumView(en)); err != nil {
			return nil, err
		}
	}
	for _, d := range m.TypeExtensions() {
		if err := add(tplTypeExtension, "t", d.Name, newTypedefView(d)); err != nil {
			return nil, err
		}
	}
	for _, d := range m.BaseExtensions() {
		if err := add(tplBaseExtension, "t", d.Name, newTypedefView(d)); err != nil {
			return nil, err
		}
	}
	for _, c := range m.Classes() {
		if err := add(tplClass, "c", c.Name, newClassView(c)); err != nil {
			return nil, err
		}
	}
	for _, d := range m.Unions() {
		if err := add(tplUnion, "t", d.Name, newTypedefView(d)); err != nil {
			return nil, err
		}
	}
	for _, b := range m.Bits() {
		if err := add(tplBits, "b", b.Name, newBitsView(b)); err != nil {
			return nil, err
		}
	}

	if e.cfg.BeansOnly {
		return files, nil
	}
	view := interfaceView{
		Package:   m.Package,
		Name:      m.JavaName + "Interface",
		Interface: m.JavaName + "Interface",
		Module:    m.Name,
		Imports:   m.InterfaceImports(e.cfg.InterfaceLevels),
	}
	for _, r := range m.RPCs() {
		view.RPCs = append(view.RPCs, newRPCView(m, r))
	}
	if err := add(tplInterface, "i", view.Name, view); err != nil {
		return nil, err
	}
	backend := view
	backend.Name = m.JavaName + "Backend"
	if err := add(tplBackend, "i", backend.Name, backend); err != nil {
		return nil, err
	}
	routes := view
	routes.Name = m.JavaName + "Routes"
	routes.Imports = nil
	if err := add(tplRoutes, "i", routes.Name, routes); err != nil {
		return nil, err
	}
	return files, nil
}

// Files renders every module of res followed by one pom.xml.
func (e *Emitter) Files(res *wool.Result) ([]File, error) {
	var files []File
	pom := pomView{GroupID: e.cfg.Prefix}
	for _, m := range res.Modules {
		mf, err := e.ModuleFiles(m)
		if err != nil {
			return nil, err
		}
		files = append(files, mf...)
		pom.Modules = append(pom.Modules, m.Name)
		pom.ArtifactID = m.Name
	}
	if pom.GroupID == "" {
		pom.GroupID = "generated"
	}
	if pom.ArtifactID == "" {
		return files, nil
	}
	out, err := e.render(tplPom, "p", pom)
	if err != nil {
		return nil, err
	}
	return append(files, File{Path: "pom.xml", Content: out}), nil
}

// Write renders res and writes the files below the configured output
// directory. It returns the number of files written.
func (e *Emitter) Write(res *wool.Result) (int, error) {
	files, err := e.Files(res)
	if err != nil {
		return 0, err
	}
	for _, f := range files {
		p := filepath.Join(e.cfg.OutputDir, f.Path)
		if err := os.MkdirAll(filepath.Dir(p), 0o755); err != nil {
			return 0, err
		}
		if err := os.WriteFile(p, []byte(f.Content), 0o644); err != nil {
			return 0, fmt.Errorf("writing %s: %w", p, err)
		}
		e.logger.Debug("wrote file", "path", p)
	}
	e.logger.Info("emitted sources", "files", len(files), "dir", e.cfg.OutputDir)
	return len(files), nil
}
