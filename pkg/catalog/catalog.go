// Package catalog lists the programs available to the application: the
// examples built into the binary and, optionally, one file from disk.
package catalog

import (
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"sort"
	"strings"

	"github.com/josephg/hyperlines/pkg/compiler/lexer"
	"github.com/josephg/hyperlines/pkg/script"
)

// DefaultProgram is the built-in example run when no program is named.
const DefaultProgram = "particles"

// Metadata is read from "// key: value" comment lines of a program.
type Metadata struct {
	Title  string   // title:
	Author string   // author:
	Notes  []string // note: (may repeat)
}

// Program is an entry of the catalog.
type Program struct {
	Name       string    // file name without extension
	Path       string    // path inside the embedded FS, or on disk
	IsEmbedded bool      // built into the binary
	Metadata   *Metadata // nil until loaded
}

// DisplayName returns the title from the metadata, or the name.
func (p *Program) DisplayName() string {
	if p.Metadata != nil && p.Metadata.Title != "" {
		return p.Metadata.Title
	}
	return p.Name
}

// Catalog manages the programs.
type Catalog struct {
	embedded []Program
	external *Program
	fsys     fs.FS
	encoding script.Encoding
}

// New creates a Catalog over the .hl files found in dir of fsys.
// A missing dir leaves the catalog without built-in programs.
func New(fsys fs.FS, dir string, enc script.Encoding) *Catalog {
	c := &Catalog{fsys: fsys, encoding: enc}
	c.loadEmbedded(dir)
	return c
}

func (c *Catalog) loadEmbedded(dir string) {
	if c.fsys == nil {
		return
	}
	entries, err := fs.ReadDir(c.fsys, dir)
	if err != nil {
		return
	}

	loader := script.NewLoader(c.fsys, c.encoding)
	for _, entry := range entries {
		if entry.IsDir() || !strings.EqualFold(path.Ext(entry.Name()), script.Extension) {
			continue
		}
		p := Program{
			Name:       trimExt(entry.Name()),
			Path:       path.Join(dir, entry.Name()),
			IsEmbedded: true,
		}
		// unreadable entries still list; Load reports the error
		if s, err := loader.Load(p.Path); err == nil {
			p.Metadata = ExtractMetadata(s.Content)
		}
		c.embedded = append(c.embedded, p)
	}
	sort.Slice(c.embedded, func(i, j int) bool {
		return c.embedded[i].Name < c.embedded[j].Name
	})
}

// LoadExternal registers a program file on disk. It replaces the built-in
// programs in Programs.
func (c *Catalog) LoadExternal(filePath string) error {
	info, err := os.Stat(filePath)
	if err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("program file does not exist: %s", filePath)
		}
		return fmt.Errorf("failed to access program file: %w", err)
	}
	if info.IsDir() {
		return fmt.Errorf("program path is a directory: %s", filePath)
	}

	absPath, err := filepath.Abs(filePath)
	if err != nil {
		return fmt.Errorf("failed to get absolute path: %w", err)
	}

	s, err := script.LoadFile(absPath, c.encoding)
	if err != nil {
		return err
	}

	c.external = &Program{
		Name:     trimExt(filepath.Base(absPath)),
		Path:     absPath,
		Metadata: ExtractMetadata(s.Content),
	}
	return nil
}

// Programs returns the external program if one is registered, otherwise
// the built-in programs sorted by name.
func (c *Catalog) Programs() []Program {
	if c.external != nil {
		return []Program{*c.external}
	}
	return append([]Program(nil), c.embedded...)
}

// Find looks up a built-in program by name.
func (c *Catalog) Find(name string) (*Program, bool) {
	for i := range c.embedded {
		if c.embedded[i].Name == name {
			p := c.embedded[i]
			return &p, true
		}
	}
	return nil, false
}

// Resolve picks the program to run for a command-line argument. An empty
// argument selects DefaultProgram (or the only built-in program), the name
// of a built-in program selects it, and anything else is read from disk.
func (c *Catalog) Resolve(arg string) (*Program, error) {
	if arg == "" {
		if p, ok := c.Find(DefaultProgram); ok {
			return p, nil
		}
		if len(c.embedded) == 1 {
			p := c.embedded[0]
			return &p, nil
		}
		return nil, fmt.Errorf("no default program available")
	}

	if p, ok := c.Find(arg); ok {
		if _, err := os.Stat(arg); err != nil {
			return p, nil
		}
	}

	if err := c.LoadExternal(arg); err != nil {
		return nil, err
	}
	p := *c.external
	return &p, nil
}

// Load reads the program's source.
func (c *Catalog) Load(p *Program) (*script.Script, error) {
	if p.IsEmbedded {
		return script.NewLoader(c.fsys, c.encoding).Load(p.Path)
	}
	return script.LoadFile(p.Path, c.encoding)
}

// ExtractMetadata collects "// key: value" comments. Only the lexer runs,
// so programs with syntax errors still yield their metadata.
func ExtractMetadata(content string) *Metadata {
	metadata := &Metadata{Notes: []string{}}

	l := lexer.New(content)
	for {
		tok := l.NextToken()
		if tok.Type == lexer.TOKEN_EOF {
			break
		}
		if tok.Type == lexer.TOKEN_COMMENT {
			parseComment(tok.Literal, metadata)
		}
	}
	return metadata
}

func parseComment(literal string, metadata *Metadata) {
	rest := strings.TrimSpace(strings.TrimPrefix(literal, "//"))
	key, value, ok := strings.Cut(rest, ":")
	if !ok {
		return
	}
	value = strings.TrimSpace(value)
	if value == "" {
		return
	}

	switch strings.ToLower(strings.TrimSpace(key)) {
	case "title":
		if metadata.Title == "" {
			metadata.Title = value
		}
	case "author":
		if metadata.Author == "" {
			metadata.Author = value
		}
	case "note":
		metadata.Notes = append(metadata.Notes, value)
	}
}

func trimExt(name string) string {
	return strings.TrimSuffix(name, path.Ext(name))
}
