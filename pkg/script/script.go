// Package script loads hyperlines program files (.hl) and decodes them
// to UTF-8.
package script

import (
	"bytes"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path"
	"sort"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding/japanese"
	"golang.org/x/text/encoding/unicode"
	"golang.org/x/text/transform"
)

// Extension is the file extension of program files, matched
// case-insensitively.
const Extension = ".hl"

// Encoding selects how program bytes are decoded.
type Encoding int

const (
	// EncodingAuto honours a byte order mark, then falls back to UTF-8
	// when the data is valid UTF-8 and Shift-JIS otherwise.
	EncodingAuto Encoding = iota
	EncodingUTF8
	EncodingShiftJIS
)

// String returns the name accepted by ParseEncoding.
func (e Encoding) String() string {
	switch e {
	case EncodingUTF8:
		return "utf8"
	case EncodingShiftJIS:
		return "sjis"
	default:
		return "auto"
	}
}

// ParseEncoding converts a name such as "utf8" or "sjis" to an Encoding.
func ParseEncoding(name string) (Encoding, error) {
	switch strings.ToLower(name) {
	case "", "auto":
		return EncodingAuto, nil
	case "utf8", "utf-8":
		return EncodingUTF8, nil
	case "sjis", "shift_jis", "shift-jis", "shiftjis":
		return EncodingShiftJIS, nil
	default:
		return EncodingAuto, fmt.Errorf("unknown encoding: %s (valid: auto, utf8, sjis)", name)
	}
}

// Script is a decoded program file.
type Script struct {
	FileName string // base name
	Content  string // UTF-8 text
	Size     int64  // size on disk in bytes
}

// Loader reads program files from a file system.
type Loader struct {
	fsys     fs.FS
	encoding Encoding
}

// NewLoader creates a Loader over fsys.
func NewLoader(fsys fs.FS, enc Encoding) *Loader {
	return &Loader{fsys: fsys, encoding: enc}
}

// NewDirLoader creates a Loader rooted at a directory on disk.
func NewDirLoader(dir string, enc Encoding) *Loader {
	return NewLoader(os.DirFS(dir), enc)
}

// Load reads and decodes a single file.
func (l *Loader) Load(name string) (*Script, error) {
	data, err := fs.ReadFile(l.fsys, name)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", name, err)
	}
	content, err := Decode(data, l.encoding)
	if err != nil {
		return nil, fmt.Errorf("failed to decode %s: %w", name, err)
	}
	return &Script{
		FileName: path.Base(name),
		Content:  content,
		Size:     int64(len(data)),
	}, nil
}

// LoadAll reads every program file under the loader's root, sorted by
// path.
func (l *Loader) LoadAll() ([]Script, error) {
	names, err := l.findScriptFiles()
	if err != nil {
		return nil, fmt.Errorf("failed to find program files: %w", err)
	}
	if len(names) == 0 {
		return nil, fmt.Errorf("no %s files found", Extension)
	}

	scripts := make([]Script, 0, len(names))
	for _, name := range names {
		s, err := l.Load(name)
		if err != nil {
			return nil, err
		}
		scripts = append(scripts, *s)
	}
	return scripts, nil
}

func (l *Loader) findScriptFiles() ([]string, error) {
	var names []string
	err := fs.WalkDir(l.fsys, ".", func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() && strings.EqualFold(path.Ext(p), Extension) {
			names = append(names, p)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	sort.Strings(names)
	return names, nil
}

// LoadFile reads and decodes a file by its path on disk.
func LoadFile(filePath string, enc Encoding) (*Script, error) {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to read file %s: %w", filePath, err)
	}
	content, err := Decode(data, enc)
	if err != nil {
		return nil, fmt.Errorf("failed to decode %s: %w", filePath, err)
	}
	return &Script{
		FileName: path.Base(strings.ReplaceAll(filePath, "\\", "/")),
		Content:  content,
		Size:     int64(len(data)),
	}, nil
}

// Decode converts data to UTF-8 text. A byte order mark, when present,
// is stripped.
func Decode(data []byte, enc Encoding) (string, error) {
	switch enc {
	case EncodingShiftJIS:
		return decodeWith(data, japanese.ShiftJIS.NewDecoder())
	case EncodingUTF8:
		return decodeWith(data, unicode.BOMOverride(unicode.UTF8.NewDecoder()))
	default:
		if hasBOM(data) || utf8.Valid(data) {
			return decodeWith(data, unicode.BOMOverride(unicode.UTF8.NewDecoder()))
		}
		return decodeWith(data, japanese.ShiftJIS.NewDecoder())
	}
}

func decodeWith(data []byte, dec transform.Transformer) (string, error) {
	out, err := io.ReadAll(transform.NewReader(bytes.NewReader(data), dec))
	if err != nil {
		return "", err
	}
	return string(out), nil
}

func hasBOM(data []byte) bool {
	return bytes.HasPrefix(data, []byte{0xEF, 0xBB, 0xBF}) ||
		bytes.HasPrefix(data, []byte{0xFE, 0xFF}) ||
		bytes.HasPrefix(data, []byte{0xFF, 0xFE})
}
