// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package manuscript reads manuscript files and the book.yaml project
// manifest. Files are read once, fully into memory, and immutable
// afterwards.
package manuscript

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/bookpress/pkg/types"
)

// ManifestFile is the default project manifest name.
const ManifestFile = "book.yaml"

// EncodingError reports manuscript content that is not valid UTF-8.
type EncodingError struct {
	Path   string
	Offset int
}

func (e *EncodingError) Error() string {
	return fmt.Sprintf("manuscript %s is not valid UTF-8 (byte %d)", e.Path, e.Offset)
}

// Load reads one manuscript file into a SourceDocument. A missing or
// unreadable file and invalid UTF-8 content are both fatal; the error
// names the file. Windows line endings are normalized away.
func Load(path string) (types.SourceDocument, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return types.SourceDocument{}, fmt.Errorf("reading manuscript %s: %w", path, err)
	}

	if !utf8.Valid(data) {
		return types.SourceDocument{}, &EncodingError{Path: path, Offset: invalidOffset(data)}
	}

	content := strings.ReplaceAll(string(data), "\r\n", "\n")
	content = strings.TrimSuffix(content, "\n")

	return types.SourceDocument{
		Path:  path,
		Lines: strings.Split(content, "\n"),
	}, nil
}

// LoadAll reads every source in order, resolving relative paths against
// basepath. The first failure aborts the whole load; no partial result
// is returned.
func LoadAll(basepath string, sources []string) ([]types.SourceDocument, error) {
	docs := make([]types.SourceDocument, 0, len(sources))
	for _, src := range sources {
		path := src
		if basepath != "" && !filepath.IsAbs(src) {
			path = filepath.Join(basepath, src)
		}
		doc, err := Load(path)
		if err != nil {
			return nil, err
		}
		docs = append(docs, doc)
	}
	return docs, nil
}

// LoadBook reads a book.yaml manifest.
func LoadBook(path string) (*types.Book, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading manifest %s: %w", path, err)
	}
	var book types.Book
	if err := yaml.Unmarshal(data, &book); err != nil {
		return nil, fmt.Errorf("parsing manifest %s: %w", path, err)
	}
	return &book, nil
}

// invalidOffset returns the byte offset of the first invalid UTF-8
// sequence in data.
func invalidOffset(data []byte) int {
	for i := 0; i < len(data); {
		r, size := utf8.DecodeRune(data[i:])
		if r == utf8.RuneError && size == 1 {
			return i
		}
		i += size
	}
	return 0
}
