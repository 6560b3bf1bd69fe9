// Package loader reads token documents into token streams.
//
// A token document is what a tokenizer hands over: the complete token
// sequence for one source text, as JSON or YAML. Either form may be a
// mapping with a "tokens" list (and an optional "errorFound" flag) or a
// bare list of tokens:
//
//	{"tokens": [{"kind": "WORD", "text": "SELECT"}, ...], "errorFound": false}
package loader

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/leapstack-labs/sqltree/internal/config"
	"github.com/leapstack-labs/sqltree/pkg/token"
	"gopkg.in/yaml.v3"
)

// Format is the encoding of a token document.
type Format string

// Document formats.
const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// FormatFor picks the document format from a file extension.
func FormatFor(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return FormatJSON, nil
	case ".yaml", ".yml":
		return FormatYAML, nil
	default:
		return "", fmt.Errorf("%s: unsupported token document extension %q (want .json, .yaml or .yml)", path, filepath.Ext(path))
	}
}

// Loader reads token documents.
type Loader struct {
	logger *slog.Logger
}

// New creates a Loader. The aliases (alias -> kind name) are registered
// before anything is read so that documents from other tokenizers decode.
func New(aliases map[string]string, logger *slog.Logger) (*Loader, error) {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	if err := token.RegisterAliases(aliases); err != nil {
		return nil, fmt.Errorf("register token aliases: %w", err)
	}
	return &Loader{logger: logger}, nil
}

// LoadFile reads one token document from disk.
func (l *Loader) LoadFile(path string) (token.Stream, error) {
	format, err := FormatFor(path)
	if err != nil {
		return token.Stream{}, err
	}

	f, err := os.Open(path) //nolint:gosec // G304: path is supplied by the user on purpose
	if err != nil {
		return token.Stream{}, fmt.Errorf("open token document: %w", err)
	}
	defer func() { _ = f.Close() }()

	stream, err := l.Load(f, format)
	if err != nil {
		return token.Stream{}, fmt.Errorf("%s: %w", path, err)
	}
	l.logger.Debug("loaded token document", "path", path, "tokens", len(stream.Tokens), "error_found", stream.ErrorFound)
	return stream, nil
}

// Load reads one token document from r.
func (l *Loader) Load(r io.Reader, format Format) (token.Stream, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return token.Stream{}, fmt.Errorf("read token document: %w", err)
	}

	var stream token.Stream
	switch format {
	case FormatJSON:
		stream, err = decodeJSON(data)
	case FormatYAML:
		stream, err = decodeYAML(data)
	default:
		return token.Stream{}, fmt.Errorf("unsupported token document format %q", format)
	}
	if err != nil {
		return token.Stream{}, err
	}

	for i, tok := range stream.Tokens {
		if tok.Is(token.ILLEGAL) {
			return token.Stream{}, fmt.Errorf("token %d (%q): missing kind", i, tok.Text)
		}
	}
	return stream, nil
}

func decodeJSON(data []byte) (token.Stream, error) {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		return token.Stream{}, nil
	}

	var stream token.Stream
	if trimmed[0] == '[' {
		if err := json.Unmarshal(trimmed, &stream.Tokens); err != nil {
			return token.Stream{}, fmt.Errorf("decode json token list: %w", err)
		}
		return stream, nil
	}

	dec := json.NewDecoder(bytes.NewReader(trimmed))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&stream); err != nil {
		return token.Stream{}, fmt.Errorf("decode json token document: %w", err)
	}
	return stream, nil
}

func decodeYAML(data []byte) (token.Stream, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return token.Stream{}, fmt.Errorf("decode yaml token document: %w", err)
	}
	if len(doc.Content) == 0 {
		return token.Stream{}, nil
	}

	var stream token.Stream
	body := doc.Content[0]
	switch body.Kind {
	case yaml.SequenceNode:
		if err := body.Decode(&stream.Tokens); err != nil {
			return token.Stream{}, fmt.Errorf("decode yaml token list: %w", err)
		}
	case yaml.MappingNode:
		if err := body.Decode(&stream); err != nil {
			return token.Stream{}, fmt.Errorf("decode yaml token document: %w", err)
		}
	default:
		return token.Stream{}, errors.New("decode yaml token document: expected a mapping or a list")
	}
	return stream, nil
}

// Discover expands the given paths into token document files. Files are
// kept as given; directories are walked for .json, .yaml and .yml files,
// skipping hidden directories and project config files. The result is
// sorted and free of duplicates.
func Discover(paths []string) ([]string, error) {
	seen := make(map[string]bool)
	var files []string
	add := func(path string) {
		if !seen[path] {
			seen[path] = true
			files = append(files, path)
		}
	}

	for _, root := range paths {
		info, err := os.Stat(root)
		if err != nil {
			return nil, fmt.Errorf("stat %s: %w", root, err)
		}
		if !info.IsDir() {
			add(root)
			continue
		}

		err = filepath.WalkDir(root, func(path string, d fs.DirEntry, walkErr error) error {
			if walkErr != nil {
				return walkErr
			}
			if d.IsDir() {
				if path != root && strings.HasPrefix(d.Name(), ".") {
					return filepath.SkipDir
				}
				return nil
			}
			if isConfigFile(d.Name()) {
				return nil
			}
			if _, err := FormatFor(path); err == nil {
				add(path)
			}
			return nil
		})
		if err != nil {
			return nil, fmt.Errorf("walk %s: %w", root, err)
		}
	}

	sort.Strings(files)
	return files, nil
}

func isConfigFile(name string) bool {
	for _, n := range config.ConfigFileNames {
		if name == n {
			return true
		}
	}
	return false
}
