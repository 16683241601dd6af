package i18n

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"
)

// Source loads messages keyed by language.
type Source interface {
	Load(ctx context.Context) (map[string]map[string]any, error)
}

// MapSource serves messages from memory.
type MapSource map[string]map[string]any

// Load implements Source.
func (s MapSource) Load(_ context.Context) (map[string]map[string]any, error) {
	out := make(map[string]map[string]any, len(s))
	for lang, messages := range s {
		out[lang] = messages
	}
	return out, nil
}

// FSSource reads every file with a supported extension from a directory of
// a file system and merges them. Files for the same language are merged key
// by key; later files in directory order win on conflicts.
type FSSource struct {
	fsys fs.FS
	dir  string
}

// NewFSSource creates a source over dir inside fsys. Use "." for the root.
func NewFSSource(fsys fs.FS, dir string) *FSSource {
	if dir == "" {
		dir = "."
	}
	return &FSSource{fsys: fsys, dir: dir}
}

// NewDirSource creates a source over a directory on disk.
func NewDirSource(dir string) *FSSource {
	return NewFSSource(os.DirFS(dir), ".")
}

// Load implements Source.
func (s *FSSource) Load(ctx context.Context) (map[string]map[string]any, error) {
	if s == nil || s.fsys == nil {
		return nil, ErrNilSource
	}

	entries, err := fs.ReadDir(s.fsys, s.dir)
	if err != nil {
		return nil, errors.Join(ErrFailedToReadDir, err)
	}

	result := make(map[string]map[string]any)
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		parser := ParserFor(entry.Name())
		if parser == nil {
			continue
		}
		if err := ctx.Err(); err != nil {
			return nil, errors.Join(ErrLoadingCancelled, err)
		}

		name := path.Join(s.dir, entry.Name())
		content, err := fs.ReadFile(s.fsys, name)
		if err != nil {
			return nil, errors.Join(ErrFailedToReadFile, fmt.Errorf("%s: %w", name, err))
		}
		if len(content) == 0 {
			continue
		}

		parsed, err := parser.Parse(ctx, content)
		if err != nil {
			return nil, errors.Join(ErrFailedToParseFile, fmt.Errorf("%s: %w", name, err))
		}
		for lang, messages := range parsed {
			if result[lang] == nil {
				result[lang] = make(map[string]any)
			}
			mergeMessages(result[lang], messages)
		}
	}

	if len(result) == 0 {
		return nil, fmt.Errorf("%w in %q", ErrNoMessages, s.dir)
	}
	return result, nil
}

// mergeMessages deep-merges src into dst.
func mergeMessages(dst, src map[string]any) {
	for key, val := range src {
		srcMap, srcIsMap := normalizeMap(val)
		dstMap, dstIsMap := normalizeMap(dst[key])
		if srcIsMap && dstIsMap {
			mergeMessages(dstMap, srcMap)
			dst[key] = dstMap
			continue
		}
		if srcIsMap {
			copied := make(map[string]any, len(srcMap))
			mergeMessages(copied, srcMap)
			dst[key] = copied
			continue
		}
		dst[key] = val
	}
}
