package extractor

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
)

// ReadDocument reads a file from disk. The path as given becomes the
// document name.
func ReadDocument(path string) (RawDocument, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return RawDocument{}, fmt.Errorf("failed to read %s: %w", path, err)
	}

	return NewRawDocument(path, data), nil
}

// CollectPaths expands the arguments into a list of file paths. Files are
// kept in argument order; directories contribute their regular files in
// lexical order, descending into subdirectories only when recursive is set.
// Every file is returned whatever its extension.
func CollectPaths(args []string, recursive bool) ([]string, error) {
	var paths []string

	for _, arg := range args {
		info, err := os.Stat(arg)
		if err != nil {
			return nil, fmt.Errorf("file does not exist: %s", arg)
		}

		if !info.IsDir() {
			paths = append(paths, arg)
			continue
		}

		found, err := collectDir(arg, recursive)
		if err != nil {
			return nil, err
		}
		paths = append(paths, found...)
	}

	return paths, nil
}

func collectDir(root string, recursive bool) ([]string, error) {
	var found []string

	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}

		if d.IsDir() {
			if path != root && !recursive {
				return filepath.SkipDir
			}
			return nil
		}

		if d.Type().IsRegular() {
			found = append(found, path)
		}

		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to scan directory %s: %w", root, err)
	}

	sort.Strings(found)

	return found, nil
}
