// Package tables tracks the report files waiting in the input directory. A file is
// processed once a '<file>.success' marker exists beside it.
package tables

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

const SUFFIX = ".success"

// Pending returns the names of the report files in dir that have not been marked as
// processed, in directory listing order.
func Pending(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}

	markers := map[string]bool{}
	for _, e := range entries {
		if name := e.Name(); strings.HasSuffix(name, SUFFIX) {
			markers[name] = true
		}
	}

	files := []string{}
	for _, e := range entries {
		name := e.Name()

		switch {
		case e.IsDir():
			continue

		case strings.HasPrefix(name, "."):
			continue

		case strings.HasSuffix(name, SUFFIX):
			continue

		case markers[name+SUFFIX]:
			continue
		}

		files = append(files, name)
	}

	return files, nil
}

// MarkProcessed creates the empty marker for file. An existing marker is an error.
func MarkProcessed(dir, file string) error {
	path := filepath.Join(dir, file+SUFFIX)

	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0644)
	if err != nil {
		return fmt.Errorf("error marking %v as processed (%w)", file, err)
	}

	return f.Close()
}
