// SPDX-License-Identifier: GPL-3.0-only

package scaffold

import (
	"archive/zip"
	"bytes"
	"slices"
)

// Archive packages a rendered file tree into a zip archive. Entries are
// written in sorted path order so the output is deterministic.
func Archive(files map[string][]byte) ([]byte, error) {
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	names := make([]string, 0, len(files))
	for name := range files {
		names = append(names, name)
	}
	slices.Sort(names)
	for _, name := range names {
		w, err := zw.Create(name)
		if err != nil {
			zw.Close()
			return nil, err
		}
		if _, err := w.Write(files[name]); err != nil {
			zw.Close()
			return nil, err
		}
	}
	if err := zw.Close(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
