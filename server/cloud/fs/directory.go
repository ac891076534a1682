// SPDX-FileCopyrightText: 2021 Softbear, Inc.
// SPDX-License-Identifier: AGPL-3.0-or-later

package fs

import (
	"os"
	"path/filepath"
)

// Directory is a Filesystem on local disk. Cache durations are ignored.
type Directory string

func (dir Directory) UploadStaticFile(filename string, _ int, data []byte) error {
	path := filepath.Join(string(dir), filepath.FromSlash(filename))
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}
