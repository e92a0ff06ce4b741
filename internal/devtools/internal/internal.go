// © 2026 kcindric. All rights reserved.
// Use of this source code is governed by the ISC
// license that can be found in the LICENSE.md file.

// Package internal contains common functionality for the blog tools.
package internal

import (
	"fmt"
	"os"
	"path/filepath"
)

// Root returns the current working directory after checking that it is the
// repository root. The tools never change the working directory themselves;
// they pass this path around explicitly.
func Root() (string, error) {
	wd, err := os.Getwd()
	if err != nil {
		return "", err
	}
	if _, err := os.Stat(filepath.Join(wd, ".git")); os.IsNotExist(err) {
		return "", fmt.Errorf("%s is not the repository root (no .git here)", wd)
	} else if err != nil {
		return "", err
	}
	return wd, nil
}
