// Copyright 2025 The EasyExtensions Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package inputfile reads whole benchmark report files.
//
// It exists so the result parsers can distinguish "the named input
// does not exist" from any other read failure: callers print a
// specific message for the former and a generic diagnostic for the
// latter.
package inputfile

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
)

// A MissingError reports that an input file does not exist.
type MissingError struct {
	Path string
}

func (e *MissingError) Error() string {
	return fmt.Sprintf("input file not found: %s", e.Path)
}

// IsMissing reports whether err indicates a missing input file.
func IsMissing(err error) bool {
	var m *MissingError
	return errors.As(err, &m)
}

// Read returns the contents of the file at path. If the file does not
// exist, the returned error is a *MissingError. Any other failure is
// returned with the path attached.
func Read(path string) ([]byte, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, &MissingError{Path: path}
		}
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	return data, nil
}
